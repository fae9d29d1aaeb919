package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/tui/commands"
)

// Rows taken by the title, column headers and footer.
const (
	titleHeight  = 1
	headerHeight = 1
	footerHeight = 3
)

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// status shows text on the status line and schedules its removal.
func (m Model) status(text string, level commands.Level, d time.Duration) (Model, tea.Cmd) {
	m.statusMsg = text
	m.statusKind = level
	m.statusTime = time.Now().Add(d)
	return m, commands.ClearStatusAfter(d)
}

func (m Model) gridHeight() int {
	return max(0, m.height-titleHeight-headerHeight-footerHeight)
}

func (m Model) totalSlots() int {
	return len(m.board.TimeLabels())
}

// visibleColumns is how many columns fit beside the time rail.
func (m Model) visibleColumns() int {
	n := max(1, (m.width-railWidth)/(minColWidth+1))
	return max(1, min(n, len(m.board.Columns())))
}

func (m Model) colWidth() int {
	w := (m.width-railWidth)/m.visibleColumns() - 1
	return min(max(w, minColWidth), maxColWidth)
}

// slotIndex returns the first time rail row of c.
func (m Model) slotIndex(c course.Course) int {
	return c.Offset(m.board.ScheduleStart()) / course.SlotMinutes
}

// ensureCursorVisible scrolls so the cursor column and course are on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleColumns()
	if m.cursor.Col < m.colOffset {
		m.colOffset = m.cursor.Col
	}
	if m.cursor.Col >= m.colOffset+visible {
		m.colOffset = m.cursor.Col - visible + 1
	}
	m.colOffset = max(0, min(m.colOffset, len(m.board.Columns())-visible))

	gridH := m.gridHeight()
	if c, ok := m.cursorCourse(); ok && gridH > 0 {
		first := m.slotIndex(c)
		last := first + c.Slots()
		if first < m.scrollOffset {
			m.scrollOffset = first
		}
		if last > m.scrollOffset+gridH {
			m.scrollOffset = min(first, last-gridH)
		}
	}
	m.scrollOffset = max(0, min(m.scrollOffset, m.totalSlots()-gridH))
}

func (m Model) cursorCourse() (course.Course, bool) {
	cols := m.board.Columns()
	if m.cursor.Col < 0 || m.cursor.Col >= len(cols) {
		return course.Course{}, false
	}
	col := cols[m.cursor.Col]
	if m.cursor.Row < 0 || m.cursor.Row >= len(col) {
		return course.Course{}, false
	}
	return col[m.cursor.Row], true
}

// nearestRow returns the index of the course in column col that starts
// closest to minute, or 0 for an empty column.
func (m Model) nearestRow(col, minute int) int {
	cols := m.board.Columns()
	if col < 0 || col >= len(cols) {
		return 0
	}
	best, bestDist := 0, -1
	for i, c := range cols[col] {
		dist := c.Start - minute
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// moveColumn moves the cursor delta columns, keeping it near the same time.
func (m *Model) moveColumn(delta int) {
	n := len(m.board.Columns())
	next := m.cursor.Col + delta
	if next < 0 || next >= n {
		return
	}
	minute := 0
	if c, ok := m.cursorCourse(); ok {
		minute = c.Start
	}
	m.cursor = Position{Col: next, Row: m.nearestRow(next, minute)}
	m.ensureCursorVisible()
}

func (m *Model) moveRow(delta int) {
	cols := m.board.Columns()
	if m.cursor.Col >= len(cols) {
		return
	}
	next := m.cursor.Row + delta
	if next < 0 || next >= len(cols[m.cursor.Col]) {
		return
	}
	m.cursor.Row = next
	m.ensureCursorVisible()
}

// adjacentDay returns the stored day before (delta -1) or after (delta 1)
// the board's day.
func (m Model) adjacentDay(delta int) (string, bool) {
	current := m.board.Day()
	idx := -1
	for i, d := range m.days {
		if d == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	next := idx + delta
	if next < 0 || next >= len(m.days) {
		return "", false
	}
	return m.days[next], true
}
