package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/tui/commands"
	"github.com/javiermolinar/deckhand/internal/tui/view"
)

// View renders the board.
func (m Model) View() string {
	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		EmptyPlaceholder: "Loading...",
	})
}

func (m Model) renderAppContent() string {
	bodyH := max(0, m.height-titleHeight-footerHeight)
	var body string
	if len(m.board.Columns()) == 0 {
		body = m.styles.HelpStyle.Render(fmt.Sprintf(
			"No courses for %s. Import a roster with: deckhand import FILE --day %s",
			dayutil.Name(m.board.Day()), m.board.Day()))
		body = view.PlaceBox(m.width, bodyH, lipgloss.Center, body, m.styles.colorBg)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderHeaders(), m.renderGrid())
		body = view.PadLinesWithBackground(body, m.width, bodyH, m.styles.colorBg)
	}

	footer := view.RenderFooter(view.FooterViewState{
		InnerW:     m.width,
		FooterH:    footerHeight,
		PromptLine: m.renderPrompt(),
		StatusLine: m.renderStatus(),
		HelpLine:   m.styles.HelpStyle.Render(m.helpText()),
		Bg:         m.styles.colorBg,
	})

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), body, footer)
	return view.PadLinesWithBackground(content, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render(" deckhand · " + dayutil.Name(m.board.Day()))
	if m.dirty {
		title += m.styles.DirtyStyle.Render("  ● unsaved")
	}
	summary := fmt.Sprintf("%s · %s ",
		pluralize(len(m.board.Courses()), "course"),
		pluralize(len(m.board.Columns()), "column"))
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(summary))
	return title + m.styles.HelpStyle.Render(strings.Repeat(" ", gap)+summary)
}

func (m Model) visibleRange() (first, last int) {
	first = m.colOffset
	last = min(len(m.board.Columns()), first+m.visibleColumns())
	return first, last
}

func (m Model) renderHeaders() string {
	w := m.colWidth()
	headers := view.ColumnHeaders(m.board.Instructors())
	first, last := m.visibleRange()

	var b strings.Builder
	b.WriteString(m.styles.TimeRailStyle.Render(strings.Repeat(" ", railWidth)))
	for i := first; i < last; i++ {
		style := m.styles.HeaderStyle
		switch {
		case i == m.cursor.Col && m.mode == ModeDrag:
			style = m.styles.HeaderTargetStyle
		case i == m.cursor.Col:
			style = m.styles.HeaderActiveStyle
		}
		b.WriteString(style.Render(view.FitCell(" "+headers[i], w)))
		b.WriteString(m.gap())
	}
	return b.String()
}

func (m Model) gap() string {
	return lipgloss.NewStyle().Background(m.styles.colorBg).Render(" ")
}

// renderGrid draws the time rail and the visible columns, one line per slot.
func (m Model) renderGrid() string {
	labels := m.board.TimeLabels()
	w := m.colWidth()
	first, last := m.visibleRange()

	cells := make([][]string, 0, last-first)
	for i := first; i < last; i++ {
		cells = append(cells, m.columnCells(i, len(labels), w))
	}

	gridH := m.gridHeight()
	end := min(len(labels), m.scrollOffset+gridH)
	lines := make([]string, 0, gridH)
	for row := m.scrollOffset; row < end; row++ {
		var b strings.Builder
		b.WriteString(m.styles.TimeRailStyle.Render(view.FitCell(labels[row], railWidth)))
		for _, col := range cells {
			b.WriteString(col[row])
			b.WriteString(m.gap())
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// columnCells renders column i as one styled cell per time slot.
func (m Model) columnCells(i, slots, w int) []string {
	empty := m.styles.EmptyCellStyle.Render(view.FitCell(" ·", w))
	cells := make([]string, slots)
	for row := range cells {
		cells[row] = empty
	}

	drag, dragging := m.dragging()
	for j, c := range m.board.Columns()[i] {
		style := m.styles.CourseStyle
		if j%2 == 1 {
			style = m.styles.CourseAltStyle
		}
		if dragging && drag.Source == i && drag.Code == c.Code {
			style = m.styles.DragStyle
		}
		if m.cursor.Col == i && m.cursor.Row == j {
			style = m.styles.CursorStyle
		}

		text := courseLines(c)
		start := m.slotIndex(c)
		for k := 0; k < c.Slots(); k++ {
			row := start + k
			if row < 0 || row >= slots {
				continue
			}
			line := ""
			if k < len(text) {
				line = text[k]
			}
			cells[row] = style.Render(view.FitCell(" "+line, w))
		}
	}
	return cells
}

// courseLines is the text of a course block, one entry per slot row.
func courseLines(c course.Course) []string {
	head := c.Code
	if c.Level != "" {
		head += " " + c.Level
	}
	return []string{
		head,
		c.StartTime() + "-" + c.EndTime(),
		pluralize(c.Students, "student") + " · " + view.FormatLength(c.Duration()),
	}
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case ModeLabel:
		return m.styles.StatusInfoStyle.Render(fmt.Sprintf(" Column %d ", m.cursor.Col+1)) + m.input.View()
	case ModeDrag:
		drag, _ := m.dragging()
		return m.styles.DragStyle.Render(fmt.Sprintf(" moving %s from column %d ", drag.Code, drag.Source+1))
	}
	return ""
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	style := m.styles.StatusInfoStyle
	switch m.statusKind {
	case commands.LevelSuccess:
		style = m.styles.StatusSuccessStyle
	case commands.LevelWarning:
		style = m.styles.StatusWarningStyle
	}
	return style.Render(" " + m.statusMsg)
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeDrag:
		return " h/l column · j/k course · space drop · enter drop onto course · esc cancel"
	case ModeLabel:
		return " enter save label · esc cancel"
	}
	help := " h/l/j/k move · space pick up · i label · s save · r repack · y copy"
	if len(m.days) > 1 {
		help += " · [/] day"
	}
	return help + " · q quit"
}
