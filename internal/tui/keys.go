package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/schedule"
	"github.com/javiermolinar/deckhand/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", zap.String("key", msg.String()), zap.Stringer("mode", m.mode))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeLabel:
		return m.handleLabelKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		m.moveColumn(-1)
	case "l", "right":
		m.moveColumn(1)
	case "j", "down":
		m.moveRow(1)
	case "k", "up":
		m.moveRow(-1)

	case " ":
		code := m.selected()
		if code == "" {
			return m, nil
		}
		if err := m.board.DragStart(code, m.cursor.Col); err != nil {
			return m.status(fmt.Sprintf("Error: %v", err), commands.LevelWarning, 5*time.Second)
		}
		m.mode = ModeDrag
		m.statusMsg = ""
		return m, nil

	case "i":
		if len(m.board.Columns()) == 0 {
			return m, nil
		}
		m.mode = ModeLabel
		m.input.SetValue(m.board.Instructors()[m.cursor.Col])
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case "s":
		return m.save()

	case "r":
		m.board.Reset()
		m.dirty = true
		m.cursor = Position{}
		m.colOffset, m.scrollOffset = 0, 0
		m.ensureCursorVisible()
		return m.status("repacked "+pluralize(len(m.board.Columns()), "column"), commands.LevelInfo, commands.StatusDuration)

	case "y":
		return m, commands.Copy(m.copy, m.board.Layout())

	case "[":
		return m.switchDay(-1)
	case "]":
		return m.switchDay(1)
	}
	return m, nil
}

// handleDragKeys handles keys while a course is picked up. The cursor
// chooses the target column and, for enter, the course to drop onto.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if drag, ok := m.dragging(); ok {
			m.focus(drag.Code)
		}
		m.board.CancelDrag()
		m.mode = ModeNormal
		m.ensureCursorVisible()
		return m.status("move cancelled", commands.LevelInfo, commands.StatusDuration)

	case "h", "left":
		m.moveColumn(-1)
	case "l", "right":
		m.moveColumn(1)
	case "j", "down":
		m.moveRow(1)
	case "k", "up":
		m.moveRow(-1)

	case " ":
		return m.drop("")
	case "enter":
		return m.drop(m.selected())
	}
	return m, nil
}

// handleLabelKeys edits the instructor label of the cursor column.
func (m Model) handleLabelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = ModeNormal
		m.input.Blur()
		name := strings.TrimSpace(m.input.Value())
		if err := m.board.SetInstructor(m.cursor.Col, name); err != nil {
			return m.status(fmt.Sprintf("Error: %v", err), commands.LevelWarning, 5*time.Second)
		}
		m.dirty = true
		if name == "" {
			return m.status(fmt.Sprintf("cleared label of column %d", m.cursor.Col+1), commands.LevelInfo, commands.StatusDuration)
		}
		return m.status(fmt.Sprintf("column %d is %s", m.cursor.Col+1, name), commands.LevelSuccess, commands.StatusDuration)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dragging returns the board's active drag.
func (m Model) dragging() (schedule.DragState, bool) {
	return m.board.Dragging()
}

// drop finishes the active drag on the cursor column, onto the course code
// when it is not empty.
func (m Model) drop(onto string) (tea.Model, tea.Cmd) {
	drag, ok := m.dragging()
	if !ok {
		m.mode = ModeNormal
		return m, nil
	}

	var (
		res schedule.Result
		err error
	)
	if onto == "" {
		res, err = m.board.Drop(m.cursor.Col)
	} else {
		res, err = m.board.DropOnCourse(onto, m.cursor.Col)
	}
	m.mode = ModeNormal
	if err != nil {
		m.logger.Error("drop failed", zap.String("code", drag.Code), zap.Error(err))
		return m.status(fmt.Sprintf("Error: %v", err), commands.LevelWarning, 5*time.Second)
	}

	level := commands.LevelSuccess
	switch res.Outcome {
	case schedule.OutcomeRejected:
		level = commands.LevelWarning
	case schedule.OutcomeNoop:
		level = commands.LevelInfo
	}
	if res.Outcome.Committed() {
		m.dirty = true
	}
	m.focus(drag.Code)
	m.ensureCursorVisible()
	return m.status(res.Describe(drag.Code), level, commands.StatusDuration)
}

// save writes the layout synchronously; the board is not safe to share with
// a background command.
func (m Model) save() (tea.Model, tea.Cmd) {
	if err := m.board.Save(m.ctx); err != nil {
		m.logger.Error("save failed", zap.Error(err))
		return m.status(fmt.Sprintf("Error: %v", err), commands.LevelWarning, 5*time.Second)
	}
	m.dirty = false
	return m.status("saved "+pluralize(len(m.board.Columns()), "column"), commands.LevelSuccess, commands.StatusDuration)
}

func (m Model) switchDay(delta int) (tea.Model, tea.Cmd) {
	if m.repo == nil {
		return m, nil
	}
	day, ok := m.adjacentDay(delta)
	if !ok {
		return m, nil
	}
	if m.dirty {
		return m.status("unsaved changes: press s to save first", commands.LevelWarning, commands.StatusDuration)
	}
	return m, commands.OpenDay(m.ctx, m.repo, day, m.logger)
}
