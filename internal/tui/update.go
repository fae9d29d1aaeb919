package tui

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-20)
		m.ensureCursorVisible()
		return m, nil

	case commands.BoardLoadedMsg:
		m.board = msg.Board
		m.mode = ModeNormal
		m.dirty = false
		m.cursor = Position{}
		m.colOffset, m.scrollOffset = 0, 0
		m.ensureCursorVisible()
		if n := len(m.board.Skipped()); n > 0 {
			return m.status(pluralize(n, "roster row")+" skipped", commands.LevelWarning, commands.StatusDuration)
		}
		return m, nil

	case commands.DaysLoadedMsg:
		days := slices.Clone(msg.Days)
		slices.SortFunc(days, dayutil.Compare)
		m.days = days
		return m, nil

	case commands.CopiedMsg:
		return m.status("copied "+pluralize(msg.Columns, "column")+" to clipboard", commands.LevelSuccess, commands.StatusDuration)

	case commands.ErrMsg:
		m.logger.Error("command failed", zap.Error(msg.Err))
		return m.status(fmt.Sprintf("Error: %v", msg.Err), commands.LevelWarning, 5*time.Second)

	case commands.StatusMsg:
		return m.status(msg.Text, msg.Level, commands.StatusDuration)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModeLabel {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}
