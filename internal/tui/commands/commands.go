// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/schedule"
)

// StatusDuration is how long a status message stays visible.
const StatusDuration = 3 * time.Second

// Level classifies a status message for styling.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
)

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Text  string
	Level Level
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// CopiedMsg is sent when the layout text reached the clipboard.
type CopiedMsg struct {
	Columns int
}

// BoardLoadedMsg is sent when another day's board has been opened.
type BoardLoadedMsg struct {
	Board *schedule.Board
}

// DaysLoadedMsg carries the stored day keys.
type DaysLoadedMsg struct {
	Days []string
}

// Status returns a command that shows text on the status line.
func Status(text string, level Level) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Level: level}
	}
}

// ClearStatusAfter clears the status line once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Copy writes a layout's text form with write, typically the system clipboard.
func Copy(write func(string) error, layout schedule.Layout) tea.Cmd {
	return func() tea.Msg {
		if err := write(layout.Text()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying layout: %w", err)}
		}
		return CopiedMsg{Columns: len(layout.Codes)}
	}
}

// ListDays loads the stored day keys.
func ListDays(ctx context.Context, repo schedule.Repository) tea.Cmd {
	return func() tea.Msg {
		days, err := repo.ListDays(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("listing days: %w", err)}
		}
		return DaysLoadedMsg{Days: days}
	}
}

// OpenDay opens the board for day.
func OpenDay(ctx context.Context, repo schedule.Repository, day string, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		board, err := schedule.Open(ctx, repo, day, schedule.WithLogger(logger))
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("opening %s: %w", day, err)}
		}
		return BoardLoadedMsg{Board: board}
	}
}
