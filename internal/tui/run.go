package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/config"
	"github.com/javiermolinar/deckhand/internal/logging"
	"github.com/javiermolinar/deckhand/internal/schedule"
	"github.com/javiermolinar/deckhand/internal/tui/theme"
)

// Run opens the board for day and runs the TUI until the user quits.
// With debug set, keys and drop decisions are logged to a file.
func Run(ctx context.Context, repo schedule.Repository, cfg *config.Config, day string, debug bool) error {
	logger, err := logging.ForTUI(cfg.Log, debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return err
	}

	board, err := schedule.Open(ctx, repo, day, schedule.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening board: %w", err)
	}
	logger.Info("starting TUI", zap.String("day", day), zap.String("theme", t.Name))

	m := New(ctx, board,
		WithLogger(logger),
		WithTheme(t),
		WithRepository(repo),
	)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
