package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/deckhand/internal/config"
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/db"
	"github.com/javiermolinar/deckhand/internal/schedule"
	"github.com/javiermolinar/deckhand/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool   // Enable debug logging
	day    string // --day flag, empty means the configured day
	now    func() time.Time
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "deckhand",
		Short: "Arrange a day's courses into instructor columns",
		Long: `Deckhand packs a day's courses into columns so that no instructor
teaches two overlapping courses, lets you move courses between columns,
and saves the arrangement.

Running deckhand without a subcommand opens the board for --day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.resolveDay()
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.repo, a.config, day, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to file)")
	a.root.PersistentFlags().StringVarP(&a.day, "day", "d", "", `Day key or name, "today" or "tomorrow" (default from config)`)

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.labelCmd())
	a.root.AddCommand(a.resetCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.daysCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deckhand %s (commit: %s)\n", Version, Commit)
		},
	}
}

// resolveDay returns the day key from --day, or the configured day.
func (a *App) resolveDay() (string, error) {
	if a.day == "" {
		return a.config.Board.Day, nil
	}
	day, err := dayutil.Resolve(a.day, a.now())
	if err != nil {
		return "", fmt.Errorf("invalid --day %q: %w", a.day, err)
	}
	return day, nil
}

func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// openBoard opens the board for the resolved day.
func (a *App) openBoard(ctx context.Context) (*schedule.Board, error) {
	day, err := a.resolveDay()
	if err != nil {
		return nil, err
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	board, err := schedule.Open(ctx, a.repo, day)
	if err != nil {
		return nil, fmt.Errorf("opening board: %w", err)
	}
	return board, nil
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
