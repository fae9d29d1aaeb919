package ui

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/roster"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace stored roster rows from a CSV export",
		Long: `Read a roster CSV and replace the stored rows of every day it covers.

Lines without a day column go to --day (default from config). With an
explicit --day, only that day is replaced and other days in the file are
ignored. Saved layouts are kept; codes that disappear are dropped when the
board is next opened.

Example:
  deckhand import attendance.csv --day Tu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, args[0])
		},
	}
}

func (a *App) runImport(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening roster: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := roster.Read(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fallback, err := a.resolveDay()
	if err != nil {
		return err
	}
	byDay, err := roster.ByDay(res.Records, fallback)
	if err != nil {
		return err
	}
	if a.day != "" {
		byDay = map[string][]course.Row{fallback: byDay[fallback]}
	}

	if err := a.ensureRepo(); err != nil {
		return err
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.SortFunc(days, dayutil.Compare)

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	for _, day := range days {
		rows := byDay[day]
		if err := a.repo.ReplaceRows(ctx, day, rows); err != nil {
			return fmt.Errorf("storing %s: %w", dayutil.Name(day), err)
		}
		built := course.Build(rows)
		fmt.Fprintf(out, "%s: %s from %s\n",
			formatHeader(dayutil.Name(day)),
			formatSuccess(pluralize(len(built.Courses), "course")),
			pluralize(len(rows), "row"))
		if n := len(built.Skipped); n > 0 {
			fmt.Fprintf(out, "  %s\n", formatWarning(pluralize(n, "row")+" skipped"))
		}
	}

	if res.Skipped > 0 {
		fmt.Fprintln(out, formatWarning(fmt.Sprintf("skipped %s without a code or student", pluralize(res.Skipped, "line"))))
	}
	if len(days) == 0 {
		fmt.Fprintln(out, formatMuted("no rows imported"))
	}
	return nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
