package ui

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/deckhand/internal/dayutil"
)

func (a *App) daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List days with stored rows or layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			days, err := a.repo.ListDays(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing days: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(days) == 0 {
				fmt.Fprintln(out, formatMuted("no days stored"))
				return nil
			}
			slices.SortFunc(days, dayutil.Compare)
			for _, day := range days {
				fmt.Fprintf(out, "%-8s %s\n", day, formatMuted(dayutil.Name(day)))
			}
			return nil
		},
	}
}
