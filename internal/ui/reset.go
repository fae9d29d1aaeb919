package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/deckhand/internal/dayutil"
)

func (a *App) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved layout of a day",
		Long: `Delete the saved layout so the next open packs the courses from scratch.
Instructor labels are discarded with it. Roster rows are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.resolveDay()
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteLayout(cmd.Context(), day); err != nil {
				return fmt.Errorf("deleting layout: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s layout reset\n", dayutil.Name(day))
			return nil
		},
	}
}
