package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/deckhand/internal/schedule"
)

func (a *App) moveCmd() *cobra.Command {
	var from, to int
	var onto string
	cmd := &cobra.Command{
		Use:   "move CODE",
		Short: "Move a course to another column",
		Long: `Move a course from one column to another and save the result.

Columns are numbered from 1, as in the board headers. With --onto the
course is dropped onto that course instead of onto free space, which
allows replacing it when both run at the same time.

Examples:
  deckhand move C --from 2 --to 1
  deckhand move X --from 1 --to 2 --onto Y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			code := args[0]
			res, err := board.Move(code, from-1, to-1, onto)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			msg := res.Describe(code)
			switch {
			case res.Outcome == schedule.OutcomeRejected:
				fmt.Fprintln(out, formatWarning(msg))
				return nil
			case !res.Outcome.Committed():
				fmt.Fprintln(out, formatMuted(msg))
				return nil
			}

			if err := board.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, formatSuccess(msg))
			if len(res.Pruned) > 0 {
				fmt.Fprintln(out, formatMuted(fmt.Sprintf("removed empty %s", pluralize(len(res.Pruned), "column"))))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "Column the course is in (1-based)")
	cmd.Flags().IntVar(&to, "to", 0, "Column to move the course to (1-based)")
	cmd.Flags().StringVar(&onto, "onto", "", "Course in the target column to drop onto")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
