package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label N [NAME]",
		Short: "Name the instructor of a column",
		Long: `Set the instructor label of column N (1-based) and save.
Omit NAME to clear the label.

Example:
  deckhand label 2 "Ana Lopez"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid column %q", args[0])
			}
			name := ""
			if len(args) == 2 {
				name = strings.TrimSpace(args[1])
			}

			board, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			if err := board.SetInstructor(n-1, name); err != nil {
				return err
			}
			if err := board.Save(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if name == "" {
				fmt.Fprintf(out, "cleared label of column %d\n", n)
				return nil
			}
			fmt.Fprintf(out, "column %d is %s\n", n, formatCode(name))
			return nil
		},
	}
}
