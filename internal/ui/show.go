package ui

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/deckhand/internal/course"
	"github.com/javiermolinar/deckhand/internal/dayutil"
	"github.com/javiermolinar/deckhand/internal/schedule"
)

// showCellWidth fits "CODE 09:00-09:30" plus table borders.
const showCellWidth = 22

func (a *App) showCmd() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the day's columns as a table",
		Long: `Print the columns of a day, one table column per instructor column.

Wide boards are split into several tables to fit the terminal.

Example:
  deckhand show --day We`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			board, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), board, termWidth())
			return nil
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func printBoard(out io.Writer, board *schedule.Board, width int) {
	courses := board.Courses()
	fmt.Fprintln(out, formatHeader(dayutil.Name(board.Day())))

	if len(courses) == 0 {
		fmt.Fprintln(out, formatMuted("no courses, import a roster first"))
		return
	}

	start, end := course.Bounds(courses)
	source := "packed"
	if board.Restored() {
		source = "saved layout"
	}
	fmt.Fprintf(out, "%s %s-%s · %s · %s\n",
		formatMuted("span"),
		course.FormatClock(start), course.FormatClock(end),
		pluralize(len(courses), "course"),
		formatMuted(source))

	cols := board.Columns()
	labels := board.Instructors()
	perTable := max(1, (width-1)/showCellWidth)
	for first := 0; first < len(cols); first += perTable {
		last := min(first+perTable, len(cols))
		renderColumns(out, cols[first:last], labels[first:last], first)
	}

	fmt.Fprintf(out, "%s %s\n",
		formatSuccess(pluralize(len(cols), "column")),
		formatMuted(fmt.Sprintf("(max concurrent %d)", schedule.MaxConcurrent(courses))))
	if n := len(board.Skipped()); n > 0 {
		fmt.Fprintln(out, formatWarning(pluralize(n, "roster row")+" skipped"))
	}
}

// renderColumns writes one table whose i-th row holds the i-th course of
// every column. offset numbers unlabelled headers.
func renderColumns(out io.Writer, cols schedule.Columns, labels []string, offset int) {
	table := tablewriter.NewWriter(out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	header := make([]string, len(cols))
	depth := 0
	for i, col := range cols {
		header[i] = labels[i]
		if header[i] == "" {
			header[i] = fmt.Sprintf("#%d", offset+i+1)
		}
		depth = max(depth, len(col))
	}
	table.SetHeader(header)

	for r := 0; r < depth; r++ {
		row := make([]string, len(cols))
		for i, col := range cols {
			if r < len(col) {
				c := col[r]
				row[i] = fmt.Sprintf("%s %s-%s", c.Code, c.StartTime(), c.EndTime())
			}
		}
		table.Append(row)
	}
	table.Render()
}
