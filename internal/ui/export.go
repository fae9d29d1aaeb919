package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/deckhand/internal/schedule"
)

// exportRecord is the layout of one day as written by export.
type exportRecord struct {
	Day         string                `json:"day" yaml:"day" toml:"day"`
	Layout      schedule.Layout       `json:"layout" yaml:"layout" toml:"layout"`
	Assignments []schedule.Assignment `json:"assignments" yaml:"assignments" toml:"assignments"`
}

var exportFormats = []string{"json", "yaml", "toml"}

func (a *App) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the day's layout as JSON, YAML or TOML",
		Long: `Print the current arrangement of a day: the layout record as it is
saved, plus the courses of every labelled column.

Examples:
  deckhand export --day Mo
  deckhand export --day Mo --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			rec := exportRecord{
				Day:         board.Day(),
				Layout:      board.Layout(),
				Assignments: board.Assignments(),
			}
			if rec.Assignments == nil {
				rec.Assignments = []schedule.Assignment{}
			}
			return writeExport(cmd.OutOrStdout(), rec, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml, toml)")
	return cmd
}

func writeExport(out io.Writer, rec exportRecord, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(out).Encode(rec)
	default:
		return fmt.Errorf("unknown format %q, want one of %v", format, exportFormats)
	}
}
