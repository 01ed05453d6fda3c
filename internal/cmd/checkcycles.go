package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/zhong/internal/cycle"
)

// cycleReport is the json/yaml output of check-cycles.
type cycleReport struct {
	File    string   `json:"file" yaml:"file"`
	Records int      `json:"records" yaml:"records"`
	Dropped []int    `json:"dropped_lines,omitempty" yaml:"dropped_lines,omitempty"`
	Cycles  []string `json:"cycles" yaml:"cycles"`
	Order   []string `json:"order,omitempty" yaml:"order,omitempty"`
}

func newCheckCyclesCmd() *cobra.Command {
	var order bool

	cmd := &cobra.Command{
		Use:     "check-cycles [file]",
		Aliases: []string{"chkcycle"},
		Short:   "Report decomposition records that are part of a reference cycle",
		Long: `Check a decomposition file for records that refer back to themselves,
directly or through other records.

Without a file argument the configured data.decomposition_file is checked.

The exit code indicates the result:
  0 - No cycles
  1 - At least one record is in a cycle, or the file could not be loaded

Examples:
  zhong check-cycles
  zhong chkcycle --order decomposition.txt
  zhong check-cycles --format json decomposition.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runCheckCycles(cmd, path, order)
		},
	}

	cmd.Flags().BoolVar(&order, "order", false, "also print ids with components before the records built from them")
	return cmd
}

func runCheckCycles(cmd *cobra.Command, path string, withOrder bool) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if path == "" {
		path = rt.data.DecompositionFile
	}
	table, err := rt.loadTable(path)
	if err != nil {
		return err
	}

	messages, err := cycle.CheckAll(table)
	if err != nil {
		return err
	}

	report := cycleReport{
		File:    path,
		Records: table.Len(),
		Dropped: table.Dropped(),
		Cycles:  messages,
	}
	if withOrder && len(messages) == 0 {
		if report.Order, err = cycle.Order(table); err != nil {
			return err
		}
	}

	err = writeOutput(cmd.OutOrStdout(), rt.cfg.Output.Format, report, func(w io.Writer) error {
		return outputCycleReport(w, report)
	})
	if err != nil {
		return err
	}

	if len(messages) > 0 {
		return &silentError{reason: fmt.Sprintf("%d records in cycles", len(messages))}
	}
	return nil
}

func outputCycleReport(w io.Writer, report cycleReport) error {
	fmt.Fprintf(w, "Checking: %s\n", report.File)
	if len(report.Dropped) > 0 {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("Dropped %d malformed lines: %v", len(report.Dropped), report.Dropped)))
	}
	fmt.Fprintln(w)

	if len(report.Cycles) > 0 {
		for _, msg := range report.Cycles {
			fmt.Fprintln(w, errorStyle.Render(msg))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ %d of %d records are in a cycle", len(report.Cycles), report.Records)))
		return nil
	}

	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✓ No cycles in %d records", report.Records)))
	if len(report.Order) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Order:"))
		return writeLines(report.Order)(w)
	}
	return nil
}
