package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newDecomposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompose <text>",
		Short: "Decompose a character, or split text into words",
		Long: `Decompose a single character into its direct structural components, or
split longer text into dictionary words.

A single character is resolved through the decomposition table and reduced
to its direct components; anonymous groups are expanded. Longer text is
segmented into words. When the whole input is one word, its characters are
printed instead.

Examples:
  zhong decompose 好
  zhong decompose 門口好像
  zhong decompose --charset simplified --format json 门口`,
		Args: cobra.ExactArgs(1),
		RunE: runDecompose,
	}
}

func runDecompose(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	d, err := rt.newDecomposer(args[0])
	if err != nil {
		return err
	}

	parts, err := d.Decompose(args[0], rt.charset)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), rt.cfg.Output.Format, parts, func(w io.Writer) error {
		if len(parts) == 0 {
			_, err := fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(fmt.Sprintf("%s has no components", args[0])))
			return err
		}
		return writeLines(parts)(w)
	})
}
