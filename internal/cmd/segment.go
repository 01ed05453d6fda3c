package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/zhong/internal/cjk"
)

func newSegmentCmd() *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:   "segment <text>",
		Short: "Split Chinese text into dictionary words",
		Long: `Split Chinese text into dictionary words, one per line.

Only CJK characters are segmented; punctuation, white space and other
scripts separate runs and are dropped. With --inline the input is printed
back unchanged except that the words of each run are separated by spaces.

Examples:
  zhong segment 門口好像有人
  zhong segment --inline "1. 所謂布施者，必獲其利益。"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSegment(cmd, args[0], inline)
		},
	}

	cmd.Flags().BoolVar(&inline, "inline", false, "keep the surrounding text and separate words with spaces")
	return cmd
}

func runSegment(cmd *cobra.Command, text string, inline bool) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	seg, err := rt.newSegmenter()
	if err != nil {
		return err
	}

	if !inline {
		words, err := seg.Segment(text, rt.charset)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), rt.cfg.Output.Format, words, writeLines(words))
	}

	pattern, runs := cjk.ExtractCJK(text)
	spaced := make([]any, len(runs))
	for i, run := range runs {
		words, err := seg.Segment(run, rt.charset)
		if err != nil {
			return err
		}
		spaced[i] = strings.Join(words, " ")
	}
	result := fmt.Sprintf(pattern, spaced...)

	return writeOutput(cmd.OutOrStdout(), rt.cfg.Output.Format, result, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, result)
		return err
	})
}
