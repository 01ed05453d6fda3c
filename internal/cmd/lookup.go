package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/zhong/internal/errors"
	"github.com/Iron-Ham/zhong/internal/lexicon"
)

func newLookupCmd() *cobra.Command {
	var english bool

	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Show dictionary definitions of a word",
		Long: `Show the dictionary definitions of a Chinese word in the selected character
set. With --english, find the words with a definition containing the given
English word; definitions with fewer glosses are listed first.

Examples:
  zhong lookup 門口
  zhong lookup --english door`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], english)
		},
	}

	cmd.Flags().BoolVarP(&english, "english", "e", false, "search English definitions")
	return cmd
}

func runLookup(cmd *cobra.Command, query string, english bool) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	dict, err := rt.loadDictionary()
	if err != nil {
		return err
	}

	var entries []lexicon.Entry
	if english {
		entries = dict.FindEnglish(query)
	} else {
		entries = dict.Find(query, rt.charset)
	}
	if len(entries) == 0 {
		return errors.NewNotFoundError("dictionary entry", query)
	}

	return writeOutput(cmd.OutOrStdout(), rt.cfg.Output.Format, entries, func(w io.Writer) error {
		for i, e := range entries {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printEntry(w, e)
		}
		return nil
	})
}

func printEntry(w io.Writer, e lexicon.Entry) {
	headword := e.Traditional
	if e.Simplified != e.Traditional {
		headword += " " + e.Simplified
	}
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render(headword), mutedStyle.Render("["+e.Pinyin+"]"))
	for i, gloss := range e.English {
		fmt.Fprintf(w, "  %d. %s\n", i+1, gloss)
	}
	if len(e.TraditionalMeasureWords) > 0 {
		fmt.Fprintf(w, "  %s %s\n", mutedStyle.Render("measure words:"), strings.Join(e.TraditionalMeasureWords, ", "))
	}
}
