package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/zhong/internal/decomp"
	"github.com/Iron-Ham/zhong/internal/decompose"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Print the full decomposition tree of a character or group",
		Long: `Print the full decomposition tree of a character or group id.

Text output indents each level and ends with the direct components, as
printed by 'zhong decompose'. JSON and YAML output contain the tree only.

Examples:
  zhong resolve 車
  zhong resolve --format yaml 轟`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	table, err := rt.loadTable("")
	if err != nil {
		return err
	}

	d := decompose.New(table, nil,
		decompose.WithMaxDepth(rt.cfg.Resolve.MaxDepth),
		decompose.WithNormalization(rt.cfg.Segment.NormalizeInput),
		decompose.WithLogger(rt.logger),
	)
	tree, err := d.Resolve(args[0])
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), rt.cfg.Output.Format, tree, func(w io.Writer) error {
		printTree(w, tree, 0)
		components := decomp.Flatten(tree)
		if len(components) == 0 {
			_, err := fmt.Fprintln(w, mutedStyle.Render("no components"))
			return err
		}
		_, err := fmt.Fprintf(w, "%s %s\n", titleStyle.Render("components:"), strings.Join(components, " "))
		return err
	})
}

func printTree(w io.Writer, tree *decomp.Tree, depth int) {
	detail := tree.Kind.String()
	if len(tree.Children) > 0 {
		detail += ", " + tree.RelationKind.String()
	}
	if tree.Line > 0 {
		detail += fmt.Sprintf(", line %d", tree.Line)
	}

	fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), idStyle.Render(tree.ID), mutedStyle.Render("("+detail+")"))
	for _, child := range tree.Children {
		printTree(w, child, depth+1)
	}
}
