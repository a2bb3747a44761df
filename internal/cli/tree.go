package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"boxwright/pkg/geom"
	"boxwright/pkg/layout"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleTag    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleText   = lipgloss.NewStyle().Foreground(colorGray)
	styleAnon   = lipgloss.NewStyle().Italic(true).Foreground(colorDim)
	styleRect   = lipgloss.NewStyle().Foreground(colorDim)
	styleGuides = lipgloss.NewStyle().Foreground(colorDim)
)

type treeOpts struct {
	viewport viewportFlags
	boxes    bool
}

func newTreeCmd() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree <scene>",
		Short: "Print the paint tree of a laid out scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.boxes, "boxes", false, "print border and content boxes as well as the margin box")
	opts.viewport.register(cmd)
	return cmd
}

func runTree(ctx context.Context, out io.Writer, path string, opts treeOpts) error {
	cfg := configFromContext(ctx)
	sc, err := loadScene(ctx, path, cfg)
	if err != nil {
		return err
	}
	root, err := sc.engine.Layout(sc.doc.Root, viewportRect(opts.viewport.size(cfg)))
	if err != nil {
		return fmt.Errorf("layout %s: %w", path, err)
	}
	printTree(out, root, opts.boxes)
	return nil
}

func printTree(out io.Writer, root *layout.PaintNode, boxes bool) {
	root.Walk(func(n *layout.PaintNode, depth int) {
		indent := styleGuides.Render(strings.Repeat("│ ", depth))
		fmt.Fprintf(out, "%s%s %s\n", indent, labelStyle(n).Render(n.Label()), styleRect.Render(formatRect(n.MarginBox)))
		if boxes {
			pad := styleGuides.Render(strings.Repeat("│ ", depth+1))
			fmt.Fprintf(out, "%s%s\n", pad, styleRect.Render("border "+formatRect(n.BorderBox)))
			fmt.Fprintf(out, "%s%s\n", pad, styleRect.Render("content "+formatRect(n.ContentBox)))
		}
	})
}

func labelStyle(n *layout.PaintNode) lipgloss.Style {
	switch {
	case n.Node == nil:
		return styleAnon
	case strings.HasPrefix(n.Label(), "text"):
		return styleText
	}
	return styleTag
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("(%g,%g %g×%g)", r.X, r.Y, r.Width, r.Height)
}
