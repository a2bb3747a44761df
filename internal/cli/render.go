package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"boxwright/pkg/paint"
	"boxwright/pkg/render"
)

type renderOpts struct {
	output   string
	viewport viewportFlags
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Lay out a scene and write it as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (default: scene name with .png)")
	opts.viewport.register(cmd)
	return cmd
}

func runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	prog := newProgress(logger)

	sc, err := loadScene(ctx, path, cfg)
	if err != nil {
		return err
	}
	w, h := opts.viewport.size(cfg)
	root, err := sc.engine.Layout(sc.doc.Root, viewportRect(w, h))
	if err != nil {
		return fmt.Errorf("layout %s: %w", path, err)
	}

	surface := paint.NewGG(w, h, sc.faces)
	surface.Clear(cfg.Background())
	render.NewRenderer(surface, render.WithLogger(logger)).Render(root)

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, ".html") + ".png"
	}
	if err := surface.SavePNG(out); err != nil {
		return fmt.Errorf("saving %s: %w", out, err)
	}
	prog.done("rendered", "scene", path, "output", out, "size", fmt.Sprintf("%dx%d", w, h))
	return nil
}
