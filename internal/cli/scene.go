package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"boxwright/pkg/config"
	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/images"
	"boxwright/pkg/layout"
	"boxwright/pkg/script"
	"boxwright/pkg/text"
	"boxwright/pkg/ui"
)

// scene is a parsed document ready for layout, with the collaborators
// that were used to build it.
type scene struct {
	doc    *dom.Document
	engine *layout.Engine
	faces  *text.Faces
	images *images.Cache
}

// loadScene parses the scene file at path, runs its scripts and builds a
// layout engine that measures with the configured font. Relative image
// sources resolve against the scene's directory.
func loadScene(ctx context.Context, path string, cfg *config.Config) (*scene, error) {
	logger := loggerFromContext(ctx)

	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	faces, err := text.NewFaces(cfg.Text.FontPath)
	if err != nil {
		return nil, err
	}

	theme := ui.Theme{
		Measurer:   faces,
		FontSize:   cfg.Text.FontSize,
		LineHeight: cfg.Text.LineHeight,
		Text:       ui.DefaultTheme().Text,
	}
	cache := images.NewCache(filepath.Dir(path))
	doc, err := dom.ParseWith(string(markup), dom.ParseOptions{
		Widgets: ui.DefaultWidgets(theme, cache.Load),
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(doc.Scripts) > 0 {
		logger.Debug("running scripts", "count", len(doc.Scripts))
		if err := script.New(script.WithLogger(logger)).Execute(doc); err != nil {
			return nil, err
		}
	}

	engine := layout.New(
		layout.WithMeasurer(faces),
		layout.WithLineHeight(cfg.Text.LineHeight),
		layout.WithFontSize(cfg.Text.FontSize),
		layout.WithLogger(logger),
	)
	return &scene{doc: doc, engine: engine, faces: faces, images: cache}, nil
}

// viewportFlags are the --width and --height flags shared by commands
// that lay out a scene. Zero means the configured size.
type viewportFlags struct {
	width, height int
}

func (v *viewportFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&v.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().IntVar(&v.height, "height", 0, "viewport height (default from config)")
}

func (v viewportFlags) size(cfg *config.Config) (int, int) {
	w, h := cfg.Viewport.Width, cfg.Viewport.Height
	if v.width > 0 {
		w = v.width
	}
	if v.height > 0 {
		h = v.height
	}
	return w, h
}

func viewportRect(w, h int) geom.Rect {
	return geom.Rect{Width: float64(w), Height: float64(h)}
}
