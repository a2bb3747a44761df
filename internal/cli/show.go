package cli

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"boxwright/pkg/geom"
	"boxwright/pkg/paint"
	"boxwright/pkg/ui"
)

type showOpts struct {
	viewport viewportFlags
	interval time.Duration
}

func newShowCmd() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show <scene>",
		Short: "Open a scene in an interactive window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), args[0], opts)
		},
	}

	opts.viewport.register(cmd)
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "frame interval (default from config)")
	return cmd
}

func runShow(ctx context.Context, path string, opts showOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	sc, err := loadScene(ctx, path, cfg)
	if err != nil {
		return err
	}
	width, height := opts.viewport.size(cfg)
	interval := cfg.Frame.Interval.Duration
	if opts.interval > 0 {
		interval = opts.interval
	}

	win := ui.NewWindow(sc.doc, sc.engine, viewportRect(width, height),
		ui.WithLogger(logger),
		ui.WithBackground(cfg.Background()),
	)

	target := image.NewRGBA(image.Rect(0, 0, width, height))
	surface := paint.NewGGForRGBA(target, sc.faces)

	a := app.New()
	w := a.NewWindow(fmt.Sprintf("boxwright: %s", filepath.Base(path)))

	img := canvas.NewImageFromImage(target)
	img.FillMode = canvas.ImageFillStretch
	img.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	view := newSceneView(img, func(e ui.Event) { win.Dispatch(e) })
	w.SetContent(view)
	w.Resize(fyne.NewSize(float32(width), float32(height)))

	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyEscape {
			w.Close()
			return
		}
		win.Dispatch(ui.Event{Kind: ui.Key, Key: string(k.Name)})
	})

	done := make(chan struct{})
	w.SetOnClosed(func() {
		win.Dispatch(ui.Event{Kind: ui.Quit})
		close(done)
	})

	frame := func() {
		if win.Closed() {
			return
		}
		// a dropped frame keeps the last image on screen
		if err := win.Frame(surface); err == nil {
			img.Refresh()
		}
	}
	frame()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				fyne.Do(w.Close)
				return
			case <-ticker.C:
				fyne.Do(frame)
			}
		}
	}()

	logger.Debug("showing", "scene", path, "interval", interval)
	w.ShowAndRun()
	logger.Info("closed", "layouts", win.Layouts)
	return nil
}

// sceneView shows the rendered scene and forwards mouse input to the
// window in scene coordinates.
type sceneView struct {
	widget.BaseWidget
	img    *canvas.Image
	events func(ui.Event)
}

func newSceneView(img *canvas.Image, events func(ui.Event)) *sceneView {
	v := &sceneView{img: img, events: events}
	v.ExtendBaseWidget(v)
	return v
}

func (v *sceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *sceneView) MouseDown(e *desktop.MouseEvent) {
	v.events(pointerEvent(ui.PointerDown, e.Position))
}

func (v *sceneView) MouseUp(e *desktop.MouseEvent) {
	v.events(pointerEvent(ui.PointerUp, e.Position))
}

func (v *sceneView) MouseIn(*desktop.MouseEvent) {}

func (v *sceneView) MouseMoved(e *desktop.MouseEvent) {
	v.events(pointerEvent(ui.PointerMove, e.Position))
}

func (v *sceneView) MouseOut() {}

func pointerEvent(kind ui.EventKind, p fyne.Position) ui.Event {
	return ui.Event{Kind: kind, Pos: geom.Point{X: float64(p.X), Y: float64(p.Y)}}
}
