package ui

import (
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/layout"
	"boxwright/pkg/paint"
	"boxwright/pkg/render"
)

// Window owns a document and drives it one frame at a time: relayout
// when something reported Layout, then draw.
type Window struct {
	doc      *dom.Document
	engine   *layout.Engine
	viewport geom.Rect
	bg       color.Color
	logger   *log.Logger

	root  *layout.PaintNode
	rects map[*dom.Node]geom.Rect
	stale bool

	capture *dom.Node
	focus   *dom.Node
	closed  bool

	// Layouts counts the layout passes run so far.
	Layouts int
}

type WindowOption func(*Window)

func WithLogger(l *log.Logger) WindowOption {
	return func(w *Window) { w.logger = l }
}

// WithBackground sets the colour the window is cleared to each frame.
func WithBackground(c color.Color) WindowOption {
	return func(w *Window) { w.bg = c }
}

func NewWindow(doc *dom.Document, engine *layout.Engine, viewport geom.Rect, opts ...WindowOption) *Window {
	w := &Window{
		doc:      doc,
		engine:   engine,
		viewport: viewport,
		bg:       color.White,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		stale:    true,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *Window) Document() *dom.Document { return w.doc }

// PaintTree returns the paint tree of the last successful layout.
func (w *Window) PaintTree() *layout.PaintNode { return w.root }

func (w *Window) Closed() bool { return w.closed }

// Focus returns the node keyboard events go to, or nil.
func (w *Window) Focus() *dom.Node { return w.focus }

// Resize changes the viewport. The next frame relayouts.
func (w *Window) Resize(viewport geom.Rect) {
	if viewport != w.viewport {
		w.viewport = viewport
		w.stale = true
	}
}

// Frame runs one frame: it collects invalidations from the whole tree,
// relayouts if any of them is Layout, and draws onto s. A layout error
// drops the frame; the previous paint tree is kept for hit testing.
func (w *Window) Frame(s paint.Surface) error {
	inv := TakeTree(w.doc.Root)
	if w.stale || inv == Layout {
		pn, err := w.engine.Layout(w.doc.Root, w.viewport)
		if err != nil {
			w.logger.Warn("frame dropped", "err", err)
			return err
		}
		w.root = pn
		w.stale = false
		w.Layouts++
		w.collectRects()
		w.logger.Debug("relayout", "invalidation", inv, "widgets", len(w.rects))
	}
	s.Reset()
	s.FillRect(w.viewport, w.bg)
	render.NewRenderer(s, render.WithLogger(w.logger)).Render(w.root)
	return nil
}

// collectRects records where every widget was placed.
func (w *Window) collectRects() {
	w.rects = make(map[*dom.Node]geom.Rect)
	w.root.Walk(func(pn *layout.PaintNode, _ int) {
		if pn.Node != nil && pn.Node.Type == dom.WidgetNode {
			w.rects[pn.Node] = pn.ContentBox
		}
	})
	if _, ok := w.rects[w.capture]; !ok {
		w.capture = nil
	}
	if _, ok := w.rects[w.focus]; !ok {
		w.focus = nil
	}
}

// Dispatch routes e to a widget and reports whether one consumed it.
//
// Pointer events go to the widget under the pointer, except that between
// a PointerDown and the next PointerUp they all go to the widget that
// received the PointerDown. A PointerDown also moves keyboard focus. Key
// events go to the focused widget. Quit closes the window.
func (w *Window) Dispatch(e Event) bool {
	switch e.Kind {
	case Quit:
		w.closed = true
		return true
	case Key:
		if w.focus == nil {
			return false
		}
		return w.deliver(w.focus, e)
	}

	target := w.capture
	if target == nil {
		target = w.widgetAt(e.Pos)
	}
	if target == nil {
		return false
	}
	switch e.Kind {
	case PointerDown:
		w.capture, w.focus = target, target
	case PointerUp:
		w.capture = nil
	}
	return w.deliver(target, e)
}

func (w *Window) widgetAt(p geom.Point) *dom.Node {
	if w.root == nil {
		return nil
	}
	hit := w.root.HitTest(p)
	if hit == nil || hit.Node == nil || hit.Node.Type != dom.WidgetNode {
		return nil
	}
	return hit.Node
}

// deliver hands e to n's widget in n's local coordinates.
func (w *Window) deliver(n *dom.Node, e Event) bool {
	wd, ok := n.Widget.(Widget)
	if !ok {
		return false
	}
	r := w.rects[n]
	e.Pos = geom.Point{X: e.Pos.X - r.X, Y: e.Pos.Y - r.Y}
	e.Size = r.Size()
	handled := wd.Event(e)
	w.logger.Debug("event", "kind", e.Kind, "target", n.TagName, "handled", handled)
	return handled
}
