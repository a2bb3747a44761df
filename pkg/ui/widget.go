package ui

import (
	"fmt"

	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/paint"
)

// EventKind identifies an input event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerUp
	PointerMove
	Key
	Quit
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointerMove:
		return "pointer-move"
	case Key:
		return "key"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is an input event. For pointer events Pos is in window
// coordinates when passed to Window.Dispatch and in the receiving
// widget's local coordinates when delivered; Size is then the widget's
// assigned content size.
type Event struct {
	Kind EventKind
	Pos  geom.Point
	Size geom.Size
	Key  string
}

// Widget is a leaf the layout engine sizes and the window routes events
// to.
type Widget interface {
	dom.Widget
	// Event handles e and reports whether it was consumed.
	Event(e Event) bool
	// TakeInvalidation returns what changed since the last call and
	// clears it.
	TakeInvalidation() Invalidation
}

// Cached memoizes a widget's width and per-width heights until the widget
// reports a Layout invalidation.
type Cached struct {
	Inner Widget

	width    float64
	hasWidth bool
	heights  map[float64]float64
}

func NewCached(w Widget) *Cached {
	return &Cached{Inner: w, heights: make(map[float64]float64)}
}

func (c *Cached) Width() float64 {
	if !c.hasWidth {
		c.width, c.hasWidth = c.Inner.Width(), true
	}
	return c.width
}

func (c *Cached) Height(width float64) float64 {
	if h, ok := c.heights[width]; ok {
		return h
	}
	h := c.Inner.Height(width)
	c.heights[width] = h
	return h
}

// Place forwards the assigned size to the inner widget.
func (c *Cached) Place(size geom.Size) {
	if p, ok := c.Inner.(dom.Placer); ok {
		p.Place(size)
	}
}

func (c *Cached) Draw(s paint.Surface) { c.Inner.Draw(s) }
func (c *Cached) Event(e Event) bool   { return c.Inner.Event(e) }
func (c *Cached) TakeInvalidation() Invalidation {
	inv := c.Inner.TakeInvalidation()
	if inv == Layout {
		c.hasWidth = false
		clear(c.heights)
	}
	return inv
}
