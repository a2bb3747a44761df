// Package ui is the retained-mode layer on top of the layout engine:
// widgets report what changed since the last frame, and a Window decides
// per frame whether to relayout or only repaint.
package ui

import "boxwright/pkg/dom"

// Invalidation is how much work a change requires. The levels are
// ordered: a layout implies a redraw.
type Invalidation int

const (
	None Invalidation = iota
	Draw
	Layout
)

func (i Invalidation) String() string {
	switch i {
	case None:
		return "none"
	case Draw:
		return "draw"
	case Layout:
		return "layout"
	}
	return "invalid"
}

// Merge returns the stronger of i and o.
func (i Invalidation) Merge(o Invalidation) Invalidation {
	if o > i {
		return o
	}
	return i
}

// Invalidator accumulates pending invalidations. Embed it in a widget to
// get TakeInvalidation.
type Invalidator struct {
	pending Invalidation
}

// Invalidate raises the pending level to at least level. It never lowers
// it.
func (v *Invalidator) Invalidate(level Invalidation) {
	v.pending = v.pending.Merge(level)
}

// TakeInvalidation returns the pending level and resets it to None.
func (v *Invalidator) TakeInvalidation() Invalidation {
	p := v.pending
	v.pending = None
	return p
}

// TakeTree collects the pending invalidation of n and everything below
// it, clearing it as it goes. A structural or attribute change on an
// element counts as Layout. Every descendant is visited even once Layout
// is reached, so nothing stale is left for the next frame.
func TakeTree(n *dom.Node) Invalidation {
	inv := None
	if n.TakeChanged() {
		inv = Layout
	}
	if w, ok := n.Widget.(Widget); ok && n.Type == dom.WidgetNode {
		inv = inv.Merge(w.TakeInvalidation())
	}
	for c := range n.Children() {
		inv = inv.Merge(TakeTree(c))
	}
	return inv
}
