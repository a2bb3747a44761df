package layout

import (
	"fmt"
	"strings"

	"boxwright/pkg/css"
	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/paint"
)

// Painter draws the content of one box into its content rectangle.
type Painter interface {
	Paint(s paint.Surface, content geom.Rect)
}

// PaintNode is one laid-out box. The four rectangles nest: the margin box
// contains the border box, which contains the padding box, which contains
// the content box.
type PaintNode struct {
	MarginBox  geom.Rect
	BorderBox  geom.Rect
	PaddingBox geom.Rect
	ContentBox geom.Rect

	Style *css.Style
	// Node is the element the box was generated for, nil for anonymous
	// boxes and line fragments.
	Node *dom.Node
	// Painter draws the box content, nil for boxes with nothing of their own.
	Painter Painter
	// Info is the formatting info the box was laid out under.
	Info css.FormattingInfo

	Children []*PaintNode
}

// boxes holds the resolved edges of a box.
type boxes struct {
	margin, border, padding geom.Sides
}

func resolveBoxes(s *css.Style, info css.FormattingInfo) boxes {
	return boxes{
		margin:  s.ResolveMargin(info),
		border:  s.ResolveBorder(info),
		padding: s.ResolvePadding(info),
	}
}

func (b boxes) bounding() geom.Sides {
	return b.margin.Add(b.border).Add(b.padding)
}

// newPaintNode builds the box rectangles outward from content.
func newPaintNode(content geom.Rect, b boxes) *PaintNode {
	padding := content.Expand(b.padding)
	border := padding.Expand(b.border)
	return &PaintNode{
		ContentBox: content,
		PaddingBox: padding,
		BorderBox:  border,
		MarginBox:  border.Expand(b.margin),
	}
}

// setContentHeight resizes the box vertically, keeping its top edge.
func (pn *PaintNode) setContentHeight(h float64) {
	d := h - pn.ContentBox.Height
	pn.ContentBox.Height = h
	pn.PaddingBox.Height += d
	pn.BorderBox.Height += d
	pn.MarginBox.Height += d
}

// Walk visits pn and its descendants depth first.
func (pn *PaintNode) Walk(fn func(n *PaintNode, depth int)) {
	var visit func(n *PaintNode, depth int)
	visit = func(n *PaintNode, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(pn, 0)
}

// HitTest returns the deepest box whose border box contains p, or nil.
// Later siblings are on top.
func (pn *PaintNode) HitTest(p geom.Point) *PaintNode {
	for i := len(pn.Children) - 1; i >= 0; i-- {
		if hit := pn.Children[i].HitTest(p); hit != nil {
			return hit
		}
	}
	if pn.BorderBox.Contains(p) {
		return pn
	}
	return nil
}

// Label names the box for debugging output.
func (pn *PaintNode) Label() string {
	switch {
	case pn.Node == nil:
		return "anonymous"
	case pn.Node.Type == dom.TextNode:
		if f, ok := pn.Painter.(*TextFragment); ok {
			return "text " + quoteTrunc(f.Text, 24)
		}
		return "text"
	}
	return pn.Node.TagName
}

func (pn *PaintNode) String() string {
	var sb strings.Builder
	pn.Walk(func(n *PaintNode, depth int) {
		fmt.Fprintf(&sb, "%s%s %v\n", strings.Repeat("  ", depth), n.Label(), n.MarginBox)
	})
	return sb.String()
}

// TextFragment is the content of one line of text. A non-transparent
// Background fills the fragment first.
type TextFragment struct {
	Text       string
	Size       float64
	Color      css.Color
	Background css.Color
}

func (f *TextFragment) Paint(s paint.Surface, content geom.Rect) {
	if !f.Background.Transparent() {
		s.FillRect(content, f.Background)
	}
	s.DrawText(f.Text, content.X, content.Y, f.Size, f.Color)
}

// WidgetPainter draws a widget translated and clipped to its content box.
type WidgetPainter struct {
	Widget dom.Widget
}

func (w WidgetPainter) Paint(s paint.Surface, content geom.Rect) {
	if p, ok := w.Widget.(dom.Placer); ok {
		p.Place(content.Size())
	}
	s.Translate(content.X, content.Y)
	s.Clip(geom.Rect{Width: content.Width, Height: content.Height})
	w.Widget.Draw(s)
	s.Reset()
}
