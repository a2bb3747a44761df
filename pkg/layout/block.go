package layout

import (
	"math"

	"boxwright/pkg/css"
	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/tree"
)

// blockFrame is a block-level box between resolving its width and knowing
// its content height.
type blockFrame struct {
	node  *LayoutNode
	style *css.Style
	info  css.FormattingInfo // the box's own: its containing block, its font size
	boxes boxes
	pn    *PaintNode

	height    float64
	hasHeight bool
}

// selfInfo returns the formatting info a box resolves its own values
// against: the containing block it was given and its own font size.
func selfInfo(n *LayoutNode, info css.FormattingInfo) css.FormattingInfo {
	if n.Element == nil || n.Element.Type == dom.TextNode {
		return info
	}
	info.FontSize = n.Element.Style.ResolveFontSize(info.FontSize)
	return info
}

// openBlock resolves a block-level box's edges and width and places its
// content box at the top of the containing block.
func (e *Engine) openBlock(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) *blockFrame {
	n := bt.Node(id)
	style := n.Style()
	info = selfInfo(n, info)
	b := resolveBoxes(style, info)
	bound := b.bounding()
	cb := info.ContainingBlock

	content := geom.Rect{
		X:     cb.X + bound.Left,
		Y:     cb.Y + bound.Top,
		Width: e.contentWidth(bt, id, style, info, bound),
	}
	bf := &blockFrame{node: n, style: style, info: info, boxes: b, pn: newPaintNode(content, b)}
	if h, ok := style.Height.Resolve(info); ok {
		bf.height, bf.hasHeight = style.HeightRange(info).Clamp(h), true
	}
	return bf
}

// contentWidth returns the width of the content box: the definite or
// fit-content width, else whatever the containing block leaves after the
// box's own margins, borders and paddings. min-width and max-width apply
// in both cases. A width distributed by a row flex container wins over
// all of them.
func (e *Engine) contentWidth(bt *BoxTree, id tree.NodeID, style *css.Style, info css.FormattingInfo, bound geom.Sides) float64 {
	if n := bt.Node(id); n.hasMainWidth {
		return math.Max(0, n.mainWidth-bound.Horizontal())
	}
	var w float64
	switch style.Width.Kind {
	case css.SizeLength:
		w, _ = style.Width.Resolve(info)
	case css.SizeFitContent:
		r := e.intrinsicContent(bt, id, info)
		w, _ = style.Width.ResolveFitContent(info, r.MinOr(0), r.MaxOr(0))
	default:
		w = info.ContainingBlock.Width - bound.Horizontal()
	}
	return math.Max(0, style.WidthRange(info).Clamp(w))
}

// childContainingBlock is the containing block of the box's first child.
// Percentage heights resolve against the box's height when it is definite
// and pass through from the box's own containing block otherwise.
func (bf *blockFrame) childContainingBlock() geom.Rect {
	content := bf.pn.ContentBox
	h := bf.info.ContainingBlock.Height
	if bf.hasHeight {
		h = bf.height
	}
	return geom.Rect{X: content.X, Y: content.Y, Width: content.Width, Height: h}
}

func (bf *blockFrame) childInfo(cb geom.Rect) css.FormattingInfo {
	return css.FormattingInfo{ContainingBlock: cb, FontSize: bf.info.FontSize}
}

// close sets the content height, the definite height winning over the
// height of the content, and fills in what the paint walk needs.
func (bf *blockFrame) close(contentHeight float64) *PaintNode {
	h := contentHeight
	if bf.hasHeight {
		h = bf.height
	}
	pn := bf.pn
	pn.setContentHeight(math.Max(0, bf.style.HeightRange(bf.info).Clamp(h)))
	pn.Style = bf.style
	pn.Info = bf.info
	if el := bf.node.Element; el != nil {
		pn.Node = el
		if el.Type == dom.WidgetNode {
			pn.Painter = WidgetPainter{Widget: el.Widget}
		}
	}
	return pn
}

// layoutBlock stacks the children of a block container top to bottom, each
// one's containing block starting below the margin box of the previous.
// Margins do not collapse.
func (e *Engine) layoutBlock(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) *PaintNode {
	n := bt.Node(id)
	if n.ChildrenAreInline {
		invariantf("block layout of %s, whose children are inline", n)
	}
	bf := e.openBlock(bt, id, info)

	if bt.ChildCount(id) == 0 {
		return bf.close(leafHeight(n, bf.pn.ContentBox.Width))
	}

	cb := bf.childContainingBlock()
	top := cb.Y
	var stacked float64
	for c := range bt.Children(id) {
		cb.Y = top + stacked
		child := e.layoutNode(bt, c, bf.childInfo(cb))
		bf.pn.Children = append(bf.pn.Children, child)
		stacked += child.MarginBox.Height
	}
	return bf.close(stacked)
}

// leafHeight is the height a childless box asks for at width.
func leafHeight(n *LayoutNode, width float64) float64 {
	if n.Element != nil && n.Element.Type == dom.WidgetNode {
		return n.Element.Widget.Height(width)
	}
	return 0
}
