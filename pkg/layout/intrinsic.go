package layout

import (
	"strings"

	"boxwright/pkg/css"
	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/text"
	"boxwright/pkg/tree"
)

// intrinsic returns the min-content and max-content widths of a box's
// margin box as the bounds of a range.
func (e *Engine) intrinsic(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) geom.Range {
	n := bt.Node(id)
	if n.Element != nil && n.Element.Type == dom.TextNode {
		return e.intrinsicContent(bt, id, info)
	}
	style := n.Style()
	info = selfInfo(n, info)
	bound := resolveBoxes(style, info).bounding().Horizontal()
	widths := style.WidthRange(info)

	if w, ok := style.Width.Resolve(info); ok {
		return geom.Exactly(widths.Clamp(w) + bound)
	}
	content := e.intrinsicContent(bt, id, info)
	lo, hi := content.MinOr(0), content.MaxOr(0)
	if style.Width.Kind == css.SizeFitContent {
		w, _ := style.Width.ResolveFitContent(info, lo, hi)
		return geom.Exactly(widths.Clamp(w) + bound)
	}
	return geom.NewRangeMinPriority(widths.Clamp(lo)+bound, widths.Clamp(hi)+bound)
}

// intrinsicContent returns the min-content and max-content widths of a
// box's content.
//
// Stacked children must all fit, so the box is at least as wide as the
// widest child minimum (AndMin) and at most as wide as the widest child
// preference (OrMax). Inline children share lines: the minimum is still
// the widest child minimum but the preference is the sum, all on one line.
func (e *Engine) intrinsicContent(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) geom.Range {
	n := bt.Node(id)
	if el := n.Element; el != nil {
		switch el.Type {
		case dom.TextNode:
			words := text.SplitIntoWords(el.Text)
			size := info.FontSize
			return geom.NewRangeMinPriority(
				text.LongestWord(e.measure, el.Text, size),
				e.measure.Measure(strings.Join(words, " "), size),
			)
		case dom.WidgetNode:
			return geom.Exactly(el.Widget.Width())
		}
	}

	r := geom.Exactly(0)
	switch {
	case n.ChildrenAreInline:
		var line float64
		for c := range bt.Children(id) {
			cr := e.intrinsic(bt, c, info)
			r = r.AndMin(cr.MinOr(0))
			line += cr.MaxOr(0)
		}
		r = r.OrMax(line)

	case n.Context == ContextFlex && n.Style().FlexDirection == css.FlexDirectionRow:
		// items sit side by side and each shrinks to at most its minimum
		var lo, hi float64
		for c := range bt.Children(id) {
			cr := e.intrinsic(bt, c, info)
			lo += cr.MinOr(0)
			hi += cr.MaxOr(0)
		}
		r = geom.NewRangeMinPriority(lo, hi)

	default:
		for c := range bt.Children(id) {
			cr := e.intrinsic(bt, c, info)
			r = r.AndMin(cr.MinOr(0)).OrMax(cr.MaxOr(0))
		}
	}
	return r
}
