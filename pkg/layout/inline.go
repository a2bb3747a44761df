package layout

import (
	"math"

	"boxwright/pkg/css"
	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/text"
	"boxwright/pkg/tree"
)

// Fragment is the part of an inline box placed on one line.
type Fragment struct {
	Width float64
	// X is the offset of the fragment from the start of its line.
	X float64

	Node    *dom.Node
	Painter Painter

	heightForWidth func(width float64) float64
}

// LineBox is one line of an inline formatting context. Y and Height are
// only set once the formatter is closed.
type LineBox struct {
	X        float64
	Y        float64
	MaxWidth float64
	Consumed float64
	Height   float64

	boxes []*Fragment
}

// Remaining returns the width still free on the line.
func (l *LineBox) Remaining() float64 { return l.MaxWidth - l.Consumed }

// HasContent reports whether anything was placed on the line.
func (l *LineBox) HasContent() bool { return len(l.boxes) > 0 || l.Consumed > 0 }

// Fragments returns the boxes placed on the line.
func (l *LineBox) Fragments() []*Fragment { return l.boxes }

func (l *LineBox) push(fr *Fragment) {
	fr.X = l.Consumed
	l.boxes = append(l.boxes, fr)
	l.Consumed += fr.Width
}

// LinePlacement records one fragment an inline box was split into.
type LinePlacement struct {
	Line     *LineBox
	Fragment *Fragment
}

// InlineFormatter breaks inline content into lines inside a containing
// block.
type InlineFormatter struct {
	cb    geom.Rect
	Lines []*LineBox
}

func NewInlineFormatter(cb geom.Rect) *InlineFormatter {
	return &InlineFormatter{cb: cb}
}

// CurrentLine returns the last line, creating the first one if needed.
func (f *InlineFormatter) CurrentLine() *LineBox {
	if len(f.Lines) == 0 {
		return f.NewLine()
	}
	return f.Lines[len(f.Lines)-1]
}

// NewLine starts an empty line spanning the containing block.
func (f *InlineFormatter) NewLine() *LineBox {
	l := &LineBox{X: f.cb.X, MaxWidth: f.cb.Width}
	f.Lines = append(f.Lines, l)
	return l
}

// Close computes line heights now that every box is placed, stacks the
// lines from the top of the containing block and returns their total
// height. A line's height is the height its box needs at the line's width.
// Lines hold at most one box.
func (f *InlineFormatter) Close() float64 {
	y := f.cb.Y
	for i, l := range f.Lines {
		if len(l.boxes) > 1 {
			invariantf("line %d holds %d boxes, lines support one", i, len(l.boxes))
		}
		l.Height = 0
		for _, b := range l.boxes {
			l.Height = math.Max(l.Height, b.heightForWidth(l.MaxWidth))
		}
		l.Y = y
		y += l.Height
	}
	return y - f.cb.Y
}

// layoutInlineContainer lays out a box whose children are inline-level.
func (e *Engine) layoutInlineContainer(bt *BoxTree, id tree.NodeID, info css.FormattingInfo) *PaintNode {
	bf := e.openBlock(bt, id, info)
	cb := bf.childContainingBlock()
	f := NewInlineFormatter(cb)

	var placements []LinePlacement
	for c := range bt.Children(id) {
		placements = append(placements, e.splitIntoLines(bt, c, f, bf.childInfo(cb))...)
	}
	height := f.Close()

	for _, p := range placements {
		content := geom.Rect{
			X:      p.Line.X + p.Fragment.X,
			Y:      p.Line.Y,
			Width:  p.Fragment.Width,
			Height: p.Line.Height,
		}
		pn := newPaintNode(content, boxes{})
		pn.Node = p.Fragment.Node
		pn.Painter = p.Fragment.Painter
		pn.Info = css.FormattingInfo{ContainingBlock: cb, FontSize: bf.info.FontSize}
		bf.pn.Children = append(bf.pn.Children, pn)
	}
	e.logger.Debug("inline context closed", "box", bf.node, "lines", len(f.Lines), "height", height)
	return bf.close(height)
}

// splitIntoLines places an inline-level box on the formatter's lines and
// returns the fragments it was split into, in order.
func (e *Engine) splitIntoLines(bt *BoxTree, id tree.NodeID, f *InlineFormatter, info css.FormattingInfo) []LinePlacement {
	n := bt.Node(id)
	el := n.Element
	switch el.Type {
	case dom.TextNode:
		return e.splitText(f, el, info)
	case dom.WidgetNode:
		return e.placeAtomic(f, el)
	}

	var out []LinePlacement
	childInfo := selfInfo(n, info)
	for c := range bt.Children(id) {
		out = append(out, e.splitIntoLines(bt, c, f, childInfo)...)
	}
	return out
}

// splitText breaks a text run at whitespace. Words are added to the
// current line while the text so far still fits; a word that does not fit
// starts a new line unless the line is empty, so a word wider than the
// line gets a line to itself.
func (e *Engine) splitText(f *InlineFormatter, el *dom.Node, info css.FormattingInfo) []LinePlacement {
	size := info.FontSize
	style := el.ComputedStyle()
	lineHeight := size * e.lineHeight

	var out []LinePlacement
	line := f.CurrentLine()
	acc := ""
	flush := func() {
		frag := &TextFragment{Text: acc, Size: size, Color: style.Color}
		if p := el.Parent(); p != nil && p.IsInline() {
			frag.Background = style.Background
		}
		fr := &Fragment{
			Width:          e.measure.Measure(acc, size),
			Node:           el,
			Painter:        frag,
			heightForWidth: func(float64) float64 { return lineHeight },
		}
		line.push(fr)
		out = append(out, LinePlacement{Line: line, Fragment: fr})
	}

	for _, word := range text.SplitIntoWords(el.Text) {
		candidate := word
		if acc != "" {
			candidate = acc + " " + word
		}
		if e.measure.Measure(candidate, size) > line.Remaining() && (acc != "" || line.HasContent()) {
			if acc != "" {
				flush()
			}
			line = f.NewLine()
			acc = word
			continue
		}
		acc = candidate
	}
	if acc != "" {
		flush()
	}
	return out
}

// placeAtomic places a widget as a single unbreakable token of its
// preferred width.
func (e *Engine) placeAtomic(f *InlineFormatter, el *dom.Node) []LinePlacement {
	w := el.Widget.Width()
	line := f.CurrentLine()
	if line.HasContent() && w > line.Remaining() {
		line = f.NewLine()
	}
	fr := &Fragment{
		Width:   w,
		Node:    el,
		Painter: WidgetPainter{Widget: el.Widget},
		heightForWidth: func(avail float64) float64 {
			return el.Widget.Height(math.Min(w, avail))
		},
	}
	line.push(fr)
	return []LinePlacement{{Line: line, Fragment: fr}}
}
