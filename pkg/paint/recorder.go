package paint

import (
	"fmt"
	"image"
	"image/color"

	"boxwright/pkg/geom"
)

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpSetPixel   OpKind = "set-pixel"
	OpFillRect   OpKind = "fill-rect"
	OpFillCircle OpKind = "fill-circle"
	OpStrokeLine OpKind = "stroke-line"
	OpDrawText   OpKind = "draw-text"
	OpDrawImage  OpKind = "draw-image"
	OpClip       OpKind = "clip"
	OpTranslate  OpKind = "translate"
	OpScale      OpKind = "scale"
	OpReset      OpKind = "reset"
)

// Op is one recorded call. Rect holds the geometry of rect-shaped calls;
// Args the scalar arguments of the others.
type Op struct {
	Kind  OpKind
	Rect  geom.Rect
	Args  []float64
	Text  string
	Color color.Color
}

func (o Op) String() string {
	switch o.Kind {
	case OpFillRect, OpClip:
		return fmt.Sprintf("%s %v", o.Kind, o.Rect)
	case OpDrawText:
		return fmt.Sprintf("%s %q %v", o.Kind, o.Text, o.Args)
	}
	return fmt.Sprintf("%s %v", o.Kind, o.Args)
}

// Recorder is a Surface that records calls instead of drawing them.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

// OfKind returns the recorded ops of kind k, in order.
func (r *Recorder) OfKind(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) SetPixel(x, y int, c color.Color) {
	r.add(Op{Kind: OpSetPixel, Args: []float64{float64(x), float64(y)}, Color: c})
}

func (r *Recorder) FillRect(rect geom.Rect, c color.Color) {
	r.add(Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.add(Op{Kind: OpFillCircle, Args: []float64{cx, cy, radius}, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	r.add(Op{Kind: OpStrokeLine, Args: []float64{x1, y1, x2, y2, width}, Color: c})
}

func (r *Recorder) DrawText(s string, x, y, size float64, c color.Color) {
	r.add(Op{Kind: OpDrawText, Text: s, Args: []float64{x, y, size}, Color: c})
}

func (r *Recorder) DrawImage(x, y float64, img image.Image) {
	b := img.Bounds()
	r.add(Op{Kind: OpDrawImage, Rect: geom.Rect{X: x, Y: y, Width: float64(b.Dx()), Height: float64(b.Dy())}})
}

func (r *Recorder) Clip(rect geom.Rect) { r.add(Op{Kind: OpClip, Rect: rect}) }

func (r *Recorder) Translate(dx, dy float64) {
	r.add(Op{Kind: OpTranslate, Args: []float64{dx, dy}})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.add(Op{Kind: OpScale, Args: []float64{sx, sy}})
}

func (r *Recorder) Reset() { r.add(Op{Kind: OpReset}) }
