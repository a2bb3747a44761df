// Package render walks a paint tree and draws it onto a paint.Surface.
package render

import (
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"boxwright/pkg/css"
	"boxwright/pkg/geom"
	"boxwright/pkg/layout"
	"boxwright/pkg/paint"
)

type Renderer struct {
	surface    paint.Surface
	background color.Color
	logger     *log.Logger
}

type Option func(*Renderer)

// WithBackground sets the colour the whole surface is cleared to before
// each paint. Without it the surface is painted over as is.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) { r.background = c }
}

func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

func NewRenderer(s paint.Surface, opts ...Option) *Renderer {
	r := &Renderer{surface: s, logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render paints root and its descendants in tree order, so later siblings
// and children paint over earlier boxes.
func (r *Renderer) Render(root *layout.PaintNode) {
	if root == nil {
		return
	}
	if r.background != nil {
		r.surface.Reset()
		r.surface.FillRect(root.MarginBox, r.background)
	}
	var n int
	root.Walk(func(pn *layout.PaintNode, _ int) {
		r.drawBox(pn)
		n++
	})
	r.logger.Debug("painted", "boxes", n)
}

func (r *Renderer) drawBox(pn *layout.PaintNode) {
	if pn.Style != nil {
		// background covers content and padding but not the border
		if bg := pn.Style.Background; bg.A > 0 {
			r.surface.FillRect(pn.PaddingBox, bg)
		}
		r.drawBorder(pn)
	}
	if pn.Painter != nil {
		pn.Painter.Paint(r.surface, pn.ContentBox)
	}
}

// borderColor returns the colour of one border side, falling back to the
// text colour like currentColor.
func borderColor(style *css.Style, b css.Border) css.Color {
	if b.Color.A > 0 {
		return b.Color
	}
	return style.Color
}

// drawBorder paints each side in the ring between the border box and the
// padding box. Horizontal sides own the corners.
func (r *Renderer) drawBorder(pn *layout.PaintNode) {
	outer, inner := pn.BorderBox, pn.PaddingBox
	widths := geom.Sides{
		Top:    inner.Y - outer.Y,
		Right:  outer.Max().X - inner.Max().X,
		Bottom: outer.Max().Y - inner.Max().Y,
		Left:   inner.X - outer.X,
	}
	s := pn.Style
	sides := []struct {
		border css.Border
		rect   geom.Rect
	}{
		{s.Border.Top, geom.Rect{X: outer.X, Y: outer.Y, Width: outer.Width, Height: widths.Top}},
		{s.Border.Bottom, geom.Rect{X: outer.X, Y: inner.Max().Y, Width: outer.Width, Height: widths.Bottom}},
		{s.Border.Left, geom.Rect{X: outer.X, Y: inner.Y, Width: widths.Left, Height: inner.Height}},
		{s.Border.Right, geom.Rect{X: inner.Max().X, Y: inner.Y, Width: widths.Right, Height: inner.Height}},
	}
	for _, side := range sides {
		if side.rect.Width <= 0 || side.rect.Height <= 0 || side.border.Style == css.BorderNone {
			continue
		}
		c := borderColor(s, side.border)
		if c.A == 0 {
			continue
		}
		r.drawBorderSide(side.rect, side.border.Style, c)
	}
}

func (r *Renderer) drawBorderSide(rect geom.Rect, style css.BorderStyle, c css.Color) {
	switch style {
	case css.BorderDashed:
		horizontal := rect.Width >= rect.Height
		// dashes three times the line width, gaps the same
		thick := math.Min(rect.Width, rect.Height)
		step := 3 * thick
		if horizontal {
			for x := rect.X; x < rect.Max().X; x += 2 * step {
				r.surface.FillRect(geom.Rect{X: x, Y: rect.Y, Width: math.Min(step, rect.Max().X-x), Height: rect.Height}, c)
			}
		} else {
			for y := rect.Y; y < rect.Max().Y; y += 2 * step {
				r.surface.FillRect(geom.Rect{X: rect.X, Y: y, Width: rect.Width, Height: math.Min(step, rect.Max().Y-y)}, c)
			}
		}

	case css.BorderDotted:
		// every other pixel
		x0, y0 := int(math.Round(rect.X)), int(math.Round(rect.Y))
		x1, y1 := int(math.Round(rect.Max().X)), int(math.Round(rect.Max().Y))
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if (x+y)%2 == 0 {
					r.surface.SetPixel(x, y, c)
				}
			}
		}

	default:
		r.surface.FillRect(rect, c)
	}
}
