// Package paint is the drawing boundary between the layout engine and a
// rasterizer. The paint walk only ever talks to a Surface.
package paint

import (
	"image"
	"image/color"

	"boxwright/pkg/geom"
)

// Surface is a 2D drawing target with a clip rectangle and a
// translate/scale transform. Clip rectangles are given in the current
// transformed coordinate space; Reset drops the clip and the transform.
type Surface interface {
	SetPixel(x, y int, c color.Color)
	FillRect(r geom.Rect, c color.Color)
	FillCircle(cx, cy, radius float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y, size float64, c color.Color)
	DrawImage(x, y float64, img image.Image)

	Clip(r geom.Rect)
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Reset()
}
