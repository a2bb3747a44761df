// Package geom holds the small geometric types shared by layout and paint.
package geom

import "fmt"

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Size represents dimensions (width and height).
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Sides holds one value per box edge (top, right, bottom, left), as used
// for margins, borders and paddings.
type Sides struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Uniform returns Sides with the same value on every edge.
func Uniform(v float64) Sides {
	return Sides{Top: v, Right: v, Bottom: v, Left: v}
}

// Add returns the edge-wise sum of s and o.
func (s Sides) Add(o Sides) Sides {
	return Sides{
		Top:    s.Top + o.Top,
		Right:  s.Right + o.Right,
		Bottom: s.Bottom + o.Bottom,
		Left:   s.Left + o.Left,
	}
}

// Horizontal returns Left + Right.
func (s Sides) Horizontal() float64 { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Sides) Vertical() float64 { return s.Top + s.Bottom }

// Expand grows r outward by s (R + S).
func (r Rect) Expand(s Sides) Rect {
	return Rect{
		X:      r.X - s.Left,
		Y:      r.Y - s.Top,
		Width:  r.Width + s.Horizontal(),
		Height: r.Height + s.Vertical(),
	}
}

// Shrink insets r by s (R - S). Width and height may go negative when s is
// larger than r; callers clamp where that matters.
func (r Rect) Shrink(s Sides) Rect {
	return Rect{
		X:      r.X + s.Left,
		Y:      r.Y + s.Top,
		Width:  r.Width - s.Horizontal(),
		Height: r.Height - s.Vertical(),
	}
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
