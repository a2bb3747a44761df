package paint

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"boxwright/pkg/geom"
	"boxwright/pkg/text"
)

// GG is a Surface backed by a gg drawing context.
type GG struct {
	dc    *gg.Context
	faces *text.Faces
}

// NewGG returns a surface drawing into a new width×height RGBA image.
func NewGG(width, height int, faces *text.Faces) *GG {
	return &GG{dc: gg.NewContext(width, height), faces: faces}
}

// NewGGForRGBA returns a surface drawing into img.
func NewGGForRGBA(img *image.RGBA, faces *text.Faces) *GG {
	return &GG{dc: gg.NewContextForRGBA(img), faces: faces}
}

// Image returns the backing image.
func (s *GG) Image() image.Image { return s.dc.Image() }

// Clear fills the whole image with c, ignoring clip and transform.
func (s *GG) Clear(c color.Color) {
	s.dc.Push()
	s.dc.ResetClip()
	s.dc.Identity()
	s.dc.SetColor(c)
	s.dc.Clear()
	s.dc.Pop()
}

// SavePNG writes the image to path.
func (s *GG) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *GG) SetPixel(x, y int, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetPixel(x, y)
}

func (s *GG) FillRect(r geom.Rect, c color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.Fill()
}

func (s *GG) FillCircle(cx, cy, radius float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(cx, cy, radius)
	s.dc.Fill()
}

func (s *GG) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

func (s *GG) DrawText(str string, x, y, size float64, c color.Color) {
	face, scale := s.faces.Face(size)
	s.dc.Push()
	defer s.dc.Pop()
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.Translate(x, y)
	if scale != 1 {
		s.dc.Scale(scale, scale)
	}
	// anchor (0, 1) puts the top of the text at y
	s.dc.DrawStringAnchored(str, 0, 0, 0, 1)
}

func (s *GG) DrawImage(x, y float64, img image.Image) {
	s.dc.DrawImage(img, int(x), int(y))
}

func (s *GG) Clip(r geom.Rect) {
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.Clip()
}

func (s *GG) Translate(dx, dy float64) { s.dc.Translate(dx, dy) }

func (s *GG) Scale(sx, sy float64) { s.dc.Scale(sx, sy) }

func (s *GG) Reset() {
	s.dc.ResetClip()
	s.dc.Identity()
}
