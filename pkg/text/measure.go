// Package text measures strings for layout and supplies font faces to the
// rasterizer.
package text

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultLineHeight is the line height as a multiple of the font size.
const DefaultLineHeight = 1.2

// Measurer reports the advance width of a string at a font size.
type Measurer interface {
	Measure(s string, size float64) (width float64)
}

// basicSize is the pixel size basicfont.Face7x13 is drawn at.
const basicSize = 13

// Faces loads font faces by size. With no font path it falls back to the
// built-in 7x13 bitmap face, scaled to the requested size.
type Faces struct {
	path string

	mu    sync.Mutex
	cache map[float64]font.Face
	dc    *gg.Context
}

// NewFaces returns faces loaded from the TTF file at path. An empty path
// selects the built-in bitmap face. The font file is probed once so that a
// bad path is reported here rather than on first use.
func NewFaces(path string) (*Faces, error) {
	f := &Faces{
		path:  path,
		cache: make(map[float64]font.Face),
		dc:    gg.NewContext(1, 1),
	}
	if path != "" {
		if _, err := gg.LoadFontFace(path, DefaultFontSizeProbe); err != nil {
			return nil, fmt.Errorf("loading font %s: %w", path, err)
		}
	}
	return f, nil
}

// DefaultFontSizeProbe is the size used to validate a font file.
const DefaultFontSizeProbe = 12

// Face returns a face for size together with the scale it must be drawn
// at. Loaded TTF faces are exact (scale 1); the bitmap face is scaled.
func (f *Faces) Face(size float64) (font.Face, float64) {
	if f.path == "" {
		return basicfont.Face7x13, size / basicSize
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.cache[size]; ok {
		return face, 1
	}
	face, err := gg.LoadFontFace(f.path, size)
	if err != nil {
		// the file loaded in NewFaces; fall back rather than fail mid-frame
		return basicfont.Face7x13, size / basicSize
	}
	f.cache[size] = face
	return face, 1
}

// Measure implements Measurer using gg's string measurement.
func (f *Faces) Measure(s string, size float64) float64 {
	face, scale := f.Face(size)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dc.SetFontFace(face)
	w, _ := f.dc.MeasureString(s)
	return w * scale
}

// Monospace measures every rune as Advance × size. It needs no font files
// and is what tests use.
type Monospace struct {
	Advance float64
}

// Measure implements Measurer.
func (m Monospace) Measure(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * m.Advance * size
}

// SplitIntoWords splits text on spaces, tabs and newlines.
func SplitIntoWords(text string) []string {
	words := make([]string, 0)
	start := -1
	for i, ch := range text {
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// LongestWord returns the widest word of text, the narrowest the text can
// be laid out without overflowing.
func LongestWord(m Measurer, text string, size float64) float64 {
	longest := 0.0
	for _, w := range SplitIntoWords(text) {
		if ww := m.Measure(w, size); ww > longest {
			longest = ww
		}
	}
	return longest
}
