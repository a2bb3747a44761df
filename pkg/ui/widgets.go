package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/paint"
	"boxwright/pkg/text"
)

var (
	buttonFace    = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	buttonPressed = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	trackColor    = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	thumbColor    = color.RGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0xff}
)

// Theme holds what leaf widgets need to size and draw text.
type Theme struct {
	Measurer   text.Measurer
	FontSize   float64
	LineHeight float64
	Text       color.Color
}

// DefaultTheme measures with the monospace approximation.
func DefaultTheme() Theme {
	return Theme{
		Measurer:   text.Monospace{Advance: 0.6},
		FontSize:   14,
		LineHeight: text.DefaultLineHeight,
		Text:       color.Black,
	}
}

func (t Theme) line() float64 { return t.FontSize * t.LineHeight }

// Button is a clickable label. OnClick runs when the pointer is released
// inside the button after being pressed on it.
type Button struct {
	Invalidator
	Theme   Theme
	Label   string
	OnClick func()
	Padding float64

	pressed bool
}

func NewButton(theme Theme, label string) *Button {
	return &Button{Theme: theme, Label: label, Padding: 6}
}

func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) Width() float64 {
	return b.Theme.Measurer.Measure(b.Label, b.Theme.FontSize) + 2*b.Padding
}

func (b *Button) Height(float64) float64 { return b.Theme.line() + 2*b.Padding }

func (b *Button) Draw(s paint.Surface) {
	face := buttonFace
	if b.pressed {
		face = buttonPressed
	}
	w := b.Width()
	s.FillRect(geom.Rect{Width: w, Height: b.Height(w)}, face)
	s.DrawText(b.Label, b.Padding, b.Padding, b.Theme.FontSize, b.Theme.Text)
}

func (b *Button) Event(e Event) bool {
	switch e.Kind {
	case PointerDown:
		b.pressed = true
		b.Invalidate(Draw)
		return true
	case PointerUp:
		if !b.pressed {
			return false
		}
		b.pressed = false
		b.Invalidate(Draw)
		inside := geom.Rect{Width: e.Size.Width, Height: e.Size.Height}.Contains(e.Pos)
		if inside && b.OnClick != nil {
			b.OnClick()
		}
		return true
	case Key:
		if e.Key == "Return" || e.Key == "Space" {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

// SetLabel changes the label, which changes the button's size.
func (b *Button) SetLabel(label string) {
	if label == b.Label {
		return
	}
	b.Label = label
	b.Invalidate(Layout)
}

// Slider picks a value in [0, 1] by dragging or with the arrow keys.
type Slider struct {
	Invalidator
	OnChange func(v float64)
	Length   float64
	Thick    float64

	value    float64
	dragging bool
}

func NewSlider(value float64) *Slider {
	s := &Slider{Length: 120, Thick: 16}
	s.value = clamp01(value)
	return s
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

func (s *Slider) Value() float64 { return s.value }

// SetValue moves the thumb. Only a redraw is needed.
func (s *Slider) SetValue(v float64) {
	v = clamp01(v)
	if v == s.value {
		return
	}
	s.value = v
	s.Invalidate(Draw)
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) Width() float64         { return s.Length }
func (s *Slider) Height(float64) float64 { return s.Thick }

func (s *Slider) Draw(surf paint.Surface) {
	mid := s.Thick / 2
	surf.FillRect(geom.Rect{Y: mid - 2, Width: s.Length, Height: 4}, trackColor)
	surf.FillCircle(s.value*s.Length, mid, mid, thumbColor)
}

func (s *Slider) Event(e Event) bool {
	switch e.Kind {
	case PointerDown:
		s.dragging = true
		s.track(e)
		return true
	case PointerMove:
		if !s.dragging {
			return false
		}
		s.track(e)
		return true
	case PointerUp:
		if !s.dragging {
			return false
		}
		s.dragging = false
		s.track(e)
		return true
	case Key:
		switch e.Key {
		case "Left":
			s.SetValue(s.value - 0.1)
			return true
		case "Right":
			s.SetValue(s.value + 0.1)
			return true
		}
	}
	return false
}

func (s *Slider) track(e Event) {
	if e.Size.Width <= 0 {
		return
	}
	s.SetValue(e.Pos.X / e.Size.Width)
}

// Label is a run of text wrapped at word boundaries to the width it is
// given.
type Label struct {
	Invalidator
	Theme Theme

	text string
	fit  float64
}

func NewLabel(theme Theme, text string) *Label {
	return &Label{Theme: theme, text: text}
}

func (l *Label) Text() string { return l.text }

// SetText replaces the text. The label's size depends on it, so this
// requests a relayout.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.Invalidate(Layout)
}

func (l *Label) Width() float64 {
	return l.Theme.Measurer.Measure(strings.Join(text.SplitIntoWords(l.text), " "), l.Theme.FontSize)
}

func (l *Label) Height(width float64) float64 {
	return float64(len(l.wrap(width))) * l.Theme.line()
}

// Place records the width the label wraps at when drawn.
func (l *Label) Place(size geom.Size) { l.fit = size.Width }

func (l *Label) Draw(s paint.Surface) {
	width := l.fit
	if width <= 0 {
		width = l.Width()
	}
	for i, line := range l.wrap(width) {
		s.DrawText(line, 0, float64(i)*l.Theme.line(), l.Theme.FontSize, l.Theme.Text)
	}
}

func (l *Label) Event(Event) bool { return false }

// wrap breaks the text greedily into lines no wider than width, except
// for single words that are wider on their own.
func (l *Label) wrap(width float64) []string {
	var lines []string
	cur := ""
	for _, w := range text.SplitIntoWords(l.text) {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if cur != "" && l.Theme.Measurer.Measure(next, l.Theme.FontSize) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// Image shows a bitmap, scaled down to fit the width it is given.
type Image struct {
	Invalidator
	img image.Image
	// fit is the width layout placed the image at.
	fit float64
}

func NewImage(img image.Image) *Image { return &Image{img: img} }

// SetImage replaces the bitmap and requests a relayout.
func (i *Image) SetImage(img image.Image) {
	i.img = img
	i.fit = 0
	i.Invalidate(Layout)
}

func (i *Image) Width() float64 {
	if i.img == nil {
		return 0
	}
	return float64(i.img.Bounds().Dx())
}

// Height keeps the aspect ratio when the image is narrower than its
// natural width.
func (i *Image) Height(width float64) float64 {
	if i.img == nil {
		return 0
	}
	return float64(i.img.Bounds().Dy()) * i.scaleAt(width)
}

// Place records the width the image is scaled to when drawn.
func (i *Image) Place(size geom.Size) { i.fit = size.Width }

func (i *Image) scaleAt(width float64) float64 {
	w := float64(i.img.Bounds().Dx())
	if width <= 0 || w <= 0 || width >= w {
		return 1
	}
	return width / w
}

func (i *Image) Draw(s paint.Surface) {
	if i.img == nil {
		return
	}
	if k := i.scaleAt(i.fit); k != 1 {
		s.Scale(k, k)
	}
	s.DrawImage(0, 0, i.img)
}

func (i *Image) Event(Event) bool { return false }

// ImageLoader loads the bitmap for an <img src> attribute.
type ImageLoader func(src string) (image.Image, error)

// DefaultWidgets returns the widget tags a scene may use: button, slider,
// label and img. Each widget is wrapped in a Cached.
func DefaultWidgets(theme Theme, load ImageLoader) map[string]dom.WidgetFactory {
	return map[string]dom.WidgetFactory{
		"button": func(_ map[string]string, text string) (dom.Widget, error) {
			return NewCached(NewButton(theme, text)), nil
		},
		"slider": func(attrs map[string]string, _ string) (dom.Widget, error) {
			v := 0.0
			if s, ok := attrs["value"]; ok {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("slider value: %w", err)
				}
				v = f
			}
			return NewCached(NewSlider(v)), nil
		},
		"label": func(_ map[string]string, text string) (dom.Widget, error) {
			return NewCached(NewLabel(theme, text)), nil
		},
		"img": func(attrs map[string]string, _ string) (dom.Widget, error) {
			src, ok := attrs["src"]
			if !ok {
				return nil, fmt.Errorf("img without src")
			}
			if load == nil {
				return nil, fmt.Errorf("img %q: no image loader", src)
			}
			img, err := load(src)
			if err != nil {
				return nil, fmt.Errorf("img %q: %w", src, err)
			}
			return NewCached(NewImage(img)), nil
		},
	}
}
