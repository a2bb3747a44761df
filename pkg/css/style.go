package css

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"boxwright/pkg/geom"
)

// DefaultFontSize is the font size of an unstyled root, in pixels. Other
// elements inherit their parent's size unless they set font-size.
const DefaultFontSize = 16

// Style holds the computed, typed declarations of one element.
type Style struct {
	Display       DisplayType
	FlexDirection FlexDirection
	Float         FloatType
	Position      PositionType
	Overflow      OverflowType

	Margin  Edges[Margin]
	Padding Edges[Padding]
	Border  Edges[Border]

	Width     Size
	Height    Size
	MinWidth  Size
	MinHeight Size
	MaxWidth  Size
	MaxHeight Size

	FontSize   Length
	Color      Color
	Background Color

	// Extra keeps declarations with no typed field, unparsed.
	Extra map[string]string
}

// NewStyle returns the initial style: block display, auto sizes, no
// margins, borders or paddings, black text on a transparent background.
func NewStyle() *Style {
	zero := MustPadding(LP(Px(0)))
	return &Style{
		Display:       DisplayBlock,
		FlexDirection: FlexDirectionRow,
		Float:         FloatNone,
		Position:      PositionStatic,
		Overflow:      OverflowVisible,
		Margin:        AllEdges(Margin{Value: LP(Px(0))}),
		Padding:       AllEdges(zero),
		Border:        AllEdges(Border{Width: Px(0), Style: BorderNone}),
		Width:         Auto,
		Height:        Auto,
		MinWidth:      Auto,
		MinHeight:     Auto,
		MaxWidth:      None,
		MaxHeight:     None,
		FontSize:      Em(1),
		Color:         Color{0, 0, 0, 255},
		Extra:         make(map[string]string),
	}
}

// Clone returns a deep copy of s.
func (s *Style) Clone() *Style {
	c := *s
	c.Extra = make(map[string]string, len(s.Extra))
	for k, v := range s.Extra {
		c.Extra[k] = v
	}
	return &c
}

// ParseInlineStyle parses a style attribute over the initial style.
func ParseInlineStyle(styleAttr string) (*Style, error) {
	style := NewStyle()
	err := style.Apply(styleAttr)
	return style, err
}

// Apply parses "prop: value; ..." declarations onto s. Invalid
// declarations are skipped and reported together; valid ones still apply.
func (s *Style) Apply(styleAttr string) error {
	var errs []error
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			errs = append(errs, fmt.Errorf("%w: declaration %q", ErrSyntax, decl))
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		if err := s.expandShorthand(property, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", property, err))
		}
	}
	return errors.Join(errs...)
}

// expandShorthand expands shorthand properties into individual ones
func (s *Style) expandShorthand(property, value string) error {
	switch property {
	case "margin", "padding", "border-width", "border-style", "border-color":
		return s.expandBoxProperty(property, value)
	case "border":
		return s.expandBorderProperty(value, "top", "right", "bottom", "left")
	case "border-top", "border-right", "border-bottom", "border-left":
		return s.expandBorderProperty(value, strings.TrimPrefix(property, "border-"))
	}
	return s.set(property, value)
}

// expandBoxProperty expands margin/padding shorthand
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func (s *Style) expandBoxProperty(prefix, value string) error {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, bottom = parts[0], parts[0]
		right, left = parts[1], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return fmt.Errorf("%w: %q", ErrSyntax, value)
	}

	name := func(side string) string {
		if p, ok := strings.CutPrefix(prefix, "border-"); ok {
			return "border-" + side + "-" + p
		}
		return prefix + "-" + side
	}
	return errors.Join(
		s.set(name("top"), top),
		s.set(name("right"), right),
		s.set(name("bottom"), bottom),
		s.set(name("left"), left),
	)
}

// expandBorderProperty expands border shorthand
// Format: "1px solid black" or "2px dotted #FF0000"
func (s *Style) expandBorderProperty(value string, sides ...string) error {
	var errs []error
	for _, part := range strings.Fields(value) {
		var prop string
		switch {
		case isBorderStyle(part):
			prop = "style"
		case part[0] == '-' || part[0] == '.' || (part[0] >= '0' && part[0] <= '9'):
			prop = "width"
		default:
			prop = "color"
		}
		for _, side := range sides {
			if err := s.set("border-"+side+"-"+prop, part); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func isBorderStyle(v string) bool {
	switch BorderStyle(v) {
	case BorderNone, BorderSolid, BorderDotted, BorderDashed:
		return true
	}
	return false
}

// set assigns one longhand property.
func (s *Style) set(property, value string) error {
	value = strings.TrimSpace(value)
	switch property {
	case "display":
		d, err := parseDisplay(value)
		if err != nil {
			return err
		}
		s.Display = d
	case "flex-direction":
		d, err := parseFlexDirection(value)
		if err != nil {
			return err
		}
		s.FlexDirection = d
	case "float":
		switch FloatType(value) {
		case FloatNone, FloatLeft, FloatRight:
			s.Float = FloatType(value)
		default:
			return fmt.Errorf("%w: float %q", ErrSyntax, value)
		}
	case "position":
		switch PositionType(value) {
		case PositionStatic, PositionRelative, PositionAbsolute, PositionFixed:
			s.Position = PositionType(value)
		default:
			return fmt.Errorf("%w: position %q", ErrSyntax, value)
		}
	case "overflow":
		switch OverflowType(value) {
		case OverflowVisible, OverflowHidden, OverflowScroll, OverflowAuto:
			s.Overflow = OverflowType(value)
		default:
			return fmt.Errorf("%w: overflow %q", ErrSyntax, value)
		}
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		m, err := ParseMargin(value)
		if err != nil {
			return err
		}
		*edge(&s.Margin, strings.TrimPrefix(property, "margin-")) = m
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		p, err := ParsePadding(value)
		if err != nil {
			return err
		}
		*edge(&s.Padding, strings.TrimPrefix(property, "padding-")) = p
	case "border-top-width", "border-right-width", "border-bottom-width", "border-left-width",
		"border-top-style", "border-right-style", "border-bottom-style", "border-left-style",
		"border-top-color", "border-right-color", "border-bottom-color", "border-left-color":
		return s.setBorder(property, value)
	case "width":
		return setSize(&s.Width, value, AgainstWidth)
	case "height":
		return setSize(&s.Height, value, AgainstHeight)
	case "min-width":
		return setSize(&s.MinWidth, value, AgainstWidth)
	case "min-height":
		return setSize(&s.MinHeight, value, AgainstHeight)
	case "max-width":
		return setSize(&s.MaxWidth, value, AgainstWidth)
	case "max-height":
		return setSize(&s.MaxHeight, value, AgainstHeight)
	case "font-size":
		l, err := ParseLength(value)
		if err != nil {
			return err
		}
		if l.Value < 0 {
			return fmt.Errorf("%w: negative font-size", ErrOutOfRange)
		}
		s.FontSize = l
	case "color":
		c, ok := ParseColor(value)
		if !ok {
			return fmt.Errorf("%w: color %q", ErrSyntax, value)
		}
		s.Color = c
	case "background", "background-color":
		c, ok := ParseColor(value)
		if !ok {
			return fmt.Errorf("%w: color %q", ErrSyntax, value)
		}
		s.Background = c
	default:
		s.Extra[property] = value
	}
	return nil
}

func (s *Style) setBorder(property, value string) error {
	rest := strings.TrimPrefix(property, "border-")
	side, field, _ := strings.Cut(rest, "-")
	b := edge(&s.Border, side)
	switch field {
	case "width":
		l, err := ParseLength(value)
		if err != nil {
			return err
		}
		nb, err := NewBorder(l, b.Style, b.Color)
		if err != nil {
			return err
		}
		*b = nb
		// a width without a style draws nothing; "border: 2px" implies solid
		if b.Style == BorderNone || b.Style == "" {
			b.Style = BorderSolid
		}
	case "style":
		if !isBorderStyle(value) {
			return fmt.Errorf("%w: border style %q", ErrSyntax, value)
		}
		b.Style = BorderStyle(value)
	case "color":
		c, ok := ParseColor(value)
		if !ok {
			return fmt.Errorf("%w: color %q", ErrSyntax, value)
		}
		b.Color = c
	}
	return nil
}

func edge[T any](e *Edges[T], side string) *T {
	switch side {
	case "top":
		return &e.Top
	case "right":
		return &e.Right
	case "bottom":
		return &e.Bottom
	}
	return &e.Left
}

func setSize(dst *Size, value string, basis PercentBasis) error {
	sz, err := ParseSize(value, basis)
	if err != nil {
		return err
	}
	*dst = sz
	return nil
}

// ResolveFontSize returns the element's font size given its parent's.
func (s *Style) ResolveFontSize(parent float64) float64 {
	return s.FontSize.Resolve(FormattingInfo{FontSize: parent})
}

// ResolveMargin returns the margins, auto ones resolved to 0.
func (s *Style) ResolveMargin(info FormattingInfo) geom.Sides {
	get := func(m Margin) float64 {
		v, _ := m.Resolve(info)
		return v
	}
	return geom.Sides{
		Top:    get(s.Margin.Top),
		Right:  get(s.Margin.Right),
		Bottom: get(s.Margin.Bottom),
		Left:   get(s.Margin.Left),
	}
}

// ResolvePadding returns the paddings.
func (s *Style) ResolvePadding(info FormattingInfo) geom.Sides {
	return geom.Sides{
		Top:    s.Padding.Top.Resolve(info),
		Right:  s.Padding.Right.Resolve(info),
		Bottom: s.Padding.Bottom.Resolve(info),
		Left:   s.Padding.Left.Resolve(info),
	}
}

// ResolveBorder returns the border widths.
func (s *Style) ResolveBorder(info FormattingInfo) geom.Sides {
	return geom.Sides{
		Top:    s.Border.Top.Resolve(info),
		Right:  s.Border.Right.Resolve(info),
		Bottom: s.Border.Bottom.Resolve(info),
		Left:   s.Border.Left.Resolve(info),
	}
}

// Bounding returns margin + border + padding on each side.
func (s *Style) Bounding(info FormattingInfo) geom.Sides {
	return s.ResolveMargin(info).Add(s.ResolveBorder(info)).Add(s.ResolvePadding(info))
}

func sizeRange(min, max Size, info FormattingInfo) geom.Range {
	r := geom.Unbounded()
	if v, ok := min.Resolve(info); ok {
		r = r.AndMin(v)
	}
	if v, ok := max.Resolve(info); ok {
		r = r.AndMax(v)
	}
	return r
}

// WidthRange returns [min-width, max-width] for the content box. When both
// are set and inverted, min-width wins.
func (s *Style) WidthRange(info FormattingInfo) geom.Range {
	return sizeRange(s.MinWidth, s.MaxWidth, info)
}

// HeightRange returns [min-height, max-height] for the content box.
func (s *Style) HeightRange(info FormattingInfo) geom.Range {
	return sizeRange(s.MinHeight, s.MaxHeight, info)
}

// Color is a non-premultiplied RGBA colour. It implements color.Color.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Transparent reports whether painting c has no effect.
func (c Color) Transparent() bool { return c.A == 0 }

var namedColors = map[string]Color{
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"white":       {255, 255, 255, 255},
	"black":       {0, 0, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"lightgray":   {211, 211, 211, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"lime":        {0, 255, 0, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a named colour, #rgb, #rrggbb, rgb() or rgba().
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if c, ok := namedColors[colorStr]; ok {
		return c, true
	}
	if hex, ok := strings.CutPrefix(colorStr, "#"); ok {
		return parseHexColor(hex)
	}
	if args, ok := strings.CutPrefix(colorStr, "rgba("); ok {
		return parseRGBFunc(strings.TrimSuffix(args, ")"), true)
	}
	if args, ok := strings.CutPrefix(colorStr, "rgb("); ok {
		return parseRGBFunc(strings.TrimSuffix(args, ")"), false)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func parseRGBFunc(args string, withAlpha bool) (Color, bool) {
	parts := strings.Split(args, ",")
	if (withAlpha && len(parts) != 4) || (!withAlpha && len(parts) != 3) {
		return Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, false
		}
		ch[i] = uint8(v)
	}
	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, false
		}
		c.A = uint8(a*255 + 0.5)
	}
	return c, true
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayNone        DisplayType = "none"
	DisplayFlex        DisplayType = "flex"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayGrid        DisplayType = "grid"
	DisplayTable       DisplayType = "table"
)

func parseDisplay(v string) (DisplayType, error) {
	switch d := DisplayType(v); d {
	case DisplayBlock, DisplayInline, DisplayNone, DisplayFlex,
		DisplayInlineBlock, DisplayGrid, DisplayTable:
		return d, nil
	}
	return "", fmt.Errorf("%w: display %q", ErrSyntax, v)
}

// FlexDirection is the main axis of a flex container.
type FlexDirection string

const (
	FlexDirectionRow           FlexDirection = "row"
	FlexDirectionColumn        FlexDirection = "column"
	FlexDirectionRowReverse    FlexDirection = "row-reverse"
	FlexDirectionColumnReverse FlexDirection = "column-reverse"
)

func parseFlexDirection(v string) (FlexDirection, error) {
	switch d := FlexDirection(v); d {
	case FlexDirectionRow, FlexDirectionColumn, FlexDirectionRowReverse, FlexDirectionColumnReverse:
		return d, nil
	}
	return "", fmt.Errorf("%w: flex-direction %q", ErrSyntax, v)
}

// FloatType represents the float property value
type FloatType string

const (
	FloatNone  FloatType = "none"
	FloatLeft  FloatType = "left"
	FloatRight FloatType = "right"
)

// PositionType represents the position property value
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

// OverflowType represents the overflow property value
type OverflowType string

const (
	OverflowVisible OverflowType = "visible"
	OverflowHidden  OverflowType = "hidden"
	OverflowScroll  OverflowType = "scroll"
	OverflowAuto    OverflowType = "auto"
)
