package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"boxwright/pkg/geom"
)

var (
	// ErrUnimplemented is wrapped by panics raised when a value kind that
	// has no resolution rule is resolved.
	ErrUnimplemented = errors.New("css: unimplemented value kind")

	// ErrOutOfRange reports a value rejected at construction time, such as
	// a negative padding.
	ErrOutOfRange = errors.New("css: value out of range")

	// ErrSyntax reports a declaration value that could not be parsed.
	ErrSyntax = errors.New("css: invalid value")
)

// FormattingInfo is the context a value is resolved against: the
// containing block of the box being laid out and the font size in effect.
type FormattingInfo struct {
	ContainingBlock geom.Rect
	FontSize        float64
}

// Unit is a length unit.
type Unit int

const (
	UnitPx Unit = iota
	UnitEm
	// UnitEmPercent is a percentage of the font size ("%em"). It parses but
	// has no resolution rule.
	UnitEmPercent
)

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitEm:
		return "em"
	case UnitEmPercent:
		return "%em"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Length is an absolute or font-relative length.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Em returns a length relative to the font size.
func Em(v float64) Length { return Length{Value: v, Unit: UnitEm} }

// Resolve converts l to pixels. Resolving a percent-of-em length panics.
func (l Length) Resolve(info FormattingInfo) float64 {
	switch l.Unit {
	case UnitPx:
		return l.Value
	case UnitEm:
		return l.Value * info.FontSize
	}
	panic(fmt.Errorf("%w: length unit %v", ErrUnimplemented, l.Unit))
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

// PercentBasis picks the quantity a percentage is taken of.
type PercentBasis func(info FormattingInfo) float64

// AgainstWidth resolves percentages against the containing block width.
// Margins and paddings use it on every side, vertical ones included.
func AgainstWidth(info FormattingInfo) float64 { return info.ContainingBlock.Width }

// AgainstHeight resolves percentages against the containing block height.
func AgainstHeight(info FormattingInfo) float64 { return info.ContainingBlock.Height }

// Percentage is a percentage bound to the basis of the property it belongs to.
type Percentage struct {
	Value float64 // 50 means 50%
	Basis PercentBasis
}

// Resolve returns the percentage of the bound basis.
func (p Percentage) Resolve(info FormattingInfo) float64 {
	basis := p.Basis
	if basis == nil {
		basis = AgainstWidth
	}
	return p.Value / 100 * basis(info)
}

// LengthPercentage holds either a Length or a Percentage.
type LengthPercentage struct {
	length    Length
	percent   Percentage
	isPercent bool
}

// LP wraps a length.
func LP(l Length) LengthPercentage { return LengthPercentage{length: l} }

// Percent returns a percentage resolved against basis.
func Percent(v float64, basis PercentBasis) LengthPercentage {
	return LengthPercentage{percent: Percentage{Value: v, Basis: basis}, isPercent: true}
}

// IsPercent reports whether lp holds a percentage.
func (lp LengthPercentage) IsPercent() bool { return lp.isPercent }

// Resolve converts lp to pixels.
func (lp LengthPercentage) Resolve(info FormattingInfo) float64 {
	if lp.isPercent {
		return lp.percent.Resolve(info)
	}
	return lp.length.Resolve(info)
}

// negative reports whether the raw value is below zero, without resolving it.
func (lp LengthPercentage) negative() bool {
	if lp.isPercent {
		return lp.percent.Value < 0
	}
	return lp.length.Value < 0
}

func (lp LengthPercentage) String() string {
	if lp.isPercent {
		return strconv.FormatFloat(lp.percent.Value, 'g', -1, 64) + "%"
	}
	return lp.length.String()
}

// Margin is a margin edge: auto or a length-percentage.
type Margin struct {
	Auto  bool
	Value LengthPercentage
}

// MarginAuto is the auto margin.
var MarginAuto = Margin{Auto: true}

// Resolve returns the margin in pixels. Auto margins are left unresolved
// and the caller supplies the default.
func (m Margin) Resolve(info FormattingInfo) (float64, bool) {
	if m.Auto {
		return 0, false
	}
	return m.Value.Resolve(info), true
}

// Padding is a non-negative padding edge.
type Padding struct {
	value LengthPercentage
}

// NewPadding rejects negative values.
func NewPadding(v LengthPercentage) (Padding, error) {
	if v.negative() {
		return Padding{}, fmt.Errorf("%w: negative padding %v", ErrOutOfRange, v)
	}
	return Padding{value: v}, nil
}

// MustPadding is NewPadding that panics on error.
func MustPadding(v LengthPercentage) Padding {
	p, err := NewPadding(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Resolve returns the padding in pixels.
func (p Padding) Resolve(info FormattingInfo) float64 {
	return math.Max(0, p.value.Resolve(info))
}

// BorderStyle is the line style of a border edge.
type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderSolid  BorderStyle = "solid"
	BorderDotted BorderStyle = "dotted"
	BorderDashed BorderStyle = "dashed"
)

// Border is a border edge: a fixed line width plus a style and colour.
type Border struct {
	Width Length
	Style BorderStyle
	Color Color
}

// NewBorder rejects negative widths.
func NewBorder(width Length, style BorderStyle, c Color) (Border, error) {
	if width.Value < 0 {
		return Border{}, fmt.Errorf("%w: negative border width %v", ErrOutOfRange, width)
	}
	return Border{Width: width, Style: style, Color: c}, nil
}

// Resolve returns the border width in pixels; zero when the style is none.
func (b Border) Resolve(info FormattingInfo) float64 {
	if b.Style == "" || b.Style == BorderNone {
		return 0
	}
	return math.Max(0, b.Width.Resolve(info))
}

// SizeKind distinguishes the forms a size property can take.
type SizeKind int

const (
	SizeAuto SizeKind = iota
	SizeNone
	SizeLength
	SizeFitContent
)

// Size is a width/height value or one of its min/max variants.
type Size struct {
	Kind  SizeKind
	Value LengthPercentage // SizeLength, and the argument of SizeFitContent
}

// Auto and None are the keyword sizes.
var (
	Auto = Size{Kind: SizeAuto}
	None = Size{Kind: SizeNone}
)

// Definite returns a definite size.
func Definite(v LengthPercentage) Size { return Size{Kind: SizeLength, Value: v} }

// FitContent returns fit-content(v).
func FitContent(v LengthPercentage) Size { return Size{Kind: SizeFitContent, Value: v} }

// Resolve returns the size in pixels, or false for auto, none and
// fit-content (which needs intrinsic sizes, see ResolveFitContent).
func (s Size) Resolve(info FormattingInfo) (float64, bool) {
	if s.Kind != SizeLength {
		return 0, false
	}
	return s.Value.Resolve(info), true
}

// ResolveFitContent clamps the fit-content argument between the
// min-content and max-content sizes. Other kinds resolve as Resolve does.
func (s Size) ResolveFitContent(info FormattingInfo, minContent, maxContent float64) (float64, bool) {
	if s.Kind != SizeFitContent {
		return s.Resolve(info)
	}
	return geom.NewRangeMinPriority(minContent, maxContent).Clamp(s.Value.Resolve(info)), true
}

func (s Size) String() string {
	switch s.Kind {
	case SizeAuto:
		return "auto"
	case SizeNone:
		return "none"
	case SizeFitContent:
		return "fit-content(" + s.Value.String() + ")"
	}
	return s.Value.String()
}

// Edges holds one value per box edge.
type Edges[T any] struct {
	Top    T
	Right  T
	Bottom T
	Left   T
}

// AllEdges returns Edges with v on every side.
func AllEdges[T any](v T) Edges[T] {
	return Edges[T]{Top: v, Right: v, Bottom: v, Left: v}
}

// ParseLength parses a length value such as "100px", "100", "1.5em" or
// "50%em".
func ParseLength(val string) (Length, error) {
	val = strings.TrimSpace(strings.ToLower(val))
	unit := UnitPx
	switch {
	case strings.HasSuffix(val, "%em"):
		unit, val = UnitEmPercent, strings.TrimSuffix(val, "%em")
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
	case strings.HasSuffix(val, "em"):
		unit, val = UnitEm, strings.TrimSuffix(val, "em")
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: length %q", ErrSyntax, val)
	}
	return Length{Value: num, Unit: unit}, nil
}

// ParseLengthPercentage parses a length or a percentage such as "25%".
func ParseLengthPercentage(val string, basis PercentBasis) (LengthPercentage, error) {
	val = strings.TrimSpace(val)
	if strings.HasSuffix(val, "%") && !strings.HasSuffix(strings.ToLower(val), "%em") {
		num, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			return LengthPercentage{}, fmt.Errorf("%w: percentage %q", ErrSyntax, val)
		}
		return Percent(num, basis), nil
	}
	l, err := ParseLength(val)
	if err != nil {
		return LengthPercentage{}, err
	}
	return LP(l), nil
}

// ParseMargin parses "auto" or a length-percentage.
func ParseMargin(val string) (Margin, error) {
	if strings.EqualFold(strings.TrimSpace(val), "auto") {
		return MarginAuto, nil
	}
	lp, err := ParseLengthPercentage(val, AgainstWidth)
	if err != nil {
		return Margin{}, err
	}
	return Margin{Value: lp}, nil
}

// ParsePadding parses a non-negative length-percentage.
func ParsePadding(val string) (Padding, error) {
	lp, err := ParseLengthPercentage(val, AgainstWidth)
	if err != nil {
		return Padding{}, err
	}
	return NewPadding(lp)
}

// ParseSize parses "auto", "none", "fit-content", "fit-content(<lp>)" or a
// length-percentage.
func ParseSize(val string, basis PercentBasis) (Size, error) {
	v := strings.ToLower(strings.TrimSpace(val))
	switch {
	case v == "auto":
		return Auto, nil
	case v == "none":
		return None, nil
	case v == "fit-content":
		// fit-content with no argument is the max-content size
		return FitContent(Percent(100, basis)), nil
	case strings.HasPrefix(v, "fit-content(") && strings.HasSuffix(v, ")"):
		lp, err := ParseLengthPercentage(v[len("fit-content("):len(v)-1], basis)
		if err != nil {
			return Size{}, err
		}
		return FitContent(lp), nil
	}
	lp, err := ParseLengthPercentage(v, basis)
	if err != nil {
		return Size{}, err
	}
	if lp.negative() {
		return Size{}, fmt.Errorf("%w: negative size %v", ErrOutOfRange, lp)
	}
	return Definite(lp), nil
}
