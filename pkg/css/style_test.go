package css

import (
	"errors"
	"testing"

	"boxwright/pkg/geom"
)

func info(w, h float64) FormattingInfo {
	return FormattingInfo{ContainingBlock: geom.Rect{Width: w, Height: h}, FontSize: DefaultFontSize}
}

func mustParse(t *testing.T, decl string) *Style {
	t.Helper()
	style, err := ParseInlineStyle(decl)
	if err != nil {
		t.Fatalf("parse %q: %v", decl, err)
	}
	return style
}

func TestParseInlineStyle_SingleProperty(t *testing.T) {
	style := mustParse(t, "color: red")
	if style.Color != (Color{255, 0, 0, 255}) {
		t.Errorf("expected red, got %+v", style.Color)
	}
}

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	style := mustParse(t, "color: red; width: 100px")
	w, ok := style.Width.Resolve(info(800, 600))
	if !ok || w != 100 {
		t.Errorf("expected width=100, got %v (%v)", w, ok)
	}
	if style.Color.R != 255 {
		t.Error("expected both properties to parse")
	}
}

func TestParseInlineStyle_UnknownPropertyKept(t *testing.T) {
	style := mustParse(t, "text-align: center")
	if style.Extra["text-align"] != "center" {
		t.Errorf("expected text-align kept in Extra, got %v", style.Extra)
	}
}

func TestParseInlineStyle_InvalidDeclarationSkipped(t *testing.T) {
	style, err := ParseInlineStyle("width: banana; height: 20px")
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	h, ok := style.Height.Resolve(info(800, 600))
	if !ok || h != 20 {
		t.Errorf("valid declaration after an invalid one should apply, got %v", h)
	}
	if style.Width.Kind != SizeAuto {
		t.Errorf("invalid width should leave auto, got %v", style.Width)
	}
}

func TestParseColor_BasicColors(t *testing.T) {
	tests := map[string]Color{
		"red":              {255, 0, 0, 255},
		"blue":             {0, 0, 255, 255},
		"green":            {0, 128, 0, 255},
		"#fff":             {255, 255, 255, 255},
		"#102030":          {16, 32, 48, 255},
		"rgb(1, 2, 3)":     {1, 2, 3, 255},
		"rgba(1, 2, 3, 0)": {1, 2, 3, 0},
		"rgba(0,0,0,1)":    {0, 0, 0, 255},
		" Transparent ":    {0, 0, 0, 0},
	}
	for name, expected := range tests {
		color, ok := ParseColor(name)
		if !ok || color != expected {
			t.Errorf("color %s: expected %+v, got %+v", name, expected, color)
		}
	}
	for _, bad := range []string{"#12", "rgb(300,0,0)", "chartreuse-ish", ""} {
		if _, ok := ParseColor(bad); ok {
			t.Errorf("color %q should not parse", bad)
		}
	}
}

// Box model properties

func TestParseInlineStyle_MarginShorthand(t *testing.T) {
	style := mustParse(t, "margin: 10px")
	margin := style.ResolveMargin(info(800, 600))

	if margin != geom.Uniform(10) {
		t.Errorf("expected all margins to be 10, got %+v", margin)
	}
}

func TestParseInlineStyle_MarginTwoValues(t *testing.T) {
	style := mustParse(t, "margin: 10px 20px")
	margin := style.ResolveMargin(info(800, 600))

	if margin.Top != 10 || margin.Bottom != 10 {
		t.Errorf("expected top/bottom margins to be 10, got %+v", margin)
	}
	if margin.Left != 20 || margin.Right != 20 {
		t.Errorf("expected left/right margins to be 20, got %+v", margin)
	}
}

func TestParseInlineStyle_PaddingFourValues(t *testing.T) {
	style := mustParse(t, "padding: 1px 2px 3px 4px")
	padding := style.ResolvePadding(info(800, 600))
	want := geom.Sides{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if padding != want {
		t.Errorf("expected %+v, got %+v", want, padding)
	}
}

func TestParseInlineStyle_PaddingThreeValues(t *testing.T) {
	style := mustParse(t, "padding: 1px 2px 3px")
	padding := style.ResolvePadding(info(800, 600))
	want := geom.Sides{Top: 1, Right: 2, Bottom: 3, Left: 2}
	if padding != want {
		t.Errorf("expected %+v, got %+v", want, padding)
	}
}

func TestParseInlineStyle_NegativePaddingRejected(t *testing.T) {
	style, err := ParseInlineStyle("padding: -4px")
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if p := style.ResolvePadding(info(100, 100)); p != (geom.Sides{}) {
		t.Errorf("rejected padding should stay zero, got %+v", p)
	}
}

func TestParseInlineStyle_BorderShorthand(t *testing.T) {
	style := mustParse(t, "border: 2px solid black")
	border := style.ResolveBorder(info(800, 600))
	if border != geom.Uniform(2) {
		t.Errorf("expected 2px borders, got %+v", border)
	}
	if style.Border.Left.Style != BorderSolid {
		t.Errorf("expected solid, got %q", style.Border.Left.Style)
	}
}

func TestParseInlineStyle_BorderNoneHasNoWidth(t *testing.T) {
	style := mustParse(t, "border: 3px; border-style: none")
	if b := style.ResolveBorder(info(800, 600)); b != (geom.Sides{}) {
		t.Errorf("border-style none should resolve to zero width, got %+v", b)
	}
}

func TestParseInlineStyle_SingleSideBorder(t *testing.T) {
	style := mustParse(t, "border-left: 4px dashed red")
	b := style.ResolveBorder(info(800, 600))
	if b.Left != 4 || b.Top != 0 {
		t.Errorf("expected only left border, got %+v", b)
	}
	if style.Border.Left.Color != (Color{255, 0, 0, 255}) {
		t.Errorf("expected red border, got %+v", style.Border.Left.Color)
	}
}

func TestStyle_BoundingSumsAllThree(t *testing.T) {
	style := mustParse(t, "margin: 1px; border: 2px solid; padding: 3px")
	if got := style.Bounding(info(800, 600)); got != geom.Uniform(6) {
		t.Errorf("expected 6 on each side, got %+v", got)
	}
}

func TestStyle_DisplayAndFlex(t *testing.T) {
	style := mustParse(t, "display: flex; flex-direction: column")
	if style.Display != DisplayFlex || style.FlexDirection != FlexDirectionColumn {
		t.Errorf("got display=%q direction=%q", style.Display, style.FlexDirection)
	}
	if _, err := ParseInlineStyle("display: sideways"); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax for unknown display, got %v", err)
	}
}

func TestStyle_WidthRangeMinWins(t *testing.T) {
	style := mustParse(t, "min-width: 50px; max-width: 20px")
	r := style.WidthRange(info(800, 600))
	if got := r.Clamp(10); got != 50 {
		t.Errorf("expected min-width to win, got %v", got)
	}
}

func TestStyle_CloneIsIndependent(t *testing.T) {
	style := mustParse(t, "width: 10px; foo: bar")
	c := style.Clone()
	c.Extra["foo"] = "baz"
	c.Width = Auto
	if style.Extra["foo"] != "bar" || style.Width.Kind == SizeAuto {
		t.Error("clone should not share state with the original")
	}
}
