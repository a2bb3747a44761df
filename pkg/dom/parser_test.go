package dom

import (
	"errors"
	"testing"

	"boxwright/pkg/css"
)

func cssInfo() css.FormattingInfo { return css.FormattingInfo{FontSize: css.DefaultFontSize} }

func TestParser_SingleElement(t *testing.T) {
	doc, err := Parse("<div></div>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kids := doc.Root.ChildNodes()
	if len(kids) != 1 {
		t.Fatalf("expected 1 child, got %d", len(kids))
	}
	if kids[0].TagName != "div" {
		t.Errorf("expected tag 'div', got '%s'", kids[0].TagName)
	}
}

func TestParser_WithAttributes(t *testing.T) {
	doc, err := Parse(`<div style="width: 10px" id="main"></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	div := doc.Root.FirstChild()
	if v, ok := div.GetAttribute("id"); !ok || v != "main" {
		t.Errorf("expected id 'main', got %q", v)
	}
	if w, ok := div.Style.Width.Resolve(cssInfo()); !ok || w != 10 {
		t.Errorf("expected width 10, got %v %v", w, ok)
	}
}

func TestParser_NestedAndSiblings(t *testing.T) {
	doc, err := Parse(`<div><section><p>First</p><p>Second</p></section></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	section := doc.Root.FirstChild().FirstChild()
	if section.TagName != "section" {
		t.Fatalf("expected section, got %s", section.TagName)
	}
	ps := section.ChildNodes()
	if len(ps) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(ps))
	}
	if ps[0].TextContent() != "First" || ps[1].TextContent() != "Second" {
		t.Errorf("unexpected paragraph text %q %q", ps[0].TextContent(), ps[1].TextContent())
	}
	if ps[1].Parent() != section {
		t.Error("p's parent should be section")
	}
}

func TestParser_AutoCloseP(t *testing.T) {
	doc, err := Parse(`<p>one<div>two</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := doc.Root.ChildCount(); n != 2 {
		t.Errorf("expected <div> to close <p>, root has %d children", n)
	}
}

func TestParser_WhitespaceBetweenTagsDropped(t *testing.T) {
	doc, err := Parse("<div>\n  <p>a</p>\n  <p>b</p>\n</div>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := doc.Root.FirstChild().ChildCount(); n != 2 {
		t.Errorf("expected 2 children, got %d", n)
	}
}

func TestParser_TextNormalized(t *testing.T) {
	doc, err := Parse("<p>  hello \n\t world &amp; more</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Root.FirstChild().TextContent(); got != " hello world & more" {
		t.Errorf("got %q", got)
	}
}

func TestParser_Comments(t *testing.T) {
	doc, err := Parse(`<!DOCTYPE html><!-- a <div> in a comment --><div></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := doc.Root.ChildCount(); n != 1 {
		t.Errorf("expected 1 child, got %d", n)
	}
}

func TestParser_Scripts(t *testing.T) {
	doc, err := Parse(`<div></div><script>if (a < b) { x() }</script><SCRIPT>y()</Script>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Root.ChildCount() != 1 {
		t.Error("scripts should not appear in the tree")
	}
	if len(doc.Scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(doc.Scripts))
	}
	if doc.Scripts[0] != "if (a < b) { x() }" || doc.Scripts[1] != "y()" {
		t.Errorf("unexpected scripts %q", doc.Scripts)
	}
}

func TestParser_StyleElementIgnored(t *testing.T) {
	doc, err := Parse(`<style>div { color: red }</style><div></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Root.ChildCount() != 1 {
		t.Error("style should not appear in the tree")
	}
	if len(doc.Warnings) != 1 {
		t.Errorf("expected a warning, got %v", doc.Warnings)
	}
}

func TestParser_Widgets(t *testing.T) {
	var gotText string
	opts := ParseOptions{Widgets: map[string]WidgetFactory{
		"button": func(attrs map[string]string, text string) (Widget, error) {
			gotText = text
			return stubWidget{w: 40, h: 20}, nil
		},
		"broken": func(map[string]string, string) (Widget, error) {
			return nil, errors.New("nope")
		},
	}}
	doc, err := ParseWith(`<div><button id="ok">  Press
	me </button><broken/></div>`, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	div := doc.Root.FirstChild()
	if div.ChildCount() != 1 {
		t.Fatalf("expected only the button, got %d children", div.ChildCount())
	}
	btn := div.FirstChild()
	if btn.Type != WidgetNode || btn.Widget.Width() != 40 {
		t.Errorf("expected a widget node, got %v", btn.Type)
	}
	if gotText != "Press me" {
		t.Errorf("factory text = %q", gotText)
	}
	if len(doc.Warnings) != 1 {
		t.Errorf("expected the failing factory to be reported, got %v", doc.Warnings)
	}
}

func TestParser_SyntaxError(t *testing.T) {
	_, err := Parse(`<div style="unterminated></div>`)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}
