package dom

import (
	"errors"
	"testing"
)

func TestTokenizer_SimpleStartTag(t *testing.T) {
	tokenizer := NewTokenizer("<div>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag {
		t.Errorf("expected TokenStartTag, got %v", token.Type)
	}
	if token.TagName != "div" {
		t.Errorf("expected tag name 'div', got '%s'", token.TagName)
	}
}

func TestTokenizer_TagWithAttributes(t *testing.T) {
	tokenizer := NewTokenizer(`<DIV style="color: red" id='main' hidden data-x=1>`)
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.TagName != "div" {
		t.Errorf("expected lowercased tag name, got '%s'", token.TagName)
	}
	if token.Attributes["style"] != "color: red" {
		t.Errorf("expected style='color: red', got '%s'", token.Attributes["style"])
	}
	if token.Attributes["id"] != "main" {
		t.Errorf("expected id='main', got '%s'", token.Attributes["id"])
	}
	if v, ok := token.Attributes["hidden"]; !ok || v != "" {
		t.Errorf("expected empty boolean attribute, got %q, %v", v, ok)
	}
	if token.Attributes["data-x"] != "1" {
		t.Errorf("expected unquoted value '1', got '%s'", token.Attributes["data-x"])
	}
}

func TestTokenizer_CompleteSequence(t *testing.T) {
	tokenizer := NewTokenizer("<div>Hello</div>")
	token1, _ := tokenizer.NextToken()
	if token1.Type != TokenStartTag || token1.TagName != "div" {
		t.Error("expected start tag 'div'")
	}
	token2, _ := tokenizer.NextToken()
	if token2.Type != TokenText || token2.Text != "Hello" {
		t.Error("expected text 'Hello'")
	}
	token3, _ := tokenizer.NextToken()
	if token3.Type != TokenEndTag {
		t.Error("expected end tag")
	}
	token4, _ := tokenizer.NextToken()
	if token4.Type != TokenEOF {
		t.Error("expected EOF")
	}
}

func TestTokenizer_SelfClosing(t *testing.T) {
	token, err := NewTokenizer(`<slider value="0.5" />`).NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !token.SelfClosing || token.Attributes["value"] != "0.5" {
		t.Errorf("unexpected token %+v", token)
	}
}

func TestTokenizer_SkipsCommentsAndDoctype(t *testing.T) {
	tokenizer := NewTokenizer("<!DOCTYPE html><!-- a <b> comment --><p>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag || token.TagName != "p" {
		t.Errorf("expected <p>, got %+v", token)
	}
}

func TestTokenizer_TextWhitespaceAndEntities(t *testing.T) {
	tokenizer := NewTokenizer("<b>  \n  </b>\n  a   &amp;\tb  <i>")
	var texts []string
	for {
		token, err := tokenizer.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Type == TokenEOF {
			break
		}
		if token.Type == TokenText {
			texts = append(texts, token.Text)
		}
	}
	if len(texts) != 1 || texts[0] != " a & b " {
		t.Errorf("expected one collapsed text run, got %q", texts)
	}
}

func TestTokenizer_ReadRawUntil(t *testing.T) {
	tokenizer := NewTokenizer(`<script>if (a < b) x();</SCRIPT><p>`)
	if _, err := tokenizer.NextToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tokenizer.ReadRawUntil("script"); got != "if (a < b) x();" {
		t.Errorf("unexpected raw text %q", got)
	}
	token, _ := tokenizer.NextToken()
	if token.TagName != "p" {
		t.Errorf("expected <p> after the script, got %+v", token)
	}
}

func TestTokenizer_Errors(t *testing.T) {
	for _, input := range []string{
		"<>",
		"<div",
		`<div id="open>`,
		"</div",
	} {
		_, err := NewTokenizer(input).NextToken()
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("%q: expected a SyntaxError, got %v", input, err)
		}
	}
}
