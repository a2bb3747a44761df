package dom

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

type Token struct {
	Type        TokenType
	TagName     string
	Attributes  map[string]string
	Text        string
	SelfClosing bool // tag ended with />
}

// SyntaxError reports malformed markup at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("markup: %s at offset %d", e.Msg, e.Pos) }

type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{input: markup}
}

func (t *Tokenizer) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (t *Tokenizer) NextToken() (Token, error) {
	for t.pos < len(t.input) {
		if t.input[t.pos] != '<' {
			tok, ok := t.readText()
			if ok {
				return tok, nil
			}
			continue
		}
		if t.skipMarkupDeclaration() {
			continue
		}
		return t.readTag()
	}
	return Token{Type: TokenEOF}, nil
}

// skipMarkupDeclaration consumes a comment, doctype or processing
// instruction at the current position.
func (t *Tokenizer) skipMarkupDeclaration() bool {
	rest := t.input[t.pos:]
	var end string
	switch {
	case strings.HasPrefix(rest, "<!--"):
		end = "-->"
	case strings.HasPrefix(rest, "<?"):
		end = "?>"
	case strings.HasPrefix(rest, "<!"):
		end = ">"
	default:
		return false
	}
	if i := strings.Index(rest[2:], end); i >= 0 {
		t.pos += 2 + i + len(end)
	} else {
		t.pos = len(t.input)
	}
	return true
}

func (t *Tokenizer) readTag() (Token, error) {
	t.pos++ // '<'

	isEndTag := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		isEndTag = true
		t.pos++
	}
	tagName := t.readName(isTagNameChar)
	if tagName == "" {
		return Token{}, t.errorf("expected tag name")
	}
	if isEndTag {
		if err := t.skipTo('>'); err != nil {
			return Token{}, err
		}
		t.pos++
		return Token{Type: TokenEndTag, TagName: tagName}, nil
	}

	attributes := make(map[string]string)
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return Token{}, t.errorf("unexpected end of input in <%s>", tagName)
		}
		switch t.input[t.pos] {
		case '>':
			t.pos++
			return Token{Type: TokenStartTag, TagName: tagName, Attributes: attributes}, nil
		case '/':
			t.pos++
			t.skipWhitespace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				return Token{Type: TokenStartTag, TagName: tagName, Attributes: attributes, SelfClosing: true}, nil
			}
			continue
		}
		name, value, err := t.readAttribute()
		if err != nil {
			return Token{}, err
		}
		attributes[name] = value
	}
}

func (t *Tokenizer) readName(accept func(byte) bool) string {
	start := t.pos
	for t.pos < len(t.input) && accept(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) readAttribute() (string, string, error) {
	name := t.readName(isAttributeNameChar)
	if name == "" {
		return "", "", t.errorf("expected attribute name")
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return name, "", nil
	}
	t.pos++
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return "", "", t.errorf("expected value for attribute %q", name)
	}

	quote := t.input[t.pos]
	if quote == '"' || quote == '\'' {
		t.pos++
		end := strings.IndexByte(t.input[t.pos:], quote)
		if end < 0 {
			return "", "", t.errorf("unterminated value for attribute %q", name)
		}
		value := t.input[t.pos : t.pos+end]
		t.pos += end + 1
		return name, gohtml.UnescapeString(value), nil
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return name, t.input[start:t.pos], nil
}

// readText reads up to the next tag. Whitespace-only runs between tags are
// dropped and reported as !ok.
func (t *Tokenizer) readText() (Token, bool) {
	start := t.pos
	if i := strings.IndexByte(t.input[t.pos:], '<'); i >= 0 {
		t.pos += i
	} else {
		t.pos = len(t.input)
	}
	raw := t.input[start:t.pos]
	if strings.TrimSpace(raw) == "" {
		return Token{}, false
	}
	return Token{Type: TokenText, Text: gohtml.UnescapeString(normalizeWhitespace(raw))}, true
}

// normalizeWhitespace collapses runs of whitespace to a single space,
// keeping one space at either boundary that had any.
func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	result := strings.Join(fields, " ")
	if unicode.IsSpace(rune(s[0])) {
		result = " " + result
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		result += " "
	}
	return result
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func (t *Tokenizer) skipTo(target byte) error {
	i := strings.IndexByte(t.input[t.pos:], target)
	if i < 0 {
		t.pos = len(t.input)
		return t.errorf("expected '%c' but reached end of input", target)
	}
	t.pos += i
	return nil
}

// ReadRawUntil returns the raw content up to the closing tag for endTag
// and consumes that tag. Used for <script>, where '<' does not start a tag.
// Without a closing tag the rest of the input is returned.
func (t *Tokenizer) ReadRawUntil(endTag string) string {
	needle := "</" + endTag + ">"
	rest := t.input[t.pos:]
	for i := 0; i+len(needle) <= len(rest); i++ {
		if strings.EqualFold(rest[i:i+len(needle)], needle) {
			t.pos += i + len(needle)
			return rest[:i]
		}
	}
	t.pos = len(t.input)
	return rest
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttributeNameChar(c byte) bool {
	return isTagNameChar(c) || c == ':' || c == '.'
}
