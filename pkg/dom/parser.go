package dom

import (
	"fmt"
	"strings"
)

// WidgetFactory builds the Widget for a widget tag. text is the tag's
// content with whitespace collapsed.
type WidgetFactory func(attrs map[string]string, text string) (Widget, error)

type ParseOptions struct {
	// Widgets maps tag names to the factories creating their widgets.
	// Widget tags are leaves: their content is passed to the factory as
	// text instead of being parsed.
	Widgets map[string]WidgetFactory
}

type Parser struct {
	tokenizer *Tokenizer
	doc       *Document
	opts      ParseOptions
	stack     []*Node
}

func NewParser(markup string, opts ParseOptions) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(markup),
		doc:       NewDocument(),
		opts:      opts,
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}

	for {
		token, err := p.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenStartTag:
			p.startTag(token)

		case TokenText:
			p.currentParent().AppendText(token.Text)

		case TokenEndTag:
			p.closeTag(token.TagName)
		}
	}

	return p.doc, nil
}

func (p *Parser) startTag(token Token) {
	switch token.TagName {
	case "script":
		if !token.SelfClosing {
			p.doc.Scripts = append(p.doc.Scripts, p.tokenizer.ReadRawUntil("script"))
		}
		return
	case "style":
		// no cascade; only inline style attributes apply
		if !token.SelfClosing {
			p.tokenizer.ReadRawUntil("style")
		}
		p.doc.Warnings = append(p.doc.Warnings, fmt.Errorf("<style> elements are ignored"))
		return
	}

	if factory, ok := p.opts.Widgets[token.TagName]; ok {
		p.widget(token, factory)
		return
	}

	if isBlockElement(token.TagName) {
		p.autoCloseP()
	}

	node := p.doc.CreateElement(token.TagName, token.Attributes)
	p.currentParent().AppendChild(node)

	if !token.SelfClosing && !isVoidElement(token.TagName) {
		p.push(node)
	}
}

func (p *Parser) widget(token Token, factory WidgetFactory) {
	var content string
	if !token.SelfClosing && !isVoidElement(token.TagName) {
		content = strings.Join(strings.Fields(p.tokenizer.ReadRawUntil(token.TagName)), " ")
	}
	w, err := factory(token.Attributes, content)
	if err != nil {
		p.doc.Warnings = append(p.doc.Warnings, fmt.Errorf("<%s>: %w", token.TagName, err))
		return
	}
	p.currentParent().AppendChild(p.doc.CreateWidget(token.TagName, w, token.Attributes))
}

// currentParent returns the current parent node (top of stack)
func (p *Parser) currentParent() *Node {
	if len(p.stack) == 0 {
		return p.doc.Root
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(node *Node) {
	p.stack = append(p.stack, node)
}

// closeTag pops the stack until the matching tag is found and closed
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
	// Tag not found on stack; ignore the end tag
}

// autoCloseP closes an open <p> element if one is on the stack
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		if isBlockElement(p.stack[i].TagName) {
			return
		}
	}
}

// isBlockElement returns true for elements that auto-close <p>
func isBlockElement(tagName string) bool {
	switch tagName {
	case "article", "aside", "blockquote", "div", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "li",
		"main", "nav", "ol", "p", "pre", "section", "ul":
		return true
	}
	return false
}

// Parse parses markup without widget tags.
func Parse(markup string) (*Document, error) {
	return NewParser(markup, ParseOptions{}).Parse()
}

// ParseWith parses markup, creating widget tags through opts.Widgets.
func ParseWith(markup string, opts ParseOptions) (*Document, error) {
	return NewParser(markup, opts).Parse()
}
