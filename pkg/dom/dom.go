// Package dom is the styled element tree fed to layout. Nodes live in an
// arena tree owned by their Document; a node is created detached and
// attached once.
package dom

import (
	"iter"
	"sort"
	"strings"

	"boxwright/pkg/css"
	"boxwright/pkg/geom"
	"boxwright/pkg/paint"
	"boxwright/pkg/tree"
)

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	// WidgetNode is a leaf backed by a Widget that measures and draws itself.
	WidgetNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case WidgetNode:
		return "widget"
	}
	return "unknown"
}

// Widget is the contract a leaf element fulfils for layout and paint.
type Widget interface {
	Width() float64
	Height(width float64) float64
	// Draw paints the widget with its top-left corner at the origin.
	Draw(s paint.Surface)
}

// Placer is implemented by widgets whose drawing depends on the size
// layout assigned them. Place is called with the content size right
// before each Draw.
type Placer interface {
	Place(size geom.Size)
}

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Widget     Widget

	// Style is the computed style of element and widget nodes. Text nodes
	// use their parent's, see ComputedStyle.
	Style *css.Style

	doc     *Document
	id      tree.NodeID
	changed bool
}

type Document struct {
	tree    *tree.Tree[*Node]
	Root    *Node
	Scripts []string // JavaScript from <script> tags

	// Warnings collects recoverable problems found while building the
	// document, such as invalid style declarations.
	Warnings []error
}

func NewDocument() *Document {
	doc := &Document{
		tree:    tree.New[*Node](),
		Scripts: make([]string, 0),
	}
	doc.Root = doc.CreateElement("document", nil)
	return doc
}

func (d *Document) add(n *Node) *Node {
	n.doc = d
	n.id = d.tree.Add(n)
	return n
}

// CreateElement creates a detached element with the user-agent display for
// tag and the declarations of its style attribute.
func (d *Document) CreateElement(tag string, attrs map[string]string) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	n := &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: attrs,
	}
	d.restyle(n)
	return d.add(n)
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	return d.add(&Node{Type: TextNode, Text: text})
}

// CreateWidget creates a detached leaf backed by w.
func (d *Document) CreateWidget(tag string, w Widget, attrs map[string]string) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	n := &Node{
		Type:       WidgetNode,
		TagName:    strings.ToLower(tag),
		Attributes: attrs,
		Widget:     w,
	}
	d.restyle(n)
	return d.add(n)
}

// restyle recomputes n.Style from the user-agent defaults and the style
// attribute. Invalid declarations are skipped and recorded as warnings.
func (d *Document) restyle(n *Node) {
	style := css.NewStyle()
	if defaultInline(n.TagName) {
		style.Display = css.DisplayInline
	}
	if err := style.Apply(n.Attributes["style"]); err != nil {
		d.Warnings = append(d.Warnings, &StyleError{Tag: n.TagName, Err: err})
	}
	n.Style = style
}

// StyleError reports invalid declarations in an element's style attribute.
type StyleError struct {
	Tag string
	Err error
}

func (e *StyleError) Error() string { return "<" + e.Tag + "> style: " + e.Err.Error() }
func (e *StyleError) Unwrap() error { return e.Err }

// defaultInline lists the elements displayed inline by default
func defaultInline(tag string) bool {
	switch tag {
	case "span", "a", "b", "i", "em", "strong", "label":
		return true
	}
	return false
}

// Document returns the document owning n.
func (n *Node) Document() *Document { return n.doc }

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// SetAttribute sets an attribute. Setting "style" recomputes the style.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
	if name == "style" && n.Type != TextNode {
		n.doc.restyle(n)
	}
	n.changed = true
}

// SetText replaces the content of a text node.
func (n *Node) SetText(text string) {
	n.Text = text
	n.changed = true
}

// AppendChild attaches child as n's last child. It panics if child is
// already attached; see IsOrphan.
func (n *Node) AppendChild(child *Node) {
	n.doc.tree.AppendChild(n.id, child.id)
	n.changed = true
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AppendChild(n.doc.CreateText(text))
}

// IsOrphan reports whether n can be appended somewhere.
func (n *Node) IsOrphan() bool {
	return n != n.doc.Root && n.doc.tree.IsOrphan(n.id)
}

func (n *Node) node(id tree.NodeID) *Node {
	if id == tree.None {
		return nil
	}
	return n.doc.tree.Value(id)
}

func (n *Node) Parent() *Node      { return n.node(n.doc.tree.Parent(n.id)) }
func (n *Node) FirstChild() *Node  { return n.node(n.doc.tree.FirstChild(n.id)) }
func (n *Node) LastChild() *Node   { return n.node(n.doc.tree.LastChild(n.id)) }
func (n *Node) NextSibling() *Node { return n.node(n.doc.tree.NextSibling(n.id)) }
func (n *Node) PrevSibling() *Node { return n.node(n.doc.tree.PrevSibling(n.id)) }

// Children yields n's children in order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for id := range n.doc.tree.Children(n.id) {
			if !yield(n.doc.tree.Value(id)) {
				return
			}
		}
	}
}

// ChildNodes returns n's children as a slice.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, 0)
	for c := range n.Children() {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return n.doc.tree.ChildCount(n.id) }

// Walk visits n and its descendants depth first. Returning false from fn
// skips a node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	n.doc.tree.Walk(n.id, func(id tree.NodeID) bool {
		return fn(n.doc.tree.Value(id))
	})
}

// ComputedStyle returns the style layout should use for n. Text nodes
// inherit their parent's.
func (n *Node) ComputedStyle() *css.Style {
	if n.Style != nil {
		return n.Style
	}
	if p := n.Parent(); p != nil {
		return p.ComputedStyle()
	}
	return css.NewStyle()
}

// IsInline reports whether n is inline-level. Text is always inline.
func (n *Node) IsInline() bool {
	if n.Type == TextNode {
		return true
	}
	return n.Style.Display == css.DisplayInline
}

// TakeChanged reports whether n was mutated since the last call and clears
// the flag. Call it once per frame.
func (n *Node) TakeChanged() bool {
	c := n.changed
	n.changed = false
	return c
}

// TextContent returns the concatenated text of n's subtree.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// GetElementByID finds the first node under n whose id attribute matches.
func (n *Node) GetElementByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := c.GetAttribute("id"); ok && v == id && c.Type != TextNode {
			found = c
			return false
		}
		return true
	})
	return found
}

// Serialize returns the markup of this node's children, but not the node's
// own tags.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for child := range n.Children() {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// SerializeOuter returns the node's own tags plus all descendants.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(escapeAttr(n.Attributes[k]))
			sb.WriteByte('"')
		}
	}

	if n.Type == WidgetNode || isVoidElement(n.TagName) {
		sb.WriteString(">")
		return
	}

	sb.WriteByte('>')
	for child := range n.Children() {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
