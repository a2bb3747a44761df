package layout

import (
	"iter"
	"strings"

	"boxwright/pkg/css"
	"boxwright/pkg/dom"
	"boxwright/pkg/tree"
)

// FormattingContext is the kind of formatting context a box establishes
// for its children.
type FormattingContext int

const (
	// ContextNone: the box's children join the context the box is in.
	ContextNone FormattingContext = iota
	// ContextBlock: a new, independent block formatting context
	// (overflow other than visible).
	ContextBlock
	ContextFlex
	ContextFloat
)

func (c FormattingContext) String() string {
	switch c {
	case ContextBlock:
		return "block"
	case ContextFlex:
		return "flex"
	case ContextFloat:
		return "float"
	}
	return "none"
}

// LayoutNode is one box of the box tree.
type LayoutNode struct {
	// Element is the backing element, nil for anonymous boxes.
	Element *dom.Node

	// ChildrenAreInline is fixed by the first child inserted; all later
	// children must match it.
	ChildrenAreInline bool

	Context FormattingContext

	// mainWidth, when set, is the margin-box width a row flex container
	// distributed to the box. It replaces the box's own width.
	mainWidth    float64
	hasMainWidth bool
}

// Anonymous reports whether the box was inserted by the builder.
func (n *LayoutNode) Anonymous() bool { return n.Element == nil }

// Style returns the element's computed style. Anonymous boxes have the
// initial style.
func (n *LayoutNode) Style() *css.Style {
	if n.Element == nil {
		return anonymousStyle
	}
	return n.Element.ComputedStyle()
}

var anonymousStyle = css.NewStyle()

// isInlineLevel reports whether the box takes part in an inline formatting
// context. Anonymous wrappers are block-level boxes holding inline content.
func (n *LayoutNode) isInlineLevel() bool {
	return n.Element != nil && n.Element.IsInline()
}

func (n *LayoutNode) String() string {
	var sb strings.Builder
	switch {
	case n.Element == nil:
		sb.WriteString("anonymous")
	case n.Element.Type == dom.TextNode:
		sb.WriteString("text ")
		sb.WriteString(quoteTrunc(n.Element.Text, 24))
	default:
		sb.WriteString(n.Element.TagName)
	}
	if n.ChildrenAreInline {
		sb.WriteString(" [inline]")
	}
	if n.Context != ContextNone {
		sb.WriteString(" (" + n.Context.String() + ")")
	}
	return sb.String()
}

func quoteTrunc(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return `"` + string(r[:max]) + `…"`
	}
	return `"` + s + `"`
}

// BoxTree is the normalized box tree of one layout pass.
type BoxTree struct {
	t    *tree.Tree[*LayoutNode]
	root tree.NodeID
}

func (bt *BoxTree) Root() tree.NodeID                             { return bt.root }
func (bt *BoxTree) Node(id tree.NodeID) *LayoutNode               { return bt.t.Value(id) }
func (bt *BoxTree) Len() int                                      { return bt.t.Len() }
func (bt *BoxTree) Children(id tree.NodeID) iter.Seq[tree.NodeID] { return bt.t.Children(id) }
func (bt *BoxTree) ChildCount(id tree.NodeID) int                 { return bt.t.ChildCount(id) }

// Walk visits every box depth first with its depth below the root.
func (bt *BoxTree) Walk(fn func(id tree.NodeID, depth int)) {
	var visit func(id tree.NodeID, depth int)
	visit = func(id tree.NodeID, depth int) {
		fn(id, depth)
		for c := range bt.t.Children(id) {
			visit(c, depth+1)
		}
	}
	visit(bt.root, 0)
}

// insert appends child under parent, enforcing that a box's children are
// uniformly inline-level or block-level.
func (bt *BoxTree) insert(parent tree.NodeID, child *LayoutNode) tree.NodeID {
	p := bt.t.Value(parent)
	inline := child.isInlineLevel()
	if bt.t.FirstChild(parent) == tree.None {
		p.ChildrenAreInline = inline
	} else if p.ChildrenAreInline != inline {
		invariantf("mixed inline and block children under %s", p)
	}
	id := bt.t.Add(child)
	bt.t.AppendChild(parent, id)
	return id
}

// inlineWrapper returns the anonymous box inline children of parent go
// into: the last child if it is one, else a new one.
func (bt *BoxTree) inlineWrapper(parent tree.NodeID) tree.NodeID {
	if last := bt.t.LastChild(parent); last != tree.None {
		if n := bt.t.Value(last); n.Anonymous() && n.ChildrenAreInline {
			return last
		}
	}
	return bt.insert(parent, &LayoutNode{})
}

// checkSupported reports the first box whose formatting context this
// engine cannot lay out.
func (bt *BoxTree) checkSupported() error {
	var err error
	bt.Walk(func(id tree.NodeID, _ int) {
		if n := bt.Node(id); err == nil && n.Context == ContextFloat {
			err = notSupportedf("float on <%s>", n.Element.TagName)
		}
	})
	return err
}

// Build normalizes the element tree under root into a box tree. The root
// is always laid out as a block container.
func (e *Engine) Build(root *dom.Node) (*BoxTree, error) {
	if err := checkStyle(root); err != nil {
		return nil, err
	}
	bt := &BoxTree{t: tree.New[*LayoutNode]()}
	rootBox := &LayoutNode{Element: root, Context: contextOf(root.ComputedStyle())}
	bt.root = bt.t.Add(rootBox)
	if err := e.buildChildren(bt, bt.root, root); err != nil {
		return nil, err
	}
	return bt, nil
}

func (e *Engine) buildChildren(bt *BoxTree, parent tree.NodeID, el *dom.Node) error {
	parentInline := parent != bt.root && bt.Node(parent).isInlineLevel()

	for child := range el.Children() {
		if skipped(child) {
			continue
		}
		if err := checkStyle(child); err != nil {
			return err
		}

		box := &LayoutNode{Element: child}
		if child.Type != dom.TextNode {
			box.Context = contextOf(child.Style)
		}

		var id tree.NodeID
		switch {
		case box.isInlineLevel() && parentInline:
			id = bt.insert(parent, box)
		case box.isInlineLevel():
			id = bt.insert(bt.inlineWrapper(parent), box)
		case parentInline:
			return notSupportedf("block <%s> inside inline <%s>", child.TagName, el.TagName)
		default:
			id = bt.insert(parent, box)
		}

		if err := e.buildChildren(bt, id, child); err != nil {
			return err
		}
	}
	return nil
}

// skipped reports whether a node generates no box.
func skipped(n *dom.Node) bool {
	if n.Type == dom.TextNode {
		return strings.TrimSpace(n.Text) == ""
	}
	return n.Style.Display == css.DisplayNone
}

// checkStyle rejects styles with no formatting context implementation.
func checkStyle(n *dom.Node) error {
	if n.Type == dom.TextNode {
		return nil
	}
	s := n.Style
	switch s.Display {
	case css.DisplayGrid, css.DisplayTable, css.DisplayInlineBlock:
		return notSupportedf("display: %s on <%s>", s.Display, n.TagName)
	}
	switch s.Position {
	case css.PositionAbsolute, css.PositionFixed:
		return notSupportedf("position: %s on <%s>", s.Position, n.TagName)
	}
	if s.Display == css.DisplayFlex {
		switch s.FlexDirection {
		case css.FlexDirectionRowReverse, css.FlexDirectionColumnReverse:
			return notSupportedf("flex-direction: %s on <%s>", s.FlexDirection, n.TagName)
		}
	}
	return nil
}

func contextOf(s *css.Style) FormattingContext {
	switch {
	case s.Display == css.DisplayFlex:
		return ContextFlex
	case s.Float != css.FloatNone:
		return ContextFloat
	case s.Overflow != css.OverflowVisible:
		return ContextBlock
	}
	return ContextNone
}
