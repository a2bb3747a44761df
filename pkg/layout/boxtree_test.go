package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/dom"
	"boxwright/pkg/tree"
)

func childBoxes(bt *BoxTree, id tree.NodeID) []*LayoutNode {
	var out []*LayoutNode
	for c := range bt.Children(id) {
		out = append(out, bt.Node(c))
	}
	return out
}

func TestBuild_WrapsInlineRunsInAnonymousBoxes(t *testing.T) {
	doc, err := dom.Parse(`<div>one <b>bold</b><p>two</p>three</div>`)
	require.NoError(t, err)

	bt, err := newTestEngine().Build(doc.Root)
	require.NoError(t, err)

	div := bt.t.FirstChild(bt.Root())
	kids := childBoxes(bt, div)
	require.Len(t, kids, 3)

	assert.True(t, kids[0].Anonymous())
	assert.True(t, kids[0].ChildrenAreInline)
	assert.Equal(t, "p", kids[1].Element.TagName)
	assert.True(t, kids[2].Anonymous())
	assert.False(t, bt.Node(div).ChildrenAreInline)

	// "one " and <b> share the first wrapper
	first := bt.t.FirstChild(div)
	assert.Equal(t, 2, bt.ChildCount(first))

	// the paragraph's own text gets its own wrapper
	p := bt.t.NextSibling(first)
	require.Equal(t, 1, bt.ChildCount(p))
	assert.True(t, bt.Node(bt.t.FirstChild(p)).Anonymous())
}

func TestBuild_ChildrenAreUniform(t *testing.T) {
	doc, err := dom.Parse(`<div>a<p>b<span>c</span></p><section><p>d</p>e</section></div>`)
	require.NoError(t, err)

	bt, err := newTestEngine().Build(doc.Root)
	require.NoError(t, err)

	bt.Walk(func(id tree.NodeID, _ int) {
		n := bt.Node(id)
		for c := range bt.Children(id) {
			assert.Equal(t, n.ChildrenAreInline, bt.Node(c).isInlineLevel(), "children of %s", n)
		}
	})
}

func TestBuild_SkipsHiddenAndBlankNodes(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.CreateElement("div", nil)
	doc.Root.AppendChild(div)
	div.AppendChild(doc.CreateText("   \n "))
	div.AppendChild(doc.CreateElement("p", map[string]string{"style": "display: none"}))
	div.AppendChild(doc.CreateElement("p", nil))

	bt, err := newTestEngine().Build(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, 3, bt.Len(), "root, div and the visible p")
}

func TestBuild_Contexts(t *testing.T) {
	doc, err := dom.Parse(`<div style="display: flex"></div><div style="overflow: hidden"></div><div></div>`)
	require.NoError(t, err)

	bt, err := newTestEngine().Build(doc.Root)
	require.NoError(t, err)
	kids := childBoxes(bt, bt.Root())
	require.Len(t, kids, 3)
	assert.Equal(t, ContextFlex, kids[0].Context)
	assert.Equal(t, ContextBlock, kids[1].Context)
	assert.Equal(t, ContextNone, kids[2].Context)
}

func TestLayout_NotSupported(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"float", `<div style="float: left"></div>`},
		{"absolute", `<div style="position: absolute"></div>`},
		{"fixed", `<div style="position: fixed"></div>`},
		{"grid", `<div style="display: grid"></div>`},
		{"table", `<div style="display: table"></div>`},
		{"inline-block", `<div style="display: inline-block"></div>`},
		{"row-reverse", `<div style="display: flex; flex-direction: row-reverse"></div>`},
		{"block in inline", `<span>a<div>b</div></span>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dom.Parse(tt.markup)
			require.NoError(t, err)
			pn, err := newTestEngine().Layout(doc.Root, viewport(100, 100))
			assert.Nil(t, pn)
			assert.ErrorIs(t, err, ErrNotSupported)
		})
	}
}

func TestInsert_MixedChildrenPanics(t *testing.T) {
	doc := dom.NewDocument()
	bt := &BoxTree{t: tree.New[*LayoutNode]()}
	bt.root = bt.t.Add(&LayoutNode{Element: doc.Root})
	bt.insert(bt.root, &LayoutNode{Element: doc.CreateText("x")})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrInvariant))
	}()
	bt.insert(bt.root, &LayoutNode{Element: doc.CreateElement("div", nil)})
}
