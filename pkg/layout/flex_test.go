package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/dom"
)

func TestDistributeFlex_Shrink(t *testing.T) {
	tests := []struct {
		container float64
		min, pref []float64
	}{
		{100, []float64{0, 0, 0}, []float64{40, 40, 40}},
		{100, []float64{30, 0, 0}, []float64{50, 50, 50}},
		{100, []float64{45, 40, 10}, []float64{60, 60, 60}},
		{50, []float64{30, 30}, []float64{40, 40}},
		{10, []float64{1, 2, 3, 4}, []float64{7, 1e6, 3, 9}},
		{33.3, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, []float64{11.1, 9.9, 7.7, 3.3, 5.5}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%v", tt.container, tt.pref), func(t *testing.T) {
			items := make([]FlexItem, len(tt.min))
			var sumMin float64
			for i := range items {
				items[i] = FlexItem{Min: tt.min[i], Preferred: tt.pref[i]}
				sumMin += tt.min[i]
			}

			rounds := DistributeFlex(tt.container, items)
			assert.LessOrEqual(t, rounds, len(items))

			var sum float64
			for i, it := range items {
				assert.GreaterOrEqual(t, it.Size, it.Min, "item %d", i)
				assert.LessOrEqual(t, it.Size, it.Preferred+1e-9, "item %d", i)
				sum += it.Size
			}
			if sumMin <= tt.container {
				assert.InDelta(t, tt.container, sum, 1e-6)
			} else {
				assert.InDelta(t, sumMin, sum, 1e-6)
			}
		})
	}
}

func TestDistributeFlex_GrowSharesEqually(t *testing.T) {
	items := []FlexItem{{Preferred: 50}, {Preferred: 50}, {Preferred: 50}}
	assert.Equal(t, 0, DistributeFlex(300, items))
	for _, it := range items {
		assert.Equal(t, 100.0, it.Size)
	}
}

func TestDistributeFlex_Empty(t *testing.T) {
	assert.Equal(t, 0, DistributeFlex(100, nil))
}

func TestFlex_RowPlacesItemsEdgeToEdge(t *testing.T) {
	doc := dom.NewDocument()
	row := doc.CreateElement("div", map[string]string{"style": "display: flex"})
	doc.Root.AppendChild(row)
	for _, h := range []float64{10, 30, 20} {
		row.AppendChild(box(doc, 50, h, ""))
	}

	pn, err := newTestEngine().Layout(doc.Root, viewport(300, 300))
	require.NoError(t, err)
	flex := pn.Children[0]
	require.Len(t, flex.Children, 3)

	for i, item := range flex.Children {
		assert.Equal(t, 100*float64(i), item.MarginBox.X, "item %d", i)
		assert.Equal(t, 100.0, item.MarginBox.Width, "item %d", i)
	}
	assert.Equal(t, 30.0, flex.ContentBox.Height, "tallest item")
}

func TestFlex_ColumnShrinksToDefiniteHeight(t *testing.T) {
	doc := dom.NewDocument()
	col := doc.CreateElement("div", map[string]string{"style": "display: flex; flex-direction: column; height: 60px"})
	doc.Root.AppendChild(col)
	for range 3 {
		col.AppendChild(box(doc, 10, 40, ""))
	}

	pn, err := newTestEngine().Layout(doc.Root, viewport(100, 500))
	require.NoError(t, err)
	flex := pn.Children[0]
	require.Len(t, flex.Children, 3)

	for i, item := range flex.Children {
		assert.InDelta(t, 20*float64(i), item.MarginBox.Y, 1e-9, "item %d", i)
		assert.InDelta(t, 20, item.MarginBox.Height, 1e-9, "item %d", i)
	}
	assert.Equal(t, 60.0, flex.ContentBox.Height)
}

func TestFlex_ColumnRespectsMinHeight(t *testing.T) {
	doc := dom.NewDocument()
	col := doc.CreateElement("div", map[string]string{"style": "display: flex; flex-direction: column; height: 60px"})
	doc.Root.AppendChild(col)
	col.AppendChild(box(doc, 10, 40, "min-height: 35px"))
	col.AppendChild(box(doc, 10, 40, ""))

	pn, err := newTestEngine().Layout(doc.Root, viewport(100, 500))
	require.NoError(t, err)
	items := pn.Children[0].Children
	require.Len(t, items, 2)
	assert.InDelta(t, 35, items[0].MarginBox.Height, 1e-9)
	assert.InDelta(t, 25, items[1].MarginBox.Height, 1e-9)
}

func TestFlex_RowDefiniteWidths(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  []float64 // item x positions; every item is 100 wide
	}{
		{"grow", "width: 50px", []float64{0, 100}},
		{"shrink", "width: 150px; min-width: 20px", []float64{0, 100}},
		{"shrink with edges", "width: 150px; padding: 0 5px", []float64{0, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dom.NewDocument()
			row := doc.CreateElement("div", map[string]string{"style": "display: flex"})
			doc.Root.AppendChild(row)
			row.AppendChild(box(doc, 0, 10, tt.style))
			row.AppendChild(box(doc, 0, 10, tt.style))

			pn, err := newTestEngine().Layout(doc.Root, viewport(200, 200))
			require.NoError(t, err)
			flex := pn.Children[0]
			require.Len(t, flex.Children, 2)

			for i, item := range flex.Children {
				assert.InDelta(t, tt.want[i], item.MarginBox.X, 1e-9, "item %d x", i)
				assert.InDelta(t, 100, item.MarginBox.Width, 1e-9, "item %d width", i)
			}
			last := flex.Children[1].MarginBox
			assert.LessOrEqual(t, last.X+last.Width, flex.ContentBox.Width+1e-9, "inside the container")
		})
	}
}

func TestFlex_RowShrinkStopsAtMinWidth(t *testing.T) {
	doc := dom.NewDocument()
	row := doc.CreateElement("div", map[string]string{"style": "display: flex"})
	doc.Root.AppendChild(row)
	row.AppendChild(box(doc, 0, 10, "width: 150px; min-width: 120px"))
	row.AppendChild(box(doc, 0, 10, "width: 150px"))

	pn, err := newTestEngine().Layout(doc.Root, viewport(200, 200))
	require.NoError(t, err)
	items := pn.Children[0].Children
	require.Len(t, items, 2)

	assert.InDelta(t, 120, items[0].ContentBox.Width, 1e-9)
	assert.InDelta(t, 80, items[1].ContentBox.Width, 1e-9)
	assert.InDelta(t, 120, items[1].MarginBox.X, 1e-9)
}
