package render

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/dom"
	"boxwright/pkg/geom"
	"boxwright/pkg/layout"
	"boxwright/pkg/paint"
	"boxwright/pkg/text"
)

func layoutMarkup(t *testing.T, markup string, w, h float64) *layout.PaintNode {
	t.Helper()
	doc, err := dom.Parse(markup)
	require.NoError(t, err)
	pn, err := layout.New(layout.WithMeasurer(text.Monospace{Advance: 1})).Layout(doc.Root, geom.Rect{Width: w, Height: h})
	require.NoError(t, err)
	return pn
}

func TestRender_BackgroundCoversPaddingBox(t *testing.T) {
	pn := layoutMarkup(t, `<div style="margin: 5px; padding: 3px; width: 10px; height: 10px; background: red"></div>`, 100, 100)

	var rec paint.Recorder
	NewRenderer(&rec).Render(pn)

	fills := rec.OfKind(paint.OpFillRect)
	require.Len(t, fills, 1)
	if diff := cmp.Diff(geom.Rect{X: 5, Y: 5, Width: 16, Height: 16}, fills[0].Rect); diff != "" {
		t.Errorf("background rect mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SolidBorderSides(t *testing.T) {
	pn := layoutMarkup(t, `<div style="border: 2px solid; width: 10px; height: 10px"></div>`, 100, 100)

	var rec paint.Recorder
	NewRenderer(&rec).Render(pn)

	want := []geom.Rect{
		{X: 0, Y: 0, Width: 14, Height: 2},
		{X: 0, Y: 12, Width: 14, Height: 2},
		{X: 0, Y: 2, Width: 2, Height: 10},
		{X: 12, Y: 2, Width: 2, Height: 10},
	}
	var got []geom.Rect
	for _, op := range rec.OfKind(paint.OpFillRect) {
		got = append(got, op.Rect)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("border rects mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DottedBorderUsesPixels(t *testing.T) {
	pn := layoutMarkup(t, `<div style="border-top: 1px dotted; width: 10px; height: 0"></div>`, 100, 100)

	var rec paint.Recorder
	NewRenderer(&rec).Render(pn)

	assert.Empty(t, rec.OfKind(paint.OpFillRect))
	assert.Len(t, rec.OfKind(paint.OpSetPixel), 5)
}

func TestRender_TextAndBackground(t *testing.T) {
	pn := layoutMarkup(t, `<p style="font-size: 10px; color: blue">hi there</p>`, 200, 100)

	var rec paint.Recorder
	NewRenderer(&rec, WithBackground(color.White)).Render(pn)

	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, paint.OpReset, rec.Ops[0].Kind)
	assert.Equal(t, pn.MarginBox, rec.Ops[1].Rect)

	texts := rec.OfKind(paint.OpDrawText)
	require.Len(t, texts, 1)
	assert.Equal(t, "hi there", texts[0].Text)
}
