package paint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/geom"
	"boxwright/pkg/text"
)

var red = color.RGBA{R: 255, A: 255}

func TestGG_FillRect(t *testing.T) {
	faces, err := text.NewFaces("")
	require.NoError(t, err)
	s := NewGG(20, 20, faces)
	s.Clear(color.White)
	s.FillRect(geom.Rect{X: 5, Y: 5, Width: 10, Height: 10}, red)

	img := s.Image()
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, g, b, _ = img.At(2, 2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestGG_ClipAndReset(t *testing.T) {
	faces, err := text.NewFaces("")
	require.NoError(t, err)
	s := NewGG(20, 20, faces)
	s.Clear(color.White)

	s.Clip(geom.Rect{X: 0, Y: 0, Width: 10, Height: 20})
	s.FillRect(geom.Rect{X: 0, Y: 0, Width: 20, Height: 20}, red)
	s.Reset()

	_, g, _, _ := s.Image().At(15, 5).RGBA()
	assert.Equal(t, uint32(0xffff), g, "pixel outside the clip must stay white")
	_, g, _, _ = s.Image().At(5, 5).RGBA()
	assert.Zero(t, g)
}

func TestGG_TranslateMovesDrawing(t *testing.T) {
	faces, err := text.NewFaces("")
	require.NoError(t, err)
	s := NewGG(20, 20, faces)
	s.Clear(color.White)
	s.Translate(10, 10)
	s.FillRect(geom.Rect{Width: 5, Height: 5}, red)
	s.Reset()

	_, g, _, _ := s.Image().At(12, 12).RGBA()
	assert.Zero(t, g)
	_, g, _, _ = s.Image().At(2, 2).RGBA()
	assert.Equal(t, uint32(0xffff), g)
}

func TestRecorder_RecordsInOrder(t *testing.T) {
	var r Recorder
	r.FillRect(geom.Rect{Width: 1, Height: 1}, red)
	r.DrawText("hi", 1, 2, 12, red)
	r.FillRect(geom.Rect{X: 3, Width: 1, Height: 1}, red)

	require.Len(t, r.Ops, 3)
	assert.Equal(t, OpDrawText, r.Ops[1].Kind)
	assert.Equal(t, "hi", r.Ops[1].Text)
	assert.Len(t, r.OfKind(OpFillRect), 2)
}
