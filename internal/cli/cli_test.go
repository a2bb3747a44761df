package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/images"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerFromContext_Default(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
	assert.NotNil(t, configFromContext(context.Background()))
}

func TestRender_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "box.html", `<div style="background-color: red; width: 40px; height: 20px"></div>`)
	out := filepath.Join(dir, "box.png")

	_, err := execute(t, "render", scene, "-o", out, "--width", "100", "--height", "50")
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b}, "inside the div")
	r, g, b, _ = img.At(80, 40).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "background")
}

func TestRender_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "page.html", `<p>hi</p>`)

	_, err := execute(t, "render", scene, "--width", "50", "--height", "20")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "page.png"))
}

func TestRender_UnsupportedStyleFails(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "abs.html", `<div style="position: absolute"></div>`)

	_, err := execute(t, "render", scene, "-o", filepath.Join(dir, "abs.png"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "abs.png"))
}

func TestTree_RunsScriptsBeforeLayout(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "s.html", `<div id="d"><p id="t">before</p></div>
<script>document.getElementById("t").textContent = "after";</script>`)

	out, err := execute(t, "tree", scene, "--width", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "div")
	assert.Contains(t, out, "after")
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "(0,0 200×")
}

func TestTree_Boxes(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "b.html", `<div style="padding: 5px"></div>`)

	out, err := execute(t, "tree", scene, "--boxes", "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "content (5,5 90×0)")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "boxwright.toml", "[viewport]\nwidth = 120\n")
	scene := writeFile(t, dir, "c.html", `<div></div>`)

	out, err := execute(t, "--config", cfg, "tree", scene)
	require.NoError(t, err)
	assert.Contains(t, out, "(0,0 120×")

	bad := writeFile(t, dir, "bad.toml", "[viewport]\nwidth = -1\n")
	_, err = execute(t, "--config", bad, "tree", scene)
	require.Error(t, err)
}

func TestPack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dot.png")
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	_, err = execute(t, "pack", src)
	require.NoError(t, err)

	packed, err := os.Open(filepath.Join(dir, "dot.pxd"))
	require.NoError(t, err)
	defer packed.Close()
	got, err := images.DecodePixelDump(packed)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, color.NRGBAModel.Convert(got.At(2, 1)))
}

func TestPack_MissingImage(t *testing.T) {
	_, err := execute(t, "pack", filepath.Join(t.TempDir(), "none.png"))
	require.Error(t, err)
}
