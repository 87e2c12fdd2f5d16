package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpulife/internal/app"
	"gpulife/internal/core"
)

func TestParsePattern(t *testing.T) {
	size, cells, err := parsePattern(strings.NewReader("!glider\n.O\n..O\nOOO\n\n"))
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 3, H: 3}, size)
	assert.Equal(t, []uint8{0, 1, 0, 0, 0, 1, 1, 1, 1}, cells)

	_, _, err = parsePattern(strings.NewReader("!only a comment\n"))
	assert.Error(t, err)
}

func TestRunBlinkerPattern(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "blinker.txt")
	require.NoError(t, os.WriteFile(pattern, []byte(".....\n..#..\n..#..\n..#..\n.....\n"), 0o644))
	out := filepath.Join(dir, "final.png")

	var buf bytes.Buffer
	opts := options{steps: 3, every: 1, ascii: true, pngPath: out, pngScale: 2, pattern: pattern}
	require.NoError(t, run(app.NewConfig(), opts, &buf))

	got := buf.String()
	for _, want := range []string{
		"generation 0: 3 alive",
		"generation 1: 3 alive",
		"generation 3: 3 alive",
		".....\n.....\n.###.\n.....\n.....\n",
		"passes 3, uploads 1",
	} {
		assert.Contains(t, got, want)
	}

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestRunRandomIsDeterministic(t *testing.T) {
	cfg := app.NewConfig()
	cfg.GridWidth, cfg.GridHeight = 24, 16
	cfg.WindowWidth, cfg.WindowHeight = 24, 16
	cfg.Density = 0.3
	opts := options{steps: 5, every: 5, ascii: true}

	var a, b bytes.Buffer
	require.NoError(t, run(cfg, opts, &a))
	require.NoError(t, run(cfg, opts, &b))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "generation 5:")
}

func TestRunWritesRenderedFrame(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "block.txt")
	require.NoError(t, os.WriteFile(pattern, []byte("....\n.##.\n.##.\n....\n"), 0o644))
	frame := filepath.Join(dir, "frame.png")

	cfg := app.NewConfig()
	cfg.WindowWidth, cfg.WindowHeight = 40, 40
	var buf bytes.Buffer
	require.NoError(t, run(cfg, options{steps: 1, pattern: pattern, frame: frame}, &buf))
	assert.Contains(t, buf.String(), "passes 2, uploads 1")

	f, err := os.Open(frame)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 40, 40), img.Bounds())
	assert.Equal(t, color.RGBA{A: 255}, color.RGBAModel.Convert(img.At(15, 15)), "alive cell")
	assert.Equal(t, color.RGBA{R: 128, G: 255, B: 128, A: 255}, color.RGBAModel.Convert(img.At(5, 5)), "background")
}
