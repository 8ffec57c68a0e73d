package main

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/oksketch/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromFlags(t *testing.T) {
	for _, test := range []struct {
		vv, v, q bool
		exp      slog.Level
	}{
		{true, false, false, slog.LevelDebug},
		{true, false, true, slog.LevelDebug},
		{false, true, true, slog.LevelInfo},
		{false, false, true, slog.LevelError},
		{false, false, false, slog.LevelWarn},
	} {
		assert.Equal(t, test.exp, levelFromFlags(test.vv, test.v, test.q))
	}
}

func execute(args ...string) (string, error) {
	var logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetArgs(args)
	root.SetOut(&logs)
	root.SetErr(&logs)
	err := root.Execute()
	return logs.String(), err
}

func TestRenderPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "house.png")
	logs, err := execute("render", "testdata/house.toml", "-o", out, "-v")
	require.NoError(t, err)
	assert.Contains(t, logs, "image written")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestRenderPDF(t *testing.T) {
	dir := t.TempDir()
	_, err := execute("render", "testdata/house.toml", "-o", filepath.Join(dir, "house.pdf"))
	assert.ErrorIs(t, err, sketch.ErrNoPixelBuffer)

	out := filepath.Join(dir, "outline.pdf")
	logs, err := execute("render", "testdata/outline.toml", "--output", out)
	require.NoError(t, err)
	// the eraser step is not supported by the pdf backend
	assert.Contains(t, logs, "destination-out")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute("render", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = execute("render", "testdata/house.toml", "-o", filepath.Join(dir, "house.gif"))
	assert.ErrorContains(t, err, "unsupported output format")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[step]]\ntool = \"spray\"\n"), 0o644))
	_, err = execute("render", bad, "-o", filepath.Join(dir, "bad.png"), "-q")
	assert.ErrorContains(t, err, "unknown tool")

	_, err = execute("render")
	assert.Error(t, err)
}
