package app

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpulife/internal/core"
	"gpulife/internal/life"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("life", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	return cfg, cfg.Parse(fs, args)
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 64, H: 64}, cfg.GridSize())
	assert.Equal(t, core.Size{W: 800, H: 600}, cfg.WindowSize())
	assert.Equal(t, 500*time.Millisecond, cfg.Period())
	assert.Equal(t, life.DefaultDensity, cfg.Density)
	assert.Equal(t, life.DefaultFill, cfg.FillColor())
}

func TestFlags(t *testing.T) {
	cfg, err := parse(t, "-grid-w", "128", "-grid-h", "32", "-period", "50", "-seed", "7", "-fill", "#ff8000")
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 128, H: 32}, cfg.GridSize())
	assert.Equal(t, 50*time.Millisecond, cfg.Period())
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, gputypes.Color{R: 1, G: 128.0 / 255, B: 0, A: 1}, cfg.FillColor())
}

func TestConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid_width = 10
grid_height = 12
period_ms = 100
density = 0.25
`), 0o644))

	cfg, err := parse(t, "-config", path, "-grid-w", "20")
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 20, H: 12}, cfg.GridSize(), "flags win over the file")
	assert.Equal(t, 100*time.Millisecond, cfg.Period())
	assert.Equal(t, 0.25, cfg.Density)
	assert.Equal(t, 800, cfg.WindowWidth, "keys missing from the file keep defaults")
}

func TestConfigFileRejectsUnknownKeys(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Decode(strings.NewReader("grid_width = 5\ngird_height = 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gird_height")
}

func TestConfigFileMissing(t *testing.T) {
	_, err := parse(t, "-config", filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cases := map[string][]string{
		"grid":    {"-grid-w", "0"},
		"window":  {"-window-h", "-1"},
		"period":  {"-period", "4"},
		"density": {"-density", "1.5"},
		"nan":     {"-density", "NaN"},
		"fill":    {"-fill", "green"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#00000080")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255, c.A, 1e-9)

	c, err = ParseColor("ffffff")
	require.NoError(t, err)
	assert.Equal(t, gputypes.Color{R: 1, G: 1, B: 1, A: 1}, c)

	_, err = ParseColor("#fff")
	assert.Error(t, err)
	for _, bad := range []string{"#gg0000", "#12345g", "#1234567g", "#-12345"} {
		_, err = ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := NewConfig()
	ctx := context.Background()
	assert.False(t, cfg.NewLogger(io.Discard).Enabled(ctx, slog.LevelDebug))
	cfg.Verbose = true
	assert.True(t, cfg.NewLogger(io.Discard).Enabled(ctx, slog.LevelDebug))
}
