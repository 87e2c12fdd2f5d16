package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"

	"gpulife/internal/core"
	"gpulife/internal/life"
)

// Config represents the command-line parameters for the application. Fields
// can also come from a TOML file named by -config; flags given on the command
// line win over the file.
type Config struct {
	GridWidth    int     `toml:"grid_width"`
	GridHeight   int     `toml:"grid_height"`
	WindowWidth  int     `toml:"window_width"`
	WindowHeight int     `toml:"window_height"`
	PeriodMS     int     `toml:"period_ms"`
	Density      float64 `toml:"density"`
	Seed         int64   `toml:"seed"`
	Fill         string  `toml:"fill"`
	Verbose      bool    `toml:"verbose"`

	Path string `toml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		GridWidth:    64,
		GridHeight:   64,
		WindowWidth:  800,
		WindowHeight: 600,
		PeriodMS:     500,
		Density:      life.DefaultDensity,
		Seed:         1,
		Fill:         "#000000",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Path, "config", c.Path, "TOML file read before flags are applied")
	fs.IntVar(&c.GridWidth, "grid-w", c.GridWidth, "grid width in cells")
	fs.IntVar(&c.GridHeight, "grid-h", c.GridHeight, "grid height in cells")
	fs.IntVar(&c.WindowWidth, "window-w", c.WindowWidth, "initial window width in pixels")
	fs.IntVar(&c.WindowHeight, "window-h", c.WindowHeight, "initial window height in pixels")
	fs.IntVar(&c.PeriodMS, "period", c.PeriodMS, "milliseconds between generations")
	fs.Float64Var(&c.Density, "density", c.Density, "alive probability used when randomizing")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomizing")
	fs.StringVar(&c.Fill, "fill", c.Fill, "colour of alive cells as #rrggbb")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log debug output")
}

// Parse parses args into c. When -config names a file it is loaded first and
// the arguments are applied again on top of it.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.Path == "" {
		return c.Validate()
	}
	if err := c.Load(c.Path); err != nil {
		return err
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.Validate()
}

// Load reads TOML from path. Keys missing from the file leave fields alone.
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer f.Close()
	return c.Decode(f)
}

// Decode reads TOML from r.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("decode config: %s", strict.String())
		}
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("grid size %dx%d must be positive", c.GridWidth, c.GridHeight)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.PeriodMS < int(core.MinPeriod/time.Millisecond) {
		return fmt.Errorf("period %dms below minimum %v", c.PeriodMS, core.MinPeriod)
	}
	if math.IsNaN(c.Density) || c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("density %v outside [0, 1]", c.Density)
	}
	if _, err := ParseColor(c.Fill); err != nil {
		return err
	}
	return nil
}

// GridSize returns the configured grid dimensions.
func (c *Config) GridSize() core.Size { return core.Size{W: c.GridWidth, H: c.GridHeight} }

// WindowSize returns the configured window dimensions.
func (c *Config) WindowSize() core.Size { return core.Size{W: c.WindowWidth, H: c.WindowHeight} }

// Period returns the interval between generations.
func (c *Config) Period() time.Duration { return time.Duration(c.PeriodMS) * time.Millisecond }

// FillColor returns the parsed fill colour, falling back to black.
func (c *Config) FillColor() gputypes.Color {
	col, err := ParseColor(c.Fill)
	if err != nil {
		return life.DefaultFill
	}
	return col
}

// Options turns the config into controller options.
func (c *Config) Options() []life.Option {
	return []life.Option{
		life.WithRNG(core.NewRNG(c.Seed)),
		life.WithDensity(c.Density),
		life.WithFillColor(c.FillColor()),
	}
}

// NewLogger returns a text logger on w at the level selected by -v.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" into an opaque or translucent
// colour.
func ParseColor(s string) (gputypes.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	var r, g, b, a uint8 = 0, 0, 0, 255
	var err error
	if i := strings.IndexFunc(hex, notHexDigit); i >= 0 {
		return gputypes.Color{}, fmt.Errorf("colour %q: %q is not a hex digit", s, hex[i])
	}
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		err = errors.New("want 6 or 8 hex digits")
	}
	if err != nil {
		return gputypes.Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return gputypes.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

func notHexDigit(r rune) bool {
	return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
}
