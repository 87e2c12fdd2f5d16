// Command life-headless runs generations on the software device and prints
// the population after each reported step.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/gputypes"

	"gpulife/internal/app"
	"gpulife/internal/gpu/softgpu"
	"gpulife/internal/life"
	"gpulife/internal/render"
	"gpulife/internal/shader"
)

type options struct {
	steps    int
	every    int
	validate bool
	ascii    bool
	pngPath  string
	pngScale int
	frame    string
	pattern  string
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var opts options
	flag.IntVar(&opts.steps, "steps", 100, "generations to run")
	flag.IntVar(&opts.every, "every", 10, "print the population every N generations")
	flag.BoolVar(&opts.validate, "validate", false, "compile the WGSL shaders with naga before running")
	flag.BoolVar(&opts.ascii, "ascii", false, "print the final generation as text")
	flag.StringVar(&opts.pngPath, "png", "", "write the final generation to this PNG file")
	flag.IntVar(&opts.pngScale, "png-scale", 4, "pixels per cell in the PNG output")
	flag.StringVar(&opts.frame, "frame", "", "render the final generation at window size and write it to this PNG file")
	flag.StringVar(&opts.pattern, "pattern", "", "start from a text pattern file ('#' alive) instead of random cells")
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := cfg.NewLogger(os.Stderr)
	life.SetLogger(log)

	if err := run(cfg, opts, os.Stdout); err != nil {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, opts options, out io.Writer) error {
	devOpts := softgpu.Options{}
	if opts.validate {
		devOpts.Compiler = shader.CompileWGSL
	}
	dev := softgpu.New(devOpts)
	surface := softgpu.NewSurface(cfg.WindowSize().Point())

	grid := cfg.GridSize()
	var seed []uint8
	if opts.pattern != "" {
		var err error
		if grid, seed, err = readPattern(opts.pattern); err != nil {
			return err
		}
	}

	ctl, err := life.New(dev, surface, grid, cfg.Options()...)
	if err != nil {
		return err
	}
	defer ctl.Close()

	if seed != nil {
		if err := ctl.Store().Current().Upload(image.Rectangle{Max: grid.Point()}, seed); err != nil {
			return err
		}
	} else if err := ctl.RandomizeCurrent(); err != nil {
		return err
	}

	if err := report(out, ctl, 0); err != nil {
		return err
	}
	for gen := 1; gen <= opts.steps; gen++ {
		if err := ctl.Mutate(); err != nil {
			return err
		}
		ctl.Step()
		if gen == opts.steps || (opts.every > 0 && gen%opts.every == 0) {
			if err := report(out, ctl, gen); err != nil {
				return err
			}
		}
	}

	final, err := ctl.Snapshot()
	if err != nil {
		return err
	}
	if opts.ascii {
		fmt.Fprint(out, final.String())
	}
	if opts.pngPath != "" {
		img := render.CellImage(final.W, final.H, final.Cells(), rgba(cfg.FillColor()), rgba(life.Background), opts.pngScale)
		if err := writePNG(opts.pngPath, img); err != nil {
			return err
		}
	}
	if opts.frame != "" {
		if err := ctl.Render(); err != nil {
			return err
		}
		if err := writePNG(opts.frame, surface.Image()); err != nil {
			return err
		}
	}
	stats := dev.Stats()
	fmt.Fprintf(out, "passes %d, uploads %d\n", stats.Passes, stats.Uploads)
	return nil
}

func report(out io.Writer, ctl *life.Controller, gen int) error {
	grid, err := ctl.Snapshot()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "generation %d: %d alive\n", gen, grid.Alive())
	return err
}

func rgba(c gputypes.Color) color.RGBA {
	unit := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return color.RGBA{R: unit(c.R * c.A), G: unit(c.G * c.A), B: unit(c.B * c.A), A: unit(c.A)}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write png: %w", err)
	}
	return f.Close()
}
