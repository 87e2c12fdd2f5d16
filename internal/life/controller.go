// Package life runs Conway's Game of Life on a gpu.Device. Two generation
// buffers ping-pong: Mutate writes the next generation from the current one,
// Step promotes it and Render draws the current generation onto the output
// surface.
package life

import (
	"github.com/gogpu/gputypes"

	"gpulife/internal/core"
	"gpulife/internal/gpu"
	"gpulife/internal/shader"
)

// Background is the clear colour of the output surface.
var Background = gputypes.Color{R: 0.5, G: 1, B: 0.5, A: 1}

// DefaultFill is the flat colour of alive cells.
var DefaultFill = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

type mutateUniforms struct {
	currentGen gpu.Location
}

func (u *mutateUniforms) resolve(p gpu.Program) (err error) {
	u.currentGen, err = p.Location(shader.CurrentGen)
	return err
}

func (u *mutateUniforms) setCurrentGen(b *gpu.Bindings, fb gpu.Framebuffer) {
	b.SetTexture(u.currentGen, fb)
}

type presentUniforms struct {
	source     gpu.Location
	scaleRatio gpu.Location
	fillColor  gpu.Location
}

func (u *presentUniforms) resolve(p gpu.Program) (err error) {
	if u.source, err = p.Location(shader.SourceTex); err != nil {
		return err
	}
	if u.scaleRatio, err = p.Location(shader.ScaleRatio); err != nil {
		return err
	}
	u.fillColor, err = p.Location(shader.FillColor)
	return err
}

func (u *presentUniforms) setSource(b *gpu.Bindings, fb gpu.Framebuffer) {
	b.SetTexture(u.source, fb)
}

func (u *presentUniforms) setScaleRatio(b *gpu.Bindings, r [2]float32) {
	b.SetVec2(u.scaleRatio, r)
}

func (u *presentUniforms) setFillColor(b *gpu.Bindings, c gputypes.Color) {
	// Kage and the CPU fragment both expect premultiplied alpha.
	a := float32(c.A)
	b.SetVec4(u.fillColor, [4]float32{float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a})
}

// Option configures a Controller.
type Option func(*Controller)

// WithRNG sets the generator used by RandomizeCurrent.
func WithRNG(rng *core.RNG) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithDensity sets the alive probability used by RandomizeCurrent.
func WithDensity(p float64) Option {
	return func(c *Controller) { c.density = p }
}

// WithFillColor sets the colour alive cells are drawn with.
func WithFillColor(col gputypes.Color) Option {
	return func(c *Controller) { c.fill = col }
}

// Controller owns the generation buffers, both programs and the quad. It is
// not safe for concurrent use; drive it from the frame loop.
type Controller struct {
	dev     gpu.Device
	surface gpu.Surface
	store   *Store

	quad      gpu.Quad
	mutate    gpu.Program
	present   gpu.Program
	mutateIn  mutateUniforms
	presentIn presentUniforms

	rng     *core.RNG
	density float64
	fill    gputypes.Color
}

// New builds a Controller drawing into surface with a grid of the given size.
func New(dev gpu.Device, surface gpu.Surface, grid core.Size, opts ...Option) (*Controller, error) {
	c := &Controller{
		dev:     dev,
		surface: surface,
		density: DefaultDensity,
		fill:    DefaultFill,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = core.NewRNG(1)
	}

	store, err := NewStore(dev, grid)
	if err != nil {
		return nil, err
	}
	c.store = store

	if c.quad, err = dev.NewQuad(gpu.FullscreenQuad()); err != nil {
		c.Close()
		return nil, gpu.Wrap(gpu.GeometryError, "new controller", err)
	}
	if c.mutate, err = c.newProgram(shader.Mutate(), c.mutateIn.resolve); err != nil {
		c.Close()
		return nil, err
	}
	if c.present, err = c.newProgram(shader.Present(), c.presentIn.resolve); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Controller) newProgram(src gpu.Source, resolve func(gpu.Program) error) (gpu.Program, error) {
	p, err := c.dev.NewProgram(src)
	if err != nil {
		return nil, gpu.Wrap(gpu.ShaderError, "new controller", err)
	}
	if err := resolve(p); err != nil {
		p.Dispose()
		return nil, gpu.Wrap(gpu.ShaderError, "new controller", err)
	}
	return p, nil
}

// ResizeOutput replaces the output surface.
func (c *Controller) ResizeOutput(surface gpu.Surface) {
	c.surface = surface
}

// ResizeGrid recreates both buffers at size, all cells dead. The current
// index is kept. On failure the previous grid stays in place.
func (c *Controller) ResizeGrid(size core.Size) error {
	store, err := NewStore(c.dev, size)
	if err != nil {
		return gpu.Wrap(gpu.ResourceError, "resize grid", err)
	}
	store.current = c.store.current
	c.store.Dispose()
	c.store = store
	Logger().Info("grid resized", "width", size.W, "height", size.H)
	return nil
}

// Mutate writes the generation following the current one into the next
// buffer. It does not flip the index; call Step for that.
func (c *Controller) Mutate() error {
	pass := &gpu.Pass{
		Label:   "mutate",
		Target:  c.store.Next(),
		LoadOp:  gputypes.LoadOpLoad,
		Blend:   gpu.BlendReplace,
		Program: c.mutate,
		Quad:    c.quad,
	}
	c.mutateIn.setCurrentGen(&pass.Bindings, c.store.Current())
	if err := c.dev.Submit(pass); err != nil {
		return gpu.Wrap(gpu.PipelineError, "mutate", err)
	}
	Logger().Debug("pass submitted", "pass", pass.Label, "current", c.store.Gen())
	return nil
}

// Step promotes the next buffer to current. No GPU work is issued.
func (c *Controller) Step() { c.store.Flip() }

// Render clears the output surface and draws the current generation over
// it, scaled to fill the surface.
func (c *Controller) Render() error {
	pass := &gpu.Pass{
		Label:   "render",
		Target:  c.surface,
		LoadOp:  gputypes.LoadOpClear,
		Clear:   Background,
		Blend:   gpu.BlendSourceOver,
		Program: c.present,
		Quad:    c.quad,
	}
	c.presentIn.setSource(&pass.Bindings, c.store.Current())
	c.presentIn.setScaleRatio(&pass.Bindings, c.ScaleRatio())
	c.presentIn.setFillColor(&pass.Bindings, c.fill)
	if err := c.dev.Submit(pass); err != nil {
		return gpu.Wrap(gpu.PipelineError, "render", err)
	}
	Logger().Debug("pass submitted", "pass", pass.Label, "current", c.store.Gen())
	return nil
}

// EditCell writes value into the current generation at the cell under
// windowPos, given in output-surface pixels. Positions outside the surface
// are clamped onto the nearest edge cell.
func (c *Controller) EditCell(value uint8, windowPos [2]float32) error {
	p := WindowToGrid(windowPos, c.OutputSize().Vec(), c.store.Size().Vec())
	return c.store.WriteCell(c.store.Gen(), CellAt(p, c.store.Size()), value)
}

// RandomizeCurrent reseeds the current generation. The next buffer is left
// as it was, so a Step without a Mutate in between shows stale cells.
func (c *Controller) RandomizeCurrent() error {
	if err := c.store.Randomize(c.store.Gen(), c.density, c.rng); err != nil {
		return err
	}
	Logger().Info("generation reseeded", "gen", c.store.Gen(), "density", c.density)
	return nil
}

// ScaleRatio is the grid size divided by the output size, per axis.
func (c *Controller) ScaleRatio() [2]float32 {
	return Ratio(c.store.Size().Vec(), c.OutputSize().Vec())
}

// Gen returns the current-generation index.
func (c *Controller) Gen() Gen { return c.store.Gen() }

// GridSize returns the grid dimensions.
func (c *Controller) GridSize() core.Size { return c.store.Size() }

// OutputSize returns the dimensions of the output surface.
func (c *Controller) OutputSize() core.Size {
	if c.surface == nil {
		return core.Size{}
	}
	return core.SizeOf(c.surface.Size())
}

// Snapshot reads the current generation back to the host.
func (c *Controller) Snapshot() (*core.ByteGrid, error) {
	return c.store.Snapshot(c.store.Gen())
}

// Store exposes the generation buffers.
func (c *Controller) Store() *Store { return c.store }

// Close releases every GPU resource the controller owns.
func (c *Controller) Close() {
	if c.store != nil {
		c.store.Dispose()
	}
	if c.mutate != nil {
		c.mutate.Dispose()
	}
	if c.present != nil {
		c.present.Dispose()
	}
}
