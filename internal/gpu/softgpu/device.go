// Package softgpu is a CPU implementation of gpu.Device. It runs each
// program's CPU fragment once per target pixel, which makes it the reference
// backend for tests and headless runs.
package softgpu

import (
	"image"

	"gpulife/internal/gpu"
)

// Options configures a Device.
type Options struct {
	// Compiler, when set, is run on every program source; a failure turns
	// NewProgram into a ShaderError carrying the compiler diagnostic.
	Compiler func(gpu.Source) ([]byte, error)
	// MaxTextureSize overrides gpu.MaxTextureSize when positive.
	MaxTextureSize int
}

// Stats counts the work a Device accepted.
type Stats struct {
	Framebuffers int
	Programs     int
	Passes       int
	Uploads      int
	Clears       int
}

// Device executes passes on the CPU.
type Device struct {
	opts  Options
	stats Stats
}

var _ gpu.Device = (*Device)(nil)

// New returns a Device with the provided options.
func New(opts Options) *Device {
	if opts.MaxTextureSize <= 0 {
		opts.MaxTextureSize = gpu.MaxTextureSize
	}
	return &Device{opts: opts}
}

// Stats returns a copy of the work counters.
func (d *Device) Stats() Stats { return d.stats }

// NewFramebuffer allocates a zeroed w*h single-channel target.
func (d *Device) NewFramebuffer(size image.Point) (gpu.Framebuffer, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, gpu.Errorf(gpu.ResourceError, "new framebuffer", "invalid size %dx%d", size.X, size.Y)
	}
	if size.X > d.opts.MaxTextureSize || size.Y > d.opts.MaxTextureSize {
		return nil, gpu.Errorf(gpu.ResourceError, "new framebuffer", "size %dx%d exceeds device limit %d", size.X, size.Y, d.opts.MaxTextureSize)
	}
	d.stats.Framebuffers++
	return &Framebuffer{dev: d, size: size, texels: make([]byte, size.X*size.Y)}, nil
}

// NewProgram builds a program from src's CPU fragment.
func (d *Device) NewProgram(src gpu.Source) (gpu.Program, error) {
	layout, err := gpu.NewLayout(src)
	if err != nil {
		return nil, err
	}
	if src.CPU == nil {
		return nil, gpu.Errorf(gpu.ShaderError, src.Name, "no CPU fragment")
	}
	if d.opts.Compiler != nil {
		if _, err := d.opts.Compiler(src); err != nil {
			return nil, gpu.Wrap(gpu.ShaderError, src.Name, err)
		}
	}
	d.stats.Programs++
	return &Program{
		Layout:   layout,
		fragment: src.CPU,
		textures: append([]string(nil), src.Textures...),
		uniforms: append([]string(nil), src.Uniforms...),
	}, nil
}

// NewQuad validates desc and returns it as a primitive.
func (d *Device) NewQuad(desc gpu.QuadDescriptor) (gpu.Quad, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return quad{desc: desc}, nil
}

// Program is a CPU fragment plus its input layout.
type Program struct {
	gpu.Layout
	fragment gpu.Fragment
	textures []string
	uniforms []string
	disposed bool
}

// Dispose marks the program unusable.
func (p *Program) Dispose() { p.disposed = true }

type quad struct {
	desc gpu.QuadDescriptor
}

func (q quad) Descriptor() gpu.QuadDescriptor { return q.desc }
