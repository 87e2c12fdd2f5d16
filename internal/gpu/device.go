// Package gpu describes the graphics context the simulation core consumes:
// framebuffers that are both render targets and sampled textures, compiled
// programs with statically resolved uniform locations, a vertex-free
// full-screen quad and single-draw passes. Backends live in subpackages.
package gpu

import (
	"image"

	"github.com/gogpu/gputypes"
)

// MaxTextureSize is the largest framebuffer edge any backend accepts.
const MaxTextureSize = 8192

// MaxTextures is the number of texture slots a pass can bind.
const MaxTextures = 4

// CellFormat is the texel format of generation buffers: one unsigned byte.
const CellFormat = gputypes.TextureFormatR8Uint

// SurfaceFormat is the texel format of output surfaces.
const SurfaceFormat = gputypes.TextureFormatRGBA8Unorm

// Device is a graphics context able to allocate targets, compile programs,
// build primitives and execute passes. Calls return once the backend has
// accepted the submission; submission order is the ordering guarantee.
type Device interface {
	NewFramebuffer(size image.Point) (Framebuffer, error)
	NewProgram(src Source) (Program, error)
	NewQuad(desc QuadDescriptor) (Quad, error)
	Submit(pass *Pass) error
}

// Texture is anything a pass can draw into or sample from.
type Texture interface {
	Size() image.Point
	Format() gputypes.TextureFormat
}

// Framebuffer is a single-channel 8-bit texture that is also a render target.
type Framebuffer interface {
	Texture
	// Upload replaces the texels in region with texels, one byte per texel
	// in row-major order.
	Upload(region image.Rectangle, texels []byte) error
	// Clear sets every texel to value.
	Clear(value byte) error
	// Download reads every texel back, one byte per texel.
	Download() ([]byte, error)
	Dispose()
}

// Surface is a visible output target owned by the host.
type Surface interface {
	Texture
}

// Program is a compiled vertex/fragment pair.
type Program interface {
	Name() string
	// Location resolves a declared texture or uniform name. Programs are
	// expected to be queried once, right after creation.
	Location(name string) (Location, error)
	Dispose()
}

// Quad is a built full-screen primitive.
type Quad interface {
	Descriptor() QuadDescriptor
}

// Blend selects how fragment output combines with the target.
type Blend uint8

const (
	// BlendReplace overwrites the target texel.
	BlendReplace Blend = iota
	// BlendSourceOver composites premultiplied output over the target.
	BlendSourceOver
)

// Pass is one draw of a quad with a program into a target.
type Pass struct {
	Label    string
	Target   Texture
	LoadOp   gputypes.LoadOp
	Clear    gputypes.Color
	Blend    Blend
	Program  Program
	Quad     Quad
	Bindings Bindings
}

// Validate checks the pieces every backend needs before drawing.
func (p *Pass) Validate() error {
	switch {
	case p.Target == nil:
		return Errorf(PipelineError, p.Label, "no render target")
	case p.Program == nil:
		return Errorf(PipelineError, p.Label, "no program")
	case p.Quad == nil:
		return Errorf(PipelineError, p.Label, "no primitive")
	}
	if err := p.Bindings.Err(); err != nil {
		return Wrap(PipelineError, p.Label, err)
	}
	for _, t := range p.Bindings.Textures {
		if t != nil && t == p.Target {
			return Errorf(PipelineError, p.Label, "target is also bound as a source")
		}
	}
	return nil
}
