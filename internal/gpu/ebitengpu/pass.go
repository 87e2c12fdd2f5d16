//go:build ebiten

package ebitengpu

import (
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"

	"gpulife/internal/gpu"
)

// Submit records pass as one DrawTrianglesShader call. ebiten flushes draw
// commands in submission order, which is the ordering the core relies on.
func (d *Device) Submit(pass *gpu.Pass) (err error) {
	if err := pass.Validate(); err != nil {
		return err
	}
	prog, ok := pass.Program.(*Program)
	if !ok || prog.shader == nil {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "program %q unusable on this device", pass.Program.Name())
	}
	if _, ok := pass.Quad.(quad); !ok {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "primitive was not built by this device")
	}
	dst, err := imageOf(pass.Target)
	if err != nil {
		return gpu.Wrap(gpu.PipelineError, pass.Label, err)
	}

	opts := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: make(map[string]any, len(prog.uniforms)),
		Blend:    ebiten.BlendCopy,
	}
	if pass.Blend == gpu.BlendSourceOver {
		opts.Blend = ebiten.BlendSourceOver
	}
	for slot, name := range prog.textures {
		t := pass.Bindings.Textures[slot]
		if t == nil {
			return gpu.Errorf(gpu.PipelineError, pass.Label, "texture %q not bound", name)
		}
		img, err := imageOf(t)
		if err != nil {
			return gpu.Wrap(gpu.PipelineError, pass.Label, err)
		}
		opts.Images[slot] = img
	}
	for _, name := range prog.uniforms {
		v, ok := pass.Bindings.Uniforms[name]
		if !ok {
			return gpu.Errorf(gpu.PipelineError, pass.Label, "uniform %q not set", name)
		}
		opts.Uniforms[name] = v
	}

	defer func() {
		if r := recover(); r != nil {
			err = gpu.Errorf(gpu.PipelineError, pass.Label, "%v", r)
		}
	}()

	if pass.LoadOp == gputypes.LoadOpClear {
		dst.Fill(clearColor(pass))
	}
	dst.DrawTrianglesShader(quadVertices(dst, opts.Images[0]), gpu.StripIndices(), prog.shader, opts)
	return nil
}

// quadVertices spans the whole destination. Source coordinates cover the
// first bound image so srcPos in Kage walks its texels one to one when the
// sizes match.
func quadVertices(dst, src *ebiten.Image) []ebiten.Vertex {
	db := dst.Bounds()
	sb := db
	if src != nil {
		sb = src.Bounds()
	}
	vs := make([]ebiten.Vertex, 4)
	for i := range vs {
		c := gpu.Corner(i)
		vs[i] = ebiten.Vertex{
			DstX:   float32(db.Min.X) + c[0]*float32(db.Dx()),
			DstY:   float32(db.Min.Y) + c[1]*float32(db.Dy()),
			SrcX:   float32(sb.Min.X) + c[0]*float32(sb.Dx()),
			SrcY:   float32(sb.Min.Y) + c[1]*float32(sb.Dy()),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return vs
}

func clearColor(pass *gpu.Pass) color.Color {
	c := pass.Clear
	if _, ok := pass.Target.(*Framebuffer); ok {
		return color.RGBA{R: unorm8(c.R), A: 0xff}
	}
	return color.RGBA{R: unorm8(c.R * c.A), G: unorm8(c.G * c.A), B: unorm8(c.B * c.A), A: unorm8(c.A)}
}

func unorm8[T float32 | float64](v T) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(float64(v)*255 + 0.5)
}
