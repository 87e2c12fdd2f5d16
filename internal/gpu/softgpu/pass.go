package softgpu

import (
	"image/color"

	"github.com/gogpu/gputypes"

	"gpulife/internal/gpu"
)

// Submit runs pass to completion before returning.
func (d *Device) Submit(pass *gpu.Pass) error {
	if err := pass.Validate(); err != nil {
		return err
	}
	prog, ok := pass.Program.(*Program)
	if !ok {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "program %q was not built by this device", pass.Program.Name())
	}
	if prog.disposed {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "program %q disposed", prog.Name())
	}
	if _, ok := pass.Quad.(quad); !ok {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "primitive was not built by this device")
	}

	in := &gpu.FragmentInput{Uniforms: pass.Bindings.Uniforms}
	for slot, name := range prog.textures {
		s, err := samplerOf(pass.Bindings.Textures[slot])
		if err != nil {
			return gpu.Wrap(gpu.PipelineError, pass.Label, err)
		}
		if s == nil {
			return gpu.Errorf(gpu.PipelineError, pass.Label, "texture %q not bound", name)
		}
		in.Sources[slot] = s
	}
	for _, name := range prog.uniforms {
		if _, ok := pass.Bindings.Uniforms[name]; !ok {
			return gpu.Errorf(gpu.PipelineError, pass.Label, "uniform %q not set", name)
		}
	}

	switch t := pass.Target.(type) {
	case *Framebuffer:
		if err := d.drawFramebuffer(t, pass, prog, in); err != nil {
			return err
		}
	case *Surface:
		d.drawSurface(t, pass, prog, in)
	default:
		return gpu.Errorf(gpu.PipelineError, pass.Label, "target %T was not built by this device", pass.Target)
	}
	d.stats.Passes++
	return nil
}

func samplerOf(t gpu.Texture) (gpu.Sampler, error) {
	switch t := t.(type) {
	case nil:
		return nil, nil
	case *Framebuffer:
		if t.disposed() {
			return nil, gpu.Errorf(gpu.PipelineError, "bind", "framebuffer disposed")
		}
		return t, nil
	case *Surface:
		return t, nil
	default:
		return nil, gpu.Errorf(gpu.PipelineError, "bind", "texture %T was not built by this device", t)
	}
}

func (d *Device) drawFramebuffer(fb *Framebuffer, pass *gpu.Pass, prog *Program, in *gpu.FragmentInput) error {
	if fb.disposed() {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "target framebuffer disposed")
	}
	if pass.Blend != gpu.BlendReplace {
		return gpu.Errorf(gpu.PipelineError, pass.Label, "integer targets cannot blend")
	}
	if pass.LoadOp == gputypes.LoadOpClear {
		v := unorm8(colorOf(pass.Clear)[0])
		for i := range fb.texels {
			fb.texels[i] = v
		}
	}
	for y := 0; y < fb.size.Y; y++ {
		for x := 0; x < fb.size.X; x++ {
			in.Position = [2]float32{float32(x) + 0.5, float32(y) + 0.5}
			out := prog.fragment(in)
			fb.texels[y*fb.size.X+x] = unorm8(out[0])
		}
	}
	return nil
}

func (d *Device) drawSurface(s *Surface, pass *gpu.Pass, prog *Program, in *gpu.FragmentInput) {
	img := s.img
	if pass.LoadOp == gputypes.LoadOpClear {
		c := colorOf(pass.Clear)
		fill := color.RGBA{R: unorm8(c[0]), G: unorm8(c[1]), B: unorm8(c[2]), A: unorm8(c[3])}
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i+0] = fill.R
			img.Pix[i+1] = fill.G
			img.Pix[i+2] = fill.B
			img.Pix[i+3] = fill.A
		}
	}
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			in.Position = [2]float32{float32(x-b.Min.X) + 0.5, float32(y-b.Min.Y) + 0.5}
			out := prog.fragment(in)
			i := img.PixOffset(x, y)
			if pass.Blend == gpu.BlendSourceOver {
				inv := 1 - out[3]
				for c := 0; c < 4; c++ {
					out[c] += float32(img.Pix[i+c]) / 255 * inv
				}
			}
			img.Pix[i+0] = unorm8(out[0])
			img.Pix[i+1] = unorm8(out[1])
			img.Pix[i+2] = unorm8(out[2])
			img.Pix[i+3] = unorm8(out[3])
		}
	}
}
