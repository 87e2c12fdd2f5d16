package softgpu

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpulife/internal/gpu"
)

// invert writes 1 wherever the source is 0.
func invert(in *gpu.FragmentInput) [4]float32 {
	x, y := int(in.Position[0]), int(in.Position[1])
	if in.Sources[0].Fetch(x, y)[0] > 0 {
		return [4]float32{0, 0, 0, 1}
	}
	return [4]float32{1.0 / 255, 0, 0, 1}
}

func invertSource() gpu.Source {
	return gpu.Source{Name: "invert", CPU: invert, Textures: []string{"src"}}
}

func newFramebuffer(t *testing.T, d *Device, w, h int) gpu.Framebuffer {
	t.Helper()
	fb, err := d.NewFramebuffer(image.Pt(w, h))
	require.NoError(t, err)
	return fb
}

func TestNewFramebufferRejectsInvalidSizes(t *testing.T) {
	d := New(Options{MaxTextureSize: 64})
	for _, size := range []image.Point{{0, 4}, {4, 0}, {-1, 3}, {65, 1}} {
		_, err := d.NewFramebuffer(size)
		assert.ErrorIs(t, err, gpu.ResourceError, "size %v", size)
	}
	fb := newFramebuffer(t, d, 3, 2)
	assert.Equal(t, gpu.CellFormat, fb.Format())
	texels, err := fb.Download()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 6), texels)
}

func TestUploadRegion(t *testing.T) {
	d := New(Options{})
	fb := newFramebuffer(t, d, 3, 3)

	require.NoError(t, fb.Upload(image.Rect(1, 1, 3, 2), []byte{7, 9}))
	require.NoError(t, fb.Upload(image.Rect(0, 2, 1, 3), []byte{1}))
	texels, err := fb.Download()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 7, 9, 1, 0, 0}, texels)

	assert.ErrorIs(t, fb.Upload(image.Rect(2, 2, 4, 3), []byte{1, 1}), gpu.ResourceError)
	assert.ErrorIs(t, fb.Upload(image.Rect(0, 0, 1, 1), []byte{1, 1}), gpu.ResourceError)
	assert.Equal(t, 2, d.Stats().Uploads)

	fb.Dispose()
	_, err = fb.Download()
	assert.ErrorIs(t, err, gpu.ResourceError)
}

func TestSubmitRunsFragmentPerTexel(t *testing.T) {
	d := New(Options{})
	prog, err := d.NewProgram(invertSource())
	require.NoError(t, err)
	q, err := d.NewQuad(gpu.FullscreenQuad())
	require.NoError(t, err)
	src := newFramebuffer(t, d, 2, 2)
	dst := newFramebuffer(t, d, 2, 2)
	require.NoError(t, src.Upload(image.Rect(0, 0, 2, 2), []byte{1, 0, 0, 1}))

	loc, err := prog.Location("src")
	require.NoError(t, err)
	pass := &gpu.Pass{Label: "invert", Target: dst, LoadOp: gputypes.LoadOpLoad, Program: prog, Quad: q}
	pass.Bindings.SetTexture(loc, src)
	require.NoError(t, d.Submit(pass))

	texels, err := dst.Download()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 1, 0}, texels)
	assert.Equal(t, 1, d.Stats().Passes)
}

func TestSubmitFailures(t *testing.T) {
	d := New(Options{})
	prog, err := d.NewProgram(invertSource())
	require.NoError(t, err)
	q, err := d.NewQuad(gpu.FullscreenQuad())
	require.NoError(t, err)
	fb := newFramebuffer(t, d, 2, 2)
	other := newFramebuffer(t, d, 2, 2)
	loc, err := prog.Location("src")
	require.NoError(t, err)

	unbound := &gpu.Pass{Label: "unbound", Target: fb, Program: prog, Quad: q}
	assert.ErrorIs(t, d.Submit(unbound), gpu.PipelineError)

	self := &gpu.Pass{Label: "self", Target: fb, Program: prog, Quad: q}
	self.Bindings.SetTexture(loc, fb)
	assert.ErrorIs(t, d.Submit(self), gpu.PipelineError)

	blend := &gpu.Pass{Label: "blend", Target: fb, Blend: gpu.BlendSourceOver, Program: prog, Quad: q}
	blend.Bindings.SetTexture(loc, other)
	assert.ErrorIs(t, d.Submit(blend), gpu.PipelineError)

	misuse := &gpu.Pass{Label: "misuse", Target: fb, Program: prog, Quad: q}
	misuse.Bindings.SetVec2(loc, [2]float32{1, 1})
	assert.ErrorIs(t, d.Submit(misuse), gpu.PipelineError)

	other.Dispose()
	disposed := &gpu.Pass{Label: "disposed", Target: fb, Program: prog, Quad: q}
	disposed.Bindings.SetTexture(loc, other)
	assert.ErrorIs(t, d.Submit(disposed), gpu.PipelineError)
	assert.Zero(t, d.Stats().Passes)
}

func TestNewProgramAndQuadFailures(t *testing.T) {
	diag := errors.New("1:1: unexpected token")
	d := New(Options{Compiler: func(gpu.Source) ([]byte, error) { return nil, diag }})

	_, err := d.NewProgram(invertSource())
	require.ErrorIs(t, err, gpu.ShaderError)
	assert.ErrorIs(t, err, diag)
	assert.Contains(t, err.Error(), "unexpected token")

	_, err = New(Options{}).NewProgram(gpu.Source{Name: "empty"})
	assert.ErrorIs(t, err, gpu.ShaderError)

	_, err = d.NewQuad(gpu.QuadDescriptor{Vertices: 3, Topology: gputypes.PrimitiveTopologyTriangleStrip})
	assert.ErrorIs(t, err, gpu.GeometryError)
}

func TestSurfaceClearAndSourceOver(t *testing.T) {
	d := New(Options{})
	half := gpu.Source{
		Name: "half",
		CPU: func(in *gpu.FragmentInput) [4]float32 {
			if in.Position[0] < 1 {
				return [4]float32{0, 0, 0, 1}
			}
			return [4]float32{}
		},
	}
	prog, err := d.NewProgram(half)
	require.NoError(t, err)
	q, err := d.NewQuad(gpu.FullscreenQuad())
	require.NoError(t, err)

	s := NewSurface(image.Pt(2, 1))
	pass := &gpu.Pass{
		Target:  s,
		LoadOp:  gputypes.LoadOpClear,
		Clear:   gputypes.Color{R: 0.5, G: 1, B: 0.5, A: 1},
		Blend:   gpu.BlendSourceOver,
		Program: prog,
		Quad:    q,
	}
	require.NoError(t, d.Submit(pass))
	assert.Equal(t, color.RGBA{A: 255}, s.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 128, G: 255, B: 128, A: 255}, s.RGBAAt(1, 0))
}
