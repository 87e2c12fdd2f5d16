//go:build ebiten

// Package ebitengpu implements gpu.Device on ebiten. Generation buffers are
// offscreen images keeping the cell byte in the red channel, programs are
// Kage shaders and passes are single DrawTrianglesShader calls.
package ebitengpu

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"

	"gpulife/internal/gpu"
	"gpulife/internal/render"
)

// Device is the ebiten-backed graphics context. It must be used from the
// game's Update/Draw goroutine.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New returns a Device.
func New() *Device { return &Device{} }

// NewFramebuffer allocates an offscreen image cleared to dead cells.
func (d *Device) NewFramebuffer(size image.Point) (gpu.Framebuffer, error) {
	if size.X <= 0 || size.Y <= 0 || size.X > gpu.MaxTextureSize || size.Y > gpu.MaxTextureSize {
		return nil, gpu.Errorf(gpu.ResourceError, "new framebuffer", "invalid size %dx%d", size.X, size.Y)
	}
	fb := &Framebuffer{img: ebiten.NewImage(size.X, size.Y), size: size}
	if err := fb.Clear(0); err != nil {
		return nil, err
	}
	return fb, nil
}

// NewProgram compiles the Kage rendition of src.
func (d *Device) NewProgram(src gpu.Source) (gpu.Program, error) {
	layout, err := gpu.NewLayout(src)
	if err != nil {
		return nil, err
	}
	if len(src.Kage) == 0 {
		return nil, gpu.Errorf(gpu.ShaderError, src.Name, "no Kage source")
	}
	sh, err := ebiten.NewShader(src.Kage)
	if err != nil {
		return nil, gpu.Wrap(gpu.ShaderError, src.Name, err)
	}
	return &Program{
		Layout:   layout,
		shader:   sh,
		textures: append([]string(nil), src.Textures...),
		uniforms: append([]string(nil), src.Uniforms...),
	}, nil
}

// NewQuad validates desc. The quad's vertices are generated per pass from
// the target size, so nothing is uploaded here.
func (d *Device) NewQuad(desc gpu.QuadDescriptor) (gpu.Quad, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return quad{desc: desc}, nil
}

// Program wraps a compiled Kage shader.
type Program struct {
	gpu.Layout
	shader   *ebiten.Shader
	textures []string
	uniforms []string
}

// Dispose releases the shader.
func (p *Program) Dispose() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}

type quad struct {
	desc gpu.QuadDescriptor
}

func (q quad) Descriptor() gpu.QuadDescriptor { return q.desc }

// Framebuffer is an offscreen image used as a generation buffer.
type Framebuffer struct {
	img     *ebiten.Image
	size    image.Point
	scratch []byte
}

var _ gpu.Framebuffer = (*Framebuffer)(nil)

func (f *Framebuffer) Size() image.Point               { return f.size }
func (f *Framebuffer) Format() gputypes.TextureFormat { return gpu.CellFormat }

// Upload writes texels into region through a sub-image.
func (f *Framebuffer) Upload(region image.Rectangle, texels []byte) error {
	if f.img == nil {
		return gpu.Errorf(gpu.ResourceError, "upload", "framebuffer disposed")
	}
	bounds := image.Rectangle{Max: f.size}
	if region.Empty() || !region.In(bounds) {
		return gpu.Errorf(gpu.ResourceError, "upload", "region %v outside %v", region, bounds)
	}
	if len(texels) != region.Dx()*region.Dy() {
		return gpu.Errorf(gpu.ResourceError, "upload", "%d texels for region %v", len(texels), region)
	}
	pix := f.buffer(len(texels))
	render.PackCells(pix, texels)
	sub, ok := f.img.SubImage(region).(*ebiten.Image)
	if !ok {
		return gpu.Errorf(gpu.ResourceError, "upload", "sub-image %v unavailable", region)
	}
	sub.WritePixels(pix)
	return nil
}

// Clear fills the image with value in the red channel.
func (f *Framebuffer) Clear(value byte) error {
	if f.img == nil {
		return gpu.Errorf(gpu.ResourceError, "clear", "framebuffer disposed")
	}
	f.img.Fill(color.RGBA{R: value, A: 0xff})
	return nil
}

// Download reads the image back. ebiten only allows this once the game loop
// is running.
func (f *Framebuffer) Download() (cells []byte, err error) {
	if f.img == nil {
		return nil, gpu.Errorf(gpu.ResourceError, "download", "framebuffer disposed")
	}
	defer func() {
		if r := recover(); r != nil {
			err = gpu.Errorf(gpu.ResourceError, "download", "%v", r)
		}
	}()
	pix := f.buffer(f.size.X * f.size.Y)
	f.img.ReadPixels(pix)
	cells = make([]byte, f.size.X*f.size.Y)
	render.UnpackCells(cells, pix)
	return cells, nil
}

// Dispose releases the image.
func (f *Framebuffer) Dispose() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}

func (f *Framebuffer) buffer(texels int) []byte {
	if cap(f.scratch) < 4*texels {
		f.scratch = make([]byte, 4*texels)
	}
	return f.scratch[:4*texels]
}

// Surface wraps the image ebiten hands to Draw.
type Surface struct {
	img *ebiten.Image
}

var _ gpu.Surface = (*Surface)(nil)

// Screen wraps img as an output surface. Wrap the screen again on every
// Draw; the surface must not outlive the frame it was created for.
func Screen(img *ebiten.Image) *Surface { return &Surface{img: img} }

func (s *Surface) Size() image.Point               { return s.img.Bounds().Size() }
func (s *Surface) Format() gputypes.TextureFormat { return gpu.SurfaceFormat }

func imageOf(t gpu.Texture) (*ebiten.Image, error) {
	switch t := t.(type) {
	case *Framebuffer:
		if t.img == nil {
			return nil, fmt.Errorf("framebuffer disposed")
		}
		return t.img, nil
	case *Surface:
		return t.img, nil
	default:
		return nil, fmt.Errorf("texture %T was not built by this device", t)
	}
}
