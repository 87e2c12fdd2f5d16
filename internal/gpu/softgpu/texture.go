package softgpu

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"

	"gpulife/internal/gpu"
)

// Framebuffer is a byte-per-texel render target.
type Framebuffer struct {
	dev    *Device
	size   image.Point
	texels []byte
}

var _ gpu.Framebuffer = (*Framebuffer)(nil)

func (f *Framebuffer) Size() image.Point               { return f.size }
func (f *Framebuffer) Format() gputypes.TextureFormat { return gpu.CellFormat }

func (f *Framebuffer) disposed() bool { return f.texels == nil }

// Upload replaces the texels inside region.
func (f *Framebuffer) Upload(region image.Rectangle, texels []byte) error {
	if f.disposed() {
		return gpu.Errorf(gpu.ResourceError, "upload", "framebuffer disposed")
	}
	bounds := image.Rectangle{Max: f.size}
	if region.Empty() || !region.In(bounds) {
		return gpu.Errorf(gpu.ResourceError, "upload", "region %v outside %v", region, bounds)
	}
	if len(texels) != region.Dx()*region.Dy() {
		return gpu.Errorf(gpu.ResourceError, "upload", "%d texels for region %v", len(texels), region)
	}
	w := region.Dx()
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := (y - region.Min.Y) * w
		copy(f.texels[y*f.size.X+region.Min.X:], texels[row:row+w])
	}
	f.dev.stats.Uploads++
	return nil
}

// Clear sets every texel to value.
func (f *Framebuffer) Clear(value byte) error {
	if f.disposed() {
		return gpu.Errorf(gpu.ResourceError, "clear", "framebuffer disposed")
	}
	for i := range f.texels {
		f.texels[i] = value
	}
	f.dev.stats.Clears++
	return nil
}

// Download copies the texels out.
func (f *Framebuffer) Download() ([]byte, error) {
	if f.disposed() {
		return nil, gpu.Errorf(gpu.ResourceError, "download", "framebuffer disposed")
	}
	return append([]byte(nil), f.texels...), nil
}

// Dispose releases the texel storage.
func (f *Framebuffer) Dispose() { f.texels = nil }

// Fetch implements gpu.Sampler.
func (f *Framebuffer) Fetch(x, y int) [4]float32 {
	if x < 0 || y < 0 || x >= f.size.X || y >= f.size.Y {
		return [4]float32{}
	}
	return [4]float32{float32(f.texels[y*f.size.X+x]) / 255, 0, 0, 1}
}

// Surface is an RGBA output target.
type Surface struct {
	img *image.RGBA
}

var _ gpu.Surface = (*Surface)(nil)

// NewSurface allocates a w*h transparent surface.
func NewSurface(size image.Point) *Surface {
	return &Surface{img: image.NewRGBA(image.Rectangle{Max: size})}
}

func (s *Surface) Size() image.Point               { return s.img.Rect.Size() }
func (s *Surface) Format() gputypes.TextureFormat { return gpu.SurfaceFormat }

// Image exposes the pixels drawn so far.
func (s *Surface) Image() *image.RGBA { return s.img }

// RGBAAt returns the pixel at (x, y).
func (s *Surface) RGBAAt(x, y int) color.RGBA { return s.img.RGBAAt(x, y) }

// Fetch implements gpu.Sampler.
func (s *Surface) Fetch(x, y int) [4]float32 {
	if !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return [4]float32{}
	}
	c := s.img.RGBAAt(x, y)
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func unorm8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

func colorOf(c gputypes.Color) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}
