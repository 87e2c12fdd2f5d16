package life

import (
	"image"

	"gpulife/internal/core"
	"gpulife/internal/gpu"
)

// Gen selects one of the two generation buffers.
type Gen uint8

const (
	GenA Gen = iota
	GenB
)

// Other returns the opposite buffer.
func (g Gen) Other() Gen { return 1 - g }

func (g Gen) String() string {
	if g == GenB {
		return "B"
	}
	return "A"
}

// DefaultDensity is the alive probability used by Randomize.
const DefaultDensity = 0.06

// Store owns the two generation buffers and the index of the current one.
type Store struct {
	size    core.Size
	buffers [2]gpu.Framebuffer
	current Gen
}

// NewStore allocates two w*h buffers, both cleared to dead cells.
func NewStore(dev gpu.Device, size core.Size) (*Store, error) {
	if !size.Valid() {
		return nil, gpu.Errorf(gpu.ResourceError, "new store", "invalid grid size %dx%d", size.W, size.H)
	}
	s := &Store{size: size}
	for i := range s.buffers {
		fb, err := dev.NewFramebuffer(size.Point())
		if err != nil {
			s.Dispose()
			return nil, gpu.Wrap(gpu.ResourceError, "new store", err)
		}
		s.buffers[i] = fb
		if err := fb.Clear(0); err != nil {
			s.Dispose()
			return nil, gpu.Wrap(gpu.ResourceError, "new store", err)
		}
	}
	Logger().Debug("generation buffers allocated", "width", size.W, "height", size.H)
	return s, nil
}

// Size returns the grid dimensions.
func (s *Store) Size() core.Size { return s.size }

// Gen returns which buffer is current.
func (s *Store) Gen() Gen { return s.current }

// Buffer returns the buffer selected by g.
func (s *Store) Buffer(g Gen) gpu.Framebuffer { return s.buffers[g] }

// Current returns the buffer holding the authoritative generation.
func (s *Store) Current() gpu.Framebuffer { return s.buffers[s.current] }

// Next returns the buffer the next generation is written into.
func (s *Store) Next() gpu.Framebuffer { return s.buffers[s.current.Other()] }

// Flip promotes the next buffer to current.
func (s *Store) Flip() { s.current = s.current.Other() }

// WriteCell replaces one texel of buffer g.
func (s *Store) WriteCell(g Gen, pos image.Point, value uint8) error {
	if pos.X < 0 || pos.Y < 0 || pos.X >= s.size.W || pos.Y >= s.size.H {
		return gpu.Errorf(gpu.ResourceError, "write cell", "position %v outside %dx%d grid", pos, s.size.W, s.size.H)
	}
	region := image.Rectangle{Min: pos, Max: pos.Add(image.Pt(1, 1))}
	return gpu.Wrap(gpu.ResourceError, "write cell", s.Buffer(g).Upload(region, []byte{value}))
}

// Randomize overwrites buffer g with independent Bernoulli samples that are
// alive with probability density.
func (s *Store) Randomize(g Gen, density float64, rng *core.RNG) error {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	cells := make([]uint8, s.size.Area())
	core.FillBernoulli(rng, cells, density)
	region := image.Rectangle{Max: s.size.Point()}
	return gpu.Wrap(gpu.ResourceError, "randomize", s.Buffer(g).Upload(region, cells))
}

// Snapshot reads buffer g back into a host-side grid.
func (s *Store) Snapshot(g Gen) (*core.ByteGrid, error) {
	cells, err := s.Buffer(g).Download()
	if err != nil {
		return nil, gpu.Wrap(gpu.ResourceError, "snapshot", err)
	}
	grid := core.WrapByteGrid(s.size.W, s.size.H, cells)
	if grid == nil {
		return nil, gpu.Errorf(gpu.ResourceError, "snapshot", "read %d texels from %dx%d buffer", len(cells), s.size.W, s.size.H)
	}
	return grid, nil
}

// Dispose releases both buffers.
func (s *Store) Dispose() {
	for i, fb := range s.buffers {
		if fb != nil {
			fb.Dispose()
			s.buffers[i] = nil
		}
	}
}
