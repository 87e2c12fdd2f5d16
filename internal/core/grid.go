package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// WrapByteGrid adopts cells as the backing slice of a w*h grid. It returns nil
// when the slice length does not match the dimensions.
func WrapByteGrid(w, h int, cells []uint8) *ByteGrid {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil
	}
	return &ByteGrid{W: w, H: h, data: cells}
}

// Size returns the grid dimensions.
func (g *ByteGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *ByteGrid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// Clamp moves the provided coordinates onto the nearest edge cell.
func (g *ByteGrid) Clamp(x, y int) (int, int) {
	return ClampInt(x, 0, g.W-1), ClampInt(y, 0, g.H-1)
}

// At returns the value at (x, y) with edge clamping for off-grid coordinates.
func (g *ByteGrid) At(x, y int) uint8 {
	x, y = g.Clamp(x, y)
	return g.data[g.Index(x, y)]
}

// Set stores v at (x, y). Off-grid coordinates are ignored.
func (g *ByteGrid) Set(x, y int, v uint8) {
	if !g.In(x, y) {
		return
	}
	g.data[g.Index(x, y)] = v
}

// Alive counts the nonzero cells.
func (g *ByteGrid) Alive() int {
	n := 0
	for _, c := range g.data {
		if c != 0 {
			n++
		}
	}
	return n
}

// String renders the grid as rows of '#' (alive) and '.' (dead).
func (g *ByteGrid) String() string {
	buf := make([]byte, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.data[g.Index(x, y)] != 0 {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
