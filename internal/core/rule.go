package core

// NextState applies Conway's B3/S23 rule to a cell with the given number of
// live Moore neighbours.
func NextState(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Neighbors counts live cells around (x, y). Off-grid neighbours read the
// nearest edge cell, so the field is edge-clamped rather than toroidal.
func Neighbors(g *ByteGrid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.At(x+dx, y+dy) != 0 {
				n++
			}
		}
	}
	return n
}

// Step writes the generation following src into dst. Both grids must share
// the same dimensions.
func Step(dst, src *ByteGrid) {
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			idx := src.Index(x, y)
			dst.data[idx] = 0
			if NextState(src.data[idx] != 0, Neighbors(src, x, y)) {
				dst.data[idx] = 1
			}
		}
	}
}
