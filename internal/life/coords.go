package life

import (
	"image"

	"github.com/chewxy/math32"

	"gpulife/internal/core"
)

// WindowToGrid maps a point in output-surface pixels into grid space.
func WindowToGrid(pos, window, grid [2]float32) [2]float32 {
	k := Ratio(grid, window)
	return [2]float32{pos[0] * k[0], pos[1] * k[1]}
}

// GridToWindow is the inverse of WindowToGrid.
func GridToWindow(pos, window, grid [2]float32) [2]float32 {
	k := Ratio(window, grid)
	return [2]float32{pos[0] * k[0], pos[1] * k[1]}
}

// Ratio divides num by den per axis. A zero denominator yields zero on that
// axis instead of an infinity.
func Ratio(num, den [2]float32) [2]float32 {
	var r [2]float32
	for i := range r {
		if den[i] != 0 {
			r[i] = num[i] / den[i]
		}
	}
	return r
}

// CellAt truncates a grid-space point to the cell under it, clamped into a
// grid of the given size.
func CellAt(p [2]float32, size core.Size) image.Point {
	x := int(math32.Floor(p[0]))
	y := int(math32.Floor(p[1]))
	return image.Pt(core.ClampInt(x, 0, size.W-1), core.ClampInt(y, 0, size.H-1))
}
