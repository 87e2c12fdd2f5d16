package core

import "image"

// Size describes the dimensions of a simulation grid in cells.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Area returns the number of cells covered by the size.
func (s Size) Area() int { return s.W * s.H }

// Point converts the size into an image.Point.
func (s Size) Point() image.Point { return image.Pt(s.W, s.H) }

// Vec returns the size as a float32 pair, the form used for coordinate maths.
func (s Size) Vec() [2]float32 { return [2]float32{float32(s.W), float32(s.H)} }

// SizeOf converts an image.Point into a Size.
func SizeOf(p image.Point) Size { return Size{W: p.X, H: p.Y} }

// Grow returns the size with delta added to both axes, never going below one cell.
func (s Size) Grow(delta int) Size {
	w, h := s.W+delta, s.H+delta
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Size{W: w, H: h}
}
