//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay outlines the cell under the cursor. 1 toggles it.
type Overlay struct {
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw outlines cell, given in screen pixels.
func (o *Overlay) Draw(screen *ebiten.Image, cell image.Rectangle) {
	if !o.show {
		return
	}
	cell = cell.Intersect(screen.Bounds())
	for _, r := range Outline(cell, 1) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		op.ColorScale.Scale(0.9, 0.2, 0.2, 1)
		screen.DrawImage(o.pixel, op)
	}
}
