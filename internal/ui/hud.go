//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a status panel in the top-left corner of the window. H toggles
// it.
type HUD struct {
	visible bool
	panel   *ebiten.Image
}

// NewHUD constructs a visible HUD.
func NewHUD() *HUD { return &HUD{visible: true} }

// Update handles the visibility toggle.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.visible = !h.visible
	}
}

// Draw paints lines onto screen.
func (h *HUD) Draw(screen *ebiten.Image, lines []string) {
	if h == nil || !h.visible || len(lines) == 0 {
		return
	}
	size := PanelSize(lines)
	if h.panel == nil || h.panel.Bounds().Size() != size {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(size.X, size.Y)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})

	face := basicfont.Face7x13
	for i, line := range lines {
		at := Baseline(i)
		text.Draw(h.panel, line, face, at.X, at.Y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	screen.DrawImage(h.panel, &ebiten.DrawImageOptions{})
}
