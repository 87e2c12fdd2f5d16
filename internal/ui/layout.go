package ui

import (
	"image"
	"unicode/utf8"
)

// Glyph metrics of basicfont.Face7x13.
const (
	glyphWidth = 7
	lineHeight = 16
	ascent     = 11
)

const panelPadding = 8

// PanelSize returns the size of a HUD panel holding lines.
func PanelSize(lines []string) image.Point {
	if len(lines) == 0 {
		return image.Point{}
	}
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return image.Pt(longest*glyphWidth+2*panelPadding, len(lines)*lineHeight+2*panelPadding)
}

// Baseline returns the text origin of line i inside a panel.
func Baseline(i int) image.Point {
	return image.Pt(panelPadding, panelPadding+i*lineHeight+ascent)
}

// Outline splits the border of r into four filled strips of the given
// thickness: top, bottom, left, right. Strips never extend outside r.
func Outline(r image.Rectangle, thickness int) []image.Rectangle {
	r = r.Canon()
	if r.Empty() || thickness <= 0 {
		return nil
	}
	if 2*thickness >= r.Dx() || 2*thickness >= r.Dy() {
		return []image.Rectangle{r}
	}
	return []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+thickness, r.Min.X+thickness, r.Max.Y-thickness),
		image.Rect(r.Max.X-thickness, r.Min.Y+thickness, r.Max.X, r.Max.Y-thickness),
	}
}
