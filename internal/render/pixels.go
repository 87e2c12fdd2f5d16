// Package render converts between cell bytes and RGBA pixel buffers.
package render

import (
	"image"
	"image/color"
)

// PackCells stores one cell byte per texel in the red channel of buf, with
// the other channels zero and alpha opaque. buf must hold 4*len(cells) bytes.
func PackCells(buf []byte, cells []uint8) {
	for i, c := range cells {
		base := i * 4
		buf[base+0] = c
		buf[base+1] = 0
		buf[base+2] = 0
		buf[base+3] = 0xff
	}
}

// UnpackCells is the inverse of PackCells.
func UnpackCells(cells []uint8, buf []byte) {
	for i := range cells {
		cells[i] = buf[i*4]
	}
}

// FillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func FillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// CellImage renders w*h cells into an RGBA image, scale pixels per cell.
func CellImage(w, h int, cells []uint8, on, off color.Color, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	FillBinaryRGBA(small.Pix, cells, on, off)
	if scale == 1 {
		return small
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			img.SetRGBA(x, y, small.RGBAAt(x/scale, y/scale))
		}
	}
	return img
}
