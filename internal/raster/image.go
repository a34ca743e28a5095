// Package raster holds the image a design is generated into.
package raster

import (
	"image"
	"image/color"

	"github.com/davesmith10/tiedye/internal/dye"
)

// Image is the intermediate representation passed between the pattern
// generator and the encoders. Pixels are stored in row-major order, one
// dye.Color per pixel. Image implements image.Image.
type Image struct {
	Width  int
	Height int
	Pix    []dye.Color // len = Width * Height
}

// New returns a width×height image filled with fill. Non-positive
// dimensions give an empty image.
func New(width, height int, fill dye.Color) *Image {
	if width <= 0 || height <= 0 {
		return &Image{}
	}
	pix := make([]dye.Color, width*height)
	for i := range pix {
		pix[i] = fill
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

// Len returns the number of pixels.
func (m *Image) Len() int { return len(m.Pix) }

// Pixel returns the color at (x, y). It panics if (x, y) is out of range.
func (m *Image) Pixel(x, y int) dye.Color {
	return m.Pix[m.offset(x, y)]
}

// SetPixel sets the color at (x, y). It panics if (x, y) is out of range.
func (m *Image) SetPixel(x, y int, c dye.Color) {
	m.Pix[m.offset(x, y)] = c
}

func (m *Image) offset(x, y int) int {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic(image.Point{X: x, Y: y}.String() + " out of range " + m.Bounds().String())
	}
	return y*m.Width + x
}

// Histogram counts the pixels of each color.
func (m *Image) Histogram() map[dye.Color]int {
	h := make(map[dye.Color]int)
	for _, c := range m.Pix {
		h[c]++
	}
	return h
}

// Equal reports whether m and o have the same size and pixels.
func (m *Image) Equal(o *Image) bool {
	if m.Width != o.Width || m.Height != o.Height || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i := range m.Pix {
		if m.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image. Points outside the image are transparent.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return color.RGBA{}
	}
	return m.Pix[y*m.Width+x]
}

// RGBA converts the image to an *image.RGBA.
func (m *Image) RGBA() *image.RGBA {
	dst := image.NewRGBA(m.Bounds())
	for i, c := range m.Pix {
		o := i * 4
		dst.Pix[o] = c.R
		dst.Pix[o+1] = c.G
		dst.Pix[o+2] = c.B
		dst.Pix[o+3] = 0xff
	}
	return dst
}
