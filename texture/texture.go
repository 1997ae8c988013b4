/*
Package texture bridges raw texture pixel data and the standard image
package.

A raw texture is just the packed pixels of a single format with no header;
the dimensions and format are supplied by the caller, usually from whatever
container the data was extracted from.
*/
package texture

import (
	"image"
	"image/color"

	"github.com/bodgit/texconv/pixel"
	"golang.org/x/image/draw"
)

// Image is an in-memory image of pixel.Color values. It implements
// draw.Image.
type Image struct {
	// Pix holds the pixels in row-major order, one per pixel, starting at
	// Rect.Min.
	Pix  []pixel.Color
	Rect image.Rectangle
}

// New returns a new Image with the given bounds.
func New(r image.Rectangle) *Image {
	return &Image{
		Pix:  make([]pixel.Color, r.Dx()*r.Dy()),
		Rect: r,
	}
}

// FromImage returns m as an Image, converting it if necessary. An Image is
// returned as-is.
func FromImage(m image.Image) *Image {
	if t, ok := m.(*Image); ok {
		return t
	}
	b := m.Bounds()
	t := New(b)
	draw.Draw(t, b, m, b.Min, draw.Src)
	return t
}

// ColorModel returns pixel.Model.
func (p *Image) ColorModel() color.Model {
	return pixel.Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the pixel at (x, y), or the zero Color outside the bounds.
func (p *Image) ColorAt(x, y int) pixel.Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return pixel.Color{}
	}
	return p.Pix[p.offset(x, y)]
}

// Set implements the draw.Image interface.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetColor(x, y, pixel.Model.Convert(c).(pixel.Color))
}

// SetColor sets the pixel at (x, y) without any conversion.
func (p *Image) SetColor(x, y int, c pixel.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.Pix[p.offset(x, y)] = c
}

func (p *Image) offset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Rect.Dx() + (x - p.Rect.Min.X)
}

// Opaque scans the image and reports whether it is fully opaque.
func (p *Image) Opaque() bool {
	for _, c := range p.Pix {
		if c.Alpha != 0xff {
			return false
		}
	}
	return true
}

// Resize scales m to width by height pixels with Catmull-Rom interpolation.
// If one dimension is zero it is derived from the other keeping the aspect
// ratio, if both are zero m is copied at its original size.
func Resize(m image.Image, width, height int) *Image {
	b := m.Bounds()
	switch {
	case width == 0 && height == 0:
		width, height = b.Dx(), b.Dy()
	case width == 0:
		width = max(1, (b.Dx()*height+b.Dy()/2)/max(b.Dy(), 1))
	case height == 0:
		height = max(1, (b.Dy()*width+b.Dx()/2)/max(b.Dx(), 1))
	}

	t := New(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(t, t.Rect, m, b, draw.Src, nil)
	return t
}
