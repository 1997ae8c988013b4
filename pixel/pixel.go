/*
Package pixel implements the canonical 8-bit per channel color used by
texconv and the arithmetic for moving it in and out of packed,
reduced bit-depth representations.

Channels are stored independently and are never premultiplied. Packed values
place alpha in the most significant bits followed by red, green and blue.
*/
package pixel

import (
	"errors"
	"image/color"
)

// Color is an 8-bit alpha, red, green and blue color.
type Color struct {
	Alpha uint8
	Red   uint8
	Green uint8
	Blue  uint8
}

// RGBA implements the color.Color interface. Color is not premultiplied so
// it behaves like color.NRGBA.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}.RGBA()
}

func toColor(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{Alpha: n.A, Red: n.R, Green: n.G, Blue: n.B}
}

// Model converts any color.Color to a Color.
var Model = color.ModelFunc(toColor)

// Widths is the number of bits used by each channel of a packed color.
type Widths struct {
	Alpha uint8
	Red   uint8
	Green uint8
	Blue  uint8
}

// Total returns the sum of all channel widths.
func (w Widths) Total() uint8 {
	return w.Alpha + w.Red + w.Green + w.Blue
}

// Native is the width of a Color.
var Native = Widths{8, 8, 8, 8}

var ones = [...]uint8{0x00, 0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f, 0xff}

// Ones returns a mask with the lowest n bits set, n must be in [0, 8].
func Ones(n uint8) uint8 {
	return ones[n]
}

func rescale(v, from, to uint32) uint32 {
	return (v*to + from/2) / from
}

// RescaleChannel converts v from a from-bit value to a to-bit value rounding
// to nearest with ties rounding up. A channel absent on either side, that is
// a width of zero, is always fully present and returns 255.
func RescaleChannel(v, from, to uint8) uint8 {
	if from == 0 || to == 0 {
		return 0xff
	}
	f := ones[from]
	return uint8(rescale(uint32(v&f), uint32(f), uint32(ones[to])))
}

// Rescale converts every channel of c from the widths in from to the widths
// in to.
func Rescale(c Color, from, to Widths) Color {
	return Color{
		Alpha: RescaleChannel(c.Alpha, from.Alpha, to.Alpha),
		Red:   RescaleChannel(c.Red, from.Red, to.Red),
		Green: RescaleChannel(c.Green, from.Green, to.Green),
		Blue:  RescaleChannel(c.Blue, from.Blue, to.Blue),
	}
}

// Pack concatenates the channels of c, alpha first, into the low w.Total()
// bits of the result. Each channel is masked to its width.
func Pack(c Color, w Widths) uint32 {
	return uint32(c.Alpha&ones[w.Alpha])<<(w.Red+w.Green+w.Blue) |
		uint32(c.Red&ones[w.Red])<<(w.Green+w.Blue) |
		uint32(c.Green&ones[w.Green])<<w.Blue |
		uint32(c.Blue&ones[w.Blue])
}

// Unpack extracts the channels packed by Pack. The channels keep their
// native widths.
func Unpack(raw uint32, w Widths) Color {
	return Color{
		Alpha: uint8(raw>>(w.Red+w.Green+w.Blue)) & ones[w.Alpha],
		Red:   uint8(raw>>(w.Green+w.Blue)) & ones[w.Red],
		Green: uint8(raw>>w.Blue) & ones[w.Green],
		Blue:  uint8(raw) & ones[w.Blue],
	}
}

// Palette is the 256 color table of an 8-bit palettized texture.
type Palette [256]Color

var errPaletteSize = errors.New("pixel: palette must have between 1 and 256 colors")

// NewPalette copies entries into a new Palette. Unused slots repeat the last
// entry so they never win a nearest color search over an earlier index.
func NewPalette(entries []Color) (*Palette, error) {
	if len(entries) == 0 || len(entries) > len(Palette{}) {
		return nil, errPaletteSize
	}
	p := new(Palette)
	n := copy(p[:], entries)
	for i := n; i < len(p); i++ {
		p[i] = entries[n-1]
	}
	return p, nil
}
