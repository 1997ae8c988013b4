package pixel

// Channel widths of the packed layouts.
var (
	widthsR5G6B5   = Widths{0, 5, 6, 5}
	widthsA1R5G5B5 = Widths{1, 5, 5, 5}
	widthsA4R4G4B4 = Widths{4, 4, 4, 4}
)

const (
	weightRed   = 299
	weightGreen = 587
	weightBlue  = 114
	weightTotal = 1000
)

func lumaTerm(v uint8, weight uint32) uint32 {
	return (uint32(v)*0x101*weight + weightTotal/2) / weightTotal
}

// Luma returns the Rec. 601 luma of c. Gray colors return their shared
// channel value unchanged. Each weighted channel is rounded to 16 bits before
// the sum is reduced to 8 bits.
func Luma(c Color) uint8 {
	if c.Red == c.Green && c.Green == c.Blue {
		return c.Red
	}
	y := lumaTerm(c.Red, weightRed) + lumaTerm(c.Green, weightGreen) + lumaTerm(c.Blue, weightBlue)
	return uint8(rescale(y, 0xffff, 0xff))
}

func fromPacked(v uint32, w Widths) Color {
	return Rescale(Unpack(v, w), w, Native)
}

func toPacked(c Color, w Widths) uint32 {
	return Pack(Rescale(c, Native, w), w)
}

// FromA8 decodes an 8-bit alpha value, color channels are white.
func FromA8(v uint8) Color {
	return Color{Alpha: v, Red: 0xff, Green: 0xff, Blue: 0xff}
}

// A8 encodes the alpha channel of c.
func (c Color) A8() uint8 {
	return c.Alpha
}

// FromY8 decodes an 8-bit luma value as an opaque gray.
func FromY8(v uint8) Color {
	return Color{Alpha: 0xff, Red: v, Green: v, Blue: v}
}

// Y8 encodes the luma of c.
func (c Color) Y8() uint8 {
	return Luma(c)
}

// FromAY8 decodes an 8-bit value used for all four channels.
func FromAY8(v uint8) Color {
	return Color{Alpha: v, Red: v, Green: v, Blue: v}
}

// AY8 encodes c as its alpha channel.
func (c Color) AY8() uint8 {
	return c.Alpha
}

// FromA8Y8 decodes alpha from the high byte and luma from the low byte.
func FromA8Y8(v uint16) Color {
	c := FromY8(uint8(v))
	c.Alpha = uint8(v >> 8)
	return c
}

// A8Y8 encodes alpha in the high byte and luma in the low byte.
func (c Color) A8Y8() uint16 {
	return uint16(c.Alpha)<<8 | uint16(Luma(c))
}

// FromR5G6B5 decodes a 16-bit opaque color.
func FromR5G6B5(v uint16) Color {
	return fromPacked(uint32(v), widthsR5G6B5)
}

// R5G6B5 encodes c discarding alpha.
func (c Color) R5G6B5() uint16 {
	return uint16(toPacked(c, widthsR5G6B5))
}

// FromA1R5G5B5 decodes a 16-bit color with 1-bit alpha.
func FromA1R5G5B5(v uint16) Color {
	return fromPacked(uint32(v), widthsA1R5G5B5)
}

// A1R5G5B5 encodes c with 1-bit alpha.
func (c Color) A1R5G5B5() uint16 {
	return uint16(toPacked(c, widthsA1R5G5B5))
}

// FromA4R4G4B4 decodes a 16-bit color with 4 bits per channel.
func FromA4R4G4B4(v uint16) Color {
	return fromPacked(uint32(v), widthsA4R4G4B4)
}

// A4R4G4B4 encodes c with 4 bits per channel.
func (c Color) A4R4G4B4() uint16 {
	return uint16(toPacked(c, widthsA4R4G4B4))
}

// FromA8R8G8B8 decodes a 32-bit color with alpha in the top byte.
func FromA8R8G8B8(v uint32) Color {
	return Unpack(v, Native)
}

// A8R8G8B8 encodes c with alpha in the top byte.
func (c Color) A8R8G8B8() uint32 {
	return Pack(c, Native)
}

// FromX8R8G8B8 decodes a 32-bit color ignoring the top byte.
func FromX8R8G8B8(v uint32) Color {
	c := Unpack(v, Native)
	c.Alpha = 0xff
	return c
}

// X8R8G8B8 encodes c with the top byte set.
func (c Color) X8R8G8B8() uint32 {
	return Pack(c, Native) | 0xff000000
}

func (c Color) swapRedBlue() Color {
	c.Red, c.Blue = c.Blue, c.Red
	return c
}

// FromA8B8G8R8 decodes a 32-bit color with alpha in the top byte and red in
// the bottom byte.
func FromA8B8G8R8(v uint32) Color {
	return FromA8R8G8B8(v).swapRedBlue()
}

// A8B8G8R8 encodes c with alpha in the top byte and red in the bottom byte.
func (c Color) A8B8G8R8() uint32 {
	return c.swapRedBlue().A8R8G8B8()
}

// FromX8B8G8R8 decodes a 32-bit color with red in the bottom byte, ignoring
// the top byte.
func FromX8B8G8R8(v uint32) Color {
	return FromX8R8G8B8(v).swapRedBlue()
}

// X8B8G8R8 encodes c with red in the bottom byte and the top byte set.
func (c Color) X8B8G8R8() uint32 {
	return c.swapRedBlue().X8R8G8B8()
}
