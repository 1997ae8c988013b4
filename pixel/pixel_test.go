package pixel

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white            = Color{Alpha: 0xff, Red: 0xff, Green: 0xff, Blue: 0xff}
	blackOpaque      = Color{Alpha: 0xff}
	blackTransparent = Color{}
	whiteTransparent = Color{Red: 0xff, Green: 0xff, Blue: 0xff}
)

func TestRescaleChannelRoundTrip(t *testing.T) {
	for n := uint8(1); n <= 8; n++ {
		for v := 0; v <= int(Ones(n)); v++ {
			up := RescaleChannel(uint8(v), n, 8)
			assert.Equal(t, uint8(v), RescaleChannel(up, 8, n), "width %d value %d", n, v)
		}
	}
}

func TestRescaleChannelEndpoints(t *testing.T) {
	for n := uint8(1); n <= 8; n++ {
		assert.Equal(t, uint8(0), RescaleChannel(0, n, 8))
		assert.Equal(t, uint8(0xff), RescaleChannel(Ones(n), n, 8))
		assert.Equal(t, Ones(n), RescaleChannel(0xff, 8, n))
	}
}

func TestRescaleChannelAbsent(t *testing.T) {
	for v := 0; v <= math.MaxUint8; v++ {
		assert.Equal(t, uint8(0xff), RescaleChannel(uint8(v), 0, 8))
		assert.Equal(t, uint8(0xff), RescaleChannel(uint8(v), 8, 0))
	}
}

func TestRescaleChannelRounding(t *testing.T) {
	tables := []struct {
		v, from, to, want uint8
	}{
		{1, 5, 8, 8},    // 255/31 = 8.23
		{16, 5, 8, 132}, // 4080/31 = 131.6
		{8, 8, 5, 1},    // 248/255 = 0.97
		{4, 8, 5, 0},    // 124/255 = 0.49
		{1, 1, 8, 0xff},
		{127, 8, 1, 0},
		{128, 8, 1, 1},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, RescaleChannel(table.v, table.from, table.to), "%d from %d to %d bits", table.v, table.from, table.to)
	}
}

func TestOnes(t *testing.T) {
	for n := uint8(0); n <= 8; n++ {
		assert.Equal(t, uint8(1<<n-1), Ones(n))
	}
}

func TestPackUnpack(t *testing.T) {
	colors := []Color{
		white,
		blackTransparent,
		{Alpha: 0x12, Red: 0x34, Green: 0x56, Blue: 0x78},
		{Alpha: 0xa5, Red: 0x5a, Green: 0xc3, Blue: 0x3c},
	}

	for a := uint8(0); a <= 8; a++ {
		for r := uint8(0); r <= 8; r++ {
			for g := uint8(0); g <= 8; g++ {
				for b := uint8(0); b <= 8; b++ {
					w := Widths{a, r, g, b}
					for _, c := range colors {
						raw := Pack(c, w)
						if w.Total() < 32 {
							assert.Zero(t, raw>>w.Total(), "%+v leaks high bits", w)
						}
						want := Color{c.Alpha & Ones(a), c.Red & Ones(r), c.Green & Ones(g), c.Blue & Ones(b)}
						assert.Equal(t, want, Unpack(raw, w), "%+v", w)
					}
				}
			}
		}
	}
}

func TestPackOrder(t *testing.T) {
	c := Color{Alpha: 0x1, Red: 0x2, Green: 0x3, Blue: 0x4}
	assert.Equal(t, uint32(0x1234), Pack(c, Widths{4, 4, 4, 4}))
	assert.Equal(t, uint32(0x01020304), Pack(c, Native))
}

func TestWhiteToWhite(t *testing.T) {
	assert.Equal(t, uint32(math.MaxUint32), white.X8R8G8B8())
	assert.Equal(t, uint32(math.MaxUint32), white.A8R8G8B8())
	assert.Equal(t, uint32(math.MaxUint32), white.A8B8G8R8())
	assert.Equal(t, uint16(math.MaxUint16), white.R5G6B5())
	assert.Equal(t, uint16(math.MaxUint16), white.A1R5G5B5())
	assert.Equal(t, uint16(math.MaxUint16), white.A4R4G4B4())
	assert.Equal(t, uint16(math.MaxUint16), white.A8Y8())
	assert.Equal(t, uint8(math.MaxUint8), white.A8())
	assert.Equal(t, uint8(math.MaxUint8), white.Y8())
	assert.Equal(t, uint8(math.MaxUint8), white.AY8())

	assert.Equal(t, white, FromX8R8G8B8(math.MaxUint32))
	assert.Equal(t, white, FromA8R8G8B8(math.MaxUint32))
	assert.Equal(t, white, FromX8B8G8R8(math.MaxUint32))
	assert.Equal(t, white, FromA8B8G8R8(math.MaxUint32))
	assert.Equal(t, white, FromR5G6B5(math.MaxUint16))
	assert.Equal(t, white, FromA1R5G5B5(math.MaxUint16))
	assert.Equal(t, white, FromA4R4G4B4(math.MaxUint16))
	assert.Equal(t, white, FromA8Y8(math.MaxUint16))
	assert.Equal(t, white, FromA8(math.MaxUint8))
	assert.Equal(t, white, FromY8(math.MaxUint8))
	assert.Equal(t, white, FromAY8(math.MaxUint8))
}

func TestBlackToBlack(t *testing.T) {
	assert.Equal(t, uint32(0xff000000), blackOpaque.X8R8G8B8())
	assert.Equal(t, uint32(0xff000000), blackOpaque.A8R8G8B8())
	assert.Equal(t, uint16(0), blackOpaque.R5G6B5())
	assert.Equal(t, uint16(0x8000), blackOpaque.A1R5G5B5())
	assert.Equal(t, uint16(0xf000), blackOpaque.A4R4G4B4())
	assert.Equal(t, uint8(0), blackOpaque.Y8())
	assert.Equal(t, uint8(0xff), blackOpaque.A8())

	assert.Equal(t, uint32(0xff000000), blackTransparent.X8R8G8B8())
	assert.Equal(t, uint32(0), blackTransparent.A8R8G8B8())
	assert.Equal(t, uint16(0), blackTransparent.R5G6B5())
	assert.Equal(t, uint16(0), blackTransparent.A1R5G5B5())
	assert.Equal(t, uint16(0), blackTransparent.A4R4G4B4())
	assert.Equal(t, uint8(0), blackTransparent.Y8())
	assert.Equal(t, uint8(0), blackTransparent.A8())
	assert.Equal(t, uint8(0), whiteTransparent.A8())

	assert.Equal(t, blackOpaque, FromX8R8G8B8(0))
	assert.Equal(t, blackOpaque, FromX8R8G8B8(0xff000000))
	assert.Equal(t, blackOpaque, FromA8R8G8B8(0xff000000))
	assert.Equal(t, blackOpaque, FromR5G6B5(0))
	assert.Equal(t, blackOpaque, FromA1R5G5B5(0x8000))
	assert.Equal(t, blackOpaque, FromA4R4G4B4(0xf000))
	assert.Equal(t, blackOpaque, FromY8(0))

	assert.Equal(t, blackTransparent, FromA8R8G8B8(0))
	assert.Equal(t, blackTransparent, FromA1R5G5B5(0))
	assert.Equal(t, blackTransparent, FromA4R4G4B4(0))
	assert.Equal(t, blackTransparent, FromAY8(0))

	assert.Equal(t, whiteTransparent, FromA8(0))
}

func TestPacked16RoundTrip(t *testing.T) {
	for i := 0; i <= math.MaxUint16; i++ {
		v := uint16(i)
		require.Equal(t, v, FromR5G6B5(v).R5G6B5(), "R5G6B5 %#04x", v)
		require.Equal(t, v, FromA1R5G5B5(v).A1R5G5B5(), "A1R5G5B5 %#04x", v)
		require.Equal(t, v, FromA4R4G4B4(v).A4R4G4B4(), "A4R4G4B4 %#04x", v)
	}
}

func TestAbsentAlphaDecodesOpaque(t *testing.T) {
	for i := 0; i <= math.MaxUint16; i++ {
		require.Equal(t, uint8(0xff), FromR5G6B5(uint16(i)).Alpha)
	}
	for _, v := range []uint32{0, 0x00123456, 0x7f000000, 0xffffffff} {
		assert.Equal(t, uint8(0xff), FromX8R8G8B8(v).Alpha)
		assert.Equal(t, uint8(0xff), FromX8B8G8R8(v).Alpha)
	}
	for v := 0; v <= math.MaxUint8; v++ {
		assert.Equal(t, uint8(0xff), FromY8(uint8(v)).Alpha)
	}
}

func TestChannelOrder(t *testing.T) {
	c := Color{Alpha: 0x11, Red: 0x22, Green: 0x33, Blue: 0x44}

	assert.Equal(t, uint32(0x11223344), c.A8R8G8B8())
	assert.Equal(t, uint32(0x11443322), c.A8B8G8R8())
	assert.Equal(t, uint32(0xff223344), c.X8R8G8B8())
	assert.Equal(t, uint32(0xff443322), c.X8B8G8R8())
	assert.Equal(t, c, FromA8B8G8R8(c.A8B8G8R8()))
	assert.Equal(t, c, FromA8R8G8B8(c.A8R8G8B8()))
}

func TestLuma(t *testing.T) {
	tables := []struct {
		c    Color
		want uint8
	}{
		{Color{Red: 0xff}, 76},
		{Color{Green: 0xff}, 150},
		{Color{Blue: 0xff}, 29},
		{Color{Red: 0x80, Green: 0x80, Blue: 0x80}, 0x80},
		{Color{Red: 1, Green: 1, Blue: 1}, 1},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Luma(table.c), "%+v", table.c)
	}

	// Gray colors are exact for every level
	for v := 0; v <= math.MaxUint8; v++ {
		assert.Equal(t, uint8(v), FromY8(uint8(v)).Y8())
	}
}

func TestA8Y8(t *testing.T) {
	c := Color{Alpha: 0x40, Red: 0xff}
	assert.Equal(t, uint16(0x404c), c.A8Y8())
	assert.Equal(t, Color{Alpha: 0x40, Red: 0x4c, Green: 0x4c, Blue: 0x4c}, FromA8Y8(0x404c))
}

func TestModel(t *testing.T) {
	c := Model.Convert(color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	assert.Equal(t, Color{Alpha: 4, Red: 1, Green: 2, Blue: 3}, c)

	c = Model.Convert(color.RGBA{R: 0x80, A: 0x80})
	assert.Equal(t, Color{Alpha: 0x80, Red: 0xff}, c)

	r, g, b, a := Color{Alpha: 0xff, Red: 0xff}.RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestNewPalette(t *testing.T) {
	_, err := NewPalette(nil)
	assert.Equal(t, errPaletteSize, err)

	_, err = NewPalette(make([]Color, 257))
	assert.Equal(t, errPaletteSize, err)

	p, err := NewPalette([]Color{blackOpaque, white})
	require.Nil(t, err)
	assert.Equal(t, blackOpaque, p[0])
	for _, c := range p[1:] {
		assert.Equal(t, white, c)
	}
}
