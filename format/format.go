/*
Package format describes the pixel layouts stored by texture containers and
converts whole buffers of pixel.Color values to and from them.

Uncompressed layouts use one pixel per block. Block compressed layouts use
4 by 4 pixel blocks; their geometry is known but encoding and decoding them
returns ErrUnsupported. Textures whose dimensions are not a multiple of the
block size are rounded up to the nearest block and the extra pixels are
undetermined but valid.
*/
package format

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/bodgit/texconv/pixel"
)

var (
	// ErrSizeMismatch is returned when a buffer length does not match the
	// texture dimensions.
	ErrSizeMismatch = errors.New("format: buffer size mismatch")
	// ErrOverflow is returned when the buffer size for the texture
	// dimensions cannot be represented.
	ErrOverflow = errors.New("format: size overflows")
	// ErrUnsupported is returned when converting a block compressed format.
	ErrUnsupported = errors.New("format: unsupported format")
	errUnknown     = errors.New("format: unknown format")
	errNoPalette   = errors.New("format: palettized format requires a palette")
)

type kind uint8

const (
	kindDXT1 kind = iota + 1
	kindDXT3
	kindDXT5
	kindBC7
	kindA8
	kindY8
	kindAY8
	kindA8Y8
	kindR5G6B5
	kindA1R5G5B5
	kindA4R4G4B4
	kindX8R8G8B8
	kindA8R8G8B8
	kindX8B8G8R8
	kindA8B8G8R8
	kindP8
)

type info struct {
	name        string
	description string
	blockPixels int
	blockBytes  int
}

var kinds = map[kind]info{
	kindDXT1:     {"DXT1", "DXT block compression with optional 1-bit alpha", 4, 8},
	kindDXT3:     {"DXT3", "DXT block compression with 4-bit explicit alpha", 4, 16},
	kindDXT5:     {"DXT5", "DXT block compression with interpolated alpha", 4, 16},
	kindBC7:      {"BC7", "BC7 block compression with optional alpha", 4, 16},
	kindA8:       {"A8", "8-bit alpha (100% white)", 1, 1},
	kindY8:       {"Y8", "8-bit luminosity (100% opaque)", 1, 1},
	kindAY8:      {"AY8", "8-bit alpha-luminosity (alpha=luminosity)", 1, 1},
	kindA8Y8:     {"A8Y8", "8-bit alpha with 8-bit luminosity", 1, 2},
	kindR5G6B5:   {"R5G6B5", "5-bit red, 6-bit green and 5-bit blue (100% opaque)", 1, 2},
	kindA1R5G5B5: {"A1R5G5B5", "1-bit alpha, 5-bit red, green and blue", 1, 2},
	kindA4R4G4B4: {"A4R4G4B4", "4-bit alpha, red, green and blue", 1, 2},
	kindX8R8G8B8: {"X8R8G8B8", "8-bit red, green and blue (100% opaque)", 1, 4},
	kindA8R8G8B8: {"A8R8G8B8", "8-bit alpha, red, green and blue", 1, 4},
	kindX8B8G8R8: {"X8B8G8R8", "8-bit blue, green and red (100% opaque)", 1, 4},
	kindA8B8G8R8: {"A8B8G8R8", "8-bit alpha, blue, green and red", 1, 4},
	kindP8:       {"P8", "8-bit palettized", 1, 1},
}

// Format is a pixel layout. The zero value is not a valid Format. Formats are
// comparable; palettized formats compare equal when they share a palette.
type Format struct {
	kind    kind
	palette *pixel.Palette
}

// The supported formats. Use Paletted for 8-bit palettized textures.
var (
	DXT1     = Format{kind: kindDXT1}
	DXT3     = Format{kind: kindDXT3}
	DXT5     = Format{kind: kindDXT5}
	BC7      = Format{kind: kindBC7}
	A8       = Format{kind: kindA8}
	Y8       = Format{kind: kindY8}
	AY8      = Format{kind: kindAY8}
	A8Y8     = Format{kind: kindA8Y8}
	R5G6B5   = Format{kind: kindR5G6B5}
	A1R5G5B5 = Format{kind: kindA1R5G5B5}
	A4R4G4B4 = Format{kind: kindA4R4G4B4}
	X8R8G8B8 = Format{kind: kindX8R8G8B8}
	A8R8G8B8 = Format{kind: kindA8R8G8B8}
	X8B8G8R8 = Format{kind: kindX8B8G8R8}
	A8B8G8R8 = Format{kind: kindA8B8G8R8}
)

// Formats lists every non-palettized format.
var Formats = []Format{
	DXT1, DXT3, DXT5, BC7,
	A8, Y8, AY8, A8Y8,
	R5G6B5, A1R5G5B5, A4R4G4B4,
	X8R8G8B8, A8R8G8B8, X8B8G8R8, A8B8G8R8,
}

// Paletted returns an 8-bit palettized format using p. The palette is shared,
// not copied, and must not be modified while the format is in use.
func Paletted(p *pixel.Palette) Format {
	return Format{kind: kindP8, palette: p}
}

// Parse returns the format with the given name, case insensitively. The
// palettized format "P8" needs a palette; use Paletted instead.
func Parse(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(f.String(), name) {
			return f, nil
		}
	}
	if strings.EqualFold(kinds[kindP8].name, name) {
		return Format{}, errNoPalette
	}
	return Format{}, fmt.Errorf("%w: %q", errUnknown, name)
}

func (f Format) String() string {
	if i, ok := kinds[f.kind]; ok {
		return i.name
	}
	return "invalid"
}

// Description returns a short human readable description.
func (f Format) Description() string {
	return kinds[f.kind].description
}

// Palette returns the palette of a palettized format, otherwise nil.
func (f Format) Palette() *pixel.Palette {
	return f.palette
}

// IsPaletted reports whether f stores palette indices.
func (f Format) IsPaletted() bool {
	return f.kind == kindP8
}

// Compressed reports whether f uses block compression.
func (f Format) Compressed() bool {
	return f.BlockSizePixels() > 1
}

// Supported reports whether f can be encoded and decoded.
func (f Format) Supported() bool {
	_, ok := kinds[f.kind]
	return ok && !f.Compressed() && (f.kind != kindP8 || f.palette != nil)
}

// BlockSizePixels returns the width and height of each block in pixels.
func (f Format) BlockSizePixels() int {
	return kinds[f.kind].blockPixels
}

// BlockSizeBytes returns the number of bytes each block takes up.
func (f Format) BlockSizeBytes() int {
	return kinds[f.kind].blockBytes
}

func mul(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

func divCeil(a, b int) int {
	return a/b + min(a%b, 1)
}

// RequiredBytes returns the number of bytes needed to store a width by height
// texture, rounding both dimensions up to whole blocks.
func (f Format) RequiredBytes(width, height int) (int, error) {
	if _, ok := kinds[f.kind]; !ok {
		return 0, errUnknown
	}
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative dimensions %dx%d", ErrSizeMismatch, width, height)
	}

	n := f.BlockSizePixels()
	blocks, ok := mul(divCeil(height, n), divCeil(width, n))
	if !ok {
		return 0, fmt.Errorf("%w: %dx%d blocks", ErrOverflow, divCeil(width, n), divCeil(height, n))
	}
	size, ok := mul(blocks, f.BlockSizeBytes())
	if !ok {
		return 0, fmt.Errorf("%w: %d blocks of %d bytes", ErrOverflow, blocks, f.BlockSizeBytes())
	}
	return size, nil
}

func (f Format) supported() error {
	switch {
	case f.Supported():
		return nil
	case f.kind == kindP8:
		return errNoPalette
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
}

// check validates both buffer lengths against the dimensions.
func (f Format) check(bytes, colors, width, height int) error {
	if err := f.supported(); err != nil {
		return err
	}

	size, err := f.RequiredBytes(width, height)
	if err != nil {
		return err
	}
	pixels, ok := mul(width, height)
	if !ok {
		return fmt.Errorf("%w: %dx%d pixels", ErrOverflow, width, height)
	}

	if bytes != size {
		return fmt.Errorf("%w: have %d bytes, need %d for %dx%d %s", ErrSizeMismatch, bytes, size, width, height, f)
	}
	if colors != pixels {
		return fmt.Errorf("%w: have %d colors, need %d for %dx%d", ErrSizeMismatch, colors, pixels, width, height)
	}
	return nil
}
