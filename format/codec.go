package format

import (
	"context"
	"encoding/binary"

	"github.com/bodgit/texconv/palette"
	"github.com/bodgit/texconv/pixel"
)

type encodeFunc func(pixel.Color, []byte)

type decodeFunc func([]byte) pixel.Color

// Multi-byte layouts are little-endian
var encoders = map[kind]encodeFunc{
	kindA8:       func(c pixel.Color, b []byte) { b[0] = c.A8() },
	kindY8:       func(c pixel.Color, b []byte) { b[0] = c.Y8() },
	kindAY8:      func(c pixel.Color, b []byte) { b[0] = c.AY8() },
	kindA8Y8:     func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint16(b, c.A8Y8()) },
	kindR5G6B5:   func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint16(b, c.R5G6B5()) },
	kindA1R5G5B5: func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint16(b, c.A1R5G5B5()) },
	kindA4R4G4B4: func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint16(b, c.A4R4G4B4()) },
	kindX8R8G8B8: func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint32(b, c.X8R8G8B8()) },
	kindA8R8G8B8: func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint32(b, c.A8R8G8B8()) },
	kindX8B8G8R8: func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint32(b, c.X8B8G8R8()) },
	kindA8B8G8R8: func(c pixel.Color, b []byte) { binary.LittleEndian.PutUint32(b, c.A8B8G8R8()) },
}

var decoders = map[kind]decodeFunc{
	kindA8:       func(b []byte) pixel.Color { return pixel.FromA8(b[0]) },
	kindY8:       func(b []byte) pixel.Color { return pixel.FromY8(b[0]) },
	kindAY8:      func(b []byte) pixel.Color { return pixel.FromAY8(b[0]) },
	kindA8Y8:     func(b []byte) pixel.Color { return pixel.FromA8Y8(binary.LittleEndian.Uint16(b)) },
	kindR5G6B5:   func(b []byte) pixel.Color { return pixel.FromR5G6B5(binary.LittleEndian.Uint16(b)) },
	kindA1R5G5B5: func(b []byte) pixel.Color { return pixel.FromA1R5G5B5(binary.LittleEndian.Uint16(b)) },
	kindA4R4G4B4: func(b []byte) pixel.Color { return pixel.FromA4R4G4B4(binary.LittleEndian.Uint16(b)) },
	kindX8R8G8B8: func(b []byte) pixel.Color { return pixel.FromX8R8G8B8(binary.LittleEndian.Uint32(b)) },
	kindA8R8G8B8: func(b []byte) pixel.Color { return pixel.FromA8R8G8B8(binary.LittleEndian.Uint32(b)) },
	kindX8B8G8R8: func(b []byte) pixel.Color { return pixel.FromX8B8G8R8(binary.LittleEndian.Uint32(b)) },
	kindA8B8G8R8: func(b []byte) pixel.Color { return pixel.FromA8B8G8R8(binary.LittleEndian.Uint32(b)) },
}

// Encode converts the width by height row-major colors in src and returns a
// new buffer of RequiredBytes(width, height) bytes.
func (f Format) Encode(src []pixel.Color, width, height int) ([]byte, error) {
	if err := f.supported(); err != nil {
		return nil, err
	}
	size, err := f.RequiredBytes(width, height)
	if err != nil {
		return nil, err
	}
	if err := f.check(size, len(src), width, height); err != nil {
		return nil, err
	}
	dst := make([]byte, size)
	if err := f.EncodeTo(dst, src, width, height); err != nil {
		return nil, err
	}
	return dst, nil
}

// EncodeTo converts the width by height row-major colors in src into dst. The
// length of dst must be exactly RequiredBytes(width, height) and src must
// hold width*height colors. Nothing is written to dst if an error is
// returned.
func (f Format) EncodeTo(dst []byte, src []pixel.Color, width, height int) error {
	return f.EncodeContext(context.Background(), dst, src, width, height, 1)
}

// EncodeContext is like EncodeTo but matches palettized colors using up to
// workers goroutines.
func (f Format) EncodeContext(ctx context.Context, dst []byte, src []pixel.Color, width, height, workers int) error {
	if err := f.check(len(dst), len(src), width, height); err != nil {
		return err
	}

	if f.kind == kindP8 {
		m, err := palette.NewMatcher(f.palette[:])
		if err != nil {
			return err
		}
		indices, err := m.MatchParallel(ctx, src, workers)
		if err != nil {
			return err
		}
		for i, index := range indices {
			dst[i] = byte(index)
		}
		return nil
	}

	enc := encoders[f.kind]
	n := f.BlockSizeBytes()
	for i, c := range src {
		enc(c, dst[i*n:i*n+n])
	}
	return nil
}

// Decode converts a buffer of RequiredBytes(width, height) bytes and returns
// width*height row-major colors.
func (f Format) Decode(src []byte, width, height int) ([]pixel.Color, error) {
	if err := f.supported(); err != nil {
		return nil, err
	}
	if _, err := f.RequiredBytes(width, height); err != nil {
		return nil, err
	}
	pixels, ok := mul(width, height)
	if !ok {
		return nil, ErrOverflow
	}
	if err := f.check(len(src), pixels, width, height); err != nil {
		return nil, err
	}
	dst := make([]pixel.Color, pixels)
	if err := f.DecodeTo(dst, src, width, height); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeTo converts src into the width by height row-major colors in dst.
// Palettized formats look each index up in the palette directly.
func (f Format) DecodeTo(dst []pixel.Color, src []byte, width, height int) error {
	if err := f.check(len(src), len(dst), width, height); err != nil {
		return err
	}

	if f.kind == kindP8 {
		for i, b := range src {
			dst[i] = f.palette[b]
		}
		return nil
	}

	dec := decoders[f.kind]
	n := f.BlockSizeBytes()
	for i := range dst {
		dst[i] = dec(src[i*n : i*n+n])
	}
	return nil
}
