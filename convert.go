package texconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/bodgit/texconv/format"
	"github.com/bodgit/texconv/texture"
	"github.com/disintegration/imaging"
)

var (
	errNoDB          = errors.New("texconv: no palette database")
	errPaletteFormat = errors.New("texconv: palette requires the P8 format")
	errNoSize        = errors.New("texconv: texture dimensions required")
	errBadSize       = errors.New("texconv: invalid texture dimensions")
)

// Options selects the raw texture format and dimensions.
type Options struct {
	// Format is the format name, such as "A8R8G8B8". It may be empty or
	// "P8" when Palette is set.
	Format string
	// Palette names a palette in the database and selects the 8-bit
	// palettized format.
	Palette string
	// Width and Height are the texture dimensions. When encoding they
	// resize the source image, a zero value keeps the aspect ratio and
	// both zero keeps the original size. When decoding both are required.
	Width, Height int
}

func (c *Converter) format(opts Options) (format.Format, error) {
	if opts.Palette == "" {
		return format.Parse(opts.Format)
	}

	if opts.Format != "" && !strings.EqualFold(opts.Format, "P8") {
		return format.Format{}, fmt.Errorf("%w: %q", errPaletteFormat, opts.Format)
	}
	if c.db == nil {
		return format.Format{}, errNoDB
	}

	p, err := c.db.Palette(opts.Palette)
	if err != nil {
		return format.Format{}, err
	}
	return format.Paletted(p), nil
}

// Encode converts m to a raw texture.
func (c *Converter) Encode(ctx context.Context, m image.Image, opts Options) ([]byte, error) {
	f, err := c.format(opts)
	if err != nil {
		return nil, err
	}

	switch {
	case opts.Width < 0 || opts.Height < 0:
		return nil, fmt.Errorf("%w: %dx%d", errBadSize, opts.Width, opts.Height)
	case opts.Width > 0 || opts.Height > 0:
		m = texture.Resize(m, opts.Width, opts.Height)
	}

	b := new(bytes.Buffer)
	enc := texture.Encoder{Workers: c.Workers}
	if err := enc.Encode(ctx, b, m, f); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Decode converts a raw texture to an image.
func (c *Converter) Decode(b []byte, opts Options) (*texture.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errNoSize
	}

	f, err := c.format(opts)
	if err != nil {
		return nil, err
	}

	return texture.Decode(bytes.NewReader(b), f, opts.Width, opts.Height)
}

// EncodeFile reads the image in, which can be any format supported by
// imaging, and writes it as a raw texture to out. The texture is zstd
// compressed if out has the CompressedExt extension.
func (c *Converter) EncodeFile(ctx context.Context, in, out string, opts Options) error {
	m, err := imaging.Open(in)
	if err != nil {
		return err
	}

	b, err := c.Encode(ctx, m, opts)
	if err != nil {
		return err
	}

	if err := writePayload(out, b); err != nil {
		return err
	}

	c.logger.Printf("Encoded \"%s\" to \"%s\" (%d bytes)\n", in, out, len(b))

	return nil
}

// DecodeFile reads the raw texture in and writes it as an image to out, the
// image format is chosen from the extension of out.
func (c *Converter) DecodeFile(in, out string, opts Options) error {
	b, err := readPayload(in)
	if err != nil {
		return err
	}

	m, err := c.Decode(b, opts)
	if err != nil {
		return err
	}

	if err := imaging.Save(m, out); err != nil {
		return err
	}

	c.logger.Printf("Decoded \"%s\" to \"%s\"\n", in, out)

	return nil
}
