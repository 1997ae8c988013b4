package texture

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/texconv/format"
	"github.com/bodgit/texconv/pixel"
)

func palette(p *pixel.Palette) color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Encoder configures encoding textures.
type Encoder struct {
	// Workers is the number of goroutines used to match colors for
	// palettized formats. Less than two matches on the calling goroutine.
	Workers int
}

// Encode writes m to w in format f with no header. The dimensions of m are
// needed to decode it again.
func (enc *Encoder) Encode(ctx context.Context, w io.Writer, m image.Image, f format.Format) error {
	t := FromImage(m)

	// Adjust image so that top-left corner is at (0, 0)
	if t.Rect.Min != (image.Point{}) {
		dup := *t
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		t = &dup
	}

	width, height := t.Rect.Dx(), t.Rect.Dy()
	size, err := f.RequiredBytes(width, height)
	if err != nil {
		return err
	}

	b := make([]byte, size)
	if err := f.EncodeContext(ctx, b, t.Pix, width, height, enc.Workers); err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}

// Encode writes m to w in format f using the default Encoder.
func Encode(w io.Writer, m image.Image, f format.Format) error {
	var enc Encoder
	return enc.Encode(context.Background(), w, m, f)
}
