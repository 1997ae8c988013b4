package texture

import (
	"errors"
	"image"
	"io"

	"github.com/bodgit/texconv/format"
	"github.com/bodgit/texconv/pixel"
)

var (
	errNotEnough = errors.New("texture: not enough image data")
	errTooMuch   = errors.New("texture: too much image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r      io.Reader
	format format.Format
	width  int
	height int

	image *Image
	tmp   []byte
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if !d.format.Supported() {
		// Let the format report why
		_, err := d.format.Decode(nil, d.width, d.height)
		return err
	}
	size, err := d.format.RequiredBytes(d.width, d.height)
	if err != nil {
		return err
	}

	d.tmp = make([]byte, size)
	if err := readFull(d.r, d.tmp); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	var one [1]byte
	if _, err := io.ReadFull(d.r, one[:]); err != io.EOF {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	if configOnly {
		return nil
	}

	d.image = New(image.Rect(0, 0, d.width, d.height))

	return d.format.DecodeTo(d.image.Pix, d.tmp, d.width, d.height)
}

// Decode reads a width by height texture stored in format f from r. All of r
// must be consumed.
func Decode(r io.Reader, f format.Format, width, height int) (*Image, error) {
	d := decoder{format: f, width: width, height: height}
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig checks that r holds exactly a width by height texture in
// format f without converting the pixels.
func DecodeConfig(r io.Reader, f format.Format, width, height int) (image.Config, error) {
	d := decoder{format: f, width: width, height: height}
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	var model = pixel.Model
	if p := f.Palette(); p != nil {
		model = palette(p)
	}
	return image.Config{
		ColorModel: model,
		Width:      width,
		Height:     height,
	}, nil
}
