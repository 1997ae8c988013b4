package texconv

import (
	"bufio"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoders for palette import
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/texconv/pixel"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	_ "github.com/mattn/go-sqlite3"
)

const maxColors = len(pixel.Palette{})

var (
	errNoPalette   = errors.New("texconv: no such palette")
	errBadPalette  = errors.New("texconv: invalid palette data")
	errNoColors    = errors.New("texconv: palette has no colors")
	errManyColors  = fmt.Errorf("texconv: palette has more than %d colors", maxColors)
	errBadHexEntry = errors.New("texconv: invalid palette entry")
)

// PaletteDB stores named palettes for palettized textures.
type PaletteDB struct {
	db *sql.DB
}

// NewPaletteDB opens or creates the palette database in file.
func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, colors INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *PaletteDB) Close() error {
	return db.db.Close()
}

func marshalEntries(entries []pixel.Color) []byte {
	b := make([]byte, len(entries)*4)
	for i, c := range entries {
		binary.LittleEndian.PutUint32(b[i*4:], c.A8R8G8B8())
	}
	return b
}

func unmarshalEntries(b []byte) ([]pixel.Color, error) {
	if len(b) == 0 || len(b)%4 != 0 || len(b) > maxColors*4 {
		return nil, errBadPalette
	}
	entries := make([]pixel.Color, len(b)/4)
	for i := range entries {
		entries[i] = pixel.FromA8R8G8B8(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return entries, nil
}

// Add stores entries under name, replacing any existing palette with that
// name.
func (db *PaletteDB) Add(name string, entries []pixel.Color) error {
	switch {
	case len(entries) == 0:
		return errNoColors
	case len(entries) > maxColors:
		return errManyColors
	}

	b := marshalEntries(entries)
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	if _, err := db.db.Exec("INSERT OR REPLACE INTO palette (name, sha1, colors, data) VALUES (?, ?, ?, ?)", name, sha, len(entries), b); err != nil {
		return err
	}
	return nil
}

func fromColorPalette(p color.Palette) []pixel.Color {
	entries := make([]pixel.Color, len(p))
	for i, c := range p {
		entries[i] = pixel.Model.Convert(c).(pixel.Color)
	}
	return entries
}

func opaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// ImportImage stores a palette derived from the image in file. Paletted
// images contribute their own palette, anything else is reduced to at most
// 256 colors with a median cut.
func (db *PaletteDB) ImportImage(name, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	var p color.Palette
	if pm, ok := m.(*image.Paletted); ok {
		p = pm.Palette
	} else {
		q := quantize.MedianCutQuantizer{
			AddTransparent: !opaque(m),
		}
		p = q.Quantize(make(color.Palette, 0, maxColors), m)
	}

	if len(p) > maxColors {
		p = p[:maxColors]
	}

	return db.Add(name, fromColorPalette(p))
}

// ImportHex stores a palette read from r. Each line holds a "#rrggbb" color
// optionally followed by a decimal alpha value; blank lines and lines
// starting with ';' are ignored.
func (db *PaletteDB) ImportHex(name string, r io.Reader) error {
	var entries []pixel.Color

	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], ";") {
			continue
		}
		if len(fields) > 2 {
			return fmt.Errorf("%w: line %d", errBadHexEntry, line)
		}

		c, err := ParseHex(fields[0])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", errBadHexEntry, line, err)
		}
		if len(fields) == 2 {
			a, err := strconv.ParseUint(fields[1], 10, 8)
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", errBadHexEntry, line, err)
			}
			c.Alpha = uint8(a)
		}

		entries = append(entries, c)
	}
	if err := s.Err(); err != nil {
		return err
	}

	return db.Add(name, entries)
}

// ParseHex parses an opaque "#rrggbb" or "#rgb" color.
func ParseHex(s string) (pixel.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return pixel.Color{}, err
	}
	r, g, b := c.RGB255()
	return pixel.Color{Alpha: 0xff, Red: r, Green: g, Blue: b}, nil
}

// FormatHex returns the "#rrggbb" form of c, alpha is not included.
func FormatHex(c pixel.Color) string {
	return colorful.Color{
		R: float64(c.Red) / 0xff,
		G: float64(c.Green) / 0xff,
		B: float64(c.Blue) / 0xff,
	}.Hex()
}

// Entries returns the colors of the named palette.
func (db *PaletteDB) Entries(name string) ([]pixel.Color, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM palette WHERE name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %q", errNoPalette, name)
	case nil:
		return unmarshalEntries(data)
	default:
		return nil, err
	}
}

// Palette returns the named palette padded to 256 colors.
func (db *PaletteDB) Palette(name string) (*pixel.Palette, error) {
	entries, err := db.Entries(name)
	if err != nil {
		return nil, err
	}
	return pixel.NewPalette(entries)
}

// PaletteInfo summarises a stored palette.
type PaletteInfo struct {
	Name   string
	Colors int
	SHA1   string
}

// List returns every stored palette ordered by name.
func (db *PaletteDB) List() ([]PaletteInfo, error) {
	rows, err := db.db.Query("SELECT name, colors, sha1 FROM palette ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []PaletteInfo
	for rows.Next() {
		var info PaletteInfo
		if err := rows.Scan(&info.Name, &info.Colors, &info.SHA1); err != nil {
			return nil, err
		}
		list = append(list, info)
	}
	return list, rows.Err()
}

// Delete removes the named palette.
func (db *PaletteDB) Delete(name string) error {
	result, err := db.db.Exec("DELETE FROM palette WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", errNoPalette, name)
	}
	return nil
}
