/*
Package palette maps colors onto the nearest entry of a fixed palette.

The matching policy is chosen by looking at the alpha values of the palette:

  - If every entry is either fully opaque or fully transparent and at least
    one is opaque, alpha is disregarded and colors are compared by red,
    green and blue only.
  - If every entry is fully transparent, alpha is treated as binary: colors
    with alpha above 127 have no candidate and fail with ErrNoCandidate,
    the rest are compared by red, green and blue.
  - Otherwise all four channels are compared.

Distances are squared Euclidean and ties resolve to the lowest index.
*/
package palette

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/bodgit/texconv/pixel"
)

var (
	// ErrEmptyPalette is returned when matching against a palette with no
	// entries.
	ErrEmptyPalette = errors.New("palette: empty palette")
	// ErrTooManyColors is returned when a palette has more than 256
	// entries.
	ErrTooManyColors = errors.New("palette: more than 256 colors")
	// ErrNoCandidate is returned when no palette entry may be used for a
	// color.
	ErrNoCandidate = errors.New("palette: no candidate color")
)

// Mode is the matching policy chosen for a palette.
type Mode int

// Matching policies
const (
	RGB Mode = iota
	OneBitAlpha
	ARGB
)

func (m Mode) String() string {
	switch m {
	case RGB:
		return "rgb"
	case OneBitAlpha:
		return "one-bit-alpha"
	case ARGB:
		return "argb"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

const maxColors = 256

// Matcher finds the nearest palette entry for colors. It only reads the
// palette so it is safe for concurrent use as long as the entries are not
// modified.
type Matcher struct {
	entries []pixel.Color
	mode    Mode
}

func classify(entries []pixel.Color) Mode {
	oneBitAlpha, opaque := true, false
	for _, c := range entries {
		switch c.Alpha {
		case math.MaxUint8:
			opaque = true
		case 0:
		default:
			oneBitAlpha = false
		}
	}

	switch {
	case oneBitAlpha && opaque:
		// Opaque and fully transparent entries only, alpha is disregarded
		return RGB
	case oneBitAlpha:
		return OneBitAlpha
	default:
		return ARGB
	}
}

// NewMatcher returns a Matcher for entries, which must hold between 1 and
// 256 colors. The slice is not copied.
func NewMatcher(entries []pixel.Color) (*Matcher, error) {
	switch {
	case len(entries) == 0:
		return nil, ErrEmptyPalette
	case len(entries) > maxColors:
		return nil, fmt.Errorf("%w: %d", ErrTooManyColors, len(entries))
	}
	return &Matcher{
		entries: entries,
		mode:    classify(entries),
	}, nil
}

// Mode returns the matching policy used.
func (m *Matcher) Mode() Mode {
	return m.mode
}

// Len returns the number of palette entries.
func (m *Matcher) Len() int {
	return len(m.entries)
}

func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

func distanceRGB(a, b pixel.Color) uint32 {
	return sqDiff(a.Red, b.Red) + sqDiff(a.Green, b.Green) + sqDiff(a.Blue, b.Blue)
}

func distanceARGB(a, b pixel.Color) uint32 {
	return sqDiff(a.Alpha, b.Alpha) + distanceRGB(a, b)
}

// excluded reports whether candidate is in the other alpha bucket to c.
func excluded(c, candidate pixel.Color) bool {
	if c.Alpha <= 127 {
		return candidate.Alpha == math.MaxUint8
	}
	return candidate.Alpha == 0
}

// Index returns the index of the palette entry nearest to c.
func (m *Matcher) Index(c pixel.Color) (int, error) {
	distance := distanceRGB
	if m.mode == ARGB {
		distance = distanceARGB
	}

	best, bestSum := -1, uint32(math.MaxUint32)
	for i, candidate := range m.entries {
		if m.mode == OneBitAlpha && excluded(c, candidate) {
			continue
		}
		if sum := distance(c, candidate); best < 0 || sum < bestSum {
			best, bestSum = i, sum
		}
	}

	if best < 0 {
		return 0, fmt.Errorf("%w: %+v", ErrNoCandidate, c)
	}
	return best, nil
}

// Indices returns a sequence of the nearest palette index for each color in
// colors, in order. The sequence stops after the first error.
func (m *Matcher) Indices(colors []pixel.Color) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		for _, c := range colors {
			i, err := m.Index(c)
			if !yield(i, err) || err != nil {
				return
			}
		}
	}
}

// MatchInto writes the nearest palette index for each color in colors into
// dst, which must be at least as long as colors.
func (m *Matcher) MatchInto(dst []int, colors []pixel.Color) error {
	for i, c := range colors {
		index, err := m.Index(c)
		if err != nil {
			return err
		}
		dst[i] = index
	}
	return nil
}

// Match returns the nearest index in entries for each color in colors.
func Match(colors, entries []pixel.Color) ([]int, error) {
	m, err := NewMatcher(entries)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(colors))
	if err := m.MatchInto(indices, colors); err != nil {
		return nil, err
	}
	return indices, nil
}
