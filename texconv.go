/*
Package texconv is a library for converting images to and from raw texture
pixel data.
*/
package texconv

import "log"

// Converter converts image files to and from raw textures.
type Converter struct {
	db     *PaletteDB
	logger *log.Logger

	// Workers is the number of goroutines used for palette matching and
	// batch conversion.
	Workers int
}

// New returns a Converter that resolves named palettes from db, which may
// be nil if no palettized formats are used.
func New(db *PaletteDB, logger *log.Logger) *Converter {
	return &Converter{
		db:      db,
		logger:  logger,
		Workers: 1,
	}
}
