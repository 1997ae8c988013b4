package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bodgit/texconv"
	"github.com/bodgit/texconv/format"
	"github.com/bodgit/texconv/palette"
	"github.com/urfave/cli/v2"
)

const defaultDB = "texconv.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var textureFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "format",
		Usage: "texture format, see the formats command",
	},
	&cli.StringFlag{
		Name:  "palette",
		Usage: "palette name for the P8 format",
	},
	&cli.IntFlag{
		Name:  "width",
		Usage: "texture width",
	},
	&cli.IntFlag{
		Name:  "height",
		Usage: "texture height",
	},
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openDB(c *cli.Context) (*texconv.PaletteDB, error) {
	return texconv.NewPaletteDB(c.String("db"))
}

func withConverter(c *cli.Context, fn func(*texconv.Converter) error) error {
	var db *texconv.PaletteDB
	if c.String("palette") != "" {
		var err error
		if db, err = openDB(c); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()
	}

	conv := texconv.New(db, newLogger(c))
	conv.Workers = c.Int("workers")

	if err := fn(conv); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func options(c *cli.Context) texconv.Options {
	return texconv.Options{
		Format:  c.String("format"),
		Palette: c.String("palette"),
		Width:   c.Int("width"),
		Height:  c.Int("height"),
	}
}

func newApp(ctx context.Context, cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "texconv"
	app.Usage = "Raw texture conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TEXCONV_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette database",
		},
		&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"TEXCONV_WORKERS"},
			Value:   4,
			Usage:   "number of concurrent workers",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "formats",
			Usage: "List texture formats",
			Action: func(c *cli.Context) error {
				for _, f := range format.Formats {
					state := ""
					if !f.Supported() {
						state = " (unsupported)"
					}
					fmt.Fprintf(c.App.Writer, "%-10s %s%s\n", f, f.Description(), state)
				}
				p := format.Paletted(nil)
				fmt.Fprintf(c.App.Writer, "%-10s %s\n", p, p.Description())
				return nil
			},
		},
		{
			Name:      "encode",
			Usage:     "Convert an image to a raw texture",
			ArgsUsage: "IMAGE TEXTURE",
			Flags:     textureFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withConverter(c, func(conv *texconv.Converter) error {
					return conv.EncodeFile(ctx, c.Args().Get(0), c.Args().Get(1), options(c))
				})
			},
		},
		{
			Name:      "decode",
			Usage:     "Convert a raw texture to an image",
			ArgsUsage: "TEXTURE IMAGE",
			Flags:     textureFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withConverter(c, func(conv *texconv.Converter) error {
					return conv.DecodeFile(c.Args().Get(0), c.Args().Get(1), options(c))
				})
			},
		},
		{
			Name:      "batch",
			Usage:     "Convert every image under a directory to raw textures",
			ArgsUsage: "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  "compress",
					Usage: "zstd compress the textures",
				},
			}, textureFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withConverter(c, func(conv *texconv.Converter) error {
					return conv.Batch(ctx, c.Args().First(), c.Bool("compress"), options(c))
				})
			},
		},
		{
			Name:  "palette",
			Usage: "Manage palettes",
			Subcommands: []*cli.Command{
				{
					Name:        "import",
					Usage:       "Import a palette",
					Description: "Import the palette of an image, or a list of #rrggbb colors with an optional alpha if the file ends in .hex",
					ArgsUsage:   "NAME FILE",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						name, file := c.Args().Get(0), c.Args().Get(1)
						if strings.EqualFold(filepath.Ext(file), ".hex") {
							var f *os.File
							if f, err = os.Open(file); err != nil {
								return cli.NewExitError(err, 1)
							}
							defer f.Close()
							err = db.ImportHex(name, f)
						} else {
							err = db.ImportImage(name, file)
						}
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						newLogger(c).Printf("Imported palette \"%s\" from \"%s\"\n", name, file)

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List palettes",
					Action: func(c *cli.Context) error {
						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						list, err := db.List()
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						for _, info := range list {
							fmt.Fprintf(c.App.Writer, "%-20s %3d %s\n", info.Name, info.Colors, info.SHA1)
						}

						return nil
					},
				},
				{
					Name:      "show",
					Usage:     "Show the colors of a palette",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						entries, err := db.Entries(c.Args().First())
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						m, err := palette.NewMatcher(entries)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						fmt.Fprintf(c.App.Writer, "; %d colors, %s matching\n", m.Len(), m.Mode())

						for _, e := range entries {
							fmt.Fprintf(c.App.Writer, "%s %d\n", texconv.FormatHex(e), e.Alpha)
						}

						return nil
					},
				},
				{
					Name:      "delete",
					Usage:     "Delete a palette",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := openDB(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						if err := db.Delete(c.Args().First()); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ctx, cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
