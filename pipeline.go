package texconv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/texconv/internal/pipeline"
)

// TextureExt is the extension given to raw textures written by Batch.
const TextureExt = ".tex"

var imageExts = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
}

func isImage(file string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(file))]
	return ok
}

func textureName(file string, compress bool) string {
	name := strings.TrimSuffix(file, filepath.Ext(file)) + TextureExt
	if compress {
		name += CompressedExt
	}
	return name
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal image file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan string, compress bool, opts Options) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := c.EncodeFile(ctx, file, textureName(file, compress), opts); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// Batch encodes every image found under path, writing each texture
// alongside its source with the TextureExt extension, followed by
// CompressedExt if compress is set. Hidden files and directories are
// skipped.
func (c *Converter) Batch(ctx context.Context, path string, compress bool, opts Options) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Resolve the format once so a bad name fails before any work
	if _, err := c.format(opts); err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		errc, err := c.imageWorker(ctx, files, compress, opts)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return pipeline.Wait(cancelFunc, errcList...)
}
