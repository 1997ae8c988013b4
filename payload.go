package texconv

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks a raw texture file as zstd compressed.
const CompressedExt = ".zst"

func compressed(file string) bool {
	return strings.EqualFold(filepath.Ext(file), CompressedExt)
}

func readPayload(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !compressed(file) {
		return io.ReadAll(f)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(dec)
}

func writePayload(file string, b []byte) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !compressed(file) {
		_, err = f.Write(b)
		return err
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if _, err = io.Copy(enc, bytes.NewReader(b)); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
