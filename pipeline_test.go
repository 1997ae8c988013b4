package texconv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureName(t *testing.T) {
	assert.Equal(t, "a/b.tex", textureName("a/b.png", false))
	assert.Equal(t, "a/b.tex.zst", textureName("a/b.JPG", true))
	assert.True(t, isImage("x.PNG"))
	assert.False(t, isImage("x.tex"))
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		filepath.Join(dir, "one.png"),
		filepath.Join(dir, "sub", "two.bmp"),
		filepath.Join(dir, ".hidden", "three.png"),
		filepath.Join(dir, ".four.png"),
	}
	for _, file := range files {
		require.Nil(t, os.MkdirAll(filepath.Dir(file), 0o755))
		require.Nil(t, imaging.Save(testImage(4, 4), file))
	}
	require.Nil(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	c := newTestConverter(nil)
	require.Nil(t, c.Batch(context.Background(), dir, true, Options{Format: "X8R8G8B8"}))

	for i, file := range files {
		_, err := os.Stat(textureName(file, true))
		if i < 2 {
			assert.Nil(t, err, file)
			b, err := readPayload(textureName(file, true))
			require.Nil(t, err)
			assert.Len(t, b, 4*4*4)
		} else {
			assert.True(t, os.IsNotExist(err), file)
		}
	}
}

func TestBatchErrors(t *testing.T) {
	dir := t.TempDir()
	c := newTestConverter(nil)

	assert.NotNil(t, c.Batch(context.Background(), dir, false, Options{Format: "bogus"}))

	// Undecodable image
	require.Nil(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644))
	assert.NotNil(t, c.Batch(context.Background(), dir, false, Options{Format: "A8R8G8B8"}))

	assert.NotNil(t, c.Batch(context.Background(), filepath.Join(dir, "missing"), false, Options{Format: "A8R8G8B8"}))
}
