package rename

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.PNG")
	writePNG(t, path, 3, 2)

	d, err := Stat(path)
	require.NoError(t, err)

	assert.False(t, d.IsDir())
	assert.Equal(t, "shot.PNG", d.Name())
	assert.Equal(t, dir, d.Path())
	assert.Equal(t, path, d.FullPathName())
	assert.Equal(t, "PNG", d.Extension(false))
	assert.Equal(t, ".PNG", d.Extension(true))
	assert.Equal(t, "png", d.Format(), "format comes from the content, not the extension case")
	assert.Equal(t, 3, d.ImageWidth())
	assert.Equal(t, 2, d.ImageHeight())
}

func TestStatNonImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	d, err := Stat(path)
	require.NoError(t, err)

	assert.Equal(t, 0, d.ImageWidth())
	assert.Equal(t, 0, d.ImageHeight())
	assert.Equal(t, "txt", d.Format())
	assert.EqualValues(t, 5, d.Size())
}

func TestStatDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "album")
	require.NoError(t, os.Mkdir(sub, 0o755))

	d, err := Stat(sub)
	require.NoError(t, err)

	assert.True(t, d.IsDir())
	assert.Equal(t, "album", d.Name())
	assert.Equal(t, "", d.Extension(true))
	assert.Equal(t, "directory", d.Format())

	_, err = d.Hash(HashMD5)
	assert.Error(t, err)
}

func TestHashDigests(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	d, err := Stat(path)
	require.NoError(t, err)

	md5sum, err := d.Hash(HashMD5)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", md5sum)

	sha1sum, err := d.Hash(HashSHA1)
	require.NoError(t, err)
	assert.Len(t, sha1sum, 40)

	again, err := d.Hash(HashMD5)
	require.NoError(t, err)
	assert.Equal(t, md5sum, again)

	_, err = d.Hash(HashAlg("crc32"))
	assert.Error(t, err)
}

func TestStatMissingFile(t *testing.T) {
	_, err := Stat(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
