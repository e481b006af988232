package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
}

func TestCounterNextValue(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		writeFiles(t, dir, fmt.Sprintf("img_%04d.png", i))
	}

	d := &fakeFile{name: "source.png", path: dir, modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_0006.png", got)
}

func TestCounterEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	d := &fakeFile{name: "source.png", path: dir, modTime: time.Now()}

	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_0001.png", got)

	got, err = CalculateFileName(d, "img_{counter}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_1.png", got)
}

func TestCounterSkipsGaps(t *testing.T) {
	// the next value is one past the highest, not the first free slot
	dir := t.TempDir()
	writeFiles(t, dir, "img_0001.png", "img_0009.png")

	d := &fakeFile{name: "source.png", path: dir, modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_0010.png", got)
}

func TestCounterIgnoresOtherNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "img_0001.png", "img_0002.png", "other_0044.png", "img_1.png", "img_0003.jpg")

	d := &fakeFile{name: "source.png", path: dir, modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_0003.png", got)
}

func TestCounterPaddedMinimumWidth(t *testing.T) {
	// a padded counter matches existing names with more digits too
	dir := t.TempDir()
	writeFiles(t, dir, "img_0001.png", "img_12345.png")

	d := &fakeFile{name: "source.png", path: dir, modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_12346.png", got)
}

func TestCounterMatchesEntryKind(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "img_0007.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img_0001.png"), 0o755))

	// a directory descriptor only competes with directories
	d := &fakeFile{name: "source", path: dir, dir: true, modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_0002.png", got)
}

func TestCounterMissingTargetShortCircuits(t *testing.T) {
	// a first-value candidate that does not exist needs no scan at all,
	// even when the target directory itself is missing
	d := &fakeFile{name: "source.png", path: "/nonexistent-bulirename-test", modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{Platform: PlatformPOSIX})
	require.NoError(t, err)
	assert.Equal(t, "img_0001.png", got)
}

func TestCounterTargetPathOverride(t *testing.T) {
	target := t.TempDir()
	writeFiles(t, target, "img_0001.png", "img_0004.png")

	d := &fakeFile{name: "source.png", path: t.TempDir(), modTime: time.Now()}
	got, err := CalculateFileName(d, "img_{counter:####}.png", Options{
		Platform:   PlatformPOSIX,
		TargetPath: target,
	})
	require.NoError(t, err)
	assert.Equal(t, "img_0005.png", got)
}
