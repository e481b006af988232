package rename

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNameFromKeywords(t *testing.T) {
	d := &fakeFile{
		name:    "pic.png",
		path:    "/photos",
		modTime: time.Date(2024, 3, 7, 14, 5, 9, 0, time.UTC),
		width:   800,
		height:  600,
	}

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"basename and ext", "{file:baseName}_copy.{file:ext}", "pic_copy.png"},
		{"case insensitive keywords", "{FILE:BASENAME}.{File:Ext}", "pic.png"},
		{"file date", "{file:baseName}_{file:date}.{file:ext}", "pic_20240307.png"},
		{"image size", "{file:baseName}_{image:size}.{file:ext}", "pic_800x600.png"},
		{"padded image width", "{image:size:width:####}.{file:ext}", "0800.png"},
		{"format", "{file:baseName}.{file:format}", "pic.png"},
		{"path", "{file:path}", "/photos"},
		{"no keywords", "literal.txt", "literal.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileNameFromKeywords(d, tt.pattern, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileNameFromKeywordsEmptyPatterns(t *testing.T) {
	d := &fakeFile{name: "pic.png", path: "/photos"}

	// <none> anywhere in the pattern means "no name"
	for _, pattern := range []string{"", "   ", "<none>", "<None>", "<NONE>", "a<none>b.{file:ext}"} {
		got, err := FileNameFromKeywords(d, pattern, "")
		require.NoError(t, err)
		assert.Equal(t, "", got, "pattern %q", pattern)
	}
}

func TestFileNameFromKeywordsNilDescriptor(t *testing.T) {
	_, err := FileNameFromKeywords(nil, "{file:baseName}", "")
	assert.ErrorIs(t, err, ErrNilDescriptor)
}

func TestFileNameFromKeywordsExtensionlessFile(t *testing.T) {
	d := &fakeFile{name: "README", path: "/docs", modTime: time.Now()}

	// the pattern's separating dot goes with the missing extension
	got, err := FileNameFromKeywords(d, "{file:baseName}.{file:ext}", "")
	require.NoError(t, err)
	assert.Equal(t, "README", got)
}

func TestFileNameFromKeywordsDirectory(t *testing.T) {
	d := &fakeFile{name: "holiday", path: "/photos", dir: true, modTime: time.Now()}

	got, err := FileNameFromKeywords(d, "{file:baseName}.{file:ext}", "")
	require.NoError(t, err)
	assert.Equal(t, "holiday", got)

	got, err = FileNameFromKeywords(d, "{image:size:width}_{file:baseName}", "")
	require.NoError(t, err)
	assert.Equal(t, "0_holiday", got)
}

func TestFileNameFromKeywordsHash(t *testing.T) {
	d := &fakeFile{
		name:    "pic.png",
		path:    "/photos",
		modTime: time.Now(),
		hashes:  map[HashAlg]string{HashSHA1: strings.Repeat("b", 40)},
	}

	got, err := FileNameFromKeywords(d, "x_{file:hash:sha1}.{file:ext}", "")
	require.NoError(t, err)
	assert.Equal(t, "x_"+strings.Repeat("b", 40)+".png", got)
}

func TestFileNameFromKeywordsCounter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "pic_0001.png", "pic_0002.png", "pic_0003.png")

	d := &fakeFile{name: "pic.png", path: dir, modTime: time.Now()}
	got, err := FileNameFromKeywords(d, "{file:baseName}_{counter:####}.{file:ext}", "")
	require.NoError(t, err)
	assert.Equal(t, "pic_0004.png", got)

	// counters from a varying keyword: earlier files carry different
	// dates, so the scan regex matches them through a wildcard class
	writeFiles(t, dir, "20010101_0007.png")
	got, err = FileNameFromKeywords(d, "{file:date}_{counter:####}.{file:ext}", "")
	require.NoError(t, err)
	assert.Equal(t, d.modTime.Format("20060102")+"_0008.png", got)
}

func TestFileNameFromKeywordsAgreesWithFormulaPath(t *testing.T) {
	d := &fakeFile{
		name:    "pic.png",
		path:    "/photos",
		modTime: time.Date(2024, 3, 7, 14, 5, 9, 0, time.UTC),
	}
	pattern := "{file:baseName}_{file:date}.{file:ext}"

	kw, err := FileNameFromKeywords(d, pattern, "")
	require.NoError(t, err)
	full, err := CalculateFileName(d, pattern, previewOpts())
	require.NoError(t, err)
	assert.Equal(t, full, kw)
}
