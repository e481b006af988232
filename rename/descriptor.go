package rename

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	// image formats probed for the {image:size} keywords
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// HashAlg selects the digest used by the {file:hash:...} keywords
type HashAlg string

const (
	HashMD5    HashAlg = "md5"
	HashSHA1   HashAlg = "sha1"
	HashSHA256 HashAlg = "sha256"
	HashSHA512 HashAlg = "sha512"
)

func (a HashAlg) new() hash.Hash {
	switch a {
	case HashMD5:
		return md5.New()
	case HashSHA1:
		return sha1.New()
	case HashSHA256:
		return sha256.New()
	case HashSHA512:
		return sha512.New()
	default:
		return nil
	}
}

// Descriptor exposes the metadata the evaluator reads from a file or
// directory. The evaluator never writes through it; implementations may
// cache lazily computed values (hashes, image dimensions) internally.
type Descriptor interface {
	// Name returns the entry name, with extension, without path
	Name() string
	// Path returns the directory holding the entry
	Path() string
	// FullPathName returns path and name joined
	FullPathName() string
	// Extension returns the file extension, with or without the leading
	// dot; empty for directories
	Extension(withDot bool) string
	// Format identifies the content format, which can differ from the
	// extension (a PNG saved with a .jpg name)
	Format() string
	ModTime() time.Time
	Size() int64
	// ImageWidth and ImageHeight are 0 when the entry is not a readable
	// image
	ImageWidth() int
	ImageHeight() int
	// Hash returns the hex digest of the file content
	Hash(alg HashAlg) (string, error)
	IsDir() bool
}

// Stat builds a Descriptor for an existing file or directory
func Stat(path string) (Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("rename: %w", err)
	}
	dir, name := filepath.Split(filepath.Clean(path))
	dir = filepath.Clean(dir)
	if info.IsDir() {
		return &Dir{path: dir, name: name, modTime: info.ModTime()}, nil
	}
	return &FileInfo{
		path:    dir,
		name:    name,
		modTime: info.ModTime(),
		size:    info.Size(),
	}, nil
}

// FileInfo is the file-backed Descriptor. Hashes and image dimensions are
// computed on first use and cached.
type FileInfo struct {
	path    string
	name    string
	modTime time.Time
	size    int64

	probed        bool
	format        string
	width, height int

	hashes map[HashAlg]string
}

func (f *FileInfo) Name() string         { return f.name }
func (f *FileInfo) Path() string         { return f.path }
func (f *FileInfo) FullPathName() string { return filepath.Join(f.path, f.name) }
func (f *FileInfo) ModTime() time.Time   { return f.modTime }
func (f *FileInfo) Size() int64          { return f.size }
func (f *FileInfo) IsDir() bool          { return false }

func (f *FileInfo) Extension(withDot bool) string {
	ext := filepath.Ext(f.name)
	if !withDot {
		ext = strings.TrimPrefix(ext, ".")
	}
	return ext
}

func (f *FileInfo) Format() string {
	f.probe()
	if f.format != "" {
		return f.format
	}
	return strings.ToLower(f.Extension(false))
}

func (f *FileInfo) ImageWidth() int {
	f.probe()
	return f.width
}

func (f *FileInfo) ImageHeight() int {
	f.probe()
	return f.height
}

// probe reads the image header once to learn format and dimensions
func (f *FileInfo) probe() {
	if f.probed {
		return
	}
	f.probed = true

	r, err := os.Open(f.FullPathName())
	if err != nil {
		return
	}
	defer r.Close()

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return
	}
	f.format = format
	f.width = cfg.Width
	f.height = cfg.Height
}

func (f *FileInfo) Hash(alg HashAlg) (string, error) {
	if cached, ok := f.hashes[alg]; ok {
		return cached, nil
	}

	h := alg.new()
	if h == nil {
		return "", fmt.Errorf("rename: unknown hash algorithm %q", alg)
	}

	r, err := os.Open(f.FullPathName())
	if err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	defer r.Close()

	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("rename: hashing %s: %w", f.name, err)
	}

	digest := hex.EncodeToString(h.Sum(nil))
	if f.hashes == nil {
		f.hashes = map[HashAlg]string{}
	}
	f.hashes[alg] = digest
	return digest, nil
}

// Dir is the directory-backed Descriptor. Directories expose a reduced
// keyword set: no extension, no image size, no content hash.
type Dir struct {
	path    string
	name    string
	modTime time.Time
}

func (d *Dir) Name() string                  { return d.name }
func (d *Dir) Path() string                  { return d.path }
func (d *Dir) FullPathName() string          { return filepath.Join(d.path, d.name) }
func (d *Dir) Extension(withDot bool) string { return "" }
func (d *Dir) Format() string                { return "directory" }
func (d *Dir) ModTime() time.Time            { return d.modTime }
func (d *Dir) Size() int64                   { return 0 }
func (d *Dir) ImageWidth() int               { return 0 }
func (d *Dir) ImageHeight() int              { return 0 }
func (d *Dir) IsDir() bool                   { return true }

func (d *Dir) Hash(alg HashAlg) (string, error) {
	return "", fmt.Errorf("rename: cannot hash directory %s", d.name)
}
