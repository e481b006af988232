package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// paddedKeyword captures the keyword stem and the '#' run of the padded
// forms {counter:####} and {image:size:width|height:####}
var paddedKeyword = regexp.MustCompile(`^\{(counter|image:size:width|image:size:height):(#+)\}$`)

// pad zero-pads v to at least width digits
func pad(v, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}

// resolveKeyword substitutes one {...} keyword against the descriptor.
// Counter placeholders are returned untouched (unless CheckOnly, which
// substitutes 1) so the counter pass can resolve them against the target
// directory afterwards.
func (e *evalEnv) resolveKeyword(name string) string {
	d := e.d

	switch name {
	case "{file:path}":
		if e.opts.TargetPath != "" {
			return e.opts.TargetPath
		}
		return d.Path()
	case "{file:basename}":
		return baseName(d)
	case "{file:name}":
		return strings.TrimSuffix(d.FullPathName(), d.Extension(true))
	case "{file:ext}":
		// empty for directories; the concatenation step drops the dot
		// written just before it
		return d.Extension(false)
	case "{file:format}":
		return d.Format()

	case "{file:date}":
		return d.ModTime().Format("20060102")
	case "{file:date:yyyy}":
		return d.ModTime().Format("2006")
	case "{file:date:mm}":
		return d.ModTime().Format("01")
	case "{file:date:dd}":
		return d.ModTime().Format("02")
	case "{file:time}":
		return d.ModTime().Format("150405")
	case "{file:time:hh}":
		return d.ModTime().Format("15")
	case "{file:time:mm}":
		return d.ModTime().Format("04")
	case "{file:time:ss}":
		return d.ModTime().Format("05")

	case "{date}":
		return e.now.Format("20060102")
	case "{date:yyyy}":
		return e.now.Format("2006")
	case "{date:mm}":
		return e.now.Format("01")
	case "{date:dd}":
		return e.now.Format("02")
	case "{time}":
		return e.now.Format("150405")
	case "{time:hh}":
		return e.now.Format("15")
	case "{time:mm}":
		return e.now.Format("04")
	case "{time:ss}":
		return e.now.Format("05")

	case "{file:hash:md5}":
		return e.hashOrEmpty(HashMD5)
	case "{file:hash:sha1}":
		return e.hashOrEmpty(HashSHA1)
	case "{file:hash:sha256}":
		return e.hashOrEmpty(HashSHA256)
	case "{file:hash:sha512}":
		return e.hashOrEmpty(HashSHA512)

	case "{image:size}":
		return fmt.Sprintf("%dx%d", d.ImageWidth(), d.ImageHeight())
	case "{image:size:width}":
		return strconv.Itoa(d.ImageWidth())
	case "{image:size:height}":
		return strconv.Itoa(d.ImageHeight())

	case "{counter}":
		if e.opts.CheckOnly {
			return "1"
		}
		return name
	}

	if m := paddedKeyword.FindStringSubmatch(name); m != nil {
		width := len(m[2])
		switch m[1] {
		case "image:size:width":
			return pad(d.ImageWidth(), width)
		case "image:size:height":
			return pad(d.ImageHeight(), width)
		case "counter":
			if e.opts.CheckOnly {
				return pad(1, width)
			}
			return name
		}
	}

	// unknown keywords cannot reach here through the tokenizer; be safe
	return ""
}

// hashOrEmpty degrades hash failures (unreadable file, directory
// descriptor) to an empty substitution instead of failing the formula
func (e *evalEnv) hashOrEmpty(alg HashAlg) string {
	digest, err := e.d.Hash(alg)
	if err != nil {
		return ""
	}
	return digest
}

// baseName is the entry name without its extension; a directory name has
// no extension to strip
func baseName(d Descriptor) string {
	if d.IsDir() {
		return d.Name()
	}
	return strings.TrimSuffix(d.Name(), d.Extension(true))
}
