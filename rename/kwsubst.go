package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The keyword-only facade substitutes keywords by direct regular
// expression replacement, without tokenizing or parsing: it serves the
// default-naming and conflict-rename flows where patterns never contain
// function calls.

var (
	// a pattern containing <none> anywhere means "no name"
	noneRe       = regexp.MustCompile(`(?i)<none>`)
	reDotExt     = regexp.MustCompile(`(?i)\.\{file:ext\}`)
	reExt        = regexp.MustCompile(`(?i)\{file:ext\}`)
	reBaseName   = regexp.MustCompile(`(?i)\{file:basename\}`)
	reName       = regexp.MustCompile(`(?i)\{file:name\}`)
	rePath       = regexp.MustCompile(`(?i)\{file:path\}`)
	reFormat     = regexp.MustCompile(`(?i)\{file:format\}`)
	reSize       = regexp.MustCompile(`(?i)\{image:size\}`)
	reWidth      = regexp.MustCompile(`(?i)\{image:size:width\}`)
	reHeight     = regexp.MustCompile(`(?i)\{image:size:height\}`)
	rePaddedSize = regexp.MustCompile(`(?i)\{image:size:(width|height):(#+)\}`)
	reHash       = regexp.MustCompile(`(?i)\{file:hash:(md5|sha1|sha256|sha512)\}`)
	reCounterAny = regexp.MustCompile(`(?i)\{counter(?::(#+))?\}`)
)

// hashClass maps each hash keyword to the wildcard class matching its
// digest in existing file names
var hashClass = map[string]string{
	"md5":    `[a-z0-9]{32}`,
	"sha1":   `[a-z0-9]{40}`,
	"sha256": `[a-z0-9]{64}`,
	"sha512": `[a-z0-9]{128}`,
}

// timeSub pairs a keyword matcher with the time layout it substitutes
// and the wildcard class standing in for it in counter-scan regexes
type timeSub struct {
	re     *regexp.Regexp
	layout string
	class  string
}

func timeSubs(prefix string) []timeSub {
	parts := []struct{ kw, layout, class string }{
		{"date", "20060102", `\d{8}`},
		{"date:yyyy", "2006", `\d{4}`},
		{"date:mm", "01", `\d{2}`},
		{"date:dd", "02", `\d{2}`},
		{"time", "150405", `\d{6}`},
		{"time:hh", "15", `\d{2}`},
		{"time:mm", "04", `\d{2}`},
		{"time:ss", "05", `\d{2}`},
	}
	subs := make([]timeSub, len(parts))
	for i, p := range parts {
		subs[i] = timeSub{
			re:     regexp.MustCompile(`(?i)\{` + prefix + p.kw + `\}`),
			layout: p.layout,
			class:  p.class,
		}
	}
	return subs
}

var (
	fileTimeSubs = timeSubs("file:")
	sysTimeSubs  = timeSubs("")
)

// FileNameFromKeywords substitutes {...} keywords in pattern against the
// descriptor and returns the resulting name. Blank patterns and patterns
// containing "<none>" yield an empty name; a nil descriptor is an error. Counter
// placeholders are resolved by scanning targetPath (the descriptor's own
// directory when empty).
func FileNameFromKeywords(d Descriptor, pattern, targetPath string) (string, error) {
	if strings.TrimSpace(pattern) == "" || noneRe.MatchString(pattern) {
		return "", nil
	}
	if d == nil {
		return "", ErrNilDescriptor
	}
	if targetPath == "" {
		targetPath = d.Path()
	}
	now := time.Now()

	ext := d.Extension(false)
	name := pattern
	if ext == "" {
		// no extension to substitute: the pattern's separating dot goes too
		name = reDotExt.ReplaceAllLiteralString(name, "")
	}
	name = reExt.ReplaceAllLiteralString(name, ext)

	name = reSize.ReplaceAllLiteralString(name, fmt.Sprintf("%dx%d", d.ImageWidth(), d.ImageHeight()))
	name = reWidth.ReplaceAllLiteralString(name, strconv.Itoa(d.ImageWidth()))
	name = reHeight.ReplaceAllLiteralString(name, strconv.Itoa(d.ImageHeight()))
	name = rePaddedSize.ReplaceAllStringFunc(name, func(s string) string {
		m := rePaddedSize.FindStringSubmatch(s)
		v := d.ImageWidth()
		if strings.EqualFold(m[1], "height") {
			v = d.ImageHeight()
		}
		return pad(v, len(m[2]))
	})

	name = reBaseName.ReplaceAllLiteralString(name, baseName(d))
	name = reName.ReplaceAllLiteralString(name, strings.TrimSuffix(d.FullPathName(), d.Extension(true)))
	name = rePath.ReplaceAllLiteralString(name, targetPath)
	name = reFormat.ReplaceAllLiteralString(name, d.Format())

	name = reHash.ReplaceAllStringFunc(name, func(s string) string {
		m := reHash.FindStringSubmatch(s)
		digest, err := d.Hash(HashAlg(strings.ToLower(m[1])))
		if err != nil {
			return ""
		}
		return digest
	})

	for _, sub := range fileTimeSubs {
		name = sub.re.ReplaceAllLiteralString(name, d.ModTime().Format(sub.layout))
	}
	for _, sub := range sysTimeSubs {
		name = sub.re.ReplaceAllLiteralString(name, now.Format(sub.layout))
	}

	if reCounterAny.MatchString(name) {
		return resolveCountersFromPattern(d, name, pattern, targetPath)
	}
	return name, nil
}

// resolveCountersFromPattern resolves counters for the keyword-only
// facade. Unlike the formula path, the scan regex is derived from the
// pre-substitution pattern: keywords whose value varies per file (dates,
// hashes, image sizes) become wildcard classes, so names produced earlier
// for other files still match.
func resolveCountersFromPattern(d Descriptor, name, pattern, targetPath string) (string, error) {
	ext := d.Extension(false)
	rx := pattern
	if ext == "" {
		rx = reDotExt.ReplaceAllLiteralString(rx, "")
	}
	rx = reExt.ReplaceAllLiteralString(rx, regexp.QuoteMeta(ext))
	rx = reBaseName.ReplaceAllLiteralString(rx, baseName(d))
	rx = reName.ReplaceAllLiteralString(rx, strings.TrimSuffix(d.FullPathName(), d.Extension(true)))
	rx = rePath.ReplaceAllLiteralString(rx, targetPath)
	rx = reFormat.ReplaceAllLiteralString(rx, regexp.QuoteMeta(d.Format()))

	rx = reSize.ReplaceAllLiteralString(rx, `\d+x\d+`)
	rx = reWidth.ReplaceAllLiteralString(rx, `\d+`)
	rx = reHeight.ReplaceAllLiteralString(rx, `\d+`)
	rx = rePaddedSize.ReplaceAllStringFunc(rx, func(s string) string {
		m := rePaddedSize.FindStringSubmatch(s)
		return fmt.Sprintf(`\d{%d,}`, len(m[2]))
	})
	rx = reHash.ReplaceAllStringFunc(rx, func(s string) string {
		m := reHash.FindStringSubmatch(s)
		return hashClass[strings.ToLower(m[1])]
	})
	for _, sub := range fileTimeSubs {
		rx = sub.re.ReplaceAllLiteralString(rx, sub.class)
	}
	for _, sub := range sysTimeSubs {
		rx = sub.re.ReplaceAllLiteralString(rx, sub.class)
	}
	rx = reCounterAny.ReplaceAllStringFunc(rx, func(s string) string {
		m := reCounterAny.FindStringSubmatch(s)
		if m[1] == "" {
			return `(\d+)`
		}
		return fmt.Sprintf(`(\d{%d,})`, len(m[1]))
	})
	// literal dots from the pattern and the substituted values; the
	// wildcard classes inserted above contain none
	rx = strings.ReplaceAll(rx, ".", `\.`)

	re, err := regexp.Compile("^" + rx + "$")
	if err != nil {
		// substituted values made an unusable regex; leave counters as-is
		return name, nil
	}

	next, err := nextCounterValue(d, re, targetPath)
	if err != nil {
		return "", err
	}
	return reCounterAny.ReplaceAllStringFunc(name, func(s string) string {
		m := reCounterAny.FindStringSubmatch(s)
		if m[1] == "" {
			return strconv.Itoa(next)
		}
		return pad(next, len(m[1]))
	}), nil
}
