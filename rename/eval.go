// Package rename evaluates rename formulas against file metadata. A
// formula mixes literal text, {...} metadata keywords and [func:...]
// transformations; evaluation produces the target file name, resolving
// auto-incrementing counters against the contents of the target
// directory.
package rename

import (
	"errors"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/bulicmd/bulirename/parser"
)

// ErrNilDescriptor is returned when evaluation is attempted without a
// file or directory to evaluate against
var ErrNilDescriptor = errors.New("rename: nil descriptor")

// Platform selects the invalid-character table applied to results
type Platform int

const (
	// PlatformAuto picks the table for the running OS
	PlatformAuto Platform = iota
	PlatformPOSIX
	PlatformWindows
)

// Options tunes one evaluation
type Options struct {
	// KeepInvalidChars disables stripping of characters the target
	// platform forbids in file names
	KeepInvalidChars bool
	// TargetPath overrides the descriptor's own directory as the
	// destination (and counter-scan) directory
	TargetPath string
	// CheckOnly substitutes 1 for every counter without touching the
	// filesystem; used for live previews
	CheckOnly bool
	// Platform overrides the invalid-character table, mainly for tests
	Platform Platform
	// Now overrides the clock behind {date} and {time}, mainly for tests
	Now time.Time
}

func (o Options) targetDir(d Descriptor) string {
	if o.TargetPath != "" {
		return o.TargetPath
	}
	return d.Path()
}

// CalculateFileName evaluates a formula pattern against a descriptor and
// returns the resulting file name. Exactly one of the results is set: a
// syntactically invalid pattern, a failed directory scan or a nil
// descriptor yield an error and an empty name.
func CalculateFileName(d Descriptor, pattern string, opts Options) (string, error) {
	if d == nil {
		return "", ErrNilDescriptor
	}

	tree, errs := parser.Parse(pattern)
	if len(errs) > 0 {
		return "", errs[0]
	}
	formula, err := tree.Formula()
	if err != nil {
		return "", err
	}
	if formula == nil {
		return "", nil
	}

	e := &evalEnv{d: d, opts: opts, now: opts.Now}
	if e.now.IsZero() {
		e.now = time.Now()
	}

	name := e.concat(formula.Parts)

	// counters resolve before invalid characters are stripped, so the
	// scan regex still sees the placeholders' surrounding text intact
	if !opts.CheckOnly {
		name, err = resolveCounters(d, name, opts.targetDir(d))
		if err != nil {
			return "", err
		}
	}

	if !opts.KeepInvalidChars {
		name = stripInvalidChars(name, opts.Platform)
	}
	return name, nil
}

// evalEnv is the per-call evaluation state
type evalEnv struct {
	d    Descriptor
	opts Options
	now  time.Time
}

// concat joins evaluated parts. {file:ext} on a directory descriptor
// substitutes nothing and additionally swallows the dot written directly
// before it, so "name.{file:ext}" degrades to "name".
func (e *evalEnv) concat(parts []parser.ASTNode) string {
	out := ""
	for _, part := range parts {
		if kw, ok := part.(*parser.Keyword); ok && kw.Name == "{file:ext}" && e.d.IsDir() {
			out = strings.TrimSuffix(out, ".")
			continue
		}
		out += e.eval(part)
	}
	return out
}

func (e *evalEnv) eval(n parser.ASTNode) string {
	switch n := n.(type) {
	case *parser.Formula:
		return e.concat(n.Parts)
	case *parser.StringExpr:
		return e.concat(n.Parts)
	case *parser.Text:
		return n.Value
	case *parser.Keyword:
		return e.resolveKeyword(n.Name)
	case *parser.Upper:
		return strings.ToUpper(e.eval(n.Arg))
	case *parser.Lower:
		return strings.ToLower(e.eval(n.Arg))
	case *parser.Capitalize:
		return capitalize(e.eval(n.Arg))
	case *parser.Camelize:
		return camelize(e.eval(n.Arg))
	case *parser.Replace:
		return replaceAll(e.eval(n.Value), e.eval(n.Search), e.eval(n.With))
	case *parser.RegExp:
		if n.With == nil {
			return regexExtract(e.eval(n.Value), e.eval(n.Pattern))
		}
		return regexReplace(e.eval(n.Value), e.eval(n.Pattern), e.eval(n.With))
	case *parser.IndexOf:
		return indexOf(e.eval(n.Value), e.eval(n.Separator), e.evalInt(n.Index))
	case *parser.Substr:
		var length *int
		if n.Length != nil {
			v := e.evalInt(n.Length)
			length = &v
		}
		return substr(e.eval(n.Value), e.evalInt(n.Start), length)
	case *parser.Length:
		return strconv.Itoa(e.evalInt(n))
	case *parser.IntValue:
		return strconv.Itoa(n.Value)
	}
	return ""
}

func (e *evalEnv) evalInt(n parser.ASTNode) int {
	switch n := n.(type) {
	case *parser.IntValue:
		return n.Value
	case *parser.Length:
		offset := 0
		if n.Offset != nil {
			offset = e.evalInt(n.Offset)
		}
		return runeLen(e.eval(n.Value), offset)
	}
	return 0
}

// stripInvalidChars removes the characters the platform's file systems
// refuse in names
func stripInvalidChars(name string, p Platform) string {
	invalid := "/"
	if p == PlatformWindows || (p == PlatformAuto && runtime.GOOS == "windows") {
		invalid = `*\/<>?:"|`
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalid, r) {
			return -1
		}
		return r
	}, name)
}
