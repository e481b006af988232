package rename

import (
	"regexp"
	"strings"
	"unicode"
)

// The formula functions never fail: on any invalid input (bad regular
// expression, out-of-range index) they degrade to returning the value
// unchanged or the empty string, so a bad formula still produces a name.

// capitalize upper-cases the first character and lower-cases the rest
func capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// camelize upper-cases every letter that follows a non-letter and
// lower-cases the others ("my file" becomes "My File")
func camelize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
		} else {
			b.WriteRune(r)
			inWord = false
		}
	}
	return b.String()
}

// replaceAll substitutes every literal occurrence of search; an empty
// search term leaves the value unchanged
func replaceAll(value, search, with string) string {
	if search == "" {
		return value
	}
	return strings.ReplaceAll(value, search, with)
}

// compileFormulaRegexp compiles a user pattern case-insensitively; nil
// means the pattern was empty or invalid and the caller must fall back
func compileFormulaRegexp(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil
	}
	return re
}

// regexExtract keeps what pattern matches in value. When the pattern has
// capture groups the non-empty group captures are concatenated, otherwise
// the whole matches are.
func regexExtract(value, pattern string) string {
	re := compileFormulaRegexp(pattern)
	if re == nil {
		return value
	}
	if re.NumSubexp() == 0 {
		return strings.Join(re.FindAllString(value, -1), "")
	}
	var b strings.Builder
	for _, m := range re.FindAllStringSubmatch(value, -1) {
		for _, group := range m[1:] {
			b.WriteString(group)
		}
	}
	return b.String()
}

// backref matches a $<digits> backreference together with any escaping
// '$' characters directly before it
var backref = regexp.MustCompile(`\$+\d+`)

// expandBackrefs braces $1, $2, ... into ${1}, ${2}, ... so that a word
// character after a backreference does not extend the group name ($2_$1
// would otherwise read as the nonexistent group "2_"). $$ stays a literal
// dollar sign.
func expandBackrefs(with string) string {
	return backref.ReplaceAllStringFunc(with, func(m string) string {
		dollars := strings.IndexFunc(m, func(r rune) bool { return r != '$' })
		if dollars%2 == 0 {
			return m
		}
		return m[:dollars-1] + "${" + m[dollars:] + "}"
	})
}

// regexReplace substitutes pattern matches with the replacement, which may
// reference capture groups as $1, $2, ...
func regexReplace(value, pattern, with string) string {
	re := compileFormulaRegexp(pattern)
	if re == nil {
		return value
	}
	return re.ReplaceAllString(value, expandBackrefs(with))
}

// indexOf splits value on sep and returns the element at 1-based index;
// negative indexes count from the end, out-of-range yields ""
func indexOf(value, sep string, index int) string {
	if index == 0 || sep == "" {
		return value
	}
	if index > 0 {
		index--
	}
	parts := strings.Split(value, sep)
	if index < 0 {
		index += len(parts)
	}
	if index < 0 || index >= len(parts) {
		return ""
	}
	return parts[index]
}

// substr slices value from 1-based start; negative starts count from the
// end. length limits the slice (nil slices to the end). Out-of-range
// bounds clamp rather than fail.
func substr(value string, start int, length *int) string {
	if start == 0 {
		return value
	}
	if start > 0 {
		start--
	}
	var end *int
	if length != nil {
		e := start + *length
		end = &e
	}
	return sliceRunes(value, start, end)
}

// runeLen counts characters, shifted by offset
func runeLen(value string, offset int) int {
	return len([]rune(value)) + offset
}

// sliceRunes indexes by character with clamping semantics: negative bounds
// are relative to the end, and an empty slice is returned when the bounds
// cross
func sliceRunes(s string, from int, to *int) string {
	r := []rune(s)
	n := len(r)

	if from < 0 {
		from += n
	}
	if from < 0 {
		from = 0
	}
	if from > n {
		from = n
	}

	end := n
	if to != nil {
		end = *to
		if end < 0 {
			end += n
		}
		if end < 0 {
			end = 0
		}
		if end > n {
			end = n
		}
	}

	if from >= end {
		return ""
	}
	return string(r[from:end])
}
