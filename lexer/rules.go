package lexer

import (
	"regexp"
	"strings"
)

// Completion is an auto-completion entry carried by a rule: an insertable
// template plus a short description. Surfaced by the CLI reference command.
type Completion struct {
	Template    string
	Description string
}

// Rule defines one tokenizer rule: a token type, a regular expression and
// an optional value normalization. Rules are tried in declaration order and
// the first match wins; declaration order is the tie-break between
// overlapping patterns (FUNC_STR must come before the generic TEXT).
type Rule struct {
	Type        TokenType
	Pattern     string
	Completions []Completion
	Normalize   func(raw string) string

	// compiled form, anchored at the start of the remaining input; shared
	// between lexeme extraction and lexeme re-identification
	re *regexp.Regexp
}

func (r *Rule) compile() {
	r.re = regexp.MustCompile(`(?i)\A(?:` + r.Pattern + `)`)
}

// unquote strips the string delimiters (first and last character)
func unquote(raw string) string {
	if len(raw) > 1 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// stringPattern matches backtick, single or double quoted literals with
// backslash escaping
const stringPattern = "`[^`\\\\]*(?:\\\\.[^`\\\\]*)*`" +
	`|'[^'\\]*(?:\\.[^'\\]*)*'` +
	`|"[^"\\]*(?:\\.[^"\\]*)*"`

// keywordPattern is the closed {...} keyword catalog
const keywordPattern = `\{(?:counter(?::#+)?` +
	`|image:size(?::(?:width|height)(?::#+)?)?` +
	`|time(?::(?:hh|mm|ss))?` +
	`|date(?::(?:yyyy|mm|dd))?` +
	`|file:date(?::(?:yyyy|mm|dd))?` +
	`|file:time(?::(?:hh|mm|ss))?` +
	`|file:ext|file:baseName|file:name|file:path|file:format` +
	`|file:hash:(?:md5|sha1|sha256|sha512))\}`

// numberPattern is anchored on both alternatives. Against a full pattern
// string this almost never matches mid-input; bare numbers are extracted as
// TEXT and only re-identified as NUMBER when the isolated lexeme is nothing
// but a number. Existing user formulas rely on this, do not "fix" it.
const numberPattern = `-\d+$|^\d+$`

// textPattern is the fallback: either a run starting with a delimiter
// character up to the next delimiter, or a run of non-delimiter characters
const textPattern = `[{\[,][^{\[\]}"'\\/\s,]*|[^{\[\]}"'\\/\s,]+`

// formulaRules returns the rule table for the rename-formula language, in
// match-priority order.
func formulaRules() []*Rule {
	return []*Rule{
		{
			Type:      STRING,
			Pattern:   stringPattern,
			Normalize: unquote,
		},
		{
			Type:      FUNC_STR,
			Pattern:   `\[(?:upper|lower|capitalize|replace|sub|regex|index|camelize):`,
			Normalize: strings.ToLower,
			Completions: []Completion{
				{`[upper:<value>]`, "Convert <value> to uppercase"},
				{`[lower:<value>]`, "Convert <value> to lowercase"},
				{`[capitalize:<value>]`, "Uppercase the first character of <value>, lowercase the rest"},
				{`[camelize:<value>]`, "Uppercase the first letter after each non-letter in <value>"},
				{`[replace:<value>, "<search>", "<replace>"]`, "Replace every literal <search> in <value> with <replace>"},
				{`[regex:<value>, "<pattern>"]`, "Concatenate the parts of <value> matching <pattern>"},
				{`[regex:<value>, "<pattern>", "<replace>"]`, "Replace matches of <pattern> in <value> ($1, $2... for captured groups)"},
				{`[index:<value>, "<separator>", <index>]`, "Split <value> on <separator> and keep element <index> (first is 1)"},
				{`[sub:<value>, <start>]`, "Substring of <value> from <start> (first is 1, negative counts from the end)"},
				{`[sub:<value>, <start>, <length>]`, "Substring of <value> from <start>, <length> characters"},
			},
		},
		{
			Type:      FUNC_INT,
			Pattern:   `\[(?:len):`,
			Normalize: strings.ToLower,
			Completions: []Completion{
				{`[len:<value>]`, "Number of characters in <value>"},
				{`[len:<value>, <adjustment>]`, "Number of characters in <value>, shifted by <adjustment>"},
			},
		},
		{
			Type:      KEYWORD,
			Pattern:   keywordPattern,
			Normalize: strings.ToLower,
			Completions: []Completion{
				{`{file:baseName}`, "File name without path and extension"},
				{`{file:name}`, "File path and name without extension"},
				{`{file:ext}`, "File extension, without the dot"},
				{`{file:path}`, "File path"},
				{`{file:format}`, "File format (can differ from the extension)"},
				{`{file:date}`, "File modification date, YYYYMMDD"},
				{`{file:date:yyyy}`, "File modification year"},
				{`{file:date:mm}`, "File modification month"},
				{`{file:date:dd}`, "File modification day"},
				{`{file:time}`, "File modification time, HHMMSS"},
				{`{file:time:hh}`, "File modification hour"},
				{`{file:time:mm}`, "File modification minutes"},
				{`{file:time:ss}`, "File modification seconds"},
				{`{file:hash:md5}`, "MD5 file hash (32 characters)"},
				{`{file:hash:sha1}`, "SHA-1 file hash (40 characters)"},
				{`{file:hash:sha256}`, "SHA-256 file hash (64 characters)"},
				{`{file:hash:sha512}`, "SHA-512 file hash (128 characters)"},
				{`{image:size}`, "Image size, WxH"},
				{`{image:size:width}`, "Image width"},
				{`{image:size:width:####}`, "Image width, zero-padded to the number of #"},
				{`{image:size:height}`, "Image height"},
				{`{image:size:height:####}`, "Image height, zero-padded to the number of #"},
				{`{date}`, "Current system date, YYYYMMDD"},
				{`{date:yyyy}`, "Current system year"},
				{`{date:mm}`, "Current system month"},
				{`{date:dd}`, "Current system day"},
				{`{time}`, "Current system time, HHMMSS"},
				{`{time:hh}`, "Current system hour"},
				{`{time:mm}`, "Current system minutes"},
				{`{time:ss}`, "Current system seconds"},
				{`{counter}`, "Counter, starts at 1 and skips names already in the target directory"},
				{`{counter:####}`, "Counter, zero-padded to the number of #"},
			},
		},
		{
			Type:    NUMBER,
			Pattern: numberPattern,
		},
		{
			Type:    SEPARATOR,
			Pattern: `,`,
		},
		{
			Type:    FUNC_CLOSE,
			Pattern: `\]`,
		},
		{
			Type:    SPACE,
			Pattern: `\s+`,
		},
		{
			Type:    TEXT,
			Pattern: textPattern,
		},
	}
}
