package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tokenizer splits a pattern string into tokens according to the formula
// rule table. The rule table is compiled once and never mutated afterwards,
// so a single Tokenizer is safe for concurrent use.
type Tokenizer struct {
	rules []*Rule
}

// New builds a tokenizer for the rename-formula language
func New() *Tokenizer {
	rules := formulaRules()
	for _, r := range rules {
		r.compile()
	}
	return &Tokenizer{rules: rules}
}

// Rules returns the rule table in match-priority order
func (t *Tokenizer) Rules() []*Rule {
	return t.rules
}

// Tokenize splits input into tokens. The stream always ends with an EOF
// token; characters no rule can match are emitted as ILLEGAL tokens and
// left for the parser to reject.
//
// Tokenization is two-phase. A lexeme is first extracted by the earliest
// rule matching at the scan position, then its type is settled by re-running
// the rules against the isolated lexeme. The phases disagree on purpose:
// the anchored NUMBER pattern rarely matches inside a larger input, so bare
// numbers are extracted as TEXT and only become NUMBER tokens when the
// whole lexeme is a number ("4" in an argument position), while mixed runs
// like "abc-123" stay TEXT.
func (t *Tokenizer) Tokenize(input string) []Token {
	var tokens []Token

	pos := 0
	row, col := 0, 0
	for pos < len(input) {
		lexeme, ok := t.extract(input[pos:])
		if !ok {
			_, size := utf8.DecodeRuneInString(input[pos:])
			ch := input[pos : pos+size]
			tokens = append(tokens, Token{
				Type:     ILLEGAL,
				Text:     ch,
				Value:    ch,
				Position: Position{Row: row, Col: col, Offset: pos},
			})
			pos += size
			col++
			continue
		}

		rule := t.identify(lexeme)
		tok := Token{
			Type:     rule.Type,
			Text:     lexeme,
			Value:    lexeme,
			Position: Position{Row: row, Col: col, Offset: pos},
		}
		if rule.Normalize != nil {
			tok.Value = rule.Normalize(lexeme)
		}
		if rule.Type == NUMBER {
			if n, err := strconv.Atoi(tok.Value); err == nil {
				tok.Num = n
			}
		}
		tokens = append(tokens, tok)

		pos += len(lexeme)
		if nl := strings.Count(lexeme, "\n"); nl > 0 {
			row += nl
			col = len(lexeme) - strings.LastIndexByte(lexeme, '\n') - 1
		} else {
			col += utf8.RuneCountInString(lexeme)
		}
	}

	tokens = append(tokens, Token{
		Type:     EOF,
		Position: Position{Row: row, Col: col, Offset: pos},
	})
	return tokens
}

// extract returns the lexeme matched at the start of rest by the earliest
// matching rule
func (t *Tokenizer) extract(rest string) (string, bool) {
	for _, r := range t.rules {
		if loc := r.re.FindStringIndex(rest); loc != nil && loc[1] > 0 {
			return rest[:loc[1]], true
		}
	}
	return "", false
}

// identify settles the type of an isolated lexeme: the first rule whose
// pattern matches at the start of the lexeme wins
func (t *Tokenizer) identify(lexeme string) *Rule {
	for _, r := range t.rules {
		if r.re.MatchString(lexeme) {
			return r
		}
	}
	// unreachable: extract already matched a rule, and every extracted
	// lexeme at least prefix-matches its extraction rule
	return t.rules[len(t.rules)-1]
}
