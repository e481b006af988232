package parser

import (
	"fmt"
	"strings"

	"github.com/bulicmd/bulirename/lexer"
)

// ParseError describes why a pattern failed to parse: the offending token,
// the grammar rule that was active (empty at top level) and a message
// suitable for direct display
type ParseError struct {
	Token   lexer.Token
	Rule    string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("invalid syntax at %d:%d: %s",
		e.Token.Position.Row, e.Token.Position.Col, e.Message)
}

// unexpectedToken builds the top-level error for a token the grammar left
// unconsumed
func (p *parser) unexpectedToken(tok lexer.Token) ParseError {
	var msg string
	switch tok.Type {
	case lexer.SEPARATOR, lexer.FUNC_CLOSE:
		msg = fmt.Sprintf("language delimiters must be quoted: %q", tok.Text)
	case lexer.NUMBER:
		msg = fmt.Sprintf("number values in a file name must be quoted: %q", tok.Text)
	case lexer.ILLEGAL:
		msg = fmt.Sprintf("unexpected character %q", tok.Text)
	case lexer.EOF:
		msg = "unexpected end of formula"
	default:
		msg = fmt.Sprintf("unexpected %q", tok.Text)
	}
	return ParseError{Token: tok, Message: msg}
}

// recordExpected records an error for a partially matched rule: the failing
// term is described in human language, and when the directly preceding
// optional term matched nothing it is offered as the alternative.
func (p *parser) recordExpected(r *Rule, failedTerm int, emptyOptionals []int) {
	msg := p.describeTerm(r.Terms[failedTerm])

	prev := failedTerm - 1
	for _, idx := range emptyOptionals {
		if idx == prev {
			msg += " or " + p.describeRefs(r.Terms[idx].Refs)
		}
	}

	if strings.HasPrefix(r.Name, "function ") {
		msg = r.Name + ": " + msg
	}

	p.errors = append(p.errors, ParseError{
		Token:   p.current(),
		Rule:    r.Name,
		Message: msg,
	})
}

func (p *parser) describeTerm(term Term) string {
	if term.Kind == TermToken {
		switch term.TokenType {
		case lexer.SEPARATOR:
			return "a function parameter separator ',' is expected"
		case lexer.FUNC_CLOSE:
			return "a function closing ']' is expected"
		default:
			return fmt.Sprintf("a %s token is expected", term.TokenType)
		}
	}
	return p.describeRefs(term.Refs)
}

func (p *parser) describeRefs(refs []RuleID) string {
	if len(refs) == 1 {
		return fmt.Sprintf("one %s is expected", p.g.name(refs[0]))
	}
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = p.g.name(ref)
	}
	return "one of the following values is expected: " + strings.Join(names, ", ")
}
