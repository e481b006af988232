package parser

import (
	"sync"

	"github.com/bulicmd/bulirename/lexer"
)

// The tokenizer and grammar tables are the expensive part; they are built
// once and immutable afterwards. Each Parse call gets its own parser state
// and returns errors by value, so concurrent calls are safe.
var setup = sync.OnceValues(func() (*lexer.Tokenizer, *Grammar) {
	return lexer.New(), newFormulaGrammar()
})

// Tokenizer returns the shared formula tokenizer (the CLI reference command
// reads the rule completion entries from it)
func Tokenizer() *lexer.Tokenizer {
	t, _ := setup()
	return t
}

// Parse tokenizes and parses a pattern string. On success the returned
// error slice is nil and tree.Matched() is true; on failure the slice holds
// at least one error and the first entry is the most specific one.
func Parse(pattern string) (*Tree, []ParseError) {
	tokenizer, grammar := setup()

	all := tokenizer.Tokenize(pattern)
	tokens := make([]lexer.Token, 0, len(all))
	for _, t := range all {
		if t.Type != lexer.SPACE {
			tokens = append(tokens, t)
		}
	}

	p := &parser{g: grammar, tokens: tokens}
	root := p.matchRule(grammar.root)
	tree := &Tree{Root: root, Tokens: tokens}

	if root.Status == Match && p.current().Type == lexer.EOF {
		return tree, nil
	}

	root.Status = NoMatch
	if len(p.errors) == 0 {
		p.errors = append(p.errors, p.unexpectedToken(p.current()))
	}
	return tree, p.errors
}

// parser is per-call match state over a SPACE-filtered token stream
type parser struct {
	g      *Grammar
	tokens []lexer.Token
	pos    int
	errors []ParseError
}

func (p *parser) current() lexer.Token {
	return p.tokens[p.pos]
}

// matchRule attempts rule id at the current position. On NoMatch and
// Partial the position is restored; Partial additionally records an error
// describing the term that failed.
func (p *parser) matchRule(id RuleID) *Node {
	r := p.g.rule(id)
	start := p.pos
	node := &Node{Rule: id, Name: r.Name, From: p.current().Position}

	// emptyOptionals tracks optional terms that matched nothing, for the
	// "... or one integer value is expected" error wording
	var emptyOptionals []int

	for i, term := range r.Terms {
		matched, empty := p.matchTerm(term, node)
		if empty {
			emptyOptionals = append(emptyOptionals, i)
		}
		if !matched {
			if r.Flags&FlagPartialMatch != 0 && i > 0 {
				node.Status = Partial
				p.recordExpected(r, i, emptyOptionals)
			} else {
				node.Status = NoMatch
			}
			p.pos = start
			return node
		}
	}

	node.Status = Match
	if p.pos > start {
		node.To = p.tokens[p.pos-1].Position
	} else {
		node.To = node.From
	}
	return node
}

// matchTerm returns whether the term matched and, for optional terms,
// whether it matched zero occurrences
func (p *parser) matchTerm(term Term, node *Node) (matched, empty bool) {
	switch term.Kind {
	case TermToken:
		cur := p.current()
		if cur.Type != term.TokenType {
			return false, false
		}
		if term.TokenText != "" && cur.Value != term.TokenText {
			return false, false
		}
		if term.Keep {
			t := cur
			node.Children = append(node.Children, Child{Token: &t})
		}
		p.pos++
		return true, false

	case TermOne:
		return p.matchGroup(term.Refs, node), false

	case TermOptional:
		return true, !p.matchGroup(term.Refs, node)

	case TermZeroOrMore:
		n := 0
		for {
			before := p.pos
			if !p.matchGroup(term.Refs, node) || p.pos == before {
				break
			}
			n++
		}
		return true, n == 0

	case TermOneOrMore:
		if !p.matchGroup(term.Refs, node) {
			return false, false
		}
		for {
			before := p.pos
			if !p.matchGroup(term.Refs, node) || p.pos == before {
				break
			}
		}
		return true, false
	}
	return false, false
}

// matchGroup tries each alternative in order; the first full match wins
func (p *parser) matchGroup(refs []RuleID, node *Node) bool {
	for _, ref := range refs {
		child := p.matchRule(ref)
		if child.Status == Match {
			p.adopt(node, child)
			return true
		}
	}
	return false
}

// adopt attaches a matched child: rules flagged FlagAST become nodes of
// their own, others are transparent and their children are spliced in
func (p *parser) adopt(node *Node, child *Node) {
	if p.g.rule(child.Rule).Flags&FlagAST != 0 {
		node.Children = append(node.Children, Child{Node: child})
		return
	}
	node.Children = append(node.Children, child.Children...)
}
