package parser

import (
	"github.com/bulicmd/bulirename/lexer"
)

// Status is the outcome of matching a grammar rule
type Status int

const (
	NoMatch Status = iota
	Match
	// Partial marks a rule that matched its opening term but failed before
	// completing; only rules carrying FlagPartialMatch report it
	Partial
)

func (s Status) String() string {
	switch s {
	case NoMatch:
		return "no match"
	case Match:
		return "match"
	case Partial:
		return "partial match"
	default:
		return "unknown"
	}
}

// Child is one element under a match node: either a nested node or a kept
// token, never both
type Child struct {
	Node  *Node
	Token *lexer.Token
}

// Node is one matched grammar rule in the generic match tree
type Node struct {
	Rule     RuleID
	Name     string
	Status   Status
	Children []Child
	From, To lexer.Position
}

// Tree is the result of parsing one pattern string
type Tree struct {
	Root   *Node
	Tokens []lexer.Token // SPACE-filtered token stream, EOF-terminated
}

// Matched reports whether the whole pattern parsed
func (t *Tree) Matched() bool {
	return t.Root != nil && t.Root.Status == Match
}
