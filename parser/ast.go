package parser

import (
	"fmt"

	"github.com/bulicmd/bulirename/lexer"
)

// ASTNode is one variant of the typed formula AST. The set of variants is
// closed: Formula, Keyword, Text, StringExpr, IntValue, Upper, Lower,
// Capitalize, Camelize, Replace, RegExp, IndexOf, Substr and Length.
// Evaluators dispatch with a type switch over exactly that set.
type ASTNode interface {
	astNode()
}

// Formula is the root: its parts concatenate, in order, into the final name
type Formula struct {
	Parts []ASTNode
}

// Keyword is a {...} metadata placeholder; Name is the normalized
// (lowercased) form including braces
type Keyword struct {
	Name  string
	Token lexer.Token
}

// Text is a run of literal output text (quoted and unquoted pieces joined)
type Text struct {
	Value string
}

// StringExpr is a concatenation of text, keywords and string functions
type StringExpr struct {
	Parts []ASTNode
}

// IntValue is an integer literal argument
type IntValue struct {
	Value int
}

// Upper, Lower, Capitalize and Camelize apply a case transform to their
// evaluated argument
type (
	Upper      struct{ Arg ASTNode }
	Lower      struct{ Arg ASTNode }
	Capitalize struct{ Arg ASTNode }
	Camelize   struct{ Arg ASTNode }
)

// Replace substitutes every literal occurrence of Search in Value with With
type Replace struct {
	Value  ASTNode
	Search ASTNode
	With   ASTNode
}

// RegExp extracts (With == nil) or substitutes (With != nil) regular
// expression matches, case-insensitively
type RegExp struct {
	Value   ASTNode
	Pattern ASTNode
	With    ASTNode
}

// IndexOf splits Value on Separator and keeps the 1-based Index element
type IndexOf struct {
	Value     ASTNode
	Separator ASTNode
	Index     ASTNode
}

// Substr slices Value from 1-based Start, optionally limited to Length
// characters (Length == nil slices to the end)
type Substr struct {
	Value  ASTNode
	Start  ASTNode
	Length ASTNode
}

// Length counts the characters of Value, shifted by Offset when present
type Length struct {
	Value  ASTNode
	Offset ASTNode
}

func (*Formula) astNode()    {}
func (*Keyword) astNode()    {}
func (*Text) astNode()       {}
func (*StringExpr) astNode() {}
func (*IntValue) astNode()   {}
func (*Upper) astNode()      {}
func (*Lower) astNode()      {}
func (*Capitalize) astNode() {}
func (*Camelize) astNode()   {}
func (*Replace) astNode()    {}
func (*RegExp) astNode()     {}
func (*IndexOf) astNode()    {}
func (*Substr) astNode()     {}
func (*Length) astNode()     {}

// Formula lowers a matched tree into the typed AST. It returns nil for an
// empty pattern. Calling it on an unmatched tree is a programming error.
func (t *Tree) Formula() (*Formula, error) {
	if t.Root == nil || t.Root.Status != Match {
		return nil, fmt.Errorf("cannot build AST from a %s tree", t.Root.Status)
	}
	if len(t.Root.Children) == 0 {
		return nil, nil
	}
	node, err := lower(t.Root.Children[0])
	if err != nil {
		return nil, err
	}
	f, ok := node.(*Formula)
	if !ok {
		return nil, fmt.Errorf("unexpected root node %T", node)
	}
	return f, nil
}

func lower(c Child) (ASTNode, error) {
	if c.Node == nil {
		return nil, fmt.Errorf("unexpected bare token %q in match tree", c.Token.Text)
	}
	n := c.Node

	switch n.Rule {
	case ruleFormula:
		parts, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		return &Formula{Parts: parts}, nil

	case ruleKeyword:
		tok := n.Children[0].Token
		return &Keyword{Name: tok.Value, Token: *tok}, nil

	case ruleText:
		// children are quoted-string / unquoted-text nodes, one token each
		var value string
		for _, part := range n.Children {
			value += part.Node.Children[0].Token.Value
		}
		return &Text{Value: value}, nil

	case ruleStringValue, ruleUnquotedText:
		return &Text{Value: n.Children[0].Token.Value}, nil

	case ruleStringExpression:
		parts, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		return &StringExpr{Parts: parts}, nil

	case ruleIntegerExpression, ruleOptionalStrParam, ruleOptionalIntParam:
		return lower(n.Children[0])

	case ruleIntegerValue:
		return &IntValue{Value: n.Children[0].Token.Num}, nil

	case ruleFunctionUpper, ruleFunctionLower, ruleFunctionCapitalize, ruleFunctionCamelize:
		arg, err := lower(n.Children[0])
		if err != nil {
			return nil, err
		}
		switch n.Rule {
		case ruleFunctionUpper:
			return &Upper{Arg: arg}, nil
		case ruleFunctionLower:
			return &Lower{Arg: arg}, nil
		case ruleFunctionCapitalize:
			return &Capitalize{Arg: arg}, nil
		default:
			return &Camelize{Arg: arg}, nil
		}

	case ruleFunctionReplace:
		args, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		return &Replace{Value: args[0], Search: args[1], With: args[2]}, nil

	case ruleFunctionRegExp:
		args, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		re := &RegExp{Value: args[0], Pattern: args[1]}
		if len(args) > 2 {
			re.With = args[2]
		}
		return re, nil

	case ruleFunctionIndex:
		args, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		return &IndexOf{Value: args[0], Separator: args[1], Index: args[2]}, nil

	case ruleFunctionSub:
		args, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		sub := &Substr{Value: args[0], Start: args[1]}
		if len(args) > 2 {
			sub.Length = args[2]
		}
		return sub, nil

	case ruleFunctionLen:
		args, err := lowerAll(n.Children)
		if err != nil {
			return nil, err
		}
		l := &Length{Value: args[0]}
		if len(args) > 1 {
			l.Offset = args[1]
		}
		return l, nil
	}

	return nil, fmt.Errorf("unexpected %s node in match tree", n.Name)
}

func lowerAll(children []Child) ([]ASTNode, error) {
	nodes := make([]ASTNode, len(children))
	for i, c := range children {
		n, err := lower(c)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}
