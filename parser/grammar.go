package parser

import (
	"github.com/bulicmd/bulirename/lexer"
)

// RuleID indexes a grammar rule inside the Grammar arena
type RuleID int

// Rule identifiers, in arena order. newFormulaGrammar fills the arena in
// exactly this order so the constants double as resolved handles.
const (
	ruleFormulaScript RuleID = iota
	ruleFormula
	ruleFunctionStr
	ruleFunctionInt
	ruleFunctionUpper
	ruleFunctionLower
	ruleFunctionCapitalize
	ruleFunctionCamelize
	ruleFunctionReplace
	ruleFunctionRegExp
	ruleFunctionIndex
	ruleFunctionSub
	ruleFunctionLen
	ruleKeyword
	ruleText
	ruleOptionalStrParam
	ruleOptionalIntParam
	ruleStringExpression
	ruleIntegerExpression
	ruleStringValue
	ruleIntegerValue
	ruleUnquotedText
	ruleCount
)

// RuleFlags carries per-rule behavior switches
type RuleFlags uint8

const (
	// FlagAST marks rules that produce a node of their own in the match
	// tree; children of flagless rules are spliced into their parent
	FlagAST RuleFlags = 1 << iota
	// FlagPartialMatch records an error when the rule matched its first
	// term but failed later, so a half-written function call reports what
	// was expected instead of a generic failure
	FlagPartialMatch
)

// TermKind discriminates the kinds of terms a rule sequence is made of
type TermKind int

const (
	TermToken      TermKind = iota // a single token, optionally with a required value
	TermOne                        // exactly one of the referenced rules
	TermOptional                   // zero or one of the referenced rules
	TermZeroOrMore                 // any number of the referenced rules
	TermOneOrMore                  // at least one of the referenced rules
)

// Term is one element of a rule's sequence. Group terms try their Refs in
// declaration order; the first matching alternative wins.
type Term struct {
	Kind      TermKind
	TokenType lexer.TokenType
	TokenText string // required normalized token value, "" accepts any
	Keep      bool   // keep the matched token in the match tree
	Refs      []RuleID
}

// Rule is one named production: a fixed sequence of terms
type Rule struct {
	Name  string
	Flags RuleFlags
	Terms []Term
}

// Grammar is the immutable rule arena. Built once, never mutated, safe for
// concurrent parsers.
type Grammar struct {
	rules [ruleCount]*Rule
	root  RuleID
}

func (g *Grammar) rule(id RuleID) *Rule { return g.rules[id] }

// name returns the rule name for error reporting
func (g *Grammar) name(id RuleID) string { return g.rules[id].Name }

func tok(t lexer.TokenType) Term {
	return Term{Kind: TermToken, TokenType: t}
}

func tokText(t lexer.TokenType, text string) Term {
	return Term{Kind: TermToken, TokenType: t, TokenText: text}
}

func keepTok(t lexer.TokenType) Term {
	return Term{Kind: TermToken, TokenType: t, Keep: true}
}

func one(refs ...RuleID) Term {
	return Term{Kind: TermOne, Refs: refs}
}

func opt(refs ...RuleID) Term {
	return Term{Kind: TermOptional, Refs: refs}
}

func plus(refs ...RuleID) Term {
	return Term{Kind: TermOneOrMore, Refs: refs}
}

// strFunction builds the common shape of a one-argument string function:
// opener token, one string expression, closing bracket
func strFunction(opener string) *Rule {
	return &Rule{
		Name:  "function " + opener[1:len(opener)-1],
		Flags: FlagAST | FlagPartialMatch,
		Terms: []Term{
			tokText(lexer.FUNC_STR, opener),
			one(ruleStringExpression),
			tok(lexer.FUNC_CLOSE),
		},
	}
}

// newFormulaGrammar builds the whole grammar graph in one place. Rules
// reference each other through the RuleID constants above, so the mutual
// recursion (a string expression may contain a function whose argument is a
// string expression) needs no registration side effects.
func newFormulaGrammar() *Grammar {
	g := &Grammar{root: ruleFormulaScript}

	g.rules[ruleFormulaScript] = &Rule{
		Name:  "formula script",
		Terms: []Term{opt(ruleFormula)},
	}
	g.rules[ruleFormula] = &Rule{
		Name:  "formula",
		Flags: FlagAST,
		Terms: []Term{plus(ruleFunctionStr, ruleKeyword, ruleText)},
	}
	g.rules[ruleFunctionStr] = &Rule{
		Name: "string function",
		Terms: []Term{one(
			ruleFunctionUpper,
			ruleFunctionLower,
			ruleFunctionCapitalize,
			ruleFunctionCamelize,
			ruleFunctionReplace,
			ruleFunctionRegExp,
			ruleFunctionIndex,
			ruleFunctionSub,
		)},
	}
	g.rules[ruleFunctionInt] = &Rule{
		Name:  "integer function",
		Terms: []Term{one(ruleFunctionLen)},
	}

	g.rules[ruleFunctionUpper] = strFunction("[upper:")
	g.rules[ruleFunctionLower] = strFunction("[lower:")
	g.rules[ruleFunctionCapitalize] = strFunction("[capitalize:")
	g.rules[ruleFunctionCamelize] = strFunction("[camelize:")

	g.rules[ruleFunctionReplace] = &Rule{
		Name:  "function replace",
		Flags: FlagAST | FlagPartialMatch,
		Terms: []Term{
			tokText(lexer.FUNC_STR, "[replace:"),
			one(ruleStringExpression),
			tok(lexer.SEPARATOR),
			one(ruleStringExpression),
			tok(lexer.SEPARATOR),
			one(ruleStringExpression),
			tok(lexer.FUNC_CLOSE),
		},
	}
	g.rules[ruleFunctionRegExp] = &Rule{
		Name:  "function regex",
		Flags: FlagAST | FlagPartialMatch,
		Terms: []Term{
			tokText(lexer.FUNC_STR, "[regex:"),
			one(ruleStringExpression),
			tok(lexer.SEPARATOR),
			one(ruleStringExpression),
			opt(ruleOptionalStrParam),
			tok(lexer.FUNC_CLOSE),
		},
	}
	g.rules[ruleFunctionIndex] = &Rule{
		Name:  "function index",
		Flags: FlagAST | FlagPartialMatch,
		Terms: []Term{
			tokText(lexer.FUNC_STR, "[index:"),
			one(ruleStringExpression),
			tok(lexer.SEPARATOR),
			one(ruleStringExpression),
			tok(lexer.SEPARATOR),
			one(ruleIntegerExpression),
			tok(lexer.FUNC_CLOSE),
		},
	}
	g.rules[ruleFunctionSub] = &Rule{
		Name:  "function sub",
		Flags: FlagAST | FlagPartialMatch,
		Terms: []Term{
			tokText(lexer.FUNC_STR, "[sub:"),
			one(ruleStringExpression),
			tok(lexer.SEPARATOR),
			one(ruleIntegerExpression),
			opt(ruleOptionalIntParam),
			tok(lexer.FUNC_CLOSE),
		},
	}
	g.rules[ruleFunctionLen] = &Rule{
		Name:  "function len",
		Flags: FlagAST | FlagPartialMatch,
		Terms: []Term{
			tokText(lexer.FUNC_INT, "[len:"),
			one(ruleStringExpression),
			opt(ruleOptionalIntParam),
			tok(lexer.FUNC_CLOSE),
		},
	}

	g.rules[ruleKeyword] = &Rule{
		Name:  "keyword",
		Flags: FlagAST,
		Terms: []Term{keepTok(lexer.KEYWORD)},
	}
	g.rules[ruleText] = &Rule{
		Name:  "text",
		Flags: FlagAST,
		Terms: []Term{plus(ruleStringValue, ruleUnquotedText)},
	}
	g.rules[ruleOptionalStrParam] = &Rule{
		Name:  "string value",
		Flags: FlagAST,
		Terms: []Term{
			tok(lexer.SEPARATOR),
			one(ruleStringExpression),
		},
	}
	g.rules[ruleOptionalIntParam] = &Rule{
		Name:  "integer value",
		Flags: FlagAST,
		Terms: []Term{
			tok(lexer.SEPARATOR),
			one(ruleIntegerExpression),
		},
	}
	g.rules[ruleStringExpression] = &Rule{
		Name:  "string value",
		Flags: FlagAST,
		Terms: []Term{plus(ruleText, ruleFunctionStr, ruleKeyword)},
	}
	g.rules[ruleIntegerExpression] = &Rule{
		Name:  "integer value",
		Flags: FlagAST,
		Terms: []Term{one(ruleIntegerValue, ruleFunctionInt)},
	}
	g.rules[ruleStringValue] = &Rule{
		Name:  "quoted string",
		Flags: FlagAST,
		Terms: []Term{keepTok(lexer.STRING)},
	}
	g.rules[ruleIntegerValue] = &Rule{
		Name:  "integer",
		Flags: FlagAST,
		Terms: []Term{keepTok(lexer.NUMBER)},
	}
	g.rules[ruleUnquotedText] = &Rule{
		Name:  "unquoted text",
		Flags: FlagAST,
		Terms: []Term{keepTok(lexer.TEXT)},
	}

	return g
}
