package lexer

// TokenType represents lexical tokens of the rename-formula language
type TokenType int

const (
	// Special tokens
	EOF     TokenType = iota
	ILLEGAL           // a character no rule can match (e.g. a bare '}')

	STRING     // backtick, single or double quoted literal
	FUNC_STR   // opener of a string-returning function: [upper: [replace: ...
	FUNC_INT   // opener of an integer-returning function: [len:
	KEYWORD    // a {...} metadata placeholder
	NUMBER     // an integer, possibly negative
	SEPARATOR  // , between function arguments
	FUNC_CLOSE // ] terminating a function call
	SPACE      // whitespace run, carried but ignored by the parser
	TEXT       // fallback: free text that becomes part of the output
)

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case STRING:
		return "STRING"
	case FUNC_STR:
		return "FUNC_STR"
	case FUNC_INT:
		return "FUNC_INT"
	case KEYWORD:
		return "KEYWORD"
	case NUMBER:
		return "NUMBER"
	case SEPARATOR:
		return "SEPARATOR"
	case FUNC_CLOSE:
		return "FUNC_CLOSE"
	case SPACE:
		return "SPACE"
	case TEXT:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the pattern string
type Position struct {
	Row    int // 0-based row number (patterns are usually single-line)
	Col    int // 0-based column number
	Offset int // 0-based byte offset
}

// Token represents one lexical token.
//
// Text is the raw lexeme as it appeared in the pattern. Value is the
// normalized form the parser and evaluator work with: quoted strings lose
// their delimiters, keywords and function openers are lowercased, numbers
// keep their digits (the parsed integer lives in Num).
type Token struct {
	Type     TokenType
	Text     string
	Value    string
	Num      int // parsed value for NUMBER tokens, 0 otherwise
	Position Position
}

// String returns the normalized token value (for testing and debugging)
func (t Token) String() string {
	return t.Value
}
