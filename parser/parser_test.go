package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// se wraps parts in a StringExpr the way function arguments lower
func se(parts ...ASTNode) *StringExpr {
	return &StringExpr{Parts: parts}
}

func TestParseAST(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Formula
	}{
		{
			name:  "plain text",
			input: "abc",
			want:  &Formula{Parts: []ASTNode{&Text{Value: "abc"}}},
		},
		{
			name:  "keyword",
			input: "{file:baseName}",
			want:  &Formula{Parts: []ASTNode{&Keyword{Name: "{file:basename}"}}},
		},
		{
			name:  "text keyword text",
			input: "img_{counter:####}.png",
			want: &Formula{Parts: []ASTNode{
				&Text{Value: "img_"},
				&Keyword{Name: "{counter:####}"},
				&Text{Value: ".png"},
			}},
		},
		{
			name:  "adjacent quoted and unquoted text merge",
			input: `abc", "def`,
			want:  &Formula{Parts: []ASTNode{&Text{Value: "abc, def"}}},
		},
		{
			name:  "upper",
			input: "[upper:{file:baseName}]",
			want: &Formula{Parts: []ASTNode{
				&Upper{Arg: se(&Keyword{Name: "{file:basename}"})},
			}},
		},
		{
			name:  "nested function argument",
			input: `[lower:[upper:{file:baseName}]"."{file:ext}]`,
			want: &Formula{Parts: []ASTNode{
				&Lower{Arg: se(
					&Upper{Arg: se(&Keyword{Name: "{file:basename}"})},
					&Text{Value: "."},
					&Keyword{Name: "{file:ext}"},
				)},
			}},
		},
		{
			name:  "replace",
			input: `[replace:{file:baseName}, "_", "-"]`,
			want: &Formula{Parts: []ASTNode{
				&Replace{
					Value:  se(&Keyword{Name: "{file:basename}"}),
					Search: se(&Text{Value: "_"}),
					With:   se(&Text{Value: "-"}),
				},
			}},
		},
		{
			name:  "regex without replacement",
			input: `[regex:abc, "b"]`,
			want: &Formula{Parts: []ASTNode{
				&RegExp{
					Value:   se(&Text{Value: "abc"}),
					Pattern: se(&Text{Value: "b"}),
				},
			}},
		},
		{
			name:  "regex with replacement",
			input: `[regex:abc, "b", "x"]`,
			want: &Formula{Parts: []ASTNode{
				&RegExp{
					Value:   se(&Text{Value: "abc"}),
					Pattern: se(&Text{Value: "b"}),
					With:    se(&Text{Value: "x"}),
				},
			}},
		},
		{
			name:  "index",
			input: `[index:{file:baseName}, "_", 2]`,
			want: &Formula{Parts: []ASTNode{
				&IndexOf{
					Value:     se(&Keyword{Name: "{file:basename}"}),
					Separator: se(&Text{Value: "_"}),
					Index:     &IntValue{Value: 2},
				},
			}},
		},
		{
			name:  "sub without length",
			input: `[sub:{file:baseName}, -6]`,
			want: &Formula{Parts: []ASTNode{
				&Substr{
					Value: se(&Keyword{Name: "{file:basename}"}),
					Start: &IntValue{Value: -6},
				},
			}},
		},
		{
			name:  "sub with computed length",
			input: `[sub:{file:baseName}, 1, [len:{file:ext}, 1]]`,
			want: &Formula{Parts: []ASTNode{
				&Substr{
					Value: se(&Keyword{Name: "{file:basename}"}),
					Start: &IntValue{Value: 1},
					Length: &Length{
						Value:  se(&Keyword{Name: "{file:ext}"}),
						Offset: &IntValue{Value: 1},
					},
				},
			}},
		},
	}

	ignoreTokens := cmpopts.IgnoreFields(Keyword{}, "Token")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, errs := Parse(tt.input)
			if len(errs) > 0 {
				t.Fatalf("Parse(%q) unexpected errors: %v", tt.input, errs)
			}
			got, err := tree.Formula()
			if err != nil {
				t.Fatalf("Formula() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreTokens); diff != "" {
				t.Errorf("Parse(%q) AST mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseEmptyPattern(t *testing.T) {
	tree, errs := Parse("")
	if len(errs) > 0 {
		t.Fatalf("Parse(\"\") unexpected errors: %v", errs)
	}
	f, err := tree.Formula()
	if err != nil {
		t.Fatalf("Formula() failed: %v", err)
	}
	if f != nil {
		t.Errorf("Formula() = %+v, want nil for an empty pattern", f)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "stray function closer",
			input:   "abc]",
			wantMsg: `language delimiters must be quoted: "]"`,
		},
		{
			name:    "stray separator",
			input:   "abc,def",
			wantMsg: `language delimiters must be quoted: ","`,
		},
		{
			name:    "bare number",
			input:   "123",
			wantMsg: `number values in a file name must be quoted: "123"`,
		},
		{
			name:    "illegal character",
			input:   "}",
			wantMsg: `unexpected character "}"`,
		},
		{
			name:    "unterminated function",
			input:   "[upper:abc",
			wantMsg: "function upper: a function closing ']' is expected",
		},
		{
			name:    "missing separator",
			input:   `[replace:abc "x", "y"]`,
			wantMsg: "function replace: a function parameter separator ',' is expected",
		},
		{
			name:    "missing closer after optional argument",
			input:   `[regex:abc, "b"`,
			wantMsg: "function regex: a function closing ']' is expected or one string value is expected",
		},
		{
			name:    "missing integer argument",
			input:   `[sub:abc, x]`,
			wantMsg: "function sub: one integer value is expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, errs := Parse(tt.input)
			if tree.Matched() {
				t.Fatalf("Parse(%q) matched, want failure", tt.input)
			}
			if len(errs) == 0 {
				t.Fatalf("Parse(%q) returned no errors", tt.input)
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("Parse(%q) first error = %q, want %q", tt.input, errs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, errs := Parse("abc]")
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	if errs[0].Token.Position.Col != 3 {
		t.Errorf("error column = %d, want 3", errs[0].Token.Position.Col)
	}
	want := `invalid syntax at 0:3: language delimiters must be quoted: "]"`
	if got := errs[0].Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
