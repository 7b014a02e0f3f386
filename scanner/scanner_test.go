package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/scanner"
)

func types(toks []scanner.Token) []scanner.Type {
	out := make([]scanner.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScannerBasics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []scanner.Type
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []scanner.Type{scanner.EOF},
		},
		{
			name:  "simple rule",
			input: "body { color: red; }",
			expected: []scanner.Type{
				scanner.Ident, scanner.LBrace,
				scanner.Ident, scanner.Colon, scanner.Ident, scanner.Semicolon,
				scanner.RBrace, scanner.EOF,
			},
		},
		{
			name:  "variable assignment",
			input: "$primary: #fff;",
			expected: []scanner.Type{
				scanner.Variable, scanner.Colon, scanner.Color, scanner.Semicolon, scanner.EOF,
			},
		},
		{
			name:  "comments are tokens, not skipped",
			input: "// line\n/* block */ a { }",
			expected: []scanner.Type{
				scanner.CommentLine, scanner.CommentBlock,
				scanner.Ident, scanner.LBrace, scanner.RBrace, scanner.EOF,
			},
		},
		{
			name:  "placeholder selector",
			input: "%button-base { }",
			expected: []scanner.Type{
				scanner.Placeholder, scanner.LBrace, scanner.RBrace, scanner.EOF,
			},
		},
		{
			name:  "at-keyword",
			input: "@mixin foo() { }",
			expected: []scanner.Type{
				scanner.AtKeyword, scanner.Ident, scanner.LParen, scanner.RParen,
				scanner.LBrace, scanner.RBrace, scanner.EOF,
			},
		},
		{
			name:  "simple interpolation",
			input: "a { color: #{$c}; }",
			expected: []scanner.Type{
				scanner.Ident, scanner.LBrace,
				scanner.Ident, scanner.Colon,
				scanner.InterpStart, scanner.Variable, scanner.InterpEnd,
				scanner.Semicolon, scanner.RBrace, scanner.EOF,
			},
		},
		{
			name:  "function call inside interpolation",
			input: "#{ if($x, 1, 2) }",
			expected: []scanner.Type{
				scanner.InterpStart,
				scanner.Ident, scanner.LParen, scanner.Variable, scanner.Comma,
				scanner.Number, scanner.Comma, scanner.Number, scanner.RParen,
				scanner.InterpEnd, scanner.EOF,
			},
		},
		{
			name:  "negative number vs minus operator",
			input: "width: -10px; $x: $a - 1;",
			expected: []scanner.Type{
				scanner.Ident, scanner.Colon, scanner.Number, scanner.Semicolon,
				scanner.Variable, scanner.Colon, scanner.Variable, scanner.Minus, scanner.Number, scanner.Semicolon,
				scanner.EOF,
			},
		},
		{
			name:  "ellipsis for rest args",
			input: "@mixin m($args...) { }",
			expected: []scanner.Type{
				scanner.AtKeyword, scanner.Ident, scanner.LParen, scanner.Variable, scanner.DotDotDot, scanner.RParen,
				scanner.LBrace, scanner.RBrace, scanner.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(scanner.New(tt.input).All())
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestScannerStringEscapes(t *testing.T) {
	toks := scanner.New(`"a\nb"`).All()
	require.Equal(t, scanner.String, toks[0].Type)
	require.Equal(t, "a\nb", toks[0].Value)
	require.Equal(t, byte('"'), toks[0].QuoteChar)
}

func TestScannerColorVsHash(t *testing.T) {
	toks := scanner.New(`#fff #ff0000 #{$x}`).All()
	require.Equal(t, scanner.Color, toks[0].Type)
	require.Equal(t, "#fff", toks[0].Raw)
	require.Equal(t, scanner.Color, toks[1].Type)
	require.Equal(t, scanner.InterpStart, toks[2].Type)
}

func TestScannerVariableValue(t *testing.T) {
	toks := scanner.New(`$foo-bar`).All()
	require.Equal(t, "foo-bar", toks[0].Value)
}
