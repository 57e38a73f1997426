package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTokenize_Basic(t *testing.T) {
	got := Tokenize("let a = 1")
	want := []Token{
		Keyword("let"), Space(" "), Identifier("a"), Space(" "),
		Operator("=", PositionInfix), Space(" "), Number("1", NumberInteger),
	}
	assert.Equal(t, want, got)
}

func TestTokenize_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "string interpolation",
			input: `"a\(b)c"`,
			want: []Token{
				StartOfScope(`"`), StringBody(`a\`), StartOfScope("("), Identifier("b"),
				EndOfScope(")"), StringBody("c"), EndOfScope(`"`),
			},
		},
		{
			name:  "line comment with trailing space",
			input: "// hello  \n",
			want: []Token{
				StartOfScope("//"), Space(" "), CommentBody("hello"), Space("  "), Linebreak("\n"),
			},
		},
		{
			name:  "block comment",
			input: "/* a */",
			want:  []Token{StartOfScope("/*"), Space(" "), CommentBody("a"), Space(" "), EndOfScope("*/")},
		},
		{
			name:  "generic arguments",
			input: "Array<Int>",
			want:  []Token{Identifier("Array"), StartOfScope("<"), Identifier("Int"), EndOfScope(">")},
		},
		{
			name:  "less than comparison",
			input: "a < b",
			want: []Token{
				Identifier("a"), Space(" "), Operator("<", PositionInfix), Space(" "), Identifier("b"),
			},
		},
		{
			name:  "unmatched closer",
			input: "foo)",
			want:  []Token{Identifier("foo"), Error(")")},
		},
		{
			name:  "prefix operator",
			input: "-x",
			want:  []Token{Operator("-", PositionPrefix), Identifier("x")},
		},
		{
			name:  "force unwrap",
			input: "x!",
			want:  []Token{Identifier("x"), Operator("!", PositionPostfix)},
		},
		{
			name:  "optional chaining",
			input: "a?.b",
			want: []Token{
				Identifier("a"), Operator("?", PositionPostfix), Operator(".", PositionInfix), Identifier("b"),
			},
		},
		{
			name:  "keyword as member name",
			input: "x.default",
			want:  []Token{Identifier("x"), Operator(".", PositionInfix), Identifier("default")},
		},
		{
			name:  "conditional compilation",
			input: "#if DEBUG\n#endif",
			want: []Token{
				StartOfScope("#if"), Space(" "), Identifier("DEBUG"), Linebreak("\n"), EndOfScope("#endif"),
			},
		},
		{
			name:  "raw string",
			input: `#"a"#`,
			want:  []Token{StartOfScope(`#"`), StringBody("a"), EndOfScope(`"#`)},
		},
		{
			name:  "range operator",
			input: "1...5",
			want: []Token{
				Number("1", NumberInteger), Operator("...", PositionInfix), Number("5", NumberInteger),
			},
		},
		{
			name:  "unterminated string",
			input: "\"abc\n",
			want:  []Token{Error(`"`), StringBody("abc"), Linebreak("\n")},
		},
		{
			name:  "attribute",
			input: "@MainActor",
			want:  []Token{Attribute("@MainActor")},
		},
		{
			name:  "crlf linebreak",
			input: "a\r\nb",
			want:  []Token{Identifier("a"), Linebreak("\r\n"), Identifier("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  NumberKind
	}{
		{"42", NumberInteger},
		{"1_000", NumberInteger},
		{"1.5", NumberDecimal},
		{"1e3", NumberDecimal},
		{"0xFF", NumberHex},
		{"0b101", NumberBinary},
		{"0o17", NumberOctal},
	}

	for _, tt := range tests {
		got := Tokenize(tt.input)
		require.Len(t, got, 1, "input: %s", tt.input)
		assert.Equal(t, Number(tt.input, tt.want), got[0], "input: %s", tt.input)
	}
}

func TestTokenize_MultilineString(t *testing.T) {
	input := "let s = \"\"\"\n  hello\n  \"\"\""
	tokens := Tokenize(input)

	assert.Equal(t, input, Render(tokens))
	assert.Contains(t, tokens, StartOfScope(`"""`))
	assert.Contains(t, tokens, EndOfScope(`"""`))
	assert.Contains(t, tokens, StringBody("  hello"))
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"import Foundation\n\nstruct Foo {\n    let bar: [String: Int] = [:]\n}\n",
		"func f<T: Equatable>(_ x: T) -> Bool where T: Hashable { x == x }\n",
		"let s = \"value: \\(a + \"\\(b)\")\"\n",
		"/* outer /* inner */ still */ code()\n",
		"#if os(iOS)\nimport UIKit\n#elseif os(macOS)\nimport AppKit\n#else\n#endif\n",
		"x = a ?? b ? c : d\n",
		"@objc private(set) var `class` = $0.count\n",
		"}}}) unbalanced ((\n",
		"\t\tmixed\tspaces  \r\n",
	}

	for _, in := range inputs {
		assert.Equal(t, in, Render(Tokenize(in)))
	}
}

func TestTokenize_RoundTripProperty(t *testing.T) {
	fragments := []string{
		"let", "var", " ", "\n", "\r\n", "\t", "x", "Foo", "1", "0x1F", "1.5",
		"(", ")", "[", "]", "{", "}", "<", ">", "\"", `\(`, `\`, "#", "#if", "#endif",
		"//", "/*", "*/", "+", "-", "?", "!", ".", ",", ":", ";", "@", "`", "$", "é", "=",
	}

	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 40).Draw(rt, "parts")
		input := strings.Join(parts, "")

		tokens := Tokenize(input)
		if got := Render(tokens); got != input {
			rt.Fatalf("round trip mismatch: %q != %q", got, input)
		}
		for _, tok := range tokens {
			if tok.Text == "" {
				rt.Fatalf("empty token %v in %q", tok, input)
			}
		}
	})
}

func TestClosingScope(t *testing.T) {
	tests := map[string]string{
		"{":     "}",
		"(":     ")",
		"[":     "]",
		"<":     ">",
		`"`:     `"`,
		`"""`:   `"""`,
		"/*":    "*/",
		"#if":   "#endif",
		`#"`:    `"#`,
		`##"""`: `"""##`,
		"//":    "",
	}

	for open, want := range tests {
		assert.Equal(t, want, ClosingScope(open), "open: %s", open)
	}
}

func TestToken_IsEndOfScopeFor(t *testing.T) {
	assert.True(t, EndOfScope("}").IsEndOfScopeFor(StartOfScope("{")))
	assert.False(t, EndOfScope(")").IsEndOfScopeFor(StartOfScope("{")))
	assert.True(t, Linebreak("\n").IsEndOfScopeFor(StartOfScope("//")))
	assert.False(t, EndOfScope("}").IsEndOfScopeFor(Identifier("{")))
}

func TestToken_Predicates(t *testing.T) {
	assert.True(t, StartOfScope("//").IsComment())
	assert.True(t, CommentBody("x").IsSpaceOrCommentOrLinebreak())
	assert.False(t, StartOfScope("{").IsComment())
	assert.True(t, Keyword("nil").IsLiteral())
	assert.True(t, EndOfScope(")").IsLvalue())
	assert.True(t, Operator("!", PositionPrefix).IsRvalue())
	assert.True(t, Keyword("let").IsKeyword(""))
	assert.False(t, Identifier("let").IsKeyword("let"))
	assert.False(t, Token{}.IsValid())
	assert.Equal(t, "keyword(let)", Keyword("let").String())

	kinds := []struct {
		tok  Token
		want Kind
		pred func(Token) bool
	}{
		{Space(" "), KindSpace, Token.IsSpace},
		{Linebreak("\n"), KindLinebreak, Token.IsLinebreak},
		{Attribute("@objc"), KindAttribute, Token.IsAttribute},
		{Error("`x"), KindError, Token.IsError},
		{StartOfScope("{"), KindStartOfScope, Token.IsStartOfScope},
		{EndOfScope("}"), KindEndOfScope, Token.IsEndOfScope},
	}
	for _, k := range kinds {
		assert.Equal(t, k.want, k.tok.Kind)
		assert.True(t, k.pred(k.tok), k.tok.String())
		assert.True(t, k.tok.IsValid())
	}
}

func TestRenderRange(t *testing.T) {
	tokens := Tokenize("a b c")
	assert.Equal(t, "b c", RenderRange(tokens, 2, 10))
	assert.Empty(t, RenderRange(tokens, 3, 1))
}
