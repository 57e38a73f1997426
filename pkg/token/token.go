// Package token defines the lexical units of Swift source handled by swiftfmt,
// together with the tokenizer and serializer that convert between source text
// and token sequences.
package token

import "strings"

// Kind classifies a token.
type Kind uint8

// Token kinds. The zero value Invalid is only produced by out-of-range lookups.
const (
	Invalid Kind = iota
	KindSpace
	KindLinebreak
	KindIdentifier
	KindKeyword
	KindAttribute
	KindOperator
	KindDelimiter
	KindNumber
	KindStringBody
	KindStartOfScope
	KindEndOfScope
	KindCommentBody
	KindError
)

var kindNames = [...]string{
	Invalid:          "invalid",
	KindSpace:        "space",
	KindLinebreak:    "linebreak",
	KindIdentifier:   "identifier",
	KindKeyword:      "keyword",
	KindAttribute:    "attribute",
	KindOperator:     "operator",
	KindDelimiter:    "delimiter",
	KindNumber:       "number",
	KindStringBody:   "stringBody",
	KindStartOfScope: "startOfScope",
	KindEndOfScope:   "endOfScope",
	KindCommentBody:  "commentBody",
	KindError:        "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// OperatorPosition records how an operator is applied.
type OperatorPosition uint8

const (
	PositionNone OperatorPosition = iota
	PositionPrefix
	PositionInfix
	PositionPostfix
)

func (p OperatorPosition) String() string {
	switch p {
	case PositionPrefix:
		return "prefix"
	case PositionInfix:
		return "infix"
	case PositionPostfix:
		return "postfix"
	default:
		return "none"
	}
}

// NumberKind classifies numeric literals.
type NumberKind uint8

const (
	NumberInteger NumberKind = iota
	NumberDecimal
	NumberBinary
	NumberOctal
	NumberHex
)

// Token is a single lexical unit. Tokens are values: comparing with == is
// meaningful and a buffer owns the only mutable sequence of them.
type Token struct {
	// Kind classifies the token.
	Kind Kind

	// Text is the exact source text of the token.
	Text string

	// Position is only meaningful for operators.
	Position OperatorPosition

	// Number is only meaningful for number literals.
	Number NumberKind
}

// Space returns a horizontal whitespace token.
func Space(text string) Token { return Token{Kind: KindSpace, Text: text} }

// Linebreak returns a line ending token; text is "\n", "\r\n" or "\r".
func Linebreak(text string) Token { return Token{Kind: KindLinebreak, Text: text} }

// Identifier returns an identifier token, including backticked names.
func Identifier(text string) Token { return Token{Kind: KindIdentifier, Text: text} }

// Keyword returns a keyword token, including "#"-prefixed directives that do
// not open a scope.
func Keyword(text string) Token { return Token{Kind: KindKeyword, Text: text} }

// Attribute returns an "@"-prefixed attribute token.
func Attribute(text string) Token { return Token{Kind: KindAttribute, Text: text} }

// Delimiter returns a punctuation token such as "," ";" or ":".
func Delimiter(text string) Token { return Token{Kind: KindDelimiter, Text: text} }

// StringBody returns the literal text between string delimiters.
func StringBody(text string) Token { return Token{Kind: KindStringBody, Text: text} }

// CommentBody returns the text of a comment without its delimiters.
func CommentBody(text string) Token { return Token{Kind: KindCommentBody, Text: text} }

// StartOfScope returns a scope opener such as "{", "//" or "#if".
func StartOfScope(text string) Token { return Token{Kind: KindStartOfScope, Text: text} }

// EndOfScope returns a scope closer such as "}", "*/" or "#endif".
func EndOfScope(text string) Token { return Token{Kind: KindEndOfScope, Text: text} }

// Error returns a token for input the tokenizer could not classify.
func Error(text string) Token { return Token{Kind: KindError, Text: text} }

// Operator returns an operator token with the given position.
func Operator(text string, pos OperatorPosition) Token {
	return Token{Kind: KindOperator, Text: text, Position: pos}
}

// Number returns a number literal token.
func Number(text string, kind NumberKind) Token {
	return Token{Kind: KindNumber, Text: text, Number: kind}
}

// IsSpace reports whether t is horizontal whitespace.
func (t Token) IsSpace() bool { return t.Kind == KindSpace }

// IsLinebreak reports whether t is a line ending.
func (t Token) IsLinebreak() bool { return t.Kind == KindLinebreak }

// IsAttribute reports whether t is an attribute.
func (t Token) IsAttribute() bool { return t.Kind == KindAttribute }

// IsError reports whether t is input the tokenizer could not classify.
func (t Token) IsError() bool { return t.Kind == KindError }

// IsValid reports whether t is a real token. Out-of-range lookups return the
// zero Token, which is not valid.
func (t Token) IsValid() bool { return t.Kind != Invalid }

// IsStartOfScope reports whether t opens a scope.
func (t Token) IsStartOfScope() bool { return t.Kind == KindStartOfScope }

// IsEndOfScope reports whether t closes a scope.
func (t Token) IsEndOfScope() bool { return t.Kind == KindEndOfScope }

// IsSpaceOrLinebreak reports whether t is horizontal or vertical whitespace.
func (t Token) IsSpaceOrLinebreak() bool {
	return t.Kind == KindSpace || t.Kind == KindLinebreak
}

// IsComment reports whether t is part of a comment: its body or delimiters.
func (t Token) IsComment() bool {
	switch t.Kind {
	case KindCommentBody:
		return true
	case KindStartOfScope:
		return t.Text == "//" || t.Text == "/*"
	case KindEndOfScope:
		return t.Text == "*/"
	}
	return false
}

// IsSpaceOrComment reports whether t is a space or comment token.
func (t Token) IsSpaceOrComment() bool {
	return t.IsSpace() || t.IsComment()
}

// IsSpaceOrCommentOrLinebreak reports whether t carries no code.
func (t Token) IsSpaceOrCommentOrLinebreak() bool {
	return t.IsSpaceOrLinebreak() || t.IsComment()
}

// IsKeyword reports whether t is the keyword text (any keyword when text is empty).
func (t Token) IsKeyword(text string) bool {
	return t.Kind == KindKeyword && (text == "" || t.Text == text)
}

// IsIdentifier reports whether t is the identifier text (any identifier when text is empty).
func (t Token) IsIdentifier(text string) bool {
	return t.Kind == KindIdentifier && (text == "" || t.Text == text)
}

// IsOperator reports whether t is the operator text (any operator when text is empty).
func (t Token) IsOperator(text string) bool {
	return t.Kind == KindOperator && (text == "" || t.Text == text)
}

// IsDelimiter reports whether t is the delimiter text (any delimiter when text is empty).
func (t Token) IsDelimiter(text string) bool {
	return t.Kind == KindDelimiter && (text == "" || t.Text == text)
}

// IsStringDelimiter reports whether t opens or closes a string literal.
func (t Token) IsStringDelimiter() bool {
	return (t.Kind == KindStartOfScope || t.Kind == KindEndOfScope) &&
		strings.Contains(t.Text, `"`)
}

// IsIdentifierOrKeyword reports whether t is a word.
func (t Token) IsIdentifierOrKeyword() bool {
	return t.Kind == KindIdentifier || t.Kind == KindKeyword
}

// IsLiteral reports whether t starts a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case KindNumber:
		return true
	case KindStartOfScope:
		return t.Text == `"` || t.Text == `"""`
	case KindKeyword:
		return t.Text == "true" || t.Text == "false" || t.Text == "nil"
	}
	return false
}

// IsLvalue reports whether t can end an expression operand.
func (t Token) IsLvalue() bool {
	switch t.Kind {
	case KindIdentifier, KindNumber:
		return true
	case KindKeyword:
		return t.Text == "self" || t.Text == "Self" || t.Text == "super" ||
			t.Text == "true" || t.Text == "false" || t.Text == "nil"
	case KindEndOfScope:
		return t.Text == ")" || t.Text == "]" || t.Text == `"` || t.Text == `"""` || t.Text == ">"
	case KindOperator:
		return t.Position == PositionPostfix
	}
	return false
}

// IsRvalue reports whether t can begin an expression operand.
func (t Token) IsRvalue() bool {
	switch t.Kind {
	case KindIdentifier, KindNumber:
		return true
	case KindKeyword:
		return t.Text == "self" || t.Text == "Self" || t.Text == "super" ||
			t.Text == "true" || t.Text == "false" || t.Text == "nil" || t.Text == "try" || t.Text == "await"
	case KindStartOfScope:
		return t.Text == "(" || t.Text == "[" || t.Text == `"` || t.Text == `"""`
	case KindOperator:
		return t.Position == PositionPrefix
	}
	return false
}

// ClosingScope returns the end delimiter for a start-of-scope text, or "" when
// the scope is closed by a linebreak or the text is not a scope opener.
func ClosingScope(start string) string {
	switch start {
	case "{":
		return "}"
	case "(":
		return ")"
	case "[":
		return "]"
	case "<":
		return ">"
	case `"`:
		return `"`
	case `"""`:
		return `"""`
	case "/*":
		return "*/"
	case "#if":
		return "#endif"
	}
	if strings.HasPrefix(start, "#") && strings.HasSuffix(start, `"`) {
		// raw string opener, e.g. #" closes with "#
		return reverseRaw(start)
	}
	return ""
}

func reverseRaw(start string) string {
	hashes := strings.Count(start, "#")
	return strings.TrimLeft(start, "#") + strings.Repeat("#", hashes)
}

// IsEndOfScopeFor reports whether t closes the scope opened by start.
func (t Token) IsEndOfScopeFor(start Token) bool {
	if start.Kind != KindStartOfScope {
		return false
	}
	if start.Text == "//" {
		return t.Kind == KindLinebreak
	}
	return t.Kind == KindEndOfScope && t.Text == ClosingScope(start.Text)
}

// String renders a debug form of the token.
func (t Token) String() string {
	return t.Kind.String() + "(" + strings.ReplaceAll(t.Text, "\n", `\n`) + ")"
}
