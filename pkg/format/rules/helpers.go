package rules

import (
	"slices"

	"github.com/yaklabco/swiftfmt/pkg/declaration"
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// isLinebreakOrEOF reports whether i is a linebreak or past the last token.
func isLinebreakOrEOF(f *engine.Formatter, i int) bool {
	return i >= f.Len() || f.At(i).IsLinebreak()
}

// isFirstOnLine reports whether only spaces precede i on its line.
func isFirstOnLine(f *engine.Formatter, i int) bool {
	prev := f.PrevIndex(i, token.NonSpace)
	return prev < 0 || f.At(prev).IsLinebreak()
}

// isInsideComment reports whether i lies in a line or block comment.
func isInsideComment(f *engine.Formatter, i int) bool {
	start := f.StartOfScope(i)
	return start >= 0 && start != i && f.At(start).IsComment()
}

// containsLinebreak reports whether any token in [start, end) is a linebreak.
func containsLinebreak(f *engine.Formatter, start, end int) bool {
	return f.NextWithin(start-1, end, token.IsLinebreakToken) >= 0
}

// containsComment reports whether any token in [start, end) is a comment.
func containsComment(f *engine.Formatter, start, end int) bool {
	return f.NextWithin(start-1, end, func(t token.Token) bool { return t.IsComment() }) >= 0
}

// linebreakWithIndent returns a linebreak followed by indent, when indent is
// not empty.
func linebreakWithIndent(f *engine.Formatter, i int, indent string) []token.Token {
	toks := []token.Token{f.LinebreakToken(i)}
	if indent != "" {
		toks = append(toks, token.Space(indent))
	}
	return toks
}

// scopeToken matches start or end of scope tokens with the given texts.
func scopeToken(kind token.Kind, texts ...string) token.Matcher {
	return func(t token.Token) bool {
		return t.Kind == kind && slices.Contains(texts, t.Text)
	}
}

// identifierIn matches identifiers whose text is in words.
func identifierIn(words ...string) token.Matcher {
	return func(t token.Token) bool {
		return t.Kind == token.KindIdentifier && slices.Contains(words, t.Text)
	}
}

// isScopeStart reports whether t opens a scope with the given text.
func isScopeStart(t token.Token, text string) bool {
	return t.IsStartOfScope() && t.Text == text
}

// isScopeEnd reports whether t closes a scope with the given text.
func isScopeEnd(t token.Token, text string) bool {
	return t.IsEndOfScope() && t.Text == text
}

// blockLineStarters are words that begin a line whose trailing brace opens a
// statement or declaration body rather than a closure.
var blockLineStarters = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "repeat": true,
	"switch": true, "guard": true, "do": true, "catch": true, "defer": true,
	"func": true, "init": true, "deinit": true, "subscript": true,
	"class": true, "struct": true, "enum": true, "actor": true, "protocol": true,
	"extension": true, "var": true, "let": true, "get": true, "set": true,
	"willSet": true, "didSet": true, "macro": true,
}

// opensBlock reports whether the brace at i opens the body of a statement or
// declaration whose introducer starts the line ending at the brace's
// previous code token.
func opensBlock(f *engine.Formatter, i int) bool {
	p := f.PrevCode(i)
	if p < 0 {
		return false
	}
	first := f.NextIndex(f.StartOfLine(p)-1, token.NonSpace)
	tok := f.At(first)
	switch {
	case isScopeEnd(tok, "}"), tok.IsAttribute():
		return true
	case !tok.IsIdentifierOrKeyword():
		return false
	}
	word := tok.Text
	for !blockLineStarters[word] && declaration.IsModifier(word) {
		next := f.NextCode(first)
		if next < 0 || next >= i {
			return false
		}
		first, word = next, f.At(next).Text
	}
	if !blockLineStarters[word] {
		return false
	}
	if word == "let" || word == "var" {
		// "let x = foo {" passes a trailing closure
		assign := f.NextWithin(first, i, token.Is(token.Operator("=", token.PositionInfix)))
		return assign < 0
	}
	return true
}
