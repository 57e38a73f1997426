package rules

import (
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// TrailingSpaceRule removes whitespace at the end of lines.
type TrailingSpaceRule struct {
	format.BaseRule
}

// NewTrailingSpaceRule creates a new trailing space rule.
func NewTrailingSpaceRule() *TrailingSpaceRule {
	return &TrailingSpaceRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:      "trailingSpace",
			Help:      "Remove trailing space at end of a line.",
			Options:   []string{"trimwhitespace"},
			RunsAfter: []string{"semicolons", "leadingDelimiters", "braces", "elseOnSameLine"},
		}),
	}
}

// Apply removes spaces that end a line.
func (r *TrailingSpaceRule) Apply(f *engine.Formatter) {
	nonBlankOnly := f.Options().TrimWhitespace == "nonblank-lines"

	f.ForEachReverse(token.OfKind(token.KindSpace), func(i int, _ token.Token) {
		if !isLinebreakOrEOF(f, i+1) {
			return
		}
		if nonBlankOnly && f.StartOfLine(i) == i {
			return
		}
		f.Remove(i)
	})
}

// ConsecutiveSpacesRule collapses runs of spaces between tokens.
type ConsecutiveSpacesRule struct {
	format.BaseRule
}

// NewConsecutiveSpacesRule creates a new consecutive spaces rule.
func NewConsecutiveSpacesRule() *ConsecutiveSpacesRule {
	return &ConsecutiveSpacesRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:      "consecutiveSpaces",
			Help:      "Replace consecutive spaces with a single space.",
			RunsAfter: []string{"spaceAroundOperators", "redundantParens"},
		}),
	}
}

// Apply collapses spaces that are neither indentation, trailing space, nor
// part of a comment.
func (r *ConsecutiveSpacesRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(token.OfKind(token.KindSpace), func(i int, tok token.Token) {
		if tok.Text == " " || len(tok.Text) < 2 {
			return
		}
		if f.StartOfLine(i) == i || isLinebreakOrEOF(f, i+1) {
			return
		}
		// alignment before trailing comments is kept
		if f.At(i+1).IsComment() || isInsideComment(f, i) {
			return
		}
		f.Replace(i, token.Space(" "))
	})
}

// LinebreakAtEndOfFileRule ensures a file ends with exactly one linebreak.
type LinebreakAtEndOfFileRule struct {
	format.BaseRule
}

// NewLinebreakAtEndOfFileRule creates a new linebreak at end of file rule.
func NewLinebreakAtEndOfFileRule() *LinebreakAtEndOfFileRule {
	return &LinebreakAtEndOfFileRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "linebreakAtEndOfFile",
			Help:          "Add an empty blank line at end of file.",
			SharedOptions: []string{"linebreaks"},
			RunsAfter:     []string{"consecutiveBlankLines"},
		}),
	}
}

// Apply replaces whatever whitespace follows the last token with a single
// linebreak. Files holding only whitespace are left alone.
func (r *LinebreakAtEndOfFileRule) Apply(f *engine.Formatter) {
	last := f.PrevIndex(f.Len(), token.NonSpaceOrLinebreak)
	if last < 0 || !f.IsEnabled(last) {
		return
	}
	if _, ok := f.IsScopeBalanced(); !ok {
		return
	}
	if last == f.Len()-2 && f.At(last+1).IsLinebreak() {
		return
	}
	f.ReplaceRange(last+1, f.Len(), []token.Token{f.LinebreakToken(last)})
}

// ConsecutiveBlankLinesRule collapses runs of blank lines into one.
type ConsecutiveBlankLinesRule struct {
	format.BaseRule
}

// NewConsecutiveBlankLinesRule creates a new consecutive blank lines rule.
func NewConsecutiveBlankLinesRule() *ConsecutiveBlankLinesRule {
	return &ConsecutiveBlankLinesRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "consecutiveBlankLines",
			Help: "Replace consecutive blank lines with a single blank line.",
			RunsAfter: []string{
				"blankLineAfterImports", "emptyExtensions", "unusedPrivateDeclarations",
				"duplicateImports", "fileHeader",
			},
		}),
	}
}

// Apply removes every blank line that follows another blank line. Blank lines
// inside multiline strings and block comments are content and stay.
func (r *ConsecutiveBlankLinesRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(token.IsLinebreakToken, func(i int, _ token.Token) {
		if !f.IsBlankLine(i) {
			return
		}
		start := f.StartOfLine(i)
		if start == 0 || !f.IsBlankLine(start-1) {
			return
		}
		if f.IsInsideString(i) || isInsideComment(f, i) {
			return
		}
		f.RemoveRange(start, i+1)
	})
}

// BlankLinesAtStartOfScopeRule removes blank lines after an opening brace,
// parenthesis or bracket.
type BlankLinesAtStartOfScopeRule struct {
	format.BaseRule
}

// NewBlankLinesAtStartOfScopeRule creates a new blank lines at start of
// scope rule.
func NewBlankLinesAtStartOfScopeRule() *BlankLinesAtStartOfScopeRule {
	return &BlankLinesAtStartOfScopeRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "blankLinesAtStartOfScope",
			Help: "Remove leading blank line at the start of a scope.",
		}),
	}
}

// Apply removes the blank lines between an opener ending its line and the
// first non-blank line of the scope.
func (r *BlankLinesAtStartOfScopeRule) Apply(f *engine.Formatter) {
	var edits []engine.Edit
	f.ForEach(scopeToken(token.KindStartOfScope, "{", "(", "["), func(i int, _ token.Token) {
		first := f.NextIndex(i, token.NonSpace)
		if first < 0 || !f.At(first).IsLinebreak() {
			return
		}
		last := first
		for {
			next := f.NextIndex(last, token.NonSpace)
			if next < 0 || !f.At(next).IsLinebreak() {
				break
			}
			last = next
		}
		if last > first {
			edits = append(edits, engine.Edit{Start: first + 1, End: last + 1})
		}
	})
	f.ApplyEdits(edits)
}

// BlankLinesAtEndOfScopeRule removes blank lines before a closing brace,
// parenthesis or bracket.
type BlankLinesAtEndOfScopeRule struct {
	format.BaseRule
}

// NewBlankLinesAtEndOfScopeRule creates a new blank lines at end of scope
// rule.
func NewBlankLinesAtEndOfScopeRule() *BlankLinesAtEndOfScopeRule {
	return &BlankLinesAtEndOfScopeRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "blankLinesAtEndOfScope",
			Help: "Remove trailing blank line at the end of a scope.",
		}),
	}
}

// Apply removes the blank lines between the last non-blank line of a scope
// and a closer that starts its own line.
func (r *BlankLinesAtEndOfScopeRule) Apply(f *engine.Formatter) {
	var edits []engine.Edit
	f.ForEach(scopeToken(token.KindEndOfScope, "}", ")", "]"), func(i int, _ token.Token) {
		last := f.PrevIndex(i, token.NonSpace)
		if last < 0 || !f.At(last).IsLinebreak() {
			return
		}
		first := last
		for {
			prev := f.PrevIndex(first, token.NonSpace)
			if prev < 0 || !f.At(prev).IsLinebreak() {
				break
			}
			first = prev
		}
		if first < last {
			edits = append(edits, engine.Edit{Start: first + 1, End: last + 1})
		}
	})
	f.ApplyEdits(edits)
}
