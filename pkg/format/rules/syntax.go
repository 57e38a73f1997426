package rules

import (
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// RedundantParensRule removes parentheses around statement conditions.
type RedundantParensRule struct {
	format.BaseRule
}

// NewRedundantParensRule creates a new redundant parens rule.
func NewRedundantParensRule() *RedundantParensRule {
	return &RedundantParensRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "redundantParens",
			Help: "Remove redundant parentheses.",
		}),
	}
}

// Apply unwraps "if (x) {", "while (x) {", "switch (x) {" and
// "guard (x) else". Parenthesized tuples, closures and multiline conditions
// are left alone.
func (r *RedundantParensRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(token.KeywordIn("if", "while", "switch", "guard"), func(i int, tok token.Token) {
		open := f.NextCode(i)
		if open < 0 || !isScopeStart(f.At(open), "(") {
			return
		}
		end := f.EndOfScope(open)
		if end < 0 || f.NextCode(open) >= end {
			return
		}
		after := f.At(f.NextCode(end))
		if !isScopeStart(after, "{") && !(tok.Text == "guard" && after.IsKeyword("else")) {
			return
		}
		if !isSimpleCondition(f, open, end) {
			return
		}

		var edits []engine.Edit
		closeStart, closeRepl := end, []token.Token(nil)
		if f.At(end - 1).IsSpace() {
			closeStart = end - 1
		}
		if !f.At(end + 1).IsSpace() {
			closeRepl = []token.Token{token.Space(" ")}
		}
		edits = append(edits, engine.Edit{Start: closeStart, End: end + 1, Tokens: closeRepl})

		openEnd, openRepl := open+1, []token.Token(nil)
		if f.At(open + 1).IsSpace() {
			openEnd = open + 2
		}
		if !f.At(open - 1).IsSpace() {
			openRepl = []token.Token{token.Space(" ")}
		}
		edits = append(edits, engine.Edit{Start: open, End: openEnd, Tokens: openRepl})

		f.ApplyEdits(edits)
	})
}

// isSimpleCondition reports whether the parenthesized range holds a single
// expression on one line with no closures.
func isSimpleCondition(f *engine.Formatter, open, end int) bool {
	for j := open + 1; j < end; j++ {
		tok := f.At(j)
		switch {
		case tok.IsLinebreak(), tok.IsDelimiter(","):
			return false
		case isScopeStart(tok, "{"):
			return false
		case tok.IsStartOfScope():
			e := f.EndOfScope(j)
			if e < 0 || e >= end {
				return false
			}
			j = e
		}
	}
	return true
}

// SemicolonsRule removes semicolons.
type SemicolonsRule struct {
	format.BaseRule
}

// NewSemicolonsRule creates a new semicolons rule.
func NewSemicolonsRule() *SemicolonsRule {
	return &SemicolonsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "semicolons",
			Help:          "Remove semicolons.",
			Options:       []string{"semicolons"},
			SharedOptions: []string{"linebreaks"},
		}),
	}
}

// Apply removes semicolons that end a line or a braced block. With
// semicolons=never, statements separated by a semicolon on one line are
// split onto separate lines.
func (r *SemicolonsRule) Apply(f *engine.Formatter) {
	never := f.Options().Semicolons == "never"

	f.ForEachReverse(token.Is(token.Delimiter(";")), func(i int, _ token.Token) {
		if start := f.StartOfScope(i); start >= 0 &&
			(isScopeStart(f.At(start), "(") || isScopeStart(f.At(start), "[")) {
			return
		}
		next := f.NextIndex(i, token.NonSpaceOrComment)
		switch {
		case next < 0 || f.At(next).IsLinebreak():
			if startsContinuation(f.At(f.NextCode(i))) {
				return
			}
			f.Remove(i)
		case isScopeEnd(f.At(next), "}"):
			f.Remove(i)
		case never:
			if f.PrevCode(i) < 0 || f.At(f.PrevCode(i)).IsDelimiter(";") {
				return
			}
			end := f.NextIndex(i, token.NonSpace)
			f.ReplaceRange(i, end, linebreakWithIndent(f, i, f.CurrentIndent(i)))
		}
	})
}

// startsContinuation reports whether a line starting with t would continue
// the previous statement once the separating semicolon is gone.
func startsContinuation(t token.Token) bool {
	switch {
	case isScopeStart(t, "("), isScopeStart(t, "["):
		return true
	case t.IsOperator(""):
		return true
	}
	return false
}

// VoidRule normalizes empty tuple types.
type VoidRule struct {
	format.BaseRule
}

// NewVoidRule creates a new void rule.
func NewVoidRule() *VoidRule {
	return &VoidRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "void",
			Help: "Use Void for type declarations and () for values.",
		}),
	}
}

// Apply rewrites a "()" return type as "Void" and a "(Void)" parameter list
// as "()".
func (r *VoidRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(scopeToken(token.KindStartOfScope, "("), func(i int, _ token.Token) {
		end := f.EndOfScope(i)
		if end < 0 {
			return
		}
		prev := f.At(f.PrevCode(i))
		next := f.At(f.NextCode(end))

		switch {
		case end == i+1 && prev.IsOperator("->"):
			if next.IsOperator("->") || next.IsKeyword("throws") || next.IsIdentifier("async") {
				// the parens are a parameter list
				return
			}
			f.ReplaceRange(i, end+1, []token.Token{token.Identifier("Void")})
		case end == i+2 && f.At(i+1).IsIdentifier("Void") && next.IsOperator("->"):
			if prev.IsLvalue() {
				return
			}
			f.Remove(i + 1)
		}
	})
}

// TrailingCommasRule manages trailing commas in multiline collection
// literals.
type TrailingCommasRule struct {
	format.BaseRule
}

// NewTrailingCommasRule creates a new trailing commas rule.
func NewTrailingCommasRule() *TrailingCommasRule {
	return &TrailingCommasRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:    "trailingCommas",
			Help:    "Add or remove trailing comma from the last item in a collection literal.",
			Options: []string{"commas"},
		}),
	}
}

// Apply adds a comma after the last element when the closing bracket is on
// its own line, or removes it with commas=inline. Single-line literals never
// keep a trailing comma.
func (r *TrailingCommasRule) Apply(f *engine.Formatter) {
	inline := f.Options().Commas == "inline"

	f.ForEachReverse(scopeToken(token.KindEndOfScope, "]"), func(i int, _ token.Token) {
		open := f.StartOfScope(i)
		if open < 0 || !isCollectionLiteral(f, open) {
			return
		}
		last := f.PrevCode(i)
		if last <= open {
			return
		}
		lastTok := f.At(last)
		ownLine := isFirstOnLine(f, i)

		switch {
		case lastTok.IsDelimiter(","):
			if !ownLine || inline {
				f.Remove(last)
			}
		case ownLine && !inline && !lastTok.IsDelimiter(":"):
			f.Insert(last+1, token.Delimiter(","))
		}
	})
}

// isCollectionLiteral reports whether the bracket at open starts an array or
// dictionary literal rather than a subscript or capture list.
func isCollectionLiteral(f *engine.Formatter, open int) bool {
	prev := f.At(f.PrevCode(open))
	if prev.IsLvalue() || isScopeStart(prev, "{") {
		return false
	}
	return true
}

// LeadingDelimitersRule moves commas that start a line to the end of the
// previous line.
type LeadingDelimitersRule struct {
	format.BaseRule
}

// NewLeadingDelimitersRule creates a new leading delimiters rule.
func NewLeadingDelimitersRule() *LeadingDelimitersRule {
	return &LeadingDelimitersRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "leadingDelimiters",
			Help: "Move leading delimiters to the end of the previous line.",
		}),
	}
}

// Apply moves a line-leading comma after the previous code token, dropping
// the space that followed it.
func (r *LeadingDelimitersRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(token.Is(token.Delimiter(",")), func(i int, tok token.Token) {
		if !isFirstOnLine(f, i) {
			return
		}
		p := f.PrevCode(i)
		if p < 0 {
			return
		}
		end := i + 1
		if f.At(end).IsSpace() && !isLinebreakOrEOF(f, end+1) {
			end++
		}
		f.ApplyEdits([]engine.Edit{
			{Start: p + 1, End: p + 1, Tokens: []token.Token{tok}},
			{Start: i, End: end},
		})
	})
}
