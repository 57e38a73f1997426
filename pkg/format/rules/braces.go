package rules

import (
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// BracesRule places opening braces in K&R or Allman style.
type BracesRule struct {
	format.BaseRule
}

// NewBracesRule creates a new braces rule.
func NewBracesRule() *BracesRule {
	return &BracesRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "braces",
			Help:          "Wrap braces in accordance with selected style (K&R or Allman).",
			Options:       []string{"allman"},
			SharedOptions: []string{"linebreaks"},
		}),
	}
}

// Apply moves the opening brace of a multiline statement or declaration body
// onto the line of its introducer, or onto its own line with allman=true.
func (r *BracesRule) Apply(f *engine.Formatter) {
	allman := f.Options().Allman

	f.ForEachReverse(scopeToken(token.KindStartOfScope, "{"), func(i int, _ token.Token) {
		p := f.PrevCode(i)
		if p < 0 || f.PrevIndex(i, token.NonSpaceOrLinebreak) != p {
			return
		}
		if !opensBlock(f, i) {
			return
		}
		onOwnLine := containsLinebreak(f, p+1, i)

		switch {
		case !allman && onOwnLine:
			f.ReplaceRange(p+1, i, []token.Token{token.Space(" ")})
		case allman && !onOwnLine:
			if !isLinebreakOrEOF(f, f.NextIndex(i, token.NonSpace)) {
				return
			}
			f.ReplaceRange(p+1, i, linebreakWithIndent(f, i, f.CurrentIndent(p)))
		}
	})
}

// ElseOnSameLineRule places else, catch and repeat-while relative to the
// preceding closing brace.
type ElseOnSameLineRule struct {
	format.BaseRule
}

// NewElseOnSameLineRule creates a new else on same line rule.
func NewElseOnSameLineRule() *ElseOnSameLineRule {
	return &ElseOnSameLineRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "elseOnSameLine",
			Help: "Place else, catch or while keyword in accordance with current style " +
				"(same or next line).",
			Options:       []string{"elseposition"},
			SharedOptions: []string{"allman", "linebreaks"},
		}),
	}
}

// Apply joins or splits the whitespace between "}" and the keyword that
// continues the statement. Comments between them pin the layout.
func (r *ElseOnSameLineRule) Apply(f *engine.Formatter) {
	opts := f.Options()
	nextLine := opts.ElsePosition == "next-line" || opts.Allman

	f.ForEachReverse(token.KeywordIn("else", "catch", "while"), func(i int, tok token.Token) {
		p := f.PrevCode(i)
		if p < 0 || !isScopeEnd(f.At(p), "}") || containsComment(f, p+1, i) {
			return
		}
		if tok.Text == "while" {
			open := f.StartOfScope(p)
			if open < 0 || !f.At(f.PrevCode(open)).IsKeyword("repeat") {
				return
			}
		}

		hasBreak := containsLinebreak(f, p+1, i)
		switch {
		case nextLine && !hasBreak:
			if !isFirstOnLine(f, p) {
				return
			}
			f.ReplaceRange(p+1, i, linebreakWithIndent(f, i, f.CurrentIndent(p)))
		case !nextLine && hasBreak:
			f.ReplaceRange(p+1, i, []token.Token{token.Space(" ")})
		}
	})
}

// EmptyBracesRule normalizes the whitespace inside empty braces.
type EmptyBracesRule struct {
	format.BaseRule
}

// NewEmptyBracesRule creates a new empty braces rule.
func NewEmptyBracesRule() *EmptyBracesRule {
	return &EmptyBracesRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:      "emptyBraces",
			Help:      "Remove whitespace inside empty braces.",
			Options:   []string{"emptybraces"},
			RunsAfter: []string{"blankLinesAtStartOfScope", "blankLinesAtEndOfScope"},
		}),
	}
}

// Apply replaces the whitespace between "{" and "}" with nothing, or with
// one space when emptybraces=spaced.
func (r *EmptyBracesRule) Apply(f *engine.Formatter) {
	var inner []token.Token
	if f.Options().EmptyBraces == "spaced" {
		inner = []token.Token{token.Space(" ")}
	}

	f.ForEachReverse(scopeToken(token.KindStartOfScope, "{"), func(i int, _ token.Token) {
		end := f.NextIndex(i, token.NonSpaceOrLinebreak)
		if end < 0 || !isScopeEnd(f.At(end), "}") {
			return
		}
		f.ReplaceRange(i+1, end, inner)
	})
}
