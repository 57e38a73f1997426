package rules

import (
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// SpaceAroundOperatorsRule puts single spaces around infix operators.
type SpaceAroundOperatorsRule struct {
	format.BaseRule
}

// NewSpaceAroundOperatorsRule creates a new space around operators rule.
func NewSpaceAroundOperatorsRule() *SpaceAroundOperatorsRule {
	return &SpaceAroundOperatorsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:    "spaceAroundOperators",
			Help:    "Add or remove space around operators or delimiters.",
			Options: []string{"ranges"},
		}),
	}
}

func isRangeOperator(text string) bool {
	return text == "..." || text == "..<"
}

// Apply inserts a space on each side of an infix operator that touches an
// operand. Range operators lose their spaces when ranges=no-space.
func (r *SpaceAroundOperatorsRule) Apply(f *engine.Formatter) {
	noSpaceRanges := f.Options().Ranges == "no-space"

	var edits []engine.Edit
	f.ForEach(token.OfKind(token.KindOperator), func(i int, tok token.Token) {
		if tok.Position != token.PositionInfix || tok.Text == "." {
			return
		}
		prev, next := f.At(i-1), f.At(i+1)

		if noSpaceRanges && isRangeOperator(tok.Text) {
			if prev.IsSpace() && !isFirstOnLine(f, i-1) && f.At(i-2).IsLvalue() {
				edits = append(edits, engine.Edit{Start: i - 1, End: i})
			}
			if next.IsSpace() && !isLinebreakOrEOF(f, i+2) && f.At(i+2).IsRvalue() {
				edits = append(edits, engine.Edit{Start: i + 1, End: i + 2})
			}
			return
		}

		if touchesOperand(prev) && !prev.IsStartOfScope() {
			edits = append(edits, engine.Edit{Start: i, End: i, Tokens: []token.Token{token.Space(" ")}})
		}
		if touchesOperand(next) && !next.IsEndOfScope() {
			edits = append(edits, engine.Edit{Start: i + 1, End: i + 1, Tokens: []token.Token{token.Space(" ")}})
		}
	})
	f.ApplyEdits(edits)
}

// touchesOperand reports whether a neighbor of an operator sits directly
// against it and should be separated by a space.
func touchesOperand(t token.Token) bool {
	if !t.IsValid() || t.IsSpaceOrLinebreak() || t.IsDelimiter("") {
		return false
	}
	return !t.IsComment()
}

// SpaceInsideBracesRule adds a space inside braces that hold code on one
// line.
type SpaceInsideBracesRule struct {
	format.BaseRule
}

// NewSpaceInsideBracesRule creates a new space inside braces rule.
func NewSpaceInsideBracesRule() *SpaceInsideBracesRule {
	return &SpaceInsideBracesRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:      "spaceInsideBraces",
			Help:      "Add space inside curly braces.",
			RunsAfter: []string{"emptyBraces"},
		}),
	}
}

// Apply inserts a space after "{" and before "}" when code touches them.
// Empty braces are left to emptyBraces.
func (r *SpaceInsideBracesRule) Apply(f *engine.Formatter) {
	var edits []engine.Edit
	f.ForEach(scopeToken(token.KindStartOfScope, "{"), func(i int, _ token.Token) {
		next := f.At(i + 1)
		if !next.IsValid() || next.IsSpaceOrLinebreak() || isScopeEnd(next, "}") {
			return
		}
		edits = append(edits, engine.Edit{Start: i + 1, End: i + 1, Tokens: []token.Token{token.Space(" ")}})
	})
	f.ForEach(scopeToken(token.KindEndOfScope, "}"), func(i int, _ token.Token) {
		prev := f.At(i - 1)
		if !prev.IsValid() || prev.IsSpaceOrLinebreak() || isScopeStart(prev, "{") {
			return
		}
		edits = append(edits, engine.Edit{Start: i, End: i, Tokens: []token.Token{token.Space(" ")}})
	})
	f.ApplyEdits(edits)
}

// SpaceInsideParensRule removes spaces just inside parentheses.
type SpaceInsideParensRule struct {
	format.BaseRule
}

// NewSpaceInsideParensRule creates a new space inside parens rule.
func NewSpaceInsideParensRule() *SpaceInsideParensRule {
	return &SpaceInsideParensRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "spaceInsideParens",
			Help: "Remove space inside parentheses.",
		}),
	}
}

// Apply removes the inner spaces of "( a )".
func (r *SpaceInsideParensRule) Apply(f *engine.Formatter) {
	removeInnerSpaces(f, "(", ")")
}

// SpaceInsideBracketsRule removes spaces just inside square brackets.
type SpaceInsideBracketsRule struct {
	format.BaseRule
}

// NewSpaceInsideBracketsRule creates a new space inside brackets rule.
func NewSpaceInsideBracketsRule() *SpaceInsideBracketsRule {
	return &SpaceInsideBracketsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "spaceInsideBrackets",
			Help: "Remove space inside square brackets.",
		}),
	}
}

// Apply removes the inner spaces of "[ a ]".
func (r *SpaceInsideBracketsRule) Apply(f *engine.Formatter) {
	removeInnerSpaces(f, "[", "]")
}

// removeInnerSpaces deletes a space after open or before closer when both
// sides of the space are on the same line and neither is a comment.
func removeInnerSpaces(f *engine.Formatter, open, closer string) {
	var edits []engine.Edit
	f.ForEach(scopeToken(token.KindStartOfScope, open), func(i int, _ token.Token) {
		if !f.At(i + 1).IsSpace() {
			return
		}
		after := f.At(i + 2)
		if !after.IsValid() || after.IsLinebreak() || after.IsComment() {
			return
		}
		edits = append(edits, engine.Edit{Start: i + 1, End: i + 2})
	})
	f.ForEach(scopeToken(token.KindEndOfScope, closer), func(i int, _ token.Token) {
		if !f.At(i - 1).IsSpace() {
			return
		}
		before := f.At(i - 2)
		if !before.IsValid() || before.IsLinebreak() || before.IsComment() || isScopeStart(before, open) {
			return
		}
		edits = append(edits, engine.Edit{Start: i - 1, End: i})
	})
	f.ApplyEdits(edits)
}
