package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// AssertionFailuresRule rewrites always-failing assertions.
type AssertionFailuresRule struct {
	format.BaseRule
}

// NewAssertionFailuresRule creates a new assertion failures rule.
func NewAssertionFailuresRule() *AssertionFailuresRule {
	return &AssertionFailuresRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "assertionFailures",
			Help: "Change all instances of assert(false, ...) to assertionFailure(...) " +
				"and precondition(false, ...) to preconditionFailure(...).",
		}),
	}
}

var failureNames = map[string]string{
	"assert":       "assertionFailure",
	"precondition": "preconditionFailure",
}

// Apply replaces the call name and drops the false condition together with
// its comma and the space after it.
func (r *AssertionFailuresRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(identifierIn("assert", "precondition"), func(i int, tok token.Token) {
		if prev := f.At(f.PrevCode(i)); prev.IsOperator(".") || prev.IsKeyword("func") {
			return
		}
		open := i + 1
		if !isScopeStart(f.At(open), "(") {
			return
		}
		cond := f.NextCode(open)
		if !f.At(cond).IsKeyword("false") {
			return
		}

		after := f.NextCode(cond)
		var removeEnd int
		switch {
		case f.At(after).IsDelimiter(","):
			removeEnd = after + 1
			for f.At(removeEnd).IsSpace() {
				removeEnd++
			}
		case after == f.EndOfScope(open):
			removeEnd = after
		default:
			return
		}

		f.ApplyEdits([]engine.Edit{
			{Start: i, End: i + 1, Tokens: []token.Token{token.Identifier(failureNames[tok.Text])}},
			{Start: open + 1, End: removeEnd},
		})
	})
}

// YodaConditionsRule puts constants on the right-hand side of comparisons.
type YodaConditionsRule struct {
	format.BaseRule
}

// NewYodaConditionsRule creates a new yoda conditions rule.
func NewYodaConditionsRule() *YodaConditionsRule {
	return &YodaConditionsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:    "yodaConditions",
			Help:    "Prefer constant values to be on the right-hand-side of expressions.",
			Options: []string{"yodaswap"},
		}),
	}
}

var flippedComparisons = map[string]string{
	"==": "==", "!=": "!=", "===": "===", "!==": "!==",
	"<": ">", ">": "<", "<=": ">=", ">=": "<=",
}

// Apply swaps "0 == x" to "x == 0" when the comparison stands alone between
// expression boundaries. With yodaswap=literals-only, implicit member
// expressions such as ".none" are not treated as constants.
func (r *YodaConditionsRule) Apply(f *engine.Formatter) {
	literalsOnly := f.Options().YodaSwap == "literals-only"

	f.ForEachReverse(token.OfKind(token.KindOperator), func(i int, tok token.Token) {
		flipped, ok := flippedComparisons[tok.Text]
		if !ok || tok.Position != token.PositionInfix {
			return
		}
		lhsStart, lhsEnd, ok := constantBefore(f, i, literalsOnly)
		if !ok || !startsOperand(f, lhsStart) {
			return
		}
		rhsStart, rhsEnd, ok := operandAfter(f, i)
		if !ok || !endsOperand(f, rhsEnd) {
			return
		}

		all := f.Tokens()
		var toks []token.Token
		toks = append(toks, all[rhsStart:rhsEnd]...)
		for j := lhsEnd; j < rhsStart; j++ {
			if j == i {
				toks = append(toks, token.Operator(flipped, token.PositionInfix))
				continue
			}
			toks = append(toks, all[j])
		}
		toks = append(toks, all[lhsStart:lhsEnd]...)
		f.ReplaceRange(lhsStart, rhsEnd, toks)
	})
}

// constantBefore finds a constant operand ending just before the operator
// at i, with only spaces in between.
func constantBefore(f *engine.Formatter, i int, literalsOnly bool) (start, end int, ok bool) {
	p := f.PrevIndex(i, token.NonSpace)
	if p < 0 || p != f.PrevCode(i) {
		return 0, 0, false
	}
	tok := f.At(p)
	switch {
	case tok.Kind == token.KindNumber:
		start = p
		if sign := f.At(p - 1); sign.IsOperator("-") && sign.Position == token.PositionPrefix {
			start = p - 1
		}
	case tok.IsKeyword("true"), tok.IsKeyword("false"), tok.IsKeyword("nil"):
		start = p
	case isScopeEnd(tok, `"`):
		open := f.StartOfScope(p)
		if open < 0 || containsInterpolation(f, open, p) {
			return 0, 0, false
		}
		start = open
	case !literalsOnly && tok.IsIdentifier(""):
		dot := f.At(p - 1)
		if !dot.IsOperator(".") || dot.Position != token.PositionPrefix {
			return 0, 0, false
		}
		start = p - 1
	default:
		return 0, 0, false
	}
	return start, p + 1, true
}

func containsInterpolation(f *engine.Formatter, open, end int) bool {
	return f.NextWithin(open, end, func(t token.Token) bool { return t.IsStartOfScope() }) >= 0
}

// operandAfter finds a non-constant operand after the operator at i: an
// identifier chain with member accesses, calls, subscripts and optional
// chaining, with no whitespace inside.
func operandAfter(f *engine.Formatter, i int) (start, end int, ok bool) {
	start = f.NextIndex(i, token.NonSpace)
	if start < 0 || start != f.NextCode(i) {
		return 0, 0, false
	}
	first := f.At(start)
	if !first.IsIdentifier("") && !first.IsKeyword("self") && !first.IsKeyword("super") {
		return 0, 0, false
	}
	j := start
	for {
		next := f.At(j + 1)
		switch {
		case isScopeStart(next, "("), isScopeStart(next, "["):
			e := f.EndOfScope(j + 1)
			if e < 0 {
				return 0, 0, false
			}
			j = e
		case next.IsOperator(".") && f.At(j+2).IsIdentifierOrKeyword():
			j += 2
		case next.IsOperator("?") || next.IsOperator("!"):
			if next.Position != token.PositionPostfix {
				return start, j + 1, true
			}
			j++
		default:
			return start, j + 1, true
		}
	}
}

// startsOperand reports whether the token before i ends whatever precedes a
// standalone comparison.
func startsOperand(f *engine.Formatter, i int) bool {
	p := f.PrevCode(i)
	if p < 0 {
		return true
	}
	tok := f.At(p)
	switch {
	case isScopeStart(tok, "("), isScopeStart(tok, "["), isScopeStart(tok, "{"):
		return true
	case tok.IsDelimiter(","), tok.IsDelimiter(":"), tok.IsDelimiter(";"):
		return true
	case tok.IsKeyword("if"), tok.IsKeyword("while"), tok.IsKeyword("guard"),
		tok.IsKeyword("return"), tok.IsKeyword("where"), tok.IsKeyword("in"):
		return true
	case tok.IsOperator("&&"), tok.IsOperator("||"), tok.IsOperator("="):
		return tok.Position == token.PositionInfix
	}
	return false
}

// endsOperand reports whether the token at end closes a standalone
// comparison.
func endsOperand(f *engine.Formatter, end int) bool {
	next := f.NextIndex(end-1, token.NonSpace)
	if next < 0 {
		return true
	}
	tok := f.At(next)
	switch {
	case tok.IsLinebreak():
		return true
	case isScopeEnd(tok, ")"), isScopeEnd(tok, "]"), isScopeEnd(tok, "}"), isScopeStart(tok, "{"):
		return true
	case tok.IsDelimiter(","), tok.IsDelimiter(";"), tok.IsDelimiter(":"):
		return true
	case tok.IsKeyword("else"):
		return true
	case tok.IsOperator("&&"), tok.IsOperator("||"), tok.IsOperator("?"):
		return tok.Position == token.PositionInfix
	case tok.IsComment():
		return true
	}
	return false
}

// AcronymsRule capitalizes acronyms in identifiers.
type AcronymsRule struct {
	format.BaseRule
}

// NewAcronymsRule creates a new acronyms rule.
func NewAcronymsRule() *AcronymsRule {
	return &AcronymsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:    "acronyms",
			Help:    "Capitalize acronyms when the first character is capitalized.",
			Options: []string{"acronyms"},
			OptIn:   true,
		}),
	}
}

// Apply rewrites title-case acronyms such as "Id" in "userId" to "ID".
func (r *AcronymsRule) Apply(f *engine.Formatter) {
	acronyms := f.Options().Acronyms
	if len(acronyms) == 0 {
		return
	}
	f.ForEach(token.OfKind(token.KindIdentifier), func(i int, tok token.Token) {
		if text := CapitalizeAcronyms(tok.Text, acronyms); text != tok.Text {
			f.Replace(i, token.Identifier(text))
		}
	})
}

// CapitalizeAcronyms upper-cases every title-case occurrence of an acronym
// in word that ends at a word boundary: the end of the word, an upper-case
// letter, a digit, an underscore, or a plural "s" followed by one of those.
func CapitalizeAcronyms(word string, acronyms []string) string {
	for _, acronym := range acronyms {
		upper := strings.ToUpper(acronym)
		if utf8.RuneCountInString(upper) < 2 {
			continue
		}
		first, size := utf8.DecodeRuneInString(upper)
		title := string(first) + strings.ToLower(upper[size:])

		var sb strings.Builder
		rest := word
		for {
			idx := strings.Index(rest, title)
			if idx < 0 {
				sb.WriteString(rest)
				break
			}
			sb.WriteString(rest[:idx])
			after := rest[idx+len(title):]
			if isAcronymBoundary(after) {
				sb.WriteString(upper)
			} else {
				sb.WriteString(title)
			}
			rest = after
		}
		word = sb.String()
	}
	return word
}

func isAcronymBoundary(after string) bool {
	if after == "" {
		return true
	}
	r, size := utf8.DecodeRuneInString(after)
	if r == 's' {
		if size == len(after) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(after[size:])
	}
	return unicode.IsUpper(r) || unicode.IsDigit(r) || r == '_'
}
