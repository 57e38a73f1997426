package declaration

import (
	"slices"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// Parse groups the whole buffer into top-level declarations.
func Parse(f *engine.Formatter) []*Declaration {
	p := parser{f: f}
	return p.parseRange(0, f.Len())
}

type parser struct {
	f *engine.Formatter
}

func (p *parser) parseRange(start, end int) []*Declaration {
	var decls []*Declaration
	i := start
	for i < end {
		first := p.f.NextWithin(i-1, end, token.NonSpaceOrCommentOrLinebreak)
		if first < 0 {
			break
		}
		parsed := p.parseDeclaration(i, first, end)
		if len(parsed) == 0 || parsed[len(parsed)-1].Range.End <= i {
			break
		}
		decls = append(decls, parsed...)
		i = parsed[len(parsed)-1].Range.End
	}
	return decls
}

// parseDeclaration parses the declaration whose leading trivia starts at
// start and whose first code token is first.
func (p *parser) parseDeclaration(start, first, end int) []*Declaration {
	f := p.f
	if tok := f.At(first); tok.IsStartOfScope() && tok.Text == "#if" {
		return []*Declaration{p.parseConditional(start, first, end)}
	}

	modifiers, k := p.parseModifiers(first, end)
	kw := f.At(k)
	d := &Declaration{f: f, Modifiers: modifiers, KeywordIndex: k}
	stmtEnd := p.endOfStatement(k, end)
	d.Range = Range{Start: start, End: stmtEnd}

	switch {
	case p.isTypeKeyword(k, end):
		brace := p.next(k, stmtEnd, token.Is(token.StartOfScope("{")))
		closing := -1
		if brace >= 0 {
			closing = f.EndOfScope(brace)
		}
		if closing < 0 || closing >= end {
			d.Keyword = kw.Text
			d.Name = p.typeName(k, stmtEnd)
			return []*Declaration{d}
		}
		d.Kind = Type
		d.Keyword = kw.Text
		d.Name = p.typeName(k, brace)
		d.Conformances = p.conformances(k, brace)
		bodyStart := brace + 1
		if eol := f.EndOfLine(brace); eol < closing && f.NextWithin(brace, eol, token.NonSpace) < 0 {
			bodyStart = eol + 1
		}
		d.BodyRange = Range{Start: bodyStart, End: closing}
		d.Body = p.parseRange(bodyStart, closing)
		return []*Declaration{d}

	case p.isSimpleKeyword(k, end):
		d.Keyword = kw.Text
		d.Name = p.simpleName(k, stmtEnd)
		if d.Keyword == "let" || d.Keyword == "var" {
			return p.splitShared(d, k, stmtEnd)
		}
		return []*Declaration{d}
	}

	return []*Declaration{d}
}

// parseModifiers collects attributes and modifiers starting at first and
// returns them with the index of the token that follows.
func (p *parser) parseModifiers(first, end int) ([]string, int) {
	f := p.f
	var mods []string
	i := first
	for i >= 0 && i < end {
		tok := f.At(i)
		var text string
		switch {
		case tok.IsAttribute():
			text = tok.Text
		case tok.IsIdentifierOrKeyword() && IsModifier(tok.Text):
			if tok.Text == "class" && !p.startsDeclaration(f.NextCode(i), end) {
				return mods, i
			}
			text = tok.Text
		default:
			return mods, i
		}
		last := i
		// arguments such as @available(iOS 13, *) or private(set)
		if next := f.At(i + 1); next.IsStartOfScope() && next.Text == "(" {
			if closing := f.EndOfScope(i + 1); closing >= 0 && closing < end {
				text += strings.Join(strings.Fields(f.Text(i+1, closing+1)), "")
				last = closing
			}
		}
		mods = append(mods, text)
		next := f.NextWithin(last, end, token.NonSpaceOrCommentOrLinebreak)
		if next < 0 {
			return mods, last
		}
		i = next
	}
	return mods, first
}

// startsDeclaration reports whether i begins a declaration keyword or modifier.
func (p *parser) startsDeclaration(i, end int) bool {
	tok := p.f.At(i)
	if !tok.IsIdentifierOrKeyword() {
		return false
	}
	return IsModifier(tok.Text) || p.isTypeKeyword(i, end) || p.isSimpleKeyword(i, end)
}

func (p *parser) isTypeKeyword(i, end int) bool {
	tok := p.f.At(i)
	if !slices.Contains(TypeKeywords, tok.Text) {
		return false
	}
	if tok.IsKeyword("") {
		return true
	}
	// contextual keywords such as actor must be followed by a name
	return tok.IsIdentifier("") && p.f.At(p.nextCodeWithin(i, end)).IsIdentifier("")
}

func (p *parser) isSimpleKeyword(i, end int) bool {
	tok := p.f.At(i)
	if !slices.Contains(SimpleKeywords, tok.Text) {
		return false
	}
	if tok.IsKeyword("") {
		return true
	}
	return tok.IsIdentifier("") && p.f.At(p.nextCodeWithin(i, end)).IsIdentifier("")
}

func (p *parser) nextCodeWithin(i, end int) int {
	return p.f.NextWithin(i, end, token.NonSpaceOrCommentOrLinebreak)
}

// next finds a match in [from, to), stepping over nested scopes.
func (p *parser) next(from, to int, m token.Matcher) int {
	f := p.f
	for k := from; k < to; k++ {
		tok := f.At(k)
		if m(tok) {
			return k
		}
		if tok.IsStartOfScope() && tok.Text != "//" {
			e := f.EndOfScope(k)
			if e < 0 {
				return -1
			}
			k = e
		}
	}
	return -1
}

// endOfStatement returns the index after the linebreak that ends the
// statement starting at k, or end when the statement runs to the bound.
func (p *parser) endOfStatement(k, end int) int {
	f := p.f
	for i := k; i < end; i++ {
		tok := f.At(i)
		switch {
		case tok.IsStartOfScope():
			e := f.EndOfScope(i)
			if e < 0 || e >= end {
				return end
			}
			if tok.Text == "//" {
				e--
			}
			i = e
		case tok.IsLinebreak():
			if !p.continues(i, end) {
				return i + 1
			}
		}
	}
	return end
}

var continuationKeywords = []string{"where", "else", "catch", "throws", "rethrows", "async", "in", "as", "is"}

// continues reports whether the statement goes on past the linebreak at i.
func (p *parser) continues(i, end int) bool {
	f := p.f
	next := p.nextCodeWithin(i, end)
	if next < 0 {
		return false
	}
	prev := f.At(f.PrevCode(i))
	switch {
	case prev.IsOperator("") && prev.Position == token.PositionInfix:
		return true
	case prev.IsDelimiter(",") || prev.IsDelimiter(":"):
		return true
	case prev.IsAttribute():
		return true
	}

	nextTok := f.At(next)
	switch {
	case nextTok.IsOperator("."):
		return true
	case nextTok.IsOperator("") && nextTok.Position == token.PositionInfix:
		return true
	case nextTok.IsDelimiter(",") || nextTok.IsDelimiter(":"):
		return true
	case nextTok.IsStartOfScope() && nextTok.Text == "{":
		return !prev.IsEndOfScope() || prev.Text == ")"
	case nextTok.IsIdentifierOrKeyword() && slices.Contains(continuationKeywords, nextTok.Text):
		return true
	}
	return false
}

func (p *parser) parseConditional(start, first, end int) *Declaration {
	f := p.f
	d := &Declaration{f: f, Kind: Conditional, Keyword: "#if", KeywordIndex: first}
	closing := f.EndOfScope(first)
	if closing < 0 || closing >= end {
		d.Range = Range{Start: start, End: end}
		return d
	}

	directives := []int{first}
	for i := first; ; {
		i = f.Next(i, token.KeywordIn("#elseif", "#else"))
		if i < 0 || i >= closing {
			break
		}
		directives = append(directives, i)
	}
	directives = append(directives, closing)

	for n := 0; n < len(directives)-1; n++ {
		dir, next := directives[n], directives[n+1]
		bodyStart := min(f.EndOfLine(dir)+1, next)
		b := Branch{
			Directive: f.At(dir).Text,
			Range:     Range{Start: dir, End: next},
			Body:      p.parseRange(bodyStart, next),
		}
		d.Branches = append(d.Branches, b)
	}

	stop := end
	if eol := f.EndOfLine(closing); eol < end {
		stop = eol + 1
	}
	d.Range = Range{Start: start, End: stop}
	return d
}

// typeName reads the (possibly dotted) name after a type keyword.
func (p *parser) typeName(k, limit int) string {
	f := p.f
	var sb strings.Builder
	for i := p.nextCodeWithin(k, limit); i >= 0 && i < limit; i++ {
		tok := f.At(i)
		if tok.IsIdentifierOrKeyword() || tok.IsOperator(".") {
			sb.WriteString(tok.Text)
			continue
		}
		break
	}
	return sb.String()
}

// conformances lists the comma separated types after ":" in a type header.
func (p *parser) conformances(k, brace int) []string {
	f := p.f
	colon := p.next(k, brace, token.Is(token.Delimiter(":")))
	if colon < 0 {
		return nil
	}
	stop := p.next(colon, brace, token.Is(token.Keyword("where")))
	if stop < 0 {
		stop = brace
	}
	var out []string
	itemStart := colon + 1
	for {
		comma := p.next(itemStart, stop, token.Is(token.Delimiter(",")))
		itemEnd := comma
		if comma < 0 {
			itemEnd = stop
		}
		if item := strings.Join(strings.Fields(f.Text(itemStart, itemEnd)), " "); item != "" {
			out = append(out, item)
		}
		if comma < 0 {
			return out
		}
		itemStart = comma + 1
	}
}

func (p *parser) simpleName(k, limit int) string {
	f := p.f
	kw := f.At(k).Text
	switch kw {
	case "init", "deinit", "subscript":
		return kw
	case "import":
		var sb strings.Builder
		for i := p.nextCodeWithin(k, limit); i >= 0 && i < limit; i++ {
			tok := f.At(i)
			if tok.IsLinebreak() || tok.IsComment() {
				break
			}
			if tok.IsKeyword("") && sb.Len() == 0 {
				continue // import kind, as in "import struct Foo.Bar"
			}
			if !tok.IsSpace() {
				sb.WriteString(tok.Text)
			}
		}
		return sb.String()
	}
	i := p.nextCodeWithin(k, limit)
	if i < 0 {
		return ""
	}
	switch tok := f.At(i); {
	case tok.IsIdentifierOrKeyword(), tok.IsOperator(""):
		return tok.Text
	}
	return ""
}

// splitShared splits "let a = 1, b = 2" into sibling declarations.
func (p *parser) splitShared(d *Declaration, k, stmtEnd int) []*Declaration {
	var commas []int
	for i := k; ; {
		i = p.next(i+1, stmtEnd, token.Is(token.Delimiter(",")))
		if i < 0 {
			break
		}
		commas = append(commas, i)
	}
	if len(commas) == 0 {
		return []*Declaration{d}
	}

	out := make([]*Declaration, 0, len(commas)+1)
	start := d.Range.Start
	for n := 0; n <= len(commas); n++ {
		sib := *d
		sib.SharedIntroducer = true
		sib.Modifiers = slices.Clone(d.Modifiers)
		if n > 0 {
			sib.Name = p.simpleName(commas[n-1], stmtEnd)
		}
		end := stmtEnd
		if n < len(commas) {
			end = commas[n] + 1
		}
		sib.Range = Range{Start: start, End: end}
		out = append(out, &sib)
		start = end
	}
	return out
}
