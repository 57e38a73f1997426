package engine

import "github.com/yaklabco/swiftfmt/pkg/token"

// NextIndex returns the first index after i whose token matches m, or -1.
// The scan ignores scope structure.
func (f *Formatter) NextIndex(i int, m token.Matcher) int {
	for j := max(i+1, 0); j < len(f.tokens); j++ {
		if m(f.tokens[j]) {
			return j
		}
	}
	return -1
}

// PrevIndex returns the last index before i whose token matches m, or -1.
func (f *Formatter) PrevIndex(i int, m token.Matcher) int {
	for j := min(i-1, len(f.tokens)-1); j >= 0; j-- {
		if m(f.tokens[j]) {
			return j
		}
	}
	return -1
}

// NextWithin searches (i, limit) for a match, or -1.
func (f *Formatter) NextWithin(i, limit int, m token.Matcher) int {
	limit = min(limit, len(f.tokens))
	for j := max(i+1, 0); j < limit; j++ {
		if m(f.tokens[j]) {
			return j
		}
	}
	return -1
}

// PrevWithin searches [limit, i) backwards for a match, or -1.
func (f *Formatter) PrevWithin(i, limit int, m token.Matcher) int {
	limit = max(limit, 0)
	for j := min(i-1, len(f.tokens)-1); j >= limit; j-- {
		if m(f.tokens[j]) {
			return j
		}
	}
	return -1
}

// Next returns the first match after i within the scope enclosing i. Nested
// scopes are skipped whole, and the scan stops at the enclosing scope's end.
func (f *Formatter) Next(i int, m token.Matcher) int {
	for j := max(i+1, 0); j < len(f.tokens); j++ {
		tok := f.tokens[j]
		if m(tok) {
			return j
		}
		switch tok.Kind {
		case token.KindStartOfScope:
			end := f.EndOfScope(j)
			if end < 0 {
				return -1
			}
			if tok.Text == "//" {
				// the closing linebreak belongs to the enclosing scope
				end--
			}
			j = end
		case token.KindEndOfScope:
			return -1
		}
	}
	return -1
}

// Prev returns the last match before i within the scope enclosing i.
func (f *Formatter) Prev(i int, m token.Matcher) int {
	for j := min(i-1, len(f.tokens)-1); j >= 0; j-- {
		tok := f.tokens[j]
		if m(tok) {
			return j
		}
		switch tok.Kind {
		case token.KindEndOfScope:
			start := f.StartOfScope(j)
			if start < 0 {
				return -1
			}
			j = start
		case token.KindStartOfScope:
			if tok.Text == "//" {
				continue
			}
			return -1
		}
	}
	return -1
}

// NextToken is Next returning the matched token as well.
func (f *Formatter) NextToken(i int, m token.Matcher) (int, token.Token) {
	j := f.Next(i, m)
	return j, f.At(j)
}

// PrevToken is Prev returning the matched token as well.
func (f *Formatter) PrevToken(i int, m token.Matcher) (int, token.Token) {
	j := f.Prev(i, m)
	return j, f.At(j)
}

// NextCode returns the next non-whitespace, non-comment token index after i.
func (f *Formatter) NextCode(i int) int {
	return f.NextIndex(i, token.NonSpaceOrCommentOrLinebreak)
}

// PrevCode returns the previous non-whitespace, non-comment token index before i.
func (f *Formatter) PrevCode(i int) int {
	return f.PrevIndex(i, token.NonSpaceOrCommentOrLinebreak)
}

// EndOfScope returns the index of the token closing the scope opened at i.
// When i is not a start of scope, it returns the end of the scope enclosing
// i. A "//" scope ends at its linebreak. The result is -1 when the scope is
// still open at the end of the buffer.
func (f *Formatter) EndOfScope(i int) int {
	tok, ok := f.Token(i)
	if !ok {
		return -1
	}
	switch tok.Kind {
	case token.KindStartOfScope:
		return f.matchForward(i)
	case token.KindEndOfScope:
		return i
	}
	start := f.StartOfScope(i)
	if start < 0 {
		return -1
	}
	return f.matchForward(start)
}

func (f *Formatter) matchForward(start int) int {
	open := f.tokens[start]
	var stack []token.Token
	for j := start + 1; j < len(f.tokens); j++ {
		tok := f.tokens[j]
		if len(stack) == 0 && tok.IsEndOfScopeFor(open) {
			return j
		}
		switch tok.Kind {
		case token.KindStartOfScope:
			stack = append(stack, tok)
		case token.KindLinebreak:
			if n := len(stack); n > 0 && stack[n-1].Text == "//" {
				stack = stack[:n-1]
			}
		case token.KindEndOfScope:
			n := len(stack)
			if n == 0 {
				f.Fatal(j, "unexpected %s closing %s", tok.Text, open.Text)
			}
			if !tok.IsEndOfScopeFor(stack[n-1]) {
				f.Fatal(j, "unexpected %s closing %s", tok.Text, stack[n-1].Text)
			}
			stack = stack[:n-1]
		}
	}
	return -1
}

// StartOfScope returns i when it opens a scope, the matching start when i
// closes one, and otherwise the start of the innermost scope enclosing i.
// It is -1 at the top level.
func (f *Formatter) StartOfScope(i int) int {
	tok, ok := f.Token(i)
	if !ok {
		return -1
	}
	if tok.IsStartOfScope() {
		return i
	}

	var stack []token.Token
	if tok.IsEndOfScope() {
		stack = append(stack, tok)
	}
	crossedLine := false
	for j := i - 1; j >= 0; j-- {
		t := f.tokens[j]
		switch t.Kind {
		case token.KindLinebreak:
			crossedLine = true
		case token.KindEndOfScope:
			stack = append(stack, t)
		case token.KindStartOfScope:
			if t.Text == "//" {
				if crossedLine || len(stack) > 0 {
					continue
				}
				return j
			}
			n := len(stack)
			if n == 0 {
				return j
			}
			if !stack[n-1].IsEndOfScopeFor(t) {
				f.Fatal(j, "%s does not close %s", stack[n-1].Text, t.Text)
			}
			stack = stack[:n-1]
			if n == 1 && tok.IsEndOfScope() {
				return j
			}
		}
	}
	return -1
}

// IsScopeBalanced verifies that every end of scope closes the innermost open
// scope and that no scope is left open. On failure it returns the index of
// the offending token. A trailing "//" comment without a linebreak is allowed.
func (f *Formatter) IsScopeBalanced() (int, bool) {
	var stack []int
	for j, tok := range f.tokens {
		switch tok.Kind {
		case token.KindStartOfScope:
			stack = append(stack, j)
		case token.KindLinebreak:
			if n := len(stack); n > 0 && f.tokens[stack[n-1]].Text == "//" {
				stack = stack[:n-1]
			}
		case token.KindEndOfScope:
			n := len(stack)
			if n == 0 || !tok.IsEndOfScopeFor(f.tokens[stack[n-1]]) {
				return j, false
			}
			stack = stack[:n-1]
		}
	}
	if n := len(stack); n > 0 {
		if n == 1 && f.tokens[stack[0]].Text == "//" {
			return -1, true
		}
		return stack[n-1], false
	}
	return -1, true
}

// IsInsideString reports whether i lies within a string literal.
func (f *Formatter) IsInsideString(i int) bool {
	if f.At(i).IsStringDelimiter() {
		return false
	}
	start := f.StartOfScope(i)
	return start >= 0 && f.tokens[start].IsStringDelimiter()
}
