package engine

import "github.com/yaklabco/swiftfmt/pkg/token"

// ForEach calls fn for every token matching m, left to right, skipping
// positions where the current rule is disabled. fn may mutate the buffer:
// removals at or before i keep the loop on the next unvisited token, and
// tokens inserted after i are visited.
func (f *Formatter) ForEach(m token.Matcher, fn func(i int, tok token.Token)) {
	// The cursor is not popped when fn panics, so Recover can report the
	// position the rule was visiting.
	f.cursors = append(f.cursors, 0)
	depth := len(f.cursors) - 1

	for ; f.cursors[depth] < len(f.tokens); f.cursors[depth]++ {
		i := f.cursors[depth]
		tok := f.tokens[i]
		if !m(tok) || !f.IsEnabled(i) {
			continue
		}
		fn(i, tok)
	}
	f.cursors = f.cursors[:depth]
}

// shiftCursors keeps active ForEach loops aligned after [start, end) is
// removed. A loop whose current token was removed resumes at start.
func (f *Formatter) shiftCursors(start, end int) {
	for n, c := range f.cursors {
		switch {
		case c >= end:
			f.cursors[n] = c - (end - start)
		case c >= start:
			f.cursors[n] = start - 1
		}
	}
}

// ForEachReverse is ForEach from the last token to the first. fn may mutate
// tokens at or after i, and remove tokens before i.
func (f *Formatter) ForEachReverse(m token.Matcher, fn func(i int, tok token.Token)) {
	for i := len(f.tokens) - 1; i >= 0; i-- {
		if i >= len(f.tokens) {
			continue
		}
		tok := f.tokens[i]
		if !m(tok) || !f.IsEnabled(i) {
			continue
		}
		fn(i, tok)
	}
}

// ForEachToken visits tokens whose text is text.
func (f *Formatter) ForEachToken(text string, fn func(i int, tok token.Token)) {
	f.ForEach(token.TextIs(text), fn)
}

// ForEachKind visits tokens of the given kind.
func (f *Formatter) ForEachKind(kind token.Kind, fn func(i int, tok token.Token)) {
	f.ForEach(token.OfKind(kind), fn)
}
