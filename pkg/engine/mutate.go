package engine

import (
	"slices"

	"github.com/yaklabco/swiftfmt/pkg/token"
)

// Insert inserts toks before index i.
func (f *Formatter) Insert(i int, toks ...token.Token) {
	if len(toks) == 0 {
		return
	}
	i = min(max(i, 0), len(f.tokens))
	f.record(i)
	f.tokens = slices.Insert(f.tokens, i, toks...)
	f.directives.shiftInsert(i, len(toks))
	f.revision++
}

// InsertToken inserts a single token before index i.
func (f *Formatter) InsertToken(i int, tok token.Token) {
	f.Insert(i, tok)
}

// InsertSpace inserts a space token with the given text before i.
func (f *Formatter) InsertSpace(i int, text string) {
	f.Insert(i, token.Space(text))
}

// InsertLinebreak inserts the configured linebreak before i.
func (f *Formatter) InsertLinebreak(i int) {
	f.Insert(i, f.LinebreakToken(i))
}

// Remove deletes the token at i.
func (f *Formatter) Remove(i int) {
	f.RemoveRange(i, i+1)
}

// RemoveRange deletes tokens in [start, end).
func (f *Formatter) RemoveRange(start, end int) {
	start, end = max(start, 0), min(end, len(f.tokens))
	if start >= end {
		return
	}
	f.record(start)
	f.tokens = slices.Delete(f.tokens, start, end)
	f.directives.shiftRemove(start, end)
	f.shiftCursors(start, end)
	f.revision++
}

// Replace swaps the token at i for tok.
func (f *Formatter) Replace(i int, tok token.Token) {
	if i < 0 || i >= len(f.tokens) || f.tokens[i] == tok {
		return
	}
	f.record(i)
	f.tokens[i] = tok
	f.revision++
}

// ReplaceRange replaces tokens in [start, end) with toks.
func (f *Formatter) ReplaceRange(start, end int, toks []token.Token) {
	start, end = max(start, 0), min(end, len(f.tokens))
	if start > end {
		return
	}
	if slices.Equal(f.tokens[start:end], toks) {
		return
	}
	f.record(start)
	f.tokens = slices.Replace(f.tokens, start, end, toks...)
	switch delta := len(toks) - (end - start); {
	case delta > 0:
		f.directives.shiftInsert(end, delta)
	case delta < 0:
		f.directives.shiftRemove(start+len(toks), end)
		f.shiftCursors(start+len(toks), end)
	}
	f.revision++
}

// RemoveTrailingSpace removes a space token directly before i, which is
// normally a linebreak. It reports whether a token was removed.
func (f *Formatter) RemoveTrailingSpace(i int) bool {
	if !f.At(i - 1).IsSpace() {
		return false
	}
	f.Remove(i - 1)
	return true
}

func (f *Formatter) record(i int) {
	if !f.trackChanges {
		return
	}
	line := f.LineNumber(i)
	if n := len(f.changes); n > 0 && f.changes[n-1] == (Change{Rule: f.rule, Line: line}) {
		return
	}
	f.changes = append(f.changes, Change{Rule: f.rule, Line: line})
}

// Edit replaces tokens in [Start, End) with Tokens.
type Edit struct {
	Start  int
	End    int
	Tokens []token.Token
}

// ApplyEdits applies edits captured against the current buffer in one
// right-to-left sweep, so earlier indexes stay valid. Overlapping edits are
// an invariant violation.
func (f *Formatter) ApplyEdits(edits []Edit) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int { return b.Start - a.Start })
	for n, e := range sorted {
		if n > 0 && e.End > sorted[n-1].Start {
			f.Fatal(e.Start, "overlapping edits at %d and %d", e.Start, sorted[n-1].Start)
		}
		f.ReplaceRange(e.Start, e.End, e.Tokens)
	}
}
