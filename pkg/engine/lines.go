package engine

import (
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/swiftfmt/pkg/token"
)

// StartOfLine returns the index of the first token on i's line.
func (f *Formatter) StartOfLine(i int) int {
	return f.PrevIndex(i, token.IsLinebreakToken) + 1
}

// EndOfLine returns the index of the linebreak ending i's line, or Len()
// when the line is the last one without a linebreak.
func (f *Formatter) EndOfLine(i int) int {
	if f.At(i).IsLinebreak() {
		return i
	}
	if j := f.NextIndex(i, token.IsLinebreakToken); j >= 0 {
		return j
	}
	return len(f.tokens)
}

// LineNumber returns the 1-based line of token i.
func (f *Formatter) LineNumber(i int) int {
	line := 1
	for j := 0; j < min(i, len(f.tokens)); j++ {
		if f.tokens[j].IsLinebreak() {
			line++
		}
	}
	return line
}

// CurrentIndent returns the leading whitespace of i's line.
func (f *Formatter) CurrentIndent(i int) string {
	if tok := f.At(f.StartOfLine(i)); tok.IsSpace() {
		return tok.Text
	}
	return ""
}

// IsBlankLine reports whether i's line holds nothing but whitespace.
func (f *Formatter) IsBlankLine(i int) bool {
	for j := f.StartOfLine(i); j < f.EndOfLine(i); j++ {
		if !f.tokens[j].IsSpace() {
			return false
		}
	}
	return true
}

// LineLength returns the display width of tokens in [from, upTo), measured
// from column zero. Tabs advance to the next multiple of the tab width.
func (f *Formatter) LineLength(from, upTo int) int {
	tabWidth := max(f.opts.TabWidth, 1)
	col := 0
	for j := max(from, 0); j < min(upTo, len(f.tokens)); j++ {
		for _, r := range f.tokens[j].Text {
			switch r {
			case '\t':
				col += tabWidth - col%tabWidth
			case '\r', '\n':
			default:
				col += runewidth.RuneWidth(r)
			}
		}
	}
	return col
}

// LineWidth returns the display width of i's whole line.
func (f *Formatter) LineWidth(i int) int {
	return f.LineLength(f.StartOfLine(i), f.EndOfLine(i))
}

// LinebreakToken returns the linebreak to insert near i.
func (f *Formatter) LinebreakToken(int) token.Token {
	return token.Linebreak(f.opts.Linebreak())
}
