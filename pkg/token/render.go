package token

import "strings"

// Render concatenates token text. It is the exact inverse of Tokenize.
func Render(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// RenderRange renders tokens[start:end], clamped to the slice bounds.
func RenderRange(tokens []Token, start, end int) string {
	start = max(start, 0)
	end = min(end, len(tokens))
	if start >= end {
		return ""
	}
	return Render(tokens[start:end])
}
