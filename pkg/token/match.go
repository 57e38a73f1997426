package token

// Matcher selects tokens during buffer searches.
type Matcher func(Token) bool

// Common token-class matchers.
var (
	// Any matches every token.
	Any Matcher = func(Token) bool { return true }

	// NonSpace matches anything but horizontal whitespace.
	NonSpace Matcher = func(t Token) bool { return !t.IsSpace() }

	// NonSpaceOrLinebreak matches anything but whitespace.
	NonSpaceOrLinebreak Matcher = func(t Token) bool { return !t.IsSpaceOrLinebreak() }

	// NonSpaceOrComment matches anything but spaces and comments.
	NonSpaceOrComment Matcher = func(t Token) bool { return !t.IsSpaceOrComment() }

	// NonSpaceOrCommentOrLinebreak matches code tokens.
	NonSpaceOrCommentOrLinebreak Matcher = func(t Token) bool { return !t.IsSpaceOrCommentOrLinebreak() }

	// IsLinebreakToken matches linebreaks.
	IsLinebreakToken Matcher = func(t Token) bool { return t.IsLinebreak() }
)

// Is matches tokens equal to want.
func Is(want Token) Matcher {
	return func(t Token) bool { return t == want }
}

// OfKind matches tokens of the given kind.
func OfKind(kind Kind) Matcher {
	return func(t Token) bool { return t.Kind == kind }
}

// KeywordIn matches keyword tokens whose text is in words.
func KeywordIn(words ...string) Matcher {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return func(t Token) bool {
		if t.Kind != KindKeyword {
			return false
		}
		_, ok := set[t.Text]
		return ok
	}
}

// TextIs matches any token with the given text, regardless of kind.
func TextIs(text string) Matcher {
	return func(t Token) bool { return t.Text == text }
}

// Not inverts a matcher.
func Not(m Matcher) Matcher {
	return func(t Token) bool { return !m(t) }
}
