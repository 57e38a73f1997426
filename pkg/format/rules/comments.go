package rules

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// SpaceInsideCommentsRule adds a space after comment openers and before
// block comment closers.
type SpaceInsideCommentsRule struct {
	format.BaseRule
}

// NewSpaceInsideCommentsRule creates a new space inside comments rule.
func NewSpaceInsideCommentsRule() *SpaceInsideCommentsRule {
	return &SpaceInsideCommentsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "spaceInsideComments",
			Help: "Add leading and/or trailing space inside comments.",
		}),
	}
}

// commentMarkers extend a comment opener: "///" and "/**" doc comments, "//!"
// and "//:" playground markup.
const commentMarkers = "/*!:"

// Apply turns "//foo" into "// foo", "///foo" into "/// foo" and "/*foo*/"
// into "/* foo */". Separator lines made only of marker characters are kept.
func (r *SpaceInsideCommentsRule) Apply(f *engine.Formatter) {
	var edits []engine.Edit
	f.ForEach(scopeToken(token.KindStartOfScope, "//", "/*"), func(i int, _ token.Token) {
		body := f.At(i + 1)
		if body.Kind != token.KindCommentBody {
			return
		}
		text := body.Text
		if strings.Trim(text, commentMarkers) == "" {
			return
		}
		if strings.ContainsRune(commentMarkers, rune(text[0])) {
			rest := text[1:]
			if rest == "" || rest[0] == ' ' || strings.ContainsRune(commentMarkers, rune(rest[0])) {
				return
			}
			edits = append(edits, engine.Edit{
				Start: i + 1, End: i + 2,
				Tokens: []token.Token{token.CommentBody(text[:1] + " " + rest)},
			})
			return
		}
		edits = append(edits, engine.Edit{Start: i + 1, End: i + 1, Tokens: []token.Token{token.Space(" ")}})
	})
	f.ForEach(scopeToken(token.KindEndOfScope, "*/"), func(i int, _ token.Token) {
		body := f.At(i - 1)
		if body.Kind != token.KindCommentBody || strings.HasSuffix(body.Text, "*") {
			return
		}
		edits = append(edits, engine.Edit{Start: i, End: i, Tokens: []token.Token{token.Space(" ")}})
	})
	f.ApplyEdits(edits)
}

// TodosRule normalizes TODO, MARK and FIXME comments.
type TodosRule struct {
	format.BaseRule
}

// NewTodosRule creates a new todos rule.
func NewTodosRule() *TodosRule {
	return &TodosRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:      "todos",
			Help:      "Use correct formatting for TODO:, MARK: or FIXME: comments.",
			RunsAfter: []string{"spaceInsideComments"},
		}),
	}
}

var todoTags = []string{"TODO", "MARK", "FIXME"}

// Apply rewrites comment bodies such as "TODO foo" and "MARK - Section" to
// "TODO: foo" and "MARK: - Section".
func (r *TodosRule) Apply(f *engine.Formatter) {
	f.ForEach(token.OfKind(token.KindCommentBody), func(i int, tok token.Token) {
		opener := f.At(f.PrevIndex(i, token.NonSpace))
		if !isScopeStart(opener, "//") && !isScopeStart(opener, "/*") {
			return
		}
		if text, ok := NormalizeTodo(tok.Text); ok && text != tok.Text {
			f.Replace(i, token.CommentBody(text))
		}
	})
}

// NormalizeTodo formats a comment body that starts with a TODO, MARK or
// FIXME tag. It reports false for bodies without a tag.
func NormalizeTodo(body string) (string, bool) {
	for _, tag := range todoTags {
		rest, ok := strings.CutPrefix(body, tag)
		if !ok {
			continue
		}
		if rest != "" {
			switch c := rest[0]; {
			case c == ' ', c == ':', c == '-', c == '\t':
			default:
				// TODOs, TODO(owner) and the like
				return "", false
			}
		}
		rest = strings.TrimSpace(rest)
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if dash, ok := strings.CutPrefix(rest, "-"); ok {
			if tag == "MARK" {
				rest = strings.TrimSpace("- " + strings.TrimSpace(dash))
			} else {
				rest = strings.TrimSpace(dash)
			}
		}
		if rest == "" {
			return tag + ":", true
		}
		return tag + ": " + rest, true
	}
	return "", false
}

// WrapSingleLineCommentsRule wraps line comments that exceed maxwidth.
type WrapSingleLineCommentsRule struct {
	format.BaseRule
}

// NewWrapSingleLineCommentsRule creates a new wrap single line comments rule.
func NewWrapSingleLineCommentsRule() *WrapSingleLineCommentsRule {
	return &WrapSingleLineCommentsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "wrapSingleLineComments",
			Help:          "Wrap single line // comments that exceed the specified maxwidth.",
			SharedOptions: []string{"maxwidth", "tabwidth", "linebreaks"},
			RunsAfter:     []string{"spaceInsideComments", "todos"},
		}),
	}
}

// Apply breaks a comment that has its own line into several comments at the
// same indentation, filling each up to maxwidth. A word wider than the space
// left gets a line to itself. Directive comments are never wrapped.
func (r *WrapSingleLineCommentsRule) Apply(f *engine.Formatter) {
	maxWidth := f.Options().MaxWidth
	if maxWidth <= 0 {
		return
	}

	f.ForEachReverse(scopeToken(token.KindStartOfScope, "//"), func(i int, _ token.Token) {
		if !isFirstOnLine(f, i) || f.LineWidth(i) <= maxWidth {
			return
		}
		end := f.EndOfLine(i)
		text := strings.TrimSpace(f.Text(i+1, end))
		if strings.HasPrefix(text, engine.DirectivePrefix) {
			return
		}
		prefix := "//"
		if rest, ok := strings.CutPrefix(text, "/"); ok {
			prefix, text = "///", strings.TrimSpace(rest)
		}

		available := maxWidth - f.LineLength(f.StartOfLine(i), i) - runewidth.StringWidth(prefix) - 1
		lines := fillWords(strings.Fields(text), available)
		if len(lines) < 2 {
			return
		}

		indent := f.CurrentIndent(i)
		var toks []token.Token
		for n, line := range lines {
			if n > 0 {
				toks = append(toks, linebreakWithIndent(f, i, indent)...)
			}
			toks = append(toks, token.Tokenize(prefix+" "+line)...)
		}
		f.ReplaceRange(i, end, toks)
	})
}

// fillWords greedily packs words into lines no wider than width.
func fillWords(words []string, width int) []string {
	var lines []string
	var current strings.Builder
	currentWidth := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if current.Len() > 0 && currentWidth+1+ww > width {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(w)
		currentWidth += ww
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
