package rules

import (
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// FileHeaderRule strips or replaces the comment block at the top of a file.
type FileHeaderRule struct {
	format.BaseRule
}

// NewFileHeaderRule creates a new file header rule.
func NewFileHeaderRule() *FileHeaderRule {
	return &FileHeaderRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "fileHeader",
			Help:          "Use specified source file header template for all files.",
			Options:       []string{"header"},
			SharedOptions: []string{"linebreaks"},
			RunOnce:       true,
		}),
	}
}

// Apply leaves the file alone with header=ignore, removes the header with
// header=strip, and otherwise replaces it with the configured text followed
// by one blank line.
func (r *FileHeaderRule) Apply(f *engine.Formatter) {
	header := f.Options().Header
	if header == "" || header == "ignore" || f.Len() == 0 || !f.IsEnabled(0) {
		return
	}

	headerEnd, end := findHeader(f)
	if header == "strip" {
		if headerEnd > 0 {
			f.RemoveRange(0, end)
		}
		return
	}

	if headerEnd == 0 {
		end = f.NextIndex(-1, token.NonSpaceOrLinebreak)
		if end < 0 {
			return
		}
	}
	lb := f.Options().Linebreak()
	f.ReplaceRange(0, end, token.Tokenize(HeaderComment(header, lb)+lb+lb))
}

// HeaderComment turns header text into comment lines. Lines that are already
// comments are kept; others get a "// " prefix.
func HeaderComment(text, linebreak string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for n, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			lines[n] = "//"
		case strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, "/*"), strings.HasPrefix(trimmed, "*"):
			lines[n] = strings.TrimRight(line, " \t")
		default:
			lines[n] = "// " + strings.TrimRight(line, " \t")
		}
	}
	return strings.Join(lines, linebreak)
}

// findHeader locates the leading comment block. headerEnd is the index just
// past the last comment line's linebreak, or 0 when the file has no header.
// end additionally covers the blank lines that follow. A comment block must
// be followed by a blank line or the end of the file to count as a header;
// doc comments and directives never do.
func findHeader(f *engine.Formatter) (headerEnd, end int) {
	i := 0
	for {
		start := f.NextIndex(i-1, token.NonSpace)
		if start < 0 || !isHeaderComment(f, start) {
			break
		}
		last := start
		if isScopeStart(f.At(start), "/*") {
			last = f.EndOfScope(start)
			if last < 0 {
				return 0, 0
			}
			if f.NextWithin(last, f.EndOfLine(last), token.NonSpace) >= 0 {
				// code follows the comment on the same line
				return 0, 0
			}
		}
		eol := f.EndOfLine(last)
		i = eol + 1
		headerEnd = min(i, f.Len())
		if eol >= f.Len() {
			break
		}
	}
	if headerEnd == 0 {
		return 0, 0
	}

	next := f.NextIndex(headerEnd-1, token.NonSpace)
	if next >= 0 && !f.At(next).IsLinebreak() {
		return 0, 0
	}
	end = headerEnd
	for end < f.Len() && f.IsBlankLine(end) {
		end = min(f.EndOfLine(end)+1, f.Len())
	}
	return headerEnd, end
}

func isHeaderComment(f *engine.Formatter, i int) bool {
	tok := f.At(i)
	if !isScopeStart(tok, "//") && !isScopeStart(tok, "/*") {
		return false
	}
	body := f.At(f.NextIndex(i, token.NonSpace))
	if body.Kind != token.KindCommentBody {
		return true
	}
	if strings.HasPrefix(strings.TrimSpace(body.Text), engine.DirectivePrefix) {
		return false
	}
	if f.At(i+1) == body {
		switch {
		case tok.Text == "//" && strings.HasPrefix(body.Text, "/"):
			return strings.Trim(body.Text, "/") == ""
		case tok.Text == "/*" && strings.HasPrefix(body.Text, "*"):
			return strings.Trim(body.Text, "*") == ""
		}
	}
	return true
}
