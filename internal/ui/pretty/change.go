package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/engine"
)

// FormatChange formats one rule change as "  path:line  rule  help".
func (s *Styles) FormatChange(path string, change engine.Change, help string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(path), change.Line)
	builder.WriteString("  " + location + "  " + s.Rule.Render(change.Rule))
	if help != "" {
		builder.WriteString("  " + s.Message.Render(help))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, changeCount int) string {
	header := s.FilePath.Render(path)
	if changeCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%s)", plural(changeCount, "change", "changes")))
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatFileSkipped formats a file that was left untouched.
func (s *Styles) FormatFileSkipped(path, reason string) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Warning.Render("skipped: "+reason))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
