package pretty

import (
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 of 12 files would be reformatted (7 changes), 1 error".
// lint selects the wording for runs that do not write files.
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, lint bool) string {
	checked := plural(stats.FilesProcessed+stats.FilesErrored, "file", "files")

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+s.Dim.Render(" ("+checked+" checked)"))
	case lint:
		parts = append(parts, s.Warning.Render(plural(stats.FilesChanged, "file", "files")+" would be reformatted")+
			s.Dim.Render(" ("+plural(stats.ChangesTotal, "change", "changes")+", "+checked+" checked)"))
	default:
		parts = append(parts, s.Success.Render(plural(stats.FilesModified, "file", "files")+" reformatted")+
			s.Dim.Render(" ("+plural(stats.ChangesTotal, "change", "changes")+", "+checked+" checked)"))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.FilesSkipped, "file", "files")+" skipped"))
	}
	if stats.FilesUnconverged > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.FilesUnconverged, "file", "files")+" did not converge"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(plural(stats.FilesErrored, "error", "errors")))
	}

	return strings.Join(parts, ", ") + "\n"
}
