package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := r.reportFiles(ctx, result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Lint))
	}

	return total, nil
}

// reportFiles writes changes grouped by file.
func (r *TextReporter) reportFiles(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		res := file.Result
		if res == nil {
			continue
		}
		if res.Skipped {
			fmt.Fprint(r.bw, r.styles.FormatFileSkipped(path, res.SkipReason))
			continue
		}
		if !res.Modified {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(res.Changes)))
		for _, change := range res.Changes {
			fmt.Fprint(r.bw, r.styles.FormatChange(path, change, r.opts.ruleHelp(change.Rule)))
			total++
		}
		if !res.Converged {
			fmt.Fprintln(r.bw, r.styles.Warning.Render(
				fmt.Sprintf("  did not converge after %d passes", res.Passes)))
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}
