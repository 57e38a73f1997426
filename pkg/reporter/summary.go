package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/analysis"
)

// SummaryRenderer formats results as aggregated rule and file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
		width:  pretty.TerminalWidth(opts.Writer),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Changes == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No changes needed")+
			r.styles.Dim.Render(fmt.Sprintf(" (%s checked)", countNoun(report.Totals.Files, "file", "files"))))
		r.renderErrors(report)
		return nil
	}

	r.renderRuleTable(report.ByRule)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)
	r.renderErrors(report)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.SummaryTitle.Render("Rules"))

	table := pretty.NewTable(r.styles, r.width,
		pretty.Column{Title: "Rule"},
		pretty.Column{Title: "Changes", Align: pretty.AlignRight},
		pretty.Column{Title: "Files", Align: pretty.AlignRight},
		pretty.Column{Title: "Description", Flex: true},
	)
	var changes int
	for i, rule := range rules {
		table.AddRow(rule.Rule, strconv.Itoa(rule.Changes), strconv.Itoa(len(rule.Files)), r.opts.ruleHelp(rule.Rule))
		if i == 0 {
			table.Highlight()
		}
		changes += rule.Changes
	}
	table.SetFooter("Total", strconv.Itoa(changes))

	fmt.Fprint(r.out, table.String())
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.SummaryTitle.Render("Files"))

	table := pretty.NewTable(r.styles, r.width,
		pretty.Column{Title: "File", Flex: true},
		pretty.Column{Title: "Changes", Align: pretty.AlignRight},
		pretty.Column{Title: "Rules", Flex: true},
	)
	for i, file := range files {
		table.AddRow(file.Path, strconv.Itoa(file.Changes), strings.Join(file.Rules, ", "))
		if i == 0 {
			table.Highlight()
		}
	}

	fmt.Fprint(r.out, table.String())
}

func (r *SummaryRenderer) renderErrors(report *analysis.Report) {
	for _, file := range report.Files {
		switch file.Status {
		case analysis.StatusError:
			fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Error.Render("error: "+file.Error))
		case analysis.StatusSkipped:
			fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(file.Path), r.styles.Warning.Render("skipped: "+file.Reason))
		}
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	verb := "reformatted"
	count := totals.FilesWritten
	if r.opts.Lint || totals.FilesWritten == 0 {
		verb = "would be reformatted"
		count = totals.FilesChanged
	}

	line := fmt.Sprintf("%s in %s %s (%s checked)",
		countNoun(totals.Changes, "change", "changes"),
		countNoun(count, "file", "files"),
		verb,
		countNoun(totals.Files, "file", "files"),
	)
	if totals.FilesErrored > 0 {
		line += ", " + r.styles.Error.Render(countNoun(totals.FilesErrored, "error", "errors"))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

func countNoun(n int, one, many string) string {
	return strconv.Itoa(n) + " " + pick(n, one, many)
}
