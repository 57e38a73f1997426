// Package analysis aggregates a formatting run into per-file and per-rule
// views shared by the reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(name string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[name]; !ok {
		ctx.ruleMap[name] = &RuleAnalysis{Rule: name}
		ctx.ruleFiles[name] = make(map[string]bool)
	}
	return ctx.ruleMap[name]
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for name, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[name] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	slices.SortFunc(result, func(left, right RuleAnalysis) int {
		return compareEntries(left.Changes, right.Changes, left.Rule, right.Rule, opts)
	})
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		if fa.Changes == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	slices.SortFunc(result, func(left, right FileAnalysis) int {
		return compareEntries(left.Changes, right.Changes, left.Path, right.Path, opts)
	})
	return result
}

// compareEntries orders by count then name. Alphabetical order is always A-Z.
func compareEntries(leftCount, rightCount int, leftName, rightName string, opts Options) int {
	if opts.SortBy != SortByAlpha {
		result := cmp.Compare(leftCount, rightCount)
		if opts.SortDesc {
			result = -result
		}
		if result != 0 {
			return result
		}
	}
	return cmp.Compare(leftName, rightName)
}

// fileEntry classifies one outcome.
func fileEntry(path string, outcome runner.FileOutcome) FileEntry {
	entry := FileEntry{Path: path}

	switch res := outcome.Result; {
	case outcome.Error != nil:
		entry.Status = StatusError
		entry.Error = outcome.Error.Error()
	case res == nil:
		entry.Status = StatusUnchanged
	default:
		entry.Changes = len(res.Changes)
		entry.Passes = res.Passes
		entry.Converged = res.Converged
		entry.Backup = res.BackupCreated
		switch {
		case res.Skipped:
			entry.Status = StatusSkipped
			entry.Reason = res.SkipReason
		case res.Written:
			entry.Status = StatusFormatted
		case res.Modified:
			entry.Status = StatusChanged
		default:
			entry.Status = StatusUnchanged
		}
	}
	return entry
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the changes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version: ReportVersion,
		Files:   []FileEntry{},
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, outcome := range result.Files {
		displayPath := makeRelativePath(outcome.Path, opts.WorkingDir)
		entry := fileEntry(displayPath, outcome)
		report.Files = append(report.Files, entry)

		report.Totals.Files++
		switch entry.Status {
		case StatusError:
			report.Totals.FilesErrored++
			continue
		case StatusSkipped:
			report.Totals.FilesSkipped++
		case StatusFormatted:
			report.Totals.FilesWritten++
		}
		if outcome.Result == nil || !outcome.Result.Modified {
			continue
		}
		report.Totals.FilesChanged++

		fa := ctx.file(displayPath)
		for _, change := range outcome.Result.Changes {
			report.Totals.Changes++
			fa.Changes++
			ctx.fileRules[displayPath][change.Rule] = true

			ra := ctx.rule(change.Rule)
			ra.Changes++
			ctx.ruleFiles[change.Rule][displayPath] = true

			if opts.IncludeChanges {
				report.Changes = append(report.Changes, ChangeEntry{
					FilePath: displayPath,
					Rule:     change.Rule,
					Line:     change.Line,
				})
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}
