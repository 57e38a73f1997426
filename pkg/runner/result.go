package runner

import (
	"maps"
	"slices"

	"github.com/yaklabco/swiftfmt/pkg/format"
)

// FileOutcome wraps a FileResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the processing result for this file.
	// May be nil if the file encountered an error during processing.
	Result *format.FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose formatted output differs.
	FilesChanged int

	// FilesModified is the number of files written to disk.
	FilesModified int

	// FilesUnconverged is the number of files that hit the pass limit.
	FilesUnconverged int

	// ChangesTotal is the number of recorded rule changes across all files.
	ChangesTotal int

	// ChangesByRule maps rule names to change counts.
	ChangesByRule map[string]int
}

// Rules returns the names in ChangesByRule, sorted.
func (s Stats) Rules() []string {
	return slices.Sorted(maps.Keys(s.ChangesByRule))
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file would be or was reformatted.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// NewResult aggregates outcomes produced outside Run, such as a
// formatted stdin buffer.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ChangesByRule: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	res := outcome.Result
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Modified {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesModified++
	}
	if !res.Converged {
		r.Stats.FilesUnconverged++
	}

	r.Stats.ChangesTotal += len(res.Changes)
	for _, change := range res.Changes {
		r.Stats.ChangesByRule[change.Rule]++
	}
}
