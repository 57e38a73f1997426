package analysis

// Report contains pre-computed views of a formatting run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files lists every processed file in discovery order.
	Files []FileEntry `json:"files"`

	// Changes is the flat list of rule changes.
	Changes []ChangeEntry `json:"changes,omitempty"`

	// ByFile groups changes by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups changes by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`
}

// FileStatus describes what happened to one file.
type FileStatus string

// File statuses.
const (
	StatusUnchanged FileStatus = "unchanged"
	StatusChanged   FileStatus = "changed"
	StatusFormatted FileStatus = "formatted"
	StatusSkipped   FileStatus = "skipped"
	StatusError     FileStatus = "error"
)

// FileEntry summarizes the outcome for one file.
type FileEntry struct {
	Path      string     `json:"path"`
	Status    FileStatus `json:"status"`
	Changes   int        `json:"changes"`
	Passes    int        `json:"passes,omitempty"`
	Converged bool       `json:"converged"`
	Backup    bool       `json:"backup,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ChangeEntry is one rule change at one line.
type ChangeEntry struct {
	FilePath string `json:"filePath"`
	Rule     string `json:"rule"`
	Line     int    `json:"line"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files        int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
	FilesSkipped int `json:"filesSkipped"`
	FilesErrored int `json:"filesErrored"`
	Changes      int `json:"totalChanges"`
}

// HasChanges returns true if any file would be or was reformatted.
func (t Totals) HasChanges() bool {
	return t.FilesChanged > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path    string   `json:"path"`
	Changes int      `json:"changes"`
	Rules   []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	Rule    string   `json:"rule"`
	Changes int      `json:"changes"`
	Files   []string `json:"files,omitempty"`
}
