package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/swiftfmt/pkg/format"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// Lint selects wording for runs that report pending changes
	// instead of writing them.
	Lint bool

	// Registry supplies rule help text. Optional.
	Registry *format.Registry

	// ToolVersion is reported by machine-readable formats.
	ToolVersion string

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		ToolVersion: "dev",
	}
}

// ruleHelp returns the help text for a rule, or "" when unknown.
func (o Options) ruleHelp(name string) string {
	if o.Registry == nil {
		return ""
	}
	rule, ok := o.Registry.Get(name)
	if !ok {
		return ""
	}
	return rule.Help()
}
