package format

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/diff"
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/fsutil"
	"github.com/yaklabco/swiftfmt/pkg/options"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// FileResult contains the result of processing a single file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the file state before processing.
	Snapshot *fsutil.Snapshot

	// Modified is true if formatting changed the content.
	Modified bool

	// Formatted is the new content (nil if not modified).
	Formatted []byte

	// Changes lists the rules that changed the file and where.
	Changes []engine.Change

	// Passes is the number of pipeline passes performed.
	Passes int

	// Converged is false when the pass limit was reached.
	Converged bool

	// Diff is the unified diff in dry-run mode (nil otherwise).
	Diff *diff.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the file result.
func (fr *FileResult) Summary() string {
	if fr.Skipped {
		return "skipped: " + fr.SkipReason
	}
	if fr.Written {
		if fr.BackupCreated {
			return "formatted (backup created)"
		}
		return "formatted"
	}
	if fr.Modified {
		return "changes pending"
	}
	return "ok"
}

// FileOptions controls file processing behavior.
type FileOptions struct {
	// Lint reports pending changes without writing.
	Lint bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// Pipeline controls the token-level run.
	Pipeline PipelineOptions
}

// DefaultFileOptions returns sensible defaults.
func DefaultFileOptions() FileOptions {
	return FileOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		Pipeline: PipelineOptions{
			MaxPasses:       DefaultMaxPasses,
			CheckInvariants: true,
		},
	}
}

// Processor formats files with a fixed rule set and options.
type Processor struct {
	Registry *Registry
	Options  options.Options
	Enabled  map[string]bool
}

// NewProcessor creates a processor running the enabled rules of registry.
func NewProcessor(registry *Registry, opts options.Options, enabled map[string]bool) *Processor {
	return &Processor{Registry: registry, Options: opts, Enabled: enabled}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Format the content in memory.
//  3. Generate diff (if dry-run mode) or stop (if lint mode).
//  4. Check for concurrent modifications.
//  5. Create backup (if enabled).
//  6. Write the formatted content atomically.
func (p *Processor) ProcessFile(ctx context.Context, path string, opts FileOptions) (*FileResult, error) {
	// Step 1: Read and hash the original file.
	original, snapshot, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	// Steps 2-3.
	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snapshot

	if !result.Modified || opts.Lint || opts.DryRun {
		return result, nil
	}

	// Step 4: Check for concurrent modifications before writing.
	changed, err := snapshot.Changed(ctx, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		logging.FromContext(ctx).Warn("skipping file", logging.FieldPath, path, "reason", result.SkipReason)
		return result, nil
	}

	// Step 5: Create backup if enabled.
	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	// Step 6: Write the formatted content atomically.
	if err := fsutil.WriteAtomic(ctx, path, result.Formatted, snapshot.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent formats in-memory content without file I/O.
// This is useful for stdin input and for tests.
func (p *Processor) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	opts FileOptions,
) (*FileResult, error) {
	popts := opts.Pipeline
	popts.TrackChanges = true

	run, err := RunPipeline(ctx, p.Registry, token.Tokenize(string(original)), p.Options, p.Enabled, popts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
	}

	result := &FileResult{
		Path:      path,
		Passes:    run.Passes,
		Converged: run.Converged,
	}

	formatted := []byte(token.Render(run.Tokens))
	if string(formatted) == string(original) {
		return result, nil
	}

	result.Modified = true
	result.Formatted = formatted
	result.Changes = run.Changes

	if opts.DryRun {
		result.Diff = diff.Generate(path, original, formatted)
	}

	return result, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrFormatFailure) ||
		errors.Is(err, ErrWriteFailure)
}
