package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc"

	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/format"
)

// Runner orchestrates multi-file formatting using a format.Processor.
type Runner struct {
	// Processor formats one file at a time. It is shared by all workers
	// and never mutated.
	Processor *format.Processor
}

// New creates a new Runner with the given processor.
func New(processor *format.Processor) *Runner {
	return &Runner{Processor: processor}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}
	logger.Debug("starting workers", logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var workers conc.WaitGroup
	for range jobs {
		workers.Go(func() {
			r.worker(ctx, workCh, outCh, opts.File)
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		workers.Wait()
		close(outCh)
	}()

	// Workers finish out of order; key by path and rebuild in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldChangesTotal, result.Stats.ChangesTotal,
	)

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts format.FileOptions,
) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		res, err := r.Processor.ProcessFile(ctx, path, opts)
		if err != nil {
			outcome.Error = err
			logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		} else {
			outcome.Result = res
			if !res.Converged {
				logger.Warn("formatting did not converge",
					logging.FieldPath, path, logging.FieldPasses, res.Passes)
			}
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
