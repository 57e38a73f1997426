package format

import (
	"context"
	"fmt"

	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/options"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// DefaultMaxPasses is the maximum number of passes to prevent infinite loops.
// A buffer that still changes after this many passes usually means two rules
// undo each other's work.
const DefaultMaxPasses = 10

// PipelineOptions controls a token-level run.
type PipelineOptions struct {
	// MaxPasses limits the number of passes. Zero means DefaultMaxPasses.
	MaxPasses int

	// CheckInvariants verifies scope balance after every rule. It only takes
	// effect when the input itself is balanced.
	CheckInvariants bool

	// TrackChanges records which rule changed which line.
	TrackChanges bool
}

// Result is the outcome of a successful run.
type Result struct {
	// Tokens is the formatted buffer.
	Tokens []token.Token

	// Passes is the number of passes performed.
	Passes int

	// Converged is false when MaxPasses was reached while the buffer was
	// still changing.
	Converged bool

	// Changes is populated when PipelineOptions.TrackChanges is set.
	Changes []engine.Change

	// Order is the scheduled rule order.
	Order []string
}

// RunPipeline applies the enabled rules to tokens, repeating the scheduled
// pass until a pass leaves the buffer unchanged. Run-once rules only take
// part in the first pass they are reached in. A rule that reports an
// invariant violation aborts the run with a *engine.FatalError and no tokens.
func RunPipeline(
	ctx context.Context,
	registry *Registry,
	tokens []token.Token,
	opts options.Options,
	enabled map[string]bool,
	popts PipelineOptions,
) (*Result, error) {
	logger := logging.FromContext(ctx)

	order, err := Schedule(registry, enabled)
	if err != nil {
		return nil, err
	}
	names := Names(order)

	maxPasses := popts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	f := engine.New(tokens, opts)
	f.SetEnabledRules(names)
	f.TrackChanges(popts.TrackChanges)

	_, balanced := f.IsScopeBalanced()
	checkBalance := popts.CheckInvariants && balanced

	logger.Debug("running pipeline",
		logging.FieldRules, names,
		logging.FieldTokens, f.Len(),
	)

	result := &Result{Order: names}
	executed := make(map[string]bool, len(order))

	for result.Passes < maxPasses {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("formatting cancelled: %w", ctx.Err())
		default:
		}

		before := f.Revision()
		f.CompileDirectives()

		for _, rule := range order {
			if rule.RunOnce() && executed[rule.Name()] {
				continue
			}
			if err := runRule(f, rule, checkBalance); err != nil {
				logger.Debug("rule failed",
					logging.FieldRule, rule.Name(),
					logging.FieldPass, result.Passes+1,
					logging.FieldError, err,
				)
				return nil, err
			}
			executed[rule.Name()] = true
		}
		result.Passes++

		if f.Revision() == before {
			result.Converged = true
			break
		}
	}

	if !result.Converged {
		logger.Debug("pipeline did not converge", logging.FieldPasses, result.Passes)
	}

	result.Tokens = f.Tokens()
	result.Changes = f.Changes()

	logger.Debug("pipeline finished",
		logging.FieldPasses, result.Passes,
		logging.FieldConverged, result.Converged,
	)

	return result, nil
}

// runRule applies one rule, converting its fatal panic into an error.
func runRule(f *engine.Formatter, rule Rule, checkBalance bool) (err error) {
	f.SetRule(rule.Name())
	defer func() {
		if r := recover(); r != nil {
			err = f.Recover(r)
		}
	}()

	rule.Apply(f)

	if checkBalance {
		if i, ok := f.IsScopeBalanced(); !ok {
			f.Fatal(i, "unbalanced scope after %s", rule.Name())
		}
	}
	return nil
}

// Format tokenizes source, runs the pipeline and renders the result.
func Format(
	ctx context.Context,
	registry *Registry,
	source string,
	opts options.Options,
	enabled map[string]bool,
	popts PipelineOptions,
) (string, *Result, error) {
	result, err := RunPipeline(ctx, registry, token.Tokenize(source), opts, enabled, popts)
	if err != nil {
		return "", nil, err
	}
	return token.Render(result.Tokens), result, nil
}

// Lint runs the pipeline with change tracking and reports the changes it
// would make, without the formatted output.
func Lint(
	ctx context.Context,
	registry *Registry,
	source string,
	opts options.Options,
	enabled map[string]bool,
	popts PipelineOptions,
) ([]engine.Change, error) {
	popts.TrackChanges = true
	result, err := RunPipeline(ctx, registry, token.Tokenize(source), opts, enabled, popts)
	if err != nil {
		return nil, err
	}
	return result.Changes, nil
}
