// Package format provides the rule abstraction, the rule registry, and the
// scheduler that runs an ordered pipeline of rules over a token buffer until
// it reaches a fixed point.
package format

import "github.com/yaklabco/swiftfmt/pkg/engine"

// Rule defines the interface that all format rules must implement.
type Rule interface {
	// Name returns the unique rule name (e.g., "trailingSpace").
	Name() string

	// Help returns a one-line description of what the rule does.
	Help() string

	// Options returns the option keys this rule owns.
	Options() []string

	// SharedOptions returns option keys this rule reads but does not own.
	SharedOptions() []string

	// RunsAfter names rules that must run before this one in a pass.
	RunsAfter() []string

	// RunOnce reports whether the rule runs only in the first pass.
	RunOnce() bool

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// Deprecated returns the replacement rule name, or "" if current.
	Deprecated() string

	// Apply mutates the buffer. Invariant violations are reported with
	// Formatter.Fatal; Apply never returns errors.
	Apply(f *engine.Formatter)
}

// RuleSpec describes a rule's metadata.
type RuleSpec struct {
	Name          string
	Help          string
	Options       []string
	SharedOptions []string
	RunsAfter     []string
	RunOnce       bool
	// OptIn rules are disabled unless explicitly enabled.
	OptIn      bool
	Deprecated string
}

// BaseRule provides the metadata half of the Rule interface.
// Embed it in rule implementations and implement Apply.
type BaseRule struct {
	spec RuleSpec
}

// NewBaseRule creates a BaseRule from spec.
func NewBaseRule(spec RuleSpec) BaseRule {
	return BaseRule{spec: spec}
}

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.spec.Name }

// Help returns the one-line description.
func (r *BaseRule) Help() string { return r.spec.Help }

// Options returns the option keys the rule owns.
func (r *BaseRule) Options() []string { return r.spec.Options }

// SharedOptions returns the option keys the rule reads but does not own.
func (r *BaseRule) SharedOptions() []string { return r.spec.SharedOptions }

// RunsAfter returns the rules that must run first in a pass.
func (r *BaseRule) RunsAfter() []string { return r.spec.RunsAfter }

// RunOnce reports whether the rule only runs in the first pass.
func (r *BaseRule) RunOnce() bool { return r.spec.RunOnce }

// DefaultEnabled reports whether the rule is on without configuration.
// Opt-in rules and deprecated aliases are off by default.
func (r *BaseRule) DefaultEnabled() bool { return !r.spec.OptIn && r.spec.Deprecated == "" }

// Deprecated returns the replacement rule name, or "" if current.
func (r *BaseRule) Deprecated() string { return r.spec.Deprecated }

// aliasRule forwards to another rule under a deprecated name.
type aliasRule struct {
	BaseRule
	target Rule
}

// NewAlias returns a deprecated rule named name that behaves like target.
func NewAlias(name string, target Rule) Rule {
	return &aliasRule{
		BaseRule: NewBaseRule(RuleSpec{
			Name:          name,
			Help:          "Deprecated, use " + target.Name() + ".",
			Options:       nil,
			SharedOptions: append(append([]string(nil), target.Options()...), target.SharedOptions()...),
			RunsAfter:     target.RunsAfter(),
			RunOnce:       target.RunOnce(),
			Deprecated:    target.Name(),
		}),
		target: target,
	}
}

// Apply runs the target rule.
func (r *aliasRule) Apply(f *engine.Formatter) {
	r.target.Apply(f)
}
