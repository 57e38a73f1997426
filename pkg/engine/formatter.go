// Package engine provides the mutable token buffer that format rules operate
// on: scope-aware navigation, line queries, mutation primitives, inline
// directives and the fatal error path.
package engine

import (
	"slices"

	"github.com/yaklabco/swiftfmt/pkg/options"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// Change records a mutation made by a rule.
type Change struct {
	Rule string `json:"rule"`
	Line int    `json:"line"`
}

// Formatter owns a token buffer for the duration of a run. All mutations go
// through its primitives so the revision counter, directive ranges and change
// log stay in sync with the tokens.
type Formatter struct {
	tokens   []token.Token
	opts     options.Options
	enabled  map[string]bool
	rule     string
	revision int

	directives directiveSet

	trackChanges bool
	changes      []Change

	// cursors are the positions of active ForEach loops.
	cursors []int
}

// New creates a formatter over a copy of tokens.
func New(tokens []token.Token, opts options.Options) *Formatter {
	return &Formatter{
		tokens:  slices.Clone(tokens),
		opts:    opts,
		enabled: make(map[string]bool),
	}
}

// Options returns the run's options.
func (f *Formatter) Options() options.Options {
	return f.opts
}

// SetEnabledRules records which rules take part in the run.
func (f *Formatter) SetEnabledRules(names []string) {
	f.enabled = make(map[string]bool, len(names))
	for _, n := range names {
		f.enabled[n] = true
	}
}

// RuleEnabled reports whether the named rule takes part in the run.
func (f *Formatter) RuleEnabled(name string) bool {
	return f.enabled[name]
}

// SetRule sets the rule that subsequent mutations and fatals are attributed to.
func (f *Formatter) SetRule(name string) {
	f.rule = name
}

// Rule returns the rule currently running.
func (f *Formatter) Rule() string {
	return f.rule
}

// Revision increases every time the buffer content changes.
func (f *Formatter) Revision() int {
	return f.revision
}

// TrackChanges turns per-mutation change records on or off.
func (f *Formatter) TrackChanges(on bool) {
	f.trackChanges = on
}

// Changes returns the recorded changes in mutation order.
func (f *Formatter) Changes() []Change {
	return slices.Clone(f.changes)
}

// Len returns the number of tokens.
func (f *Formatter) Len() int {
	return len(f.tokens)
}

// Token returns the token at i and whether i is in range.
func (f *Formatter) Token(i int) (token.Token, bool) {
	if i < 0 || i >= len(f.tokens) {
		return token.Token{}, false
	}
	return f.tokens[i], true
}

// At returns the token at i, or the zero token when i is out of range.
func (f *Formatter) At(i int) token.Token {
	tok, _ := f.Token(i)
	return tok
}

// Tokens returns a copy of the buffer.
func (f *Formatter) Tokens() []token.Token {
	return slices.Clone(f.tokens)
}

// Text renders tokens in [start, end).
func (f *Formatter) Text(start, end int) string {
	return token.RenderRange(f.tokens, start, end)
}

// String renders the whole buffer.
func (f *Formatter) String() string {
	return token.Render(f.tokens)
}
