// Package options defines the immutable formatting options read by rules.
package options

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/masterminds/semver"
)

var (
	// ErrUnknownOption is returned for option keys with no descriptor.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidOptionValue is returned when a value fails validation.
	ErrInvalidOptionValue = errors.New("invalid option value")
)

// DefaultModifierOrder is the canonical declaration modifier order.
var DefaultModifierOrder = []string{
	"override",
	"private", "fileprivate", "internal", "package", "public", "open",
	"private(set)", "fileprivate(set)", "internal(set)", "package(set)", "public(set)", "open(set)",
	"final", "dynamic", "optional", "required", "convenience", "indirect",
	"isolated", "nonisolated", "lazy", "weak", "unowned",
	"static", "class", "borrowing", "consuming", "mutating", "nonmutating",
	"prefix", "infix", "postfix",
}

// Options holds every formatting option for a run. A run never mutates it.
type Options struct {
	Indent         string // "tab" or a space count
	TabWidth       int
	MaxWidth       int // 0 disables width checks
	Linebreaks     string
	SwiftVersion   *semver.Version
	TrimWhitespace string
	EmptyBraces    string
	ElsePosition   string
	Allman         bool
	Commas         string
	Semicolons     string
	ImportGrouping string
	ModifierOrder  []string
	Acronyms       []string
	YodaSwap       string
	Header         string
	Ranges         string
	OrganizeTypes  []string
}

// Default returns options with every descriptor's default applied.
func Default() Options {
	var opts Options
	for _, d := range descriptors.All() {
		if err := d.set(&opts, d.Default); err != nil {
			panic(fmt.Sprintf("options: bad default for %s: %v", d.Key, err))
		}
	}
	return opts
}

// FromMap applies key/value pairs on top of the defaults, in key order.
func FromMap(values map[string]string) (Options, error) {
	opts := Default()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := opts.Set(k, values[k]); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

// Set validates and assigns a single option from its textual form.
func (o *Options) Set(key, value string) error {
	d, ok := descriptors.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	if err := d.set(o, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidOptionValue, d.Key, value, err)
	}
	return nil
}

// Get returns the textual form of an option, or "" for unknown keys.
func (o Options) Get(key string) string {
	d, ok := descriptors.Lookup(key)
	if !ok {
		return ""
	}
	return d.get(&o)
}

// Map returns every option in textual form, keyed by option name.
func (o Options) Map() map[string]string {
	out := make(map[string]string)
	for _, d := range descriptors.All() {
		out[d.Key] = d.get(&o)
	}
	return out
}

// Clone returns a deep copy.
func (o Options) Clone() Options {
	o.ModifierOrder = slices.Clone(o.ModifierOrder)
	o.Acronyms = slices.Clone(o.Acronyms)
	o.OrganizeTypes = slices.Clone(o.OrganizeTypes)
	return o
}

// Linebreak returns the line ending inserted by rules.
func (o Options) Linebreak() string {
	switch o.Linebreaks {
	case "cr":
		return "\r"
	case "crlf":
		return "\r\n"
	default:
		return "\n"
	}
}

// IndentString returns the text of one indent level.
func (o Options) IndentString() string {
	if o.Indent == "tab" {
		return "\t"
	}
	n, err := strconv.Atoi(o.Indent)
	if err != nil || n <= 0 {
		n = 4
	}
	return strings.Repeat(" ", n)
}

// SwiftVersionAtLeast reports whether the configured Swift version is at
// least version. It is false when no version is configured.
func (o Options) SwiftVersionAtLeast(version string) bool {
	if o.SwiftVersion == nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return !o.SwiftVersion.LessThan(v)
}

// ContainsFold reports whether list holds s, ignoring case.
func ContainsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
