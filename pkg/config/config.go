// Package config defines core configuration types for swiftfmt.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// RuleConfig holds per-rule configuration.
type RuleConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
	FormatSARIF   OutputFormat = "sarif"
)

// OutputFormats lists the valid output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff, FormatSummary, FormatSARIF}
}

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// Config is the root configuration structure for swiftfmt.
type Config struct {
	// Rules contains per-rule configuration keyed by rule name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Enable lists opt-in rules to turn on.
	Enable []string `yaml:"enable,omitempty"`

	// Disable lists rules to turn off.
	Disable []string `yaml:"disable,omitempty"`

	// Options holds formatting option values keyed by option name
	// (e.g., indent, maxwidth). Scalars and lists are accepted.
	Options map[string]any `yaml:"options,omitempty"`

	// Exclude contains glob patterns for files to skip.
	Exclude []string `yaml:"exclude,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Lint reports pending changes without writing files.
	Lint bool `yaml:"-"`

	// DryRun shows what would change without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule names to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule names to explicitly disable.
	DisableRules []string `yaml:"-"`

	// OnlyRules, when set, replaces the enabled set entirely.
	OnlyRules []string `yaml:"-"`

	// OptionOverrides holds --option key=value pairs.
	OptionOverrides map[string]string `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:   make(map[string]RuleConfig),
		Options: make(map[string]any),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// RuleLists combines the rule map, the enable/disable lists and the CLI
// flags into the names to enable and disable. CLI flags come last so they
// win when the lists are applied in order.
func (c *Config) RuleLists() (enable, disable []string) {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rc := c.Rules[name]
		if rc.Enabled == nil {
			continue
		}
		if *rc.Enabled {
			enable = append(enable, name)
		} else {
			disable = append(disable, name)
		}
	}
	enable = append(enable, c.Enable...)
	disable = append(disable, c.Disable...)

	// a CLI enable overrides a file disable and vice versa
	for _, name := range c.EnableRules {
		disable = slices.DeleteFunc(disable, func(n string) bool { return n == name })
	}
	for _, name := range c.DisableRules {
		enable = slices.DeleteFunc(enable, func(n string) bool { return n == name })
	}
	enable = append(enable, c.EnableRules...)
	disable = append(disable, c.DisableRules...)
	return enable, disable
}

// OptionValues flattens Options and OptionOverrides into the string form
// options.FromMap expects. Lists become comma-separated values.
func (c *Config) OptionValues() map[string]string {
	values := make(map[string]string, len(c.Options)+len(c.OptionOverrides))
	for key, val := range c.Options {
		values[strings.ToLower(key)] = optionString(val)
	}
	for key, val := range c.OptionOverrides {
		values[strings.ToLower(key)] = val
	}
	return values
}

func optionString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, optionString(item))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}
