package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/options"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "options.indent").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., deprecated rule names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration against the rule registry and the option
// descriptors. Unknown rules and invalid option values are errors; deprecated
// rule names are warnings.
func Validate(cfg *config.Config, registry *format.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: %s", cfg.Format, formatList()),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if registry != nil {
		validateRules(cfg, registry, result)
	}
	validateOptions(cfg, result)
	validateExcludePatterns(cfg, result)

	return result
}

func formatList() string {
	formats := config.OutputFormats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// validateRules checks every rule name the configuration mentions.
func validateRules(cfg *config.Config, registry *format.Registry, result *ValidationResult) {
	check := func(field, name string) {
		rule, ok := registry.Get(name)
		if !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown rule %q", name),
			})
			return
		}
		if replacement := rule.Deprecated(); replacement != "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("rule %q is deprecated; use %q", name, replacement),
			})
		}
	}

	for _, name := range sortedKeys(cfg.Rules) {
		check("rules."+name, name)
	}
	for i, name := range cfg.Enable {
		check(fmt.Sprintf("enable[%d]", i), name)
	}
	for i, name := range cfg.Disable {
		check(fmt.Sprintf("disable[%d]", i), name)
	}
	for _, name := range cfg.EnableRules {
		check("--enable", name)
	}
	for _, name := range cfg.DisableRules {
		check("--disable", name)
	}
	for _, name := range cfg.OnlyRules {
		check("--rules", name)
	}
}

// validateOptions applies each option value to a scratch Options to catch
// unknown keys and malformed values.
func validateOptions(cfg *config.Config, result *ValidationResult) {
	values := cfg.OptionValues()
	opts := options.Default()
	for _, key := range sortedKeys(values) {
		if err := opts.Set(key, values[key]); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "options." + key,
				Value:   values[key],
				Message: err.Error(),
			})
		}
	}
}

// validateExcludePatterns checks that exclude patterns are valid globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *format.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
