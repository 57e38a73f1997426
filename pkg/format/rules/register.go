package rules

import (
	"errors"
	"fmt"

	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/options"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *format.Registry) error {
	modifierOrder := NewModifierOrderRule()

	all := []format.Rule{
		// Whitespace rules
		NewTrailingSpaceRule(),
		NewConsecutiveSpacesRule(),
		NewConsecutiveBlankLinesRule(),
		NewBlankLinesAtStartOfScopeRule(),
		NewBlankLinesAtEndOfScopeRule(),
		NewLinebreakAtEndOfFileRule(),

		// Spacing rules
		NewSpaceAroundOperatorsRule(),
		NewSpaceInsideBracesRule(),
		NewSpaceInsideParensRule(),
		NewSpaceInsideBracketsRule(),

		// Brace placement rules
		NewBracesRule(),
		NewElseOnSameLineRule(),
		NewEmptyBracesRule(),

		// Syntax rules
		NewRedundantParensRule(),
		NewSemicolonsRule(),
		NewVoidRule(),
		NewTrailingCommasRule(),
		NewLeadingDelimitersRule(),

		// Expression rules
		NewAssertionFailuresRule(),
		NewYodaConditionsRule(),
		NewAcronymsRule(),

		// Import rules
		NewBlankLineAfterImportsRule(),
		NewDuplicateImportsRule(),
		NewSortImportsRule(),

		// Declaration rules
		NewEmptyExtensionsRule(),
		NewUnusedPrivateDeclarationsRule(),
		modifierOrder,
		NewOrganizeDeclarationsRule(),

		// Comment rules
		NewSpaceInsideCommentsRule(),
		NewTodosRule(),
		NewWrapSingleLineCommentsRule(),
		NewFileHeaderRule(),
	}

	var errs []error
	for _, rule := range all {
		if err := registry.Register(rule); err != nil {
			errs = append(errs, err)
		}
	}

	errs = append(errs, RegisterLegacyAliases(registry, modifierOrder))
	return errors.Join(errs...)
}

// RegisterLegacyAliases registers renamed rules under their old names. The
// aliases are deprecated and never enabled by default.
//   - "specifiers" -> modifierOrder.
func RegisterLegacyAliases(registry *format.Registry, modifierOrder format.Rule) error {
	return registry.Register(format.NewAlias("specifiers", modifierOrder))
}

// NewRegistry builds a registry holding every built-in rule and validates
// its metadata against the known options.
func NewRegistry() (*format.Registry, error) {
	registry := format.NewRegistry()
	if err := RegisterAll(registry); err != nil {
		return nil, fmt.Errorf("register rules: %w", err)
	}
	if err := registry.Validate(options.Known()); err != nil {
		return nil, fmt.Errorf("validate rules: %w", err)
	}
	return registry, nil
}

// MustNewRegistry is NewRegistry for program startup; it panics on error.
func MustNewRegistry() *format.Registry {
	registry, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}
