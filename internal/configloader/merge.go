package configloader

import (
	"maps"

	"github.com/yaklabco/swiftfmt/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans can only be switched on by a higher layer.
	if override.Lint {
		result.Lint = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups = override.Backups
	}

	result.Rules = mergeMaps(base.Rules, override.Rules)
	result.Options = mergeMaps(base.Options, override.Options)
	result.OptionOverrides = mergeMaps(base.OptionOverrides, override.OptionOverrides)

	if override.Enable != nil {
		result.Enable = override.Enable
	}
	if override.Disable != nil {
		result.Disable = override.Disable
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}
	if override.OnlyRules != nil {
		result.OnlyRules = override.OnlyRules
	}

	return &result
}

// mergeMaps copies base and overlays override on the copy.
func mergeMaps[V any](base, override map[string]V) map[string]V {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]V, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
