package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/config"
)

// envVarPrefix is the prefix for all swiftfmt environment variables.
const envVarPrefix = "SWIFTFMT_"

// envOptionPrefix marks formatting option overrides, e.g. SWIFTFMT_OPTION_INDENT.
const envOptionPrefix = envVarPrefix + "OPTION_"

// envSetter applies one environment value to the config.
type envSetter struct {
	help  string
	apply func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetter{
	"LINT": {"Report pending changes without writing: true or false", boolSetter(func(c *config.Config) *bool {
		return &c.Lint
	})},
	"DRY_RUN": {"Dry-run mode: true or false", boolSetter(func(c *config.Config) *bool {
		return &c.DryRun
	})},
	"NO_BACKUPS": {"Disable backups: true or false", boolSetter(func(c *config.Config) *bool {
		return &c.NoBackups
	})},
	"BACKUPS_ENABLED": {"Enable backups when writing: true or false", boolSetter(func(c *config.Config) *bool {
		return &c.Backups.Enabled
	})},
	"BACKUPS_MODE": {"Backup mode: sidecar or none", func(c *config.Config, v string) error {
		c.Backups.Mode = v
		return nil
	}},
	"FORMAT": {"Output format: text, json, diff, summary or sarif", func(c *config.Config, v string) error {
		c.Format = config.OutputFormat(v)
		return nil
	}},
	"JOBS": {"Number of parallel workers (0 = auto)", func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		c.Jobs = n
		return nil
	}},
	"EXCLUDE": {"Comma-separated list of exclude patterns", func(c *config.Config, v string) error {
		c.Exclude = parseSliceValue(v)
		return nil
	}},
	"ENABLE": {"Comma-separated list of rules to enable", func(c *config.Config, v string) error {
		c.Enable = parseSliceValue(v)
		return nil
	}},
	"DISABLE": {"Comma-separated list of rules to disable", func(c *config.Config, v string) error {
		c.Disable = parseSliceValue(v)
		return nil
	}},
}

func boolSetter(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		*field(c) = b
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with SWIFTFMT_ (e.g., SWIFTFMT_JOBS). Formatting
// options use SWIFTFMT_OPTION_<KEY> (e.g., SWIFTFMT_OPTION_MAXWIDTH=100).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnviron(cfg, os.Environ())
}

func loadFromEnviron(cfg *config.Config, environ []string) error {
	if cfg == nil {
		return nil
	}

	sort.Strings(environ)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(name, envVarPrefix) {
			continue
		}

		if key, ok := strings.CutPrefix(name, envOptionPrefix); ok {
			if cfg.Options == nil {
				cfg.Options = make(map[string]any)
			}
			cfg.Options[strings.ToLower(key)] = value
			continue
		}

		setter, ok := envMappings[strings.TrimPrefix(name, envVarPrefix)]
		if !ok {
			continue
		}
		if err := setter.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings)+1)
	for suffix, setter := range envMappings {
		vars[envVarPrefix+suffix] = setter.help
	}
	vars[envOptionPrefix+"<KEY>"] = "Formatting option override, e.g. SWIFTFMT_OPTION_INDENT=2"
	return vars
}
