// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation against the rule registry.
package configloader

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/options"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned when init would overwrite a config file.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry validates rule names. Nil skips rule validation.
	Registry *format.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SWIFTFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.swiftfmt.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/swiftfmt/config.yaml)
//  6. System config (/etc/swiftfmt/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, opts.Registry)
	if !validation.Valid() {
		errs := make([]error, 0, len(validation.Errors))
		for i := range validation.Errors {
			errs = append(errs, &validation.Errors[i])
		}
		return nil, errors.Join(errs...)
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the merged configuration into formatting options.
func (r *LoadResult) Options() (options.Options, error) {
	opts, err := options.FromMap(r.Config.OptionValues())
	if err != nil {
		return options.Options{}, fmt.Errorf("resolve options: %w", err)
	}
	return opts, nil
}

// EnabledRules resolves the rule set to run. --rules replaces the set;
// otherwise defaults are adjusted by the rules map, the enable and disable
// lists, and the CLI flags in that order.
func (r *LoadResult) EnabledRules(registry *format.Registry) (map[string]bool, error) {
	if len(r.Config.OnlyRules) > 0 {
		return format.OnlyRules(registry, r.Config.OnlyRules)
	}
	enable, disable := r.Config.RuleLists()
	return format.ResolveRules(registry, enable, disable)
}

// TemplateFor builds a config template describing registry's rules and the
// known options.
func TemplateFor(registry *format.Registry, full bool) []byte {
	tmpl := config.TemplateOptions{Full: full}
	for _, info := range registry.List() {
		tmpl.Rules = append(tmpl.Rules, config.RuleInfo{
			Name:        info.Name,
			Description: info.Help,
			Enabled:     info.DefaultEnabled,
			Deprecated:  info.Deprecated,
		})
	}
	for _, desc := range options.Known().All() {
		tmpl.Options = append(tmpl.Options, config.OptionInfo{
			Key:     desc.Key,
			Help:    desc.Help,
			Default: desc.Default,
			Values:  desc.Values,
		})
	}
	return config.GenerateTemplate(tmpl)
}

// WriteTemplate writes content to path. An existing file is replaced only
// with force, or after confirmation when stdin is a terminal.
func WriteTemplate(path string, content []byte, force bool, prompt io.Writer) error {
	if fileExists(path) && !force {
		if !isInteractive() {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
		ok, err := confirm(prompt, os.Stdin, fmt.Sprintf("%s exists. Overwrite? [y/N] ", path))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// confirm asks a yes/no question; the default is no.
func confirm(out io.Writer, in io.Reader, question string) (bool, error) {
	if _, err := io.WriteString(out, question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp.Compare[string])
	return keys
}
