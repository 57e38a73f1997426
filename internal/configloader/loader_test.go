package configloader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/format/rules"
)

func testRegistry(t *testing.T) *format.Registry {
	t.Helper()
	registry, err := rules.NewRegistry()
	require.NoError(t, err)
	return registry
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolated(t *testing.T, dir string) LoadOptions {
	t.Helper()
	// a .git marker stops the upward search inside the temp dir
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		Registry:           testRegistry(t),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t, t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.True(t, result.Config.Backups.Enabled)

	opts, err := result.Options()
	require.NoError(t, err)
	assert.Equal(t, "4", opts.Indent)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(t, dir)
	path := writeConfig(t, dir, ".swiftfmt.yml", `
rules:
  semicolons:
    enabled: false
enable:
  - acronyms
options:
  indent: 2
  maxwidth: 100
`)

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, result.LoadedFrom)

	formatOpts, err := result.Options()
	require.NoError(t, err)
	assert.Equal(t, "2", formatOpts.Indent)
	assert.Equal(t, 100, formatOpts.MaxWidth)

	enabled, err := result.EnabledRules(opts.Registry)
	require.NoError(t, err)
	assert.False(t, enabled["semicolons"])
	assert.True(t, enabled["acronyms"])
	assert.True(t, enabled["trailingSpace"])
}

func TestLoad_SearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := isolated(t, root)
	path := writeConfig(t, root, ".swiftfmt.yaml", "exclude:\n  - \"Pods/**\"\n")

	nested := filepath.Join(root, "Sources", "App")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	opts.WorkingDir = nested

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, []string{"Pods/**"}, result.Config.Exclude)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(t, dir)
	writeConfig(t, dir, ".swiftfmt.yml", "options:\n  indent: 8\n")
	opts.ExplicitPath = writeConfig(t, dir, "custom.yml", "options:\n  indent: tab\n")

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{opts.ExplicitPath}, result.LoadedFrom)

	formatOpts, err := result.Options()
	require.NoError(t, err)
	assert.Equal(t, "tab", formatOpts.Indent)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(t, dir)
	writeConfig(t, dir, ".swiftfmt.yml", `
disable:
  - semicolons
options:
  indent: 2
`)
	opts.CLIConfig = &config.Config{
		Jobs:            8,
		Lint:            true,
		EnableRules:     []string{"semicolons"},
		OptionOverrides: map[string]string{"indent": "3"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Config.Jobs)
	assert.True(t, result.Config.Lint)

	formatOpts, err := result.Options()
	require.NoError(t, err)
	assert.Equal(t, "3", formatOpts.Indent)

	enabled, err := result.EnabledRules(opts.Registry)
	require.NoError(t, err)
	assert.True(t, enabled["semicolons"])
}

func TestLoad_OnlyRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(t, dir)
	opts.CLIConfig = &config.Config{OnlyRules: []string{"semicolons", "void"}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	enabled, err := result.EnabledRules(opts.Registry)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"semicolons": true, "void": true}, enabled)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown rule", "disable:\n  - noSuchRule\n", "disable[0]"},
		{"unknown option", "options:\n  tabsize: 4\n", "options.tabsize"},
		{"bad option value", "options:\n  elseposition: sideways\n", "options.elseposition"},
		{"bad backup mode", "backups:\n  mode: cloud\n", "backups.mode"},
		{"bad glob", "exclude:\n  - \"[\"\n", "exclude[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			opts := isolated(t, dir)
			writeConfig(t, dir, ".swiftfmt.yml", tt.content)

			_, err := Load(context.Background(), opts)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(t, dir)
	writeConfig(t, dir, ".swiftfmt.yml", "swiftversion: 5.9\n")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_DeprecatedRuleWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(t, dir)
	writeConfig(t, dir, ".swiftfmt.yml", "enable:\n  - specifiers\n")

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "modifierOrder")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t, t.TempDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromEnviron(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnviron(cfg, []string{
		"SWIFTFMT_JOBS=3",
		"SWIFTFMT_LINT=true",
		"SWIFTFMT_EXCLUDE=Pods/**, .build/**",
		"SWIFTFMT_OPTION_MAXWIDTH=90",
		"SWIFTFMT_UNKNOWN=1",
		"HOME=/root",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.Lint)
	assert.Equal(t, []string{"Pods/**", ".build/**"}, cfg.Exclude)
	assert.Equal(t, "90", cfg.OptionValues()["maxwidth"])
}

func TestLoadFromEnviron_Invalid(t *testing.T) {
	t.Parallel()

	err := loadFromEnviron(config.NewConfig(), []string{"SWIFTFMT_JOBS=many"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWIFTFMT_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "SWIFTFMT_JOBS")
	assert.Contains(t, vars, "SWIFTFMT_OPTION_<KEY>")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Options["indent"] = 2
	base.Exclude = []string{"a"}

	override := &config.Config{
		Options: map[string]any{"maxwidth": 80},
		Backups: config.BackupsConfig{Enabled: false, Mode: "none"},
	}

	merged := MergeAll(base, override)
	assert.Equal(t, map[string]any{"indent": 2, "maxwidth": 80}, merged.Options)
	assert.Equal(t, []string{"a"}, merged.Exclude)
	assert.Equal(t, "none", merged.Backups.Mode)
	assert.False(t, merged.Backups.Enabled)
	assert.Nil(t, MergeAll())
}

func TestTemplateFor(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	for _, full := range []bool{false, true} {
		content := TemplateFor(registry, full)
		cfg, err := config.FromYAML(content)
		require.NoError(t, err)

		result := Validate(cfg, registry)
		assert.True(t, result.Valid(), strings.Join(result.AllMessages(), "\n"))
	}
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigName())

	require.NoError(t, WriteTemplate(path, []byte("a: 1\n"), false, &bytes.Buffer{}))
	require.NoError(t, WriteTemplate(path, []byte("b: 2\n"), true, &bytes.Buffer{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b: 2\n", string(data))
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"\n", false},
		{"no\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(&out, strings.NewReader(tt.input), "Overwrite? ")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, "Overwrite? ", out.String())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{FilePath: ".swiftfmt.yml", Field: "jobs", Message: "jobs must be >= 0"}
	assert.Equal(t, ".swiftfmt.yml: jobs: jobs must be >= 0", err.Error())

	var target *ValidationError
	assert.True(t, errors.As(error(err), &target))
}
