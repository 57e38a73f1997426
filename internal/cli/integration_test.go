package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/internal/cli"
)

// unformatted triggers the semicolons rule on both lines.
const unformatted = "let a = 1;\nlet b = 2;\n"

type fixture struct {
	dir    string
	file   string
	config string
}

// newFixture writes a Swift file and an explicit config so tests do not
// pick up project configuration.
func newFixture(t *testing.T, content, configYAML string) fixture {
	t.Helper()

	dir := t.TempDir()
	file := filepath.Join(dir, "Main.swift")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	cfg := filepath.Join(t.TempDir(), ".swiftfmt.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(configYAML), 0o644))

	return fixture{dir: dir, file: file, config: cfg}
}

func (f fixture) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.file)
	require.NoError(t, err)
	return string(data)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_FormatWritesFile(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "backups:\n  enabled: false\n  mode: sidecar\n")

	out, err := execute(t, "", "format", "--config", fx.config, "--color", "never", "--rules", "semicolons", fx.file)
	require.NoError(t, err)

	assert.Equal(t, "let a = 1\nlet b = 2\n", fx.read(t))
	assert.Contains(t, out, "1 file reformatted (2 changes, 1 file checked)")

	backups, err := filepath.Glob(fx.file + ".*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestIntegration_LintExitCode(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "")

	out, err := execute(t, "", "format", "--lint", "--config", fx.config, "--color", "never", "--rules", "semicolons", fx.file)
	require.ErrorIs(t, err, cli.ErrChangesPending)
	assert.Equal(t, cli.ExitChangesPending, cli.ExitCode(err))

	assert.Equal(t, unformatted, fx.read(t), "lint must not write")
	assert.Contains(t, out, "Main.swift:1  semicolons  Remove semicolons.")
	assert.Contains(t, out, "1 file would be reformatted")
}

func TestIntegration_LintClean(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "let a = 1\n", "")

	out, err := execute(t, "", "format", "--lint", "--config", fx.config, "--color", "never", "--rules", "semicolons", fx.file)
	require.NoError(t, err)
	assert.Contains(t, out, "All files formatted (1 file checked)")
}

func TestIntegration_ConfigDisablesRule(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "rules:\n  semicolons:\n    enabled: false\n")

	_, err := execute(t, "", "format", "--lint", "--config", fx.config, "--color", "never", fx.file)
	require.NoError(t, err)
}

func TestIntegration_EnableOverridesConfig(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "disable:\n  - semicolons\n")

	_, err := execute(t, "", "format", "--lint", "--config", fx.config, "--enable", "semicolons", fx.file)
	require.ErrorIs(t, err, cli.ErrChangesPending)
}

func TestIntegration_UnknownRule(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "")

	_, err := execute(t, "", "format", "--config", fx.config, "--rules", "noSuchRule", fx.file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))
	assert.Equal(t, unformatted, fx.read(t))
}

func TestIntegration_InvalidOption(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "")

	tests := [][]string{
		{"--option", "indent"},
		{"--option", "noSuchOption=1"},
	}
	for _, extra := range tests {
		args := append([]string{"format", "--config", fx.config}, extra...)
		_, err := execute(t, "", append(args, fx.file)...)
		require.Error(t, err, "%v", extra)
	}
	assert.Equal(t, unformatted, fx.read(t))
}

func TestIntegration_DryRunDiff(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "")

	out, err := execute(t, "", "format", "--format", "diff", "--config", fx.config, "--color", "never", "--rules", "semicolons", fx.file)
	require.NoError(t, err)

	assert.Equal(t, unformatted, fx.read(t), "diff output implies a dry run")
	assert.Contains(t, out, "-let a = 1;\n")
	assert.Contains(t, out, "+let a = 1\n")
	assert.Contains(t, out, "1 file changed, 2 insertions(+), 2 deletions(-)")
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "")

	out, err := execute(t, "", "format", "--lint", "--format", "json", "--config", fx.config, "--rules", "semicolons", fx.file)
	require.ErrorIs(t, err, cli.ErrChangesPending)

	var report struct {
		Files []struct {
			Status  string `json:"status"`
			Changes int    `json:"changes"`
		} `json:"files"`
		Summary struct {
			TotalChanges int `json:"totalChanges"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 1)
	assert.Equal(t, "changed", report.Files[0].Status)
	assert.Equal(t, 2, report.Summary.TotalChanges)
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, unformatted, "")

	out, err := execute(t, "", "format", "--lint", "--format", "sarif", "--compact", "--config", fx.config, "--rules", "semicolons", fx.file)
	require.ErrorIs(t, err, cli.ErrChangesPending)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"ruleId":"semicolons"`)
	assert.Contains(t, out, `"version":"test-version"`)
}

func TestIntegration_Stdin(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", "")

	out, err := execute(t, unformatted, "format", "--config", fx.config, "--rules", "semicolons", "-")
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\nlet b = 2\n", out)

	out, err = execute(t, "let a = 1\n", "format", "--config", fx.config, "--rules", "semicolons", "-")
	require.NoError(t, err)
	assert.Equal(t, "let a = 1\n", out)
}

func TestIntegration_StdinLint(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "", "")

	out, err := execute(t, unformatted, "format", "--lint", "--color", "never", "--config", fx.config, "--rules", "semicolons", "-")
	require.ErrorIs(t, err, cli.ErrChangesPending)
	assert.Contains(t, out, "<stdin>:2  semicolons")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".swiftfmt.yml")

	_, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, content)

	// stdin is not a terminal in tests, so an existing file needs --force.
	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err)

	_, err = execute(t, "", "init", "--full", "--force", "--output", path)
	require.NoError(t, err)
	full, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(full), len(content))
}
