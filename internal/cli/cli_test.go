package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "swiftfmt", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"format", "fmt", "rules", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %s", name)
		assert.NotEqual(t, cmd, sub, "subcommand %s", name)
	}
}

func TestFormatCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	for _, name := range []string{
		"lint", "dry-run", "format", "jobs", "enable", "disable", "rules",
		"option", "exclude", "no-backups", "include-vendored",
		"detect-scripts", "follow-symlinks", "compact", "max-passes",
	} {
		assert.NotNil(t, formatCmd.Flags().Lookup(name), "flag %s", name)
	}

	assert.Contains(t, formatCmd.Flags().Lookup("format").Usage, "summary")
	assert.NoError(t, formatCmd.Args(formatCmd, []string{"a.swift", "Sources/"}))
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "format")
	assert.Contains(t, out.String(), "--config")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "test-version")
	assert.Contains(t, out.String(), "test-commit")
}

func TestVersionCommand_Short(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "test-version\n", out.String())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, cli.ExitSuccess},
		{"changes pending", cli.ErrChangesPending, cli.ExitChangesPending},
		{"wrapped changes pending", fmt.Errorf("run: %w", cli.ErrChangesPending), cli.ExitChangesPending},
		{"file failures", cli.ErrFilesFailed, cli.ExitError},
		{"other", errors.New("boom"), cli.ExitError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), tt.name)
	}
}
