// Package main is the entry point for the swiftfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/swiftfmt/internal/cli"
	"github.com/yaklabco/swiftfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	// Pending changes are reported by the formatter; only the exit code matters.
	if err != nil && !errors.Is(err, cli.ErrChangesPending) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
