// Package cli provides the Cobra command structure for swiftfmt.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/format/rules"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root swiftfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "swiftfmt",
		Short: "A token-based Swift source formatter",
		Long: `swiftfmt rewrites Swift source files to a consistent style.

It tokenizes each file and applies an ordered set of formatting rules,
repeating until the output stops changing. Rules can be enabled, disabled
and tuned through .swiftfmt.yml, SWIFTFMT_* environment variables or flags.
Use --lint in CI to fail when files are not formatted.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	registry := rules.MustNewRegistry()

	rootCmd.AddCommand(newFormatCommand(registry, info))
	rootCmd.AddCommand(newRulesCommand(registry))
	rootCmd.AddCommand(newInitCommand(registry))
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, color, os.Stdout)

	return rootCmd
}
