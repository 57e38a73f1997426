package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/configloader"
	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/fsutil"
	"github.com/yaklabco/swiftfmt/pkg/reporter"
	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// stdinPath names standard input in output.
const stdinPath = "<stdin>"

type formatFlags struct {
	format          string
	enable          []string
	disable         []string
	only            []string
	options         []string
	exclude         []string
	includeVendored bool
	detectScripts   bool
	followSymlinks  bool
	compact         bool
	maxPasses       int
}

func newFormatCommand(registry *format.Registry, info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format Swift files",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, registry, info, &cfg, flags)
		},
	}

	addFormatFlags(cmd, &cfg, flags)

	return cmd
}

const formatLongDescription = `Format Swift files in place.

By default, formats every .swift file under the current directory,
skipping hidden and vendored directories. Pass "-" to read from stdin
and write the result to stdout.

Examples:
  swiftfmt format                               # Format current directory
  swiftfmt format Sources/                      # Format one directory
  swiftfmt format --lint                        # Report unformatted files, exit 1
  swiftfmt format --dry-run --format diff       # Show changes without writing
  swiftfmt format --rules braces,trailingSpace  # Run only the listed rules
  swiftfmt format --option indent=2             # Override a formatting option
  cat Foo.swift | swiftfmt format -             # Format stdin`

func addFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	cmd.Flags().BoolVar(&cfg.Lint, "lint", false, "report files that need formatting without writing them")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "compute changes and diffs without writing files")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff, summary, sarif")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable in addition to the defaults")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable")
	cmd.Flags().StringSliceVar(&flags.only, "rules", nil, "run only these rules")
	cmd.Flags().StringArrayVar(&flags.options, "option", nil, "formatting option as key=value (repeatable)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also format Pods, Carthage and other vendored code")
	cmd.Flags().BoolVar(&flags.detectScripts, "detect-scripts", false, "also format extensionless Swift scripts")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse directory symlinks")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON and SARIF output")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", format.DefaultMaxPasses, "maximum formatting passes per file")
}

// parseOptionFlags turns key=value pairs into an override map.
func parseOptionFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --option %q: expected key=value", pair)
		}
		overrides[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	return overrides, nil
}

func runFormat(
	cmd *cobra.Command,
	args []string,
	registry *format.Registry,
	info BuildInfo,
	cfg *config.Config,
	flags *formatFlags,
) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.OnlyRules = flags.only

	overrides, err := parseOptionFlags(flags.options)
	if err != nil {
		return err
	}
	cfg.OptionOverrides = overrides

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     registry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config

	opts, err := loadResult.Options()
	if err != nil {
		return err
	}
	enabled, err := loadResult.EnabledRules(registry)
	if err != nil {
		return err
	}

	outputFormat, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	fileOpts := format.DefaultFileOptions()
	fileOpts.Lint = finalCfg.Lint
	// Diff output needs the diffs, which only dry runs compute.
	fileOpts.DryRun = finalCfg.DryRun || outputFormat == reporter.FormatDiff
	fileOpts.Backup = fsutil.BackupConfig{
		Enabled: finalCfg.Backups.Enabled && !finalCfg.NoBackups,
		Mode:    fsutil.BackupMode(finalCfg.Backups.Mode),
	}
	fileOpts.Pipeline.MaxPasses = flags.maxPasses

	logger.Debug("configuration loaded",
		logging.FieldLint, fileOpts.Lint,
		logging.FieldDryRun, fileOpts.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldRules, len(enabled),
	)

	processor := format.NewProcessor(registry, opts, enabled)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      outputFormat,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
		Lint:        fileOpts.Lint || fileOpts.DryRun,
		Registry:    registry,
		ToolVersion: info.Version,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if len(args) == 1 && args[0] == "-" {
		return formatStdin(ctx, cmd, processor, fileOpts, rep)
	}

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    append(append([]string(nil), finalCfg.Exclude...), flags.exclude...),
		IncludeVendored: flags.includeVendored,
		DetectScripts:   flags.detectScripts,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            finalCfg.Jobs,
		File:            fileOpts,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(processor).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, fileOpts.Lint)
}

// formatStdin formats standard input. Without --lint or --dry-run the
// formatted source is written to stdout in place of a report.
func formatStdin(
	ctx context.Context,
	cmd *cobra.Command,
	processor *format.Processor,
	fileOpts format.FileOptions,
	rep reporter.Reporter,
) error {
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	res, err := processor.ProcessContent(ctx, stdinPath, input, fileOpts)
	if err != nil {
		return err
	}

	if !fileOpts.Lint && !fileOpts.DryRun {
		output := input
		if res.Modified {
			output = res.Formatted
		}
		if _, err := cmd.OutOrStdout().Write(output); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	result := runner.NewResult(runner.FileOutcome{Path: stdinPath, Result: res})
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return resultError(result, fileOpts.Lint)
}
