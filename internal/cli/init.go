package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/configloader"
	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/format"
)

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand(registry *format.Registry) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a swiftfmt configuration file",
		Long: `Create a .swiftfmt.yml configuration file in the current directory.

The minimal template lists the opt-in rules and the most common options.
The full template documents every rule and every formatting option.

Examples:
  swiftfmt init                       Create minimal .swiftfmt.yml
  swiftfmt init --full                Document all rules and options
  swiftfmt init --output ci.yml       Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, registry, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule and option")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName(), "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, registry *format.Registry, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content := configloader.TemplateFor(registry, flags.full)
	if err := configloader.WriteTemplate(absPath, content, flags.force, cmd.ErrOrStderr()); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'swiftfmt rules' to see all available rules")

	return nil
}
