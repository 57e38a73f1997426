package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/options"
)

// Output formats for the rules command.
const (
	rulesFormatText     = "text"
	rulesFormatJSON     = "json"
	rulesFormatMarkdown = "markdown"
	rulesFormatHTML     = "html"
)

type rulesFlags struct {
	format     string
	deprecated bool
}

func newRulesCommand(registry *format.Registry) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available formatting rules",
		Long: `List every formatting rule with whether it runs by default and the
options it reads.

The markdown and html formats produce a reference page that also documents
every formatting option.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := registry.List()
			if !flags.deprecated {
				infos = currentRules(infos)
			}
			out := cmd.OutOrStdout()

			switch flags.format {
			case rulesFormatText, "":
				colorMode, _ := cmd.Flags().GetString("color")
				return writeRulesText(out, infos, colorMode)
			case rulesFormatJSON:
				return writeRulesJSON(out, infos)
			case rulesFormatMarkdown:
				_, err := io.WriteString(out, rulesMarkdown(infos, options.Known().All()))
				return err
			case rulesFormatHTML:
				return writeRulesHTML(out, rulesMarkdown(infos, options.Known().All()))
			default:
				return fmt.Errorf("unknown format %q; valid formats: text, json, markdown, html", flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", rulesFormatText,
		"output format: text, json, markdown, html")
	cmd.Flags().BoolVar(&flags.deprecated, "deprecated", false, "include deprecated rule aliases")

	return cmd
}

func currentRules(infos []format.RuleInfo) []format.RuleInfo {
	current := make([]format.RuleInfo, 0, len(infos))
	for _, info := range infos {
		if info.Deprecated == "" {
			current = append(current, info)
		}
	}
	return current
}

func writeRulesText(out io.Writer, infos []format.RuleInfo, colorMode string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	table := pretty.NewTable(styles, pretty.TerminalWidth(out),
		pretty.Column{Title: "Rule"},
		pretty.Column{Title: "Default"},
		pretty.Column{Title: "Description", Flex: true},
	)

	for _, info := range infos {
		state := "off"
		switch {
		case info.Deprecated != "":
			state = "deprecated"
		case info.DefaultEnabled:
			state = "on"
		}
		table.AddRow(info.Name, state, info.Help)
	}

	_, err := fmt.Fprintf(out, "%s\n%s", table.String(),
		styles.Dim.Render(fmt.Sprintf("%d rules; enable opt-in rules with --enable or the enable list in .swiftfmt.yml\n", len(infos))))
	return err
}

func writeRulesJSON(out io.Writer, infos []format.RuleInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// rulesMarkdown renders the rule and option reference as Markdown.
func rulesMarkdown(infos []format.RuleInfo, descriptors []options.Descriptor) string {
	var b strings.Builder

	b.WriteString("# swiftfmt rules\n\n")
	for _, info := range infos {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", info.Name, info.Help)

		enabled := "no"
		if info.DefaultEnabled {
			enabled = "yes"
		}
		fmt.Fprintf(&b, "- Enabled by default: %s\n", enabled)
		if info.Deprecated != "" {
			fmt.Fprintf(&b, "- Deprecated: use `%s`\n", info.Deprecated)
		}
		if opts := append(append([]string(nil), info.Options...), info.SharedOptions...); len(opts) > 0 {
			fmt.Fprintf(&b, "- Options: %s\n", codeList(opts))
		}
		if len(info.RunsAfter) > 0 {
			fmt.Fprintf(&b, "- Runs after: %s\n", codeList(info.RunsAfter))
		}
		if info.RunOnce {
			b.WriteString("- Runs once per file\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("# Options\n\n")
	b.WriteString("| Option | Default | Values | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, desc := range descriptors {
		defaultCell := ""
		if desc.Default != "" {
			defaultCell = codeList([]string{desc.Default})
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", desc.Key, defaultCell, codeList(desc.Values), escapeCell(desc.Help))
	}

	return b.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	return strings.Join(quoted, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// writeRulesHTML converts the Markdown reference to HTML with goldmark.
func writeRulesHTML(out io.Writer, markdown string) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err := buf.WriteTo(out)
	return err
}
