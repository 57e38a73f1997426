package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
)

// helpStyles colors the parts of command help.
type helpStyles struct {
	heading    lipgloss.Style
	command    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, subcommand: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// applyHelp installs styled help and usage output on cmd and, through
// inheritance, on its subcommands.
func applyHelp(cmd *cobra.Command, colorMode string, writer io.Writer) {
	styles := newHelpStyles(pretty.IsColorEnabled(colorMode, writer))

	funcs := template.FuncMap{
		"heading":    styles.heading.Render,
		"command":    styles.command.Render,
		"subcommand": styles.subcommand.Render,
		"dim":        styles.dim.Render,
		"flags":      styles.renderFlags,
		"rpad":       rpad,
		"join":       strings.Join,
		"trim":       trimTrailingSpace,
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStdout(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// renderFlags colors the flag names in pflag's aligned usage text. Each
// line is "  -f, --flag type   description"; the flag column ends at the
// first run of two spaces.
func (s helpStyles) renderFlags(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		names, rest, found := strings.Cut(body, "  ")
		if !found || names == "" {
			continue
		}

		words := strings.Fields(names)
		for j, word := range words {
			if strings.HasPrefix(word, "-") {
				comma := strings.HasSuffix(word, ",")
				word = s.flag.Render(strings.TrimSuffix(word, ","))
				if comma {
					word += ","
				}
			} else {
				word = s.dim.Render(word)
			}
			words[j] = word
		}
		// Keep the original padding so descriptions stay aligned.
		lines[i] = indent + strings.Join(words, " ") + "  " + rest
	}
	return strings.Join(lines, "\n")
}

// rpad pads s with spaces to width.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
