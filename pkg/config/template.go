package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule and option with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Rules describes the available rules.
	Rules []RuleInfo

	// Options describes the available formatting options.
	Options []OptionInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	Name        string
	Description string
	Enabled     bool
	Deprecated  string
}

// OptionInfo contains option metadata for template generation.
type OptionInfo struct {
	Key     string
	Help    string
	Default string
	Values  []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	if !opts.Full {
		buf.WriteString(minimalTemplate)
		return buf.Bytes()
	}

	buf.WriteString(`# File patterns to skip (glob patterns)
exclude:
  - "Pods/**"
  - ".build/**"
  - "Carthage/**"

# Backup configuration when writing files
backups:
  enabled: true
  mode: sidecar

# Opt-in rules to enable
# enable:
#   - acronyms

# Rules to disable
# disable:
#   - trailingCommas

# Formatting options
options:
`)

	optionInfos := append([]OptionInfo(nil), opts.Options...)
	sort.Slice(optionInfos, func(i, j int) bool { return optionInfos[i].Key < optionInfos[j].Key })
	for _, opt := range optionInfos {
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(opt.Help, commentWrapWidth))
		if len(opt.Values) > 0 {
			fmt.Fprintf(&buf, "  # Values: %s\n", strings.Join(opt.Values, ", "))
		}
		fmt.Fprintf(&buf, "  %s: %s\n", opt.Key, yamlScalar(opt.Default))
	}

	buf.WriteString("\n# Rule-specific configuration\nrules:\n")

	ruleInfos := append([]RuleInfo(nil), opts.Rules...)
	sort.Slice(ruleInfos, func(i, j int) bool { return ruleInfos[i].Name < ruleInfos[j].Name })
	for _, rule := range ruleInfos {
		if rule.Deprecated != "" {
			continue
		}
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", rule.Name)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
	}

	return buf.Bytes()
}

const minimalTemplate = `# File patterns to skip (glob patterns)
# exclude:
#   - "Pods/**"

# Opt-in rules to enable
# enable:
#   - acronyms

# Rules to disable
# disable:
#   - trailingCommas

# Formatting options
# options:
#   indent: 4
#   maxwidth: 120
#   swiftversion: "5.9"

# Per-rule configuration
# rules:
#   semicolons:
#     enabled: false
`

// yamlScalar quotes values YAML would otherwise read as something else.
func yamlScalar(value string) string {
	switch {
	case value == "":
		return `""`
	case strings.ContainsAny(value, ":#,[]{}&*!|>'\"%@`") || strings.TrimSpace(value) != value:
		return fmt.Sprintf("%q", value)
	}
	return value
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# swiftfmt configuration
# See: https://github.com/yaklabco/swiftfmt`
}
