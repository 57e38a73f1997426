package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may not emit ANSI codes in non-TTY environments, so only
	// check that rendering keeps the text.
	assert.Contains(t, styles.Bold.Render("x"), "x")
	assert.Contains(t, styles.Rule.Render("semicolons"), "semicolons")
	assert.Contains(t, styles.TableHighlight.Render("row"), "row")
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, rendered := range map[string]string{
		"bold":      styles.Bold.Render("test"),
		"error":     styles.Error.Render("test"),
		"rule":      styles.Rule.Render("test"),
		"diff add":  styles.DiffAdd.Render("test"),
		"highlight": styles.TableHighlight.Render("test"),
	} {
		assert.Equal(t, "test", rendered, name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false},
		{"", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
