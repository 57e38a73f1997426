package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
)

func TestTable_String(t *testing.T) {
	table := pretty.NewTable(pretty.NewStyles(false), 0,
		pretty.Column{Title: "Rule"},
		pretty.Column{Title: "Changes", Align: pretty.AlignRight},
	)
	table.AddRow("semicolons", "12")
	table.AddRow("indent", "3")
	table.Highlight()
	table.SetFooter("Total", "15")

	assert.Equal(t, 2, table.Len())

	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Rule        Changes", lines[0])
	assert.Equal(t, strings.Repeat("═", 19), lines[1])
	assert.Equal(t, "semicolons       12", lines[2])
	assert.Equal(t, "indent            3", lines[3])
	assert.Equal(t, strings.Repeat("─", 19), lines[4])
	assert.Equal(t, "Total            15", lines[5])
}

func TestTable_MissingCells(t *testing.T) {
	table := pretty.NewTable(pretty.NewStyles(false), 0,
		pretty.Column{Title: "A"},
		pretty.Column{Title: "B"},
	)
	table.AddRow("x")
	table.AddRow("y", "z", "dropped")

	out := table.String()
	assert.Contains(t, out, "x\n")
	assert.Contains(t, out, "y  z\n")
	assert.NotContains(t, out, "dropped")
}

func TestTable_FlexColumnShrinks(t *testing.T) {
	table := pretty.NewTable(pretty.NewStyles(false), 20,
		pretty.Column{Title: "File", Flex: true},
		pretty.Column{Title: "Changes", Align: pretty.AlignRight},
	)
	table.AddRow("Sources/App/Views/ContentView.swift", "4")

	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// File column shrinks to 11 so the row fits 20 columns.
	assert.Equal(t, "…View.swift        4", lines[2])
}

func TestTable_NoColumns(t *testing.T) {
	assert.Empty(t, pretty.NewTable(pretty.NewStyles(false), 0).String())
}
