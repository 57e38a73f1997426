package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Table layout constants.
const (
	columnGap      = 2
	minColumnWidth = 4
	heavySeparator = "═"
	lightSeparator = "─"
	ellipsis       = "…"
)

// Align is a column alignment.
type Align int

// Column alignments.
const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Title string
	Align Align
	// Flex columns shrink first when the table exceeds the width limit.
	Flex bool
}

// Table renders rows of plain cells as an aligned, styled table.
// Cells are measured by display width, so wide runes line up.
type Table struct {
	styles  *Styles
	columns []Column
	rows    [][]string
	marked  map[int]bool
	footer  []string
	width   int
}

// NewTable creates a table with the given columns. maxWidth bounds the
// rendered width; 0 means unbounded.
func NewTable(styles *Styles, maxWidth int, columns ...Column) *Table {
	return &Table{
		styles:  styles,
		columns: columns,
		marked:  make(map[int]bool),
		width:   maxWidth,
	}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Highlight marks the most recently added row.
func (t *Table) Highlight() {
	if len(t.rows) > 0 {
		t.marked[len(t.rows)-1] = true
	}
}

// SetFooter sets a totals row rendered below a separator.
func (t *Table) SetFooter(cells ...string) {
	t.footer = make([]string, len(t.columns))
	copy(t.footer, cells)
}

// Len returns the number of body rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	if len(t.columns) == 0 {
		return ""
	}

	widths := t.columnWidths()
	total := sum(widths) + columnGap*(len(widths)-1)

	var builder strings.Builder

	titles := make([]string, len(t.columns))
	for i, col := range t.columns {
		titles[i] = col.Title
	}
	builder.WriteString(t.renderRow(titles, widths, t.styles.TableHeader))
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for i, row := range t.rows {
		style := t.styles.Message
		if t.marked[i] {
			style = t.styles.TableHighlight
		}
		builder.WriteString(t.renderRow(row, widths, style))
	}

	if t.footer != nil {
		builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)) + "\n")
		builder.WriteString(t.renderRow(t.footer, widths, t.styles.Bold))
	}

	return builder.String()
}

// renderRow pads each cell before styling so ANSI codes do not skew widths.
func (t *Table) renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		cell = truncate(cell, widths[i])
		if t.columns[i].Align == AlignRight {
			cell = runewidth.FillLeft(cell, widths[i])
		} else if i < len(cells)-1 {
			cell = runewidth.FillRight(cell, widths[i])
		}
		parts[i] = style.Render(cell)
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", columnGap)), " ") + "\n"
}

// columnWidths sizes columns to their content, then shrinks flex columns
// until the table fits the width limit.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	measure := func(cells []string) {
		for i, cell := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.Title)
	}
	for _, row := range t.rows {
		measure(row)
	}
	if t.footer != nil {
		measure(t.footer)
	}

	if t.width <= 0 {
		return widths
	}

	excess := sum(widths) + columnGap*(len(widths)-1) - t.width
	for i, col := range t.columns {
		if excess <= 0 {
			break
		}
		if !col.Flex {
			continue
		}
		shrink := min(excess, widths[i]-minColumnWidth)
		if shrink > 0 {
			widths[i] -= shrink
			excess -= shrink
		}
	}
	return widths
}

// truncate shortens s to width display columns. Paths keep their tail.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if strings.ContainsRune(s, '/') {
		runes := []rune(s)
		for i := range runes {
			tail := string(runes[i:])
			if runewidth.StringWidth(tail)+runewidth.StringWidth(ellipsis) <= width {
				return ellipsis + tail
			}
		}
	}
	return runewidth.Truncate(s, width, ellipsis)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
