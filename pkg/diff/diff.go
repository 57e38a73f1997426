// Package diff renders unified diffs between original and formatted source.
package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk represents a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []Line
}

// Line represents a single line in a diff hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line content (without the diff prefix).
	Content string

	// NoNewline marks the last line of content that does not end in a newline.
	NoNewline bool
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Generate creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func Generate(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)
	if slices.Equal(origLines, modLines) {
		return nil
	}

	d := &Diff{Path: path}
	matcher := difflib.NewMatcher(origLines, modLines)
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		hunk := buildHunk(group, origLines, modLines)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				d.Additions++
			case LineRemove:
				d.Deletions++
			}
		}
		d.Hunks = append(d.Hunks, hunk)
	}

	if len(d.Hunks) == 0 {
		return nil
	}
	return d
}

func buildHunk(group []difflib.OpCode, orig, mod []string) Hunk {
	first, last := group[0], group[len(group)-1]
	hunk := Hunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}

	appendLines := func(kind LineKind, lines []string) {
		for _, raw := range lines {
			content, terminated := strings.CutSuffix(raw, "\n")
			hunk.Lines = append(hunk.Lines, Line{Kind: kind, Content: content, NoNewline: !terminated})
		}
	}

	for _, op := range group {
		switch op.Tag {
		case 'e':
			appendLines(LineContext, orig[op.I1:op.I2])
		case 'd':
			appendLines(LineRemove, orig[op.I1:op.I2])
		case 'i':
			appendLines(LineAdd, mod[op.J1:op.J2])
		case 'r':
			appendLines(LineRemove, orig[op.I1:op.I2])
			appendLines(LineAdd, mod[op.J1:op.J2])
		}
	}

	return hunk
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case LineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case LineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
			if line.NoNewline {
				builder.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines that keep their newline, so that a
// missing final newline compares unequal to a present one.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
