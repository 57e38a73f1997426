package rules

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/declaration"
	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// BlankLineAfterImportsRule inserts a blank line after the last import of a
// group.
type BlankLineAfterImportsRule struct {
	format.BaseRule
}

// NewBlankLineAfterImportsRule creates a new blank line after imports rule.
func NewBlankLineAfterImportsRule() *BlankLineAfterImportsRule {
	return &BlankLineAfterImportsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "blankLineAfterImports",
			Help:          "Insert blank line after import statements.",
			SharedOptions: []string{"linebreaks"},
			RunsAfter:     []string{"sortImports", "duplicateImports"},
		}),
	}
}

// Apply inserts a linebreak after an import line when the next code line is
// neither another import, the end of a conditional block nor a scope closer,
// and the line that follows is not blank already.
func (r *BlankLineAfterImportsRule) Apply(f *engine.Formatter) {
	f.ForEachReverse(token.KeywordIn("import"), func(i int, _ token.Token) {
		eol := f.EndOfLine(i)
		if eol >= f.Len() {
			return
		}
		next := f.NextCode(eol)
		if next < 0 || continuesImports(f, next) || f.At(next).IsEndOfScope() {
			return
		}
		if f.IsBlankLine(eol + 1) {
			return
		}
		f.InsertLinebreak(eol + 1)
	})
}

// continuesImports reports whether the code at i belongs with a preceding
// import group.
func continuesImports(f *engine.Formatter, i int) bool {
	tok := f.At(i)
	switch {
	case tok.IsKeyword("import"):
		return true
	case tok.IsAttribute():
		return f.At(skipAttributes(f, i)).IsKeyword("import")
	case isScopeEnd(tok, "#endif"), tok.IsKeyword("#else"), tok.IsKeyword("#elseif"):
		return true
	case isScopeStart(tok, "#if"):
		first := f.NextCode(f.EndOfLine(i))
		return first >= 0 && continuesImports(f, first)
	}
	return false
}

// skipAttributes returns the first code token after a run of attributes
// starting at i, stepping over attribute arguments.
func skipAttributes(f *engine.Formatter, i int) int {
	for f.At(i).IsAttribute() {
		next := f.NextCode(i)
		if isScopeStart(f.At(next), "(") && next == i+1 {
			end := f.EndOfScope(next)
			if end < 0 {
				return -1
			}
			next = f.NextCode(end)
		}
		if next < 0 {
			return -1
		}
		i = next
	}
	return i
}

// DuplicateImportsRule removes repeated imports.
type DuplicateImportsRule struct {
	format.BaseRule
}

// NewDuplicateImportsRule creates a new duplicate imports rule.
func NewDuplicateImportsRule() *DuplicateImportsRule {
	return &DuplicateImportsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "duplicateImports",
			Help: "Remove duplicate import statements.",
		}),
	}
}

// Apply removes every import that repeats an earlier one with the same
// attributes in the same declaration list. Imports in different conditional
// branches never collide.
func (r *DuplicateImportsRule) Apply(f *engine.Formatter) {
	var duplicates []*declaration.Declaration

	var visit func(decls []*declaration.Declaration)
	visit = func(decls []*declaration.Declaration) {
		seen := make(map[string]bool)
		for _, d := range decls {
			switch {
			case d.Kind == declaration.Conditional:
				for _, b := range d.Branches {
					visit(b.Body)
				}
			case d.Keyword == "import" && d.Name != "":
				key := importKey(d)
				if seen[key] && f.IsEnabled(d.KeywordIndex) {
					duplicates = append(duplicates, d)
					continue
				}
				seen[key] = true
			}
		}
	}
	visit(declaration.Parse(f))

	declaration.RemoveAll(duplicates)
}

func importKey(d *declaration.Declaration) string {
	return strings.Join(d.Modifiers, " ") + " " + d.Name
}

// SortImportsRule sorts runs of adjacent imports.
type SortImportsRule struct {
	format.BaseRule
}

// NewSortImportsRule creates a new sort imports rule.
func NewSortImportsRule() *SortImportsRule {
	return &SortImportsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:          "sortImports",
			Help:          "Sort import statements alphabetically.",
			Options:       []string{"importgrouping"},
			SharedOptions: []string{"linebreaks"},
			RunsAfter:     []string{"duplicateImports"},
		}),
	}
}

// Apply sorts each run of consecutive import lines. A blank line or comment
// ends a run, so hand-made groups keep their order.
func (r *SortImportsRule) Apply(f *engine.Formatter) {
	compare := importComparator(f.Options().ImportGrouping)

	var edits []engine.Edit
	var visit func(decls []*declaration.Declaration)
	visit = func(decls []*declaration.Declaration) {
		for _, run := range importRuns(f, decls) {
			if edit, ok := sortRun(f, run, compare); ok {
				edits = append(edits, edit)
			}
		}
		for _, d := range decls {
			if d.Kind == declaration.Conditional {
				for _, b := range d.Branches {
					visit(b.Body)
				}
			}
		}
	}
	visit(declaration.Parse(f))

	f.ApplyEdits(edits)
}

type importLine struct {
	decl  *declaration.Declaration
	start int // first token of the import's own line
}

// importRuns groups decls into runs of imports that sit on adjacent lines.
func importRuns(f *engine.Formatter, decls []*declaration.Declaration) [][]importLine {
	var runs [][]importLine
	var current []importLine
	flush := func() {
		if len(current) > 1 {
			runs = append(runs, current)
		}
		current = nil
	}

	for _, d := range decls {
		if d.Keyword != "import" || d.Name == "" {
			flush()
			continue
		}
		first := f.NextWithin(d.Range.Start-1, d.Range.End, token.NonSpaceOrCommentOrLinebreak)
		start := f.StartOfLine(first)
		if start < d.Range.Start || containsSemicolon(f, d) {
			flush()
			continue
		}
		if len(current) > 0 && start != d.Range.Start {
			// leading blank lines or comments start a new group
			flush()
		}
		current = append(current, importLine{decl: d, start: start})
	}
	flush()
	return runs
}

func containsSemicolon(f *engine.Formatter, d *declaration.Declaration) bool {
	return f.NextWithin(d.Range.Start-1, d.Range.End, token.Is(token.Delimiter(";"))) >= 0
}

// sortRun returns the edit that reorders run, or false if it is sorted.
func sortRun(f *engine.Formatter, run []importLine, compare func(a, b *declaration.Declaration) int) (engine.Edit, bool) {
	sorted := slices.Clone(run)
	slices.SortStableFunc(sorted, func(a, b importLine) int { return compare(a.decl, b.decl) })

	same := true
	for n := range run {
		if run[n].decl != sorted[n].decl {
			same = false
			break
		}
	}
	if same || !f.IsEnabled(run[0].decl.KeywordIndex) {
		return engine.Edit{}, false
	}

	all := f.Tokens()
	last := run[len(run)-1].decl
	var toks []token.Token
	for n, line := range sorted {
		body := all[line.start:line.decl.Range.End]
		if k := len(body); k > 0 && body[k-1].IsLinebreak() {
			body = body[:k-1]
		}
		toks = append(toks, body...)
		if n < len(sorted)-1 {
			toks = append(toks, f.LinebreakToken(line.start))
		}
	}
	if f.At(last.Range.End - 1).IsLinebreak() {
		toks = append(toks, f.At(last.Range.End-1))
	}

	return engine.Edit{Start: run[0].start, End: last.Range.End, Tokens: toks}, true
}

func importComparator(grouping string) func(a, b *declaration.Declaration) int {
	alpha := func(a, b *declaration.Declaration) int {
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	}
	testableRank := func(d *declaration.Declaration) int {
		if d.HasModifier("@testable") {
			return 1
		}
		return 0
	}

	switch grouping {
	case "length":
		return func(a, b *declaration.Declaration) int {
			if c := cmp.Compare(len(a.Name), len(b.Name)); c != 0 {
				return c
			}
			return alpha(a, b)
		}
	case "testable-first":
		return func(a, b *declaration.Declaration) int {
			if c := cmp.Compare(testableRank(b), testableRank(a)); c != 0 {
				return c
			}
			return alpha(a, b)
		}
	case "testable-last":
		return func(a, b *declaration.Declaration) int {
			if c := cmp.Compare(testableRank(a), testableRank(b)); c != 0 {
				return c
			}
			return alpha(a, b)
		}
	default:
		return alpha
	}
}
