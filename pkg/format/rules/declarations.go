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

// EmptyExtensionsRule removes extensions that add nothing.
type EmptyExtensionsRule struct {
	format.BaseRule
}

// NewEmptyExtensionsRule creates a new empty extensions rule.
func NewEmptyExtensionsRule() *EmptyExtensionsRule {
	return &EmptyExtensionsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "emptyExtensions",
			Help: "Remove empty, non-conforming, extensions.",
		}),
	}
}

// Apply removes extensions with an empty body and no conformance list.
// Extensions carrying a macro attribute may gain members at compile time and
// are kept.
func (r *EmptyExtensionsRule) Apply(f *engine.Formatter) {
	var empty []*declaration.Declaration
	declaration.ForEachRecursive(declaration.Parse(f), false, func(d *declaration.Declaration) {
		if d.Keyword != "extension" || !d.IsEmptyBody() {
			return
		}
		if len(d.Conformances) > 0 || d.HasMacroAttribute() || !f.IsEnabled(d.KeywordIndex) {
			return
		}
		empty = append(empty, d)
	})
	declaration.RemoveAll(empty)
}

// UnusedPrivateDeclarationsRule removes private declarations that nothing in
// the file refers to.
type UnusedPrivateDeclarationsRule struct {
	format.BaseRule
}

// NewUnusedPrivateDeclarationsRule creates a new unused private declarations
// rule.
func NewUnusedPrivateDeclarationsRule() *UnusedPrivateDeclarationsRule {
	return &UnusedPrivateDeclarationsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name: "unusedPrivateDeclarations",
			Help: "Remove unused private and fileprivate declarations.",
		}),
	}
}

var removableKeywords = map[string]bool{
	"let": true, "var": true, "func": true, "typealias": true,
	"class": true, "struct": true, "enum": true, "actor": true, "protocol": true,
}

// Apply removes a private or fileprivate declaration whose name appears only
// once in the file, as its own definition. Attributed declarations may be
// reached through the runtime and are kept, as are let/var lists that share
// one introducer. A removed type's members are removed with it.
func (r *UnusedPrivateDeclarationsRule) Apply(f *engine.Formatter) {
	counts := make(map[string]int)
	for _, tok := range f.Tokens() {
		if tok.IsIdentifier("") {
			counts[strings.Trim(tok.Text, "`")]++
		}
	}

	var unused []*declaration.Declaration
	var visit func(decls []*declaration.Declaration, coded bool)
	visit = func(decls []*declaration.Declaration, coded bool) {
		for _, d := range decls {
			// synthesized Codable conformances read stored properties
			storedCoded := coded && (d.Keyword == "let" || d.Keyword == "var")
			if !storedCoded && isUnusedPrivate(f, d, counts) {
				unused = append(unused, d)
				continue
			}
			switch d.Kind {
			case declaration.Type:
				visit(d.Body, isCodable(d))
			case declaration.Conditional:
				for _, b := range d.Branches {
					visit(b.Body, coded)
				}
			}
		}
	}
	visit(declaration.Parse(f), false)

	declaration.RemoveAll(unused)
}

func isCodable(d *declaration.Declaration) bool {
	for _, c := range d.Conformances {
		switch c {
		case "Codable", "Decodable", "Encodable":
			return true
		}
	}
	return false
}

func isUnusedPrivate(f *engine.Formatter, d *declaration.Declaration, counts map[string]int) bool {
	if vis := d.Visibility(); vis != "private" && vis != "fileprivate" {
		return false
	}
	if !removableKeywords[d.Keyword] || d.SharedIntroducer || d.Name == "" {
		return false
	}
	for _, m := range d.Modifiers {
		if strings.HasPrefix(m, "@") || m == "override" {
			return false
		}
	}
	if !f.IsEnabled(d.KeywordIndex) {
		return false
	}
	return counts[strings.Trim(d.Name, "`")] == 1
}

// ModifierOrderRule sorts declaration modifiers.
type ModifierOrderRule struct {
	format.BaseRule
}

// NewModifierOrderRule creates a new modifier order rule.
func NewModifierOrderRule() *ModifierOrderRule {
	return &ModifierOrderRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:    "modifierOrder",
			Help:    "Use consistent ordering for member modifiers.",
			Options: []string{"modifierorder"},
		}),
	}
}

var declarationKeywords = []string{
	"class", "struct", "enum", "protocol", "extension", "func", "init", "deinit",
	"subscript", "typealias", "let", "var", "case", "associatedtype", "actor", "macro",
}

type modifierGroup struct {
	start, end int
	text       string
}

// Apply reorders the modifiers that directly precede a declaration keyword
// on the same line. Modifiers missing from the configured order keep their
// relative position after the known ones.
func (r *ModifierOrderRule) Apply(f *engine.Formatter) {
	order := f.Options().ModifierOrder
	rank := func(text string) int {
		if n := slices.Index(order, text); n >= 0 {
			return n
		}
		base, _, _ := strings.Cut(text, "(")
		if n := slices.Index(order, base); n >= 0 {
			return n
		}
		return len(order)
	}

	isKeyword := func(t token.Token) bool {
		return t.IsIdentifierOrKeyword() && slices.Contains(declarationKeywords, t.Text)
	}
	f.ForEachReverse(isKeyword, func(i int, _ token.Token) {
		groups := modifiersBefore(f, i)
		if len(groups) < 2 {
			return
		}
		sorted := slices.Clone(groups)
		slices.SortStableFunc(sorted, func(a, b modifierGroup) int {
			return cmp.Compare(rank(a.text), rank(b.text))
		})
		if slices.Equal(sorted, groups) {
			return
		}

		all := f.Tokens()
		var toks []token.Token
		for n, g := range sorted {
			if n > 0 {
				toks = append(toks, token.Space(" "))
			}
			toks = append(toks, all[g.start:g.end]...)
		}
		f.ReplaceRange(groups[0].start, groups[len(groups)-1].end, toks)
	})
}

// modifiersBefore collects the modifiers preceding the keyword at i, in
// source order. A modifier with a single argument, as in "private(set)",
// forms one group.
func modifiersBefore(f *engine.Formatter, i int) []modifierGroup {
	var groups []modifierGroup
	j := i - 1
	for {
		for f.At(j).IsSpace() {
			j--
		}
		tok := f.At(j)
		switch {
		case isScopeEnd(tok, ")"):
			open := f.StartOfScope(j)
			word := open - 1
			if open < 0 || j-open != 2 || !declaration.IsModifier(f.At(word).Text) {
				return reversed(groups)
			}
			groups = append(groups, modifierGroup{start: word, end: j + 1, text: f.Text(word, j+1)})
			j = word - 1
		case tok.IsIdentifierOrKeyword() && declaration.IsModifier(tok.Text):
			groups = append(groups, modifierGroup{start: j, end: j + 1, text: tok.Text})
			j--
		default:
			return reversed(groups)
		}
	}
}

func reversed(groups []modifierGroup) []modifierGroup {
	slices.Reverse(groups)
	return groups
}

// OrganizeDeclarationsRule orders the members of type bodies by category.
type OrganizeDeclarationsRule struct {
	format.BaseRule
}

// NewOrganizeDeclarationsRule creates a new organize declarations rule.
func NewOrganizeDeclarationsRule() *OrganizeDeclarationsRule {
	return &OrganizeDeclarationsRule{
		BaseRule: format.NewBaseRule(format.RuleSpec{
			Name:      "organizeDeclarations",
			Help:      "Organize declarations within class, struct, enum, actor and extension bodies.",
			Options:   []string{"organizetypes"},
			RunsAfter: []string{"modifierOrder"},
			RunOnce:   true,
			OptIn:     true,
		}),
	}
}

// Member categories in body order.
const (
	categoryTypealias = iota
	categoryCase
	categoryNestedType
	categoryStaticProperty
	categoryInstanceProperty
	categoryInitializer
	categoryDeinitializer
	categoryStaticFunction
	categoryInstanceFunction
	categorySubscript
)

// Apply stably sorts the members of each organizable type by category,
// innermost types first. Bodies holding statements, conditional blocks,
// shared let/var introducers or single-line members are left alone.
func (r *OrganizeDeclarationsRule) Apply(f *engine.Formatter) {
	kinds := f.Options().OrganizeTypes
	// each iteration sorts one body; a sorted body is never reordered again
	for limit := f.Len(); limit > 0 && organizeNext(f, kinds); limit-- {
	}
}

// organizeNext reorders the first unsorted body it finds and reports
// whether it changed the buffer.
func organizeNext(f *engine.Formatter, kinds []string) bool {
	var visit func(decls []*declaration.Declaration) bool
	visit = func(decls []*declaration.Declaration) bool {
		for _, d := range decls {
			switch d.Kind {
			case declaration.Type:
				if visit(d.Body) {
					return true
				}
				if !slices.Contains(kinds, d.Keyword) || !f.IsEnabled(d.KeywordIndex) {
					continue
				}
				if members, ok := organizedMembers(f, d); ok {
					declaration.ReplaceBody(d, members)
					return true
				}
			case declaration.Conditional:
				for _, b := range d.Branches {
					if visit(b.Body) {
						return true
					}
				}
			}
		}
		return false
	}
	return visit(declaration.Parse(f))
}

func organizedMembers(f *engine.Formatter, d *declaration.Declaration) ([][]token.Token, bool) {
	if len(d.Body) < 2 {
		return nil, false
	}
	categories := make([]int, len(d.Body))
	for n, m := range d.Body {
		c, ok := memberCategory(m)
		if !ok || m.SharedIntroducer || !f.At(m.Range.End-1).IsLinebreak() {
			return nil, false
		}
		categories[n] = c
	}

	order := make([]int, len(d.Body))
	for n := range order {
		order[n] = n
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(categories[a], categories[b]) })
	if slices.IsSorted(order) {
		return nil, false
	}

	members := make([][]token.Token, 0, len(order))
	for _, n := range order {
		members = append(members, d.Body[n].Tokens())
	}
	return members, true
}

func memberCategory(d *declaration.Declaration) (int, bool) {
	static := d.HasModifier("static") || d.HasModifier("class")
	switch d.Keyword {
	case "typealias", "associatedtype":
		return categoryTypealias, true
	case "case":
		return categoryCase, true
	case "class", "struct", "enum", "actor", "protocol":
		if d.Kind == declaration.Type {
			return categoryNestedType, true
		}
	case "let", "var":
		if static {
			return categoryStaticProperty, true
		}
		return categoryInstanceProperty, true
	case "init":
		return categoryInitializer, true
	case "deinit":
		return categoryDeinitializer, true
	case "func":
		if static {
			return categoryStaticFunction, true
		}
		return categoryInstanceFunction, true
	case "subscript":
		return categorySubscript, true
	}
	return 0, false
}
