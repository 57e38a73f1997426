// Package declaration groups a token buffer into declarations: types with
// member bodies, simple declarations and statements, and conditional
// compilation blocks. Parsing is pure; results are never cached because any
// mutation of the buffer invalidates them.
package declaration

import (
	"slices"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// Kind classifies a declaration.
type Kind uint8

const (
	// Simple is a declaration or statement without a member body.
	Simple Kind = iota
	// Type is a class, struct, enum, actor, protocol or extension.
	Type
	// Conditional is an #if block.
	Conditional
)

func (k Kind) String() string {
	switch k {
	case Type:
		return "type"
	case Conditional:
		return "conditional"
	default:
		return "simple"
	}
}

// Range is a half-open token index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of tokens in the range.
func (r Range) Len() int {
	return max(r.End-r.Start, 0)
}

// Contains reports whether i lies in the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Branch is one arm of a conditional compilation block.
type Branch struct {
	Directive string // #if, #elseif or #else
	Range     Range
	Body      []*Declaration
}

// Declaration is a parsed declaration. Range covers leading blank lines and
// comments, the declaration itself and its trailing linebreak; sibling
// ranges tile their parent.
type Declaration struct {
	Kind      Kind
	Keyword   string // empty for plain statements
	Name      string
	Modifiers []string

	// KeywordIndex is the index of the introducing keyword token.
	KeywordIndex int
	Range        Range

	// BodyRange spans the members of a type, from after the opening brace to
	// the closing brace.
	BodyRange Range
	Body      []*Declaration

	Branches     []Branch
	Conformances []string

	// SharedIntroducer marks declarations split from one let/var statement,
	// as in "let a = 1, b = 2".
	SharedIntroducer bool

	f *engine.Formatter
}

// TypeKeywords introduce declarations with member bodies.
var TypeKeywords = []string{"class", "struct", "enum", "actor", "protocol", "extension"}

// SimpleKeywords introduce declarations without member bodies.
var SimpleKeywords = []string{
	"import", "let", "var", "func", "init", "deinit", "subscript", "typealias",
	"associatedtype", "case", "operator", "precedencegroup", "macro",
}

// Modifiers that may precede a declaration keyword.
var modifierWords = map[string]bool{
	"private": true, "fileprivate": true, "internal": true, "package": true,
	"public": true, "open": true, "static": true, "class": true, "final": true,
	"override": true, "mutating": true, "nonmutating": true, "lazy": true,
	"weak": true, "unowned": true, "required": true, "convenience": true,
	"dynamic": true, "optional": true, "indirect": true, "prefix": true,
	"postfix": true, "infix": true, "nonisolated": true, "isolated": true,
	"distributed": true, "consuming": true, "borrowing": true,
}

// IsModifier reports whether word is a declaration modifier.
func IsModifier(word string) bool {
	return modifierWords[word]
}

var visibilities = []string{"open", "public", "package", "internal", "fileprivate", "private"}

// plainAttributes are compiler attributes. Any other attribute is assumed
// to be a macro that may generate members.
var plainAttributes = map[string]bool{
	"@available": true, "@objc": true, "@objcMembers": true, "@nonobjc": true,
	"@discardableResult": true, "@MainActor": true, "@frozen": true,
	"@inlinable": true, "@inline": true, "@usableFromInline": true,
	"@testable": true, "@dynamicMemberLookup": true, "@dynamicCallable": true,
	"@propertyWrapper": true, "@resultBuilder": true, "@main": true,
	"@IBAction": true, "@IBOutlet": true, "@IBInspectable": true,
	"@IBDesignable": true, "@IBSegueAction": true, "@NSManaged": true,
	"@NSCopying": true, "@GKInspectable": true, "@UIApplicationMain": true,
	"@NSApplicationMain": true, "@preconcurrency": true, "@Sendable": true,
	"@unchecked": true, "@globalActor": true, "@warn_unqualified_access": true,
	"@escaping": true, "@autoclosure": true, "@retroactive": true,
	"@_spi": true, "@_exported": true, "@_implementationOnly": true,
}

// Visibility returns the declaration's access level, "internal" by default.
func (d *Declaration) Visibility() string {
	for _, m := range d.Modifiers {
		if slices.Contains(visibilities, m) {
			return m
		}
	}
	return "internal"
}

// HasModifier reports whether the declaration carries the modifier or attribute.
func (d *Declaration) HasModifier(name string) bool {
	return slices.Contains(d.Modifiers, name)
}

// HasMacroAttribute reports whether any attribute is not a plain compiler
// attribute, which suggests a macro that may expand the declaration.
func (d *Declaration) HasMacroAttribute() bool {
	for _, m := range d.Modifiers {
		if !strings.HasPrefix(m, "@") {
			continue
		}
		name, _, _ := strings.Cut(m, "(")
		if !plainAttributes[name] {
			return true
		}
	}
	return false
}

// IsEmptyBody reports whether a type's body holds nothing but whitespace.
func (d *Declaration) IsEmptyBody() bool {
	if d.Kind != Type {
		return false
	}
	for i := d.BodyRange.Start; i < d.BodyRange.End; i++ {
		if !d.f.At(i).IsSpaceOrLinebreak() {
			return false
		}
	}
	return true
}

// Tokens returns a copy of the declaration's tokens.
func (d *Declaration) Tokens() []token.Token {
	all := d.f.Tokens()
	return slices.Clone(all[d.Range.Start:min(d.Range.End, len(all))])
}

// Text renders the declaration.
func (d *Declaration) Text() string {
	return d.f.Text(d.Range.Start, d.Range.End)
}

// Remove deletes exactly the declaration's range from the buffer.
func (d *Declaration) Remove() {
	d.f.RemoveRange(d.Range.Start, d.Range.End)
}

// RemoveAll deletes declarations in reverse range order so earlier ranges
// stay valid.
func RemoveAll(decls []*Declaration) {
	sorted := slices.Clone(decls)
	slices.SortFunc(sorted, func(a, b *Declaration) int { return b.Range.Start - a.Range.Start })
	for _, d := range sorted {
		d.Remove()
	}
}

// ForEachRecursive visits declarations depth first. Type bodies are entered
// when intoTypes is set; conditional branches are always entered.
func ForEachRecursive(decls []*Declaration, intoTypes bool, fn func(*Declaration)) {
	for _, d := range decls {
		fn(d)
		switch d.Kind {
		case Type:
			if intoTypes {
				ForEachRecursive(d.Body, intoTypes, fn)
			}
		case Conditional:
			for _, b := range d.Branches {
				ForEachRecursive(b.Body, intoTypes, fn)
			}
		}
	}
}

// ReplaceBody replaces the span covered by a type's member declarations
// with the concatenated members. Whitespace before the closing brace is kept.
func ReplaceBody(d *Declaration, members [][]token.Token) {
	start, end := d.BodyRange.Start, d.BodyRange.Start
	if n := len(d.Body); n > 0 {
		start, end = d.Body[0].Range.Start, d.Body[n-1].Range.End
	}
	var toks []token.Token
	for _, m := range members {
		toks = append(toks, m...)
	}
	d.f.ReplaceRange(start, end, toks)
}
