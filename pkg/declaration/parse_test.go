package declaration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/options"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

func newFormatter(src string) *engine.Formatter {
	return engine.New(token.Tokenize(src), options.Default())
}

const sample = `import Foundation

// Doc
private struct Foo: Bar, Baz<Int> {
    let a = 1, b = 2
    func f() {}
}

#if DEBUG
extension Foo {}
#else
let z = 0
#endif
`

func TestParse_TopLevel(t *testing.T) {
	f := newFormatter(sample)
	decls := Parse(f)
	require.Len(t, decls, 3)

	imp := decls[0]
	assert.Equal(t, Simple, imp.Kind)
	assert.Equal(t, "import", imp.Keyword)
	assert.Equal(t, "Foundation", imp.Name)
	assert.Equal(t, "import Foundation\n", imp.Text())

	st := decls[1]
	assert.Equal(t, Type, st.Kind)
	assert.Equal(t, "struct", st.Keyword)
	assert.Equal(t, "Foo", st.Name)
	assert.Equal(t, []string{"private"}, st.Modifiers)
	assert.Equal(t, "private", st.Visibility())
	assert.Equal(t, []string{"Bar", "Baz<Int>"}, st.Conformances)
	assert.Contains(t, st.Text(), "// Doc\nprivate struct Foo")
	assert.False(t, st.IsEmptyBody())

	cond := decls[2]
	assert.Equal(t, Conditional, cond.Kind)
	require.Len(t, cond.Branches, 2)
	assert.Equal(t, "#if", cond.Branches[0].Directive)
	assert.Equal(t, "#else", cond.Branches[1].Directive)
	require.Len(t, cond.Branches[0].Body, 1)
	assert.True(t, cond.Branches[0].Body[0].IsEmptyBody())
	require.Len(t, cond.Branches[1].Body, 1)
	assert.Equal(t, "z", cond.Branches[1].Body[0].Name)
	assert.Equal(t, f.Len(), cond.Range.End)
}

func TestParse_TypeBody(t *testing.T) {
	decls := Parse(newFormatter(sample))
	body := decls[1].Body
	require.Len(t, body, 3)

	assert.Equal(t, "a", body[0].Name)
	assert.Equal(t, "b", body[1].Name)
	assert.True(t, body[0].SharedIntroducer)
	assert.True(t, body[1].SharedIntroducer)
	assert.Equal(t, "    let a = 1,", body[0].Text())
	assert.Equal(t, " b = 2\n", body[1].Text())

	assert.Equal(t, "func", body[2].Keyword)
	assert.Equal(t, "f", body[2].Name)
	assert.False(t, body[2].SharedIntroducer)
	assert.Equal(t, "internal", body[2].Visibility())
}

func TestParse_RangesTile(t *testing.T) {
	f := newFormatter(sample)
	decls := Parse(f)

	assert.Equal(t, 0, decls[0].Range.Start)
	for i := 1; i < len(decls); i++ {
		assert.Equal(t, decls[i-1].Range.End, decls[i].Range.Start)
	}
}

func TestForEachRecursive(t *testing.T) {
	decls := Parse(newFormatter(sample))

	var deep, shallow []string
	ForEachRecursive(decls, true, func(d *Declaration) {
		if d.Kind != Conditional {
			deep = append(deep, d.Name)
		}
	})
	ForEachRecursive(decls, false, func(d *Declaration) {
		if d.Kind != Conditional {
			shallow = append(shallow, d.Name)
		}
	})

	assert.Equal(t, []string{"Foundation", "Foo", "a", "b", "f", "Foo", "z"}, deep)
	assert.Equal(t, []string{"Foundation", "Foo", "Foo", "z"}, shallow)
}

func TestDeclaration_Remove(t *testing.T) {
	f := newFormatter(sample)
	Parse(f)[0].Remove()
	assert.Equal(t, "\n// Doc\nprivate struct", f.String()[:len("\n// Doc\nprivate struct")])
}

func TestRemoveAll(t *testing.T) {
	f := newFormatter("struct S {\n    let a = 1, b = 2\n    func f() {}\n}\n")
	body := Parse(f)[0].Body
	require.Len(t, body, 3)

	RemoveAll(body[:2])
	assert.Equal(t, "struct S {\n    func f() {}\n}\n", f.String())
}

func TestReplaceBody(t *testing.T) {
	f := newFormatter("struct S {\n    let a = 1\n    let b = 2\n}\n")
	d := Parse(f)[0]
	require.Len(t, d.Body, 2)

	ReplaceBody(d, [][]token.Token{d.Body[1].Tokens(), d.Body[0].Tokens()})
	assert.Equal(t, "struct S {\n    let b = 2\n    let a = 1\n}\n", f.String())
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "member chain continues",
			input: "let x = foo\n    .bar()\nlet y = 1\n",
			want:  []string{"let x = foo\n    .bar()\n", "let y = 1\n"},
		},
		{
			name:  "attribute on its own line",
			input: "@objc\nfunc foo() {}\n",
			want:  []string{"@objc\nfunc foo() {}\n"},
		},
		{
			name:  "allman braces",
			input: "func foo()\n{\n}\nlet a = 1\n",
			want:  []string{"func foo()\n{\n}\n", "let a = 1\n"},
		},
		{
			name:  "trailing infix operator",
			input: "let a = 1 +\n    2\nlet b = 3\n",
			want:  []string{"let a = 1 +\n    2\n", "let b = 3\n"},
		},
		{
			name:  "no trailing linebreak",
			input: "let a = 1",
			want:  []string{"let a = 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := Parse(newFormatter(tt.input))
			got := make([]string, 0, len(decls))
			for _, d := range decls {
				got = append(got, d.Text())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Keywords(t *testing.T) {
	decls := Parse(newFormatter("actor Worker {}\nclass Shape {\n    class func make() {}\n}\n@testable import struct Lib.Thing\n"))
	require.Len(t, decls, 3)

	assert.Equal(t, Type, decls[0].Kind)
	assert.Equal(t, "actor", decls[0].Keyword)
	assert.Equal(t, "Worker", decls[0].Name)
	assert.True(t, decls[0].IsEmptyBody())

	require.Len(t, decls[1].Body, 1)
	member := decls[1].Body[0]
	assert.Equal(t, "func", member.Keyword)
	assert.Equal(t, []string{"class"}, member.Modifiers)
	assert.Equal(t, "make", member.Name)

	assert.Equal(t, "import", decls[2].Keyword)
	assert.Equal(t, "Lib.Thing", decls[2].Name)
	assert.True(t, decls[2].HasModifier("@testable"))
}

func TestDeclaration_HasMacroAttribute(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"@Observable\nclass Model {}\n", true},
		{"@MainActor\nclass Model {}\n", false},
		{"@available(iOS 13, *)\nstruct S {}\n", false},
		{"extension S {}\n", false},
	}

	for _, tt := range tests {
		decls := Parse(newFormatter(tt.input))
		require.Len(t, decls, 1, tt.input)
		assert.Equal(t, tt.want, decls[0].HasMacroAttribute(), tt.input)
	}
}

func TestDeclaration_Modifiers(t *testing.T) {
	decls := Parse(newFormatter("public private(set) var count = 0\n"))
	require.Len(t, decls, 1)

	assert.Equal(t, []string{"public", "private(set)"}, decls[0].Modifiers)
	assert.Equal(t, "public", decls[0].Visibility())
	assert.Equal(t, "count", decls[0].Name)
}

func TestParse_TrailingComment(t *testing.T) {
	decls := Parse(newFormatter("struct S {\n    let a = 1\n    // end\n}\n"))
	require.Len(t, decls, 1)
	assert.Len(t, decls[0].Body, 1)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "type", Type.String())
	assert.Equal(t, "conditional", Conditional.String())
	assert.Equal(t, "simple", Simple.String())
	assert.Equal(t, 3, Range{Start: 2, End: 5}.Len())
	assert.True(t, Range{Start: 2, End: 5}.Contains(4))
}
