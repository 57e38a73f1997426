package format_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/engine"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/fsutil"
	"github.com/yaklabco/swiftfmt/pkg/options"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

type funcRule struct {
	format.BaseRule
	apply func(*engine.Formatter)
}

func (r *funcRule) Apply(f *engine.Formatter) {
	if r.apply != nil {
		r.apply(f)
	}
}

func newRule(spec format.RuleSpec, apply func(*engine.Formatter)) *funcRule {
	return &funcRule{BaseRule: format.NewBaseRule(spec), apply: apply}
}

func newRegistry(t *testing.T, rules ...format.Rule) *format.Registry {
	t.Helper()
	reg := format.NewRegistry()
	for _, r := range rules {
		require.NoError(t, reg.Register(r))
	}
	return reg
}

func set(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// removeSpaces deletes every space token.
func removeSpaces(f *engine.Formatter) {
	f.ForEachReverse(token.OfKind(token.KindSpace), func(i int, _ token.Token) {
		f.Remove(i)
	})
}

// upperIdentifiers rewrites identifiers to upper case.
func upperIdentifiers(f *engine.Formatter) {
	f.ForEach(token.OfKind(token.KindIdentifier), func(i int, tok token.Token) {
		f.Replace(i, token.Identifier(strings.ToUpper(tok.Text)))
	})
}

func TestBaseRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		spec        format.RuleSpec
		wantEnabled bool
	}{
		{"default", format.RuleSpec{Name: "a"}, true},
		{"opt-in", format.RuleSpec{Name: "b", OptIn: true}, false},
		{"deprecated", format.RuleSpec{Name: "c", Deprecated: "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			base := format.NewBaseRule(tt.spec)
			assert.Equal(t, tt.spec.Name, base.Name())
			assert.Equal(t, tt.spec.Deprecated, base.Deprecated())
			assert.Equal(t, tt.wantEnabled, base.DefaultEnabled())
		})
	}

	base := format.NewBaseRule(format.RuleSpec{
		Name: "wrap", Help: "Wrap.", Options: []string{"maxwidth"},
		SharedOptions: []string{"indent"}, RunsAfter: []string{"a"}, RunOnce: true,
	})
	assert.Equal(t, "Wrap.", base.Help())
	assert.Equal(t, []string{"maxwidth"}, base.Options())
	assert.Equal(t, []string{"indent"}, base.SharedOptions())
	assert.Equal(t, []string{"a"}, base.RunsAfter())
	assert.True(t, base.RunOnce())
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	reg := format.NewRegistry()
	require.NoError(t, reg.Register(newRule(format.RuleSpec{Name: "b"}, nil)))
	require.NoError(t, reg.Register(newRule(format.RuleSpec{Name: "a"}, nil)))

	err := reg.Register(newRule(format.RuleSpec{Name: "a"}, nil))
	require.ErrorIs(t, err, format.ErrDuplicateRule)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"a", "b"}, reg.Names())
	assert.Equal(t, []string{"a", "b"}, format.Names(reg.Rules()))

	rule, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", rule.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	assert.Panics(t, func() {
		reg.MustRegister(newRule(format.RuleSpec{Name: "b"}, nil))
	})
}

func TestRegistry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rules   []format.Rule
		wantErr error
	}{
		{
			name: "valid",
			rules: []format.Rule{
				newRule(format.RuleSpec{Name: "a", Options: []string{"indent"}}, nil),
				newRule(format.RuleSpec{Name: "b", RunsAfter: []string{"a"}, SharedOptions: []string{"linebreaks"}}, nil),
			},
		},
		{
			name:    "unknown runsAfter",
			rules:   []format.Rule{newRule(format.RuleSpec{Name: "a", RunsAfter: []string{"nope"}}, nil)},
			wantErr: format.ErrUnknownRule,
		},
		{
			name:    "unknown option",
			rules:   []format.Rule{newRule(format.RuleSpec{Name: "a", Options: []string{"nope"}}, nil)},
			wantErr: format.ErrUnknownOption,
		},
		{
			name: "cycle",
			rules: []format.Rule{
				newRule(format.RuleSpec{Name: "a", RunsAfter: []string{"b"}}, nil),
				newRule(format.RuleSpec{Name: "b", RunsAfter: []string{"a"}}, nil),
			},
			wantErr: format.ErrRuleCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := newRegistry(t, tt.rules...).Validate(options.Known())
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	target := newRule(format.RuleSpec{Name: "modern", Help: "Does it.", Options: []string{"indent"}}, nil)
	reg := newRegistry(t,
		target,
		format.NewAlias("legacy", target),
		newRule(format.RuleSpec{Name: "extra", OptIn: true, RunOnce: true}, nil),
	)

	infos := reg.List()
	require.Len(t, infos, 3)

	assert.Equal(t, "extra", infos[0].Name)
	assert.False(t, infos[0].DefaultEnabled)
	assert.True(t, infos[0].RunOnce)

	assert.Equal(t, "legacy", infos[1].Name)
	assert.Equal(t, "modern", infos[1].Deprecated)
	assert.False(t, infos[1].DefaultEnabled)
	assert.Equal(t, []string{"indent"}, infos[1].SharedOptions)

	assert.Equal(t, "modern", infos[2].Name)
	assert.Equal(t, "Does it.", infos[2].Help)
	assert.True(t, infos[2].DefaultEnabled)
	assert.Equal(t, []string{"indent"}, infos[2].Options)
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t,
		newRule(format.RuleSpec{Name: "a"}, nil),
		newRule(format.RuleSpec{Name: "b"}, nil),
		newRule(format.RuleSpec{Name: "c", OptIn: true}, nil),
	)

	tests := []struct {
		name    string
		enable  []string
		disable []string
		want    map[string]bool
		wantErr bool
	}{
		{name: "defaults", want: set("a", "b")},
		{name: "disable", disable: []string{"a"}, want: set("b")},
		{name: "enable opt-in", enable: []string{"c"}, want: set("a", "b", "c")},
		{name: "enable wins", enable: []string{"a"}, disable: []string{"a"}, want: set("a", "b")},
		{name: "unknown", enable: []string{"zzz"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.ResolveRules(reg, tt.enable, tt.disable)
			if tt.wantErr {
				require.ErrorIs(t, err, format.ErrUnknownRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	only, err := format.OnlyRules(reg, []string{"c"})
	require.NoError(t, err)
	assert.Equal(t, set("c"), only)

	_, err = format.OnlyRules(reg, []string{"x", "y"})
	require.ErrorIs(t, err, format.ErrUnknownRule)
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t,
		newRule(format.RuleSpec{Name: "indent", RunsAfter: []string{"braces", "wrap"}}, nil),
		newRule(format.RuleSpec{Name: "braces"}, nil),
		newRule(format.RuleSpec{Name: "wrap", RunsAfter: []string{"braces"}}, nil),
		newRule(format.RuleSpec{Name: "alpha"}, nil),
		newRule(format.RuleSpec{Name: "zeta", SharedOptions: []string{"indent"}}, nil),
		newRule(format.RuleSpec{Name: "beta", SharedOptions: []string{"indent"}}, nil),
	)

	order, err := format.Schedule(reg, set("indent", "braces", "wrap", "alpha", "zeta", "beta"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "braces", "wrap", "indent", "beta", "zeta"}, format.Names(order))

	names := format.Names(order)
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	assert.Less(t, pos["braces"], pos["wrap"])
	assert.Less(t, pos["wrap"], pos["indent"])
	assert.Equal(t, pos["beta"]+1, pos["zeta"], "rules sharing an option key stay together")

	// Disabled dependencies impose no constraint.
	order, err = format.Schedule(reg, set("indent", "alpha"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "indent"}, format.Names(order))

	// Determinism.
	again, err := format.Schedule(reg, set("indent", "braces", "wrap", "alpha", "zeta", "beta"))
	require.NoError(t, err)
	first, err := format.Schedule(reg, set("indent", "braces", "wrap", "alpha", "zeta", "beta"))
	require.NoError(t, err)
	assert.Equal(t, format.Names(first), format.Names(again))
}

func TestSchedule_Errors(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t,
		newRule(format.RuleSpec{Name: "a", RunsAfter: []string{"b"}}, nil),
		newRule(format.RuleSpec{Name: "b", RunsAfter: []string{"a"}}, nil),
		newRule(format.RuleSpec{Name: "c"}, nil),
	)

	_, err := format.Schedule(reg, set("a", "b", "c"))
	require.ErrorIs(t, err, format.ErrRuleCycle)
	assert.Contains(t, err.Error(), "a, b")

	_, err = format.Schedule(reg, set("a", "c"))
	require.NoError(t, err)

	_, err = format.Schedule(reg, set("missing"))
	require.ErrorIs(t, err, format.ErrUnknownRule)
}

func TestRunPipeline(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t,
		newRule(format.RuleSpec{Name: "removeSpaces"}, removeSpaces),
		newRule(format.RuleSpec{Name: "upper"}, upperIdentifiers),
	)

	res, err := format.RunPipeline(context.Background(), reg, token.Tokenize("let a = b\n"),
		options.Default(), set("removeSpaces", "upper"), format.PipelineOptions{TrackChanges: true})
	require.NoError(t, err)

	assert.Equal(t, "letA=B\n", token.Render(res.Tokens))
	assert.Equal(t, 2, res.Passes, "second pass confirms the fixed point")
	assert.True(t, res.Converged)
	assert.Equal(t, []string{"removeSpaces", "upper"}, res.Order)
	assert.Equal(t, []engine.Change{{Rule: "removeSpaces", Line: 1}, {Rule: "upper", Line: 1}}, res.Changes)
}

func TestRunPipeline_NoRules(t *testing.T) {
	t.Parallel()

	tokens := token.Tokenize("struct S {}\n")
	res, err := format.RunPipeline(context.Background(), format.NewRegistry(), tokens,
		options.Default(), nil, format.PipelineOptions{})
	require.NoError(t, err)
	assert.Equal(t, tokens, res.Tokens)
	assert.Equal(t, 1, res.Passes)
	assert.Empty(t, res.Changes)
}

func TestRunPipeline_MaxPasses(t *testing.T) {
	t.Parallel()

	grow := func(f *engine.Formatter) {
		f.Insert(f.Len(), token.Identifier("x"))
	}
	reg := newRegistry(t, newRule(format.RuleSpec{Name: "grow"}, grow))

	res, err := format.RunPipeline(context.Background(), reg, nil,
		options.Default(), set("grow"), format.PipelineOptions{MaxPasses: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Passes)
	assert.False(t, res.Converged)
	assert.Equal(t, "xxx", token.Render(res.Tokens))
}

func TestRunPipeline_RunOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	once := func(f *engine.Formatter) {
		calls++
		f.Insert(0, token.Identifier("h"))
	}
	reg := newRegistry(t, newRule(format.RuleSpec{Name: "header", RunOnce: true}, once))

	res, err := format.RunPipeline(context.Background(), reg, token.Tokenize("a"),
		options.Default(), set("header"), format.PipelineOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ha", token.Render(res.Tokens))
	assert.Equal(t, 2, res.Passes)
}

func TestRunPipeline_Fatal(t *testing.T) {
	t.Parallel()

	boom := func(f *engine.Formatter) {
		f.Fatal(2, "boom")
	}
	reg := newRegistry(t,
		newRule(format.RuleSpec{Name: "boom"}, boom),
		newRule(format.RuleSpec{Name: "oob"}, func(f *engine.Formatter) {
			var toks []token.Token
			_ = toks[f.Len()]
		}),
	)

	res, err := format.RunPipeline(context.Background(), reg, token.Tokenize("a\nb"),
		options.Default(), set("boom"), format.PipelineOptions{})
	require.Error(t, err)
	assert.Nil(t, res)

	var fe *engine.FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "boom", fe.Rule)
	assert.Equal(t, 2, fe.Index)
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, "boom", fe.Message)
	assert.Equal(t, "rule boom: line 2 (token 2): boom", err.Error())

	_, err = format.RunPipeline(context.Background(), reg, token.Tokenize("a"),
		options.Default(), set("oob"), format.PipelineOptions{})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "oob", fe.Rule)
	assert.Equal(t, -1, fe.Index)
}

func TestRunPipeline_PanicInsideForEach(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, newRule(format.RuleSpec{Name: "crash"}, func(f *engine.Formatter) {
		f.ForEachToken("b", func(int, token.Token) {
			var none []token.Token
			_ = none[0]
		})
	}))

	_, err := format.RunPipeline(context.Background(), reg, token.Tokenize("a\nb"),
		options.Default(), set("crash"), format.PipelineOptions{})
	var fe *engine.FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "crash", fe.Rule)
	assert.Equal(t, 2, fe.Index)
	assert.Equal(t, 2, fe.Line)
}

func TestRunPipeline_CheckInvariants(t *testing.T) {
	t.Parallel()

	dropBrace := func(f *engine.Formatter) {
		if i := f.NextIndex(-1, token.Is(token.EndOfScope("}"))); i >= 0 {
			f.Remove(i)
		}
	}
	reg := newRegistry(t, newRule(format.RuleSpec{Name: "dropBrace"}, dropBrace))

	_, err := format.RunPipeline(context.Background(), reg, token.Tokenize("struct S {}\n"),
		options.Default(), set("dropBrace"), format.PipelineOptions{CheckInvariants: true})
	var fe *engine.FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "dropBrace", fe.Rule)

	// Unbalanced input disables the check.
	res, err := format.RunPipeline(context.Background(), reg, token.Tokenize("struct S { {}\n"),
		options.Default(), set("dropBrace"), format.PipelineOptions{CheckInvariants: true})
	require.NoError(t, err)
	assert.Equal(t, "struct S { {\n", token.Render(res.Tokens))
}

func TestRunPipeline_Directives(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, newRule(format.RuleSpec{Name: "upper"}, upperIdentifiers))
	src := "a\n// swiftfmt:disable upper\nb\n// swiftfmt:enable upper\nc\n"

	out, _, err := format.Format(context.Background(), reg, src, options.Default(), set("upper"), format.PipelineOptions{})
	require.NoError(t, err)
	assert.Equal(t, "A\n// swiftfmt:disable upper\nb\n// swiftfmt:enable upper\nC\n", out)
}

func TestRunPipeline_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := format.RunPipeline(ctx, format.NewRegistry(), nil, options.Default(), nil, format.PipelineOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLint(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, newRule(format.RuleSpec{Name: "upper"}, upperIdentifiers))

	changes, err := format.Lint(context.Background(), reg, "a\nB\nc\n", options.Default(), set("upper"), format.PipelineOptions{})
	require.NoError(t, err)
	assert.Equal(t, []engine.Change{{Rule: "upper", Line: 1}, {Rule: "upper", Line: 3}}, changes)
}

func TestProcessor_ProcessContent(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, newRule(format.RuleSpec{Name: "removeSpaces"}, removeSpaces))
	p := format.NewProcessor(reg, options.Default(), set("removeSpaces"))

	opts := format.DefaultFileOptions()
	opts.DryRun = true

	res, err := p.ProcessContent(context.Background(), "a.swift", []byte("a = b\n"), opts)
	require.NoError(t, err)
	assert.True(t, res.Modified)
	assert.Equal(t, "a=b\n", string(res.Formatted))
	require.NotNil(t, res.Diff)
	assert.Contains(t, res.Diff.String(), "-a = b\n+a=b\n")
	assert.Equal(t, "changes pending", res.Summary())

	res, err = p.ProcessContent(context.Background(), "a.swift", []byte("a=b\n"), opts)
	require.NoError(t, err)
	assert.False(t, res.Modified)
	assert.Nil(t, res.Formatted)
	assert.Equal(t, "ok", res.Summary())
}

func TestProcessor_ProcessFile(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, newRule(format.RuleSpec{Name: "removeSpaces"}, removeSpaces))
	p := format.NewProcessor(reg, options.Default(), set("removeSpaces"))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "a.swift")
	require.NoError(t, os.WriteFile(path, []byte("a = b\n"), 0o600))

	lint := format.DefaultFileOptions()
	lint.Lint = true
	res, err := p.ProcessFile(ctx, path, lint)
	require.NoError(t, err)
	assert.True(t, res.Modified)
	assert.False(t, res.Written)
	assert.NotEmpty(t, res.Changes)

	opts := format.DefaultFileOptions()
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	res, err = p.ProcessFile(ctx, path, opts)
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.True(t, res.BackupCreated)
	assert.Equal(t, "formatted (backup created)", res.Summary())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a=b\n", string(got))

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, "a = b\n", string(backup))
}

func TestProcessor_ProcessFileErrors(t *testing.T) {
	t.Parallel()

	boom := newRule(format.RuleSpec{Name: "boom"}, func(f *engine.Formatter) { f.Fatal(0, "boom") })
	p := format.NewProcessor(newRegistry(t, boom), options.Default(), set("boom"))
	ctx := context.Background()

	_, err := p.ProcessFile(ctx, filepath.Join(t.TempDir(), "missing.swift"), format.DefaultFileOptions())
	require.ErrorIs(t, err, format.ErrFileNotFound)
	assert.True(t, format.IsPipelineError(err))

	path := filepath.Join(t.TempDir(), "a.swift")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o600))
	_, err = p.ProcessFile(ctx, path, format.DefaultFileOptions())
	require.ErrorIs(t, err, format.ErrFormatFailure)

	var fe *engine.FatalError
	require.ErrorAs(t, err, &fe)
	assert.True(t, errors.Is(err, format.ErrFormatFailure))
}
