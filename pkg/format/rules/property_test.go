package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/options"
)

var snippets = []string{
	"import Foundation\n",
	"import UIKit\n",
	"let a=1;\n",
	"if (x) {\n    y()\n}\n",
	"func f() -> () {\n\n    return\n}\n",
	"// TODO fix this\n",
	"extension Foo {}\n",
	"private func helper() {}\n",
	"struct S: Codable {\n    private let id: Int\n}\n",
	"let list = [\n    1,\n    2\n]\n",
	"if 0 == x {\n    assert(false, \"boom\")\n}\n",
	"\n\n",
}

// TestDefaultRulesProperties checks that the default rule set converges, is
// idempotent and is deterministic over arbitrary snippet sequences.
func TestDefaultRulesProperties(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t)
	enabled, err := format.ResolveRules(registry, nil, nil)
	require.NoError(t, err)
	opts := options.Default()
	popts := format.PipelineOptions{CheckInvariants: true}

	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(snippets), 0, 12).Draw(rt, "parts")
		source := strings.Join(parts, "")

		first, result, err := format.Format(context.Background(), registry, source, opts, enabled, popts)
		if err != nil {
			rt.Fatalf("format failed: %v", err)
		}
		if !result.Converged {
			rt.Fatalf("did not converge after %d passes: %q", result.Passes, source)
		}

		second, _, err := format.Format(context.Background(), registry, first, opts, enabled, popts)
		if err != nil {
			rt.Fatalf("reformat failed: %v", err)
		}
		if first != second {
			rt.Fatalf("not idempotent:\nfirst:  %q\nsecond: %q", first, second)
		}

		again, _, err := format.Format(context.Background(), registry, source, opts, enabled, popts)
		if err != nil {
			rt.Fatalf("format failed: %v", err)
		}
		if again != first {
			rt.Fatalf("not deterministic: %q vs %q", first, again)
		}
	})
}
