package engine

import "fmt"

// FatalError reports an invariant violation detected while a rule ran.
type FatalError struct {
	Rule    string
	Index   int
	Line    int
	Message string
}

// Error reports the rule, the line and the token index.
func (e *FatalError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.Index >= 0 {
		where += fmt.Sprintf(" (token %d)", e.Index)
	}
	if e.Rule == "" {
		return fmt.Sprintf("%s: %s", where, e.Message)
	}
	return fmt.Sprintf("rule %s: %s: %s", e.Rule, where, e.Message)
}

// Fatal aborts the current rule. The panic carries a *FatalError and is
// recovered by the pipeline, which discards the buffer.
func (f *Formatter) Fatal(i int, format string, args ...any) {
	panic(&FatalError{
		Rule:    f.rule,
		Index:   i,
		Line:    f.LineNumber(i),
		Message: fmt.Sprintf(format, args...),
	})
}

// Recover converts a recovered panic value into an error. Fatal errors are
// returned as is; anything else is wrapped in a FatalError for the current
// rule, positioned at the token its innermost ForEach loop was visiting.
func (f *Formatter) Recover(r any) error {
	defer func() { f.cursors = nil }()

	if r == nil {
		return nil
	}
	if fe, ok := r.(*FatalError); ok {
		return fe
	}

	fe := &FatalError{Rule: f.rule, Index: -1, Message: fmt.Sprint(r)}
	if n := len(f.cursors); n > 0 {
		if i := f.cursors[n-1]; i >= 0 && i < len(f.tokens) {
			fe.Index = i
			fe.Line = f.LineNumber(i)
		}
	}
	return fe
}
