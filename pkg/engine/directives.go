package engine

import (
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/token"
)

// DirectivePrefix starts an inline directive comment, as in
// "// swiftfmt:disable rule".
const DirectivePrefix = "swiftfmt:"

// AllRules names every rule in a directive.
const AllRules = "all"

const toEOF = -1

// span is a half-open range of disabled token indexes.
type span struct {
	start, end int
}

func (s span) contains(i int) bool {
	return i >= s.start && (s.end == toEOF || i < s.end)
}

type directiveSet struct {
	spans map[string][]span
}

func (d *directiveSet) add(rule string, s span) {
	if d.spans == nil {
		d.spans = make(map[string][]span)
	}
	d.spans[rule] = append(d.spans[rule], s)
}

func (d *directiveSet) disabled(rule string, i int) bool {
	for _, key := range [...]string{rule, AllRules} {
		for _, s := range d.spans[key] {
			if s.contains(i) {
				return true
			}
		}
	}
	return false
}

func (d *directiveSet) shiftInsert(i, n int) {
	for _, spans := range d.spans {
		for k := range spans {
			s := &spans[k]
			if s.start >= i {
				s.start += n
			}
			if s.end != toEOF && s.end > i {
				s.end += n
			}
		}
	}
}

func (d *directiveSet) shiftRemove(start, end int) {
	n := end - start
	adjust := func(p int) int {
		switch {
		case p >= end:
			return p - n
		case p > start:
			return start
		}
		return p
	}
	for _, spans := range d.spans {
		for k := range spans {
			s := &spans[k]
			s.start = adjust(s.start)
			if s.end != toEOF {
				s.end = adjust(s.end)
			}
		}
	}
}

// Directive is a parsed inline directive comment.
type Directive struct {
	Command string   // disable, enable, disable:next or disable:this
	Rules   []string // rule names or "all"
	Index   int      // index of the comment's "//" token
}

// ParseDirective parses the body of a line comment. The rule list ends at
// "--", after which free text may explain the directive.
func ParseDirective(body string) (Directive, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(body), DirectivePrefix)
	if !ok {
		return Directive{}, false
	}
	fields := strings.Fields(strings.ReplaceAll(rest, ",", " "))
	if len(fields) == 0 {
		return Directive{}, false
	}
	d := Directive{Command: fields[0]}
	switch d.Command {
	case "disable", "enable", "disable:next", "disable:this":
	default:
		return Directive{}, false
	}
	for _, name := range fields[1:] {
		if name == "--" {
			break
		}
		d.Rules = append(d.Rules, name)
	}
	if len(d.Rules) == 0 {
		return Directive{}, false
	}
	return d, true
}

// Directives returns every directive comment in the buffer.
func (f *Formatter) Directives() []Directive {
	var out []Directive
	for i, tok := range f.tokens {
		if tok.Kind != token.KindCommentBody {
			continue
		}
		start := f.PrevIndex(i, token.NonSpace)
		if !f.At(start).IsStartOfScope() || f.At(start).Text != "//" {
			continue
		}
		if d, ok := ParseDirective(tok.Text); ok {
			d.Index = start
			out = append(out, d)
		}
	}
	return out
}

// CompileDirectives rebuilds the disabled ranges from directive comments.
// The pipeline calls it at the start of every pass; mutations keep the
// ranges aligned until then.
func (f *Formatter) CompileDirectives() {
	f.directives = directiveSet{}
	open := make(map[string]int)
	var order []string

	for _, d := range f.Directives() {
		switch d.Command {
		case "disable":
			for _, rule := range d.Rules {
				if _, ok := open[rule]; !ok {
					open[rule] = d.Index
					order = append(order, rule)
				}
			}
		case "enable":
			for _, rule := range d.Rules {
				for _, name := range order {
					start, ok := open[name]
					if !ok || (rule != AllRules && rule != name) {
						continue
					}
					f.directives.add(name, span{start: start, end: d.Index})
					delete(open, name)
				}
			}
		case "disable:next":
			eol := f.EndOfLine(d.Index)
			if eol >= len(f.tokens) {
				continue
			}
			next := span{start: eol + 1, end: min(f.EndOfLine(eol+1)+1, len(f.tokens))}
			for _, rule := range d.Rules {
				f.directives.add(rule, next)
			}
		case "disable:this":
			this := span{start: f.StartOfLine(d.Index), end: min(f.EndOfLine(d.Index)+1, len(f.tokens))}
			for _, rule := range d.Rules {
				f.directives.add(rule, this)
			}
		}
	}
	for _, name := range order {
		if start, ok := open[name]; ok {
			f.directives.add(name, span{start: start, end: toEOF})
		}
	}
}

// IsEnabled reports whether the current rule may act at index i.
func (f *Formatter) IsEnabled(i int) bool {
	return !f.directives.disabled(f.rule, i)
}

// IsEnabledFor reports whether rule may act at index i.
func (f *Formatter) IsEnabledFor(rule string, i int) bool {
	return !f.directives.disabled(rule, i)
}
