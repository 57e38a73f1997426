package options

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/masterminds/semver"
)

// Kind is the value type of an option.
type Kind uint8

const (
	KindBool Kind = iota
	KindEnum
	KindSet
	KindInt
	KindString
	KindVersion
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindSet:
		return "set"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindVersion:
		return "version"
	default:
		return "unknown"
	}
}

// Descriptor documents one option and converts it to and from text.
type Descriptor struct {
	Key     string
	Help    string
	Kind    Kind
	Default string
	Values  []string // accepted values for enums

	set func(*Options, string) error
	get func(*Options) string
}

// Descriptors is a lookup table of option descriptors.
type Descriptors struct {
	byKey map[string]Descriptor
	order []string
}

// NewDescriptors builds the table of every known option.
func NewDescriptors() *Descriptors {
	all := []Descriptor{
		{
			Key: "indent", Kind: KindString, Default: "4",
			Help: `Number of spaces to indent, or "tab"`,
			set: func(o *Options, v string) error {
				if v == "tab" || v == "tabs" || v == "tabbed" {
					o.Indent = "tab"
					return nil
				}
				n, err := positiveInt(v)
				if err != nil {
					return err
				}
				o.Indent = strconv.Itoa(n)
				return nil
			},
			get: func(o *Options) string { return o.Indent },
		},
		{
			Key: "tabwidth", Kind: KindInt, Default: "4",
			Help: "Width of a tab character when measuring lines",
			set:  intSetter(func(o *Options) *int { return &o.TabWidth }, 1),
			get:  func(o *Options) string { return strconv.Itoa(o.TabWidth) },
		},
		{
			Key: "maxwidth", Kind: KindInt, Default: "0",
			Help: "Maximum line width, 0 for none",
			set:  intSetter(func(o *Options) *int { return &o.MaxWidth }, 0),
			get:  func(o *Options) string { return strconv.Itoa(o.MaxWidth) },
		},
		enum("linebreaks", "Line ending style", "lf", []string{"cr", "crlf", "lf"},
			func(o *Options) *string { return &o.Linebreaks }),
		{
			Key: "swiftversion", Kind: KindVersion, Default: "",
			Help: "Swift compiler version, enables version specific rewrites",
			set: func(o *Options, v string) error {
				if v == "" {
					o.SwiftVersion = nil
					return nil
				}
				ver, err := semver.NewVersion(v)
				if err != nil {
					return err
				}
				o.SwiftVersion = ver
				return nil
			},
			get: func(o *Options) string {
				if o.SwiftVersion == nil {
					return ""
				}
				return o.SwiftVersion.Original()
			},
		},
		enum("trimwhitespace", "Trim trailing whitespace on every line or only non-blank lines",
			"always", []string{"always", "nonblank-lines"},
			func(o *Options) *string { return &o.TrimWhitespace }),
		enum("emptybraces", "Spacing inside empty braces", "no-space", []string{"no-space", "spaced"},
			func(o *Options) *string { return &o.EmptyBraces }),
		enum("elseposition", "Placement of else, catch and while after a closing brace",
			"same-line", []string{"same-line", "next-line"},
			func(o *Options) *string { return &o.ElsePosition }),
		{
			Key: "allman", Kind: KindBool, Default: "false",
			Help: "Place opening braces on their own line",
			set: func(o *Options, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return errors.New("expected true or false")
				}
				o.Allman = b
				return nil
			},
			get: func(o *Options) string { return strconv.FormatBool(o.Allman) },
		},
		enum("commas", "Trailing commas in multiline collection literals", "always", []string{"always", "inline"},
			func(o *Options) *string { return &o.Commas }),
		enum("semicolons", "Allow semicolons between statements on one line", "inline", []string{"inline", "never"},
			func(o *Options) *string { return &o.Semicolons }),
		enum("importgrouping", "Ordering of import statements", "alpha",
			[]string{"alpha", "length", "testable-first", "testable-last"},
			func(o *Options) *string { return &o.ImportGrouping }),
		list("modifierorder", "Preferred order of declaration modifiers",
			strings.Join(DefaultModifierOrder, ","), func(o *Options) *[]string { return &o.ModifierOrder }),
		list("acronyms", "Acronyms to capitalize fully", "ID,URL,UUID",
			func(o *Options) *[]string { return &o.Acronyms }),
		enum("yodaswap", "Swap yoda conditions always or only when the left side is a literal",
			"always", []string{"always", "literals-only"},
			func(o *Options) *string { return &o.YodaSwap }),
		{
			Key: "header", Kind: KindString, Default: "ignore",
			Help: `File header: "ignore", "strip", or replacement text (\n for newlines)`,
			set: func(o *Options, v string) error {
				o.Header = strings.ReplaceAll(v, `\n`, "\n")
				return nil
			},
			get: func(o *Options) string { return strings.ReplaceAll(o.Header, "\n", `\n`) },
		},
		enum("ranges", "Spacing around range operators", "spaced", []string{"spaced", "no-space"},
			func(o *Options) *string { return &o.Ranges }),
		list("organizetypes", "Declaration kinds whose members are organized", "class,actor,struct,enum",
			func(o *Options) *[]string { return &o.OrganizeTypes }),
	}

	d := &Descriptors{byKey: make(map[string]Descriptor, len(all))}
	for _, desc := range all {
		d.byKey[desc.Key] = desc
		d.order = append(d.order, desc.Key)
	}
	slices.Sort(d.order)
	return d
}

// descriptors is read-only after initialization.
var descriptors = NewDescriptors()

// Known returns the shared descriptor table.
func Known() *Descriptors {
	return descriptors
}

// Lookup finds a descriptor by case-insensitive key.
func (d *Descriptors) Lookup(key string) (Descriptor, bool) {
	desc, ok := d.byKey[strings.ToLower(strings.TrimSpace(key))]
	return desc, ok
}

// Has reports whether key names an option.
func (d *Descriptors) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Keys returns all option keys in sorted order.
func (d *Descriptors) Keys() []string {
	return slices.Clone(d.order)
}

// All returns every descriptor, sorted by key.
func (d *Descriptors) All() []Descriptor {
	out := make([]Descriptor, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.byKey[k])
	}
	return out
}

func enum(key, help, def string, values []string, field func(*Options) *string) Descriptor {
	return Descriptor{
		Key: key, Help: help, Kind: KindEnum, Default: def, Values: values,
		set: func(o *Options, v string) error {
			if !slices.Contains(values, v) {
				return fmt.Errorf("expected one of %s", strings.Join(values, ", "))
			}
			*field(o) = v
			return nil
		},
		get: func(o *Options) string { return *field(o) },
	}
}

func list(key, help, def string, field func(*Options) *[]string) Descriptor {
	return Descriptor{
		Key: key, Help: help, Kind: KindSet, Default: def,
		set: func(o *Options, v string) error {
			*field(o) = splitList(v)
			return nil
		},
		get: func(o *Options) string { return strings.Join(*field(o), ",") },
	}
}

func intSetter(field func(*Options) *int, minimum int) func(*Options, string) error {
	return func(o *Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("expected an integer")
		}
		if n < minimum {
			return fmt.Errorf("must be at least %d", minimum)
		}
		*field(o) = n
		return nil
	}
}

func positiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New(`expected a positive integer or "tab"`)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
