package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()

	assert.Equal(t, "4", opts.Indent)
	assert.Equal(t, 4, opts.TabWidth)
	assert.Equal(t, "lf", opts.Linebreaks)
	assert.Nil(t, opts.SwiftVersion)
	assert.False(t, opts.Allman)
	assert.Equal(t, []string{"ID", "URL", "UUID"}, opts.Acronyms)
	assert.Equal(t, DefaultModifierOrder, opts.ModifierOrder)
	assert.Equal(t, "ignore", opts.Header)
}

func TestOptions_Set(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr error
		want    string
	}{
		{"indent", "2", nil, "2"},
		{"indent", "tab", nil, "tab"},
		{"indent", "0", ErrInvalidOptionValue, ""},
		{"linebreaks", "crlf", nil, "crlf"},
		{"linebreaks", "unix", ErrInvalidOptionValue, ""},
		{"allman", "true", nil, "true"},
		{"allman", "maybe", ErrInvalidOptionValue, ""},
		{"maxwidth", "120", nil, "120"},
		{"maxwidth", "-1", ErrInvalidOptionValue, ""},
		{"swiftversion", "5.9", nil, "5.9"},
		{"swiftversion", "five", ErrInvalidOptionValue, ""},
		{"acronyms", "ID, URL ,", nil, "ID,URL"},
		{"MaxWidth", "80", nil, "80"},
		{"nope", "1", ErrUnknownOption, ""},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			opts := Default()
			err := opts.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Get(tt.key))
		})
	}
}

func TestFromMap(t *testing.T) {
	opts, err := FromMap(map[string]string{"indent": "tab", "header": `// Copyright\n`})
	require.NoError(t, err)

	assert.Equal(t, "\t", opts.IndentString())
	assert.Equal(t, "// Copyright\n", opts.Header)
	assert.Equal(t, `// Copyright\n`, opts.Get("header"))

	_, err = FromMap(map[string]string{"bogus": "x"})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestOptions_Linebreak(t *testing.T) {
	opts := Default()
	assert.Equal(t, "\n", opts.Linebreak())

	require.NoError(t, opts.Set("linebreaks", "crlf"))
	assert.Equal(t, "\r\n", opts.Linebreak())

	require.NoError(t, opts.Set("linebreaks", "cr"))
	assert.Equal(t, "\r", opts.Linebreak())
}

func TestOptions_IndentString(t *testing.T) {
	opts := Default()
	assert.Equal(t, "    ", opts.IndentString())

	require.NoError(t, opts.Set("indent", "2"))
	assert.Equal(t, "  ", opts.IndentString())
}

func TestOptions_SwiftVersionAtLeast(t *testing.T) {
	opts := Default()
	assert.False(t, opts.SwiftVersionAtLeast("5.0"))

	require.NoError(t, opts.Set("swiftversion", "5.9"))
	assert.True(t, opts.SwiftVersionAtLeast("5.0"))
	assert.True(t, opts.SwiftVersionAtLeast("5.9"))
	assert.False(t, opts.SwiftVersionAtLeast("6.0"))
}

func TestOptions_Clone(t *testing.T) {
	opts := Default()
	clone := opts.Clone()
	clone.Acronyms[0] = "XYZ"

	assert.Equal(t, "ID", opts.Acronyms[0])
}

func TestDescriptors(t *testing.T) {
	d := Known()

	desc, ok := d.Lookup("linebreaks")
	require.True(t, ok)
	assert.Equal(t, KindEnum, desc.Kind)
	assert.Equal(t, []string{"cr", "crlf", "lf"}, desc.Values)

	keys := d.Keys()
	assert.IsNonDecreasing(t, keys)
	assert.Len(t, d.All(), len(keys))
	assert.Len(t, Default().Map(), len(keys))
	assert.False(t, d.Has("missing"))
}
