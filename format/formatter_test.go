package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xmldoc/errors"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		name     string
		f        TemplateFormatter
		template string
		value    string
		want     string
	}{
		{"simple", TemplateFormatter{}, "{name} class.", "Foo", "Foo class."},
		{"repeated placeholder", TemplateFormatter{}, "{name}: the {name} class.", "Foo", "Foo: the Foo class."},
		{"unknown tokens kept", TemplateFormatter{}, "The {name} {kind}.", "Foo", "The Foo {kind}."},
		{"escaped", TemplateFormatter{EscapeXML: true}, "The {name} class.", "A&B", "The A&amp;B class."},
		{"not escaped", TemplateFormatter{}, "The {name} class.", "A&B", "The A&B class."},
		{"value is not re-expanded", TemplateFormatter{}, "{name}!", "{name}", "{name}!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.f.FormatName(tt.template, Name(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatName_MissingPlaceholder(t *testing.T) {
	_, err := TemplateFormatter{}.FormatName("A class.", Name("Foo"))
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "{name}")
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestFormatName_NoPairsReturnsTemplate(t *testing.T) {
	got, err := TemplateFormatter{}.FormatName("Static text.")
	require.NoError(t, err)
	assert.Equal(t, "Static text.", got)
}

func TestFormatInherits(t *testing.T) {
	tests := []struct {
		name     string
		f        TemplateFormatter
		template string
		names    []string
		want     string
	}{
		{
			name:     "subject and list",
			template: "{name} inherits from {list}.",
			names:    []string{"Base", "IDisposable"},
			want:     "Bar inherits from Base, IDisposable.",
		},
		{
			name:     "list only",
			template: "Inherits from {list}.",
			names:    []string{"Base"},
			want:     "Inherits from Base.",
		},
		{
			name:     "custom separators",
			f:        TemplateFormatter{ListSeparator: "; ", LastSeparator: " and "},
			template: "Inherits from {list}.",
			names:    []string{"A", "B", "C"},
			want:     "Inherits from A; B and C.",
		},
		{
			name:     "last separator only with two",
			f:        TemplateFormatter{LastSeparator: " and "},
			template: "Implements {list}.",
			names:    []string{"IFoo", "IBar"},
			want:     "Implements IFoo and IBar.",
		},
		{
			name:     "order preserved",
			template: "{list}",
			names:    []string{"Z", "A", "M"},
			want:     "Z, A, M",
		},
		{
			name:     "escaped generics",
			f:        TemplateFormatter{EscapeXML: true},
			template: "Inherits from {list}.",
			names:    []string{"RepoBase<T>"},
			want:     "Inherits from RepoBase&lt;T&gt;.",
		},
		{
			name:     "cref links",
			f:        TemplateFormatter{CrefLinks: true, EscapeXML: true},
			template: "Inherits from {list}.",
			names:    []string{"Base", "IRepo<T>"},
			want:     `Inherits from <see cref="Base"/>, <see cref="IRepo{T}"/>.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.f.FormatInherits(tt.template, Name("Bar"), tt.names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatInherits_RequiresList(t *testing.T) {
	_, err := TemplateFormatter{}.FormatInherits("{name} inherits.", Name("Bar"), []string{"Base"})
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "{list}")
}

func TestFormatInherits_IsDeterministic(t *testing.T) {
	f := TemplateFormatter{CrefLinks: true}
	names := []string{"Base", "IDisposable"}

	first, err := f.FormatInherits("{name}: {list}", Name("X"), names)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := f.FormatInherits("{name}: {list}", Name("X"), names)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"Base", "IDisposable"}, names)
}

func TestCref(t *testing.T) {
	assert.Equal(t, `<see cref="System.IDisposable"/>`, Cref("System.IDisposable"))
	assert.Equal(t, `<see cref="Dictionary{TKey, TValue}"/>`, Cref("Dictionary<TKey, TValue>"))
}
