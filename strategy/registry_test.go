package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/docbuilder"
	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/syntax"
	"github.com/teranos/xmldoc/syntax/syntaxtest"
)

type stubStrategy struct {
	name  string
	kinds []syntax.Kind
}

func (s stubStrategy) Name() string                  { return s.name }
func (s stubStrategy) SupportedKinds() []syntax.Kind { return s.kinds }
func (s stubStrategy) Apply(decl syntax.Declaration) (*docbuilder.Documented, error) {
	return &docbuilder.Documented{Decl: decl, Summary: []string{s.name}}, nil
}

func TestRegistry_RoutesByKind(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(stubStrategy{name: "types", kinds: []syntax.Kind{syntax.KindStruct, syntax.KindRecord}}))
	require.NoError(t, r.Register(newClassStrategy(true)))

	doc, err := r.Apply(&syntaxtest.Declaration{DeclKind: syntax.KindRecord, Name: "Point"})
	require.NoError(t, err)
	assert.Equal(t, []string{"types"}, doc.Summary)

	doc, err = r.Apply(syntaxtest.Class("Foo"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo class."}, doc.Summary)

	assert.Equal(t, []syntax.Kind{syntax.KindClass, syntax.KindRecord, syntax.KindStruct}, r.Kinds())
}

func TestRegistry_UnsupportedKind(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(newClassStrategy(true)))

	_, err := r.Apply(&syntaxtest.Declaration{DeclKind: syntax.KindEnum, Name: "Color"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedKindError(err))
	assert.Contains(t, err.Error(), "enum_declaration")

	_, ok := r.Lookup(syntax.KindEnum)
	assert.False(t, ok)
}

func TestRegistry_RejectsDuplicateKinds(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(newClassStrategy(true)))

	err := r.Register(stubStrategy{name: "greedy", kinds: []syntax.Kind{syntax.KindStruct, syntax.KindClass}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class_declaration")

	_, ok := r.Lookup(syntax.KindStruct)
	assert.False(t, ok, "a rejected strategy registers nothing")

	s, ok := r.Lookup(syntax.KindClass)
	require.True(t, ok)
	assert.Equal(t, "class", s.Name())
}

func TestRegistry_RejectsStrategyWithoutKinds(t *testing.T) {
	r := NewRegistry(nil)
	require.Error(t, r.Register(stubStrategy{name: "empty"}))
	assert.Empty(t, r.Kinds())
}

func TestNewDefaultRegistry(t *testing.T) {
	cfg := config.Default()

	r, err := NewDefaultRegistry(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{syntax.KindClass}, r.Kinds())

	doc, err := r.Apply(syntaxtest.Class("Bar", "Base", "IDisposable"))
	require.NoError(t, err)
	assert.Equal(t, []string{"The Bar class.", "Inherits from Base, IDisposable."}, doc.Summary)
}

func TestNewDefaultRegistry_ClassDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Class.Enabled = false

	r, err := NewDefaultRegistry(cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, r.Kinds())

	_, err = r.Apply(syntaxtest.Class("Foo"))
	assert.True(t, errors.IsUnsupportedKindError(err))
}

func TestNewDefaultRegistry_BadPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Builder.Existing = "overwrite"

	_, err := NewDefaultRegistry(cfg, nil)
	require.Error(t, err)
}

func TestFactsOf_IsAFreshSnapshot(t *testing.T) {
	decl := syntaxtest.Class("Bar", "Base", "IDisposable")

	first := FactsOf(decl)
	first.BaseTypes[0] = "Mutated"
	second := FactsOf(decl)

	assert.Equal(t, "Bar", second.Name)
	assert.Equal(t, []string{"Base", "IDisposable"}, second.BaseTypes)

	empty := FactsOf(syntaxtest.Class("Foo"))
	assert.NotNil(t, empty.BaseTypes)
	assert.Empty(t, empty.BaseTypes)
}
