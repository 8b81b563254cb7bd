package column_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/recordcsv/internal/pkg/csv/column"
	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
)

type Base struct {
	A string
}

type Derived struct {
	Base
	B string
}

type First struct {
	Field1 int
	FieldC rune `csv:",char"`
	FieldS string
}

type Second struct {
	First
	FieldE string
	FieldB bool
	FieldC float64
}

type Third struct {
	FieldC string
	FieldE *string
}

type Fourth struct {
	Attr1 string
	Attr2 string
}

type Other struct {
	X int
	A int
}

func build(t *testing.T, records ...any) *column.Registry {
	t.Helper()
	registry, err := column.Build(context.Background(), log.NewNopLogger(), record.NewReflectIntrospector(), records)
	require.NoError(t, err)
	return registry
}

func TestBuild_MixedTypes(t *testing.T) {
	t.Parallel()

	registry := build(t, First{}, Second{}, Third{}, Fourth{})
	assert.Equal(t, 7, registry.Len())
	assert.Equal(t, []string{"field1", "fieldC", "fieldS", "fieldE", "fieldB", "attr1", "attr2"}, registry.Names())

	// The first seen declaration is kept
	fieldC := registry.Key(1)
	assert.Equal(t, "fieldC", fieldC.Name())
	assert.Equal(t, "char", fieldC.DeclaredType())
	assert.Equal(t, []string{"column_test.First", "column_test.Second", "column_test.Third"}, fieldC.Owners())

	// Owners
	field1 := registry.Key(0)
	assert.Equal(t, []string{"column_test.First"}, field1.Owners())
	assert.True(t, field1.OwnedBy("column_test.First"))
	assert.False(t, field1.OwnedBy("column_test.Second"))
	assert.True(t, field1.OwnedByAny([]string{"column_test.Second", "column_test.First"}))
	assert.False(t, field1.OwnedByAny([]string{"column_test.Third"}))
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	records := []any{Fourth{}, Second{}, Third{}, First{}}
	expected := build(t, records...).Names()
	for i := 0; i < 5; i++ {
		assert.Equal(t, expected, build(t, records...).Names())
	}
}

func TestBuild_DedupByName(t *testing.T) {
	t.Parallel()

	// Different types declaring the same name share one column
	registry := build(t, Base{}, Other{})
	assert.Equal(t, []string{"a", "x"}, registry.Names())
	assert.Equal(t, []string{"column_test.Base", "column_test.Other"}, registry.Key(0).Owners())

	// The declared type of the first seen declaration is kept
	assert.Equal(t, "string", registry.Key(0).DeclaredType())
}

func TestBuild_MostDerivedFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"b", "a"}, build(t, Derived{}).Names())

	// If the parent is seen first, its order is kept
	assert.Equal(t, []string{"a", "b"}, build(t, Base{}, Derived{}).Names())
}

func TestBuild_Keys(t *testing.T) {
	t.Parallel()

	registry := build(t, Derived{})
	keys := registry.Keys()
	require.Len(t, keys, 2)
	assert.Same(t, registry.Key(0), keys[0])

	// Returned slice is a copy
	keys[0] = nil
	assert.NotNil(t, registry.Key(0))
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, build(t).Len())
}

func TestBuild_TypeError(t *testing.T) {
	t.Parallel()

	_, err := column.Build(context.Background(), log.NewNopLogger(), record.NewReflectIntrospector(), []any{Base{}, "foo"})
	require.Error(t, err)
	assert.Equal(t, "cannot get type of the record 2:\n- record must be a struct, found \"string\"", err.Error())
}

func TestBuild_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := column.Build(ctx, log.NewNopLogger(), record.NewReflectIntrospector(), []any{Base{}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Logs(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	_, err := column.Build(context.Background(), logger, record.NewReflectIntrospector(), []any{Derived{}}, column.WithLogLevel("info"))
	require.NoError(t, err)

	messages := logger.InfoMessages()
	assert.Contains(t, messages, `Mapping type "column_test.Derived".`)
	assert.Contains(t, messages, `Found new attribute "b" in the type "column_test.Derived".`)
	assert.Contains(t, messages, `Found new attribute "a" in the type "column_test.Base".`)
}

func TestBuild_SameTypeName(t *testing.T) {
	t.Parallel()

	newA := func() any {
		type Item struct{ Name string }
		return Item{}
	}
	newB := func() any {
		type Item struct {
			Name  string
			Price int
		}
		return Item{}
	}

	registry := build(t, newA(), newB())
	assert.Equal(t, []string{"name", "price"}, registry.Names())
	assert.Equal(t, []string{"column_test.Item", "github.com/keboola/recordcsv/internal/pkg/csv/column_test.Item"}, registry.Key(0).Owners())
	assert.Equal(t, []string{"github.com/keboola/recordcsv/internal/pkg/csv/column_test.Item"}, registry.Key(1).Owners())
}
