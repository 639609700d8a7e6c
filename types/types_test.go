package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, Equals(PrimInt, PrimInt))
	assert.True(t, Equals(PrimString, PrimString))
	assert.False(t, Equals(PrimInt, PrimString))
	assert.False(t, Equals(PrimVoid, PrimInt))
}

func TestGenerativeRecordIdentity(t *testing.T) {
	ctx := NewContext()

	// Two syntactically identical record declarations are distinct types.
	a := ctx.NewRecord([]Field{{Name: "x", Type: PrimInt}})
	b := ctx.NewRecord([]Field{{Name: "x", Type: PrimInt}})

	assert.True(t, Equals(a, a))
	assert.False(t, Equals(a, b))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerativeArrayIdentity(t *testing.T) {
	ctx := NewContext()

	a := ctx.NewArray(PrimInt)
	b := ctx.NewArray(PrimInt)

	assert.True(t, Equals(a, a))
	assert.False(t, Equals(a, b))
}

func TestNilComparesEqualToRecords(t *testing.T) {
	ctx := NewContext()
	rec := ctx.NewRecord(nil)
	arr := ctx.NewArray(PrimInt)

	assert.True(t, Equals(PrimNil, rec))
	assert.True(t, Equals(rec, PrimNil))
	assert.False(t, Equals(PrimNil, arr))
	assert.False(t, Equals(PrimNil, PrimInt))
}

func TestNameAliasResolution(t *testing.T) {
	ctx := NewContext()

	alias := ctx.NewName("a")
	inner := ctx.NewName("b")
	rec := ctx.NewRecord(nil)

	// Unbound aliases resolve to themselves and never compare equal.
	assert.Equal(t, Type(alias), Actual(alias))
	assert.False(t, Equals(alias, alias))

	// A chain a -> b -> rec resolves through both aliases.
	alias.Bind(inner)
	inner.Bind(rec)
	assert.Equal(t, Type(rec), Actual(alias))
	assert.True(t, Equals(alias, rec))
	assert.True(t, Equals(alias, inner))
}

func TestIsAssignable(t *testing.T) {
	ctx := NewContext()
	rec := ctx.NewRecord(nil)
	arr := ctx.NewArray(PrimInt)

	assert.True(t, IsAssignable(PrimInt, PrimInt))
	assert.True(t, IsAssignable(rec, PrimNil))
	assert.False(t, IsAssignable(arr, PrimNil))
	assert.False(t, IsAssignable(PrimInt, PrimString))
}

func TestRecordFieldLookup(t *testing.T) {
	ctx := NewContext()
	rec := ctx.NewRecord([]Field{
		{Name: "key", Type: PrimInt},
		{Name: "name", Type: PrimString},
		{Name: "next", Type: PrimInt},
	})

	idx, ok := rec.FieldIndex("name")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = rec.FieldIndex("next")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = rec.FieldIndex("missing")
	assert.False(t, ok)

	typ, ok := rec.FieldType("key")
	require.True(t, ok)
	assert.True(t, Equals(PrimInt, typ))
}

func TestRecursiveRecordThroughAlias(t *testing.T) {
	ctx := NewContext()

	// type list = {head: int, tail: list}
	listAlias := ctx.NewName("list")
	rec := ctx.NewRecord([]Field{
		{Name: "head", Type: PrimInt},
		{Name: "tail", Type: listAlias},
	})
	listAlias.Bind(rec)

	tailType, ok := rec.FieldType("tail")
	require.True(t, ok)
	assert.True(t, Equals(tailType, rec))
}

func TestReprForms(t *testing.T) {
	ctx := NewContext()

	assert.Equal(t, "int", PrimInt.Repr())
	assert.Equal(t, "nil", PrimNil.Repr())
	assert.Equal(t, "array of int", ctx.NewArray(PrimInt).Repr())

	rec := ctx.NewRecord([]Field{{Name: "x", Type: PrimInt}})
	assert.Equal(t, "{x: int}", rec.Repr())
}
