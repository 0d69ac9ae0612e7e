package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

func method(name string) *decl.Function {
	return &decl.Function{Name: name, Span: span.New("impl.sw", 1, 1)}
}

// dataStruct interns Data with both type parameters bound to the given
// handles, sharing one declaration site so instances relate by declaration.
func dataStruct(e *typesystem.TypeEngine, first, second typesystem.TypeId) typesystem.TypeId {
	return e.Insert(typesystem.TStruct{
		Name: "Data",
		Fields: []typesystem.StructField{
			{Name: "first", Type: first},
			{Name: "second", Type: second},
		},
		TypeParameters: []typesystem.TypeParameter{
			{TypeID: first, Name: "T"},
			{TypeID: second, Name: "F"},
		},
		DeclSpan: span.New("data.sw", 1, 1),
	})
}

func TestTraitMapInsertReportsOverlapAndKeepsBoth(t *testing.T) {
	e := typesystem.NewTypeEngine()
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)

	tm := NewTraitMap()
	first := span.New("a.sw", 10, 1)
	second := span.New("b.sw", 20, 1)

	diags := tm.Insert(e, "Show", nil, typ, []*decl.Function{method("show")}, first)
	require.Empty(t, diags)

	diags = tm.Insert(e, "Show", nil, typ, []*decl.Function{method("show")}, second)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeOverlappingImpl, diags[0].Code)
	assert.Equal(t, diagnostics.SeverityWarning, diags[0].Severity)
	assert.Equal(t, second, diags[0].Span)
	require.Len(t, diags[0].Hints, 1)
	assert.Contains(t, diags[0].Hints[0], first.String())

	// Both entries stay registered.
	assert.Len(t, tm.Entries(), 2)
}

func TestTraitMapLaterEntryWinsMethodLookup(t *testing.T) {
	e := typesystem.NewTypeEngine()
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)

	older := method("show")
	newer := method("show")

	tm := NewTraitMap()
	tm.Insert(e, "Show", nil, typ, []*decl.Function{older}, span.New("a.sw", 1, 1))
	tm.Insert(e, "Show", nil, typ, []*decl.Function{newer}, span.New("b.sw", 1, 1))

	methods := tm.GetMethodsForType(e, typ)
	require.Len(t, methods, 1)
	assert.Same(t, newer, methods[0])
}

func TestTraitMapInherentImplsOnlyConflictOnSharedMethods(t *testing.T) {
	e := typesystem.NewTypeEngine()
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)

	tm := NewTraitMap()
	diags := tm.Insert(e, "", nil, typ, []*decl.Function{method("first")}, span.New("a.sw", 1, 1))
	require.Empty(t, diags)

	// Disjoint method sets coexist.
	diags = tm.Insert(e, "", nil, typ, []*decl.Function{method("second")}, span.New("a.sw", 5, 1))
	assert.Empty(t, diags)

	// A colliding method name is reported.
	diags = tm.Insert(e, "", nil, typ, []*decl.Function{method("first")}, span.New("a.sw", 9, 1))
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeOverlappingImpl, diags[0].Code)
}

func TestTraitMapFilterByTypeSpecializesWithoutMutatingSource(t *testing.T) {
	e := typesystem.NewTypeEngine()
	tVar := e.Insert(typesystem.TUnknownGeneric{Name: "T"})
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	u64 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.SixtyFour})

	generic := dataStruct(e, tVar, tVar) // the impl target Data<T, T>
	equal := dataStruct(e, u8, u8)
	unequal := dataStruct(e, u8, u64)

	src := NewTraitMap()
	src.Insert(e, "", nil, generic, []*decl.Function{method("same")}, span.New("impl.sw", 3, 1))

	// Data<u8, u8> instantiates the implementation.
	got := src.FilterByType(e, equal)
	require.Len(t, got.Entries(), 1)
	assert.Equal(t, equal, got.Entries()[0].Type)
	require.Len(t, got.GetMethodsForType(e, equal), 1)

	// Data<u8, u64> does not: the target requires equal arguments.
	assert.Empty(t, got.GetMethodsForType(e, unequal))
	assert.Empty(t, src.FilterByType(e, unequal).Entries())

	// The source map still holds the generic entry, untouched.
	require.Len(t, src.Entries(), 1)
	assert.Equal(t, generic, src.Entries()[0].Type)
	assert.Empty(t, src.GetMethodsForType(e, equal))
}

func TestTraitMapExtendPreservesOrder(t *testing.T) {
	e := typesystem.NewTypeEngine()
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)

	a := NewTraitMap()
	a.Insert(e, "Show", nil, typ, []*decl.Function{method("show")}, span.New("a.sw", 1, 1))

	b := NewTraitMap()
	b.Insert(e, "Ord", nil, typ, []*decl.Function{method("cmp")}, span.New("b.sw", 1, 1))

	a.Extend(b)
	entries := a.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Show", entries[0].Key.Name)
	assert.Equal(t, "Ord", entries[1].Key.Name)
}

func TestTraitMapGetImplsForType(t *testing.T) {
	e := typesystem.NewTypeEngine()
	tVar := e.Insert(typesystem.TUnknownGeneric{Name: "T"})
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})

	generic := dataStruct(e, tVar, tVar)
	concrete := dataStruct(e, u8, u8)

	tm := NewTraitMap()
	tm.Insert(e, "", nil, generic, []*decl.Function{method("same")}, span.New("impl.sw", 1, 1))

	impls := tm.GetImplsForType(e, concrete)
	require.Len(t, impls, 1)
	assert.Equal(t, generic, impls[0].Type)
}
