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

func TestFindMethodForTypeLocalFirst(t *testing.T) {
	e := typesystem.NewTypeEngine()
	r, lib, app := twoModuleTree()

	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)

	libMethod := method("show")
	appMethod := method("show")
	lib.Items().ImplementedTraits().Insert(e, "Show", nil, typ, []*decl.Function{libMethod}, span.New("lib.sw", 1, 1))
	app.Items().ImplementedTraits().Insert(e, "Show", nil, typ, []*decl.Function{appMethod}, span.New("app.sw", 1, 1))

	ns := NewNamespace(r, []string{"app"})
	got, diags := ns.FindMethodForType(e, typ, "show", []string{"lib"}, typesystem.ErrorRecoveryId,
		[]typesystem.TypeId{typ}, span.New("app.sw", 5, 1))

	require.Empty(t, diags)
	assert.Same(t, appMethod, got)
}

func TestFindMethodForTypeFallsBackToDeclaringModule(t *testing.T) {
	e := typesystem.NewTypeEngine()
	r, lib, _ := twoModuleTree()

	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)
	libMethod := method("show")
	lib.Items().ImplementedTraits().Insert(e, "Show", nil, typ, []*decl.Function{libMethod}, span.New("lib.sw", 1, 1))

	ns := NewNamespace(r, []string{"app"})
	got, diags := ns.FindMethodForType(e, typ, "show", []string{"lib"}, typesystem.ErrorRecoveryId,
		[]typesystem.TypeId{typ}, span.New("app.sw", 5, 1))

	require.Empty(t, diags)
	assert.Same(t, libMethod, got)
}

func TestFindMethodForTypeNotFound(t *testing.T) {
	e := typesystem.NewTypeEngine()
	r, _, _ := twoModuleTree()
	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	typ := dataStruct(e, u8, u8)

	ns := NewNamespace(r, []string{"app"})
	got, diags := ns.FindMethodForType(e, typ, "nope", nil, typesystem.ErrorRecoveryId,
		[]typesystem.TypeId{typ}, span.New("app.sw", 5, 1))

	assert.Nil(t, got)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeMethodNotFound, diags[0].Code)
}

func TestFindMethodForTypeSuppressedOnBrokenReceiver(t *testing.T) {
	e := typesystem.NewTypeEngine()
	r, _, _ := twoModuleTree()

	ns := NewNamespace(r, []string{"app"})
	got, diags := ns.FindMethodForType(e, typesystem.ErrorRecoveryId, "anything", nil,
		typesystem.ErrorRecoveryId, []typesystem.TypeId{typesystem.ErrorRecoveryId}, span.New("app.sw", 5, 1))

	// One broken receiver expression reports once, not per method call.
	assert.Nil(t, got)
	assert.Empty(t, diags)
}

func TestFindSubfieldTypeWalksDottedPath(t *testing.T) {
	e := typesystem.NewTypeEngine()
	r, _, app := twoModuleTree()

	u8 := e.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	inner := e.Insert(typesystem.TStruct{
		Name:     "Inner",
		Fields:   []typesystem.StructField{{Name: "x", Type: u8}},
		DeclSpan: span.New("lib.sw", 1, 1),
	})
	outer := e.Insert(typesystem.TStruct{
		Name:     "Outer",
		Fields:   []typesystem.StructField{{Name: "inner", Type: inner}},
		DeclSpan: span.New("lib.sw", 5, 1),
	})
	app.Items().InsertSymbol("point", &decl.Variable{Name: "point", Type: outer}, Sequential, AllowGenericShadowing)

	ns := NewNamespace(r, []string{"app"})
	got, diags := ns.FindSubfieldType(e, "point", []string{"inner", "x"}, span.New("app.sw", 3, 1))
	require.Empty(t, diags)
	assert.Equal(t, u8, got)

	// Unknown head.
	_, diags = ns.FindSubfieldType(e, "nope", []string{"inner"}, span.New("app.sw", 4, 1))
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeUnknownVariable, diags[0].Code)

	// Missing field lists the available ones.
	_, diags = ns.FindSubfieldType(e, "point", []string{"nope"}, span.New("app.sw", 5, 1))
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeFieldNotFound, diags[0].Code)
	assert.Contains(t, diags[0].Message, "inner")

	// Projecting out of a non-struct.
	_, diags = ns.FindSubfieldType(e, "point", []string{"inner", "x", "deeper"}, span.New("app.sw", 6, 1))
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeNotAStruct, diags[0].Code)
}
