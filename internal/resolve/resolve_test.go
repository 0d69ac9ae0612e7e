package resolve

import (
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/config"
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

func sp(file string, line int) span.Span {
	return span.New(file, line, 1)
}

func typeName(file string, line int, name string, args ...ast.TypeExpression) *ast.TypeName {
	tn := &ast.TypeName{Span: sp(file, line), Name: name}
	if len(args) > 0 {
		tn.TypeArgs = args
	}
	return tn
}

// libModule builds:
//
//	pub struct Data<T, F> { first: T, second: F }
//	impl<T> Data<T, T> { fn same(self) -> bool { return true } }
func libModule(visibility ast.Visibility) *ast.Module {
	structDecl := &ast.StructDeclaration{
		Span:       sp("lib.sw", 1),
		Name:       "Data",
		Visibility: visibility,
		TypeParameters: []*ast.TypeParameter{
			{Span: sp("lib.sw", 1), Name: "T"},
			{Span: sp("lib.sw", 1), Name: "F"},
		},
		Fields: []*ast.StructField{
			{Span: sp("lib.sw", 2), Name: "first", Type: typeName("lib.sw", 2, "T")},
			{Span: sp("lib.sw", 3), Name: "second", Type: typeName("lib.sw", 3, "F")},
		},
	}
	implDecl := &ast.ImplDeclaration{
		Span: sp("lib.sw", 10),
		TypeParameters: []*ast.TypeParameter{
			{Span: sp("lib.sw", 10), Name: "T"},
		},
		Type: typeName("lib.sw", 10, "Data",
			typeName("lib.sw", 10, "T"), typeName("lib.sw", 10, "T")),
		Methods: []*ast.FunctionDeclaration{
			{
				Span:       sp("lib.sw", 11),
				Name:       "same",
				Parameters: []*ast.FunctionParameter{{Span: sp("lib.sw", 11), Name: "self", IsSelf: true}},
				ReturnType: typeName("lib.sw", 11, "bool"),
				Body: &ast.CodeBlock{
					Span: sp("lib.sw", 11),
					Statements: []ast.Statement{
						&ast.ReturnStatement{Span: sp("lib.sw", 12), Value: &ast.BoolLiteral{Span: sp("lib.sw", 12), Value: true}},
					},
				},
			},
		},
	}
	return &ast.Module{
		Name:  "lib",
		Span:  sp("lib.sw", 1),
		Items: []ast.Declaration{structDecl, implDecl},
	}
}

// appModule builds a module importing Data and binding it at the given
// second type argument:
//
//	use lib::Data
//	fn main() { let d = Data::<u8, second> { first: 1, second: 2 }; d.same() }
func appModule(second string) *ast.Module {
	body := &ast.CodeBlock{
		Span: sp("app.sw", 3),
		Statements: []ast.Statement{
			&ast.VariableDeclaration{
				Span: sp("app.sw", 4),
				Name: "d",
				Value: &ast.StructExpression{
					Span: sp("app.sw", 4),
					Name: "Data",
					TypeArgs: []ast.TypeExpression{
						typeName("app.sw", 4, "u8"),
						typeName("app.sw", 4, second),
					},
					Fields: []*ast.StructExpressionField{
						{Span: sp("app.sw", 4), Name: "first", Value: &ast.IntLiteral{Span: sp("app.sw", 4), Value: big.NewInt(1)}},
						{Span: sp("app.sw", 4), Name: "second", Value: &ast.IntLiteral{Span: sp("app.sw", 4), Value: big.NewInt(2)}},
					},
				},
			},
			&ast.ExpressionStatement{
				Span: sp("app.sw", 5),
				Value: &ast.MethodCall{
					Span:   sp("app.sw", 5),
					Target: &ast.Identifier{Span: sp("app.sw", 5), Name: "d"},
					Method: "same",
				},
			},
		},
	}
	return &ast.Module{
		Name: "app",
		Span: sp("app.sw", 1),
		Uses: []*ast.UseStatement{
			{Span: sp("app.sw", 1), Path: []string{"lib"}, Item: "Data"},
		},
		Items: []ast.Declaration{
			&ast.FunctionDeclaration{Span: sp("app.sw", 3), Name: "main", Body: body},
		},
	}
}

func runProgram(t *testing.T, prog *ast.Module) *diagnostics.Handler {
	t.Helper()
	engine := typesystem.NewTypeEngine()
	root := namespace.NewRoot(namespace.NewModule(prog.Name, prog.Span))
	handler := diagnostics.NewHandler(0, zerolog.Nop())
	checker := NewChecker(engine, root, handler, config.Default(), zerolog.Nop())

	checker.CollectModule(prog, nil)
	checker.ResolveImports(prog, nil)
	checker.ResolveTypes()
	checker.CheckModule(prog, nil)
	return handler
}

func program(lib, app *ast.Module) *ast.Module {
	return &ast.Module{Name: "prog", Span: sp("prog.sw", 1), Submodules: []*ast.Module{lib, app}}
}

func TestGenericImplFollowsImportedType(t *testing.T) {
	handler := runProgram(t, program(libModule(ast.Public), appModule("u8")))

	// Data<u8, u8> satisfies the Data<T, T> implementation target, so the
	// method call checks cleanly across the module boundary.
	assert.False(t, handler.HasErrors(), "diagnostics: %v", handler.All())
}

func TestGenericImplRejectsUnequalArguments(t *testing.T) {
	handler := runProgram(t, program(libModule(ast.Public), appModule("u64")))

	errs := handler.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.CodeMethodNotFound, errs[0].Code)
	assert.Contains(t, errs[0].Message, "same")
}

func TestPrivateImportDiagnosedButUsable(t *testing.T) {
	handler := runProgram(t, program(libModule(ast.Private), appModule("u8")))

	// The private import is reported once; the alias still resolves and
	// the rest of the program checks with no further cascade.
	errs := handler.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.CodePrivateImport, errs[0].Code)
}

func TestStructFieldTypeMismatch(t *testing.T) {
	lib := libModule(ast.Public)
	app := appModule("u8")
	// Rewrite the second field initializer to a bool.
	structExpr := app.Items[0].(*ast.FunctionDeclaration).Body.Statements[0].(*ast.VariableDeclaration).Value.(*ast.StructExpression)
	structExpr.Fields[1].Value = &ast.BoolLiteral{Span: sp("app.sw", 4), Value: true}

	handler := runProgram(t, program(lib, app))
	errs := handler.Errors()
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.CodeTypeMismatch, errs[0].Code)
}

func TestUnknownTypeIsReportedOnceAndRecovered(t *testing.T) {
	lib := libModule(ast.Public)
	app := appModule("u8")
	app.Items = append(app.Items, &ast.ConstantDeclaration{
		Span: sp("app.sw", 9),
		Name: "BROKEN",
		Type: typeName("app.sw", 9, "NoSuchType"),
	})

	handler := runProgram(t, program(lib, app))
	errs := handler.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.CodeUnknownType, errs[0].Code)
}

// innerLib builds `pub struct Inner { v: u8 }`.
func innerLib() *ast.Module {
	return &ast.Module{
		Name: "lib",
		Span: sp("lib.sw", 1),
		Items: []ast.Declaration{
			&ast.StructDeclaration{
				Span:       sp("lib.sw", 1),
				Name:       "Inner",
				Visibility: ast.Public,
				Fields: []*ast.StructField{
					{Span: sp("lib.sw", 2), Name: "v", Type: typeName("lib.sw", 2, "u8")},
				},
			},
		},
	}
}

// outerApp builds a module that declares a struct whose field type names the
// imported Inner, constructs it and reads the field back:
//
//	struct Outer { i: Inner }
//	fn main() { let o = Outer { i: Inner { v: 1 } }; o.i }
func outerApp(use *ast.UseStatement) *ast.Module {
	body := &ast.CodeBlock{
		Span: sp("app.sw", 5),
		Statements: []ast.Statement{
			&ast.VariableDeclaration{
				Span: sp("app.sw", 6),
				Name: "o",
				Value: &ast.StructExpression{
					Span: sp("app.sw", 6),
					Name: "Outer",
					Fields: []*ast.StructExpressionField{
						{Span: sp("app.sw", 6), Name: "i", Value: &ast.StructExpression{
							Span: sp("app.sw", 6),
							Name: "Inner",
							Fields: []*ast.StructExpressionField{
								{Span: sp("app.sw", 6), Name: "v", Value: &ast.IntLiteral{Span: sp("app.sw", 6), Value: big.NewInt(1)}},
							},
						}},
					},
				},
			},
			&ast.ExpressionStatement{
				Span: sp("app.sw", 7),
				Value: &ast.FieldAccess{
					Span:   sp("app.sw", 7),
					Target: &ast.Identifier{Span: sp("app.sw", 7), Name: "o"},
					Field:  "i",
				},
			},
		},
	}
	return &ast.Module{
		Name: "app",
		Span: sp("app.sw", 1),
		Uses: []*ast.UseStatement{use},
		Items: []ast.Declaration{
			&ast.StructDeclaration{
				Span: sp("app.sw", 3),
				Name: "Outer",
				Fields: []*ast.StructField{
					{Span: sp("app.sw", 3), Name: "i", Type: typeName("app.sw", 3, "Inner")},
				},
			},
			&ast.FunctionDeclaration{Span: sp("app.sw", 5), Name: "main", Body: body},
		},
	}
}

func TestImportedTypeUsableInFieldDeclaration(t *testing.T) {
	use := &ast.UseStatement{Span: sp("app.sw", 1), Path: []string{"lib"}, Item: "Inner"}
	handler := runProgram(t, program(innerLib(), outerApp(use)))

	// Outer's field type is collected before the import is applied; the
	// re-resolution pass must point it at lib's Inner so construction and
	// field access both check.
	assert.False(t, handler.HasErrors(), "diagnostics: %v", handler.All())
}

func TestGlobImportedTypeUsableInFieldDeclaration(t *testing.T) {
	use := &ast.UseStatement{Span: sp("app.sw", 1), Path: []string{"lib"}, Star: true}
	handler := runProgram(t, program(innerLib(), outerApp(use)))

	assert.False(t, handler.HasErrors(), "diagnostics: %v", handler.All())
}

func TestMethodReturnTypeSubstitutesNestedSelf(t *testing.T) {
	engine := typesystem.NewTypeEngine()
	root := namespace.NewRoot(namespace.NewModule("prog", span.Span{}))
	handler := diagnostics.NewHandler(0, zerolog.Nop())
	c := NewChecker(engine, root, handler, config.Default(), zerolog.Nop())

	selfTy := engine.Insert(typesystem.TSelfType{})
	boolean := engine.Insert(typesystem.TBoolean{})
	recv := engine.Insert(typesystem.TUnsignedInteger{Bits: typesystem.Eight})
	fn := &decl.Function{
		Name:       "pair",
		ReturnType: engine.Insert(typesystem.TTuple{Fields: []typesystem.TypeId{selfTy, boolean}}),
	}

	got := c.methodReturnType(fn, recv)
	tuple, ok := engine.LookUp(got).(typesystem.TTuple)
	require.True(t, ok)
	assert.Equal(t, recv, tuple.Fields[0])
	assert.Equal(t, boolean, tuple.Fields[1])
}

func TestResolveTypeBuiltins(t *testing.T) {
	engine := typesystem.NewTypeEngine()
	root := namespace.NewRoot(namespace.NewModule("prog", span.Span{}))
	handler := diagnostics.NewHandler(0, zerolog.Nop())
	c := NewChecker(engine, root, handler, config.Default(), zerolog.Nop())

	tests := []struct {
		name string
		expr ast.TypeExpression
		want string
	}{
		{name: "bool", expr: typeName("t.sw", 1, "bool"), want: "bool"},
		{name: "u64", expr: typeName("t.sw", 1, "u64"), want: "u64"},
		{name: "string", expr: typeName("t.sw", 1, "string"), want: "string"},
		{name: "unit", expr: &ast.TupleType{Span: sp("t.sw", 1)}, want: "()"},
		{name: "str array", expr: &ast.StrType{Span: sp("t.sw", 1), Len: 4}, want: "str[4]"},
		{name: "array", expr: &ast.ArrayType{Span: sp("t.sw", 1), Elem: typeName("t.sw", 1, "u8"), Len: 3}, want: "[u8; 3]"},
		{name: "placeholder", expr: typeName("t.sw", 1, "_"), want: "_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := c.ResolveType(tt.expr)
			assert.Equal(t, tt.want, engine.String(id))
		})
	}
	assert.False(t, handler.HasErrors())
}
