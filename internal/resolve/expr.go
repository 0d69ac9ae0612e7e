package resolve

import (
	"strings"

	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// CheckModule resolves and checks the value-level declarations of a module:
// constants, storage, function signatures, implementation blocks and finally
// function bodies. Submodules are checked before their parent.
func (c *Checker) CheckModule(m *ast.Module, path []string) {
	for _, sub := range m.Submodules {
		c.CheckModule(sub, childPath(path, sub.Name))
	}

	c.enterModule(path)
	c.log.Debug().Strs("module", path).Msg("checking module")

	for _, item := range m.Items {
		switch d := item.(type) {
		case *ast.ConstantDeclaration:
			c.checkModuleConstant(d)
		case *ast.StorageDeclaration:
			c.checkStorage(d)
		}
	}

	// Signatures before bodies, so functions may call each other regardless
	// of declaration order.
	type pending struct {
		fd  *ast.FunctionDeclaration
		sig *decl.Function
	}
	var bodies []pending
	for _, item := range m.Items {
		if fd, ok := item.(*ast.FunctionDeclaration); ok {
			sig := c.resolveSignature(fd, false)
			c.insertModuleSymbol(fd.Name, sig)
			bodies = append(bodies, pending{fd: fd, sig: sig})
		}
	}

	for _, item := range m.Items {
		if d, ok := item.(*ast.ImplDeclaration); ok {
			c.checkImpl(d)
		}
	}

	for _, p := range bodies {
		c.checkFunctionBody(p.fd, p.sig)
	}
}

func (c *Checker) checkModuleConstant(d *ast.ConstantDeclaration) {
	typ := typesystem.ErrorRecoveryId
	if d.Type != nil {
		typ = c.ResolveType(d.Type)
	}
	if d.Value != nil {
		got := c.checkExpression(d.Value)
		if d.Type == nil {
			typ = got
		} else if !typesystem.Check(c.engine, got, typ, typesystem.Coercion) {
			c.handler.Append(diagnostics.TypeMismatch(c.engine.String(typ), c.engine.String(got), d.Value.GetSpan()))
		}
	}
	c.insertModuleSymbol(d.Name, &decl.Constant{
		Name:       d.Name,
		Visibility: mapVisibility(d.Visibility),
		Type:       typ,
		Value:      d.Value,
		Span:       d.Span,
	})
}

func (c *Checker) checkStorage(d *ast.StorageDeclaration) {
	fields := make([]decl.StorageField, len(d.Fields))
	for i, f := range d.Fields {
		typ := c.ResolveType(f.Type)
		if f.Value != nil {
			got := c.checkExpression(f.Value)
			if !typesystem.Check(c.engine, got, typ, typesystem.Coercion) {
				c.handler.Append(diagnostics.TypeMismatch(c.engine.String(typ), c.engine.String(got), f.Value.GetSpan()))
			}
		}
		fields[i] = decl.StorageField{Name: f.Name, Type: typ, Span: f.Span}
	}
	c.insertModuleSymbol("storage", &decl.Storage{Fields: fields, Span: d.Span})
}

// checkImpl resolves an implementation block and registers it in the
// module's trait map. Methods are checked with Self bound to the
// implementing type.
func (c *Checker) checkImpl(d *ast.ImplDeclaration) {
	c.pushScope()
	defer c.popScope()
	c.declareTypeParameters(d.TypeParameters, false)

	implType := c.ResolveType(d.Type)
	savedSelf := c.selfType
	c.selfType = implType
	defer func() { c.selfType = savedSelf }()

	var traitDecl *decl.Trait
	if d.TraitName != "" {
		td, diags := c.ns.ResolveCallPath(namespace.CallPath{Prefixes: d.TraitPath, Suffix: d.TraitName}, d.Span)
		if len(diags) > 0 {
			c.handler.AppendAll(diags)
		} else if t, ok := td.(*decl.Trait); ok {
			traitDecl = t
		}
	}
	traitArgs := c.resolveArgs(d.TraitTypeArgs, false)

	methods := make([]*decl.Function, 0, len(d.Methods))
	for _, fd := range d.Methods {
		if traitDecl != nil && !traitHasMethod(traitDecl, fd.Name) {
			c.handler.Append(diagnostics.MethodNotInTrait(fd.Name, d.TraitName, fd.Span))
		}
		methods = append(methods, c.resolveSignature(fd, false))
	}

	c.handler.AppendAll(c.ns.Module().Items().ImplementedTraits().Insert(
		c.engine, d.TraitName, traitArgs, implType, methods, d.Span))

	for i, fd := range d.Methods {
		c.checkFunctionBody(fd, methods[i])
	}
}

func traitHasMethod(t *decl.Trait, name string) bool {
	for _, f := range t.Interface {
		if f.Name == name {
			return true
		}
	}
	for _, f := range t.Methods {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (c *Checker) checkFunctionBody(fd *ast.FunctionDeclaration, sig *decl.Function) {
	if fd.Body == nil {
		return
	}
	c.pushScope()
	defer c.popScope()

	for _, tp := range sig.TypeParameters {
		c.insertLocal(tp.Name, &decl.GenericTypeForFunctionScope{Name: tp.Name, TypeID: tp.TypeID, Span: tp.Span})
	}
	for _, p := range sig.Parameters {
		c.insertLocal(p.Name, &decl.Variable{Name: p.Name, Type: p.Type, Span: p.Span})
	}

	savedRet := c.returnType
	c.returnType = sig.ReturnType
	c.checkBlock(fd.Body)
	c.returnType = savedRet
}

func (c *Checker) checkBlock(b *ast.CodeBlock) {
	c.pushScope()
	defer c.popScope()
	for _, st := range b.Statements {
		c.checkStatement(st)
	}
}

func (c *Checker) checkStatement(st ast.Statement) {
	switch st := st.(type) {
	case *ast.VariableDeclaration:
		c.checkLet(st)
	case *ast.ConstantDeclaration:
		c.checkBlockConstant(st)
	case *ast.ExpressionStatement:
		c.checkExpression(st.Value)
	case *ast.ReturnStatement:
		got := c.engine.Insert(typesystem.TTuple{})
		sp := st.Span
		if st.Value != nil {
			got = c.checkExpression(st.Value)
			sp = st.Value.GetSpan()
		}
		if !typesystem.Check(c.engine, got, c.returnType, typesystem.Coercion) {
			c.handler.Append(diagnostics.TypeMismatch(c.engine.String(c.returnType), c.engine.String(got), sp))
		}
	}
}

func (c *Checker) checkLet(d *ast.VariableDeclaration) {
	got := typesystem.ErrorRecoveryId
	if d.Value != nil {
		got = c.checkExpression(d.Value)
	}
	typ := got
	if d.Type != nil {
		typ = c.ResolveType(d.Type)
		if d.Value != nil && !typesystem.Check(c.engine, got, typ, typesystem.Coercion) {
			c.handler.Append(diagnostics.TypeMismatch(c.engine.String(typ), c.engine.String(got), d.Value.GetSpan()))
		}
	}
	c.insertLocal(d.Name, &decl.Variable{Name: d.Name, Type: typ, IsMutable: d.IsMutable, Value: d.Value, Span: d.Span})
}

func (c *Checker) checkBlockConstant(d *ast.ConstantDeclaration) {
	typ := typesystem.ErrorRecoveryId
	if d.Type != nil {
		typ = c.ResolveType(d.Type)
	}
	if d.Value != nil {
		got := c.checkExpression(d.Value)
		if d.Type == nil {
			typ = got
		} else if !typesystem.Check(c.engine, got, typ, typesystem.Coercion) {
			c.handler.Append(diagnostics.TypeMismatch(c.engine.String(typ), c.engine.String(got), d.Value.GetSpan()))
		}
	}
	c.insertLocal(d.Name, &decl.Constant{Name: d.Name, Visibility: decl.Private, Type: typ, Value: d.Value, Span: d.Span})
}

// checkExpression types one expression, reporting problems and answering
// with the recovery type on failure so the walk continues.
func (c *Checker) checkExpression(ex ast.Expression) typesystem.TypeId {
	switch ex := ex.(type) {
	case *ast.IntLiteral:
		return c.engine.Insert(typesystem.TNumeric{})
	case *ast.BoolLiteral:
		return c.engine.Insert(typesystem.TBoolean{})
	case *ast.StringLiteral:
		return c.engine.Insert(typesystem.TStrArray{Len: uint64(len(ex.Value))})
	case *ast.Identifier:
		return c.checkIdentifier(ex)
	case *ast.FieldAccess:
		target := c.checkExpression(ex.Target)
		typ, diags := namespace.ProjectField(c.engine, target, ex.Field, ex.Span)
		c.handler.AppendAll(diags)
		return typ
	case *ast.MethodCall:
		return c.checkMethodCall(ex)
	case *ast.FunctionCall:
		return c.checkFunctionCall(ex)
	case *ast.StructExpression:
		return c.checkStructExpression(ex)
	case *ast.TupleExpression:
		fields := make([]typesystem.TypeId, len(ex.Elems))
		for i, el := range ex.Elems {
			fields[i] = c.checkExpression(el)
		}
		return c.engine.Insert(typesystem.TTuple{Fields: fields})
	default:
		return typesystem.ErrorRecoveryId
	}
}

func (c *Checker) checkIdentifier(ex *ast.Identifier) typesystem.TypeId {
	d, diags := c.lookup(ex.Name, ex.Span)
	if len(diags) > 0 {
		c.handler.Append(diagnostics.UnknownVariable(ex.Name, ex.Span))
		return typesystem.ErrorRecoveryId
	}
	typ, ok := decl.TypeOf(d)
	if !ok {
		c.handler.Append(diagnostics.UnknownVariable(ex.Name, ex.Span))
		return typesystem.ErrorRecoveryId
	}
	return typ
}

func (c *Checker) checkMethodCall(ex *ast.MethodCall) typesystem.TypeId {
	recv := c.checkExpression(ex.Target)
	args := make([]typesystem.TypeId, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = c.checkExpression(a)
	}

	callArgs := make([]typesystem.TypeId, 0, len(args)+1)
	callArgs = append(callArgs, recv)
	callArgs = append(callArgs, args...)

	fn, diags := c.ns.FindMethodForType(c.engine, recv, ex.Method, c.declPathOf(recv), c.selfType, callArgs, ex.Span)
	if fn == nil {
		c.handler.AppendAll(diags)
		return typesystem.ErrorRecoveryId
	}

	expected := make([]decl.FunctionParameter, 0, len(fn.Parameters))
	paramTypes := make([]typesystem.TypeId, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		if p.IsSelf {
			continue
		}
		expected = append(expected, p)
		paramTypes = append(paramTypes, p.Type)
	}
	if len(args) != len(expected) {
		c.handler.Append(diagnostics.WrongArgumentCount(ex.Method, len(expected), len(args), ex.Span))
		return c.methodReturnType(fn, recv)
	}

	c.checkArguments(args, paramTypes, ex.Args, ex.Span)
	return c.methodReturnType(fn, recv)
}

// methodReturnType resolves a method's declared return type against the
// receiver: every Self occurrence, top-level or nested in a composite,
// becomes the receiver's type.
func (c *Checker) methodReturnType(fn *decl.Function, recv typesystem.TypeId) typesystem.TypeId {
	return typesystem.NewTypeMapping().WithSelf(recv).ApplyToType(c.engine, fn.ReturnType)
}

func (c *Checker) checkFunctionCall(ex *ast.FunctionCall) typesystem.TypeId {
	var d decl.Declaration
	var diags []*diagnostics.Diagnostic
	if len(ex.Path) == 0 {
		d, diags = c.lookup(ex.Name, ex.Span)
	} else {
		d, diags = c.ns.ResolveCallPath(namespace.CallPath{Prefixes: ex.Path, Suffix: ex.Name}, ex.Span)
	}
	if len(diags) > 0 {
		c.handler.AppendAll(diags)
		return typesystem.ErrorRecoveryId
	}

	fn, ok := d.(*decl.Function)
	if !ok {
		if _, isRecovery := d.(*decl.ErrorRecovery); !isRecovery {
			c.handler.Append(diagnostics.SymbolNotFound(ex.Name, ex.Span))
		}
		return typesystem.ErrorRecoveryId
	}

	args := make([]typesystem.TypeId, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = c.checkExpression(a)
	}
	paramTypes := make([]typesystem.TypeId, len(fn.Parameters))
	for i, p := range fn.Parameters {
		paramTypes[i] = p.Type
	}
	if len(args) != len(paramTypes) {
		c.handler.Append(diagnostics.WrongArgumentCount(ex.Name, len(paramTypes), len(args), ex.Span))
		return fn.ReturnType
	}

	c.checkArguments(args, paramTypes, ex.Args, ex.Span)
	return fn.ReturnType
}

func (c *Checker) checkStructExpression(ex *ast.StructExpression) typesystem.TypeId {
	tn := &ast.TypeName{Span: ex.Span, Prefixes: ex.Path, Name: ex.Name, TypeArgs: ex.TypeArgs}
	typ := c.ResolveType(tn)

	_, info := c.engine.Resolve(typ)
	st, ok := info.(typesystem.TStruct)
	if !ok {
		if _, isRecovery := info.(typesystem.TErrorRecovery); !isRecovery {
			c.handler.Append(diagnostics.NotAStruct(ex.Name, ex.Span))
		}
		return typesystem.ErrorRecoveryId
	}

	for _, f := range ex.Fields {
		want, found := structFieldType(st, f.Name)
		if !found {
			c.handler.Append(diagnostics.FieldNotFound(f.Name, st.Name, structFieldNames(st), f.Span))
			continue
		}
		got := c.checkExpression(f.Value)
		if !typesystem.Check(c.engine, got, want, typesystem.Coercion) {
			c.handler.Append(diagnostics.TypeMismatch(c.engine.String(want), c.engine.String(got), f.Value.GetSpan()))
		}
	}
	return typ
}

func structFieldType(st typesystem.TStruct, name string) (typesystem.TypeId, bool) {
	for _, f := range st.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return typesystem.ErrorRecoveryId, false
}

func structFieldNames(st typesystem.TStruct) []string {
	out := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		out[i] = f.Name
	}
	return out
}

// checkArguments coerces each argument into its parameter and re-derives the
// identity constraints the parameter list implies, so two parameters
// declared with the same generic variable reject differently typed
// arguments even when each coerces on its own.
func (c *Checker) checkArguments(args, params []typesystem.TypeId, exprs []ast.Expression, callSpan span.Span) {
	if typesystem.CheckMultiple(c.engine, args, params, typesystem.Coercion) {
		return
	}
	reported := false
	for i := range args {
		if !typesystem.Check(c.engine, args[i], params[i], typesystem.Coercion) {
			c.handler.Append(diagnostics.TypeMismatch(c.engine.String(params[i]), c.engine.String(args[i]), exprs[i].GetSpan()))
			reported = true
		}
	}
	if !reported {
		c.handler.Append(diagnostics.TypeMismatch(renderList(c.engine, params), renderList(c.engine, args), callSpan))
	}
}

func renderList(e *typesystem.TypeEngine, ids []typesystem.TypeId) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = e.String(id)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
