package resolve

import (
	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// CollectModule builds the namespace subtree for a syntax module at the
// given absolute path and inserts its type-introducing declarations.
// Submodules are collected before their parent so a parent's declarations
// may reference child types by qualified path.
func (c *Checker) CollectModule(m *ast.Module, path []string) {
	parent, diag := c.root.Module().LookupSubmodule(path, m.Span)
	if diag != nil {
		c.handler.Append(diag)
		return
	}
	for _, sub := range m.Submodules {
		parent.InsertSubmodule(sub.Name, namespace.NewModule(sub.Name, sub.Span))
		c.CollectModule(sub, childPath(path, sub.Name))
	}

	c.enterModule(path)
	c.log.Debug().Strs("module", path).Msg("collecting declarations")
	for _, item := range m.Items {
		switch d := item.(type) {
		case *ast.StructDeclaration:
			c.collectStruct(d, path)
		case *ast.EnumDeclaration:
			c.collectEnum(d, path)
		case *ast.TraitDeclaration:
			c.collectTrait(d)
		case *ast.AbiDeclaration:
			c.collectAbi(d)
		case *ast.TypeAliasDeclaration:
			c.collectAlias(d)
		}
	}
}

// ResolveImports applies the module's use statements, submodules first so a
// parent may star-import from an already-populated child.
func (c *Checker) ResolveImports(m *ast.Module, path []string) {
	for _, sub := range m.Submodules {
		c.ResolveImports(sub, childPath(path, sub.Name))
	}
	for _, u := range m.Uses {
		if u.Star {
			c.handler.AppendAll(c.root.StarImport(u.Path, path, u.Span))
			continue
		}
		c.handler.AppendAll(c.root.ItemImport(c.engine, u.Path, path, u.Item, u.Alias, u.Span))
	}
}

func (c *Checker) collectStruct(d *ast.StructDeclaration, path []string) {
	c.pushScope()
	params := c.declareTypeParameters(d.TypeParameters, true)

	tsFields := make([]typesystem.StructField, len(d.Fields))
	declFields := make([]decl.StructField, len(d.Fields))
	for i, f := range d.Fields {
		typ := c.resolveTypeLenient(f.Type)
		tsFields[i] = typesystem.StructField{Name: f.Name, Type: typ, Span: f.Span}
		declFields[i] = decl.StructField{Name: f.Name, Type: typ, Span: f.Span}
	}
	c.popScope()

	typeID := c.engine.Insert(typesystem.TStruct{
		Name:           d.Name,
		Fields:         tsFields,
		TypeParameters: params,
		DeclSpan:       d.Span,
	})
	c.insertModuleSymbol(d.Name, &decl.Struct{
		Name:           d.Name,
		Visibility:     mapVisibility(d.Visibility),
		TypeParameters: params,
		Fields:         declFields,
		TypeID:         typeID,
		Span:           d.Span,
	})
	c.origins[d.Span] = path
}

func (c *Checker) collectEnum(d *ast.EnumDeclaration, path []string) {
	c.pushScope()
	params := c.declareTypeParameters(d.TypeParameters, true)

	tsVariants := make([]typesystem.EnumVariant, len(d.Variants))
	declVariants := make([]decl.EnumVariant, len(d.Variants))
	for i, v := range d.Variants {
		typ := c.resolveTypeLenient(v.Type)
		tsVariants[i] = typesystem.EnumVariant{Name: v.Name, Type: typ, Tag: uint64(i), Span: v.Span}
		declVariants[i] = decl.EnumVariant{Name: v.Name, Type: typ, Tag: uint64(i), Span: v.Span}
	}
	c.popScope()

	typeID := c.engine.Insert(typesystem.TEnum{
		Name:           d.Name,
		Variants:       tsVariants,
		TypeParameters: params,
		DeclSpan:       d.Span,
	})
	c.insertModuleSymbol(d.Name, &decl.Enum{
		Name:           d.Name,
		Visibility:     mapVisibility(d.Visibility),
		TypeParameters: params,
		Variants:       declVariants,
		TypeID:         typeID,
		Span:           d.Span,
	})
	c.origins[d.Span] = path
}

func (c *Checker) collectTrait(d *ast.TraitDeclaration) {
	c.pushScope()
	params := c.declareTypeParameters(d.TypeParameters, true)

	savedSelf := c.selfType
	c.selfType = c.engine.Insert(typesystem.TSelfType{})
	surface := c.collectSignatures(d.Interface, true)
	provided := c.collectSignatures(d.Methods, true)
	c.selfType = savedSelf
	c.popScope()

	c.insertModuleSymbol(d.Name, &decl.Trait{
		Name:           d.Name,
		Visibility:     mapVisibility(d.Visibility),
		TypeParameters: params,
		Interface:      surface,
		Methods:        provided,
		Span:           d.Span,
	})
}

func (c *Checker) collectAbi(d *ast.AbiDeclaration) {
	c.pushScope()
	savedSelf := c.selfType
	c.selfType = c.engine.Insert(typesystem.TContract{})
	surface := c.collectSignatures(d.Interface, true)
	provided := c.collectSignatures(d.Methods, true)
	c.selfType = savedSelf
	c.popScope()

	c.insertModuleSymbol(d.Name, &decl.Abi{
		Name:      d.Name,
		Interface: surface,
		Methods:   provided,
		Span:      d.Span,
	})
}

func (c *Checker) collectAlias(d *ast.TypeAliasDeclaration) {
	c.insertModuleSymbol(d.Name, &decl.TypeAlias{
		Name:       d.Name,
		Visibility: mapVisibility(d.Visibility),
		Type:       c.resolveTypeLenient(d.Type),
		Span:       d.Span,
	})
}

func (c *Checker) collectSignatures(fns []*ast.FunctionDeclaration, lenient bool) []*decl.Function {
	out := make([]*decl.Function, 0, len(fns))
	for _, fd := range fns {
		out = append(out, c.resolveSignature(fd, lenient))
	}
	return out
}

// resolveSignature resolves a function declaration's header. The generic
// parameters it declares go into a scope of their own, popped before
// returning, so they never leak into the surrounding declaration.
func (c *Checker) resolveSignature(fd *ast.FunctionDeclaration, lenient bool) *decl.Function {
	c.pushScope()
	params := c.declareTypeParameters(fd.TypeParameters, lenient)

	fnParams := make([]decl.FunctionParameter, len(fd.Parameters))
	for i, p := range fd.Parameters {
		typ := typesystem.ErrorRecoveryId
		if p.IsSelf {
			typ = c.selfParamType()
		} else if p.Type != nil {
			typ = c.resolveType(p.Type, lenient)
		}
		fnParams[i] = decl.FunctionParameter{Name: p.Name, IsSelf: p.IsSelf, Type: typ, Span: p.Span}
	}
	ret := c.resolveType(fd.ReturnType, lenient)
	c.popScope()

	return &decl.Function{
		Name:           fd.Name,
		Visibility:     mapVisibility(fd.Visibility),
		TypeParameters: params,
		Parameters:     fnParams,
		ReturnType:     ret,
		Body:           fd.Body,
		Span:           fd.Span,
	}
}

func (c *Checker) selfParamType() typesystem.TypeId {
	if c.selfType != typesystem.ErrorRecoveryId {
		return c.selfType
	}
	return c.engine.Insert(typesystem.TSelfType{})
}

// declareTypeParameters interns each declared generic parameter and brings
// it into the innermost scope so the declaration's own types can reference
// it.
func (c *Checker) declareTypeParameters(params []*ast.TypeParameter, lenient bool) []typesystem.TypeParameter {
	out := make([]typesystem.TypeParameter, 0, len(params))
	for _, p := range params {
		constraints := make([]typesystem.TraitConstraint, 0, len(p.Bounds))
		for _, b := range p.Bounds {
			constraints = append(constraints, typesystem.TraitConstraint{
				Trait:         b.Name,
				TypeArguments: c.resolveArgs(b.TypeArgs, lenient),
			})
		}
		id := c.engine.Insert(typesystem.TUnknownGeneric{Name: p.Name, Constraints: constraints})
		out = append(out, typesystem.TypeParameter{TypeID: id, Name: p.Name, Span: p.Span})
		c.insertLocal(p.Name, &decl.GenericTypeForFunctionScope{Name: p.Name, TypeID: id, Span: p.Span})
	}
	return out
}

func (c *Checker) insertModuleSymbol(name string, d decl.Declaration) {
	c.handler.AppendAll(c.ns.Module().Items().InsertSymbol(name, d, namespace.ItemStyle, c.genericMode()))
}

func mapVisibility(v ast.Visibility) decl.Visibility {
	if v == ast.Public {
		return decl.Public
	}
	return decl.Private
}

func childPath(path []string, name string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, name)
}
