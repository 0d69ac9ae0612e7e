package decl

import "github.com/FuelLabs/sway-sub007/internal/typesystem"

// SubstTypes applies a type mapping to every TypeId-bearing field of a
// declaration and returns a fresh copy. The input declaration is never
// mutated: specialization always works on copies so the unspecialized
// original stays valid for other instantiations.
func SubstTypes(d Declaration, e *typesystem.TypeEngine, m *typesystem.TypeMapping) Declaration {
	switch d := d.(type) {
	case *Variable:
		out := *d
		out.Type = m.ApplyToType(e, d.Type)
		return &out
	case *Function:
		return SubstFunction(d, e, m)
	case *Struct:
		out := *d
		out.TypeParameters = substParams(d.TypeParameters, e, m)
		out.Fields = substStructFields(d.Fields, e, m)
		out.TypeID = m.ApplyToType(e, d.TypeID)
		return &out
	case *Enum:
		out := *d
		out.TypeParameters = substParams(d.TypeParameters, e, m)
		variants := make([]EnumVariant, len(d.Variants))
		for i, v := range d.Variants {
			variants[i] = EnumVariant{Name: v.Name, Type: m.ApplyToType(e, v.Type), Tag: v.Tag, Span: v.Span}
		}
		out.Variants = variants
		out.TypeID = m.ApplyToType(e, d.TypeID)
		return &out
	case *Trait:
		out := *d
		out.TypeParameters = substParams(d.TypeParameters, e, m)
		out.Interface = substFunctions(d.Interface, e, m)
		out.Methods = substFunctions(d.Methods, e, m)
		return &out
	case *ImplTrait:
		out := *d
		out.TypeParameters = substParams(d.TypeParameters, e, m)
		args := make([]typesystem.TypeId, len(d.TraitTypeArgs))
		for i, a := range d.TraitTypeArgs {
			args[i] = m.ApplyToType(e, a)
		}
		out.TraitTypeArgs = args
		out.ImplementingType = m.ApplyToType(e, d.ImplementingType)
		out.Methods = substFunctions(d.Methods, e, m)
		return &out
	case *Constant:
		out := *d
		out.Type = m.ApplyToType(e, d.Type)
		return &out
	case *Storage:
		out := *d
		fields := make([]StorageField, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = StorageField{Name: f.Name, Type: m.ApplyToType(e, f.Type), Span: f.Span}
		}
		out.Fields = fields
		return &out
	case *Abi:
		out := *d
		out.Interface = substFunctions(d.Interface, e, m)
		out.Methods = substFunctions(d.Methods, e, m)
		return &out
	case *TypeAlias:
		out := *d
		out.Type = m.ApplyToType(e, d.Type)
		return &out
	case *GenericTypeForFunctionScope:
		out := *d
		out.TypeID = m.ApplyToType(e, d.TypeID)
		return &out
	default:
		// ErrorRecovery carries no types.
		return d
	}
}

// SubstFunction is SubstTypes specialized to functions, keeping the
// concrete type for trait-map method copies.
func SubstFunction(f *Function, e *typesystem.TypeEngine, m *typesystem.TypeMapping) *Function {
	out := *f
	out.TypeParameters = substParams(f.TypeParameters, e, m)
	params := make([]FunctionParameter, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = FunctionParameter{Name: p.Name, IsSelf: p.IsSelf, Type: m.ApplyToType(e, p.Type), Span: p.Span}
	}
	out.Parameters = params
	out.ReturnType = m.ApplyToType(e, f.ReturnType)
	return &out
}

func substFunctions(fns []*Function, e *typesystem.TypeEngine, m *typesystem.TypeMapping) []*Function {
	out := make([]*Function, len(fns))
	for i, f := range fns {
		out[i] = SubstFunction(f, e, m)
	}
	return out
}

func substParams(params []typesystem.TypeParameter, e *typesystem.TypeEngine, m *typesystem.TypeMapping) []typesystem.TypeParameter {
	out := make([]typesystem.TypeParameter, len(params))
	for i, p := range params {
		out[i] = typesystem.TypeParameter{TypeID: m.ApplyToType(e, p.TypeID), Name: p.Name, Span: p.Span}
	}
	return out
}

func substStructFields(fields []StructField, e *typesystem.TypeEngine, m *typesystem.TypeMapping) []StructField {
	out := make([]StructField, len(fields))
	for i, f := range fields {
		out[i] = StructField{Name: f.Name, Type: m.ApplyToType(e, f.Type), Span: f.Span}
	}
	return out
}
