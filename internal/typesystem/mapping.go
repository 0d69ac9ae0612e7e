package typesystem

// TypeMapping is an ordered list of (generic parameter, replacement) pairs
// computed once per specialization event. Applying a mapping only ever
// produces fresh descriptors; the descriptors already stored in the engine
// are never mutated.
type TypeMapping struct {
	pairs []mappingPair

	// Fresh self-type handle substituted for every SelfType occurrence, so
	// nested self-references inside a specialized copy stay consistent.
	selfType TypeId
	hasSelf  bool
}

type mappingPair struct {
	From TypeId
	To   TypeId
}

// NewTypeMapping builds a mapping from explicit pairs.
func NewTypeMapping() *TypeMapping {
	return &TypeMapping{}
}

// Insert appends one (from, to) pair.
func (m *TypeMapping) Insert(from, to TypeId) {
	m.pairs = append(m.pairs, mappingPair{From: from, To: to})
}

// WithSelf makes the mapping replace every SelfType occurrence with the
// given handle.
func (m *TypeMapping) WithSelf(id TypeId) *TypeMapping {
	m.selfType = id
	m.hasSelf = true
	return m
}

// Len reports the number of pairs.
func (m *TypeMapping) Len() int {
	return len(m.pairs)
}

// FromTypeParameters pairs each declared generic parameter with the
// corresponding concrete type argument. The two slices must have equal
// length; extra arguments are the caller's diagnostic to raise.
func FromTypeParameters(params []TypeParameter, args []TypeId) *TypeMapping {
	m := NewTypeMapping()
	for i := range params {
		if i >= len(args) {
			break
		}
		m.Insert(params[i].TypeID, args[i])
	}
	return m
}

// FromSupersetAndSubset matches a generic (superset) type against a more
// concrete (subset) type and records which generic positions map to which
// concrete types. Positions that do not line up contribute nothing; the
// caller has already established compatibility via Check.
func FromSupersetAndSubset(e *TypeEngine, superset, subset TypeId) *TypeMapping {
	m := NewTypeMapping()
	m.collect(e, superset, subset, 0)
	return m
}

func (m *TypeMapping) collect(e *TypeEngine, superset, subset TypeId, depth int) {
	if depth > maxRenderDepth {
		return
	}
	supID, sup := e.Resolve(superset)
	subID, sub := e.Resolve(subset)
	if supID == subID {
		return
	}

	switch sup := sup.(type) {
	case TUnknownGeneric:
		m.Insert(supID, subID)
	case TCustom:
		if sub, ok := sub.(TCustom); ok {
			m.collectMany(e, sup.TypeArgs, sub.TypeArgs, depth)
		}
	case TTuple:
		if sub, ok := sub.(TTuple); ok {
			m.collectMany(e, sup.Fields, sub.Fields, depth)
		}
	case TArray:
		if sub, ok := sub.(TArray); ok {
			m.collect(e, sup.Elem, sub.Elem, depth+1)
		}
	case TStruct:
		if sub, ok := sub.(TStruct); ok {
			m.collectMany(e, paramIds(sup.TypeParameters), paramIds(sub.TypeParameters), depth)
			m.collectMany(e, fieldIds(sup.Fields), fieldIds(sub.Fields), depth)
		}
	case TEnum:
		if sub, ok := sub.(TEnum); ok {
			m.collectMany(e, paramIds(sup.TypeParameters), paramIds(sub.TypeParameters), depth)
			supTypes := make([]TypeId, len(sup.Variants))
			for i, v := range sup.Variants {
				supTypes[i] = v.Type
			}
			subTypes := make([]TypeId, len(sub.Variants))
			for i, v := range sub.Variants {
				subTypes[i] = v.Type
			}
			m.collectMany(e, supTypes, subTypes, depth)
		}
	case TStorage:
		if sub, ok := sub.(TStorage); ok {
			m.collectMany(e, fieldIds(sup.Fields), fieldIds(sub.Fields), depth)
		}
	}
}

func (m *TypeMapping) collectMany(e *TypeEngine, superset, subset []TypeId, depth int) {
	if len(superset) != len(subset) {
		return
	}
	for i := range superset {
		m.collect(e, superset[i], subset[i], depth+1)
	}
}

func paramIds(params []TypeParameter) []TypeId {
	out := make([]TypeId, len(params))
	for i, p := range params {
		out[i] = p.TypeID
	}
	return out
}

func fieldIds(fields []StructField) []TypeId {
	out := make([]TypeId, len(fields))
	for i, f := range fields {
		out[i] = f.Type
	}
	return out
}

// find returns the replacement for id, if the mapping has one. A pair
// matches on handle identity or on generic-variable name, so a generic
// parameter re-interned under a new handle still maps.
func (m *TypeMapping) find(e *TypeEngine, id TypeId) (TypeId, bool) {
	rid, info := e.Resolve(id)
	if _, ok := info.(TSelfType); ok && m.hasSelf {
		return m.selfType, true
	}
	gen, isGen := info.(TUnknownGeneric)
	for _, p := range m.pairs {
		if p.From == rid || p.From == id {
			return p.To, true
		}
		if !isGen {
			continue
		}
		_, fromInfo := e.Resolve(p.From)
		if fromGen, ok := fromInfo.(TUnknownGeneric); ok && fromGen.Name == gen.Name {
			return p.To, true
		}
	}
	return id, false
}

// ApplyToType rewrites every mapped occurrence inside the type behind id,
// interning fresh descriptors for the rewritten composites. When nothing
// matched, the original handle is returned unchanged.
func (m *TypeMapping) ApplyToType(e *TypeEngine, id TypeId) TypeId {
	return m.applyDepth(e, id, 0)
}

func (m *TypeMapping) applyDepth(e *TypeEngine, id TypeId, depth int) TypeId {
	if depth > maxRenderDepth {
		return id
	}
	if to, ok := m.find(e, id); ok {
		return to
	}
	rid, info := e.Resolve(id)

	switch info := info.(type) {
	case TTuple:
		fields, changed := m.applyMany(e, info.Fields, depth)
		if !changed {
			return rid
		}
		return e.Insert(TTuple{Fields: fields})
	case TArray:
		elem := m.applyDepth(e, info.Elem, depth+1)
		if elem == info.Elem {
			return rid
		}
		return e.Insert(TArray{Elem: elem, Len: info.Len})
	case TCustom:
		if info.TypeArgs == nil {
			return rid
		}
		args, changed := m.applyMany(e, info.TypeArgs, depth)
		if !changed {
			return rid
		}
		return e.Insert(TCustom{Name: info.Name, TypeArgs: args})
	case TStruct:
		fields, fchanged := m.applyFields(e, info.Fields, depth)
		params, pchanged := m.applyParams(e, info.TypeParameters, depth)
		if !fchanged && !pchanged {
			return rid
		}
		return e.Insert(TStruct{Name: info.Name, Fields: fields, TypeParameters: params, DeclSpan: info.DeclSpan})
	case TEnum:
		variants := make([]EnumVariant, len(info.Variants))
		vchanged := false
		for i, v := range info.Variants {
			nt := m.applyDepth(e, v.Type, depth+1)
			if nt != v.Type {
				vchanged = true
			}
			variants[i] = EnumVariant{Name: v.Name, Type: nt, Tag: v.Tag, Span: v.Span}
		}
		params, pchanged := m.applyParams(e, info.TypeParameters, depth)
		if !vchanged && !pchanged {
			return rid
		}
		return e.Insert(TEnum{Name: info.Name, Variants: variants, TypeParameters: params, DeclSpan: info.DeclSpan})
	case TStorage:
		fields, changed := m.applyFields(e, info.Fields, depth)
		if !changed {
			return rid
		}
		return e.Insert(TStorage{Fields: fields})
	default:
		return rid
	}
}

func (m *TypeMapping) applyMany(e *TypeEngine, ids []TypeId, depth int) ([]TypeId, bool) {
	out := make([]TypeId, len(ids))
	changed := false
	for i, id := range ids {
		out[i] = m.applyDepth(e, id, depth+1)
		if out[i] != id {
			changed = true
		}
	}
	return out, changed
}

func (m *TypeMapping) applyFields(e *TypeEngine, fields []StructField, depth int) ([]StructField, bool) {
	out := make([]StructField, len(fields))
	changed := false
	for i, f := range fields {
		nt := m.applyDepth(e, f.Type, depth+1)
		if nt != f.Type {
			changed = true
		}
		out[i] = StructField{Name: f.Name, Type: nt, Span: f.Span}
	}
	return out, changed
}

func (m *TypeMapping) applyParams(e *TypeEngine, params []TypeParameter, depth int) ([]TypeParameter, bool) {
	out := make([]TypeParameter, len(params))
	changed := false
	for i, p := range params {
		nt := m.applyDepth(e, p.TypeID, depth+1)
		if nt != p.TypeID {
			changed = true
		}
		out[i] = TypeParameter{TypeID: nt, Name: p.Name, Span: p.Span}
	}
	return out, changed
}
