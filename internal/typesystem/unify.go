package typesystem

// UnifyMode selects which relationship Check decides.
type UnifyMode int

const (
	// Coercion asks: can a value of the left type be used where the right
	// type is expected?
	Coercion UnifyMode = iota

	// ConstraintSubset asks: does the left type's capability set subsume
	// what the right requires? Same recursion as Coercion but stricter on
	// struct/enum identity (declaration spans must match, not just names).
	ConstraintSubset

	// NonGenericConstraintSubset is ConstraintSubset except that a
	// top-level generic right-hand type demands exact structural equality
	// instead of automatic subsumption.
	NonGenericConstraintSubset

	// NonDynamicEquality is strict structural equality that treats
	// unresolved placeholders (Unknown, SelfType, Numeric, Placeholder,
	// storage) as never equal across independently produced instances.
	NonDynamicEquality
)

func (m UnifyMode) String() string {
	switch m {
	case Coercion:
		return "coercion"
	case ConstraintSubset:
		return "constraint-subset"
	case NonGenericConstraintSubset:
		return "non-generic-constraint-subset"
	default:
		return "non-dynamic-equality"
	}
}

// Check decides whether left relates to right under the given mode. It never
// reports why: a false return is turned into a positioned diagnostic by the
// caller, which knows the source context.
func Check(e *TypeEngine, left, right TypeId, mode UnifyMode) bool {
	if mode == NonGenericConstraintSubset {
		_, rinfo := e.Resolve(right)
		if _, ok := rinfo.(TUnknownGeneric); ok {
			return check(e, left, right, NonDynamicEquality, nil)
		}
		mode = ConstraintSubset
	}
	return check(e, left, right, mode, nil)
}

// CheckMultiple checks two type lists pairwise and additionally re-derives
// the identity constraints implied by the right-hand list: when two
// right-hand entries are required to be the same type, the corresponding
// left-hand entries must be structurally identical too. This is what keeps
// an implementation for Data<T,T> from serving a Data<T,F>-shaped request.
func CheckMultiple(e *TypeEngine, left, right []TypeId, mode UnifyMode) bool {
	if mode == NonGenericConstraintSubset {
		mode = ConstraintSubset
	}
	return checkMultiple(e, left, right, mode, nil)
}

type checkedPair struct {
	left, right TypeId
	mode        UnifyMode
}

func check(e *TypeEngine, left, right TypeId, mode UnifyMode, visited []checkedPair) bool {
	if left == right {
		return true
	}
	lid, li := e.Resolve(left)
	rid, ri := e.Resolve(right)
	if lid == rid {
		return true
	}

	// Recursive struct/enum shapes terminate via this co-inductive guard.
	for _, p := range visited {
		if p.left == lid && p.right == rid && p.mode == mode {
			return true
		}
	}
	visited = append(visited, checkedPair{left: lid, right: rid, mode: mode})

	// The error marker absorbs in every mode, so one earlier failure does
	// not cascade.
	if _, ok := li.(TErrorRecovery); ok {
		return true
	}
	if _, ok := ri.(TErrorRecovery); ok {
		return true
	}

	if mode == NonDynamicEquality {
		return eqNonDynamic(e, li, ri, visited)
	}
	return coerces(e, li, ri, mode, visited)
}

// coerces is the shared core of Coercion and ConstraintSubset.
func coerces(e *TypeEngine, li, ri TypeInfo, mode UnifyMode, visited []checkedPair) bool {
	// Wildcards and still-unknown types unify with anything.
	switch li.(type) {
	case TPlaceholder, TUnknown:
		return true
	}
	switch ri.(type) {
	case TPlaceholder, TUnknown:
		return true
	}

	// Generic variables: anything concrete coerces into a generic; two
	// generics coerce only when the right's constraints are satisfied by
	// the left's. A generic never silently coerces into a concrete type.
	if rg, ok := ri.(TUnknownGeneric); ok {
		if lg, ok := li.(TUnknownGeneric); ok {
			return constraintsSubset(e, lg.Constraints, rg.Constraints, mode)
		}
		return true
	}
	if _, ok := li.(TUnknownGeneric); ok {
		return false
	}

	// An enum with no variants is the bottom type.
	if le, ok := li.(TEnum); ok && len(le.Variants) == 0 && mode == Coercion {
		return true
	}

	switch li := li.(type) {
	case TBoolean:
		_, ok := ri.(TBoolean)
		return ok
	case TByte:
		_, ok := ri.(TByte)
		return ok
	case TB256:
		_, ok := ri.(TB256)
		return ok
	case TContract:
		_, ok := ri.(TContract)
		return ok
	case TStrSlice:
		_, ok := ri.(TStrSlice)
		return ok
	case TStrArray:
		rs, ok := ri.(TStrArray)
		return ok && li.Len == rs.Len
	case TUnsignedInteger:
		switch ri := ri.(type) {
		case TUnsignedInteger:
			return li.Bits == ri.Bits
		case TNumeric:
			return true
		}
		return false
	case TNumeric:
		switch ri.(type) {
		case TNumeric, TUnsignedInteger:
			return true
		}
		return false
	case TSelfType:
		_, ok := ri.(TSelfType)
		return ok
	case TTuple:
		rt, ok := ri.(TTuple)
		return ok && checkMultiple(e, li.Fields, rt.Fields, mode, visited)
	case TArray:
		ra, ok := ri.(TArray)
		return ok && li.Len == ra.Len && check(e, li.Elem, ra.Elem, mode, visited)
	case TStruct:
		rs, ok := ri.(TStruct)
		if !ok || li.Name != rs.Name {
			return false
		}
		if mode == ConstraintSubset && li.DeclSpan != rs.DeclSpan {
			return false
		}
		return namedShapeMatches(e, structShape(li), structShape(rs), mode, visited)
	case TEnum:
		re, ok := ri.(TEnum)
		if !ok || li.Name != re.Name {
			return false
		}
		if mode == ConstraintSubset && li.DeclSpan != re.DeclSpan {
			return false
		}
		return namedShapeMatches(e, enumShape(li), enumShape(re), mode, visited)
	case TCustom:
		rc, ok := ri.(TCustom)
		if !ok || li.Name != rc.Name {
			return false
		}
		// A written argument list must agree; an absent list is
		// unconstrained (the reference is not resolved yet).
		if li.TypeArgs == nil || rc.TypeArgs == nil {
			return true
		}
		return checkMultiple(e, li.TypeArgs, rc.TypeArgs, mode, visited)
	case TStorage:
		rs, ok := ri.(TStorage)
		return ok && fieldsMatch(e, li.Fields, rs.Fields, mode, visited)
	default:
		return false
	}
}

// eqNonDynamic compares already-settled shapes structurally. Variants that
// may still resolve to something else later never compare equal, even to an
// identical-looking instance.
func eqNonDynamic(e *TypeEngine, li, ri TypeInfo, visited []checkedPair) bool {
	switch li.(type) {
	case TUnknown, TSelfType, TNumeric, TPlaceholder, TStorage:
		return false
	}
	switch ri.(type) {
	case TUnknown, TSelfType, TNumeric, TPlaceholder, TStorage:
		return false
	}

	switch li := li.(type) {
	case TUnknownGeneric:
		rg, ok := ri.(TUnknownGeneric)
		return ok && li.Name == rg.Name &&
			constraintsSubset(e, li.Constraints, rg.Constraints, NonDynamicEquality) &&
			constraintsSubset(e, rg.Constraints, li.Constraints, NonDynamicEquality)
	case TBoolean:
		_, ok := ri.(TBoolean)
		return ok
	case TByte:
		_, ok := ri.(TByte)
		return ok
	case TB256:
		_, ok := ri.(TB256)
		return ok
	case TContract:
		_, ok := ri.(TContract)
		return ok
	case TStrSlice:
		_, ok := ri.(TStrSlice)
		return ok
	case TStrArray:
		rs, ok := ri.(TStrArray)
		return ok && li.Len == rs.Len
	case TUnsignedInteger:
		ru, ok := ri.(TUnsignedInteger)
		return ok && li.Bits == ru.Bits
	case TTuple:
		rt, ok := ri.(TTuple)
		return ok && checkMultiple(e, li.Fields, rt.Fields, NonDynamicEquality, visited)
	case TArray:
		ra, ok := ri.(TArray)
		return ok && li.Len == ra.Len && check(e, li.Elem, ra.Elem, NonDynamicEquality, visited)
	case TStruct:
		rs, ok := ri.(TStruct)
		if !ok || li.Name != rs.Name || li.DeclSpan != rs.DeclSpan {
			return false
		}
		return namedShapeMatches(e, structShape(li), structShape(rs), NonDynamicEquality, visited)
	case TEnum:
		re, ok := ri.(TEnum)
		if !ok || li.Name != re.Name || li.DeclSpan != re.DeclSpan {
			return false
		}
		return namedShapeMatches(e, enumShape(li), enumShape(re), NonDynamicEquality, visited)
	case TCustom:
		rc, ok := ri.(TCustom)
		if !ok || li.Name != rc.Name {
			return false
		}
		if (li.TypeArgs == nil) != (rc.TypeArgs == nil) {
			return false
		}
		return checkMultiple(e, li.TypeArgs, rc.TypeArgs, NonDynamicEquality, visited)
	default:
		return false
	}
}

// namedShape is the comparable skeleton of a struct or enum descriptor:
// member names with their types, plus the declared type parameters.
type namedShape struct {
	memberNames []string
	memberTypes []TypeId
	params      []TypeId
}

func structShape(s TStruct) namedShape {
	shape := namedShape{}
	for _, f := range s.Fields {
		shape.memberNames = append(shape.memberNames, f.Name)
		shape.memberTypes = append(shape.memberTypes, f.Type)
	}
	for _, p := range s.TypeParameters {
		shape.params = append(shape.params, p.TypeID)
	}
	return shape
}

func enumShape(en TEnum) namedShape {
	shape := namedShape{}
	for _, v := range en.Variants {
		shape.memberNames = append(shape.memberNames, v.Name)
		shape.memberTypes = append(shape.memberTypes, v.Type)
	}
	for _, p := range en.TypeParameters {
		shape.params = append(shape.params, p.TypeID)
	}
	return shape
}

func namedShapeMatches(e *TypeEngine, l, r namedShape, mode UnifyMode, visited []checkedPair) bool {
	if len(l.memberNames) != len(r.memberNames) || len(l.params) != len(r.params) {
		return false
	}
	for i := range l.memberNames {
		if l.memberNames[i] != r.memberNames[i] {
			return false
		}
	}
	if !checkMultiple(e, l.params, r.params, mode, visited) {
		return false
	}
	return checkMultiple(e, l.memberTypes, r.memberTypes, mode, visited)
}

func fieldsMatch(e *TypeEngine, l, r []StructField, mode UnifyMode, visited []checkedPair) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i].Name != r[i].Name || !check(e, l[i].Type, r[i].Type, mode, visited) {
			return false
		}
	}
	return true
}

func checkMultiple(e *TypeEngine, left, right []TypeId, mode UnifyMode, visited []checkedPair) bool {
	if len(left) != len(right) {
		return false
	}
	// Identity constraints implied by the right-hand list: two occurrences
	// of the same right-hand type force the corresponding left-hand types
	// to be identical as well.
	for i := 0; i < len(right); i++ {
		for j := i + 1; j < len(right); j++ {
			if !sameRightHand(e, right[i], right[j]) {
				continue
			}
			if !check(e, left[i], left[j], NonDynamicEquality, visited) {
				return false
			}
		}
	}
	for i := range left {
		if !check(e, left[i], right[i], mode, visited) {
			return false
		}
	}
	return true
}

// sameRightHand reports whether two right-hand entries denote the same
// type: the same handle, or the same named generic variable.
func sameRightHand(e *TypeEngine, a, b TypeId) bool {
	aid, ai := e.Resolve(a)
	bid, bi := e.Resolve(b)
	if aid == bid {
		return true
	}
	ag, aok := ai.(TUnknownGeneric)
	bg, bok := bi.(TUnknownGeneric)
	return aok && bok && ag.Name == bg.Name
}
