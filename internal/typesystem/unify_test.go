package typesystem

import (
	"testing"

	"github.com/FuelLabs/sway-sub007/internal/span"
)

func TestCheckHandleFastPath(t *testing.T) {
	e := NewTypeEngine()
	id := e.Insert(TUnknown{})

	// Same handle is equal in every mode, even for variants that never
	// compare equal across distinct instances.
	for _, mode := range []UnifyMode{Coercion, ConstraintSubset, NonGenericConstraintSubset, NonDynamicEquality} {
		if !Check(e, id, id, mode) {
			t.Errorf("Check(id, id, %s) = false, want true", mode)
		}
	}
}

func TestCheckConcreteShapes(t *testing.T) {
	e := NewTypeEngine()
	u8a := e.Insert(TUnsignedInteger{Bits: Eight})
	u8b := e.Insert(TUnsignedInteger{Bits: Eight})
	u64 := e.Insert(TUnsignedInteger{Bits: SixtyFour})
	num := e.Insert(TNumeric{})
	boolean := e.Insert(TBoolean{})

	tests := []struct {
		name        string
		left, right TypeId
		mode        UnifyMode
		want        bool
	}{
		{name: "u8 into u8 distinct handles", left: u8a, right: u8b, mode: Coercion, want: true},
		{name: "u8 equals u8 strictly", left: u8a, right: u8b, mode: NonDynamicEquality, want: true},
		{name: "u8 into u64 never widens", left: u8a, right: u64, mode: Coercion, want: false},
		{name: "numeric into u8", left: num, right: u8a, mode: Coercion, want: true},
		{name: "u8 into numeric", left: u8a, right: num, mode: Coercion, want: true},
		{name: "numeric never strictly equal", left: num, right: num, mode: NonDynamicEquality, want: true}, // same handle
		{name: "bool into u8", left: boolean, right: u8a, mode: Coercion, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(e, tt.left, tt.right, tt.mode); got != tt.want {
				t.Errorf("Check(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	// Two distinct Numeric instances may still settle on different widths.
	num2 := e.Insert(TNumeric{})
	if Check(e, num, num2, NonDynamicEquality) {
		t.Errorf("distinct Numeric instances must not be strictly equal")
	}
}

func TestCheckWildcardsAbsorb(t *testing.T) {
	e := NewTypeEngine()
	u8 := e.Insert(TUnsignedInteger{Bits: Eight})
	placeholder := e.Insert(TPlaceholder{})
	unknown := e.Insert(TUnknown{})

	for _, mode := range []UnifyMode{Coercion, ConstraintSubset} {
		if !Check(e, u8, placeholder, mode) || !Check(e, placeholder, u8, mode) {
			t.Errorf("placeholder must absorb both ways under %s", mode)
		}
		if !Check(e, u8, unknown, mode) || !Check(e, unknown, u8, mode) {
			t.Errorf("unknown must absorb both ways under %s", mode)
		}
	}

	// Strict equality refuses anything that may still change.
	if Check(e, placeholder, e.Insert(TPlaceholder{}), NonDynamicEquality) {
		t.Errorf("placeholders must not be strictly equal")
	}
	if Check(e, unknown, e.Insert(TUnknown{}), NonDynamicEquality) {
		t.Errorf("unknowns must not be strictly equal")
	}
}

func TestCheckErrorRecoveryAbsorbs(t *testing.T) {
	e := NewTypeEngine()
	u8 := e.Insert(TUnsignedInteger{Bits: Eight})

	for _, mode := range []UnifyMode{Coercion, ConstraintSubset, NonGenericConstraintSubset, NonDynamicEquality} {
		if !Check(e, ErrorRecoveryId, u8, mode) || !Check(e, u8, ErrorRecoveryId, mode) {
			t.Errorf("error recovery must absorb both ways under %s", mode)
		}
	}
}

func TestCheckGenerics(t *testing.T) {
	e := NewTypeEngine()
	u8 := e.Insert(TUnsignedInteger{Bits: Eight})
	plain := e.Insert(TUnknownGeneric{Name: "T"})
	ord := e.Insert(TUnknownGeneric{Name: "T", Constraints: []TraitConstraint{{Trait: "Ord"}}})
	ordEq := e.Insert(TUnknownGeneric{Name: "T", Constraints: []TraitConstraint{{Trait: "Ord"}, {Trait: "Eq"}}})

	tests := []struct {
		name        string
		left, right TypeId
		mode        UnifyMode
		want        bool
	}{
		{name: "concrete into generic", left: u8, right: plain, mode: Coercion, want: true},
		{name: "generic into concrete", left: plain, right: u8, mode: Coercion, want: false},
		{name: "constrained into unconstrained", left: ord, right: plain, mode: Coercion, want: true},
		{name: "unconstrained into constrained", left: plain, right: ord, mode: Coercion, want: false},
		{name: "superset of constraints suffices", left: ordEq, right: ord, mode: Coercion, want: true},
		{name: "non-generic mode demands equality", left: u8, right: plain, mode: NonGenericConstraintSubset, want: false},
		{name: "non-generic mode on concrete right", left: u8, right: u8, mode: NonGenericConstraintSubset, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(e, tt.left, tt.right, tt.mode); got != tt.want {
				t.Errorf("Check(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCheckEmptyEnumIsBottomOnlyUnderCoercion(t *testing.T) {
	e := NewTypeEngine()
	never := e.Insert(TEnum{Name: "Never", DeclSpan: span.New("lib.sw", 1, 1)})
	u8 := e.Insert(TUnsignedInteger{Bits: Eight})

	if !Check(e, never, u8, Coercion) {
		t.Errorf("an empty enum must coerce into anything")
	}
	if Check(e, never, u8, ConstraintSubset) {
		t.Errorf("bottom coercion must not apply under constraint subset")
	}
	if Check(e, never, u8, NonDynamicEquality) {
		t.Errorf("bottom coercion must not apply under strict equality")
	}
	if Check(e, u8, never, Coercion) {
		t.Errorf("nothing coerces into an empty enum")
	}
}

func TestCheckStructDeclarationIdentity(t *testing.T) {
	e := NewTypeEngine()
	u8 := e.Insert(TUnsignedInteger{Bits: Eight})
	mk := func(file string) TypeId {
		return e.Insert(TStruct{
			Name:     "Point",
			Fields:   []StructField{{Name: "x", Type: u8}},
			DeclSpan: span.New(file, 3, 1),
		})
	}
	a := mk("a.sw")
	b := mk("a.sw")
	other := mk("b.sw")

	// Same declaration site: equal everywhere.
	if !Check(e, a, b, ConstraintSubset) || !Check(e, a, b, NonDynamicEquality) {
		t.Errorf("same-declaration structs must unify in strict modes")
	}

	// Same name and shape, different declaration: coercible, never equal.
	if !Check(e, a, other, Coercion) {
		t.Errorf("same-shaped structs coerce by name and shape")
	}
	if Check(e, a, other, ConstraintSubset) {
		t.Errorf("constraint subset must require the same declaration site")
	}
	if Check(e, a, other, NonDynamicEquality) {
		t.Errorf("strict equality must require the same declaration site")
	}
}

func TestCheckMultipleRederivesIdentityConstraints(t *testing.T) {
	e := NewTypeEngine()
	u8a := e.Insert(TUnsignedInteger{Bits: Eight})
	u8b := e.Insert(TUnsignedInteger{Bits: Eight})
	u64 := e.Insert(TUnsignedInteger{Bits: SixtyFour})
	tVar := e.Insert(TUnknownGeneric{Name: "T"})
	tVar2 := e.Insert(TUnknownGeneric{Name: "T"})
	fVar := e.Insert(TUnknownGeneric{Name: "F"})

	tests := []struct {
		name        string
		left, right []TypeId
		want        bool
	}{
		{name: "equal pair against T T", left: []TypeId{u8a, u8b}, right: []TypeId{tVar, tVar}, want: true},
		{name: "unequal pair against T T", left: []TypeId{u8a, u64}, right: []TypeId{tVar, tVar}, want: false},
		{name: "unequal pair against T F", left: []TypeId{u8a, u64}, right: []TypeId{tVar, fVar}, want: true},
		{name: "same generic name re-interned", left: []TypeId{u8a, u64}, right: []TypeId{tVar, tVar2}, want: false},
		{name: "arity mismatch", left: []TypeId{u8a}, right: []TypeId{tVar, tVar}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckMultiple(e, tt.left, tt.right, ConstraintSubset); got != tt.want {
				t.Errorf("CheckMultiple(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCheckRecursiveShapesTerminate(t *testing.T) {
	e := NewTypeEngine()

	// A linked list whose node references itself through a Ref.
	nodeRef := e.Insert(TRef{Target: 0})
	node := e.Insert(TStruct{
		Name:     "Node",
		Fields:   []StructField{{Name: "next", Type: nodeRef}},
		DeclSpan: span.New("list.sw", 1, 1),
	})
	e.mu.Lock()
	e.slab[nodeRef] = TRef{Target: node}
	e.mu.Unlock()

	other := e.Insert(TStruct{
		Name:     "Node",
		Fields:   []StructField{{Name: "next", Type: node}},
		DeclSpan: span.New("list.sw", 1, 1),
	})

	// Must terminate and treat the co-recursive pair as compatible.
	if !Check(e, node, other, Coercion) {
		t.Errorf("co-recursive same-shape structs must coerce")
	}
}
