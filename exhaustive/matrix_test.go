package exhaustive

import "testing"

var boolSiblings = []Constructor{{Name: "true", Arity: 0}, {Name: "false", Arity: 0}}

func boolTrue() Constructor  { return Constructor{Name: "true", Arity: 0, Siblings: boolSiblings} }
func boolFalse() Constructor { return Constructor{Name: "false", Arity: 0, Siblings: boolSiblings} }

func TestExhaustiveBoolWithWildcardTail(t *testing.T) {
	m := Matrix{
		{Con(boolFalse())},
		{Wild()},
	}
	ok, witness := Exhaustive(m, 1)
	if !ok {
		t.Error("expected exhaustive: false then wildcard covers both")
	}
	if witness != nil {
		t.Errorf("expected no witness when exhaustive, got %v", witness)
	}
}

func TestNonExhaustiveBoolMissingFalse(t *testing.T) {
	m := Matrix{
		{Con(boolTrue())},
	}
	ok, witness := Exhaustive(m, 1)
	if ok {
		t.Error("expected non-exhaustive: only true is covered")
	}
	if len(witness) != 1 || witness[0].Con.Name != "false" {
		t.Errorf("got witness %v, want [false]", witness)
	}
}

func TestRedundantArmAfterWildcard(t *testing.T) {
	m := Matrix{
		{Wild()},
		{Con(boolTrue())},
	}
	rep := CheckUsefulness(m, 1)
	if len(rep.RedundantArms) != 1 || rep.RedundantArms[0] != (RedundantArm{Index: 1, CoveredBy: 0}) {
		t.Errorf("got redundant=%v, want [{1 0}]", rep.RedundantArms)
	}
	if !rep.Exhaustive {
		t.Error("expected exhaustive: wildcard alone covers everything")
	}
}

func TestRedundantArmCoveredByEarliestRow(t *testing.T) {
	// Two identical arms: the second is covered entirely by the first,
	// so CoveredBy must point at row 0, not row 1 (spec.md §8 scenario 6).
	m := Matrix{
		{Con(boolTrue())},
		{Con(boolTrue())},
	}
	rep := CheckUsefulness(m, 1)
	if len(rep.RedundantArms) != 1 || rep.RedundantArms[0] != (RedundantArm{Index: 1, CoveredBy: 0}) {
		t.Errorf("got redundant=%v, want [{1 0}]", rep.RedundantArms)
	}
}

func TestInfiniteTypeNeverComplete(t *testing.T) {
	// int literals have no Siblings list: no finite set of literal arms
	// is ever exhaustive without a trailing wildcard.
	m := Matrix{
		{Con(IntLit(0))},
		{Con(IntLit(1))},
	}
	ok, witness := Exhaustive(m, 1)
	if ok {
		t.Error("expected non-exhaustive: int has unboundedly many literals")
	}
	if len(witness) != 1 || witness[0].Con.Name != "2" {
		t.Errorf("got witness %v, want [2] (succ of the largest literal seen)", witness)
	}
}

func TestInfiniteTextTypeSuccessorDoublesLongest(t *testing.T) {
	m := Matrix{
		{Con(TextLit("a"))},
		{Con(TextLit("bb"))},
	}
	_, witness := Exhaustive(m, 1)
	if len(witness) != 1 || witness[0].Con.Name != "bbbb" {
		t.Errorf("got witness %v, want [bbbb] (longest literal doubled)", witness)
	}
}

func TestTupleOfBools(t *testing.T) {
	tuple := Constructor{Name: "(,)", Arity: 2}
	m := Matrix{
		{Con(tuple, Con(boolTrue()), Wild())},
		{Con(tuple, Con(boolFalse()), Wild())},
	}
	ok, _ := Exhaustive(m, 1)
	if !ok {
		t.Error("expected exhaustive: both bool cases of the tuple's first slot are covered")
	}
}

func TestNestedConstructorUsefulness(t *testing.T) {
	option := []Constructor{{Name: "Some", Arity: 1}, {Name: "None", Arity: 0}}
	someC := Constructor{Name: "Some", Arity: 1, Siblings: option}
	noneC := Constructor{Name: "None", Arity: 0, Siblings: option}

	m := Matrix{
		{Con(someC, Con(boolTrue()))},
		{Con(noneC)},
	}
	// Some false is not covered: this row is useful.
	q := Row{Con(someC, Con(boolFalse()))}
	if !IsUseful(m, q) {
		t.Error("expected Some false to be useful (uncovered)")
	}
	ok, witness := Exhaustive(m, 1)
	if ok {
		t.Error("expected non-exhaustive: Some false is missing")
	}
	if len(witness) != 1 || witness[0].Con.Name != "Some" || len(witness[0].Args) != 1 {
		t.Errorf("got witness %v, want Some(_)", witness)
	}
}

func TestOptionMissingArmWitnessIsEmpty(t *testing.T) {
	// spec.md §8 scenario 6: [[POne W]] alone must report PEmpty missing.
	option := []Constructor{{Name: "One", Arity: 1}, {Name: "Empty", Arity: 0}}
	oneC := Constructor{Name: "One", Arity: 1, Siblings: option}

	m := Matrix{
		{Con(oneC, Wild())},
	}
	ok, witness := Exhaustive(m, 1)
	if ok {
		t.Error("expected non-exhaustive: Empty is missing")
	}
	if len(witness) != 1 || witness[0].Con.Name != "Empty" || len(witness[0].Args) != 0 {
		t.Errorf("got witness %v, want Empty", witness)
	}
}
