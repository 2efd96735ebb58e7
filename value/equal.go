package value

// Equal implements the structural equality used by the language's `==`
// operator (spec.md §3: "structural on all non-function variants;
// VFun == VFun is always false"). The evaluator's PLit pattern match
// (eval/match.go) compares through it too.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case VInt:
		bv, ok := b.(VInt)
		return ok && av.I == bv.I
	case VDouble:
		bv, ok := b.(VDouble)
		return ok && av.D == bv.D
	case VWord16:
		bv, ok := b.(VWord16)
		return ok && av.W == bv.W
	case VWord32:
		bv, ok := b.(VWord32)
		return ok && av.W == bv.W
	case VWord64:
		bv, ok := b.(VWord64)
		return ok && av.W == bv.W
	case VEpochTime:
		bv, ok := b.(VEpochTime)
		return ok && av.Seconds == bv.Seconds
	case VText:
		bv, ok := b.(VText)
		return ok && av.S == bv.S
	case VEnum:
		bv, ok := b.(VEnum)
		return ok && av.Owner == bv.Owner && av.Constructor == bv.Constructor
	case VArray:
		bv, ok := b.(VArray)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case VTuple:
		bv, ok := b.(VTuple)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case VOne:
		bv, ok := b.(VOne)
		return ok && Equal(av.Inner, bv.Inner)
	case VEmpty:
		_, ok := b.(VEmpty)
		return ok
	case VFun:
		// Always false, per spec.md §9 Design Notes item 3 — confirmed as
		// a language-level contract, not an accident.
		return false
	case VTypeRep:
		bv, ok := b.(VTypeRep)
		return ok && av.T.String() == bv.T.String()
	case VCustom:
		bv, ok := b.(VCustom)
		return ok && av.Tag == bv.Tag
	default:
		return false
	}
}
