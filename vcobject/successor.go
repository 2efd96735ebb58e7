package vcobject

import "github.com/shulhi/inferno/ident"

// Init reports whether obj has no predecessor: it is the first version
// of whatever it names.
func Init(obj VCObject) bool {
	return obj.ClonedFrom().IsZero()
}

// CloneOf returns the hash obj was cloned from (ident.Zero if Init(obj)).
func CloneOf(obj VCObject) ident.Hash {
	return obj.ClonedFrom()
}

// CloneOfNotFound reports whether obj names a predecessor the store has
// never heard of — a dangling clone, e.g. one authored against a hash
// from a branch this store never indexed.
func CloneOfNotFound(store *Store, obj VCObject) bool {
	pred := obj.ClonedFrom()
	if pred.IsZero() {
		return false
	}
	return !store.Has(pred)
}

// CloneOfRemoved reports whether obj's predecessor is known but has been
// tombstoned (Store.Remove).
func CloneOfRemoved(store *Store, obj VCObject) bool {
	pred := obj.ClonedFrom()
	if pred.IsZero() {
		return false
	}
	return store.Removed(pred)
}

// signature is the comparable shape CompatibleWithPred checks between a
// clone and its predecessor: same kind, same arity/member-name set. Body
// content is deliberately excluded — a function whose implementation
// changed but whose call shape did not is still a compatible successor.
type signature struct {
	kind  string
	names []string
}

func signatureOf(obj VCObject) signature {
	switch o := obj.(type) {
	case VCFunction:
		return signature{kind: "function", names: append([]string{}, o.Params...)}
	case VCTestFunction:
		return signature{kind: "testfunction", names: nil}
	case VCModule:
		names := make([]string, 0, len(o.Members))
		for name := range o.Members {
			names = append(names, name)
		}
		return signature{kind: "module", names: names}
	case VCEnum:
		return signature{kind: "enum", names: append([]string{}, o.Constructors...)}
	default:
		return signature{}
	}
}

func sameNameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			return false
		}
	}
	return true
}

// CompatibleWithPred reports whether obj is a non-breaking successor of
// its predecessor in store: predecessor exists, is live, has the same
// kind and the same parameter/constructor/member name set, and obj was
// not explicitly marked breaking. An Init object (no predecessor) is
// vacuously compatible — there is nothing for it to be incompatible with.
func CompatibleWithPred(store *Store, obj VCObject) bool {
	if Init(obj) {
		return true
	}
	if markedBreaking(obj) {
		return false
	}
	pred, ok := store.Get(obj.ClonedFrom())
	if !ok {
		return false
	}
	a, b := signatureOf(pred), signatureOf(obj)
	return a.kind == b.kind && sameNameSet(a.names, b.names)
}

// IncompatibleWithPred is the negation of CompatibleWithPred restricted
// to objects that do have a live, resolvable predecessor — a dangling or
// removed clone is neither compatible nor incompatible, it is an error
// state CloneOfNotFound/CloneOfRemoved already names.
func IncompatibleWithPred(store *Store, obj VCObject) bool {
	if Init(obj) || CloneOfNotFound(store, obj) || CloneOfRemoved(store, obj) {
		return false
	}
	return !CompatibleWithPred(store, obj)
}

// MarkedBreakingWithPred reports whether obj both has a live predecessor
// and was explicitly authored with its breaking flag set, independent of
// whether the signature actually changed — an author can mark a
// same-shape edit breaking to force downstream re-review.
func MarkedBreakingWithPred(store *Store, obj VCObject) bool {
	if Init(obj) || CloneOfNotFound(store, obj) || CloneOfRemoved(store, obj) {
		return false
	}
	return markedBreaking(obj)
}

func markedBreaking(obj VCObject) bool {
	switch o := obj.(type) {
	case VCFunction:
		return o.Breaking
	case VCTestFunction:
		return o.Breaking
	case VCModule:
		return o.Breaking
	case VCEnum:
		return o.Breaking
	default:
		return false
	}
}
