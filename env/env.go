// Package env implements the three environments threaded through
// evaluation (spec.md §3): Lexical (L), Pinned (P), and Implicit (I).
//
// All three are backed by github.com/benbjohnson/immutable persistent
// maps rather than plain Go maps. This matters for Implicit in
// particular: `let ?x = e in b` must extend I only for the dynamic extent
// of b and never leak the rebinding back into the caller's frame once b
// finishes evaluating (spec.md §9, Design Notes "Implicit environment").
// A copy-on-write persistent map gives that for free — Extend returns a
// new handle, the old one is untouched — instead of push/pop bookkeeping
// around a mutable map.
package env

import (
	"hash/fnv"

	"github.com/benbjohnson/immutable"

	"github.com/shulhi/inferno/ident"
	"github.com/shulhi/inferno/value"
)

// extIdentHasher implements immutable.Hasher[ident.ExtIdent].
type extIdentHasher struct{}

func (extIdentHasher) Hash(key ident.ExtIdent) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key.Name))
	if key.Implicit {
		h.Write([]byte{1})
	}
	return h.Sum32()
}

func (extIdentHasher) Equal(a, b ident.ExtIdent) bool {
	return a == b
}

// hashHasher implements immutable.Hasher[ident.Hash].
type hashHasher struct{}

func (hashHasher) Hash(key ident.Hash) uint32 {
	h := fnv.New32a()
	h.Write(key[:])
	return h.Sum32()
}

func (hashHasher) Equal(a, b ident.Hash) bool { return a == b }

// Lexical is the L environment: explicit variable bindings introduced by
// Lam parameters and Let.
type Lexical struct {
	m *immutable.Map[ident.ExtIdent, value.Value]
}

// NewLexical returns the empty lexical environment.
func NewLexical() Lexical {
	return Lexical{m: immutable.NewMap[ident.ExtIdent, value.Value](extIdentHasher{})}
}

// Lookup resolves a name in L. ok is false if the name is unbound.
func (l Lexical) Lookup(id ident.ExtIdent) (value.Value, bool) {
	if l.m == nil {
		return nil, false
	}
	return l.m.Get(id)
}

// Extend returns a new Lexical with id bound to v, leaving l unchanged.
func (l Lexical) Extend(id ident.ExtIdent, v value.Value) Lexical {
	base := l.m
	if base == nil {
		base = immutable.NewMap[ident.ExtIdent, value.Value](extIdentHasher{})
	}
	return Lexical{m: base.Set(id, v)}
}

// Pinned is the P environment: content-addressed globals (operators,
// prelude functions, enum constructors) resolved at elaboration time.
type Pinned struct {
	m *immutable.Map[ident.Hash, value.Value]
}

// NewPinned returns the empty pinned environment.
func NewPinned() Pinned {
	return Pinned{m: immutable.NewMap[ident.Hash, value.Value](hashHasher{})}
}

// Lookup resolves a pinned hash. ok is false if the hash is not present —
// the evaluator treats this as "All enums/operators must be pinned"
// (spec.md §4.1).
func (p Pinned) Lookup(h ident.Hash) (value.Value, bool) {
	if p.m == nil {
		return nil, false
	}
	return p.m.Get(h)
}

// Extend returns a new Pinned with h bound to v.
func (p Pinned) Extend(h ident.Hash, v value.Value) Pinned {
	base := p.m
	if base == nil {
		base = immutable.NewMap[ident.Hash, value.Value](hashHasher{})
	}
	return Pinned{m: base.Set(h, v)}
}

// Implicit is the I environment: reader-scoped dynamic bindings for
// `?name` parameters, inherited by callees unless they rebind.
type Implicit struct {
	m *immutable.Map[ident.ExtIdent, value.Value]
}

// NewImplicit returns the empty implicit environment.
func NewImplicit() Implicit {
	return Implicit{m: immutable.NewMap[ident.ExtIdent, value.Value](extIdentHasher{})}
}

// Lookup resolves an implicit parameter by its bare name (without the `?`
// sigil). ok is false if nothing in the current dynamic scope bound it —
// the evaluator turns this into NotFoundInImplicitEnv.
func (i Implicit) Lookup(name string) (value.Value, bool) {
	if i.m == nil {
		return nil, false
	}
	return i.m.Get(ident.ImplicitParam(name))
}

// Extend returns a new Implicit with name rebound to v, scoped to
// whatever the caller evaluates next; the receiver i is left unchanged.
func (i Implicit) Extend(name string, v value.Value) Implicit {
	base := i.m
	if base == nil {
		base = immutable.NewMap[ident.ExtIdent, value.Value](extIdentHasher{})
	}
	return Implicit{m: base.Set(ident.ImplicitParam(name), v)}
}
