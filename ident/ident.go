// Package ident defines the identifier and content-address types shared by
// the environments, evaluator, and VCObject surface.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash is a content address: the SHA-256 digest of a canonical encoding of
// the object it names (see package vcobject). It is also used to key enum
// owners (VEnum.Owner) and pinned operator/prelude references.
type Hash [32]byte

// Zero is the hash of nothing; it never names a real object and is used as
// a sentinel for "not pinned".
var Zero Hash

// IsZero reports whether h is the sentinel unpinned hash.
func (h Hash) IsZero() bool { return h == Zero }

// String renders h as a lowercase hex string, the form used in diagnostics
// and test fixtures.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// HashBytes computes the content address of an arbitrary canonical byte
// encoding. Callers are responsible for producing a canonical encoding
// (see vcobject.Hash) before calling this.
func HashBytes(canonical []byte) Hash {
	return Hash(sha256.Sum256(canonical))
}

// ExtIdent is either a lexically scoped name or an implicit-parameter
// label written `?name` in source. The two never collide even if their
// Name fields are equal, because lookup always dispatches on Implicit
// first.
type ExtIdent struct {
	Name      string
	Implicit  bool
}

// Named constructs an explicit (lexically scoped) identifier.
func Named(name string) ExtIdent { return ExtIdent{Name: name} }

// ImplicitParam constructs an implicit-parameter identifier (`?name`).
func ImplicitParam(name string) ExtIdent { return ExtIdent{Name: name, Implicit: true} }

// String renders the identifier the way it appears in source: `?name` for
// implicit parameters, `name` otherwise.
func (id ExtIdent) String() string {
	if id.Implicit {
		return "?" + id.Name
	}
	return id.Name
}
