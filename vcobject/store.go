package vcobject

import (
	"sync"

	"github.com/shulhi/inferno/ident"
)

// Pinned tags where a stored object's content came from, generalizing
// chazu-maggie/vm/content_store.go's method/class split to three
// provenance buckets instead of two object kinds.
type Pinned int

const (
	// PinnedLocal is an object authored in the current workspace, not
	// yet published anywhere.
	PinnedLocal Pinned = iota
	// PinnedBuiltin is a prelude-supplied object (package prelude),
	// never subject to CompatibleWithPred/breaking-change checks.
	PinnedBuiltin
	// PinnedVersioned is an object that has been published under a
	// specific version and is now immutable history.
	PinnedVersioned
)

type entry struct {
	obj     VCObject
	pinned  Pinned
	removed bool
}

// Store indexes VCObjects by content hash, the same
// lock-protected-map-keyed-by-[32]byte shape as
// chazu-maggie/vm/content_store.go's ContentStore, generalized from
// (method, class) to any VCObject.
type Store struct {
	mu      sync.RWMutex
	entries map[ident.Hash]*entry
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[ident.Hash]*entry)}
}

// Put indexes obj under Hash(obj) with the given provenance tag. Storing
// under an already-present hash is a no-op: content-addressing means two
// puts of equal content are indistinguishable, so the first writer wins
// and the second is silently ignored, matching IndexMethod/IndexClass's
// "zero hash ignored" spirit of treating re-insertion as harmless.
func (s *Store) Put(obj VCObject, pinned Pinned) ident.Hash {
	h := Hash(obj)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[h]; ok {
		return h
	}
	s.entries[h] = &entry{obj: obj, pinned: pinned}
	return h
}

// Get returns the object stored under h, and whether it was found. A
// removed (tombstoned) object is not returned — callers that need to
// tell "removed" apart from "never existed" use Removed.
func (s *Store) Get(h ident.Hash) (VCObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[h]
	if !ok || e.removed {
		return nil, false
	}
	return e.obj, true
}

// Remove tombstones h: it stays resolvable to Removed, but Get no longer
// returns it. Content-addressed history is never deleted outright, only
// marked as no longer live (spec.md §4.4's "removed" successor state).
func (s *Store) Remove(h ident.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[h]; ok {
		e.removed = true
	}
}

// Removed reports whether h names a tombstoned object.
func (s *Store) Removed(h ident.Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[h]
	return ok && e.removed
}

// PinnedTag returns h's provenance tag and whether h is known at all
// (live or removed).
func (s *Store) PinnedTag(h ident.Hash) (Pinned, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[h]
	if !ok {
		return 0, false
	}
	return e.pinned, true
}

// Has reports whether h is known to the store at all, live or removed —
// the VCObject analogue of ContentStore.HasHash.
func (s *Store) Has(h ident.Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[h]
	return ok
}

// AllHashes returns every hash the store has ever indexed, live or
// removed.
func (s *Store) AllHashes() []ident.Hash {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ident.Hash, 0, len(s.entries))
	for h := range s.entries {
		out = append(out, h)
	}
	return out
}
