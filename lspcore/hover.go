package lspcore

import (
	"hash/fnv"
	"sort"
	"sync/atomic"

	"github.com/benbjohnson/immutable"
)

// docVersionKey keys the hover index's persistent map: one entry per
// (document, version) snapshot ever parsed.
type docVersionKey struct {
	uri     string
	version int
}

type docVersionHasher struct{}

func (docVersionHasher) Hash(k docVersionKey) uint32 {
	h := fnv.New32a()
	h.Write([]byte(k.uri))
	var buf [8]byte
	v := uint64(k.version)
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum32()
}

func (docVersionHasher) Equal(a, b docVersionKey) bool {
	return a.uri == b.uri && a.version == b.version
}

// hoverIndex is the bounded, CAS-updated hover map SPEC_FULL.md §5
// specifies: an atomic.Pointer to an immutable.Map snapshot, so readers
// (Hover queries) never block on or observe a partially-applied update,
// and a per-URI LRU of the last maxVersions version keys so the map
// cannot grow without bound across a long editing session
// (SPEC_FULL.md §9 decision 1).
type hoverIndex struct {
	snapshot    atomic.Pointer[immutable.Map[docVersionKey, []HoverEntry]]
	maxVersions int

	// versionsByURI is reactor-owned bookkeeping (only ever touched from
	// Core's single consumer goroutine), tracking eviction order; it is
	// not part of the CAS snapshot itself.
	versionsByURI map[string][]int
}

func newHoverIndex(maxVersions int) *hoverIndex {
	h := &hoverIndex{maxVersions: maxVersions, versionsByURI: make(map[string][]int)}
	h.snapshot.Store(immutable.NewMap[docVersionKey, []HoverEntry](docVersionHasher{}))
	return h
}

// put installs entries for (uri, version), evicting the oldest version
// for uri if this push would exceed maxVersions.
func (h *hoverIndex) put(uri string, version int, entries []HoverEntry) {
	versions := append(h.versionsByURI[uri], version)
	sort.Ints(versions)
	// de-dup consecutive equal versions (a reparse of the same version,
	// e.g. a diagnostics-only rerun, replaces rather than duplicates).
	deduped := versions[:0]
	for i, v := range versions {
		if i == 0 || v != versions[i-1] {
			deduped = append(deduped, v)
		}
	}
	versions = deduped

	var evicted []int
	for len(versions) > h.maxVersions {
		evicted = append(evicted, versions[0])
		versions = versions[1:]
	}
	h.versionsByURI[uri] = versions

	for {
		old := h.snapshot.Load()
		next := old.Set(docVersionKey{uri: uri, version: version}, entries)
		for _, v := range evicted {
			next = next.Delete(docVersionKey{uri: uri, version: v})
		}
		if h.snapshot.CompareAndSwap(old, next) {
			return
		}
	}
}

// lookup finds the smallest hover entry containing pos across uri's most
// recently parsed version. It does not scan every retained version —
// the testable properties this index supports only ever query the
// latest snapshot (SPEC_FULL.md §9 decision 1).
func (h *hoverIndex) lookup(uri string, pos Position) (HoverEntry, bool) {
	versions := h.versionsByURI[uri]
	if len(versions) == 0 {
		return HoverEntry{}, false
	}
	latest := versions[len(versions)-1]

	m := h.snapshot.Load()
	entries, ok := m.Get(docVersionKey{uri: uri, version: latest})
	if !ok {
		return HoverEntry{}, false
	}

	var best HoverEntry
	found := false
	for _, e := range entries {
		if !e.Range.contains(pos) {
			continue
		}
		// <= rather than < so that, on a tie in size, the later-listed
		// entry wins (spec.md §4.5's tie-break).
		if !found || e.Range.size() <= best.Range.size() {
			best = e
			found = true
		}
	}
	return best, found
}
