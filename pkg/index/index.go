// Package index provides the generic ordering primitives every per-kind
// multi-index collection in pkg/store is built from: a unique lookup by
// comparable key, and an ordered sequence maintained under the two-phase
// prepare/update protocol described in spec.md §4.2 — remove the handle from
// every affected ordering before its attribute mutates, reinsert after.
package index

import (
	"sort"

	"github.com/forumkit/forumcore/pkg/pool"
)

// Unique is a one-to-one lookup from a comparable key (id, auth, name key)
// to a handle. Insert rejects duplicate keys so every unique index named in
// spec.md §3 invariant 2 can reject on its own.
type Unique[K comparable] struct {
	byKey map[K]pool.Handle
}

// NewUnique creates an empty unique index.
func NewUnique[K comparable]() *Unique[K] {
	return &Unique[K]{byKey: make(map[K]pool.Handle)}
}

// Insert adds key -> h. Returns false without modifying the index if key is
// already present.
func (u *Unique[K]) Insert(key K, h pool.Handle) bool {
	if _, exists := u.byKey[key]; exists {
		return false
	}
	u.byKey[key] = h
	return true
}

// Remove drops key from the index.
func (u *Unique[K]) Remove(key K) {
	delete(u.byKey, key)
}

// Get looks up the handle for key.
func (u *Unique[K]) Get(key K) (pool.Handle, bool) {
	h, ok := u.byKey[key]
	return h, ok
}

// Contains reports whether key is present.
func (u *Unique[K]) Contains(key K) bool {
	_, ok := u.byKey[key]
	return ok
}

// Len returns the number of entries.
func (u *Unique[K]) Len() int { return len(u.byKey) }

// entry pairs a sort key with the handle it orders.
type entry[K any] struct {
	key K
	h   pool.Handle
}

// Ordered is a handle sequence kept sorted by a caller-supplied comparator.
// Insert/Remove are O(n) (linear search + slice splice): acceptable for a
// reference collection store whose correctness, not raw throughput, is the
// contract under test (spec.md §8 properties 1-2).
type Ordered[K any] struct {
	entries []entry[K]
	less    func(a, b K) bool
}

// NewOrdered creates an empty ordering using less to compare keys.
func NewOrdered[K any](less func(a, b K) bool) *Ordered[K] {
	return &Ordered[K]{less: less}
}

// Insert places h at the position its key sorts to.
func (o *Ordered[K]) Insert(key K, h pool.Handle) {
	i := sort.Search(len(o.entries), func(i int) bool {
		return !o.less(o.entries[i].key, key)
	})
	o.entries = append(o.entries, entry[K]{})
	copy(o.entries[i+1:], o.entries[i:])
	o.entries[i] = entry[K]{key: key, h: h}
}

// Remove drops the entry for h. Returns false if h was not present.
func (o *Ordered[K]) Remove(h pool.Handle) bool {
	for i, e := range o.entries {
		if e.h == h {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (o *Ordered[K]) Len() int { return len(o.entries) }

// At returns the key and handle at position i.
func (o *Ordered[K]) At(i int) (K, pool.Handle) {
	e := o.entries[i]
	return e.key, e.h
}

// Each iterates entries in order; fn returning false stops iteration early.
func (o *Ordered[K]) Each(fn func(key K, h pool.Handle) bool) {
	for _, e := range o.entries {
		if !fn(e.key, e.h) {
			return
		}
	}
}

// Page returns up to limit handles starting at offset, in order — the
// shared pagination primitive behind every "list by ordering" operation.
func (o *Ordered[K]) Page(offset, limit int) []pool.Handle {
	if offset >= len(o.entries) {
		return nil
	}
	end := offset + limit
	if end > len(o.entries) || limit <= 0 {
		end = len(o.entries)
	}
	out := make([]pool.Handle, 0, end-offset)
	for _, e := range o.entries[offset:end] {
		out = append(out, e.h)
	}
	return out
}

// LowerBoundRank returns the zero-based position of the first entry whose
// key does not compare less than target — the paging primitive behind
// "search by name" rank lookups (spec.md §4.2).
func (o *Ordered[K]) LowerBoundRank(target K) int {
	return sort.Search(len(o.entries), func(i int) bool {
		return !o.less(o.entries[i].key, target)
	})
}

// HandleSet is an unordered set of handles, used for intrusive
// relationships that don't need ordering (a thread's subscriber set, a
// message's comment set, a user's owned-attachment set).
type HandleSet struct {
	m map[pool.Handle]struct{}
}

// NewHandleSet creates an empty set.
func NewHandleSet() *HandleSet {
	return &HandleSet{m: make(map[pool.Handle]struct{})}
}

// Add inserts h, returning false if it was already present.
func (s *HandleSet) Add(h pool.Handle) bool {
	if _, ok := s.m[h]; ok {
		return false
	}
	s.m[h] = struct{}{}
	return true
}

// Remove deletes h, returning false if it was not present.
func (s *HandleSet) Remove(h pool.Handle) bool {
	if _, ok := s.m[h]; !ok {
		return false
	}
	delete(s.m, h)
	return true
}

// Contains reports whether h is in the set.
func (s *HandleSet) Contains(h pool.Handle) bool {
	_, ok := s.m[h]
	return ok
}

// Len returns the set size.
func (s *HandleSet) Len() int { return len(s.m) }

// Each calls fn for every member; iteration order is unspecified.
func (s *HandleSet) Each(fn func(pool.Handle)) {
	for h := range s.m {
		fn(h)
	}
}

// Slice returns the members as a slice; order is unspecified.
func (s *HandleSet) Slice() []pool.Handle {
	out := make([]pool.Handle, 0, len(s.m))
	for h := range s.m {
		out = append(out, h)
	}
	return out
}
