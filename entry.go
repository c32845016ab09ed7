package rhtable

import (
	"github.com/andresvik/rhtable/hashstate"
	"github.com/andresvik/rhtable/internal/raw"
)

// Entry is a handle obtained from Map.Entry that lets a caller inspect and
// conditionally mutate the value stored for a single key. It records the
// key, its SafeHash (so the key is hashed once) and whether the key was
// present when the entry was created. It keeps no bucket index and does
// not distinguish an empty-slot vacancy from one that needs Robin Hood
// displacement; each method probes the table again with the stored hash.
// Capacity for one additional element is reserved before the initial
// probe, so a subsequent OrInsert never triggers a resize.
type Entry[K comparable, V any] struct {
	m     *Map[K, V]
	key   K
	hash  hashstate.SafeHash
	found bool
}

// Entry returns a handle for key, reserving room for one more element up
// front (spec §4.5: entry() must not itself trigger a second resize once
// the caller decides to insert).
func (m *Map[K, V]) Entry(key K) *Entry[K, V] {
	if m.t.Capacity() == 0 || m.t.Len()+1 > raw.UsableCapacity(m.t.Capacity(), m.policy.LoadNum, m.policy.LoadDen) {
		_ = raw.Reserve(m.t, 1, m.policy)
	}
	h := m.hashOf(key)
	_, found := raw.Search(m.t, h, key)
	return &Entry[K, V]{m: m, key: key, hash: h, found: found}
}

// Key returns the key this entry was obtained for.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// OrInsert ensures the entry holds def if it was vacant, and returns a
// pointer to the (possibly pre-existing) stored value.
func (e *Entry[K, V]) OrInsert(def V) *V {
	return e.OrInsertWith(func() V { return def })
}

// OrInsertWith is OrInsert, computing the default lazily only if the entry
// was vacant.
func (e *Entry[K, V]) OrInsertWith(makeDefault func() V) *V {
	if !e.found {
		raw.Insert(e.m.t, e.hash, e.key, makeDefault(), true)
		e.found = true
	}
	c, ok := raw.Search(e.m.t, e.hash, e.key)
	if !ok {
		panic("rhtable: entry invariant violated: key missing immediately after insert")
	}
	return c.ValuePtr()
}

// AndModify calls fn with a pointer to the stored value if the entry is
// occupied, then returns the entry so calls can be chained with OrInsert.
func (e *Entry[K, V]) AndModify(fn func(v *V)) *Entry[K, V] {
	if e.found {
		if c, ok := raw.Search(e.m.t, e.hash, e.key); ok {
			fn(c.ValuePtr())
		}
	}
	return e
}
