// Package rhtable implements a Robin Hood open-addressing hash table:
// linear probing with backward-shift deletion and a bounded worst-case
// probe length, bucketed as a struct-of-arrays. See internal/raw for the
// bucket/probe/resize machinery this package builds its public API on top
// of.
package rhtable

import (
	"fmt"

	"github.com/andresvik/rhtable/hashstate"
	"github.com/andresvik/rhtable/internal/raw"
)

// Map is a Robin Hood hash table keyed by K, holding values of type V. The
// zero value is not usable; construct one with New.
type Map[K comparable, V any] struct {
	t      *raw.Table[K, V]
	hs     hashstate.HashState
	write  hashstate.KeyWriter[K]
	policy raw.Policy
}

// New constructs a Map with the given options. The default HashState is a
// randomly-keyed hashstate.SipHashState (spec §4.6's DoS-resistance
// requirement); the default load factor is the fixed 11/10 from spec §3.
func New[K comparable, V any](opts ...Option) (*Map[K, V], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	policy := raw.DefaultPolicy()
	if o.hasLoadFactor {
		if o.loadFactor <= 0 || o.loadFactor >= 1 {
			return nil, fmt.Errorf("rhtable: load factor %v: %w", o.loadFactor, ErrOutOfRange)
		}
		num, den := loadFactorToRatio(o.loadFactor)
		policy = raw.Policy{LoadNum: num, LoadDen: den}
	}

	var hs hashstate.HashState
	switch {
	case o.hasHashSet:
		if o.hashState == nil {
			return nil, ErrNilHashState
		}
		hs = o.hashState
	default:
		var err error
		hs, err = hashstate.NewRandomSipHashState()
		if err != nil {
			return nil, fmt.Errorf("rhtable: %w", err)
		}
	}

	m := &Map[K, V]{
		t:      raw.New[K, V](),
		hs:     hs,
		write:  hashstate.DefaultKeyWriter[K](),
		policy: policy,
	}

	if o.capacity > 0 {
		if err := raw.Reserve(m.t, o.capacity, m.policy); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New but panics instead of returning an error, for use at
// package-level var initialization (mirroring the teacher's
// hashmaps.New panicking on a bad capacity argument).
func MustNew[K comparable, V any](opts ...Option) *Map[K, V] {
	m, err := New[K, V](opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Map[K, V]) hashOf(key K) hashstate.SafeHash {
	return hashstate.HashKey(m.hs, func(h hashstate.Hasher) { m.write(key, h) })
}

// Len returns the number of key-value pairs stored.
func (m *Map[K, V]) Len() int {
	return m.t.Len()
}

// IsEmpty reports whether the map holds no elements.
func (m *Map[K, V]) IsEmpty() bool {
	return m.t.Len() == 0
}

// Capacity returns the usable capacity: the number of elements the map can
// hold before the next insertion forces a resize (spec §4.5's capacity()).
func (m *Map[K, V]) Capacity() int {
	return raw.UsableCapacity(m.t.Capacity(), m.policy.LoadNum, m.policy.LoadDen)
}

// RawCapacity returns the number of buckets actually allocated, which is
// always >= Capacity() (spec §12's RawCapacity/Capacity split).
func (m *Map[K, V]) RawCapacity() int {
	return m.t.Capacity()
}

// Get returns the value stored for key and whether it was found.
func (m *Map[K, V]) Get(key K) (V, bool) {
	c, ok := raw.Search(m.t, m.hashOf(key), key)
	if !ok {
		var zero V
		return zero, false
	}
	return c.Value(), true
}

// GetMut returns a pointer to the stored value for in-place mutation, and
// whether key was found.
func (m *Map[K, V]) GetMut(key K) (*V, bool) {
	c, ok := raw.Search(m.t, m.hashOf(key), key)
	if !ok {
		return nil, false
	}
	return c.ValuePtr(), true
}

// GetWithKey returns the stored key and value together (spec §12, grounded
// on original_source's get_key_value): useful when K and a query value
// compare equal but are not identical (e.g. differing capitalization under
// a custom equality), which the Go translation of this table does not
// support since Go has no Borrow-trait equivalent — GetWithKey still earns
// its keep as a way to retrieve the exact stored key without a second
// lookup.
func (m *Map[K, V]) GetWithKey(key K) (K, V, bool) {
	c, ok := raw.Search(m.t, m.hashOf(key), key)
	if !ok {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return c.Key(), c.Value(), true
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, ok := raw.Search(m.t, m.hashOf(key), key)
	return ok
}

// MustGet returns the value for key, panicking with a string made of
// ErrKeyNotFound's message and the key if it is absent (spec §4.5's Index operation / §7's KeyNotFound).
func (m *Map[K, V]) MustGet(key K) V {
	v, ok := m.Get(key)
	if !ok {
		keyNotFoundPanic(key)
	}
	return v
}

// Insert stores val under key, returning the previous value and true if
// key was already present.
func (m *Map[K, V]) Insert(key K, val V) (V, bool) {
	if m.t.Capacity() == 0 || m.t.Len()+1 > raw.UsableCapacity(m.t.Capacity(), m.policy.LoadNum, m.policy.LoadDen) {
		_ = raw.Reserve(m.t, 1, m.policy)
	}
	return raw.Insert(m.t, m.hashOf(key), key, val, true)
}

// InsertIfAbsent stores val under key only if key is not already present,
// returning the existing value and true when key was present (the map is
// then left unchanged).
func (m *Map[K, V]) InsertIfAbsent(key K, val V) (V, bool) {
	if m.t.Capacity() == 0 || m.t.Len()+1 > raw.UsableCapacity(m.t.Capacity(), m.policy.LoadNum, m.policy.LoadDen) {
		_ = raw.Reserve(m.t, 1, m.policy)
	}
	prev, existed := raw.Insert(m.t, m.hashOf(key), key, val, false)
	return prev, existed
}

// Remove deletes key, returning its value and whether it was present.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	_, v, ok := raw.Remove(m.t, m.hashOf(key), key)
	return v, ok
}

// Reserve ensures the map can accept `additional` more insertions without
// a further resize.
func (m *Map[K, V]) Reserve(additional int) error {
	return raw.Reserve(m.t, additional, m.policy)
}

// ShrinkToFit reallocates the table to the smallest raw capacity that can
// hold its current elements at the configured load factor.
func (m *Map[K, V]) ShrinkToFit() {
	raw.ShrinkToFit(m.t, m.policy)
}

// Clear removes every element without shrinking the allocated capacity.
func (m *Map[K, V]) Clear() {
	m.t = raw.WithCapacity[K, V](m.t.Capacity())
}

// Drain removes and returns every stored pair, retaining the table's raw
// capacity (spec §4.5's drain(); spec §8's testable property: drain
// yields exactly len pairs and leaves len == 0 with capacity unchanged).
// Unlike Clear, which discards its contents, Drain hands every removed
// pair back to the caller, built on the same raw.Table.Each walk and
// raw.Remove used elsewhere in this file.
func (m *Map[K, V]) Drain() []Pair[K, V] {
	out := make([]Pair[K, V], 0, m.t.Len())
	m.t.Each(func(_ int, _ uint64, k K, v V) bool {
		out = append(out, Pair[K, V]{Key: k, Val: v})
		return true
	})
	for _, p := range out {
		raw.Remove(m.t, m.hashOf(p.Key), p.Key)
	}
	return out
}

// Clone returns an independent copy sharing this map's HashState and
// policy but none of its storage.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{t: m.t.Clone(), hs: m.hs, write: m.write, policy: m.policy}
}

// Retain keeps only the elements for which keep returns true, removing the
// rest in place (spec §12, grounded on original_source's HashMap::retain).
func (m *Map[K, V]) Retain(keep func(key K, val V) bool) {
	var toRemove []K
	m.t.Each(func(_ int, _ uint64, k K, v V) bool {
		if !keep(k, v) {
			toRemove = append(toRemove, k)
		}
		return true
	})
	for _, k := range toRemove {
		raw.Remove(m.t, m.hashOf(k), k)
	}
}

// DebugString renders every occupied bucket's index, key, value and probe
// distance for diagnostics, grounded on the pack's aristanetworks-goarista
// DebugString test helper, which walks buckets and reports occupancy the
// same way.
func (m *Map[K, V]) DebugString() string {
	s := fmt.Sprintf("rhtable.Map{len=%d, rawCapacity=%d}\n", m.t.Len(), m.t.Capacity())
	m.t.Each(func(idx int, _ uint64, k K, v V) bool {
		dist := raw.AtIndex(m.t, idx).Distance()
		s += fmt.Sprintf("  [%d] %v -> %v (dist=%d)\n", idx, k, v, dist)
		return true
	})
	return s
}
