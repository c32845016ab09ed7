// Package raw implements the bucket array, cursor, probing/displacement
// and resize machinery that backs rhtable.Map. It has no notion of a
// public API, entry state machine, or hashing policy — those live in the
// root package and in rhtable/hashstate respectively. This split mirrors
// the teacher repo's separation between a bucket-owning struct
// (RobinHood.buckets) and the facade built on top of it, generalized to
// the struct-of-arrays layout spec.md §4.1 calls for.
package raw

import "errors"

// ErrCapacityOverflow is returned when a capacity computation would
// overflow the address-space word (spec §7).
var ErrCapacityOverflow = errors.New("rhtable: capacity computation overflowed")

// InitialCapacity is the smallest raw capacity a non-empty table is ever
// grown to (spec §4.4).
const InitialCapacity = 32

// Table is the bucket array described in spec §3 and §4.1: three parallel
// arrays of equal length, `hashes[i] == 0` iff bucket i is empty, the high
// bit of every occupied tag is always 1 (enforced by hashstate.Safeguard
// before a tag ever reaches the table).
//
// Go has no notion of "allocate one buffer, compute K/V offsets by
// alignment, leave key/value storage uninitialized" the way spec §4.1
// describes for an unmanaged language — there is no way to leave a slice
// element un-constructed, and a single mixed-type backing buffer can only
// be built with unsafe.Pointer arithmetic keyed off reflect.Type, which
// buys nothing over three separate slices grown in lockstep (every slice
// is already aligned and bounds-checked by the runtime). Table therefore
// models the three logical arrays as three Go slices of identical length,
// which is the idiomatic Go rendition of struct-of-arrays used throughout
// the pack (see other_examples' influxdb rhh.HashMap: parallel `hashes
// []uint64` and `elems []hashElem` slices). This is recorded as a design
// decision in DESIGN.md rather than re-derived at every call site.
type Table[K comparable, V any] struct {
	hashes []uint64
	keys   []K
	vals   []V
	size   int
}

// New returns an unallocated table (raw capacity 0), matching spec §4.1's
// "Creation with capacity == 0 allocates no memory" clause.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{}
}

// Capacity returns the raw bucket count: 0, or a power of two. The resize
// driver never picks one below InitialCapacity; WithCapacity accepts any
// power of two.
func (t *Table[K, V]) Capacity() int {
	return len(t.hashes)
}

// Len returns the number of occupied buckets.
func (t *Table[K, V]) Len() int {
	return t.size
}

// WithCapacity allocates a table with exactly n raw buckets. n must be 0
// or a power of two; callers (the resize driver) are responsible for that
// invariant — Table itself does not recompute it.
func WithCapacity[K comparable, V any](n int) *Table[K, V] {
	t := &Table[K, V]{}
	if n == 0 {
		return t
	}
	assertf(n&(n-1) == 0, "raw: capacity %d is not a power of two", n)
	t.hashes = make([]uint64, n)
	t.keys = make([]K, n)
	t.vals = make([]V, n)
	return t
}

// Clone allocates a new table of the same raw capacity and copies every
// tag, key and value — including the unspecified contents of empty
// buckets, which is harmless since nothing ever reads an empty bucket's
// key/value (spec §4.1's "Clone" clause, simplified: Go's copy() cannot
// distinguish "must not read" slots, but copying them is side-effect free
// for any V whose zero/garbage value has no observable identity beyond
// what == and the bucket's own tag expose).
func (t *Table[K, V]) Clone() *Table[K, V] {
	n := len(t.hashes)
	c := &Table[K, V]{size: t.size}
	if n == 0 {
		return c
	}
	c.hashes = make([]uint64, n)
	c.keys = make([]K, n)
	c.vals = make([]V, n)
	copy(c.hashes, t.hashes)
	copy(c.keys, t.keys)
	copy(c.vals, t.vals)
	return c
}

// Each walks every live bucket in storage order, stopping early if fn
// returns false. Storage order is unspecified and seed-dependent per
// spec §4.5.
func (t *Table[K, V]) Each(fn func(idx int, hash uint64, key K, val V) bool) {
	for i, h := range t.hashes {
		if h == 0 {
			continue
		}
		if !fn(i, h, t.keys[i], t.vals[i]) {
			return
		}
	}
}
