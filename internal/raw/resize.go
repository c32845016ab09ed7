package raw

import "github.com/andresvik/rhtable/hashstate"

// defaultLoadNumerator/defaultLoadDenominator implement the fixed 11/10 load factor from
// spec §3. Spec §9 flags making this configurable as a desirable but
// unimplemented extension of the *original*; this module does implement
// it (see DESIGN.md), exposed as a per-table field rather than a package
// constant.
const (
	defaultLoadNumerator   = 11
	defaultLoadDenominator = 10
)

// NextPowerOf2 rounds i up to the next power of two (i itself if already
// one), 0 maps to 0. Grounded verbatim on the teacher's math.go, which is
// the exact same bit-smear algorithm from the well-known
// round-up-to-power-of-two trick.
func NextPowerOf2(i uint64) uint64 {
	if i == 0 {
		return 0
	}
	i--
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	i++
	return i
}

// MinCapacity returns the minimum raw capacity needed to hold n elements
// without forcing a resize, at the given load factor numerator/denominator
// (spec §3: "⌈n · 11 / 10⌉" at the default 11/10 factor).
func MinCapacity(n int, loadNum, loadDen int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	num := uint64(n) * uint64(loadNum)
	if loadNum != 0 && num/uint64(loadNum) != uint64(n) {
		return 0, false // overflow
	}
	need := (num + uint64(loadDen) - 1) / uint64(loadDen)
	if need > uint64(int(^uint(0)>>1)) {
		return 0, false
	}
	return int(need), true
}

// UsableCapacity returns the maximum size a table of raw capacity cap may
// hold before a grow is forced (spec §3: "⌊cap · 10 / 11⌋").
func UsableCapacity(capacity int, loadNum, loadDen int) int {
	if capacity == 0 {
		return 0
	}
	return int(uint64(capacity) * uint64(loadDen) / uint64(loadNum))
}

// Policy bundles the load-factor numerator/denominator pair a table was
// constructed with, so Reserve/ShrinkToFit stay pure functions of
// (Table, Policy) rather than reaching into facade state.
type Policy struct {
	LoadNum int
	LoadDen int
}

// DefaultPolicy is the fixed 11/10 factor from spec §3.
func DefaultPolicy() Policy {
	return Policy{LoadNum: defaultLoadNumerator, LoadDen: defaultLoadDenominator}
}

// Reserve implements spec §4.4's reserve(additional): ensure the table can
// accept `additional` more elements without another resize.
func Reserve[K comparable, V any](t *Table[K, V], additional int, p Policy) error {
	newSize := t.size + additional
	if newSize < t.size { // overflow
		return ErrCapacityOverflow
	}
	need, ok := MinCapacity(newSize, p.LoadNum, p.LoadDen)
	if !ok {
		return ErrCapacityOverflow
	}
	if t.Capacity() >= need {
		return nil
	}
	target := int(NextPowerOf2(uint64(need)))
	if target < InitialCapacity {
		target = InitialCapacity
	}
	grow(t, target)
	return nil
}

// ShrinkToFit implements spec §4.4's shrink_to_fit(). Unlike grow, a
// shrink can map two old ideal indices into the same new ideal index out
// of old-cluster-order (the new mask drops bits instead of gaining one),
// so the in-order fast path's "never collide out of order" argument does
// not hold in this direction. ShrinkToFit therefore rebuilds through the
// ordinary Robin Hood Insert — still a single O(n) pass, just one that
// may displace — rather than reusing the grow fast path.
func ShrinkToFit[K comparable, V any](t *Table[K, V], p Policy) {
	need, _ := MinCapacity(t.size, p.LoadNum, p.LoadDen) // size already fits in an int, cannot overflow here
	target := int(NextPowerOf2(uint64(need)))
	if target < InitialCapacity {
		target = InitialCapacity
	}
	if target == t.Capacity() {
		return
	}
	rebuildRobinHood(t, target)
}

// grow reaches target capacity by repeated doubling, applying the in-order
// fast path from spec §4.4 at each step. Spec §4.4 describes the fast path
// for exactly one doubling; its "new ideal indices differ from old ones
// only in the newly added high bit" argument depends on the new capacity
// being precisely twice the old one, so a Reserve call that needs to more
// than double repeats the doubling step instead of jumping straight to
// the final target.
func grow[K comparable, V any](t *Table[K, V], target int) {
	if t.Capacity() == 0 {
		*t = *WithCapacity[K, V](target)
		return
	}
	for t.Capacity() < target {
		rebuildOrderedDouble(t)
	}
}

// rebuildOrderedDouble implements spec §4.4's growth fast path for a
// single doubling: find the start of a non-wrapped cluster in the old
// table, then walk forward from there (wrapping once) inserting every
// live bucket with a simple "walk to first empty slot" placement — no
// Robin Hood displacement needed, because visiting old buckets in cluster
// order into a table of exactly double the capacity guarantees new ideal
// indices never collide out of order.
func rebuildOrderedDouble[K comparable, V any](t *Table[K, V]) {
	oldCap := t.Capacity()
	newT := WithCapacity[K, V](oldCap * 2)

	start := clusterStart(t)

	remaining := t.size
	for i := 0; remaining > 0; i++ {
		idx := (start + i) % oldCap
		if t.hashes[idx] == 0 {
			continue
		}
		h := hashstate.SafeHash(t.hashes[idx])
		orderedInsert(newT, h, t.keys[idx], t.vals[idx])
		remaining--
	}

	*t = *newT
}

// rebuildRobinHood reallocates to target capacity and reinserts every
// live element through the full Robin Hood Insert, used whenever the
// in-order fast path's ordering argument does not apply (shrinking).
func rebuildRobinHood[K comparable, V any](t *Table[K, V], target int) {
	newT := WithCapacity[K, V](target)
	t.Each(func(_ int, h uint64, k K, v V) bool {
		Insert(newT, hashstate.SafeHash(h), k, v, true)
		return true
	})
	*t = *newT
}

// clusterStart finds the first bucket whose distance is 0 (or the first
// empty bucket), which is the start of a cluster that does not wrap
// around the end of the array. Buckets before that index, if any, belong
// to a cluster that wrapped around and must be visited last (handled by
// the caller's modulo walk starting from this index).
func clusterStart[K comparable, V any](t *Table[K, V]) int {
	capacity := t.Capacity()
	for i := 0; i < capacity; i++ {
		if t.hashes[i] == 0 {
			return i
		}
		if AtIndex(t, i).Distance() == 0 {
			return i
		}
	}
	return 0
}

// orderedInsert places (h, k, v) into newT by walking linearly from h's
// ideal index to the first empty slot, without displacement. Valid only
// when the caller guarantees elements are inserted in an order that
// cannot produce an out-of-order collision (spec §4.4 step 3).
func orderedInsert[K comparable, V any](newT *Table[K, V], h hashstate.SafeHash, k K, v V) {
	c := AtHash(newT, h)
	for c.Peek() == Full {
		c = c.Next()
	}
	c.Put(h, k, v)
}
