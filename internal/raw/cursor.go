package raw

import "github.com/andresvik/rhtable/hashstate"

// Kind classifies a Cursor the way spec §3 describes: a cursor borrows
// the table and is always in exactly one of these states relative to the
// bucket it currently points at.
type Kind int

const (
	// Unknown is the zero value; no cursor constructed by this package
	// is ever left in this state, but it exists so Kind has an
	// unambiguous zero value distinct from Empty.
	Unknown Kind = iota
	Empty
	Full
)

// Cursor is an ephemeral (table, index) pair. It does not own storage and
// is invalidated by any resize of the underlying table — callers must not
// retain a Cursor across a Reserve/grow/shrink call.
type Cursor[K comparable, V any] struct {
	t   *Table[K, V]
	idx int
}

// AtIndex forms a cursor at i mod capacity. capacity must be > 0.
func AtIndex[K comparable, V any](t *Table[K, V], i int) Cursor[K, V] {
	capacity := len(t.hashes)
	assertf(capacity > 0, "raw: AtIndex on unallocated table")
	return Cursor[K, V]{t: t, idx: i & (capacity - 1)}
}

// AtHash forms a cursor at the ideal index for h.
func AtHash[K comparable, V any](t *Table[K, V], h hashstate.SafeHash) Cursor[K, V] {
	return AtIndex(t, h.Index(len(t.hashes)))
}

// Index returns the cursor's current bucket index.
func (c Cursor[K, V]) Index() int {
	return c.idx
}

// Peek classifies the bucket the cursor currently points at.
func (c Cursor[K, V]) Peek() Kind {
	if c.t.hashes[c.idx] == 0 {
		return Empty
	}
	return Full
}

// Next advances the cursor to the following slot, wrapping at the end of
// the table. Capacity is a power of two, so wraparound is a plain mask;
// spec §4.2's branchless XOR formulation computes the identical result
// and is not implemented literally, since the mask form is what the
// teacher itself already uses
// throughout (`idx = (idx + 1) & m.capMinus1`).
func (c Cursor[K, V]) Next() Cursor[K, V] {
	return Cursor[K, V]{t: c.t, idx: (c.idx + 1) & (len(c.t.hashes) - 1)}
}

// Hash returns the stored SafeHash of a Full bucket.
func (c Cursor[K, V]) Hash() hashstate.SafeHash {
	assertf(c.Peek() == Full, "raw: Hash on non-full cursor")
	return hashstate.SafeHash(c.t.hashes[c.idx])
}

// Key returns the stored key of a Full bucket.
func (c Cursor[K, V]) Key() K {
	assertf(c.Peek() == Full, "raw: Key on non-full cursor")
	return c.t.keys[c.idx]
}

// Value returns the stored value of a Full bucket.
func (c Cursor[K, V]) Value() V {
	assertf(c.Peek() == Full, "raw: Value on non-full cursor")
	return c.t.vals[c.idx]
}

// ValuePtr returns a pointer to the stored value of a Full bucket, for
// in-place mutation (backs Map.GetMut and the Entry methods).
func (c Cursor[K, V]) ValuePtr() *V {
	assertf(c.Peek() == Full, "raw: ValuePtr on non-full cursor")
	return &c.t.vals[c.idx]
}

// Distance is the probe count from this bucket's ideal index (spec
// §4.2's "Full-bucket distance()"), derived from the stored hash rather
// than tracked as a separate per-bucket field — grounded on the pack's
// influxdb rhh.go Dist() helper, which computes distance from (hash, pos,
// capacity) on every call instead of storing it.
func (c Cursor[K, V]) Distance() int {
	assertf(c.Peek() == Full, "raw: Distance on non-full cursor")
	capacity := len(c.t.hashes)
	ideal := hashstate.SafeHash(c.t.hashes[c.idx]).Index(capacity)
	if c.idx < ideal {
		return capacity - ideal + c.idx
	}
	return c.idx - ideal
}

// Take empties a Full bucket, decrementing size, and returns the cursor
// (now Empty, same index) plus the removed key and value.
func (c Cursor[K, V]) Take() (Cursor[K, V], K, V) {
	assertf(c.Peek() == Full, "raw: Take on non-full cursor")
	k, v := c.t.keys[c.idx], c.t.vals[c.idx]
	c.t.hashes[c.idx] = 0
	c.t.size--
	return Cursor[K, V]{t: c.t, idx: c.idx}, k, v
}

// Replace overwrites a Full bucket in place and returns the triple that
// was there before.
func (c Cursor[K, V]) Replace(h hashstate.SafeHash, k K, v V) (hashstate.SafeHash, K, V) {
	assertf(c.Peek() == Full, "raw: Replace on non-full cursor")
	oldH := hashstate.SafeHash(c.t.hashes[c.idx])
	oldK, oldV := c.t.keys[c.idx], c.t.vals[c.idx]
	c.t.hashes[c.idx] = h.Uint64()
	c.t.keys[c.idx] = k
	c.t.vals[c.idx] = v
	return oldH, oldK, oldV
}

// Put fills an Empty bucket, incrementing size, and returns a Full cursor
// at the same index.
func (c Cursor[K, V]) Put(h hashstate.SafeHash, k K, v V) Cursor[K, V] {
	assertf(c.Peek() == Empty, "raw: Put on non-empty cursor")
	c.t.hashes[c.idx] = h.Uint64()
	c.t.keys[c.idx] = k
	c.t.vals[c.idx] = v
	c.t.size++
	return Cursor[K, V]{t: c.t, idx: c.idx}
}

// GapPeek looks at the next slot without moving the cursor. It reports
// ok == true with the Full cursor at idx+1 when that neighbor is
// occupied; it reports ok == false when the neighbor is Empty, signaling
// that backward-shift deletion has reached the end of this cluster.
func (c Cursor[K, V]) GapPeek() (next Cursor[K, V], ok bool) {
	assertf(c.Peek() == Empty, "raw: GapPeek on non-empty cursor")
	n := c.Next()
	if n.Peek() == Full {
		return n, true
	}
	return Cursor[K, V]{}, false
}
