package raw

import "github.com/andresvik/rhtable/hashstate"

// Search implements spec §4.3.1. It returns the Full cursor for the
// matching key, or ok == false if no such key is present. The early exit
// (distance farther than any element at this slot could have probed) and
// the size-bounded loop both come straight from the spec text.
func Search[K comparable, V any](t *Table[K, V], h hashstate.SafeHash, key K) (cur Cursor[K, V], ok bool) {
	if t.Capacity() == 0 {
		return Cursor[K, V]{}, false
	}

	c := AtHash(t, h)

	// ourDist tracks how many slots we have advanced from our own ideal
	// index. Grounded on the pack's influxdb rhh.go index(): once ourDist
	// exceeds the resident's distance, the Robin Hood invariant (distances
	// non-decreasing along a chain) guarantees our key cannot be present
	// any farther into the table, so we can stop early.
	for ourDist := 0; ourDist <= t.size; ourDist++ {
		if c.Peek() == Empty {
			return Cursor[K, V]{}, false
		}

		if ourDist > c.Distance() {
			return Cursor[K, V]{}, false
		}

		if c.Hash() == h && c.Key() == key {
			return c, true
		}

		c = c.Next()
	}

	return Cursor[K, V]{}, false
}

// Insert implements the Robin Hood displacement loop of spec §4.3.2. The
// caller must have already reserved room for one more element. When the
// key is already present, overwrite controls whether v replaces the
// stored value; prevV and existed report the prior state regardless.
//
// Grounded on the teacher's robin/map.go Put+emplace pair: the search for
// an existing key and the Robin Hood steal-and-continue loop are the same
// two phases, here combined into one pass over Cursor instead of a
// hand-rolled psl field, since Cursor.Distance derives the probe count
// from the stored hash tag.
func Insert[K comparable, V any](t *Table[K, V], h hashstate.SafeHash, key K, val V, overwrite bool) (prevV V, existed bool) {
	assertf(t.Capacity() > 0, "raw: Insert on unallocated table")

	c := AtHash(t, h)
	curHash, curKey, curVal := h, key, val
	ourDist := 0
	displaced := false

	for probes := 0; ; probes++ {
		assertf(probes <= t.size+1, "raw: insert probe bound exceeded")

		switch c.Peek() {
		case Empty:
			c.Put(curHash, curKey, curVal)
			return prevV, existed

		case Full:
			if !displaced && c.Hash() == h && c.Key() == key {
				prevV = c.Value()
				existed = true
				if overwrite {
					c.Replace(h, key, val)
				}
				return prevV, existed
			}

			if residentDist := c.Distance(); ourDist > residentDist {
				// We have probed farther than the resident for its own
				// ideal index; the resident is richer. Steal its slot and
				// carry the displaced triple forward, now searching for a
				// home at the displaced triple's own distance.
				curHash, curKey, curVal = c.Replace(curHash, curKey, curVal)
				ourDist = residentDist
				displaced = true
			}
		}

		c = c.Next()
		ourDist++
	}
}

// Remove implements the backward-shift deletion of spec §4.3.3. It
// reports ok == false when key is absent.
func Remove[K comparable, V any](t *Table[K, V], h hashstate.SafeHash, key K) (delKey K, delVal V, ok bool) {
	found, ok := Search(t, h, key)
	if !ok {
		return delKey, delVal, false
	}

	gap, k, v := found.Take()

	for {
		next, hasNext := gap.GapPeek()
		if !hasNext || next.Distance() == 0 {
			break
		}
		// Shift next one slot backward into the gap, then the gap moves
		// to where next used to be.
		nHash, nKey, nVal := next.Hash(), next.Key(), next.Value()
		gap.Put(nHash, nKey, nVal)
		gap, _, _ = next.Take()
	}

	return k, v, true
}
