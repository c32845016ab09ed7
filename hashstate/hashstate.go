// Package hashstate provides the pluggable keyed-hashing collaborator used
// by rhtable. The table engine never hashes a key directly; it asks a
// HashState for a fresh Hasher, feeds the key's bytes into it, and
// finalizes. This indirection keeps the hashing primitive and its seeding
// out of the table engine entirely, matching the teacher's own hasher
// indirection (shared.HashFn in the EinfachAndy/hashmaps pack) but widened
// to a stateful, keyed hasher so that distinct table instances probe
// differently.
package hashstate

import (
	"encoding/binary"
)

// Hasher accumulates bytes and produces a 64-bit digest. A Hasher is
// single-use: once Sum64 has been called its further behavior is
// unspecified, mirroring hash.Hash64's documented contract.
type Hasher interface {
	WriteString(s string)
	WriteBytes(b []byte)
	WriteUint64(v uint64)
	Sum64() uint64
}

// HashState is a factory for fresh Hasher instances. A table holds exactly
// one HashState for its lifetime; every hashing operation obtains a new
// Hasher from it.
type HashState interface {
	NewHasher() Hasher
}

// SafeHash is a 64-bit digest with the high bit forced to 1, so it can
// never collide with the empty-bucket sentinel 0.
type SafeHash uint64

const emptySentinelMask = uint64(1) << 63

// Safeguard converts an arbitrary 64-bit hash digest into a SafeHash.
// Rationale (spec §4.6): 0 is reserved to mean "bucket is empty"; forcing
// the high bit to 1 rules that out while leaving the low bits — the ones
// used for bucket indexing — uniformly distributed.
func Safeguard(digest uint64) SafeHash {
	return SafeHash(digest | emptySentinelMask)
}

// Index returns the ideal bucket index for this hash in a table of the
// given power-of-two capacity.
func (h SafeHash) Index(capacity int) int {
	return int(uint64(h) & uint64(capacity-1))
}

// Uint64 returns the raw 64-bit value, high bit included.
func (h SafeHash) Uint64() uint64 {
	return uint64(h)
}

// HashKey produces a SafeHash for an arbitrary key by letting writeKey (a
// caller-supplied serializer) feed the key's bytes to a fresh Hasher drawn
// from hs.
func HashKey(hs HashState, writeKey func(Hasher)) SafeHash {
	hasher := hs.NewHasher()
	writeKey(hasher)
	return Safeguard(hasher.Sum64())
}

// uint64Bytes is a small helper used by Hasher implementations that only
// expose a []byte-oriented Write.
func uint64Bytes(v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return buf[:]
}
