package hashstate

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"
)

// sipHasher adapts github.com/dchest/siphash's hash.Hash64 to the Hasher
// interface. siphash.New returns a keyed, DoS-resistant 64-bit hasher —
// the out-of-scope "hashing primitive" spec §4.6 hands off to an abstract
// collaborator; this is the concrete one this module wires in, grounded on
// the dchest/siphash dependency found in the pack's
// other_examples/manifests/dustinxie-lockfree/go.mod.
type sipHasher struct {
	h interface {
		Write([]byte) (int, error)
		Sum64() uint64
	}
}

func (s *sipHasher) WriteString(str string) {
	_, _ = s.h.Write([]byte(str))
}

func (s *sipHasher) WriteBytes(b []byte) {
	_, _ = s.h.Write(b)
}

func (s *sipHasher) WriteUint64(v uint64) {
	_, _ = s.h.Write(uint64Bytes(v))
}

func (s *sipHasher) Sum64() uint64 {
	return s.h.Sum64()
}

// SipHashState is the default HashState: every Hasher it produces is a
// fresh github.com/dchest/siphash instance keyed with the same two seed
// words for the lifetime of the owning table.
type SipHashState struct {
	k0, k1 uint64
}

// NewSipHashState builds a HashState keyed with the given 64-bit words.
// Exposed for callers that manage their own entropy (e.g. replaying a
// fixed seed across process restarts); most callers should use
// NewRandomSipHashState instead.
func NewSipHashState(k0, k1 uint64) *SipHashState {
	return &SipHashState{k0: k0, k1: k1}
}

// NewRandomSipHashState seeds a SipHashState from an external entropy
// source. Four 64-bit words are read from crypto/rand; the first two key
// the hasher and the other two are discarded.
func NewRandomSipHashState() (*SipHashState, error) {
	var words [4]uint64
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("hashstate: reading entropy: %w", err)
	}
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
	}
	return NewSipHashState(words[0], words[1]), nil
}

// MustNewRandomSipHashState is NewRandomSipHashState but panics instead of
// returning an error, for use in package-level var initializers where the
// entropy source failing is as fatal as a failed allocation.
func MustNewRandomSipHashState() *SipHashState {
	hs, err := NewRandomSipHashState()
	if err != nil {
		panic(err)
	}
	return hs
}

// NewHasher returns a fresh siphash instance keyed with this HashState's
// seed words.
func (hs *SipHashState) NewHasher() Hasher {
	return &sipHasher{h: siphash.New(hs.k0, hs.k1)}
}
