package rhtable

import (
	"errors"
	"fmt"

	"github.com/andresvik/rhtable/internal/raw"
)

// ErrCapacityOverflow is returned by Reserve and New when the required
// capacity overflows the platform's int range (spec §7). Insert,
// InsertIfAbsent and Entry do not return it. It is the same sentinel
// internal/raw uses internally, so errors.Is works across the package
// boundary.
var ErrCapacityOverflow = raw.ErrCapacityOverflow

// ErrOutOfRange is returned (wrapped) by New when the factor given to
// WithLoadFactor is not in the open interval (0, 1), mirroring the
// teacher's shared.ErrOutOfRange / RobinHood.MaxLoad range check.
var ErrOutOfRange = errors.New("rhtable: load factor out of range")

// ErrKeyNotFound backs MustGet's panic-equivalent signaling (spec §7's
// KeyNotFound).
var ErrKeyNotFound = errors.New("rhtable: no entry found for key")

// ErrNilHashState is returned by New when WithHashState is passed a nil
// HashState, rather than silently falling back to the random default.
var ErrNilHashState = errors.New("rhtable: WithHashState given a nil HashState")

func keyNotFoundPanic(key any) {
	panic(fmt.Sprintf("%v: %v", ErrKeyNotFound, key))
}
