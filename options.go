package rhtable

import "github.com/andresvik/rhtable/hashstate"

// options collects the constructor-time configuration a Map is built
// with. Mirrors the teacher's Config[K, V] struct (map.go's factory) but
// expressed as functional options, the idiom the rest of the pack's
// service-shaped repos use for constructor configuration (e.g.
// gramework-threadsafe/cache.New takes its TTL/size at construction).
type options struct {
	capacity      int
	loadFactor    float32
	hasLoadFactor bool
	hashState     hashstate.HashState
	hasHashSet    bool
}

// Option configures a Map at construction time.
type Option func(*options)

// WithCapacity ensures the table constructed with this option can accept
// n insertions without a subsequent resize (spec §4.5's with_capacity).
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLoadFactor overrides the fixed 11/10 load factor from spec §3. Spec
// §9 notes this as a desirable-but-unimplemented extension of the
// original; here it is implemented, validated against the same (0, 1)
// open range the teacher's RobinHood.MaxLoad enforces. An out-of-range lf
// is reported by New as ErrOutOfRange rather than here,
// since Option values cannot return errors.
func WithLoadFactor(lf float32) Option {
	return func(o *options) {
		o.loadFactor = lf
		o.hasLoadFactor = true
	}
}

// WithHashState injects a pluggable HashState factory (spec §4.6, §9:
// "pluggable for testing ... and security-sensitive deployments").
// hasHashSet distinguishes "caller passed WithHashState(nil) by mistake"
// from "caller never passed the option at all" — New rejects the former
// instead of silently falling back to the random default.
func WithHashState(hs hashstate.HashState) Option {
	return func(o *options) {
		o.hashState = hs
		o.hasHashSet = true
	}
}

// loadFactorToRatio converts a float32 load factor into an integer
// numerator/denominator pair precise to three decimal digits, which is
// more than enough resolution for a load factor and keeps all of
// internal/raw's arithmetic in integers.
func loadFactorToRatio(lf float32) (num, den int) {
	const den64 = 1000
	n := int(lf*den64 + 0.5)
	if n <= 0 {
		n = 1
	}
	if n >= den64 {
		n = den64 - 1
	}
	// usable/raw = lf, so raw/usable (the MinCapacity ratio) is its
	// reciprocal: num/den = den64/n.
	return den64, n
}
