//go:build rhtable_debug

package raw

// debugAssertionsEnabled gates the ContractViolation checks from spec §7
// and §8 (bounded probe lengths, power-of-two capacity, size bounds).
// Built only when the caller passes -tags rhtable_debug, mirroring the
// version-gated build-tag pairing used in the pack's
// aristanetworks-goarista/key/hash_119.go / hash_no119.go.
const debugAssertionsEnabled = true
