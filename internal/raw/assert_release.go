//go:build !rhtable_debug

package raw

// debugAssertionsEnabled is false in ordinary builds; assertf becomes a
// no-op and the compiler is expected to fold away its condition checks.
const debugAssertionsEnabled = false
