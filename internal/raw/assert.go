package raw

import "fmt"

// assertf panics with a formatted message when debugAssertionsEnabled and
// cond is false. It is elided to a no-op in ordinary builds (spec §7:
// "ContractViolation (debug-only)").
func assertf(cond bool, format string, args ...any) {
	if debugAssertionsEnabled && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
