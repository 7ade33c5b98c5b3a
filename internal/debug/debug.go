//go:build debug

// Package debug includes debugging helpers.
//
// Builds carrying the debug tag get invariant assertions and goroutine-tagged
// trace logging; release builds compile both away.
package debug

import (
	"fmt"
	"os"

	"github.com/timandy/routine"
)

// Enabled is true if the module is being built with the debug tag.
const Enabled = true

// Log prints a trace line to stderr, tagged with the calling goroutine id.
func Log(operation string, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[g%04d] %s: %s\n", routine.Goid(), operation, fmt.Sprintf(format, args...))
}

// Assert panics if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}
