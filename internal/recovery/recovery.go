// internal/recovery/recovery.go
// Package recovery turns a crash anywhere in the command into a short
// report instead of a raw Go traceback at the user.
package recovery

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandlePanic is deferred at the top of main. A panic anywhere below it
// is reported with its stack and the process exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		os.Exit(1)
	}
}
