// Package utils holds small ambient helpers shared across the CLI and
// benchmark harness.
package utils

import (
	"log"
	"os"
)

// debugEnabled is read once; callers pay the os.Getenv cost only at
// package init, not per call.
var debugEnabled = os.Getenv("GOMPSCHED_DEBUG") != ""

// Debug logs a formatted message when GOMPSCHED_DEBUG is set in the
// environment. It is a no-op otherwise, so hot paths like a steal
// attempt never pay for formatting in production.
func Debug(format string, args ...any) {
	if !debugEnabled {
		return
	}
	log.Printf("[debug] "+format, args...)
}

// Warn always logs, for conditions worth surfacing regardless of the
// debug flag (a bench run falling back to the mutex slow path, a
// steal-fairness ratio outside the expected bound).
func Warn(format string, args ...any) {
	log.Printf("[warn] "+format, args...)
}
