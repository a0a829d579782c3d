package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLogOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)
	fn()
	return buf.String()
}

func TestWarnAlwaysLogs(t *testing.T) {
	out := captureLogOutput(t, func() {
		Warn("imbalance ratio %.1fx exceeds bound", 4.2)
	})
	if !strings.Contains(out, "imbalance ratio 4.2x exceeds bound") {
		t.Fatalf("Warn output = %q, missing expected message", out)
	}
}

func TestDebugIsNoOpWhenDisabled(t *testing.T) {
	if debugEnabled {
		t.Skip("GOMPSCHED_DEBUG is set in this environment")
	}
	out := captureLogOutput(t, func() {
		Debug("worker %d consumed %d iterations", 3, 64)
	})
	if out != "" {
		t.Fatalf("Debug logged output while disabled: %q", out)
	}
}
