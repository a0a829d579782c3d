package tui

import (
	"strings"
	"testing"
)

func TestRenderLoadBarsIncludesEveryWorker(t *testing.T) {
	out := RenderLoadBars("dynamic", []int64{10, 20, 30}, 3.0, 40)
	if out == "" {
		t.Fatal("RenderLoadBars returned an empty string")
	}
	for _, want := range []string{"w0", "w1", "w2", "dynamic"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLoadBarsClampsNarrowWidth(t *testing.T) {
	// Width below the floor must not panic on strings.Repeat with a
	// negative count.
	out := RenderLoadBars("static", []int64{5, 5}, 1.0, 1)
	if out == "" {
		t.Fatal("RenderLoadBars returned an empty string")
	}
}

func TestRenderLoadBarsHandlesAllZero(t *testing.T) {
	out := RenderLoadBars("guided", []int64{0, 0}, 0, 20)
	if out == "" {
		t.Fatal("RenderLoadBars returned an empty string")
	}
}

