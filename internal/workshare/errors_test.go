package workshare

import (
	"errors"
	"testing"
)

func TestIsFatalRecognizesFatalError(t *testing.T) {
	err := &FatalError{Err: errors.New("boom")}
	if !IsFatal(err) {
		t.Fatal("IsFatal(FatalError) = false, want true")
	}
}

func TestIsFatalRejectsOrdinaryError(t *testing.T) {
	if IsFatal(errors.New("ordinary")) {
		t.Fatal("IsFatal(ordinary error) = true, want false")
	}
}

func TestIsFatalNilIsFalse(t *testing.T) {
	if IsFatal(nil) {
		t.Fatal("IsFatal(nil) = true, want false")
	}
}

func TestInitZeroIncrIsEmptyLoop(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic for incr == 0: %v", r)
		}
	}()
	var desc Descriptor
	Init(&desc, 0, 10, 0, 1, Static, 2, nil, DefaultConfig())
	ctx := NewThreadContext(0, 1)
	if res := Next(&desc, ctx); res.Signal != Done {
		t.Fatalf("got %v, want Done for incr == 0", res.Signal)
	}
}

func TestInitPanicsOnNonPositiveTeamSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for nthreads <= 0")
		}
	}()
	var desc Descriptor
	Init(&desc, 0, 10, 1, 1, Static, 0, nil, DefaultConfig())
}

func TestInitPanicsOnInvalidPolicy(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an invalid policy")
		}
	}()
	var desc Descriptor
	Init(&desc, 0, 10, 1, 1, Policy(99), 2, nil, DefaultConfig())
}
