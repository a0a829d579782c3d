package rng

import "testing"

func TestNewRemapsZeroSeed(t *testing.T) {
	s := New(0)
	// A zero internal state would stick at zero forever under xorshift;
	// confirm it actually advances.
	if s.Next() == 0 {
		t.Fatalf("Next() returned 0 from a remapped zero seed")
	}
}

func TestIntnStaysInRange(t *testing.T) {
	s := New(12345)
	for i := 0; i < 1000; i++ {
		v := s.Intn(7)
		if v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d, out of range", v)
		}
	}
}

func TestIntnPanicsOnNonPositiveN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for Intn(0)")
		}
	}()
	s := New(1)
	s.Intn(0)
}

func TestSequenceIsDeterministicForAGivenSeed(t *testing.T) {
	a := New(99)
	b := New(99)
	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequence diverged at step %d", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("sequences from different seeds were identical for 10 steps")
	}
}
