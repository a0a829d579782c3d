package workshare

import (
	"sync"
	"testing"
)

func drainDynamicLike(desc *Descriptor, n int) [][]Result {
	out := make([][]Result, n)
	var wg sync.WaitGroup
	var mu sync.Mutex
	wg.Add(n)
	for tid := 0; tid < n; tid++ {
		tid := tid
		go func() {
			defer wg.Done()
			ctx := NewThreadContext(tid, uint32(tid+7))
			var mine []Result
			for {
				res := Next(desc, ctx)
				if res.Signal == Done {
					break
				}
				mine = append(mine, res)
			}
			mu.Lock()
			out[tid] = mine
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// Scenario C: dynamic, descending range [100,0), incr=-1,
// chunk=16 — every chunk is 16 iterations wide (final one short), and
// the trip is fully covered.
func TestDynamicDescendingChunking(t *testing.T) {
	var desc Descriptor
	Init(&desc, 100, 0, -1, 16, Dynamic, 1, nil, DefaultConfig())

	ctx := NewThreadContext(0, 1)
	var got [][2]int64
	for {
		res := Next(&desc, ctx)
		if res.Signal == Done {
			break
		}
		got = append(got, [2]int64{res.Start, res.End})
	}

	want := [][2]int64{{100, 84}, {84, 68}, {68, 52}, {52, 36}, {36, 20}, {20, 4}, {4, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// Coverage/disjointness under concurrent dynamic dispatch, CAS fast
// path, across team sizes that don't evenly divide the range.
func TestDynamicCoverageAndDisjointnessAtomic(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		var desc Descriptor
		Init(&desc, 0, 1009, 1, 13, Dynamic, n, nil, DefaultConfig())

		seen := make([]int32, 1009)
		results := drainDynamicLike(&desc, n)
		for _, chunks := range results {
			for _, r := range chunks {
				for i := r.Start; i < r.End; i++ {
					seen[i]++
				}
			}
		}
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d covered %d times, want 1", n, i, c)
			}
		}
	}
}

// The mutex slow path (HaveAtomics=false) must behave identically to
// the CAS fast path in terms of coverage/disjointness.
func TestDynamicCoverageMutexFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HaveAtomics = false

	var desc Descriptor
	Init(&desc, 0, 500, 1, 7, Dynamic, 5, nil, cfg)

	seen := make([]int32, 500)
	results := drainDynamicLike(&desc, 5)
	for _, chunks := range results {
		for _, r := range chunks {
			for i := r.Start; i < r.End; i++ {
				seen[i]++
			}
		}
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d covered %d times, want 1", i, c)
		}
	}
}

// Repeated calls after exhaustion keep reporting Done (idempotence).
func TestDynamicDoneIsIdempotent(t *testing.T) {
	var desc Descriptor
	Init(&desc, 0, 10, 1, 100, Dynamic, 1, nil, DefaultConfig())

	ctx := NewThreadContext(0, 1)
	first := Next(&desc, ctx)
	if first.Signal != Chunk || first.Start != 0 || first.End != 10 {
		t.Fatalf("got %+v, want a single [0,10) chunk", first)
	}
	for i := 0; i < 3; i++ {
		res := Next(&desc, ctx)
		if res.Signal != Done {
			t.Fatalf("call %d: got %v, want Done", i, res.Signal)
		}
	}
}

func TestDynamicEmptyRangeImmediateDone(t *testing.T) {
	var desc Descriptor
	Init(&desc, 5, 5, 1, 4, Dynamic, 2, nil, DefaultConfig())

	ctx := NewThreadContext(0, 1)
	if res := Next(&desc, ctx); res.Signal != Done {
		t.Fatalf("got %v, want Done", res.Signal)
	}
}
