package workshare

import "sync/atomic"

// guidedNext implements the Guided scheduling method:
// like Dynamic, but each call's chunk shrinks toward a configured
// floor as the remaining iteration count does, so synchronization
// overhead is front-loaded and load imbalance is back-loaded. Ported
// from gomp_iter_guided_next / _locked.
func guidedNext(desc *Descriptor, ctx *ThreadContext) Result {
	if desc.haveAtomics {
		return guidedNextAtomic(desc)
	}
	return guidedNextLocked(desc)
}

func guidedNextAtomic(desc *Descriptor) Result {
	end := desc.ub
	incr := desc.incr
	nthreads := int64(desc.nthreads)
	floor := desc.chunkSize

	start := atomic.LoadInt64(&desc.nextCursor)
	for {
		if start == end {
			return Result{Signal: Done}
		}

		nend := guidedChunkEnd(start, end, incr, nthreads, floor)

		if atomic.CompareAndSwapInt64(&desc.nextCursor, start, nend) {
			return Result{Start: start, End: nend, Signal: Chunk}
		}
		start = atomic.LoadInt64(&desc.nextCursor)
	}
}

func guidedNextLocked(desc *Descriptor) Result {
	desc.lock.Lock()
	defer desc.lock.Unlock()

	start := desc.nextCursor
	if start == desc.ub {
		return Result{Signal: Done}
	}

	nend := guidedChunkEnd(start, desc.ub, desc.incr, int64(desc.nthreads), desc.chunkSize)
	desc.nextCursor = nend
	return Result{Start: start, End: nend, Signal: Chunk}
}

// guidedChunkEnd computes start's proposed chunk end: roughly 1/nthreads
// of the remaining trip count, floored at floor, clamped to end.
func guidedChunkEnd(start, end, incr, nthreads, floor int64) int64 {
	n := tripCount(start, end, incr)
	q := (n + nthreads - 1) / nthreads
	if q < floor {
		q = floor
	}
	if q >= n {
		return end
	}
	return start + q*incr
}
