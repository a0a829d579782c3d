package workshare

import "sync/atomic"

// dynamicNext implements the Dynamic scheduling method:
// linearizable chunk hand-out from a shared cursor, a CAS fast path
// when atomics are configured available and a mutex slow path
// otherwise — the direct translation of gomp_iter_dynamic_next /
// gomp_iter_dynamic_next_locked.
func dynamicNext(desc *Descriptor, ctx *ThreadContext) Result {
	if desc.haveAtomics {
		return dynamicNextAtomic(desc)
	}
	return dynamicNextLocked(desc)
}

func dynamicNextAtomic(desc *Descriptor) Result {
	end := desc.ub
	incr := desc.incr
	chunk := desc.chunkSize

	start := atomic.LoadInt64(&desc.nextCursor)
	for {
		if start == end {
			return Result{Signal: Done}
		}

		nend := nextChunkEnd(start, end, incr, chunk)

		if atomic.CompareAndSwapInt64(&desc.nextCursor, start, nend) {
			return Result{Start: start, End: nend, Signal: Chunk}
		}
		start = atomic.LoadInt64(&desc.nextCursor)
	}
}

func dynamicNextLocked(desc *Descriptor) Result {
	desc.lock.Lock()
	defer desc.lock.Unlock()

	start := desc.nextCursor
	if start == desc.ub {
		return Result{Signal: Done}
	}

	nend := nextChunkEnd(start, desc.ub, desc.incr, desc.chunkSize)
	desc.nextCursor = nend
	return Result{Start: start, End: nend, Signal: Chunk}
}

// nextChunkEnd computes the end of the next chunk starting at start,
// clamped so it never crosses end, for either stride sign. Normalizing
// the remaining trip count through incr (rather than comparing raw
// start/end deltas against a always-positive chunk size) keeps the
// clamp correct for both ascending and descending loops; the final
// chunk ends exactly at end even when incr does not divide the range.
func nextChunkEnd(start, end, incr, chunk int64) int64 {
	n := tripCount(start, end, incr)
	if chunk >= n {
		return end
	}
	return start + chunk*incr
}
