package workshare

import (
	"runtime"
	"sync/atomic"
)

// adaptiveNext implements the Adaptive (work-stealing) scheduling
// method: each worker owns a private deque, consumes from
// its own low end, and thieves steal from its high end. Ported from
// gomp_iter_adaptive_next / gomp_iter_adaptive_try_local_work /
// gomp_iter_adaptive_steal, including the source's commented-out
// #if 0 steal/termination block, which is the intended path a correct
// reimplementation must include.
func adaptiveNext(desc *Descriptor, ctx *ThreadContext) Result {
	if desc.perWorker == nil {
		newFatal("adaptive next called before init_workshare")
	}
	local := &desc.perWorker[ctx.TeamID]

	if !local.initialized {
		initAdaptiveWorker(desc, ctx.TeamID)
	}

	if start, end, ok := tryLocalWork(local, desc.chunkSize); ok {
		return Result{Start: start, End: end, Signal: Chunk}
	}

	// Local deque empty: publish what we consumed, then keep trying to
	// steal until either we get work or the whole loop is drained.
	// Retries here are unbounded rather than the source's single-probe
	// #if 0 block, since a bounded retry would risk reporting Done
	// while iterations are still outstanding elsewhere.
	for {
		executed := atomic.SwapInt64(&local.nbExecuted, 0)
		if executed != 0 {
			if atomic.AddInt64(&desc.remaining, -executed) <= 0 {
				return Result{Signal: Done}
			}
		} else if atomic.LoadInt64(&desc.remaining) <= 0 {
			return Result{Signal: Done}
		}

		if start, end, ok := stealWork(desc, ctx, local); ok {
			return Result{Start: start, End: end, Signal: Chunk}
		}

		if atomic.LoadInt64(&desc.remaining) <= 0 {
			return Result{Signal: Done}
		}
		runtime.Gosched()
	}
}

// initAdaptiveWorker partitions [lb, ub) into N equal slabs and installs
// slab i into worker i's chunk. The last
// slab absorbs whatever the division doesn't split evenly.
func initAdaptiveWorker(desc *Descriptor, teamID int) {
	desc.lock.Lock()
	defer desc.lock.Unlock()

	local := &desc.perWorker[teamID]
	if local.initialized {
		return
	}

	n := tripCount(desc.lb, desc.ub, desc.incr)
	nthreads := int64(desc.nthreads)
	slab := n / nthreads

	s0 := slab * int64(teamID)
	var e0 int64
	if teamID == desc.nthreads-1 {
		e0 = n
	} else {
		e0 = s0 + slab
	}

	local.begin = desc.lb + s0*desc.incr
	local.end = desc.lb + e0*desc.incr
	local.nbExecuted = 0
	local.initialized = true
}

// tryLocalWork is the Dekker-style optimistic local pop: a worker
// advances begin speculatively, then checks whether a concurrent steal
// invalidated the advance. All fields touched here are also touched by
// stealWork from other goroutines, so every access goes through
// sync/atomic even inside the chunk-lock fallback — Go's atomic
// load/store already gives the sequentially-consistent fence needed
// between the begin write and the end read.
func tryLocalWork(local *AdaptiveChunk, chunkSize int64) (start, end int64, ok bool) {
	begin := atomic.LoadInt64(&local.begin)
	newBegin := begin + chunkSize
	atomic.StoreInt64(&local.begin, newBegin)

	if newBegin < atomic.LoadInt64(&local.end) {
		atomic.AddInt64(&local.nbExecuted, chunkSize)
		return begin, newBegin, true
	}

	// A steal may have shrunk end while we were advancing. Roll back
	// and retry the exact remaining size under the chunk lock.
	atomic.StoreInt64(&local.begin, begin)

	local.mu.Lock()
	size := atomic.LoadInt64(&local.end) - begin
	if size > chunkSize {
		size = chunkSize
	}
	if size > 0 {
		atomic.StoreInt64(&local.begin, begin+size)
	}
	local.mu.Unlock()

	if size <= 0 {
		return 0, 0, false
	}
	atomic.AddInt64(&local.nbExecuted, size)
	return begin, begin + size, true
}

// stealWork picks a victim (NUMA-aware when a Topology is configured,
// uniform random otherwise) and attempts to take half its remaining
// deque. Lock ordering is always victim then thief,
// to preclude deadlock.
func stealWork(desc *Descriptor, ctx *ThreadContext, thief *AdaptiveChunk) (start, end int64, ok bool) {
	victimID, found := pickVictim(desc, ctx)
	if !found {
		return 0, 0, false
	}
	victim := &desc.perWorker[victimID]

	size := (atomic.LoadInt64(&victim.end) - atomic.LoadInt64(&victim.begin)) / 2
	if size <= 0 {
		return 0, 0, false
	}

	victim.mu.Lock()
	newEnd := atomic.LoadInt64(&victim.end) - size
	if newEnd < atomic.LoadInt64(&victim.begin) {
		// Victim drained its own deque meanwhile; give the range back.
		victim.mu.Unlock()
		return 0, 0, false
	}
	atomic.StoreInt64(&victim.end, newEnd)
	victim.mu.Unlock()

	taken := desc.chunkSize
	if size < taken || taken == 0 {
		taken = size
	}

	thief.mu.Lock()
	atomic.StoreInt64(&thief.begin, newEnd+taken)
	atomic.StoreInt64(&thief.end, newEnd+size)
	thief.mu.Unlock()

	atomic.AddInt64(&thief.nbExecuted, taken)
	return newEnd, newEnd + taken, true
}

// pickVictim implements the two victim-selection modes: NUMA-aware
// (probe same-node workers first, optionally falling back to a global
// random pick) or plain uniform random.
func pickVictim(desc *Descriptor, ctx *ThreadContext) (int, bool) {
	if desc.topology == nil {
		return pickRandomVictim(desc, ctx)
	}

	node := desc.topology.NodeOf(ctx.TeamID)
	peers := desc.topology.WorkersOn(node)
	probes := 1 + len(peers)/2
	if probes > len(peers) {
		probes = len(peers)
	}

	for k := 0; k < probes; k++ {
		if len(peers) <= 1 {
			break
		}
		candidate := peers[ctx.rng.Intn(len(peers))]
		if candidate == ctx.TeamID {
			continue
		}
		if hasWork(desc, candidate) {
			return candidate, true
		}
	}

	if atomic.LoadInt64(&desc.remaining) <= 0 {
		return 0, false
	}
	if desc.config.StrictNUMA {
		return 0, false
	}
	return pickRandomVictim(desc, ctx)
}

func pickRandomVictim(desc *Descriptor, ctx *ThreadContext) (int, bool) {
	if desc.nthreads == 1 {
		return 0, false
	}
	victim := ctx.rng.Intn(desc.nthreads)
	for victim == ctx.TeamID {
		victim = ctx.rng.Intn(desc.nthreads)
	}
	return victim, true
}

func hasWork(desc *Descriptor, teamID int) bool {
	v := &desc.perWorker[teamID]
	return atomic.LoadInt64(&v.end) > atomic.LoadInt64(&v.begin)
}
