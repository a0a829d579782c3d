// Package workshare implements the parallel loop work-distribution core
// of an OpenMP-style runtime: given a single numerical range with a
// stride and a scheduling policy, it partitions the iteration space
// among a team of N worker threads and hands each worker successive
// sub-ranges through a uniform Next call.
//
// The package is deliberately free of I/O, configuration parsing, and
// logging — those belong to the front-end that
// drives this core, not to the core itself.
package workshare

import (
	"sync"
	"sync/atomic"
)

// Policy selects which dispatcher Next uses.
type Policy int

const (
	// Static computes each worker's contiguous slice(s) from its
	// team_id alone; no synchronization after init.
	Static Policy = iota
	// Dynamic hands out fixed-size chunks from a shared cursor.
	Dynamic
	// Guided hands out chunks whose size decays as work is consumed.
	Guided
	// Adaptive distributes work via per-worker deques and stealing.
	Adaptive
)

func (p Policy) String() string {
	switch p {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Guided:
		return "guided"
	case Adaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Result is what Next returns: either a contiguous chunk, or a signal.
type Result struct {
	Start, End int64
	Signal     Signal
}

// Signal distinguishes a delivered chunk from the two terminal states a
// call to Next can report.
type Signal int

const (
	// Chunk means Start/End hold a valid, non-empty range.
	Chunk Signal = iota
	// Done means no further iterations remain for this worker.
	Done
	// LastChunk means Start/End hold the final piece of the whole
	// iteration space; callers needing epilogue-once semantics can key
	// off this instead of tracking it themselves. Only static's
	// one-shot mode raises it distinctly — the other policies collapse
	// it into Done on the subsequent call
	LastChunk
)

// AdaptiveChunk is a single worker's local deque inside the Adaptive
// policy: a half-open range [Begin, End) that the owner consumes from
// Begin upward and thieves steal from End downward.
type AdaptiveChunk struct {
	mu          sync.Mutex
	begin       int64
	end         int64
	nbExecuted  int64
	initialized bool
}

// Descriptor is the immutable-after-init record of a single parallel
// loop, shared by the whole team. Fields written during Init must be
// visible to every worker before its first Next call — the front-end is
// responsible for that publication fence; in Go, starting the
// worker goroutines after Init returns gives that for free via the
// happens-before edge of goroutine creation.
type Descriptor struct {
	lb, ub, incr int64
	chunkSize    int64
	policy       Policy
	nthreads     int

	// nextCursor is the shared cursor used by Dynamic and Guided.
	nextCursor int64
	// remaining is the Adaptive policy's outstanding-iteration counter.
	remaining int64

	// lock guards the slow paths: mutex-fallback cursor updates and the
	// one-time Adaptive slab initialization of each worker — per-worker
	// adaptive deque updates have their own locks.
	lock sync.Mutex

	haveAtomics bool

	perWorker []AdaptiveChunk

	topology Topology
	config   Config
}

// Config carries the runtime knobs the original C sources expressed as
// preprocessor conditionals: HAVE_SYNC_BUILTINS,
// LIBGOMP_USE_ADAPTIVE, LIBGOMP_USE_NUMA, LIBGOMP_USE_PWS_STRICT.
type Config struct {
	// HaveAtomics selects the CAS fast path for Dynamic/Guided. False
	// forces the mutex slow path on every call (HAVE_SYNC_BUILTINS absent).
	HaveAtomics bool
	// StrictNUMA, when true, forbids a random global steal fallback
	// once the thief's own NUMA node yields nothing (LIBGOMP_USE_PWS_STRICT).
	StrictNUMA bool
}

// DefaultConfig mirrors a typical libgomp build: atomics available and
// steals allowed to cross NUMA nodes when the local node is dry.
func DefaultConfig() Config {
	return Config{
		HaveAtomics: true,
		StrictNUMA:  false,
	}
}

// Topology reports NUMA-node membership for each worker, consumed by
// the Adaptive dispatcher to bias steals toward same-node victims
//. A nil Topology makes Adaptive steal uniformly at random.
type Topology interface {
	NodeOf(teamID int) int
	WorkersOn(node int) []int
}

// Init initializes desc for a new parallel loop. It must be called
// before the team enters the parallel region; the core performs no
// locking here because Init has exactly one caller and happens-before
// every worker's first Next.
func Init(desc *Descriptor, lb, ub, incr, chunkSize int64, policy Policy, nthreads int, topo Topology, cfg Config) {
	if incr == 0 {
		// An invalid range is an empty loop: every Next reports Done.
		incr, ub = 1, lb
	}
	if nthreads <= 0 {
		newFatal("invalid team size: %d", nthreads)
	}
	switch policy {
	case Static, Dynamic, Guided, Adaptive:
	default:
		newFatal("invalid policy: %d", policy)
	}

	*desc = Descriptor{
		lb:          lb,
		ub:          ub,
		incr:        incr,
		chunkSize:   chunkSize,
		policy:      policy,
		nthreads:    nthreads,
		nextCursor:  lb,
		haveAtomics: cfg.HaveAtomics,
		topology:    topo,
		config:      cfg,
	}

	if policy == Adaptive {
		desc.perWorker = make([]AdaptiveChunk, nthreads)
		n := tripCount(lb, ub, incr)
		atomic.StoreInt64(&desc.remaining, n)
	}
}

// tripCount computes ceil(|ub-lb| / |incr|) in the direction of incr,
// returning 0 for an empty or inverted-sign range.
func tripCount(lb, ub, incr int64) int64 {
	if incr > 0 {
		if ub <= lb {
			return 0
		}
		return (ub - lb + incr - 1) / incr
	}
	if ub >= lb {
		return 0
	}
	return (lb - ub + (-incr) - 1) / (-incr)
}

// Next dispatches to the policy-appropriate implementation selected at
// Init time.
func Next(desc *Descriptor, ctx *ThreadContext) Result {
	switch desc.policy {
	case Static:
		return staticNext(desc, ctx)
	case Dynamic:
		return dynamicNext(desc, ctx)
	case Guided:
		return guidedNext(desc, ctx)
	case Adaptive:
		return adaptiveNext(desc, ctx)
	default:
		newFatal("invalid policy: %d", desc.policy)
		panic("unreachable")
	}
}
