package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/victorswan/gompsched/internal/team"
	"github.com/victorswan/gompsched/internal/topology"
	"github.com/victorswan/gompsched/internal/workshare"
)

// Result is a single run's outcome, before persistence: per-worker
// executed-iteration counts and the derived load-imbalance ratio
// (max/min executed, guarded against a zero min).
type Result struct {
	ID             string
	Policy         workshare.Policy
	Duration       time.Duration
	PerWorker      []int64
	ImbalanceRatio float64
}

// Options configures a single synthetic loop run.
type Options struct {
	LB, UB, Incr int64
	ChunkSize    int64
	TeamSize     int
	Policy       workshare.Policy
	Topology     topology.Provider
	Config       workshare.Config

	// Weights, when non-nil, assigns a per-iteration cost keyed by
	// (index-lb)/incr, so a skewed workload (workload.Skewed) drives
	// the measured load distribution instead of a flat iteration count.
	Weights []float64
}

// Run drives Options.TeamSize workers over [LB, UB) under Policy,
// accumulating each worker's share of work — either a plain iteration
// count, or the weighted cost of the iterations it executed when
// Options.Weights is set — and reports the resulting load distribution.
func Run(ctx context.Context, opts Options) (Result, error) {
	counts := make([]int64, opts.TeamSize)
	var weighted []float64
	var mu sync.Mutex
	if opts.Weights != nil {
		weighted = make([]float64, opts.TeamSize)
	}

	start := time.Now()
	err := team.Run(ctx, opts.LB, opts.UB, opts.Incr, opts.ChunkSize, opts.Policy, opts.TeamSize, opts.Topology, opts.Config,
		func(teamID int, s, e int64) {
			n := tripDelta(s, e, opts.Incr)
			atomic.AddInt64(&counts[teamID], n)
			if weighted != nil {
				cost := weightedCost(opts.Weights, opts.LB, opts.Incr, s, e)
				mu.Lock()
				weighted[teamID] += cost
				mu.Unlock()
			}
		},
	)
	duration := time.Since(start)
	if err != nil {
		return Result{}, err
	}

	reported := counts
	ratio := imbalanceRatio(counts)
	if weighted != nil {
		reported = scaleToInt(weighted)
		ratio = imbalanceRatioFloat(weighted)
	}

	return Result{
		ID:             uuid.New().String(),
		Policy:         opts.Policy,
		Duration:       duration,
		PerWorker:      reported,
		ImbalanceRatio: ratio,
	}, nil
}

// weightedCost sums weights[(s-lb)/incr : (e-lb)/incr] for the chunk
// [s, e), clamping indices into range defensively.
func weightedCost(weights []float64, lb, incr, s, e int64) float64 {
	startIdx := (s - lb) / incr
	endIdx := (e - lb) / incr
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > int64(len(weights)) {
		endIdx = int64(len(weights))
	}
	var total float64
	for i := startIdx; i < endIdx; i++ {
		total += weights[i]
	}
	return total
}

// scaleToInt renders weighted costs as an integer-ish scale (each cost
// times 1,000,000, i.e. parts per million of the total when the weights
// sum to 1 as workload.Skewed's do) so they persist through the same
// int64 column plain iteration counts use.
func scaleToInt(weighted []float64) []int64 {
	out := make([]int64, len(weighted))
	for i, w := range weighted {
		out[i] = int64(w * 1_000_000)
	}
	return out
}

func imbalanceRatioFloat(weighted []float64) float64 {
	var max, min float64 = 0, -1
	for _, w := range weighted {
		if w > max {
			max = w
		}
		if w > 0 && (min == -1 || w < min) {
			min = w
		}
	}
	if min <= 0 {
		return 0
	}
	return max / min
}

// tripDelta returns how many iterations the half-open [s, e) range
// covers for the given stride sign.
func tripDelta(s, e, incr int64) int64 {
	if incr > 0 {
		return (e - s) / incr
	}
	return (s - e) / (-incr)
}

// imbalanceRatio computes max(counts)/min(counts) over workers that
// participated at all (zero-count workers are excluded from the
// denominator so a team member that legitimately received no work,
// e.g. N > trip count, doesn't produce a divide-by-zero or a spurious
// infinite ratio).
func imbalanceRatio(counts []int64) float64 {
	var max, min int64 = 0, -1
	for _, c := range counts {
		if c > max {
			max = c
		}
		if c > 0 && (min == -1 || c < min) {
			min = c
		}
	}
	if min <= 0 {
		return 0
	}
	return float64(max) / float64(min)
}
