package workshare

import "github.com/victorswan/gompsched/internal/rng"

// ThreadContext is a single worker's identity within a team: its index,
// a private RNG seed for victim selection, and the static-striping trip
// counter. None of these fields are ever written by another worker.
type ThreadContext struct {
	TeamID int

	rng rng.Source

	// staticTrip tracks static-with-chunk progress: -1 means finished,
	// >=0 is the number of chunks already consumed.
	staticTrip int32
}

// NewThreadContext builds the ThreadContext for worker teamID in an
// N-worker team. seed feeds the worker's private victim-selection PRNG
// and must differ across workers in the same team.
func NewThreadContext(teamID int, seed uint32) *ThreadContext {
	return &ThreadContext{
		TeamID: teamID,
		rng:    rng.New(seed),
	}
}
