// Package config holds the runtime options the front-end (cmd/) uses to
// describe a loop and a team before handing them to internal/workshare.
package config

import "github.com/victorswan/gompsched/internal/workshare"

// RuntimeConfig describes one parallel loop invocation end to end: the
// iteration space, the team size, and the dispatch knobs.
type RuntimeConfig struct {
	LowerBound int64
	UpperBound int64
	Increment  int64
	ChunkSize  int64
	Policy     workshare.Policy
	TeamSize   int

	// HaveAtomics selects Dynamic/Guided's CAS fast path. Defaults to
	// true; set false to exercise the mutex slow path (HAVE_SYNC_BUILTINS
	// absent in the original C conditional compilation).
	HaveAtomics bool
	// StrictNUMA forbids falling back to a random global steal once the
	// thief's own NUMA node is dry (LIBGOMP_USE_PWS_STRICT).
	StrictNUMA bool
	// NUMANodes is a NUMA node count for grouping the team. RuntimeConfig
	// builds no topology from it, and WorkshareConfig does not carry it.
	NUMANodes int
}

// DefaultRuntimeConfig returns the configuration a typical benchmark
// run starts from: atomics available, no NUMA grouping, dynamic
// scheduling over a modest default range.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		LowerBound:  0,
		UpperBound:  1 << 20,
		Increment:   1,
		ChunkSize:   64,
		Policy:      workshare.Dynamic,
		TeamSize:    4,
		HaveAtomics: true,
	}
}

// WorkshareConfig projects the dispatch-relevant knobs into a
// workshare.Config.
func (c RuntimeConfig) WorkshareConfig() workshare.Config {
	return workshare.Config{
		HaveAtomics: c.HaveAtomics,
		StrictNUMA:  c.StrictNUMA,
	}
}
