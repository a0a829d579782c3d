// Package team is the minimal front-end that drives the scheduling
// core: creating a team of worker goroutines and repeatedly calling
// Next on each until it reports Done. It exists so the four dispatchers
// can be driven end to end in tests, the CLI demo, and the benchmark
// harness — the core itself needs none of this.
package team

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/victorswan/gompsched/internal/topology"
	"github.com/victorswan/gompsched/internal/workshare"
)

// Body is the loop body a team runs for each chunk it is handed. It
// must be safe to call concurrently from every worker.
type Body func(teamID int, start, end int64)

// Run partitions [lb, ub) under policy across n workers and calls body
// once per chunk each worker receives, joining all workers with an
// errgroup so the first worker error is reported to the caller instead
// of being silently dropped.
func Run(ctx context.Context, lb, ub, incr, chunkSize int64, policy workshare.Policy, n int, topo topology.Provider, cfg workshare.Config, body Body) error {
	var desc workshare.Descriptor
	var wsTopo workshare.Topology
	if topo != nil {
		wsTopo = topo
	}
	workshare.Init(&desc, lb, ub, incr, chunkSize, policy, n, wsTopo, cfg)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		teamID := i
		g.Go(func() error {
			tctx := workshare.NewThreadContext(teamID, seedFor(teamID))
			return runWorker(ctx, &desc, tctx, body)
		})
	}
	return g.Wait()
}

func runWorker(ctx context.Context, desc *workshare.Descriptor, tctx *workshare.ThreadContext, body Body) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res := workshare.Next(desc, tctx)
		switch res.Signal {
		case workshare.Done:
			return nil
		case workshare.Chunk, workshare.LastChunk:
			body(tctx.TeamID, res.Start, res.End)
			if res.Signal == workshare.LastChunk {
				return nil
			}
		}
	}
}

// seedFor derives a worker's RNG seed deterministically from its team
// ID, so a given (policy, N) run is reproducible across processes.
func seedFor(teamID int) uint32 {
	return uint32(teamID*2654435761 + 1)
}
