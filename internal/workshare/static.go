package workshare

// staticNext implements the Static scheduling method,
// ported directly from gomp_iter_static_next: the caller's thread index
// alone determines the slice(s) it owns, so there is no synchronization
// beyond reading Descriptor fields that are immutable for the region's
// lifetime.
func staticNext(desc *Descriptor, ctx *ThreadContext) Result {
	if ctx.staticTrip == -1 {
		return Result{Signal: Done}
	}

	n := tripCount(desc.lb, desc.ub, desc.incr)
	i := int64(ctx.TeamID)
	nthreads := int64(desc.nthreads)

	if desc.chunkSize == 0 {
		return staticOneShot(desc, ctx, n, i, nthreads)
	}
	return staticStriped(desc, ctx, n, i, nthreads)
}

// staticOneShot: chunk_size == 0 means "one contiguous trip per worker".
func staticOneShot(desc *Descriptor, ctx *ThreadContext, n, i, nthreads int64) Result {
	if ctx.staticTrip > 0 {
		return Result{Signal: Done}
	}

	q := n / nthreads
	if q*nthreads != n {
		q++
	}
	s0 := q * i
	e0 := s0 + q
	if e0 > n {
		e0 = n
	}

	if s0 >= e0 {
		ctx.staticTrip = 1
		return Result{Signal: Done}
	}

	s := s0*desc.incr + desc.lb
	e := e0*desc.incr + desc.lb

	if e0 == n {
		ctx.staticTrip = -1
		return Result{Start: s, End: e, Signal: LastChunk}
	}
	ctx.staticTrip = 1
	return Result{Start: s, End: e, Signal: Chunk}
}

// staticStriped: chunk_size > 0, each call hands out exactly chunk_size
// iterations (or the tail remainder), striped across the team.
func staticStriped(desc *Descriptor, ctx *ThreadContext, n, i, nthreads int64) Result {
	c := desc.chunkSize
	s0 := (int64(ctx.staticTrip)*nthreads + i) * c
	e0 := s0 + c

	if s0 >= n {
		ctx.staticTrip = -1
		return Result{Signal: Done}
	}
	if e0 > n {
		e0 = n
	}

	s := s0*desc.incr + desc.lb
	e := e0*desc.incr + desc.lb

	if e0 == n {
		ctx.staticTrip = -1
		return Result{Start: s, End: e, Signal: Chunk}
	}
	ctx.staticTrip++
	return Result{Start: s, End: e, Signal: Chunk}
}
