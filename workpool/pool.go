// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workpool

import "sync"

// Pool runs a worker team over a scheduling axis, claiming job ranges
// from a fresh Dispatcher and joining once every worker has exhausted
// the range. A Pool is reused across every stage of a step (the
// per-axis forward and inverse transforms and the fused reduction) and
// across the tensor builder's analytic window fill and its three axes
// of initial FFTs (§5).
type Pool struct {
	N          int // team size
	MinJobSize int
}

// NewPool builds a worker team of the given size. A non-positive size
// is treated as 1 (serial execution), per §9: "implementations need
// not provide a separate single-threaded variant" -- nthreads=1 is
// just a Pool of size one.
func NewPool(n, minJobSize int) *Pool {
	if n < 1 {
		n = 1
	}
	if minJobSize < 1 {
		minJobSize = 1
	}
	return &Pool{N: n, MinJobSize: minJobSize}
}

// Run launches the team once, each worker repeatedly claiming job
// ranges from a dispatcher over [0, imax) and invoking body(workerID,
// start, stop) for each claimed range, until the dispatcher is
// exhausted. Run blocks until every worker has joined. The first error
// returned by any worker is returned once all workers have joined;
// other workers keep draining the dispatcher so the range is fully
// claimed even after an error (no job is left unclaimed).
func (p *Pool) Run(imax int, body func(workerID, start, stop int) error) error {
	if imax <= 0 {
		return nil
	}

	disp := NewDispatcher(imax, p.N, p.MinJobSize)

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	for w := 0; w < p.N; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				start, stop, ok := disp.ClaimJob()
				if !ok {
					return
				}
				if err := body(workerID, start, stop); err != nil {
					errOnce.Do(func() { firstErr = err })
				}
			}
		}(w)
	}
	wg.Wait()

	return firstErr
}
