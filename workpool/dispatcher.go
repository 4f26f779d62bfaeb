// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package workpool implements the mutex-guarded job dispatcher and
// per-worker FFT scratch of §4.4/§4.5, and the worker-team runner that
// both the tensor builder and the convolution engine stage their
// parallel work through (§5 Concurrency & Resource Model).
package workpool

import "sync"

// Dispatcher hands out index ranges along a scheduling axis to
// requesting workers: a run of coarse "big" blocks, rounded to a
// multiple of minJobSize, followed by a tail of finer "small" blocks
// for load balance, mirroring OOMMF's own demag job dispatcher.
type Dispatcher struct {
	mu            sync.Mutex
	cursor        int
	imax          int
	bigBlock      int
	smallBlock    int
	bigBlockLimit int
}

// NewDispatcher builds a dispatcher over [0, imax) for nWorkers
// workers, rounding big-block size to a multiple of minJobSize.
// ~95% of the range is split into big blocks; the remaining ~5% into
// small blocks, crossing over at bigBlockLimit.
func NewDispatcher(imax, nWorkers, minJobSize int) *Dispatcher {
	if nWorkers < 1 {
		nWorkers = 1
	}
	if minJobSize < 1 {
		minJobSize = 1
	}

	big := int(0.95 * float64(imax) / float64(nWorkers))
	big = roundUpToMultiple(big, minJobSize)
	if big < minJobSize {
		big = minJobSize
	}

	small := int(0.05 * float64(imax) / float64(nWorkers))
	if small < 1 {
		small = 1
	}

	limit := imax - small*nWorkers
	if limit < 0 {
		limit = 0
	}

	return &Dispatcher{
		imax:          imax,
		bigBlock:      big,
		smallBlock:    small,
		bigBlockLimit: limit,
	}
}

// ClaimJob atomically advances the cursor and returns the next
// [start, stop) range. It returns ok=false once the range [0, imax) is
// exhausted.
func (d *Dispatcher) ClaimJob() (start, stop int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cursor >= d.imax {
		return 0, 0, false
	}

	start = d.cursor
	step := d.smallBlock
	if d.cursor < d.bigBlockLimit {
		step = d.bigBlock
	}
	stop = start + step
	if stop > d.imax {
		stop = d.imax
	}
	d.cursor = stop
	return start, stop, true
}

func roundUpToMultiple(n, multiple int) int {
	if multiple <= 1 {
		return n
	}
	rem := n % multiple
	if rem == 0 {
		return n
	}
	return n + (multiple - rem)
}
