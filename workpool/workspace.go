// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workpool

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// cacheLineComplex128 is the number of complex128 values (16 bytes
// each) that fit in a typical 64-byte cache line.
const cacheLineComplex128 = 4

// numAxes is the three transform axes (x, y, z) a Workspace caches a
// plan and scratch line for.
const numAxes = 3

// Workspace holds one worker's per-axis FFT plans and line scratch
// buffers (§4.4): the tensor builder and the convolution engine both
// drive a three-axis transform over a flat grid, one worker per
// contiguous block of lines, and every worker needs its own plan so
// no two goroutines share FFT state. A plan/buffer pair is built
// lazily per axis, on whatever line length that axis turns out to
// need, and rebuilt only if a later call asks for a different length
// (the tensor builder and the convolution engine always transform the
// same mesh's axes, so in practice this happens once).
type Workspace struct {
	plans [numAxes]*fourier.CmplxFFT
	lines [numAxes][]complex128
}

// Line returns axis's cached FFT plan and a scratch line buffer of
// exactly lineLen, allocating both if this is the first call for that
// axis or the first call at this length. The backing array is
// over-allocated to a cache-line-padded capacity so adjacent workers'
// line buffers don't land in the same cache line.
func (w *Workspace) Line(axis, lineLen int) (*fourier.CmplxFFT, []complex128) {
	if w.plans[axis] == nil || w.plans[axis].Len() != lineLen {
		w.plans[axis] = fourier.NewCmplxFFT(lineLen)
		w.lines[axis] = make([]complex128, padCacheLine(lineLen))[:lineLen]
	}
	return w.plans[axis], w.lines[axis]
}

// padCacheLine rounds n up to a multiple of a cache line's worth of
// complex128 values, then nudges it by one extra cache line if the
// result would otherwise be a power-of-two multiple of the cache line
// (a stride pattern prone to L1 set-associativity aliasing).
func padCacheLine(n int) int {
	p := roundUpToMultiple(n, cacheLineComplex128)
	if p == 0 {
		p = cacheLineComplex128
	}
	if isPowerOfTwoMultiple(p, cacheLineComplex128) {
		p += cacheLineComplex128
	}
	return p
}

func isPowerOfTwoMultiple(n, unit int) bool {
	q := n / unit
	return q > 0 && q&(q-1) == 0
}

// WorkspacePool lends each worker its own Workspace, created on first
// use and reused thereafter -- the explicit, owned replacement for a
// "locker object keyed by string in a global map" (§9 Design Notes).
type WorkspacePool struct {
	mu    sync.Mutex
	slots []*Workspace
}

// NewWorkspacePool preallocates n worker slots, left nil until first
// touch.
func NewWorkspacePool(n int) *WorkspacePool {
	if n < 1 {
		n = 1
	}
	return &WorkspacePool{slots: make([]*Workspace, n)}
}

// Get returns worker workerID's workspace, allocating it on first
// touch. Each worker index is only ever accessed by its own goroutine
// within a Pool.Run stage; the mutex is taken on every call and guards
// the slot lookup together with the first-touch allocation.
func (wp *WorkspacePool) Get(workerID int) *Workspace {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.slots[workerID] == nil {
		wp.slots[workerID] = &Workspace{}
	}
	return wp.slots[workerID]
}
