// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workpool

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherCoversFullRangeExactlyOnce(t *testing.T) {
	d := NewDispatcher(1000, 4, 8)
	covered := make([]bool, 1000)
	for {
		start, stop, ok := d.ClaimJob()
		if !ok {
			break
		}
		for i := start; i < stop; i++ {
			assert.False(t, covered[i], "index %d claimed twice", i)
			covered[i] = true
		}
	}
	for i, c := range covered {
		assert.True(t, c, "index %d never claimed", i)
	}
}

func TestDispatcherEmptyRangeAfterExhaustion(t *testing.T) {
	d := NewDispatcher(10, 2, 1)
	for {
		_, _, ok := d.ClaimJob()
		if !ok {
			break
		}
	}
	_, _, ok := d.ClaimJob()
	assert.False(t, ok)
}

func TestPoolRunCoversRangeUnderConcurrency(t *testing.T) {
	const n = 10007
	var mu sync.Mutex
	seen := make([]int, 0, n)

	p := NewPool(8, 16)
	err := p.Run(n, func(workerID, start, stop int) error {
		mu.Lock()
		for i := start; i < stop; i++ {
			seen = append(seen, i)
		}
		mu.Unlock()
		return nil
	})
	assert.NoError(t, err)

	sort.Ints(seen)
	assert.Equal(t, n, len(seen))
	for i, v := range seen {
		assert.Equal(t, i, v)
	}
}

func TestPoolRunPropagatesError(t *testing.T) {
	p := NewPool(4, 4)
	err := p.Run(100, func(workerID, start, stop int) error {
		if start == 0 {
			return assertErr
		}
		return nil
	})
	assert.ErrorIs(t, err, assertErr)
}

var assertErr = assertError("boom")

type assertError string

func (e assertError) Error() string { return string(e) }

func TestWorkspacePoolLazyPerWorker(t *testing.T) {
	wp := NewWorkspacePool(4)
	ws0 := wp.Get(0)
	ws0again := wp.Get(0)
	assert.Same(t, ws0, ws0again)
	ws1 := wp.Get(1)
	assert.NotSame(t, ws0, ws1)
}

func TestWorkspaceLineReusesPlanAtSameLength(t *testing.T) {
	ws := &Workspace{}
	plan1, line1 := ws.Line(0, 16)
	plan2, line2 := ws.Line(0, 16)
	assert.Same(t, plan1, plan2)
	assert.Len(t, line2, 16)
	line1[0] = 1 // confirm line2 is the same backing buffer, not a fresh one
	assert.Equal(t, complex(1, 0), line2[0])
}

func TestWorkspaceLineRebuildsOnLengthChange(t *testing.T) {
	ws := &Workspace{}
	plan1, _ := ws.Line(1, 8)
	plan2, line2 := ws.Line(1, 32)
	assert.NotSame(t, plan1, plan2)
	assert.Len(t, line2, 32)
}
