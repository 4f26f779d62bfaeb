// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package precond

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/demag/convolve"
	"github.com/cpmech/demag/mesh"
)

func TestIncrementCubeIsIsotropic(t *testing.T) {
	m := mesh.Mesh{Rx: 1, Ry: 1, Rz: 1, Dx: 1e-9, Dy: 1e-9, Dz: 1e-9}
	ms := []float64{8e5}
	out := make([]convolve.Vec3, 1)

	require.NoError(t, Increment(m, ms, out))

	for _, v := range out[0] {
		assert.False(t, math.IsNaN(v))
		assert.Greater(t, v, 0.0)
	}
	assert.InDelta(t, out[0][0], out[0][1], out[0][0]*1e-6)
	assert.InDelta(t, out[0][1], out[0][2], out[0][1]*1e-6)
}

func TestIncrementAccumulatesAcrossCalls(t *testing.T) {
	m := mesh.Mesh{Rx: 1, Ry: 1, Rz: 1, Dx: 1e-9, Dy: 1e-9, Dz: 1e-9}
	ms := []float64{8e5}
	out := make([]convolve.Vec3, 1)

	require.NoError(t, Increment(m, ms, out))
	once := out[0]
	require.NoError(t, Increment(m, ms, out))

	assert.InDelta(t, 2*once[0], out[0][0], math.Abs(once[0])*1e-9)
}

func TestIncrementRejectsMismatchedBuffers(t *testing.T) {
	m := mesh.Mesh{Rx: 2, Ry: 2, Rz: 2, Dx: 1e-9, Dy: 1e-9, Dz: 1e-9}
	err := Increment(m, []float64{8e5}, make([]convolve.Vec3, 1))
	require.Error(t, err)
}

func TestIncrementPeriodicUsesSummer(t *testing.T) {
	m := mesh.Mesh{Rx: 4, Ry: 4, Rz: 4, Dx: 1e-9, Dy: 1e-9, Dz: 1e-9, PeriodicX: true}
	n := m.NumCells()
	ms := make([]float64, n)
	for i := range ms {
		ms[i] = 8e5
	}
	out := make([]convolve.Vec3, n)
	require.NoError(t, Increment(m, ms, out))
	for _, v := range out[0] {
		assert.False(t, math.IsNaN(v))
	}
}
