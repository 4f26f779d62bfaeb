// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/demag/mesh"
	"github.com/cpmech/demag/tensor"
	"github.com/cpmech/demag/workpool"
)

func cubeMesh(r int) mesh.Mesh {
	return mesh.Mesh{Rx: r, Ry: r, Rz: r, Dx: 1e-9, Dy: 1e-9, Dz: 1e-9}
}

// TestComputeEnergyCubeSelfDemag checks scenario S1: a single cube
// cell magnetized along x sees H roughly -(Ms/3, 0, 0) and a matching
// energy density.
func TestComputeEnergyCubeSelfDemag(t *testing.T) {
	m := cubeMesh(1)
	ms := 8e5

	state := NewState(1)
	state.Spin[0] = Vec3{1, 0, 0}
	state.Ms[0] = ms

	e := New(tensor.DefaultConfig(), workpool.NewPool(2, 1))
	out := &Output{
		H:      make([]Vec3, 1),
		Energy: make([]float64, 1),
	}
	req := Request{H: true, Energy: true}

	require.NoError(t, e.ComputeEnergy(m, state, req, out))

	assert.InDelta(t, -ms/3, out.H[0][0], ms*0.05)
	assert.InDelta(t, 0, out.H[0][1], ms*0.01)
	assert.InDelta(t, 0, out.H[0][2], ms*0.01)

	wantEnergy := 0.5 * Mu0 * ms * ms * (1.0 / 3.0) * m.CellVolume()
	assert.InDelta(t, wantEnergy, out.TotalEnergy, wantEnergy*0.1)
}

func TestComputeEnergyEmptyCellYieldsZeroOutputs(t *testing.T) {
	m := cubeMesh(2)
	n := m.NumCells()
	state := NewState(n)
	state.Ms[0] = 0
	for i := 1; i < n; i++ {
		state.Spin[i] = Vec3{0, 0, 1}
		state.Ms[i] = 8e5
	}

	e := New(tensor.DefaultConfig(), workpool.NewPool(2, 1))
	out := &Output{
		H:   make([]Vec3, n),
		MxH: make([]Vec3, n),
	}
	req := Request{H: true, MxH: true}
	require.NoError(t, e.ComputeEnergy(m, state, req, out))

	assert.Equal(t, Vec3{}, out.H[0])
	assert.Equal(t, Vec3{}, out.MxH[0])
}

func TestComputeEnergyRejectsMismatchedBuffers(t *testing.T) {
	m := cubeMesh(2)
	state := NewState(m.NumCells())
	e := New(tensor.DefaultConfig(), nil)
	out := &Output{H: make([]Vec3, 1)}
	err := e.ComputeEnergy(m, state, Request{H: true}, out)
	require.Error(t, err)
}

func TestMeshChangeTriggersExactlyOneRebuild(t *testing.T) {
	e := New(tensor.DefaultConfig(), workpool.NewPool(2, 1))
	m1 := cubeMesh(1)
	m2 := cubeMesh(2)

	state1 := NewState(m1.NumCells())
	state1.Spin[0] = Vec3{0, 0, 1}
	state1.Ms[0] = 8e5
	out1 := &Output{}

	require.NoError(t, e.ComputeEnergy(m1, state1, Request{}, out1))
	require.NoError(t, e.ComputeEnergy(m1, state1, Request{}, out1))
	assert.Equal(t, 1, e.BuildCount())

	state2 := NewState(m2.NumCells())
	for i := range state2.Spin {
		state2.Spin[i] = Vec3{0, 0, 1}
		state2.Ms[i] = 8e5
	}
	out2 := &Output{}
	require.NoError(t, e.ComputeEnergy(m2, state2, Request{}, out2))
	assert.Equal(t, 2, e.BuildCount())
}

func TestInitResetsArmedState(t *testing.T) {
	e := New(tensor.DefaultConfig(), workpool.NewPool(2, 1))
	m := cubeMesh(1)
	state := NewState(1)
	state.Spin[0] = Vec3{1, 0, 0}
	state.Ms[0] = 8e5
	out := &Output{}

	require.NoError(t, e.ComputeEnergy(m, state, Request{}, out))
	assert.Equal(t, 1, e.BuildCount())

	e.Init()
	require.NoError(t, e.ComputeEnergy(m, state, Request{}, out))
	assert.Equal(t, 2, e.BuildCount())
}

func TestCompensatedSumMatchesExactTotal(t *testing.T) {
	var cs compensatedSum
	var plain float64
	for i := 0; i < 100000; i++ {
		cs.Add(0.1)
		plain += 0.1
	}
	assert.InDelta(t, 10000.0, cs.Value(), 1e-6)
}
