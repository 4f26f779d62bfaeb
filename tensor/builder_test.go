// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/demag/mesh"
	"github.com/cpmech/demag/workpool"
)

func smallCubeMesh() mesh.Mesh {
	return mesh.Mesh{Rx: 2, Ry: 2, Rz: 2, Dx: 1, Dy: 1, Dz: 1}
}

func TestBuildRejectsNegativeRadiusWithPeriodicMesh(t *testing.T) {
	m := mesh.Mesh{Rx: 4, Ry: 4, Rz: 4, Dx: 1, Dy: 1, Dz: 1, PeriodicX: true}
	cfg := DefaultConfig()
	cfg.AsymptoticRadius = -1
	b := NewBuilder(cfg)
	_, err := b.Build(m)
	require.Error(t, err)
}

func TestBuildProducesFiniteOctant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pool = workpool.NewPool(2, 1)
	b := NewBuilder(cfg)
	tn, err := b.Build(smallCubeMesh())
	require.NoError(t, err)

	for k := 0; k < tn.Az; k++ {
		for j := 0; j < tn.Ay; j++ {
			for i := 0; i < tn.Ax; i++ {
				v := tn.At(i, j, k)
				assert.False(t, isNaN(v.Axx) || isNaN(v.Ayy) || isNaN(v.Azz))
				assert.False(t, isNaN(v.Axy) || isNaN(v.Axz) || isNaN(v.Ayz))
			}
		}
	}
}

func TestBuildCubeTensorIsNonzero(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	tn, err := b.Build(smallCubeMesh())
	require.NoError(t, err)

	// The builder's self-test already enforces the trace identity at
	// the real-space origin (AtReal(0,0,0)); here we check that the
	// frequency-domain tensor didn't collapse to all zeros.
	var nonzero bool
	for _, v := range tn.Data {
		if v.Axx != 0 || v.Ayy != 0 || v.Azz != 0 {
			nonzero = true
			break
		}
	}
	assert.True(t, nonzero)
}

func TestBuildZeroSelfDemagChangesTrace(t *testing.T) {
	cfgA := DefaultConfig()
	cfgB := DefaultConfig()
	cfgB.ZeroSelfDemag = true

	ba := NewBuilder(cfgA)
	bb := NewBuilder(cfgB)

	ta, err := ba.Build(smallCubeMesh())
	require.NoError(t, err)
	tb, err := bb.Build(smallCubeMesh())
	require.NoError(t, err)

	assert.NotEqual(t, ta.Data[0].Axx, tb.Data[0].Axx)
}

func TestWindowSizeClampsToMeshDims(t *testing.T) {
	assert.Equal(t, 4, windowSize(32, 1, 4))
	assert.Equal(t, 1, windowSize(0, 1, 4))
}

func isNaN(v float64) bool { return v != v }
