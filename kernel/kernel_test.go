// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// F and G must vanish at the origin: there is no well-defined potential
// contribution from a cell onto itself in these raw precursors (the
// origin singularity is handled separately by the self-demag closed
// form).
func TestNewellPrecursorsAtOrigin(t *testing.T) {
	assert.Equal(t, 0.0, F(0, 0, 0))
	assert.Equal(t, 0.0, G(0, 0, 0))
}

// F is even under (y,z) -> (-y,-z) and under independent sign flip of
// each of y and z combined appropriately; check the specific symmetry
// the tensor builder relies on: f(x,y,z) = f(x,-y,z) is false in
// general (f carries y through an odd asinh term) but f(x,y,z)
// evaluated at (-x,y,z) should equal f(x,y,z) up to known relations.
// Here we check the weaker, directly load-bearing property: f is
// symmetric under simultaneous negation of all three arguments is not
// assumed; instead check f(x,y,z) is real and finite away from the
// origin for a representative offset.
func TestNewellFFinite(t *testing.T) {
	v := F(1.5, 2.5, 3.5)
	assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
}

func TestSelfDemagTraceSumsToOne(t *testing.T) {
	cases := [][3]float64{
		{1, 1, 1},
		{1e-9, 1e-9, 1e-9},
		{64, 4, 4},
		{2, 3, 5},
	}
	for _, c := range cases {
		nx := SelfDemagNx(c[0], c[1], c[2])
		ny := SelfDemagNy(c[0], c[1], c[2])
		nz := SelfDemagNz(c[0], c[1], c[2])
		assert.InDelta(t, 1.0, nx+ny+nz, 1e-9)
		assert.True(t, nx > 0 && ny > 0 && nz > 0)
	}
}

func TestSelfDemagCubeIsIsotropic(t *testing.T) {
	nx := SelfDemagNx(1, 1, 1)
	ny := SelfDemagNy(1, 1, 1)
	nz := SelfDemagNz(1, 1, 1)
	assert.InDelta(t, 1.0/3.0, nx, 1e-6)
	assert.InDelta(t, 1.0/3.0, ny, 1e-6)
	assert.InDelta(t, 1.0/3.0, nz, 1e-6)
}

func TestSelfDemagElongatedBarXIsSmall(t *testing.T) {
	// Long bar along x: self-demag factor along the long axis should
	// be much smaller than the transverse factors (S3 of spec.md: long
	// bar demag factor along the long axis is small).
	nx := SelfDemagNx(64, 4, 4)
	ny := SelfDemagNy(64, 4, 4)
	nz := SelfDemagNz(64, 4, 4)
	assert.True(t, nx < ny)
	assert.True(t, nx < nz)
}

func TestAsymptoticDecaysWithDistance(t *testing.T) {
	fam := NewAsymptoticFamily(AxisXX, 1, 1, 1, 1e-10, 1)
	near := math.Abs(fam.Asymptotic(40, 0, 0))
	far := math.Abs(fam.Asymptotic(80, 0, 0))
	assert.True(t, far < near)
	// dipole diagonal term along its own axis decays like 1/r^3
	ratio := near / far
	assert.InDelta(t, 8.0, ratio, 0.5)
}

func TestAsymptoticStartIsPositiveAndScalesWithError(t *testing.T) {
	tight := NewAsymptoticFamily(AxisXX, 1, 1, 1, 1e-12, 1)
	loose := NewAsymptoticFamily(AxisXX, 1, 1, 1, 1e-6, 1)
	assert.True(t, tight.GetAsymptoticStart() > loose.GetAsymptoticStart())
}

func TestOffDiagonalAsymptoticVanishesOnAxis(t *testing.T) {
	fam := NewAsymptoticFamily(AxisXY, 1, 1, 1, 1e-10, 1)
	assert.InDelta(t, 0.0, fam.Asymptotic(100, 0, 0), 1e-15)
}

func TestD6DiagonalAgreesWithSelfDemagNearOrigin(t *testing.T) {
	dx, dy, dz := 1.0, 1.0, 1.0
	nxx := D6(F, 0, 0, 0, dx, dy, dz) / (4 * math.Pi * NVolume(dx, dy, dz))
	assert.InDelta(t, SelfDemagNx(dx, dy, dz), nxx, 5e-2)
}

func TestD6OffDiagonalIsFiniteOnDiagonalOffset(t *testing.T) {
	dx, dy, dz := 1.0, 1.0, 1.0
	nxy := D6(G, 1, 1, 0, dx, dy, dz) / (4 * math.Pi * NVolume(dx, dy, dz))
	assert.False(t, math.IsNaN(nxy))
}
