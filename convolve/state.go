// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package convolve implements the Convolution Engine (§4.6): the
// per-step pipeline that turns a magnetization state and a prebuilt
// frequency-domain demag tensor into the effective field, energy
// density, and torque, with optional accumulation semantics.
package convolve

import "github.com/cpmech/demag/demagerr"

// Mu0 is the vacuum permeability, in SI units (T·m/A), the one
// physical constant the energy and preconditioner formulas need.
const Mu0 = 4e-7 * 3.14159265358979323846

// Vec3 is a Cartesian 3-vector: field values, torques, and unit spin
// directions all share this representation.
type Vec3 [3]float64

// Dot returns the Euclidean inner product of a and b.
func (a Vec3) Dot(b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Scale returns a scaled by s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// State is the magnetization field the engine reads: a unit spin
// direction and a saturation magnetization per cell, both indexed the
// way mesh.Mesh.Index lays cells out (x fastest).
type State struct {
	Spin []Vec3    // m_i, expected unit length (or zero for fixed/empty cells)
	Ms   []float64 // Ms_i, saturation magnetization; zero marks an empty cell
}

// NewState allocates a State for n cells with zeroed spins and Ms.
func NewState(n int) *State {
	return &State{Spin: make([]Vec3, n), Ms: make([]float64, n)}
}

// Validate checks Spin and Ms are both sized for n cells.
func (s *State) Validate(n int) error {
	if len(s.Spin) != n || len(s.Ms) != n {
		return demagerr.NewConfigError("convolve.State.Validate",
			"state sized for %d cells, spin=%d ms=%d", n, len(s.Spin), len(s.Ms))
	}
	return nil
}
