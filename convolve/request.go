// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convolve

import (
	"math"

	"github.com/cpmech/demag/demagerr"
	"github.com/cpmech/demag/mesh"
)

// Request is the "oced" flag set of §6: which outputs compute_energy
// should write and/or accumulate. Each pair is independent; both,
// either, or neither may be set.
type Request struct {
	Energy      bool
	EnergyAccum bool
	H           bool
	HAccum      bool
	MxH         bool
	MxHAccum    bool
}

// Output holds the caller-supplied buffers compute_energy fills,
// plus the scalar total energy it always computes. Buffers the
// Request doesn't ask for may be left nil; the engine never
// dereferences one it wasn't told to use.
type Output struct {
	Energy      []float64 // per-cell energy density, overwritten
	EnergyAccum []float64 // per-cell energy density, added into
	H           []Vec3
	HAccum      []Vec3
	MxH         []Vec3
	MxHAccum    []Vec3

	TotalEnergy float64 // sum of Energy[i]*cellVolume, always set
}

// validate checks every buffer the Request enables is sized for n
// cells, per §7's ConfigError class ("non-rectangular mesh handed in"
// generalizes here to "buffers not shaped for the mesh").
func (o *Output) validate(n int, req Request) error {
	checkF := func(name string, want bool, buf []float64) error {
		if want && len(buf) != n {
			return demagerr.NewConfigError("convolve.Output.validate", "%s sized %d, want %d", name, len(buf), n)
		}
		return nil
	}
	checkV := func(name string, want bool, buf []Vec3) error {
		if want && len(buf) != n {
			return demagerr.NewConfigError("convolve.Output.validate", "%s sized %d, want %d", name, len(buf), n)
		}
		return nil
	}
	if err := checkF("Energy", req.Energy, o.Energy); err != nil {
		return err
	}
	if err := checkF("EnergyAccum", req.EnergyAccum, o.EnergyAccum); err != nil {
		return err
	}
	if err := checkV("H", req.H, o.H); err != nil {
		return err
	}
	if err := checkV("HAccum", req.HAccum, o.HAccum); err != nil {
		return err
	}
	if err := checkV("MxH", req.MxH, o.MxH); err != nil {
		return err
	}
	if err := checkV("MxHAccum", req.MxHAccum, o.MxHAccum); err != nil {
		return err
	}
	return nil
}

// energyDensityErrorEstimate computes
// ½·ε_mach·μ0·max(Ms)²·(log2(Cx)+log2(Cy)+log2(Cz)) (§4.6 step 1):
// each of the Cx*Cy*Cz butterfly stages contributes one machine
// epsilon's worth of rounding, accumulated in quadrature-free worst
// case across the three axes' transform depths.
func energyDensityErrorEstimate(m mesh.Mesh, maxMs float64) float64 {
	Cx, Cy, Cz := m.ComplexDims()
	depth := log2(Cx) + log2(Cy) + log2(Cz)
	return 0.5 * (math.Nextafter(1, 2) - 1) * Mu0 * maxMs * maxMs * depth
}

func log2(n int) float64 {
	if n < 1 {
		return 0
	}
	return math.Log2(float64(n))
}
