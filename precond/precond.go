// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package precond implements the Preconditioner Hook (§4.7): a cheap
// diagonal estimate of the demag operator, evaluated at zero offset,
// for callers that want a Jacobi-style preconditioner without paying
// for a full convolution step.
package precond

import (
	"github.com/cpmech/demag/convolve"
	"github.com/cpmech/demag/demagerr"
	"github.com/cpmech/demag/kernel"
	"github.com/cpmech/demag/mesh"
	"github.com/cpmech/demag/periodic"
)

// Increment accumulates
// μ0·Ms_i·((Nyy+Nzz), (Nxx+Nzz), (Nxx+Nyy)) into outDiag, one triple
// per cell, where the diagonal N_αα are evaluated at offset zero as
// the self-demag closed forms plus, for each periodic axis, the
// Periodic Tensor Summer's image terms. outDiag is an
// accumulator: repeated calls add rather than overwrite.
func Increment(m mesh.Mesh, msArr []float64, outDiag []convolve.Vec3) error {
	if err := m.Validate(); err != nil {
		return err
	}
	n := m.NumCells()
	if len(msArr) != n || len(outDiag) != n {
		return demagerr.NewConfigError("precond.Increment", "buffers sized for %d cells, got ms=%d diag=%d", n, len(msArr), len(outDiag))
	}

	nxx := kernel.SelfDemagNx(m.Dx, m.Dy, m.Dz)
	nyy := kernel.SelfDemagNy(m.Dx, m.Dy, m.Dz)
	nzz := kernel.SelfDemagNz(m.Dx, m.Dy, m.Dz)

	summers, err := diagonalSummers(m)
	if err != nil {
		return err
	}
	for _, s := range summers {
		v := s.ComputePeriodicHoleTensor(0, 0, 0)
		nxx += v.Axx
		nyy += v.Ayy
		nzz += v.Azz
	}

	for i := 0; i < n; i++ {
		outDiag[i] = outDiag[i].Add(convolve.Vec3{
			convolve.Mu0 * msArr[i] * (nyy + nzz),
			convolve.Mu0 * msArr[i] * (nxx + nzz),
			convolve.Mu0 * msArr[i] * (nxx + nyy),
		})
	}
	return nil
}

// diagonalSummers builds one Periodic Tensor Summer per periodic
// axis, using the engine's default asymptotic radius/error/order — the
// preconditioner is an estimate, so it does not expose these as
// separate tuning knobs.
func diagonalSummers(m mesh.Mesh) ([]*periodic.Summer, error) {
	const (
		defaultRadius = 32.0
		defaultError  = 1e-12
		defaultOrder  = 2
	)
	var out []*periodic.Summer
	add := func(axis periodic.Axis, period int) error {
		s, err := periodic.NewSummer(axis, period, m.Dx, m.Dy, m.Dz, defaultRadius, defaultError, defaultOrder)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	}
	if m.PeriodicX {
		if err := add(periodic.AxisX, m.Rx); err != nil {
			return nil, err
		}
	}
	if m.PeriodicY {
		if err := add(periodic.AxisY, m.Ry); err != nil {
			return nil, err
		}
	}
	if m.PeriodicZ {
		if err := add(periodic.AxisZ, m.Rz); err != nil {
			return nil, err
		}
	}
	return out, nil
}
