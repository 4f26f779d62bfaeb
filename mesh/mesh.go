// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh defines the rectangular mesh descriptor the demag
// engine borrows, read-only, from its caller (§3 Data Model), and the
// derived FFT/tensor-octant dimensions the tensor builder and
// convolution engine are sized from.
package mesh

import (
	"math"

	"github.com/cpmech/demag/demagerr"
)

// Mesh describes an axis-aligned rectangular grid: three positive
// integer dimensions, three positive edge lengths, and a periodicity
// flag per axis (at most two set).
type Mesh struct {
	Rx, Ry, Rz int
	Dx, Dy, Dz float64
	PeriodicX  bool
	PeriodicY  bool
	PeriodicZ  bool
}

// Validate checks the mesh is well formed: positive dimensions and
// edge lengths, at most two periodic axes, and that the derived FFT
// dimensions do not overflow a signed index.
func (m Mesh) Validate() error {
	if m.Rx <= 0 || m.Ry <= 0 || m.Rz <= 0 {
		return demagerr.NewConfigError("mesh.Validate", "dimensions must be positive, got (%d,%d,%d)", m.Rx, m.Ry, m.Rz)
	}
	if m.Dx <= 0 || m.Dy <= 0 || m.Dz <= 0 {
		return demagerr.NewConfigError("mesh.Validate", "edge lengths must be positive, got (%g,%g,%g)", m.Dx, m.Dy, m.Dz)
	}
	periodicCount := 0
	for _, p := range [3]bool{m.PeriodicX, m.PeriodicY, m.PeriodicZ} {
		if p {
			periodicCount++
		}
	}
	if periodicCount > 2 {
		return demagerr.NewConfigError("mesh.Validate", "at most two of three axes may be periodic")
	}

	Lx, Ly, Lz := m.FFTDims()
	product := uint64(Lx) * uint64(Ly) * uint64(Lz)
	if product > uint64(math.MaxInt32) {
		// Conservative overflow guard: the padded FFT grid must fit a
		// signed 32-bit index even on platforms where int is 64-bit,
		// so tensor/spectrum dumps stay portable.
		return demagerr.NewConfigError("mesh.Validate", "FFT dimension product %d exceeds the supported index range", product)
	}
	return nil
}

// CellVolume returns Dx*Dy*Dz.
func (m Mesh) CellVolume() float64 { return m.Dx * m.Dy * m.Dz }

// NumCells returns Rx*Ry*Rz.
func (m Mesh) NumCells() int { return m.Rx * m.Ry * m.Rz }

// Index returns the flat offset of cell (i,j,k) into an
// Rx*Ry*Rz-length array with x fastest.
func (m Mesh) Index(i, j, k int) int { return i + m.Rx*(j+m.Ry*k) }

// FFTDims returns the per-axis FFT logical dimension: the smallest
// FFT-efficient (7-smooth) length >= 2*r for r > 1, else 1.
func (m Mesh) FFTDims() (Lx, Ly, Lz int) {
	return fftSize(m.Rx), fftSize(m.Ry), fftSize(m.Rz)
}

// ComplexDims returns the half-spectrum dimensions produced by a
// real-to-complex x-transform of the padded grid: Cx = Lx/2+1,
// Cy = Ly, Cz = Lz.
func (m Mesh) ComplexDims() (Cx, Cy, Cz int) {
	Lx, Ly, Lz := m.FFTDims()
	return Lx/2 + 1, Ly, Lz
}

// TensorOctantDims returns the dimensions of the stored tensor octant,
// exploiting the three even/odd symmetries of §3: Aa = La/2 + 1.
func (m Mesh) TensorOctantDims() (Ax, Ay, Az int) {
	Lx, Ly, Lz := m.FFTDims()
	return Lx/2 + 1, Ly/2 + 1, Lz/2 + 1
}

// PeriodicAxisCount returns how many of the three axes are periodic.
func (m Mesh) PeriodicAxisCount() int {
	n := 0
	if m.PeriodicX {
		n++
	}
	if m.PeriodicY {
		n++
	}
	if m.PeriodicZ {
		n++
	}
	return n
}

// fftSize returns the smallest 7-smooth (2^a 3^b 5^c 7^d) integer
// greater than or equal to 2*r, the convention FFT libraries use to pick
// efficient transform lengths. r <= 1 maps to logical length 1 (no
// padding needed for a singleton axis).
func fftSize(r int) int {
	if r <= 1 {
		return 1
	}
	n := 2 * r
	for !isSmooth(n) {
		n++
	}
	return n
}

// isSmooth reports whether n's only prime factors are 2, 3, 5 or 7.
func isSmooth(n int) bool {
	for _, p := range [4]int{2, 3, 5, 7} {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}
