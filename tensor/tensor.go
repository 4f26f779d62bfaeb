// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tensor orchestrates the one-time construction of the
// frequency-domain demag tensor array Â (§4.3): it fills a real-space
// tensor using the kernel package's analytic formula inside the
// analytic radius and the asymptotic form outside it, folds in
// periodic images where configured, then transforms the result into
// the octant-symmetric Â the convolution engine multiplies against
// each step.
package tensor

import "github.com/cpmech/demag/kernel"

// Tensor is the frequency-domain demag tensor array Â: one octant of
// size Ax*Ay*Az, exploiting the three symmetries of §3. Storage is a
// single flat owned buffer with explicit strides, replacing the
// source's manual array-of-pointers (§9 Design Notes).
type Tensor struct {
	Ax, Ay, Az int
	Data       []kernel.Tensor6

	// RealSpace holds the same octant's geometric tensor N, captured
	// before the forward FFT and the -N/FFT-scale folded into Data —
	// what Dump writes out (§6 "the engine removes the absorbed FFT
	// scale").
	RealSpace []kernel.Tensor6
}

// NewTensor allocates an Ax*Ay*Az octant, zero-initialized.
func NewTensor(Ax, Ay, Az int) *Tensor {
	n := Ax * Ay * Az
	return &Tensor{Ax: Ax, Ay: Ay, Az: Az, Data: make([]kernel.Tensor6, n), RealSpace: make([]kernel.Tensor6, n)}
}

// Index returns the flat offset of octant entry (i,j,k), with i
// fastest so each row along the innermost axis is contiguous. Rows are
// packed with no padding, so row boundaries are not cache-line aligned.
func (t *Tensor) Index(i, j, k int) int { return i + t.Ax*(j+t.Ay*k) }

// At returns the tensor record at octant entry (i,j,k).
func (t *Tensor) At(i, j, k int) kernel.Tensor6 { return t.Data[t.Index(i, j, k)] }

// Set stores the tensor record at octant entry (i,j,k).
func (t *Tensor) Set(i, j, k int, v kernel.Tensor6) { t.Data[t.Index(i, j, k)] = v }

// AtReal returns the geometric tensor N at octant entry (i,j,k).
func (t *Tensor) AtReal(i, j, k int) kernel.Tensor6 { return t.RealSpace[t.Index(i, j, k)] }

// SetReal stores the geometric tensor N at octant entry (i,j,k).
func (t *Tensor) SetReal(i, j, k int, v kernel.Tensor6) { t.RealSpace[t.Index(i, j, k)] = v }
