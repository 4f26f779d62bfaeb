// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

// D6 applies the sixth mixed difference D2x D2y D2z to precursor f at
// lattice offset (x,y,z) with cell edges (dx,dy,dz): a 3x3x3 stencil
// with per-axis weights (-1, 2, -1), i.e. the negated product of three
// one-dimensional central second differences, one per axis. This turns any of the Newell potential
// precursors (F, G and their axis permutations) into the
// cell-volume-averaged tensor entry Newell derives analytically,
// Nab(x,y,z) = D6[f](x,y,z) / (4*pi*dx*dy*dz) — the positive
// geometric tensor N, not -N; callers that need the engine's -N
// storage convention negate it explicitly.
//
// The same combinator is shared by the tensor builder's analytic
// window fill (NOTES VII) and the periodic tensor summer's per-image
// contributions, so both honor the identical cell-averaging
// convention.
func D6(f func(x, y, z float64) float64, x, y, z, dx, dy, dz float64) float64 {
	var sum float64
	offs := [3]float64{-1, 0, 1}
	wts := [3]float64{-1, 2, -1}
	for ii, oi := range offs {
		for jj, oj := range offs {
			for kk, ok := range offs {
				sum += wts[ii] * wts[jj] * wts[kk] * f(x+oi*dx, y+oj*dy, z+ok*dz)
			}
		}
	}
	return sum
}

// NVolume returns the cell volume used to normalize D6 into a tensor
// entry: Nab = D6[f] / (4*pi*volume).
func NVolume(dx, dy, dz float64) float64 { return dx * dy * dz }
