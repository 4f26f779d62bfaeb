// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// Tensor6 holds the six independent entries of a symmetric 3x3 demag
// tensor record: the diagonal Axx, Ayy, Azz and the off-diagonal Axy,
// Axz, Ayz. It is the value every kernel evaluator, the periodic
// summer and the tensor builder pass around.
type Tensor6 struct {
	Axx, Axy, Axz, Ayy, Ayz, Azz float64
}

// Add returns the entrywise sum of t and o.
func (t Tensor6) Add(o Tensor6) Tensor6 {
	return Tensor6{
		Axx: t.Axx + o.Axx,
		Axy: t.Axy + o.Axy,
		Axz: t.Axz + o.Axz,
		Ayy: t.Ayy + o.Ayy,
		Ayz: t.Ayz + o.Ayz,
		Azz: t.Azz + o.Azz,
	}
}

// Scale returns t with every entry multiplied by s.
func (t Tensor6) Scale(s float64) Tensor6 {
	return Tensor6{
		Axx: t.Axx * s,
		Axy: t.Axy * s,
		Axz: t.Axz * s,
		Ayy: t.Ayy * s,
		Ayz: t.Ayz * s,
		Azz: t.Azz * s,
	}
}

// Trace returns Axx+Ayy+Azz.
func (t Tensor6) Trace() float64 { return t.Axx + t.Ayy + t.Azz }

// EvalAt evaluates the full six-entry analytic Newell tensor record at
// offset (x,y,z) for a cell of edges (dx,dy,dz), via D6 of the
// corresponding precursor for each entry. The result is the geometric
// tensor N (positive self-demag trace convention); callers that need
// the engine's -N storage convention negate it explicitly.
func EvalAt(x, y, z, dx, dy, dz float64) Tensor6 {
	norm := 1.0 / (4 * math.Pi * NVolume(dx, dy, dz))
	return Tensor6{
		Axx: norm * D6(F, x, y, z, dx, dy, dz),
		Ayy: norm * D6(Fyy, x, y, z, dx, dy, dz),
		Azz: norm * D6(Fzz, x, y, z, dx, dy, dz),
		Axy: norm * D6(G, x, y, z, dx, dy, dz),
		Axz: norm * D6(Gxz, x, y, z, dx, dy, dz),
		Ayz: norm * D6(Gyz, x, y, z, dx, dy, dz),
	}
}

// EvalAsymptotic evaluates the full six-entry asymptotic tensor record
// at offset (x,y,z) using one AsymptoticFamily per axis, all sharing
// the same geometry, error tolerance and order.
func EvalAsymptotic(x, y, z, dx, dy, dz, errorTol float64, order int) Tensor6 {
	return Tensor6{
		Axx: NewAsymptoticFamily(AxisXX, dx, dy, dz, errorTol, order).Asymptotic(x, y, z),
		Ayy: NewAsymptoticFamily(AxisYY, dx, dy, dz, errorTol, order).Asymptotic(x, y, z),
		Azz: NewAsymptoticFamily(AxisZZ, dx, dy, dz, errorTol, order).Asymptotic(x, y, z),
		Axy: NewAsymptoticFamily(AxisXY, dx, dy, dz, errorTol, order).Asymptotic(x, y, z),
		Axz: NewAsymptoticFamily(AxisXZ, dx, dy, dz, errorTol, order).Asymptotic(x, y, z),
		Ayz: NewAsymptoticFamily(AxisYZ, dx, dy, dz, errorTol, order).Asymptotic(x, y, z),
	}
}
