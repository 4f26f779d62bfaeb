// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the analytic Newell/Williams/Dunlop demag
// tensor precursors and the asymptotic (multipole) tensor families used
// to fill the demag tensor outside the analytic radius.
package kernel

import "math"

// F evaluates Newell's f(x,y,z) potential-like precursor. Nxx, Nyy and
// Nzz are each a sixth mixed difference of f evaluated on a permutation
// of (x,y,z); see Fxx, Fyy, Fzz.
//
// Newell, Williams & Dunlop (1993), "A generalization of the
// demagnetizing tensor for nonuniform magnetization", J. Geophys. Res.
func F(x, y, z float64) float64 {
	x2, y2, z2 := x*x, y*y, z*z
	r2 := x2 + y2 + z2
	if r2 <= 0 {
		return 0
	}
	R := math.Sqrt(r2)

	var t1, t2, t3 float64
	if d := math.Hypot(x, z); d > 0 {
		t1 = 0.5 * y * (z2 - x2) * math.Asinh(y/d)
	}
	if d := math.Hypot(x, y); d > 0 {
		t2 = 0.5 * z * (y2 - x2) * math.Asinh(z/d)
	}
	if x != 0 && R > 0 {
		t3 = -x * y * z * math.Atan(y*z/(x*R))
	}
	t4 := (2*x2 - y2 - z2) * R / 6

	return t1 + t2 + t3 + t4
}

// Fyy is F evaluated with the axes cyclically permuted so that it
// plays the role of f for the Nyy diagonal entry.
func Fyy(x, y, z float64) float64 { return F(y, z, x) }

// Fzz is F evaluated with the axes cyclically permuted so that it
// plays the role of f for the Nzz diagonal entry.
func Fzz(x, y, z float64) float64 { return F(z, x, y) }

// G evaluates Newell's mixed off-diagonal precursor g(x,y,z), used
// (after permutation) for Nxy, Nxz and Nyz.
func G(x, y, z float64) float64 {
	x2, y2, z2 := x*x, y*y, z*z
	r2 := x2 + y2 + z2
	if r2 <= 0 {
		return 0
	}
	R := math.Sqrt(r2)

	var t1, t2, t3 float64
	if d := math.Hypot(x, y); d > 0 {
		t1 = x * y * z * math.Asinh(z/d)
	}
	if d := math.Hypot(y, z); d > 0 {
		t2 = (y / 6) * (3*z2 - y2) * math.Asinh(x/d)
	}
	if d := math.Hypot(x, z); d > 0 {
		t3 = (x / 6) * (3*z2 - x2) * math.Asinh(y/d)
	}

	var u1, u2, u3 float64
	if z != 0 {
		u1 = (z2 * z / 6) * math.Atan(x*y/(z*R))
	}
	if y != 0 {
		u2 = (z * y2 / 2) * math.Atan(x*z/(y*R))
	}
	if x != 0 {
		u3 = (z * x2 / 2) * math.Atan(y*z/(x*R))
	}

	return t1 + t2 + t3 - u1 - u2 - u3 - x*y*R/3
}

// Gxz is G evaluated with the axes permuted to play the role of the
// off-diagonal precursor for Nxz.
func Gxz(x, y, z float64) float64 { return G(x, z, y) }

// Gyz is G evaluated with the axes permuted to play the role of the
// off-diagonal precursor for Nyz.
func Gyz(x, y, z float64) float64 { return G(y, z, x) }
