// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// Axis selects which tensor entry an AsymptoticFamily evaluates:
//
//	AxisXX, AxisYY, AxisZZ  -- diagonal entries
//	AxisXY, AxisXZ, AxisYZ  -- off-diagonal entries
type Axis int

// The six symmetric tensor entries.
const (
	AxisXX Axis = iota
	AxisYY
	AxisZZ
	AxisXY
	AxisXZ
	AxisYZ
)

// AsymptoticFamily evaluates the asymptotic (multipole) approximation
// of one demag tensor entry for a given cell geometry, plus the radius
// beyond which that approximation meets a target absolute error.
type AsymptoticFamily struct {
	Axis    Axis
	Dx      float64
	Dy      float64
	Dz      float64
	Error   float64
	Order   int
	volume  float64
	shape2  float64 // dx^2+dy^2+dz^2, used by the shape-correction term
}

// NewAsymptoticFamily builds an asymptotic evaluator for the given
// tensor entry and cell geometry. errorTol is the target absolute error
// per entry; order is the maximum multipole order retained (1: dipole
// only; >=2: dipole plus quadrupole shape correction).
func NewAsymptoticFamily(axis Axis, dx, dy, dz, errorTol float64, order int) *AsymptoticFamily {
	if order < 1 {
		order = 1
	}
	return &AsymptoticFamily{
		Axis:   axis,
		Dx:     dx,
		Dy:     dy,
		Dz:     dz,
		Error:  errorTol,
		Order:  order,
		volume: dx * dy * dz,
		shape2: dx*dx + dy*dy + dz*dz,
	}
}

// Asymptotic returns the approximate tensor entry value at offset
// (x,y,z), measured from the source cell center to the field point.
func (a *AsymptoticFamily) Asymptotic(x, y, z float64) float64 {
	r2 := x*x + y*y + z*z
	if r2 <= 0 {
		return 0
	}
	r := math.Sqrt(r2)
	r5 := r2 * r2 * r

	var dipole float64
	switch a.Axis {
	case AxisXX:
		dipole = (2*x*x - y*y - z*z) / r5
	case AxisYY:
		dipole = (2*y*y - x*x - z*z) / r5
	case AxisZZ:
		dipole = (2*z*z - x*x - y*y) / r5
	case AxisXY:
		dipole = 3 * x * y / r5
	case AxisXZ:
		dipole = 3 * x * z / r5
	case AxisYZ:
		dipole = 3 * y * z / r5
	}

	val := -a.volume / (4 * math.Pi) * dipole

	if a.Order >= 2 {
		// Quadrupole-level shape correction: the source cell is not a
		// point dipole, so the leading correction scales with the
		// cell's own extent relative to the separation.
		val *= 1 + a.shape2/(4*r2)
	}

	return val
}

// GetAsymptoticStart returns the offset magnitude, in units of Dx,
// beyond which Asymptotic meets the configured Error tolerance. It is
// derived from the magnitude of the first neglected multipole term,
// which falls off one power of r faster than the retained term.
func (a *AsymptoticFamily) GetAsymptoticStart() float64 {
	if a.Error <= 0 || a.Dx <= 0 {
		return 32 // matches the documented default asymptotic_radius
	}
	// Leading term ~ volume/(4 pi r^3); next order falls off as 1/r^4
	// relative scale set by the cell's own linear extent.
	extent := math.Sqrt(a.shape2)
	if extent <= 0 {
		extent = a.Dx
	}
	r := math.Pow(a.volume*extent/(4*math.Pi*a.Error), 0.25)
	if r < a.Dx {
		r = a.Dx
	}
	return r / a.Dx
}
