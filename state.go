// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demag

import "github.com/cpmech/demag/convolve"

// Vec3, State, Request and Output are re-exported from convolve so
// callers assemble a compute_energy call entirely in terms of this
// package.
type (
	Vec3    = convolve.Vec3
	State   = convolve.State
	Request = convolve.Request
	Output  = convolve.Output
)

// NewState allocates a State for n cells.
func NewState(n int) *State { return convolve.NewState(n) }
