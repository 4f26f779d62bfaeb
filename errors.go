// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package demag implements the OOMMF-style demagnetization field
// engine: a mesh-bound, Fourier-convolution-based magnetostatics
// operator exposing compute_energy and increment_preconditioner to an
// embedding micromagnetic solver.
package demag

import "github.com/cpmech/demag/demagerr"

// Error kinds re-exported from demagerr as aliases (§7), so callers
// only ever need to import this root package.
type (
	ConfigError    = demagerr.ConfigError
	ResourceError  = demagerr.ResourceError
	IoError        = demagerr.IoError
	InvariantError = demagerr.InvariantError
)
