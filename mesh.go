// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demag

import "github.com/cpmech/demag/mesh"

// Mesh is the engine's rectangular mesh descriptor (§3 Data Model),
// re-exported so callers need not import the mesh package directly.
type Mesh = mesh.Mesh
