// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/demag/mesh"
)

// Dump must write the geometric tensor N, not the FFT-scaled, sign-
// flipped Â: for a single non-periodic cube cell the origin octant
// entry's trace (Nxx+Nyy+Nzz) is 1, regardless of the mesh's FFT
// padding, while the corresponding Â entry is scaled by -1/(Lx*Ly*Lz).
func TestDumpWritesGeometricTensorNotScaledSpectrum(t *testing.T) {
	m := mesh.Mesh{Rx: 1, Ry: 1, Rz: 1, Dx: 1, Dy: 1, Dz: 1}
	b := NewBuilder(DefaultConfig())
	tn, err := b.Build(m)
	require.NoError(t, err)

	real := tn.AtReal(0, 0, 0)
	assert.InDelta(t, 1.0, real.Axx+real.Ayy+real.Azz, 1e-6)

	path := filepath.Join(t.TempDir(), "tensor.bin")
	require.NoError(t, tn.Dump(path, SaveFormatBinary64, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Skip the text header (five '#'-prefixed lines) and read the
	// first record's six float64 values.
	body := data
	for i := 0; i < 5; i++ {
		idx := indexOfNewline(body)
		body = body[idx+1:]
	}
	var got [6]float64
	for i := range got {
		got[i] = float64frombits(body[i*8 : i*8+8])
	}

	assert.InDelta(t, real.Axx, got[0], 1e-9)
	assert.InDelta(t, real.Axy, got[1], 1e-9)
	assert.InDelta(t, real.Axz, got[2], 1e-9)
	assert.InDelta(t, real.Ayy, got[3], 1e-9)
	assert.InDelta(t, real.Ayz, got[4], 1e-9)
	assert.InDelta(t, real.Azz, got[5], 1e-9)
}

func TestDumpNoneSkipsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tensor.bin")
	tn := NewTensor(1, 1, 1)
	require.NoError(t, tn.Dump(path, SaveFormatNone, mesh.Mesh{Rx: 1, Ry: 1, Rz: 1, Dx: 1, Dy: 1, Dz: 1}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func indexOfNewline(b []byte) int {
	for i, c := range b {
		if c == '\n' {
			return i
		}
	}
	return len(b) - 1
}

func float64frombits(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
