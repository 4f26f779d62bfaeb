// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convolve

import (
	"github.com/cpmech/demag/tensor"
	"github.com/cpmech/demag/workpool"
)

// embed copies the Rx*Ry*Rz field src (x fastest, per mesh.Mesh.Index)
// into a zero-padded Lx*Ly*Lz complex buffer, the real-space operand
// of the forward transform (§4.6 step 2).
func embed(src []float64, Rx, Ry, Rz, Lx, Ly, Lz int) []complex128 {
	dst := make([]complex128, Lx*Ly*Lz)
	for k := 0; k < Rz; k++ {
		for j := 0; j < Ry; j++ {
			srcBase := Rx * (j + Ry*k)
			dstBase := Lx * (j + Ly*k)
			for i := 0; i < Rx; i++ {
				dst[dstBase+i] = complex(src[srcBase+i], 0)
			}
		}
	}
	return dst
}

// extractReal copies the Rx*Ry*Rz real-valued corner of the
// Lx*Ly*Lz padded buffer back out, discarding the residual imaginary
// part left by floating-point round-off (§4.6 step 4).
func extractReal(full []complex128, Rx, Ry, Rz, Lx, Ly, Lz int) []float64 {
	dst := make([]float64, Rx*Ry*Rz)
	for k := 0; k < Rz; k++ {
		for j := 0; j < Ry; j++ {
			srcBase := Lx * (j + Ly*k)
			dstBase := Rx * (j + Ry*k)
			for i := 0; i < Rx; i++ {
				dst[dstBase+i] = real(full[srcBase+i])
			}
		}
	}
	return dst
}

// transformAxis applies a complex FFT (forward if inverse is false,
// else the unnormalized inverse) along the given axis (0=x, 1=y, 2=z)
// to every line of the Lx*Ly*Lz flat array, in place, using pool for
// per-line parallelism and ws to hand each worker its own cached FFT
// plan and scratch line — the same gather/transform/scatter shape the
// tensor builder uses for its own three-axis transform (§4.3 step 8,
// §4.4, §5 "launches a pool-sized team").
func transformAxis(pool *workpool.Pool, ws *workpool.WorkspacePool, data []complex128, Lx, Ly, Lz, axis int, inverse bool) error {
	var lineLen, numLines int
	switch axis {
	case 0:
		lineLen, numLines = Lx, Ly*Lz
	case 1:
		lineLen, numLines = Ly, Lx*Lz
	default:
		lineLen, numLines = Lz, Lx*Ly
	}

	return pool.Run(numLines, func(workerID int, start, stop int) error {
		plan, line := ws.Get(workerID).Line(axis, lineLen)
		for n := start; n < stop; n++ {
			gatherLine(data, Lx, Ly, Lz, axis, n, line)
			if inverse {
				plan.Sequence(line, line)
			} else {
				plan.Coefficients(line, line)
			}
			scatterLine(data, Lx, Ly, Lz, axis, n, line)
		}
		return nil
	})
}

func forward3D(pool *workpool.Pool, ws *workpool.WorkspacePool, data []complex128, Lx, Ly, Lz int) error {
	if err := transformAxis(pool, ws, data, Lx, Ly, Lz, 0, false); err != nil {
		return err
	}
	if err := transformAxis(pool, ws, data, Lx, Ly, Lz, 1, false); err != nil {
		return err
	}
	return transformAxis(pool, ws, data, Lx, Ly, Lz, 2, false)
}

func inverse3D(pool *workpool.Pool, ws *workpool.WorkspacePool, data []complex128, Lx, Ly, Lz int) error {
	if err := transformAxis(pool, ws, data, Lx, Ly, Lz, 2, true); err != nil {
		return err
	}
	if err := transformAxis(pool, ws, data, Lx, Ly, Lz, 1, true); err != nil {
		return err
	}
	return transformAxis(pool, ws, data, Lx, Ly, Lz, 0, true)
}

// gatherLine copies line index n's worth of data along axis into dst.
func gatherLine(data []complex128, Lx, Ly, Lz, axis, n int, dst []complex128) {
	switch axis {
	case 0:
		j, k := n%Ly, n/Ly
		base := Lx * (j + Ly*k)
		copy(dst, data[base:base+Lx])
	case 1:
		i, k := n%Lx, n/Lx
		for j := 0; j < Ly; j++ {
			dst[j] = data[i+Lx*(j+Ly*k)]
		}
	default:
		i, j := n%Lx, n/Lx
		for k := 0; k < Lz; k++ {
			dst[k] = data[i+Lx*(j+Ly*k)]
		}
	}
}

// scatterLine writes dst back into line index n along axis.
func scatterLine(data []complex128, Lx, Ly, Lz, axis, n int, src []complex128) {
	switch axis {
	case 0:
		j, k := n%Ly, n/Ly
		base := Lx * (j + Ly*k)
		copy(data[base:base+Lx], src)
	case 1:
		i, k := n%Lx, n/Lx
		for j := 0; j < Ly; j++ {
			data[i+Lx*(j+Ly*k)] = src[j]
		}
	default:
		i, j := n%Lx, n/Lx
		for k := 0; k < Lz; k++ {
			data[i+Lx*(j+Ly*k)] = src[k]
		}
	}
}

// spectrum holds the six demag-tensor components broadcast from the
// builder's stored octant out to the full Lx*Ly*Lz frequency domain,
// so the pointwise multiply in step 3 can address any (i,j,k) without
// re-deriving the quadrant it lives in each time.
type spectrum struct {
	Lx, Ly, Lz int
	xx, yy, zz []complex128
	xy, xz, yz []complex128
}

// broadcastSpectrum expands t's [0,Ax)x[0,Ay)x[0,Az) octant to the
// full Lx*Ly*Lz domain by the same even/odd axis parities the tensor
// builder used to fold the real-space array down in the first place
// (§3 invariants): the diagonal components are even under any axis
// reflection, and each off-diagonal component is odd under reflection
// of either of its own two axes and even under the third — so
// Âxy(Lx-i,j,k) = -Âxy(i,j,k), Âxy(i,Ly-j,k) = -Âxy(i,j,k), and so on.
// This is the frequency-domain twin of §4.6 step 3's "flipping signs
// of A01, A02, A12 per the parities of the current quadrant".
func broadcastSpectrum(t *tensor.Tensor, Lx, Ly, Lz int) *spectrum {
	s := &spectrum{
		Lx: Lx, Ly: Ly, Lz: Lz,
		xx: make([]complex128, Lx*Ly*Lz),
		yy: make([]complex128, Lx*Ly*Lz),
		zz: make([]complex128, Lx*Ly*Lz),
		xy: make([]complex128, Lx*Ly*Lz),
		xz: make([]complex128, Lx*Ly*Lz),
		yz: make([]complex128, Lx*Ly*Lz),
	}
	for k := 0; k < t.Az; k++ {
		for _, mk := range mirrorSet(k, Lz) {
			for j := 0; j < t.Ay; j++ {
				for _, mj := range mirrorSet(j, Ly) {
					for i := 0; i < t.Ax; i++ {
						v := t.At(i, j, k)
						for _, mi := range mirrorSet(i, Lx) {
							idx := mi.idx + Lx*(mj.idx+Ly*mk.idx)
							sx, sy, sz := sign(mi.neg), sign(mj.neg), sign(mk.neg)
							s.xx[idx] = complex(v.Axx, 0)
							s.yy[idx] = complex(v.Ayy, 0)
							s.zz[idx] = complex(v.Azz, 0)
							s.xy[idx] = complex(v.Axy*sx*sy, 0)
							s.xz[idx] = complex(v.Axz*sx*sz, 0)
							s.yz[idx] = complex(v.Ayz*sy*sz, 0)
						}
					}
				}
			}
		}
	}
	return s
}

type mirrorEntry struct {
	idx int
	neg bool
}

func mirrorSet(i, L int) []mirrorEntry {
	if i == 0 || (L%2 == 0 && i == L/2) {
		return []mirrorEntry{{idx: i, neg: false}}
	}
	return []mirrorEntry{{idx: i, neg: false}, {idx: (L - i) % L, neg: true}}
}

func sign(neg bool) float64 {
	if neg {
		return -1
	}
	return 1
}

// multiply applies Ĥ = Â·M̂ pointwise (the symmetric-matrix-times-
// vector of §4.6 step 3) across the full Lx*Ly*Lz frequency domain.
func multiply(s *spectrum, mx, my, mz []complex128) (hx, hy, hz []complex128) {
	n := len(mx)
	hx = make([]complex128, n)
	hy = make([]complex128, n)
	hz = make([]complex128, n)
	for idx := 0; idx < n; idx++ {
		hx[idx] = s.xx[idx]*mx[idx] + s.xy[idx]*my[idx] + s.xz[idx]*mz[idx]
		hy[idx] = s.xy[idx]*mx[idx] + s.yy[idx]*my[idx] + s.yz[idx]*mz[idx]
		hz[idx] = s.xz[idx]*mx[idx] + s.yz[idx]*my[idx] + s.zz[idx]*mz[idx]
	}
	return
}
