// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"

	"github.com/cpmech/demag/demagerr"
	"github.com/cpmech/demag/kernel"
	"github.com/cpmech/demag/mesh"
	"github.com/cpmech/demag/periodic"
	"github.com/cpmech/demag/workpool"
)

// SaveFormat enumerates the tensor-dump body encodings of §6.
type SaveFormat int

const (
	// SaveFormatNone disables tensor dumping.
	SaveFormatNone SaveFormat = iota
	// SaveFormatBinary32 writes IEEE754 single-precision values.
	SaveFormatBinary32
	// SaveFormatBinary64 writes IEEE754 double-precision values.
	SaveFormatBinary64
	// SaveFormatText writes printf-style decimal text.
	SaveFormatText
)

// Config gathers the tensor builder's tuning knobs (§6 `new(config)`).
type Config struct {
	// AsymptoticRadius is the boundary, in units of (dx*dy*dz)^(1/3),
	// between analytic and asymptotic tensor fill. Defaults to 32; a
	// negative value disables the asymptotic form entirely for
	// non-periodic meshes (rejected for periodic meshes: a negative
	// radius combined with periodic images is ambiguous, so it is
	// disallowed outright).
	AsymptoticRadius float64

	// CacheSizeKB is carried in Config for a single source of tuning
	// truth (§6); neither the tensor builder nor the convolution engine
	// reads it, so it has no effect on block sizes or results.
	CacheSizeKB int

	// ZeroSelfDemag subtracts 1/3 from each diagonal entry at the
	// origin, making H_self = 0 for a cubic cell.
	ZeroSelfDemag bool

	// DemagTensorError is the target absolute error per tensor entry,
	// feeding the asymptotic order/radius selection.
	DemagTensorError float64

	// AsymptoticOrder is the maximum multipole order retained.
	AsymptoticOrder int

	// Pool is the shared worker team the builder stages its analytic
	// window fill and its three axes of FFTs through. A nil Pool
	// builds serially (team size one).
	Pool *workpool.Pool
}

// DefaultConfig returns the documented defaults of §6.
func DefaultConfig() Config {
	return Config{
		AsymptoticRadius: 32,
		CacheSizeKB:      1024,
		ZeroSelfDemag:    false,
		DemagTensorError: 1e-12,
		AsymptoticOrder:  2,
	}
}

// Builder constructs Â for a given mesh.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder configured with cfg.
func NewBuilder(cfg Config) *Builder { return &Builder{cfg: cfg} }

// Build fills and transforms Â for mesh m.
func (b *Builder) Build(m mesh.Mesh) (*Tensor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if b.cfg.AsymptoticRadius < 0 && m.PeriodicAxisCount() > 0 {
		return nil, demagerr.NewConfigError("tensor.Build", "asymptotic_radius < 0 is not supported for periodic meshes")
	}

	pool := b.cfg.Pool
	if pool == nil {
		pool = workpool.NewPool(1, 1)
	}

	Lx, Ly, Lz := m.FFTDims()
	Ax, Ay, Az := m.TensorOctantDims()

	arad := b.cfg.AsymptoticRadius * math.Cbrt(m.CellVolume())
	wx := windowSize(arad, m.Dx, m.Rx)
	wy := windowSize(arad, m.Dy, m.Ry)
	wz := windowSize(arad, m.Dz, m.Rz)

	summers, err := buildSummers(m, b.cfg.AsymptoticRadius, b.cfg.DemagTensorError, b.cfg.AsymptoticOrder)
	if err != nil {
		return nil, err
	}

	full, err := allocFullDomain(Lx, Ly, Lz)
	if err != nil {
		return nil, err
	}

	err = pool.Run(Ax, func(_ int, istart, istop int) error {
		for i := istart; i < istop; i++ {
			x := float64(i) * m.Dx
			for j := 0; j < Ay; j++ {
				y := float64(j) * m.Dy
				for k := 0; k < Az; k++ {
					z := float64(k) * m.Dz

					var val kernel.Tensor6
					switch {
					case i < wx && j < wy && k < wz:
						val = kernel.EvalAt(x, y, z, m.Dx, m.Dy, m.Dz)
					case b.cfg.AsymptoticRadius >= 0:
						val = kernel.EvalAsymptotic(x, y, z, m.Dx, m.Dy, m.Dz, b.cfg.DemagTensorError, b.cfg.AsymptoticOrder)
					default:
						val = kernel.EvalAt(x, y, z, m.Dx, m.Dy, m.Dz)
					}

					for _, s := range summers {
						val = val.Add(s.ComputePeriodicHoleTensor(x, y, z))
					}

					mirrorAssign(full, Lx, Ly, Lz, i, j, k, val)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	applySelfDemagOrigin(full, Lx, Ly, Lz, m, b.cfg.ZeroSelfDemag)

	t := NewTensor(Ax, Ay, Az)
	captureRealOctant(full, t, Lx, Ly, Lz)

	if err := transform3D(pool, full, Lx, Ly, Lz); err != nil {
		return nil, err
	}

	extractOctant(full, t, Lx, Ly, Lz, Lx*Ly*Lz)

	if err := selfTest(t, m, b.cfg.ZeroSelfDemag); err != nil {
		return nil, err
	}

	return t, nil
}

// windowSize computes wa = ceil(0.5 + arad/da), clamped to [1, ra]
// (§4.3 step 2), where arad is the asymptotic radius as a length in the
// same units as the cell edge da. A negative arad disables the asymptotic form, so the
// whole non-periodic domain is treated as the analytic window.
func windowSize(arad, da float64, ra int) int {
	if arad < 0 {
		return ra
	}
	w := int(math.Ceil(0.5 + arad/da))
	if w > ra {
		w = ra
	}
	if w < 1 {
		w = 1
	}
	return w
}

func buildSummers(m mesh.Mesh, arad, errorTol float64, order int) ([]*periodic.Summer, error) {
	var out []*periodic.Summer
	if m.PeriodicX {
		s, err := periodic.NewSummer(periodic.AxisX, m.Rx, m.Dx, m.Dy, m.Dz, arad, errorTol, order)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if m.PeriodicY {
		s, err := periodic.NewSummer(periodic.AxisY, m.Ry, m.Dx, m.Dy, m.Dz, arad, errorTol, order)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if m.PeriodicZ {
		s, err := periodic.NewSummer(periodic.AxisZ, m.Rz, m.Dx, m.Dy, m.Dz, arad, errorTol, order)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// fullComponents indexes the six real-space mirror-extended arrays.
const (
	compXX = iota
	compYY
	compZZ
	compXY
	compXZ
	compYZ
	numComponents
)

func allocFullDomain(Lx, Ly, Lz int) ([numComponents][]complex128, error) {
	var full [numComponents][]complex128
	n := Lx * Ly * Lz
	if n <= 0 {
		return full, demagerr.NewResourceError("tensor.allocFullDomain", "non-positive FFT domain size")
	}
	for c := 0; c < numComponents; c++ {
		full[c] = make([]complex128, n)
	}
	return full, nil
}

type mirrorIndex struct {
	idx int
	neg bool
}

func mirrorPair(i, L int) []mirrorIndex {
	if i == 0 || (L%2 == 0 && i == L/2) {
		return []mirrorIndex{{idx: i, neg: false}}
	}
	return []mirrorIndex{{idx: i, neg: false}, {idx: (L - i) % L, neg: true}}
}

// mirrorAssign writes the tensor record val computed at octant entry
// (i,j,k) into every mirrored position of the full Lx*Ly*Lz domain,
// applying the sign predicate of each entry's parity (§3 invariants,
// §4.3 step 4).
func mirrorAssign(full [numComponents][]complex128, Lx, Ly, Lz, i, j, k int, val kernel.Tensor6) {
	for _, sx := range mirrorPair(i, Lx) {
		signX := 1.0
		if sx.neg {
			signX = -1
		}
		if i > 0 && 2*i == Lx {
			signX = 0 // odd in x: vanishes at the x mirror point
		}
		for _, sy := range mirrorPair(j, Ly) {
			signY := 1.0
			if sy.neg {
				signY = -1
			}
			if j > 0 && 2*j == Ly {
				signY = 0
			}
			for _, sz := range mirrorPair(k, Lz) {
				signZ := 1.0
				if sz.neg {
					signZ = -1
				}
				if k > 0 && 2*k == Lz {
					signZ = 0
				}
				idx := sx.idx + Lx*(sy.idx+Ly*sz.idx)
				full[compXX][idx] = complex(val.Axx, 0)
				full[compYY][idx] = complex(val.Ayy, 0)
				full[compZZ][idx] = complex(val.Azz, 0)
				full[compXY][idx] = complex(val.Axy*signX*signY, 0)
				full[compXZ][idx] = complex(val.Axz*signX*signZ, 0)
				full[compYZ][idx] = complex(val.Ayz*signY*signZ, 0)
			}
		}
	}
}

// applySelfDemagOrigin overwrites the diagonal at the origin with the
// numerically stable self-demag closed form, clears the off-diagonals
// there (they vanish exactly), and optionally applies the zero-
// self-demag shift (§4.3 steps 5-6).
func applySelfDemagOrigin(full [numComponents][]complex128, Lx, Ly, Lz int, m mesh.Mesh, zeroSelfDemag bool) {
	nxx := kernel.SelfDemagNx(m.Dx, m.Dy, m.Dz)
	nyy := kernel.SelfDemagNy(m.Dx, m.Dy, m.Dz)
	nzz := kernel.SelfDemagNz(m.Dx, m.Dy, m.Dz)
	if zeroSelfDemag {
		nxx -= 1.0 / 3.0
		nyy -= 1.0 / 3.0
		nzz -= 1.0 / 3.0
	}
	full[compXX][0] = complex(nxx, 0)
	full[compYY][0] = complex(nyy, 0)
	full[compZZ][0] = complex(nzz, 0)
	full[compXY][0] = 0
	full[compXZ][0] = 0
	full[compYZ][0] = 0
}

// transform3D forward-transforms each of the six real-space arrays
// along x, then y, then z, in place, using the worker pool for
// per-line parallelism and one Thread-Local FFT Workspace per worker
// to avoid rebuilding an FFT plan on every line (§4.3 step 8, §4.4).
func transform3D(pool *workpool.Pool, full [numComponents][]complex128, Lx, Ly, Lz int) error {
	ws := workpool.NewWorkspacePool(pool.N)
	for c := 0; c < numComponents; c++ {
		if err := transformAxis(pool, ws, full[c], Lx, Ly, Lz, 0); err != nil {
			return err
		}
		if err := transformAxis(pool, ws, full[c], Lx, Ly, Lz, 1); err != nil {
			return err
		}
		if err := transformAxis(pool, ws, full[c], Lx, Ly, Lz, 2); err != nil {
			return err
		}
	}
	return nil
}

// transformAxis applies a forward complex FFT along the given axis
// (0=x, 1=y, 2=z) to every line of the Lx*Ly*Lz flat array, in place,
// reusing each worker's cached plan and scratch line from ws.
func transformAxis(pool *workpool.Pool, ws *workpool.WorkspacePool, data []complex128, Lx, Ly, Lz, axis int) error {
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
			plan.Coefficients(line, line)
			scatterLine(data, Lx, Ly, Lz, axis, n, line)
		}
		return nil
	})
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

// captureRealOctant snapshots the [0,Ax)x[0,Ay)x[0,Az) octant of the
// mirror-extended real-space arrays into t.RealSpace, before the
// forward FFT touches them — the undoctored geometric tensor N that
// Dump writes out (§6).
func captureRealOctant(full [numComponents][]complex128, t *Tensor, Lx, Ly, Lz int) {
	for k := 0; k < t.Az; k++ {
		for j := 0; j < t.Ay; j++ {
			for i := 0; i < t.Ax; i++ {
				idx := i + Lx*(j+Ly*k)
				t.SetReal(i, j, k, kernel.Tensor6{
					Axx: real(full[compXX][idx]),
					Ayy: real(full[compYY][idx]),
					Azz: real(full[compZZ][idx]),
					Axy: real(full[compXY][idx]),
					Axz: real(full[compXZ][idx]),
					Ayz: real(full[compYZ][idx]),
				})
			}
		}
	}
}

// extractOctant reads the [0,Ax)x[0,Ay)x[0,Az) octant of the
// transformed full-domain arrays into t, negating every entry to
// store Â = -N (§3 sign convention) and dividing by fftSize =
// Lx*Ly*Lz to absorb the unnormalized forward+inverse FFT round-trip
// scale into Â once, rather than rescaling the convolution engine's
// output on every call (§4.3 step 7, matching the source's
// fft_scaling folded into its stored A coefficients). By construction
// (§3 invariants) the imaginary part of every transformed entry is
// zero to floating point error; only the real part is kept.
func extractOctant(full [numComponents][]complex128, t *Tensor, Lx, Ly, Lz, fftSize int) {
	scale := -1.0 / float64(fftSize)
	for k := 0; k < t.Az; k++ {
		for j := 0; j < t.Ay; j++ {
			for i := 0; i < t.Ax; i++ {
				idx := i + Lx*(j+Ly*k)
				t.Set(i, j, k, kernel.Tensor6{
					Axx: scale * real(full[compXX][idx]),
					Ayy: scale * real(full[compYY][idx]),
					Azz: scale * real(full[compZZ][idx]),
					Axy: scale * real(full[compXY][idx]),
					Axz: scale * real(full[compXZ][idx]),
					Ayz: scale * real(full[compYZ][idx]),
				})
			}
		}
	}
}

// selfTest verifies the trace-sum invariant (§8 property 4) for
// non-periodic meshes at the origin, turning a broken invariant into
// an InvariantError rather than silently returning bad data.
func selfTest(t *Tensor, m mesh.Mesh, zeroSelfDemag bool) error {
	if m.PeriodicAxisCount() > 0 {
		return nil
	}
	trace := t.AtReal(0, 0, 0).Trace() // RealSpace carries no -N sign or FFT scale
	want := 1.0
	if zeroSelfDemag {
		want = 0.0
	}
	if math.Abs(trace-want) > 1e-3 {
		return demagerr.NewInvariantError("tensor.selfTest", "self-demag trace sum %.6g deviates from %.6g", trace, want)
	}
	return nil
}
