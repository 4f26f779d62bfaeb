// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convolve

import (
	"sort"
	"sync"

	"github.com/cpmech/demag/demagerr"
	"github.com/cpmech/demag/mesh"
	"github.com/cpmech/demag/tensor"
	"github.com/cpmech/demag/workpool"
)

// Metrics receives optional build/step notifications from Engine; a
// nil Metrics produces none (§9 "Global mutable counters for timers
// and warnings. Replace with an optional metrics object injected at
// construction").
type Metrics interface {
	TensorBuilt(buildCount int, Lx, Ly, Lz int)
	EnergyComputed(totalEnergy float64)
}

// Engine is the convolution engine of §4.6: a one-shot tensor build
// per mesh identity, followed by repeated compute_energy calls against
// the cached Â.
type Engine struct {
	cfg  tensor.Config
	pool *workpool.Pool
	ws   *workpool.WorkspacePool

	armed      bool
	meshCached mesh.Mesh
	cachedT    *tensor.Tensor
	spec       *spectrum
	errorEst   float64
	buildCount int
	combineMu  sync.Mutex

	Metrics Metrics
}

// New constructs an Engine with the given tensor-builder configuration
// and worker pool. A nil pool runs single-threaded.
func New(cfg tensor.Config, pool *workpool.Pool) *Engine {
	if pool == nil {
		pool = workpool.NewPool(1, 1)
	}
	cfg.Pool = pool
	return &Engine{cfg: cfg, pool: pool, ws: workpool.NewWorkspacePool(pool.N)}
}

// Init resets the engine to uninitialized, dropping the cached tensor
// and error estimate (§4.6 "An init() call forces return to
// uninitialized").
func (e *Engine) Init() {
	e.armed = false
	e.cachedT = nil
	e.spec = nil
	e.errorEst = 0
}

// BuildCount returns how many times the tensor has been (re)built.
func (e *Engine) BuildCount() int { return e.buildCount }

// Tensor returns the currently cached frequency-domain demag tensor,
// or nil if the engine has not yet been armed. Exposed so a caller can
// persist it (§6 tensor dump) without the engine package needing to
// know about file formats.
func (e *Engine) Tensor() *tensor.Tensor { return e.cachedT }

// ErrorEstimate returns the cached per-cell energy-density error
// estimate from the most recent tensor build.
func (e *Engine) ErrorEstimate() float64 { return e.errorEst }

// ensureArmed rebuilds the tensor if the engine is uninitialized or m
// differs from the cached mesh identity (§4.6 step 1, state machine).
func (e *Engine) ensureArmed(m mesh.Mesh, maxMs float64) error {
	if e.armed && e.meshCached == m {
		return nil
	}
	t, err := tensor.NewBuilder(e.cfg).Build(m)
	if err != nil {
		return err
	}
	Lx, Ly, Lz := m.FFTDims()
	e.cachedT = t
	e.spec = broadcastSpectrum(t, Lx, Ly, Lz)
	e.meshCached = m
	e.errorEst = energyDensityErrorEstimate(m, maxMs)
	e.armed = true
	e.buildCount++
	if e.Metrics != nil {
		e.Metrics.TensorBuilt(e.buildCount, Lx, Ly, Lz)
	}
	return nil
}

// ComputeEnergy runs the full §4.6 pipeline: forward transform of
// Ms·spin, pointwise multiply by Â, inverse transform, and a fused
// reduction into H, energy density, m×H and the requested
// accumulators and scalar total.
func (e *Engine) ComputeEnergy(m mesh.Mesh, state *State, req Request, out *Output) error {
	if err := m.Validate(); err != nil {
		return err
	}
	n := m.NumCells()
	if err := state.Validate(n); err != nil {
		return err
	}
	if err := out.validate(n, req); err != nil {
		return err
	}

	maxMs := 0.0
	for _, ms := range state.Ms {
		if ms > maxMs {
			maxMs = ms
		}
	}
	if err := e.ensureArmed(m, maxMs); err != nil {
		return err
	}

	Lx, Ly, Lz := m.FFTDims()

	mx := make([]float64, n)
	my := make([]float64, n)
	mz := make([]float64, n)
	for i := 0; i < n; i++ {
		mx[i] = state.Ms[i] * state.Spin[i][0]
		my[i] = state.Ms[i] * state.Spin[i][1]
		mz[i] = state.Ms[i] * state.Spin[i][2]
	}

	fx := embed(mx, m.Rx, m.Ry, m.Rz, Lx, Ly, Lz)
	fy := embed(my, m.Rx, m.Ry, m.Rz, Lx, Ly, Lz)
	fz := embed(mz, m.Rx, m.Ry, m.Rz, Lx, Ly, Lz)

	if err := forward3D(e.pool, e.ws, fx, Lx, Ly, Lz); err != nil {
		return demagerr.NewResourceError("convolve.ComputeEnergy", "forward transform of Mx failed: %v", err)
	}
	if err := forward3D(e.pool, e.ws, fy, Lx, Ly, Lz); err != nil {
		return demagerr.NewResourceError("convolve.ComputeEnergy", "forward transform of My failed: %v", err)
	}
	if err := forward3D(e.pool, e.ws, fz, Lx, Ly, Lz); err != nil {
		return demagerr.NewResourceError("convolve.ComputeEnergy", "forward transform of Mz failed: %v", err)
	}

	hx, hy, hz := multiply(e.spec, fx, fy, fz)

	if err := inverse3D(e.pool, e.ws, hx, Lx, Ly, Lz); err != nil {
		return demagerr.NewResourceError("convolve.ComputeEnergy", "inverse transform of Hx failed: %v", err)
	}
	if err := inverse3D(e.pool, e.ws, hy, Lx, Ly, Lz); err != nil {
		return demagerr.NewResourceError("convolve.ComputeEnergy", "inverse transform of Hy failed: %v", err)
	}
	if err := inverse3D(e.pool, e.ws, hz, Lx, Ly, Lz); err != nil {
		return demagerr.NewResourceError("convolve.ComputeEnergy", "inverse transform of Hz failed: %v", err)
	}

	Hx := extractReal(hx, m.Rx, m.Ry, m.Rz, Lx, Ly, Lz)
	Hy := extractReal(hy, m.Rx, m.Ry, m.Rz, Lx, Ly, Lz)
	Hz := extractReal(hz, m.Rx, m.Ry, m.Rz, Lx, Ly, Lz)

	vol := m.CellVolume()
	var total compensatedSum
	partials := make(map[int]float64)

	err := e.pool.Run(n, func(_ int, start, stop int) error {
		var partial compensatedSum
		for i := start; i < stop; i++ {
			H := Vec3{Hx[i], Hy[i], Hz[i]}
			if state.Ms[i] == 0 {
				H = Vec3{}
			}
			spin := state.Spin[i]

			if req.H {
				out.H[i] = H
			}
			if req.HAccum {
				out.HAccum[i] = out.HAccum[i].Add(H)
			}

			ed := -0.5 * Mu0 * state.Ms[i] * spin.Dot(H)
			if req.Energy {
				out.Energy[i] = ed
			}
			if req.EnergyAccum {
				out.EnergyAccum[i] += ed
			}
			partial.Add(ed * vol)

			torque := spin.Cross(H)
			if req.MxH {
				out.MxH[i] = torque
			}
			if req.MxHAccum {
				out.MxHAccum[i] = out.MxHAccum[i].Add(torque)
			}
		}
		e.combineMu.Lock()
		partials[start] = partial.Value()
		e.combineMu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	// Combine the per-range partials in index order, independent of
	// which worker finished first.
	starts := make([]int, 0, len(partials))
	for s := range partials {
		starts = append(starts, s)
	}
	sort.Ints(starts)
	for _, s := range starts {
		total.Add(partials[s])
	}

	out.TotalEnergy = total.Value()
	if e.Metrics != nil {
		e.Metrics.EnergyComputed(out.TotalEnergy)
	}
	return nil
}

