// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demag

import (
	"github.com/sirupsen/logrus"

	"github.com/cpmech/demag/convolve"
)

// Metrics is the optional observer interface (§9 "Global mutable
// counters for timers and warnings. Replace with an optional metrics
// object injected at construction"); a nil Metrics on Engine produces
// no observability overhead.
type Metrics = convolve.Metrics

// LogrusMetrics is the ambient-stack Metrics implementation, logging
// tensor (re)builds and completed energy steps through an injected
// *logrus.Logger rather than the package-level global logger.
type LogrusMetrics struct {
	Log *logrus.Logger
}

// NewLogrusMetrics wraps log (or a freshly constructed default logger
// if log is nil) as a Metrics.
func NewLogrusMetrics(log *logrus.Logger) *LogrusMetrics {
	if log == nil {
		log = logrus.New()
	}
	return &LogrusMetrics{Log: log}
}

// TensorBuilt logs a tensor (re)build at info level.
func (m *LogrusMetrics) TensorBuilt(buildCount, Lx, Ly, Lz int) {
	m.Log.WithFields(logrus.Fields{
		"build_count": buildCount,
		"lx":          Lx,
		"ly":          Ly,
		"lz":          Lz,
	}).Info("demag: tensor built")
}

// EnergyComputed logs a completed compute_energy step at debug level.
func (m *LogrusMetrics) EnergyComputed(totalEnergy float64) {
	m.Log.WithField("total_energy", totalEnergy).Debug("demag: energy computed")
}
