// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package periodic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummerRejectsNonPositivePeriod(t *testing.T) {
	_, err := NewSummer(AxisX, 0, 1, 1, 1, 32, 1e-10, 2)
	require.Error(t, err)
}

func TestValidatePeriodicityRejectsThreeAxes(t *testing.T) {
	err := ValidatePeriodicity(true, true, true)
	require.Error(t, err)
}

func TestValidatePeriodicityAllowsTwoAxes(t *testing.T) {
	err := ValidatePeriodicity(true, true, false)
	require.NoError(t, err)
}

func TestComputePeriodicHoleTensorIsFinite(t *testing.T) {
	s, err := NewSummer(AxisX, 4, 1, 1, 1, 32, 1e-10, 2)
	require.NoError(t, err)

	tzero := s.ComputePeriodicHoleTensor(0, 0, 0)
	assert.False(t, isNaN6(tzero))

	// An off-axis offset should also give a finite result.
	toff := s.ComputePeriodicHoleTensor(0, 1, 1)
	assert.False(t, isNaN6(toff))
}

func isNaN6(t interface{ Trace() float64 }) bool {
	v := t.Trace()
	return v != v // NaN check without importing math in the test
}
