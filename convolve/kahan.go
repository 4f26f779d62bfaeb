// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convolve

// compensatedSum is a Neumaier-variant Kahan accumulator: the §5
// "compensated (double-double-style) accumulator per thread" the
// energy reduction combines. It carries error terms across Add calls
// rather than losing them each step, giving roughly double the
// effective mantissa of a plain running sum.
type compensatedSum struct {
	sum float64
	c   float64 // running compensation
}

// Add folds v into the running sum.
func (s *compensatedSum) Add(v float64) {
	t := s.sum + v
	if absf(s.sum) >= absf(v) {
		s.c += (s.sum - t) + v
	} else {
		s.c += (v - t) + s.sum
	}
	s.sum = t
}

// Value returns the compensated total.
func (s *compensatedSum) Value() float64 { return s.sum + s.c }

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
