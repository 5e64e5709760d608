// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// SolveDense solves A*x=b for a small dense system, used by the
// least-squares plane fit, the conic-from-5-points routine and the
// NUB/NURB interpolation systems. Goes through la.MatInvG and
// la.MatVecMul; the systems here are all small (bounded by curve degree
// or a fixed 5x5), so a general inverse is fine.
func SolveDense(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if n == 0 || len(a) != n {
		return nil, chk.Err("gmath: SolveDense needs a square system, got %dx%d", len(a), n)
	}
	ai := la.MatAlloc(n, n)
	if err := la.MatInvG(ai, a, 1e-13); err != nil {
		return nil, chk.Err("gmath: dense solve failed: %v", err)
	}
	x := make([]float64, n)
	la.MatVecMul(x, 1, ai, b)
	return x, nil
}

// SolveBanded solves a banded system with kl sub- and ku super-diagonals,
// used by the NUB/NURB control-point interpolation problem (de Boor's
// interpolation matrix is banded with bandwidth equal to the curve
// degree). The bandwidth hints are accepted for callers that know their
// structure, but the systems are always small, so the dense path serves.
func SolveBanded(a [][]float64, b []float64, kl, ku int) ([]float64, error) {
	_ = kl
	_ = ku
	return SolveDense(a, b)
}
