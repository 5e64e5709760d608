// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_quadratic_roots(tst *testing.T) {

	chk.PrintTitle("quadratic_roots")

	roots := SolveQuadratic(1, -3, 2) // (x-1)(x-2)
	chk.Vector(tst, "roots", MinTol, roots, []float64{1, 2})
}

func Test_quartic_roots_torus_like(tst *testing.T) {

	chk.PrintTitle("quartic_roots_torus_like")

	// (x-1)(x-2)(x-3)(x-4) = x^4-10x^3+35x^2-50x+24
	roots := SolveQuartic(1, -10, 35, -50, 24)
	chk.Vector(tst, "roots", 1e-6, roots, []float64{1, 2, 3, 4})
}

func Test_cubic_roots(tst *testing.T) {

	chk.PrintTitle("cubic_roots")

	// (x+1)(x-1)(x-2) = x^3-2x^2-x+2
	roots := SolveCubic(1, -2, -1, 2)
	chk.Vector(tst, "roots", 1e-6, roots, []float64{-1, 1, 2})
}
