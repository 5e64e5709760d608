// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "github.com/cpmech/gosl/chk"

// Conic2 holds the general conic coefficients A*x^2+B*xy+C*y^2+D*x+E*y+F=0
// in some local 2D frame.
type Conic2 struct {
	A, B, C, D, E, F float64
}

// ConicFrom5Points fits the unique conic through 5 coplanar points given
// in a common local 2D frame, by solving the 5x5 homogeneous linear
// system obtained by fixing F=1 (valid whenever the conic does not pass
// through the local origin; callers choose a frame origin off the point
// set, e.g. the centroid). Used by the analytic curve/surface
// intersection dispatch when two analytic conics must be intersected in
// closed form.
func ConicFrom5Points(pts [5]Point2) (Conic2, error) {
	a := make([][]float64, 5)
	b := make([]float64, 5)
	for i, p := range pts {
		a[i] = []float64{p.U * p.U, p.U * p.V, p.V * p.V, p.U, p.V}
		b[i] = -1
	}
	x, err := SolveDense(a, b)
	if err != nil {
		return Conic2{}, chk.Err("gmath: ConicFrom5Points: %v", err)
	}
	return Conic2{A: x[0], B: x[1], C: x[2], D: x[3], E: x[4], F: 1}, nil
}

// Eval returns the implicit conic value at (u,v); zero means on the conic.
func (c Conic2) Eval(u, v float64) float64 {
	return c.A*u*u + c.B*u*v + c.C*v*v + c.D*u + c.E*v + c.F
}
