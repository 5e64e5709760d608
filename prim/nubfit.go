// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prim

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// CreateNUBCurve interpolates a clamped cubic NUB curve through the
// given points (degree n-1 when fewer than four points are given). params, when supplied, are the interpolation parameters
// (one per point, increasing); otherwise chord-length parameterization
// is used. The control points come from the banded global interpolation
// system (the interpolation matrix has bandwidth equal to the degree).
func CreateNUBCurve(points []gmath.Point3, params []float64) (*curve.NUB, error) {
	n := len(points)
	if n < 2 {
		return nil, chk.Err("prim: NUB interpolation needs at least 2 points, got %d", n)
	}
	if params == nil {
		params = chordParams(points)
	}
	if len(params) != n {
		return nil, chk.Err("prim: %d params for %d points", len(params), n)
	}
	degree := 3
	if n <= degree {
		degree = n - 1
	}
	knots := averagedKnots(params, degree)

	// interpolation system: one basis row per parameter
	a := make([][]float64, n)
	for i, u := range params {
		a[i] = basisRow(u, degree, knots, n)
	}
	ctrl, err := solvePointSystem(a, points, degree)
	if err != nil {
		return nil, err
	}
	return curve.NewNUB(degree, knots, ctrl), nil
}

// CreateNUBCurveWithEndVectors interpolates a clamped cubic NUB through
// points with prescribed end derivatives v0, v1, adding the two extra
// control points the tangency conditions require.
func CreateNUBCurveWithEndVectors(points []gmath.Point3, v0, v1 gmath.Vector3) (*curve.NUB, error) {
	n := len(points)
	if n < 2 {
		return nil, chk.Err("prim: NUB interpolation needs at least 2 points, got %d", n)
	}
	params := chordParams(points)
	const degree = 3
	m := n + 2 // control point count
	// clamped knot vector with the interior knots spread over the params
	knots := make([]float64, m+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = 0
		knots[m+degree-i] = 1
	}
	for j := 1; j < m-degree; j++ {
		knots[degree+j] = params[j] // one interior knot per interior parameter
	}

	a := make([][]float64, m)
	rhs := make([]gmath.Point3, m)
	// position rows
	for i, u := range params {
		a[i] = basisRow(u, degree, knots, m)
		rhs[i] = points[i]
	}
	// derivative rows: P1-P0 and Pm-1 - Pm-2 carry the end tangents
	d0 := make([]float64, m)
	scale0 := float64(degree) / knots[degree+1]
	d0[0], d0[1] = -scale0, scale0
	a[n] = d0
	rhs[n] = gmath.Point3{X: v0.X, Y: v0.Y, Z: v0.Z}

	d1 := make([]float64, m)
	scale1 := float64(degree) / (1 - knots[m-1])
	d1[m-2], d1[m-1] = -scale1, scale1
	a[n+1] = d1
	rhs[n+1] = gmath.Point3{X: v1.X, Y: v1.Y, Z: v1.Z}

	ctrl, err := solvePointSystem(a, rhs, degree)
	if err != nil {
		return nil, err
	}
	return curve.NewNUB(degree, knots, ctrl), nil
}

// solvePointSystem solves the interpolation matrix against each
// coordinate through the banded solver.
func solvePointSystem(a [][]float64, rhs []gmath.Point3, bandwidth int) ([]gmath.Point3, error) {
	n := len(a)
	pick := func(get func(gmath.Point3) float64) ([]float64, error) {
		b := make([]float64, n)
		for i, p := range rhs {
			b[i] = get(p)
		}
		ac := make([][]float64, n)
		for i := range a {
			ac[i] = append([]float64{}, a[i]...)
		}
		return gmath.SolveBanded(ac, b, bandwidth, bandwidth)
	}
	xs, err := pick(func(p gmath.Point3) float64 { return p.X })
	if err != nil {
		return nil, chk.Err("prim: NUB interpolation solve failed: %v", err)
	}
	ys, err := pick(func(p gmath.Point3) float64 { return p.Y })
	if err != nil {
		return nil, chk.Err("prim: NUB interpolation solve failed: %v", err)
	}
	zs, err := pick(func(p gmath.Point3) float64 { return p.Z })
	if err != nil {
		return nil, chk.Err("prim: NUB interpolation solve failed: %v", err)
	}
	ctrl := make([]gmath.Point3, n)
	for i := range ctrl {
		ctrl[i] = gmath.Point3{X: xs[i], Y: ys[i], Z: zs[i]}
	}
	return ctrl, nil
}

// chordParams is the normalized chord-length parameterization.
func chordParams(points []gmath.Point3) []float64 {
	n := len(points)
	params := make([]float64, n)
	total := 0.0
	for i := 1; i < n; i++ {
		total += gmath.Distance(points[i-1], points[i])
		params[i] = total
	}
	if total < gmath.Zero {
		chk.Panic("prim: NUB interpolation points are all coincident")
	}
	for i := range params {
		params[i] /= total
	}
	return params
}

// averagedKnots builds the clamped knot vector by knot averaging.
func averagedKnots(params []float64, degree int) []float64 {
	n := len(params)
	knots := make([]float64, n+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = params[0]
		knots[n+degree-i] = params[n-1]
	}
	for j := 1; j < n-degree; j++ {
		sum := 0.0
		for i := j; i < j+degree; i++ {
			sum += params[i]
		}
		knots[degree+j] = sum / float64(degree)
	}
	return knots
}

// basisRow evaluates all n basis functions of the clamped B-spline at u
// by the Cox-de Boor recursion.
func basisRow(u float64, degree int, knots []float64, n int) []float64 {
	row := make([]float64, n)
	// degree-zero seeds
	N := make([]float64, len(knots)-1)
	last := len(knots) - 1
	for i := 0; i < last; i++ {
		if (u >= knots[i] && u < knots[i+1]) ||
			(u >= knots[last]-gmath.Zero && knots[i] < knots[i+1] && u <= knots[i+1]) {
			N[i] = 1
		}
	}
	for p := 1; p <= degree; p++ {
		for i := 0; i+p < len(knots)-1; i++ {
			var left, right float64
			if d := knots[i+p] - knots[i]; d > gmath.Zero {
				left = (u - knots[i]) / d * N[i]
			}
			if d := knots[i+p+1] - knots[i+1]; d > gmath.Zero {
				right = (knots[i+p+1] - u) / d * N[i+1]
			}
			N[i] = left + right
		}
	}
	copy(row, N[:n])
	// guard against numerical dropout at the clamped end
	if math.Abs(u-knots[len(knots)-1]) < gmath.Zero {
		for i := range row {
			row[i] = 0
		}
		row[n-1] = 1
	}
	return row
}
