// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

func Test_line_eval_inverse_roundtrip(tst *testing.T) {

	chk.PrintTitle("line_eval_inverse_roundtrip")

	l := NewLine(gmath.Point3{X: 1, Y: 2, Z: 3}, gmath.Vector3{X: 1, Y: 0, Z: 0}.MustUnit())
	for _, t := range []float64{-3, 0, 2.5, 10} {
		pos, _, _ := l.Evaluate(t)
		tInv, _ := Invert(l, pos)
		chk.Scalar(tst, "t", gmath.MinTol, tInv, t)
	}
}

func Test_circle_eval_inverse_roundtrip(tst *testing.T) {

	chk.PrintTitle("circle_eval_inverse_roundtrip")

	c := NewCircle(gmath.Point3{}, gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit(), 2)
	for _, u := range []float64{0, 0.5, 3.14, 5.9} {
		pos, _, _ := c.Evaluate(u)
		uInv, _ := Invert(c, pos)
		chk.Scalar(tst, "u", 1e-9, uInv, u)
	}
}

func Test_circle_off_curve_point(tst *testing.T) {

	chk.PrintTitle("circle_off_curve_point")

	c := NewCircle(gmath.Point3{}, gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit(), 2)
	// a point far from the curve still inverts to its nearest parameter
	far := gmath.Point3{X: 10, Y: 0, Z: 5}
	_, closest := Invert(c, far)
	chk.Scalar(tst, "closest.x", 1e-9, closest.X, 2)
	chk.Scalar(tst, "closest.y", 1e-9, closest.Y, 0)
}

func Test_nub_through_control_points(tst *testing.T) {

	chk.PrintTitle("nub_through_control_points")

	// a NUB on 5 control points with a clamped cubic knot vector, so the
	// curve interpolates its end control points; only the two end control
	// points and the inverse at the start are asserted (a B-spline does
	// not pass through its interior control points).
	ctrl := []gmath.Point3{
		{X: -2, Y: 0.5, Z: 0},
		{X: -1, Y: 1.5, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1.5, Z: 0},
		{X: 2, Y: 2, Z: 0},
	}
	degree := 3
	n := len(ctrl)
	knots := make([]float64, n+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = 0
		knots[len(knots)-1-i] = 1
	}
	for i := 1; i < n-degree; i++ {
		knots[degree+i] = float64(i) / float64(n-degree)
	}
	c := NewNUB(degree, knots, ctrl)

	// endpoints of a clamped B-spline equal the first/last control point
	p0, _, _ := c.Evaluate(c.Domain().Lo)
	chk.Scalar(tst, "p0.x", 1e-9, p0.X, ctrl[0].X)
	chk.Scalar(tst, "p0.y", 1e-9, p0.Y, ctrl[0].Y)

	pn, _, _ := c.Evaluate(c.Domain().Hi)
	chk.Scalar(tst, "pn.x", 1e-9, pn.X, ctrl[n-1].X)
	chk.Scalar(tst, "pn.y", 1e-9, pn.Y, ctrl[n-1].Y)

	// inverse of an on-curve point returns (approximately) its parameter
	tInv, closest := Invert(c, p0)
	chk.Scalar(tst, "tInv", 1e-6, tInv, c.Domain().Lo)
	chk.Scalar(tst, "closest.x", 1e-6, closest.X, p0.X)
}

func Test_nurb_reduces_to_nub_with_unit_weights(tst *testing.T) {

	chk.PrintTitle("nurb_reduces_to_nub_with_unit_weights")

	ctrl := []gmath.Point3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 0}, {X: 2, Y: 0, Z: 0}}
	degree := 2
	knots := []float64{0, 0, 0, 1, 1, 1}
	weights := []float64{1, 1, 1}
	nub := NewNUB(degree, knots, ctrl)
	nurb := NewNURB(degree, knots, ctrl, weights)

	for _, t := range []float64{0, 0.25, 0.5, 0.75, 1} {
		pa, _, _ := nub.Evaluate(t)
		pb, _, _ := nurb.Evaluate(t)
		chk.Scalar(tst, "x", 1e-9, pb.X, pa.X)
		chk.Scalar(tst, "y", 1e-9, pb.Y, pa.Y)
	}
}

func Test_hermite_interpolates_samples(tst *testing.T) {

	chk.PrintTitle("hermite_interpolates_samples")

	h := NewHermite([]HermiteSample{
		{T: 0, Pos: gmath.Point3{X: 0, Y: 0, Z: 0}, Tangent: gmath.Vector3{X: 1, Y: 0, Z: 0}},
		{T: 1, Pos: gmath.Point3{X: 1, Y: 1, Z: 0}, Tangent: gmath.Vector3{X: 1, Y: 0, Z: 0}},
	})
	p0, _, _ := h.Evaluate(0)
	chk.Scalar(tst, "p0.x", 1e-9, p0.X, 0)
	p1, _, _ := h.Evaluate(1)
	chk.Scalar(tst, "p1.y", 1e-9, p1.Y, 1)
}
