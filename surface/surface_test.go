// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

var zAxis = gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit()

// newGenLine is a generator line at distance 2 from the z axis, running
// parallel to it over t in [0,1].
func newGenLine() curve.Curve {
	return curve.NewBoundedLine(gmath.Point3{X: 2}, zAxis, gmath.Interval1{Lo: 0, Hi: 1})
}

func checkRoundTrip(tst *testing.T, s Surface, u, v float64) {
	e := s.Evaluate(u, v)
	uv, closest := s.Inverse(e.Pos, false, gmath.Point2{})
	chk.Scalar(tst, "u", gmath.MinTol, uv.U, u)
	chk.Scalar(tst, "v", gmath.MinTol, uv.V, v)
	chk.Scalar(tst, "dist", gmath.MinTol, gmath.Distance(closest, e.Pos), 0)
}

func Test_sphere_roundtrip(tst *testing.T) {

	chk.PrintTitle("sphere_roundtrip")

	s := NewSphere(gmath.Point3{X: 1, Y: 2, Z: 3}, 2.5)
	for _, u := range []float64{0.1, 1.5, 3.0, 5.5} {
		for _, v := range []float64{-1.2, -0.3, 0.4, 1.3} {
			checkRoundTrip(tst, s, u, v)
		}
	}
}

func Test_torus_roundtrip(tst *testing.T) {

	chk.PrintTitle("torus_roundtrip")

	s := NewTorus(gmath.Point3{}, zAxis, 1, 3)
	for _, u := range []float64{0.1, 2.0, 4.4} {
		for _, v := range []float64{0.2, 1.7, 5.0} {
			checkRoundTrip(tst, s, u, v)
		}
	}
}

func Test_cylinder_cone_roundtrip(tst *testing.T) {

	chk.PrintTitle("cylinder_cone_roundtrip")

	cyl := NewCylinder(gmath.Point3{}, zAxis, 1.5, gmath.Interval1{Lo: 0, Hi: 4})
	for _, u := range []float64{0.3, 2.2, 5.7} {
		checkRoundTrip(tst, cyl, u, 1.25)
	}

	cone := NewCone(gmath.Point3{}, zAxis, math.Pi/6, gmath.Interval1{Lo: 0, Hi: 5})
	for _, u := range []float64{0.3, 2.2, 5.7} {
		checkRoundTrip(tst, cone, u, 2.0)
	}
}

// finite-difference check of the analytically returned first partials
func checkDerivs(tst *testing.T, msg string, s Surface, u, v float64) {
	const h = 1e-6
	e := s.Evaluate(u, v)
	ep := s.Evaluate(u+h, v)
	em := s.Evaluate(u-h, v)
	fdU := ep.Pos.Sub(em.Pos).Scale(1 / (2 * h))
	tol := gmath.Fit * math.Max(1, e.Du.Length())
	chk.Scalar(tst, msg+" du", tol, fdU.Minus(e.Du).Length(), 0)

	ep = s.Evaluate(u, v+h)
	em = s.Evaluate(u, v-h)
	fdV := ep.Pos.Sub(em.Pos).Scale(1 / (2 * h))
	tol = gmath.Fit * math.Max(1, e.Dv.Length())
	chk.Scalar(tst, msg+" dv", tol, fdV.Minus(e.Dv).Length(), 0)
}

func Test_partials_finite_difference(tst *testing.T) {

	chk.PrintTitle("partials_finite_difference")

	surfs := map[string]Surface{
		"sphere":   NewSphere(gmath.Point3{}, 2),
		"torus":    NewTorus(gmath.Point3{}, zAxis, 1, 3),
		"cylinder": NewCylinder(gmath.Point3{}, zAxis, 1, gmath.Interval1{Lo: 0, Hi: 2}),
		"cone":     NewCone(gmath.Point3{}, zAxis, math.Pi/7, gmath.Interval1{Lo: 0.1, Hi: 3}),
	}
	for name, s := range surfs {
		checkDerivs(tst, name, s, 0.7, 0.9)
	}
}

func Test_nub_surface_roundtrip(tst *testing.T) {

	chk.PrintTitle("nub_surface_roundtrip")

	// biquadratic patch over a 4x4 net
	knots := []float64{0, 0, 0, 0.5, 1, 1, 1}
	ctrl := make([][]gmath.Point3, 4)
	for i := 0; i < 4; i++ {
		ctrl[i] = make([]gmath.Point3, 4)
		for j := 0; j < 4; j++ {
			ctrl[i][j] = gmath.Point3{
				X: float64(i),
				Y: float64(j),
				Z: 0.25 * float64(i) * float64(j),
			}
		}
	}
	s := NewNUBSurf(2, 2, knots, knots, ctrl)
	for _, u := range []float64{0.1, 0.5, 0.9} {
		for _, v := range []float64{0.2, 0.6, 0.8} {
			checkRoundTrip(tst, s, u, v)
			checkDerivs(tst, "nub", s, u, v)
		}
	}
}

func Test_nurb_unit_weights_matches_nub(tst *testing.T) {

	chk.PrintTitle("nurb_unit_weights_matches_nub")

	knots := []float64{0, 0, 0, 1, 1, 1}
	ctrl := make([][]gmath.Point3, 3)
	weights := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		ctrl[i] = make([]gmath.Point3, 3)
		weights[i] = []float64{1, 1, 1}
		for j := 0; j < 3; j++ {
			ctrl[i][j] = gmath.Point3{X: float64(i), Y: float64(j), Z: float64(i + j)}
		}
	}
	nub := NewNUBSurf(2, 2, knots, knots, ctrl)
	nurb := NewNURBSurf(2, 2, knots, knots, ctrl, weights)
	for _, u := range []float64{0.2, 0.5, 0.8} {
		for _, v := range []float64{0.3, 0.7} {
			a := nub.Evaluate(u, v)
			b := nurb.Evaluate(u, v)
			chk.Scalar(tst, "pos", 1e-12, gmath.Distance(a.Pos, b.Pos), 0)
			chk.Scalar(tst, "du", 1e-10, a.Du.Minus(b.Du).Length(), 0)
		}
	}
}

func Test_revolve_extrude(tst *testing.T) {

	chk.PrintTitle("revolve_extrude")

	// revolving a line parallel to the axis gives a cylinder of radius 2
	gen := newGenLine()
	rev := NewRevolve(gmath.Point3{}, zAxis, gen)
	e := rev.Evaluate(0, 0.5)
	chk.Scalar(tst, "radius", 1e-12, math.Hypot(e.Pos.X, e.Pos.Y), 2)
	checkDerivs(tst, "revolve", rev, 1.1, 0.4)

	// extrude a transverse generator so the sweep is nondegenerate
	xGen := curve.NewBoundedLine(gmath.Point3{}, gmath.Vector3{X: 1}.MustUnit(), gmath.Interval1{Lo: 0, Hi: 2})
	ext := NewExtrude(zAxis, xGen, gmath.Interval1{Lo: 0, Hi: 3})
	e = ext.Evaluate(1.5, 0.5)
	chk.Scalar(tst, "z", 1e-12, e.Pos.Z, 1.5)
	chk.Scalar(tst, "x", 1e-12, e.Pos.X, 0.5)
	checkRoundTrip(tst, ext, 1.5, 0.5)
}

func Test_transform_roundtrip(tst *testing.T) {

	chk.PrintTitle("transform_roundtrip")

	trans := gmath.RotationAbout(gmath.Point3{X: 1}, gmath.Vector3{X: 0, Y: 1, Z: 0}.MustUnit(), 0.7)
	trans = trans.Compose(gmath.Translation(gmath.Vector3{X: 1, Y: -2, Z: 3}))
	inv := trans.Inverse()

	s := NewTorus(gmath.Point3{}, zAxis, 1, 3)
	back := s.Transform(trans).Transform(inv)
	for _, u := range []float64{0.2, 2.5} {
		for _, v := range []float64{0.3, 4.0} {
			a := s.Evaluate(u, v)
			b := back.Evaluate(u, v)
			chk.Scalar(tst, "pos", 1e-9, gmath.Distance(a.Pos, b.Pos), 0)
		}
	}
}
