// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

var (
	xAxis = gmath.Vector3{X: 1, Y: 0, Z: 0}.MustUnit()
	zAxis = gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit()
)

func wholeLine(origin gmath.Point3, axis gmath.UnitVector3) gmath.Ray3 {
	return gmath.Ray3{Origin: origin, Axis: axis, UseWholeLine: true}
}

func Test_line_torus_four_hits(tst *testing.T) {

	chk.PrintTitle("line_torus_four_hits")

	// a line through the hole of a (r=1,R=3) torus pierces the tube twice
	torus := surface.NewTorus(gmath.Point3{}, zAxis, 1, 3)
	hits := LineAndSurface(wholeLine(gmath.Point3{X: -20}, xAxis), torus, gmath.MinTol)
	if len(hits) != 4 {
		tst.Fatalf("expected 4 hits, got %d", len(hits))
	}
	want := []float64{-4, -2, 2, 4}
	for i, h := range hits {
		chk.Scalar(tst, "x", 1e-6, h.Pos.X, want[i])
		if h.Kind != Point {
			tst.Errorf("hit %d: want Point, got %v", i, h.Kind)
		}
	}

	// offset to y=4: a single tangent hit at (0,4,0)
	hits = LineAndSurface(wholeLine(gmath.Point3{X: -20, Y: 4}, xAxis), torus, gmath.MinTol)
	if len(hits) != 1 {
		tst.Fatalf("expected 1 tangent hit, got %d", len(hits))
	}
	chk.Vector(tst, "pos", 1e-6, []float64{hits[0].Pos.X, hits[0].Pos.Y, hits[0].Pos.Z}, []float64{0, 4, 0})
	if hits[0].Kind != Tangent {
		tst.Errorf("want Tangent, got %v", hits[0].Kind)
	}
}

func Test_line_sphere_tangent(tst *testing.T) {

	chk.PrintTitle("line_sphere_tangent")

	s := surface.NewSphere(gmath.Point3{}, 2)
	hits := LineAndSurface(wholeLine(gmath.Point3{X: -10, Y: 2}, xAxis), s, gmath.MinTol)
	if len(hits) != 1 || hits[0].Kind != Tangent {
		tst.Fatalf("tangent line: got %v", hits)
	}
	hits = LineAndSurface(wholeLine(gmath.Point3{X: -10}, xAxis), s, gmath.MinTol)
	if len(hits) != 2 {
		tst.Fatalf("secant line: got %d hits", len(hits))
	}
	chk.Scalar(tst, "x0", 1e-9, hits[0].Pos.X, -2)
	chk.Scalar(tst, "x1", 1e-9, hits[1].Pos.X, 2)
}

func Test_line_cone_apex(tst *testing.T) {

	chk.PrintTitle("line_cone_apex")

	cone := surface.NewCone(gmath.Point3{}, zAxis, math.Pi/6, gmath.Interval1{Lo: 0, Hi: 5})
	hits := LineAndSurface(wholeLine(gmath.Point3{Z: -3}, zAxis), cone, gmath.MinTol)
	if len(hits) != 1 {
		tst.Fatalf("axis line: got %d hits", len(hits))
	}
	if hits[0].Kind != Tangent {
		tst.Errorf("apex hit should be Tangent, got %v", hits[0].Kind)
	}
	chk.Scalar(tst, "apex", 1e-9, gmath.Distance(hits[0].Pos, gmath.Point3{}), 0)
}

func Test_plane_sphere_circle(tst *testing.T) {

	chk.PrintTitle("plane_sphere_circle")

	// the x=1 plane cuts the r=2 sphere in a sqrt(3) circle at (1,0,0)
	p := surface.NewPlane(gmath.Point3{X: 1}, xAxis)
	s := surface.NewSphere(gmath.Point3{}, 2)
	curves, err := SurfaceAndSurface(p, s, gmath.MinTol, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(curves) != 1 {
		tst.Fatalf("expected 1 curve, got %d", len(curves))
	}
	c, ok := curves[0].(*curve.Circle)
	if !ok {
		tst.Fatalf("expected a circle, got %T", curves[0])
	}
	chk.Scalar(tst, "r", 1e-9, c.R, math.Sqrt(3))
	chk.Scalar(tst, "cx", 1e-9, c.Frame.Origin.X, 1)
}

func Test_plane_torus_villarceau(tst *testing.T) {

	chk.PrintTitle("plane_torus_villarceau")

	// plane through the center at the Villarceau angle asin(r/R)
	torus := surface.NewTorus(gmath.Point3{}, zAxis, 1, 3)
	angle := math.Asin(1.0 / 3.0)
	// tilt the equatorial normal about the y axis by that angle
	n := gmath.Vector3{X: math.Sin(angle), Y: 0, Z: math.Cos(angle)}.MustUnit()
	p := surface.NewPlane(gmath.Point3{}, n)
	curves, err := SurfaceAndSurface(p, torus, gmath.MinTol, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(curves) != 2 {
		tst.Fatalf("expected the two Villarceau circles, got %d curves", len(curves))
	}
	for i, cc := range curves {
		c, ok := cc.(*curve.Circle)
		if !ok {
			tst.Fatalf("curve %d is %T, not a circle", i, cc)
		}
		chk.Scalar(tst, "R", 1e-9, c.R, 3)
		// every point of a Villarceau circle lies on the torus
		for _, u := range []float64{0, 1.1, 2.7, 4.9} {
			pos, _, _ := c.Evaluate(u)
			_, closest := torus.Inverse(pos, false, gmath.Point2{})
			chk.Scalar(tst, "on torus", 1e-6, gmath.Distance(pos, closest), 0)
		}
	}
}

func Test_sphere_sphere_circle(tst *testing.T) {

	chk.PrintTitle("sphere_sphere_circle")

	a := surface.NewSphere(gmath.Point3{}, 2)
	b := surface.NewSphere(gmath.Point3{X: 2}, 2)
	curves, err := SurfaceAndSurface(a, b, gmath.MinTol, nil)
	if err != nil || len(curves) != 1 {
		tst.Fatalf("got %d curves, err %v", len(curves), err)
	}
	c := curves[0].(*curve.Circle)
	chk.Scalar(tst, "cx", 1e-9, c.Frame.Origin.X, 1)
	chk.Scalar(tst, "r", 1e-9, c.R, math.Sqrt(3))
}

func Test_coincident_planes_degenerate(tst *testing.T) {

	chk.PrintTitle("coincident_planes_degenerate")

	a := surface.NewPlane(gmath.Point3{}, zAxis)
	b := surface.NewPlane(gmath.Point3{X: 5}, zAxis)
	_, err := SurfaceAndSurface(a, b, gmath.MinTol, nil)
	if err == nil {
		tst.Fatalf("coincident planes must report degeneracy")
	}
}

func Test_walker_cylinder_cylinder(tst *testing.T) {

	chk.PrintTitle("walker_cylinder_cylinder")

	// two equal perpendicular cylinders: no closed form here, the walker
	// must produce curves whose points lie on both surfaces
	a := surface.NewCylinder(gmath.Point3{Z: -3}, zAxis, 1, gmath.Interval1{Lo: 0, Hi: 6})
	yAxis := gmath.Vector3{X: 0, Y: 1, Z: 0}.MustUnit()
	b := surface.NewCylinder(gmath.Point3{Y: -3}, yAxis, 1, gmath.Interval1{Lo: 0, Hi: 6})
	curves, err := SurfaceAndSurface(a, b, gmath.MinTol, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(curves) == 0 {
		tst.Fatalf("walker found no intersection curves")
	}
	for _, cc := range curves {
		dom := cc.Domain()
		for i := 0; i <= 8; i++ {
			t := dom.Lo + dom.Length()*float64(i)/8
			pos := curve.Evaluate0(cc, t)
			_, ca := a.Inverse(pos, false, gmath.Point2{})
			_, cb := b.Inverse(pos, false, gmath.Point2{})
			chk.Scalar(tst, "on a", 1e-3, gmath.Distance(pos, ca), 0)
			chk.Scalar(tst, "on b", 1e-3, gmath.Distance(pos, cb), 0)
		}
	}
}

func Test_line_and_curve(tst *testing.T) {

	chk.PrintTitle("line_and_curve")

	circle := curve.NewCircle(gmath.Point3{}, zAxis, 2)
	hits := LineAndCurve(wholeLine(gmath.Point3{X: -5}, xAxis), circle, gmath.MinTol)
	if len(hits) != 2 {
		tst.Fatalf("line through circle: got %d hits", len(hits))
	}
	chk.Scalar(tst, "x0", 1e-9, hits[0].Pos.X, -2)
	chk.Scalar(tst, "x1", 1e-9, hits[1].Pos.X, 2)

	// tangent line at y=2
	hits = LineAndCurve(wholeLine(gmath.Point3{X: -5, Y: 2}, xAxis), circle, gmath.MinTol)
	if len(hits) != 1 || hits[0].Kind != Tangent {
		tst.Fatalf("tangent line: got %v", hits)
	}
}

func Test_curve_and_surface(tst *testing.T) {

	chk.PrintTitle("curve_and_surface")

	// circle of radius 2 in the xz plane against the plane z=0
	yAxis := gmath.Vector3{X: 0, Y: 1, Z: 0}.MustUnit()
	circle := curve.NewCircle(gmath.Point3{}, yAxis, 2)
	plane := surface.NewPlane(gmath.Point3{}, zAxis)
	hits := CurveAndSurface(circle, plane, gmath.MinTol)
	if len(hits) != 2 {
		tst.Fatalf("expected 2 crossings, got %d", len(hits))
	}
	for _, h := range hits {
		chk.Scalar(tst, "z", 1e-6, h.Pos.Z, 0)
		chk.Scalar(tst, "|x|", 1e-6, math.Abs(h.Pos.X), 2)
	}
}
