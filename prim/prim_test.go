// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prim

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/isect"
	"github.com/cpmech/sgm/topo"
)

var zAxis = gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit()

func Test_block_volume(tst *testing.T) {

	chk.PrintTitle("block_volume")

	t := topo.NewThing()
	b := CreateBlock(t, gmath.Point3{}, gmath.Point3{X: 10, Y: 10, Z: 10})
	chk.Scalar(tst, "volume", 1e-9, FindVolume(t, b), 1000)

	b2 := CreateBlock(t, gmath.Point3{X: 1, Y: 2, Z: 3}, gmath.Point3{X: 3, Y: 5, Z: 7})
	chk.Scalar(tst, "volume", 1e-9, FindVolume(t, b2), 2*3*4)
}

func Test_cylinder_volume(tst *testing.T) {

	chk.PrintTitle("cylinder_volume")

	t := topo.NewThing()
	b := CreateCylinder(t, gmath.Point3{}, gmath.Point3{Z: 1}, 1)
	vol := FindVolume(t, b)
	chk.Scalar(tst, "volume", math.Pi*gmath.MinTol, vol, math.Pi)
}

func Test_sphere_and_torus_measures(tst *testing.T) {

	chk.PrintTitle("sphere_and_torus_measures")

	t := topo.NewThing()
	sb := CreateSphere(t, gmath.Point3{}, 2)
	sf := sb.Volumes(t)[0].Faces(t)[0]
	chk.Scalar(tst, "sphere area", 1e-6, FindArea(t, sf), 4*math.Pi*4)
	chk.Scalar(tst, "sphere volume", 1e-6, FindVolume(t, sb), 4.0/3.0*math.Pi*8)

	tb := CreateTorus(t, gmath.Point3{}, zAxis, 1, 3)
	tf := tb.Volumes(t)[0].Faces(t)[0]
	chk.Scalar(tst, "torus area", 1e-6, FindArea(t, tf), 4*math.Pi*math.Pi*1*3)
	chk.Scalar(tst, "torus volume", 1e-6, FindVolume(t, tb), 2*math.Pi*math.Pi*1*1*3)
}

func Test_cone_volume(tst *testing.T) {

	chk.PrintTitle("cone_volume")

	t := topo.NewThing()
	b := CreateCone(t, gmath.Point3{}, gmath.Point3{Z: 3}, 2, 0)
	chk.Scalar(tst, "volume", 1e-6, FindVolume(t, b), math.Pi*4*3/3)

	// frustum: full cone minus the cut-off tip
	fr := CreateCone(t, gmath.Point3{}, gmath.Point3{Z: 1}, 2, 1)
	full := math.Pi * 4 * 2 / 3  // apex would be at z=2
	tip := math.Pi * 1 * 1 / 3
	chk.Scalar(tst, "frustum", 1e-6, FindVolume(t, fr), full-tip)
}

func Test_ray_fire_cylinder(tst *testing.T) {

	chk.PrintTitle("ray_fire_cylinder")

	// a transverse ray through the wall at half height
	t := topo.NewThing()
	b := CreateCylinder(t, gmath.Point3{}, gmath.Point3{Z: 2}, 1)
	xAxis := gmath.Vector3{X: 1}.MustUnit()
	hits := isect.RayFire(t, gmath.Point3{X: -2, Z: 1}, xAxis, b, gmath.MinTol, true)
	if len(hits) != 2 {
		tst.Fatalf("expected 2 hits, got %d", len(hits))
	}
	chk.Scalar(tst, "x0", 1e-6, hits[0].Pos.X, -1)
	chk.Scalar(tst, "x1", 1e-6, hits[1].Pos.X, 1)
	for _, h := range hits {
		if h.Kind != isect.Point {
			tst.Errorf("want Point, got %v", h.Kind)
		}
	}

	// containment on both sides of the wall
	if isect.PointInEntity(t, gmath.Point3{X: -2, Z: 1}, b, gmath.MinTol) {
		tst.Errorf("(-2,0,1) must be outside")
	}
	if !isect.PointInEntity(t, gmath.Point3{Z: 1}, b, gmath.MinTol) {
		tst.Errorf("(0,0,1) must be inside")
	}
}

func Test_nub_through_points(tst *testing.T) {

	chk.PrintTitle("nub_through_points")

	// interpolation through measured points stays exact at the data
	pts := []gmath.Point3{
		{X: -2, Y: 0.5}, {X: -1, Y: 1.5}, {X: 0, Y: 1}, {X: 1, Y: 1.5}, {X: 2, Y: 2},
	}
	c, err := CreateNUBCurve(pts, nil)
	if err != nil {
		tst.Fatalf("interpolation failed: %v", err)
	}
	for _, p := range pts {
		u, closest := curve.Invert(c, p)
		chk.Scalar(tst, "dist", gmath.MinTol, gmath.Distance(closest, p), 0)
		// the inverse parameter maps back to the same point
		back, _, _ := c.Evaluate(u)
		chk.Scalar(tst, "roundtrip", gmath.MinTol, gmath.Distance(back, p), 0)
	}
}

func Test_nub_with_end_vectors(tst *testing.T) {

	chk.PrintTitle("nub_with_end_vectors")

	pts := []gmath.Point3{{X: 0}, {X: 1, Y: 1}, {X: 2}}
	v0 := gmath.Vector3{X: 1, Y: 2}
	v1 := gmath.Vector3{X: 1, Y: -2}
	c, err := CreateNUBCurveWithEndVectors(pts, v0, v1)
	if err != nil {
		tst.Fatalf("interpolation failed: %v", err)
	}
	dom := c.Domain()
	p0, d0, _ := c.Evaluate(dom.Lo)
	p1, d1, _ := c.Evaluate(dom.Hi)
	chk.Scalar(tst, "p0", 1e-9, gmath.Distance(p0, pts[0]), 0)
	chk.Scalar(tst, "p1", 1e-9, gmath.Distance(p1, pts[2]), 0)
	chk.Scalar(tst, "d0", 1e-9, d0.Minus(v0).Length(), 0)
	chk.Scalar(tst, "d1", 1e-9, d1.Minus(v1).Length(), 0)
}

func Test_wire_and_sheet_bodies(tst *testing.T) {

	chk.PrintTitle("wire_and_sheet_bodies")

	t := topo.NewThing()
	e := CreateEdge(t, curve.NewBoundedLine(gmath.Point3{}, zAxis, gmath.Interval1{Lo: 0, Hi: 2}))
	wb := CreateWireBody(t, []*topo.Edge{e})
	if len(wb.Volumes(t)) != 1 || wb.Volumes(t)[0].WireEdgeIDs.Len() != 1 {
		tst.Fatalf("wire body shape wrong")
	}
	if e.StartID == 0 || e.EndID == 0 {
		tst.Fatalf("open edge must carry end vertices")
	}

	// a complex of one triangle ray-fires like a wall
	cx := CreateComplex(t, []gmath.Point3{{X: -1, Y: -1, Z: 1}, {X: 3, Y: -1, Z: 1}, {X: -1, Y: 3, Z: 1}}, nil, []int{0, 1, 2})
	hits := isect.RayFire(t, gmath.Point3{}, zAxis, cx, gmath.MinTol, false)
	if len(hits) != 1 {
		tst.Fatalf("complex ray fire: got %d hits", len(hits))
	}
	chk.Scalar(tst, "z", 1e-9, hits[0].Pos.Z, 1)
}

func Test_find_similar_faces(tst *testing.T) {

	chk.PrintTitle("find_similar_faces")

	t := topo.NewThing()
	a := CreateSphere(t, gmath.Point3{}, 2)
	CreateSphere(t, gmath.Point3{X: 10}, 2)
	CreateSphere(t, gmath.Point3{X: 20}, 5)
	fa := a.Volumes(t)[0].Faces(t)[0]
	similar := FindSimilarFaces(t, fa, gmath.MinTol)
	if len(similar) != 1 {
		tst.Fatalf("expected exactly the equal-radius sphere, got %d", len(similar))
	}
}
