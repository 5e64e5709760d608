// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
	"github.com/cpmech/sgm/topo"
)

var zAxis = gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit()

func Test_facet_curve_circle(tst *testing.T) {

	chk.PrintTitle("facet_curve_circle")

	c := curve.NewCircle(gmath.Point3{}, zAxis, 2)
	params := FacetCurve(c, gmath.FullAngle, Options{})
	if len(params) < 8 {
		tst.Fatalf("full circle needs more than %d samples", len(params))
	}
	// every turn stays within the default edge angle tolerance
	for i := 2; i < len(params); i++ {
		a := curve.Evaluate0(c, params[i-2])
		b := curve.Evaluate0(c, params[i-1])
		d := curve.Evaluate0(c, params[i])
		v1, _ := b.Sub(a).Unit()
		v2, _ := d.Sub(b).Unit()
		if v1.Dot(v2.Vec()) < math.Cos(2*DefaultEdgeAngleTol) {
			tst.Fatalf("turn too sharp at sample %d", i)
		}
	}
}

func Test_triangulate_square_with_hole(tst *testing.T) {

	chk.PrintTitle("triangulate_square_with_hole")

	pts := []gmath.Point2{
		{U: 0, V: 0}, {U: 4, V: 0}, {U: 4, V: 4}, {U: 0, V: 4}, // outer CCW
		{U: 1.5, V: 1.5}, {U: 1.5, V: 2.5}, {U: 2.5, V: 2.5}, {U: 2.5, V: 1.5}, // hole CW
	}
	tris, adj := TriangulatePolygon(pts, [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}})
	if len(tris) == 0 {
		tst.Fatalf("no triangles")
	}
	area := 0.0
	for i := 0; i+2 < len(tris); i += 3 {
		a2 := orient2(pts[tris[i]], pts[tris[i+1]], pts[tris[i+2]])
		if a2 <= 0 {
			tst.Fatalf("triangle %d not counter-clockwise", i/3)
		}
		area += a2 / 2
	}
	chk.Scalar(tst, "area", 1e-9, area, 16-1)
	if len(adj) != len(tris) {
		tst.Fatalf("adjacency length mismatch")
	}
}

func Test_delaunay_flip(tst *testing.T) {

	chk.PrintTitle("delaunay_flip")

	// a thin quad whose initial diagonal violates the circumcircle test
	pts := []gmath.Point2{{U: 0, V: 0}, {U: 2, V: -0.2}, {U: 4, V: 0}, {U: 2, V: 0.2}}
	tris := []int{0, 1, 2, 0, 2, 3}
	adj := BuildAdjacency(tris)
	DelaunayFlip(pts, tris, adj)
	// after flipping, the diagonal joins 1-3
	has13 := false
	for i := 0; i+2 < len(tris); i += 3 {
		tri := tris[i : i+3]
		c13 := 0
		for _, v := range tri {
			if v == 1 || v == 3 {
				c13++
			}
		}
		if c13 == 2 {
			has13 = true
		}
	}
	if !has13 {
		tst.Fatalf("flip did not happen: %v", tris)
	}
}

func buildPlanarFace(t *topo.Thing) *topo.Face {
	// unit square face on the plane z=0 with four line edges
	srf := t.NewSurface(surface.NewPlane(gmath.Point3{}, zAxis))
	f := t.NewFace(srf)
	corners := []gmath.Point3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	verts := make([]*topo.Vertex, 4)
	for i, c := range corners {
		verts[i] = t.NewVertex(c)
	}
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		dir := b.Sub(a).MustUnit()
		crv := t.NewCurve(curve.NewLine(a, dir))
		e := t.NewEdge(crv, gmath.Interval1{Lo: 0, Hi: gmath.Distance(a, b)})
		e.SetVertices(t, verts[i], verts[(i+1)%4])
		f.AddEdge(t, e, topo.SideLeft)
	}
	return f
}

func Test_facet_planar_face(tst *testing.T) {

	chk.PrintTitle("facet_planar_face")

	t := topo.NewThing()
	f := buildPlanarFace(t)
	facets := FacetFace(t, f, Options{})
	if len(facets.Triangles) < 6 {
		tst.Fatalf("square face: got %d indices", len(facets.Triangles))
	}
	area := 0.0
	for i := 0; i+2 < len(facets.Triangles); i += 3 {
		a := facets.Points2D[facets.Triangles[i]]
		b := facets.Points2D[facets.Triangles[i+1]]
		c := facets.Points2D[facets.Triangles[i+2]]
		o := orient2(a, b, c)
		if o <= 0 {
			tst.Fatalf("triangle %d not counter-clockwise", i/3)
		}
		area += o / 2
	}
	chk.Scalar(tst, "area", 1e-9, area, 1)
	// corner points are owned by vertices
	vertexOwned := 0
	for _, o := range facets.Owner {
		if ent, ok := t.FindEntity(o); ok && ent.Kind() == topo.KindVertex {
			vertexOwned++
		}
	}
	if vertexOwned != 4 {
		tst.Errorf("expected 4 vertex-owned points, got %d", vertexOwned)
	}
	// re-facetting reproduces the identical mesh
	again := FacetFace(t, f, Options{})
	if len(again.Triangles) != len(facets.Triangles) {
		tst.Errorf("re-facet changed the mesh")
	}
}

func Test_facet_sphere_face(tst *testing.T) {

	chk.PrintTitle("facet_sphere_face")

	t := topo.NewThing()
	srf := t.NewSurface(surface.NewSphere(gmath.Point3{}, 1))
	f := t.NewFace(srf)
	facets := FacetFace(t, f, Options{})
	if len(facets.Triangles) == 0 {
		tst.Fatalf("no triangles on sphere")
	}
	// every 3D point lies on the sphere
	for _, p := range facets.Points3D {
		chk.Scalar(tst, "|p|", 1e-9, gmath.Distance(p, gmath.Point3{}), 1)
	}
	// the mesh area approaches 4*pi from below
	area := 0.0
	for i := 0; i+2 < len(facets.Triangles); i += 3 {
		a := facets.Points3D[facets.Triangles[i]]
		b := facets.Points3D[facets.Triangles[i+1]]
		c := facets.Points3D[facets.Triangles[i+2]]
		area += 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
	}
	if area < 4*math.Pi*0.95 || area > 4*math.Pi {
		tst.Errorf("sphere mesh area %g is off 4*pi", area)
	}
}

func Test_facet_cylinder_band(tst *testing.T) {

	chk.PrintTitle("facet_cylinder_band")

	t := topo.NewThing()
	cyl := surface.NewCylinder(gmath.Point3{}, zAxis, 1, gmath.Interval1{Lo: 0, Hi: 2})
	srf := t.NewSurface(cyl)
	f := t.NewFace(srf)

	bottom := t.NewCurve(curve.NewCircle(gmath.Point3{}, zAxis, 1))
	top := t.NewCurve(curve.NewCircle(gmath.Point3{Z: 2}, zAxis, 1))
	eb := t.NewEdge(bottom, gmath.FullAngle)
	et := t.NewEdge(top, gmath.FullAngle)
	f.AddEdge(t, eb, topo.SideLeft)
	f.AddEdge(t, et, topo.SideRight)

	facets := FacetFace(t, f, Options{})
	if len(facets.Triangles) == 0 {
		tst.Fatalf("no triangles on cylinder band")
	}
	for i := 0; i+2 < len(facets.Triangles); i += 3 {
		a := facets.Points2D[facets.Triangles[i]]
		b := facets.Points2D[facets.Triangles[i+1]]
		c := facets.Points2D[facets.Triangles[i+2]]
		if orient2(a, b, c) <= 0 {
			tst.Fatalf("triangle %d not counter-clockwise", i/3)
		}
	}
	// all 3D points on the cylinder wall
	for _, p := range facets.Points3D {
		chk.Scalar(tst, "rho", 1e-9, math.Hypot(p.X, p.Y), 1)
	}
}
