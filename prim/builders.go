// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prim builds canonical bodies (block, sphere, cylinder, cone,
// torus, revolve, sheet, wire) by assembling topology over prefabricated
// geometry, plus the query operations (volume, area, similarity) defined
// on them.
package prim

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
	"github.com/cpmech/sgm/topo"
)

// CreateBlock builds an axis-aligned box spanning the two opposite
// corners p0, p1.
func CreateBlock(t *topo.Thing, p0, p1 gmath.Point3) *topo.Body {
	lo := gmath.Point3{X: math.Min(p0.X, p1.X), Y: math.Min(p0.Y, p1.Y), Z: math.Min(p0.Z, p1.Z)}
	hi := gmath.Point3{X: math.Max(p0.X, p1.X), Y: math.Max(p0.Y, p1.Y), Z: math.Max(p0.Z, p1.Z)}

	b := t.NewBody()
	b.ConstructionPoints = []gmath.Point3{p0, p1}
	v := t.NewVolume()
	b.AddVolume(t, v)

	// the eight corners, indexed by the three axis bits
	corner := func(ix, iy, iz int) gmath.Point3 {
		p := lo
		if ix == 1 {
			p.X = hi.X
		}
		if iy == 1 {
			p.Y = hi.Y
		}
		if iz == 1 {
			p.Z = hi.Z
		}
		return p
	}
	verts := make(map[[3]int]*topo.Vertex)
	for ix := 0; ix <= 1; ix++ {
		for iy := 0; iy <= 1; iy++ {
			for iz := 0; iz <= 1; iz++ {
				verts[[3]int{ix, iy, iz}] = t.NewVertex(corner(ix, iy, iz))
			}
		}
	}

	edges := make(map[[2][3]int]*topo.Edge)
	edgeBetween := func(a, b [3]int) *topo.Edge {
		if e, ok := edges[[2][3]int{a, b}]; ok {
			return e
		}
		if e, ok := edges[[2][3]int{b, a}]; ok {
			return e
		}
		va, vb := verts[a], verts[b]
		dir := vb.Pos.Sub(va.Pos).MustUnit()
		crv := t.NewCurve(curve.NewLine(va.Pos, dir))
		e := t.NewEdge(crv, gmath.Interval1{Lo: 0, Hi: gmath.Distance(va.Pos, vb.Pos)})
		e.SetVertices(t, va, vb)
		edges[[2][3]int{a, b}] = e
		return e
	}

	// each face: outward normal and its four corners counter-clockwise
	// when viewed from outside
	type faceSpec struct {
		normal  gmath.Vector3
		corners [4][3]int
	}
	specs := []faceSpec{
		{gmath.Vector3{X: -1}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
		{gmath.Vector3{X: 1}, [4][3]int{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
		{gmath.Vector3{Y: -1}, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
		{gmath.Vector3{Y: 1}, [4][3]int{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
		{gmath.Vector3{Z: -1}, [4][3]int{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
		{gmath.Vector3{Z: 1}, [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	}
	for _, spec := range specs {
		n := spec.normal.MustUnit()
		origin := verts[spec.corners[0]].Pos
		srf := t.NewSurface(surface.NewPlane(origin, n))
		f := t.NewFace(srf)
		v.AddFace(t, f)
		for i := 0; i < 4; i++ {
			a, b := spec.corners[i], spec.corners[(i+1)%4]
			e := edgeBetween(a, b)
			side := topo.SideLeft
			if e.StartID != verts[a].ID() {
				side = topo.SideRight // loop traverses the shared edge backward
			}
			f.AddEdge(t, e, side)
		}
	}
	return b
}

// CreateSphere builds a solid sphere: one edgeless face over the full
// closed surface.
func CreateSphere(t *topo.Thing, center gmath.Point3, r float64) *topo.Body {
	if r <= 0 {
		chk.Panic("prim: sphere radius must be positive, got %g", r)
	}
	b := t.NewBody()
	b.ConstructionPoints = []gmath.Point3{center}
	v := t.NewVolume()
	b.AddVolume(t, v)
	srf := t.NewSurface(surface.NewSphere(center, r))
	f := t.NewFace(srf)
	v.AddFace(t, f)
	return b
}

// CreateCylinder builds a solid cylinder between the two end-cap centers.
func CreateCylinder(t *topo.Thing, bottom, top gmath.Point3, r float64) *topo.Body {
	axis := top.Sub(bottom).MustUnit()
	h := gmath.Distance(bottom, top)

	b := t.NewBody()
	b.ConstructionPoints = []gmath.Point3{bottom, top}
	v := t.NewVolume()
	b.AddVolume(t, v)

	wall := surface.NewCylinder(bottom, axis, r, gmath.Interval1{Lo: 0, Hi: h})
	side := t.NewFace(t.NewSurface(wall))
	v.AddFace(t, side)

	botCircle := t.NewCurve(curve.NewCircle(bottom, axis, r))
	topCircle := t.NewCurve(curve.NewCircle(top, axis, r))
	eb := t.NewEdge(botCircle, gmath.FullAngle)
	et := t.NewEdge(topCircle, gmath.FullAngle)
	// material of the wall lies above the bottom rim and below the top rim
	side.AddEdge(t, eb, topo.SideLeft)
	side.AddEdge(t, et, topo.SideRight)

	// caps: plane normal outward, each bounded by the shared rim circle
	capBot := t.NewFace(t.NewSurface(surface.NewPlane(bottom, axis.Negate())))
	v.AddFace(t, capBot)
	capBot.AddEdge(t, eb, topo.SideRight)

	capTop := t.NewFace(t.NewSurface(surface.NewPlane(top, axis)))
	v.AddFace(t, capTop)
	capTop.AddEdge(t, et, topo.SideLeft)
	return b
}

// CreateCone builds a solid cone or frustum between two cap centers with
// the given end radii (one may be zero for an apex).
func CreateCone(t *topo.Thing, bottom, top gmath.Point3, rBot, rTop float64) *topo.Body {
	if rBot <= 0 && rTop <= 0 {
		chk.Panic("prim: cone needs at least one positive radius")
	}
	if rBot < rTop {
		// normalize so the wide end is at the bottom
		bottom, top = top, bottom
		rBot, rTop = rTop, rBot
	}
	h := gmath.Distance(bottom, top)
	axis := bottom.Sub(top).MustUnit() // from the narrow end toward the wide end

	// apex: where the wall radius hits zero, on or beyond the narrow end
	halfAngle := math.Atan((rBot - rTop) / h)
	var apex gmath.Point3
	if rTop > 0 {
		ext := rTop * h / (rBot - rTop)
		apex = top.Add(axis.Negate().Vec().Scale(ext))
	} else {
		apex = top
	}
	// the cone's v parameter runs along the axis from the apex
	vBot := gmath.Distance(apex, bottom)
	vTop := 0.0
	if rTop > 0 {
		vTop = gmath.Distance(apex, top)
	}

	b := t.NewBody()
	b.ConstructionPoints = []gmath.Point3{bottom, top}
	v := t.NewVolume()
	b.AddVolume(t, v)

	wall := surface.NewCone(apex, axis, halfAngle, gmath.Interval1{Lo: vTop, Hi: vBot})
	side := t.NewFace(t.NewSurface(wall))
	v.AddFace(t, side)

	botCircle := t.NewCurve(curve.NewCircle(bottom, axis, rBot))
	eb := t.NewEdge(botCircle, gmath.FullAngle)
	// the wall's material sits at smaller v than the wide rim
	side.AddEdge(t, eb, topo.SideRight)

	capBot := t.NewFace(t.NewSurface(surface.NewPlane(bottom, axis)))
	v.AddFace(t, capBot)
	capBot.AddEdge(t, eb, topo.SideLeft)

	if rTop > 0 {
		topCircle := t.NewCurve(curve.NewCircle(top, axis, rTop))
		et := t.NewEdge(topCircle, gmath.FullAngle)
		side.AddEdge(t, et, topo.SideLeft)
		capTop := t.NewFace(t.NewSurface(surface.NewPlane(top, axis.Negate())))
		v.AddFace(t, capTop)
		capTop.AddEdge(t, et, topo.SideRight)
	} else {
		// apex vertex so downstream stitching has an anchor
		t.NewVertex(apex)
	}
	return b
}

// CreateTorus builds a solid torus: one edgeless face.
func CreateTorus(t *topo.Thing, center gmath.Point3, axis gmath.UnitVector3, rMinor, rMajor float64) *topo.Body {
	if rMinor <= 0 || rMajor <= rMinor {
		chk.Panic("prim: torus radii must satisfy 0 < rMinor < rMajor, got (%g,%g)", rMinor, rMajor)
	}
	b := t.NewBody()
	b.ConstructionPoints = []gmath.Point3{center}
	v := t.NewVolume()
	b.AddVolume(t, v)
	f := t.NewFace(t.NewSurface(surface.NewTorus(center, axis, rMinor, rMajor)))
	v.AddFace(t, f)
	return b
}

// CreateRevolve revolves a generator curve fully about the axis. A
// closed generator gives an edgeless face; an open one gets rim circles
// at its ends (omitted where the generator touches the axis).
func CreateRevolve(t *topo.Thing, origin gmath.Point3, axis gmath.UnitVector3, gen curve.Curve) *topo.Body {
	b := t.NewBody()
	b.ConstructionPoints = []gmath.Point3{origin}
	v := t.NewVolume()
	b.AddVolume(t, v)

	srf := surface.NewRevolve(origin, axis, gen)
	f := t.NewFace(t.NewSurface(srf))
	v.AddFace(t, f)

	if !gen.IsClosed() {
		dom := gen.Domain()
		if rim, ok := srf.VParamLine(dom.Lo); ok {
			e := t.NewEdge(t.NewCurve(rim), rim.Domain())
			f.AddEdge(t, e, topo.SideLeft)
		}
		if rim, ok := srf.VParamLine(dom.Hi); ok {
			e := t.NewEdge(t.NewCurve(rim), rim.Domain())
			f.AddEdge(t, e, topo.SideRight)
		}
	}
	return b
}

// CreateSheetBody builds a two-sided sheet body over one surface bounded
// by the given edges and sides.
func CreateSheetBody(t *topo.Thing, srf surface.Surface, edges []*topo.Edge, sides []topo.EdgeSide) *topo.Body {
	if len(edges) != len(sides) {
		chk.Panic("prim: sheet body edges and sides must pair up (%d vs %d)", len(edges), len(sides))
	}
	b := t.NewBody()
	v := t.NewVolume()
	b.AddVolume(t, v)
	f := t.NewFace(t.NewSurface(srf))
	f.NumSides = 2
	v.AddFace(t, f)
	for i, e := range edges {
		f.AddEdge(t, e, sides[i])
	}
	return b
}

// CreateWireBody builds a body holding free-standing wire edges.
func CreateWireBody(t *topo.Thing, edges []*topo.Edge) *topo.Body {
	b := t.NewBody()
	v := t.NewVolume()
	b.AddVolume(t, v)
	for _, e := range edges {
		v.AddWireEdge(t, e)
	}
	return b
}

// CreateEdge builds an edge over crv spanning its full domain, with
// vertices at the endpoints for open curves.
func CreateEdge(t *topo.Thing, crv curve.Curve) *topo.Edge {
	dom := crv.Domain()
	e := t.NewEdge(t.NewCurve(crv), dom)
	if !crv.IsClosed() && dom.Length() < 1e9 {
		start := t.NewVertex(curve.Evaluate0(crv, dom.Lo))
		end := t.NewVertex(curve.Evaluate0(crv, dom.Hi))
		e.SetVertices(t, start, end)
	}
	return e
}

// CreateComplex stores an unstructured point/segment/triangle bag.
func CreateComplex(t *topo.Thing, points []gmath.Point3, segments, triangles []int) *topo.Complex {
	return t.NewComplex(points, segments, triangles)
}
