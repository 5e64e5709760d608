// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
	"github.com/cpmech/sgm/topo"
)

// RayFire shoots origin+t*axis through an entity and returns the
// ordered, deduplicated hits. Dispatch follows the entity kind: bodies
// fan out to volumes, volumes query their face tree, faces run
// line/surface then the in-face filter, edges run line/curve with a
// domain clip, complexes query their triangle tree. When useWholeLine
// is true, hits behind the origin are kept.
func RayFire(t *topo.Thing, origin gmath.Point3, axis gmath.UnitVector3, ent topo.Entity, tol float64, useWholeLine bool) []Hit {
	tol = floorTol(tol)
	ray := gmath.Ray3{Origin: origin, Axis: axis, UseWholeLine: useWholeLine}
	hits := fireEntity(t, ray, ent, tol)
	hits = clipHitsToRay(hits, ray, tol)
	return sortAndDedupeHits(hits, tol)
}

// IntersectSegment fires the bounded segment through an entity: a
// RayFire whose hit parameters are clipped to the segment.
func IntersectSegment(t *topo.Thing, seg gmath.Segment3, ent topo.Entity, tol float64) []Hit {
	tol = floorTol(tol)
	dir, ok := seg.Direction().Unit()
	if !ok {
		return nil
	}
	ray := gmath.Ray3{
		Origin:    seg.Start,
		Axis:      dir,
		Domain:    gmath.Interval1{Lo: 0, Hi: seg.Direction().Length()},
		HasDomain: true,
	}
	hits := fireEntity(t, ray, ent, tol)
	hits = clipHitsToRay(hits, ray, tol)
	return sortAndDedupeHits(hits, tol)
}

func fireEntity(t *topo.Thing, ray gmath.Ray3, ent topo.Entity, tol float64) []Hit {
	switch e := ent.(type) {
	case *topo.Body:
		var hits []Hit
		for _, v := range e.Volumes(t) {
			hits = append(hits, fireEntity(t, ray, v, tol)...)
		}
		return hits
	case *topo.Volume:
		var hits []Hit
		for _, key := range e.FaceTree(t).HitsLine(ray.Origin, ray.Axis, tol) {
			f, ok := t.FindEntity(topo.ID(key))
			if !ok {
				chk.Panic("isect: volume %d face tree holds dead id %d", e.ID(), key)
			}
			hits = append(hits, fireEntity(t, ray, f, tol)...)
		}
		return hits
	case *topo.Face:
		srf := e.Surface(t)
		var hits []Hit
		for _, h := range LineAndSurface(ray, srf, tol) {
			uv, _ := srf.Inverse(h.Pos, false, gmath.Point2{})
			if PointInFace(t, e, uv, tol) {
				hits = append(hits, h)
			}
		}
		return hits
	case *topo.Edge:
		crv := e.Curve(t)
		var hits []Hit
		for _, h := range LineAndCurve(ray, crv, tol+e.Tol) {
			u, _ := crv.Inverse(h.Pos, false, 0)
			if e.Dom.Contains(u, tol) {
				hits = append(hits, h)
			}
		}
		return hits
	case *topo.Complex:
		var hits []Hit
		for _, key := range e.TriangleTree().HitsLine(ray.Origin, ray.Axis, tol) {
			a, b, c := e.Triangle(int(key))
			if h, ok := rayTriangle(ray, a, b, c, tol); ok {
				hits = append(hits, h)
			}
		}
		return hits
	default:
		return nil
	}
}

// rayTriangle intersects the line with the triangle's plane and tests
// containment by barycentric signs.
func rayTriangle(ray gmath.Ray3, a, b, c gmath.Point3, tol float64) (Hit, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	n := e1.Cross(e2)
	denom := n.Dot(ray.Axis.Vec())
	if math.Abs(denom) < gmath.Zero {
		return Hit{}, false
	}
	t := n.Dot(a.Sub(ray.Origin)) / denom
	p := ray.PointAt(t)
	// inside-ness via the same-side test against each edge
	for _, pair := range [3][2]gmath.Point3{{a, b}, {b, c}, {c, a}} {
		edge := pair[1].Sub(pair[0])
		if n.Cross(edge).Dot(p.Sub(pair[0])) < -tol {
			return Hit{}, false
		}
	}
	return Hit{Pos: p, Kind: Point, T: t}, true
}

// PointInFace reports whether the parameter point uv lies inside the
// face's trimming loops, by the winding of the facetted loop polygons in
// parameter space. A face with no edges covers its whole surface.
func PointInFace(t *topo.Thing, f *topo.Face, uv gmath.Point2, tol float64) bool {
	srf := f.Surface(t)
	if f.EdgeIDs.Len() == 0 {
		return srf.Domain().Contains(uv.U, uv.V, tol)
	}
	if srf.ClosedInU() {
		// a face wrapping the seam has no meaningful horizontal parity;
		// constant-v rim edges bound a v-band instead
		if ok, inside := bandContains(t, f, srf, uv, tol); ok {
			return inside
		}
	}
	crossings := 0
	onBoundary := false
	for _, e := range f.Edges(t) {
		crv := e.Curve(t)
		const n = 64
		prev := paramOnSurface(srf, crv, e.Dom.Lo, uv)
		for i := 1; i <= n; i++ {
			u := e.Dom.Lo + e.Dom.Length()*float64(i)/n
			cur := paramOnSurface(srf, crv, u, uv)
			if segDistance2(prev, cur, uv) < tol*tol {
				onBoundary = true
			}
			// horizontal ray to +u from uv
			if (prev.V > uv.V) != (cur.V > uv.V) {
				xi := prev.U + (uv.V-prev.V)/(cur.V-prev.V)*(cur.U-prev.U)
				if xi > uv.U {
					crossings++
				}
			}
			prev = cur
		}
	}
	if onBoundary {
		return true
	}
	return crossings%2 == 1
}

// bandContains handles faces whose edges are all constant-v rims on a
// closed-in-u surface (cylinder walls, cone walls, sphere caps): each
// rim bounds the material band from one side, decided by its traversal
// direction from the edge-side map. ok is false when any edge is not a
// rim, sending the caller to the generic parity test.
func bandContains(t *topo.Thing, f *topo.Face, srf surface.Surface, uv gmath.Point2, tol float64) (ok, inside bool) {
	dom := srf.Domain()
	lo, hi := dom.V.Lo, dom.V.Hi
	for _, e := range f.Edges(t) {
		crv := e.Curve(t)
		var vs [3]float64
		for k, frac := range []float64{0, 0.5, 1} {
			p := paramOnSurface(srf, crv, e.Dom.Lo+frac*e.Dom.Length(), uv)
			vs[k] = p.V
		}
		if math.Abs(vs[0]-vs[1]) > 100*tol || math.Abs(vs[1]-vs[2]) > 100*tol {
			return false, false
		}
		// traversal direction in u from the curve tangent against the
		// surface's u-derivative at the rim midpoint
		mid := e.Dom.Mid()
		pMid, d1, _ := crv.Evaluate(mid)
		uvMid, _ := srf.Inverse(pMid, true, uv)
		ascending := srf.Evaluate(uvMid.U, uvMid.V).Du.Dot(d1) > 0
		if f.SideOf(e) == topo.SideRight {
			ascending = !ascending
		}
		if ascending {
			// material lies above this rim
			if vs[1] > lo {
				lo = vs[1]
			}
		} else {
			if vs[1] < hi {
				hi = vs[1]
			}
		}
	}
	return true, uv.V >= lo-tol && uv.V <= hi+tol
}

// paramOnSurface maps a curve point at parameter u into the surface's
// parameter space, guessing near ref to stay on the right seam branch.
func paramOnSurface(srf surface.Surface, crv curve.Curve, u float64, ref gmath.Point2) gmath.Point2 {
	p := curve.Evaluate0(crv, u)
	uv, _ := srf.Inverse(p, true, ref)
	return uv
}

func segDistance2(a, b, p gmath.Point2) float64 {
	du, dv := b.U-a.U, b.V-a.V
	l2 := du*du + dv*dv
	t := 0.0
	if l2 > 0 {
		t = gmath.Clamp(((p.U-a.U)*du+(p.V-a.V)*dv)/l2, 0, 1)
	}
	qu, qv := a.U+t*du-p.U, a.V+t*dv-p.V
	return qu*qu + qv*qv
}

// PointInEntity reports whether pos lies inside (or on) the entity: for
// bodies and volumes, by parity of ray-fire crossings; for faces, edges
// and vertices, by proximity within tol.
func PointInEntity(t *topo.Thing, pos gmath.Point3, ent topo.Entity, tol float64) bool {
	tol = floorTol(tol)
	switch e := ent.(type) {
	case *topo.Body:
		for _, v := range e.Volumes(t) {
			if PointInEntity(t, pos, v, tol) {
				return true
			}
		}
		return false
	case *topo.Volume:
		if !e.Box(t).Contains(pos, tol) {
			return false
		}
		// fire along a fixed direction and count forward crossings
		axis := gmath.Vector3{X: 0.577350269189626, Y: 0.577350269189626, Z: 0.577350269189626}.MustUnit()
		hits := RayFire(t, pos, axis, e, tol, false)
		n := 0
		for _, h := range hits {
			if h.T < tol {
				return true // on the boundary
			}
			n++
		}
		return n%2 == 1
	case *topo.Face:
		srf := e.Surface(t)
		uv, closest := srf.Inverse(pos, false, gmath.Point2{})
		return gmath.Distance(pos, closest) <= tol && PointInFace(t, e, uv, tol)
	case *topo.Edge:
		crv := e.Curve(t)
		u, closest := crv.Inverse(pos, false, 0)
		return gmath.Distance(pos, closest) <= tol+e.Tol && e.Dom.Contains(u, tol)
	case *topo.Vertex:
		return gmath.Distance(pos, e.Pos) <= tol
	default:
		return false
	}
}

// FindCloseFaces returns the faces of ent whose bounding boxes come
// within r of pos, in id order.
func FindCloseFaces(t *topo.Thing, pos gmath.Point3, ent topo.Entity, r float64) []*topo.Face {
	probe := gmath.Box3{Min: pos, Max: pos}.Inflate(r)
	var out []*topo.Face
	switch e := ent.(type) {
	case *topo.Body:
		for _, v := range e.Volumes(t) {
			out = append(out, FindCloseFaces(t, pos, v, r)...)
		}
	case *topo.Volume:
		for _, key := range e.FaceTree(t).HitsBox(probe, 0) {
			f, _ := t.FindEntity(topo.ID(key))
			out = append(out, f.(*topo.Face))
		}
	case *topo.Face:
		if e.Box(t).Overlaps(probe, 0) {
			out = append(out, e)
		}
	}
	return out
}

// FindCloseEdges returns the edges of ent whose bounding boxes come
// within r of pos, in id order.
func FindCloseEdges(t *topo.Thing, pos gmath.Point3, ent topo.Entity, r float64) []*topo.Edge {
	probe := gmath.Box3{Min: pos, Max: pos}.Inflate(r)
	seen := map[topo.ID]bool{}
	var out []*topo.Edge
	var visitFace func(f *topo.Face)
	visitFace = func(f *topo.Face) {
		for _, e := range f.Edges(t) {
			if !seen[e.ID()] && e.Box(t).Overlaps(probe, 0) {
				seen[e.ID()] = true
				out = append(out, e)
			}
		}
	}
	switch e := ent.(type) {
	case *topo.Body:
		for _, v := range e.Volumes(t) {
			for _, f := range v.Faces(t) {
				visitFace(f)
			}
			for _, we := range v.WireEdges(t) {
				if !seen[we.ID()] && we.Box(t).Overlaps(probe, 0) {
					seen[we.ID()] = true
					out = append(out, we)
				}
			}
		}
	case *topo.Volume:
		for _, f := range e.Faces(t) {
			visitFace(f)
		}
	case *topo.Face:
		visitFace(e)
	case *topo.Edge:
		if e.Box(t).Overlaps(probe, 0) {
			out = append(out, e)
		}
	}
	return out
}
