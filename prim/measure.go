// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prim

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/facet"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
	"github.com/cpmech/sgm/topo"
)

// FindVolume computes the volume enclosed by a body via the divergence
// theorem: one third of the outward flux of the position field through
// every face. Faces whose parameter region is the full domain or an
// axis-aligned band integrate by quadrature on the exact surface;
// planar faces integrate their region area exactly along the exact edge
// curves, so canonical bodies come out to quadrature accuracy rather
// than facet accuracy.
func FindVolume(t *topo.Thing, b *topo.Body) float64 {
	total := 0.0
	for _, v := range b.Volumes(t) {
		for _, f := range v.Faces(t) {
			total += faceFlux(t, f)
		}
	}
	return math.Abs(total) / 3
}

// FindArea computes the area of a face, by the same region analysis.
func FindArea(t *topo.Thing, f *topo.Face) float64 {
	srf := f.Surface(t)
	if p, ok := srf.(*surface.Plane); ok && f.EdgeIDs.Len() > 0 {
		return math.Abs(greenArea(t, f, p))
	}
	if ulo, uhi, vlo, vhi, ok := rectRegion(t, f); ok {
		return quadRect(func(u, v float64) float64 {
			e := srf.Evaluate(u, v)
			return e.Du.Cross(e.Dv).Length()
		}, ulo, uhi, vlo, vhi)
	}
	return facetArea(t, f)
}

// faceFlux is the outward flux of the position field through one face.
func faceFlux(t *topo.Thing, f *topo.Face) float64 {
	srf := f.Surface(t)
	sign := 1.0
	if f.Flipped {
		sign = -1
	}
	if p, ok := srf.(*surface.Plane); ok && f.EdgeIDs.Len() > 0 {
		// p.n is constant on a plane; the region area is exact by Green
		height := p.Frame.Z.Dot(p.Frame.Origin.Sub(gmath.Point3{}))
		return sign * height * greenArea(t, f, p)
	}
	if ulo, uhi, vlo, vhi, ok := rectRegion(t, f); ok {
		return sign * quadRect(func(u, v float64) float64 {
			e := srf.Evaluate(u, v)
			pos := gmath.Vector3{X: e.Pos.X, Y: e.Pos.Y, Z: e.Pos.Z}
			return pos.Dot(e.Du.Cross(e.Dv))
		}, ulo, uhi, vlo, vhi)
	}
	// fallback: facet sum; triangles already wind about the outward normal
	facets := facet.FacetFace(t, f, facet.Options{})
	fluxSum := 0.0
	for i := 0; i+2 < len(facets.Triangles); i += 3 {
		a := facets.Points3D[facets.Triangles[i]]
		bb := facets.Points3D[facets.Triangles[i+1]]
		c := facets.Points3D[facets.Triangles[i+2]]
		centroid := gmath.Vector3{
			X: (a.X + bb.X + c.X) / 3,
			Y: (a.Y + bb.Y + c.Y) / 3,
			Z: (a.Z + bb.Z + c.Z) / 3,
		}
		fluxSum += centroid.Dot(bb.Sub(a).Cross(c.Sub(a))) / 2
	}
	return fluxSum
}

// greenArea computes the signed area of a plane face's parameter region
// by Green's theorem along the exact edge curves: area = sum over
// oriented edges of the integral of u dv.
func greenArea(t *topo.Thing, f *topo.Face, p *surface.Plane) float64 {
	area := 0.0
	for _, e := range f.Edges(t) {
		crv := e.Curve(t)
		dir := 1.0
		if f.SideOf(e) == topo.SideRight {
			dir = -1
		}
		area += dir * gmath.Quad1D(gmath.Integrand(func(tt float64) float64 {
			pos, d1, _ := crv.Evaluate(tt)
			u, _, _ := p.Frame.Local(pos)
			dv := p.Frame.Y.Dot(d1)
			return u * dv
		}), e.Dom.Lo, e.Dom.Hi, 64)
	}
	return area
}

// rectRegion recognizes faces whose parameter region is an axis-aligned
// rectangle: edgeless closed surfaces (the whole domain) and bands
// bounded by constant-v rim edges, one side possibly a singular line.
func rectRegion(t *topo.Thing, f *topo.Face) (ulo, uhi, vlo, vhi float64, ok bool) {
	srf := f.Surface(t)
	dom := srf.Domain()
	if f.EdgeIDs.Len() == 0 {
		if dom.U.Length() > 1e9 || dom.V.Length() > 1e9 {
			return 0, 0, 0, 0, false
		}
		return dom.U.Lo, dom.U.Hi, dom.V.Lo, dom.V.Hi, true
	}
	if !srf.ClosedInU() {
		return 0, 0, 0, 0, false
	}
	var rims []float64
	for _, e := range f.Edges(t) {
		crv := e.Curve(t)
		// a rim traces constant v: check at three parameters
		var v0 float64
		for k, frac := range []float64{0, 0.5, 1} {
			pos := curve.Evaluate0(crv, e.Dom.Lo+frac*e.Dom.Length())
			uv, closest := srf.Inverse(pos, false, gmath.Point2{})
			if gmath.Distance(pos, closest) > gmath.MinTol {
				return 0, 0, 0, 0, false
			}
			if k == 0 {
				v0 = uv.V
			} else if math.Abs(uv.V-v0) > gmath.MinTol {
				return 0, 0, 0, 0, false
			}
		}
		rims = append(rims, v0)
	}
	switch len(rims) {
	case 1:
		// the other bound is the singular side of the domain
		if srf.SingularLowV() {
			return dom.U.Lo, dom.U.Hi, dom.V.Lo, rims[0], true
		}
		if srf.SingularHighV() {
			return dom.U.Lo, dom.U.Hi, rims[0], dom.V.Hi, true
		}
		return 0, 0, 0, 0, false
	case 2:
		vlo, vhi = rims[0], rims[1]
		if vlo > vhi {
			vlo, vhi = vhi, vlo
		}
		return dom.U.Lo, dom.U.Hi, vlo, vhi, true
	default:
		return 0, 0, 0, 0, false
	}
}

// quadRect is composite 2D Gauss-Legendre over a rectangle, tiled so
// periodic integrands converge.
func quadRect(fn func(u, v float64) float64, ulo, uhi, vlo, vhi float64) float64 {
	const panels = 16
	du := (uhi - ulo) / panels
	dv := (vhi - vlo) / panels
	sum := 0.0
	for i := 0; i < panels; i++ {
		for j := 0; j < panels; j++ {
			sum += gmath.Quad2D(fn, ulo+float64(i)*du, ulo+float64(i+1)*du, vlo+float64(j)*dv, vlo+float64(j+1)*dv)
		}
	}
	return sum
}

func facetArea(t *topo.Thing, f *topo.Face) float64 {
	facets := facet.FacetFace(t, f, facet.Options{})
	area := 0.0
	for i := 0; i+2 < len(facets.Triangles); i += 3 {
		a := facets.Points3D[facets.Triangles[i]]
		b := facets.Points3D[facets.Triangles[i+1]]
		c := facets.Points3D[facets.Triangles[i+2]]
		area += 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
	}
	return area
}

// FindSimilarFaces returns the other faces in the thing whose surface
// kind and principal curvatures at the domain midpoint match f's within
// tol, the similarity notion used to group repeated features.
func FindSimilarFaces(t *topo.Thing, f *topo.Face, tol float64) []*topo.Face {
	if tol < gmath.MinTol {
		tol = gmath.MinTol
	}
	ref := f.Surface(t)
	rk1, rk2 := midCurvatures(ref)
	var out []*topo.Face
	for _, other := range t.Faces(false) {
		if other.ID() == f.ID() {
			continue
		}
		srf := other.Surface(t)
		if srf.Kind() != ref.Kind() {
			continue
		}
		k1, k2 := midCurvatures(srf)
		if math.Abs(k1-rk1) <= tol && math.Abs(k2-rk2) <= tol {
			out = append(out, other)
		}
	}
	return out
}

func midCurvatures(s surface.Surface) (float64, float64) {
	dom := s.Domain()
	_, _, k1, k2 := s.PrincipalCurvature(gmath.Point2{U: dom.U.Mid(), V: dom.V.Mid()})
	if k1 < k2 {
		k1, k2 = k2, k1
	}
	return k1, k2
}
