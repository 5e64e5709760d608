// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

// LineAndSurface intersects the line ray.Origin + t*ray.Axis with a
// surface: closed form for every analytic kind, seeded Newton for the
// free-form and swept kinds. Total: returns an empty list when the line
// misses. Results are sorted by t and deduplicated within tol.
func LineAndSurface(ray gmath.Ray3, srf surface.Surface, tol float64) []Hit {
	tol = floorTol(tol)
	var hits []Hit
	switch s := srf.(type) {
	case *surface.Plane:
		hits = linePlane(ray, s, tol)
	case *surface.Sphere:
		hits = lineSphere(ray, s, tol)
	case *surface.Cylinder:
		hits = lineCylinder(ray, s, tol)
	case *surface.Cone:
		hits = lineCone(ray, s, tol)
	case *surface.Torus:
		hits = lineTorus(ray, s, tol)
	case *surface.NUBSurf:
		us, vs, pts := s.SeedGrid()
		hits = lineSeededSurface(ray, s, us, vs, pts, tol)
	case *surface.NURBSurf:
		us, vs, pts := s.SeedGrid()
		hits = lineSeededSurface(ray, s, us, vs, pts, tol)
	default:
		hits = lineSampledSurface(ray, srf, tol)
	}
	hits = clipHitsToRay(hits, ray, tol)
	return sortAndDedupeHits(hits, tol)
}

func linePlane(ray gmath.Ray3, p *surface.Plane, tol float64) []Hit {
	n := p.Frame.Z
	denom := n.Dot(ray.Axis.Vec())
	dist := n.Dot(ray.Origin.Sub(p.Frame.Origin))
	if math.Abs(denom) < gmath.Zero {
		if math.Abs(dist) < tol {
			// line lies in the plane
			return []Hit{{Pos: ray.Origin, Kind: Coincident, T: 0}}
		}
		return nil
	}
	t := -dist / denom
	return []Hit{{Pos: ray.PointAt(t), Kind: Point, T: t}}
}

func lineSphere(ray gmath.Ray3, s *surface.Sphere, tol float64) []Hit {
	// |o + t*d - c|^2 = r^2
	oc := ray.Origin.Sub(s.Frame.Origin)
	b := 2 * ray.Axis.Dot(oc)
	c := oc.LengthSq() - s.R*s.R
	roots := gmath.SolveQuadratic(1, b, c)
	return classifyQuadricRoots(ray, roots, tol)
}

func lineCylinder(ray gmath.Ray3, s *surface.Cylinder, tol float64) []Hit {
	// project onto the plane normal to the axis
	axis := s.Frame.Z
	oc := ray.Origin.Sub(s.Frame.Origin)
	d := ray.Axis.Vec().Minus(axis.Vec().Scale(axis.Dot(ray.Axis.Vec())))
	o := oc.Minus(axis.Vec().Scale(axis.Dot(oc)))
	a := d.LengthSq()
	if a < gmath.Zero {
		// line parallel to the axis: on the wall means coincident
		if math.Abs(o.Length()-s.R) < tol {
			return []Hit{{Pos: ray.Origin, Kind: Coincident, T: 0}}
		}
		return nil
	}
	b := 2 * d.Dot(o)
	c := o.LengthSq() - s.R*s.R
	roots := gmath.SolveQuadratic(a, b, c)
	return classifyQuadricRoots(ray, roots, tol)
}

func lineCone(ray gmath.Ray3, s *surface.Cone, tol float64) []Hit {
	// implicit cone about Frame.Z: x^2+y^2 = (slope*z)^2 in local coords
	a0, b0, c0 := s.Frame.Local(ray.Origin)
	dv := ray.Axis.Vec()
	da := s.Frame.X.Dot(dv)
	db := s.Frame.Y.Dot(dv)
	dc := s.Frame.Z.Dot(dv)
	k := s.Slope * s.Slope
	A := da*da + db*db - k*dc*dc
	B := 2 * (a0*da + b0*db - k*c0*dc)
	C := a0*a0 + b0*b0 - k*c0*c0
	roots := gmath.SolveQuadratic(A, B, C)
	hits := classifyQuadricRoots(ray, roots, tol)
	// a hit at the apex is always tangent (the two nappes meet there)
	for i := range hits {
		if gmath.Distance(hits[i].Pos, s.Frame.Origin) < tol {
			hits[i].Kind = Tangent
		}
	}
	// drop hits on the wrong nappe (v outside the cone's domain sign)
	out := hits[:0]
	for _, h := range hits {
		_, _, v := s.Frame.Local(h.Pos)
		if s.VDom.Contains(v, tol) || gmath.Distance(h.Pos, s.Frame.Origin) < tol {
			out = append(out, h)
		}
	}
	return out
}

func lineTorus(ray gmath.Ray3, s *surface.Torus, tol float64) []Hit {
	// local coordinates: implicit torus (x^2+y^2+z^2 + R^2 - r^2)^2 =
	// 4 R^2 (x^2+y^2); substituting the line gives a quartic in t.
	ox, oy, oz := s.Frame.Local(ray.Origin)
	dv := ray.Axis.Vec()
	dx := s.Frame.X.Dot(dv)
	dy := s.Frame.Y.Dot(dv)
	dz := s.Frame.Z.Dot(dv)

	R2 := s.RMajor * s.RMajor
	r2 := s.RMinor * s.RMinor

	// q(t) = |p(t)|^2 + R^2 - r^2 is quadratic: q2 t^2 + q1 t + q0
	q2 := dx*dx + dy*dy + dz*dz
	q1 := 2 * (ox*dx + oy*dy + oz*dz)
	q0 := ox*ox + oy*oy + oz*oz + R2 - r2

	// w(t) = x^2+y^2 is quadratic: w2 t^2 + w1 t + w0
	w2 := dx*dx + dy*dy
	w1 := 2 * (ox*dx + oy*dy)
	w0 := ox*ox + oy*oy

	// q(t)^2 - 4 R^2 w(t) = 0
	a := q2 * q2
	b := 2 * q2 * q1
	c := q1*q1 + 2*q2*q0 - 4*R2*w2
	d := 2*q1*q0 - 4*R2*w1
	e := q0*q0 - 4*R2*w0
	roots := gmath.SolveQuartic(a, b, c, d, e)

	hits := make([]Hit, 0, len(roots))
	for _, t := range roots {
		pos := ray.PointAt(t)
		uv, closest := s.Inverse(pos, false, gmath.Point2{})
		if gmath.Distance(pos, closest) > gmath.Fit {
			continue
		}
		if gmath.Distance(pos, closest) > tol {
			// a perturbed double root: polish it back onto the surface
			h, ok := newtonLineSurface(ray, s, pos, uv, tol)
			if !ok {
				continue
			}
			hits = append(hits, h)
			continue
		}
		kind := Point
		n := s.Evaluate(uv.U, uv.V).Normal
		// the line crosses transversally unless it runs in the tangent plane
		if math.Abs(n.Dot(ray.Axis.Vec())) < gmath.Fit {
			kind = Tangent
		}
		hits = append(hits, Hit{Pos: pos, Kind: kind, T: t})
	}
	return hits
}

// classifyQuadricRoots turns quadratic roots into hits: one root from a
// collapsed discriminant is a tangency.
func classifyQuadricRoots(ray gmath.Ray3, roots []float64, tol float64) []Hit {
	switch len(roots) {
	case 0:
		return nil
	case 1:
		return []Hit{{Pos: ray.PointAt(roots[0]), Kind: Tangent, T: roots[0]}}
	default:
		hits := make([]Hit, 0, len(roots))
		for _, t := range roots {
			hits = append(hits, Hit{Pos: ray.PointAt(t), Kind: Point, T: t})
		}
		return hits
	}
}

// lineSeededSurface intersects a line with a free-form surface by
// treating each seed-grid cell as a tangent plane, hitting the line
// against it, and polishing every in-cell hit with Newton projection
// (project the estimate onto the surface, then back onto the line, until
// the two agree).
func lineSeededSurface(ray gmath.Ray3, srf surface.Surface, us, vs []float64, pts [][]gmath.Point3, tol float64) []Hit {
	var hits []Hit
	for i := 0; i+1 < len(us); i++ {
		for j := 0; j+1 < len(vs); j++ {
			// cell corners
			p00, p10 := pts[i][j], pts[i+1][j]
			p01 := pts[i][j+1]
			n, ok := p10.Sub(p00).Cross(p01.Sub(p00)).Unit()
			if !ok {
				continue
			}
			denom := n.Dot(ray.Axis.Vec())
			if math.Abs(denom) < gmath.Zero {
				continue
			}
			t := -n.Dot(ray.Origin.Sub(p00)) / denom
			est := ray.PointAt(t)
			// only seed from cells the estimate is actually near
			cellDiag := gmath.Distance(p00, pts[i+1][j+1])
			if gmath.Distance(est, p00) > 2*cellDiag {
				continue
			}
			guess := gmath.Point2{U: 0.5 * (us[i] + us[i+1]), V: 0.5 * (vs[j] + vs[j+1])}
			if h, ok := newtonLineSurface(ray, srf, est, guess, tol); ok {
				hits = append(hits, h)
			}
		}
	}
	return hits
}

// lineSampledSurface is the fallback for swept surfaces without a seed
// grid: build a coarse sample grid on the fly and run the same seeding.
func lineSampledSurface(ray gmath.Ray3, srf surface.Surface, tol float64) []Hit {
	dom := srf.Domain()
	const n = 16
	us := utl.LinSpace(dom.U.Lo, dom.U.Hi, n+1)
	vs := utl.LinSpace(dom.V.Lo, dom.V.Hi, n+1)
	pts := make([][]gmath.Point3, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = make([]gmath.Point3, n+1)
		for j := 0; j <= n; j++ {
			pts[i][j] = srf.Evaluate(us[i], vs[j]).Pos
		}
	}
	return lineSeededSurface(ray, srf, us, vs, pts, tol)
}

// newtonLineSurface alternates projecting the estimate onto the surface
// and back onto the line until they agree within MinTol.
func newtonLineSurface(ray gmath.Ray3, srf surface.Surface, est gmath.Point3, guess gmath.Point2, tol float64) (Hit, bool) {
	uv := guess
	for iter := 0; iter < 40; iter++ {
		var onSrf gmath.Point3
		uv, onSrf = srf.Inverse(est, true, uv)
		t := ray.Axis.Dot(onSrf.Sub(ray.Origin))
		onLine := ray.PointAt(t)
		gap := gmath.Distance(onSrf, onLine)
		if gap < gmath.MinTol {
			kind := Point
			n := srf.Evaluate(uv.U, uv.V).Normal
			if math.Abs(n.Dot(ray.Axis.Vec())) < gmath.Fit {
				kind = Tangent
			}
			return Hit{Pos: onLine, Kind: kind, T: t}, true
		}
		next := gmath.Point3{
			X: 0.5 * (onSrf.X + onLine.X),
			Y: 0.5 * (onSrf.Y + onLine.Y),
			Z: 0.5 * (onSrf.Z + onLine.Z),
		}
		if gmath.Distance(next, est) < gmath.Zero {
			break
		}
		est = next
	}
	return Hit{}, false
}
