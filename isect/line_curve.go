// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// LineAndCurve intersects a line with a curve: analytic for line/line and
// line/circle, seeded Newton otherwise. Total; results sorted by t along
// the line and deduplicated within tol.
func LineAndCurve(ray gmath.Ray3, crv curve.Curve, tol float64) []Hit {
	tol = floorTol(tol)
	var hits []Hit
	switch c := crv.(type) {
	case *curve.Line:
		hits = lineLine(ray, c, tol)
	case *curve.Circle:
		hits = lineCircle(ray, c, tol)
	case *curve.PointCurve:
		p, _, _ := c.Evaluate(0)
		t := ray.Axis.Dot(p.Sub(ray.Origin))
		if gmath.Distance(ray.PointAt(t), p) <= tol {
			hits = []Hit{{Pos: p, Kind: Point, T: t}}
		}
	default:
		hits = lineSampledCurve(ray, crv, tol)
	}
	hits = clipHitsToRay(hits, ray, tol)
	return sortAndDedupeHits(hits, tol)
}

func lineLine(ray gmath.Ray3, l *curve.Line, tol float64) []Hit {
	d1 := ray.Axis.Vec()
	d2 := l.Axis.Vec()
	w := l.Origin.Sub(ray.Origin)
	cross := d1.Cross(d2)
	denom := cross.LengthSq()
	if denom < gmath.Zero {
		// parallel: coincident when the offset is along the direction
		if w.Cross(d1).Length() < tol {
			return []Hit{{Pos: ray.Origin, Kind: Coincident, T: 0}}
		}
		return nil
	}
	// closest-approach parameters of two skew lines
	t1 := w.Cross(d2).Dot(cross) / denom
	t2 := w.Cross(d1).Dot(cross) / denom
	p1 := ray.PointAt(t1)
	p2 := l.Origin.Add(d2.Scale(t2))
	if gmath.Distance(p1, p2) > tol {
		return nil
	}
	if l.Bounded && !l.Dom.Contains(t2, tol) {
		return nil
	}
	return []Hit{{Pos: p1, Kind: Point, T: t1}}
}

func lineCircle(ray gmath.Ray3, c *curve.Circle, tol float64) []Hit {
	// intersect the line with the circle's plane first
	n := c.Frame.Z
	denom := n.Dot(ray.Axis.Vec())
	dist := n.Dot(ray.Origin.Sub(c.Frame.Origin))
	if math.Abs(denom) < gmath.Zero {
		if math.Abs(dist) > tol {
			return nil
		}
		// line lies in the circle's plane: 2D line/circle
		a0, b0, _ := c.Frame.Local(ray.Origin)
		da := c.Frame.X.Dot(ray.Axis.Vec())
		db := c.Frame.Y.Dot(ray.Axis.Vec())
		A := da*da + db*db
		B := 2 * (a0*da + b0*db)
		C := a0*a0 + b0*b0 - c.R*c.R
		roots := gmath.SolveQuadratic(A, B, C)
		return classifyQuadricRoots(ray, roots, tol)
	}
	t := -dist / denom
	pos := ray.PointAt(t)
	if math.Abs(gmath.Distance(pos, c.Frame.Origin)-c.R) > tol {
		return nil
	}
	return []Hit{{Pos: pos, Kind: Point, T: t}}
}

// lineSampledCurve seeds from a uniform sampling of 65 curve parameters, then
// Newton-iterates the squared distance between the line and the curve.
func lineSampledCurve(ray gmath.Ray3, crv curve.Curve, tol float64) []Hit {
	dom := crv.Domain()
	if dom.Length() > 1e9 {
		return nil
	}
	const n = 64
	var hits []Hit
	prevDist := math.MaxFloat64
	prevT := dom.Lo
	for i := 0; i <= n; i++ {
		u := dom.Lo + dom.Length()*float64(i)/n
		p := curve.Evaluate0(crv, u)
		t := ray.Axis.Dot(p.Sub(ray.Origin))
		d := gmath.Distance(ray.PointAt(t), p)
		// local minima of the distance function seed Newton
		if i > 0 && d > prevDist && prevDist < 10*tol*float64(n) {
			if h, ok := newtonLineCurve(ray, crv, prevT, tol); ok {
				hits = append(hits, h)
			}
		}
		prevDist, prevT = d, u
	}
	if prevDist < 10*tol*float64(n) {
		if h, ok := newtonLineCurve(ray, crv, prevT, tol); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

func newtonLineCurve(ray gmath.Ray3, crv curve.Curve, u0 float64, tol float64) (Hit, bool) {
	u := u0
	dom := crv.Domain()
	for iter := 0; iter < 40; iter++ {
		p, d1, d2 := crv.Evaluate(u)
		t := ray.Axis.Dot(p.Sub(ray.Origin))
		onLine := ray.PointAt(t)
		diff := p.Sub(onLine)
		// minimize |diff|^2 over u: derivative is diff . (d1 - axis*(axis.d1))
		dPerp := d1.Minus(ray.Axis.Vec().Scale(ray.Axis.Dot(d1)))
		f := diff.Dot(dPerp)
		df := dPerp.LengthSq() + diff.Dot(d2.Minus(ray.Axis.Vec().Scale(ray.Axis.Dot(d2))))
		if math.Abs(df) < gmath.Zero {
			break
		}
		du := f / df
		u = dom.Clamp(u - du)
		if math.Abs(du) < 1e-13 {
			break
		}
	}
	p, d1, _ := crv.Evaluate(u)
	t := ray.Axis.Dot(p.Sub(ray.Origin))
	if gmath.Distance(ray.PointAt(t), p) > tol {
		return Hit{}, false
	}
	kind := Point
	if cr := d1.Cross(ray.Axis.Vec()); cr.Length() < gmath.Fit*d1.Length() {
		kind = Tangent
	}
	return Hit{Pos: p, Kind: kind, T: t}, true
}
