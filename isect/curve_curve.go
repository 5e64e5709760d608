// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// CurveAndCurve intersects two curves: closed form when one side is a
// line, conic-coincidence detection for coplanar conics, and seeded
// Newton on the pairwise closest-approach otherwise. Hits carry the
// parameter on the first curve in T.
func CurveAndCurve(a, b curve.Curve, tol float64) []Hit {
	tol = floorTol(tol)
	if l, ok := a.(*curve.Line); ok {
		ray := gmath.Ray3{Origin: l.Origin, Axis: l.Axis, UseWholeLine: true}
		if l.Bounded {
			ray.Domain, ray.HasDomain = l.Dom, true
		}
		return LineAndCurve(ray, b, tol)
	}
	if l, ok := b.(*curve.Line); ok {
		ray := gmath.Ray3{Origin: l.Origin, Axis: l.Axis, UseWholeLine: true}
		if l.Bounded {
			ray.Domain, ray.HasDomain = l.Dom, true
		}
		hits := LineAndCurve(ray, a, tol)
		// re-parameterize T onto a
		for i := range hits {
			hits[i].T, _ = a.Inverse(hits[i].Pos, false, 0)
		}
		return sortAndDedupeHits(hits, tol)
	}
	if isConic(a) && isConic(b) {
		if coincidentConics(a, b, tol) {
			pos := curve.Evaluate0(a, a.Domain().Mid())
			return []Hit{{Pos: pos, Kind: Coincident, T: a.Domain().Mid()}}
		}
	}
	return curveCurveNewton(a, b, tol)
}

func isConic(c curve.Curve) bool {
	switch c.Kind() {
	case curve.KindCircle, curve.KindEllipse, curve.KindParabola, curve.KindHyperbola:
		return true
	}
	return false
}

// coincidentConics fits the conic through 5 points of a (in a's plane
// frame) and checks that samples of b satisfy it and lie in the plane.
func coincidentConics(a, b curve.Curve, tol float64) bool {
	frame, ok := conicFrame(a)
	if !ok {
		return false
	}
	domA := a.Domain()
	var pts [5]gmath.Point2
	for i := 0; i < 5; i++ {
		t := domA.Lo + domA.Length()*(0.1+0.2*float64(i))
		p := curve.Evaluate0(a, t)
		u, v, w := frame.Local(p)
		if math.Abs(w) > tol {
			return false
		}
		pts[i] = gmath.Point2{U: u, V: v}
	}
	conic, err := gmath.ConicFrom5Points(pts)
	if err != nil {
		return false
	}
	domB := b.Domain()
	for i := 0; i <= 8; i++ {
		t := domB.Lo + domB.Length()*float64(i)/8
		p := curve.Evaluate0(b, t)
		u, v, w := frame.Local(p)
		if math.Abs(w) > tol || math.Abs(conic.Eval(u, v)) > gmath.Fit {
			return false
		}
	}
	return true
}

// conicFrame returns the local plane frame of an analytic conic.
func conicFrame(c curve.Curve) (gmath.Frame3, bool) {
	switch cc := c.(type) {
	case *curve.Circle:
		return cc.Frame, true
	case *curve.Ellipse:
		return cc.Frame, true
	case *curve.Parabola:
		return cc.Frame, true
	case *curve.Hyperbola:
		return cc.Frame, true
	}
	return gmath.Frame3{}, false
}

// curveCurveNewton samples a, Newtons each local minimum of the
// curve-to-curve distance, and keeps converged touching points.
func curveCurveNewton(a, b curve.Curve, tol float64) []Hit {
	domA := a.Domain()
	if domA.Length() > 1e9 {
		return nil
	}
	const n = 96
	var hits []Hit
	prevD := math.MaxFloat64
	prevT := domA.Lo
	for i := 0; i <= n; i++ {
		t := domA.Lo + domA.Length()*float64(i)/n
		p := curve.Evaluate0(a, t)
		_, q := b.Inverse(p, false, 0)
		d := gmath.Distance(p, q)
		if i > 0 && d > prevD {
			if h, ok := newtonCurveCurve(a, b, prevT, tol); ok {
				hits = append(hits, h)
			}
		}
		prevD, prevT = d, t
	}
	if h, ok := newtonCurveCurve(a, b, prevT, tol); ok {
		hits = append(hits, h)
	}
	return sortAndDedupeHits(hits, tol)
}

func newtonCurveCurve(a, b curve.Curve, t0, tol float64) (Hit, bool) {
	t := t0
	domA := a.Domain()
	s, _ := b.Inverse(curve.Evaluate0(a, t), false, 0)
	for iter := 0; iter < 40; iter++ {
		p, da1, da2 := a.Evaluate(t)
		var q gmath.Point3
		s, q = b.Inverse(p, true, s)
		diff := p.Sub(q)
		f := diff.Dot(da1)
		df := da1.LengthSq() + diff.Dot(da2)
		if math.Abs(df) < gmath.Zero {
			break
		}
		dt := f / df
		t = domA.Clamp(t - dt)
		if math.Abs(dt) < 1e-13 {
			break
		}
	}
	p, da1, _ := a.Evaluate(t)
	s, q := b.Inverse(p, true, s)
	if gmath.Distance(p, q) > tol {
		return Hit{}, false
	}
	_, db1, _ := b.Evaluate(s)
	kind := Point
	if cr := da1.Cross(db1); da1.Length() > gmath.Zero && db1.Length() > gmath.Zero &&
		cr.Length() < gmath.Fit*da1.Length()*db1.Length() {
		kind = Tangent
	}
	return Hit{Pos: p, Kind: kind, T: t}, true
}
