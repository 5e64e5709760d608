// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

// CurveAndSurface intersects a curve with a surface. Lines dispatch to
// the closed forms; a curve against a plane reduces to root-finding on
// the signed plane distance; everything else runs seeded Newton on the
// distance to the surface. Results are ordered by curve parameter.
func CurveAndSurface(crv curve.Curve, srf surface.Surface, tol float64) []Hit {
	tol = floorTol(tol)
	if l, ok := crv.(*curve.Line); ok {
		ray := gmath.Ray3{Origin: l.Origin, Axis: l.Axis, UseWholeLine: true}
		if l.Bounded {
			ray.Domain, ray.HasDomain = l.Dom, true
		}
		return LineAndSurface(ray, srf, tol)
	}
	if p, ok := srf.(*surface.Plane); ok {
		return curvePlane(crv, p, tol)
	}
	return curveSampledSurface(crv, srf, tol)
}

// curvePlane finds the roots of the signed distance f(t) = n.(c(t)-p0)
// by sign-change bracketing over a chord sampling, polished by Newton.
func curvePlane(crv curve.Curve, p *surface.Plane, tol float64) []Hit {
	n := p.Frame.Z
	f := func(t float64) float64 {
		return n.Dot(curve.Evaluate0(crv, t).Sub(p.Frame.Origin))
	}
	df := func(t float64) float64 {
		_, d1, _ := crv.Evaluate(t)
		return n.Dot(d1)
	}
	dom := crv.Domain()
	if dom.Length() > 1e9 {
		return nil
	}
	const nSamp = 128
	var hits []Hit
	allOn := true
	prevT := dom.Lo
	prevF := f(prevT)
	for i := 1; i <= nSamp; i++ {
		t := dom.Lo + dom.Length()*float64(i)/nSamp
		ft := f(t)
		if math.Abs(ft) > tol {
			allOn = false
		}
		if prevF == 0 || prevF*ft < 0 || math.Abs(ft) < tol {
			root := newtonScalar(f, df, 0.5*(prevT+t), dom)
			if crv.IsClosed() && root >= dom.Hi-tol {
				// the end of a closed curve is its start point
				root = dom.Lo
			}
			pos := curve.Evaluate0(crv, root)
			if math.Abs(f(root)) <= tol {
				kind := Point
				if math.Abs(df(root)) < gmath.Fit {
					kind = Tangent
				}
				hits = append(hits, Hit{Pos: pos, Kind: kind, T: root})
			}
		}
		prevT, prevF = t, ft
	}
	if allOn && len(hits) > 0 {
		// the whole sampled curve lies in the plane
		pos := curve.Evaluate0(crv, dom.Lo)
		return []Hit{{Pos: pos, Kind: Coincident, T: dom.Lo}}
	}
	return sortAndDedupeHits(hits, tol)
}

func newtonScalar(f, df func(float64) float64, t0 float64, dom gmath.Interval1) float64 {
	t := t0
	for iter := 0; iter < 40; iter++ {
		d := df(t)
		if math.Abs(d) < gmath.Zero {
			break
		}
		dt := f(t) / d
		t = dom.Clamp(t - dt)
		if math.Abs(dt) < 1e-13 {
			break
		}
	}
	return t
}

// curveSampledSurface walks the curve with a chord sampling and Newtons
// every local minimum of the curve-to-surface distance down to a hit.
func curveSampledSurface(crv curve.Curve, srf surface.Surface, tol float64) []Hit {
	dom := crv.Domain()
	if dom.Length() > 1e9 {
		return nil
	}
	const nSamp = 96
	var hits []Hit
	var uv gmath.Point2
	hasUV := false
	prevD := math.MaxFloat64
	prevT := dom.Lo
	climbing := false
	for i := 0; i <= nSamp; i++ {
		t := dom.Lo + dom.Length()*float64(i)/nSamp
		p := curve.Evaluate0(crv, t)
		var onSrf gmath.Point3
		uv, onSrf = srf.Inverse(p, hasUV, uv)
		hasUV = true
		d := gmath.Distance(p, onSrf)
		if i > 0 && d > prevD && !climbing {
			if h, ok := newtonCurveSurface(crv, srf, prevT, uv, tol); ok {
				hits = append(hits, h)
			}
		}
		climbing = i > 0 && d > prevD
		prevD, prevT = d, t
	}
	if !climbing {
		if h, ok := newtonCurveSurface(crv, srf, prevT, uv, tol); ok {
			hits = append(hits, h)
		}
	}
	return sortAndDedupeHits(hits, tol)
}

func newtonCurveSurface(crv curve.Curve, srf surface.Surface, t0 float64, uvGuess gmath.Point2, tol float64) (Hit, bool) {
	t := t0
	uv := uvGuess
	dom := crv.Domain()
	for iter := 0; iter < 40; iter++ {
		p, d1, _ := crv.Evaluate(t)
		var onSrf gmath.Point3
		uv, onSrf = srf.Inverse(p, true, uv)
		e := srf.Evaluate(uv.U, uv.V)
		// drive the signed normal distance to zero along the curve
		g := e.Normal.Dot(p.Sub(onSrf))
		dg := e.Normal.Dot(d1)
		if math.Abs(dg) < gmath.Zero {
			break
		}
		dt := g / dg
		t = dom.Clamp(t - dt)
		if math.Abs(dt) < 1e-13 {
			break
		}
	}
	p, d1, _ := crv.Evaluate(t)
	uv, onSrf := srf.Inverse(p, true, uv)
	if gmath.Distance(p, onSrf) > tol {
		return Hit{}, false
	}
	kind := Point
	n := srf.Evaluate(uv.U, uv.V).Normal
	if d1.Length() > gmath.Zero && math.Abs(n.Dot(d1))/d1.Length() < gmath.Fit {
		kind = Tangent
	}
	return Hit{Pos: p, Kind: kind, T: t}, true
}
