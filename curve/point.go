// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import "github.com/cpmech/sgm/gmath"

// PointCurve is the degenerate curve that evaluates to a fixed position
// for every t; used to back a zero-length edge (a vertex-only loop
// segment) or as a placeholder seam curve.
type PointCurve struct {
	At  gmath.Point3
	Dom gmath.Interval1
}

func NewPointCurve(at gmath.Point3) *PointCurve {
	return &PointCurve{At: at, Dom: gmath.Interval1{Lo: 0, Hi: 1}}
}

func (p *PointCurve) Kind() Kind              { return KindPoint }
func (p *PointCurve) Domain() gmath.Interval1 { return p.Dom }
func (p *PointCurve) IsClosed() bool          { return false }

func (p *PointCurve) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	return p.At, gmath.Vector3{}, gmath.Vector3{}
}

func (p *PointCurve) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	t = p.Dom.Lo
	if hasGuess {
		t = p.Dom.Clamp(guess)
	}
	return t, p.At
}

func (p *PointCurve) Curvature(t float64) gmath.Vector3 { return gmath.Vector3{} }
func (p *PointCurve) FindLength(domain gmath.Interval1) float64 { return 0 }

func (p *PointCurve) Transform(trans gmath.Transform3) Curve {
	return &PointCurve{At: trans.Point(p.At), Dom: p.Dom}
}

func (p *PointCurve) Clone() Curve {
	cp := *p
	return &cp
}
