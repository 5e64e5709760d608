// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Plane is p(u,v) = Origin + u*X + v*Y, an unbounded domain by default.
type Plane struct {
	Frame gmath.Frame3
	Dom   gmath.Interval2
}

// NewPlane builds an (unbounded-domain) plane through origin with the
// given normal.
func NewPlane(origin gmath.Point3, normal gmath.UnitVector3) *Plane {
	return &Plane{
		Frame: gmath.FrameFromAxes(origin, normal),
		Dom:   gmath.Interval2{U: gmath.Interval1{Lo: -1e9, Hi: 1e9}, V: gmath.Interval1{Lo: -1e9, Hi: 1e9}},
	}
}

func (p *Plane) Kind() Kind              { return KindPlane }
func (p *Plane) Domain() gmath.Interval2 { return p.Dom }

func (p *Plane) Evaluate(u, v float64) Eval {
	return Eval{
		Pos:    p.Frame.Eval(u, v, 0),
		Du:     p.Frame.X.Vec(),
		Dv:     p.Frame.Y.Vec(),
		Normal: p.Frame.Z,
		Duu:    gmath.Vector3{}, Duv: gmath.Vector3{}, Dvv: gmath.Vector3{},
	}
}

func (p *Plane) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	u, v, _ := p.Frame.Local(pos)
	uv = gmath.Point2{U: u, V: v}
	closest = p.Frame.Eval(u, v, 0)
	return
}

func (p *Plane) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	return gmath.Point2{U: 1}, gmath.Point2{V: 1}, 0, 0
}

func (p *Plane) UParamLine(u0 float64) (curve.Curve, bool) {
	origin := p.Frame.Eval(u0, 0, 0)
	return curve.NewLine(origin, p.Frame.Y), true
}

func (p *Plane) VParamLine(v0 float64) (curve.Curve, bool) {
	origin := p.Frame.Eval(0, v0, 0)
	return curve.NewLine(origin, p.Frame.X), true
}

func (p *Plane) ClosedInU() bool               { return false }
func (p *Plane) ClosedInV() bool               { return false }
func (p *Plane) SingularLowU() bool            { return false }
func (p *Plane) SingularHighU() bool           { return false }
func (p *Plane) SingularLowV() bool            { return false }
func (p *Plane) SingularHighV() bool           { return false }
func (p *Plane) IsSingularity(gmath.Point2, float64) bool { return false }

func (p *Plane) Transform(trans gmath.Transform3) Surface {
	return &Plane{
		Frame: gmath.Frame3{
			Origin: trans.Point(p.Frame.Origin),
			X:      trans.UnitVector(p.Frame.X),
			Y:      trans.UnitVector(p.Frame.Y),
			Z:      trans.UnitVector(p.Frame.Z),
		},
		Dom: p.Dom,
	}
}

func (p *Plane) Clone() Surface {
	cp := *p
	return &cp
}
