// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Torus is p(u,v) = Center + (RMajor + RMinor*cos(v))*(cos(u)*X + sin(u)*Y)
// + RMinor*sin(v)*Z, with u the angle around the main axis and v the angle
// around the tube, both in [0,2pi). Closed in both directions; no
// singularities for RMajor > RMinor.
type Torus struct {
	Frame  gmath.Frame3
	RMinor float64
	RMajor float64
}

func NewTorus(center gmath.Point3, axis gmath.UnitVector3, rMinor, rMajor float64) *Torus {
	return &Torus{Frame: gmath.FrameFromAxes(center, axis), RMinor: rMinor, RMajor: rMajor}
}

func (t *Torus) Kind() Kind { return KindTorus }

func (t *Torus) Domain() gmath.Interval2 {
	return gmath.Interval2{U: gmath.FullAngle, V: gmath.FullAngle}
}

func (t *Torus) Evaluate(u, v float64) Eval {
	cu, su := math.Cos(u), math.Sin(u)
	cv, sv := math.Cos(v), math.Sin(v)
	spoke := t.Frame.X.Vec().Scale(cu).Plus(t.Frame.Y.Vec().Scale(su))
	ring := t.RMajor + t.RMinor*cv
	pos := t.Frame.Origin.Add(spoke.Scale(ring)).Add(t.Frame.Z.Vec().Scale(t.RMinor * sv))

	spokeDu := t.Frame.X.Vec().Scale(-su).Plus(t.Frame.Y.Vec().Scale(cu))
	du := spokeDu.Scale(ring)
	dv := spoke.Scale(-t.RMinor * sv).Plus(t.Frame.Z.Vec().Scale(t.RMinor * cv))

	duu := spoke.Scale(-ring)
	duv := spokeDu.Scale(-t.RMinor * sv)
	dvv := spoke.Scale(-t.RMinor * cv).Plus(t.Frame.Z.Vec().Scale(-t.RMinor * sv))

	// outward normal points from the tube center to pos
	n := spoke.Scale(cv).Plus(t.Frame.Z.Vec().Scale(sv))
	normal, ok := n.Unit()
	if !ok {
		normal = t.Frame.Z
	}
	return Eval{Pos: pos, Du: du, Dv: dv, Normal: normal, Duu: duu, Duv: duv, Dvv: dvv}
}

func (t *Torus) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	a, b, c := t.Frame.Local(pos)
	u := math.Atan2(b, a)
	if u < 0 {
		u += 2 * math.Pi
	}
	// tube center in the half-plane of u, then v from the offset to it
	rho := math.Sqrt(a*a + b*b)
	v := math.Atan2(c, rho-t.RMajor)
	if v < 0 {
		v += 2 * math.Pi
	}
	if hasGuess {
		for u-guess.U > math.Pi {
			u -= 2 * math.Pi
		}
		for guess.U-u > math.Pi {
			u += 2 * math.Pi
		}
		for v-guess.V > math.Pi {
			v -= 2 * math.Pi
		}
		for guess.V-v > math.Pi {
			v += 2 * math.Pi
		}
	}
	uv = gmath.Point2{U: u, V: v}
	closest = t.Evaluate(u, v).Pos
	return
}

func (t *Torus) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	// the tube direction always has curvature 1/RMinor; around the main
	// axis the curvature is cos(v)/(RMajor + RMinor*cos(v))
	cv := math.Cos(uv.V)
	ring := t.RMajor + t.RMinor*cv
	kRing := 0.0
	if math.Abs(ring) > gmath.Zero {
		kRing = cv / ring
	}
	return gmath.Point2{V: 1}, gmath.Point2{U: 1}, 1 / t.RMinor, kRing
}

func (t *Torus) UParamLine(u0 float64) (curve.Curve, bool) {
	cu, su := math.Cos(u0), math.Sin(u0)
	spoke := t.Frame.X.Vec().Scale(cu).Plus(t.Frame.Y.Vec().Scale(su))
	center := t.Frame.Origin.Add(spoke.Scale(t.RMajor))
	normal, ok := spoke.Cross(t.Frame.Z.Vec()).Unit()
	if !ok {
		return nil, false
	}
	return curve.NewCircle(center, normal, t.RMinor), true
}

func (t *Torus) VParamLine(v0 float64) (curve.Curve, bool) {
	cv, sv := math.Cos(v0), math.Sin(v0)
	r := t.RMajor + t.RMinor*cv
	if math.Abs(r) < gmath.Zero {
		return nil, false
	}
	center := t.Frame.Origin.Add(t.Frame.Z.Vec().Scale(t.RMinor * sv))
	return curve.NewCircle(center, t.Frame.Z, r), true
}

func (t *Torus) ClosedInU() bool                          { return true }
func (t *Torus) ClosedInV() bool                          { return true }
func (t *Torus) SingularLowU() bool                       { return false }
func (t *Torus) SingularHighU() bool                      { return false }
func (t *Torus) SingularLowV() bool                       { return false }
func (t *Torus) SingularHighV() bool                      { return false }
func (t *Torus) IsSingularity(gmath.Point2, float64) bool { return false }

func (t *Torus) Transform(trans gmath.Transform3) Surface {
	return &Torus{
		Frame: gmath.Frame3{
			Origin: trans.Point(t.Frame.Origin),
			X:      trans.UnitVector(t.Frame.X),
			Y:      trans.UnitVector(t.Frame.Y),
			Z:      trans.UnitVector(t.Frame.Z),
		},
		RMinor: t.RMinor, RMajor: t.RMajor,
	}
}

func (t *Torus) Clone() Surface {
	cp := *t
	return &cp
}
