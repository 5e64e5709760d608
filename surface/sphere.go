// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Sphere is p(u,v) = Center + R*(cos(v)*cos(u)*X + cos(v)*sin(u)*Y + sin(v)*Z),
// u the longitude in [0,2pi), v the latitude in [-pi/2,pi/2]. The poles
// v=+-pi/2 are singular: every u maps to the same point.
type Sphere struct {
	Frame gmath.Frame3
	R     float64
}

func NewSphere(center gmath.Point3, r float64) *Sphere {
	return &Sphere{Frame: gmath.FrameFromAxes(center, gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit()), R: r}
}

func (s *Sphere) Kind() Kind { return KindSphere }

func (s *Sphere) Domain() gmath.Interval2 {
	return gmath.Interval2{U: gmath.FullAngle, V: gmath.Interval1{Lo: -math.Pi / 2, Hi: math.Pi / 2}}
}

func (s *Sphere) radialDir(u, v float64) gmath.Vector3 {
	cu, su := math.Cos(u), math.Sin(u)
	cv, sv := math.Cos(v), math.Sin(v)
	return s.Frame.X.Vec().Scale(cv * cu).Plus(s.Frame.Y.Vec().Scale(cv * su)).Plus(s.Frame.Z.Vec().Scale(sv))
}

func (s *Sphere) Evaluate(u, v float64) Eval {
	cu, su := math.Cos(u), math.Sin(u)
	cv, sv := math.Cos(v), math.Sin(v)
	radial := s.radialDir(u, v)
	pos := s.Frame.Origin.Add(radial.Scale(s.R))

	du := s.Frame.X.Vec().Scale(-s.R * cv * su).Plus(s.Frame.Y.Vec().Scale(s.R * cv * cu))
	dv := s.Frame.X.Vec().Scale(-s.R * sv * cu).Plus(s.Frame.Y.Vec().Scale(-s.R * sv * su)).Plus(s.Frame.Z.Vec().Scale(s.R * cv))

	duu := s.Frame.X.Vec().Scale(-s.R * cv * cu).Plus(s.Frame.Y.Vec().Scale(-s.R * cv * su))
	duv := s.Frame.X.Vec().Scale(s.R * sv * su).Plus(s.Frame.Y.Vec().Scale(-s.R * sv * cu))
	dvv := s.Frame.X.Vec().Scale(-s.R * cv * cu).Plus(s.Frame.Y.Vec().Scale(-s.R * cv * su)).Plus(s.Frame.Z.Vec().Scale(-s.R * sv))

	normal, ok := radial.Unit()
	if !ok {
		normal = s.Frame.Z
	}
	return Eval{Pos: pos, Du: du, Dv: dv, Normal: normal, Duu: duu, Duv: duv, Dvv: dvv}
}

func (s *Sphere) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	a, b, c := s.Frame.Local(pos)
	u := math.Atan2(b, a)
	if u < 0 {
		u += 2 * math.Pi
	}
	if hasGuess {
		for u-guess.U > math.Pi {
			u -= 2 * math.Pi
		}
		for guess.U-u > math.Pi {
			u += 2 * math.Pi
		}
	}
	r := math.Sqrt(a*a + b*b + c*c)
	v := 0.0
	if r > gmath.Zero {
		v = math.Asin(gmath.Clamp(c/r, -1, 1))
	}
	uv = gmath.Point2{U: u, V: v}
	closest = s.Evaluate(u, v).Pos
	return
}

func (s *Sphere) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	// every point of a sphere is umbilic
	return gmath.Point2{U: 1}, gmath.Point2{V: 1}, 1 / s.R, 1 / s.R
}

func (s *Sphere) UParamLine(u0 float64) (curve.Curve, bool) {
	cu, su := math.Cos(u0), math.Sin(u0)
	radialDir := s.Frame.X.Vec().Scale(cu).Plus(s.Frame.Y.Vec().Scale(su)).MustUnit()
	meridianNormal := s.Frame.Z.Vec().Cross(radialDir.Vec())
	n, ok := meridianNormal.Unit()
	if !ok {
		n = s.Frame.X
	}
	return curve.NewCircle(s.Frame.Origin, n, s.R), true
}

func (s *Sphere) VParamLine(v0 float64) (curve.Curve, bool) {
	if math.Abs(math.Abs(v0)-math.Pi/2) < gmath.Zero {
		return nil, false // the poles collapse to a point, not a circle
	}
	r := s.R * math.Cos(v0)
	center := s.Frame.Origin.Add(s.Frame.Z.Vec().Scale(s.R * math.Sin(v0)))
	return curve.NewCircle(center, s.Frame.Z, r), true
}

func (s *Sphere) ClosedInU() bool     { return true }
func (s *Sphere) ClosedInV() bool     { return false }
func (s *Sphere) SingularLowU() bool  { return false }
func (s *Sphere) SingularHighU() bool { return false }
func (s *Sphere) SingularLowV() bool  { return true }
func (s *Sphere) SingularHighV() bool { return true }

func (s *Sphere) IsSingularity(uv gmath.Point2, tol float64) bool {
	return math.Pi/2-math.Abs(uv.V) < tol
}

func (s *Sphere) Transform(trans gmath.Transform3) Surface {
	return &Sphere{
		Frame: gmath.Frame3{
			Origin: trans.Point(s.Frame.Origin),
			X:      trans.UnitVector(s.Frame.X),
			Y:      trans.UnitVector(s.Frame.Y),
			Z:      trans.UnitVector(s.Frame.Z),
		},
		R: s.R,
	}
}

func (s *Sphere) Clone() Surface {
	cp := *s
	return &cp
}
