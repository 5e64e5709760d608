// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Revolve rotates a generator curve about an axis: u is the angle around
// the axis in [0,2pi), v the generator's own parameter. The generator is
// evaluated once per (u,v) and rotated by u, so all derivatives follow
// from the rotation of the generator's derivatives.
type Revolve struct {
	Frame gmath.Frame3 // Z is the revolution axis
	Gen   curve.Curve
}

func NewRevolve(origin gmath.Point3, axis gmath.UnitVector3, gen curve.Curve) *Revolve {
	return &Revolve{Frame: gmath.FrameFromAxes(origin, axis), Gen: gen}
}

func (s *Revolve) Kind() Kind { return KindRevolve }

func (s *Revolve) Domain() gmath.Interval2 {
	return gmath.Interval2{U: gmath.FullAngle, V: s.Gen.Domain()}
}

// local maps a model point into axis-relative cylindrical pieces: the
// radial offset vector from the axis and the height along it.
func (s *Revolve) local(p gmath.Point3) (radial gmath.Vector3, height float64) {
	v := p.Sub(s.Frame.Origin)
	height = s.Frame.Z.Dot(v)
	radial = v.Minus(s.Frame.Z.Vec().Scale(height))
	return
}

func (s *Revolve) Evaluate(u, v float64) Eval {
	gp, gd1, gd2 := s.Gen.Evaluate(v)
	rot := gmath.RotationAbout(s.Frame.Origin, s.Frame.Z, u)
	pos := rot.Point(gp)

	// du is the tangential direction of the rotation at pos: axis x (pos-axisfoot)
	radial, _ := s.local(pos)
	du := s.Frame.Z.Cross(radial)
	dv := rot.Vector(gd1)
	dvv := rot.Vector(gd2)

	// duu points back toward the axis; duv rotates dv tangentially
	duu := radial.Scale(-1)
	duv := s.Frame.Z.Cross(dv)

	n, ok := du.Cross(dv).Unit()
	if !ok {
		// on-axis generator point: the surface pinches to a singularity
		n = s.Frame.Z
	}
	return Eval{Pos: pos, Du: du, Dv: dv, Normal: n, Duu: duu, Duv: duv, Dvv: dvv}
}

func (s *Revolve) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	// rotate pos back into the generator's half-plane, invert the
	// generator there, then refine u from the rotated generator point
	radial, _ := s.local(pos)
	a := s.Frame.X.Dot(radial)
	b := s.Frame.Y.Dot(radial)
	u := 0.0
	if math.Abs(a) > gmath.Zero || math.Abs(b) > gmath.Zero {
		// angle between pos's half-plane and the generator's half-plane;
		// the generator's own azimuth is folded in by inverting the
		// un-rotated generator below
		u = math.Atan2(b, a)
	}
	gp0, _, _ := s.Gen.Evaluate(s.Gen.Domain().Mid())
	genRadial, _ := s.local(gp0)
	genAngle := math.Atan2(s.Frame.Y.Dot(genRadial), s.Frame.X.Dot(genRadial))
	u -= genAngle
	u = gmath.FullAngle.Wrap(u)
	if hasGuess {
		for u-guess.U > math.Pi {
			u -= 2 * math.Pi
		}
		for guess.U-u > math.Pi {
			u += 2 * math.Pi
		}
	}

	back := gmath.RotationAbout(s.Frame.Origin, s.Frame.Z, -u)
	inPlane := back.Point(pos)
	v, _ := s.Gen.Inverse(inPlane, hasGuess, guess.V)

	// Newton polish on both parameters against the full surface
	uv = gmath.Point2{U: u, V: v}
	dom := s.Domain()
	for iter := 0; iter < 20; iter++ {
		e := s.Evaluate(uv.U, uv.V)
		diff := e.Pos.Sub(pos)
		fu := diff.Dot(e.Du)
		fv := diff.Dot(e.Dv)
		juu := e.Du.Dot(e.Du) + diff.Dot(e.Duu)
		juv := e.Du.Dot(e.Dv) + diff.Dot(e.Duv)
		jvv := e.Dv.Dot(e.Dv) + diff.Dot(e.Dvv)
		det := juu*jvv - juv*juv
		if math.Abs(det) < gmath.Zero {
			break
		}
		du := (fu*jvv - fv*juv) / det
		dv := (fv*juu - fu*juv) / det
		uv.U -= du
		uv.V = dom.V.Clamp(uv.V - dv)
		if math.Abs(du) < 1e-12 && math.Abs(dv) < 1e-12 {
			break
		}
	}
	uv.U = gmath.FullAngle.Wrap(uv.U)
	if hasGuess {
		for uv.U-guess.U > math.Pi {
			uv.U -= 2 * math.Pi
		}
		for guess.U-uv.U > math.Pi {
			uv.U += 2 * math.Pi
		}
	}
	closest = s.Evaluate(uv.U, uv.V).Pos
	return
}

func (s *Revolve) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	return curvatureFromShapeOps(s.Evaluate(uv.U, uv.V))
}

func (s *Revolve) UParamLine(u0 float64) (curve.Curve, bool) {
	rot := gmath.RotationAbout(s.Frame.Origin, s.Frame.Z, u0)
	return s.Gen.Transform(rot), true
}

func (s *Revolve) VParamLine(v0 float64) (curve.Curve, bool) {
	gp, _, _ := s.Gen.Evaluate(v0)
	radial, height := s.local(gp)
	r := radial.Length()
	if r < gmath.Zero {
		return nil, false // generator touches the axis here
	}
	center := s.Frame.Origin.Add(s.Frame.Z.Vec().Scale(height))
	return curve.NewCircle(center, s.Frame.Z, r), true
}

func (s *Revolve) ClosedInU() bool { return true }
func (s *Revolve) ClosedInV() bool { return s.Gen.IsClosed() }

func (s *Revolve) onAxis(v float64) bool {
	gp, _, _ := s.Gen.Evaluate(v)
	radial, _ := s.local(gp)
	return radial.Length() < gmath.MinTol
}

func (s *Revolve) SingularLowU() bool  { return false }
func (s *Revolve) SingularHighU() bool { return false }
func (s *Revolve) SingularLowV() bool  { return s.onAxis(s.Gen.Domain().Lo) }
func (s *Revolve) SingularHighV() bool { return s.onAxis(s.Gen.Domain().Hi) }

func (s *Revolve) IsSingularity(uv gmath.Point2, tol float64) bool {
	gp, _, _ := s.Gen.Evaluate(uv.V)
	radial, _ := s.local(gp)
	return radial.Length() < tol
}

func (s *Revolve) Transform(trans gmath.Transform3) Surface {
	return &Revolve{
		Frame: gmath.Frame3{
			Origin: trans.Point(s.Frame.Origin),
			X:      trans.UnitVector(s.Frame.X),
			Y:      trans.UnitVector(s.Frame.Y),
			Z:      trans.UnitVector(s.Frame.Z),
		},
		Gen: s.Gen.Transform(trans),
	}
}

func (s *Revolve) Clone() Surface {
	return &Revolve{Frame: s.Frame, Gen: s.Gen.Clone()}
}
