// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Extrude sweeps a generator curve along a direction: u is the distance
// along Dir, v the generator parameter. p(u,v) = gen(v) + u*Dir.
type Extrude struct {
	Dir  gmath.UnitVector3
	Gen  curve.Curve
	UDom gmath.Interval1
}

func NewExtrude(dir gmath.UnitVector3, gen curve.Curve, udom gmath.Interval1) *Extrude {
	return &Extrude{Dir: dir, Gen: gen, UDom: udom}
}

func (s *Extrude) Kind() Kind { return KindExtrude }

func (s *Extrude) Domain() gmath.Interval2 {
	return gmath.Interval2{U: s.UDom, V: s.Gen.Domain()}
}

func (s *Extrude) Evaluate(u, v float64) Eval {
	gp, gd1, gd2 := s.Gen.Evaluate(v)
	pos := gp.Add(s.Dir.Vec().Scale(u))
	du := s.Dir.Vec()
	n, ok := du.Cross(gd1).Unit()
	if !ok {
		// generator tangent parallel to the sweep direction
		n = s.Dir
	}
	return Eval{Pos: pos, Du: du, Dv: gd1, Normal: n, Duu: gmath.Vector3{}, Duv: gmath.Vector3{}, Dvv: gd2}
}

func (s *Extrude) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	// invert the generator on pos itself, take u as the sweep component of
	// pos relative to that generator point, then refine v by Newton with u
	// re-derived from each new v
	v, _ := s.Gen.Inverse(pos, hasGuess, guess.V)
	gp, _, _ := s.Gen.Evaluate(v)
	u := s.Dir.Dot(pos.Sub(gp))
	u = s.UDom.Clamp(u)

	for iter := 0; iter < 20; iter++ {
		e := s.Evaluate(u, v)
		diff := e.Pos.Sub(pos)
		fv := diff.Dot(e.Dv)
		jvv := e.Dv.Dot(e.Dv) + diff.Dot(e.Dvv)
		if math.Abs(jvv) < gmath.Zero {
			break
		}
		dv := fv / jvv
		v = s.Gen.Domain().Clamp(v - dv)
		u = s.UDom.Clamp(s.Dir.Dot(pos.Sub(curve.Evaluate0(s.Gen, v))))
		if math.Abs(dv) < 1e-12 {
			break
		}
	}
	uv = gmath.Point2{U: u, V: v}
	closest = s.Evaluate(u, v).Pos
	return
}

func (s *Extrude) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	return curvatureFromShapeOps(s.Evaluate(uv.U, uv.V))
}

func (s *Extrude) UParamLine(u0 float64) (curve.Curve, bool) {
	trans := gmath.Translation(s.Dir.Vec().Scale(u0))
	return s.Gen.Transform(trans), true
}

func (s *Extrude) VParamLine(v0 float64) (curve.Curve, bool) {
	gp, _, _ := s.Gen.Evaluate(v0)
	return curve.NewBoundedLine(gp, s.Dir, s.UDom), true
}

func (s *Extrude) ClosedInU() bool                          { return false }
func (s *Extrude) ClosedInV() bool                          { return s.Gen.IsClosed() }
func (s *Extrude) SingularLowU() bool                       { return false }
func (s *Extrude) SingularHighU() bool                      { return false }
func (s *Extrude) SingularLowV() bool                       { return false }
func (s *Extrude) SingularHighV() bool                      { return false }
func (s *Extrude) IsSingularity(gmath.Point2, float64) bool { return false }

func (s *Extrude) Transform(trans gmath.Transform3) Surface {
	return &Extrude{
		Dir:  trans.UnitVector(s.Dir),
		Gen:  s.Gen.Transform(trans),
		UDom: s.UDom,
	}
}

func (s *Extrude) Clone() Surface {
	return &Extrude{Dir: s.Dir, Gen: s.Gen.Clone(), UDom: s.UDom}
}
