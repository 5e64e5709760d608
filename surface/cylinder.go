// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Cylinder is p(u,v) = Frame.Origin + v*Axis + R*(cos(u)*X + sin(u)*Y),
// u in [0,2pi), v in VDom.
type Cylinder struct {
	Frame gmath.Frame3 // Z is the axis direction
	R     float64
	VDom  gmath.Interval1
}

func NewCylinder(bottom gmath.Point3, axis gmath.UnitVector3, r float64, vdom gmath.Interval1) *Cylinder {
	return &Cylinder{Frame: gmath.FrameFromAxes(bottom, axis), R: r, VDom: vdom}
}

func (c *Cylinder) Kind() Kind { return KindCylinder }

func (c *Cylinder) Domain() gmath.Interval2 {
	return gmath.Interval2{U: gmath.FullAngle, V: c.VDom}
}

func (c *Cylinder) Evaluate(u, v float64) Eval {
	cu, su := math.Cos(u), math.Sin(u)
	radial := c.Frame.X.Vec().Scale(c.R * cu).Plus(c.Frame.Y.Vec().Scale(c.R * su))
	pos := c.Frame.Origin.Add(radial).Add(c.Frame.Z.Vec().Scale(v))
	du := c.Frame.X.Vec().Scale(-c.R * su).Plus(c.Frame.Y.Vec().Scale(c.R * cu))
	dv := c.Frame.Z.Vec()
	duu := c.Frame.X.Vec().Scale(-c.R * cu).Plus(c.Frame.Y.Vec().Scale(-c.R * su))
	normal, _ := radial.Unit()
	return Eval{Pos: pos, Du: du, Dv: dv, Normal: normal, Duu: duu, Duv: gmath.Vector3{}, Dvv: gmath.Vector3{}}
}

func (c *Cylinder) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	a, b, v := c.Frame.Local(pos)
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
	v = c.VDom.Clamp(v)
	uv = gmath.Point2{U: u, V: v}
	closest = c.Evaluate(u, v).Pos
	return
}

func (c *Cylinder) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	// circumferential direction has curvature 1/R, axial direction is flat
	return gmath.Point2{U: 1, V: 0}, gmath.Point2{U: 0, V: 1}, 1 / c.R, 0
}

func (c *Cylinder) UParamLine(u0 float64) (curve.Curve, bool) {
	cu, su := math.Cos(u0), math.Sin(u0)
	origin := c.Frame.Origin.Add(c.Frame.X.Vec().Scale(c.R * cu)).Add(c.Frame.Y.Vec().Scale(c.R * su))
	return curve.NewBoundedLine(origin, c.Frame.Z, c.VDom), true
}

func (c *Cylinder) VParamLine(v0 float64) (curve.Curve, bool) {
	center := c.Frame.Origin.Add(c.Frame.Z.Vec().Scale(v0))
	return curve.NewCircle(center, c.Frame.Z, c.R), true
}

func (c *Cylinder) ClosedInU() bool               { return true }
func (c *Cylinder) ClosedInV() bool               { return false }
func (c *Cylinder) SingularLowU() bool            { return false }
func (c *Cylinder) SingularHighU() bool           { return false }
func (c *Cylinder) SingularLowV() bool            { return false }
func (c *Cylinder) SingularHighV() bool           { return false }
func (c *Cylinder) IsSingularity(gmath.Point2, float64) bool { return false }

func (c *Cylinder) Transform(trans gmath.Transform3) Surface {
	return &Cylinder{
		Frame: gmath.Frame3{
			Origin: trans.Point(c.Frame.Origin),
			X:      trans.UnitVector(c.Frame.X),
			Y:      trans.UnitVector(c.Frame.Y),
			Z:      trans.UnitVector(c.Frame.Z),
		},
		R: c.R, VDom: c.VDom,
	}
}

func (c *Cylinder) Clone() Surface {
	cp := *c
	return &cp
}
