// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Cone is p(u,v) = Apex + v*Axis + (v*Slope)*(cos(u)*X + sin(u)*Y), where
// Slope = tan(halfAngle) and v ranges over VDom (VDom.Lo==0 means the
// apex itself is included, a singular point).
type Cone struct {
	Frame gmath.Frame3
	Slope float64
	VDom  gmath.Interval1
}

// NewCone builds a cone from its apex, axis direction (toward increasing
// radius) and half-angle in radians.
func NewCone(apex gmath.Point3, axis gmath.UnitVector3, halfAngle float64, vdom gmath.Interval1) *Cone {
	return &Cone{Frame: gmath.FrameFromAxes(apex, axis), Slope: math.Tan(halfAngle), VDom: vdom}
}

func (c *Cone) Kind() Kind { return KindCone }

func (c *Cone) Domain() gmath.Interval2 {
	return gmath.Interval2{U: gmath.FullAngle, V: c.VDom}
}

func (c *Cone) radius(v float64) float64 { return v * c.Slope }

func (c *Cone) Evaluate(u, v float64) Eval {
	cu, su := math.Cos(u), math.Sin(u)
	r := c.radius(v)
	radial := c.Frame.X.Vec().Scale(r * cu).Plus(c.Frame.Y.Vec().Scale(r * su))
	pos := c.Frame.Origin.Add(radial).Add(c.Frame.Z.Vec().Scale(v))

	du := c.Frame.X.Vec().Scale(-r * su).Plus(c.Frame.Y.Vec().Scale(r * cu))
	radialDir := c.Frame.X.Vec().Scale(cu).Plus(c.Frame.Y.Vec().Scale(su))
	dv := radialDir.Scale(c.Slope).Plus(c.Frame.Z.Vec())

	duu := c.Frame.X.Vec().Scale(-r * cu).Plus(c.Frame.Y.Vec().Scale(-r * su))
	duv := c.Frame.X.Vec().Scale(-su * c.Slope).Plus(c.Frame.Y.Vec().Scale(cu * c.Slope))
	dvv := gmath.Vector3{}

	n, ok := du.Cross(dv).Unit()
	if !ok {
		n = c.Frame.Z
	}
	return Eval{Pos: pos, Du: du, Dv: dv, Normal: n, Duu: duu, Duv: duv, Dvv: dvv}
}

func (c *Cone) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
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
	// project v onto the axis, then correct it to the closest point on
	// the generating line within this half-plane (u fixed), a 1D Newton
	// since the cross-section at fixed u is a straight line.
	cu, su := math.Cos(u), math.Sin(u)
	radialDir := c.Frame.X.Vec().Scale(cu).Plus(c.Frame.Y.Vec().Scale(su))
	// line: p(v) = Origin + v*Z + v*Slope*radialDir ; direction = Z + Slope*radialDir
	dir := c.Frame.Z.Vec().Plus(radialDir.Scale(c.Slope))
	toPoint := pos.Sub(c.Frame.Origin)
	v = toPoint.Dot(dir) / dir.Dot(dir)
	v = c.VDom.Clamp(v)
	uv = gmath.Point2{U: u, V: v}
	closest = c.Evaluate(u, v).Pos
	return
}

func (c *Cone) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	e := c.Evaluate(uv.U, uv.V)
	return curvatureFromShapeOps(e)
}

func (c *Cone) UParamLine(u0 float64) (curve.Curve, bool) {
	cu, su := math.Cos(u0), math.Sin(u0)
	radialDir := c.Frame.X.Vec().Scale(cu).Plus(c.Frame.Y.Vec().Scale(su))
	dir := c.Frame.Z.Vec().Plus(radialDir.Scale(c.Slope)).MustUnit()
	return curve.NewBoundedLine(c.Frame.Origin, dir, c.VDom), true
}

func (c *Cone) VParamLine(v0 float64) (curve.Curve, bool) {
	if math.Abs(v0) < gmath.Zero {
		return nil, false // the apex collapses to a point, not a circle
	}
	center := c.Frame.Origin.Add(c.Frame.Z.Vec().Scale(v0))
	return curve.NewCircle(center, c.Frame.Z, c.radius(v0)), true
}

func (c *Cone) ClosedInU() bool     { return true }
func (c *Cone) ClosedInV() bool     { return false }
func (c *Cone) SingularLowU() bool  { return false }
func (c *Cone) SingularHighU() bool { return false }
func (c *Cone) SingularLowV() bool  { return math.Abs(c.VDom.Lo) < gmath.Zero }
func (c *Cone) SingularHighV() bool { return math.Abs(c.VDom.Hi) < gmath.Zero }

func (c *Cone) IsSingularity(uv gmath.Point2, tol float64) bool {
	return math.Abs(uv.V) < tol
}

func (c *Cone) Transform(trans gmath.Transform3) Surface {
	return &Cone{
		Frame: gmath.Frame3{
			Origin: trans.Point(c.Frame.Origin),
			X:      trans.UnitVector(c.Frame.X),
			Y:      trans.UnitVector(c.Frame.Y),
			Z:      trans.UnitVector(c.Frame.Z),
		},
		Slope: c.Slope, VDom: c.VDom,
	}
}

func (c *Cone) Clone() Surface {
	cp := *c
	return &cp
}
