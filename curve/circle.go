// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"

	"github.com/cpmech/sgm/gmath"
)

// Circle is p(u) = Center + R*(cos(u)*X + sin(u)*Y), domain [0,2pi).
type Circle struct {
	Frame gmath.Frame3
	R     float64
}

// NewCircle builds a circle of radius r centered at center with the given
// normal (its Z axis); the in-plane X/Y axes are chosen deterministically
// by gmath.FrameFromAxes.
func NewCircle(center gmath.Point3, normal gmath.UnitVector3, r float64) *Circle {
	return &Circle{Frame: gmath.FrameFromAxes(center, normal), R: r}
}

func (c *Circle) Kind() Kind             { return KindCircle }
func (c *Circle) Domain() gmath.Interval1 { return gmath.FullAngle }
func (c *Circle) IsClosed() bool         { return true }

func (c *Circle) Evaluate(u float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	cu, su := math.Cos(u), math.Sin(u)
	pos = c.Frame.Eval(c.R*cu, c.R*su, 0)
	d1 = c.Frame.X.Vec().Scale(-c.R * su).Plus(c.Frame.Y.Vec().Scale(c.R * cu))
	d2 = c.Frame.X.Vec().Scale(-c.R * cu).Plus(c.Frame.Y.Vec().Scale(-c.R * su))
	return
}

// Inverse maps pos onto the circle by projecting into the local frame and
// using atan2; near the seam (u close to 0/2pi) guess selects the branch
// that keeps continuity with a neighboring sample.
func (c *Circle) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	a, b, _ := c.Frame.Local(pos)
	u := math.Atan2(b, a)
	if u < 0 {
		u += 2 * math.Pi
	}
	if hasGuess {
		// choose the representative of u (mod 2pi) nearest guess
		for u-guess > math.Pi {
			u -= 2 * math.Pi
		}
		for guess-u > math.Pi {
			u += 2 * math.Pi
		}
	}
	t = u
	closest, _, _ = c.Evaluate(u)
	return
}

func (c *Circle) Curvature(t float64) gmath.Vector3 {
	pos, _, _ := c.Evaluate(t)
	toCenter := c.Frame.Origin.Sub(pos)
	u, ok := toCenter.Unit()
	if !ok {
		return gmath.Vector3{}
	}
	return u.Vec().Scale(1 / c.R)
}

func (c *Circle) FindLength(domain gmath.Interval1) float64 {
	return c.R * domain.Length()
}

func (c *Circle) Transform(trans gmath.Transform3) Curve {
	return &Circle{
		Frame: gmath.Frame3{
			Origin: trans.Point(c.Frame.Origin),
			X:      trans.UnitVector(c.Frame.X),
			Y:      trans.UnitVector(c.Frame.Y),
			Z:      trans.UnitVector(c.Frame.Z),
		},
		R: c.R,
	}
}

func (c *Circle) Clone() Curve {
	cp := *c
	return &cp
}
