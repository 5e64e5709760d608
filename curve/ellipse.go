// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"

	"github.com/cpmech/sgm/gmath"
)

// Ellipse is p(u) = Center + A*cos(u)*X + B*sin(u)*Y, domain [0,2pi).
type Ellipse struct {
	Frame gmath.Frame3
	A, B  float64 // semi-major (X) and semi-minor (Y) radii
}

func NewEllipse(center gmath.Point3, normal, majorAxis gmath.UnitVector3, a, b float64) *Ellipse {
	f := gmath.Frame3{Origin: center, X: majorAxis, Z: normal}
	f.Y = normal.Cross(majorAxis.Vec()).MustUnit()
	return &Ellipse{Frame: f, A: a, B: b}
}

func (e *Ellipse) Kind() Kind              { return KindEllipse }
func (e *Ellipse) Domain() gmath.Interval1 { return gmath.FullAngle }
func (e *Ellipse) IsClosed() bool          { return true }

func (e *Ellipse) Evaluate(u float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	cu, su := math.Cos(u), math.Sin(u)
	pos = e.Frame.Eval(e.A*cu, e.B*su, 0)
	d1 = e.Frame.X.Vec().Scale(-e.A * su).Plus(e.Frame.Y.Vec().Scale(e.B * cu))
	d2 = e.Frame.X.Vec().Scale(-e.A * cu).Plus(e.Frame.Y.Vec().Scale(-e.B * su))
	return
}

// Inverse solves the closest-point equation by minimizing
// f(u) = (A cos u - a)^2 + (B sin u - b)^2 in the local frame via Newton
// iteration seeded from atan2, with guess used to disambiguate the seam.
func (e *Ellipse) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	a, b, _ := e.Frame.Local(pos)
	u := math.Atan2(b*e.A, a*e.B) // seed assuming near-circular behaviour
	for iter := 0; iter < 30; iter++ {
		cu, su := math.Cos(u), math.Sin(u)
		px, py := e.A*cu, e.B*su
		dpx, dpy := -e.A*su, e.B*cu
		ddpx, ddpy := -e.A*cu, -e.B*su
		f := (px-a)*dpx + (py-b)*dpy
		df := dpx*dpx + (px-a)*ddpx + dpy*dpy + (py-b)*ddpy
		if math.Abs(df) < gmath.Zero {
			break
		}
		du := f / df
		u -= du
		if math.Abs(du) < 1e-14 {
			break
		}
	}
	u = gmath.FullAngle.Wrap(u)
	if hasGuess {
		for u-guess > math.Pi {
			u -= 2 * math.Pi
		}
		for guess-u > math.Pi {
			u += 2 * math.Pi
		}
	}
	t = u
	closest, _, _ = e.Evaluate(u)
	return
}

func (e *Ellipse) Curvature(t float64) gmath.Vector3 {
	pos, d1, d2 := e.Evaluate(t)
	speed2 := d1.LengthSq()
	if speed2 < gmath.Zero {
		return gmath.Vector3{}
	}
	// kappa vector = (d2 - (d2.d1/|d1|^2) d1) / |d1|^2, pointed toward concavity
	proj := d2.Dot(d1) / speed2
	perp := d2.Minus(d1.Scale(proj))
	_ = pos
	return perp.Scale(1 / speed2)
}

func (e *Ellipse) FindLength(domain gmath.Interval1) float64 {
	return gmath.Quad1D(gmath.Integrand(func(u float64) float64 {
		_, d1, _ := e.Evaluate(u)
		return d1.Length()
	}), domain.Lo, domain.Hi, 32)
}

func (e *Ellipse) Transform(trans gmath.Transform3) Curve {
	return &Ellipse{
		Frame: gmath.Frame3{
			Origin: trans.Point(e.Frame.Origin),
			X:      trans.UnitVector(e.Frame.X),
			Y:      trans.UnitVector(e.Frame.Y),
			Z:      trans.UnitVector(e.Frame.Z),
		},
		A: e.A, B: e.B,
	}
}

func (e *Ellipse) Clone() Curve {
	cp := *e
	return &cp
}
