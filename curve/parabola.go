// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import "github.com/cpmech/sgm/gmath"

// Parabola is, in its local (Vertex,X,Y) frame, y = A*x^2 with x=t.
type Parabola struct {
	Frame gmath.Frame3 // Origin == vertex, X along the axis of symmetry's perpendicular, Y along the axis
	A     float64
}

func NewParabola(vertex gmath.Point3, normal, xAxis gmath.UnitVector3, a float64) *Parabola {
	f := gmath.Frame3{Origin: vertex, X: xAxis, Z: normal}
	f.Y = normal.Cross(xAxis.Vec()).MustUnit()
	return &Parabola{Frame: f, A: a}
}

func (p *Parabola) Kind() Kind              { return KindParabola }
func (p *Parabola) Domain() gmath.Interval1 { return gmath.Interval1{Lo: negInf, Hi: posInf} }
func (p *Parabola) IsClosed() bool          { return false }

func (p *Parabola) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	y := p.A * t * t
	pos = p.Frame.Eval(t, y, 0)
	d1 = p.Frame.X.Vec().Plus(p.Frame.Y.Vec().Scale(2 * p.A * t))
	d2 = p.Frame.Y.Vec().Scale(2 * p.A)
	return
}

// Inverse minimizes f(t) = (t-a)^2 + (A t^2 - b)^2, whose stationary
// point equation is the cubic 2*A^2*t^3 + (1-2*A*b)*t - a = 0, solved in
// closed form.
func (p *Parabola) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	a, b, _ := p.Frame.Local(pos)
	roots := gmath.SolveCubic(2*p.A*p.A, 0, 1-2*p.A*b, -a)
	if len(roots) == 0 {
		t = 0
	} else {
		best := roots[0]
		bestD := distSqAt(p, best, pos)
		for _, r := range roots[1:] {
			d := distSqAt(p, r, pos)
			if d < bestD {
				best, bestD = r, d
			}
		}
		t = best
	}
	closest, _, _ = p.Evaluate(t)
	return
}

func distSqAt(c Curve, t float64, pos gmath.Point3) float64 {
	q, _, _ := c.Evaluate(t)
	return gmath.DistanceSq(q, pos)
}

func (p *Parabola) Curvature(t float64) gmath.Vector3 {
	_, d1, d2 := p.Evaluate(t)
	speed2 := d1.LengthSq()
	if speed2 < gmath.Zero {
		return gmath.Vector3{}
	}
	proj := d2.Dot(d1) / speed2
	perp := d2.Minus(d1.Scale(proj))
	return perp.Scale(1 / speed2)
}

func (p *Parabola) FindLength(domain gmath.Interval1) float64 {
	return gmath.Quad1D(gmath.Integrand(func(t float64) float64 {
		_, d1, _ := p.Evaluate(t)
		return d1.Length()
	}), domain.Lo, domain.Hi, 32)
}

func (p *Parabola) Transform(trans gmath.Transform3) Curve {
	return &Parabola{
		Frame: gmath.Frame3{
			Origin: trans.Point(p.Frame.Origin),
			X:      trans.UnitVector(p.Frame.X),
			Y:      trans.UnitVector(p.Frame.Y),
			Z:      trans.UnitVector(p.Frame.Z),
		},
		A: p.A,
	}
}

func (p *Parabola) Clone() Curve {
	cp := *p
	return &cp
}
