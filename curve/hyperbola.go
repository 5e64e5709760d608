// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"

	"github.com/cpmech/sgm/gmath"
)

// Hyperbola is, in its local (Center,X,Y) frame, the branch
// x=A*cosh(t), y=B*sinh(t).
type Hyperbola struct {
	Frame gmath.Frame3
	A, B  float64
}

func NewHyperbola(center gmath.Point3, normal, xAxis gmath.UnitVector3, a, b float64) *Hyperbola {
	f := gmath.Frame3{Origin: center, X: xAxis, Z: normal}
	f.Y = normal.Cross(xAxis.Vec()).MustUnit()
	return &Hyperbola{Frame: f, A: a, B: b}
}

func (h *Hyperbola) Kind() Kind              { return KindHyperbola }
func (h *Hyperbola) Domain() gmath.Interval1 { return gmath.Interval1{Lo: negInf, Hi: posInf} }
func (h *Hyperbola) IsClosed() bool          { return false }

func (h *Hyperbola) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	ch, sh := math.Cosh(t), math.Sinh(t)
	pos = h.Frame.Eval(h.A*ch, h.B*sh, 0)
	d1 = h.Frame.X.Vec().Scale(h.A * sh).Plus(h.Frame.Y.Vec().Scale(h.B * ch))
	d2 = h.Frame.X.Vec().Scale(h.A * ch).Plus(h.Frame.Y.Vec().Scale(h.B * sh))
	return
}

// Inverse Newton-iterates f(t) = (x(t)-a)x'(t) + (y(t)-b)y'(t) = 0, the
// standard closest-point stationary equation for a conic branch, starting
// from t=0 (or guess); an iterate beyond |t|>50 is clamped to +-50 and
// iteration stops.
func (h *Hyperbola) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	a, b, _ := h.Frame.Local(pos)
	t = 0
	if hasGuess {
		t = guess
	}
	for iter := 0; iter < 50; iter++ {
		ch, sh := math.Cosh(t), math.Sinh(t)
		x, y := h.A*ch, h.B*sh
		dx, dy := h.A*sh, h.B*ch
		ddx, ddy := h.A*ch, h.B*sh
		f := (x-a)*dx + (y-b)*dy
		df := dx*dx + (x-a)*ddx + dy*dy + (y-b)*ddy
		if math.Abs(df) < gmath.Zero {
			break
		}
		dt := f / df
		t -= dt
		if math.Abs(dt) < 1e-14 {
			break
		}
		if math.Abs(t) > 50 {
			t = gmath.Clamp(t, -50, 50)
			break
		}
	}
	closest, _, _ = h.Evaluate(t)
	return
}

func (h *Hyperbola) Curvature(t float64) gmath.Vector3 {
	_, d1, d2 := h.Evaluate(t)
	speed2 := d1.LengthSq()
	if speed2 < gmath.Zero {
		return gmath.Vector3{}
	}
	proj := d2.Dot(d1) / speed2
	perp := d2.Minus(d1.Scale(proj))
	return perp.Scale(1 / speed2)
}

func (h *Hyperbola) FindLength(domain gmath.Interval1) float64 {
	return gmath.Quad1D(gmath.Integrand(func(t float64) float64 {
		_, d1, _ := h.Evaluate(t)
		return d1.Length()
	}), domain.Lo, domain.Hi, 32)
}

func (h *Hyperbola) Transform(trans gmath.Transform3) Curve {
	return &Hyperbola{
		Frame: gmath.Frame3{
			Origin: trans.Point(h.Frame.Origin),
			X:      trans.UnitVector(h.Frame.X),
			Y:      trans.UnitVector(h.Frame.Y),
			Z:      trans.UnitVector(h.Frame.Z),
		},
		A: h.A, B: h.B,
	}
}

func (h *Hyperbola) Clone() Curve {
	cp := *h
	return &cp
}
