// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"

	"github.com/cpmech/sgm/gmath"
)

// NURB is a non-uniform rational B-spline curve: a NUB evaluated in
// homogeneous (w*x,w*y,w*z,w) space and projected back by dividing
// through by the cumulative weight.
type NURB struct {
	Degree  int
	Knots   []float64
	Ctrl    []gmath.Point3
	Weights []float64

	seeds []seedSample
}

// NewNURB builds a NURB curve from degree, knots, control points and
// per-control-point weights.
func NewNURB(degree int, knots []float64, ctrl []gmath.Point3, weights []float64) *NURB {
	if len(weights) != len(ctrl) {
		panic("curve: NURB weights length must match control points")
	}
	return &NURB{Degree: degree, Knots: knots, Ctrl: ctrl, Weights: weights}
}

func (c *NURB) Kind() Kind { return KindNURB }

func (c *NURB) Domain() gmath.Interval1 {
	p := c.Degree
	return gmath.Interval1{Lo: c.Knots[p], Hi: c.Knots[len(c.Knots)-p-1]}
}

func (c *NURB) IsClosed() bool {
	dom := c.Domain()
	pa, _, _ := c.Evaluate(dom.Lo)
	pb, _, _ := c.Evaluate(dom.Hi)
	return gmath.Distance(pa, pb) < gmath.MinTol
}

// evalHomog evaluates the weighted position, the weighted first two
// derivative vectors, and the scalar weight function w(t) and its
// derivatives, by running the NUB basis over the four homogeneous
// components (x*w, y*w, z*w, w) at once.
func (c *NURB) evalHomog(t float64) (numPos, numD1, numD2 gmath.Vector3, w, dw, ddw float64) {
	nub := &NUB{Degree: c.Degree, Knots: c.Knots, Ctrl: c.Ctrl}
	dom := nub.Domain()
	t = dom.Clamp(t)
	span := nub.findSpan(t)
	N, dN, ddN := nub.basisFuns(span, t)
	p := c.Degree
	for j := 0; j <= p; j++ {
		idx := span - p + j
		cp := c.Ctrl[idx]
		wt := c.Weights[idx]
		numPos.X += N[j] * wt * cp.X
		numPos.Y += N[j] * wt * cp.Y
		numPos.Z += N[j] * wt * cp.Z
		numD1.X += dN[j] * wt * cp.X
		numD1.Y += dN[j] * wt * cp.Y
		numD1.Z += dN[j] * wt * cp.Z
		numD2.X += ddN[j] * wt * cp.X
		numD2.Y += ddN[j] * wt * cp.Y
		numD2.Z += ddN[j] * wt * cp.Z
		w += N[j] * wt
		dw += dN[j] * wt
		ddw += ddN[j] * wt
	}
	return
}

func (c *NURB) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	numPos, numD1, numD2, w, dw, ddw := c.evalHomog(t)
	if math.Abs(w) < gmath.Zero {
		w = gmath.Zero
	}
	pos = gmath.Point3{X: numPos.X / w, Y: numPos.Y / w, Z: numPos.Z / w}
	// quotient rule: C' = (A' - w'*C)/w ; C'' = (A'' - 2w'*C' - w''*C)/w
	cx, cy, cz := pos.X, pos.Y, pos.Z
	d1 = gmath.Vector3{
		X: (numD1.X - dw*cx) / w,
		Y: (numD1.Y - dw*cy) / w,
		Z: (numD1.Z - dw*cz) / w,
	}
	d2 = gmath.Vector3{
		X: (numD2.X - 2*dw*d1.X - ddw*cx) / w,
		Y: (numD2.Y - 2*dw*d1.Y - ddw*cy) / w,
		Z: (numD2.Z - 2*dw*d1.Z - ddw*cz) / w,
	}
	return
}

func (c *NURB) buildSeeds() {
	if c.seeds != nil {
		return
	}
	dom := c.Domain()
	const n = 64
	seeds := make([]seedSample, n+1)
	for i := 0; i <= n; i++ {
		t := dom.Lo + dom.Length()*float64(i)/float64(n)
		pos, _, _ := c.Evaluate(t)
		seeds[i] = seedSample{t: t, pos: pos}
	}
	c.seeds = seeds
}

func (c *NURB) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	c.buildSeeds()
	best := c.seeds[0]
	bestD := gmath.DistanceSq(best.pos, pos)
	for _, s := range c.seeds[1:] {
		d := gmath.DistanceSq(s.pos, pos)
		if d < bestD {
			best, bestD = s, d
		}
	}
	t = best.t
	if hasGuess && gmath.DistanceSq(Evaluate0(c, guess), pos) <= bestD*4 {
		t = guess
	}
	dom := c.Domain()
	for iter := 0; iter < 30; iter++ {
		p, d1, d2 := c.Evaluate(t)
		diff := p.Sub(pos)
		f := diff.Dot(d1)
		df := d1.Dot(d1) + diff.Dot(d2)
		if math.Abs(df) < gmath.Zero {
			break
		}
		dt := f / df
		tNext := t - dt
		if tNext < dom.Lo || tNext > dom.Hi {
			t = dom.Clamp(tNext)
			break
		}
		t = tNext
		if math.Abs(dt) < 1e-12 {
			break
		}
	}
	closest, _, _ = c.Evaluate(t)
	return
}

func (c *NURB) Curvature(t float64) gmath.Vector3 {
	_, d1, d2 := c.Evaluate(t)
	speed2 := d1.LengthSq()
	if speed2 < gmath.Zero {
		return gmath.Vector3{}
	}
	proj := d2.Dot(d1) / speed2
	perp := d2.Minus(d1.Scale(proj))
	return perp.Scale(1 / speed2)
}

func (c *NURB) FindLength(domain gmath.Interval1) float64 {
	return gmath.Quad1D(gmath.Integrand(func(t float64) float64 {
		_, d1, _ := c.Evaluate(t)
		return d1.Length()
	}), domain.Lo, domain.Hi, 48)
}

func (c *NURB) Transform(trans gmath.Transform3) Curve {
	ctrl := make([]gmath.Point3, len(c.Ctrl))
	for i, p := range c.Ctrl {
		ctrl[i] = trans.Point(p)
	}
	return &NURB{
		Degree:  c.Degree,
		Knots:   append([]float64{}, c.Knots...),
		Ctrl:    ctrl,
		Weights: append([]float64{}, c.Weights...),
	}
}

func (c *NURB) Clone() Curve {
	return &NURB{
		Degree:  c.Degree,
		Knots:   append([]float64{}, c.Knots...),
		Ctrl:    append([]gmath.Point3{}, c.Ctrl...),
		Weights: append([]float64{}, c.Weights...),
	}
}
