// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

// NUB is a non-uniform B-spline curve of degree Degree with knot vector
// Knots (length n+Degree+1, for n control points) and control points
// Ctrl. Evaluation follows de Boor's recursion (Piegl & Tiller's
// "The NURBS Book" basis-function algorithm); inversion uses a
// precomputed seed table followed by Newton iteration.
type NUB struct {
	Degree int
	Knots  []float64
	Ctrl   []gmath.Point3

	seeds []seedSample // lazily built, uniform sample table
}

type seedSample struct {
	t   float64
	pos gmath.Point3
}

// NewNUB builds a NUB curve from the given degree, knot vector and
// control points. No validation beyond a minimal shape check is
// performed; malformed input is a programming error (chk.Panic), per the
// kernel's "construction through the thing/constructors, corruption is
// fatal" lifecycle.
func NewNUB(degree int, knots []float64, ctrl []gmath.Point3) *NUB {
	n := len(ctrl)
	if len(knots) != n+degree+1 {
		chk.Panic("curve: NUB knot vector length %d does not match degree=%d, n=%d control points (want %d)", len(knots), degree, n, n+degree+1)
	}
	return &NUB{Degree: degree, Knots: knots, Ctrl: ctrl}
}

func (c *NUB) Kind() Kind { return KindNUB }

func (c *NUB) Domain() gmath.Interval1 {
	p := c.Degree
	return gmath.Interval1{Lo: c.Knots[p], Hi: c.Knots[len(c.Knots)-p-1]}
}

func (c *NUB) IsClosed() bool {
	dom := c.Domain()
	pa, _, _ := c.Evaluate(dom.Lo)
	pb, _, _ := c.Evaluate(dom.Hi)
	return gmath.Distance(pa, pb) < gmath.MinTol
}

// findSpan locates the knot span index i such that Knots[i] <= t < Knots[i+1]
// (clamped at the upper domain boundary), the standard de Boor span search.
func (c *NUB) findSpan(t float64) int {
	p := c.Degree
	n := len(c.Ctrl) - 1
	if t >= c.Knots[n+1] {
		return n
	}
	if t <= c.Knots[p] {
		return p
	}
	lo, hi := p, n+1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if t < c.Knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// basisFuns computes the Degree+1 nonzero basis functions (and their 1st
// and 2nd derivatives) at span for parameter t, via the standard
// triangular recursion (Piegl & Tiller Algorithm A2.3 generalized to
// derivatives via A2.2/A2.3 style finite recursion).
func (c *NUB) basisFuns(span int, t float64) (N, dN, ddN []float64) {
	p := c.Degree
	N = make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	ndu := make([][]float64, p+1)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - c.Knots[span+1-j]
		right[j] = c.Knots[span+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}
	for j := 0; j <= p; j++ {
		N[j] = ndu[j][p]
	}

	// derivatives (order 1 and 2) via Piegl&Tiller Algorithm A2.3
	dN = make([]float64, p+1)
	ddN = make([]float64, p+1)
	for r := 0; r <= p; r++ {
		ders := nthDeriv(ndu, left, right, r, p, 2)
		dN[r] = ders[0]
		ddN[r] = ders[1]
	}
	return
}

// nthDeriv computes, for basis function r of degree p, the 1st and 2nd
// derivative factors using the a-table recursion from Piegl & Tiller.
func nthDeriv(ndu [][]float64, left, right []float64, r, p, maxOrder int) []float64 {
	result := make([]float64, maxOrder)
	a := make([][]float64, 2)
	a[0] = make([]float64, p+1)
	a[1] = make([]float64, p+1)
	a[0][0] = 1
	s1, s2 := 0, 1
	for k := 1; k <= maxOrder; k++ {
		d := 0.0
		rk := r - k
		pk := p - k
		if r >= k {
			a[s2][0] = a[s1][0] / ndu[pk+1][rk]
			d = a[s2][0] * ndu[rk][pk]
		}
		j1 := 1
		if rk < -1 {
			j1 = -rk
		}
		j2 := k - 1
		if r-1 > pk {
			j2 = p - r
		}
		for j := j1; j <= j2; j++ {
			a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
			d += a[s2][j] * ndu[rk+j][pk]
		}
		if r <= pk {
			a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
			d += a[s2][k] * ndu[r][pk]
		}
		result[k-1] = d
		s1, s2 = s2, s1
	}
	// scale by falling factorial p*(p-1)*...*(p-k+1)
	fact := 1.0
	for k := 1; k <= maxOrder; k++ {
		fact *= float64(p - k + 1)
		result[k-1] *= fact
	}
	return result
}

func (c *NUB) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	dom := c.Domain()
	t = dom.Clamp(t)
	p := c.Degree
	span := c.findSpan(t)
	N, dN, ddN := c.basisFuns(span, t)
	var px, py, pz, vx, vy, vz, ax, ay, az float64
	for j := 0; j <= p; j++ {
		cp := c.Ctrl[span-p+j]
		px += N[j] * cp.X
		py += N[j] * cp.Y
		pz += N[j] * cp.Z
		vx += dN[j] * cp.X
		vy += dN[j] * cp.Y
		vz += dN[j] * cp.Z
		ax += ddN[j] * cp.X
		ay += ddN[j] * cp.Y
		az += ddN[j] * cp.Z
	}
	pos = gmath.Point3{X: px, Y: py, Z: pz}
	d1 = gmath.Vector3{X: vx, Y: vy, Z: vz}
	d2 = gmath.Vector3{X: ax, Y: ay, Z: az}
	return
}

// buildSeeds samples the curve at 65 parameters spaced uniformly over the
// domain, seeding Newton initialization. The spacing does not adapt to
// the curve's turning; no chord-angle tolerance is checked.
func (c *NUB) buildSeeds() {
	if c.seeds != nil {
		return
	}
	dom := c.Domain()
	const n = 64 // fixed resolution
	seeds := make([]seedSample, n+1)
	for i := 0; i <= n; i++ {
		t := dom.Lo + dom.Length()*float64(i)/float64(n)
		pos, _, _ := c.Evaluate(t)
		seeds[i] = seedSample{t: t, pos: pos}
	}
	c.seeds = seeds
}

func (c *NUB) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
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
	if hasGuess {
		// prefer the guess as a starting point if it is already close,
		// letting the caller pin which side of a repeated-seed region
		// Newton should converge from.
		if gmath.DistanceSq(Evaluate0(c, guess), pos) <= bestD*4 {
			t = guess
		}
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
			// Newton stepped outside the domain: clamp to the domain
			// end it crossed and stop.
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

func (c *NUB) Curvature(t float64) gmath.Vector3 {
	_, d1, d2 := c.Evaluate(t)
	speed2 := d1.LengthSq()
	if speed2 < gmath.Zero {
		return gmath.Vector3{}
	}
	proj := d2.Dot(d1) / speed2
	perp := d2.Minus(d1.Scale(proj))
	return perp.Scale(1 / speed2)
}

func (c *NUB) FindLength(domain gmath.Interval1) float64 {
	return gmath.Quad1D(gmath.Integrand(func(t float64) float64 {
		_, d1, _ := c.Evaluate(t)
		return d1.Length()
	}), domain.Lo, domain.Hi, 48)
}

func (c *NUB) Transform(trans gmath.Transform3) Curve {
	ctrl := make([]gmath.Point3, len(c.Ctrl))
	for i, p := range c.Ctrl {
		ctrl[i] = trans.Point(p)
	}
	return &NUB{Degree: c.Degree, Knots: append([]float64{}, c.Knots...), Ctrl: ctrl}
}

func (c *NUB) Clone() Curve {
	return &NUB{
		Degree: c.Degree,
		Knots:  append([]float64{}, c.Knots...),
		Ctrl:   append([]gmath.Point3{}, c.Ctrl...),
	}
}
