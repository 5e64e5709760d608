// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"math"
	"sort"

	"github.com/cpmech/sgm/gmath"
)

// HermiteSample is one (parameter, position, tangent) sample of a
// piecewise-cubic hermite curve, the representation the surface/surface
// walker produces and the representation an edge's cached
// polyline also borrows from for seam-split segments.
type HermiteSample struct {
	T       float64
	Pos     gmath.Point3
	Tangent gmath.Vector3
}

// Hermite is a piecewise-cubic curve interpolating Samples in order of T,
// each cubic segment matching position and tangent at both ends (the
// classic two-point Hermite basis). Used to represent surface/surface
// intersection curves.
type Hermite struct {
	Samples []HermiteSample
}

// NewHermite builds a hermite curve from samples, sorting them by T.
func NewHermite(samples []HermiteSample) *Hermite {
	cp := append([]HermiteSample{}, samples...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].T < cp[j].T })
	return &Hermite{Samples: cp}
}

func (h *Hermite) Kind() Kind { return KindHermite }

func (h *Hermite) Domain() gmath.Interval1 {
	if len(h.Samples) == 0 {
		return gmath.Interval1{}
	}
	return gmath.Interval1{Lo: h.Samples[0].T, Hi: h.Samples[len(h.Samples)-1].T}
}

func (h *Hermite) IsClosed() bool {
	if len(h.Samples) < 2 {
		return false
	}
	a, b := h.Samples[0], h.Samples[len(h.Samples)-1]
	return gmath.Distance(a.Pos, b.Pos) < gmath.MinTol
}

// segment locates the hermite segment containing t and returns its local
// parameter u in [0,1] along with the two bracketing samples.
func (h *Hermite) segment(t float64) (lo, hi HermiteSample, u float64) {
	n := len(h.Samples)
	if n == 0 {
		return
	}
	if n == 1 {
		return h.Samples[0], h.Samples[0], 0
	}
	i := sort.Search(n, func(i int) bool { return h.Samples[i].T >= t }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 {
		i = n - 2
	}
	lo, hi = h.Samples[i], h.Samples[i+1]
	span := hi.T - lo.T
	if span < gmath.Zero {
		u = 0
	} else {
		u = (t - lo.T) / span
	}
	return
}

// Evaluate blends lo/hi with the standard two-point cubic Hermite basis
// (h00,h10,h01,h11), scaling tangents by the segment's parameter span so
// that the Tangent field stays in world units.
func (h *Hermite) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	lo, hi, u := h.segment(t)
	span := hi.T - lo.T
	if span < gmath.Zero {
		return lo.Pos, lo.Tangent, gmath.Vector3{}
	}
	u2, u3 := u*u, u*u*u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	m0 := lo.Tangent.Scale(span)
	m1 := hi.Tangent.Scale(span)

	pos = gmath.Point3{
		X: h00*lo.Pos.X + h10*m0.X + h01*hi.Pos.X + h11*m1.X,
		Y: h00*lo.Pos.Y + h10*m0.Y + h01*hi.Pos.Y + h11*m1.Y,
		Z: h00*lo.Pos.Z + h10*m0.Z + h01*hi.Pos.Z + h11*m1.Z,
	}

	dh00 := 6*u2 - 6*u
	dh10 := 3*u2 - 4*u + 1
	dh01 := -6*u2 + 6*u
	dh11 := 3*u2 - 2*u
	d1 = gmath.Vector3{
		X: dh00*lo.Pos.X + dh10*m0.X + dh01*hi.Pos.X + dh11*m1.X,
		Y: dh00*lo.Pos.Y + dh10*m0.Y + dh01*hi.Pos.Y + dh11*m1.Y,
		Z: dh00*lo.Pos.Z + dh10*m0.Z + dh01*hi.Pos.Z + dh11*m1.Z,
	}
	d1 = d1.Scale(1 / span)

	ddh00 := 12*u - 6
	ddh10 := 6*u - 4
	ddh01 := -12*u + 6
	ddh11 := 6*u - 2
	d2 = gmath.Vector3{
		X: ddh00*lo.Pos.X + ddh10*m0.X + ddh01*hi.Pos.X + ddh11*m1.X,
		Y: ddh00*lo.Pos.Y + ddh10*m0.Y + ddh01*hi.Pos.Y + ddh11*m1.Y,
		Z: ddh00*lo.Pos.Z + ddh10*m0.Z + ddh01*hi.Pos.Z + ddh11*m1.Z,
	}
	d2 = d2.Scale(1 / (span * span))
	return
}

func (h *Hermite) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	if len(h.Samples) == 0 {
		return 0, gmath.Point3{}
	}
	best := h.Samples[0].T
	bestD := gmath.DistanceSq(h.Samples[0].Pos, pos)
	for _, s := range h.Samples[1:] {
		d := gmath.DistanceSq(s.Pos, pos)
		if d < bestD {
			best, bestD = s.T, d
		}
	}
	t = best
	if hasGuess {
		t = guess
	}
	dom := h.Domain()
	for iter := 0; iter < 30; iter++ {
		p, d1, d2 := h.Evaluate(t)
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
	closest, _, _ = h.Evaluate(t)
	return
}

func (h *Hermite) Curvature(t float64) gmath.Vector3 {
	_, d1, d2 := h.Evaluate(t)
	speed2 := d1.LengthSq()
	if speed2 < gmath.Zero {
		return gmath.Vector3{}
	}
	proj := d2.Dot(d1) / speed2
	perp := d2.Minus(d1.Scale(proj))
	return perp.Scale(1 / speed2)
}

func (h *Hermite) FindLength(domain gmath.Interval1) float64 {
	return gmath.Quad1D(gmath.Integrand(func(t float64) float64 {
		_, d1, _ := h.Evaluate(t)
		return d1.Length()
	}), domain.Lo, domain.Hi, 32)
}

func (h *Hermite) Transform(trans gmath.Transform3) Curve {
	samples := make([]HermiteSample, len(h.Samples))
	for i, s := range h.Samples {
		samples[i] = HermiteSample{T: s.T, Pos: trans.Point(s.Pos), Tangent: trans.Vector(s.Tangent)}
	}
	return &Hermite{Samples: samples}
}

func (h *Hermite) Clone() Curve {
	return &Hermite{Samples: append([]HermiteSample{}, h.Samples...)}
}

// InsertMidpoint refines the hermite curve by inserting a new sample
// into the segment containing s.T; the walker's refinement pass uses it
// wherever the cubic midpoint strays from the exact intersection.
func (h *Hermite) InsertMidpoint(s HermiteSample) {
	i := sort.Search(len(h.Samples), func(i int) bool { return h.Samples[i].T >= s.T })
	h.Samples = append(h.Samples, HermiteSample{})
	copy(h.Samples[i+1:], h.Samples[i:])
	h.Samples[i] = s
}
