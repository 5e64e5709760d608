// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

// gaussLegendre5 holds the 5-point Gauss-Legendre rule on [-1,1], enough
// for the low-order geometry integrands composite panels throw at it.
var gaussLegendre5 = struct {
	x, w [5]float64
}{
	x: [5]float64{-0.9061798459386640, -0.5384693101056831, 0, 0.5384693101056831, 0.9061798459386640},
	w: [5]float64{0.2369268850561891, 0.4786286704993665, 0.5688888888888889, 0.4786286704993665, 0.2369268850561891},
}

// Integrand is a scalar function of one parameter, the thing Quad1D
// integrates (curve speed for arc length, u*dv for Green areas).
type Integrand func(t float64) float64

// Quad1D integrates f over [lo,hi] with composite 5-point Gauss-Legendre,
// using n panels. Used by curve.FindLength.
func Quad1D(f Integrand, lo, hi float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	h := (hi - lo) / float64(n)
	half := h / 2
	total := 0.0
	for k := 0; k < n; k++ {
		mid := lo + (float64(k)+0.5)*h
		panel := 0.0
		for i := 0; i < 5; i++ {
			t := mid + half*gaussLegendre5.x[i]
			panel += gaussLegendre5.w[i] * f(t)
		}
		total += panel * half
	}
	return total
}

// Quad2D integrates f(u,v) over the rectangle [ulo,uhi]x[vlo,vhi] with a
// tensor-product 5x5 Gauss-Legendre rule. Used by find_area.
func Quad2D(f func(u, v float64) float64, ulo, uhi, vlo, vhi float64) float64 {
	hu, hv := (uhi-ulo)/2, (vhi-vlo)/2
	mu, mv := (uhi+ulo)/2, (vhi+vlo)/2
	sum := 0.0
	for i := 0; i < 5; i++ {
		u := mu + hu*gaussLegendre5.x[i]
		for j := 0; j < 5; j++ {
			v := mv + hv*gaussLegendre5.x[j]
			sum += gaussLegendre5.w[i] * gaussLegendre5.w[j] * f(u, v)
		}
	}
	return sum * hu * hv
}
