// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

// B-spline basis machinery shared by the NUB and NURB tensor-product
// surfaces: knot-span search and the triangular basis-function recursion
// with first and second derivatives (Piegl & Tiller A2.2/A2.3).

func findSpan(degree int, knots []float64, nCtrl int, t float64) int {
	p := degree
	n := nCtrl - 1
	if t >= knots[n+1] {
		return n
	}
	if t <= knots[p] {
		return p
	}
	lo, hi := p, n+1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if t < knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// basisDers returns the degree+1 nonzero basis functions and their first
// and second derivatives at span for parameter t.
func basisDers(degree int, knots []float64, span int, t float64) (N, dN, ddN []float64) {
	p := degree
	N = make([]float64, p+1)
	dN = make([]float64, p+1)
	ddN = make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	ndu := make([][]float64, p+1)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - knots[span+1-j]
		right[j] = knots[span+j] - t
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

	maxOrder := 2
	if p < 2 {
		maxOrder = p
	}
	if maxOrder == 0 {
		return
	}
	a := [2][]float64{make([]float64, p+1), make([]float64, p+1)}
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
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
			if k == 1 {
				dN[r] = d
			} else {
				ddN[r] = d
			}
			s1, s2 = s2, s1
		}
	}
	// scale by falling factorials
	fp := float64(p)
	for r := 0; r <= p; r++ {
		dN[r] *= fp
		ddN[r] *= fp * float64(p-1)
	}
	return
}
