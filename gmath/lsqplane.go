// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// LeastSquaresPlane fits a plane through a cloud of (>=3) points by
// minimizing the sum of squared perpendicular distances. Returns the
// centroid (a point on the plane) and the unit normal. No other package
// of the module calls it at present.
func LeastSquaresPlane(pts []Point3) (origin Point3, normal UnitVector3, err error) {
	n := len(pts)
	if n < 3 {
		err = chk.Err("gmath: LeastSquaresPlane needs at least 3 points, got %d", n)
		return
	}
	var cx, cy, cz float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
		cz += p.Z
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)
	origin = Point3{cx, cy, cz}

	// accumulate the 3x3 scatter (covariance) matrix
	var cov [3][3]float64
	for _, p := range pts {
		d := [3]float64{p.X - cx, p.Y - cy, p.Z - cz}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += d[i] * d[j]
			}
		}
	}

	// smallest-eigenvector via inverse power iteration against cov+eps*I,
	// which for a near-planar point set converges to the normal direction
	// (the direction of least variance) quickly and deterministically.
	covSlice := make([][]float64, 3)
	for i := range covSlice {
		covSlice[i] = append([]float64{}, cov[i][:]...)
		covSlice[i][i] += 1e-9
	}
	v := []float64{1, 1, 1}
	for iter := 0; iter < 50; iter++ {
		x, serr := SolveDense(covSlice, v)
		if serr != nil {
			err = serr
			return
		}
		norm := 0.0
		for _, xi := range x {
			norm += xi * xi
		}
		norm = math.Sqrt(norm)
		if norm < Zero {
			break
		}
		for i := range x {
			x[i] /= norm
		}
		v = x
	}
	nv, ok := (Vector3{v[0], v[1], v[2]}).Unit()
	if !ok {
		err = chk.Err("gmath: LeastSquaresPlane: degenerate point set")
		return
	}
	normal = nv
	return
}
