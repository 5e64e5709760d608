// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmath implements the math primitives shared by every curve,
// surface, intersector and facetor in the kernel: points, vectors,
// intervals, segments, rays, rigid transforms, polynomial root finders,
// linear/banded solvers, quadrature and point ordering.
package gmath

// Tolerances shared by every package of the kernel.
const (
	// Zero is the tightness used by NearEqual on normalized quantities
	// (unit vectors, direction cosines).
	Zero = 1e-12

	// MinTol is the default intersection and snap tolerance floor; no
	// caller-supplied tolerance may be tighter than this.
	MinTol = 1e-6

	// Fit is the chord-fit fraction used for seed sampling and for
	// deciding when a refinement step may stop.
	Fit = 1e-3

	// FitSmall is a tighter fit threshold used by the surface/surface
	// walker to decide whether a hermite midpoint needs subdivision.
	FitSmall = 1e-4
)

// NearEqual reports whether a and b agree to within tol.
func NearEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
