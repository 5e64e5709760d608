// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "math"

// Interval1 is a closed 1D parameter interval [Lo,Hi]. A curve or a
// revolve/extrude parameter axis uses this to describe its domain.
type Interval1 struct {
	Lo, Hi float64
}

// Length returns Hi-Lo.
func (i Interval1) Length() float64 { return i.Hi - i.Lo }

// Contains reports whether v lies in [Lo,Hi] within tol.
func (i Interval1) Contains(v, tol float64) bool {
	return v >= i.Lo-tol && v <= i.Hi+tol
}

// Mid returns the interval midpoint.
func (i Interval1) Mid() float64 { return 0.5 * (i.Lo + i.Hi) }

// Clamp restricts v to the interval.
func (i Interval1) Clamp(v float64) float64 { return Clamp(v, i.Lo, i.Hi) }

// Wrap maps v into [Lo,Hi) assuming the interval represents one period of
// a closed parameterization (e.g. a circle's [0,2pi) domain).
func (i Interval1) Wrap(v float64) float64 {
	period := i.Hi - i.Lo
	if period <= 0 {
		return v
	}
	w := math.Mod(v-i.Lo, period)
	if w < 0 {
		w += period
	}
	return w + i.Lo
}

// FullAngle is the canonical [0, 2pi) domain shared by circles and the
// angular parameter of revolve/torus/cylinder/cone surfaces.
var FullAngle = Interval1{0, 2 * math.Pi}

// Interval2 is a closed 2D parameter rectangle [ULo,UHi]x[VLo,VHi], the
// domain of a surface.
type Interval2 struct {
	U, V Interval1
}

// Contains reports whether (u,v) lies in the rectangle within tol.
func (r Interval2) Contains(u, v, tol float64) bool {
	return r.U.Contains(u, tol) && r.V.Contains(v, tol)
}
