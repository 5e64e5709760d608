// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "math"

// Box3 is an axis-aligned bounding box. The zero value is the degenerate
// box at the origin, not an empty one; accumulate from EmptyBox3 instead.
type Box3 struct {
	Min, Max Point3
}

// EmptyBox3 returns a box that contains nothing and extends to anything.
func EmptyBox3() Box3 {
	return Box3{
		Min: Point3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Point3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to include p.
func (b Box3) Extend(p Point3) Box3 {
	return Box3{
		Min: Point3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Point3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both operands.
func (b Box3) Union(o Box3) Box3 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Inflate grows the box by d on every side.
func (b Box3) Inflate(d float64) Box3 {
	return Box3{
		Min: Point3{X: b.Min.X - d, Y: b.Min.Y - d, Z: b.Min.Z - d},
		Max: Point3{X: b.Max.X + d, Y: b.Max.Y + d, Z: b.Max.Z + d},
	}
}

// Contains reports whether p lies inside the box within tol.
func (b Box3) Contains(p Point3, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}

// Overlaps reports whether two boxes intersect within tol.
func (b Box3) Overlaps(o Box3, tol float64) bool {
	return b.Min.X <= o.Max.X+tol && b.Max.X >= o.Min.X-tol &&
		b.Min.Y <= o.Max.Y+tol && b.Max.Y >= o.Min.Y-tol &&
		b.Min.Z <= o.Max.Z+tol && b.Max.Z >= o.Min.Z-tol
}

// Center returns the box midpoint.
func (b Box3) Center() Point3 {
	return Point3{X: 0.5 * (b.Min.X + b.Max.X), Y: 0.5 * (b.Min.Y + b.Max.Y), Z: 0.5 * (b.Min.Z + b.Max.Z)}
}

// Diagonal returns the box extent vector.
func (b Box3) Diagonal() Vector3 { return b.Max.Sub(b.Min) }

// HitsLine reports whether the (whole, unbounded) line origin+t*axis
// passes within tol of the box, via the slab method.
func (b Box3) HitsLine(origin Point3, axis UnitVector3, tol float64) bool {
	bb := b.Inflate(tol)
	tmin, tmax := -math.MaxFloat64, math.MaxFloat64
	org := [3]float64{origin.X, origin.Y, origin.Z}
	dir := [3]float64{axis.X, axis.Y, axis.Z}
	lo := [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	hi := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < Zero {
			if org[i] < lo[i] || org[i] > hi[i] {
				return false
			}
			continue
		}
		t1 := (lo[i] - org[i]) / dir[i]
		t2 := (hi[i] - org[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}
