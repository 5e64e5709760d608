// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "math"

// Transform3 is a rigid-plus-scale affine transform: p' = R*s*p + t. Every
// curve/surface/entity Transform(trans) operation in the kernel applies
// one of these. Stored as a 3x3 matrix (row-major) and a translation so
// that composition and inversion are plain linear algebra.
type Transform3 struct {
	M [3][3]float64
	T Vector3
}

// Identity returns the identity transform.
func Identity() Transform3 {
	return Transform3{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a pure translation transform.
func Translation(v Vector3) Transform3 {
	t := Identity()
	t.T = v
	return t
}

// apply3 multiplies the 3x3 part by a vector.
func (t Transform3) apply3(v Vector3) Vector3 {
	return Vector3{
		t.M[0][0]*v.X + t.M[0][1]*v.Y + t.M[0][2]*v.Z,
		t.M[1][0]*v.X + t.M[1][1]*v.Y + t.M[1][2]*v.Z,
		t.M[2][0]*v.X + t.M[2][1]*v.Y + t.M[2][2]*v.Z,
	}
}

// Point applies the full affine transform to a position.
func (t Transform3) Point(p Point3) Point3 {
	v := t.apply3(Vector3(p))
	return Point3(v.Plus(t.T))
}

// Vector applies only the linear part (no translation) to a free vector.
func (t Transform3) Vector(v Vector3) Vector3 { return t.apply3(v) }

// UnitVector applies the linear part and renormalizes (valid for
// orthogonal transforms; for normals under a non-uniformly scaled
// transform the result is not the inverse-transpose image).
func (t Transform3) UnitVector(u UnitVector3) UnitVector3 {
	return t.apply3(u.Vec()).MustUnit()
}

// Compose returns the transform equivalent to applying t first, then s
// (s.Compose(t) in matrix terms is s*t).
func (s Transform3) Compose(t Transform3) Transform3 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += s.M[i][k] * t.M[k][j]
			}
			m[i][j] = sum
		}
	}
	return Transform3{M: m, T: s.apply3(t.T).Plus(s.T)}
}

// det3 returns the determinant of the 3x3 linear part.
func (t Transform3) det3() float64 {
	m := t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse transform. Panics if the linear part is
// singular, which can only happen if a caller builds a degenerate
// Transform3 directly (every constructor here produces an invertible one).
func (t Transform3) Inverse() Transform3 {
	d := t.det3()
	if math.Abs(d) < Zero {
		panic("gmath: transform is singular")
	}
	m := t.M
	inv := [3][3]float64{
		{(m[1][1]*m[2][2] - m[1][2]*m[2][1]) / d, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / d, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / d},
		{(m[1][2]*m[2][0] - m[1][0]*m[2][2]) / d, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / d, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / d},
		{(m[1][0]*m[2][1] - m[1][1]*m[2][0]) / d, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / d, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / d},
	}
	it := Transform3{M: inv}
	it.T = it.apply3(t.T).Scale(-1)
	return it
}

// RotationAbout returns the rotation by angle radians about axis,
// applied about the given origin (origin maps to itself).
func RotationAbout(origin Point3, axis UnitVector3, angle float64) Transform3 {
	c, s := math.Cos(angle), math.Sin(angle)
	x, y, z := axis.X, axis.Y, axis.Z
	m := [3][3]float64{
		{c + x*x*(1-c), x*y*(1-c) - z*s, x*z*(1-c) + y*s},
		{y*x*(1-c) + z*s, c + y*y*(1-c), y*z*(1-c) - x*s},
		{z*x*(1-c) - y*s, z*y*(1-c) + x*s, c + z*z*(1-c)},
	}
	rot := Transform3{M: m}
	// translate so origin is fixed: p' = R*(p-origin)+origin
	rot.T = origin.Sub(Point3{}).Minus(rot.apply3(origin.Sub(Point3{})))
	return rot
}
