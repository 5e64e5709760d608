// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import "math"

// Point2 is a point in 2D parameter space, e.g. a surface (u,v) location.
type Point2 struct {
	U, V float64
}

// Point3 is a point in 3D model space.
type Point3 struct {
	X, Y, Z float64
}

// Vector3 is a free vector in 3D; it shares the Point3 layout so that
// Evaluate-style routines can return derivatives without a distinct type
// hierarchy.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns p+v.
func (p Point3) Add(v Vector3) Point3 { return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }

// Sub returns the vector from q to p (p-q).
func (p Point3) Sub(q Point3) Vector3 { return Vector3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns s*v.
func (v Vector3) Scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Plus returns v+w.
func (v Vector3) Plus(w Vector3) Vector3 { return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Minus returns v-w.
func (v Vector3) Minus(w Vector3) Vector3 { return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Dot returns the inner product v.w.
func (v Vector3) Dot(w Vector3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns v x w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length returns |v|.
func (v Vector3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// LengthSq returns |v|^2, avoiding the sqrt when only comparisons are needed.
func (v Vector3) LengthSq() float64 { return v.Dot(v) }

// Unit normalizes v; it returns the zero vector and false if v is too
// small to normalize (below Zero).
func (v Vector3) Unit() (UnitVector3, bool) {
	l := v.Length()
	if l < Zero {
		return UnitVector3{}, false
	}
	return UnitVector3{v.X / l, v.Y / l, v.Z / l}, true
}

// MustUnit normalizes v, panicking if it is degenerate. Reserved for
// construction paths where a zero-length axis is a programming error
// (e.g. primitive constructors given coincident points).
func (v Vector3) MustUnit() UnitVector3 {
	u, ok := v.Unit()
	if !ok {
		panic("gmath: cannot normalize a zero-length vector")
	}
	return u
}

// UnitVector3 is a Vector3 known to have unit length; kept as a distinct
// type so that APIs requiring a direction (axes, normals) cannot silently
// accept an unnormalized vector.
type UnitVector3 struct {
	X, Y, Z float64
}

// Vec returns the plain Vector3 view of u.
func (u UnitVector3) Vec() Vector3 { return Vector3{u.X, u.Y, u.Z} }

// Negate returns the opposite direction.
func (u UnitVector3) Negate() UnitVector3 { return UnitVector3{-u.X, -u.Y, -u.Z} }

// Dot returns u.w.
func (u UnitVector3) Dot(w Vector3) float64 { return u.X*w.X + u.Y*w.Y + u.Z*w.Z }

// Cross returns u x w as a free vector (the result need not be unit length).
func (u UnitVector3) Cross(w Vector3) Vector3 { return u.Vec().Cross(w) }

// Distance returns |p-q|.
func Distance(p, q Point3) float64 { return p.Sub(q).Length() }

// DistanceSq returns |p-q|^2.
func DistanceSq(p, q Point3) float64 { return p.Sub(q).LengthSq() }

// Frame3 is a right-handed orthonormal frame (origin + three axes), used
// to evaluate curves/surfaces defined in a local coordinate system
// (circle, ellipse, conic sections, cylinder/cone/torus cross sections).
type Frame3 struct {
	Origin Point3
	X, Y, Z UnitVector3
}

// Eval maps local coordinates (a,b,c) through the frame into model space.
func (f Frame3) Eval(a, b, c float64) Point3 {
	return f.Origin.
		Add(f.X.Vec().Scale(a)).
		Add(f.Y.Vec().Scale(b)).
		Add(f.Z.Vec().Scale(c))
}

// Local projects a model-space point into the frame's local coordinates.
func (f Frame3) Local(p Point3) (a, b, c float64) {
	v := p.Sub(f.Origin)
	return f.X.Dot(v), f.Y.Dot(v), f.Z.Dot(v)
}

// FrameFromAxes builds a right-handed frame from an origin and a normal
// (Z axis); X and Y are chosen deterministically, seeding the cross
// product with world X unless |normal.X| > 0.9 (then world Y), so equal
// inputs always produce the same frame.
func FrameFromAxes(origin Point3, normal UnitVector3) Frame3 {
	seed := Vector3{1, 0, 0}
	if math.Abs(normal.X) > 0.9 {
		seed = Vector3{0, 1, 0}
	}
	x := normal.Cross(seed).MustUnit()
	y := normal.Cross(x.Vec()).MustUnit()
	return Frame3{Origin: origin, X: x, Y: y, Z: normal}
}
