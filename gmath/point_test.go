// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_vector_basic(tst *testing.T) {

	chk.PrintTitle("vector_basic")

	v := Vector3{3, 4, 0}
	chk.Scalar(tst, "length", MinTol, v.Length(), 5)

	u, ok := v.Unit()
	if !ok {
		tst.Errorf("expected v to normalize")
	}
	chk.Scalar(tst, "unit.x", MinTol, u.X, 0.6)
	chk.Scalar(tst, "unit.y", MinTol, u.Y, 0.8)

	cross := Vector3{1, 0, 0}.Cross(Vector3{0, 1, 0})
	chk.Vector(tst, "cross", MinTol, []float64{cross.X, cross.Y, cross.Z}, []float64{0, 0, 1})
}

func Test_transform_roundtrip(tst *testing.T) {

	chk.PrintTitle("transform_roundtrip")

	axis := Vector3{0, 0, 1}.MustUnit()
	rot := RotationAbout(Point3{1, 2, 0}, axis, math.Pi/3)
	inv := rot.Inverse()

	p := Point3{5, -3, 7}
	p2 := inv.Point(rot.Point(p))
	chk.Scalar(tst, "x", 1e-9, p2.X, p.X)
	chk.Scalar(tst, "y", 1e-9, p2.Y, p.Y)
	chk.Scalar(tst, "z", 1e-9, p2.Z, p.Z)
}

func Test_frame_roundtrip(tst *testing.T) {

	chk.PrintTitle("frame_roundtrip")

	f := FrameFromAxes(Point3{1, 1, 1}, Vector3{0, 0, 1}.MustUnit())
	p := f.Eval(2, 3, 4)
	a, b, c := f.Local(p)
	chk.Scalar(tst, "a", 1e-9, a, 2)
	chk.Scalar(tst, "b", 1e-9, b, 3)
	chk.Scalar(tst, "c", 1e-9, c, 4)
}
