// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface implements the closed family of parametric surface
// kinds: plane, cylinder, cone, sphere, torus, NUB, NURB, revolve and
// extrude. Each kind is a concrete type implementing Surface; Kind()
// tags which variant a value is.
package surface

import (
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Kind tags which concrete surface variant a Surface value is.
type Kind int

const (
	KindPlane Kind = iota
	KindCylinder
	KindCone
	KindSphere
	KindTorus
	KindNUB
	KindNURB
	KindRevolve
	KindExtrude
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "Plane"
	case KindCylinder:
		return "Cylinder"
	case KindCone:
		return "Cone"
	case KindSphere:
		return "Sphere"
	case KindTorus:
		return "Torus"
	case KindNUB:
		return "NUB"
	case KindNURB:
		return "NURB"
	case KindRevolve:
		return "Revolve"
	case KindExtrude:
		return "Extrude"
	default:
		return "Unknown"
	}
}

// Eval is the full output of evaluating a surface at a parameter point:
// position, first partials, unit normal, and second partials.
type Eval struct {
	Pos            gmath.Point3
	Du, Dv         gmath.Vector3
	Normal         gmath.UnitVector3
	Duu, Duv, Dvv  gmath.Vector3
}

// Surface is the capability set every surface kind provides. Evaluate
// and Inverse are total: far-away points still invert to the nearest
// surface point rather than failing.
type Surface interface {
	Kind() Kind
	Domain() gmath.Interval2

	Evaluate(u, v float64) Eval

	// Inverse returns the parameter and position of the point on the
	// surface nearest to pos. hasGuess/guess seeds Newton near a known
	// parameter (e.g. continuing a walk).
	Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3)

	// PrincipalCurvature returns the two principal directions (in the
	// tangent plane, as (du,dv) pairs) and curvatures at uv.
	PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64)

	UParamLine(u0 float64) (c curve.Curve, ok bool)
	VParamLine(v0 float64) (c curve.Curve, ok bool)

	ClosedInU() bool
	ClosedInV() bool
	SingularLowU() bool
	SingularHighU() bool
	SingularLowV() bool
	SingularHighV() bool
	IsSingularity(uv gmath.Point2, tol float64) bool

	Transform(trans gmath.Transform3) Surface
	Clone() Surface
}

// curvatureFromShapeOps derives (k1,k2,dir1,dir2) from the first and
// second fundamental forms at a point, the standard differential-geometry
// reduction every analytic and free-form surface kind below shares.
func curvatureFromShapeOps(e Eval) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	E := e.Du.Dot(e.Du)
	F := e.Du.Dot(e.Dv)
	G := e.Dv.Dot(e.Dv)
	L := e.Duu.Dot(e.Normal.Vec())
	M := e.Duv.Dot(e.Normal.Vec())
	N := e.Dvv.Dot(e.Normal.Vec())

	// principal curvatures are the roots of
	// (EG-F^2) k^2 - (EN-2FM+GL) k + (LN-M^2) = 0
	a := E*G - F*F
	if a == 0 {
		return gmath.Point2{U: 1}, gmath.Point2{V: 1}, 0, 0
	}
	b := -(E*N - 2*F*M + G*L)
	c := L*N - M*M
	roots := gmath.SolveQuadratic(a, b, c)
	if len(roots) == 0 {
		return gmath.Point2{U: 1}, gmath.Point2{V: 1}, 0, 0
	}
	if len(roots) == 1 {
		roots = []float64{roots[0], roots[0]}
	}
	k1, k2 = roots[0], roots[1]

	dirFor := func(k float64) gmath.Point2 {
		// solve (L-kE)du + (M-kF)dv = 0 for a direction (du,dv)
		A := L - k*E
		B := M - k*F
		if absF(A) > absF(B) {
			if A == 0 {
				return gmath.Point2{U: 0, V: 1}
			}
			return gmath.Point2{U: -B / A, V: 1}
		}
		if B == 0 {
			return gmath.Point2{U: 1, V: 0}
		}
		return gmath.Point2{U: 1, V: -A / B}
	}
	dir1 = dirFor(k1)
	dir2 = dirFor(k2)
	return
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
