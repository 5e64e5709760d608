// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve implements the closed family of parametric curve kinds:
// line, circle, ellipse, parabola, hyperbola, NUB, NURB, point and
// hermite. Each kind is a concrete Go type implementing the Curve
// interface; Kind() tags which variant a value is, following the
// "tagged sum type dispatched in one place, do not inherit" design note.
package curve

import "github.com/cpmech/sgm/gmath"

// Kind tags which concrete curve variant a Curve value is.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindEllipse
	KindParabola
	KindHyperbola
	KindNUB
	KindNURB
	KindPoint
	KindHermite
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindCircle:
		return "Circle"
	case KindEllipse:
		return "Ellipse"
	case KindParabola:
		return "Parabola"
	case KindHyperbola:
		return "Hyperbola"
	case KindNUB:
		return "NUB"
	case KindNURB:
		return "NURB"
	case KindPoint:
		return "Point"
	case KindHermite:
		return "Hermite"
	default:
		return "Unknown"
	}
}

// Curve is the capability set every curve kind provides. Evaluate and
// Inverse are total: they never fail, even far outside the curve's
// natural range, so hot paths need no error handling.
type Curve interface {
	Kind() Kind
	Domain() gmath.Interval1
	IsClosed() bool

	// Evaluate returns the position and, always, the first and second
	// derivatives with respect to t (callers that don't need them simply
	// ignore the extra return values; this keeps the interface uniform
	// instead of the C++ source's optional-pointer-out-params idiom).
	Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3)

	// Inverse returns the parameter of, and position at, the point on the
	// curve nearest to pos. hasGuess/guess lets a caller near a seam pick
	// a side, which the circle/ellipse seam-aware inverses honor.
	Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3)

	Curvature(t float64) gmath.Vector3
	FindLength(domain gmath.Interval1) float64
	Transform(trans gmath.Transform3) Curve
	Clone() Curve
}

// Evaluate0 is a convenience for callers that only need position.
func Evaluate0(c Curve, t float64) gmath.Point3 {
	p, _, _ := c.Evaluate(t)
	return p
}

// Invert is a convenience wrapper for callers with no seam-side guess.
func Invert(c Curve, pos gmath.Point3) (t float64, closest gmath.Point3) {
	return c.Inverse(pos, false, 0)
}
