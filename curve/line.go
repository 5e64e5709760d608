// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import "github.com/cpmech/sgm/gmath"

// Line is p(t) = Origin + t*Axis. Domain defaults to (-inf,+inf); a
// bounded Line (used to back a straight edge) sets Bounded and Dom.
type Line struct {
	Origin  gmath.Point3
	Axis    gmath.UnitVector3
	Bounded bool
	Dom     gmath.Interval1
}

// NewLine builds an unbounded line through Origin along Axis.
func NewLine(origin gmath.Point3, axis gmath.UnitVector3) *Line {
	return &Line{Origin: origin, Axis: axis}
}

// NewBoundedLine builds a line restricted to the given parameter domain.
func NewBoundedLine(origin gmath.Point3, axis gmath.UnitVector3, dom gmath.Interval1) *Line {
	return &Line{Origin: origin, Axis: axis, Bounded: true, Dom: dom}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Domain() gmath.Interval1 {
	if l.Bounded {
		return l.Dom
	}
	return gmath.Interval1{Lo: negInf, Hi: posInf}
}

func (l *Line) IsClosed() bool { return false }

func (l *Line) Evaluate(t float64) (pos gmath.Point3, d1, d2 gmath.Vector3) {
	pos = l.Origin.Add(l.Axis.Vec().Scale(t))
	d1 = l.Axis.Vec()
	d2 = gmath.Vector3{}
	return
}

func (l *Line) Inverse(pos gmath.Point3, hasGuess bool, guess float64) (t float64, closest gmath.Point3) {
	v := pos.Sub(l.Origin)
	t = l.Axis.Dot(v)
	if l.Bounded {
		t = l.Dom.Clamp(t)
	}
	closest, _, _ = l.Evaluate(t)
	return
}

func (l *Line) Curvature(t float64) gmath.Vector3 { return gmath.Vector3{} }

func (l *Line) FindLength(domain gmath.Interval1) float64 { return domain.Length() }

func (l *Line) Transform(trans gmath.Transform3) Curve {
	return &Line{
		Origin:  trans.Point(l.Origin),
		Axis:    trans.UnitVector(l.Axis),
		Bounded: l.Bounded,
		Dom:     l.Dom,
	}
}

func (l *Line) Clone() Curve {
	cp := *l
	return &cp
}

const (
	posInf = 1e300
	negInf = -1e300
)
