// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

// Segment3 is a bounded line segment between two 3D points, used by the
// facetor's triangle-plane intersection and by edge polylines.
type Segment3 struct {
	Start, End Point3
}

// Direction returns the (non-unit) vector from Start to End.
func (s Segment3) Direction() Vector3 { return s.End.Sub(s.Start) }

// PointAt evaluates the segment at t in [0,1].
func (s Segment3) PointAt(t float64) Point3 { return s.Start.Add(s.Direction().Scale(t)) }

// Ray3 is a semi-infinite (or, with Domain set, bounded) line used by
// ray_fire and by line/curve, line/surface intersection.
type Ray3 struct {
	Origin Point3
	Axis   UnitVector3

	// Domain restricts the parameter range along the ray, but only when
	// HasDomain is set. UseWholeLine mirrors ray_fire's use_whole_line
	// flag: when false, parameters below zero are rejected as well, so
	// the accepted range is Domain clipped to [0,+inf).
	Domain       Interval1
	HasDomain    bool
	UseWholeLine bool
}

// PointAt evaluates the ray/line at parameter t.
func (r Ray3) PointAt(t float64) Point3 { return r.Origin.Add(r.Axis.Vec().Scale(t)) }

// InRange reports whether parameter t is an acceptable hit distance given
// the ray's domain and UseWholeLine flag.
func (r Ray3) InRange(t, tol float64) bool {
	if r.HasDomain && !r.Domain.Contains(t, tol) {
		return false
	}
	if !r.UseWholeLine && t < -tol {
		return false
	}
	return true
}
