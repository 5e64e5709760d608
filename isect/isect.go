// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isect implements the intersection engine: line/curve,
// line/surface, curve/surface and surface/surface intersection (closed
// forms plus the Newton-and-walk fallback), and ray-fire over topology.
package isect

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

// IntersectionKind classifies one intersection result.
type IntersectionKind int

const (
	// Point is a transversal crossing.
	Point IntersectionKind = iota
	// Tangent means the operands' derivatives along the intersection are
	// parallel there.
	Tangent
	// Coincident means the operands agree on a whole segment around the
	// returned position.
	Coincident
)

func (k IntersectionKind) String() string {
	switch k {
	case Point:
		return "Point"
	case Tangent:
		return "Tangent"
	case Coincident:
		return "Coincident"
	default:
		return "Unknown"
	}
}

// Hit is one intersection position with its classification and the
// signed distance along the query line (when a line was involved).
type Hit struct {
	Pos  gmath.Point3
	Kind IntersectionKind
	T    float64
}

// Errors surfaced by the higher-level intersectors. The line
// primitives are total and never return these.
var (
	ErrDegenerate     = chk.Err("isect: degenerate configuration has no representable answer")
	ErrNotImplemented = chk.Err("isect: intersection pair outside the dispatch table")
	ErrInterrupted    = chk.Err("isect: interrupted")
)

// Interrupter is checked between outer iterations of the walker and
// other long loops; a nil Interrupter never aborts.
type Interrupter interface {
	Interrupted() bool
}

// floorTol clamps a caller tolerance to the MinTol floor.
func floorTol(tol float64) float64 {
	if tol < gmath.MinTol {
		return gmath.MinTol
	}
	return tol
}

// sortAndDedupeHits sorts hits by signed distance along the ray and
// collapses near-duplicates within tol, the canonical output order.
// When two duplicates disagree on kind, the stronger classification
// (Coincident > Tangent > Point) wins.
func sortAndDedupeHits(hits []Hit, tol float64) []Hit {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	out := hits[:0]
	for _, h := range hits {
		if n := len(out); n > 0 && h.T-out[n-1].T <= tol && gmath.Distance(h.Pos, out[n-1].Pos) <= tol {
			if h.Kind > out[n-1].Kind {
				out[n-1].Kind = h.Kind
			}
			continue
		}
		out = append(out, h)
	}
	return out
}

// clipHitsToRay drops hits outside the ray's acceptable parameter range.
func clipHitsToRay(hits []Hit, ray gmath.Ray3, tol float64) []Hit {
	out := hits[:0]
	for _, h := range hits {
		if ray.InRange(h.T, tol) {
			out = append(out, h)
		}
	}
	return out
}
