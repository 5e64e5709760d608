// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

// Verbose gates trace output from the walker.
var Verbose = false

// walkState carries one marker position on the intersection locus with
// its parameter guesses on both surfaces, so every projection can stay
// on the correct seam branch.
type walkState struct {
	pos      gmath.Point3
	uvA, uvB gmath.Point2
}

// zoomIn drives pos onto the intersection of a and b by alternately
// projecting onto the two surfaces until the projections agree to
// MinTol. Returns false when the alternation stalls without converging
// (locally disjoint surfaces).
func zoomIn(a, b surface.Surface, st *walkState) bool {
	for iter := 0; iter < 50; iter++ {
		var pa, pb gmath.Point3
		st.uvA, pa = a.Inverse(st.pos, true, st.uvA)
		ea := a.Evaluate(st.uvA.U, st.uvA.V)
		// project onto a's tangent plane, then b's
		onA := st.pos.Add(ea.Normal.Vec().Scale(ea.Normal.Dot(pa.Sub(st.pos))))
		st.uvB, pb = b.Inverse(onA, true, st.uvB)
		eb := b.Evaluate(st.uvB.U, st.uvB.V)
		onB := onA.Add(eb.Normal.Vec().Scale(eb.Normal.Dot(pb.Sub(onA))))
		gap := gmath.Distance(onA, onB)
		st.pos = onB
		if gap < gmath.MinTol {
			// confirm both surfaces are actually here, not just the planes
			_, pa = a.Inverse(st.pos, true, st.uvA)
			_, pb = b.Inverse(st.pos, true, st.uvB)
			return gmath.Distance(pa, st.pos) < 100*gmath.MinTol &&
				gmath.Distance(pb, st.pos) < 100*gmath.MinTol
		}
	}
	return false
}

// directionalCurvature is the normal curvature of s at uv along the
// model-space direction dir (projected into the tangent plane).
func directionalCurvature(s surface.Surface, uv gmath.Point2, dir gmath.Vector3) float64 {
	e := s.Evaluate(uv.U, uv.V)
	// express dir in the (du,dv) basis by least squares on the 2x2 Gram system
	E := e.Du.Dot(e.Du)
	F := e.Du.Dot(e.Dv)
	G := e.Dv.Dot(e.Dv)
	bu := e.Du.Dot(dir)
	bv := e.Dv.Dot(dir)
	det := E*G - F*F
	if math.Abs(det) < gmath.Zero {
		return 0
	}
	du := (bu*G - bv*F) / det
	dv := (bv*E - bu*F) / det
	L := e.Duu.Dot(e.Normal.Vec())
	M := e.Duv.Dot(e.Normal.Vec())
	N := e.Dvv.Dot(e.Normal.Vec())
	num := L*du*du + 2*M*du*dv + N*dv*dv
	den := E*du*du + 2*F*du*dv + G*dv*dv
	if math.Abs(den) < gmath.Zero {
		return 0
	}
	return num / den
}

// tangentAt returns the unit tangent of the intersection curve at st
// (cross product of the two surface normals); ok is false at tangential
// contact where the normals are parallel.
func tangentAt(a, b surface.Surface, st walkState) (gmath.UnitVector3, bool) {
	na := a.Evaluate(st.uvA.U, st.uvA.V).Normal
	nb := b.Evaluate(st.uvB.U, st.uvB.V).Normal
	return na.Cross(nb.Vec()).Unit()
}

// walkIntersection finds seed points on the intersection locus of two
// surfaces and traces a hermite curve through each connected component.
func walkIntersection(a, b surface.Surface, tol float64, intr Interrupter) ([]curve.Curve, error) {
	if unboundedDomain(a) && unboundedDomain(b) {
		// nothing to seed from: neither side has a finite parameter
		// rectangle to sample (free-form against free-form unbounded pair)
		return nil, ErrNotImplemented
	}
	seeds := findWalkSeeds(a, b, tol)
	if Verbose {
		io.Pf("walk: %d seeds\n", len(seeds))
	}
	var out []curve.Curve
	for len(seeds) > 0 {
		if intr != nil && intr.Interrupted() {
			return out, ErrInterrupted
		}
		start := seeds[0]
		h, visited := walkFromTo(a, b, start, seeds[1:], tol, intr)
		if h == nil {
			seeds = seeds[1:]
			continue
		}
		out = append(out, h)
		// drop seeds consumed by this component
		rest := seeds[:0]
		for _, s := range seeds[1:] {
			if !visited(s.pos) {
				rest = append(rest, s)
			}
		}
		seeds = rest
	}
	return out, nil
}

func unboundedDomain(s surface.Surface) bool {
	dom := s.Domain()
	return dom.U.Length() > 1e9 || dom.V.Length() > 1e9
}

// findWalkSeeds samples a coarse grid on a, zooming each sample onto the
// intersection; converged points are clustered so each cluster
// contributes one seed.
func findWalkSeeds(a, b surface.Surface, tol float64) []walkState {
	if unboundedDomain(a) {
		// an unbounded surface (plane) seeds better from the other side
		a, b = b, a
	}
	dom := a.Domain()
	const n = 12
	var seeds []walkState
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			u := dom.U.Lo + dom.U.Length()*float64(i)/n
			v := dom.V.Lo + dom.V.Length()*float64(j)/n
			st := walkState{pos: a.Evaluate(u, v).Pos, uvA: gmath.Point2{U: u, V: v}}
			st.uvB, _ = b.Inverse(st.pos, false, gmath.Point2{})
			if !zoomIn(a, b, &st) {
				continue
			}
			dup := false
			for _, s := range seeds {
				if gmath.Distance(s.pos, st.pos) < 50*tol {
					dup = true
					break
				}
			}
			if !dup {
				seeds = append(seeds, st)
			}
		}
	}
	return seeds
}

// walkFromTo traces the intersection from start, stepping along the
// cross product of the surface normals with curvature-controlled step
// size, until the walk closes on itself, passes an end candidate, or
// runs off a bounded surface. The samples become a hermite curve. The
// returned predicate reports whether a position was passed during the
// walk (used to retire seeds).
func walkFromTo(a, b surface.Surface, start walkState, ends []walkState, tol float64, intr Interrupter) (*curve.Hermite, func(gmath.Point3) bool) {
	forward := walkOneWay(a, b, start, ends, tol, intr, false)
	if forward == nil {
		return nil, nil
	}
	if !forward.closed && !forward.hitEnd {
		// open walk: march again in the reversed direction and concatenate
		backward := walkOneWay(a, b, start, ends, tol, intr, true)
		if backward != nil && len(backward.samples) > 1 {
			forward = spliceWalks(backward, forward)
		}
	}
	samples := make([]curve.HermiteSample, len(forward.samples))
	arc := 0.0
	for i, ws := range forward.samples {
		if i > 0 {
			arc += gmath.Distance(forward.samples[i-1].pos, ws.pos)
		}
		samples[i] = curve.HermiteSample{T: arc, Pos: ws.pos, Tangent: ws.tan}
	}
	h := curve.NewHermite(samples)
	refineHermite(h, a, b)
	visited := func(p gmath.Point3) bool {
		for _, ws := range forward.samples {
			if gmath.Distance(ws.pos, p) < 100*tol {
				return true
			}
		}
		_, cl := h.Inverse(p, false, 0)
		return gmath.Distance(cl, p) < 100*tol
	}
	return h, visited
}

type walkSample struct {
	pos gmath.Point3
	tan gmath.Vector3
}

type walkResult struct {
	samples []walkSample
	closed  bool
	hitEnd  bool
}

func walkOneWay(a, b surface.Surface, start walkState, ends []walkState, tol float64, intr Interrupter, reverse bool) *walkResult {
	st := start
	dir, ok := tangentAt(a, b, st)
	if !ok {
		return nil // tangential contact: no transversal curve to walk
	}
	if reverse {
		dir = dir.Negate()
	}
	res := &walkResult{}
	res.samples = append(res.samples, walkSample{pos: st.pos, tan: dir.Vec()})

	const maxSteps = 2000
	for step := 0; step < maxSteps; step++ {
		if intr != nil && intr.Interrupted() && step%16 == 0 {
			break
		}
		// curvature-limited step: half the smaller radius of curvature
		kA := math.Abs(directionalCurvature(a, st.uvA, dir.Vec()))
		kB := math.Abs(directionalCurvature(b, st.uvB, dir.Vec()))
		stepLen := 0.5 * math.Min(radiusOf(kA), radiusOf(kB))

		var next walkState
		var nd gmath.UnitVector3
		accepted := false
		for half := 0; half < 12; half++ {
			next = st
			next.pos = st.pos.Add(dir.Vec().Scale(stepLen))
			if !zoomIn(a, b, &next) {
				stepLen *= 0.5
				continue
			}
			// reject when the refinement dragged the point much farther
			// than the step (we left the local branch)
			if gmath.Distance(next.pos, st.pos) > 2*stepLen+tol {
				stepLen *= 0.5
				continue
			}
			var ok2 bool
			nd, ok2 = tangentAt(a, b, next)
			if !ok2 {
				stepLen *= 0.5
				continue
			}
			if nd.Dot(dir.Vec()) < 0 {
				nd = nd.Negate()
			}
			// a sharp turn means we overshot
			if nd.Dot(dir.Vec()) < 0.5 && half < 11 {
				stepLen *= 0.5
				continue
			}
			accepted = true
			break
		}
		if !accepted {
			break
		}
		res.samples = append(res.samples, walkSample{pos: next.pos, tan: nd.Vec()})
		st, dir = next, nd

		// termination: rejoined the start
		if step > 2 && gmath.Distance(st.pos, start.pos) < stepLen {
			res.samples = append(res.samples, walkSample{pos: start.pos, tan: res.samples[0].tan})
			res.closed = true
			break
		}
		// termination: passed an end candidate along the tangent
		for _, e := range ends {
			to := e.pos.Sub(st.pos)
			if to.Length() < stepLen && to.Dot(dir.Vec()) <= 0 {
				res.samples = append(res.samples, walkSample{pos: e.pos, tan: dir.Vec()})
				res.hitEnd = true
				break
			}
		}
		if res.hitEnd {
			break
		}
	}
	return res
}

func radiusOf(k float64) float64 {
	if k < gmath.Zero {
		return 1e3 // flat direction: cap the step instead of going unbounded
	}
	return 1 / k
}

// spliceWalks joins a backward walk (reversed) with the forward walk,
// sharing the common start sample.
func spliceWalks(backward, forward *walkResult) *walkResult {
	out := &walkResult{closed: false, hitEnd: forward.hitEnd || backward.hitEnd}
	for i := len(backward.samples) - 1; i > 0; i-- {
		s := backward.samples[i]
		out.samples = append(out.samples, walkSample{pos: s.pos, tan: s.tan.Scale(-1)})
	}
	out.samples = append(out.samples, forward.samples...)
	return out
}

// refineHermite inserts midpoints wherever the cubic's midpoint strays
// from the true intersection by more than FitSmall.
func refineHermite(h *curve.Hermite, a, b surface.Surface) {
	for pass := 0; pass < 6; pass++ {
		inserted := false
		i := 0
		for i+1 < len(h.Samples) {
			lo, hi := h.Samples[i], h.Samples[i+1]
			tm := 0.5 * (lo.T + hi.T)
			pm, d1, _ := h.Evaluate(tm)
			st := walkState{pos: pm}
			st.uvA, _ = a.Inverse(pm, false, gmath.Point2{})
			st.uvB, _ = b.Inverse(pm, false, gmath.Point2{})
			if zoomIn(a, b, &st) && gmath.Distance(st.pos, pm) > gmath.FitSmall {
				tan := d1
				if t, ok := tangentAt(a, b, st); ok {
					if t.Dot(d1) < 0 {
						t = t.Negate()
					}
					tan = t.Vec()
				}
				h.InsertMidpoint(curve.HermiteSample{T: tm, Pos: st.pos, Tangent: tan})
				inserted = true
				i += 2
				continue
			}
			i++
		}
		if !inserted {
			break
		}
	}
}
