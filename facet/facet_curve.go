// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
	"github.com/cpmech/sgm/topo"
)

// FacetCurve samples a curve over dom into an ordered parameter list.
// Lines get their two endpoints, or uniform samples when MaxEdgeLength is
// set; circles get equi-angular samples honoring the angle, chord-height
// and length bounds; everything else is refined by recursive bisection on
// the chord deviation, which checks the angle bound only.
func FacetCurve(crv curve.Curve, dom gmath.Interval1, opts Options) []float64 {
	switch c := crv.(type) {
	case *curve.Line:
		params := []float64{dom.Lo, dom.Hi}
		if opts.MaxEdgeLength > 0 {
			n := int(math.Ceil(dom.Length() / opts.MaxEdgeLength))
			params = uniformParams(dom, n)
		}
		return params
	case *curve.PointCurve:
		return []float64{dom.Lo, dom.Hi}
	case *curve.Circle:
		return equiAngular(dom, c.R, opts)
	default:
		return bisectCurve(crv, dom, opts)
	}
}

func uniformParams(dom gmath.Interval1, n int) []float64 {
	if n < 1 {
		n = 1
	}
	return utl.LinSpace(dom.Lo, dom.Hi, n+1)
}

// equiAngular spaces samples along a circular arc so every bound holds:
// the turn angle, the chord height r*(1-cos(step/2)), and the arc length
// r*step (which bounds the chord length).
func equiAngular(dom gmath.Interval1, r float64, opts Options) []float64 {
	step := opts.edgeAngle()
	if opts.ChordHeight > 0 && opts.ChordHeight < r {
		hStep := 2 * math.Acos(1-opts.ChordHeight/r)
		step = math.Min(step, hStep)
	}
	if opts.MaxEdgeLength > 0 {
		step = math.Min(step, opts.MaxEdgeLength/r)
	}
	n := int(math.Ceil(dom.Length() / step))
	if n < 3 && dom.Length() > math.Pi {
		n = 3
	}
	if n > opts.maxFacets() {
		n = opts.maxFacets()
	}
	return uniformParams(dom, n)
}

// bisectCurve inserts midpoints wherever three inner samples on a chord
// deviate from it by more than the edge angle tolerance; the minimum
// chord length is the domain length scaled by the fit fraction.
func bisectCurve(crv curve.Curve, dom gmath.Interval1, opts Options) []float64 {
	minLen := dom.Length() * gmath.Fit
	params := []float64{dom.Lo, dom.Hi}
	var recurse func(lo, hi float64, depth int)
	recurse = func(lo, hi float64, depth int) {
		if hi-lo < minLen || depth > 16 || len(params) >= opts.maxFacets() {
			return
		}
		if !chordOK(crv, lo, hi, opts.edgeAngle()) {
			mid := 0.5 * (lo + hi)
			params = append(params, mid)
			recurse(lo, mid, depth+1)
			recurse(mid, hi, depth+1)
		}
	}
	recurse(dom.Lo, dom.Hi, 0)
	sort.Float64s(params)
	return params
}

// chordOK tests three interior points of [lo,hi] against the chord.
func chordOK(crv curve.Curve, lo, hi, angleTol float64) bool {
	a := curve.Evaluate0(crv, lo)
	b := curve.Evaluate0(crv, hi)
	chord := b.Sub(a)
	cl := chord.Length()
	if cl < gmath.Zero {
		// closed sub-arc: force a split by reporting deviation
		return false
	}
	// the sagitta bound equivalent to the turn-angle bound
	maxDev := cl * math.Tan(angleTol) / 2
	for _, f := range []float64{0.25, 0.5, 0.75} {
		p := curve.Evaluate0(crv, lo+f*(hi-lo))
		dev := p.Sub(a).Cross(chord).Length() / cl
		if dev > maxDev {
			return false
		}
	}
	return true
}

// FacetEdge produces the edge's cached polyline: FacetCurve over the
// edge's domain, split at every seam crossing of every surface using the
// edge, then split again wherever consecutive surface normals turn more
// than the edge angle tolerance. The result is stored on the edge.
func FacetEdge(t *topo.Thing, e *topo.Edge, opts Options) ([]float64, []gmath.Point3) {
	if params, pts := e.Facets(); len(params) > 0 {
		return params, pts
	}
	crv := e.Curve(t)
	params := FacetCurve(crv, e.Dom, opts)

	for _, f := range e.Faces(t) {
		srf := f.Surface(t)
		params = splitAtSeams(crv, srf, params)
		params = splitByNormalTurn(crv, srf, params, opts.edgeAngle())
	}

	pts := make([]gmath.Point3, len(params))
	for i, u := range params {
		pts[i] = curve.Evaluate0(crv, u)
	}
	e.SetFacets(params, pts)
	return params, pts
}

// splitAtSeams inserts the curve parameter of every crossing of a closed
// surface direction's seam, found by bisecting the parameter jump
// (Newton on the seam's parameter line reduces to this bisection since
// the jump function is monotone on the bracket).
func splitAtSeams(crv curve.Curve, srf surface.Surface, params []float64) []float64 {
	dom := srf.Domain()
	closedU, closedV := srf.ClosedInU(), srf.ClosedInV()
	if !closedU && !closedV {
		return params
	}
	uvAt := func(t float64, ref gmath.Point2, hasRef bool) gmath.Point2 {
		uv, _ := srf.Inverse(curve.Evaluate0(crv, t), hasRef, ref)
		return uv
	}
	var out []float64
	prevUV := uvAt(params[0], gmath.Point2{}, false)
	out = append(out, params[0])
	for i := 1; i < len(params); i++ {
		uv := uvAt(params[i], gmath.Point2{}, false)
		crossU := closedU && math.Abs(uv.U-prevUV.U) > 0.5*dom.U.Length()
		crossV := closedV && math.Abs(uv.V-prevUV.V) > 0.5*dom.V.Length()
		if crossU || crossV {
			lo, hi := params[i-1], params[i]
			loUV := prevUV
			for iter := 0; iter < 40 && hi-lo > gmath.Zero; iter++ {
				mid := 0.5 * (lo + hi)
				midUV := uvAt(mid, gmath.Point2{}, false)
				jump := (crossU && math.Abs(midUV.U-loUV.U) > 0.5*dom.U.Length()) ||
					(crossV && math.Abs(midUV.V-loUV.V) > 0.5*dom.V.Length())
				if jump {
					hi = mid
				} else {
					lo, loUV = mid, midUV
				}
			}
			cross := 0.5 * (lo + hi)
			if cross-out[len(out)-1] > gmath.Zero && params[i]-cross > gmath.Zero {
				out = append(out, cross)
			}
		}
		out = append(out, params[i])
		prevUV = uv
	}
	return out
}

// splitByNormalTurn bisects segments whose endpoint surface normals turn
// more than angleTol.
func splitByNormalTurn(crv curve.Curve, srf surface.Surface, params []float64, angleTol float64) []float64 {
	normalAt := func(t float64) gmath.UnitVector3 {
		uv, _ := srf.Inverse(curve.Evaluate0(crv, t), false, gmath.Point2{})
		return srf.Evaluate(uv.U, uv.V).Normal
	}
	cosTol := math.Cos(angleTol)
	out := []float64{params[0]}
	for i := 1; i < len(params); i++ {
		lo, hi := params[i-1], params[i]
		var refine func(a, b float64, depth int)
		refine = func(a, b float64, depth int) {
			if depth > 8 {
				return
			}
			if normalAt(a).Dot(normalAt(b).Vec()) < cosTol {
				m := 0.5 * (a + b)
				refine(a, m, depth+1)
				out = append(out, m)
				refine(m, b, depth+1)
			}
		}
		refine(lo, hi, 0)
		out = append(out, hi)
	}
	sort.Float64s(out)
	return dedupeParams(out)
}

func dedupeParams(a []float64) []float64 {
	out := a[:1]
	for _, v := range a[1:] {
		if v-out[len(out)-1] > gmath.Zero {
			out = append(out, v)
		}
	}
	return out
}
