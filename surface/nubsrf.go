// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// NUBSurf is a tensor-product non-uniform B-spline surface: control net
// Ctrl[i][j] (i along u, j along v), degrees and knot vectors per
// direction. Evaluation is de Boor in each direction; inversion seeds
// Newton from a coarse precomputed (uv,pos) grid.
type NUBSurf struct {
	DegreeU, DegreeV int
	KnotsU, KnotsV   []float64
	Ctrl             [][]gmath.Point3

	seedUs, seedVs []float64
	seedPts        [][]gmath.Point3
}

func NewNUBSurf(degU, degV int, knotsU, knotsV []float64, ctrl [][]gmath.Point3) *NUBSurf {
	nu := len(ctrl)
	if nu == 0 {
		chk.Panic("surface: NUBSurf needs a nonempty control net")
	}
	nv := len(ctrl[0])
	if len(knotsU) != nu+degU+1 || len(knotsV) != nv+degV+1 {
		chk.Panic("surface: NUBSurf knot lengths (%d,%d) do not match degrees (%d,%d) and net (%d,%d)",
			len(knotsU), len(knotsV), degU, degV, nu, nv)
	}
	return &NUBSurf{DegreeU: degU, DegreeV: degV, KnotsU: knotsU, KnotsV: knotsV, Ctrl: ctrl}
}

func (s *NUBSurf) Kind() Kind { return KindNUB }

func (s *NUBSurf) Domain() gmath.Interval2 {
	pu, pv := s.DegreeU, s.DegreeV
	return gmath.Interval2{
		U: gmath.Interval1{Lo: s.KnotsU[pu], Hi: s.KnotsU[len(s.KnotsU)-pu-1]},
		V: gmath.Interval1{Lo: s.KnotsV[pv], Hi: s.KnotsV[len(s.KnotsV)-pv-1]},
	}
}

func (s *NUBSurf) Evaluate(u, v float64) Eval {
	dom := s.Domain()
	u = dom.U.Clamp(u)
	v = dom.V.Clamp(v)
	spanU := findSpan(s.DegreeU, s.KnotsU, len(s.Ctrl), u)
	spanV := findSpan(s.DegreeV, s.KnotsV, len(s.Ctrl[0]), v)
	Nu, dNu, ddNu := basisDers(s.DegreeU, s.KnotsU, spanU, u)
	Nv, dNv, ddNv := basisDers(s.DegreeV, s.KnotsV, spanV, v)

	var e Eval
	var pos, du, dv, duu, duv, dvv gmath.Vector3
	for i := 0; i <= s.DegreeU; i++ {
		for j := 0; j <= s.DegreeV; j++ {
			cp := s.Ctrl[spanU-s.DegreeU+i][spanV-s.DegreeV+j]
			p := gmath.Vector3{X: cp.X, Y: cp.Y, Z: cp.Z}
			pos = pos.Plus(p.Scale(Nu[i] * Nv[j]))
			du = du.Plus(p.Scale(dNu[i] * Nv[j]))
			dv = dv.Plus(p.Scale(Nu[i] * dNv[j]))
			duu = duu.Plus(p.Scale(ddNu[i] * Nv[j]))
			duv = duv.Plus(p.Scale(dNu[i] * dNv[j]))
			dvv = dvv.Plus(p.Scale(Nu[i] * ddNv[j]))
		}
	}
	e.Pos = gmath.Point3{X: pos.X, Y: pos.Y, Z: pos.Z}
	e.Du, e.Dv, e.Duu, e.Duv, e.Dvv = du, dv, duu, duv, dvv
	n, ok := du.Cross(dv).Unit()
	if !ok {
		n = gmath.UnitVector3{Z: 1}
	}
	e.Normal = n
	return e
}

// buildSeeds samples a coarse grid over the domain; the grid doubles as a
// tangent-plane approximation for line intersection seeding.
func (s *NUBSurf) buildSeeds() {
	if s.seedPts != nil {
		return
	}
	dom := s.Domain()
	nu := 4 * len(s.Ctrl)
	nv := 4 * len(s.Ctrl[0])
	s.seedUs = make([]float64, nu+1)
	s.seedVs = make([]float64, nv+1)
	for i := 0; i <= nu; i++ {
		s.seedUs[i] = dom.U.Lo + dom.U.Length()*float64(i)/float64(nu)
	}
	for j := 0; j <= nv; j++ {
		s.seedVs[j] = dom.V.Lo + dom.V.Length()*float64(j)/float64(nv)
	}
	s.seedPts = make([][]gmath.Point3, nu+1)
	for i := 0; i <= nu; i++ {
		s.seedPts[i] = make([]gmath.Point3, nv+1)
		for j := 0; j <= nv; j++ {
			s.seedPts[i][j] = s.Evaluate(s.seedUs[i], s.seedVs[j]).Pos
		}
	}
}

// SeedGrid exposes the coarse sample grid (u values, v values, positions)
// used by the line-intersection seeding in the intersection engine.
func (s *NUBSurf) SeedGrid() (us, vs []float64, pts [][]gmath.Point3) {
	s.buildSeeds()
	return s.seedUs, s.seedVs, s.seedPts
}

func (s *NUBSurf) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
	s.buildSeeds()
	uv = gmath.Point2{U: s.seedUs[0], V: s.seedVs[0]}
	bestD := math.MaxFloat64
	for i, u := range s.seedUs {
		for j, v := range s.seedVs {
			d := gmath.DistanceSq(s.seedPts[i][j], pos)
			if d < bestD {
				bestD = d
				uv = gmath.Point2{U: u, V: v}
			}
		}
	}
	if hasGuess {
		if gmath.DistanceSq(s.Evaluate(guess.U, guess.V).Pos, pos) <= bestD*4 {
			uv = guess
		}
	}
	uv, closest = newtonInverse(s, pos, uv)
	return
}

// newtonInverse runs the two-parameter closest-point Newton iteration
// shared by the free-form and swept surface kinds.
func newtonInverse(s Surface, pos gmath.Point3, uv gmath.Point2) (gmath.Point2, gmath.Point3) {
	dom := s.Domain()
	for iter := 0; iter < 30; iter++ {
		e := s.Evaluate(uv.U, uv.V)
		diff := e.Pos.Sub(pos)
		fu := diff.Dot(e.Du)
		fv := diff.Dot(e.Dv)
		juu := e.Du.Dot(e.Du) + diff.Dot(e.Duu)
		juv := e.Du.Dot(e.Dv) + diff.Dot(e.Duv)
		jvv := e.Dv.Dot(e.Dv) + diff.Dot(e.Dvv)
		det := juu*jvv - juv*juv
		if math.Abs(det) < gmath.Zero {
			break
		}
		du := (fu*jvv - fv*juv) / det
		dv := (fv*juu - fu*juv) / det
		uv.U = dom.U.Clamp(uv.U - du)
		uv.V = dom.V.Clamp(uv.V - dv)
		if math.Abs(du) < 1e-12 && math.Abs(dv) < 1e-12 {
			break
		}
	}
	return uv, s.Evaluate(uv.U, uv.V).Pos
}

func (s *NUBSurf) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	return curvatureFromShapeOps(s.Evaluate(uv.U, uv.V))
}

func (s *NUBSurf) UParamLine(u0 float64) (curve.Curve, bool) {
	// collapse the u direction at u0: the result is a NUB curve in v whose
	// control points are the u-blended columns of the net
	spanU := findSpan(s.DegreeU, s.KnotsU, len(s.Ctrl), u0)
	Nu, _, _ := basisDers(s.DegreeU, s.KnotsU, spanU, u0)
	nv := len(s.Ctrl[0])
	ctrl := make([]gmath.Point3, nv)
	for j := 0; j < nv; j++ {
		var p gmath.Vector3
		for i := 0; i <= s.DegreeU; i++ {
			cp := s.Ctrl[spanU-s.DegreeU+i][j]
			p = p.Plus(gmath.Vector3{X: cp.X, Y: cp.Y, Z: cp.Z}.Scale(Nu[i]))
		}
		ctrl[j] = gmath.Point3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return curve.NewNUB(s.DegreeV, append([]float64{}, s.KnotsV...), ctrl), true
}

func (s *NUBSurf) VParamLine(v0 float64) (curve.Curve, bool) {
	spanV := findSpan(s.DegreeV, s.KnotsV, len(s.Ctrl[0]), v0)
	Nv, _, _ := basisDers(s.DegreeV, s.KnotsV, spanV, v0)
	nu := len(s.Ctrl)
	ctrl := make([]gmath.Point3, nu)
	for i := 0; i < nu; i++ {
		var p gmath.Vector3
		for j := 0; j <= s.DegreeV; j++ {
			cp := s.Ctrl[i][spanV-s.DegreeV+j]
			p = p.Plus(gmath.Vector3{X: cp.X, Y: cp.Y, Z: cp.Z}.Scale(Nv[j]))
		}
		ctrl[i] = gmath.Point3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return curve.NewNUB(s.DegreeU, append([]float64{}, s.KnotsU...), ctrl), true
}

func (s *NUBSurf) ClosedInU() bool {
	dom := s.Domain()
	a := s.Evaluate(dom.U.Lo, dom.V.Mid()).Pos
	b := s.Evaluate(dom.U.Hi, dom.V.Mid()).Pos
	return gmath.Distance(a, b) < gmath.MinTol
}

func (s *NUBSurf) ClosedInV() bool {
	dom := s.Domain()
	a := s.Evaluate(dom.U.Mid(), dom.V.Lo).Pos
	b := s.Evaluate(dom.U.Mid(), dom.V.Hi).Pos
	return gmath.Distance(a, b) < gmath.MinTol
}

// edge singularity test: the whole boundary row/column of the control net
// collapses to one point.
func ctrlRowDegenerate(row []gmath.Point3) bool {
	for _, p := range row[1:] {
		if gmath.Distance(p, row[0]) > gmath.MinTol {
			return false
		}
	}
	return true
}

func (s *NUBSurf) SingularLowU() bool { return ctrlRowDegenerate(s.Ctrl[0]) }
func (s *NUBSurf) SingularHighU() bool {
	return ctrlRowDegenerate(s.Ctrl[len(s.Ctrl)-1])
}

func (s *NUBSurf) ctrlCol(j int) []gmath.Point3 {
	col := make([]gmath.Point3, len(s.Ctrl))
	for i := range s.Ctrl {
		col[i] = s.Ctrl[i][j]
	}
	return col
}

func (s *NUBSurf) SingularLowV() bool  { return ctrlRowDegenerate(s.ctrlCol(0)) }
func (s *NUBSurf) SingularHighV() bool { return ctrlRowDegenerate(s.ctrlCol(len(s.Ctrl[0]) - 1)) }

func (s *NUBSurf) IsSingularity(uv gmath.Point2, tol float64) bool {
	e := s.Evaluate(uv.U, uv.V)
	return e.Du.Length() < tol || e.Dv.Length() < tol
}

func (s *NUBSurf) Transform(trans gmath.Transform3) Surface {
	ctrl := make([][]gmath.Point3, len(s.Ctrl))
	for i, row := range s.Ctrl {
		ctrl[i] = make([]gmath.Point3, len(row))
		for j, p := range row {
			ctrl[i][j] = trans.Point(p)
		}
	}
	return &NUBSurf{
		DegreeU: s.DegreeU, DegreeV: s.DegreeV,
		KnotsU: append([]float64{}, s.KnotsU...),
		KnotsV: append([]float64{}, s.KnotsV...),
		Ctrl:   ctrl,
	}
}

func (s *NUBSurf) Clone() Surface {
	ctrl := make([][]gmath.Point3, len(s.Ctrl))
	for i, row := range s.Ctrl {
		ctrl[i] = append([]gmath.Point3{}, row...)
	}
	return &NUBSurf{
		DegreeU: s.DegreeU, DegreeV: s.DegreeV,
		KnotsU: append([]float64{}, s.KnotsU...),
		KnotsV: append([]float64{}, s.KnotsV...),
		Ctrl:   ctrl,
	}
}
