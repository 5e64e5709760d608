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

// NURBSurf is a tensor-product rational B-spline surface: the NUB surface
// evaluated in homogeneous (w*x,w*y,w*z,w) space and projected back by
// the quotient rule.
type NURBSurf struct {
	DegreeU, DegreeV int
	KnotsU, KnotsV   []float64
	Ctrl             [][]gmath.Point3
	Weights          [][]float64

	seedUs, seedVs []float64
	seedPts        [][]gmath.Point3
}

func NewNURBSurf(degU, degV int, knotsU, knotsV []float64, ctrl [][]gmath.Point3, weights [][]float64) *NURBSurf {
	nu := len(ctrl)
	if nu == 0 || len(weights) != nu || len(weights[0]) != len(ctrl[0]) {
		chk.Panic("surface: NURBSurf weights shape must match the control net")
	}
	nv := len(ctrl[0])
	if len(knotsU) != nu+degU+1 || len(knotsV) != nv+degV+1 {
		chk.Panic("surface: NURBSurf knot lengths (%d,%d) do not match degrees (%d,%d) and net (%d,%d)",
			len(knotsU), len(knotsV), degU, degV, nu, nv)
	}
	return &NURBSurf{DegreeU: degU, DegreeV: degV, KnotsU: knotsU, KnotsV: knotsV, Ctrl: ctrl, Weights: weights}
}

func (s *NURBSurf) Kind() Kind { return KindNURB }

func (s *NURBSurf) Domain() gmath.Interval2 {
	pu, pv := s.DegreeU, s.DegreeV
	return gmath.Interval2{
		U: gmath.Interval1{Lo: s.KnotsU[pu], Hi: s.KnotsU[len(s.KnotsU)-pu-1]},
		V: gmath.Interval1{Lo: s.KnotsV[pv], Hi: s.KnotsV[len(s.KnotsV)-pv-1]},
	}
}

func (s *NURBSurf) Evaluate(u, v float64) Eval {
	dom := s.Domain()
	u = dom.U.Clamp(u)
	v = dom.V.Clamp(v)
	spanU := findSpan(s.DegreeU, s.KnotsU, len(s.Ctrl), u)
	spanV := findSpan(s.DegreeV, s.KnotsV, len(s.Ctrl[0]), v)
	Nu, dNu, ddNu := basisDers(s.DegreeU, s.KnotsU, spanU, u)
	Nv, dNv, ddNv := basisDers(s.DegreeV, s.KnotsV, spanV, v)

	// homogeneous sums: A = sum w*P*basis, W = sum w*basis, per derivative order
	var A, Au, Av, Auu, Auv, Avv gmath.Vector3
	var W, Wu, Wv, Wuu, Wuv, Wvv float64
	for i := 0; i <= s.DegreeU; i++ {
		for j := 0; j <= s.DegreeV; j++ {
			ii, jj := spanU-s.DegreeU+i, spanV-s.DegreeV+j
			w := s.Weights[ii][jj]
			cp := s.Ctrl[ii][jj]
			p := gmath.Vector3{X: cp.X * w, Y: cp.Y * w, Z: cp.Z * w}
			A = A.Plus(p.Scale(Nu[i] * Nv[j]))
			Au = Au.Plus(p.Scale(dNu[i] * Nv[j]))
			Av = Av.Plus(p.Scale(Nu[i] * dNv[j]))
			Auu = Auu.Plus(p.Scale(ddNu[i] * Nv[j]))
			Auv = Auv.Plus(p.Scale(dNu[i] * dNv[j]))
			Avv = Avv.Plus(p.Scale(Nu[i] * ddNv[j]))
			W += w * Nu[i] * Nv[j]
			Wu += w * dNu[i] * Nv[j]
			Wv += w * Nu[i] * dNv[j]
			Wuu += w * ddNu[i] * Nv[j]
			Wuv += w * dNu[i] * dNv[j]
			Wvv += w * Nu[i] * ddNv[j]
		}
	}
	if math.Abs(W) < gmath.Zero {
		chk.Panic("surface: NURBSurf has vanishing weight at (%g,%g)", u, v)
	}
	pos := A.Scale(1 / W)
	// quotient rule: S_u = (A_u - W_u*S)/W, and similarly for second order
	du := Au.Minus(pos.Scale(Wu)).Scale(1 / W)
	dv := Av.Minus(pos.Scale(Wv)).Scale(1 / W)
	duu := Auu.Minus(du.Scale(2 * Wu)).Minus(pos.Scale(Wuu)).Scale(1 / W)
	duv := Auv.Minus(du.Scale(Wv)).Minus(dv.Scale(Wu)).Minus(pos.Scale(Wuv)).Scale(1 / W)
	dvv := Avv.Minus(dv.Scale(2 * Wv)).Minus(pos.Scale(Wvv)).Scale(1 / W)

	n, ok := du.Cross(dv).Unit()
	if !ok {
		n = gmath.UnitVector3{Z: 1}
	}
	return Eval{
		Pos:    gmath.Point3{X: pos.X, Y: pos.Y, Z: pos.Z},
		Du:     du, Dv: dv, Normal: n,
		Duu: duu, Duv: duv, Dvv: dvv,
	}
}

func (s *NURBSurf) buildSeeds() {
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

// SeedGrid exposes the coarse sample grid used for line-intersection
// seeding, same contract as NUBSurf.SeedGrid.
func (s *NURBSurf) SeedGrid() (us, vs []float64, pts [][]gmath.Point3) {
	s.buildSeeds()
	return s.seedUs, s.seedVs, s.seedPts
}

func (s *NURBSurf) Inverse(pos gmath.Point3, hasGuess bool, guess gmath.Point2) (uv gmath.Point2, closest gmath.Point3) {
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

func (s *NURBSurf) PrincipalCurvature(uv gmath.Point2) (dir1, dir2 gmath.Point2, k1, k2 float64) {
	return curvatureFromShapeOps(s.Evaluate(uv.U, uv.V))
}

func (s *NURBSurf) UParamLine(u0 float64) (curve.Curve, bool) {
	spanU := findSpan(s.DegreeU, s.KnotsU, len(s.Ctrl), u0)
	Nu, _, _ := basisDers(s.DegreeU, s.KnotsU, spanU, u0)
	nv := len(s.Ctrl[0])
	ctrl := make([]gmath.Point3, nv)
	weights := make([]float64, nv)
	for j := 0; j < nv; j++ {
		var p gmath.Vector3
		w := 0.0
		for i := 0; i <= s.DegreeU; i++ {
			ii := spanU - s.DegreeU + i
			wi := s.Weights[ii][j]
			cp := s.Ctrl[ii][j]
			p = p.Plus(gmath.Vector3{X: cp.X * wi, Y: cp.Y * wi, Z: cp.Z * wi}.Scale(Nu[i]))
			w += wi * Nu[i]
		}
		weights[j] = w
		if math.Abs(w) > gmath.Zero {
			p = p.Scale(1 / w)
		}
		ctrl[j] = gmath.Point3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return curve.NewNURB(s.DegreeV, append([]float64{}, s.KnotsV...), ctrl, weights), true
}

func (s *NURBSurf) VParamLine(v0 float64) (curve.Curve, bool) {
	spanV := findSpan(s.DegreeV, s.KnotsV, len(s.Ctrl[0]), v0)
	Nv, _, _ := basisDers(s.DegreeV, s.KnotsV, spanV, v0)
	nu := len(s.Ctrl)
	ctrl := make([]gmath.Point3, nu)
	weights := make([]float64, nu)
	for i := 0; i < nu; i++ {
		var p gmath.Vector3
		w := 0.0
		for j := 0; j <= s.DegreeV; j++ {
			jj := spanV - s.DegreeV + j
			wj := s.Weights[i][jj]
			cp := s.Ctrl[i][jj]
			p = p.Plus(gmath.Vector3{X: cp.X * wj, Y: cp.Y * wj, Z: cp.Z * wj}.Scale(Nv[j]))
			w += wj * Nv[j]
		}
		weights[i] = w
		if math.Abs(w) > gmath.Zero {
			p = p.Scale(1 / w)
		}
		ctrl[i] = gmath.Point3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return curve.NewNURB(s.DegreeU, append([]float64{}, s.KnotsU...), ctrl, weights), true
}

func (s *NURBSurf) ClosedInU() bool {
	dom := s.Domain()
	a := s.Evaluate(dom.U.Lo, dom.V.Mid()).Pos
	b := s.Evaluate(dom.U.Hi, dom.V.Mid()).Pos
	return gmath.Distance(a, b) < gmath.MinTol
}

func (s *NURBSurf) ClosedInV() bool {
	dom := s.Domain()
	a := s.Evaluate(dom.U.Mid(), dom.V.Lo).Pos
	b := s.Evaluate(dom.U.Mid(), dom.V.Hi).Pos
	return gmath.Distance(a, b) < gmath.MinTol
}

func (s *NURBSurf) SingularLowU() bool { return ctrlRowDegenerate(s.Ctrl[0]) }
func (s *NURBSurf) SingularHighU() bool {
	return ctrlRowDegenerate(s.Ctrl[len(s.Ctrl)-1])
}

func (s *NURBSurf) ctrlCol(j int) []gmath.Point3 {
	col := make([]gmath.Point3, len(s.Ctrl))
	for i := range s.Ctrl {
		col[i] = s.Ctrl[i][j]
	}
	return col
}

func (s *NURBSurf) SingularLowV() bool  { return ctrlRowDegenerate(s.ctrlCol(0)) }
func (s *NURBSurf) SingularHighV() bool { return ctrlRowDegenerate(s.ctrlCol(len(s.Ctrl[0]) - 1)) }

func (s *NURBSurf) IsSingularity(uv gmath.Point2, tol float64) bool {
	e := s.Evaluate(uv.U, uv.V)
	return e.Du.Length() < tol || e.Dv.Length() < tol
}

func (s *NURBSurf) Transform(trans gmath.Transform3) Surface {
	ctrl := make([][]gmath.Point3, len(s.Ctrl))
	weights := make([][]float64, len(s.Weights))
	for i, row := range s.Ctrl {
		ctrl[i] = make([]gmath.Point3, len(row))
		for j, p := range row {
			ctrl[i][j] = trans.Point(p)
		}
		weights[i] = append([]float64{}, s.Weights[i]...)
	}
	return &NURBSurf{
		DegreeU: s.DegreeU, DegreeV: s.DegreeV,
		KnotsU: append([]float64{}, s.KnotsU...),
		KnotsV: append([]float64{}, s.KnotsV...),
		Ctrl:   ctrl, Weights: weights,
	}
}

func (s *NURBSurf) Clone() Surface {
	ctrl := make([][]gmath.Point3, len(s.Ctrl))
	weights := make([][]float64, len(s.Weights))
	for i, row := range s.Ctrl {
		ctrl[i] = append([]gmath.Point3{}, row...)
		weights[i] = append([]float64{}, s.Weights[i]...)
	}
	return &NURBSurf{
		DegreeU: s.DegreeU, DegreeV: s.DegreeV,
		KnotsU: append([]float64{}, s.KnotsU...),
		KnotsV: append([]float64{}, s.KnotsV...),
		Ctrl:   ctrl, Weights: weights,
	}
}
