// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
	"github.com/cpmech/sgm/topo"
)

// Verbose gates trace output from the facetor.
var Verbose = false

// mesh accumulates the tessellation under construction. Nodes are
// deduplicated by parameter point within MinTol.
type mesh struct {
	pts2  []gmath.Point2
	pts3  []gmath.Point3
	owner []topo.ID
}

func (m *mesh) add(uv gmath.Point2, pos gmath.Point3, owner topo.ID) int {
	for i, q := range m.pts2 {
		if math.Abs(q.U-uv.U) < gmath.MinTol && math.Abs(q.V-uv.V) < gmath.MinTol {
			return i
		}
	}
	m.pts2 = append(m.pts2, uv)
	m.pts3 = append(m.pts3, pos)
	m.owner = append(m.owner, owner)
	return len(m.pts2) - 1
}

// FacetFace tessellates a face and caches the result on it: 2D and 3D
// points, normals, counter-clockwise triangles (clockwise for flipped
// faces) and per-point owning entity. Re-facetting an unchanged face
// returns the cached mesh.
func FacetFace(t *topo.Thing, f *topo.Face, opts Options) *topo.Facets {
	if !f.Facets().Empty() {
		return f.Facets()
	}
	srf := f.Surface(t)
	m := &mesh{}
	var tris []int

	if f.EdgeIDs.Len() == 0 {
		tris = facetClosedSurface(srf, f.ID(), m, opts)
	} else {
		loops := FindLoops(t, f, opts)
		polys := assembleRegion(srf, f.ID(), loops, m, opts)
		tris, _ = TriangulatePolygon(m.pts2, polys)
		adj := BuildAdjacency(tris)
		DelaunayFlip(m.pts2, tris, adj)
		if !opts.Parametric {
			tris = refineByCurvature(srf, f.ID(), m, tris, opts)
		}
	}

	if _, isTorus := srf.(*surface.Torus); isTorus && !opts.Parametric {
		tris = torusGridAugment(srf, f.ID(), m, tris, opts)
	}

	tris = orientTriangles(m.pts2, tris, f.Flipped)

	normals := make([]gmath.UnitVector3, len(m.pts2))
	for i, uv := range m.pts2 {
		n := srf.Evaluate(uv.U, uv.V).Normal
		if f.Flipped {
			n = n.Negate()
		}
		normals[i] = n
	}

	if Verbose {
		io.Pf("facet: face %d: %d points, %d triangles\n", f.ID(), len(m.pts2), len(tris)/3)
	}

	f.SetFacets(topo.Facets{
		Points2D:  m.pts2,
		Points3D:  m.pts3,
		Normals:   normals,
		Triangles: tris,
		Owner:     m.owner,
	})
	return f.Facets()
}

// orientTriangles enforces the winding convention in parameter space.
func orientTriangles(pts2 []gmath.Point2, tris []int, flipped bool) []int {
	for i := 0; i+2 < len(tris); i += 3 {
		ccw := orient2(pts2[tris[i]], pts2[tris[i+1]], pts2[tris[i+2]]) > 0
		if ccw == flipped {
			tris[i+1], tris[i+2] = tris[i+2], tris[i+1]
		}
	}
	return tris
}

// assembleRegion turns loops into index polygons, synthesizing seam and
// singularity boundary where the face wraps a closed parameter
// direction.
func assembleRegion(srf surface.Surface, faceID topo.ID, loops [][]loopNode, m *mesh, opts Options) [][]int {
	dom := srf.Domain()
	periodU := dom.U.Length()

	var closed [][]loopNode
	var openU [][]loopNode
	for _, lp := range loops {
		if len(lp) < 2 {
			continue
		}
		gap := lp[len(lp)-1].uv.U + uStep(lp) - lp[0].uv.U
		if srf.ClosedInU() && math.Abs(math.Abs(gap)-periodU) < 0.25*periodU {
			openU = append(openU, lp)
		} else {
			closed = append(closed, lp)
		}
	}

	var polys [][]int
	if len(openU) > 0 {
		polys = append(polys, seamBand(srf, faceID, openU, m, opts))
	}
	for _, lp := range closed {
		poly := make([]int, 0, len(lp))
		for _, nd := range lp {
			poly = append(poly, m.add(nd.uv, nd.pos, nd.owner))
		}
		polys = append(polys, poly)
	}
	if len(polys) == 0 {
		return nil
	}
	// the outer polygon (largest absolute area) leads; make it CCW
	outerIdx := 0
	outerArea := 0.0
	for i, p := range polys {
		a := math.Abs(signedArea2(m.pts2, p))
		if a > outerArea {
			outerArea, outerIdx = a, i
		}
	}
	polys[0], polys[outerIdx] = polys[outerIdx], polys[0]
	if signedArea2(m.pts2, polys[0]) < 0 {
		reverseInts(polys[0])
	}
	for _, p := range polys[1:] {
		if signedArea2(m.pts2, p) > 0 {
			reverseInts(p)
		}
	}
	return polys
}

// uStep estimates the last node-to-node parameter step, used to project
// where an open loop's next node would land.
func uStep(lp []loopNode) float64 {
	if len(lp) < 2 {
		return 0
	}
	return lp[len(lp)-1].uv.U - lp[len(lp)-2].uv.U
}

// seamBand builds the outer polygon for a face wrapping the closed U
// direction: the bottom rim traversed +u, a synthesized seam edge up,
// the top rim traversed -u, and a seam edge back down. A missing rim on
// a singular side is replaced by a run of nodes along the singular
// parameter line, a short artificial rim, so the
// mesher never collapses triangles onto the singularity.
func seamBand(srf surface.Surface, faceID topo.ID, openU [][]loopNode, m *mesh, opts Options) []int {
	dom := srf.Domain()
	periodU := dom.U.Length()

	var bottom, top []loopNode
	for _, lp := range openU {
		if lp[len(lp)-1].uv.U > lp[0].uv.U {
			if bottom != nil {
				chk.Panic("facet: two rims traverse +u; face boundary orientation is corrupt")
			}
			bottom = lp
		} else {
			if top != nil {
				chk.Panic("facet: two rims traverse -u; face boundary orientation is corrupt")
			}
			top = lp
		}
	}

	switch {
	case bottom == nil && top == nil:
		chk.Panic("facet: seam band with no rims")
	case bottom == nil:
		// material lies below the -u rim: synthesize the low singular rim
		bottom = synthRim(srf, faceID, singularV(srf, dom, false), top[len(top)-1].uv.U, top[0].uv.U, opts)
	case top == nil:
		top = synthRim(srf, faceID, singularV(srf, dom, true), bottom[len(bottom)-1].uv.U, bottom[0].uv.U, opts)
	}

	// align top over bottom: shift by whole periods so the rims face
	uRight := bottom[len(bottom)-1].uv.U + uStep(bottom)
	shift := math.Round((uRight-top[0].uv.U)/periodU) * periodU
	top = shiftLoopU(top, shift)

	var poly []int
	push := func(idx int) {
		// a rim that already reaches the seam dedupes onto its own closing
		// node; consecutive duplicates would leave zero-area ears
		if n := len(poly); n > 0 && poly[n-1] == idx {
			return
		}
		poly = append(poly, idx)
	}
	for _, nd := range bottom {
		push(m.add(nd.uv, nd.pos, nd.owner))
	}
	// close the bottom rim at the seam: repeat its first node one period over
	first := bottom[0]
	push(m.add(gmath.Point2{U: first.uv.U + periodU, V: first.uv.V}, first.pos, first.owner))
	// right seam up
	for _, idx := range seamSegment(srf, faceID, first.uv.U+periodU, first.uv.V, top[0].uv.V, m, opts) {
		push(idx)
	}
	for _, nd := range top {
		push(m.add(nd.uv, nd.pos, nd.owner))
	}
	// close the top rim at the seam: its first node one period back
	tfirst := top[0]
	closingU := tfirst.uv.U - periodU
	push(m.add(gmath.Point2{U: closingU, V: tfirst.uv.V}, tfirst.pos, tfirst.owner))
	// left seam down
	for _, idx := range seamSegment(srf, faceID, closingU, tfirst.uv.V, first.uv.V, m, opts) {
		push(idx)
	}
	if len(poly) > 1 && poly[0] == poly[len(poly)-1] {
		poly = poly[:len(poly)-1]
	}
	return poly
}

// singularV returns the v boundary on the requested side (V.Hi when high,
// else V.Lo); it does not consult the surface's singularity predicates.
func singularV(srf surface.Surface, dom gmath.Interval2, high bool) float64 {
	if high {
		return dom.V.Hi
	}
	return dom.V.Lo
}

// synthRim builds a parameter-line rim from uFrom to uTo at constant v.
// On a singular line every node maps to the same 3D point, which is
// exactly what keeps the triangulator away from degenerate fans.
func synthRim(srf surface.Surface, faceID topo.ID, v, uFrom, uTo float64, opts Options) []loopNode {
	n := int(math.Ceil(math.Abs(uTo-uFrom) / opts.faceAngle()))
	if n < 4 {
		n = 4
	}
	rim := make([]loopNode, n+1)
	for i := 0; i <= n; i++ {
		u := uFrom + (uTo-uFrom)*float64(i)/float64(n)
		rim[i] = loopNode{
			uv:    gmath.Point2{U: u, V: v},
			pos:   srf.Evaluate(u, v).Pos,
			owner: faceID,
		}
	}
	return rim
}

// seamSegment emits the interior nodes of a seam run at constant u from
// v1 toward v2 (exclusive of both ends), split into
// ceil(|v2-v1| / face angle tolerance) steps, at least two.
func seamSegment(srf surface.Surface, faceID topo.ID, u, v1, v2 float64, m *mesh, opts Options) []int {
	n := int(math.Ceil(math.Abs(v2-v1) / opts.faceAngle()))
	if n < 2 {
		n = 2
	}
	var out []int
	for i := 1; i < n; i++ {
		v := v1 + (v2-v1)*float64(i)/float64(n)
		pos := srf.Evaluate(u, v).Pos
		out = append(out, m.add(gmath.Point2{U: u, V: v}, pos, faceID))
	}
	return out
}

func shiftLoopU(lp []loopNode, shift float64) []loopNode {
	if shift == 0 {
		return lp
	}
	out := make([]loopNode, len(lp))
	for i, nd := range lp {
		nd.uv.U += shift
		out[i] = nd
	}
	return out
}

// facetClosedSurface meshes an edgeless face over a closed surface with
// a structured grid: spheres get polar triangle fans, tori a doubly
// periodic grid.
func facetClosedSurface(srf surface.Surface, faceID topo.ID, m *mesh, opts Options) []int {
	dom := srf.Domain()
	nU := gridCount(dom.U.Length(), opts)
	nV := gridCount(dom.V.Length(), opts)

	singLo := srf.SingularLowV()
	singHi := srf.SingularHighV()

	// v rows: interior rows only when the poles are singular
	rows := nV + 1
	idx := make([][]int, rows)
	for j := 0; j < rows; j++ {
		v := dom.V.Lo + dom.V.Length()*float64(j)/float64(nV)
		if (j == 0 && singLo) || (j == nV && singHi) {
			continue // pole rows handled as single points below
		}
		idx[j] = make([]int, nU+1)
		// the closed-u seam stays duplicated in parameter space so
		// triangles remain counter-clockwise; the 3D points coincide
		for i := 0; i <= nU; i++ {
			u := dom.U.Lo + dom.U.Length()*float64(i)/float64(nU)
			pos := srf.Evaluate(u, v).Pos
			idx[j][i] = m.add(gmath.Point2{U: u, V: v}, pos, faceID)
		}
	}

	var tris []int
	quad := func(a, b, c, d int) {
		tris = append(tris, a, b, c, a, c, d)
	}
	for j := 0; j < nV; j++ {
		jn := j + 1
		if idx[j] == nil || (jn < rows && idx[jn] == nil) {
			continue
		}
		if jn >= rows {
			break
		}
		for i := 0; i < nU; i++ {
			quad(idx[j][i], idx[j][i+1], idx[jn][i+1], idx[jn][i])
		}
	}
	// polar fans
	if singLo {
		pole := srf.Evaluate(dom.U.Mid(), dom.V.Lo).Pos
		j := 1
		for i := 0; i < nU; i++ {
			u := dom.U.Lo + dom.U.Length()*(float64(i)+0.5)/float64(nU)
			p := m.add(gmath.Point2{U: u, V: dom.V.Lo}, pole, faceID)
			tris = append(tris, p, idx[j][i+1], idx[j][i])
		}
	}
	if singHi {
		pole := srf.Evaluate(dom.U.Mid(), dom.V.Hi).Pos
		j := nV - 1
		for i := 0; i < nU; i++ {
			u := dom.U.Lo + dom.U.Length()*(float64(i)+0.5)/float64(nU)
			p := m.add(gmath.Point2{U: u, V: dom.V.Hi}, pole, faceID)
			tris = append(tris, p, idx[j][i], idx[j][i+1])
		}
	}
	return tris
}

func gridCount(span float64, opts Options) int {
	n := int(math.Ceil(span / opts.faceAngle()))
	if n < 4 {
		n = 4
	}
	if n > opts.maxFacets() {
		n = opts.maxFacets()
	}
	return n
}

// refineByCurvature splits interior triangle edges whose endpoint
// normals turn more than the face angle tolerance, worst first, locally
// reconnecting two triangles into four and re-running the Delaunay pass
// over the whole mesh after each round.
func refineByCurvature(srf surface.Surface, faceID topo.ID, m *mesh, tris []int, opts Options) []int {
	cosTol := math.Cos(opts.faceAngle())
	normalAt := func(i int) gmath.UnitVector3 {
		uv := m.pts2[i]
		return srf.Evaluate(uv.U, uv.V).Normal
	}

	for round := 0; round < 12; round++ {
		if len(tris)/3 >= opts.maxFacets() {
			break
		}
		adj := BuildAdjacency(tris)
		type splitCand struct {
			t, k int
			dot  float64
		}
		var cands []splitCand
		for t := 0; t < len(tris)/3; t++ {
			for k := 0; k < 3; k++ {
				if adj[3*t+k] == NoAdjacency || adj[3*t+k] < t {
					continue // boundary, or the partner already saw it
				}
				a, b := tris[3*t+k], tris[3*t+(k+1)%3]
				d := normalAt(a).Dot(normalAt(b).Vec())
				if d < cosTol {
					cands = append(cands, splitCand{t: t, k: k, dot: d})
				}
			}
		}
		if len(cands) == 0 {
			break
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].dot < cands[j].dot })

		touched := make(map[int]bool)
		for _, c := range cands {
			u := adj[3*c.t+c.k]
			if touched[c.t] || touched[u] {
				continue
			}
			a := tris[3*c.t+c.k]
			b := tris[3*c.t+(c.k+1)%3]
			cc := tris[3*c.t+(c.k+2)%3]
			var d int
			found := false
			for j := 0; j < 3; j++ {
				if tris[3*u+j] == b && tris[3*u+(j+1)%3] == a {
					d = tris[3*u+(j+2)%3]
					found = true
					break
				}
			}
			if !found {
				continue
			}
			// midpoint in parameter space, projected onto the surface
			uvm := gmath.Point2{U: 0.5 * (m.pts2[a].U + m.pts2[b].U), V: 0.5 * (m.pts2[a].V + m.pts2[b].V)}
			uvm, posm := srf.Inverse(srf.Evaluate(uvm.U, uvm.V).Pos, true, uvm)
			mid := m.add(uvm, posm, faceID)
			// two triangles become four
			tris[3*c.t], tris[3*c.t+1], tris[3*c.t+2] = a, mid, cc
			tris[3*u], tris[3*u+1], tris[3*u+2] = b, d, mid
			tris = append(tris, mid, b, cc)
			tris = append(tris, mid, d, a)
			touched[c.t], touched[u] = true, true
			if len(tris)/3 >= opts.maxFacets() {
				break
			}
		}
		adj = BuildAdjacency(tris)
		DelaunayFlip(m.pts2, tris, adj)
	}
	return tris
}

// torusGridAugment overlays a regular grid sized by the edge angle
// tolerance and inserts every grid point that lands inside an existing
// triangle or on one of its edges (see insertPoint), then re-Delaunays.
func torusGridAugment(srf surface.Surface, faceID topo.ID, m *mesh, tris []int, opts Options) []int {
	dom := srf.Domain()
	nU := int(math.Ceil(dom.U.Length() / opts.edgeAngle()))
	nV := int(math.Ceil(dom.V.Length() / opts.edgeAngle()))
	if nU*nV > opts.maxFacets() {
		return tris
	}
	for i := 0; i < nU; i++ {
		for j := 0; j < nV; j++ {
			u := dom.U.Lo + dom.U.Length()*(float64(i)+0.5)/float64(nU)
			v := dom.V.Lo + dom.V.Length()*(float64(j)+0.5)/float64(nV)
			tris = insertPoint(srf, faceID, m, tris, gmath.Point2{U: u, V: v})
		}
	}
	adj := BuildAdjacency(tris)
	DelaunayFlip(m.pts2, tris, adj)
	return tris
}

// insertPoint locates the triangle containing uv by the inclusion test
// and splits it: strictly inside, the triangle becomes three; on an
// interior edge, the edge's two triangles become four (two on a boundary
// edge). Points coinciding with an existing node or outside every
// triangle are ignored.
func insertPoint(srf surface.Surface, faceID topo.ID, m *mesh, tris []int, uv gmath.Point2) []int {
	const eps = 100 * gmath.MinTol
	for t := 0; t < len(tris)/3; t++ {
		a, b, c := tris[3*t], tris[3*t+1], tris[3*t+2]
		pa, pb, pc := m.pts2[a], m.pts2[b], m.pts2[c]
		d0 := orient2(pa, pb, uv)
		d1 := orient2(pb, pc, uv)
		d2 := orient2(pc, pa, uv)

		if d0 > eps && d1 > eps && d2 > eps {
			before := len(m.pts2)
			p := m.add(uv, srf.Evaluate(uv.U, uv.V).Pos, faceID)
			if p < before {
				return tris // duplicate of an existing node
			}
			tris[3*t], tris[3*t+1], tris[3*t+2] = a, b, p
			tris = append(tris, b, c, p)
			tris = append(tris, c, a, p)
			return tris
		}

		// on exactly one edge: the opposite orientation is (near) zero and
		// the other two are positive
		var x, y, z int // split edge x-y, opposite vertex z
		switch {
		case math.Abs(d0) <= eps && d1 > eps && d2 > eps:
			x, y, z = a, b, c
		case math.Abs(d1) <= eps && d2 > eps && d0 > eps:
			x, y, z = b, c, a
		case math.Abs(d2) <= eps && d0 > eps && d1 > eps:
			x, y, z = c, a, b
		default:
			continue
		}
		before := len(m.pts2)
		p := m.add(uv, srf.Evaluate(uv.U, uv.V).Pos, faceID)
		if p < before {
			return tris
		}
		return splitEdgeAt(m, tris, t, x, y, z, p)
	}
	return tris
}

// splitEdgeAt splits edge x-y of triangle t at the new point p: t and the
// neighbor across x-y (when one exists) are re-triangulated into four
// triangles; a boundary edge yields two.
func splitEdgeAt(m *mesh, tris []int, t, x, y, z, p int) []int {
	tris[3*t], tris[3*t+1], tris[3*t+2] = x, p, z
	tris = append(tris, p, y, z)
	// the neighbor holds the reversed edge y-x
	for u := 0; u < len(tris)/3; u++ {
		if u == t {
			continue
		}
		for k := 0; k < 3; k++ {
			if tris[3*u+k] == y && tris[3*u+(k+1)%3] == x {
				w := tris[3*u+(k+2)%3]
				tris[3*u], tris[3*u+1], tris[3*u+2] = y, p, w
				tris = append(tris, p, x, w)
				return tris
			}
		}
	}
	return tris
}
