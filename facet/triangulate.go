// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

// NoAdjacency marks a triangle side with no neighbor (a boundary side).
const NoAdjacency = -1

// signedArea2 returns twice the signed area of the polygon.
func signedArea2(pts []gmath.Point2, poly []int) float64 {
	s := 0.0
	for i := range poly {
		a := pts[poly[i]]
		b := pts[poly[(i+1)%len(poly)]]
		s += a.U*b.V - b.U*a.V
	}
	return s
}

// orient2 is twice the signed area of triangle (a,b,c): positive for a
// counter-clockwise turn.
func orient2(a, b, c gmath.Point2) float64 {
	return (b.U-a.U)*(c.V-a.V) - (c.U-a.U)*(b.V-a.V)
}

// TriangulatePolygon triangulates one outer polygon plus zero or more
// hole polygons (indices into pts; outer counter-clockwise, holes
// clockwise) and returns the triangle index triples plus the
// triangle-to-triangle adjacency array (three entries per triangle,
// NoAdjacency on boundary sides). Invalid input (open or self-crossing
// loops leaving no ear to clip) is fatal: the facetor does not repair
// user topology.
func TriangulatePolygon(pts []gmath.Point2, polys [][]int) (tris []int, adj []int) {
	if len(polys) == 0 {
		return nil, nil
	}
	merged := mergeHoles(pts, polys)
	tris = earClip(pts, merged)
	adj = BuildAdjacency(tris)
	return
}

// mergeHoles bridges every hole into the outer loop with a pair of
// coincident edges, the classic cut applied hole-by-hole from the
// rightmost hole vertex to a visible outer vertex.
func mergeHoles(pts []gmath.Point2, polys [][]int) []int {
	outer := append([]int{}, polys[0]...)
	if signedArea2(pts, outer) < 0 {
		reverseInts(outer)
	}
	holes := make([][]int, 0, len(polys)-1)
	for _, h := range polys[1:] {
		hc := append([]int{}, h...)
		if signedArea2(pts, hc) > 0 {
			reverseInts(hc)
		}
		holes = append(holes, hc)
	}
	// bridge holes right-to-left so earlier bridges cannot block later ones
	sort.SliceStable(holes, func(i, j int) bool {
		return pts[rightmost(pts, holes[i])].U > pts[rightmost(pts, holes[j])].U
	})
	for _, h := range holes {
		outer = bridgeHole(pts, outer, h)
	}
	return outer
}

func rightmost(pts []gmath.Point2, poly []int) int {
	best := poly[0]
	for _, i := range poly[1:] {
		if pts[i].U > pts[best].U {
			best = i
		}
	}
	return best
}

func reverseInts(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

// bridgeHole splices hole into outer at a mutually visible vertex pair.
func bridgeHole(pts []gmath.Point2, outer, hole []int) []int {
	hIdx := 0
	for i := range hole {
		if pts[hole[i]].U > pts[hole[hIdx]].U {
			hIdx = i
		}
	}
	hp := pts[hole[hIdx]]
	// find the visible outer vertex: nearest by angle-free distance among
	// those whose connecting segment crosses no outer edge
	best := -1
	bestD := math.MaxFloat64
	for i, oi := range outer {
		op := pts[oi]
		d := (op.U-hp.U)*(op.U-hp.U) + (op.V-hp.V)*(op.V-hp.V)
		if d >= bestD {
			continue
		}
		if segmentBlocked(pts, outer, hp, op, i) {
			continue
		}
		best, bestD = i, d
	}
	if best < 0 {
		chk.Panic("facet: cannot bridge hole into outer loop (self-intersecting input)")
	}
	// splice: outer[0..best], hole[hIdx..], hole[..hIdx], outer[best..]
	out := make([]int, 0, len(outer)+len(hole)+2)
	out = append(out, outer[:best+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(hIdx+k)%len(hole)])
	}
	out = append(out, outer[best:]...)
	return out
}

func segmentBlocked(pts []gmath.Point2, poly []int, a, b gmath.Point2, skip int) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		if i == skip || (i+1)%n == skip {
			continue
		}
		p, q := pts[poly[i]], pts[poly[(i+1)%n]]
		if segmentsCross(a, b, p, q) {
			return true
		}
	}
	return false
}

func segmentsCross(a, b, c, d gmath.Point2) bool {
	d1 := orient2(c, d, a)
	d2 := orient2(c, d, b)
	d3 := orient2(a, b, c)
	d4 := orient2(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// earClip triangulates one simple (bridged) polygon.
func earClip(pts []gmath.Point2, poly []int) []int {
	idx := append([]int{}, poly...)
	var tris []int
	guard := 0
	for len(idx) > 3 {
		clipped := false
		n := len(idx)
		for i := 0; i < n; i++ {
			prev, cur, next := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			a, b, c := pts[prev], pts[cur], pts[next]
			if orient2(a, b, c) <= gmath.Zero {
				continue
			}
			if anyPointInside(pts, idx, a, b, c, prev, cur, next) {
				continue
			}
			tris = append(tris, prev, cur, next)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			guard++
			if guard > 2 {
				chk.Panic("facet: ear clipping stalled: polygon is not a simple cycle")
			}
			// drop exactly-collinear vertices and retry
			idx = dropCollinear(pts, idx)
			if len(idx) < 3 {
				break
			}
		}
	}
	if len(idx) == 3 {
		tris = append(tris, idx[0], idx[1], idx[2])
	}
	return tris
}

func dropCollinear(pts []gmath.Point2, idx []int) []int {
	n := len(idx)
	src := append([]int{}, idx...)
	out := idx[:0]
	for i := 0; i < n; i++ {
		a := pts[src[(i+n-1)%n]]
		b := pts[src[i]]
		c := pts[src[(i+1)%n]]
		if math.Abs(orient2(a, b, c)) > gmath.Zero {
			out = append(out, src[i])
		}
	}
	return out
}

func anyPointInside(pts []gmath.Point2, idx []int, a, b, c gmath.Point2, ia, ib, ic int) bool {
	for _, j := range idx {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := pts[j]
		if orient2(a, b, p) >= 0 && orient2(b, c, p) >= 0 && orient2(c, a, p) >= 0 {
			return true
		}
	}
	return false
}

// BuildAdjacency returns, for each triangle side (t*3+k is the side from
// vertex k to vertex (k+1)%3 of triangle t), the adjacent triangle index
// or NoAdjacency.
func BuildAdjacency(tris []int) []int {
	n := len(tris) / 3
	adj := make([]int, len(tris))
	for i := range adj {
		adj[i] = NoAdjacency
	}
	type edgeKey struct{ a, b int }
	owner := make(map[edgeKey]int, len(tris))
	for t := 0; t < n; t++ {
		for k := 0; k < 3; k++ {
			a := tris[3*t+k]
			b := tris[3*t+(k+1)%3]
			if o, ok := owner[edgeKey{b, a}]; ok {
				adj[3*t+k] = o / 3
				adj[o] = t
			} else {
				owner[edgeKey{a, b}] = 3*t + k
			}
		}
	}
	return adj
}

// inCircumcircle returns the in-circle determinant of d against the
// counter-clockwise triangle (a,b,c): positive when d lies strictly inside
// the circumcircle, negative outside, zero on it.
func inCircumcircle(a, b, c, d gmath.Point2) float64 {
	ax, ay := a.U-d.U, a.V-d.V
	bx, by := b.U-d.U, b.V-d.V
	cx, cy := c.U-d.U, c.V-d.V
	return (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)
}

// DelaunayFlip flips non-boundary edges failing the in-circumcircle test
// until a full pass is clean. Near-zero determinants tie-break to the
// shorter diagonal provided both resulting triangles stay positively
// oriented.
func DelaunayFlip(pts []gmath.Point2, tris, adj []int) {
	n := len(tris) / 3
	for pass := 0; pass < 64; pass++ {
		flipped := false
		for t := 0; t < n; t++ {
			for k := 0; k < 3; k++ {
				if tryFlip(pts, tris, adj, t, k) {
					flipped = true
				}
			}
		}
		if !flipped {
			break
		}
	}
}

// tryFlip examines the quad across side k of triangle t and flips its
// diagonal when the Delaunay test demands it.
func tryFlip(pts []gmath.Point2, tris, adj []int, t, k int) bool {
	u := adj[3*t+k]
	if u == NoAdjacency {
		return false
	}
	a := tris[3*t+k]
	b := tris[3*t+(k+1)%3]
	c := tris[3*t+(k+2)%3]
	// find d: the vertex of u not on edge (a,b)
	var d int
	ku := -1
	for j := 0; j < 3; j++ {
		if tris[3*u+j] == b && tris[3*u+(j+1)%3] == a {
			ku = j
			d = tris[3*u+(j+2)%3]
			break
		}
	}
	if ku < 0 {
		return false
	}
	det := inCircumcircle(pts[a], pts[b], pts[c], pts[d])
	doFlip := det > gmath.MinTol
	if math.Abs(det) <= gmath.MinTol {
		// tie-break: prefer the shorter diagonal if it still yields two
		// positively oriented triangles
		oldLen := dist2(pts[a], pts[b])
		newLen := dist2(pts[c], pts[d])
		if newLen < oldLen &&
			orient2(pts[a], pts[d], pts[c]) > gmath.Zero &&
			orient2(pts[d], pts[b], pts[c]) > gmath.Zero {
			doFlip = true
		}
	}
	if !doFlip {
		return false
	}
	if orient2(pts[a], pts[d], pts[c]) <= gmath.Zero || orient2(pts[d], pts[b], pts[c]) <= gmath.Zero {
		return false
	}
	// flip: (a,b,c)+(b,a,d) -> (a,d,c)+(d,b,c)
	tA := adj[3*t+(k+1)%3] // b-c
	tB := adj[3*t+(k+2)%3] // c-a
	uA := adj[3*u+(ku+1)%3] // a-d
	uB := adj[3*u+(ku+2)%3] // d-b
	tris[3*t], tris[3*t+1], tris[3*t+2] = a, d, c
	tris[3*u], tris[3*u+1], tris[3*u+2] = d, b, c
	adj[3*t] = uA
	adj[3*t+1] = u
	adj[3*t+2] = tB
	adj[3*u] = uB
	adj[3*u+1] = tA
	adj[3*u+2] = t
	fixAdj(adj, uA, u, t)
	fixAdj(adj, tA, t, u)
	return true
}

func fixAdj(adj []int, tri, from, to int) {
	if tri == NoAdjacency {
		return
	}
	for j := 0; j < 3; j++ {
		if adj[3*tri+j] == from {
			adj[3*tri+j] = to
			return
		}
	}
}

func dist2(a, b gmath.Point2) float64 {
	du, dv := a.U-b.U, a.V-b.V
	return du*du + dv*dv
}
