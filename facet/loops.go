// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package facet

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/topo"
)

// loopNode is one polyline node of an assembled face loop: parameter
// point, model point, and the entity (edge or vertex) the node belongs
// to.
type loopNode struct {
	uv    gmath.Point2
	pos   gmath.Point3
	owner topo.ID
}

// orientedEdge is one edge of a loop with its traversal direction.
type orientedEdge struct {
	edge    *topo.Edge
	forward bool
}

// FindLoops partitions the face's edges into connected components of the
// vertex-adjacency graph and orders each component into a cyclic
// sequence respecting the face's edge-side map, returning each loop as
// parameter-space polyline nodes with owner attribution. The loops keep
// material on the left: the outer loop comes out counter-clockwise in
// parameter space, holes clockwise.
func FindLoops(t *topo.Thing, f *topo.Face, opts Options) [][]loopNode {
	edges := f.Edges(t)
	if len(edges) == 0 {
		return nil
	}
	remaining := make(map[topo.ID]*topo.Edge, len(edges))
	for _, e := range edges {
		remaining[e.ID()] = e
	}

	var loops [][]loopNode
	for _, e := range edges {
		if _, ok := remaining[e.ID()]; !ok {
			continue
		}
		chain := chainFrom(t, f, e, remaining)
		loops = append(loops, loopPolyline(t, f, chain, opts))
	}
	return loops
}

// chainFrom orders one connected component into a cycle starting at e.
func chainFrom(t *topo.Thing, f *topo.Face, e *topo.Edge, remaining map[topo.ID]*topo.Edge) []orientedEdge {
	forward := f.SideOf(e) != topo.SideRight
	chain := []orientedEdge{{edge: e, forward: forward}}
	delete(remaining, e.ID())

	endVertex := func(oe orientedEdge) topo.ID {
		if oe.forward {
			return oe.edge.EndID
		}
		return oe.edge.StartID
	}
	startVertex := func(oe orientedEdge) topo.ID {
		if oe.forward {
			return oe.edge.StartID
		}
		return oe.edge.EndID
	}

	first := startVertex(chain[0])
	for {
		tail := endVertex(chain[len(chain)-1])
		if tail == 0 || tail == first {
			break // closed (a full closed edge has no vertices at all)
		}
		var next *topo.Edge
		nextForward := true
		for _, id := range sortedEdgeIDs(remaining) {
			cand := remaining[id]
			if cand.StartID == tail {
				next, nextForward = cand, true
				break
			}
			if cand.EndID == tail {
				next, nextForward = cand, false
				break
			}
		}
		if next == nil {
			chk.Panic("facet: face %d boundary is not a cycle at vertex %d", f.ID(), tail)
		}
		chain = append(chain, orientedEdge{edge: next, forward: nextForward})
		delete(remaining, next.ID())
	}
	return chain
}

// loopPolyline concatenates the facetted edges of a chain into one
// closed polyline of parameter-space nodes, inverting each model point
// onto the surface with the previous node's parameter as the seam guess
// so the loop unwraps continuously across closed directions.
func loopPolyline(t *topo.Thing, f *topo.Face, chain []orientedEdge, opts Options) []loopNode {
	srf := f.Surface(t)
	var nodes []loopNode
	var guess gmath.Point2
	hasGuess := false
	for _, oe := range chain {
		params, pts := FacetEdge(t, oe.edge, opts)
		n := len(params)
		for k := 0; k < n; k++ {
			idx := k
			if !oe.forward {
				idx = n - 1 - k
			}
			pos := pts[idx]
			// skip the duplicated joint between consecutive edges
			if len(nodes) > 0 && gmath.Distance(nodes[len(nodes)-1].pos, pos) < gmath.MinTol {
				continue
			}
			uv, _ := srf.Inverse(pos, hasGuess, guess)
			guess, hasGuess = uv, true
			owner := oe.edge.ID()
			nodes = append(nodes, loopNode{uv: uv, pos: pos, owner: owner})
		}
	}
	// drop a duplicated closing node
	if len(nodes) > 1 && gmath.Distance(nodes[0].pos, nodes[len(nodes)-1].pos) < gmath.MinTol &&
		math.Abs(nodes[0].uv.U-nodes[len(nodes)-1].uv.U) < gmath.MinTol &&
		math.Abs(nodes[0].uv.V-nodes[len(nodes)-1].uv.V) < gmath.MinTol {
		nodes = nodes[:len(nodes)-1]
	}
	// vertex ownership on nodes coinciding with edge endpoints
	for _, oe := range chain {
		for _, vid := range []topo.ID{oe.edge.StartID, oe.edge.EndID} {
			if vid == 0 {
				continue
			}
			v := vertexOf(t, vid)
			for i := range nodes {
				if gmath.DistanceSq(nodes[i].pos, v.Pos) < oe.edge.Tol*oe.edge.Tol {
					nodes[i].owner = vid
				}
			}
		}
	}
	return nodes
}

// sortedEdgeIDs keeps chaining deterministic: candidates are tried in id
// order, matching EntityCompare everywhere else.
func sortedEdgeIDs(m map[topo.ID]*topo.Edge) []topo.ID {
	ids := make([]topo.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

func vertexOf(t *topo.Thing, id topo.ID) *topo.Vertex {
	e, ok := t.FindEntity(id)
	if !ok {
		chk.Panic("facet: model corrupt: vertex %d missing", id)
	}
	return e.(*topo.Vertex)
}
