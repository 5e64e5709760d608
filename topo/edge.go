// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
)

// Edge is a bounded arc of a curve joining at most two vertices. It
// belongs either to one or two faces or, as a wire edge, directly to a
// volume; the thing deletes a non-wire edge when its last face is deleted.
type Edge struct {
	base
	CurveID  ID
	StartID  ID // 0 when the edge is closed or unbounded
	EndID    ID
	VolumeID ID // nonzero only for wire edges
	FaceIDs  IDSet

	Dom gmath.Interval1
	Tol float64

	// cached polyline from the facetor
	facetParams []float64
	facetPoints []gmath.Point3
}

// NewEdge creates an edge over the given curve entity spanning dom.
func (t *Thing) NewEdge(crv *CurveEnt, dom gmath.Interval1) *Edge {
	e := &Edge{base: base{id: t.NewID()}, CurveID: crv.id, Dom: dom, Tol: gmath.MinTol}
	crv.owners.Add(e.id)
	t.insert(e)
	return e
}

func (e *Edge) Kind() Kind { return KindEdge }

// Curve returns the edge's geometry.
func (e *Edge) Curve(t *Thing) curve.Curve {
	return t.mustFind(e.CurveID).(*CurveEnt).Geom
}

// SetVertices attaches start/end vertices (either may be nil for a
// closed edge) and records the edge on them.
func (e *Edge) SetVertices(t *Thing, start, end *Vertex) {
	if start != nil {
		e.StartID = start.id
		start.EdgeIDs.Add(e.id)
		start.owners.Add(e.id)
	}
	if end != nil {
		e.EndID = end.id
		end.EdgeIDs.Add(e.id)
		end.owners.Add(e.id)
	}
}

// Start returns the start vertex or nil.
func (e *Edge) Start(t *Thing) *Vertex {
	if e.StartID == 0 {
		return nil
	}
	return t.mustFind(e.StartID).(*Vertex)
}

// End returns the end vertex or nil.
func (e *Edge) End(t *Thing) *Vertex {
	if e.EndID == 0 {
		return nil
	}
	return t.mustFind(e.EndID).(*Vertex)
}

// Faces returns the faces using this edge, in id order.
func (e *Edge) Faces(t *Thing) []*Face {
	ids := e.FaceIDs.Sorted()
	out := make([]*Face, len(ids))
	for i, id := range ids {
		out[i] = t.mustFind(id).(*Face)
	}
	return out
}

// IsClosed reports whether the edge's ends meet (start == end, possibly
// both absent on a full closed curve).
func (e *Edge) IsClosed() bool {
	return e.StartID == e.EndID
}

// Facets returns the cached polyline (params and points), or empty
// slices when nothing is cached.
func (e *Edge) Facets() (params []float64, points []gmath.Point3) {
	return e.facetParams, e.facetPoints
}

// SetFacets stores the edge's polyline.
func (e *Edge) SetFacets(params []float64, points []gmath.Point3) {
	e.facetParams, e.facetPoints = params, points
}

// ClearFacets drops the cached polyline.
func (e *Edge) ClearFacets() { e.facetParams, e.facetPoints = nil, nil }

func (e *Edge) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	c := e.Curve(t)
	const n = 16
	for i := 0; i <= n; i++ {
		u := e.Dom.Lo + e.Dom.Length()*float64(i)/n
		box = box.Extend(curve.Evaluate0(c, u))
	}
	return box.Inflate(e.Tol)
}

func (e *Edge) sever(t *Thing) {
	for _, id := range []ID{e.StartID, e.EndID} {
		if id == 0 {
			continue
		}
		if v, ok := t.entities[id].(*Vertex); ok {
			v.EdgeIDs.Remove(e.id)
			v.owners.Remove(e.id)
		}
	}
	if c, ok := t.entities[e.CurveID]; ok {
		c.Owners().Remove(e.id)
	}
	for _, id := range e.FaceIDs.Sorted() {
		if f, ok := t.entities[id].(*Face); ok {
			f.EdgeIDs.Remove(e.id)
			delete(f.Sides, e.id)
			f.ClearFacets()
		}
	}
	if e.VolumeID != 0 {
		if v, ok := t.entities[e.VolumeID].(*Volume); ok {
			v.WireEdgeIDs.Remove(e.id)
		}
	}
	for _, id := range e.owners.Sorted() {
		if ent, ok := t.entities[id]; ok {
			ent.Owners().Remove(e.id)
		}
	}
}

// Vertex is a 3D point plus the set of edges meeting there.
type Vertex struct {
	base
	Pos     gmath.Point3
	EdgeIDs IDSet
}

// NewVertex creates a vertex at pos.
func (t *Thing) NewVertex(pos gmath.Point3) *Vertex {
	v := &Vertex{base: base{id: t.NewID()}, Pos: pos}
	t.insert(v)
	return v
}

func (v *Vertex) Kind() Kind { return KindVertex }

// Edges returns the edges meeting at v, in id order.
func (v *Vertex) Edges(t *Thing) []*Edge {
	ids := v.EdgeIDs.Sorted()
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = t.mustFind(id).(*Edge)
	}
	return out
}

func (v *Vertex) Box(t *Thing) gmath.Box3 {
	return gmath.Box3{Min: v.Pos, Max: v.Pos}
}

func (v *Vertex) sever(t *Thing) {
	for _, id := range v.EdgeIDs.Sorted() {
		if e, ok := t.entities[id].(*Edge); ok {
			if e.StartID == v.id {
				e.StartID = 0
			}
			if e.EndID == v.id {
				e.EndID = 0
			}
		}
	}
	for _, id := range v.owners.Sorted() {
		if ent, ok := t.entities[id]; ok {
			ent.Owners().Remove(v.id)
		}
	}
}
