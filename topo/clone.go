// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

// CloneBody deep-copies a body and everything reachable below it (its
// volumes, faces, edges, vertices and geometry) in two passes: first each
// entity is copied under a fresh id while an old-to-new id map is built,
// then every internal reference is remapped through that map. Mapping is
// total: encountering an unmapped reference is a corruption, not a
// fall-through.
func CloneBody(t *Thing, b *Body) *Body {
	idmap := make(map[ID]ID)

	// pass 1: copy entities, record id mapping
	nb := t.NewBody()
	idmap[b.id] = nb.id
	nb.ConstructionPoints = append([]gmath.Point3{}, b.ConstructionPoints...)

	copyGeomCurve := func(id ID) {
		if _, done := idmap[id]; done {
			return
		}
		old := t.mustFind(id).(*CurveEnt)
		idmap[id] = t.NewCurve(old.Geom.Clone()).id
	}
	copyGeomSurface := func(id ID) {
		if _, done := idmap[id]; done {
			return
		}
		old := t.mustFind(id).(*SurfaceEnt)
		idmap[id] = t.NewSurface(old.Geom.Clone()).id
	}
	copyVertex := func(id ID) {
		if _, done := idmap[id]; done {
			return
		}
		old := t.mustFind(id).(*Vertex)
		idmap[id] = t.NewVertex(old.Pos).id
	}
	copyEdge := func(id ID) {
		if _, done := idmap[id]; done {
			return
		}
		old := t.mustFind(id).(*Edge)
		copyGeomCurve(old.CurveID)
		ne := t.NewEdge(t.mustFind(idmap[old.CurveID]).(*CurveEnt), old.Dom)
		ne.Tol = old.Tol
		idmap[id] = ne.id
		if old.StartID != 0 {
			copyVertex(old.StartID)
		}
		if old.EndID != 0 {
			copyVertex(old.EndID)
		}
	}

	for _, v := range b.Volumes(t) {
		nv := t.NewVolume()
		idmap[v.id] = nv.id
		nb.AddVolume(t, nv)
		for _, f := range v.Faces(t) {
			copyGeomSurface(f.SurfaceID)
			nf := t.NewFace(t.mustFind(idmap[f.SurfaceID]).(*SurfaceEnt))
			nf.Flipped = f.Flipped
			nf.NumSides = f.NumSides
			idmap[f.id] = nf.id
			nv.AddFace(t, nf)
			for _, eid := range f.EdgeIDs.Sorted() {
				copyEdge(eid)
			}
		}
		for _, e := range v.WireEdges(t) {
			copyEdge(e.id)
		}
	}

	// pass 2: remap the references the first pass could not resolve yet
	remap := func(id ID) ID {
		nid, ok := idmap[id]
		if !ok {
			chk.Panic("topo: clone: id %d reachable from body %d was never copied", id, b.id)
		}
		return nid
	}
	for _, v := range b.Volumes(t) {
		nv := t.mustFind(remap(v.id)).(*Volume)
		for _, f := range v.Faces(t) {
			nf := t.mustFind(remap(f.id)).(*Face)
			for _, eid := range f.EdgeIDs.Sorted() {
				ne := t.mustFind(remap(eid)).(*Edge)
				nf.AddEdge(t, ne, f.Sides[eid])
			}
		}
		for _, e := range v.WireEdges(t) {
			nv.AddWireEdge(t, t.mustFind(remap(e.id)).(*Edge))
		}
	}
	// vertex hookup after all edges exist
	for oldID, newID := range idmap {
		oe, ok := t.mustFind(oldID).(*Edge)
		if !ok {
			continue
		}
		ne := t.mustFind(newID).(*Edge)
		var start, end *Vertex
		if oe.StartID != 0 {
			start = t.mustFind(remap(oe.StartID)).(*Vertex)
		}
		if oe.EndID != 0 {
			end = t.mustFind(remap(oe.EndID)).(*Vertex)
		}
		ne.SetVertices(t, start, end)
	}
	return nb
}

// TransformBody applies trans to every piece of geometry reachable from
// b: surfaces, curves, vertex positions and cached construction points.
// Tessellation caches are dropped since their points are stale.
func TransformBody(t *Thing, b *Body, trans gmath.Transform3) {
	doneCurves := make(map[ID]bool)
	doneSurfs := make(map[ID]bool)
	doneVerts := make(map[ID]bool)
	for _, v := range b.Volumes(t) {
		for _, f := range v.Faces(t) {
			if !doneSurfs[f.SurfaceID] {
				srf := t.mustFind(f.SurfaceID).(*SurfaceEnt)
				srf.Geom = srf.Geom.Transform(trans)
				doneSurfs[f.SurfaceID] = true
			}
			f.ClearFacets()
			for _, e := range f.Edges(t) {
				transformEdge(t, e, trans, doneCurves, doneVerts)
			}
		}
		for _, e := range v.WireEdges(t) {
			transformEdge(t, e, trans, doneCurves, doneVerts)
		}
		v.tree.invalidate()
	}
	for i, p := range b.ConstructionPoints {
		b.ConstructionPoints[i] = trans.Point(p)
	}
	t.InvalidateBox()
}

// TransformEntity applies trans to any transformable entity kind.
func TransformEntity(t *Thing, e Entity, trans gmath.Transform3) {
	switch ent := e.(type) {
	case *Body:
		TransformBody(t, ent, trans)
	case *Complex:
		for i, p := range ent.Points {
			ent.Points[i] = trans.Point(p)
		}
		ent.tree.invalidate()
		t.InvalidateBox()
	case *Vertex:
		ent.Pos = trans.Point(ent.Pos)
		t.InvalidateBox()
	case *Edge:
		transformEdge(t, ent, trans, map[ID]bool{}, map[ID]bool{})
		t.InvalidateBox()
	case *CurveEnt:
		ent.Geom = ent.Geom.Transform(trans)
		t.InvalidateBox()
	case *SurfaceEnt:
		ent.Geom = ent.Geom.Transform(trans)
		t.InvalidateBox()
	default:
		chk.Panic("topo: cannot transform entity %d of kind %s in isolation", e.ID(), e.Kind())
	}
}

func transformEdge(t *Thing, e *Edge, trans gmath.Transform3, doneCurves, doneVerts map[ID]bool) {
	if !doneCurves[e.CurveID] {
		crv := t.mustFind(e.CurveID).(*CurveEnt)
		crv.Geom = crv.Geom.Transform(trans)
		doneCurves[e.CurveID] = true
	}
	e.ClearFacets()
	for _, vid := range []ID{e.StartID, e.EndID} {
		if vid == 0 || doneVerts[vid] {
			continue
		}
		v := t.mustFind(vid).(*Vertex)
		v.Pos = trans.Point(v.Pos)
		doneVerts[vid] = true
	}
}
