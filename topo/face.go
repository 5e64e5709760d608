// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

// EdgeSide records which side of an oriented edge a face lies on.
type EdgeSide int

const (
	SideLeft EdgeSide = iota
	SideRight
	SideBoth
)

func (s EdgeSide) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	case SideBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// Facets is the cached tessellation of a face: parameter-space points,
// model-space points, normals, triangle index triples, and per-point
// owning entity (the face itself, an incident edge, or a vertex).
type Facets struct {
	Points2D  []gmath.Point2
	Points3D  []gmath.Point3
	Normals   []gmath.UnitVector3
	Triangles []int
	Owner     []ID
}

// Empty reports whether no tessellation is cached.
func (f *Facets) Empty() bool { return len(f.Points3D) == 0 }

// Face is a bounded, oriented patch of a surface: it references its
// parent volume and surface entity, owns a set of edges with per-edge
// sides, and caches its tessellation.
type Face struct {
	base
	VolumeID  ID
	SurfaceID ID
	EdgeIDs   IDSet
	Sides     map[ID]EdgeSide

	// Flipped records whether the face's outward normal is the reverse of
	// the surface normal; NumSides is 1 for a solid boundary face, 2 for a
	// sheet face.
	Flipped  bool
	NumSides int

	facets Facets
}

// NewFace creates a face over the given surface entity.
func (t *Thing) NewFace(srf *SurfaceEnt) *Face {
	f := &Face{base: base{id: t.NewID()}, SurfaceID: srf.id, Sides: make(map[ID]EdgeSide), NumSides: 1}
	srf.owners.Add(f.id)
	t.insert(f)
	return f
}

func (f *Face) Kind() Kind { return KindFace }

// Volume returns the parent volume, or nil for a top-level face.
func (f *Face) Volume(t *Thing) *Volume {
	if f.VolumeID == 0 {
		return nil
	}
	return t.mustFind(f.VolumeID).(*Volume)
}

// Surface returns the face's geometry.
func (f *Face) Surface(t *Thing) surface.Surface {
	return t.mustFind(f.SurfaceID).(*SurfaceEnt).Geom
}

// AddEdge links e into f on the given side, keeping the edge-side map a
// bijection over the face's edges (invariant 3).
func (f *Face) AddEdge(t *Thing, e *Edge, side EdgeSide) {
	f.EdgeIDs.Add(e.id)
	f.Sides[e.id] = side
	e.FaceIDs.Add(f.id)
	e.owners.Add(f.id)
	f.ClearFacets()
	if f.VolumeID != 0 {
		if v, ok := t.entities[f.VolumeID].(*Volume); ok {
			v.tree.invalidate()
		}
	}
	t.InvalidateBox()
}

// Edges returns the face's edges in id order.
func (f *Face) Edges(t *Thing) []*Edge {
	ids := f.EdgeIDs.Sorted()
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = t.mustFind(id).(*Edge)
	}
	return out
}

// SideOf returns which side of e the face lies on; fatal if e is not one
// of the face's edges.
func (f *Face) SideOf(e *Edge) EdgeSide {
	s, ok := f.Sides[e.id]
	if !ok {
		chk.Panic("topo: model corrupt: edge %d is not on face %d", e.id, f.id)
	}
	return s
}

// Facets returns the cached tessellation (possibly empty; the facetor
// fills it).
func (f *Face) Facets() *Facets { return &f.facets }

// SetFacets stores a tessellation on the face.
func (f *Face) SetFacets(facets Facets) { f.facets = facets }

// ClearFacets drops the cached tessellation.
func (f *Face) ClearFacets() { f.facets = Facets{} }

func (f *Face) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	for _, e := range f.Edges(t) {
		box = box.Union(e.Box(t))
	}
	if !box.IsEmpty() {
		return box
	}
	// an edgeless face (full sphere, full torus) is bounded by samples of
	// its surface over the whole domain
	srf := f.Surface(t)
	dom := srf.Domain()
	const n = 8
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			u := dom.U.Lo + dom.U.Length()*float64(i)/n
			v := dom.V.Lo + dom.V.Length()*float64(j)/n
			box = box.Extend(srf.Evaluate(u, v).Pos)
		}
	}
	return box
}

func (f *Face) sever(t *Thing) {
	for _, id := range f.EdgeIDs.Sorted() {
		if e, ok := t.entities[id].(*Edge); ok {
			e.FaceIDs.Remove(f.id)
			e.owners.Remove(f.id)
		}
	}
	if srf, ok := t.entities[f.SurfaceID]; ok {
		srf.Owners().Remove(f.id)
	}
	for _, id := range f.owners.Sorted() {
		if e, ok := t.entities[id]; ok {
			if v, isVol := e.(*Volume); isVol {
				v.FaceIDs.Remove(f.id)
				v.tree.invalidate()
			}
			e.Owners().Remove(f.id)
		}
	}
}
