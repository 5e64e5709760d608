// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"sync/atomic"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

// Thing owns every entity of one model: it assigns ids, indexes by id,
// enumerates by kind, and deletes. A Thing is single-threaded; distinct
// Things are independent and may be used in parallel.
type Thing struct {
	nextID   ID
	entities map[ID]Entity

	box      gmath.Box3
	boxValid bool
}

// NewThing creates an empty model.
func NewThing() *Thing {
	return &Thing{entities: make(map[ID]Entity)}
}

// lastID is the process-wide id counter shared by every Thing.
var lastID int64

// NewID hands out the next monotonic id; ids are unique across all
// Things in the process.
func (t *Thing) NewID() ID {
	t.nextID = ID(atomic.AddInt64(&lastID, 1))
	return t.nextID
}

func (t *Thing) insert(e Entity) {
	t.entities[e.ID()], t.boxValid = e, false
}

// FindEntity looks an entity up by id; the second result reports whether
// the id is live.
func (t *Thing) FindEntity(id ID) (Entity, bool) {
	e, ok := t.entities[id]
	return e, ok
}

// mustFind is for internal invariant chasing: a stored id that does not
// resolve means the model is corrupt, which is fatal.
func (t *Thing) mustFind(id ID) Entity {
	e, ok := t.entities[id]
	if !ok {
		chk.Panic("topo: model corrupt: entity %d referenced but not stored", id)
	}
	return e
}

// DeleteEntity removes e from the model: e severs its outgoing relations,
// peers drop their back-pointers to it, and the id is unmapped. Deleting
// a face also deletes those of its edges that no other face references
// and that are not wire edges, since the thing is their ultimate owner;
// no other deletion removes edges.
func (t *Thing) DeleteEntity(e Entity) {
	if _, ok := t.entities[e.ID()]; !ok {
		return
	}
	var orphans []ID
	if f, ok := e.(*Face); ok {
		for _, eid := range f.EdgeIDs.Sorted() {
			if ed, ok := t.entities[eid].(*Edge); ok {
				if ed.FaceIDs.Len() == 1 && ed.FaceIDs.Has(f.id) && ed.VolumeID == 0 {
					orphans = append(orphans, eid)
				}
			}
		}
	}
	e.sever(t)
	delete(t.entities, e.ID())
	t.boxValid = false
	for _, id := range orphans {
		if ed, ok := t.entities[id]; ok {
			t.DeleteEntity(ed)
		}
	}
}

// enumerate collects all entities of one kind in id order, optionally
// only those with no owner.
func (t *Thing) enumerate(k Kind, topLevelOnly bool, visit func(Entity)) {
	ids := make([]ID, 0, len(t.entities))
	for id, e := range t.entities {
		if e.Kind() != k {
			continue
		}
		if topLevelOnly && e.Owners().Len() > 0 {
			continue
		}
		ids = append(ids, id)
	}
	sortIDs(ids)
	for _, id := range ids {
		visit(t.entities[id])
	}
}

func sortIDs(ids []ID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// Bodies returns all bodies in id order; topLevelOnly keeps only those
// with no owner.
func (t *Thing) Bodies(topLevelOnly bool) []*Body {
	var out []*Body
	t.enumerate(KindBody, topLevelOnly, func(e Entity) { out = append(out, e.(*Body)) })
	return out
}

func (t *Thing) Volumes(topLevelOnly bool) []*Volume {
	var out []*Volume
	t.enumerate(KindVolume, topLevelOnly, func(e Entity) { out = append(out, e.(*Volume)) })
	return out
}

func (t *Thing) Faces(topLevelOnly bool) []*Face {
	var out []*Face
	t.enumerate(KindFace, topLevelOnly, func(e Entity) { out = append(out, e.(*Face)) })
	return out
}

func (t *Thing) Edges(topLevelOnly bool) []*Edge {
	var out []*Edge
	t.enumerate(KindEdge, topLevelOnly, func(e Entity) { out = append(out, e.(*Edge)) })
	return out
}

func (t *Thing) Vertices(topLevelOnly bool) []*Vertex {
	var out []*Vertex
	t.enumerate(KindVertex, topLevelOnly, func(e Entity) { out = append(out, e.(*Vertex)) })
	return out
}

func (t *Thing) Complexes(topLevelOnly bool) []*Complex {
	var out []*Complex
	t.enumerate(KindComplex, topLevelOnly, func(e Entity) { out = append(out, e.(*Complex)) })
	return out
}

func (t *Thing) Curves(topLevelOnly bool) []*CurveEnt {
	var out []*CurveEnt
	t.enumerate(KindCurve, topLevelOnly, func(e Entity) { out = append(out, e.(*CurveEnt)) })
	return out
}

func (t *Thing) Surfaces(topLevelOnly bool) []*SurfaceEnt {
	var out []*SurfaceEnt
	t.enumerate(KindSurface, topLevelOnly, func(e Entity) { out = append(out, e.(*SurfaceEnt)) })
	return out
}

// Box returns the global bounding box of all top-level bodies and
// complexes, cached until the next create/delete.
func (t *Thing) Box() gmath.Box3 {
	if t.boxValid {
		return t.box
	}
	box := gmath.EmptyBox3()
	for _, b := range t.Bodies(true) {
		box = box.Union(b.Box(t))
	}
	for _, c := range t.Complexes(true) {
		box = box.Union(c.Box(t))
	}
	t.box, t.boxValid = box, true
	return box
}

// InvalidateBox drops the cached global box; entity mutators call this
// after changing geometry in place.
func (t *Thing) InvalidateBox() { t.boxValid = false }
