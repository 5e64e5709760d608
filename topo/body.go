// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/sgm/boxtree"
	"github.com/cpmech/sgm/gmath"
)

// Body owns a set of volumes and remembers the points it was constructed
// from (e.g. the two corners of a block), which diagnostics and rebuild
// tooling read back.
type Body struct {
	base
	VolumeIDs          IDSet
	ConstructionPoints []gmath.Point3
}

// NewBody creates an empty body in t.
func (t *Thing) NewBody() *Body {
	b := &Body{base: base{id: t.NewID()}}
	t.insert(b)
	return b
}

func (b *Body) Kind() Kind { return KindBody }

// AddVolume links v into b (both directions).
func (b *Body) AddVolume(t *Thing, v *Volume) {
	b.VolumeIDs.Add(v.id)
	v.BodyID = b.id
	v.owners.Add(b.id)
	t.InvalidateBox()
}

// Volumes returns the body's volumes in id order.
func (b *Body) Volumes(t *Thing) []*Volume {
	ids := b.VolumeIDs.Sorted()
	out := make([]*Volume, len(ids))
	for i, id := range ids {
		out[i] = t.mustFind(id).(*Volume)
	}
	return out
}

func (b *Body) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	for _, v := range b.Volumes(t) {
		box = box.Union(v.Box(t))
	}
	return box
}

func (b *Body) sever(t *Thing) {
	for _, id := range b.VolumeIDs.Sorted() {
		if v, ok := t.entities[id].(*Volume); ok {
			v.owners.Remove(b.id)
			if v.BodyID == b.id {
				v.BodyID = 0
			}
		}
	}
	for _, id := range b.owners.Sorted() {
		if e, ok := t.entities[id]; ok {
			e.Owners().Remove(b.id)
		}
	}
}

// Volume owns a set of faces and a set of wire edges, references its
// parent body, and maintains a bounding-box tree over its faces for
// ray-fire candidate queries.
type Volume struct {
	base
	BodyID      ID
	FaceIDs     IDSet
	WireEdgeIDs IDSet

	tree treeCache
}

// NewVolume creates an empty volume in t.
func (t *Thing) NewVolume() *Volume {
	v := &Volume{base: base{id: t.NewID()}}
	t.insert(v)
	return v
}

func (v *Volume) Kind() Kind { return KindVolume }

// Body returns the parent body, or nil for a top-level volume.
func (v *Volume) Body(t *Thing) *Body {
	if v.BodyID == 0 {
		return nil
	}
	return t.mustFind(v.BodyID).(*Body)
}

// AddFace links f into v (both directions) and invalidates the face tree.
func (v *Volume) AddFace(t *Thing, f *Face) {
	v.FaceIDs.Add(f.id)
	f.VolumeID = v.id
	f.owners.Add(v.id)
	v.tree.invalidate()
	t.InvalidateBox()
}

// AddWireEdge links a wire edge into v.
func (v *Volume) AddWireEdge(t *Thing, e *Edge) {
	v.WireEdgeIDs.Add(e.id)
	e.VolumeID = v.id
	e.owners.Add(v.id)
	t.InvalidateBox()
}

// Faces returns the volume's faces in id order.
func (v *Volume) Faces(t *Thing) []*Face {
	ids := v.FaceIDs.Sorted()
	out := make([]*Face, len(ids))
	for i, id := range ids {
		out[i] = t.mustFind(id).(*Face)
	}
	return out
}

// WireEdges returns the volume's wire edges in id order.
func (v *Volume) WireEdges(t *Thing) []*Edge {
	ids := v.WireEdgeIDs.Sorted()
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = t.mustFind(id).(*Edge)
	}
	return out
}

// FaceTree returns the lazily rebuilt bounding-box tree whose items are
// the volume's face ids (invariant 4: tree contents equal the face set).
func (v *Volume) FaceTree(t *Thing) *boxtree.Tree {
	return v.tree.get(func() *boxtree.Tree {
		items := make([]boxtree.Item, 0, v.FaceIDs.Len())
		for _, id := range v.FaceIDs.Sorted() {
			items = append(items, boxtree.Item{Key: int64(id), Box: t.mustFind(id).Box(t)})
		}
		return boxtree.Build(items)
	})
}

func (v *Volume) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	for _, f := range v.Faces(t) {
		box = box.Union(f.Box(t))
	}
	for _, e := range v.WireEdges(t) {
		box = box.Union(e.Box(t))
	}
	return box
}

func (v *Volume) sever(t *Thing) {
	for _, id := range v.FaceIDs.Sorted() {
		if f, ok := t.entities[id].(*Face); ok {
			f.owners.Remove(v.id)
			if f.VolumeID == v.id {
				f.VolumeID = 0
			}
		}
	}
	for _, id := range v.WireEdgeIDs.Sorted() {
		if e, ok := t.entities[id].(*Edge); ok {
			e.owners.Remove(v.id)
			if e.VolumeID == v.id {
				e.VolumeID = 0
			}
		}
	}
	for _, id := range v.owners.Sorted() {
		if e, ok := t.entities[id]; ok {
			if b, isBody := e.(*Body); isBody {
				b.VolumeIDs.Remove(v.id)
			}
			e.Owners().Remove(v.id)
		}
	}
}
