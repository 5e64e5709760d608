// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

func buildOneFaceBody(t *Thing) (*Body, *Face, *Edge) {
	b := t.NewBody()
	v := t.NewVolume()
	b.AddVolume(t, v)

	zAxis := gmath.Vector3{X: 0, Y: 0, Z: 1}.MustUnit()
	srf := t.NewSurface(surface.NewCylinder(gmath.Point3{}, zAxis, 1, gmath.Interval1{Lo: 0, Hi: 2}))
	f := t.NewFace(srf)
	v.AddFace(t, f)

	crv := t.NewCurve(curve.NewCircle(gmath.Point3{}, zAxis, 1))
	e := t.NewEdge(crv, gmath.FullAngle)
	f.AddEdge(t, e, SideLeft)
	return b, f, e
}

func Test_ids_and_enumeration(tst *testing.T) {

	chk.PrintTitle("ids_and_enumeration")

	t := NewThing()
	b, f, e := buildOneFaceBody(t)

	if len(t.Bodies(true)) != 1 {
		tst.Errorf("expected one top-level body")
	}
	if len(t.Faces(false)) != 1 || t.Faces(false)[0].ID() != f.ID() {
		tst.Errorf("face enumeration wrong")
	}
	// every stored id resolves
	for _, ent := range []Entity{b, f, e} {
		got, ok := t.FindEntity(ent.ID())
		if !ok || got.ID() != ent.ID() {
			tst.Errorf("entity %d not found", ent.ID())
		}
	}
	// ids are strictly increasing
	if !(b.ID() < f.ID() && f.ID() < e.ID()) {
		tst.Errorf("ids not monotonic: %d %d %d", b.ID(), f.ID(), e.ID())
	}
}

func Test_delete_severs_backpointers(tst *testing.T) {

	chk.PrintTitle("delete_severs_backpointers")

	t := NewThing()
	_, f, e := buildOneFaceBody(t)

	t.DeleteEntity(f)
	if _, ok := t.FindEntity(f.ID()); ok {
		tst.Errorf("face still stored after delete")
	}
	// the edge had only this face and no wire volume: the thing deletes it
	if _, ok := t.FindEntity(e.ID()); ok {
		tst.Errorf("orphaned edge not cleaned up")
	}
}

func Test_clone_remaps_ids(tst *testing.T) {

	chk.PrintTitle("clone_remaps_ids")

	t := NewThing()
	b, _, _ := buildOneFaceBody(t)
	nb := CloneBody(t, b)

	if nb.ID() == b.ID() {
		tst.Errorf("clone did not get a fresh id")
	}
	if nb.VolumeIDs.Len() != b.VolumeIDs.Len() {
		tst.Errorf("clone volume count mismatch")
	}
	nv := nb.Volumes(t)[0]
	ov := b.Volumes(t)[0]
	if nv.ID() == ov.ID() {
		tst.Errorf("volume id not remapped")
	}
	if nv.FaceIDs.Len() != ov.FaceIDs.Len() {
		tst.Errorf("clone face count mismatch")
	}
	nf, of := nv.Faces(t)[0], ov.Faces(t)[0]
	if nf.SurfaceID == of.SurfaceID {
		tst.Errorf("surface shared instead of deep-copied")
	}
	// structural equality of the box after remap
	chk.Scalar(tst, "box", 1e-12, gmath.Distance(nf.Box(t).Center(), of.Box(t).Center()), 0)
}

func Test_transform_body(tst *testing.T) {

	chk.PrintTitle("transform_body")

	t := NewThing()
	b, f, _ := buildOneFaceBody(t)
	shift := gmath.Vector3{X: 10, Y: 0, Z: 0}
	TransformBody(t, b, gmath.Translation(shift))
	center := f.Box(t).Center()
	chk.Scalar(tst, "cx", 1e-9, center.X, 10)
}
