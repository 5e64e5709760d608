// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

// CurveEnt wraps a parametric curve as a stored entity so edges can
// share it by id. Geometry never owns topology; its owner set lists the
// edges referencing it.
type CurveEnt struct {
	base
	Geom curve.Curve
}

// NewCurve stores a curve as an entity.
func (t *Thing) NewCurve(geom curve.Curve) *CurveEnt {
	c := &CurveEnt{base: base{id: t.NewID()}, Geom: geom}
	t.insert(c)
	return c
}

func (c *CurveEnt) Kind() Kind { return KindCurve }

func (c *CurveEnt) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	dom := c.Geom.Domain()
	if dom.Length() > 1e9 {
		// unbounded line: no finite box of its own; edges bound it
		return box
	}
	const n = 16
	for i := 0; i <= n; i++ {
		u := dom.Lo + dom.Length()*float64(i)/n
		box = box.Extend(curve.Evaluate0(c.Geom, u))
	}
	return box
}

func (c *CurveEnt) sever(t *Thing) {
	for _, id := range c.owners.Sorted() {
		if e, ok := t.entities[id]; ok {
			e.Owners().Remove(c.id)
		}
	}
}

// SurfaceEnt wraps a parametric surface as a stored entity shared by
// faces.
type SurfaceEnt struct {
	base
	Geom surface.Surface
}

// NewSurface stores a surface as an entity.
func (t *Thing) NewSurface(geom surface.Surface) *SurfaceEnt {
	s := &SurfaceEnt{base: base{id: t.NewID()}, Geom: geom}
	t.insert(s)
	return s
}

func (s *SurfaceEnt) Kind() Kind { return KindSurface }

func (s *SurfaceEnt) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	dom := s.Geom.Domain()
	if dom.U.Length() > 1e9 || dom.V.Length() > 1e9 {
		return box
	}
	const n = 8
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			u := dom.U.Lo + dom.U.Length()*float64(i)/n
			v := dom.V.Lo + dom.V.Length()*float64(j)/n
			box = box.Extend(s.Geom.Evaluate(u, v).Pos)
		}
	}
	return box
}

func (s *SurfaceEnt) sever(t *Thing) {
	for _, id := range s.owners.Sorted() {
		if e, ok := t.entities[id]; ok {
			e.Owners().Remove(s.id)
		}
	}
}
