// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/sgm/boxtree"
	"github.com/cpmech/sgm/gmath"
)

// Complex is an unstructured bag of 3D points with index lists for
// segments (pairs) and triangles (triples): polylines, triangle soups,
// imported meshes. It keeps its own bounding-box tree over triangles for
// ray-fire.
type Complex struct {
	base
	Points    []gmath.Point3
	Segments  []int
	Triangles []int

	tree treeCache
}

// NewComplex creates a complex from points plus segment and triangle
// index lists (either may be empty).
func (t *Thing) NewComplex(points []gmath.Point3, segments, triangles []int) *Complex {
	c := &Complex{
		base:      base{id: t.NewID()},
		Points:    append([]gmath.Point3{}, points...),
		Segments:  append([]int{}, segments...),
		Triangles: append([]int{}, triangles...),
	}
	t.insert(c)
	return c
}

func (c *Complex) Kind() Kind { return KindComplex }

// Triangle returns the i-th triangle's corner points.
func (c *Complex) Triangle(i int) (a, b, p gmath.Point3) {
	return c.Points[c.Triangles[3*i]], c.Points[c.Triangles[3*i+1]], c.Points[c.Triangles[3*i+2]]
}

// NumTriangles returns the triangle count.
func (c *Complex) NumTriangles() int { return len(c.Triangles) / 3 }

// TriangleTree returns the lazily built tree whose keys are triangle
// indices.
func (c *Complex) TriangleTree() *boxtree.Tree {
	return c.tree.get(func() *boxtree.Tree {
		items := make([]boxtree.Item, 0, c.NumTriangles())
		for i := 0; i < c.NumTriangles(); i++ {
			a, b, p := c.Triangle(i)
			box := gmath.EmptyBox3().Extend(a).Extend(b).Extend(p)
			items = append(items, boxtree.Item{Key: int64(i), Box: box})
		}
		return boxtree.Build(items)
	})
}

func (c *Complex) Box(t *Thing) gmath.Box3 {
	box := gmath.EmptyBox3()
	for _, p := range c.Points {
		box = box.Extend(p)
	}
	return box
}

func (c *Complex) sever(t *Thing) {
	for _, id := range c.owners.Sorted() {
		if e, ok := t.entities[id]; ok {
			e.Owners().Remove(c.id)
		}
	}
}
