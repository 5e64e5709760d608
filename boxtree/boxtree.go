// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boxtree implements the small 3D bounding-box tree the topology
// store keeps per volume (its faces) and per complex (its triangles), and
// that ray_fire queries for candidate hits. Items are opaque int64 keys
// (entity ids or triangle indices) with axis-aligned boxes; the tree is a
// median-split BVH rebuilt from scratch on topology change, which is fine
// because rebuilds are rare and queries dominate.
package boxtree

import (
	"sort"

	"github.com/cpmech/sgm/gmath"
)

// Item is one (key, box) pair stored in the tree.
type Item struct {
	Key int64
	Box gmath.Box3
}

type node struct {
	box         gmath.Box3
	left, right int // child node indices, -1 for leaf
	first, num  int // leaf: range into items
}

// Tree is an immutable BVH over a set of items.
type Tree struct {
	items []Item
	nodes []node
}

const leafSize = 4

// Build constructs a tree over items. The input slice is copied; callers
// may reuse it. Items are first normalized to key order, then laid out
// along the Morton order of their box centers, so halving the ordered
// range yields spatially coherent subtrees without per-node sorting and
// the tree is identical for equal inputs regardless of caller ordering.
func Build(items []Item) *Tree {
	cp := append([]Item{}, items...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Key < cp[j].Key })
	if len(cp) > 1 {
		centers := make([]gmath.Point3, len(cp))
		for i, it := range cp {
			centers[i] = it.Box.Center()
		}
		ordered := make([]Item, len(cp))
		for i, ip := range gmath.OrderPoints(centers) {
			ordered[i] = cp[ip.Index]
		}
		cp = ordered
	}
	t := &Tree{items: cp}
	if len(cp) > 0 {
		t.build(0, len(cp))
	}
	return t
}

func (t *Tree) build(first, num int) int {
	box := gmath.EmptyBox3()
	for i := first; i < first+num; i++ {
		box = box.Union(t.items[i].Box)
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{box: box, left: -1, right: -1, first: first, num: num})
	if num <= leafSize {
		return idx
	}
	// the Morton layout makes a plain range halving a spatial split
	half := num / 2
	left := t.build(first, half)
	right := t.build(first+half, num-half)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	t.nodes[idx].num = 0
	return idx
}

// Box returns the bounding box of the whole tree.
func (t *Tree) Box() gmath.Box3 {
	if len(t.nodes) == 0 {
		return gmath.EmptyBox3()
	}
	return t.nodes[0].box
}

// Len returns the number of stored items.
func (t *Tree) Len() int { return len(t.items) }

// HitsLine returns the keys of all items whose box passes within tol of
// the unbounded line origin+t*axis, in ascending key order.
func (t *Tree) HitsLine(origin gmath.Point3, axis gmath.UnitVector3, tol float64) []int64 {
	var out []int64
	t.walk(func(b gmath.Box3) bool { return b.HitsLine(origin, axis, tol) }, &out)
	sortKeys(out)
	return out
}

// HitsBox returns the keys of all items whose box overlaps box within
// tol, in ascending key order.
func (t *Tree) HitsBox(box gmath.Box3, tol float64) []int64 {
	var out []int64
	t.walk(func(b gmath.Box3) bool { return b.Overlaps(box, tol) }, &out)
	sortKeys(out)
	return out
}

// HitsPoint returns the keys of all items whose box contains pos within
// tol, in ascending key order.
func (t *Tree) HitsPoint(pos gmath.Point3, tol float64) []int64 {
	var out []int64
	t.walk(func(b gmath.Box3) bool { return b.Contains(pos, tol) }, &out)
	sortKeys(out)
	return out
}

func (t *Tree) walk(pred func(gmath.Box3) bool, out *[]int64) {
	if len(t.nodes) == 0 {
		return
	}
	stack := []int{0}
	for len(stack) > 0 {
		n := t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !pred(n.box) {
			continue
		}
		if n.left < 0 {
			for i := n.first; i < n.first+n.num; i++ {
				if pred(t.items[i].Box) {
					*out = append(*out, t.items[i].Key)
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
}

func sortKeys(a []int64) {
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
}
