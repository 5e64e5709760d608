// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmath

import (
	"sort"
	"sync"
)

// morton3 interleaves the low 21 bits of three unsigned integers into a
// 63-bit Morton (Z-order) code, giving points that are close in 3D a good
// chance of being close in the resulting 1D order. Used to seed AABB tree
// construction with spatially coherent point batches.
func morton3(x, y, z uint32) uint64 {
	spread := func(v uint32) uint64 {
		x := uint64(v) & 0x1fffff
		x = (x | x<<32) & 0x1f00000000ffff
		x = (x | x<<16) & 0x1f0000ff0000ff
		x = (x | x<<8) & 0x100f00f00f00f00f
		x = (x | x<<4) & 0x10c30c30c30c30c3
		x = (x | x<<2) & 0x1249249249249249
		return x
	}
	return spread(x) | spread(y)<<1 | spread(z)<<2
}

// mortonKey quantizes p into the unit cube defined by [lo,hi] and returns
// its Morton code; points outside the box are clamped.
func mortonKey(p Point3, lo, hi Point3) uint64 {
	const bits = 21
	const scale = float64(uint32(1)<<bits - 1)
	span := func(v, l, h float64) uint32 {
		if h <= l {
			return 0
		}
		f := (v - l) / (h - l)
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		return uint32(f * scale)
	}
	return morton3(span(p.X, lo.X, hi.X), span(p.Y, lo.Y, hi.Y), span(p.Z, lo.Z, hi.Z))
}

// IndexedPoint pairs a point with its original index, the unit of work
// ordered by OrderPoints.
type IndexedPoint struct {
	Point Point3
	Index int
}

// comparator is the single ordering rule shared by the serial and
// parallel implementations below, so that both produce byte-identical
// output for the same input; point ordering is the kernel's one
// declared-parallel subsystem and must stay deterministic.
func comparator(lo, hi Point3) func(a, b IndexedPoint) bool {
	return func(a, b IndexedPoint) bool {
		ka, kb := mortonKey(a.Point, lo, hi), mortonKey(b.Point, lo, hi)
		if ka != kb {
			return ka < kb
		}
		return a.Index < b.Index
	}
}

func bounds(pts []Point3) (lo, hi Point3) {
	if len(pts) == 0 {
		return
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.Z < lo.Z {
			lo.Z = p.Z
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
		if p.Z > hi.Z {
			hi.Z = p.Z
		}
	}
	return
}

// OrderPoints returns pts reordered by Morton code (ties broken by
// original index), the deterministic ordering used to seed balanced AABB
// tree construction. Equivalent to OrderPointsParallel with shards=1; kept
// as the simple serial baseline the parallel version must match exactly.
func OrderPoints(pts []Point3) []IndexedPoint {
	lo, hi := bounds(pts)
	idx := make([]IndexedPoint, len(pts))
	for i, p := range pts {
		idx[i] = IndexedPoint{Point: p, Index: i}
	}
	less := comparator(lo, hi)
	sort.Slice(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
	return idx
}

// OrderPointsParallel sorts pts the same way as OrderPoints but splits the
// work across shards goroutines and merges the sorted shards, the one
// data-parallel subsystem the kernel allows. It must be deterministic:
// same comparator, stable merge, so the result is identical to
// OrderPoints regardless of how many shards are used.
func OrderPointsParallel(pts []Point3, shards int) []IndexedPoint {
	if shards < 1 {
		shards = 1
	}
	n := len(pts)
	if shards > n {
		shards = n
	}
	if shards <= 1 {
		return OrderPoints(pts)
	}

	lo, hi := bounds(pts)
	less := comparator(lo, hi)

	idx := make([]IndexedPoint, n)
	for i, p := range pts {
		idx[i] = IndexedPoint{Point: p, Index: i}
	}

	chunk := (n + shards - 1) / shards
	parts := make([][]IndexedPoint, 0, shards)
	for s := 0; s < n; s += chunk {
		e := s + chunk
		if e > n {
			e = n
		}
		parts = append(parts, idx[s:e])
	}

	var wg sync.WaitGroup
	for _, part := range parts {
		part := part
		wg.Add(1)
		go func() {
			defer wg.Done()
			sort.Slice(part, func(i, j int) bool { return less(part[i], part[j]) })
		}()
	}
	wg.Wait()

	return mergeSortedParts(parts, less)
}

// mergeSortedParts k-way merges already-sorted slices using a simple
// linear scan over the part heads; each output element costs one pass
// over all parts, so the cost grows with the shard count.
func mergeSortedParts(parts [][]IndexedPoint, less func(a, b IndexedPoint) bool) []IndexedPoint {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]IndexedPoint, 0, total)
	heads := make([]int, len(parts))
	for {
		best := -1
		for i, p := range parts {
			if heads[i] >= len(p) {
				continue
			}
			if best == -1 || less(p[heads[i]], parts[best][heads[best]]) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		out = append(out, parts[best][heads[best]])
		heads[best]++
	}
	return out
}
