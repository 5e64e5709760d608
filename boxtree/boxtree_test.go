// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxtree

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sgm/gmath"
)

func unitBoxAt(x, y, z float64) gmath.Box3 {
	return gmath.Box3{
		Min: gmath.Point3{X: x, Y: y, Z: z},
		Max: gmath.Point3{X: x + 1, Y: y + 1, Z: z + 1},
	}
}

func Test_line_query(tst *testing.T) {

	chk.PrintTitle("boxtree_line_query")

	// a row of boxes along x at y=0 and a stray one at y=10
	items := []Item{
		{Key: 1, Box: unitBoxAt(0, 0, 0)},
		{Key: 2, Box: unitBoxAt(2, 0, 0)},
		{Key: 3, Box: unitBoxAt(4, 0, 0)},
		{Key: 4, Box: unitBoxAt(0, 10, 0)},
	}
	tr := Build(items)
	axis := gmath.Vector3{X: 1}.MustUnit()
	hits := tr.HitsLine(gmath.Point3{X: -5, Y: 0.5, Z: 0.5}, axis, 0)
	if len(hits) != 3 {
		tst.Fatalf("expected 3 boxes on the line, got %v", hits)
	}
	for i, want := range []int64{1, 2, 3} {
		if hits[i] != want {
			tst.Fatalf("hit order wrong: %v", hits)
		}
	}
}

func Test_box_and_point_queries(tst *testing.T) {

	chk.PrintTitle("boxtree_box_and_point_queries")

	var items []Item
	for i := 0; i < 64; i++ {
		items = append(items, Item{Key: int64(i), Box: unitBoxAt(float64(i%4) * 3, float64((i/4)%4) * 3, float64(i/16) * 3)})
	}
	tr := Build(items)
	chk.Scalar(tst, "len", 0, float64(tr.Len()), 64)

	probe := gmath.Box3{Min: gmath.Point3{}, Max: gmath.Point3{X: 1, Y: 1, Z: 1}}
	hits := tr.HitsBox(probe, 0)
	if len(hits) != 1 || hits[0] != 0 {
		tst.Fatalf("box probe: got %v", hits)
	}
	pHits := tr.HitsPoint(gmath.Point3{X: 3.5, Y: 0.5, Z: 0.5}, 0)
	if len(pHits) != 1 || pHits[0] != 1 {
		tst.Fatalf("point probe: got %v", pHits)
	}
}
