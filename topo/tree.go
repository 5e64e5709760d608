// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import "github.com/cpmech/sgm/boxtree"

// treeCache holds a lazily built bounding-box tree. Queries rebuild it on
// first use after an invalidation; a Thing is single-threaded so no
// locking is needed.
type treeCache struct {
	tree *boxtree.Tree
}

func (c *treeCache) invalidate() { c.tree = nil }

func (c *treeCache) get(build func() *boxtree.Tree) *boxtree.Tree {
	if c.tree == nil {
		c.tree = build()
	}
	return c.tree
}
