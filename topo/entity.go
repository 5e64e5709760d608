// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package topo implements the topology store: bodies, volumes, faces,
// edges, vertices, complexes and geometry entities keyed by stable
// integer id, with owner/back-pointer id-sets and lazily cached bounding
// boxes. The id is the only cross-reference; every neighbor relation is
// an id-set so the cyclic body-volume-face-edge-vertex graph has no
// pointer lifetime snarls.
package topo

import (
	"sort"

	"github.com/cpmech/sgm/gmath"
)

// ID is a process-unique entity id, assigned monotonically by the Thing.
// Zero is never a valid id, so it doubles as "no entity".
type ID int64

// Kind tags the concrete entity variant.
type Kind int

const (
	KindBody Kind = iota
	KindVolume
	KindFace
	KindEdge
	KindVertex
	KindComplex
	KindCurve
	KindSurface
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "Body"
	case KindVolume:
		return "Volume"
	case KindFace:
		return "Face"
	case KindEdge:
		return "Edge"
	case KindVertex:
		return "Vertex"
	case KindComplex:
		return "Complex"
	case KindCurve:
		return "Curve"
	case KindSurface:
		return "Surface"
	default:
		return "Unknown"
	}
}

// Entity is the capability set common to every stored variant.
type Entity interface {
	ID() ID
	Kind() Kind

	// Owners is the back-pointer set used to walk upward; a top-level
	// entity has an empty owner set.
	Owners() *IDSet

	// Box returns the entity's axis-aligned bounding box, computed from its
	// geometry on each call (the Thing's global box and the volume and
	// complex box trees are what is cached). The thing is needed to chase
	// neighbor ids.
	Box(t *Thing) gmath.Box3

	// sever disconnects the entity from its peers (removing its id from
	// their sets) without freeing anything; DeleteEntity calls it first.
	sever(t *Thing)
}

// EntityCompare orders entities by id, making every entity container
// deterministic regardless of allocation order.
func EntityCompare(a, b Entity) bool { return a.ID() < b.ID() }

// IDSet is a set of entity ids with deterministic, ascending iteration.
type IDSet struct {
	m map[ID]struct{}
}

// Add inserts id into the set.
func (s *IDSet) Add(id ID) {
	if s.m == nil {
		s.m = make(map[ID]struct{})
	}
	s.m[id] = struct{}{}
}

// Remove deletes id from the set.
func (s *IDSet) Remove(id ID) { delete(s.m, id) }

// Has reports membership.
func (s *IDSet) Has(id ID) bool {
	_, ok := s.m[id]
	return ok
}

// Len returns the set size.
func (s *IDSet) Len() int { return len(s.m) }

// Sorted returns the ids in ascending order.
func (s *IDSet) Sorted() []ID {
	out := make([]ID, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy.
func (s *IDSet) Clone() IDSet {
	var c IDSet
	for id := range s.m {
		c.Add(id)
	}
	return c
}

// base carries the id and owner set every variant embeds.
type base struct {
	id     ID
	owners IDSet
}

func (b *base) ID() ID         { return b.id }
func (b *base) Owners() *IDSet { return &b.owners }
