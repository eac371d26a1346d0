package skel

import "github.com/Faultbox/terraskel/internal/terrain/assert"

// MaybeNewVertex is a vertex handle plus whether CreateVertexBetween had to
// allocate it fresh, matching the on_subdivide callback contract (spec.md
// §6): only vertices with IsNew set need their position/normal computed.
type MaybeNewVertex struct {
	ID    VertexID
	IsNew bool
}

// SubdivResult is everything the engine needs after a Subdivide call to
// finish wiring neighbors and invoke the host's on_subdivide callback.
type SubdivResult struct {
	Group     GroupID
	Corners   [3]VertexID
	Midpoints [3]MaybeNewVertex // order: mid(v0,v1), mid(v1,v2), mid(v2,v0)
}

// Subdivide requires t to be a leaf. It creates the three edge-midpoint
// vertices (deduplicated against whatever neighboring triangle already
// subdivided that edge), allocates the 4-triangle child group, wires the
// three intra-group edges, and sets t's Children. It does not touch
// external neighbor links or the per-level bit-vectors — that is the
// subdivide engine's job, one layer up, because it also has to handle Rule
// A/B fallout that Skel has no notion of.
//
// Child vertex sets, per spec.md §4.1's layout invariant: corner children
// get (c0,m01,m20), (c1,m12,m01), (c2,m20,m12); the center takes
// (m01,m12,m20), the inverted middle triangle, whose vertex order winds the
// same way as the parent's so its outward orientation matches.
func (s *Skel) Subdivide(t TriID) SubdivResult {
	tri := s.TriAt(t)
	assert.True(!tri.IsSubdivided(), "skel: Subdivide called on an already-subdivided triangle")
	corners := tri.Vertices
	parentDepth := s.groups[t.Group()].Depth

	m01, new01 := s.CreateVertexBetween(corners[0], corners[1])
	m12, new12 := s.CreateVertexBetween(corners[1], corners[2])
	m20, new20 := s.CreateVertexBetween(corners[2], corners[0])

	g := s.allocGroup()
	group := &s.groups[g]
	group.Depth = parentDepth + 1
	group.Parent = t

	group.Tri[0].Vertices = [3]VertexID{corners[0], m01, m20}
	group.Tri[1].Vertices = [3]VertexID{corners[1], m12, m01}
	group.Tri[2].Vertices = [3]VertexID{corners[2], m20, m12}
	group.Tri[3].Vertices = [3]VertexID{m01, m12, m20}

	// Intra-group edges: each corner child's inner edge (index 1) borders
	// the center; the center's three edges border the three corners in turn.
	group.Tri[1].Neighbors[1] = TriIDFrom(g, 3)
	group.Tri[3].Neighbors[0] = TriIDFrom(g, 1)

	group.Tri[2].Neighbors[1] = TriIDFrom(g, 3)
	group.Tri[3].Neighbors[1] = TriIDFrom(g, 2)

	group.Tri[0].Neighbors[1] = TriIDFrom(g, 3)
	group.Tri[3].Neighbors[2] = TriIDFrom(g, 0)

	// Every corner slot across the 4 new triangles now references a vertex;
	// bump refcounts so midpoints get released again on unsubdivide.
	for _, v := range group.Tri[0].Vertices {
		s.refVertex(v, 1)
	}
	for _, v := range group.Tri[1].Vertices {
		s.refVertex(v, 1)
	}
	for _, v := range group.Tri[2].Vertices {
		s.refVertex(v, 1)
	}
	for _, v := range group.Tri[3].Vertices {
		s.refVertex(v, 1)
	}

	// allocGroup may have grown s.groups and invalidated tri; re-fetch.
	s.TriAt(t).Children = g

	return SubdivResult{
		Group:   g,
		Corners: corners,
		Midpoints: [3]MaybeNewVertex{
			{m01, new01},
			{m12, new12},
			{m20, new20},
		},
	}
}

// Unsubdivide requires all four children of t to themselves be leaves. It
// detaches the four from every external neighbor (clearing those
// neighbors' back-links), releases the group, clears t's Children, and
// releases any midpoint vertex that is no longer referenced.
func (s *Skel) Unsubdivide(t TriID) {
	tri := s.TriAt(t)
	assert.True(tri.IsSubdivided(), "skel: Unsubdivide called on a non-subdivided triangle")
	g := tri.Children
	group := s.GroupAt(g)
	for i := range group.Tri {
		assert.True(!group.Tri[i].IsSubdivided(), "skel: Unsubdivide requires all four children to be leaves")
	}

	// Sibling 3 (the center) never has an outer edge, by I5: it never
	// reaches outside the parent.
	outerEdges := [4][]int{
		{0, 2},
		{0, 2},
		{0, 2},
		nil,
	}
	for sib := 0; sib < 4; sib++ {
		childID := TriIDFrom(g, sib)
		for _, e := range outerEdges[sib] {
			n := group.Tri[sib].Neighbors[e]
			if n.IsValid() {
				otherEdge := s.FindNeighborIndex(n, childID)
				s.TriAt(n).Neighbors[otherEdge] = InvalidTri
			}
		}
	}

	for sib := 0; sib < 4; sib++ {
		for _, v := range group.Tri[sib].Vertices {
			s.refVertex(v, -1)
		}
	}

	s.freeGroup(g)
	s.TriAt(t).Children = InvalidGroup
}

// GroupEdgeSide names a triangle group and which of its root triangle's
// three parent-level edges is being paired with a neighboring group.
type GroupEdgeSide struct {
	Group GroupID
	Edge  int
}

// Pairing is one same-level cross-group neighbor link GroupSetNeighboring
// installed, named by the two child triangles it connects.
type Pairing struct {
	ChildA, ChildB TriID
}

// GroupSetNeighboring pairs the child groups of two triangles that are
// neighbors at the parent level. Parent edge a.Edge is split into two
// child sub-edges by its midpoint, and so is the matching parent edge
// b.Edge on the other side; because the two parent triangles traverse the
// shared edge in opposite directions, the child nearest a's edge-start
// corner pairs with the child nearest b's edge-end corner, and vice versa.
// Returns the two pairings in that order.
func (s *Skel) GroupSetNeighboring(a, b GroupEdgeSide) (Pairing, Pairing) {
	a1 := TriIDFrom(a.Group, a.Edge)
	b1 := TriIDFrom(b.Group, (b.Edge+1)%3)
	s.linkNeighbors(a1, 0, b1, 2)

	a2 := TriIDFrom(a.Group, (a.Edge+1)%3)
	b2 := TriIDFrom(b.Group, b.Edge)
	s.linkNeighbors(a2, 2, b2, 0)

	return Pairing{a1, b1}, Pairing{a2, b2}
}

func (s *Skel) linkNeighbors(ta TriID, edgeA int, tb TriID, edgeB int) {
	s.TriAt(ta).Neighbors[edgeA] = tb
	s.TriAt(tb).Neighbors[edgeB] = ta
}
