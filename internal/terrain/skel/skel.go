package skel

// edgeKey is an unordered pair of vertex handles, used to deduplicate
// edge-midpoint vertices: two triangles sharing an edge must agree on the
// single midpoint vertex between them, however many groups separately
// subdivide the triangles on either side.
type edgeKey struct {
	a, b VertexID
}

func makeEdgeKey(a, b VertexID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Skel is the triangle skeleton: arenas of vertices and triangle groups,
// free lists for reuse, and the bookkeeping needed to deduplicate and
// release midpoint vertices. It holds no position data — see package mesh.
type Skel struct {
	vertices     []bool // true if slot is allocated
	vertexFree   []VertexID
	vertexRefs   []int32
	vertexEdge   []edgeKey // the edge this vertex is the midpoint of, if any
	edgeMidpoint map[edgeKey]VertexID

	groups     []Group
	groupExist []bool
	groupFree  []GroupID
}

// NewSkel returns an empty skeleton.
func NewSkel() *Skel {
	return &Skel{
		edgeMidpoint: make(map[edgeKey]VertexID),
	}
}

// VertexCapacity returns the size an array indexed by VertexID must have to
// address every vertex this skeleton has ever allocated a slot for.
func (s *Skel) VertexCapacity() int { return len(s.vertices) }

// GroupCapacity returns the number of group slots allocated so far.
func (s *Skel) GroupCapacity() int { return len(s.groups) }

// TriCapacity returns GroupCapacity()*4, the size an array indexed by TriID
// must have.
func (s *Skel) TriCapacity() int { return len(s.groups) * 4 }

// VertexExists reports whether v refers to a currently-allocated vertex.
func (s *Skel) VertexExists(v VertexID) bool {
	return v.IsValid() && int(v) < len(s.vertices) && s.vertices[v]
}

// GroupExists reports whether g refers to a currently-allocated group.
func (s *Skel) GroupExists(g GroupID) bool {
	return g.IsValid() && int(g) < len(s.groups) && s.groupExist[g]
}

// TriAt returns a mutable pointer to the triangle t. Panics if t's group
// does not exist.
func (s *Skel) TriAt(t TriID) *Triangle {
	g := t.Group()
	if !s.GroupExists(g) {
		panic("skel: TriAt on nonexistent group")
	}
	return &s.groups[g].Tri[t.Sibling()]
}

// GroupAt returns a mutable pointer to group g. Panics if it does not exist.
func (s *Skel) GroupAt(g GroupID) *Group {
	if !s.GroupExists(g) {
		panic("skel: GroupAt on nonexistent group")
	}
	return &s.groups[g]
}

// IsTriSubdivided reports whether t exists and has children.
func (s *Skel) IsTriSubdivided(t TriID) bool {
	if !t.IsValid() || !s.GroupExists(t.Group()) {
		return false
	}
	return s.TriAt(t).IsSubdivided()
}

func (s *Skel) allocVertex() VertexID {
	if n := len(s.vertexFree); n > 0 {
		id := s.vertexFree[n-1]
		s.vertexFree = s.vertexFree[:n-1]
		s.vertices[id] = true
		s.vertexRefs[id] = 0
		s.vertexEdge[id] = edgeKey{InvalidVertex, InvalidVertex}
		return id
	}
	id := VertexID(len(s.vertices))
	s.vertices = append(s.vertices, true)
	s.vertexRefs = append(s.vertexRefs, 0)
	s.vertexEdge = append(s.vertexEdge, edgeKey{InvalidVertex, InvalidVertex})
	return id
}

func (s *Skel) freeVertex(id VertexID) {
	s.vertices[id] = false
	s.vertexFree = append(s.vertexFree, id)
}

// AllocRootVertex creates a vertex with no associated edge (used only for
// the icosahedron's initial 12 vertices, which are not anyone's midpoint).
func (s *Skel) AllocRootVertex() VertexID {
	return s.allocVertex()
}

// CreateVertexBetween returns the existing midpoint vertex of edge (a, b)
// or allocates a new one, deduplicated by unordered edge key.
func (s *Skel) CreateVertexBetween(a, b VertexID) (id VertexID, isNew bool) {
	key := makeEdgeKey(a, b)
	if existing, ok := s.edgeMidpoint[key]; ok {
		return existing, false
	}
	id = s.allocVertex()
	s.vertexEdge[id] = key
	s.edgeMidpoint[key] = id
	return id, true
}

// refVertex increments v's reference count by delta slots of usage. When
// the count drops to zero the vertex (and its edge-dedup entry, if any) is
// released.
func (s *Skel) refVertex(v VertexID, delta int32) {
	if !v.IsValid() {
		return
	}
	s.vertexRefs[v] += delta
	if s.vertexRefs[v] < 0 {
		panic("skel: vertex refcount went negative")
	}
	if s.vertexRefs[v] == 0 {
		key := s.vertexEdge[v]
		if key.a.IsValid() {
			delete(s.edgeMidpoint, key)
		}
		s.freeVertex(v)
	}
}

func (s *Skel) allocGroup() GroupID {
	if n := len(s.groupFree); n > 0 {
		id := s.groupFree[n-1]
		s.groupFree = s.groupFree[:n-1]
		s.groupExist[id] = true
		s.groups[id] = Group{Tri: [4]Triangle{newTriangle(), newTriangle(), newTriangle(), newTriangle()}}
		return id
	}
	id := GroupID(len(s.groups))
	s.groups = append(s.groups, Group{Tri: [4]Triangle{newTriangle(), newTriangle(), newTriangle(), newTriangle()}})
	s.groupExist = append(s.groupExist, true)
	return id
}

func (s *Skel) freeGroup(id GroupID) {
	s.groupExist[id] = false
	s.groupFree = append(s.groupFree, id)
}

// NewRootTriangle allocates a new single-triangle group (depth 0, no
// parent) and returns the TriID of its sole sibling. Used only by the
// icosahedron seeder.
func (s *Skel) NewRootTriangle(v0, v1, v2 VertexID) TriID {
	g := s.allocGroup()
	group := &s.groups[g]
	group.Depth = 0
	group.Parent = InvalidTri
	group.Tri[0].Vertices = [3]VertexID{v0, v1, v2}
	s.refVertex(v0, 1)
	s.refVertex(v1, 1)
	s.refVertex(v2, 1)
	return TriIDFrom(g, 0)
}

// FindNeighborIndex returns i such that self.Neighbors[i] == other. Panics
// if no such edge exists, matching spec.md's "must exist when called"
// contract.
func (s *Skel) FindNeighborIndex(self TriID, other TriID) int {
	tri := s.TriAt(self)
	for i, n := range tri.Neighbors {
		if n == other {
			return i
		}
	}
	panic("skel: FindNeighborIndex found no matching edge")
}
