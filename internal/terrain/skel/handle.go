// Package skel implements the Triangle Skeleton: the base mesh data
// structure of vertex and triangle-group arenas, parent/child links, and
// triangle-to-triangle neighbor links described in spec section 4.1. It
// knows nothing about world positions, distances, or observers — that
// lives one layer up in package mesh.
package skel

// VertexID identifies a vertex in the skeleton's vertex arena.
type VertexID int32

// InvalidVertex is the zero value for an absent vertex reference.
const InvalidVertex VertexID = -1

// IsValid reports whether the handle refers to a real vertex.
func (v VertexID) IsValid() bool { return v >= 0 }

// GroupID identifies a group of 4 sibling triangles in the group arena.
// The 20 icosahedron roots are also stored one-per-group (only sibling 0
// populated) so every triangle, root or not, is addressable the same way.
type GroupID int32

// InvalidGroup is the zero value for an absent group reference.
const InvalidGroup GroupID = -1

// IsValid reports whether the handle refers to a real group.
func (g GroupID) IsValid() bool { return g >= 0 }

// TriID identifies a single triangle: group*4 + sibling index.
type TriID int32

// InvalidTri is the zero value for an absent triangle reference.
const InvalidTri TriID = -1

// IsValid reports whether the handle refers to a real triangle.
func (t TriID) IsValid() bool { return t >= 0 }

// Group returns the group this triangle belongs to.
func (t TriID) Group() GroupID { return GroupID(int32(t) / 4) }

// Sibling returns this triangle's sibling index within its group (0-3).
func (t TriID) Sibling() int { return int(int32(t) % 4) }

// TriIDFrom builds a TriID from a group and a sibling index.
func TriIDFrom(g GroupID, sibling int) TriID {
	return TriID(int32(g)*4 + int32(sibling))
}
