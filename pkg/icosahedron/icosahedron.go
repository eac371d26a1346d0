// Package icosahedron seeds a mesh.Terrain with the 12-vertex, 20-face
// icosahedron that anchors level 0 of a terrain skeleton. It is a
// reference/test seeder, not part of the subdivision state machine: a real
// host picks its own coordinate frame, radius, and root topology. This one
// exists so cmd/terraindemo and the engine's tests have ground to stand on.
package icosahedron

import (
	gomath "math"

	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
	"github.com/Faultbox/terraskel/pkg/math"
)

// faces lists the 20 icosahedron faces as indices into the 12 golden-ratio
// vertices below, wound counter-clockwise when viewed from outside the
// sphere.
var faces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// unitVertices returns the 12 icosahedron vertices, normalized to the unit
// sphere, built from the three golden-ratio rectangles construction.
func unitVertices() [12]math.Vec3 {
	phi := float32((1 + gomath.Sqrt(5)) / 2)
	raw := [12]math.Vec3{
		{X: -1, Y: phi, Z: 0}, {X: 1, Y: phi, Z: 0}, {X: -1, Y: -phi, Z: 0}, {X: 1, Y: -phi, Z: 0},
		{X: 0, Y: -1, Z: phi}, {X: 0, Y: 1, Z: phi}, {X: 0, Y: -1, Z: -phi}, {X: 0, Y: 1, Z: -phi},
		{X: phi, Y: 0, Z: -1}, {X: phi, Y: 0, Z: 1}, {X: -phi, Y: 0, Z: -1}, {X: -phi, Y: 0, Z: 1},
	}
	var out [12]math.Vec3
	for i, v := range raw {
		out[i] = v.Normalize()
	}
	return out
}

// edgeKey is an unordered pair of the 12 base vertex indices, used to find
// each face's neighbor across a shared edge.
type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edgeSide records which face and which edge index of that face owns one
// side of an edge, for adjacency resolution below.
type edgeSide struct {
	face int
	edge int
}

// Seed builds the 12 vertices and 20 root triangles of an icosahedron of
// the given radius into tr, wires every root's same-level neighbors, and
// returns the 20 root TriIDs in face order. Callers pass the result to
// subdiv.NewDriver as the permanent root set re-seeded every pass.
func Seed(tr *mesh.Terrain, radius float32) []skel.TriID {
	verts := unitVertices()

	vertexIDs := make([]skel.VertexID, 12)
	for i := range vertexIDs {
		vertexIDs[i] = tr.Skel.AllocRootVertex()
	}
	tr.GrowToCapacity()

	for i, v := range verts {
		tr.Normals[vertexIDs[i]] = v
		tr.Positions[vertexIDs[i]] = fixedmath.FromVec3Scaled(v.Scale(radius), tr.Config.Scale)
	}

	triIDs := make([]skel.TriID, len(faces))
	for i, f := range faces {
		triIDs[i] = tr.Skel.NewRootTriangle(vertexIDs[f[0]], vertexIDs[f[1]], vertexIDs[f[2]])
	}
	tr.GrowToCapacity()

	edges := make(map[edgeKey][]edgeSide, 30)
	for fi, f := range faces {
		for e := 0; e < 3; e++ {
			key := makeEdgeKey(f[e], f[(e+1)%3])
			edges[key] = append(edges[key], edgeSide{face: fi, edge: e})
		}
	}
	for _, sides := range edges {
		if len(sides) != 2 {
			panic("icosahedron: edge shared by other than 2 faces, vertex/face table is inconsistent")
		}
		a, b := sides[0], sides[1]
		tr.Skel.TriAt(triIDs[a.face]).Neighbors[a.edge] = triIDs[b.face]
		tr.Skel.TriAt(triIDs[b.face]).Neighbors[b.edge] = triIDs[a.face]
	}

	for _, tri := range triIDs {
		tr.CalcSphereTriCenter(tri.Group())
	}

	return triIDs
}
