// Package debugmesh generates pure data snapshots of a terrain skeleton's
// current leaf triangulation: wireframe edge lists and Wavefront .obj
// export. No GPU calls, matching internal/engine/debug's separation between
// grid-line data generation and the renderer that would consume it — out of
// scope here per the rendering non-goal.
package debugmesh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/math"
)

// LeafTriangles returns every currently-allocated leaf (non-subdivided)
// triangle's TriID, in arena order.
func LeafTriangles(tr *mesh.Terrain) []skel.TriID {
	var leaves []skel.TriID
	triCap := tr.Skel.TriCapacity()
	for i := 0; i < triCap; i++ {
		t := skel.TriID(i)
		if !tr.Skel.GroupExists(t.Group()) {
			continue
		}
		tri := tr.Skel.TriAt(t)
		if !tri.Vertices[0].IsValid() {
			continue // unused sibling slot of a root's single-triangle group
		}
		if tri.IsSubdivided() {
			continue
		}
		leaves = append(leaves, t)
	}
	return leaves
}

// edgeKey is an unordered pair of vertex handles, used to deduplicate an
// edge shared by two leaf triangles into a single line segment.
type edgeKey struct{ a, b skel.VertexID }

func makeEdgeKey(a, b skel.VertexID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Edge is one deduplicated wireframe line segment between two world
// positions.
type Edge struct {
	A, B math.Vec3
}

// WireframeEdges returns one line segment per unique edge of every leaf
// triangle, deduplicated across shared edges.
func WireframeEdges(tr *mesh.Terrain) []Edge {
	seen := make(map[edgeKey]bool)
	var edges []Edge
	for _, t := range LeafTriangles(tr) {
		tri := tr.Skel.TriAt(t)
		for e := 0; e < 3; e++ {
			va, vb := tri.Vertices[e], tri.Vertices[(e+1)%3]
			key := makeEdgeKey(va, vb)
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, Edge{
				A: tr.Positions[va].ToVec3(tr.Config.Scale),
				B: tr.Positions[vb].ToVec3(tr.Config.Scale),
			})
		}
	}
	return edges
}

// WriteOBJ writes every leaf triangle to w as a Wavefront .obj mesh: one v
// line per referenced vertex, one f line per leaf triangle. Vertex indices
// in the file are 1-based per the OBJ format, not skel.VertexID values.
func WriteOBJ(w io.Writer, tr *mesh.Terrain) error {
	leaves := LeafTriangles(tr)

	objIndex := make(map[skel.VertexID]int)
	bw := bufio.NewWriter(w)

	for _, t := range leaves {
		for _, v := range tr.Skel.TriAt(t).Vertices {
			if _, ok := objIndex[v]; ok {
				continue
			}
			p := tr.Positions[v].ToVec3(tr.Config.Scale)
			if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
				return err
			}
			objIndex[v] = len(objIndex) + 1
		}
	}

	for _, t := range leaves {
		tri := tr.Skel.TriAt(t)
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n",
			objIndex[tri.Vertices[0]], objIndex[tri.Vertices[1]], objIndex[tri.Vertices[2]]); err != nil {
			return err
		}
	}

	return bw.Flush()
}
