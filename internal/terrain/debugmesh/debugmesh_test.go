package debugmesh

import (
	"strings"
	"testing"

	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/pkg/icosahedron"
)

func testMeshConfig() mesh.Config {
	return mesh.Config{
		LevelMax:                   3,
		Scale:                      20,
		MaxRadius:                  1000,
		Height:                     10,
		IcoTowerOverHorizonVsLevel: []float32{1.0, 0.5, 0.1, 0.05},
	}
}

func TestLeafTrianglesCountsAllTwentyRootsBeforeAnySubdivision(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	icosahedron.Seed(tr, 1000)

	leaves := LeafTriangles(tr)
	if len(leaves) != 20 {
		t.Errorf("got %d leaves, want 20", len(leaves))
	}
}

func TestWireframeEdgesDedupesSharedEdges(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	icosahedron.Seed(tr, 1000)

	edges := WireframeEdges(tr)
	// Closed icosahedron: 20 faces * 3 edges / 2 shared = 30 unique edges.
	if len(edges) != 30 {
		t.Errorf("got %d edges, want 30", len(edges))
	}
}

func TestWriteOBJProducesVertexAndFaceLines(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	icosahedron.Seed(tr, 1000)

	var buf strings.Builder
	if err := WriteOBJ(&buf, tr); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	out := buf.String()
	vCount := strings.Count(out, "\nv ") + boolToInt(strings.HasPrefix(out, "v "))
	fCount := strings.Count(out, "\nf ") + boolToInt(strings.HasPrefix(out, "f "))

	if vCount != 12 {
		t.Errorf("got %d v lines, want 12", vCount)
	}
	if fCount != 20 {
		t.Errorf("got %d f lines, want 20", fCount)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
