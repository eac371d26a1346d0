package icosahedron

import (
	"testing"

	"github.com/Faultbox/terraskel/internal/terrain/mesh"
)

func testMeshConfig() mesh.Config {
	return mesh.Config{
		LevelMax:                   4,
		Scale:                      20,
		MaxRadius:                  6_371_000,
		Height:                     8_000,
		IcoTowerOverHorizonVsLevel: []float32{1.0, 0.5, 0.25, 0.1, 0.05},
	}
}

func TestSeedProducesTwentyRootsWithThreeNeighborsEach(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	roots := Seed(tr, 6_371_000)

	if len(roots) != 20 {
		t.Fatalf("got %d roots, want 20", len(roots))
	}
	for _, r := range roots {
		tri := tr.Skel.TriAt(r)
		for e, n := range tri.Neighbors {
			if !n.IsValid() {
				t.Errorf("root %v edge %d has no neighbor", r, e)
			}
		}
	}
}

func TestSeedNeighborsAreSymmetric(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	roots := Seed(tr, 1000)

	for _, r := range roots {
		for _, n := range tr.Skel.TriAt(r).Neighbors {
			if tr.Skel.FindNeighborIndex(n, r) < 0 {
				t.Errorf("neighbor %v of %v does not point back", n, r)
			}
		}
	}
}

func TestSeedVerticesLieOnSphere(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	Seed(tr, 1000)

	for _, p := range tr.Positions {
		v := p.ToVec3(tr.Config.Scale)
		lenSq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
		const want = 1000 * 1000
		if diff := lenSq - want; diff > want*0.01 || diff < -want*0.01 {
			t.Errorf("vertex %+v has length^2 %v, want approximately %v", v, lenSq, want)
		}
	}
}

func TestSeedCentersAreComputed(t *testing.T) {
	tr := mesh.New(testMeshConfig())
	roots := Seed(tr, 1000)

	for _, r := range roots {
		c := tr.Centers[r]
		if c.X == 0 && c.Y == 0 && c.Z == 0 {
			t.Errorf("root %v has an unset (zero) center", r)
		}
	}
}
