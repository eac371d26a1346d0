package mesh

import (
	"testing"

	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
	"github.com/Faultbox/terraskel/pkg/math"
)

func testConfig() Config {
	return Config{
		LevelMax:                   4,
		Scale:                      8,
		MaxRadius:                  1000,
		Height:                     10,
		IcoTowerOverHorizonVsLevel: []float32{1.0, 0.5, 0.25, 0.1, 0.05},
	}
}

func TestNewRejectsShortTowerTable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected New to panic when IcoTowerOverHorizonVsLevel is shorter than LevelMax")
		}
	}()
	New(Config{LevelMax: 4, IcoTowerOverHorizonVsLevel: []float32{1.0}})
}

func TestGrowToCapacityTracksSkel(t *testing.T) {
	tr := New(testConfig())

	v0 := tr.Skel.AllocRootVertex()
	v1 := tr.Skel.AllocRootVertex()
	v2 := tr.Skel.AllocRootVertex()
	tr.Skel.NewRootTriangle(v0, v1, v2)
	tr.GrowToCapacity()

	if len(tr.Positions) < tr.Skel.VertexCapacity() {
		t.Errorf("Positions too short: got %d, want >= %d", len(tr.Positions), tr.Skel.VertexCapacity())
	}
	if len(tr.Normals) < tr.Skel.VertexCapacity() {
		t.Errorf("Normals too short: got %d, want >= %d", len(tr.Normals), tr.Skel.VertexCapacity())
	}
	if len(tr.Centers) < tr.Skel.TriCapacity() {
		t.Errorf("Centers too short: got %d, want >= %d", len(tr.Centers), tr.Skel.TriCapacity())
	}
	for lvl := range tr.Levels {
		if tr.Levels[lvl].HasSubdividedNeighbor.Len() < tr.Skel.TriCapacity() {
			t.Errorf("level %d HasSubdividedNeighbor too short", lvl)
		}
	}
}

func TestCalcSphereTriCenterFlatFaceAtZeroNormals(t *testing.T) {
	tr := New(testConfig())

	v0 := tr.Skel.AllocRootVertex()
	v1 := tr.Skel.AllocRootVertex()
	v2 := tr.Skel.AllocRootVertex()
	tri := tr.Skel.NewRootTriangle(v0, v1, v2)
	tr.GrowToCapacity()

	tr.Positions[v0] = fixedmath.FromVec3Scaled(math.Vec3{X: 3, Y: 0, Z: 0}, tr.Config.Scale)
	tr.Positions[v1] = fixedmath.FromVec3Scaled(math.Vec3{X: 0, Y: 3, Z: 0}, tr.Config.Scale)
	tr.Positions[v2] = fixedmath.FromVec3Scaled(math.Vec3{X: 0, Y: 0, Z: 3}, tr.Config.Scale)
	// Normals left at zero: center should sit exactly at the corner average,
	// with no outward rise.
	tr.CalcSphereTriCenter(tri.Group())

	center := tr.Centers[tri].ToVec3(tr.Config.Scale)
	want := math.Vec3{X: 1, Y: 1, Z: 1}
	const eps = 0.05
	if absf(center.X-want.X) > eps || absf(center.Y-want.Y) > eps || absf(center.Z-want.Z) > eps {
		t.Errorf("got center %+v, want approximately %+v", center, want)
	}
}

func TestCalcSphereTriCenterRisesAlongNormal(t *testing.T) {
	tr := New(testConfig())

	v0 := tr.Skel.AllocRootVertex()
	v1 := tr.Skel.AllocRootVertex()
	v2 := tr.Skel.AllocRootVertex()
	tri := tr.Skel.NewRootTriangle(v0, v1, v2)
	tr.GrowToCapacity()

	up := math.Vec3{X: 0, Y: 1, Z: 0}
	tr.Normals[v0] = up
	tr.Normals[v1] = up
	tr.Normals[v2] = up
	tr.CalcSphereTriCenter(tri.Group())

	center := tr.Centers[tri].ToVec3(tr.Config.Scale)
	if center.Y <= 0 {
		t.Errorf("expected center to rise along the shared normal, got Y=%v", center.Y)
	}
}

func TestCalcSphereTriCenterPanicsPastTowerTable(t *testing.T) {
	tr := New(Config{
		LevelMax:                   1,
		Scale:                      8,
		IcoTowerOverHorizonVsLevel: []float32{1.0, 0.5},
	})
	v0 := tr.Skel.AllocRootVertex()
	v1 := tr.Skel.AllocRootVertex()
	v2 := tr.Skel.AllocRootVertex()
	tri := tr.Skel.NewRootTriangle(v0, v1, v2)
	tr.GrowToCapacity()
	child := tr.Skel.Subdivide(tri)
	res := tr.Skel.Subdivide(skel.TriIDFrom(child.Group, 0)) // depth 2
	tr.GrowToCapacity()

	defer func() {
		if recover() == nil {
			t.Error("expected CalcSphereTriCenter to panic once depth exceeds the tower table")
		}
	}()
	tr.CalcSphereTriCenter(res.Group)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
