// Package mesh implements the Terrain Skeleton (spec.md §4.2): it wraps a
// skel.Skel with the per-vertex world position/normal and per-triangle
// center attributes the subdivision engine needs for distance tests, plus
// the per-level hasSubdividedNeighbor/hasNonSubdividedNeighbor bit-vector
// tables that seed the subdivide and unsubdivide floodfills.
package mesh

import (
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/bitvec"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
	"github.com/Faultbox/terraskel/pkg/math"
)

// Config holds the planet-scale constants the terrain needs to turn
// connectivity into world-space centers.
type Config struct {
	LevelMax int  // maximum subdivision depth
	Scale    uint // fixed-point scale: world meters -> 2^Scale units
	// MaxRadius and Height describe the terrain's elevation envelope:
	// centers are biased outward by half the maximum possible elevation at
	// their depth so distance tests compare against the bounding envelope,
	// not the flat face.
	MaxRadius float32
	Height    float32
	// IcoTowerOverHorizonVsLevel[d] bounds how far terrain at depth d can
	// protrude above a flat face, as a fraction of MaxRadius. Must have at
	// least LevelMax+1 entries (subdividing level LevelMax-1 creates groups
	// at depth LevelMax) and be monotonically decreasing.
	IcoTowerOverHorizonVsLevel []float32
}

// Level holds the two frontier bit-vectors for one subdivision depth.
type Level struct {
	// HasSubdividedNeighbor is set iff the triangle is a leaf and at least
	// one same-level neighbor is subdivided.
	HasSubdividedNeighbor bitvec.Vec
	// HasNonSubdividedNeighbor is set iff the triangle is subdivided and at
	// least one same-level neighbor is a leaf.
	HasNonSubdividedNeighbor bitvec.Vec
}

// Terrain wraps a skeleton with world-space attributes.
type Terrain struct {
	Skel   *skel.Skel
	Config Config

	Positions []fixedmath.Vec3L // indexed by skel.VertexID
	Normals   []math.Vec3       // indexed by skel.VertexID
	Centers   []fixedmath.Vec3L // indexed by skel.TriID

	Levels []Level // length Config.LevelMax
}

// New returns an empty terrain skeleton ready for seeding.
func New(cfg Config) *Terrain {
	if cfg.LevelMax < 1 {
		panic("mesh: LevelMax must be >= 1")
	}
	if len(cfg.IcoTowerOverHorizonVsLevel) < cfg.LevelMax+1 {
		panic("mesh: IcoTowerOverHorizonVsLevel must have at least LevelMax+1 entries")
	}
	return &Terrain{
		Skel:   skel.NewSkel(),
		Config: cfg,
		Levels: make([]Level, cfg.LevelMax),
	}
}

// GrowToCapacity extends every per-vertex/per-triangle/per-level array to
// match the skeleton's current arena capacity. Called after any group
// creation, per spec.md §4.2.
func (tr *Terrain) GrowToCapacity() {
	vCap := tr.Skel.VertexCapacity()
	for len(tr.Positions) < vCap {
		tr.Positions = append(tr.Positions, fixedmath.Vec3L{})
	}
	for len(tr.Normals) < vCap {
		tr.Normals = append(tr.Normals, math.Vec3{})
	}

	tCap := tr.Skel.TriCapacity()
	for len(tr.Centers) < tCap {
		tr.Centers = append(tr.Centers, fixedmath.Vec3L{})
	}

	for lvl := range tr.Levels {
		tr.Levels[lvl].HasSubdividedNeighbor.EnsureLen(tCap)
		tr.Levels[lvl].HasNonSubdividedNeighbor.EnsureLen(tCap)
	}
}

// CalcSphereTriCenter computes the world-space centers of all 4 triangles
// in group g, per spec.md §4.2: the average position of the 3 corners,
// biased outward along the summed corner normal by half the maximum
// possible terrain elevation at that depth. Positions are averaged a
// third at a time before summing to avoid overflowing the fixed-point
// range with planet-scale coordinates.
func (tr *Terrain) CalcSphereTriCenter(g skel.GroupID) {
	group := tr.Skel.GroupAt(g)
	depth := int(group.Depth)
	if depth >= len(tr.Config.IcoTowerOverHorizonVsLevel) {
		panic("mesh: triangle depth exceeds IcoTowerOverHorizonVsLevel table")
	}
	maxHeight := tr.Config.Height + tr.Config.MaxRadius*tr.Config.IcoTowerOverHorizonVsLevel[depth]
	riseScale := 0.5 * maxHeight / 3.0

	for i := 0; i < 4; i++ {
		tri := &group.Tri[i]
		va, vb, vc := tri.Vertices[0], tri.Vertices[1], tri.Vertices[2]
		if !va.IsValid() {
			continue // root groups only populate Tri[0]; siblings 1-3 are unused
		}

		posAvg := tr.Positions[va].DivScalar(3).
			Add(tr.Positions[vb].DivScalar(3)).
			Add(tr.Positions[vc].DivScalar(3))

		nrmSum := tr.Normals[va].Add(tr.Normals[vb]).Add(tr.Normals[vc])
		riseToMid := fixedmath.FromVec3Scaled(nrmSum.Scale(riseScale), tr.Config.Scale)

		triID := skel.TriIDFrom(g, i)
		tr.Centers[triID] = posAvg.Add(riseToMid)
	}
}
