// Package subdiv implements the distance-driven subdivide and unsubdivide
// engines and the invariant checker that operate on a mesh.Terrain. It is
// the layer that decides *when* to call skel.Subdivide/skel.Unsubdivide,
// not how those operations rewire the skeleton.
package subdiv

import (
	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/bitvec"
)

// SubdivideFunc is invoked once per newly created group, after the group's
// intra-group edges are wired but before its children are linked to
// neighboring groups and before Rule A/B fallout is resolved. It must compute positions/normals for every new vertex and
// then the group's four triangle centers; it must not call back into the
// subdivide/unsubdivide engine.
type SubdivideFunc func(parent skel.TriID, group skel.GroupID, corners [3]skel.VertexID, midpoints [3]skel.MaybeNewVertex, tr *mesh.Terrain)

// UnsubdivideFunc is invoked once per triangle immediately before its
// children are freed, so the host can release any resources keyed on the
// vanishing group. It must not touch neighbor triangles.
type UnsubdivideFunc func(parent skel.TriID, tri *skel.Triangle, tr *mesh.Terrain)

// Level holds one subdivision level's double-buffered distance-test queues.
type Level struct {
	DistanceTestNext       []skel.TriID
	DistanceTestProcessing []skel.TriID
}

// Scratchpad is the per-pass mutable working state threaded through every
// engine call. Its bit-vectors and queues are reused across passes: cleared
// in place, never reallocated, to keep steady-state allocation near zero.
type Scratchpad struct {
	Levels []Level

	// DistanceTestDone prevents re-enqueueing a triangle for a distance
	// check within the same pass. Shared between the unsubdivide and
	// subdivide halves of a pass and reset once at the start of each.
	DistanceTestDone bitvec.Vec
	TryUnsubdiv      bitvec.Vec
	CantUnsubdiv     bitvec.Vec

	// ThresholdSubdivSq/ThresholdUnsubdivSq are squared fixed-point
	// distances, precomputed once per level rather than per triangle
	// (fixedmath.IsDistanceNear takes a squared threshold).
	ThresholdSubdivSq   []int64
	ThresholdUnsubdivSq []int64

	// LevelNeedProcess is the shallowest level with pending subdivide work;
	// a Rule B fixup during subdivision can pull this back below the level
	// currently being drained, forcing re-entry.
	LevelNeedProcess int
	LevelMax         int

	DistanceCheckCount uint64

	OnSubdivide   SubdivideFunc
	OnUnsubdivide UnsubdivideFunc
}

// NewScratchpad builds a scratchpad for a terrain with the given per-level
// thresholds (plain, not squared). len(thresholdSubdiv) and
// len(thresholdUnsubdiv) must equal levelMax; thresholdSubdiv must be
// strictly decreasing and thresholdUnsubdiv strictly greater than
// thresholdSubdiv at every level, per the hysteresis requirement.
func NewScratchpad(levelMax int, thresholdSubdiv, thresholdUnsubdiv []int64) *Scratchpad {
	if len(thresholdSubdiv) != levelMax || len(thresholdUnsubdiv) != levelMax {
		panic("subdiv: threshold slices must have length levelMax")
	}
	for lvl := 0; lvl < levelMax; lvl++ {
		if thresholdUnsubdiv[lvl] <= thresholdSubdiv[lvl] {
			panic("subdiv: thresholdUnsubdiv must exceed thresholdSubdiv at every level")
		}
		if lvl > 0 && thresholdSubdiv[lvl] >= thresholdSubdiv[lvl-1] {
			panic("subdiv: thresholdSubdiv must be strictly decreasing with depth")
		}
	}

	sp := &Scratchpad{
		Levels:              make([]Level, levelMax),
		ThresholdSubdivSq:   make([]int64, levelMax),
		ThresholdUnsubdivSq: make([]int64, levelMax),
		LevelMax:            levelMax,
	}
	for lvl := 0; lvl < levelMax; lvl++ {
		sp.ThresholdSubdivSq[lvl] = thresholdSubdiv[lvl] * thresholdSubdiv[lvl]
		sp.ThresholdUnsubdivSq[lvl] = thresholdUnsubdiv[lvl] * thresholdUnsubdiv[lvl]
	}
	return sp
}

// GrowToCapacity extends the scratchpad's global bit-vectors to match the
// skeleton's current triangle capacity. Called after any group creation.
func (sp *Scratchpad) GrowToCapacity(triCapacity int) {
	sp.DistanceTestDone.EnsureLen(triCapacity)
	sp.TryUnsubdiv.EnsureLen(triCapacity)
	sp.CantUnsubdiv.EnsureLen(triCapacity)
}
