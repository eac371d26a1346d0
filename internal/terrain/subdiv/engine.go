package subdiv

import (
	"github.com/Faultbox/terraskel/internal/terrain/assert"
	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
)

// setCrossLevelBits updates the next level's frontier bits for a pair of
// same-level triangles (x, y) that just became neighbors across a boundary
// introduced by subdividing one side of their shared parent edge. Whichever
// of the two is itself further subdivided makes the other one's
// hasSubdividedNeighbor bit true and its own hasNonSubdividedNeighbor bit
// true.
func setCrossLevelBits(next *mesh.Level, tr *mesh.Terrain, x, y skel.TriID) {
	if tr.Skel.TriAt(y).IsSubdivided() {
		next.HasSubdividedNeighbor.Set(int(x))
		next.HasNonSubdividedNeighbor.Set(int(y))
	}
	if tr.Skel.TriAt(x).IsSubdivided() {
		next.HasSubdividedNeighbor.Set(int(y))
		next.HasNonSubdividedNeighbor.Set(int(x))
	}
}

// SubdivideTriangle subdivides leaf triangle t at level lvl, wires its new
// group's neighbor links at its own level, and recursively fixes up any
// Rule A/B fallout the subdivision causes in neighboring triangles or the
// parent level. hasNextLevel tells it whether lvl+1 exists, to decide
// whether to seed the deeper level's distance-test queue.
func SubdivideTriangle(t skel.TriID, lvl int, hasNextLevel bool, tr *mesh.Terrain, sp *Scratchpad) skel.GroupID {
	tri := tr.Skel.TriAt(t)
	assert.True(!tri.IsSubdivided(), "subdiv: SubdivideTriangle called on an already-subdivided triangle")

	// Skel.Subdivide invalidates tri; snapshot what we still need first.
	neighbors := tri.Neighbors
	corners := tri.Vertices

	res := tr.Skel.Subdivide(t)
	groupID := res.Group

	tr.GrowToCapacity()
	sp.GrowToCapacity(tr.Skel.TriCapacity())

	if hasNextLevel {
		nextSP := &sp.Levels[lvl+1]
		for sib := 0; sib < 4; sib++ {
			child := skel.TriIDFrom(groupID, sib)
			nextSP.DistanceTestNext = append(nextSP.DistanceTestNext, child)
			sp.DistanceTestDone.Set(int(child))
		}
	}

	if sp.OnSubdivide != nil {
		sp.OnSubdivide(t, groupID, corners, res.Midpoints, tr)
	}

	lvlTable := &tr.Levels[lvl]
	// t is no longer a leaf; hasSubdividedNeighbor only applies to leaves.
	lvlTable.HasSubdividedNeighbor.Clear(int(t))

	hasNonSubdivNeighbor := false

	for edge := 0; edge < 3; edge++ {
		neighborID := neighbors[edge]
		if !neighborID.IsValid() {
			continue
		}
		neighborTri := tr.Skel.TriAt(neighborID)
		if neighborTri.IsSubdivided() {
			neighborEdge := tr.Skel.FindNeighborIndex(neighborID, t)
			p1, p2 := tr.Skel.GroupSetNeighboring(
				skel.GroupEdgeSide{Group: groupID, Edge: edge},
				skel.GroupEdgeSide{Group: neighborTri.Children, Edge: neighborEdge},
			)

			if hasNextLevel {
				nextLvl := &tr.Levels[lvl+1]
				setCrossLevelBits(nextLvl, tr, p1.ChildA, p1.ChildB)
				setCrossLevelBits(nextLvl, tr, p2.ChildA, p2.ChildB)
			}

			neighborHasNonSubdivNeighbor := false
			for _, nn := range neighborTri.Neighbors {
				if nn.IsValid() && nn != t && !tr.Skel.IsTriSubdivided(nn) {
					neighborHasNonSubdivNeighbor = true
					break
				}
			}
			lvlTable.HasNonSubdividedNeighbor.SetTo(int(neighborID), neighborHasNonSubdivNeighbor)
		} else {
			hasNonSubdivNeighbor = true
			lvlTable.HasSubdividedNeighbor.Set(int(neighborID))
		}
	}

	lvlTable.HasNonSubdividedNeighbor.SetTo(int(t), hasNonSubdivNeighbor)

	// Rule A/B fallout. Re-read t's live neighbors; subdividing t never
	// changes t's own Neighbors array, only its Children, so this agrees
	// with the snapshot above, but re-reading matches the source's style
	// of never trusting a stale local past a Skel call.
	liveNeighbors := tr.Skel.TriAt(t).Neighbors
	for edge := 0; edge < 3; edge++ {
		neighborID := liveNeighbors[edge]
		if neighborID.IsValid() {
			neighborTri := tr.Skel.TriAt(neighborID)
			if neighborTri.IsSubdivided() {
				continue
			}

			isOtherSubdivided := func(other skel.TriID) bool {
				return other.IsValid() && other != t && tr.Skel.IsTriSubdivided(other)
			}
			n := neighborTri.Neighbors
			if isOtherSubdivided(n[0]) || isOtherSubdivided(n[1]) || isOtherSubdivided(n[2]) {
				// Rule A violation: neighborID would end up with >= 2
				// subdivided same-level neighbors. Subdivide it too.
				SubdivideTriangle(neighborID, lvl, hasNextLevel, tr, sp)
				sp.DistanceTestDone.Set(int(neighborID))
			} else if !sp.DistanceTestDone.Test(int(neighborID)) {
				sp.Levels[lvl].DistanceTestNext = append(sp.Levels[lvl].DistanceTestNext, neighborID)
				sp.DistanceTestDone.Set(int(neighborID))
			}
		} else {
			// Neighbor absent: t's parent has no neighbor across this edge
			// at the parent level, i.e. a Rule B violation.
			assert.True(t.Sibling() != 3, "subdiv: Rule B violation on a center sibling, which is never a boundary triangle")
			assert.True(lvl != 0, "subdiv: Rule B violation at level 0, which has no parent level")

			// Corner child s's edge 0 lies on parent edge s, its edge 2 on
			// parent edge s-1.
			parentEdge := t.Sibling()
			if edge == 2 {
				parentEdge = (t.Sibling() + 2) % 3
			}
			parent := tr.Skel.GroupAt(t.Group()).Parent
			parentNeighbors := tr.Skel.TriAt(parent).Neighbors
			assert.True(parentNeighbors[parentEdge].IsValid(), "subdiv: Rule B fixup found no parent-level neighbor to subdivide")
			neighborParent := parentNeighbors[parentEdge]

			SubdivideTriangle(neighborParent, lvl-1, true, tr, sp)
			sp.DistanceTestDone.Set(int(neighborParent))

			if lvl-1 < sp.LevelNeedProcess {
				sp.LevelNeedProcess = lvl - 1
			}
		}
	}

	return groupID
}

// SubdivideLevelByDistance drains level lvl's distance-test queue,
// subdividing triangles within thresholdSubdiv[lvl] of pos and seeding
// children of already-subdivided triangles that are still near into the
// next level's queue. Requires lvl == sp.LevelNeedProcess; increments
// LevelNeedProcess on completion.
func SubdivideLevelByDistance(pos fixedmath.Vec3L, lvl int, tr *mesh.Terrain, sp *Scratchpad) {
	assert.True(lvl == sp.LevelNeedProcess, "subdiv: SubdivideLevelByDistance called with lvl != LevelNeedProcess")

	hasNextLevel := lvl+1 < sp.LevelMax
	lvlSP := &sp.Levels[lvl]

	for len(lvlSP.DistanceTestNext) != 0 {
		lvlSP.DistanceTestProcessing, lvlSP.DistanceTestNext = lvlSP.DistanceTestNext, lvlSP.DistanceTestProcessing[:0]

		sp.GrowToCapacity(tr.Skel.TriCapacity())

		for _, t := range lvlSP.DistanceTestProcessing {
			center := tr.Centers[t]
			near := fixedmath.IsDistanceNear(pos, center, sp.ThresholdSubdivSq[lvl])
			sp.DistanceCheckCount++

			if near {
				tri := tr.Skel.TriAt(t)
				if tri.IsSubdivided() {
					if hasNextLevel {
						g := tri.Children
						nextSP := &sp.Levels[lvl+1]
						for sib := 0; sib < 4; sib++ {
							child := skel.TriIDFrom(g, sib)
							nextSP.DistanceTestNext = append(nextSP.DistanceTestNext, child)
							sp.DistanceTestDone.Set(int(child))
						}
					}
				} else {
					SubdivideTriangle(t, lvl, hasNextLevel, tr, sp)
				}
			}

			// A Rule B fixup above may have shallowed the frontier; drain
			// it before resuming this level.
			for sp.LevelNeedProcess != lvl {
				SubdivideLevelByDistance(pos, sp.LevelNeedProcess, tr, sp)
			}
		}
	}

	assert.True(lvl == sp.LevelNeedProcess, "subdiv: LevelNeedProcess drifted past its own level")
	sp.LevelNeedProcess++
}
