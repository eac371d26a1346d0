package subdiv

import (
	"github.com/Faultbox/terraskel/internal/terrain/assert"
	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
)

// UnsubdivideLevelByDistance floodfills out from level lvl's
// hasNonSubdividedNeighbor frontier, marking tryUnsubdiv on every
// fully-leaf-childed subdivided triangle farther than thresholdUnsubdiv[lvl]
// from pos. The larger unsubdiv threshold (vs. thresholdSubdiv) provides
// hysteresis against thrashing near a boundary.
func UnsubdivideLevelByDistance(pos fixedmath.Vec3L, lvl int, tr *mesh.Terrain, sp *Scratchpad) {
	lvlTable := &tr.Levels[lvl]
	lvlSP := &sp.Levels[lvl]

	maybeDistanceCheck := func(t skel.TriID) {
		if sp.DistanceTestDone.Test(int(t)) {
			return
		}
		tri := tr.Skel.TriAt(t)
		if !tri.IsSubdivided() {
			return // must be subdivided to be a candidate for unsubdivision
		}
		group := tr.Skel.GroupAt(tri.Children)
		for i := range group.Tri {
			if group.Tri[i].IsSubdivided() {
				return // all four children must themselves be leaves
			}
		}
		lvlSP.DistanceTestNext = append(lvlSP.DistanceTestNext, t)
		sp.DistanceTestDone.Set(int(t))
	}

	lvlTable.HasNonSubdividedNeighbor.Ones(func(i int) {
		maybeDistanceCheck(skel.TriID(i))
	})

	for len(lvlSP.DistanceTestNext) != 0 {
		lvlSP.DistanceTestProcessing, lvlSP.DistanceTestNext = lvlSP.DistanceTestNext, lvlSP.DistanceTestProcessing[:0]

		for _, t := range lvlSP.DistanceTestProcessing {
			assert.True(tr.Skel.TriAt(t).IsSubdivided(), "subdiv: non-subdivided triangle queued for unsubdivide distance test")
			center := tr.Centers[t]
			tooFar := !fixedmath.IsDistanceNear(pos, center, sp.ThresholdUnsubdivSq[lvl])

			if tooFar {
				sp.TryUnsubdiv.Set(int(t))
				for _, n := range tr.Skel.TriAt(t).Neighbors {
					if n.IsValid() {
						maybeDistanceCheck(n)
					}
				}
			}
		}
	}
}

// UnsubdivideLevelCheckRules rejects any tryUnsubdiv candidate whose removal
// would violate Rule A or Rule B in a neighbor, recursively: rejecting one
// candidate can cascade into rejecting others that depended on it also
// unsubdividing.
func UnsubdivideLevelCheckRules(lvl int, tr *mesh.Terrain, sp *Scratchpad) {
	violatesRules := func(t skel.TriID) bool {
		tri := tr.Skel.TriAt(t)
		subdivedNeighbors := 0

		for _, n := range tri.Neighbors {
			if !n.IsValid() {
				continue
			}
			neighborTri := tr.Skel.TriAt(n)
			// Pretend n is unsubdivided if it's already committed to
			// unsubdivide (unless a prior rejection overrides that).
			countsAsSubdivided := neighborTri.IsSubdivided() &&
				(!sp.TryUnsubdiv.Test(int(n)) || sp.CantUnsubdiv.Test(int(n)))
			if !countsAsSubdivided {
				continue
			}
			subdivedNeighbors++

			neighborEdge := tr.Skel.FindNeighborIndex(n, t)
			neighborGroup := tr.Skel.GroupAt(neighborTri.Children)
			var sideA, sideB int
			switch neighborEdge {
			case 0:
				sideA, sideB = 0, 1
			case 1:
				sideA, sideB = 1, 2
			case 2:
				sideA, sideB = 2, 0
			}
			if neighborGroup.Tri[sideA].IsSubdivided() || neighborGroup.Tri[sideB].IsSubdivided() {
				return true // Rule B would break across this edge
			}
		}

		return subdivedNeighbors >= 2 // Rule A
	}

	var checkRecurse func(t skel.TriID)
	checkRecurse = func(t skel.TriID) {
		if !violatesRules(t) {
			return
		}
		sp.CantUnsubdiv.Set(int(t))
		for _, n := range tr.Skel.TriAt(t).Neighbors {
			if n.IsValid() && sp.TryUnsubdiv.Test(int(n)) && !sp.CantUnsubdiv.Test(int(n)) {
				checkRecurse(n)
			}
		}
	}

	sp.TryUnsubdiv.Ones(func(i int) {
		if !sp.CantUnsubdiv.Test(i) {
			checkRecurse(skel.TriID(i))
		}
	})
}

// UnsubdivideLevelCommit applies every tryUnsubdiv candidate that survived
// UnsubdivideLevelCheckRules: fixes up neighbor frontier bits, invokes
// onUnsubdivide, and frees the group. Clears tryUnsubdiv and cantUnsubdiv
// when done.
func UnsubdivideLevelCommit(lvl int, tr *mesh.Terrain, sp *Scratchpad) {
	lvlTable := &tr.Levels[lvl]

	wontUnsubdivide := func(t skel.TriID) bool {
		return !sp.TryUnsubdiv.Test(int(t)) || sp.CantUnsubdiv.Test(int(t))
	}

	var toCommit []skel.TriID
	sp.TryUnsubdiv.Ones(func(i int) {
		if !sp.CantUnsubdiv.Test(i) {
			toCommit = append(toCommit, skel.TriID(i))
		}
	})

	for _, t := range toCommit {
		tri := tr.Skel.TriAt(t)
		assert.True(!lvlTable.HasSubdividedNeighbor.Test(int(t)), "subdiv: unsubdivide commit candidate unexpectedly marked hasSubdividedNeighbor")

		for _, n := range tri.Neighbors {
			if !n.IsValid() || !wontUnsubdivide(n) {
				continue
			}
			neighborTri := tr.Skel.TriAt(n)
			if neighborTri.IsSubdivided() {
				lvlTable.HasNonSubdividedNeighbor.Set(int(n))
				lvlTable.HasSubdividedNeighbor.Set(int(t))
			} else {
				neighborHasSubdivedNeighbor := false
				for _, nn := range neighborTri.Neighbors {
					if nn.IsValid() && nn != t && wontUnsubdivide(nn) && tr.Skel.IsTriSubdivided(nn) {
						neighborHasSubdivedNeighbor = true
						break
					}
				}
				lvlTable.HasSubdividedNeighbor.SetTo(int(n), neighborHasSubdivedNeighbor)
			}
		}

		g := tri.Children
		if lvl+1 < len(tr.Levels) {
			childTable := &tr.Levels[lvl+1]
			for sib := 0; sib < 4; sib++ {
				assert.True(!childTable.HasSubdividedNeighbor.Test(int(skel.TriIDFrom(g, sib))), "subdiv: child of about-to-vanish group unexpectedly has hasSubdividedNeighbor set")
			}
		}

		lvlTable.HasNonSubdividedNeighbor.Clear(int(t))

		if sp.OnUnsubdivide != nil {
			sp.OnUnsubdivide(t, tri, tr)
		}

		tr.Skel.Unsubdivide(t)
	}

	sp.TryUnsubdiv.Reset()
	sp.CantUnsubdiv.Reset()
}
