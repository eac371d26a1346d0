package subdiv

import (
	"github.com/Faultbox/terraskel/internal/terrain/assert"
	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
)

// CheckInvariants walks every allocated triangle and panics on the first
// violation of I1-I5 (see the data model) or disagreement between a level's
// hasSubdividedNeighbor/hasNonSubdividedNeighbor bit and a fresh scan of the
// graph. Meant for test builds and the stress scenario, not the hot path.
func CheckInvariants(tr *mesh.Terrain) {
	triCapacity := tr.Skel.TriCapacity()
	for i := 0; i < triCapacity; i++ {
		t := skel.TriID(i)
		if !tr.Skel.GroupExists(t.Group()) {
			continue
		}
		tri := tr.Skel.TriAt(t)
		if !tri.Vertices[0].IsValid() {
			continue // unused sibling slot of a root's single-triangle group
		}
		group := tr.Skel.GroupAt(t.Group())

		subdivedNeighbors := 0
		nonSubdivedNeighbors := 0
		for edge, n := range tri.Neighbors {
			if n.IsValid() {
				if tr.Skel.IsTriSubdivided(n) {
					subdivedNeighbors++
				} else {
					nonSubdivedNeighbors++
				}
				assert.True(tr.Skel.FindNeighborIndex(n, t) >= 0, "subdiv: CheckInvariants: I1 adjacency symmetry violated")
			} else {
				// Center siblings never have a missing edge (I5); everyone
				// else's missing edge must be explained by the parent's
				// neighbor across that edge being a leaf.
				assert.True(t.Sibling() != 3, "subdiv: CheckInvariants: I5 violated, center sibling has a boundary edge")
				assert.True(group.Parent.IsValid(), "subdiv: CheckInvariants: boundary edge with no parent to explain it")
				// Corner child s's edge 0 lies on parent edge s, its edge 2
				// on parent edge s-1.
				parentEdge := t.Sibling()
				if edge == 2 {
					parentEdge = (t.Sibling() + 2) % 3
				}
				parentNeighbors := tr.Skel.TriAt(group.Parent).Neighbors
				assert.True(parentNeighbors[parentEdge].IsValid(), "subdiv: CheckInvariants: I3 (Rule B) violated, no parent-level neighbor")
				assert.True(!tr.Skel.IsTriSubdivided(parentNeighbors[parentEdge]), "subdiv: CheckInvariants: I3 (Rule B) violated, parent-neighbor is subdivided but edge is a boundary")
			}
		}

		assert.True(tri.IsSubdivided() || subdivedNeighbors < 2, "subdiv: CheckInvariants: I2 (Rule A) violated")

		depth := int(group.Depth)
		if depth >= len(tr.Levels) {
			continue
		}
		lvlTable := &tr.Levels[depth]
		if tri.IsSubdivided() {
			assert.True(lvlTable.HasNonSubdividedNeighbor.Test(i) == (nonSubdivedNeighbors != 0), "subdiv: CheckInvariants: I4 hasNonSubdividedNeighbor disagrees with graph")
			assert.True(!lvlTable.HasSubdividedNeighbor.Test(i), "subdiv: CheckInvariants: hasSubdividedNeighbor set on a subdivided triangle")
		} else {
			assert.True(lvlTable.HasSubdividedNeighbor.Test(i) == (subdivedNeighbors != 0), "subdiv: CheckInvariants: I4 hasSubdividedNeighbor disagrees with graph")
			assert.True(!lvlTable.HasNonSubdividedNeighbor.Test(i), "subdiv: CheckInvariants: hasNonSubdividedNeighbor set on a leaf triangle")
		}
	}
}
