package subdiv

import (
	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
)

// Driver runs full subdivision passes against a terrain and scratchpad
// pair. It is the thin entry point a host's simulation loop calls once per
// frame; everything else in this package is a primitive it composes.
//
// Roots are the permanent level-0 triangles (the 20 icosahedron faces, in
// the usual setup) that never get freed even when unsubdivided back to
// leaves. Nothing else reliably re-seeds level 0's distance-test queue
// between frames, so the driver re-queues every root at the start of each
// pass's subdivide half.
type Driver struct {
	Terrain    *mesh.Terrain
	Scratchpad *Scratchpad
	Roots      []skel.TriID
}

// NewDriver pairs a terrain and scratchpad with the fixed set of level-0
// root triangles that anchor every subdivide pass.
func NewDriver(tr *mesh.Terrain, sp *Scratchpad, roots []skel.TriID) *Driver {
	return &Driver{Terrain: tr, Scratchpad: sp, Roots: roots}
}

// RunPass runs one full frame against observer position pos: unsubdivide
// passes from the deepest level to the shallowest, then subdivide passes
// from the shallowest level to the deepest. DistanceTestDone is shared
// across both halves of the pass and reset once at the start, as are
// DistanceCheckCount and every level's distance-test queue.
func (d *Driver) RunPass(pos fixedmath.Vec3L) {
	tr, sp := d.Terrain, d.Scratchpad
	sp.DistanceTestDone.Reset()
	sp.DistanceCheckCount = 0
	for lvl := range sp.Levels {
		sp.Levels[lvl].DistanceTestNext = sp.Levels[lvl].DistanceTestNext[:0]
	}

	for lvl := sp.LevelMax - 1; lvl >= 0; lvl-- {
		UnsubdivideLevelByDistance(pos, lvl, tr, sp)
		UnsubdivideLevelCheckRules(lvl, tr, sp)
		UnsubdivideLevelCommit(lvl, tr, sp)
	}

	sp.LevelNeedProcess = 0
	rootSP := &sp.Levels[0]
	for _, root := range d.Roots {
		rootSP.DistanceTestNext = append(rootSP.DistanceTestNext, root)
		sp.DistanceTestDone.Set(int(root))
	}
	for lvl := 0; lvl < sp.LevelMax; lvl++ {
		SubdivideLevelByDistance(pos, lvl, tr, sp)
	}
}
