package config

import "github.com/Faultbox/terraskel/pkg/fixedmath"

// FixedThresholds converts the configured per-level meter thresholds to the
// fixed-point units subdiv.NewScratchpad expects, at the configured scale.
func (t TerrainConfig) FixedThresholds() (subdiv, unsubdiv []int64) {
	subdiv = make([]int64, len(t.ThresholdSubdivMeters))
	for i, m := range t.ThresholdSubdivMeters {
		subdiv[i] = fixedmath.FromFloatScaled(m, t.Scale)
	}
	unsubdiv = make([]int64, len(t.ThresholdUnsubdivMeters))
	for i, m := range t.ThresholdUnsubdivMeters {
		unsubdiv[i] = fixedmath.FromFloatScaled(m, t.Scale)
	}
	return subdiv, unsubdiv
}
