package config

import "testing"

func TestFixedThresholdsScalesByScale(t *testing.T) {
	tc := TerrainConfig{
		Scale:                   10,
		ThresholdSubdivMeters:   []float64{2, 1},
		ThresholdUnsubdivMeters: []float64{3, 2},
	}

	subdiv, unsubdiv := tc.FixedThresholds()

	if subdiv[0] != 2<<10 || subdiv[1] != 1<<10 {
		t.Errorf("got subdiv %v, want [%d %d]", subdiv, 2<<10, 1<<10)
	}
	if unsubdiv[0] != 3<<10 || unsubdiv[1] != 2<<10 {
		t.Errorf("got unsubdiv %v, want [%d %d]", unsubdiv, 3<<10, 2<<10)
	}
}
