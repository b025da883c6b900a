package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeWireFormulas(t *testing.T) {
	// 500 W at 25 V over 20 ft of 10 mm2 copper.
	seg := AnalyzeWire(500, 25, 20, 10)

	current := 500.0 / 25.0
	resistance := 0.0172 * (20 * 0.3048) * 2 / 10

	assert.Equal(t, current, seg.CurrentA)
	assert.Equal(t, current*current*resistance, seg.PowerLossW)
	assert.Equal(t, current*resistance, seg.VoltageDropV)
	assert.True(t, seg.IsSafe)
}

func TestAnalyzeWireSafetyBoundary(t *testing.T) {
	// 2.5 mm2 is rated for exactly 12.5 A under the 5 A/mm2 heuristic.
	atLimit := AnalyzeWire(12.5*230, 230, 20, 2.5)
	assert.True(t, atLimit.IsSafe)
	assert.InDelta(t, 12.5, atLimit.CurrentA, 1e-9)

	over := AnalyzeWire(13*230, 230, 20, 2.5)
	assert.False(t, over.IsSafe)
	// The current must be reported as-is, never clamped.
	assert.InDelta(t, 13, over.CurrentA, 1e-9)
}

func TestAnalyzeWireDegenerateInputs(t *testing.T) {
	for name, seg := range map[string]struct{ power, voltage float64 }{
		"zero power":       {0, 25},
		"negative power":   {-10, 25},
		"zero voltage":     {100, 0},
		"negative voltage": {100, -5},
	} {
		got := AnalyzeWire(seg.power, seg.voltage, 20, 10)
		assert.Equal(t, 0.0, got.CurrentA, name)
		assert.Equal(t, 0.0, got.PowerLossW, name)
		assert.Equal(t, 0.0, got.VoltageDropV, name)
		assert.True(t, got.IsSafe, name)
	}
}

func TestAnalyzeWireLossScalesWithLength(t *testing.T) {
	short := AnalyzeWire(500, 25, 10, 10)
	long := AnalyzeWire(500, 25, 40, 10)
	assert.InDelta(t, 4*short.PowerLossW, long.PowerLossW, 1e-9)
}
