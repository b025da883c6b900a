package battery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/12dit152/solarsim/core/model"
)

func testConfig() model.SystemConfig {
	cfg := model.DefaultSystemConfig()
	return cfg // 300 Ah x 24 V = 7200 Wh
}

func TestNewBankInitialCharge(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 10)
	assert.Equal(t, 3600.0, b.EnergyWh())

	empty := NewBank(testConfig(), 0, 10)
	assert.Equal(t, 0.0, empty.EnergyWh())

	over := NewBank(testConfig(), 1.5, 10)
	assert.Equal(t, 7200.0, over.EnergyWh())
}

func TestAdvanceCharges(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 1)
	// 360 W for one simulated hour adds 360 Wh.
	got := b.Advance(time.Hour, 360)
	assert.InDelta(t, 3960, got, 1e-9)
}

func TestAdvanceAcceleration(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 10)
	// One wall-clock second at 10x is 10 simulated seconds.
	got := b.Advance(time.Second, 360)
	assert.InDelta(t, 3600+360*10.0/3600, got, 1e-9)
}

func TestAdvanceDischargesAndClampsAtZero(t *testing.T) {
	b := NewBank(testConfig(), 0.01, 1)
	got := b.Advance(10*time.Hour, -500)
	assert.Equal(t, 0.0, got)
}

func TestAdvanceClampsAtCapacity(t *testing.T) {
	b := NewBank(testConfig(), 0.99, 1)
	got := b.Advance(10*time.Hour, 1000)
	assert.Equal(t, 7200.0, got)
}

func TestAdvanceClockAnomalyIsNoop(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 1)
	assert.Equal(t, 3600.0, b.Advance(0, 500))
	assert.Equal(t, 3600.0, b.Advance(-time.Second, 500))
}

func TestAdvanceSequenceStaysInRange(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 10)
	flows := []float64{500, -1200, 3000, -3000, 0, 720, -80}
	for i := 0; i < 500; i++ {
		got := b.Advance(time.Second, flows[i%len(flows)])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 7200.0)
	}
}

func TestSetConfigReclamps(t *testing.T) {
	b := NewBank(testConfig(), 1, 1)
	assert.Equal(t, 7200.0, b.EnergyWh())

	smaller := testConfig()
	smaller.BatteryCapacityAh = 100 // 2400 Wh
	b.SetConfig(smaller)
	assert.Equal(t, 2400.0, b.EnergyWh())
}

func TestSetEnergyClamps(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 1)
	b.SetEnergyWh(-10)
	assert.Equal(t, 0.0, b.EnergyWh())
	b.SetEnergyWh(99999)
	assert.Equal(t, 7200.0, b.EnergyWh())
}

func TestZeroAccelerationDefaultsToRealTime(t *testing.T) {
	b := NewBank(testConfig(), 0.5, 0)
	got := b.Advance(time.Hour, 100)
	assert.InDelta(t, 3700, got, 1e-9)
}
