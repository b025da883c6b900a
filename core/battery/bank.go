// Package battery owns the only quantity with a lifecycle across engine
// calls: the stored energy of the battery bank. The engine reads it and
// proposes a net flow; the integrator here is its single writer.
package battery

import (
	"sync"
	"time"

	"github.com/12dit152/solarsim/core/model"
)

// Bank holds the persisted battery energy and advances it over time.
// Advance must never run concurrently for the same Bank; the host's tick
// scheduler guarantees serial execution and the mutex covers concurrent
// readers.
type Bank struct {
	mu           sync.Mutex
	energyWh     float64
	maxWh        float64
	acceleration float64
}

// NewBank creates a bank at the given initial state-of-charge fraction of
// the configured capacity. acceleration scales wall-clock seconds into
// simulated time (1 = real time).
func NewBank(cfg model.SystemConfig, initialSoC, acceleration float64) *Bank {
	maxWh := cfg.MaxBatteryWh()
	if acceleration <= 0 {
		acceleration = 1
	}
	b := &Bank{maxWh: maxWh, acceleration: acceleration}
	b.energyWh = clamp(initialSoC*maxWh, 0, maxWh)
	return b
}

// EnergyWh returns the current stored energy.
func (b *Bank) EnergyWh() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.energyWh
}

// SetEnergyWh overwrites the stored energy, clamped to capacity. Used for
// direct state-of-charge injection by the host.
func (b *Bank) SetEnergyWh(wh float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.energyWh = clamp(wh, 0, b.maxWh)
}

// SetConfig re-clamps the stored energy against an edited capacity so the
// reported percentage never exceeds 100.
func (b *Bank) SetConfig(cfg model.SystemConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maxWh = cfg.MaxBatteryWh()
	b.energyWh = clamp(b.energyWh, 0, b.maxWh)
}

// Advance integrates netFlowW over the elapsed wall-clock time, scaled by
// the acceleration factor, and returns the new stored energy. A zero or
// negative elapsed time (clock anomaly) is a no-op.
func (b *Bank) Advance(elapsed time.Duration, netFlowW float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if elapsed <= 0 {
		return b.energyWh
	}
	simHours := elapsed.Seconds() * b.acceleration / 3600
	b.energyWh = clamp(b.energyWh+netFlowW*simHours, 0, b.maxWh)
	return b.energyWh
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
