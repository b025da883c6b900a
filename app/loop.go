package app

import (
	"context"
	"strings"
	"time"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/core/sim"
	"github.com/12dit152/solarsim/infra/web"
)

// runLoop is the integrator's tick scheduler. It is the only writer of the
// battery energy; ticks never overlap because they run on one goroutine.
func (s *Service) runLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.Simulation.TickIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	var prevUnsafe string
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			prevUnsafe = s.tick(elapsed, now, prevUnsafe)
		}
	}
}

// tick evaluates one instant and advances the stored battery energy. The
// controls and configuration are read as one consistent pair so an edit
// mid-tick cannot mix old and new parameters.
func (s *Service) tick(elapsed time.Duration, now time.Time, prevUnsafe string) string {
	s.mu.RLock()
	ctl := s.controls
	cfg := s.system
	s.mu.RUnlock()

	snap := sim.Evaluate(ctl.Inputs(s.bank.EnergyWh()), cfg)
	s.bank.Advance(elapsed, snap.NetBatteryFlowW)

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	unsafe := strings.Join(snap.UnsafeSegments(), ",")
	if unsafe != "" && unsafe != prevUnsafe {
		s.log.Warnf("wire segments over ampacity: %s (solar current %.1f A)", unsafe, snap.SolarWire.CurrentA)
	}

	s.bus.Publish(coremetrics.SnapshotEvent{
		SessionID: s.sessionID,
		Snapshot:  snap,
		Mode:      ctl.Mode,
		Time:      now,
	})
	return unsafe
}

// startBroadcast forwards snapshot events to the WebSocket hub.
func (s *Service) startBroadcast(ctx context.Context) {
	sub := s.bus.Subscribe()
	go func() {
		defer s.bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				msg, err := web.EncodeSnapshot(web.SnapshotPayload{
					SessionID: ev.SessionID,
					Time:      ev.Time,
					Snapshot:  ev.Snapshot,
				})
				if err != nil {
					s.log.Errorf("encode snapshot: %v", err)
					continue
				}
				s.web.Hub().Broadcast(msg)
			}
		}
	}()
}
