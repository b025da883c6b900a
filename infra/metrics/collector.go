package metrics

import (
	"context"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
	"github.com/12dit152/solarsim/infra/logger"
	"github.com/12dit152/solarsim/internal/eventbus"
)

// StartCollector subscribes to the snapshot bus and forwards events to the
// sink. It stops when the context is canceled.
func StartCollector(ctx context.Context, bus *eventbus.Bus[coremetrics.SnapshotEvent], sink coremetrics.SnapshotSink, log logger.Logger) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordSnapshot(ev); err != nil && log != nil {
					log.Errorf("record snapshot: %v", err)
				}
			}
		}
	}()
}
