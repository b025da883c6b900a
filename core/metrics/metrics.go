package metrics

import (
	"time"

	"github.com/12dit152/solarsim/core/model"
)

// SnapshotEvent is one engine evaluation to be recorded by a sink.
type SnapshotEvent struct {
	SessionID string
	Snapshot  model.Snapshot
	Mode      model.Mode
	Time      time.Time
}

// SnapshotSink records system snapshots for observability purposes.
type SnapshotSink interface {
	RecordSnapshot(ev SnapshotEvent) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordSnapshot(SnapshotEvent) error { return nil }
