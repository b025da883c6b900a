package metrics

import coremetrics "github.com/12dit152/solarsim/core/metrics"

// MultiSink fans snapshots out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.SnapshotSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.SnapshotSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSnapshot forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSnapshot(ev); err != nil {
			return err
		}
	}
	return nil
}
