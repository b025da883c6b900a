package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	coremetrics "github.com/12dit152/solarsim/core/metrics"
)

type recordingSink struct {
	events []coremetrics.SnapshotEvent
	err    error
}

func (r *recordingSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestMultiSinkForwardsToAll(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b)

	assert.NoError(t, m.RecordSnapshot(sampleEvent()))
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, "test-session", a.events[0].SessionID)
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{err: boom}
	b := &recordingSink{}
	m := NewMultiSink(a, b)

	err := m.RecordSnapshot(sampleEvent())
	assert.ErrorIs(t, err, boom)
	// The failing sink stops the fan-out.
	assert.Empty(t, b.events)
}

func TestMultiSinkEmpty(t *testing.T) {
	assert.NoError(t, NewMultiSink().RecordSnapshot(sampleEvent()))
}
