package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	select {
	case got := <-ch:
		assert.Equal(t, "hello", got)
	default:
		t.Fatal("expected event")
	}
	bus.Unsubscribe(ch)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	for i := 0; i < 20; i++ {
		bus.Publish(i)
	}
	// The buffer holds 8 events; the rest were dropped, not blocked on.
	count := 0
	for {
		select {
		case <-ch:
			count++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 8, count)
}

func TestBusClose(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	bus.Close()
	_, ok := <-ch
	require.False(t, ok)
	// Publishing after close must not panic.
	bus.Publish(1)
	sub := bus.Subscribe()
	_, ok = <-sub
	assert.False(t, ok)
}

func TestBusFanOut(t *testing.T) {
	bus := New[int]()
	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Publish(7)
	assert.Equal(t, 7, <-a)
	assert.Equal(t, 7, <-b)
}
