package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	hub := NewHub()
	chA, cleanupA := hub.Subscribe("a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("b")
	defer cleanupB()

	delivered := hub.Broadcast(Event{Event: "booking", Data: "x"})

	assert.Equal(t, 2, delivered)
	evA := <-chA
	evB := <-chB
	assert.Equal(t, "a", evA.WorkerID)
	assert.Equal(t, "b", evB.WorkerID)
	assert.Equal(t, "booking", evB.Event)
}

func TestHub_BroadcastReachesEveryStreamOfAWorker(t *testing.T) {
	hub := NewHub()
	desk, cleanupDesk := hub.Subscribe("a")
	defer cleanupDesk()
	phone, cleanupPhone := hub.Subscribe("a")
	defer cleanupPhone()

	assert.Equal(t, 2, hub.Broadcast(Event{Event: "booking"}))
	assert.Len(t, desk, 1)
	assert.Len(t, phone, 1)
}

func TestHub_BroadcastDropsWhenFull(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("a")
	defer cleanup()

	for i := 0; i < cap(ch); i++ {
		require.Equal(t, 1, hub.Broadcast(Event{Event: "booking"}))
	}

	assert.Equal(t, 0, hub.Broadcast(Event{Event: "booking"}))
	assert.Len(t, ch, cap(ch))
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("a")
	assert.Equal(t, 1, hub.TotalSubscribers())

	cleanup()
	cleanup()

	assert.Equal(t, 0, hub.TotalSubscribers())
	assert.Equal(t, 0, hub.Broadcast(Event{Event: "booking"}))
}
