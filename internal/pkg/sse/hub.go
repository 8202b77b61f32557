package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	WorkerID string
	Event    string
	Data     interface{}
}

// Hub fans events out to connected staff, keyed by worker id
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a worker and returns the event channel and cleanup function
func (h *Hub) Subscribe(workerID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[workerID] == nil {
		h.subscribers[workerID] = make(map[chan Event]struct{})
	}
	h.subscribers[workerID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[workerID], ch)
			close(ch)
			if len(h.subscribers[workerID]) == 0 {
				delete(h.subscribers, workerID)
			}
		})
	}

	return ch, cleanup
}

// Broadcast sends an event to every connected subscriber, stamped with the
// subscriber's worker id, and returns how many streams accepted it. A full
// stream is a slow consumer and misses the event.
func (h *Hub) Broadcast(event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for workerID, subs := range h.subscribers {
		e := event
		e.WorkerID = workerID
		for ch := range subs {
			select {
			case ch <- e:
				delivered++
			default:
			}
		}
	}
	return delivered
}

// TotalSubscribers returns the number of open streams across all workers
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
