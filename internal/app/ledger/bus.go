/*
Package ledger contains the core logic for the Pulse social ledger.

This file defines the event Bus, a synchronous fan-out publisher. Ledger
operations publish named domain events through it; independent listeners
(the WebSocket hub, test probes) subscribe and receive every event on the
publisher's goroutine. A listener that panics is removed from the subscriber
set so one broken consumer cannot take down the publisher or its peers.
*/
package ledger

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/codydotio/pulse/internal/pkg/logx"
)

// Domain event names published by ledger operations.
const (
	EventUserJoined = "user_joined"
	EventNewPulse   = "new_pulse"
	EventResonance  = "resonance"
)

// UserJoinedPayload is the payload of the user_joined event.
type UserJoinedPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResonancePayload is the payload of the resonance event: the new resonance
// record together with the updated pulse snapshot.
type ResonancePayload struct {
	Resonance Resonance `json:"resonance"`
	Pulse     Pulse     `json:"pulse"`
}

// Listener receives a published event and its payload. Payloads are value
// snapshots; a listener can hold them indefinitely without touching live
// ledger state.
type Listener func(event string, payload any)

// Bus is a synchronous fan-out publisher. Delivery is best-effort,
// at-most-once per subscriber per event, with no replay and no backpressure.
// Within one listener, invocations preserve publish order because the bus
// invokes sequentially on the publishing goroutine.
type Bus struct {
	// mu protects the subscriber registry.
	mu sync.Mutex

	// subscribers maps subscription ids to listeners. order preserves
	// subscription order for deterministic fan-out.
	subscribers map[int]Listener
	order       []int
	nextID      int

	logger zerolog.Logger
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[int]Listener),
		logger:      logx.Logger().With().Str("component", "Bus").Logger(),
	}
}

// Subscribe registers a listener and returns the function that removes it
// again. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	b.subscribers[id] = l
	b.order = append(b.order, id)

	return func() { b.remove(id) }
}

// remove deletes the subscription with the given id.
func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[id]; !ok {
		return
	}

	delete(b.subscribers, id)
	for i, sid := range b.order {
		if sid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish invokes every current subscriber with (event, payload), in
// subscription order, on the caller's goroutine. A subscriber that panics is
// recovered and dropped from the registry; remaining subscribers still
// receive the event.
func (b *Bus) Publish(event string, payload any) {
	b.mu.Lock()
	ids := make([]int, len(b.order))
	copy(ids, b.order)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, b.subscribers[id])
	}
	b.mu.Unlock()

	for i, l := range listeners {
		if l == nil {
			continue
		}
		b.invoke(ids[i], l, event, payload)
	}
}

// invoke calls one listener, converting a panic into removal.
func (b *Bus) invoke(id int, l Listener, event string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn().
				Str("event", event).
				Interface("panic", r).
				Msg("Subscriber panicked during fan-out. Removing subscriber.")
			b.remove(id)
		}
	}()

	l(event, payload)
}

// SubscriberCount reports how many listeners are currently registered.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subscribers)
}
