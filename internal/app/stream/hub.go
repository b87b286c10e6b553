/*
Package stream bridges the ledger's event bus to live WebSocket consumers.

This file defines the Hub, which tracks connected clients and fans every
published domain event out to them as JSON frames. A slow or dead client is
dropped rather than allowed to block the publisher.
*/
package stream

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codydotio/pulse/internal/pkg/logx"
)

// Frame is the wire encoding of one event pushed to stream consumers.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Frame types the hub emits on its own, outside of ledger events.
const (
	FrameConnected = "connected"
)

// Hub tracks all connected stream clients and broadcasts event frames to
// them. It implements the ledger.Listener contract through Broadcast, so the
// whole hub subscribes to the bus as a single listener.
type Hub struct {
	// mu protects the clients set.
	mu sync.RWMutex

	clients map[*Client]struct{}

	logger zerolog.Logger
}

// NewHub constructs an empty stream hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Broadcast encodes the event as a Frame and queues it to every connected
// client. Clients whose send queue is full are unregistered on the spot;
// the publishing ledger operation never waits on a consumer.
func (h *Hub) Broadcast(event string, payload any) {
	frameBytes, err := json.Marshal(Frame{Type: event, Data: payload})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling event frame for broadcast.")
		return
	}

	h.mu.RLock()
	stale := make([]*Client, 0)
	for client := range h.clients {
		select {
		case client.send <- frameBytes:
		default:
			h.logger.Warn().Msg("Client send channel full, dropping client.")
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.Unregister(client)
	}
}

// Register adds a client to the hub and queues its connected frame.
// The frame is queued before the client becomes visible to Broadcast, so a
// consumer always sees it first.
func (h *Hub) Register(client *Client) {
	client.sendFrame(Frame{Type: FrameConnected})

	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Int("total_clients", total).Msg("Stream client connected.")
}

// Unregister removes a client from the hub and closes its send queue.
// The close happens under the write lock: Broadcast only sends while holding
// the read lock with the client still in the set, so no send can race the
// close. Unregistering a client twice is harmless.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()

	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}

	delete(h.clients, client)
	close(client.send)
	total := len(h.clients)

	h.mu.Unlock()

	h.logger.Info().Int("total_clients", total).Msg("Stream client disconnected.")
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Shutdown disconnects every remaining client.
func (h *Hub) Shutdown() {
	h.mu.Lock()

	for client := range h.clients {
		close(client.send)
	}
	h.clients = make(map[*Client]struct{})

	h.mu.Unlock()

	h.logger.Info().Msg("Hub shutdown complete.")
}
