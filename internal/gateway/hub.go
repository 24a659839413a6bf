// Package gateway exposes signals to dashboard clients over WebSocket and
// a small REST API. The hub fans scored signals out to connected clients
// and replays each pair's latest signal to newly connected ones.
package gateway

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"forex-signalsv1/internal/model"
)

// Hub manages WebSocket clients and signal fan-out.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	latest  map[string]json.RawMessage
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		latest:  make(map[string]json.RawMessage),
	}
}

// Broadcast envelopes a signal and fans it out to every connected client.
// The envelope is cached as the pair's latest for late joiners. Clients
// with full send queues are skipped, never blocked on.
func (h *Hub) Broadcast(sig model.Signal) {
	envelope, err := json.Marshal(map[string]interface{}{
		"type":   "signal",
		"pair":   sig.Pair,
		"signal": &sig,
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Printf("[gateway] envelope marshal error: %v", err)
		return
	}

	h.mu.Lock()
	h.latest[sig.Pair] = envelope
	for client := range h.clients {
		select {
		case client.send <- envelope:
		default:
		}
	}
	h.mu.Unlock()
}

// addClient registers a client and replays the latest signal per pair.
func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	for _, envelope := range h.latest {
		select {
		case c.send <- envelope:
		default:
		}
	}
	h.mu.Unlock()

	log.Printf("[gateway] ws client connected (%d total)", count)
}

// RemoveClient removes a client from the hub.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected WS clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
