package websocket

import (
	"encoding/json"
	"sync"

	"realtime-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub is the connection registry: the single shared mapping from authenticated
// identity to live connection, plus the fan-out primitives built on it. A user
// has at most one live connection; registering a new one for the same identity
// displaces and closes the old one.
type Hub struct {
	// Registered clients map: UserID -> live client
	clients map[uuid.UUID]*Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		logger:  log,
	}
}

// Register associates the client's identity with its connection. Last
// connection wins: an existing entry for the same identity is replaced and the
// displaced connection shut down so the transport does not leak.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	old := h.clients[client.UserID]
	h.clients[client.UserID] = client
	h.mu.Unlock()

	if old != nil && old != client {
		old.close()
		h.logger.Info("Hub", "Displaced previous connection on reconnect", map[string]interface{}{"user_id": client.UserID})
	}

	h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})
}

// Unregister removes the mapping, but only if this exact client still owns the
// entry; a displaced connection's teardown must not evict its successor.
// Reports whether the entry was removed.
func (h *Hub) Unregister(client *Client) bool {
	h.mu.Lock()
	current, ok := h.clients[client.UserID]
	removed := ok && current == client
	if removed {
		delete(h.clients, client.UserID)
	}
	h.mu.Unlock()

	client.close()

	if removed {
		h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
	}
	return removed
}

// Lookup returns the live connection for an identity, if any.
func (h *Hub) Lookup(userID uuid.UUID) (*Client, bool) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	return client, ok
}

// Send fans one event out to a single identity. An offline target is a normal
// state, not a failure: the event is silently dropped.
func (h *Hub) Send(userID uuid.UUID, eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Data: payload})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal event", map[string]interface{}{"type": eventType, "error": err.Error()})
		return
	}

	client, ok := h.Lookup(userID)
	if !ok {
		return
	}

	if !client.deliver(data) {
		h.dropSlowClient(client)
	}
}

// Broadcast pushes one event to every registry member, the sender's own
// connection included. Used for presence changes only.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Data: payload})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal event", map[string]interface{}{"type": eventType, "error": err.Error()})
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		if !client.deliver(data) {
			h.dropSlowClient(client)
		}
	}
}

func (h *Hub) dropSlowClient(client *Client) {
	h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
	h.Unregister(client)
}
