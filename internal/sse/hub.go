package sse

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Message is one SSE frame queued for a client.
type Message struct {
	Event string
	Data  []byte
}

// Client represents a connected shopper stream.
type Client struct {
	ID     string
	UserID string
	Events chan Message
}

// Hub manages SSE client connections per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	byUser  map[string]map[string]*Client
	closed  bool
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		byUser:  make(map[string]map[string]*Client),
	}
}

// Register adds a new client for userID and returns it for streaming. It
// returns nil once the hub is closed.
func (h *Hub) Register(userID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	c := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Events: make(chan Message, 64),
	}
	h.clients[c.ID] = c
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[string]*Client)
	}
	h.byUser[userID][c.ID] = c
	log.Info().Str("client_id", c.ID).Str("user_id", userID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	h.remove(c)
	log.Info().Str("client_id", clientID).Str("user_id", c.UserID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
}

// remove must be called with h.mu held.
func (h *Hub) remove(c *Client) {
	close(c.Events)
	delete(h.clients, c.ID)
	if peers := h.byUser[c.UserID]; peers != nil {
		delete(peers, c.ID)
		if len(peers) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
}

// SendToUser queues a message on every stream of userID.
// Non-blocking: drops message if client buffer is full.
func (h *Hub) SendToUser(userID string, msg Message) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, c := range h.byUser[userID] {
		select {
		case c.Events <- msg:
			sent++
		default:
			log.Warn().Str("client_id", c.ID).Str("user_id", userID).Msg("SSE client buffer full, dropping event")
		}
	}
	return sent
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// UserClientCount returns the number of streams open for userID.
func (h *Hub) UserClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}

// Close disconnects every client and refuses new ones. Streams observe the
// closed channel and return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for _, c := range h.clients {
		h.remove(c)
	}
}
