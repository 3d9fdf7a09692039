package wshub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
	log "github.com/sirupsen/logrus"
)

// Envelope is the JSON frame sent to clients: an event name and its
// payload.
type Envelope struct {
	Type string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ConnID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages the WebSocket connections of all players in the session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ConnID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[connID]; ok {
		close(c.Send)
		delete(h.clients, connID)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Push sends one event to one connection. Non-blocking: the message is
// dropped if the client's channel is full or the client is gone.
func (h *Hub) Push(connID string, event string, data any) {
	payload, err := json.Marshal(Envelope{Type: event, Data: data})
	if err != nil {
		log.WithError(err).Errorf("marshal %s push", event)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case c.Send <- payload:
	default:
		// Drop message if channel full
	}
}
