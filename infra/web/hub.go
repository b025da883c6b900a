package web

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/12dit152/solarsim/infra/logger"
)

// client represents one connected WebSocket renderer.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub manages WebSocket clients and broadcasts snapshot messages to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
	log     logger.Logger
}

// NewHub creates an empty hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{clients: make(map[*client]bool), log: log}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast sends a message to all connected clients. Clients with a full
// buffer skip the message rather than stalling the loop.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Debugf("client buffer full, dropping message")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	for {
		// Renderers are read-only; drain until the peer disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
