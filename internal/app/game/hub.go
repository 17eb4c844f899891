/*
Package game contains the core logic for the multiplayer session server.

This file defines the Hub, the in-process connection table. It maps connection
ids to their clients and performs the local half of event delivery; the bus
layer composes it with the registry and the pub/sub backend to form the full
broadcast gateway.
*/
package game

import (
	"sync"

	"github.com/rs/zerolog"

	"arena/internal/pkg/logx"
)

// Hub tracks every client connected to this process, keyed by connection id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  zerolog.Logger
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID()] = c
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Str("conn_id", c.ID()).Int("total_conns", total).Msg("Client registered.")
}

// Unregister removes the client with the given connection id, if present.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	_, ok := h.clients[connID]
	if ok {
		delete(h.clients, connID)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info().Str("conn_id", connID).Int("total_conns", total).Msg("Client unregistered.")
	}
}

// Send enqueues raw bytes to a single local connection. Returns false if the
// connection is unknown here or its send queue is full.
func (h *Hub) Send(connID string, data []byte) bool {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	return c.enqueue(data)
}

// SendExcept enqueues raw bytes to every local connection except the named one.
func (h *Hub) SendExcept(exceptID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == exceptID {
			continue
		}
		if !c.enqueue(data) {
			h.logger.Warn().Str("conn_id", id).Msg("Client send queue full, dropping broadcast.")
		}
	}
}

// Len returns the number of clients currently connected to this process.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
