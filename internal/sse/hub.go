// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package sse fans catalog change events out to Server-Sent-Events streams.
package sse

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// clientBuffer is the number of pending events a stream may hold.
const clientBuffer = 16

// client represents one open event stream of a user.
type client struct {
	ch     chan string
	connID string
}

// Hub manages event streams per user.
// A user may hold several streams (tabs, devices); each has its own connection ID.
type Hub struct {
	clients   map[int64][]client
	done      chan struct{}
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64][]client),
		done:    make(chan struct{}),
	}
}

// Close signals every open stream to finish. Safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Done is closed once the hub shuts down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Register adds a stream for the given connection and user.
// Returns the channel to receive events on.
func (h *Hub) Register(connID string, userID int64) chan string {
	ch := make(chan string, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[userID] = append(h.clients[userID], client{ch: ch, connID: connID})

	return ch
}

// Unregister removes a stream and closes its channel.
func (h *Hub) Unregister(userID int64, ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[userID] = lo.Reject(h.clients[userID], func(c client, _ int) bool {
		return c.ch == ch
	})
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}

	close(ch)
}

// SendToUser sends a message to all streams of the given user.
func (h *Hub) SendToUser(userID int64, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[userID] {
		h.deliver(c, message)
	}
}

// Broadcast sends a message to all connected streams.
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for _, c := range clients {
			h.deliver(c, message)
		}
	}
}

// deliver never blocks; a full stream misses the event. Callers hold the read lock.
func (h *Hub) deliver(c client, message string) {
	select {
	case c.ch <- message:
	default:
		slog.Debug("catalog_event_dropped", "conn_id", c.connID)
	}
}

// ClientCount returns the total number of open streams.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return lo.SumBy(lo.Values(h.clients), func(clients []client) int {
		return len(clients)
	})
}

// UserCount returns the number of unique users with open streams.
func (h *Hub) UserCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
