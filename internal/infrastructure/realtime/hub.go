// Package realtime tracks which users are online and pushes events to their
// live WebSocket connection.
package realtime

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/api/metrics"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// Hub is the process-local presence map. Each user has at most one current
// connection; a newer connection replaces the older one.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]ports.Connection
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{conns: make(map[string]ports.Connection), log: log}
}

// Register makes conn the user's current connection and broadcasts the new
// online list.
func (h *Hub) Register(userID string, conn ports.Connection) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	h.conns[userID] = conn
	h.mu.Unlock()

	h.log.Debug().Str("user_id", userID).Msg("user connected")
	h.broadcastPresence()
}

// Unregister removes conn only if it is still the user's current connection,
// so a late disconnect of a replaced connection leaves the newer one in place.
func (h *Hub) Unregister(userID string, conn ports.Connection) {
	h.mu.Lock()
	cur, ok := h.conns[userID]
	removed := ok && cur == conn
	if removed {
		delete(h.conns, userID)
	}
	h.mu.Unlock()

	if removed {
		h.log.Debug().Str("user_id", userID).Msg("user disconnected")
		h.broadcastPresence()
	}
}

// Push hands event to the user's connection. It reports false when the user
// is offline or the connection's queue is full.
func (h *Hub) Push(userID string, event domain.Event) bool {
	h.mu.RLock()
	conn, ok := h.conns[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	if !conn.Send(event) {
		metrics.RealtimeDroppedTotal.Inc()
		h.log.Warn().Str("user_id", userID).Str("event", event.Type).Msg("realtime event dropped")
		return false
	}
	return true
}

// Online returns the IDs of connected users in ascending order.
func (h *Hub) Online() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.onlineLocked()
}

// Close closes every registered connection. Connections unregister themselves
// as they shut down.
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]ports.Connection, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.Close()
	}
}

func (h *Hub) onlineLocked() []string {
	ids := make([]string, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// broadcastPresence sends the current online list to every connection. Sends
// happen outside the lock.
func (h *Hub) broadcastPresence() {
	h.mu.RLock()
	ids := h.onlineLocked()
	conns := make([]ports.Connection, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	metrics.OnlineUsers.Set(float64(len(ids)))
	event := domain.Event{Type: domain.EventOnlineUsers, Payload: ids}
	for _, c := range conns {
		c.Send(event)
	}
}
