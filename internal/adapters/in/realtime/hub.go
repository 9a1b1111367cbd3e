// Package realtime is the in-process fan-out for dispatch events.
//
// Connections join named channels (one private channel per courier and a
// shared admin channel). Delivery is best effort and at most once: a message
// for a channel without members, or for a member whose send buffer is full,
// is dropped.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"dispatch/internal/core/ports"
)

// Envelope is the wire format of every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

var _ ports.Publisher = (*Hub)(nil)

type Hub struct {
	mu          sync.RWMutex
	channels    map[string]map[*Client]struct{}
	memberships map[*Client][]string

	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		channels:    make(map[string]map[*Client]struct{}),
		memberships: make(map[*Client][]string),
		logger:      logger.With("component", "RealtimeHub"),
	}
}

// Join adds c to channel. Joining twice is a no-op.
func (h *Hub) Join(channel string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.channels[channel]
	if !ok {
		members = make(map[*Client]struct{})
		h.channels[channel] = members
	}
	if _, ok = members[c]; ok {
		return
	}
	members[c] = struct{}{}
	h.memberships[c] = append(h.memberships[c], channel)
}

// Leave removes c from every channel and closes its send buffer.
// The buffer is closed under the write lock, so no Deliver can be sending to it.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channels, ok := h.memberships[c]
	if !ok {
		return
	}
	for _, channel := range channels {
		members := h.channels[channel]
		delete(members, c)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	delete(h.memberships, c)
	close(c.send)
}

// Publish encodes the event and delivers it to the local members of channel.
func (h *Hub) Publish(_ context.Context, channel, event string, payload any) error {
	msg, err := Encode(event, payload)
	if err != nil {
		return err
	}
	h.Deliver(channel, msg)
	return nil
}

// Deliver hands an encoded message to every member of channel without blocking
// and returns how many members accepted it.
func (h *Hub) Deliver(channel string, msg []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.channels[channel] {
		select {
		case c.send <- msg:
			delivered++
		default:
			h.logger.Debug("dropped message for slow connection", "channel", channel, "connId", c.ID())
		}
	}
	return delivered
}

// Members returns the number of connections currently in channel.
func (h *Hub) Members(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
