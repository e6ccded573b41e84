package http

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"mock-interview-service/internal/domain"
)

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// client is one websocket connection's outbound side.
type client struct {
	id   string
	send chan []byte
}

func newClient(id string, buffer int) *client {
	return &client{id: id, send: make(chan []byte, buffer)}
}

// enqueue never blocks: when the buffer is full the oldest message is dropped.
func (c *client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
		return
	default:
	}
	select {
	case <-c.send:
	default:
	}
	select {
	case c.send <- msg:
	default:
		log.Warn().Str("module", "ws.hub").Str("conn", c.id).Msg("dropped message for slow client")
	}
}

// Hub tracks which connections belong to which room and implements
// app.Broadcaster over them.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	clients map[*client]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*client]struct{}),
		clients: make(map[*client]map[string]struct{}),
	}
}

func (h *Hub) join(roomID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[roomID] = members
	}
	members[c] = struct{}{}

	joined, ok := h.clients[c]
	if !ok {
		joined = make(map[string]struct{})
		h.clients[c] = joined
	}
	joined[roomID] = struct{}{}
}

// leaveAll detaches c from every room. After it returns no broadcast will
// write to c.send, so the caller may close it.
func (h *Hub) leaveAll(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID := range h.clients[c] {
		members := h.rooms[roomID]
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	delete(h.clients, c)
}

// Broadcast sends the event to every connection in the room.
func (h *Hub) Broadcast(roomID, event string, snapshot domain.RoomSnapshot) {
	msg, err := json.Marshal(envelope{Type: event, Payload: snapshot})
	if err != nil {
		log.Error().Str("module", "ws.hub").Str("room", roomID).Err(err).Msg("marshal broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		c.enqueue(msg)
	}
}

// Members returns the number of live connections in a room.
func (h *Hub) Members(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
