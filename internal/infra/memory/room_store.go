package memory

import (
	"sync"
	"time"

	"mock-interview-service/internal/app"
)

// RoomStore is an in-memory implementation of app.RoomRepository.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*app.Room
	now   func() time.Time
}

func NewRoomStore() *RoomStore {
	return NewRoomStoreWithClock(time.Now)
}

// NewRoomStoreWithClock is test-only for deterministic creation times.
func NewRoomStoreWithClock(now func() time.Time) *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*app.Room),
		now:   now,
	}
}

func (s *RoomStore) GetOrCreate(roomID string) (*app.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[roomID]; ok {
		return room, false
	}
	room := app.NewRoomWithClock(roomID, s.now)
	s.rooms[roomID] = room
	return room, true
}

func (s *RoomStore) Get(roomID string) (*app.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	return room, ok
}

func (s *RoomStore) All() []*app.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*app.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		out = append(out, room)
	}
	return out
}
