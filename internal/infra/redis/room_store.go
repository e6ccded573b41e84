package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"mock-interview-service/internal/app"
)

const roomSetKey = "interview:rooms"

// RoomStore is a Redis-aware implementation of app.RoomRepository.
// Room state and broadcast stay in process; Redis records which rooms exist so
// other instances and operators can see them. Writes to Redis are best-effort.
type RoomStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	rooms  map[string]*app.Room
}

func NewRoomStore(client *redis.Client, ttl time.Duration) *RoomStore {
	return &RoomStore{
		client: client,
		ttl:    ttl,
		rooms:  make(map[string]*app.Room),
	}
}

// GetOrCreate is called on every join, so it also refreshes the room's
// last-seen key; a room nobody has joined for ttl drops out of Redis.
func (s *RoomStore) GetOrCreate(roomID string) (*app.Room, bool) {
	s.mu.Lock()
	room, ok := s.rooms[roomID]
	if !ok {
		room = app.NewRoom(roomID)
		s.rooms[roomID] = room
	}
	s.mu.Unlock()

	s.touch(room.ID())
	return room, !ok
}

func (s *RoomStore) touch(roomID string) {
	ctx := context.Background()
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(roomID), time.Now().UTC().Format(time.RFC3339), s.ttl)
	pipe.SAdd(ctx, roomSetKey, roomID)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Str("module", "redis.room_store").Str("room", roomID).Err(err).Msg("failed to mark room in redis")
	}
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

// KnownRooms lists every room id any instance has registered, live or not.
func (s *RoomStore) KnownRooms(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, roomSetKey).Result()
}

func (s *RoomStore) key(roomID string) string {
	return "interview:room:" + roomID
}
