package app

import (
	"fmt"
	"sync"
	"time"

	"mock-interview-service/internal/domain"
)

// RoomRepository abstracts where rooms live (in-memory, Redis-mirrored, etc).
// Rooms are never removed for the lifetime of the process.
type RoomRepository interface {
	GetOrCreate(roomID string) (*Room, bool)
	Get(roomID string) (*Room, bool)
	All() []*Room
}

// Broadcaster fans a room snapshot out to every connection in the room.
// Implementations must not block; they are called with the room lock held.
type Broadcaster interface {
	Broadcast(roomID, event string, snapshot domain.RoomSnapshot)
}

// Room guards one domain.Room. Every transition holds mu from read to broadcast.
type Room struct {
	mu    sync.Mutex
	state domain.Room
}

// NewRoom is exported for infrastructure layers that create rooms on demand.
func NewRoom(id string) *Room {
	return NewRoomWithClock(id, time.Now)
}

// NewRoomWithClock is test-only for deterministic timestamps.
func NewRoomWithClock(id string, now func() time.Time) *Room {
	return &Room{
		state: domain.Room{
			ID:           domain.NormalizeRoomID(id),
			Participants: []*domain.Participant{},
			Status:       domain.StatusLobby,
			CreatedAt:    now(),
		},
	}
}

// ID returns the normalized room id.
func (r *Room) ID() string {
	return r.state.ID
}

// Snapshot returns a deep copy of the current state.
func (r *Room) Snapshot() domain.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Snapshot()
}

func (r *Room) removeParticipantAt(i int) *domain.Participant {
	removed := r.state.Participants[i]
	r.state.Participants = append(r.state.Participants[:i], r.state.Participants[i+1:]...)
	return removed
}

func (r *Room) indexOfConnection(connectionID string) int {
	for i, p := range r.state.Participants {
		if p.ConnectionID == connectionID {
			return i
		}
	}
	return -1
}

func (r *Room) indexOfName(name string) int {
	for i, p := range r.state.Participants {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// defaultNameLocked numbers anonymous joiners from the participant count upward,
// skipping names already held so a generated name never replaces someone else.
func (r *Room) defaultNameLocked() string {
	for n := len(r.state.Participants) + 1; ; n++ {
		name := fmt.Sprintf("Candidate %d", n)
		if r.indexOfName(name) < 0 {
			return name
		}
	}
}

func (r *Room) allReadyLocked() bool {
	if len(r.state.Participants) == 0 {
		return false
	}
	for _, p := range r.state.Participants {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// claimGeneratorLocked hands content generation to connectionID when the room has
// no content and no present generator.
func (r *Room) claimGeneratorLocked(connectionID string) {
	if r.state.Content != nil {
		return
	}
	if r.state.GeneratorID != "" && r.state.Participant(r.state.GeneratorID) != nil {
		return
	}
	r.state.GeneratorID = connectionID
}

func (r *Room) releaseGeneratorLocked(connectionID string) {
	if r.state.GeneratorID != connectionID || r.state.Content != nil {
		return
	}
	r.state.GeneratorID = ""
	if len(r.state.Participants) > 0 {
		r.state.GeneratorID = r.state.Participants[0].ConnectionID
	}
}
