package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"mock-interview-service/internal/domain"
)

// Coordinator is the room state machine. It owns membership, readiness, phase
// transitions and action recording for every room in its repository.
type Coordinator struct {
	rooms       RoomRepository
	broadcaster Broadcaster
	now         func() time.Time
}

func NewCoordinator(rooms RoomRepository, broadcaster Broadcaster) *Coordinator {
	return NewCoordinatorWithClock(rooms, broadcaster, time.Now)
}

// NewCoordinatorWithClock is test-only for deterministic timestamps.
func NewCoordinatorWithClock(rooms RoomRepository, broadcaster Broadcaster, now func() time.Time) *Coordinator {
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	return &Coordinator{rooms: rooms, broadcaster: broadcaster, now: now}
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, domain.RoomSnapshot) {}

// Join adds (or re-adds) a participant. A participant with the same name is
// replaced, so a reconnect keeps exactly one entry under the newest connection.
func (c *Coordinator) Join(_ context.Context, roomID, connectionID, name string, cfg *domain.RoomConfig) domain.RoomSnapshot {
	room, created := c.rooms.GetOrCreate(domain.NormalizeRoomID(roomID))

	room.mu.Lock()
	defer room.mu.Unlock()

	if cfg != nil && room.state.Config.IsEmpty() && !cfg.IsEmpty() {
		room.state.Config = *cfg
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = room.defaultNameLocked()
	}
	if i := room.indexOfName(name); i >= 0 {
		stale := room.removeParticipantAt(i)
		log.Debug().Str("module", "app.coordinator").Str("room", room.state.ID).
			Str("name", name).Str("stale", stale.ConnectionID).Msg("replaced participant on rejoin")
	}
	room.state.Participants = append(room.state.Participants, domain.NewParticipant(connectionID, name, c.now()))
	room.claimGeneratorLocked(connectionID)

	log.Info().Str("module", "app.coordinator").Str("room", room.state.ID).Str("name", name).
		Bool("created", created).Int("participants", len(room.state.Participants)).Msg("participant joined")

	return c.broadcastLocked(room, domain.EventRoomUpdate)
}

// SetReady updates a participant's readiness. When everyone is ready and the room
// is still in the lobby, the room moves to the first round and start-interview is
// broadcast; it reports whether that transition happened.
func (c *Coordinator) SetReady(_ context.Context, roomID, connectionID string, ready bool) (domain.RoomSnapshot, bool, error) {
	room, ok := c.rooms.Get(domain.NormalizeRoomID(roomID))
	if !ok {
		return domain.RoomSnapshot{}, false, domain.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if p := room.state.Participant(connectionID); p != nil {
		p.IsReady = ready
	}

	if room.allReadyLocked() && room.state.Status == domain.StatusLobby {
		next := domain.StatusVoice
		if room.state.Config.CodingRoundEnabled() {
			next = domain.StatusCoding
		}
		room.state.Status = next
		log.Info().Str("module", "app.coordinator").Str("room", room.state.ID).
			Str("status", string(next)).Msg("all participants ready, interview started")
		return c.broadcastLocked(room, domain.EventStartInterview), true, nil
	}
	return c.broadcastLocked(room, domain.EventRoomUpdate), false, nil
}

// SetStatus overwrites the room phase.
func (c *Coordinator) SetStatus(_ context.Context, roomID string, status domain.RoomStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	room, ok := c.rooms.Get(domain.NormalizeRoomID(roomID))
	if !ok {
		return domain.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	room.state.Status = status
	c.broadcastLocked(room, domain.EventRoomUpdate)
	return nil
}

// SetContent overwrites the room's question set. Callers are expected to publish
// once, from the connection named in the room's generatorId.
func (c *Coordinator) SetContent(_ context.Context, roomID, connectionID string, content domain.Content) error {
	room, ok := c.rooms.Get(domain.NormalizeRoomID(roomID))
	if !ok {
		return domain.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.state.GeneratorID != "" && connectionID != room.state.GeneratorID {
		log.Warn().Str("module", "app.coordinator").Str("room", room.state.ID).
			Str("from", connectionID).Str("generator", room.state.GeneratorID).Msg("content published by non-generator")
	}
	if room.state.Content != nil {
		log.Warn().Str("module", "app.coordinator").Str("room", room.state.ID).Msg("overwriting existing room content")
	}
	room.state.Content = content.Clone()
	c.broadcastLocked(room, domain.EventRoomUpdate)
	return nil
}

// RecordAction logs a reveal-code or ai-hint event and charges its penalty.
// Nothing is broadcast.
func (c *Coordinator) RecordAction(_ context.Context, roomID, connectionID string, questionID domain.QuestionID, kind domain.ActionType) error {
	if kind != domain.ActionRevealCode && kind != domain.ActionAIHint {
		return domain.ErrInvalidAction
	}
	return c.withParticipant(roomID, connectionID, func(_ *Room, p *domain.Participant) error {
		p.Actions = append(p.Actions, domain.Action{Type: kind, QuestionID: questionID, Timestamp: c.now()})
		return p.Penalties.ChargeAction(kind)
	})
}

// RecordSubmission folds a code submission into the participant's record for the
// question. Reveal and hint usage are captured only when the record is created.
func (c *Coordinator) RecordSubmission(_ context.Context, roomID, connectionID string, sub domain.CodeSubmission) error {
	return c.withParticipant(roomID, connectionID, func(room *Room, p *domain.Participant) error {
		now := c.now()
		rec, ok := p.DSASubmissions[sub.QuestionID]
		if !ok {
			rec = &domain.SubmissionRecord{
				QuestionID:       sub.QuestionID,
				RevealCodeUsed:   p.ActionsFor(sub.QuestionID, domain.ActionRevealCode) > 0,
				HintsUsed:        p.ActionsFor(sub.QuestionID, domain.ActionAIHint),
				FirstSubmittedAt: now,
			}
			p.DSASubmissions[sub.QuestionID] = rec
		}
		rec.Attempts++
		rec.LastCode = sub.Code
		rec.LastTestResults = append([]domain.TestResult(nil), sub.TestResults...)
		rec.TimeSpent = sub.TimeSpent
		rec.LastSubmittedAt = now

		if p.Penalties.ChargeSubmission(rec.Attempts) {
			log.Debug().Str("module", "app.coordinator").Str("room", room.state.ID).Str("name", p.Name).
				Str("question", string(sub.QuestionID)).Int("attempt", rec.Attempts).Msg("resubmission penalty")
		}

		passed := sub.AllPassed()
		p.Actions = append(p.Actions, domain.Action{
			Type:       domain.ActionCodeSubmission,
			QuestionID: sub.QuestionID,
			Timestamp:  now,
			Passed:     &passed,
		})
		return nil
	})
}

// RecordVoiceAnswer appends a transcript; scoring happens at evaluation time.
func (c *Coordinator) RecordVoiceAnswer(_ context.Context, roomID, connectionID string, questionID domain.QuestionID, transcript string, duration float64) error {
	return c.withParticipant(roomID, connectionID, func(_ *Room, p *domain.Participant) error {
		p.VoiceAnswers = append(p.VoiceAnswers, domain.VoiceAnswer{
			QuestionID: questionID,
			Transcript: transcript,
			Duration:   duration,
			Timestamp:  c.now(),
		})
		return nil
	})
}

// Disconnect removes the connection from every room it is in and broadcasts each
// affected room. It returns the ids of those rooms.
func (c *Coordinator) Disconnect(_ context.Context, connectionID string) []string {
	var affected []string
	for _, room := range c.rooms.All() {
		room.mu.Lock()
		if i := room.indexOfConnection(connectionID); i >= 0 {
			removed := room.removeParticipantAt(i)
			room.releaseGeneratorLocked(connectionID)
			affected = append(affected, room.state.ID)
			log.Info().Str("module", "app.coordinator").Str("room", room.state.ID).
				Str("name", removed.Name).Msg("participant left")
			c.broadcastLocked(room, domain.EventRoomUpdate)
		}
		room.mu.Unlock()
	}
	return affected
}

// Exists reports whether a room has been created.
func (c *Coordinator) Exists(roomID string) bool {
	_, ok := c.rooms.Get(domain.NormalizeRoomID(roomID))
	return ok
}

// Snapshot returns a copy of a room's state.
func (c *Coordinator) Snapshot(roomID string) (domain.RoomSnapshot, error) {
	room, ok := c.rooms.Get(domain.NormalizeRoomID(roomID))
	if !ok {
		return domain.RoomSnapshot{}, domain.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

// Participant returns a room snapshot together with the named participant in it.
func (c *Coordinator) Participant(roomID, name string) (domain.RoomSnapshot, domain.Participant, error) {
	snap, err := c.Snapshot(roomID)
	if err != nil {
		return domain.RoomSnapshot{}, domain.Participant{}, err
	}
	for _, p := range snap.Participants {
		if p.Name == name {
			return snap, p, nil
		}
	}
	return domain.RoomSnapshot{}, domain.Participant{}, domain.ErrParticipantNotFound
}

// List summarizes every room, oldest first. Link is the relative interview path.
func (c *Coordinator) List() []domain.RoomSummary {
	snaps := make([]domain.RoomSnapshot, 0)
	for _, room := range c.rooms.All() {
		snaps = append(snaps, room.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})

	out := make([]domain.RoomSummary, 0, len(snaps))
	for _, s := range snaps {
		summary := domain.RoomSummary{
			RoomID:           s.ID,
			Link:             "/interview/" + s.ID,
			ParticipantCount: len(s.Participants),
			Status:           s.Status,
		}
		if len(s.Participants) > 0 {
			summary.HostCandidateName = s.Participants[0].Name
		}
		out = append(out, summary)
	}
	return out
}

func (c *Coordinator) withParticipant(roomID, connectionID string, fn func(*Room, *domain.Participant) error) error {
	room, ok := c.rooms.Get(domain.NormalizeRoomID(roomID))
	if !ok {
		return domain.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	p := room.state.Participant(connectionID)
	if p == nil {
		return domain.ErrParticipantNotFound
	}
	return fn(room, p)
}

func (c *Coordinator) broadcastLocked(room *Room, event string) domain.RoomSnapshot {
	snap := room.state.Snapshot()
	c.broadcaster.Broadcast(room.state.ID, event, snap)
	return snap
}
