package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// RoomStatus is the phase a room is in.
type RoomStatus string

const (
	StatusLobby   RoomStatus = "lobby"
	StatusCoding  RoomStatus = "coding"
	StatusVoice   RoomStatus = "voice"
	StatusResults RoomStatus = "results"
)

// Valid reports whether s is one of the known phases.
func (s RoomStatus) Valid() bool {
	switch s {
	case StatusLobby, StatusCoding, StatusVoice, StatusResults:
		return true
	}
	return false
}

// Broadcast event names sent to room members.
const (
	EventRoomUpdate     = "room-update"
	EventStartInterview = "start-interview"
)

// NormalizeRoomID trims and upper-cases a room token so lookups are case-insensitive.
func NormalizeRoomID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// QuestionID identifies a question inside a room's content. Clients send either
// numbers or strings; both decode to the same textual id.
type QuestionID string

func (q *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = QuestionID(n.String())
	return nil
}

// RoomConfig is the interview setup chosen by the room creator.
type RoomConfig struct {
	Type            string `json:"type,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
	Capacity        int    `json:"capacity,omitempty"`
	IncludeDSA      *bool  `json:"includeDSA,omitempty"`
	DSACount        int    `json:"dsaCount,omitempty"`
	VivaCount       int    `json:"vivaCount,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// IsEmpty reports whether no field has been set.
func (c RoomConfig) IsEmpty() bool {
	return c == RoomConfig{}
}

// CodingRoundEnabled defaults to true when the creator did not say otherwise.
func (c RoomConfig) CodingRoundEnabled() bool {
	return c.IncludeDSA == nil || *c.IncludeDSA
}

// TestCase is an input/expected-output pair attached to a coding problem.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// DSAQuestion is a coding problem.
type DSAQuestion struct {
	ID          QuestionID `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Example     TestCase   `json:"example"`
	TestCases   []TestCase `json:"testCases"`
	MaxTime     float64    `json:"maxTime,omitempty"` // seconds
}

// VoiceQuestion is a spoken question with its reference answer.
type VoiceQuestion struct {
	ID       QuestionID `json:"id,omitempty"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
}

// Content is the generated question set shared by everyone in a room.
type Content struct {
	DSA   []DSAQuestion   `json:"dsa"`
	Voice []VoiceQuestion `json:"voice"`
}

// Clone returns a deep copy.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := &Content{
		DSA:   make([]DSAQuestion, len(c.DSA)),
		Voice: append([]VoiceQuestion(nil), c.Voice...),
	}
	for i, q := range c.DSA {
		q.TestCases = append([]TestCase(nil), q.TestCases...)
		out.DSA[i] = q
	}
	return out
}

// Room is the unit of session isolation.
type Room struct {
	ID           string         `json:"id"`
	Participants []*Participant `json:"participants"`
	Status       RoomStatus     `json:"status"`
	Config       RoomConfig     `json:"config"`
	Content      *Content       `json:"content"`
	GeneratorID  string         `json:"generatorId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// RoomSnapshot is an immutable copy of a room handed to broadcasters and readers.
type RoomSnapshot struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	Status       RoomStatus    `json:"status"`
	Config       RoomConfig    `json:"config"`
	Content      *Content      `json:"content"`
	GeneratorID  string        `json:"generatorId,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Snapshot deep-copies the room.
func (r *Room) Snapshot() RoomSnapshot {
	participants := make([]Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, p.Clone())
	}
	cfg := r.Config
	if cfg.IncludeDSA != nil {
		v := *cfg.IncludeDSA
		cfg.IncludeDSA = &v
	}
	return RoomSnapshot{
		ID:           r.ID,
		Participants: participants,
		Status:       r.Status,
		Config:       cfg,
		Content:      r.Content.Clone(),
		GeneratorID:  r.GeneratorID,
		CreatedAt:    r.CreatedAt,
	}
}

// Participant looks up a participant by connection id.
func (r *Room) Participant(connectionID string) *Participant {
	for _, p := range r.Participants {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

// RoomSummary is the read-only listing view of a room.
type RoomSummary struct {
	RoomID            string     `json:"roomId"`
	Link              string     `json:"link"`
	HostCandidateName string     `json:"hostCandidateName"`
	ParticipantCount  int        `json:"participantCount"`
	Status            RoomStatus `json:"status"`
}
