package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestQuestionIDAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A QuestionID `json:"a"`
		B QuestionID `json:"b"`
		C QuestionID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 42, "b": "42", "c": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != "42" || payload.B != "42" || payload.C != "" {
		t.Fatalf("unexpected ids: %+v", payload)
	}

	var bad QuestionID
	if err := json.Unmarshal([]byte(`{"x":1}`), &bad); err == nil {
		t.Fatalf("expected error for object id")
	}
}

func TestPenaltiesCharge(t *testing.T) {
	var p Penalties
	if err := p.ChargeAction(ActionRevealCode); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	_ = p.ChargeAction(ActionAIHint)
	_ = p.ChargeAction(ActionAIHint)
	if err := p.ChargeAction(ActionCodeSubmission); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}

	for attempt := 1; attempt <= 4; attempt++ {
		charged := p.ChargeSubmission(attempt)
		if charged != (attempt > FreeAttempts) {
			t.Fatalf("attempt %d: charged=%v", attempt, charged)
		}
	}

	if p.RevealCode != -5 || p.Hints != -2 || p.Submissions != -1 {
		t.Fatalf("unexpected ledger: %+v", p)
	}
	if p.Total() != -8 {
		t.Fatalf("expected total -8, got %v", p.Total())
	}
}

func TestRoomSnapshotIsDeepCopy(t *testing.T) {
	include := false
	passed := true
	p := NewParticipant("c1", "Alice", time.Unix(0, 0))
	p.Actions = append(p.Actions, Action{Type: ActionCodeSubmission, QuestionID: "1", Passed: &passed})
	p.DSASubmissions["1"] = &SubmissionRecord{QuestionID: "1", Attempts: 1, LastTestResults: []TestResult{{Passed: true}}}

	room := &Room{
		ID:           "ABC",
		Participants: []*Participant{p},
		Status:       StatusLobby,
		Config:       RoomConfig{IncludeDSA: &include},
		Content:      &Content{DSA: []DSAQuestion{{ID: "1", TestCases: []TestCase{{Input: "1"}}}}},
	}
	snap := room.Snapshot()

	passed = false
	include = true
	p.DSASubmissions["1"].Attempts = 9
	p.DSASubmissions["1"].LastTestResults[0].Passed = false
	room.Content.DSA[0].TestCases[0].Input = "changed"
	p.Name = "Mallory"

	got := snap.Participants[0]
	if got.Name != "Alice" || !*got.Actions[0].Passed {
		t.Fatalf("participant leaked into snapshot: %+v", got)
	}
	if got.DSASubmissions["1"].Attempts != 1 || !got.DSASubmissions["1"].LastTestResults[0].Passed {
		t.Fatalf("submission record leaked into snapshot")
	}
	if *snap.Config.IncludeDSA {
		t.Fatalf("config leaked into snapshot")
	}
	if snap.Content.DSA[0].TestCases[0].Input != "1" {
		t.Fatalf("content leaked into snapshot")
	}
}

func TestRoomHelpers(t *testing.T) {
	if NormalizeRoomID("  abc-12 ") != "ABC-12" {
		t.Fatalf("room ids must be trimmed and upper-cased")
	}
	if NormalizeDifficulty(" Hard ") != "hard" {
		t.Fatalf("difficulty must be trimmed and lower-cased")
	}
	if !(RoomConfig{}).CodingRoundEnabled() {
		t.Fatalf("coding round defaults to enabled")
	}
	off := false
	if (RoomConfig{IncludeDSA: &off}).CodingRoundEnabled() {
		t.Fatalf("explicit includeDSA=false must disable the coding round")
	}
	if RoomStatus("paused").Valid() || !StatusResults.Valid() {
		t.Fatalf("unexpected status validation")
	}
	if !(RoomConfig{}).IsEmpty() || (RoomConfig{Difficulty: "easy"}).IsEmpty() {
		t.Fatalf("unexpected IsEmpty result")
	}
}
