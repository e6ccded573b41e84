package evaluation

import (
	"testing"

	"mock-interview-service/internal/domain"
)

func TestAssembleRecordFromRoom(t *testing.T) {
	room := domain.RoomSnapshot{
		ID:     "R1",
		Config: domain.RoomConfig{DurationMinutes: 20},
		Content: &domain.Content{
			DSA: []domain.DSAQuestion{
				{ID: "1", Title: "Two Sum", MaxTime: 600},
				{ID: "2", Title: "Merge Intervals"},
			},
			Voice: []domain.VoiceQuestion{
				{ID: "1", Question: "What is a heap?", Answer: "A tree with the heap property"},
			},
		},
	}
	p := domain.NewParticipant("c1", "Alice", room.CreatedAt).Clone()
	p.DSASubmissions["2"] = &domain.SubmissionRecord{QuestionID: "2", Attempts: 3, LastCode: "code", HintsUsed: 1}
	p.DSASubmissions["1"] = &domain.SubmissionRecord{QuestionID: "1", Attempts: 1, RevealCodeUsed: true}
	p.DSASubmissions["9"] = &domain.SubmissionRecord{QuestionID: "9", Attempts: 1}
	p.VoiceAnswers = []domain.VoiceAnswer{
		{QuestionID: "1", Transcript: "first try"},
		{QuestionID: "1", Transcript: "second try", Duration: 30},
	}

	rec := AssembleRecord(room, p)

	if rec.Name != "Alice" || rec.ParticipantID != "c1" {
		t.Fatalf("unexpected identity: %+v", rec)
	}
	if len(rec.DSASubmissions) != 3 {
		t.Fatalf("expected 3 dsa submissions, got %d", len(rec.DSASubmissions))
	}
	first, second, third := rec.DSASubmissions[0], rec.DSASubmissions[1], rec.DSASubmissions[2]
	if first.QuestionTitle != "Two Sum" || first.MaxTime != 600 || !first.RevealCodeUsed {
		t.Fatalf("unexpected first submission: %+v", first)
	}
	if second.QuestionTitle != "Merge Intervals" || second.MaxTime != 1200 || second.SubmissionAttempts != 3 || second.HintsUsed != 1 {
		t.Fatalf("unexpected second submission: %+v", second)
	}
	if third.QuestionTitle != "Question 9" || third.MaxTime != 1200 {
		t.Fatalf("unexpected unknown-question submission: %+v", third)
	}

	if len(rec.VoiceSubmissions) != 1 {
		t.Fatalf("expected latest voice answer only, got %d", len(rec.VoiceSubmissions))
	}
	v := rec.VoiceSubmissions[0]
	if v.Transcript != "second try" || v.Question != "What is a heap?" || v.ExpectedAnswer == "" {
		t.Fatalf("unexpected voice submission: %+v", v)
	}
}

func TestAssembleRecordWithoutContent(t *testing.T) {
	p := domain.NewParticipant("c1", "Bob", domain.RoomSnapshot{}.CreatedAt).Clone()
	p.DSASubmissions["1"] = &domain.SubmissionRecord{QuestionID: "1", Attempts: 1}

	rec := AssembleRecord(domain.RoomSnapshot{}, p)
	if len(rec.DSASubmissions) != 1 || rec.DSASubmissions[0].MaxTime != DefaultMaxTime {
		t.Fatalf("expected default max time, got %+v", rec.DSASubmissions)
	}
	if rec.VoiceSubmissions == nil {
		t.Fatalf("voice submissions must be an empty slice")
	}
}
