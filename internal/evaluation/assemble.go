package evaluation

import (
	"sort"

	"mock-interview-service/internal/domain"
)

// DefaultMaxTime is the per-question allowance when neither the question nor the
// room config sets one (the interview timer is 30 minutes).
const DefaultMaxTime = 1800.0

// AssembleRecord builds the scoring input for a participant from the room's
// recorded state. Coding records follow the order of the room content; voice
// answers keep the latest transcript per question.
func AssembleRecord(room domain.RoomSnapshot, p domain.Participant) domain.ParticipantRecord {
	rec := domain.ParticipantRecord{
		ParticipantID:    p.ConnectionID,
		Name:             p.Name,
		DSASubmissions:   []domain.DSASubmission{},
		VoiceSubmissions: []domain.VoiceSubmission{},
	}

	dsaByID := map[domain.QuestionID]domain.DSAQuestion{}
	voiceByID := map[domain.QuestionID]domain.VoiceQuestion{}
	var order []domain.QuestionID
	if room.Content != nil {
		for _, q := range room.Content.DSA {
			dsaByID[q.ID] = q
			order = append(order, q.ID)
		}
		for _, q := range room.Content.Voice {
			voiceByID[q.ID] = q
		}
	}

	var extra []domain.QuestionID
	for id := range p.DSASubmissions {
		if _, ok := dsaByID[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	order = append(order, extra...)

	for _, id := range order {
		sr, ok := p.DSASubmissions[id]
		if !ok {
			continue
		}
		q := dsaByID[id]
		title := q.Title
		if title == "" {
			title = "Question " + string(id)
		}
		rec.DSASubmissions = append(rec.DSASubmissions, domain.DSASubmission{
			QuestionID:         id,
			QuestionTitle:      title,
			TestResults:        sr.LastTestResults,
			CodeSubmitted:      sr.LastCode,
			TimeSpent:          sr.TimeSpent,
			RevealCodeUsed:     sr.RevealCodeUsed,
			HintsUsed:          sr.HintsUsed,
			SubmissionAttempts: sr.Attempts,
			MaxTime:            maxTime(q, room.Config),
		})
	}

	latest := map[domain.QuestionID]int{}
	for _, a := range p.VoiceAnswers {
		sub := domain.VoiceSubmission{
			QuestionID:     a.QuestionID,
			Question:       voiceByID[a.QuestionID].Question,
			ExpectedAnswer: voiceByID[a.QuestionID].Answer,
			Transcript:     a.Transcript,
			Duration:       a.Duration,
		}
		if i, ok := latest[a.QuestionID]; ok {
			rec.VoiceSubmissions[i] = sub
			continue
		}
		latest[a.QuestionID] = len(rec.VoiceSubmissions)
		rec.VoiceSubmissions = append(rec.VoiceSubmissions, sub)
	}
	return rec
}

func maxTime(q domain.DSAQuestion, cfg domain.RoomConfig) float64 {
	if q.MaxTime > 0 {
		return q.MaxTime
	}
	if cfg.DurationMinutes > 0 {
		return float64(cfg.DurationMinutes * 60)
	}
	return DefaultMaxTime
}
