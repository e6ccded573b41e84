package domain

import "time"

// ActionType labels an entry in a participant's action log.
type ActionType string

const (
	ActionRevealCode     ActionType = "reveal-code"
	ActionAIHint         ActionType = "ai-hint"
	ActionCodeSubmission ActionType = "code-submission"
)

// Action is one evidentiary log entry.
type Action struct {
	Type       ActionType `json:"type"`
	QuestionID QuestionID `json:"questionId"`
	Timestamp  time.Time  `json:"timestamp"`
	Passed     *bool      `json:"passed,omitempty"` // set for code submissions only
}

// TestResult is the outcome of running a submission against one test case.
type TestResult struct {
	Input    string `json:"input,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Passed   bool   `json:"passed"`
	Stdout   string `json:"stdout,omitempty"`
}

// CodeSubmission is the payload of a code-submission event.
type CodeSubmission struct {
	QuestionID  QuestionID   `json:"questionId"`
	Code        string       `json:"code"`
	TestResults []TestResult `json:"testResults"`
	TimeSpent   float64      `json:"timeSpent"` // seconds
}

// SubmissionRecord accumulates every submission a participant made for one question.
// RevealCodeUsed and HintsUsed are captured at the first submission and never revisited.
type SubmissionRecord struct {
	QuestionID       QuestionID   `json:"questionId"`
	Attempts         int          `json:"attempts"`
	LastCode         string       `json:"lastCode"`
	LastTestResults  []TestResult `json:"lastTestResults"`
	TimeSpent        float64      `json:"timeSpent"`
	RevealCodeUsed   bool         `json:"revealCodeUsed"`
	HintsUsed        int          `json:"hintsUsed"`
	FirstSubmittedAt time.Time    `json:"firstSubmittedAt"`
	LastSubmittedAt  time.Time    `json:"lastSubmittedAt"`
}

// AllPassed reports whether the latest submission passed every test case.
func (s *SubmissionRecord) AllPassed() bool {
	return allPassed(s.LastTestResults)
}

func allPassed(results []TestResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// AllPassed reports whether every test result in the submission passed.
func (c CodeSubmission) AllPassed() bool {
	return allPassed(c.TestResults)
}

// VoiceAnswer is one transcribed spoken answer.
type VoiceAnswer struct {
	QuestionID QuestionID `json:"questionId"`
	Transcript string     `json:"transcript"`
	Duration   float64    `json:"duration"` // seconds
	Timestamp  time.Time  `json:"timestamp"`
}

// Participant is a member of a room. Name is the ownership key; the connection id
// changes on every reconnect.
type Participant struct {
	ConnectionID   string                           `json:"id"`
	Name           string                           `json:"name"`
	IsReady        bool                             `json:"isReady"`
	Actions        []Action                         `json:"actions"`
	DSASubmissions map[QuestionID]*SubmissionRecord `json:"dsaSubmissions"`
	VoiceAnswers   []VoiceAnswer                    `json:"voiceAnswers"`
	Penalties      Penalties                        `json:"penalties"`
	JoinedAt       time.Time                        `json:"joinedAt"`
}

// NewParticipant returns a participant with empty logs and no penalties.
func NewParticipant(connectionID, name string, joinedAt time.Time) *Participant {
	return &Participant{
		ConnectionID:   connectionID,
		Name:           name,
		Actions:        []Action{},
		DSASubmissions: make(map[QuestionID]*SubmissionRecord),
		VoiceAnswers:   []VoiceAnswer{},
		JoinedAt:       joinedAt,
	}
}

// ActionsFor counts log entries of the given type for a question.
func (p *Participant) ActionsFor(questionID QuestionID, kind ActionType) int {
	n := 0
	for _, a := range p.Actions {
		if a.QuestionID == questionID && a.Type == kind {
			n++
		}
	}
	return n
}

// Clone deep-copies the participant.
func (p *Participant) Clone() Participant {
	out := *p
	out.Actions = make([]Action, len(p.Actions))
	for i, a := range p.Actions {
		if a.Passed != nil {
			v := *a.Passed
			a.Passed = &v
		}
		out.Actions[i] = a
	}
	out.VoiceAnswers = append([]VoiceAnswer{}, p.VoiceAnswers...)
	out.DSASubmissions = make(map[QuestionID]*SubmissionRecord, len(p.DSASubmissions))
	for id, rec := range p.DSASubmissions {
		cp := *rec
		cp.LastTestResults = append([]TestResult(nil), rec.LastTestResults...)
		out.DSASubmissions[id] = &cp
	}
	return out
}
