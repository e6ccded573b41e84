// Package evaluation turns a participant's recorded interview into a report,
// asking an LLM for voice scores and the narrative and degrading to
// deterministic fallbacks whenever it cannot answer.
package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/scoring"
)

// Options bound the cost of an evaluation.
type Options struct {
	VoiceTimeout  time.Duration
	ReportTimeout time.Duration
	// Concurrency caps simultaneous voice evaluations for one participant.
	Concurrency int
}

func (o Options) withDefaults() Options {
	if o.VoiceTimeout <= 0 {
		o.VoiceTimeout = 20 * time.Second
	}
	if o.ReportTimeout <= 0 {
		o.ReportTimeout = 45 * time.Second
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	return o
}

// Orchestrator never fails: every LLM error resolves to a fallback.
type Orchestrator struct {
	llm  Completer
	opts Options
	now  func() time.Time
}

// NewOrchestrator builds an orchestrator. A nil llm disables AI evaluation.
func NewOrchestrator(llm Completer, opts Options) *Orchestrator {
	return &Orchestrator{llm: llm, opts: opts.withDefaults(), now: time.Now}
}

// Enabled reports whether an LLM is wired.
func (o *Orchestrator) Enabled() bool {
	return o.llm != nil
}

type voiceResponse struct {
	AccuracyScore      float64  `json:"accuracyScore"`
	CompletenessScore  float64  `json:"completenessScore"`
	CommunicationScore float64  `json:"communicationScore"`
	Feedback           string   `json:"feedback"`
	KeyPointsCovered   []string `json:"keyPointsCovered"`
	KeyPointsMissed    []string `json:"keyPointsMissed"`
}

var errDisabled = errors.New("llm disabled")

// EvaluateVoice scores one spoken answer.
func (o *Orchestrator) EvaluateVoice(ctx context.Context, sub domain.VoiceSubmission) domain.VoiceQuestionScore {
	var resp voiceResponse
	if err := o.completeInto(ctx, o.opts.VoiceTimeout, voicePrompt(sub), &resp); err != nil {
		log.Warn().Str("module", "evaluation").Str("question", string(sub.QuestionID)).Err(err).Msg("voice evaluation fell back")
		return scoring.FallbackVoiceScore(sub)
	}

	score := scoring.VoiceScore(sub, resp.AccuracyScore, resp.CompletenessScore, resp.CommunicationScore)
	score.AIEvaluation = resp.Feedback
	score.KeyPointsCovered = nonNil(resp.KeyPointsCovered)
	score.KeyPointsMissed = nonNil(resp.KeyPointsMissed)
	return score
}

// Score computes the numeric evaluation for a record, running voice evaluations
// concurrently.
func (o *Orchestrator) Score(ctx context.Context, rec domain.ParticipantRecord) domain.ParticipantEvaluation {
	dsa := make([]domain.DSAQuestionScore, len(rec.DSASubmissions))
	for i, sub := range rec.DSASubmissions {
		dsa[i] = scoring.EvaluateDSA(sub)
	}

	voice := make([]domain.VoiceQuestionScore, len(rec.VoiceSubmissions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Concurrency)
	for i, sub := range rec.VoiceSubmissions {
		i, sub := i, sub
		g.Go(func() error {
			voice[i] = o.EvaluateVoice(gctx, sub)
			return nil
		})
	}
	_ = g.Wait()

	return scoring.FinalReport(rec.ParticipantID, rec.Name, dsa, voice)
}

// Evaluate scores a record and attaches the narrative report.
func (o *Orchestrator) Evaluate(ctx context.Context, rec domain.ParticipantRecord) domain.DetailedReport {
	return o.GenerateDetailedReport(ctx, o.Score(ctx, rec))
}

// GenerateDetailedReport asks the LLM for a narrative over an existing evaluation.
// Results are not cached; every call regenerates.
func (o *Orchestrator) GenerateDetailedReport(ctx context.Context, eval domain.ParticipantEvaluation) domain.DetailedReport {
	report := domain.DetailedReport{
		ParticipantEvaluation: eval,
		Source:                domain.SourceAI,
		GeneratedAt:           o.now().UTC(),
	}

	var narrative domain.DetailedEvaluation
	err := o.completeInto(ctx, o.opts.ReportTimeout, reportPrompt(eval), &narrative)
	if err == nil && narrative.OverallAssessment == "" {
		err = errors.New("narrative missing overall assessment")
	}
	if err != nil {
		log.Warn().Str("module", "evaluation").Str("name", eval.Name).Err(err).Msg("detailed report fell back")
		report.DetailedEvaluation = FallbackEvaluation(eval)
		report.Source = domain.SourceFallback
		return report
	}

	report.DetailedEvaluation = normalizeNarrative(narrative)
	return report
}

func (o *Orchestrator) completeInto(ctx context.Context, timeout time.Duration, prompt string, out interface{}) error {
	if o.llm == nil {
		return errDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := o.llm.CompleteJSON(ctx, prompt)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func normalizeNarrative(n domain.DetailedEvaluation) domain.DetailedEvaluation {
	if n.Strengths == nil {
		n.Strengths = []domain.Strength{}
	}
	if n.Weaknesses == nil {
		n.Weaknesses = []domain.Weakness{}
	}
	if n.TopicsToLearn == nil {
		n.TopicsToLearn = []domain.Topic{}
	}
	if n.RecommendedCourses == nil {
		n.RecommendedCourses = []domain.Course{}
	}
	if n.PracticeRecommendations == nil {
		n.PracticeRecommendations = []domain.Practice{}
	}
	n.NextSteps = nonNil(n.NextSteps)
	n.InterviewReadiness.FocusAreas = nonNil(n.InterviewReadiness.FocusAreas)
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
