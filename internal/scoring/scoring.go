// Package scoring turns recorded interview activity into reproducible scores.
// Everything here is a pure function of its input.
package scoring

import (
	"math"

	"mock-interview-service/internal/domain"
)

// MaxQuestionScore is the denominator of every question, penalties notwithstanding.
const MaxQuestionScore = 10.0

// Style is judged by length alone until real static analysis exists.
const styleLengthThreshold = 50

// Fallback voice sub-scores used whenever the evaluator cannot answer.
const (
	FallbackAccuracy      = 3.0
	FallbackCompleteness  = 2.0
	FallbackCommunication = 1.0
	FallbackVoiceFeedback = "Evaluation unavailable"
)

// PassRate returns passed/total, or 0 for an empty result set.
func PassRate(results []domain.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(results))
}

func testCaseScore(p float64) float64 {
	switch {
	case p == 1:
		return 4
	case p >= 0.75:
		return 3
	case p >= 0.5:
		return 2
	case p >= 0.25:
		return 1
	}
	return 0
}

func qualityScore(p float64) float64 {
	if p == 1 {
		return 3
	}
	return math.Floor(p * 3)
}

func styleScore(code string) float64 {
	if len(code) > styleLengthThreshold {
		return 2
	}
	return 1
}

func timeBonus(spent, maxTime float64) float64 {
	if spent <= maxTime*0.5 {
		return 1
	}
	return 0
}

// EvaluateDSA scores one coding question.
func EvaluateDSA(sub domain.DSASubmission) domain.DSAQuestionScore {
	p := PassRate(sub.TestResults)

	score := domain.DSAQuestionScore{
		QuestionID:         sub.QuestionID,
		QuestionTitle:      sub.QuestionTitle,
		TestCaseScore:      testCaseScore(p),
		QualityScore:       qualityScore(p),
		StyleScore:         styleScore(sub.CodeSubmitted),
		TimeBonus:          timeBonus(sub.TimeSpent, sub.MaxTime),
		RevealCodeUsed:     sub.RevealCodeUsed,
		HintsUsed:          sub.HintsUsed,
		HintPenalty:        float64(sub.HintsUsed) * domain.HintPenalty,
		SubmissionAttempts: sub.SubmissionAttempts,
		MaxScore:           MaxQuestionScore,
		TimeSpent:          sub.TimeSpent,
		CodeSubmitted:      sub.CodeSubmitted,
		TestResults:        sub.TestResults,
	}
	if sub.RevealCodeUsed {
		score.RevealPenalty = domain.RevealCodePenalty
	}
	if sub.SubmissionAttempts > domain.FreeAttempts {
		score.SubmissionPenalty = float64(sub.SubmissionAttempts-domain.FreeAttempts) * domain.ResubmissionPenalty
	}

	raw := score.TestCaseScore + score.QualityScore + score.StyleScore + score.TimeBonus +
		score.RevealPenalty + score.HintPenalty + score.SubmissionPenalty
	score.TotalScore = math.Max(0, raw)
	return score
}

// VoiceScore assembles a voice breakdown from evaluator sub-scores, clamping each
// to its band (accuracy 0-5, completeness 0-3, communication 0-2).
func VoiceScore(sub domain.VoiceSubmission, accuracy, completeness, communication float64) domain.VoiceQuestionScore {
	accuracy = clamp(accuracy, 0, 5)
	completeness = clamp(completeness, 0, 3)
	communication = clamp(communication, 0, 2)
	return domain.VoiceQuestionScore{
		QuestionID:         sub.QuestionID,
		Question:           sub.Question,
		ExpectedAnswer:     sub.ExpectedAnswer,
		Transcript:         sub.Transcript,
		Duration:           sub.Duration,
		AccuracyScore:      accuracy,
		CompletenessScore:  completeness,
		CommunicationScore: communication,
		TotalScore:         accuracy + completeness + communication,
		MaxScore:           MaxQuestionScore,
	}
}

// FallbackVoiceScore is the fixed degraded-mode score (3+2+1=6).
func FallbackVoiceScore(sub domain.VoiceSubmission) domain.VoiceQuestionScore {
	score := VoiceScore(sub, FallbackAccuracy, FallbackCompleteness, FallbackCommunication)
	score.AIEvaluation = FallbackVoiceFeedback
	return score
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
