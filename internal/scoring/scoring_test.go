package scoring

import (
	"strings"
	"testing"

	"mock-interview-service/internal/domain"
)

func results(passed, failed int) []domain.TestResult {
	out := make([]domain.TestResult, 0, passed+failed)
	for i := 0; i < passed; i++ {
		out = append(out, domain.TestResult{Passed: true})
	}
	for i := 0; i < failed; i++ {
		out = append(out, domain.TestResult{Passed: false})
	}
	return out
}

func TestEvaluateDSAPerfectScore(t *testing.T) {
	score := EvaluateDSA(domain.DSASubmission{
		QuestionID:         "1",
		QuestionTitle:      "Two Sum",
		TestResults:        results(4, 0),
		CodeSubmitted:      strings.Repeat("x", 51),
		TimeSpent:          300,
		SubmissionAttempts: 1,
		MaxTime:            900,
	})

	if score.TestCaseScore != 4 || score.QualityScore != 3 || score.StyleScore != 2 || score.TimeBonus != 1 {
		t.Fatalf("unexpected components: %+v", score)
	}
	if score.TotalScore != 10 || score.MaxScore != 10 {
		t.Fatalf("expected 10/10, got %v/%v", score.TotalScore, score.MaxScore)
	}
}

func TestEvaluateDSAClampsAtZero(t *testing.T) {
	score := EvaluateDSA(domain.DSASubmission{
		TestResults:        results(0, 4),
		RevealCodeUsed:     true,
		HintsUsed:          10,
		SubmissionAttempts: 5,
		CodeSubmitted:      "",
		TimeSpent:          1000,
		MaxTime:            600,
	})

	if score.TotalScore != 0 {
		t.Fatalf("expected clamped total 0, got %v", score.TotalScore)
	}
	if score.RevealPenalty != -5 || score.HintPenalty != -10 || score.SubmissionPenalty != -1.5 {
		t.Fatalf("unexpected penalties: reveal=%v hint=%v sub=%v", score.RevealPenalty, score.HintPenalty, score.SubmissionPenalty)
	}
	if score.MaxScore != 10 {
		t.Fatalf("max score must stay 10, got %v", score.MaxScore)
	}
}

func TestEvaluateDSABuckets(t *testing.T) {
	cases := []struct {
		passed, failed int
		testCase       float64
		quality        float64
	}{
		{3, 1, 3, 2},
		{2, 2, 2, 1},
		{1, 3, 1, 0},
		{1, 4, 0, 0},
		{0, 0, 0, 0},
	}
	for _, tc := range cases {
		score := EvaluateDSA(domain.DSASubmission{TestResults: results(tc.passed, tc.failed), MaxTime: 100, TimeSpent: 100})
		if score.TestCaseScore != tc.testCase || score.QualityScore != tc.quality {
			t.Fatalf("%d/%d: expected test=%v quality=%v, got test=%v quality=%v",
				tc.passed, tc.passed+tc.failed, tc.testCase, tc.quality, score.TestCaseScore, score.QualityScore)
		}
		if score.TimeBonus != 0 {
			t.Fatalf("no time bonus expected past half the allowance")
		}
	}
}

func TestEvaluateDSAStyleThreshold(t *testing.T) {
	short := EvaluateDSA(domain.DSASubmission{CodeSubmitted: strings.Repeat("x", 50)})
	long := EvaluateDSA(domain.DSASubmission{CodeSubmitted: strings.Repeat("x", 51)})
	if short.StyleScore != 1 || long.StyleScore != 2 {
		t.Fatalf("expected style 1 then 2, got %v and %v", short.StyleScore, long.StyleScore)
	}
}

func TestFallbackVoiceScoreIsFixed(t *testing.T) {
	sub := domain.VoiceSubmission{QuestionID: "v1", Question: "What is a closure?", Transcript: "..."}
	for i := 0; i < 3; i++ {
		score := FallbackVoiceScore(sub)
		if score.AccuracyScore != 3 || score.CompletenessScore != 2 || score.CommunicationScore != 1 || score.TotalScore != 6 {
			t.Fatalf("unexpected fallback score: %+v", score)
		}
		if score.AIEvaluation != FallbackVoiceFeedback {
			t.Fatalf("expected fallback feedback, got %q", score.AIEvaluation)
		}
	}
}

func TestVoiceScoreClampsBands(t *testing.T) {
	score := VoiceScore(domain.VoiceSubmission{}, 9, -1, 2)
	if score.AccuracyScore != 5 || score.CompletenessScore != 0 || score.CommunicationScore != 2 || score.TotalScore != 7 {
		t.Fatalf("unexpected clamped score: %+v", score)
	}
}

func TestFinalReportPercentage(t *testing.T) {
	dsa := []domain.DSAQuestionScore{{TotalScore: 8}, {TotalScore: 8}}
	voice := []domain.VoiceQuestionScore{{TotalScore: 9}}

	eval := FinalReport("c1", "Alice", dsa, voice)
	if eval.FinalScore != 25 || eval.MaxPossibleScore != 30 {
		t.Fatalf("expected 25/30, got %v/%v", eval.FinalScore, eval.MaxPossibleScore)
	}
	if eval.Percentage != 83.3 {
		t.Fatalf("expected 83.3%%, got %v", eval.Percentage)
	}
	if len(eval.Strengths) != 1 || eval.Strengths[0] != "Excellent communication" {
		t.Fatalf("expected communication strength only, got %v", eval.Strengths)
	}
}

func TestFinalReportPenaltiesIgnoreClamping(t *testing.T) {
	clamped := EvaluateDSA(domain.DSASubmission{
		TestResults:        results(0, 4),
		RevealCodeUsed:     true,
		HintsUsed:          3,
		SubmissionAttempts: 4,
	})
	eval := FinalReport("", "Bob", []domain.DSAQuestionScore{clamped}, nil)

	if eval.DSATotalScore != 0 {
		t.Fatalf("expected clamped dsa total 0, got %v", eval.DSATotalScore)
	}
	if eval.Penalties.Total != -9 {
		t.Fatalf("expected true-cost total -9, got %v", eval.Penalties.Total)
	}
	if !contains(eval.Weaknesses, "Over-reliance on hints") || !contains(eval.Weaknesses, "Needs improvement in coding") {
		t.Fatalf("unexpected weaknesses: %v", eval.Weaknesses)
	}
}

func TestFinalReportEmpty(t *testing.T) {
	eval := FinalReport("", "Nobody", nil, nil)
	if eval.Percentage != 0 || eval.MaxPossibleScore != 0 {
		t.Fatalf("expected zeroed report, got %+v", eval)
	}
	if len(eval.Strengths)+len(eval.Weaknesses)+len(eval.Recommendations) != 0 {
		t.Fatalf("expected no insights for an empty report")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
