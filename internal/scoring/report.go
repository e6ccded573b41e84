package scoring

import (
	"math"

	"mock-interview-service/internal/domain"
)

// FinalReport aggregates per-question scores into a participant evaluation.
func FinalReport(participantID, name string, dsa []domain.DSAQuestionScore, voice []domain.VoiceQuestionScore) domain.ParticipantEvaluation {
	if dsa == nil {
		dsa = []domain.DSAQuestionScore{}
	}
	if voice == nil {
		voice = []domain.VoiceQuestionScore{}
	}

	eval := domain.ParticipantEvaluation{
		ParticipantID: participantID,
		Name:          name,
		DSAScores:     dsa,
		VoiceScores:   voice,
		DSAMaxScore:   MaxQuestionScore * float64(len(dsa)),
		VoiceMaxScore: MaxQuestionScore * float64(len(voice)),
	}

	for _, q := range dsa {
		eval.DSATotalScore += q.TotalScore
		eval.Penalties.RevealCode += q.RevealPenalty
		eval.Penalties.Hints += q.HintPenalty
		eval.Penalties.Submissions += q.SubmissionPenalty
	}
	for _, q := range voice {
		eval.VoiceTotalScore += q.TotalScore
	}
	eval.Penalties.Total = eval.Penalties.RevealCode + eval.Penalties.Hints + eval.Penalties.Submissions

	eval.FinalScore = eval.DSATotalScore + eval.VoiceTotalScore
	eval.MaxPossibleScore = eval.DSAMaxScore + eval.VoiceMaxScore
	eval.Percentage = Percentage(eval.FinalScore, eval.MaxPossibleScore)

	eval.Strengths, eval.Weaknesses, eval.Recommendations = Insights(eval)
	return eval
}

// Percentage returns score/max*100 rounded to one decimal, or 0 when max is 0.
func Percentage(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Round(score/max*100*10) / 10
}

// Insights derives strengths, weaknesses and recommendations by fixed thresholds.
// A category with no questions contributes nothing.
func Insights(eval domain.ParticipantEvaluation) (strengths, weaknesses, recommendations []string) {
	strengths, weaknesses, recommendations = []string{}, []string{}, []string{}

	if eval.DSAMaxScore > 0 {
		ratio := eval.DSATotalScore / eval.DSAMaxScore
		if ratio > 0.8 {
			strengths = append(strengths, "Strong coding skills")
		} else if ratio < 0.5 {
			weaknesses = append(weaknesses, "Needs improvement in coding")
			recommendations = append(recommendations, "Practice more DSA problems")
		}
	}

	if eval.VoiceMaxScore > 0 {
		ratio := eval.VoiceTotalScore / eval.VoiceMaxScore
		if ratio > 0.8 {
			strengths = append(strengths, "Excellent communication")
		} else if ratio < 0.5 {
			weaknesses = append(weaknesses, "Communication needs work")
			recommendations = append(recommendations, "Practice explaining technical concepts")
		}
	}

	if eval.Penalties.RevealCode < 0 {
		weaknesses = append(weaknesses, "Over-reliance on hints")
		recommendations = append(recommendations, "Try solving problems independently first")
	}
	return strengths, weaknesses, recommendations
}

// AverageDSA is the mean per-question DSA total, 0 when there are none.
func AverageDSA(scores []domain.DSAQuestionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.TotalScore
	}
	return sum / float64(len(scores))
}

// AverageVoice is the mean per-question voice total, 0 when there are none.
func AverageVoice(scores []domain.VoiceQuestionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.TotalScore
	}
	return sum / float64(len(scores))
}
