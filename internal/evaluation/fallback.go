package evaluation

import (
	"fmt"
	"math"
	"strings"

	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/scoring"
)

// FallbackEvaluation derives a templated narrative from the numeric aggregates.
// It is deterministic: the same evaluation always yields the same narrative.
func FallbackEvaluation(eval domain.ParticipantEvaluation) domain.DetailedEvaluation {
	strengths := []domain.Strength{}
	weaknesses := []domain.Weakness{}
	topics := []domain.Topic{}

	avgDSA := scoring.AverageDSA(eval.DSAScores)
	switch {
	case avgDSA >= 7:
		strengths = append(strengths, domain.Strength{
			Area:        "Problem Solving",
			Description: "Strong coding and algorithmic thinking skills",
			Evidence:    "Consistently high scores on DSA questions",
		})
	case avgDSA < 5:
		weaknesses = append(weaknesses, domain.Weakness{
			Area:        "Algorithm Design",
			Description: "Needs improvement in problem-solving approach",
			Impact:      "May struggle with technical interview rounds",
		})
		topics = append(topics, domain.Topic{
			Topic:     "Data Structures & Algorithms",
			Priority:  "High",
			Reason:    "Foundation for technical interviews",
			Resources: []string{"LeetCode Easy/Medium problems", "AlgoExpert course"},
		})
	}

	avgVoice := scoring.AverageVoice(eval.VoiceScores)
	switch {
	case avgVoice >= 7:
		strengths = append(strengths, domain.Strength{
			Area:        "Technical Communication",
			Description: "Excellent ability to explain concepts clearly",
			Evidence:    "High scores on voice interview questions",
		})
	case avgVoice < 5:
		weaknesses = append(weaknesses, domain.Weakness{
			Area:        "Communication Skills",
			Description: "Needs to improve technical explanation abilities",
			Impact:      "May not effectively convey knowledge in interviews",
		})
	}

	focus := make([]string, 0, len(weaknesses))
	for _, w := range weaknesses {
		focus = append(focus, w.Area)
	}

	readiness := domain.Readiness{
		Level:       "Beginner",
		Confidence:  fmt.Sprintf("%d%%", int(math.Round(eval.Percentage))),
		TimeToReady: "1-2 months",
		FocusAreas:  focus,
	}
	if eval.Percentage >= 70 {
		readiness.Level = "Intermediate"
		readiness.TimeToReady = "2-4 weeks"
	}

	return domain.DetailedEvaluation{
		OverallAssessment: overallAssessment(eval.Percentage, strengths),
		Strengths:         strengths,
		Weaknesses:        weaknesses,
		TopicsToLearn:     topics,
		RecommendedCourses: []domain.Course{{
			Title:         "Master the Coding Interview",
			Platform:      "Udemy",
			Focus:         "Data structures and algorithms",
			EstimatedTime: "20 hours",
		}},
		PracticeRecommendations: []domain.Practice{{
			Category:  "DSA Practice",
			Action:    "Solve 2-3 LeetCode problems daily",
			Frequency: "Daily",
		}},
		NextSteps: []string{
			"Review weak areas identified above",
			"Practice similar problems",
			"Schedule mock interviews",
		},
		InterviewReadiness: readiness,
	}
}

func overallAssessment(percentage float64, strengths []domain.Strength) string {
	band := "developing"
	switch {
	case percentage >= 70:
		band = "strong"
	case percentage >= 50:
		band = "moderate"
	}
	tail := "Has room for growth"
	if len(strengths) > 0 {
		tail = "Shows promise in " + strings.ToLower(strengths[0].Area)
	}
	return fmt.Sprintf("Performance is %s. %s.", band, tail)
}
