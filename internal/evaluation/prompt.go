package evaluation

import (
	"fmt"
	"math"
	"strings"

	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/scoring"
)

func voicePrompt(sub domain.VoiceSubmission) string {
	return fmt.Sprintf(`You are an expert technical interviewer evaluating a candidate's answer.

Question: %s
Expected Answer: %s
Candidate's Answer: %s

Evaluate the candidate's answer on a scale of 0-10 with the following breakdown:
1. Accuracy (0-5 points): How correct is the answer?
2. Completeness (0-3 points): Did they cover all key points?
3. Communication (0-2 points): How clear and articulate was the response?

Respond in JSON format:
{
  "accuracyScore": <0-5>,
  "completenessScore": <0-3>,
  "communicationScore": <0-2>,
  "feedback": "<brief feedback>",
  "keyPointsCovered": ["point1", "point2"],
  "keyPointsMissed": ["point1", "point2"]
}`, sub.Question, sub.ExpectedAnswer, sub.Transcript)
}

func reportPrompt(eval domain.ParticipantEvaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert technical interview coach and career mentor analyzing a candidate's performance in detail.\n\n")
	fmt.Fprintf(&b, "CANDIDATE: %s\n", eval.Name)
	fmt.Fprintf(&b, "OVERALL SCORE: %g/%g (%.1f%%)\n\n", eval.FinalScore, eval.MaxPossibleScore, eval.Percentage)
	fmt.Fprintf(&b, "DETAILED PERFORMANCE DATA:\n%s\n", performanceSummary(eval))
	fmt.Fprintf(&b, "PENALTIES APPLIED:\n")
	fmt.Fprintf(&b, "- Reveal Code Used: %g points\n", eval.Penalties.RevealCode)
	fmt.Fprintf(&b, "- AI Hints Requested: %g points\n", eval.Penalties.Hints)
	fmt.Fprintf(&b, "- Multiple Submissions: %g points\n\n", eval.Penalties.Submissions)
	b.WriteString(reportInstructions)
	return b.String()
}

// performanceSummary lists every question with its score breakdown and flags.
func performanceSummary(eval domain.ParticipantEvaluation) string {
	var b strings.Builder
	if len(eval.DSAScores) > 0 {
		b.WriteString("CODING QUESTIONS:\n")
		for i, q := range eval.DSAScores {
			passed := 0
			for _, r := range q.TestResults {
				if r.Passed {
					passed++
				}
			}
			spent := int(math.Max(0, q.TimeSpent))
			fmt.Fprintf(&b, "Q%d: %s\n", i+1, q.QuestionTitle)
			fmt.Fprintf(&b, "  Score: %g/%g\n", q.TotalScore, q.MaxScore)
			fmt.Fprintf(&b, "  Tests Passed: %d/%d\n", passed, len(q.TestResults))
			fmt.Fprintf(&b, "  Time Spent: %dm %ds\n", spent/60, spent%60)
			if q.RevealCodeUsed {
				b.WriteString("  Used Reveal Code\n")
			}
			if q.HintsUsed > 0 {
				fmt.Fprintf(&b, "  Used %d hints\n", q.HintsUsed)
			}
			if q.SubmissionAttempts > 0 {
				fmt.Fprintf(&b, "  Submissions: %d\n", q.SubmissionAttempts)
			}
			b.WriteString("\n")
		}
	}
	if len(eval.VoiceScores) > 0 {
		b.WriteString("VOICE QUESTIONS:\n")
		for i, q := range eval.VoiceScores {
			fmt.Fprintf(&b, "Q%d: %s\n", i+1, q.Question)
			fmt.Fprintf(&b, "  Score: %g/%g\n", q.TotalScore, q.MaxScore)
			fmt.Fprintf(&b, "  Accuracy: %g/5\n", q.AccuracyScore)
			fmt.Fprintf(&b, "  Completeness: %g/3\n", q.CompletenessScore)
			fmt.Fprintf(&b, "  Communication: %g/2\n", q.CommunicationScore)
			if q.AIEvaluation != "" && q.AIEvaluation != scoring.FallbackVoiceFeedback {
				fmt.Fprintf(&b, "  Feedback: %s\n", q.AIEvaluation)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

const reportInstructions = `Based on this performance analysis, provide a detailed evaluation report in JSON format.

INSTRUCTIONS:
1. Be specific and detailed in all recommendations.
2. Provide actionable learning paths with concrete resources.
3. Recommend real courses from actual platforms (Coursera, Udemy, LeetCode, etc).
4. Include 5-7 topics to learn and 4-6 course recommendations.
5. Provide practice recommendations with daily or weekly goals.
6. Be encouraging but honest about areas needing improvement.

JSON FORMAT:
{
  "overallAssessment": "<3-4 sentence summary of the performance>",
  "strengths": [{"area": "<area>", "description": "<2-3 sentences>", "evidence": "<evidence from the interview>"}],
  "weaknesses": [{"area": "<area>", "description": "<2-3 sentences>", "impact": "<effect on interview performance>"}],
  "topicsToLearn": [{"topic": "<topic>", "priority": "<High/Medium/Low>", "reason": "<why>", "resources": ["<resource>"], "estimatedTime": "<time>"}],
  "recommendedCourses": [{"title": "<title>", "platform": "<platform>", "instructor": "<instructor>", "focus": "<what it covers>", "estimatedTime": "<time>", "difficulty": "<Beginner/Intermediate/Advanced>", "link": "<url or 'Search on [platform]'>"}],
  "practiceRecommendations": [{"category": "<category>", "action": "<what to do>", "frequency": "<daily/3x per week/weekly>", "duration": "<time per session>", "examples": ["<example>"]}],
  "nextSteps": ["<immediate action>"],
  "interviewReadiness": {"level": "<Beginner/Intermediate/Advanced/Expert>", "confidence": "<percentage as a string>", "timeToReady": "<estimate>", "focusAreas": ["<area>"], "targetCompanies": ["<company type>"]},
  "studyPlan": {"week1": "<plan>", "week2": "<plan>", "week3": "<plan>", "week4": "<plan>", "ongoing": "<long-term plan>"}
}`
