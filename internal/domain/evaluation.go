package domain

import "time"

// DSASubmission is the scoring input for one coding question.
type DSASubmission struct {
	QuestionID         QuestionID   `json:"questionId"`
	QuestionTitle      string       `json:"questionTitle"`
	TestResults        []TestResult `json:"testResults"`
	CodeSubmitted      string       `json:"codeSubmitted"`
	TimeSpent          float64      `json:"timeSpent"`
	RevealCodeUsed     bool         `json:"revealCodeUsed"`
	HintsUsed          int          `json:"hintsUsed"`
	SubmissionAttempts int          `json:"submissionAttempts"`
	MaxTime            float64      `json:"maxTime"`
}

// VoiceSubmission is the scoring input for one spoken answer.
type VoiceSubmission struct {
	QuestionID     QuestionID `json:"questionId"`
	Question       string     `json:"question"`
	ExpectedAnswer string     `json:"expectedAnswer"`
	Transcript     string     `json:"transcript"`
	Duration       float64    `json:"duration"`
}

// ParticipantRecord is everything recorded for one participant, in scoring shape.
type ParticipantRecord struct {
	ParticipantID    string            `json:"participantId,omitempty"`
	Name             string            `json:"name"`
	DSASubmissions   []DSASubmission   `json:"dsaSubmissions"`
	VoiceSubmissions []VoiceSubmission `json:"voiceSubmissions"`
}

// DSAQuestionScore is the breakdown for one coding question.
type DSAQuestionScore struct {
	QuestionID    QuestionID `json:"questionId"`
	QuestionTitle string     `json:"questionTitle"`

	TestCaseScore float64 `json:"testCaseScore"`
	QualityScore  float64 `json:"qualityScore"`
	StyleScore    float64 `json:"styleScore"`
	TimeBonus     float64 `json:"timeBonus"`

	RevealCodeUsed     bool    `json:"revealCodeUsed"`
	RevealPenalty      float64 `json:"revealPenalty"`
	HintsUsed          int     `json:"hintsUsed"`
	HintPenalty        float64 `json:"hintPenalty"`
	SubmissionAttempts int     `json:"submissionAttempts"`
	SubmissionPenalty  float64 `json:"submissionPenalty"`

	TotalScore float64 `json:"totalScore"`
	MaxScore   float64 `json:"maxScore"`

	TimeSpent     float64      `json:"timeSpent"`
	CodeSubmitted string       `json:"codeSubmitted"`
	TestResults   []TestResult `json:"testResults"`
}

// VoiceQuestionScore is the breakdown for one spoken answer.
type VoiceQuestionScore struct {
	QuestionID     QuestionID `json:"questionId"`
	Question       string     `json:"question"`
	ExpectedAnswer string     `json:"expectedAnswer"`
	Transcript     string     `json:"transcript"`
	Duration       float64    `json:"duration"`

	AccuracyScore      float64 `json:"accuracyScore"`
	CompletenessScore  float64 `json:"completenessScore"`
	CommunicationScore float64 `json:"communicationScore"`
	TotalScore         float64 `json:"totalScore"`
	MaxScore           float64 `json:"maxScore"`

	AIEvaluation     string   `json:"aiEvaluation,omitempty"`
	KeyPointsCovered []string `json:"keyPointsCovered,omitempty"`
	KeyPointsMissed  []string `json:"keyPointsMissed,omitempty"`
}

// PenaltySummary aggregates deductions across questions, independent of clamping.
type PenaltySummary struct {
	RevealCode  float64 `json:"revealCode"`
	Hints       float64 `json:"hints"`
	Submissions float64 `json:"submissions"`
	Total       float64 `json:"total"`
}

// ParticipantEvaluation is the aggregate numeric report for a participant.
type ParticipantEvaluation struct {
	ParticipantID string               `json:"participantId,omitempty"`
	Name          string               `json:"name"`
	DSAScores     []DSAQuestionScore   `json:"dsaScores"`
	VoiceScores   []VoiceQuestionScore `json:"voiceScores"`
	Penalties     PenaltySummary       `json:"penalties"`

	DSATotalScore    float64 `json:"dsaTotalScore"`
	DSAMaxScore      float64 `json:"dsaMaxScore"`
	VoiceTotalScore  float64 `json:"voiceTotalScore"`
	VoiceMaxScore    float64 `json:"voiceMaxScore"`
	FinalScore       float64 `json:"finalScore"`
	MaxPossibleScore float64 `json:"maxPossibleScore"`
	Percentage       float64 `json:"percentage"`

	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// Strength is a narrative strength entry.
type Strength struct {
	Area        string `json:"area"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
}

// Weakness is a narrative weakness entry.
type Weakness struct {
	Area        string `json:"area"`
	Description string `json:"description"`
	Impact      string `json:"impact,omitempty"`
}

// Topic is a recommended learning topic.
type Topic struct {
	Topic         string   `json:"topic"`
	Priority      string   `json:"priority"`
	Reason        string   `json:"reason"`
	Resources     []string `json:"resources,omitempty"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`
}

// Course is a recommended course.
type Course struct {
	Title         string `json:"title"`
	Platform      string `json:"platform"`
	Instructor    string `json:"instructor,omitempty"`
	Focus         string `json:"focus"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	Link          string `json:"link,omitempty"`
}

// Practice is a recurring practice recommendation.
type Practice struct {
	Category  string   `json:"category"`
	Action    string   `json:"action"`
	Frequency string   `json:"frequency"`
	Duration  string   `json:"duration,omitempty"`
	Examples  []string `json:"examples,omitempty"`
}

// Readiness is the interview-readiness assessment.
type Readiness struct {
	Level           string   `json:"level"`
	Confidence      string   `json:"confidence"`
	TimeToReady     string   `json:"timeToReady"`
	FocusAreas      []string `json:"focusAreas"`
	TargetCompanies []string `json:"targetCompanies,omitempty"`
}

// StudyPlan is a four week plan.
type StudyPlan struct {
	Week1   string `json:"week1"`
	Week2   string `json:"week2"`
	Week3   string `json:"week3"`
	Week4   string `json:"week4"`
	Ongoing string `json:"ongoing,omitempty"`
}

// DetailedEvaluation is the narrative part of a report, AI generated or templated.
type DetailedEvaluation struct {
	OverallAssessment       string     `json:"overallAssessment"`
	Strengths               []Strength `json:"strengths"`
	Weaknesses              []Weakness `json:"weaknesses"`
	TopicsToLearn           []Topic    `json:"topicsToLearn"`
	RecommendedCourses      []Course   `json:"recommendedCourses"`
	PracticeRecommendations []Practice `json:"practiceRecommendations"`
	NextSteps               []string   `json:"nextSteps"`
	InterviewReadiness      Readiness  `json:"interviewReadiness"`
	StudyPlan               *StudyPlan `json:"studyPlan,omitempty"`
}

// Report sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// DetailedReport is what the evaluation endpoint returns.
type DetailedReport struct {
	ParticipantEvaluation
	DetailedEvaluation DetailedEvaluation `json:"detailedEvaluation"`
	Source             string             `json:"source"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}
