package domain

import "strings"

// QuestionSet is a standard interview content bundle for a difficulty, served
// when AI generation is unavailable.
type QuestionSet struct {
	Difficulty string  `json:"difficulty"`
	Content    Content `json:"content"`
}

// NormalizeDifficulty lower-cases and trims a difficulty label.
func NormalizeDifficulty(d string) string {
	return strings.ToLower(strings.TrimSpace(d))
}
