package app

import (
	"context"

	"mock-interview-service/internal/domain"
)

// QuestionBank serves standard question sets by difficulty, used when a room's
// generator cannot produce AI content.
type QuestionBank interface {
	QuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error)
}
