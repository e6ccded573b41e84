package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"mock-interview-service/internal/domain"
)

// QuestionLoader loads question set JSONB from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error) {
	difficulty = domain.NormalizeDifficulty(difficulty)

	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE difficulty=$1`, difficulty).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionSet{}, domain.ErrQuestionSetNotFound
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load question set: %w", err)
	}
	var content domain.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("unmarshal question set: %w", err)
	}
	return domain.QuestionSet{Difficulty: difficulty, Content: content}, nil
}

// SaveQuestionSet upserts the content for a difficulty.
func (l *QuestionLoader) SaveQuestionSet(ctx context.Context, set domain.QuestionSet) error {
	raw, err := json.Marshal(set.Content)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO question_sets (difficulty, data) VALUES ($1, $2)
		 ON CONFLICT (difficulty) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		domain.NormalizeDifficulty(set.Difficulty), raw)
	if err != nil {
		return fmt.Errorf("save question set: %w", err)
	}
	return nil
}
