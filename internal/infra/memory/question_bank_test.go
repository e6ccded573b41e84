package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mock-interview-service/internal/domain"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(nil)}
	bank := NewQuestionBank(loader, time.Minute)

	set, err := bank.QuestionSet(context.Background(), "easy")
	if err != nil {
		t.Fatalf("get question set: %v", err)
	}
	if len(set.Content.DSA) == 0 || len(set.Content.Voice) == 0 {
		t.Fatalf("expected default content, got %+v", set)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := bank.QuestionSet(context.Background(), " EASY "); err != nil {
		t.Fatalf("get question set 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionBankExpires(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(nil)}
	bank := NewQuestionBank(loader, time.Minute)
	now := time.Now()
	bank.clock = func() time.Time { return now }

	_, _ = bank.QuestionSet(context.Background(), "medium")
	now = now.Add(2 * time.Minute)
	_, _ = bank.QuestionSet(context.Background(), "medium")

	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuestionBankUnknownDifficulty(t *testing.T) {
	bank := NewQuestionBank(NewStaticQuestionLoader(nil), time.Minute)
	if _, err := bank.QuestionSet(context.Background(), "impossible"); !errors.Is(err, domain.ErrQuestionSetNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDefaultQuestionSetsCoverDifficulties(t *testing.T) {
	sets := DefaultQuestionSets()
	for _, d := range []string{"easy", "medium", "hard"} {
		set, ok := sets[d]
		if !ok {
			t.Fatalf("missing %s set", d)
		}
		for _, q := range set.Content.DSA {
			if q.ID == "" || len(q.TestCases) == 0 || q.MaxTime <= 0 {
				t.Fatalf("%s: incomplete dsa question %+v", d, q)
			}
		}
	}
}

type countingLoader struct {
	QuestionLoader
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadQuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return l.QuestionLoader.LoadQuestionSet(ctx, difficulty)
}
