package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/infra/memory"
)

func TestQuestionBankCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(nil)}
	bank := NewQuestionBank(newClient(mr), loader, time.Minute)

	set, err := bank.QuestionSet(context.Background(), "hard")
	if err != nil {
		t.Fatalf("get question set: %v", err)
	}
	if set.Difficulty != "hard" || len(set.Content.DSA) == 0 {
		t.Fatalf("unexpected set: %+v", set)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("interview:questions:hard") {
		t.Fatalf("expected cached json in redis")
	}

	// Second call should hit cache, loader not incremented.
	again, _ := bank.QuestionSet(context.Background(), "Hard")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if again.Content.DSA[0].Title != set.Content.DSA[0].Title {
		t.Fatalf("cached set differs from loaded set")
	}
}

func TestQuestionBankIgnoresCorruptEntries(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("interview:questions:easy", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(nil)}
	bank := NewQuestionBank(newClient(mr), loader, time.Minute)

	if _, err := bank.QuestionSet(context.Background(), "easy"); err != nil {
		t.Fatalf("get question set: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected reload on corrupt entry, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestionSet(ctx, difficulty)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
