package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/infra/memory"
)

// QuestionBank caches question sets in Redis as JSON and falls back to a loader
// on cache miss: SET interview:questions:{difficulty} {json} EX ttl
type QuestionBank struct {
	client *redis.Client
	loader memory.QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader memory.QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) QuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error) {
	difficulty = domain.NormalizeDifficulty(difficulty)
	key := b.key(difficulty)

	if set, ok := b.cached(ctx, key); ok {
		return set, nil
	}

	result, err, _ := b.sf.Do(difficulty, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if set, ok := b.cached(ctx, key); ok {
			return set, nil
		}

		set, err := b.loader.LoadQuestionSet(ctx, difficulty)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		raw, err := json.Marshal(set)
		if err != nil {
			return domain.QuestionSet{}, err
		}
		if err := b.client.Set(ctx, key, raw, b.ttlWithJitter()).Err(); err != nil {
			log.Warn().Str("module", "redis.question_bank").Str("difficulty", difficulty).Err(err).Msg("cache write failed")
		}
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

func (b *QuestionBank) cached(ctx context.Context, key string) (domain.QuestionSet, bool) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Str("module", "redis.question_bank").Str("key", key).Err(err).Msg("cache read failed")
		}
		return domain.QuestionSet{}, false
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		log.Warn().Str("module", "redis.question_bank").Str("key", key).Err(err).Msg("discarding corrupt cache entry")
		return domain.QuestionSet{}, false
	}
	return set, true
}

func (b *QuestionBank) key(difficulty string) string {
	return "interview:questions:" + difficulty
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	b.rndMu.Lock()
	defer b.rndMu.Unlock()
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}
