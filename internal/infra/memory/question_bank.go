package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"mock-interview-service/internal/domain"
)

// QuestionLoader fetches standard question sets from a backing store.
type QuestionLoader interface {
	LoadQuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error)
}

// QuestionBank caches question sets with TTL to avoid repeated loader hits.
type QuestionBank struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	set       domain.QuestionSet
	expiresAt time.Time
}

func NewQuestionBank(loader QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

func (b *QuestionBank) QuestionSet(ctx context.Context, difficulty string) (domain.QuestionSet, error) {
	difficulty = domain.NormalizeDifficulty(difficulty)
	if set, ok := b.cached(difficulty, b.clock()); ok {
		return set, nil
	}

	result, err, _ := b.sf.Do(difficulty, func() (interface{}, error) {
		now := b.clock()
		if set, ok := b.cached(difficulty, now); ok {
			return set, nil
		}

		set, err := b.loader.LoadQuestionSet(ctx, difficulty)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		b.mu.Lock()
		b.cache[difficulty] = cachedSet{set: set, expiresAt: now.Add(b.ttlWithJitter())}
		b.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

func (b *QuestionBank) cached(difficulty string, now time.Time) (domain.QuestionSet, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.cache[difficulty]
	if !ok || !entry.expiresAt.After(now) {
		return domain.QuestionSet{}, false
	}
	return entry.set, true
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}

// StaticQuestionLoader serves question sets from a map (defaults, tests, demos).
type StaticQuestionLoader struct {
	sets map[string]domain.QuestionSet
}

func NewStaticQuestionLoader(sets map[string]domain.QuestionSet) *StaticQuestionLoader {
	if sets == nil {
		sets = DefaultQuestionSets()
	}
	return &StaticQuestionLoader{sets: sets}
}

func (l *StaticQuestionLoader) LoadQuestionSet(_ context.Context, difficulty string) (domain.QuestionSet, error) {
	if set, ok := l.sets[domain.NormalizeDifficulty(difficulty)]; ok {
		return set, nil
	}
	return domain.QuestionSet{}, domain.ErrQuestionSetNotFound
}
