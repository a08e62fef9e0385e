package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/domain"
)

// MaxWinnersPerDraw caps a multi-winner draw request.
const MaxWinnersPerDraw = 3

type DrawService struct {
	repo  EntrantRepository
	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewDrawService(repo EntrantRepository, opts ...DrawServiceOption) *DrawService {
	svc := &DrawService{
		repo: repo,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type DrawServiceOption func(*DrawService)

// WithDrawRand overrides the shuffle randomness source
// (deterministic in tests).
func WithDrawRand(r *rand.Rand) DrawServiceOption {
	return func(s *DrawService) {
		if r != nil {
			s.rng = r
		}
	}
}

// Draw samples k entrants uniformly at random without replacement from
// a point-in-time snapshot of the pool. The returned order is the
// display rank. Requests beyond the pool size are clamped to it.
// Draws are stateless: a later draw can reselect earlier winners.
func (s *DrawService) Draw(ctx context.Context, k int) ([]domain.Entrant, error) {
	if k < 1 {
		return nil, domain.ErrInvalidDrawCount
	}

	pool, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoEntrants
	}
	if k > len(pool) {
		k = len(pool)
	}

	// Fisher-Yates over the snapshot; every permutation equally likely,
	// so any k-prefix is an unbiased sample without replacement.
	s.rngMu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.rngMu.Unlock()

	return pool[:k], nil
}
