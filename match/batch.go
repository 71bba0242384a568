package match

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/souk/core"
)

// BatchResult is the outcome of evaluating one candidate against the query.
// Similarity is populated only for candidates that failed the boolean
// decision, so near misses can still be surfaced.
type BatchResult struct {
	ListingId  core.ID
	Matched    bool
	Similarity float64
	Err        error
}

// BatchMatcher evaluates one query against many candidates concurrently.
// Pair evaluations share no mutable state, so they fan out onto a worker
// pool; results come back in candidate order.
type BatchMatcher struct {
	matcher  *Matcher
	scorer   *Scorer
	pool     *ants.Pool
	poolSize int
	logger   *slog.Logger
}

// BatchOption configures a BatchMatcher.
type BatchOption func(*BatchMatcher) error

// WithPoolSize sets the number of concurrent pair evaluations.
// Default is half the CPU count, minimum one.
func WithPoolSize(size int) BatchOption {
	return func(b *BatchMatcher) error {
		if size < 1 {
			return ErrInvalidPoolSize
		}
		b.poolSize = size
		return nil
	}
}

// WithScorer sets the similarity scorer applied to rejected candidates.
// Without one, rejected candidates carry a zero similarity.
func WithScorer(scorer *Scorer) BatchOption {
	return func(b *BatchMatcher) error {
		b.scorer = scorer
		return nil
	}
}

// WithBatchLogger sets a custom logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchMatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatchMatcher creates a batch matcher over the given pair matcher.
func NewBatchMatcher(matcher *Matcher, opts ...BatchOption) (*BatchMatcher, error) {
	if matcher == nil {
		return nil, ErrNilMatcher
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	b := &BatchMatcher{
		matcher:  matcher,
		poolSize: poolSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, err
	}
	b.pool = pool
	b.logger = b.logger.With("component", "batch_matcher")
	return b, nil
}

// Release returns the worker pool's resources. The batch matcher must not
// be used afterwards.
func (b *BatchMatcher) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// MatchAll evaluates the query against every candidate. Per-candidate
// failures land in that candidate's result; the only call-level error is
// context cancellation, and candidates not yet started when the context
// ends are marked with the context's error.
func (b *BatchMatcher) MatchAll(ctx context.Context, query *core.Listing, candidates []*core.Listing) ([]BatchResult, error) {
	results := make([]BatchResult, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(candidates); j++ {
				results[j] = BatchResult{ListingId: candidates[j].Id, Err: err}
			}
			wg.Wait()
			return results, err
		}

		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			results[i] = b.matchOne(ctx, query, candidate)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = BatchResult{ListingId: candidate.Id, Err: submitErr}
		}
	}

	wg.Wait()
	return results, nil
}

func (b *BatchMatcher) matchOne(ctx context.Context, query, candidate *core.Listing) BatchResult {
	result := BatchResult{ListingId: candidate.Id}

	var verdict bool
	var err error
	if query.Intent == core.IntentMutual {
		verdict, err = b.matcher.MatchMutual(ctx, query, candidate)
	} else {
		verdict, err = b.matcher.MatchListings(ctx, query, candidate)
	}
	if err != nil {
		b.logger.Warn("candidate evaluation failed", "candidate", candidate.Id, "err", err)
		result.Err = err
		return result
	}

	result.Matched = verdict
	if !verdict && b.scorer != nil {
		result.Similarity = b.scorer.Score(ctx, query, candidate)
	}
	return result
}
