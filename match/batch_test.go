package match

import (
	"context"
	"testing"

	"github.com/poiesic/souk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchMatcherMatchAll(t *testing.T) {
	matcher := newTestMatcher(t)
	batch, err := NewBatchMatcher(matcher, WithPoolSize(4), WithScorer(NewScorer()))
	require.NoError(t, err)
	defer batch.Release()

	query := buyPhoneListing(50000)
	candidates := []*core.Listing{
		sellPhoneListing(40000),
		sellPhoneListing(60000),
		sellPhoneListing(50000),
	}
	candidates[0].Id = 10
	candidates[1].Id = 11
	candidates[2].Id = 12

	results, err := batch.MatchAll(context.Background(), query, candidates)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, core.ID(10), results[0].ListingId)
	assert.True(t, results[0].Matched)
	assert.Zero(t, results[0].Similarity, "matched candidates are not scored")

	assert.Equal(t, core.ID(11), results[1].ListingId)
	assert.False(t, results[1].Matched)
	assert.Greater(t, results[1].Similarity, 0.0, "rejected candidates carry a near-miss score")

	assert.True(t, results[2].Matched, "touching intervals overlap")
}

func TestBatchMatcherMutualQuery(t *testing.T) {
	matcher := newTestMatcher(t)
	batch, err := NewBatchMatcher(matcher, WithPoolSize(2))
	require.NoError(t, err)
	defer batch.Release()

	a := mutualListing(1,
		map[string]string{"smoking": "non-smoker"},
		map[string]string{"drinking": "non-drinker"})
	good := mutualListing(2,
		map[string]string{"drinking": "non-drinker"},
		map[string]string{"smoking": "non-smoker"})
	oneWay := mutualListing(3,
		map[string]string{"drinking": "non-drinker"},
		map[string]string{"smoking": "smoker"})

	results, err := batch.MatchAll(context.Background(), a, []*core.Listing{good, oneWay})
	require.NoError(t, err)
	assert.True(t, results[0].Matched)
	assert.False(t, results[1].Matched, "mutual matching is a strict conjunction")
}

func TestBatchMatcherMalformedCandidate(t *testing.T) {
	matcher := newTestMatcher(t)
	batch, err := NewBatchMatcher(matcher)
	require.NoError(t, err)
	defer batch.Release()

	bad := sellPhoneListing(40000)
	bad.Items[0].Range = map[string]core.Span{"price": {Low: 10, High: 5}}

	results, err := batch.MatchAll(context.Background(), buyPhoneListing(50000),
		[]*core.Listing{bad, sellPhoneListing(40000)})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, core.ErrInvalidSpan)
	assert.True(t, results[1].Matched, "one malformed candidate does not poison the batch")
}

func TestBatchMatcherCancellation(t *testing.T) {
	matcher := newTestMatcher(t)
	batch, err := NewBatchMatcher(matcher, WithPoolSize(1))
	require.NoError(t, err)
	defer batch.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := []*core.Listing{sellPhoneListing(40000), sellPhoneListing(45000)}
	results, err := batch.MatchAll(ctx, buyPhoneListing(50000), candidates)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.ErrorIs(t, result.Err, context.Canceled)
	}
}

func TestNewBatchMatcherValidation(t *testing.T) {
	_, err := NewBatchMatcher(nil)
	assert.ErrorIs(t, err, ErrNilMatcher)

	matcher := newTestMatcher(t)
	_, err = NewBatchMatcher(matcher, WithPoolSize(0))
	assert.ErrorIs(t, err, ErrInvalidPoolSize)
}
