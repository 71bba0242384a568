// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ontology_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
	"github.com/poiesic/souk/ontology/mock"
	badgerstore "github.com/poiesic/souk/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, sources []ontology.Source, opts ...ontology.Option) *ontology.Resolver {
	t.Helper()
	repo, backend, err := badgerstore.NewMemoryRelationRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	resolver, err := ontology.NewResolver(repo, sources, opts...)
	require.NoError(t, err)
	return resolver
}

func TestNewResolverRequiresCache(t *testing.T) {
	_, err := ontology.NewResolver(nil, nil)
	assert.ErrorIs(t, err, ontology.ErrCacheRequired)
}

func TestResolveCachesDefiniteAnswer(t *testing.T) {
	source := mock.NewAnsweringSource(true)
	resolver := newTestResolver(t, []ontology.Source{source})

	first, err := resolver.ResolveRelationship(context.Background(), "sedan", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, first.Answer)
	assert.Equal(t, core.Provenance("mock"), first.Provenance)

	second, err := resolver.ResolveRelationship(context.Background(), "sedan", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, second.Answer)
	assert.Equal(t, core.ProvenanceCache, second.Provenance)
	assert.Equal(t, 1, source.CallCount(), "cached answer must not re-query the source")
}

func TestResolveCacheKeyNormalizesTerms(t *testing.T) {
	source := mock.NewAnsweringSource(true)
	resolver := newTestResolver(t, []ontology.Source{source})

	_, err := resolver.ResolveRelationship(context.Background(), "Sedan", "car", core.RelationImplies)
	require.NoError(t, err)

	second, err := resolver.ResolveRelationship(context.Background(), "  sedan  ", "CAR", core.RelationImplies)
	require.NoError(t, err)
	assert.Equal(t, core.ProvenanceCache, second.Provenance)
	assert.Equal(t, 1, source.CallCount())
}

func TestResolveAdvancesPastFailingSource(t *testing.T) {
	broken := mock.NewFailingSource(errors.New("service unavailable"))
	answering := mock.NewAnsweringSource(true)
	answering.Provenance = core.ProvenanceWikidata
	resolver := newTestResolver(t, []ontology.Source{broken, answering})

	resolution, err := resolver.ResolveRelationship(context.Background(), "oak", "tree", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, resolution.Answer)
	assert.Equal(t, core.ProvenanceWikidata, resolution.Provenance)
	assert.Equal(t, 1, broken.CallCount())
	assert.Equal(t, 1, answering.CallCount())
}

func TestResolveAdvancesPastIndefiniteSource(t *testing.T) {
	indefinite := mock.NewFailingSource(ontology.ErrIndefinite)
	answering := mock.NewAnsweringSource(false)
	resolver := newTestResolver(t, []ontology.Source{indefinite, answering})

	resolution, err := resolver.ResolveRelationship(context.Background(), "oak", "fish", core.RelationImplies)
	require.NoError(t, err)
	assert.False(t, resolution.Answer)
	assert.Equal(t, 1, indefinite.CallCount())
	assert.Equal(t, 1, answering.CallCount())
}

func TestResolveTierTimeoutAdvancesCascade(t *testing.T) {
	stalled := mock.NewMockSource()
	stalled.ResolveFunc = func(ctx context.Context, _, _ string, _ core.RelationKind) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	}
	answering := mock.NewAnsweringSource(true)
	answering.Provenance = core.ProvenanceWikidata
	resolver := newTestResolver(t, []ontology.Source{stalled, answering},
		ontology.WithTierTimeout(20*time.Millisecond))

	start := time.Now()
	resolution, err := resolver.ResolveRelationship(context.Background(), "sedan", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, resolution.Answer)
	assert.Equal(t, core.ProvenanceWikidata, resolution.Provenance)
	assert.Equal(t, 1, stalled.CallCount())
	assert.Less(t, time.Since(start), time.Second, "a stalled tier must be bounded by the tier timeout")
}

func TestResolveDefiniteNegativeStopsCascade(t *testing.T) {
	negative := mock.NewAnsweringSource(false)
	never := mock.NewAnsweringSource(true)
	resolver := newTestResolver(t, []ontology.Source{negative, never})

	resolution, err := resolver.ResolveRelationship(context.Background(), "oak", "fish", core.RelationImplies)
	require.NoError(t, err)
	assert.False(t, resolution.Answer)
	assert.Equal(t, 0, never.CallCount(), "a definite no must not fall through to later tiers")
}

func TestResolveExhaustedCascade(t *testing.T) {
	tests := []struct {
		name   string
		policy ontology.Policy
		kind   core.RelationKind
		answer bool
	}{
		{"fail open implies", ontology.FailOpen, core.RelationImplies, false},
		{"fail open excludes", ontology.FailOpen, core.RelationExcludes, false},
		{"fail closed implies", ontology.FailClosed, core.RelationImplies, false},
		{"fail closed antonym", ontology.FailClosed, core.RelationAntonym, false},
		{"fail closed excludes", ontology.FailClosed, core.RelationExcludes, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mock.NewFailingSource(errors.New("down"))
			resolver := newTestResolver(t, []ontology.Source{source}, ontology.WithPolicy(tt.policy))

			resolution, err := resolver.ResolveRelationship(context.Background(), "a", "b", tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.answer, resolution.Answer)
			assert.Equal(t, core.ProvenanceDefault, resolution.Provenance)
		})
	}
}

func TestResolveExhaustedDefaultIsNotCached(t *testing.T) {
	source := mock.NewFailingSource(errors.New("down"))
	resolver := newTestResolver(t, []ontology.Source{source})

	_, err := resolver.ResolveRelationship(context.Background(), "a", "b", core.RelationImplies)
	require.NoError(t, err)

	resolution, err := resolver.ResolveRelationship(context.Background(), "a", "b", core.RelationImplies)
	require.NoError(t, err)
	assert.Equal(t, core.ProvenanceDefault, resolution.Provenance)
	assert.Equal(t, 2, source.CallCount(), "defaults must stay retryable")
}

func TestResolveDeduplicatesConcurrentQueries(t *testing.T) {
	release := make(chan struct{})
	source := mock.NewMockSource()
	source.ResolveFunc = func(context.Context, string, string, core.RelationKind) (bool, error) {
		<-release
		return true, nil
	}
	resolver := newTestResolver(t, []ontology.Source{source})

	const workers = 8
	var wg sync.WaitGroup
	results := make([]core.Resolution, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resolution, err := resolver.ResolveRelationship(context.Background(), "sedan", "car", core.RelationImplies)
			require.NoError(t, err)
			results[i] = resolution
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, source.CallCount(), "concurrent identical queries must share one cascade")
	for _, resolution := range results {
		assert.True(t, resolution.Answer)
	}
}

func TestImpliesEqualTermsShortCircuit(t *testing.T) {
	source := mock.NewAnsweringSource(false)
	resolver := newTestResolver(t, []ontology.Source{source})

	assert.True(t, resolver.Implies(context.Background(), "Sedan", "  sedan "))
	assert.Equal(t, 0, source.CallCount())
	assert.False(t, resolver.Implies(context.Background(), "", ""))
}

func TestIsAntonym(t *testing.T) {
	source := mock.NewAnsweringSource(true)
	resolver := newTestResolver(t, []ontology.Source{source})

	assert.True(t, resolver.IsAntonym(context.Background(), "buy", "sell"))
	assert.Equal(t, 1, source.CallCount())
}

func TestViolatesExclusion(t *testing.T) {
	source := mock.NewMockSource()
	source.ResolveFunc = func(_ context.Context, termA, termB string, _ core.RelationKind) (bool, error) {
		return termA == "sedan" && termB == "car", nil
	}
	resolver := newTestResolver(t, []ontology.Source{source})
	ctx := context.Background()

	assert.True(t, resolver.ViolatesExclusion(ctx, "Pets", []string{"pets"}), "exact match")
	assert.True(t, resolver.ViolatesExclusion(ctx, "sedan", []string{"boat", "car"}), "subsumed match")
	assert.False(t, resolver.ViolatesExclusion(ctx, "oak", []string{"boat", "car"}))
	assert.False(t, resolver.ViolatesExclusion(ctx, "", []string{"car"}))
	assert.False(t, resolver.ViolatesExclusion(ctx, "oak", nil))
}

func TestResolveHonorsCancellationBetweenTiers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := mock.NewMockSource()
	first.ResolveFunc = func(context.Context, string, string, core.RelationKind) (bool, error) {
		cancel()
		return false, ontology.ErrIndefinite
	}
	second := mock.NewAnsweringSource(true)
	resolver := newTestResolver(t, []ontology.Source{first, second})

	_, err := resolver.ResolveRelationship(ctx, "a", "b", core.RelationImplies)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, second.CallCount(), "later tiers must not run after cancellation")
}

func TestResolveCachesDespiteCallerAbort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var tierErr error
	source := mock.NewMockSource()
	source.ResolveFunc = func(tierCtx context.Context, _, _ string, _ core.RelationKind) (bool, error) {
		cancel()
		tierErr = tierCtx.Err()
		return true, nil
	}
	resolver := newTestResolver(t, []ontology.Source{source})

	resolution, err := resolver.ResolveRelationship(ctx, "sedan", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, resolution.Answer)
	assert.NoError(t, tierErr, "tier context must be detached from the caller")

	second, err := resolver.ResolveRelationship(context.Background(), "sedan", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.Equal(t, core.ProvenanceCache, second.Provenance)
	assert.Equal(t, 1, source.CallCount(), "an abandoned request must still warm the cache")
}
