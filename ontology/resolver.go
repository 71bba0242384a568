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


package ontology

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/storage"
	"golang.org/x/sync/singleflight"
)

const defaultTierTimeout = 5 * time.Second

// Policy selects the answer returned when the entire cascade fails.
type Policy int

const (
	// FailOpen resolves an exhausted cascade to "no implication / no
	// violation", so unresolved ontology never blocks an otherwise-valid
	// match. This is the default.
	FailOpen Policy = iota

	// FailClosed resolves exhausted exclusion queries to "violation", for
	// deployments that must not admit a candidate whose exclusion status
	// could not be established. Implication and antonym queries still
	// resolve to false.
	FailClosed
)

// Resolver answers relationship queries through a cascade of sources with a
// persistent write-once cache in front. It is safe for concurrent use.
type Resolver struct {
	cache       storage.RelationRepository
	sources     []Source
	tierTimeout time.Duration
	policy      Policy
	group       singleflight.Group
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithTierTimeout sets the timeout applied to each cascade tier call.
// Default is 5 seconds.
func WithTierTimeout(d time.Duration) Option {
	return func(r *Resolver) error {
		if d <= 0 {
			return errors.New("tier timeout must be positive")
		}
		r.tierTimeout = d
		return nil
	}
}

// WithPolicy sets the exhausted-cascade policy.
// Default is FailOpen.
func WithPolicy(policy Policy) Option {
	return func(r *Resolver) error {
		r.policy = policy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a resolver over the given cache and ordered sources.
// Sources are tried in slice order; an empty slice is allowed and leaves
// only the cache and the exhausted-cascade default.
func NewResolver(cache storage.RelationRepository, sources []Source, opts ...Option) (*Resolver, error) {
	if cache == nil {
		return nil, ErrCacheRequired
	}

	r := &Resolver{
		cache:       cache,
		sources:     sources,
		tierTimeout: defaultTierTimeout,
		policy:      FailOpen,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ResolveRelationship answers a relationship query with provenance. The only
// error conditions are caller cancellation between tiers and cache read
// failures; tier failures and an exhausted cascade are absorbed into the
// returned resolution.
func (r *Resolver) ResolveRelationship(ctx context.Context, termA, termB string, kind core.RelationKind) (core.Resolution, error) {
	key := QueryKey(termA, termB, kind)
	id := core.IDFromContent(key)

	if cached, err := r.cache.GetResolution(ctx, id); err == nil {
		return core.Resolution{
			Answer:     cached.Answer,
			Provenance: core.ProvenanceCache,
			ResolvedAt: cached.ResolvedAt,
		}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return core.Resolution{}, err
	}

	// Deduplicate concurrent resolutions of the same key: one cascade runs,
	// one cache write happens, every waiter observes the same result.
	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.runCascade(ctx, id, NormalizeTerm(termA), NormalizeTerm(termB), kind)
	})
	if err != nil {
		return core.Resolution{}, err
	}
	return v.(core.Resolution), nil
}

// runCascade tries each source in order until one returns a definite answer.
// Tier calls run on a context detached from the caller so that an in-flight
// call can complete and populate the cache even if the caller aborts; caller
// cancellation is honored between tiers.
func (r *Resolver) runCascade(ctx context.Context, id core.ID, termA, termB string, kind core.RelationKind) (core.Resolution, error) {
	// Another flight may have resolved and cached the key while this caller
	// waited on the cache miss.
	if cached, err := r.cache.GetResolution(ctx, id); err == nil {
		return core.Resolution{
			Answer:     cached.Answer,
			Provenance: core.ProvenanceCache,
			ResolvedAt: cached.ResolvedAt,
		}, nil
	}

	for _, source := range r.sources {
		if err := ctx.Err(); err != nil {
			return core.Resolution{}, err
		}

		tierCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.tierTimeout)
		answer, err := source.Resolve(tierCtx, termA, termB, kind)
		cancel()

		if err != nil {
			if errors.Is(err, ErrIndefinite) {
				r.logger.Debug("source has no answer",
					"source", source.Name(), "term_a", termA, "term_b", termB, "kind", kind.String())
			} else {
				r.logger.Warn("source failed, advancing cascade",
					"source", source.Name(), "term_a", termA, "term_b", termB,
					"kind", kind.String(), "err", err)
			}
			continue
		}

		resolution := core.Resolution{
			Answer:     answer,
			Provenance: source.Name(),
			ResolvedAt: time.Now().UTC(),
		}

		// Best-effort cache write, detached from the caller: an abandoned
		// request still warms the cache for the next one.
		if err := r.cache.PutResolution(context.WithoutCancel(ctx), id, &resolution); err != nil {
			r.logger.Warn("failed to cache resolution", "key", id, "err", err)
		}

		return resolution, nil
	}

	// Cascade exhausted: resolve to the policy default. The default is not
	// written to the cache so a later query can retry the tiers.
	resolution := core.Resolution{
		Answer:     r.exhaustedAnswer(kind),
		Provenance: core.ProvenanceDefault,
		ResolvedAt: time.Now().UTC(),
	}
	r.logger.Info("cascade exhausted, using default",
		"term_a", termA, "term_b", termB, "kind", kind.String(), "answer", resolution.Answer)
	return resolution, nil
}

func (r *Resolver) exhaustedAnswer(kind core.RelationKind) bool {
	return r.policy == FailClosed && kind == core.RelationExcludes
}

// Implies reports whether termA is a kind or specialization of termB.
// Identical normalized terms imply each other without a cascade query.
// Resolver failures resolve to the policy default, never an error.
func (r *Resolver) Implies(ctx context.Context, termA, termB string) bool {
	a, b := NormalizeTerm(termA), NormalizeTerm(termB)
	if a == b {
		return a != ""
	}
	resolution, err := r.ResolveRelationship(ctx, a, b, core.RelationImplies)
	if err != nil {
		return false
	}
	return resolution.Answer
}

// IsAntonym reports whether the two terms are direct opposites.
func (r *Resolver) IsAntonym(ctx context.Context, termA, termB string) bool {
	resolution, err := r.ResolveRelationship(ctx, termA, termB, core.RelationAntonym)
	if err != nil {
		return false
	}
	return resolution.Answer
}

// ViolatesExclusion reports whether the term equals, or falls under, any of
// the excluded terms. Equality short-circuits without a cascade query.
func (r *Resolver) ViolatesExclusion(ctx context.Context, term string, excluded []string) bool {
	normalized := NormalizeTerm(term)
	if normalized == "" {
		return false
	}

	for _, e := range excluded {
		if NormalizeTerm(e) == normalized {
			return true
		}
	}
	for _, e := range excluded {
		resolution, err := r.ResolveRelationship(ctx, normalized, e, core.RelationExcludes)
		if err != nil {
			continue
		}
		if resolution.Answer {
			return true
		}
	}
	return false
}
