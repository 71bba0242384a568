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

package souk

import (
	"log/slog"
	"time"

	"github.com/poiesic/souk/ai"
	"github.com/poiesic/souk/ai/openai"
	"github.com/poiesic/souk/match"
	"github.com/poiesic/souk/ontology"
	"github.com/poiesic/souk/ontology/babelnet"
	"github.com/poiesic/souk/ontology/conceptnet"
	"github.com/poiesic/souk/ontology/llm"
	"github.com/poiesic/souk/ontology/wikidata"
	"github.com/poiesic/souk/storage"
	"github.com/poiesic/souk/storage/badger"
)

// Engine wires the matching, ranking, and ontology components over one
// persistent relation cache. Construct one per process.
type Engine struct {
	backend      *badger.Backend
	relationRepo storage.RelationRepository
	resolver     *ontology.Resolver
	matcher      *match.Matcher
	currentToken string
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig        *ai.Config
	treePath        string
	babelnetKey     string
	currentLocation string
	tierTimeout     time.Duration
	policy          ontology.Policy
	networkTiers    bool
	llmTier         bool
}

// WithAIConfig sets the generative-tier configuration. The default
// configuration targets a local OpenAI-compatible endpoint.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithConceptTree loads a local concept taxonomy as the first cascade tier.
func WithConceptTree(path string) EngineOption {
	return func(o *engineOptions) {
		o.treePath = path
	}
}

// WithBabelNetKey enables the BabelNet tier. Without a key the tier is
// skipped entirely.
func WithBabelNetKey(key string) EngineOption {
	return func(o *engineOptions) {
		o.babelnetKey = key
	}
}

// WithCurrentLocation sets the caller-resolved place token for near_me
// location matching.
func WithCurrentLocation(token string) EngineOption {
	return func(o *engineOptions) {
		o.currentLocation = token
	}
}

// WithTierTimeout sets the per-tier resolver timeout.
func WithTierTimeout(d time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.tierTimeout = d
	}
}

// WithFailClosed makes exhausted exclusion queries resolve to "violation"
// instead of the fail-open default.
func WithFailClosed() EngineOption {
	return func(o *engineOptions) {
		o.policy = ontology.FailClosed
	}
}

// WithoutNetworkTiers drops the ConceptNet, Wikidata, and BabelNet tiers,
// leaving the cache, any local concept tree, and the generative fallback.
func WithoutNetworkTiers() EngineOption {
	return func(o *engineOptions) {
		o.networkTiers = false
	}
}

// WithoutGenerativeTier drops the generative fallback from the cascade.
func WithoutGenerativeTier() EngineOption {
	return func(o *engineOptions) {
		o.llmTier = false
	}
}

// NewEngine opens the relation cache at filePath (in-memory when empty) and
// assembles the resolver cascade and matcher. Close releases the cache.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:     ai.DefaultConfig(),
		networkTiers: true,
		llmTier:      true,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	relationRepo, err := badger.NewRelationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	sources, err := buildSources(options)
	if err != nil {
		backend.Close()
		return nil, err
	}

	resolverOpts := []ontology.Option{ontology.WithPolicy(options.policy)}
	if options.tierTimeout > 0 {
		resolverOpts = append(resolverOpts, ontology.WithTierTimeout(options.tierTimeout))
	}
	resolver, err := ontology.NewResolver(relationRepo, sources, resolverOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	matcher, err := match.NewMatcher(
		match.WithResolver(resolver),
		match.WithCurrentLocation(options.currentLocation),
	)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:      backend,
		relationRepo: relationRepo,
		resolver:     resolver,
		matcher:      matcher,
		currentToken: options.currentLocation,
		logger:       slog.Default(),
	}, nil
}

// buildSources assembles the cascade tier list in resolution order: local
// tree, then the network knowledge services, then the generative fallback.
func buildSources(options *engineOptions) ([]ontology.Source, error) {
	var sources []ontology.Source

	if options.treePath != "" {
		tree, err := ontology.LoadTree(options.treePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, ontology.NewTreeSource(tree))
	}

	if options.networkTiers {
		sources = append(sources, conceptnet.NewClient(), wikidata.NewClient())
		if options.babelnetKey != "" {
			client, err := babelnet.NewClient(options.babelnetKey)
			if err != nil {
				return nil, err
			}
			sources = append(sources, client)
		}
	}

	if options.llmTier && options.aiConfig != nil {
		judge, err := openai.NewRelationJudge(options.aiConfig)
		if err != nil {
			return nil, err
		}
		sources = append(sources, llm.NewSource(judge))
	}

	return sources, nil
}

// Close releases the relation cache.
func (e *Engine) Close() error {
	if err := e.relationRepo.Close(); err != nil {
		e.logger.Error("error closing relation repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Matcher returns the listing matcher backed by the engine's resolver.
func (e *Engine) Matcher() *match.Matcher {
	return e.matcher
}

// Resolver returns the ontology resolver.
func (e *Engine) Resolver() *ontology.Resolver {
	return e.resolver
}

// RelationRepository exposes the persistent relation cache.
func (e *Engine) RelationRepository() storage.RelationRepository {
	return e.relationRepo
}

// NewBatchMatcher creates a batch matcher over the engine's matcher.
// Callers own Release.
func (e *Engine) NewBatchMatcher(opts ...match.BatchOption) (*match.BatchMatcher, error) {
	return match.NewBatchMatcher(e.matcher, opts...)
}

// NewScorer creates a similarity scorer backed by the engine's resolver.
func (e *Engine) NewScorer() *match.Scorer {
	return match.NewScorer(
		match.WithScorerResolver(e.resolver),
		match.WithScorerCurrentLocation(e.currentToken),
	)
}
