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

package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/souk/core"
)

// Matcher composes the matching sub-rules into one boolean verdict per
// ordered pair of listings. It holds no per-pair state and is safe for
// concurrent use.
type Matcher struct {
	resolver     Resolver
	monitor      Monitor
	logger       *slog.Logger
	currentToken string
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithResolver injects an ontology resolver for implication and exclusion
// hierarchy. Without one every comparison is strict normalized equality.
func WithResolver(resolver Resolver) Option {
	return func(m *Matcher) error {
		m.resolver = resolver
		return nil
	}
}

// WithMonitor sets a matching monitor.
// Default is NopMonitor.
func WithMonitor(monitor Monitor) Option {
	return func(m *Matcher) error {
		if monitor == nil {
			monitor = NopMonitor{}
		}
		m.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithCurrentLocation sets the caller-resolved place token used when a
// query's location mode is near_me. Resolution of "near" happens upstream;
// the matcher only compares tokens.
func WithCurrentLocation(token string) Option {
	return func(m *Matcher) error {
		m.currentToken = token
		return nil
	}
}

// NewMatcher creates a listing matcher.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		monitor: NopMonitor{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	m.logger = m.logger.With("component", "matcher")
	return m, nil
}

// gatesPass checks the top-level compatibility gates: equal intents,
// complementary subintents, intersecting domains, and for mutual pairs
// intersecting primary mutual categories. Empty sets on either side are not
// constraints.
func gatesPass(query, candidate *core.Listing) bool {
	if query.Intent != candidate.Intent {
		return false
	}

	complement, ok := query.SubIntent.Complement()
	if !ok || candidate.SubIntent != complement {
		return false
	}

	if !setsIntersect(query.Domains, candidate.Domains) {
		return false
	}
	if query.Intent == core.IntentMutual &&
		!setsIntersect(query.PrimaryMutualCategories, candidate.PrimaryMutualCategories) {
		return false
	}
	return true
}

// setsIntersect reports whether the two token sets share a member. Either
// set being empty means no constraint was declared, which passes.
func setsIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	seen := make(map[string]struct{}, len(a))
	for _, t := range a {
		if normalized := normalizeToken(t); normalized != "" {
			seen[normalized] = struct{}{}
		}
	}
	for _, t := range b {
		if _, ok := seen[normalizeToken(t)]; ok {
			return true
		}
	}
	return false
}

// MatchListings decides whether the candidate satisfies the query.
// Evaluation short-circuits on the first failing sub-rule; order affects
// only performance, never the verdict. The only errors are malformed
// listings.
func (m *Matcher) MatchListings(ctx context.Context, query, candidate *core.Listing) (bool, error) {
	if err := core.ValidateListing(query); err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	if err := core.ValidateListing(candidate); err != nil {
		return false, fmt.Errorf("candidate: %w", err)
	}

	if !gatesPass(query, candidate) {
		m.monitor.PairRejected(query.Id, candidate.Id, StageGates)
		return false, nil
	}
	m.monitor.StagePassed(query.Id, candidate.Id, StageGates)

	if !itemsSatisfy(ctx, m.resolver, query, candidate) {
		m.monitor.PairRejected(query.Id, candidate.Id, StageItems)
		return false, nil
	}
	m.monitor.StagePassed(query.Id, candidate.Id, StageItems)

	if !directionsSatisfy(ctx, m.resolver, query, candidate) {
		m.monitor.PairRejected(query.Id, candidate.Id, StageDirections)
		return false, nil
	}
	m.monitor.StagePassed(query.Id, candidate.Id, StageDirections)

	if !locationSatisfies(query, candidate, m.currentToken) {
		m.monitor.PairRejected(query.Id, candidate.Id, StageLocation)
		return false, nil
	}
	m.monitor.StagePassed(query.Id, candidate.Id, StageLocation)

	m.monitor.PairMatched(query.Id, candidate.Id)
	return true, nil
}

// MatchMutual decides a mutual-intent pair: the verdict holds only when
// each listing satisfies the other. This is the single place a pair is
// evaluated in both orderings.
func (m *Matcher) MatchMutual(ctx context.Context, a, b *core.Listing) (bool, error) {
	forward, err := m.MatchListings(ctx, a, b)
	if err != nil {
		return false, err
	}
	if !forward {
		return false, nil
	}
	return m.MatchListings(ctx, b, a)
}
