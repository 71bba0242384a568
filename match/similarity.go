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

	"github.com/poiesic/souk/core"
)

// RejectCap is the ceiling applied to a similarity score when any tier-one
// field mismatches. Callers typically hide candidates at or below it.
const RejectCap = 0.2

const (
	exclusionPenalty  = 0.15
	surplusBonusStep  = 0.02
	surplusBonusLimit = 0.1
)

// Scorer grades how close a candidate came to matching a query. It is
// invoked for pairs the boolean matcher rejected, so "close but not exact"
// candidates can still be surfaced in ranked output.
//
// Fields split into two tiers. Tier one must match exactly: intent,
// subintent complementarity, domain overlap, and required item types; any
// mismatch caps the score at RejectCap. Tier two constraints each add
// graded credit when satisfied, with deductions for exclusion violations
// and a small bonus for candidate attributes the query never asked about.
type Scorer struct {
	resolver     Resolver
	currentToken string
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithScorerResolver injects an ontology resolver for implication checks.
func WithScorerResolver(resolver Resolver) ScorerOption {
	return func(s *Scorer) { s.resolver = resolver }
}

// WithScorerCurrentLocation sets the caller-resolved near_me token.
func WithScorerCurrentLocation(token string) ScorerOption {
	return func(s *Scorer) { s.currentToken = token }
}

// NewScorer creates a similarity scorer.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// tally accumulates graded credit as satisfied/total sub-constraints.
type tally struct {
	earned   float64
	possible float64
}

func (t *tally) add(satisfied bool) {
	t.possible++
	if satisfied {
		t.earned++
	}
}

func (t *tally) merge(o tally) {
	t.earned += o.earned
	t.possible += o.possible
}

// fraction is the earned share, or 1 when nothing was graded.
func (t tally) fraction() float64 {
	if t.possible == 0 {
		return 1
	}
	return t.earned / t.possible
}

// Score returns a bounded [0, 1] similarity for a query/candidate pair.
// It never returns an error: a malformed listing simply grades poorly.
func (s *Scorer) Score(ctx context.Context, query, candidate *core.Listing) float64 {
	tierOneOk := s.tierOnePasses(ctx, query, candidate)

	var t tally
	for _, required := range query.Items {
		t.merge(s.bestItemTally(ctx, required, candidate.Items))
	}
	t.merge(s.bundleTally(ctx, query.OtherPreferences, candidate.SelfAttributes))
	t.add(locationSatisfies(query, candidate, s.currentToken))

	score := t.fraction()

	if itemsExcluded(ctx, s.resolver, candidate.Items, query.ItemExclusions) {
		score -= exclusionPenalty
	}
	if bundleExcluded(ctx, s.resolver, candidate.SelfAttributes, query.OtherExclusions) {
		score -= exclusionPenalty
	}
	if locationExcluded(query, candidate) {
		score -= exclusionPenalty
	}

	score += s.surplusBonus(query, candidate)

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	if !tierOneOk && score > RejectCap {
		score = RejectCap
	}
	return score
}

// tierOnePasses checks the exact-match fields.
func (s *Scorer) tierOnePasses(ctx context.Context, query, candidate *core.Listing) bool {
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

	for _, required := range query.Items {
		typed := false
		for _, c := range candidate.Items {
			if termSatisfies(ctx, s.resolver, c.Type, required.Type) {
				typed = true
				break
			}
		}
		if !typed {
			return false
		}
	}
	return true
}

// bestItemTally grades a required item against every candidate item and
// keeps the best fraction, so one good candidate item is not diluted by
// unrelated ones.
func (s *Scorer) bestItemTally(ctx context.Context, required core.Item, candidates []core.Item) tally {
	best := s.bundleTally(ctx, required.Bundle(), core.Bundle{})
	for _, c := range candidates {
		if !termSatisfies(ctx, s.resolver, c.Type, required.Type) {
			continue
		}
		t := s.bundleTally(ctx, required.Bundle(), c.Bundle())
		if t.fraction() > best.fraction() {
			best = t
		}
	}
	return best
}

// bundleTally grades each sub-constraint of a required bundle individually.
func (s *Scorer) bundleTally(ctx context.Context, required, candidate core.Bundle) tally {
	var t tally
	for attribute, want := range required.Categorical {
		have, ok := candidate.Categorical[attribute]
		t.add(ok && termSatisfies(ctx, s.resolver, have, want))
	}
	for attribute, min := range required.Min {
		t.add(NewMin(min).Overlaps(candidateRange(candidate, attribute)))
	}
	for attribute, max := range required.Max {
		t.add(NewMax(max).Overlaps(candidateRange(candidate, attribute)))
	}
	for attribute, span := range required.Range {
		t.add(FromSpan(span).Overlaps(candidateRange(candidate, attribute)))
	}
	return t
}

// surplusBonus rewards candidate attributes the query never requested,
// a signal of richer inventory.
func (s *Scorer) surplusBonus(query, candidate *core.Listing) float64 {
	surplus := 0
	for attribute := range candidate.SelfAttributes.Categorical {
		if _, requested := query.OtherPreferences.Categorical[attribute]; !requested {
			surplus++
		}
	}

	requested := make(map[string]struct{})
	for _, item := range query.Items {
		for attribute := range item.Categorical {
			requested[attribute] = struct{}{}
		}
	}
	for _, item := range candidate.Items {
		for attribute := range item.Categorical {
			if _, ok := requested[attribute]; !ok {
				surplus++
			}
		}
	}

	bonus := float64(surplus) * surplusBonusStep
	if bonus > surplusBonusLimit {
		bonus = surplusBonusLimit
	}
	return bonus
}
