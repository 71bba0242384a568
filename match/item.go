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
	"strings"

	"github.com/poiesic/souk/core"
)

// Resolver is the narrow ontology surface matching needs: hierarchical
// implication and hierarchy-aware exclusion membership. A nil Resolver
// degrades every check to strict normalized equality.
type Resolver interface {
	// Implies reports whether termA is a kind or specialization of termB.
	Implies(ctx context.Context, termA, termB string) bool

	// ViolatesExclusion reports whether term equals, or falls under, any of
	// the excluded terms.
	ViolatesExclusion(ctx context.Context, term string, excluded []string) bool
}

// normalizeToken lowercases, trims, and collapses inner whitespace so that
// token comparison is stable across caller formatting.
func normalizeToken(token string) string {
	return strings.Join(strings.Fields(strings.ToLower(token)), " ")
}

// termSatisfies reports whether the candidate term equals the required term
// or, with a resolver, implies it.
func termSatisfies(ctx context.Context, resolver Resolver, candidate, required string) bool {
	c, r := normalizeToken(candidate), normalizeToken(required)
	if c == r {
		return c != ""
	}
	if resolver == nil {
		return false
	}
	return resolver.Implies(ctx, candidate, required)
}

// termViolates reports whether the term hits the exclusion set, by equality
// or by resolver hierarchy.
func termViolates(ctx context.Context, resolver Resolver, term string, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	if resolver != nil {
		return resolver.ViolatesExclusion(ctx, term, excluded)
	}

	normalized := normalizeToken(term)
	if normalized == "" {
		return false
	}
	for _, e := range excluded {
		if normalizeToken(e) == normalized {
			return true
		}
	}
	return false
}

// bundleSatisfies evaluates a required constraint bundle against a candidate
// bundle. An empty required bundle is vacuously satisfied. Categorical
// entries need an equal or implying candidate value for the same attribute;
// numeric entries need interval overlap, with attributes the candidate never
// declares treated as unconstrained.
func bundleSatisfies(ctx context.Context, resolver Resolver, required, candidate core.Bundle) bool {
	for attribute, want := range required.Categorical {
		have, ok := candidate.Categorical[attribute]
		if !ok {
			return false
		}
		if !termSatisfies(ctx, resolver, have, want) {
			return false
		}
	}

	for attribute, min := range required.Min {
		if !NewMin(min).Overlaps(candidateRange(candidate, attribute)) {
			return false
		}
	}
	for attribute, max := range required.Max {
		if !NewMax(max).Overlaps(candidateRange(candidate, attribute)) {
			return false
		}
	}
	for attribute, span := range required.Range {
		if !FromSpan(span).Overlaps(candidateRange(candidate, attribute)) {
			return false
		}
	}

	return true
}

// itemSatisfies reports whether a candidate item satisfies a required item:
// type equality-or-implication, then the required item's constraint bundle.
// Hard boolean; graded credit belongs to the similarity scorer.
func itemSatisfies(ctx context.Context, resolver Resolver, required, candidate core.Item) bool {
	if !termSatisfies(ctx, resolver, candidate.Type, required.Type) {
		return false
	}
	return bundleSatisfies(ctx, resolver, required.Bundle(), candidate.Bundle())
}
