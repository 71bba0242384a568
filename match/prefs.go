package match

import (
	"context"

	"github.com/poiesic/souk/core"
)

// bundleExcluded reports whether any categorical value in the bundle hits
// the exclusion set.
func bundleExcluded(ctx context.Context, resolver Resolver, b core.Bundle, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, value := range b.Values() {
		if termViolates(ctx, resolver, value, excluded) {
			return true
		}
	}
	return false
}

// otherToSelf evaluates the query owner's demands on a counterpart: the
// candidate's self attributes must satisfy the query's other-preferences
// bundle, stay disjoint from the query's other-exclusions, and the
// candidate's demands must not name anything the query owner excludes of
// itself.
func otherToSelf(ctx context.Context, resolver Resolver, query, candidate *core.Listing) bool {
	if !bundleSatisfies(ctx, resolver, query.OtherPreferences, candidate.SelfAttributes) {
		return false
	}
	if bundleExcluded(ctx, resolver, candidate.SelfAttributes, query.OtherExclusions) {
		return false
	}
	if bundleExcluded(ctx, resolver, candidate.OtherPreferences, query.SelfExclusions) {
		return false
	}
	return true
}

// selfToOther is the symmetric check for bidirectional intents: the
// candidate's demands evaluated against the query's self attributes.
func selfToOther(ctx context.Context, resolver Resolver, query, candidate *core.Listing) bool {
	return otherToSelf(ctx, resolver, candidate, query)
}

// directionsSatisfy composes the directional checks a pair needs. Mutual
// listings are bidirectional and require both directions in one evaluation;
// product and service pairs check only the query's demands.
func directionsSatisfy(ctx context.Context, resolver Resolver, query, candidate *core.Listing) bool {
	if !otherToSelf(ctx, resolver, query, candidate) {
		return false
	}
	if query.Intent == core.IntentMutual {
		return selfToOther(ctx, resolver, query, candidate)
	}
	return true
}
