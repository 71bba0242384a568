package match

import (
	"context"

	"github.com/poiesic/souk/core"
)

// itemValues flattens an item into the value set exclusion checks run over:
// its type plus every categorical attribute value.
func itemValues(item core.Item) []string {
	values := make([]string, 0, 1+len(item.Categorical))
	if item.Type != "" {
		values = append(values, item.Type)
	}
	for _, v := range item.Categorical {
		values = append(values, v)
	}
	return values
}

// itemsCovered reports whether every required item is satisfied by at least
// one candidate item. An empty required sequence is trivially covered.
func itemsCovered(ctx context.Context, resolver Resolver, required, candidates []core.Item) bool {
	for _, r := range required {
		found := false
		for _, c := range candidates {
			if itemSatisfies(ctx, resolver, r, c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// itemsExcluded reports whether any value flattened from the candidate items
// hits the exclusion set, directly or through the ontology hierarchy.
func itemsExcluded(ctx context.Context, resolver Resolver, candidates []core.Item, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, item := range candidates {
		for _, value := range itemValues(item) {
			if termViolates(ctx, resolver, value, excluded) {
				return true
			}
		}
	}
	return false
}

// itemsSatisfy is the item-array verdict: coverage AND NOT exclusion
// violation. An exclusion hit fails the array regardless of coverage.
func itemsSatisfy(ctx context.Context, resolver Resolver, query, candidate *core.Listing) bool {
	if itemsExcluded(ctx, resolver, candidate.Items, query.ItemExclusions) {
		return false
	}
	return itemsCovered(ctx, resolver, query.Items, candidate.Items)
}
