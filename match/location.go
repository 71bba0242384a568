package match

import (
	"github.com/poiesic/souk/core"
)

// candidateLocationTokens collects the candidate's place tokens for
// exclusion checks: the single token, plus both endpoints for a route.
func candidateLocationTokens(loc core.Location) []string {
	tokens := make([]string, 0, 3)
	for _, t := range []string{loc.Token, loc.Origin, loc.Destination} {
		if normalized := normalizeToken(t); normalized != "" {
			tokens = append(tokens, normalized)
		}
	}
	return tokens
}

// locationExcluded reports whether any of the candidate's tokens appears in
// the query's location exclusion list. Exclusions apply before and
// independently of the mode-specific check.
func locationExcluded(query, candidate *core.Listing) bool {
	if len(query.LocationExclusions) == 0 {
		return false
	}

	excluded := make(map[string]struct{}, len(query.LocationExclusions))
	for _, e := range query.LocationExclusions {
		if normalized := normalizeToken(e); normalized != "" {
			excluded[normalized] = struct{}{}
		}
	}

	for _, token := range candidateLocationTokens(candidate.Location) {
		if _, ok := excluded[token]; ok {
			return true
		}
	}
	return false
}

// locationSatisfies evaluates the query's location constraint against the
// candidate. currentToken is the caller-resolved place used for near_me;
// location is otherwise an opaque token, never a coordinate.
func locationSatisfies(query, candidate *core.Listing, currentToken string) bool {
	if locationExcluded(query, candidate) {
		return false
	}

	switch query.Location.Mode {
	case core.LocationGlobal:
		return true

	case core.LocationNearMe:
		return tokenEqualOrUnconstrained(currentToken, candidate.Location.Token)

	case core.LocationRoute:
		return normalizeToken(query.Location.Origin) == normalizeToken(candidate.Location.Origin) &&
			normalizeToken(query.Location.Destination) == normalizeToken(candidate.Location.Destination)

	default:
		// Explicit, and the zero mode: absence of a required token is not a
		// constraint.
		return tokenEqualOrUnconstrained(query.Location.Token, candidate.Location.Token)
	}
}

func tokenEqualOrUnconstrained(required, candidate string) bool {
	r := normalizeToken(required)
	if r == "" {
		return true
	}
	return r == normalizeToken(candidate)
}
