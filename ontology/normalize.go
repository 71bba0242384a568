package ontology

import (
	"strings"

	"github.com/poiesic/souk/core"
)

// NormalizeTerm lowercases a term, trims it, and collapses inner whitespace
// so that cache keys are stable across caller formatting.
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// QueryKey builds the normalized cache key for a relationship query.
func QueryKey(termA, termB string, kind core.RelationKind) string {
	return NormalizeTerm(termA) + "|" + NormalizeTerm(termB) + "|" + kind.String()
}

// KeyID hashes a normalized query key into the storage key.
func KeyID(termA, termB string, kind core.RelationKind) core.ID {
	return core.IDFromContent(QueryKey(termA, termB, kind))
}
