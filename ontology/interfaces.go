package ontology

import (
	"context"

	"github.com/poiesic/souk/core"
)

// Source is one tier of the resolution cascade. Implementations must be
// thread-safe for concurrent use.
type Source interface {
	// Resolve judges whether the relation of the given kind holds between
	// the two normalized terms. A returned error, including ErrIndefinite
	// and context deadline errors, advances the cascade to the next source;
	// a nil error is a definite answer and ends the cascade.
	Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error)

	// Name identifies the source for provenance tags and logging.
	Name() core.Provenance
}
