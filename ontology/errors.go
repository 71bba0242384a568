package ontology

import "errors"

var (
	// ErrCacheRequired is returned when a relation repository is not provided.
	ErrCacheRequired = errors.New("relation repository required")

	// ErrIndefinite is returned by a source that cannot judge the query.
	// The resolver treats it like any other tier failure and advances.
	ErrIndefinite = errors.New("source has no definite answer")

	// ErrConceptExists indicates an attempt to add a concept id twice.
	ErrConceptExists = errors.New("concept already exists")

	// ErrUnknownConcept indicates a reference to a concept id not in the tree.
	ErrUnknownConcept = errors.New("unknown concept")

	// ErrCyclicConcept indicates a parent link that would create a cycle.
	ErrCyclicConcept = errors.New("concept parent would create a cycle")
)
