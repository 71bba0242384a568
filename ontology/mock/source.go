// Package mock provides test doubles for ontology cascade sources.
package mock

import (
	"context"
	"sync"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
)

// MockSource is a test double for ontology.Source.
// It allows custom behavior injection via function fields.
type MockSource struct {
	// Provenance is the name reported to the resolver. Defaults to "mock".
	Provenance core.Provenance

	// ResolveFunc is called by Resolve if set.
	// If nil, the source is indefinite for every query.
	ResolveFunc func(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error)

	mu        sync.Mutex
	callCount int
}

var _ ontology.Source = (*MockSource)(nil)

// NewMockSource creates a mock source with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockSource() *MockSource {
	return &MockSource{Provenance: core.Provenance("mock")}
}

// NewAnsweringSource creates a mock source that answers every query with the
// given verdict.
func NewAnsweringSource(answer bool) *MockSource {
	source := NewMockSource()
	source.ResolveFunc = func(context.Context, string, string, core.RelationKind) (bool, error) {
		return answer, nil
	}
	return source
}

// NewFailingSource creates a mock source that fails every query with err.
func NewFailingSource(err error) *MockSource {
	source := NewMockSource()
	source.ResolveFunc = func(context.Context, string, string, core.RelationKind) (bool, error) {
		return false, err
	}
	return source
}

// Resolve delegates to ResolveFunc, or reports indefinite if none is set.
func (m *MockSource) Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, termA, termB, kind)
	}
	return false, ontology.ErrIndefinite
}

// Name identifies the source for provenance tags.
func (m *MockSource) Name() core.Provenance {
	return m.Provenance
}

// CallCount returns the number of times Resolve was called.
func (m *MockSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
