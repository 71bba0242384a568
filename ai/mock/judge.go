package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/souk/ai"
	"github.com/poiesic/souk/core"
)

// MockJudge is a test double for ai.RelationJudge.
// It allows custom behavior injection via function fields.
type MockJudge struct {
	// JudgeRelationFunc is called by JudgeRelation if set.
	// If nil, uses default equality-based judgment.
	JudgeRelationFunc func(ctx context.Context, termA, termB string, kind core.RelationKind) (ai.Judgment, error)

	mu        sync.Mutex
	callCount int
}

var _ ai.RelationJudge = (*MockJudge)(nil)

// NewMockJudge creates a mock relation judge with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockJudge() *MockJudge {
	return &MockJudge{}
}

// JudgeRelation returns a deterministic judgment.
// Default behavior: related iff the terms are equal after lowercasing.
func (m *MockJudge) JudgeRelation(ctx context.Context, termA, termB string, kind core.RelationKind) (ai.Judgment, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.JudgeRelationFunc != nil {
		return m.JudgeRelationFunc(ctx, termA, termB, kind)
	}

	related := strings.EqualFold(strings.TrimSpace(termA), strings.TrimSpace(termB))
	return ai.Judgment{
		Related:    related,
		Confidence: 1,
		Rationale:  "mock equality judgment",
	}, nil
}

// CallCount returns the number of times JudgeRelation was called.
func (m *MockJudge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
