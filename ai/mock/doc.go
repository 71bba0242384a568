// Package mock provides test double implementations of the ai interfaces.
//
// This package contains a mock implementation of ai.RelationJudge for use in
// unit tests. The mock allows tests to run without external model services
// and enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockJudge := mock.NewMockJudge()
//	judgment, err := mockJudge.JudgeRelation(ctx, "smartphone", "phone", core.RelationImplies)
//
//	// Custom behavior injection
//	mockJudge.JudgeRelationFunc = func(ctx context.Context, a, b string, kind core.RelationKind) (ai.Judgment, error) {
//	    return ai.Judgment{Related: true, Confidence: 1}, nil
//	}
//
//	// Check call counts
//	count := mockJudge.CallCount()
//
// # Default Behavior
//
// Without an injected function, MockJudge answers true with full confidence
// when the two terms are equal after lowercasing, false otherwise.
package mock
