package ai

import (
	"context"

	"github.com/poiesic/souk/core"
)

// RelationJudge answers ontology relationship questions using a generative
// model. It is the last tier of the resolution cascade, consulted only after
// every knowledge service has failed to produce a definite answer.
// Implementations must be thread-safe for concurrent use.
type RelationJudge interface {
	// JudgeRelation asks the model whether the relation of the given kind
	// holds between the two terms. The judgment carries the model's boolean
	// verdict and a confidence score; callers decide the confidence floor.
	// Returns an error if generation or response parsing fails.
	JudgeRelation(ctx context.Context, termA, termB string, kind core.RelationKind) (Judgment, error)
}

// Judgment is a structured relation verdict produced by a generative model.
type Judgment struct {
	// Related reports whether the queried relation holds.
	Related bool

	// Confidence is the model's self-reported certainty in [0, 1].
	Confidence float64

	// Rationale is a short model-provided justification, kept for logging.
	Rationale string
}
