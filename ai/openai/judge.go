// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/souk/ai"
	"github.com/poiesic/souk/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// RelationJudge implements ai.RelationJudge using OpenAI-compatible chat APIs.
type RelationJudge struct {
	client        llms.Model
	minConfidence float64
	logger        *slog.Logger
}

// verdict is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type verdict struct {
	Related    bool    `json:"related"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// newRelationJudge is an internal constructor that returns the concrete type.
func newRelationJudge(config *ai.Config) (*RelationJudge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &RelationJudge{
		client:        client,
		minConfidence: config.MinConfidence,
		logger:        slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewRelationJudge creates a new relation judge using the provided configuration.
//
// Returns ai.RelationJudge interface to enforce abstraction.
func NewRelationJudge(config *ai.Config) (ai.RelationJudge, error) {
	return newRelationJudge(config)
}

// JudgeRelation asks the model for a structured relation verdict between two
// terms. Judgments below the configured confidence floor are reported as
// errors so callers treat them like any other tier failure.
func (j *RelationJudge) JudgeRelation(ctx context.Context, termA, termB string, kind core.RelationKind) (ai.Judgment, error) {
	termA = scrubTerm(termA)
	termB = scrubTerm(termB)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildJudgePrompt(kind)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(fmt.Sprintf("term_a: %q\nterm_b: %q", termA, termB)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result verdict
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			j.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Judgment{}, err
		}

		if len(response.Choices) < 1 {
			j.logger.Debug("no choices returned from model")
			return ai.Judgment{}, ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			j.logger.Warn("error parsing judge response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		j.logger.Error("failed to parse judge response after retries", "err", lastErr)
		return ai.Judgment{}, lastErr
	}

	judgment := ai.Judgment{
		Related:    result.Related,
		Confidence: result.Confidence,
		Rationale:  result.Rationale,
	}

	j.logger.Debug("judged relation",
		"term_a", termA,
		"term_b", termB,
		"kind", kind.String(),
		"related", judgment.Related,
		"confidence", judgment.Confidence)

	if judgment.Confidence < j.minConfidence {
		return ai.Judgment{}, fmt.Errorf("%w: %0.2f below floor %0.2f",
			ErrLowConfidence, judgment.Confidence, j.minConfidence)
	}

	return judgment, nil
}
