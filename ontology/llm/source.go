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

// Package llm adapts a generative relation judge into a cascade source.
// It is the terminal tier: the most capable and the most expensive, so
// it runs only after the lexical services have declined to answer.
package llm

import (
	"context"

	"github.com/poiesic/souk/ai"
	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
)

// Source wraps an ai.RelationJudge as an ontology.Source.
type Source struct {
	judge ai.RelationJudge
}

var _ ontology.Source = (*Source)(nil)

// NewSource creates an LLM-backed cascade source.
func NewSource(judge ai.RelationJudge) *Source {
	return &Source{judge: judge}
}

// Name identifies the source for provenance tags.
func (s *Source) Name() core.Provenance {
	return core.ProvenanceLLM
}

// Resolve asks the judge for a verdict. Judge errors, including low
// confidence rejections, propagate so the resolver falls to its default.
func (s *Source) Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error) {
	judgment, err := s.judge.JudgeRelation(ctx, termA, termB, kind)
	if err != nil {
		return false, err
	}
	return judgment.Related, nil
}
