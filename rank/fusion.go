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

package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/poiesic/souk/core"
)

// DefaultK is the standard Reciprocal Rank Fusion smoothing constant.
const DefaultK = 60

// Fused is one entry of the final presentation order.
type Fused struct {
	ListingId core.ID
	Score     float64
}

// Fuser combines per-method candidate scores into one order using weighted
// Reciprocal Rank Fusion. A Fuser is immutable after construction and safe
// for concurrent use.
type Fuser struct {
	weights map[string]float64
	k       float64
}

// FuserOption configures a Fuser.
type FuserOption func(*Fuser) error

// WithK overrides the smoothing constant.
// Default is DefaultK.
func WithK(k float64) FuserOption {
	return func(f *Fuser) error {
		if k <= 0 || math.IsNaN(k) {
			return fmt.Errorf("%w: K must be positive", ErrInvalidWeights)
		}
		f.k = k
		return nil
	}
}

// NewFuser creates a fuser over a method-to-weight vector. Degenerate
// configurations are rejected loudly: an empty vector, a negative or NaN
// weight, or a vector summing to zero would produce a misleading order.
func NewFuser(weights map[string]float64, opts ...FuserOption) (*Fuser, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyWeights
	}

	sum := 0.0
	for method, weight := range weights {
		if math.IsNaN(weight) || weight < 0 {
			return nil, fmt.Errorf("%w: method %q weight %v", ErrInvalidWeights, method, weight)
		}
		sum += weight
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}

	copied := make(map[string]float64, len(weights))
	for method, weight := range weights {
		copied[method] = weight
	}

	f := &Fuser{weights: copied, k: DefaultK}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Fuse computes the final order over a fully collected batch. Candidates
// missing a method's score simply contribute nothing for that method. The
// result is fused score descending, ties broken by listing id ascending for
// determinism.
func (f *Fuser) Fuse(candidates []core.RankedCandidate) []Fused {
	fused := make(map[core.ID]float64, len(candidates))
	for _, c := range candidates {
		fused[c.ListingId] = 0
	}

	for method, weight := range f.weights {
		if weight == 0 {
			continue
		}
		for id, rank := range f.methodRanks(candidates, method) {
			fused[id] += weight / (f.k + float64(rank))
		}
	}

	out := make([]Fused, 0, len(fused))
	for id, score := range fused {
		out = append(out, Fused{ListingId: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ListingId < out[j].ListingId
	})
	return out
}

// methodRanks computes 1-indexed dense ranks for the candidates that carry
// this method's score: equal scores share a rank, and the next distinct
// score takes the following rank.
func (f *Fuser) methodRanks(candidates []core.RankedCandidate, method string) map[core.ID]int {
	type scored struct {
		id    core.ID
		score float64
	}

	present := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if score, ok := c.Scores[method]; ok && !math.IsNaN(score) {
			present = append(present, scored{id: c.ListingId, score: score})
		}
	}
	sort.Slice(present, func(i, j int) bool {
		if present[i].score != present[j].score {
			return present[i].score > present[j].score
		}
		return present[i].id < present[j].id
	})

	ranks := make(map[core.ID]int, len(present))
	rank := 0
	for i, s := range present {
		if i == 0 || s.score != present[i-1].score {
			rank++
		}
		ranks[s.id] = rank
	}
	return ranks
}
