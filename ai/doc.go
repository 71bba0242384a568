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


// Package ai provides abstractions for the generative services used in souk.
//
// This package defines the RelationJudge interface, the generative fallback
// consulted by the ontology resolver once every knowledge service has failed
// to produce a definite answer. It follows the dependency inversion
// principle, allowing the resolver to depend on an abstraction rather than a
// concrete model client.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewRelationJudge) return INTERFACE types to
// enforce abstraction and prevent accidental coupling to concrete
// implementations:
//
//	judge, err := openai.NewRelationJudge(config)  // returns ai.RelationJudge
//
// Test utility constructors (mock.NewMockJudge) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public
// methods (CallCount, JudgeRelationFunc):
//
//	mockJudge := mock.NewMockJudge()   // returns *mock.MockJudge
//	mockJudge.JudgeRelationFunc = ...  // needs concrete type
//	count := mockJudge.CallCount()     // test assertion
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithModel("gpt-4o-mini"))
//	judge, err := openai.NewRelationJudge(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	judgment, err := judge.JudgeRelation(ctx, "smartphone", "phone", core.RelationImplies)
package ai
