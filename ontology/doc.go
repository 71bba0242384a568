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


// Package ontology resolves hierarchical and semantic relationships between terms.
//
// The Resolver type answers three query kinds: implication (is one term a
// kind or specialization of another), antonymy, and exclusion violation
// (does a term fall under an excluded concept). Answers come from an ordered
// cascade of relationship sources:
//
//  1. the persistent resolution cache
//  2. a locally loaded concept tree
//  3. public knowledge services (ConceptNet, Wikidata)
//  4. an optional keyed lexical database (BabelNet)
//  5. a generative model fallback
//
// Each tier either produces a definite answer, which is written back to the
// cache before returning, or fails (network error, timeout, parse error,
// or no local coverage), which advances the cascade to the next tier.
// When every tier fails the resolver returns a conservative default rather
// than an error, so unresolved ontology never blocks matching. The default
// is fail-open ("no implication / no violation"); deployments that prefer
// to treat unresolved exclusion checks as violations can opt into
// fail-closed with WithPolicy(FailClosed).
//
// Concurrent queries for the same normalized key are deduplicated with a
// single-flight group: exactly one cascade runs, one cache write happens,
// and every waiting caller observes the same result.
package ontology
