// Package match implements the boolean constraint-matching engine that
// decides whether a candidate listing satisfies a query listing.
//
// The decision composes a fixed set of sub-rules: interval-overlap numeric
// matching, categorical and item matching with optional ontology
// implication, required-item coverage with exclusion disjointness,
// directional preference bundles, and mode-based location constraints.
// Matching is pure and side-effect-free apart from resolver queries, so
// independent listing pairs evaluate safely in parallel; BatchMatcher runs
// one query against many candidates on a worker pool.
//
// Pairs that fail the boolean decision can still be surfaced through the
// tiered similarity scorer, which grades how close the pair came instead
// of discarding it.
package match
