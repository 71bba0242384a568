// Package rank orders listings that already passed boolean matching.
//
// Each candidate carries raw scores from independent upstream methods
// (dense similarity, lexical, cross-encoder, and any others). The fuser
// converts each method's scores into ranks and combines them with weighted
// Reciprocal Rank Fusion: score = Σ weight / (K + rank). Candidates missing
// a method's score are excluded from that method's contribution rather than
// penalized to worst rank.
package rank
