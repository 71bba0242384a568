package match

import (
	"math"

	"github.com/poiesic/souk/core"
)

// Range is the computational form of a numeric constraint: an inclusive
// interval whose open ends are infinity sentinels. Every numeric constraint
// kind reduces to a Range so that matching is always interval overlap.
type Range struct {
	Low  float64
	High float64
}

// NewMin returns the range [m, +Inf) equivalent to a minimum-bound constraint.
func NewMin(m float64) Range {
	return Range{Low: m, High: math.Inf(1)}
}

// NewMax returns the range (-Inf, m] equivalent to a maximum-bound constraint.
func NewMax(m float64) Range {
	return Range{Low: math.Inf(-1), High: m}
}

// Unbounded returns the range (-Inf, +Inf), which overlaps everything.
// It represents an absent constraint or an absent candidate attribute.
func Unbounded() Range {
	return Range{Low: math.Inf(-1), High: math.Inf(1)}
}

// FromSpan converts a validated Span into a Range.
func FromSpan(s core.Span) Range {
	return Range{Low: s.Low, High: s.High}
}

// Overlaps reports whether the two intervals intersect.
func (r Range) Overlaps(c Range) bool {
	return r.Low <= c.High && c.Low <= r.High
}

// SatisfiesMin reports whether a candidate reaching up to candidateMax can
// satisfy a required minimum. Identical to Overlaps(NewMin(requiredMin), c)
// for a candidate with High = candidateMax.
func SatisfiesMin(requiredMin, candidateMax float64) bool {
	return requiredMin <= candidateMax
}

// SatisfiesMax reports whether a candidate starting at candidateMin can
// satisfy a required maximum.
func SatisfiesMax(requiredMax, candidateMin float64) bool {
	return candidateMin <= requiredMax
}

// candidateRange assembles the candidate's effective interval for one
// attribute from its min/max/range declarations. Attributes the candidate
// never mentions are unconstrained.
func candidateRange(b core.Bundle, attribute string) Range {
	r := Unbounded()
	if low, ok := b.Min[attribute]; ok {
		r.Low = low
	}
	if high, ok := b.Max[attribute]; ok {
		r.High = high
	}
	if span, ok := b.Range[attribute]; ok {
		r = FromSpan(span)
	}
	return r
}
