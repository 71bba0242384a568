package match

import (
	"math"
	"testing"

	"github.com/poiesic/souk/core"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		c    Range
		want bool
	}{
		{"disjoint below", Range{1, 2}, Range{3, 4}, false},
		{"disjoint above", Range{3, 4}, Range{1, 2}, false},
		{"touching endpoints", Range{1, 2}, Range{2, 3}, true},
		{"nested", Range{1, 10}, Range{3, 4}, true},
		{"identical", Range{1, 2}, Range{1, 2}, true},
		{"point ranges equal", Range{5, 5}, Range{5, 5}, true},
		{"point ranges distinct", Range{5, 5}, Range{6, 6}, false},
		{"unbounded vs anything", Unbounded(), Range{-1e18, -1e17}, true},
		{"min vs below", NewMin(10), Range{1, 9}, false},
		{"min vs reaching", NewMin(10), Range{1, 10}, true},
		{"max vs above", NewMax(10), Range{11, 20}, false},
		{"max vs reaching", NewMax(10), Range{10, 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Overlaps(tt.c); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.r, tt.c, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.c.Overlaps(tt.r); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.c, tt.r, got, tt.want)
			}
		})
	}
}

// The three numeric forms are all interval overlap: a MIN bound m agrees
// with overlap against [m, +Inf), a MAX bound with (-Inf, m].
func TestBoundFormsAgreeWithOverlap(t *testing.T) {
	bounds := []float64{-100, -1, 0, 0.5, 1, 99, 1e9}
	candidates := []Range{
		{-200, -150}, {-1, 1}, {0, 0}, {0.25, 0.75}, {50, 200}, {1e9, 1e9},
		NewMin(10), NewMax(10), Unbounded(),
	}

	for _, m := range bounds {
		for _, c := range candidates {
			if got, want := SatisfiesMin(m, c.High), NewMin(m).Overlaps(c); got != want {
				t.Errorf("SatisfiesMin(%v, %v) = %v, overlap form = %v", m, c.High, got, want)
			}
			if got, want := SatisfiesMax(m, c.Low), NewMax(m).Overlaps(c); got != want {
				t.Errorf("SatisfiesMax(%v, %v) = %v, overlap form = %v", m, c.Low, got, want)
			}
		}
	}
}

func TestCandidateRange(t *testing.T) {
	bundle := core.Bundle{
		Min:   map[string]float64{"price": 100},
		Max:   map[string]float64{"price": 200, "weight": 5},
		Range: map[string]core.Span{"year": {Low: 2010, High: 2020}},
	}

	if got := candidateRange(bundle, "price"); got != (Range{100, 200}) {
		t.Errorf("price range = %v", got)
	}
	if got := candidateRange(bundle, "weight"); !math.IsInf(got.Low, -1) || got.High != 5 {
		t.Errorf("weight range = %v", got)
	}
	if got := candidateRange(bundle, "year"); got != (Range{2010, 2020}) {
		t.Errorf("year range = %v", got)
	}
	if got := candidateRange(bundle, "absent"); got != Unbounded() {
		t.Errorf("absent attribute range = %v, want unbounded", got)
	}
}
