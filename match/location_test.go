package match

import (
	"testing"

	"github.com/poiesic/souk/core"
)

func listingAt(mode core.LocationMode, token string) *core.Listing {
	return &core.Listing{Location: core.Location{Mode: mode, Token: token}}
}

func TestLocationSatisfies(t *testing.T) {
	tests := []struct {
		name      string
		query     *core.Listing
		candidate *core.Listing
		current   string
		want      bool
	}{
		{
			name:      "global matches anything",
			query:     listingAt(core.LocationGlobal, ""),
			candidate: listingAt(core.LocationExplicit, "pune"),
			want:      true,
		},
		{
			name:      "explicit token equality",
			query:     listingAt(core.LocationExplicit, "Whitefield"),
			candidate: listingAt(core.LocationExplicit, "  whitefield "),
			want:      true,
		},
		{
			name:      "explicit token mismatch",
			query:     listingAt(core.LocationExplicit, "whitefield"),
			candidate: listingAt(core.LocationExplicit, "indiranagar"),
			want:      false,
		},
		{
			name:      "explicit empty required token matches anything",
			query:     listingAt(core.LocationExplicit, ""),
			candidate: listingAt(core.LocationExplicit, "pune"),
			want:      true,
		},
		{
			name:      "near_me compares caller token",
			query:     listingAt(core.LocationNearMe, ""),
			candidate: listingAt(core.LocationExplicit, "koramangala"),
			current:   "Koramangala",
			want:      true,
		},
		{
			name:      "near_me mismatch",
			query:     listingAt(core.LocationNearMe, ""),
			candidate: listingAt(core.LocationExplicit, "pune"),
			current:   "koramangala",
			want:      false,
		},
		{
			name: "route requires both endpoints",
			query: &core.Listing{Location: core.Location{
				Mode: core.LocationRoute, Origin: "bangalore", Destination: "chennai"}},
			candidate: &core.Listing{Location: core.Location{
				Mode: core.LocationRoute, Origin: "Bangalore", Destination: "Chennai"}},
			want: true,
		},
		{
			name: "route endpoint mismatch",
			query: &core.Listing{Location: core.Location{
				Mode: core.LocationRoute, Origin: "bangalore", Destination: "chennai"}},
			candidate: &core.Listing{Location: core.Location{
				Mode: core.LocationRoute, Origin: "bangalore", Destination: "mysore"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locationSatisfies(tt.query, tt.candidate, tt.current); got != tt.want {
				t.Errorf("locationSatisfies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocationExclusionsApplyBeforeMode(t *testing.T) {
	query := listingAt(core.LocationGlobal, "")
	query.LocationExclusions = []string{"Whitefield"}
	candidate := listingAt(core.LocationExplicit, "whitefield")

	if locationSatisfies(query, candidate, "") {
		t.Error("an excluded candidate token fails even under global mode")
	}

	route := &core.Listing{Location: core.Location{
		Mode: core.LocationRoute, Origin: "whitefield", Destination: "airport"}}
	if locationSatisfies(query, route, "") {
		t.Error("exclusions apply to route endpoints too")
	}
}
