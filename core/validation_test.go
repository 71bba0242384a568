package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateListing(t *testing.T) {
	tests := []struct {
		name    string
		listing *Listing
		wantErr error
	}{
		{
			name: "valid product listing",
			listing: &Listing{
				Id:        1,
				Intent:    IntentProduct,
				SubIntent: SubIntentBuy,
				Domains:   []string{"electronics"},
				Items: []Item{
					{Type: "phone", Max: map[string]float64{"price": 50000}},
				},
				Location: Location{Mode: LocationGlobal},
			},
			wantErr: nil,
		},
		{
			name: "valid mutual listing with empty items",
			listing: &Listing{
				Id:                      2,
				Intent:                  IntentMutual,
				SubIntent:               SubIntentConnect,
				PrimaryMutualCategories: []string{"flatmates"},
				Location:                Location{Mode: LocationExplicit, Token: "indiranagar"},
			},
			wantErr: nil,
		},
		{
			name:    "nil listing",
			listing: nil,
			wantErr: ErrInvalidListing,
		},
		{
			name: "unknown intent",
			listing: &Listing{
				Intent:    Intent(99),
				SubIntent: SubIntentBuy,
				Location:  Location{Mode: LocationGlobal},
			},
			wantErr: ErrInvalidIntent,
		},
		{
			name: "subintent incompatible with intent",
			listing: &Listing{
				Intent:    IntentProduct,
				SubIntent: SubIntentConnect,
				Location:  Location{Mode: LocationGlobal},
			},
			wantErr: ErrInvalidSubIntent,
		},
		{
			name: "item without type",
			listing: &Listing{
				Intent:    IntentProduct,
				SubIntent: SubIntentSell,
				Items:     []Item{{Type: ""}},
				Location:  Location{Mode: LocationGlobal},
			},
			wantErr: ErrEmptyItemType,
		},
		{
			name: "inverted range in item",
			listing: &Listing{
				Intent:    IntentProduct,
				SubIntent: SubIntentSell,
				Items: []Item{
					{Type: "phone", Range: map[string]Span{"price": {Low: 100, High: 10}}},
				},
				Location: Location{Mode: LocationGlobal},
			},
			wantErr: ErrInvalidSpan,
		},
		{
			name: "NaN bound in preferences",
			listing: &Listing{
				Intent:           IntentService,
				SubIntent:        SubIntentSeek,
				OtherPreferences: Bundle{Min: map[string]float64{"rating": math.NaN()}},
				Location:         Location{Mode: LocationGlobal},
			},
			wantErr: ErrInvalidBundle,
		},
		{
			name: "route without destination",
			listing: &Listing{
				Intent:    IntentService,
				SubIntent: SubIntentProvide,
				Location:  Location{Mode: LocationRoute, Origin: "hsr layout"},
			},
			wantErr: ErrInvalidLocation,
		},
		{
			name: "unknown location mode",
			listing: &Listing{
				Intent:    IntentProduct,
				SubIntent: SubIntentBuy,
				Location:  Location{Mode: LocationMode(42)},
			},
			wantErr: ErrInvalidLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListing(tt.listing)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateListing() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateListing() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpan(t *testing.T) {
	tests := []struct {
		name    string
		span    Span
		wantErr bool
	}{
		{"ordered span", Span{Low: 1, High: 2}, false},
		{"point span", Span{Low: 5, High: 5}, false},
		{"full span", FullSpan(), false},
		{"inverted span", Span{Low: 2, High: 1}, true},
		{"NaN low", Span{Low: math.NaN(), High: 1}, true},
		{"NaN high", Span{Low: 0, High: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpan(tt.span)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpan() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBundle(t *testing.T) {
	if err := ValidateBundle(Bundle{}); err != nil {
		t.Errorf("empty bundle should be valid, got %v", err)
	}

	bad := Bundle{Range: map[string]Span{"size": {Low: 10, High: 1}}}
	if err := ValidateBundle(bad); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("ValidateBundle() error = %v, want %v", err, ErrInvalidSpan)
	}
}
