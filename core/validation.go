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


package core

import (
	"fmt"
	"math"
)

// ValidateListing validates a Listing according to domain rules.
//
// Validation rules:
//   - Intent and SubIntent must be known values and compatible with each other
//   - Every Item must be valid
//   - All constraint bundles must be valid
//   - Route locations must carry both endpoints
//
// NOT validated:
//   - ID (0 is valid for listings supplied inline)
//   - Empty item sequences, exclusion sets, and bundles (vacuously satisfied)
func ValidateListing(listing *Listing) error {
	if listing == nil {
		return fmt.Errorf("%w: listing is nil", ErrInvalidListing)
	}

	if err := ValidateIntent(listing.Intent, listing.SubIntent); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListing, err)
	}

	for i := range listing.Items {
		if err := ValidateItem(&listing.Items[i]); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidListing, i, err)
		}
	}

	if err := ValidateBundle(listing.OtherPreferences); err != nil {
		return fmt.Errorf("%w: other_preferences: %w", ErrInvalidListing, err)
	}
	if err := ValidateBundle(listing.SelfAttributes); err != nil {
		return fmt.Errorf("%w: self_attributes: %w", ErrInvalidListing, err)
	}

	if err := ValidateLocation(listing.Location); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListing, err)
	}

	return nil
}

// ValidateIntent checks that an intent/subintent pair is known and compatible.
func ValidateIntent(intent Intent, sub SubIntent) error {
	switch intent {
	case IntentProduct:
		if sub != SubIntentBuy && sub != SubIntentSell {
			return fmt.Errorf("%w: %s for product intent", ErrInvalidSubIntent, sub)
		}
	case IntentService:
		if sub != SubIntentSeek && sub != SubIntentProvide {
			return fmt.Errorf("%w: %s for service intent", ErrInvalidSubIntent, sub)
		}
	case IntentMutual:
		if sub != SubIntentConnect {
			return fmt.Errorf("%w: %s for mutual intent", ErrInvalidSubIntent, sub)
		}
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidIntent, intent)
	}
	return nil
}

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Type must not be empty
//   - Numeric constraints must form a valid Bundle
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.Type == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyItemType)
	}

	if err := ValidateBundle(item.Bundle()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	return nil
}

// ValidateBundle validates a constraint Bundle. Empty bundles are valid.
func ValidateBundle(bundle Bundle) error {
	for attr, v := range bundle.Min {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: min %q is NaN", ErrInvalidBundle, attr)
		}
	}
	for attr, v := range bundle.Max {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: max %q is NaN", ErrInvalidBundle, attr)
		}
	}
	for attr, span := range bundle.Range {
		if err := ValidateSpan(span); err != nil {
			return fmt.Errorf("%w: range %q: %w", ErrInvalidBundle, attr, err)
		}
	}
	return nil
}

// ValidateSpan checks that a Span is ordered and free of NaN bounds.
func ValidateSpan(span Span) error {
	if math.IsNaN(span.Low) || math.IsNaN(span.High) {
		return fmt.Errorf("%w: NaN bound", ErrInvalidSpan)
	}
	if span.Low > span.High {
		return fmt.Errorf("%w: low %v > high %v", ErrInvalidSpan, span.Low, span.High)
	}
	return nil
}

// ValidateLocation validates a Location according to its mode. The zero
// mode is an unset location, which is valid and constrains nothing.
func ValidateLocation(loc Location) error {
	switch loc.Mode {
	case 0, LocationExplicit, LocationNearMe, LocationGlobal:
		return nil
	case LocationRoute:
		if loc.Origin == "" || loc.Destination == "" {
			return fmt.Errorf("%w: route requires origin and destination", ErrInvalidLocation)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown mode %d", ErrInvalidLocation, loc.Mode)
}
