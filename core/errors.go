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

import "errors"

// Domain validation errors
var (
	// ErrInvalidListing indicates a Listing failed validation.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidBundle indicates a constraint Bundle failed validation.
	ErrInvalidBundle = errors.New("invalid constraint bundle")

	// ErrInvalidSpan indicates a Span with low > high or a NaN bound.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrInvalidIntent indicates an unknown Intent value.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrInvalidSubIntent indicates an unknown SubIntent value or one
	// incompatible with the listing's intent.
	ErrInvalidSubIntent = errors.New("invalid subintent")

	// ErrInvalidLocation indicates a Location failed validation.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrEmptyItemType indicates an Item with no type.
	ErrEmptyItemType = errors.New("item type cannot be empty")
)
