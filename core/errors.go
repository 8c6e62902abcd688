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
	// ErrInvalidApp indicates an App failed validation.
	ErrInvalidApp = errors.New("invalid app")

	// ErrInvalidIntent indicates a QueryIntent failed validation.
	ErrInvalidIntent = errors.New("invalid query intent")

	// ErrEmptyName indicates the app Name field is empty.
	ErrEmptyName = errors.New("app name cannot be empty")

	// ErrInvalidRating indicates a rating outside the 0-5 range.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrInvalidIntentType indicates an invalid IntentType value.
	ErrInvalidIntentType = errors.New("invalid intent type")

	// ErrInvalidConfidence indicates a confidence outside the 0-1 range.
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// ErrEmptyQuery indicates a query string is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryTooLong indicates a query string exceeds the maximum length.
	ErrQueryTooLong = errors.New("query exceeds maximum length")
)
