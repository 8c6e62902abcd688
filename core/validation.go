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
	"unicode/utf8"
)

// MaxQueryLength is the longest accepted raw query string, in runes.
const MaxQueryLength = 500

// ValidateApp validates an App according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Rating must be within [0, 5] and finite
//
// NOT validated (populated by offline jobs):
//   - Vector (can be empty until the embedding job runs)
//   - Keywords/CategoryKeywords (can be empty until extraction runs)
//   - Features (absent features are treated as empty)
func ValidateApp(app *App) error {
	if app == nil {
		return fmt.Errorf("%w: app is nil", ErrInvalidApp)
	}

	if app.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidApp, ErrEmptyName)
	}

	if math.IsNaN(app.Rating) || app.Rating < 0 || app.Rating > 5 {
		return fmt.Errorf("%w: %w", ErrInvalidApp, ErrInvalidRating)
	}

	return nil
}

// ValidateQuery validates a raw query string (1-500 chars).
func ValidateQuery(query string) error {
	if query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, ErrEmptyQuery)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, ErrQueryTooLong)
	}
	return nil
}

// ValidateQueryIntent validates a QueryIntent according to domain rules.
//
// Validation rules:
//   - IntentType must be a known value
//   - Confidence must be within [0, 1] and finite
//   - SemanticQuery must not be empty (it drives the embedding call)
func ValidateQueryIntent(intent *QueryIntent) error {
	if intent == nil {
		return fmt.Errorf("%w: intent is nil", ErrInvalidIntent)
	}

	if err := ValidateIntentType(intent.IntentType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}

	if math.IsNaN(intent.Confidence) || intent.Confidence < 0 || intent.Confidence > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, ErrInvalidConfidence)
	}

	if intent.SemanticQuery == "" {
		return fmt.Errorf("%w: semantic query is empty", ErrInvalidIntent)
	}

	return nil
}

// ValidateIntentType validates that an IntentType has a known value.
func ValidateIntentType(t IntentType) error {
	switch t {
	case IntentLearn, IntentSolve, IntentDiscover, IntentManage, IntentEntertain:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidIntentType, t)
	}
}
