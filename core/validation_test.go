package core

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateApp(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		app := &App{Name: "Budget Tracker Pro", Category: "Finance", Rating: 4.6}
		assert.NoError(t, ValidateApp(app))
	})

	t.Run("nil app", func(t *testing.T) {
		assert.ErrorIs(t, ValidateApp(nil), ErrInvalidApp)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateApp(&App{Rating: 4.0})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rating out of range", func(t *testing.T) {
		assert.ErrorIs(t, ValidateApp(&App{Name: "X", Rating: 5.1}), ErrInvalidRating)
		assert.ErrorIs(t, ValidateApp(&App{Name: "X", Rating: -0.1}), ErrInvalidRating)
	})

	t.Run("NaN rating", func(t *testing.T) {
		assert.ErrorIs(t, ValidateApp(&App{Name: "X", Rating: math.NaN()}), ErrInvalidRating)
	})
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("apps to help me sleep"))
	assert.ErrorIs(t, ValidateQuery(""), ErrEmptyQuery)
	assert.ErrorIs(t, ValidateQuery(strings.Repeat("a", MaxQueryLength+1)), ErrQueryTooLong)

	// Length is counted in runes, not bytes: a max-length multibyte query
	// is valid even though it is well over MaxQueryLength bytes.
	assert.NoError(t, ValidateQuery(strings.Repeat("ありがとう", MaxQueryLength/5)))
	assert.ErrorIs(t, ValidateQuery(strings.Repeat("あ", MaxQueryLength+1)), ErrQueryTooLong)
}

func TestValidateQueryIntent(t *testing.T) {
	valid := func() *QueryIntent {
		return &QueryIntent{
			MainTopic:     "sleep",
			IntentType:    IntentSolve,
			SemanticQuery: "apps for falling asleep",
			Confidence:    0.9,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateQueryIntent(valid()))
	})

	t.Run("nil intent", func(t *testing.T) {
		assert.ErrorIs(t, ValidateQueryIntent(nil), ErrInvalidIntent)
	})

	t.Run("bad intent type", func(t *testing.T) {
		intent := valid()
		intent.IntentType = IntentType(42)
		assert.ErrorIs(t, ValidateQueryIntent(intent), ErrInvalidIntentType)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		intent := valid()
		intent.Confidence = 1.5
		assert.ErrorIs(t, ValidateQueryIntent(intent), ErrInvalidConfidence)
	})

	t.Run("empty semantic query", func(t *testing.T) {
		intent := valid()
		intent.SemanticQuery = ""
		assert.ErrorIs(t, ValidateQueryIntent(intent), ErrInvalidIntent)
	})
}
