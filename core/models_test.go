package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("com.example.budget")
		b := IDFromContent("com.example.budget")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("com.example.budget")
		b := IDFromContent("com.example.sleep")
		assert.NotEqual(t, a, b)
	})
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "budgettrackerpro", NormalizeTitle("Budget Tracker Pro"))
	assert.Equal(t, "sleep2relax", NormalizeTitle("Sleep2Relax!"))
	assert.Equal(t, "", NormalizeTitle("---"))
}

func TestIdentityKey(t *testing.T) {
	t.Run("prefers app id", func(t *testing.T) {
		assert.Equal(t, "com.example.budget", IdentityKey("com.example.budget", "Budget Tracker Pro"))
	})

	t.Run("falls back to normalized title", func(t *testing.T) {
		assert.Equal(t, "budgettrackerpro", IdentityKey("", "Budget Tracker Pro"))
	})
}

func TestIntentTypeRoundTrip(t *testing.T) {
	for _, it := range []IntentType{IntentLearn, IntentSolve, IntentDiscover, IntentManage, IntentEntertain} {
		assert.Equal(t, it, IntentTypeFromString(it.String()))
	}
}

func TestIntentTypeFromString_Unknown(t *testing.T) {
	assert.Equal(t, IntentDiscover, IntentTypeFromString("browse"))
	assert.Equal(t, IntentDiscover, IntentTypeFromString(""))
}

func TestAppFeaturesEmpty(t *testing.T) {
	var f AppFeatures
	assert.True(t, f.Empty())

	f.PrimaryUseCase = "expense tracking"
	assert.False(t, f.Empty())
}

func TestFusedResultMultiMethod(t *testing.T) {
	f := &FusedResult{Sources: []RetrievalSource{SourceSemantic}}
	assert.False(t, f.MultiMethod())

	f.Sources = append(f.Sources, SourceKeyword)
	assert.True(t, f.MultiMethod())
}

func TestRankedResultMethodsLabel(t *testing.T) {
	r := &RankedResult{Sources: []RetrievalSource{SourceSemantic, SourceKeyword}}
	assert.Equal(t, "semantic+keyword", r.MethodsLabel())
}
