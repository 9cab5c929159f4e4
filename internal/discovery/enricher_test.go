package discovery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-discovery/internal/ai"
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/retry"
	"alcyxob/exercise-discovery/internal/taxonomy"
)

const twoExercises = "```json\n" + `{
  "exercises": [
    {
      "name": "Bulgarian Split Squat",
      "description": "Rear-foot elevated single-leg squat that builds unilateral leg strength and hip stability.",
      "category": "strength",
      "primaryMuscleGroup": "Legs",
      "secondaryMuscleGroups": ["Glutes"],
      "equipment": "Dumbbells",
      "difficulty": "intermediate",
      "instructions": ["Set up", "Descend", "Drive up", "Repeat"],
      "coachingCues": ["Knee tracks toes", "Stay tall"],
      "commonMistakes": ["Short stride", "Leaning forward"],
      "benefits": ["Leg strength", "Balance"],
      "setRepGuidelines": "3 sets of 8-10 reps per leg",
      "progressions": ["Add load", "Add pause"],
      "sportApplications": ["tennis"],
      "safetyNotes": "Keep the rear foot stable",
      "qualityScore": 100,
      "searchId": "provider-made-this-up"
    },
    {
      "name": "Goblet Squat",
      "category": "strength",
      "primaryMuscleGroup": "Legs",
      "difficulty": "beginner",
      "instructions": ["Hold the bell", "Squat"]
    }
  ]
}` + "\n```"

func newTestEnricher(t *testing.T, p ai.Provider, tax *taxonomy.Taxonomy) *Enricher {
	t.Helper()
	return NewEnricher(p, tax, EnricherConfig{Retry: retry.Policy{MaxRetries: 2}}, logger.NewNop())
}

func TestFallbackTaxonomyMatch(t *testing.T) {
	e := newTestEnricher(t, nil, testTaxonomy(t))

	res := e.DiscoverExercisesForTerm(context.Background(), "squat", 1, FilterContext{})
	require.Len(t, res.Candidates, 1)
	c := res.Candidates[0]
	assert.Equal(t, "Barbell Back Squat", c.Name)
	assert.Equal(t, domain.MethodTaxonomyFallback, c.DiscoveryMethod)
	assert.Equal(t, 80, c.QualityScore)
	assert.Equal(t, "squat", c.OriginalSearchTerm)
	assert.NotEmpty(t, c.SearchID)
	assert.False(t, c.DiscoveredAt.IsZero())
	assert.ErrorIs(t, res.Err, ErrNoCredential)
	assert.NoError(t, c.Validate())
}

func TestFallbackAddsVariationWhenAllowed(t *testing.T) {
	e := newTestEnricher(t, nil, testTaxonomy(t))

	res := e.DiscoverExercisesForTerm(context.Background(), "Squat Variations", 3, FilterContext{})
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "Barbell Back Squat", res.Candidates[0].Name)
	assert.Equal(t, "Front Squat", res.Candidates[1].Name)
	assert.NotEqual(t, res.Candidates[0].SearchID, res.Candidates[1].SearchID)

	// bench has no variations
	res = e.DiscoverExercisesForTerm(context.Background(), "bench press", 3, FilterContext{})
	assert.Len(t, res.Candidates, 1)
}

func TestFallbackGeneric(t *testing.T) {
	e := newTestEnricher(t, nil, testTaxonomy(t))

	res := e.DiscoverExercisesForTerm(context.Background(), "explosive  hurdle hops", 2, FilterContext{})
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, domain.MethodFallback, res.Method)
	assert.Equal(t, "Explosive Hurdle Hops Foundation", res.Candidates[0].Name)
	assert.Equal(t, "Explosive Hurdle Hops Variation 2", res.Candidates[1].Name)
	for _, c := range res.Candidates {
		assert.Equal(t, domain.CategoryPower, c.Category)
		assert.Equal(t, "Full Body", c.PrimaryMuscleGroup)
		assert.Equal(t, 70, c.QualityScore)
		assert.NoError(t, c.Validate())
	}

	res = e.DiscoverExercisesForTerm(context.Background(), "nordic curl", 1, FilterContext{})
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, domain.CategoryStrength, res.Candidates[0].Category)
}

func TestFallbackIsDeterministic(t *testing.T) {
	e := newTestEnricher(t, nil, taxonomy.Default())
	for _, term := range []string{"squat", "tennis footwork drills", "mystery movement", "hip mobility"} {
		a := e.DiscoverExercisesForTerm(context.Background(), term, 3, FilterContext{})
		b := e.DiscoverExercisesForTerm(context.Background(), term, 3, FilterContext{})
		require.Equal(t, len(a.Candidates), len(b.Candidates), term)
		for i := range a.Candidates {
			assert.Equal(t, Fingerprint(a.Candidates[i]), Fingerprint(b.Candidates[i]), term)
			assert.Equal(t, a.Candidates[i].Name, b.Candidates[i].Name)
			assert.NotEqual(t, a.Candidates[i].SearchID, b.Candidates[i].SearchID)
		}
	}
}

func TestAIDiscoverySuccess(t *testing.T) {
	p := &fakeProvider{replies: []string{twoExercises}}
	e := newTestEnricher(t, p, testTaxonomy(t))

	fctx := FilterContext{Sport: "tennis", FitnessComponent: "balance", Purpose: "injury_prevention"}
	res := e.DiscoverExercisesForTerm(context.Background(), "split squat", 1, fctx)

	require.NoError(t, res.Err)
	assert.Equal(t, domain.MethodAIDiscovery, res.Method)
	require.Len(t, res.Candidates, 1)
	c := res.Candidates[0]
	assert.Equal(t, "Bulgarian Split Squat", c.Name)
	assert.Equal(t, domain.MethodAIDiscovery, c.DiscoveryMethod)
	assert.Equal(t, "split squat", c.OriginalSearchTerm)
	assert.NotEqual(t, "provider-made-this-up", c.SearchID)
	assert.Equal(t, EnhancedScore(c, fctx), c.QualityScore)
	assert.Equal(t, 1, p.Calls())

	assert.Contains(t, p.lastReq.Prompt, `"split squat"`)
	assert.Contains(t, p.lastReq.Prompt, "tennis")
	assert.Contains(t, p.lastReq.Prompt, "injury prevention")
	assert.Equal(t, 0.7, p.lastReq.Temperature)
	assert.Equal(t, 3000, p.lastReq.MaxTokens)
}

func TestAIMalformedResponseFallsBackWithoutRetry(t *testing.T) {
	replies := map[string]string{
		"not json":         "Sorry, I cannot help with that.",
		"missing array":    `{"items": []}`,
		"empty array":      `{"exercises": []}`,
		"invalid category": `{"exercises":[{"name":"Row","category":"cardio","difficulty":"beginner","instructions":["pull"]}]}`,
		"no instructions":  `{"exercises":[{"name":"Row","category":"strength","difficulty":"beginner","instructions":[]}]}`,
		"partial garbage":  `{"exercises":[{"name":"Row","category":"strength","difficulty":"beginner","instructions":["pull"]},{"name":""}]}`,
	}
	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			p := &fakeProvider{replies: []string{reply}}
			e := newTestEnricher(t, p, testTaxonomy(t))

			res := e.DiscoverExercisesForTerm(context.Background(), "squat", 2, FilterContext{})
			assert.Equal(t, 1, p.Calls())
			assert.Error(t, res.Err)
			assert.True(t, res.Method.IsFallback())
			assert.NotEmpty(t, res.Candidates)
		})
	}
}

func TestAITransientErrorsAreRetriedThenFallBack(t *testing.T) {
	p := &fakeProvider{errs: []error{statusErr(503), statusErr(429), statusErr(500)}}
	e := newTestEnricher(t, p, testTaxonomy(t))

	res := e.DiscoverExercisesForTerm(context.Background(), "squat", 1, FilterContext{})
	assert.Equal(t, 3, p.Calls())
	require.Error(t, res.Err)
	assert.False(t, errors.Is(res.Err, ErrNoCredential))
	assert.Equal(t, domain.MethodTaxonomyFallback, res.Method)
}

func TestAITransientThenSuccess(t *testing.T) {
	p := &fakeProvider{errs: []error{statusErr(502)}, replies: []string{twoExercises}}
	e := newTestEnricher(t, p, testTaxonomy(t))

	res := e.DiscoverExercisesForTerm(context.Background(), "squat", 5, FilterContext{})
	require.NoError(t, res.Err)
	assert.Equal(t, 2, p.Calls())
	assert.Len(t, res.Candidates, 2)
}

func TestAIPermanentProviderErrorNotRetried(t *testing.T) {
	p := &fakeProvider{errs: []error{fmt.Errorf("auth: %w", statusErr(401))}}
	e := newTestEnricher(t, p, testTaxonomy(t))

	res := e.DiscoverExercisesForTerm(context.Background(), "squat", 1, FilterContext{})
	assert.Equal(t, 1, p.Calls())
	assert.Error(t, res.Err)
	assert.Len(t, res.Candidates, 1)
}
