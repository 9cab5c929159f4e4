package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"alcyxob/exercise-discovery/internal/domain"
)

func richCandidate() domain.Candidate {
	return domain.Candidate{
		Name:                  "Bulgarian Split Squat",
		Description:           "Rear-foot elevated single-leg squat that builds unilateral leg strength and hip stability.",
		Category:              domain.CategoryStrength,
		PrimaryMuscleGroup:    "Legs",
		SecondaryMuscleGroups: []string{"Glutes"},
		Equipment:             "Dumbbells",
		Difficulty:            domain.DifficultyIntermediate,
		Instructions:          []string{"Set up", "Descend", "Drive up", "Repeat"},
		CoachingCues:          []string{"Knee tracks toes", "Stay tall"},
		CommonMistakes:        []string{"Short stride", "Leaning forward"},
		Benefits:              []string{"Leg strength", "Power transfer for explosive sprinting"},
		SetRepGuidelines:      "3 sets of 8-10 reps per leg",
		Progressions:          []string{"Add load", "Add pause"},
		SafetyNotes:           "Keep the rear foot stable",
		SportApplications:     []string{"Soccer", "tennis"},
		DiscoveryMethod:       domain.MethodAIDiscovery,
	}
}

func TestEnhancedScoreFullMarks(t *testing.T) {
	c := richCandidate()
	assert.Equal(t, 90, EnhancedScore(c, FilterContext{}))
	assert.Equal(t, 95, EnhancedScore(c, FilterContext{Sport: "tennis"}))
	assert.Equal(t, 100, EnhancedScore(c, FilterContext{Sport: "soccer", FitnessComponent: "power"}))
	assert.Equal(t, 95, EnhancedScore(c, FilterContext{Sport: "golf", FitnessComponent: "strength"}))
}

func TestLegacyScore(t *testing.T) {
	assert.Equal(t, 100, LegacyScore(richCandidate()))
	assert.Equal(t, 0, LegacyScore(domain.Candidate{}))

	c := domain.Candidate{Name: "Goblet Squat", Category: domain.CategoryStrength, Difficulty: "silly"}
	assert.Equal(t, 25, LegacyScore(c))
}

func TestScoresStayInBounds(t *testing.T) {
	long := strings.Repeat("x", 500)
	many := []string{"a", "b", "c", "d", "e", "f"}
	candidates := []domain.Candidate{
		{},
		richCandidate(),
		{Name: long, Description: long, Instructions: many, CoachingCues: many, CommonMistakes: many, Benefits: many,
			Progressions: many, SetRepGuidelines: long, SafetyNotes: long, SecondaryMuscleGroups: many,
			SportApplications: []string{"tennis"}, Category: domain.CategoryPower, Difficulty: domain.DifficultyElite},
		{Name: "   ", Category: "bogus", Difficulty: "bogus"},
	}
	fctxs := []FilterContext{{}, {Sport: "tennis", FitnessComponent: "power"}}
	for _, c := range candidates {
		assert.GreaterOrEqual(t, LegacyScore(c), 0)
		assert.LessOrEqual(t, LegacyScore(c), 100)
		for _, f := range fctxs {
			s := EnhancedScore(c, f)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestScorerDispatch(t *testing.T) {
	c := richCandidate()

	assert.Equal(t, EnhancedScore(c, FilterContext{}), Scorer{}.Score(c, FilterContext{}))
	assert.Equal(t, LegacyScore(c), Scorer{Mode: domain.ScoringLegacy}.Score(c, FilterContext{}))

	c.DiscoveryMethod = domain.MethodFallback
	assert.Equal(t, 70, Scorer{}.Score(c, FilterContext{}))
	c.DiscoveryMethod = domain.MethodTaxonomyFallback
	assert.Equal(t, 80, Scorer{Mode: domain.ScoringLegacy}.Score(c, FilterContext{}))
}

func TestApplyQualityGate(t *testing.T) {
	cs := []domain.Candidate{
		{Name: "a", QualityScore: 74},
		{Name: "b", QualityScore: 75},
		{Name: "c", QualityScore: 90},
		{Name: "d", QualityScore: 10},
	}
	kept, dropped := ApplyQualityGate(cs, 75)
	assert.Equal(t, 2, dropped)
	assert.Len(t, kept, 2)
	assert.Equal(t, "b", kept[0].Name)
	assert.Equal(t, "c", kept[1].Name)
}
