package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-discovery/internal/domain"
)

func cand(name, muscle string, cat domain.Category, score int) domain.Candidate {
	return domain.Candidate{Name: name, PrimaryMuscleGroup: muscle, Category: cat, QualityScore: score, SearchID: name}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		c    domain.Candidate
		want string
	}{
		{cand("Barbell Back Squat", "Legs", domain.CategoryStrength, 0), "back_barbell_squat_legs_strength"},
		{cand("Squat Barbell Back", "legs", domain.CategoryStrength, 0), "back_barbell_squat_legs_strength"},
		{cand("Single Leg Romanian Deadlift", "Hamstrings", domain.CategoryBalance, 0), "deadlift_leg_romanian_hamstrings_balance"},
		{cand("Plank", "Core", domain.CategoryEndurance, 0), "plank_core_endurance"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fingerprint(tt.c), tt.c.Name)
	}
}

func TestDeduplicateKeepsHigherScore(t *testing.T) {
	low := cand("Barbell Back Squat", "Legs", domain.CategoryStrength, 60)
	high := cand("Squat Barbell Back", "Legs", domain.CategoryStrength, 85)

	kept, removed := Deduplicate([]domain.Candidate{low, high})
	require.Len(t, kept, 1)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 85, kept[0].QualityScore)
	assert.Equal(t, "Squat Barbell Back", kept[0].Name)
}

func TestDeduplicateReplacementKeepsPosition(t *testing.T) {
	in := []domain.Candidate{
		cand("Barbell Back Squat", "Legs", domain.CategoryStrength, 60),
		cand("Plank", "Core", domain.CategoryEndurance, 70),
		cand("Back Squat Barbell", "Legs", domain.CategoryStrength, 90),
		cand("Plank", "Core", domain.CategoryEndurance, 70),
	}
	kept, removed := Deduplicate(in)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, "Back Squat Barbell", kept[0].Name)
	assert.Equal(t, "Plank", kept[1].Name)
}

func TestDeduplicateTieKeepsFirst(t *testing.T) {
	a := cand("Front Squat", "Legs", domain.CategoryStrength, 80)
	b := cand("Squat Front", "Legs", domain.CategoryStrength, 80)
	kept, _ := Deduplicate([]domain.Candidate{a, b})
	require.Len(t, kept, 1)
	assert.Equal(t, "Front Squat", kept[0].Name)
}

func TestDeduplicateDifferentMuscleOrCategory(t *testing.T) {
	kept, removed := Deduplicate([]domain.Candidate{
		cand("Box Jump", "Legs", domain.CategoryPower, 80),
		cand("Box Jump", "Glutes", domain.CategoryPower, 80),
		cand("Box Jump", "Legs", domain.CategoryStrength, 80),
	})
	assert.Len(t, kept, 3)
	assert.Zero(t, removed)
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []domain.Candidate{
		cand("Barbell Back Squat", "Legs", domain.CategoryStrength, 60),
		cand("Squat Barbell Back", "Legs", domain.CategoryStrength, 85),
		cand("Bench Press", "Chest", domain.CategoryStrength, 70),
		cand("Press Bench", "Chest", domain.CategoryStrength, 65),
		cand("Plank", "Core", domain.CategoryEndurance, 75),
	}
	once, _ := Deduplicate(in)
	twice, removed := Deduplicate(once)
	assert.Equal(t, once, twice)
	assert.Zero(t, removed)

	empty, removed := Deduplicate(nil)
	assert.Empty(t, empty)
	assert.Zero(t, removed)
}
