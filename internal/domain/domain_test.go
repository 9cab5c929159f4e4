package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCandidate() Candidate {
	return Candidate{
		Name:         "Goblet Squat",
		Category:     CategoryStrength,
		Difficulty:   DifficultyBeginner,
		Instructions: []string{"Hold the bell at the chest", "Squat"},
	}
}

func TestCandidateValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
		want   error
	}{
		{"valid", func(*Candidate) {}, nil},
		{"blank name", func(c *Candidate) { c.Name = "  " }, ErrCandidateNameRequired},
		{"bad category", func(c *Candidate) { c.Category = "cardio" }, ErrCandidateCategory},
		{"bad difficulty", func(c *Candidate) { c.Difficulty = "" }, ErrCandidateDifficulty},
		{"no instructions", func(c *Candidate) { c.Instructions = nil }, ErrCandidateInstructions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)
			err := c.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCandidateCloneIsDeep(t *testing.T) {
	c := validCandidate()
	c.Benefits = []string{"legs"}
	cp := c.Clone()
	cp.Instructions[0] = "changed"
	cp.Benefits[0] = "changed"
	assert.Equal(t, "Hold the bell at the chest", c.Instructions[0])
	assert.Equal(t, "legs", c.Benefits[0])
	assert.Nil(t, cp.CoachingCues)
}

func TestSessionCloneIsDeep(t *testing.T) {
	done := time.Now()
	s := Session{
		SessionID:   "s1",
		Status:      SessionCompleted,
		Errors:      []SessionError{{Term: "squat", Error: "boom"}},
		Results:     &SessionResults{TotalExercises: 2, ByCategory: map[string]int{"strength": 2}},
		CompletedAt: &done,
	}
	cp := s.Clone()
	cp.Errors[0].Term = "x"
	cp.Results.ByCategory["strength"] = 9
	cp.Results.TotalExercises = 0
	*cp.CompletedAt = time.Time{}

	assert.Equal(t, "squat", s.Errors[0].Term)
	assert.Equal(t, 2, s.Results.ByCategory["strength"])
	assert.Equal(t, 2, s.Results.TotalExercises)
	assert.Equal(t, done, *s.CompletedAt)
}

func TestEnums(t *testing.T) {
	assert.True(t, CategorySportSpecific.IsValid())
	assert.False(t, Category("yoga").IsValid())
	assert.True(t, DifficultyElite.IsValid())
	assert.True(t, MethodTaxonomyFallback.IsFallback())
	assert.False(t, MethodAIDiscovery.IsFallback())
	assert.True(t, SessionCancelled.IsTerminal())
	assert.False(t, SessionRunning.IsTerminal())
}

func TestExerciseFromCandidate(t *testing.T) {
	c := validCandidate()
	c.SearchID = "abc"
	c.OriginalSearchTerm = "squat"
	c.DiscoveryMethod = MethodAIDiscovery
	c.QualityScore = 88

	ex := ExerciseFromCandidate("sess", c)
	assert.Equal(t, "Goblet Squat", ex.Name)
	assert.Equal(t, "abc", ex.SearchID)
	assert.Equal(t, "sess", ex.SessionID)
	assert.Equal(t, "squat", ex.SearchTerm)
	assert.Equal(t, 88, ex.QualityScore)
	assert.False(t, ex.Approved)

	ex.Instructions[0] = "changed"
	assert.Equal(t, "Hold the bell at the chest", c.Instructions[0])
}
