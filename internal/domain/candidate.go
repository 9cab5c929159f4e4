package domain

import (
	"errors"
	"strings"
	"time"
)

// Category classifies what an exercise trains.
type Category string

const (
	CategoryStrength      Category = "strength"
	CategoryPower         Category = "power"
	CategoryEndurance     Category = "endurance"
	CategoryBalance       Category = "balance"
	CategoryMobility      Category = "mobility"
	CategorySportSpecific Category = "sport_specific"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryStrength, CategoryPower, CategoryEndurance, CategoryBalance, CategoryMobility, CategorySportSpecific:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyElite        Difficulty = "elite"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyElite:
		return true
	}
	return false
}

// DiscoveryMethod records how a candidate was produced.
type DiscoveryMethod string

const (
	MethodAIDiscovery      DiscoveryMethod = "ai_discovery"
	MethodFallback         DiscoveryMethod = "fallback"
	MethodTaxonomyFallback DiscoveryMethod = "taxonomy_fallback"
)

func (m DiscoveryMethod) IsFallback() bool {
	return m == MethodFallback || m == MethodTaxonomyFallback
}

var (
	ErrCandidateNameRequired = errors.New("candidate name is required")
	ErrCandidateCategory     = errors.New("candidate category is not a known value")
	ErrCandidateDifficulty   = errors.New("candidate difficulty is not a known value")
	ErrCandidateInstructions = errors.New("candidate must have at least one instruction")
)

// Candidate is an exercise proposed by a discovery run and awaiting review.
// SearchID is unique within a run and is unrelated to any database ID.
type Candidate struct {
	Name                  string          `json:"name" bson:"name"`
	Description           string          `json:"description" bson:"description"`
	Category              Category        `json:"category" bson:"category"`
	PrimaryMuscleGroup    string          `json:"primaryMuscleGroup" bson:"primaryMuscleGroup"`
	SecondaryMuscleGroups []string        `json:"secondaryMuscleGroups,omitempty" bson:"secondaryMuscleGroups,omitempty"`
	Equipment             string          `json:"equipment" bson:"equipment"`
	Difficulty            Difficulty      `json:"difficulty" bson:"difficulty"`
	Instructions          []string        `json:"instructions" bson:"instructions"` // ordered steps
	CoachingCues          []string        `json:"coachingCues,omitempty" bson:"coachingCues,omitempty"`
	CommonMistakes        []string        `json:"commonMistakes,omitempty" bson:"commonMistakes,omitempty"`
	Benefits              []string        `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Progressions          []string        `json:"progressions,omitempty" bson:"progressions,omitempty"`
	SetRepGuidelines      string          `json:"setRepGuidelines,omitempty" bson:"setRepGuidelines,omitempty"`
	SafetyNotes           string          `json:"safetyNotes,omitempty" bson:"safetyNotes,omitempty"`
	SportApplications     []string        `json:"sportApplications,omitempty" bson:"sportApplications,omitempty"`
	QualityScore          int             `json:"qualityScore" bson:"qualityScore"`
	OriginalSearchTerm    string          `json:"originalSearchTerm" bson:"originalSearchTerm"`
	DiscoveryMethod       DiscoveryMethod `json:"discoveryMethod" bson:"discoveryMethod"`
	SearchID              string          `json:"searchId" bson:"searchId"`
	DiscoveredAt          time.Time       `json:"discoveredAt" bson:"discoveredAt"`
}

// Validate checks the fields a provider-supplied candidate must carry.
func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCandidateNameRequired
	}
	if !c.Category.IsValid() {
		return ErrCandidateCategory
	}
	if !c.Difficulty.IsValid() {
		return ErrCandidateDifficulty
	}
	if len(c.Instructions) == 0 {
		return ErrCandidateInstructions
	}
	return nil
}

// Clone returns a copy that shares no slices with c.
func (c Candidate) Clone() Candidate {
	out := c
	out.SecondaryMuscleGroups = cloneStrings(c.SecondaryMuscleGroups)
	out.Instructions = cloneStrings(c.Instructions)
	out.CoachingCues = cloneStrings(c.CoachingCues)
	out.CommonMistakes = cloneStrings(c.CommonMistakes)
	out.Benefits = cloneStrings(c.Benefits)
	out.Progressions = cloneStrings(c.Progressions)
	out.SportApplications = cloneStrings(c.SportApplications)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ReviewState is the reviewer's decision on a candidate.
type ReviewState string

const (
	ReviewPending  ReviewState = "pending"
	ReviewApproved ReviewState = "approved"
	ReviewRejected ReviewState = "rejected"
)

// ReviewItem is a candidate as shown to the reviewer.
type ReviewItem struct {
	Candidate   Candidate   `json:"candidate"`
	ReviewState ReviewState `json:"reviewState"`
	ExerciseID  string      `json:"exerciseId,omitempty"`
}
