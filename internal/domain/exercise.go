// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the library.
// Records created from discovery keep the candidate's provenance (SearchID, SessionID).
type Exercise struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name"`
	Description           string             `bson:"description,omitempty" json:"description,omitempty"`
	Category              Category           `bson:"category" json:"category"`
	PrimaryMuscleGroup    string             `bson:"primaryMuscleGroup,omitempty" json:"primaryMuscleGroup,omitempty"`
	SecondaryMuscleGroups []string           `bson:"secondaryMuscleGroups,omitempty" json:"secondaryMuscleGroups,omitempty"`
	Equipment             string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Difficulty            Difficulty         `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Instructions          []string           `bson:"instructions,omitempty" json:"instructions,omitempty"`
	CoachingCues          []string           `bson:"coachingCues,omitempty" json:"coachingCues,omitempty"`
	CommonMistakes        []string           `bson:"commonMistakes,omitempty" json:"commonMistakes,omitempty"`
	Benefits              []string           `bson:"benefits,omitempty" json:"benefits,omitempty"`
	Progressions          []string           `bson:"progressions,omitempty" json:"progressions,omitempty"`
	SetRepGuidelines      string             `bson:"setRepGuidelines,omitempty" json:"setRepGuidelines,omitempty"`
	SafetyNotes           string             `bson:"safetyNotes,omitempty" json:"safetyNotes,omitempty"`
	SportApplications     []string           `bson:"sportApplications,omitempty" json:"sportApplications,omitempty"`
	QualityScore          int                `bson:"qualityScore" json:"qualityScore"`
	VideoURL              string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`

	// Discovery provenance
	SearchID        string          `bson:"searchId,omitempty" json:"searchId,omitempty"`
	SessionID       string          `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	DiscoveryMethod DiscoveryMethod `bson:"discoveryMethod,omitempty" json:"discoveryMethod,omitempty"`
	SearchTerm      string          `bson:"searchTerm,omitempty" json:"searchTerm,omitempty"`

	Approved   bool       `bson:"approved" json:"approved"`
	ApprovedBy string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseFromCandidate builds an unsaved library record from a reviewed candidate.
func ExerciseFromCandidate(sessionID string, c Candidate) *Exercise {
	c = c.Clone()
	return &Exercise{
		Name:                  c.Name,
		Description:           c.Description,
		Category:              c.Category,
		PrimaryMuscleGroup:    c.PrimaryMuscleGroup,
		SecondaryMuscleGroups: c.SecondaryMuscleGroups,
		Equipment:             c.Equipment,
		Difficulty:            c.Difficulty,
		Instructions:          c.Instructions,
		CoachingCues:          c.CoachingCues,
		CommonMistakes:        c.CommonMistakes,
		Benefits:              c.Benefits,
		Progressions:          c.Progressions,
		SetRepGuidelines:      c.SetRepGuidelines,
		SafetyNotes:           c.SafetyNotes,
		SportApplications:     c.SportApplications,
		QualityScore:          c.QualityScore,
		SearchID:              c.SearchID,
		SessionID:             sessionID,
		DiscoveryMethod:       c.DiscoveryMethod,
		SearchTerm:            c.OriginalSearchTerm,
	}
}
