package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/repository"
	"alcyxob/exercise-discovery/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// AttachVideoRequest optionally overrides the search query (defaults to the exercise name).
type AttachVideoRequest struct {
	Query string `json:"query"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Description           string                 `json:"description,omitempty"`
	Category              domain.Category        `json:"category"`
	PrimaryMuscleGroup    string                 `json:"primaryMuscleGroup,omitempty"`
	SecondaryMuscleGroups []string               `json:"secondaryMuscleGroups,omitempty"`
	Equipment             string                 `json:"equipment,omitempty"`
	Difficulty            domain.Difficulty      `json:"difficulty,omitempty"`
	Instructions          []string               `json:"instructions,omitempty"`
	CoachingCues          []string               `json:"coachingCues,omitempty"`
	CommonMistakes        []string               `json:"commonMistakes,omitempty"`
	Benefits              []string               `json:"benefits,omitempty"`
	Progressions          []string               `json:"progressions,omitempty"`
	SetRepGuidelines      string                 `json:"setRepGuidelines,omitempty"`
	SafetyNotes           string                 `json:"safetyNotes,omitempty"`
	SportApplications     []string               `json:"sportApplications,omitempty"`
	QualityScore          int                    `json:"qualityScore"`
	VideoURL              string                 `json:"videoUrl,omitempty"`
	DiscoveryMethod       domain.DiscoveryMethod `json:"discoveryMethod,omitempty"`
	SessionID             string                 `json:"sessionId,omitempty"`
	Approved              bool                   `json:"approved"`
	ApprovedBy            string                 `json:"approvedBy,omitempty"`
	ApprovedAt            *time.Time             `json:"approvedAt,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                    ex.ID.Hex(),
		Name:                  ex.Name,
		Description:           ex.Description,
		Category:              ex.Category,
		PrimaryMuscleGroup:    ex.PrimaryMuscleGroup,
		SecondaryMuscleGroups: ex.SecondaryMuscleGroups,
		Equipment:             ex.Equipment,
		Difficulty:            ex.Difficulty,
		Instructions:          ex.Instructions,
		CoachingCues:          ex.CoachingCues,
		CommonMistakes:        ex.CommonMistakes,
		Benefits:              ex.Benefits,
		Progressions:          ex.Progressions,
		SetRepGuidelines:      ex.SetRepGuidelines,
		SafetyNotes:           ex.SafetyNotes,
		SportApplications:     ex.SportApplications,
		QualityScore:          ex.QualityScore,
		VideoURL:              ex.VideoURL,
		DiscoveryMethod:       ex.DiscoveryMethod,
		SessionID:             ex.SessionID,
		Approved:              ex.Approved,
		ApprovedBy:            ex.ApprovedBy,
		ApprovedAt:            ex.ApprovedAt,
		CreatedAt:             ex.CreatedAt,
		UpdatedAt:             ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List library exercises
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter"
// @Param difficulty query string false "Difficulty filter"
// @Param q query string false "Name search"
// @Param approved query bool false "Only approved (true) or unapproved (false)"
// @Param limit query int false "Page size (max 100)"
// @Param skip query int false "Offset"
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := repository.ExerciseFilter{
		Category:   domain.Category(c.Query("category")),
		Difficulty: domain.Difficulty(c.Query("difficulty")),
		Search:     c.Query("q"),
	}
	if raw := c.Query("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "approved must be true or false")
			return
		}
		filter.Approved = &approved
	}
	var err error
	if filter.Limit, err = queryInt64(c, "limit"); err != nil {
		abortWithError(c, http.StatusBadRequest, "limit must be a number")
		return
	}
	if filter.Skip, err = queryInt64(c, "skip"); err != nil {
		abortWithError(c, http.StatusBadRequest, "skip must be a number")
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get one library exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid ID"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortWithExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// AttachVideo searches for a demonstration video and stores the best match.
func (h *ExerciseHandler) AttachVideo(c *gin.Context) {
	var req AttachVideoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	exercise, videos, err := h.exerciseService.AttachVideo(c.Request.Context(), c.Param("id"), req.Query)
	if err != nil {
		h.abortWithExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exercise": MapExerciseToResponse(exercise),
		"videos":   videos,
	})
}

func (h *ExerciseHandler) abortWithExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidExerciseID):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrNoVideoFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process exercise request.")
	}
}

func queryInt64(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
