package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"alcyxob/exercise-discovery/internal/discovery"
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/service"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	discoveryService service.DiscoveryService
}

func NewDiscoveryHandler(discoveryService service.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryService: discoveryService}
}

// --- DTOs ---

// StartSessionRequest is the body of POST /discovery/sessions. Omitted fields take service defaults.
type StartSessionRequest struct {
	SessionType            string             `json:"sessionType"`
	BatchSize              int                `json:"batchSize" binding:"omitempty,min=1"`
	MaxExercisesPerTerm    int                `json:"maxExercisesPerTerm" binding:"omitempty,min=1,max=10"`
	MaxTerms               int                `json:"maxTerms" binding:"omitempty,min=1"`
	TestMode               bool               `json:"testMode"`
	SportFilter            string             `json:"sportFilter"`
	FitnessComponentFilter string             `json:"fitnessComponentFilter"`
	PurposeFilter          string             `json:"purposeFilter"`
	IncludeVariations      bool               `json:"includeVariations"`
	PriorityOnly           bool               `json:"priorityOnly"`
	QualityThreshold       int                `json:"qualityThreshold" binding:"omitempty,min=1,max=100"`
	Scoring                domain.ScoringMode `json:"scoring"`
}

func (r StartSessionRequest) toConfig() domain.SessionConfig {
	return domain.SessionConfig{
		SessionType:            r.SessionType,
		BatchSize:              r.BatchSize,
		MaxExercisesPerTerm:    r.MaxExercisesPerTerm,
		MaxTerms:               r.MaxTerms,
		TestMode:               r.TestMode,
		SportFilter:            r.SportFilter,
		FitnessComponentFilter: r.FitnessComponentFilter,
		PurposeFilter:          r.PurposeFilter,
		IncludeVariations:      r.IncludeVariations,
		PriorityOnly:           r.PriorityOnly,
		QualityThreshold:       r.QualityThreshold,
		Scoring:                r.Scoring,
	}
}

type StartSessionResponse struct {
	SessionID           string               `json:"sessionId"`
	Config              domain.SessionConfig `json:"config"`
	TotalTerms          int                  `json:"totalTerms"`
	EstimatedDuration   string               `json:"estimatedDuration"`
	EstimatedDurationMs int64                `json:"estimatedDurationMs"`
}

type ReviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// --- Handlers ---

// StartSession godoc
// @Summary Start a discovery session
// @Description Starts a background discovery run. Only one run may be active at a time.
// @Tags Discovery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param config body StartSessionRequest false "Session configuration"
// @Success 202 {object} StartSessionResponse
// @Failure 400 {object} gin.H "Invalid configuration"
// @Failure 409 {object} gin.H "A session is already running"
// @Router /discovery/sessions [post]
func (h *DiscoveryHandler) StartSession(c *gin.Context) {
	// An empty body starts a session with defaults.
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	started, err := h.discoveryService.StartSession(c.Request.Context(), req.toConfig())
	if err != nil {
		abortWithDiscoveryError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, StartSessionResponse{
		SessionID:           started.SessionID,
		Config:              started.Config,
		TotalTerms:          started.TotalTerms,
		EstimatedDuration:   started.EstimatedDuration.String(),
		EstimatedDurationMs: started.EstimatedDuration.Milliseconds(),
	})
}

// GetSession godoc
// @Summary Get a discovery session
// @Tags Discovery
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} domain.Session
// @Failure 404 {object} gin.H "Not found"
// @Router /discovery/sessions/{id} [get]
func (h *DiscoveryHandler) GetSession(c *gin.Context) {
	session, err := h.discoveryService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *DiscoveryHandler) ListSessions(c *gin.Context) {
	limit, err := queryInt64(c, "limit")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "limit must be a number")
		return
	}
	sessions, err := h.discoveryService.ListSessions(c.Request.Context(), limit)
	if err != nil {
		abortWithDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *DiscoveryHandler) CancelSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.discoveryService.CancelSession(c.Request.Context(), id); err != nil {
		abortWithDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"sessionId": id, "message": "cancellation requested"})
}

// GetCandidates returns the candidates still awaiting (or within the grace period after) review.
func (h *DiscoveryHandler) GetCandidates(c *gin.Context) {
	items, err := h.discoveryService.GetCandidates(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ReviewCandidate godoc
// @Summary Approve or reject a candidate
// @Tags Discovery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param searchId path string true "Candidate search ID"
// @Param review body ReviewRequest true "Decision"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H "Session or candidate not found"
// @Failure 409 {object} gin.H "Session still running or candidate already reviewed"
// @Router /discovery/sessions/{id}/candidates/{searchId}/review [post]
func (h *DiscoveryHandler) ReviewCandidate(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	reviewer, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify reviewer from token.")
		return
	}

	exercise, err := h.discoveryService.ReviewCandidate(c.Request.Context(), c.Param("id"), c.Param("searchId"), *req.Approve, reviewer)
	if err != nil {
		abortWithDiscoveryError(c, err)
		return
	}
	if exercise == nil {
		c.JSON(http.StatusOK, gin.H{"reviewState": domain.ReviewRejected})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviewState": domain.ReviewApproved,
		"exercise":    MapExerciseToResponse(exercise),
	})
}

func (h *DiscoveryHandler) ExportReport(c *gin.Context) {
	link, err := h.discoveryService.ExportReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDiscoveryError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// PreviewTerms runs the term generator with query-string filters.
func (h *DiscoveryHandler) PreviewTerms(c *gin.Context) {
	cfg := domain.SessionConfig{
		SportFilter:            c.Query("sport"),
		FitnessComponentFilter: c.Query("component"),
		PurposeFilter:          c.Query("purpose"),
		IncludeVariations:      c.Query("includeVariations") == "true",
		PriorityOnly:           c.Query("priorityOnly") == "true",
		TestMode:               c.Query("testMode") == "true",
	}
	if raw := c.Query("maxTerms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			abortWithError(c, http.StatusBadRequest, "maxTerms must be a non-negative number")
			return
		}
		cfg.MaxTerms = n
	}
	terms := h.discoveryService.PreviewTerms(cfg)
	c.JSON(http.StatusOK, gin.H{"terms": terms, "count": len(terms)})
}

func abortWithDiscoveryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, discovery.ErrInvalidSessionConfig):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, discovery.ErrSessionNotFound), errors.Is(err, discovery.ErrCandidateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, discovery.ErrSessionRunning),
		errors.Is(err, discovery.ErrSessionNotRunning),
		errors.Is(err, discovery.ErrSessionNotReviewable),
		errors.Is(err, discovery.ErrAlreadyReviewed):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReportsDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Discovery request failed.")
	}
}
