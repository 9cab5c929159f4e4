package api

import (
	"net/http"
	"strconv"
	"strings"

	"alcyxob/exercise-discovery/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videos service.VideoFinder
}

func NewVideoHandler(videos service.VideoFinder) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Search handles GET /videos/search?q=...&max=...
// Upstream failures are covered by the fixed fallback mapping, so a valid query always gets videos.
func (h *VideoHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		abortWithError(c, http.StatusBadRequest, "query parameter q is required")
		return
	}
	maxResults := 0
	if raw := c.Query("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			abortWithError(c, http.StatusBadRequest, "max must be a positive number")
			return
		}
		maxResults = n
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "videos": h.videos.Search(c.Request.Context(), q, maxResults)})
}
