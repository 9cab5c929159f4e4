package api

import (
	"net/http"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps are the services the HTTP layer exposes.
type Deps struct {
	JWTSecret        string
	AllowedOrigins   []string
	Log              *logger.Logger
	DiscoveryService service.DiscoveryService
	ExerciseService  service.ExerciseService
	Videos           service.VideoFinder
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	discoveryHandler := NewDiscoveryHandler(deps.DiscoveryService)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService)
	videoHandler := NewVideoHandler(deps.Videos)

	if deps.Log != nil {
		router.Use(RequestLogger(deps.Log))
	}
	if len(deps.AllowedOrigins) > 0 {
		router.Use(CORS(deps.AllowedOrigins))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(deps.JWTSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		runDiscovery := RequireRole("run discovery", domain.Role.CanRunDiscovery)
		review := RequireRole("review candidates", domain.Role.CanReview)

		// --- Discovery Routes ---
		discoveryGroup := protected.Group("/discovery")
		{
			discoveryGroup.GET("/terms", discoveryHandler.PreviewTerms)
			discoveryGroup.GET("/sessions", discoveryHandler.ListSessions)
			discoveryGroup.POST("/sessions", runDiscovery, discoveryHandler.StartSession)
			discoveryGroup.GET("/sessions/:id", discoveryHandler.GetSession)
			discoveryGroup.POST("/sessions/:id/cancel", runDiscovery, discoveryHandler.CancelSession)
			discoveryGroup.GET("/sessions/:id/candidates", review, discoveryHandler.GetCandidates)
			discoveryGroup.POST("/sessions/:id/candidates/:searchId/review", review, discoveryHandler.ReviewCandidate)
			discoveryGroup.POST("/sessions/:id/report", review, discoveryHandler.ExportReport)
		}

		// --- Exercise Library Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("/:id/video", review, exerciseHandler.AttachVideo)
		}

		protected.GET("/videos/search", videoHandler.Search)
	}
}
