package router

import (
	"github.com/gin-gonic/gin"

	"academico/internal/config"
	"academico/internal/domain"
	"academico/internal/handler"
	"academico/internal/middleware"
	"academico/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	transcriptH *handler.TranscriptHandler,
	catalogH *handler.CatalogHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Transcript routes. Raw extraction is a diagnostic surface, admins only.
	transcripts := protected.Group("/transcripts")
	transcripts.POST("/reconcile", transcriptH.Reconcile)
	transcripts.POST("/extract", middleware.RequireRole(domain.RoleAdmin), transcriptH.Extract)

	// Catalog routes
	catalogs := protected.Group("/catalogs")
	catalogs.GET("", catalogH.List)
	catalogs.GET("/:id", catalogH.GetDetail)

	return r
}
