package handlers

import (
	_ "smartchef/docs"
	"smartchef/internal/logger"
	"smartchef/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live burner-state stream over an HTTP upgrade on the same port.
	router.GET("/ws/sessions/:id", h.wsSessionState)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/recipes", h.listRecipes)
		h.registerSessionRoutes(api)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.createSession)
		sessions.GET("", h.listSessions)
		sessions.GET("/:id", h.getSession)
		sessions.PUT("/:id/notes", h.updateNotes)

		sessions.POST("/:id/start", h.startSession)
		sessions.POST("/:id/pause", h.pauseSession)
		sessions.POST("/:id/resume", h.resumeSession)
		sessions.POST("/:id/next", h.nextStep)
		sessions.POST("/:id/complete", h.completeSession)
		// Body example: {"transcript":"还有多久"}
		sessions.POST("/:id/command", h.voiceCommand)

		sessions.GET("/:id/state", h.sessionState)
		sessions.GET("/:id/progress", h.sessionProgress)
	}
}
