package handlers

import (
	"babylog/internal/logger"
	"babylog/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services, logging, and the ws hub.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	hub      *Hub
}

// NewHandler constructs the HTTP handler with its dependencies.
func NewHandler(services *service.Service, log *logger.Logger, hub *Hub) *Handler {
	return &Handler{services: services, log: log, hub: hub}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	{
		h.registerLogRoutes(api)
		h.registerStatsRoutes(api)
		h.registerSettingsRoutes(api)
		api.POST("/assistant", h.askAssistant)
	}

	// Dashboard push over WebSocket, same port as the REST API
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.POST("", h.createLog)
		logs.GET("", h.getLogs)
		logs.GET("/last", h.getLastLog)
	}
}

func (h *Handler) registerStatsRoutes(api *gin.RouterGroup) {
	stats := api.Group("/stats")
	{
		stats.GET("/dashboard", h.getDashboard)
		stats.GET("/weekly", h.getWeekly)
	}
}

func (h *Handler) registerSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")
	{
		settings.GET("/reminder", h.getReminder)
		settings.PUT("/reminder", h.putReminder)
		settings.GET("/language", h.getLanguage)
		settings.PUT("/language", h.putLanguage)
	}
}
