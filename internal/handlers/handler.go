package handlers

import (
	"net/http"

	"grinder_relay/internal/logger"
	"grinder_relay/internal/service"

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

	// Login (no gate)
	router.POST("/api/login", h.login)

	h.registerGatewayRoutes(router)
	h.registerUserRoutes(router)

	// WebSocket snapshot stream (HTTP upgrade) — same port
	router.GET("/ws", h.userAuthMiddleware, h.wsConnect)

	return router
}

// registerGatewayRoutes mounts the endpoints the remote controller calls.
func (h *Handler) registerGatewayRoutes(r *gin.Engine) {
	gw := r.Group("/api", h.gatewayAuthMiddleware)
	{
		gw.POST("/gateway/state", h.pushState)
		gw.POST("/gateway/alarm", h.ingestAlarm)
		gw.GET("/reset-status", h.resetStatus)
		gw.POST("/reset-status/consume", h.consumeReset)
	}
}

// registerUserRoutes mounts the dashboard endpoints.
func (h *Handler) registerUserRoutes(r *gin.Engine) {
	api := r.Group("/api", h.userAuthMiddleware)
	{
		api.GET("/grinder-data", h.getGrinderData)
		api.POST("/reset", h.requestReset)

		api.GET("/alarms", h.listAlarms)
		api.GET("/alarms/count", h.countAlarms)
		api.PATCH("/alarms/:id", h.acknowledgeAlarm)
		api.POST("/alarms/acknowledge-all", h.acknowledgeAll)
		api.DELETE("/alarms/:id", h.deleteAlarm)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"success": false, "error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
