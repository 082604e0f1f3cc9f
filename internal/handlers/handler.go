package handlers

import (
	"net/http"

	"pet_discovery/internal/logger"
	"pet_discovery/internal/metrics"
	"pet_discovery/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a new HTTP handler with dependencies. allowedOrigins restricts the map
// bridge socket; none allows every origin.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigins ...string) *Handler {
	return &Handler{
		services: services,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// map bridge for a mounted session, same port
	router.GET("/ws/sessions/:id", h.wsSession)

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
	api := r.Group("/api/v1")
	{
		api.GET("/services", h.listServices)
		h.registerSessionRoutes(api)
	}

	admin := r.Group("/api/v1", h.requireAdmin)
	{
		admin.POST("/companies", h.createCompany)
		admin.GET("/events", h.listEvents)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.mountSession)
		sessions.GET("/:id", h.getSession)
		sessions.DELETE("/:id", h.unmountSession)
		// Body example: {"query":"강남","service":"walk"}
		sessions.PUT("/:id/filter", h.setFilter)
		sessions.PUT("/:id/page", h.setPage)
		sessions.POST("/:id/select", h.selectFromList)
		sessions.POST("/:id/map-click", h.mapClick)
		sessions.DELETE("/:id/selection", h.clearSelection)
		sessions.GET("/:id/detail", h.getDetail)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
