package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/handler/api"
	"slot-swapper/internal/handler/middleware"
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Slot *api.SlotHandler
	Swap *api.SwapHandler
	User *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter, gatherer prometheus.Gatherer) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, limiter, gatherer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter, gatherer prometheus.Gatherer) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		events := apiGroup.Group("/events")
		addRoutes(events, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
			{Method: http.MethodPost, Path: "", Handler: h.Slot.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Slot.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Slot.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Slot.Delete},
		})

		limited := []gin.HandlerFunc{limiter.Middleware()}
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/swappable-slots", Handler: h.Slot.ListSwappable},
			{Method: http.MethodPost, Path: "/swap-request", Handler: h.Swap.Propose, Mw: limited},
			{Method: http.MethodPost, Path: "/swap-response/:requestId", Handler: h.Swap.Respond, Mw: limited},
			{Method: http.MethodGet, Path: "/swap-requests", Handler: h.Swap.ListMine},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/swap-requests/:requestId/reject", Handler: h.Swap.ForceReject},
			{Method: http.MethodPost, Path: "/users", Handler: h.User.Provision},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
