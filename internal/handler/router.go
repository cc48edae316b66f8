package handler

import (
	"net/http"

	"garage-scheduler/internal/handler/api"
	"garage-scheduler/internal/handler/middleware"
	"garage-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// RouterDeps groups what NewRouter mounts. Admitter is nil when rate
// limiting is disabled.
type RouterDeps struct {
	Config         config.Config
	Logger         *middleware.Logger
	BookingHandler *api.BookingHandler
	Admitter       middleware.Admitter
}

func NewRouter(engine *gin.Engine, deps RouterDeps) {
	setupMiddleware(engine, deps)
	setupRoutes(engine, deps)
}

func setupMiddleware(engine *gin.Engine, deps RouterDeps) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(deps.Logger.Slog()))
	engine.Use(middleware.NewCORSMiddleware(deps.Config.CORS, deps.Logger.Slog()))
	engine.Use(deps.Logger.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, deps RouterDeps) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var admission []gin.HandlerFunc
	if deps.Config.RateLimit.Enabled && deps.Admitter != nil {
		admission = append(admission, middleware.RateLimit(deps.Admitter))
	}

	h := deps.BookingHandler
	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/bookings", Handler: h.CreateBooking, Mw: admission},
			{Method: http.MethodGet, Path: "/lots", Handler: h.ListLots},
			{Method: http.MethodGet, Path: "/lots/:id/history", Handler: h.LotHistory},
			{Method: http.MethodGet, Path: "/audit", Handler: h.AuditTotals},
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
		default:
			g.Handle(r.Method, r.Path, h)
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
