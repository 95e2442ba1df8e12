package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DanSBol/shareit/internal/handler/api"
	"github.com/DanSBol/shareit/internal/handler/middleware"
	"github.com/DanSBol/shareit/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking *api.BookingHandler
	Item    *api.ItemHandler
	User    *api.UserHandler
	Request *api.RequestHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, handlers)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, handlers Handlers) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	sharer := middleware.RequireSharer()

	bookings := engine.Group("/bookings")
	bookings.Use(sharer)
	{
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: handlers.Booking.Create},
			{Method: http.MethodPatch, Path: "/:id", Handler: handlers.Booking.Resolve},
			{Method: http.MethodGet, Path: "", Handler: handlers.Booking.ListOwn},
			{Method: http.MethodGet, Path: "/owner", Handler: handlers.Booking.ListOwner},
			{Method: http.MethodGet, Path: "/:id", Handler: handlers.Booking.Get},
		})
	}

	items := engine.Group("/items")
	items.Use(sharer)
	{
		addRoutes(items, []route{
			{Method: http.MethodPost, Path: "", Handler: handlers.Item.Create},
			{Method: http.MethodPatch, Path: "/:id", Handler: handlers.Item.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Item.Delete},
			{Method: http.MethodGet, Path: "", Handler: handlers.Item.ListOwn},
			{Method: http.MethodGet, Path: "/search", Handler: handlers.Item.Search},
			{Method: http.MethodGet, Path: "/:id", Handler: handlers.Item.Get},
			{Method: http.MethodPost, Path: "/:id/comment", Handler: handlers.Item.AddComment},
		})
	}

	users := engine.Group("/users")
	{
		addRoutes(users, []route{
			{Method: http.MethodPost, Path: "", Handler: handlers.User.Create},
			{Method: http.MethodPatch, Path: "/:id", Handler: handlers.User.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: handlers.User.Delete},
			{Method: http.MethodGet, Path: "", Handler: handlers.User.List},
			{Method: http.MethodGet, Path: "/:id", Handler: handlers.User.Get},
		})
	}

	requests := engine.Group("/requests")
	requests.Use(sharer)
	{
		addRoutes(requests, []route{
			{Method: http.MethodPost, Path: "", Handler: handlers.Request.Create},
			{Method: http.MethodGet, Path: "", Handler: handlers.Request.ListOwn},
			{Method: http.MethodGet, Path: "/all", Handler: handlers.Request.ListOthers},
			{Method: http.MethodGet, Path: "/:id", Handler: handlers.Request.Get},
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
