package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamande/caredesk-api/internal/config"
	"github.com/kamande/caredesk-api/internal/presentation/http/handler"
	"github.com/kamande/caredesk-api/internal/presentation/http/middleware"
	"github.com/kamande/caredesk-api/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Bill      *handler.BillHandler
	Dispatch  *handler.DispatchHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Verifier *utils.JWTVerifier
	Cfg      *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes, all operator-authenticated
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.Verifier))

	rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	v1.Use(rateLimiter.Middleware())

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Dashboard.GetStats)
		dashboard.GET("/breakdown", h.Dashboard.GetBreakdown)
	}

	bills := v1.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/:id/receipt", h.Bill.GetReceipt)
		bills.GET("/:id/pdf", h.Bill.DownloadPDF)
		bills.POST("/:id/dispatch", h.Dispatch.Dispatch)
		bills.POST("/:id/notify", h.Dispatch.Notify)
		bills.GET("/:id/dispatches", h.Dispatch.History)
	}

	return router
}
