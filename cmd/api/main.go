package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamande/caredesk-api/internal/application/service"
	"github.com/kamande/caredesk-api/internal/config"
	"github.com/kamande/caredesk-api/internal/infrastructure/billing"
	"github.com/kamande/caredesk-api/internal/infrastructure/database"
	"github.com/kamande/caredesk-api/internal/infrastructure/documents"
	"github.com/kamande/caredesk-api/internal/infrastructure/httpclient"
	"github.com/kamande/caredesk-api/internal/infrastructure/relay"
	"github.com/kamande/caredesk-api/internal/infrastructure/repository"
	"github.com/kamande/caredesk-api/internal/presentation/http/handler"
	"github.com/kamande/caredesk-api/internal/presentation/http/routes"
	"github.com/kamande/caredesk-api/pkg/logging"
	"github.com/kamande/caredesk-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logging
	logging.Setup(cfg.App.LogLevel)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The hospital's wall-clock timezone. Every "today" comparison in the
	// dashboard and receipt code runs in this location.
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Local staging area for rendered PDFs
	if err := os.MkdirAll(cfg.Storage.Path, 0o755); err != nil {
		log.Fatalf("Failed to create storage directory: %v", err)
	}

	// Initialize JWT verifier
	verifier := utils.NewJWTVerifier(cfg.JWT.Secret)

	// Remote service clients share one HTTP client so the OAuth2 token is
	// fetched and refreshed once for all of them.
	serviceClient := httpclient.NewServiceClient(&cfg.Services)
	billSource := billing.NewClient(cfg.Services.BillingBaseURL, serviceClient)
	renderer := documents.NewClient(cfg.Services.DocumentBaseURL, cfg.Services.DocumentViewURL, serviceClient)
	messageRelay := relay.NewClient(cfg.Services.RelayBaseURL, serviceClient)

	// Initialize repositories
	dispatchRepo := repository.NewDispatchRepository(db)

	// Initialize services
	statsService := service.NewStatsService(loc)
	receiptService := service.NewReceiptService(loc)
	dispatchService := service.NewDispatchService(
		renderer,
		messageRelay,
		dispatchRepo,
		cfg.Storage.Path,
		cfg.Dispatch.RetryAttempts,
		cfg.Dispatch.RetryBackoff,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Dashboard: handler.NewDashboardHandler(billSource, statsService, loc),
		Bill:      handler.NewBillHandler(billSource, statsService, receiptService, dispatchService, loc),
		Dispatch:  handler.NewDispatchHandler(billSource, dispatchService, dispatchRepo),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Verifier: verifier,
		Cfg:      cfg,
	})

	slog.Info("starting server", "name", cfg.App.Name, "port", cfg.App.Port, "env", cfg.App.Env)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
