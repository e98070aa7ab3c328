package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/woningspotters/woningspotters-api/internal/apify"
	"github.com/woningspotters/woningspotters-api/internal/config"
	"github.com/woningspotters/woningspotters-api/internal/database"
	"github.com/woningspotters/woningspotters-api/internal/geocode"
	"github.com/woningspotters/woningspotters-api/internal/handlers"
	"github.com/woningspotters/woningspotters-api/internal/jobs"
	"github.com/woningspotters/woningspotters-api/internal/logging"
	"github.com/woningspotters/woningspotters-api/internal/mail"
	"github.com/woningspotters/woningspotters-api/internal/middleware"
	"github.com/woningspotters/woningspotters-api/internal/mollie"
	"github.com/woningspotters/woningspotters-api/internal/news"
	"github.com/woningspotters/woningspotters-api/internal/repository"
	"github.com/woningspotters/woningspotters-api/internal/routes"
	"github.com/woningspotters/woningspotters-api/internal/services"
)

const userAgent = "WoningSpotters/1.0 (+https://woningspotters.nl)"

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	if !cfg.HasSessionVerifier() {
		slog.Error("SUPABASE_JWT_SECRET or SUPABASE_JWKS_URL environment variable is required")
		os.Exit(1)
	}
	if !cfg.HasDatabaseCredentials() {
		slog.Error("DATABASE_URL or DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	logger := slog.New(logging.NewMultiHandler(logging.StdoutHandler(cfg.AppEnv), pgLogHandler))
	slog.SetDefault(logger)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// External clients
	scraper := apify.NewClient(cfg.ApifyURL, cfg.ApifyToken, cfg.ApifyActorID, cfg.ApifyTimeout, logger)
	if !scraper.Configured() {
		slog.Warn("APIFY_API_TOKEN not set, searches return sample listings")
	}
	gateway := mollie.NewClient(cfg.MollieAPIURL, cfg.MollieAPIKey, logger)

	var mailer mail.Provider
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendProvider(cfg.ResendAPIKey, cfg.ResendURL, logger)
	} else {
		slog.Warn("RESEND_API_KEY not set, emails are logged instead of sent")
		mailer = mail.NewMockProvider(logger)
	}

	sources, err := news.LoadSources(cfg.NewsSourcesPath)
	if err != nil {
		slog.Error("failed to load news sources", "path", cfg.NewsSourcesPath, "error", err)
		os.Exit(1)
	}
	fetcher := news.NewFetcher(&http.Client{Timeout: 15 * time.Second}, logger)
	geocoder := geocode.NewClient(cfg.NominatimURL, userAgent)

	// Services
	store := repository.NewStore(database.DB)
	quotaService := services.NewQuotaService(store, logger)
	searchService := services.NewSearchService(quotaService, scraper, store, logger)
	accountService := services.NewAccountService(store, store, store, quotaService, logger)
	exportService := services.NewExportService(store)
	favoriteService := services.NewFavoriteService(store, store)
	alertService := services.NewAlertService(store, store)
	billingService := services.NewBillingService(store, store, gateway, services.BillingConfig{
		AppURL:   cfg.AppURL,
		TestMode: cfg.IsTestMollieKey(),
	}, logger)
	newsService := services.NewNewsService(store, fetcher, sources, logger)
	newsletterService := services.NewNewsletterService(store, mailer, services.NewsletterConfig{
		SiteURL:           cfg.SiteURL,
		From:              cfg.MailFromNews,
		APIKey:            cfg.NewsletterAPIKey,
		UnsubscribeSecret: cfg.UnsubscribeSecret,
	}, logger)
	contactService := services.NewContactService(mailer, services.ContactConfig{
		SiteURL:      cfg.SiteURL,
		From:         cfg.MailFromContact,
		ContactEmail: cfg.ContactEmail,
	}, logger)
	adminService := services.NewAdminService(store, store)

	// Background jobs
	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.Add(jobs.Job{
		Name:     "news_refresh",
		Schedule: cfg.NewsRefreshSchedule,
		Run: func(ctx context.Context) error {
			_, err := newsService.Refresh(ctx)
			return err
		},
	}); err != nil {
		slog.Error("invalid NEWS_REFRESH_SCHEDULE", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Add(jobs.Job{
		Name:     "log_retention",
		Schedule: "@daily",
		Run: func(ctx context.Context) error {
			deleted, err := logging.Cleanup(ctx, database.DB, cfg.LogRetentionDays, time.Now())
			if err == nil && deleted > 0 {
				slog.Info("log cleanup completed", "deleted", deleted)
			}
			return err
		},
	}); err != nil {
		slog.Error("failed to schedule log retention", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// Handlers
	healthHandler := handlers.NewHealthHandler(database.Ping)
	searchHandler := handlers.NewSearchHandler(searchService, accountService, exportService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	alertHandler := handlers.NewAlertHandler(alertService)
	billingHandler := handlers.NewBillingHandler(billingService, accountService)
	newsHandler := handlers.NewNewsHandler(newsService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService, cfg.SiteURL)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(adminService)
	accountHandler := handlers.NewAccountHandler(accountService, geocoder)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.AccessLog(logger))
	app.Use(middleware.Metrics())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, store,
		healthHandler, searchHandler, favoriteHandler, alertHandler, billingHandler,
		newsHandler, newsletterHandler, contactHandler, adminHandler, accountHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	scheduler.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
