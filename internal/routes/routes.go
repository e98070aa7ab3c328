package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/woningspotters/woningspotters-api/internal/config"
	"github.com/woningspotters/woningspotters-api/internal/handlers"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
	"github.com/woningspotters/woningspotters-api/internal/middleware"
	"github.com/woningspotters/woningspotters-api/internal/repository"
)

func perIP(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   true,
				"message": "Te veel verzoeken, probeer het over een minuut opnieuw",
			})
		},
	})
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	profiles repository.ProfileRepository,
	healthHandler *handlers.HealthHandler,
	searchHandler *handlers.SearchHandler,
	favoriteHandler *handlers.FavoriteHandler,
	alertHandler *handlers.AlertHandler,
	billingHandler *handlers.BillingHandler,
	newsHandler *handlers.NewsHandler,
	newsletterHandler *handlers.NewsletterHandler,
	contactHandler *handlers.ContactHandler,
	adminHandler *handlers.AdminHandler,
	accountHandler *handlers.AccountHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(perIP(60))

	api.Get("/health", healthHandler.Check)
	api.Get("/stats", accountHandler.PublicStats)
	api.Get("/news", newsHandler.List)
	api.Get("/geocode", accountHandler.Geocode)

	// Search serves anonymous callers too; a session only raises the allowance.
	api.Post("/search", perIP(20), middleware.OptionalJWT(cfg), searchHandler.Search)

	api.Post("/contact", perIP(5), contactHandler.Submit)

	newsletter := api.Group("/newsletter")
	newsletter.Post("/subscribe", perIP(5), newsletterHandler.Subscribe)
	newsletter.Get("/unsubscribe", newsletterHandler.Unsubscribe)
	newsletter.Post("/send", newsletterHandler.Send)

	// Mollie calls the webhook without a session.
	api.Post("/mollie/webhook", billingHandler.Webhook)

	protected := middleware.JWTProtected(cfg)

	api.Get("/account", protected, accountHandler.Account)
	api.Post("/export", protected, searchHandler.Export)

	api.Get("/favorites", protected, favoriteHandler.List)
	api.Post("/favorites", protected, favoriteHandler.Add)
	api.Delete("/favorites", protected, favoriteHandler.Remove)

	api.Get("/alerts", protected, alertHandler.List)
	api.Post("/alerts", protected, alertHandler.Create)
	api.Patch("/alerts", protected, alertHandler.Toggle)
	api.Delete("/alerts", protected, alertHandler.Delete)

	mollie := api.Group("/mollie")
	mollie.Post("/create-payment", protected, billingHandler.CreatePayment)
	mollie.Post("/cancel", protected, billingHandler.Cancel)
	mollie.Post("/activate", protected, billingHandler.Activate)

	// Admin panel: session or X-Admin-Token
	admin := api.Group("/admin", middleware.OptionalJWT(cfg), middleware.AdminRequired(profiles, cfg))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Patch("/users", adminHandler.UpdateUser)
	admin.Get("/newsletter", newsletterHandler.AdminList)
	admin.Get("/news", newsHandler.AdminList)
	admin.Post("/news", newsHandler.Create)
	admin.Delete("/news", newsHandler.Delete)
	admin.Post("/news/refresh", newsHandler.Refresh)
}
