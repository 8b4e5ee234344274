package routes

import (
	"time"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/handlers"
	"github.com/craftbase/account-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/password-reset/:email", authHandler.PasswordReset)
	auth.Post("/password-change", authHandler.PasswordChange)

	// Protected routes (JWT required) - apply middleware per route so the
	// guard never shadows the public auth surface
	api.Get("/profile", middleware.JWTProtected(cfg), profileHandler.Get)
	api.Put("/profile", middleware.JWTProtected(cfg), profileHandler.Update)
}
