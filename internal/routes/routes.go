package routes

import (
	"time"

	"github.com/agendalab/agenda-backend/internal/config"
	"github.com/agendalab/agenda-backend/internal/handlers"
	"github.com/agendalab/agenda-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	agendaHandler *handlers.AgendaHandler,
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

	// User — credential endpoints get a stricter limit: 10 req/min per IP
	user := api.Group("/user")
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	user.Post("/register", authLimiter, authHandler.Register)
	user.Post("/login", authLimiter, authHandler.Login)
	user.Post("/refresh", authLimiter, authHandler.Refresh)

	user.Get("/avatar/:file", userHandler.Avatar)

	user.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	user.Delete("/deactivate", middleware.JWTProtected(cfg), authHandler.Deactivate)
	user.Put("/update", middleware.JWTProtected(cfg), userHandler.UpdateProfile)
	user.Get("/profile/:id", middleware.JWTProtected(cfg), userHandler.Profile)
	user.Post("/avatar", middleware.JWTProtected(cfg), userHandler.UploadAvatar)

	// Agenda — everything requires a valid token
	agenda := api.Group("/agenda", middleware.JWTProtected(cfg))
	agenda.Post("/create", agendaHandler.Create)
	agenda.Get("/list", agendaHandler.List)
	agenda.Put("/update/:id", agendaHandler.Update)
	agenda.Delete("/delete/:id", agendaHandler.Delete)
	agenda.Get("/:id", agendaHandler.Get)
}
