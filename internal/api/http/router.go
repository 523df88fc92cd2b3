package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Places         *handlers.PlacesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadDir      string
}

// RegisterRoutes wires HTTP routes. Read routes are open; every
// place-mutating route sits behind the authorization gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Static("/uploads/images", cfg.UploadDir)

	api := app.Group("/api")

	places := api.Group("/places")
	places.Get("/users/:uid", cfg.Places.ListByUser)
	places.Get("/:pid", cfg.Places.GetPlace)

	protected := places.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/", cfg.Places.CreatePlace)
	protected.Patch("/:pid", cfg.Places.UpdatePlace)
	protected.Delete("/:pid", cfg.Places.DeletePlace)

	users := api.Group("/users")
	users.Get("/", cfg.Users.ListUsers)
	users.Post("/signup", cfg.Users.Signup)
	users.Post("/login", cfg.Users.Login)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("this route", nil)
	})
}
