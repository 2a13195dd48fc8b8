package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-order-api/internal/api/http/handlers"
	"github.com/spec-kit/service-order-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	ServiceOrders  *handlers.ServiceOrdersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Registration and login are the only
// unauthenticated resource endpoints; everything else sits behind the bearer
// token gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle)
	projects.Get("/", cfg.Projects.List)
	projects.Post("/", cfg.Projects.Create)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Put("/:id", cfg.Projects.Update)
	projects.Delete("/:id", cfg.Projects.Delete)

	orders := app.Group("/service-orders", cfg.AuthMiddleware.Handle)
	orders.Get("/", cfg.ServiceOrders.List)
	orders.Post("/", cfg.ServiceOrders.Create)
	orders.Get("/:id", cfg.ServiceOrders.Get)
	orders.Put("/:id", cfg.ServiceOrders.Update)
	orders.Delete("/:id", cfg.ServiceOrders.Delete)
	orders.Patch("/:id/approve", cfg.ServiceOrders.ToggleApproval)
}
