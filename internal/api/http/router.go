package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Orders         *handlers.OrdersHandler
	Dishes         *handlers.DishesHandler
	Restaurants    *handlers.RestaurantsHandler
	Addresses      *handlers.AddressesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authenticator runs on every /api
// route; role gates on the protected groups produce the 401/403.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	users := api.Group("/users", auth.RequireAuthenticated())
	users.Get("", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:userId", auth.RequireRole(domain.RoleUser), cfg.Users.Get)
	users.Put("/:userId", auth.RequireRole(domain.RoleUser), cfg.Users.Update)
	users.Delete("/:userId", auth.RequireRole(domain.RoleUser), cfg.Users.Delete)

	orders := api.Group("/orders", auth.RequireRole(domain.RoleUser))
	orders.Post("", cfg.Orders.Create)
	orders.Get("", cfg.Orders.List)
	orders.Get("/:orderId", cfg.Orders.Get)
	orders.Post("/:orderId/cancel", cfg.Orders.Cancel)
	orders.Post("/:orderId/complete", auth.RequireRole(domain.RoleAdmin), cfg.Orders.Complete)
	orders.Delete("/:orderId", auth.RequireRole(domain.RoleAdmin), cfg.Orders.Delete)

	restaurants := api.Group("/restaurants", auth.RequireRole(domain.RoleUser))
	restaurants.Get("", cfg.Restaurants.List)
	restaurants.Get("/:restaurantId", cfg.Restaurants.Get)
	restaurants.Get("/:restaurantId/menu", cfg.Restaurants.Menu)
	restaurants.Post("", auth.RequireRole(domain.RoleAdmin), cfg.Restaurants.Create)
	restaurants.Put("/:restaurantId", auth.RequireRole(domain.RoleAdmin), cfg.Restaurants.Update)
	restaurants.Delete("/:restaurantId", auth.RequireRole(domain.RoleAdmin), cfg.Restaurants.Delete)

	dishes := api.Group("/dishes", auth.RequireRole(domain.RoleUser))
	dishes.Get("/:dishId", cfg.Dishes.Get)
	dishes.Post("", auth.RequireRole(domain.RoleAdmin), cfg.Dishes.Create)
	dishes.Put("/:dishId", auth.RequireRole(domain.RoleAdmin), cfg.Dishes.Update)
	dishes.Delete("/:dishId", auth.RequireRole(domain.RoleAdmin), cfg.Dishes.Delete)

	addresses := api.Group("/addresses", auth.RequireRole(domain.RoleUser))
	addresses.Post("", cfg.Addresses.Create)
	addresses.Get("", cfg.Addresses.List)
	addresses.Get("/:addressId", cfg.Addresses.Get)
	addresses.Put("/:addressId", cfg.Addresses.Update)
	addresses.Delete("/:addressId", cfg.Addresses.Delete)
}
