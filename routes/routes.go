package routes

import (
	"vendaboard/handlers"
	"vendaboard/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", handlers.HandleHealth)
	app.Get("/version", handlers.HandleVersion)

	api := app.Group("/api/v1")

	// --- Dashboard Routes ---
	dashboard := api.Group("/dashboard", middleware.Authenticate, middleware.CheckRole("admin", "gestor", "usuario"))

	// Revenue forecast
	dashboard.Get("/companies/:companyId/revenue-forecast", h.HandleRevenueForecast)

	// Purchase projections
	projection := dashboard.Group("/groups/:groupId/purchase-projection")
	projection.Get("/raw-materials", h.HandleRawMaterialProjection)
	projection.Get("/resale", h.HandleResaleProjection)
}
