package routes

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"posadmin/handlers"
	"posadmin/middleware"
)

// SetupRoutes defines all the routes for the dev backend.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/version", handleVersion)

	api := app.Group("/api")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", h.HandleLogin)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWT(h.Secret), middleware.AdminRequired)

	// Dashboard
	dashboard := admin.Group("/dashboard")
	dashboard.Get("/stats", h.HandleGetDashboardStats)
	dashboard.Get("/sales-chart", h.HandleGetSalesChart)
	dashboard.Get("/order-breakdown", h.HandleGetOrderBreakdown)
	dashboard.Get("/top-items", h.HandleGetTopItems)
	dashboard.Get("/recent-orders", h.HandleGetRecentOrders)
	dashboard.Get("/insights", h.HandleGetInsights)
}

func handleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "No build info available"})
	}
	return c.JSON(fiber.Map{"go": info.GoVersion, "module": info.Main.Path, "version": info.Main.Version})
}
