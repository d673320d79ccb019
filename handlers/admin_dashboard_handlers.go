package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"posadmin/models"
)

// HandleGetDashboardStats handles GET /api/admin/dashboard/stats.
func (h *Handler) HandleGetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.Source.Stats(c.Context())
	if err != nil {
		log.Printf("Error calculating dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to calculate dashboard stats"})
	}
	return c.JSON(stats)
}

// HandleGetSalesChart handles GET /api/admin/dashboard/sales-chart.
func (h *Handler) HandleGetSalesChart(c *fiber.Ctx) error {
	points, err := h.Source.SalesChart(c.Context())
	if err != nil {
		log.Printf("Error building sales chart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to build sales chart"})
	}
	return c.JSON(nonNil(points))
}

// HandleGetOrderBreakdown handles GET /api/admin/dashboard/order-breakdown.
func (h *Handler) HandleGetOrderBreakdown(c *fiber.Ctx) error {
	breakdown, err := h.Source.OrderBreakdown(c.Context())
	if err != nil {
		log.Printf("Error building order breakdown: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to build order breakdown"})
	}
	return c.JSON(nonNil(breakdown))
}

// HandleGetTopItems handles GET /api/admin/dashboard/top-items.
func (h *Handler) HandleGetTopItems(c *fiber.Ctx) error {
	items, err := h.Source.TopItems(c.Context(), queryLimit(c, topItemsLimit))
	if err != nil {
		log.Printf("Error ranking top items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to rank top items"})
	}
	return c.JSON(nonNil(items))
}

// HandleGetRecentOrders handles GET /api/admin/dashboard/recent-orders.
func (h *Handler) HandleGetRecentOrders(c *fiber.Ctx) error {
	orders, err := h.Source.RecentOrders(c.Context(), queryLimit(c, recentOrdersLimit))
	if err != nil {
		log.Printf("Error listing recent orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list recent orders"})
	}
	return c.JSON(nonNil(orders))
}

// HandleGetInsights handles GET /api/admin/dashboard/insights.
func (h *Handler) HandleGetInsights(c *fiber.Ctx) error {
	if h.Insighter == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "Insights are not configured"})
	}

	snap, err := h.snapshot(c.Context())
	if err != nil {
		log.Printf("Error collecting dashboard data for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to collect dashboard data"})
	}

	insights, err := h.Insighter.Insights(c.Context(), snap)
	if err != nil {
		log.Printf("Error generating insights: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"status": "error", "message": "Failed to generate insights"})
	}
	return c.JSON(insights)
}

func (h *Handler) snapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	snap := &models.DashboardSnapshot{FetchedAt: time.Now()}

	stats, err := h.Source.Stats(ctx)
	if err != nil {
		return nil, err
	}
	snap.Stats = *stats

	if snap.SalesChart, err = h.Source.SalesChart(ctx); err != nil {
		return nil, err
	}
	if snap.OrderBreakdown, err = h.Source.OrderBreakdown(ctx); err != nil {
		return nil, err
	}
	if snap.TopItems, err = h.Source.TopItems(ctx, topItemsLimit); err != nil {
		return nil, err
	}
	if snap.RecentOrders, err = h.Source.RecentOrders(ctx, recentOrdersLimit); err != nil {
		return nil, err
	}
	return snap, nil
}

// queryLimit reads ?limit, falling back to def when it is absent or not
// positive.
func queryLimit(c *fiber.Ctx, def int) int {
	if n := c.QueryInt("limit", def); n > 0 {
		return n
	}
	return def
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
