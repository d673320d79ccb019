// Package handlers implements the dev backend: a stand-in for the POS
// backend that serves the login endpoint and the admin dashboard data the
// console polls.
package handlers

import (
	"context"
	"time"

	"posadmin/models"
)

// DashboardSource produces the five dashboard data sets.
type DashboardSource interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	SalesChart(ctx context.Context) ([]models.SalesPoint, error)
	OrderBreakdown(ctx context.Context) ([]models.OrderTypeBreakdown, error)
	TopItems(ctx context.Context, limit int) ([]models.TopItem, error)
	RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error)
}

// Insighter summarises a dashboard snapshot in prose.
type Insighter interface {
	Insights(ctx context.Context, snap *models.DashboardSnapshot) (*models.Insights, error)
}

// Handler holds the collaborators of the dev backend routes.
type Handler struct {
	Users  UserStore
	Source DashboardSource
	Secret []byte
	// Insighter is optional; without it the insights route answers 503.
	Insighter Insighter
	// TokenTTL is how long issued tokens stay valid. Defaults to 72h.
	TokenTTL time.Duration
}

const (
	topItemsLimit     = 5
	recentOrdersLimit = 10
)
