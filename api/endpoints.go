package api

import (
	"context"

	"posadmin/models"
)

// Backend paths, relative to the base URL.
const (
	PathLogin          = "/auth/login"
	PathStats          = "/admin/dashboard/stats"
	PathSalesChart     = "/admin/dashboard/sales-chart"
	PathOrderBreakdown = "/admin/dashboard/order-breakdown"
	PathTopItems       = "/admin/dashboard/top-items"
	PathRecentOrders   = "/admin/dashboard/recent-orders"
	PathInsights       = "/admin/dashboard/insights"
)

// Login posts credentials and returns the raw login response.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.Post(ctx, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.Get(ctx, PathStats, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) SalesChart(ctx context.Context) ([]models.SalesPoint, error) {
	var points []models.SalesPoint
	if err := c.Get(ctx, PathSalesChart, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) OrderBreakdown(ctx context.Context) ([]models.OrderTypeBreakdown, error) {
	var breakdown []models.OrderTypeBreakdown
	if err := c.Get(ctx, PathOrderBreakdown, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

func (c *Client) TopItems(ctx context.Context) ([]models.TopItem, error) {
	var items []models.TopItem
	if err := c.Get(ctx, PathTopItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) RecentOrders(ctx context.Context) ([]models.RecentOrder, error) {
	var orders []models.RecentOrder
	if err := c.Get(ctx, PathRecentOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Insights fetches the AI summary of today's dashboard.
func (c *Client) Insights(ctx context.Context) (*models.Insights, error) {
	var insights models.Insights
	if err := c.Get(ctx, PathInsights, &insights); err != nil {
		return nil, err
	}
	return &insights, nil
}
