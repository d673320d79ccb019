package dashboard_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/dashboard"
	"posadmin/models"
)

func TestMaxChartValue(t *testing.T) {
	points := []models.SalesPoint{{Day: "2024-01-01", Total: 50}, {Day: "2024-01-02", Total: 150}}
	assert.Equal(t, 150.0, dashboard.MaxChartValue(points))

	small := []models.SalesPoint{{Day: "2024-01-01", Total: 10}, {Day: "2024-01-02", Total: 99}}
	assert.Equal(t, 100.0, dashboard.MaxChartValue(small))
	assert.Equal(t, 100.0, dashboard.MaxChartValue(nil))
}

func TestBarFraction(t *testing.T) {
	assert.Equal(t, 0.5, dashboard.BarFraction(50, 100))
	assert.Equal(t, 1.0, dashboard.BarFraction(150, 150))
	assert.Equal(t, 0.0, dashboard.BarFraction(50, 0))
	assert.Equal(t, 0.0, dashboard.BarFraction(0, 0))
	assert.Equal(t, 1.0, dashboard.BarFraction(200, 100))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "Rs. 1,234.50", dashboard.FormatCurrency(1234.5))
	assert.Equal(t, "Rs. 0.00", dashboard.FormatCurrency(0))
	assert.Equal(t, "Rs. 1,000,000.00", dashboard.FormatCurrency(1000000))
	assert.Equal(t, "Rs. 99.99", dashboard.FormatCurrency(99.99))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "03:05 PM", dashboard.FormatTime(time.Date(2024, 1, 2, 15, 5, 0, 0, time.Local)))
	assert.Equal(t, "09:30 AM", dashboard.FormatTime(time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local)))
	assert.Equal(t, "--:--", dashboard.FormatTime(time.Time{}))
}

func TestOrderAge(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "5 minutes ago", dashboard.OrderAge(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3 hours ago", dashboard.OrderAge(now.Add(-3*time.Hour), now))
	assert.Equal(t, "", dashboard.OrderAge(time.Time{}, now))
}

func TestFormatChartDate(t *testing.T) {
	assert.Equal(t, "Jan 2", dashboard.FormatChartDate("2024-01-02"))
	assert.Equal(t, "Mar 15", dashboard.FormatChartDate("2024-03-15T00:00:00Z"))
	assert.Equal(t, "yesterday", dashboard.FormatChartDate("yesterday"))
}

func TestSalesTrend(t *testing.T) {
	arrow, pct := dashboard.SalesTrend(-12.5)
	assert.Equal(t, "↓", arrow)
	assert.Equal(t, 12.5, pct)

	arrow, pct = dashboard.SalesTrend(0)
	assert.Equal(t, "↑", arrow)
	assert.Equal(t, 0.0, pct)
}

func TestRender(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 0, 0, 0, time.Local)
	snap := &models.DashboardSnapshot{
		Stats:      models.DashboardStats{TodaySales: 1234.5, SalesChange: 8, TotalOrders: 12},
		SalesChart: []models.SalesPoint{{Day: "2024-01-01", Total: 50}, {Day: "2024-01-02", Total: 150}},
		TopItems:   []models.TopItem{{Name: "Kottu", Qty: 4, Revenue: 300}},
		RecentOrders: []models.RecentOrder{
			{ID: "o-1", PaymentMethod: "CARD", Total: 150, CreatedAt: now.Add(-5 * time.Minute)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, dashboard.Render(&buf, snap, now))
	out := buf.String()

	assert.Contains(t, out, "Rs. 1,234.50")
	assert.Contains(t, out, "No orders")
	assert.Contains(t, out, "Jan 2")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "02:55 PM")
	assert.Contains(t, out, "5 minutes ago")
}

func TestFrameWithoutData(t *testing.T) {
	var buf bytes.Buffer
	r := dashboard.NewRenderer(&buf)
	require.NoError(t, r.Frame(dashboard.Errored, nil))
	assert.Contains(t, buf.String(), "Failed to load dashboard data")
}
