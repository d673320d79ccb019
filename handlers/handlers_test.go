package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/models"
)

var fixtureNow = time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC)

func TestBuildStats(t *testing.T) {
	stats := buildStats(dayTotals{Today: 1500, Yesterday: 1200, Orders: 3, Cost: 600, ActiveOrders: 1})
	assert.Equal(t, 1500.0, stats.TodaySales)
	assert.Equal(t, 25.0, stats.SalesChange)
	assert.Equal(t, 500.0, stats.AvgOrderValue)
	assert.Equal(t, 900.0, stats.NetProfit)
	assert.Equal(t, 1, stats.ActiveOrders)

	empty := buildStats(dayTotals{})
	assert.Zero(t, empty.AvgOrderValue)
	assert.Zero(t, empty.SalesChange)
}

func TestWithPercentages(t *testing.T) {
	rows := withPercentages([]models.OrderTypeBreakdown{
		{Type: "DINE_IN", Count: 3},
		{Type: "TAKEAWAY", Count: 1},
	})
	assert.Equal(t, 75.0, rows[0].Percentage)
	assert.Equal(t, 25.0, rows[1].Percentage)
}

func TestRankItems(t *testing.T) {
	items := rankItems([]models.TopItem{
		{Name: "b", Revenue: 10},
		{Name: "a", Revenue: 30},
		{Name: "c", Revenue: 20},
	}, 2)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "c", items[1].Name)
}

func TestFixtureSourceIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a, b := NewFixtureSource(fixtureNow, 7), NewFixtureSource(fixtureNow, 7)

	sa, err := a.Stats(ctx)
	require.NoError(t, err)
	sb, err := b.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
	assert.Positive(t, sa.TotalOrders)
	assert.Positive(t, sa.TodaySales)
}

func TestFixtureSourceShapes(t *testing.T) {
	ctx := context.Background()
	src := NewFixtureSource(fixtureNow, 1)

	chart, err := src.SalesChart(ctx)
	require.NoError(t, err)
	require.Len(t, chart, 7)
	assert.Equal(t, "2025-03-08", chart[0].Day)
	assert.Equal(t, "2025-03-14", chart[6].Day)

	stats, err := src.Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, chart[6].Total, stats.TodaySales, 0.01)

	breakdown, err := src.OrderBreakdown(ctx)
	require.NoError(t, err)
	var pct float64
	count := 0
	for _, b := range breakdown {
		pct += b.Percentage
		count += b.Count
	}
	assert.InDelta(t, 100, pct, 0.5)
	assert.Equal(t, stats.TotalOrders, count)

	items, err := src.TopItems(ctx, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 5)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Revenue, items[i].Revenue)
	}

	orders, err := src.RecentOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 10)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}
	assert.Regexp(t, `^ORD-2025-\d{4}$`, orders[0].ID)
	assert.False(t, orders[0].CreatedAt.After(fixtureNow))
}

func TestParseInsights(t *testing.T) {
	in, err := parseInsights("Sales are up on yesterday.\n\n- Restock prawns\n* Push takeaway promos\n")
	require.NoError(t, err)
	assert.Equal(t, "Sales are up on yesterday.", in.Summary)
	assert.Equal(t, []string{"Restock prawns", "Push takeaway promos"}, in.Highlights)

	_, err = parseInsights("  \n")
	assert.Error(t, err)
}

func TestMemoryUsers(t *testing.T) {
	users := NewMemoryUsers(4)
	acct, err := users.Add("Admin", "secret", "Owner", "admin")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", acct.Role)

	_, err = users.Add("admin", "other", "Dup", "ADMIN")
	assert.Error(t, err)

	_, err = users.Add("x", "y", "z", "janitor")
	assert.Error(t, err)

	found, err := users.FindByUsername(context.Background(), "ADMIN")
	require.NoError(t, err)
	assert.True(t, found.IsActive)

	users.Deactivate("admin")
	found, err = users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	_, err = users.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
