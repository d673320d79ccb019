package handlers

import (
	"math"
	"sort"

	"posadmin/models"
)

// dayTotals are the sums a stats response is derived from.
type dayTotals struct {
	Today        float64
	Yesterday    float64
	Orders       int
	Cost         float64
	ActiveOrders int
}

func buildStats(t dayTotals) *models.DashboardStats {
	stats := &models.DashboardStats{
		TodaySales:   round(t.Today, 2),
		TotalOrders:  t.Orders,
		NetProfit:    round(t.Today-t.Cost, 2),
		ActiveOrders: t.ActiveOrders,
	}
	if t.Orders > 0 {
		stats.AvgOrderValue = round(t.Today/float64(t.Orders), 2)
	}
	if t.Yesterday > 0 {
		stats.SalesChange = round((t.Today-t.Yesterday)/t.Yesterday*100, 1)
	}
	return stats
}

// withPercentages fills in each type's share of the order count.
func withPercentages(rows []models.OrderTypeBreakdown) []models.OrderTypeBreakdown {
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	for i := range rows {
		if total > 0 {
			rows[i].Percentage = round(float64(rows[i].Count)/float64(total)*100, 1)
		}
		rows[i].Total = round(rows[i].Total, 2)
	}
	return rows
}

// rankItems orders items by revenue, highest first, and keeps limit of them.
func rankItems(items []models.TopItem, limit int) []models.TopItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].Name < items[j].Name
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
