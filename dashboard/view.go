package dashboard

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"posadmin/models"
)

// MinChartScale keeps the chart scale stable when every value is small.
const MinChartScale = 100.0

// CurrencyPrefix is prepended to every formatted amount.
const CurrencyPrefix = "Rs. "

// MaxChartValue returns the chart scale: the largest total, but never less
// than MinChartScale.
func MaxChartValue(points []models.SalesPoint) float64 {
	scale := MinChartScale
	for _, p := range points {
		if p.Total > scale {
			scale = p.Total
		}
	}
	return scale
}

// BarFraction returns value/scale in [0,1]. A non-positive scale yields 0.
func BarFraction(value, scale float64) float64 {
	if scale <= 0 || math.IsNaN(value) || value <= 0 {
		return 0
	}
	return math.Min(value/scale, 1)
}

// LatestChartPoint returns the last point of the series.
func LatestChartPoint(points []models.SalesPoint) (models.SalesPoint, bool) {
	if len(points) == 0 {
		return models.SalesPoint{}, false
	}
	return points[len(points)-1], true
}

// FormatCurrency renders an amount with two decimals and thousands
// separators, e.g. "Rs. 1,234.50".
func FormatCurrency(amount float64) string {
	return CurrencyPrefix + humanize.FormatFloat("#,###.##", amount)
}

// FormatTime renders the local hour and minute on a 12-hour clock.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Local().Format("03:04 PM")
}

// FormatChartDate renders a series day as "Jan 2". Days that cannot be
// parsed are returned unchanged.
func FormatChartDate(day string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, day); err == nil {
			return t.Format("Jan 2")
		}
	}
	return day
}

// SalesTrend returns the arrow and magnitude shown next to today's sales.
func SalesTrend(change float64) (arrow string, pct float64) {
	if change >= 0 {
		return "↑", change
	}
	return "↓", -change
}

// OrderAge describes how long ago an order was placed.
func OrderAge(created, now time.Time) string {
	if created.IsZero() {
		return ""
	}
	return humanize.RelTime(created, now, "ago", "from now")
}
