package models

import (
	"encoding/json"
	"time"
)

// DashboardStats holds the headline numbers for today.
//
// The dashboard types decode amounts, counts and ids leniently: see Amount,
// Count and ID.
type DashboardStats struct {
	TodaySales    float64 `json:"todaySales"`
	SalesChange   float64 `json:"salesChange"`
	TotalOrders   int     `json:"totalOrders"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	NetProfit     float64 `json:"netProfit"`
	ActiveOrders  int     `json:"activeOrders"`
}

// SalesPoint is one day of the 7-day sales series.
type SalesPoint struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

// OrderTypeBreakdown is the share of orders of one type (dine-in, takeaway, ...).
type OrderTypeBreakdown struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
}

// TopItem is a best seller; the rank is its position in the list.
type TopItem struct {
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Revenue float64 `json:"revenue"`
}

// RecentOrder is an entry of the recent orders list, most recent first.
type RecentOrder struct {
	ID            string    `json:"id"`
	PaymentMethod string    `json:"paymentMethod"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DashboardSnapshot is the aggregate published after a successful fetch cycle.
type DashboardSnapshot struct {
	Stats          DashboardStats       `json:"stats"`
	SalesChart     []SalesPoint         `json:"salesChart"`
	OrderBreakdown []OrderTypeBreakdown `json:"orderBreakdown"`
	TopItems       []TopItem            `json:"topItems"`
	RecentOrders   []RecentOrder        `json:"recentOrders"`
	FetchedAt      time.Time            `json:"fetchedAt"`
}

// Insights is the AI generated summary of the current dashboard.
type Insights struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
}

func (s *DashboardStats) UnmarshalJSON(data []byte) error {
	var raw struct {
		TodaySales    Amount `json:"todaySales"`
		SalesChange   Amount `json:"salesChange"`
		TotalOrders   Count  `json:"totalOrders"`
		AvgOrderValue Amount `json:"avgOrderValue"`
		NetProfit     Amount `json:"netProfit"`
		ActiveOrders  Count  `json:"activeOrders"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = DashboardStats{
		TodaySales:    float64(raw.TodaySales),
		SalesChange:   float64(raw.SalesChange),
		TotalOrders:   int(raw.TotalOrders),
		AvgOrderValue: float64(raw.AvgOrderValue),
		NetProfit:     float64(raw.NetProfit),
		ActiveOrders:  int(raw.ActiveOrders),
	}
	return nil
}

func (p *SalesPoint) UnmarshalJSON(data []byte) error {
	type plain SalesPoint
	var raw struct {
		plain
		Total Amount `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = SalesPoint(raw.plain)
	p.Total = float64(raw.Total)
	return nil
}

func (b *OrderTypeBreakdown) UnmarshalJSON(data []byte) error {
	type plain OrderTypeBreakdown
	var raw struct {
		plain
		Percentage Amount `json:"percentage"`
		Count      Count  `json:"count"`
		Total      Amount `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = OrderTypeBreakdown(raw.plain)
	b.Percentage = float64(raw.Percentage)
	b.Count = int(raw.Count)
	b.Total = float64(raw.Total)
	return nil
}

func (it *TopItem) UnmarshalJSON(data []byte) error {
	type plain TopItem
	var raw struct {
		plain
		Qty     Count  `json:"qty"`
		Revenue Amount `json:"revenue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = TopItem(raw.plain)
	it.Qty = int(raw.Qty)
	it.Revenue = float64(raw.Revenue)
	return nil
}

func (o *RecentOrder) UnmarshalJSON(data []byte) error {
	type plain RecentOrder
	var raw struct {
		plain
		ID    ID     `json:"id"`
		Total Amount `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = RecentOrder(raw.plain)
	o.ID = string(raw.ID)
	o.Total = float64(raw.Total)
	return nil
}
