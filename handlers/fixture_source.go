package handlers

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"posadmin/models"
	"posadmin/utils"
)

type menuItem struct {
	Name  string
	Price float64
	Cost  float64
}

var fixtureMenu = []menuItem{
	{"Chicken Kottu", 1450, 820},
	{"Egg Fried Rice", 1100, 560},
	{"Devilled Prawns", 2650, 1640},
	{"Vegetable Noodles", 950, 430},
	{"Lamprais", 1800, 1050},
	{"Iced Milo", 450, 180},
	{"Watalappan", 600, 240},
	{"Fish Curry & Rice", 1250, 700},
}

var (
	fixtureOrderTypes = []string{"DINE_IN", "TAKEAWAY", "DELIVERY"}
	fixturePayments   = []string{"CASH", "CARD", "ONLINE"}
)

type fixtureLine struct {
	Item menuItem
	Qty  int
}

type fixtureOrder struct {
	ID        string
	Type      string
	Payment   string
	CreatedAt time.Time
	Lines     []fixtureLine
	Total     float64
	Cost      float64
	Active    bool
}

// FixtureSource serves a deterministic week of generated orders.
type FixtureSource struct {
	mu     sync.RWMutex
	now    time.Time
	orders []fixtureOrder
}

var _ DashboardSource = (*FixtureSource)(nil)

// NewFixtureSource generates seven days of orders ending at now. The same
// seed and now always produce the same data.
func NewFixtureSource(now time.Time, seed int64) *FixtureSource {
	rng := rand.New(rand.NewSource(seed))
	start := startOfDay(now).AddDate(0, 0, -6)

	var orders []fixtureOrder
	last := ""
	for d := 0; d < 7; d++ {
		day := start.AddDate(0, 0, d)
		n := 8 + rng.Intn(13)
		for i := 0; i < n; i++ {
			created := day.Add(time.Duration(10*60+rng.Intn(12*60)) * time.Minute)
			if created.After(now) {
				continue
			}
			last = utils.NextOrderNumber(last, created)
			o := fixtureOrder{
				ID:        last,
				Type:      fixtureOrderTypes[rng.Intn(len(fixtureOrderTypes))],
				Payment:   fixturePayments[rng.Intn(len(fixturePayments))],
				CreatedAt: created,
			}
			for l := 0; l < 1+rng.Intn(3); l++ {
				line := fixtureLine{Item: fixtureMenu[rng.Intn(len(fixtureMenu))], Qty: 1 + rng.Intn(3)}
				o.Lines = append(o.Lines, line)
				o.Total += line.Item.Price * float64(line.Qty)
				o.Cost += line.Item.Cost * float64(line.Qty)
			}
			orders = append(orders, o)
		}
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	// The latest few orders of today are still being prepared.
	for i := len(orders) - 1; i >= 0 && i >= len(orders)-3; i-- {
		if sameDay(orders[i].CreatedAt, now) {
			orders[i].Active = true
		}
	}

	return &FixtureSource{now: now, orders: orders}
}

func (s *FixtureSource) Stats(context.Context) (*models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	yesterday := s.now.AddDate(0, 0, -1)
	var t dayTotals
	for _, o := range s.orders {
		switch {
		case sameDay(o.CreatedAt, s.now):
			t.Today += o.Total
			t.Cost += o.Cost
			t.Orders++
			if o.Active {
				t.ActiveOrders++
			}
		case sameDay(o.CreatedAt, yesterday):
			t.Yesterday += o.Total
		}
	}
	return buildStats(t), nil
}

func (s *FixtureSource) SalesChart(context.Context) ([]models.SalesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := startOfDay(s.now).AddDate(0, 0, -6)
	points := make([]models.SalesPoint, 7)
	for d := range points {
		points[d].Day = start.AddDate(0, 0, d).Format(time.DateOnly)
	}
	for _, o := range s.orders {
		d := int(startOfDay(o.CreatedAt).Sub(start).Hours() / 24)
		if d >= 0 && d < len(points) {
			points[d].Total += o.Total
		}
	}
	for d := range points {
		points[d].Total = round(points[d].Total, 2)
	}
	return points, nil
}

func (s *FixtureSource) OrderBreakdown(context.Context) ([]models.OrderTypeBreakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]int)
	var rows []models.OrderTypeBreakdown
	for _, o := range s.today() {
		i, ok := index[o.Type]
		if !ok {
			i = len(rows)
			index[o.Type] = i
			rows = append(rows, models.OrderTypeBreakdown{Type: o.Type})
		}
		rows[i].Count++
		rows[i].Total += o.Total
	}
	return withPercentages(rows), nil
}

func (s *FixtureSource) TopItems(_ context.Context, limit int) ([]models.TopItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := make(map[string]*models.TopItem)
	for _, o := range s.today() {
		for _, l := range o.Lines {
			it, ok := byName[l.Item.Name]
			if !ok {
				it = &models.TopItem{Name: l.Item.Name}
				byName[l.Item.Name] = it
			}
			it.Qty += l.Qty
			it.Revenue += l.Item.Price * float64(l.Qty)
		}
	}

	items := make([]models.TopItem, 0, len(byName))
	for _, it := range byName {
		items = append(items, *it)
	}
	return rankItems(items, limit), nil
}

func (s *FixtureSource) RecentOrders(_ context.Context, limit int) ([]models.RecentOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.RecentOrder
	for i := len(s.orders) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		o := s.orders[i]
		out = append(out, models.RecentOrder{
			ID:            o.ID,
			PaymentMethod: o.Payment,
			Total:         round(o.Total, 2),
			CreatedAt:     o.CreatedAt,
		})
	}
	return out, nil
}

// today returns the orders placed on the source's current day. Callers hold
// the read lock.
func (s *FixtureSource) today() []fixtureOrder {
	var out []fixtureOrder
	for _, o := range s.orders {
		if sameDay(o.CreatedAt, s.now) {
			out = append(out, o)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
