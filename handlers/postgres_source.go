package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"posadmin/models"
)

// Querier is the subset of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PostgresSource reads dashboard data and accounts from the retail schema
// (sales, sale_items and users).
type PostgresSource struct {
	db Querier
}

var (
	_ DashboardSource = (*PostgresSource)(nil)
	_ UserStore       = (*PostgresSource)(nil)
)

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var t dayTotals
	err := s.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE sale_date >= CURRENT_DATE), 0)::float8,
			COALESCE(SUM(total_amount) FILTER (WHERE sale_date < CURRENT_DATE), 0)::float8,
			COUNT(*) FILTER (WHERE sale_date >= CURRENT_DATE),
			COUNT(*) FILTER (WHERE sale_date >= CURRENT_DATE AND payment_status = 'PENDING')
		FROM sales
		WHERE sale_date >= CURRENT_DATE - INTERVAL '1 day'
	`).Scan(&t.Today, &t.Yesterday, &t.Orders, &t.ActiveOrders)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(si.original_price_at_sale * si.quantity_sold), 0)::float8
		FROM sales s
		JOIN sale_items si ON s.id = si.sale_id
		WHERE s.sale_date >= CURRENT_DATE
	`).Scan(&t.Cost)
	if err != nil {
		return nil, fmt.Errorf("cost of sales: %w", err)
	}
	return buildStats(t), nil
}

func (s *PostgresSource) SalesChart(ctx context.Context) ([]models.SalesPoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT to_char(d.day, 'YYYY-MM-DD'), COALESCE(SUM(s.total_amount), 0)::float8
		FROM generate_series(CURRENT_DATE - INTERVAL '6 days', CURRENT_DATE, INTERVAL '1 day') AS d(day)
		LEFT JOIN sales s ON s.sale_date >= d.day AND s.sale_date < d.day + INTERVAL '1 day'
		GROUP BY d.day
		ORDER BY d.day
	`)
	if err != nil {
		return nil, fmt.Errorf("sales chart: %w", err)
	}
	defer rows.Close()

	var points []models.SalesPoint
	for rows.Next() {
		var p models.SalesPoint
		if err := rows.Scan(&p.Day, &p.Total); err != nil {
			return nil, fmt.Errorf("scan sales point: %w", err)
		}
		p.Total = round(p.Total, 2)
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *PostgresSource) OrderBreakdown(ctx context.Context) ([]models.OrderTypeBreakdown, error) {
	rows, err := s.db.Query(ctx, `
		SELECT COALESCE(order_type, 'DINE_IN'), COUNT(*), COALESCE(SUM(total_amount), 0)::float8
		FROM sales
		WHERE sale_date >= CURRENT_DATE
		GROUP BY 1
		ORDER BY 2 DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("order breakdown: %w", err)
	}
	defer rows.Close()

	var out []models.OrderTypeBreakdown
	for rows.Next() {
		var b models.OrderTypeBreakdown
		if err := rows.Scan(&b.Type, &b.Count, &b.Total); err != nil {
			return nil, fmt.Errorf("scan order type: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return withPercentages(out), nil
}

func (s *PostgresSource) TopItems(ctx context.Context, limit int) ([]models.TopItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT si.item_name, COALESCE(SUM(si.quantity_sold), 0), COALESCE(SUM(si.subtotal), 0)::float8 AS revenue
		FROM sales s
		JOIN sale_items si ON s.id = si.sale_id
		WHERE s.sale_date >= CURRENT_DATE
		GROUP BY si.item_name
		ORDER BY revenue DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()

	var items []models.TopItem
	for rows.Next() {
		var it models.TopItem
		if err := rows.Scan(&it.Name, &it.Qty, &it.Revenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rankItems(items, limit), nil
}

func (s *PostgresSource) RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, COALESCE(payment_type, ''), total_amount::float8, sale_date
		FROM sales
		ORDER BY sale_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	defer rows.Close()

	var out []models.RecentOrder
	for rows.Next() {
		var o models.RecentOrder
		if err := rows.Scan(&o.ID, &o.PaymentMethod, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// FindByUsername looks an account up by email, which is the login name in
// the retail schema.
func (s *PostgresSource) FindByUsername(ctx context.Context, username string) (*Account, error) {
	var a Account
	err := s.db.QueryRow(ctx, `
		SELECT id::text, email, name, email, role, password_hash, is_active
		FROM users
		WHERE lower(email) = lower($1)
	`, username).Scan(&a.ID, &a.Username, &a.Name, &a.Email, &a.Role, &a.PasswordHash, &a.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &a, nil
}
