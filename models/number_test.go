package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/models"
)

func TestAmountAcceptsNumbersAndDecimalStrings(t *testing.T) {
	cases := []struct {
		in   string
		want models.Amount
	}{
		{`1234.5`, 1234.5},
		{`"1234.50"`, 1234.5},
		{`" 12 "`, 12},
		{`""`, 0},
		{`null`, 0},
	}
	for _, c := range cases {
		var a models.Amount
		require.NoError(t, json.Unmarshal([]byte(c.in), &a), c.in)
		assert.Equal(t, c.want, a, c.in)
	}

	var a models.Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var id models.ID
	require.NoError(t, json.Unmarshal([]byte(`42`), &id))
	assert.Equal(t, models.ID("42"), id)

	require.NoError(t, json.Unmarshal([]byte(`"ORD-2025-0001"`), &id))
	assert.Equal(t, models.ID("ORD-2025-0001"), id)

	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestDashboardTypesDecodeLeniently(t *testing.T) {
	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(`{"todaySales":"1234.50","salesChange":-3.5,"totalOrders":"12","avgOrderValue":102.875,"netProfit":"400","activeOrders":2}`), &stats))
	assert.Equal(t, models.DashboardStats{
		TodaySales: 1234.5, SalesChange: -3.5, TotalOrders: 12,
		AvgOrderValue: 102.875, NetProfit: 400, ActiveOrders: 2,
	}, stats)

	var orders []models.RecentOrder
	require.NoError(t, json.Unmarshal([]byte(`[{"id":42,"paymentMethod":"CASH","total":"1234.50","createdAt":"2025-03-14T10:00:00Z"}]`), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "42", orders[0].ID)
	assert.Equal(t, "CASH", orders[0].PaymentMethod)
	assert.Equal(t, 1234.5, orders[0].Total)
	assert.Equal(t, 2025, orders[0].CreatedAt.Year())

	var items []models.TopItem
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"Kottu","qty":"4","revenue":"5800.00"}]`), &items))
	assert.Equal(t, []models.TopItem{{Name: "Kottu", Qty: 4, Revenue: 5800}}, items)

	var breakdown []models.OrderTypeBreakdown
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"DINE_IN","percentage":"75.0","count":3,"total":"450"}]`), &breakdown))
	assert.Equal(t, []models.OrderTypeBreakdown{{Type: "DINE_IN", Percentage: 75, Count: 3, Total: 450}}, breakdown)

	var points []models.SalesPoint
	require.NoError(t, json.Unmarshal([]byte(`[{"day":"2025-03-14","total":"99.90"}]`), &points))
	assert.Equal(t, []models.SalesPoint{{Day: "2025-03-14", Total: 99.9}}, points)
}

func TestLoginResponseAcceptsNumericIDs(t *testing.T) {
	var flat models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"token":"t","role":"ADMIN","id":7,"name":"Owner"}`), &flat))
	sess := flat.Session()
	assert.Equal(t, "t", sess.Token)
	assert.Equal(t, "7", sess.ID)
	assert.Equal(t, "Owner", sess.Name)

	var env models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"accessToken":"t","user":{"id":9,"role":"CASHIER"}}`), &env))
	sess = env.Session()
	assert.Equal(t, "9", sess.ID)
	assert.Equal(t, "CASHIER", sess.Role)
}
