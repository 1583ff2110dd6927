package service

import (
	"context"
	"testing"
	"time"

	"go-inventory-pos/internal/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsUsesLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := testdb.SeedProduct(t, f.db, owner, "A", "10", 100, 5)
	testdb.SeedProduct(t, f.db, owner, "B", "10", 1, 5)
	testdb.SeedProduct(t, f.db, stranger, "C", "10", 0, 5)

	_, err := f.sales.CreateSale(ctx, owner, saleRequest(line(a.ID, 3)))
	require.NoError(t, err)

	stats, err := f.dashboard.GetStats(ctx, owner, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, "B", stats.LowStock[0].Name)
	assert.Equal(t, 1, stats.TodaysSalesCount)
	assert.True(t, stats.DailyRevenue.Equal(decimal.NewFromInt(30)))
	assert.Len(t, stats.RecentSales, 1)

	// 10:30 UTC is 00:30 of the next day at UTC+14
	kiritimati := time.FixedZone("LINT", 14*3600)
	stats, err = f.dashboard.GetStats(ctx, owner, kiritimati)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TodaysSalesCount)

	dash := f.dashboard.(*dashboardService)
	dash.now = func() time.Time { return f.now.Add(14 * time.Hour) }
	stats, err = f.dashboard.GetStats(ctx, owner, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TodaysSalesCount)
	assert.True(t, stats.DailyRevenue.IsZero())
	assert.Len(t, stats.RecentSales, 1)
}
