package mirror

import (
	"testing"
	"time"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name string, stock, reorder int) model.Product {
	p := model.Product{Name: name, StockQuantity: stock, ReorderLevel: reorder, Price: decimal.NewFromInt(1)}
	p.ID = uuid.New()
	return p
}

func newSale(total int64, at time.Time) model.Sale {
	s := model.Sale{TotalAmount: decimal.NewFromInt(total), SalesDate: at, PaymentStatus: model.StatusPending}
	s.ID = uuid.New()
	return s
}

func TestBindDiscardsOtherOwnersData(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Bind("user_a"), "first bind has nothing to discard")
	s.AddProduct(newProduct("A", 1, 0))
	assert.False(t, s.Bind("user_a"))
	assert.Len(t, s.Products(), 1)

	assert.True(t, s.Bind("user_b"))
	assert.Empty(t, s.Products())
	assert.Equal(t, "user_b", s.Owner())

	s.Reset()
	assert.Equal(t, "", s.Owner())
}

func TestProductPatches(t *testing.T) {
	s := NewStore()
	a := newProduct("A", 5, 10)
	b := newProduct("B", 20, 1)
	s.SetProducts([]model.Product{a, b})

	merged := a
	merged.StockQuantity = 12
	s.AddProduct(merged)
	require.Len(t, s.Products(), 2, "add of a known id replaces it")

	got, ok := s.Product(a.ID)
	require.True(t, ok)
	assert.Equal(t, 12, got.StockQuantity)

	renamed := b
	renamed.Name = "B2"
	s.UpdateProduct(renamed)
	s.UpdateProduct(newProduct("ghost", 1, 1))
	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "B2", products[1].Name)

	s.UpdateProductQuantity(a.ID, -5)
	got, _ = s.Product(a.ID)
	assert.Equal(t, 7, got.StockQuantity)

	s.UpdateProductQuantity(a.ID, -100)
	got, _ = s.Product(a.ID)
	assert.Equal(t, 0, got.StockQuantity)

	s.DeleteProduct(a.ID)
	_, ok = s.Product(a.ID)
	assert.False(t, ok)
	assert.Len(t, s.Products(), 1)
}

func TestGettersReturnCopies(t *testing.T) {
	s := NewStore()
	s.SetProducts([]model.Product{newProduct("A", 1, 0)})

	products := s.Products()
	products[0].Name = "changed"

	assert.Equal(t, "A", s.Products()[0].Name)
}

func TestSalePatchesAndDashboard(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.SetProducts([]model.Product{newProduct("A", 5, 10), newProduct("B", 50, 10)})

	old := newSale(100, now.AddDate(0, 0, -2))
	s.SetSales([]model.Sale{old})
	first := newSale(30, now.Add(-2*time.Hour))
	second := newSale(45, now.Add(-time.Hour))
	s.AddSale(first)
	s.AddSale(second)

	paid := first
	paid.AmountPaid = decimal.NewFromInt(30)
	paid.PaymentStatus = model.StatusPaid
	s.UpdateSale(paid)

	summary := s.Dashboard(now)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 2, summary.TodaysSalesCount)
	assert.True(t, summary.DailyRevenue.Equal(decimal.NewFromInt(75)))
	require.Len(t, summary.RecentSales, 3)
	assert.Equal(t, second.ID, summary.RecentSales[0].ID)
	assert.Equal(t, model.StatusPaid, summary.RecentSales[1].PaymentStatus)

	s.DeleteSale(second.ID)
	summary = s.Dashboard(now)
	assert.Equal(t, 1, summary.TodaysSalesCount)
	assert.True(t, summary.DailyRevenue.Equal(decimal.NewFromInt(30)))
	assert.Len(t, s.Sales(), 2)
}
