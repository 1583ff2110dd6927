// Package dashboard derives the owner dashboard from product and sale
// collections. Nothing here touches the database; the same functions back the
// server stats endpoint and the client mirror.
package dashboard

import (
	"time"

	"go-inventory-pos/internal/model"

	"github.com/shopspring/decimal"
)

const RecentSalesLimit = 5

type Summary struct {
	LowStock         []model.Product `json:"lowStock"`
	LowStockCount    int             `json:"lowStockCount"`
	TodaysSales      []model.Sale    `json:"todaysSales"`
	TodaysSalesCount int             `json:"todaysSalesCount"`
	DailyRevenue     decimal.Decimal `json:"dailyRevenue"`
	RecentSales      []model.Sale    `json:"recentSales"`
	TotalProducts    int             `json:"totalProducts"`
}

// LowStock keeps products whose stock is at or below their reorder level
func LowStock(products []model.Product) []model.Product {
	low := make([]model.Product, 0)
	for i := range products {
		if products[i].IsLowStock() {
			low = append(low, products[i])
		}
	}
	return low
}

// SameDay compares calendar days in now's location
func SameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TodaysSales keeps sales whose salesDate falls on now's calendar day
func TodaysSales(sales []model.Sale, now time.Time) []model.Sale {
	today := make([]model.Sale, 0)
	for i := range sales {
		if SameDay(sales[i].SalesDate, now) {
			today = append(today, sales[i])
		}
	}
	return today
}

func Revenue(sales []model.Sale) decimal.Decimal {
	total := decimal.Zero
	for i := range sales {
		total = total.Add(sales[i].TotalAmount)
	}
	return total
}

// RecentSales returns the last n sales in insertion order, newest first
func RecentSales(sales []model.Sale, n int) []model.Sale {
	if n <= 0 {
		return []model.Sale{}
	}
	start := len(sales) - n
	if start < 0 {
		start = 0
	}
	recent := make([]model.Sale, 0, len(sales)-start)
	for i := len(sales) - 1; i >= start; i-- {
		recent = append(recent, sales[i])
	}
	return recent
}

// Summarize expects sales in insertion order
func Summarize(products []model.Product, sales []model.Sale, now time.Time) Summary {
	low := LowStock(products)
	today := TodaysSales(sales, now)
	return Summary{
		LowStock:         low,
		LowStockCount:    len(low),
		TodaysSales:      today,
		TodaysSalesCount: len(today),
		DailyRevenue:     Revenue(today),
		RecentSales:      RecentSales(sales, RecentSalesLimit),
		TotalProducts:    len(products),
	}
}
