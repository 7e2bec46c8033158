package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modatienda/boutique_api/internal/models"
)

func TestComputeKPIs(t *testing.T) {
	sales := []models.Sale{
		{Total: 120000},
		{Total: 45000},
		{Total: 80000},
	}
	products := []models.Product{
		{Quantity: 20, MonthlyRotation: 4.5},
		{Quantity: 3, MonthlyRotation: 7.2},
		{Quantity: 9, MonthlyRotation: 1.0},
	}

	kpis := ComputeKPIs(sales, products, 10)

	assert.Equal(t, int64(245000), kpis.TotalSales)
	assert.Equal(t, 3, kpis.SaleCount)
	assert.Equal(t, 32, kpis.TotalStock)
	assert.Equal(t, 2, kpis.LowStockCount) // quantities 3 and 9 are below 10
	assert.Equal(t, 3, kpis.ProductCount)
	assert.Equal(t, 4.23, kpis.AvgRotation) // (4.5+7.2+1.0)/3 rounded to 2dp
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpis := ComputeKPIs(nil, nil, 10)

	assert.Equal(t, int64(0), kpis.TotalSales)
	assert.Equal(t, 0, kpis.SaleCount)
	assert.Equal(t, 0.0, kpis.AvgRotation)
}

func TestSalesByCategory(t *testing.T) {
	sales := []models.Sale{
		{
			LineItems: []models.SaleLineItem{
				{Quantity: 2, Subtotal: 40000, Product: &models.Product{Category: "camisas"}},
				{Quantity: 1, Subtotal: 60000, Product: &models.Product{Category: "pantalones"}},
			},
		},
		{
			LineItems: []models.SaleLineItem{
				{Quantity: 3, Subtotal: 75000, Product: &models.Product{Category: "camisas"}},
				{Quantity: 1, Subtotal: 15000, Product: nil}, // snapshot missing
			},
		},
	}

	groups := SalesByCategory(sales)

	assert.Equal(t, []models.GroupTotal{
		{Name: "camisas", Total: 115000, Quantity: 5},
		{Name: "pantalones", Total: 60000, Quantity: 1},
		{Name: "sin categoria", Total: 15000, Quantity: 1},
	}, groups)
}

func TestSalesByGender_EmptyAttributeFallsBack(t *testing.T) {
	sales := []models.Sale{
		{
			LineItems: []models.SaleLineItem{
				{Quantity: 1, Subtotal: 30000, Product: &models.Product{Gender: models.GenderWomen}},
				{Quantity: 2, Subtotal: 50000, Product: &models.Product{Gender: ""}},
			},
		},
	}

	groups := SalesByGender(sales)

	assert.Equal(t, []models.GroupTotal{
		{Name: "mujer", Total: 30000, Quantity: 1},
		{Name: "sin genero", Total: 50000, Quantity: 2},
	}, groups)
}

func TestBucketSalesByMonth(t *testing.T) {
	sales := []models.Sale{
		{Total: 50000, SoldAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{Total: 30000, SoldAt: time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)},
		{Total: 20000, SoldAt: time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC)},
	}

	buckets := BucketSalesByMonth(sales)

	assert.Equal(t, []models.MonthBucket{
		{Month: "2026-01", Total: 30000, Count: 1},
		{Month: "2026-03", Total: 70000, Count: 2},
	}, buckets)
}

func TestBucketSalesByMonth_Empty(t *testing.T) {
	assert.Empty(t, BucketSalesByMonth(nil))
}
