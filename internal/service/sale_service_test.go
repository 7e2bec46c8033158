package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

func TestSaleService_ProcessSale_HappyPath(t *testing.T) {
	product := &models.Product{ID: 7, Name: "Camisa", Price: 20000, Quantity: 10, MonthlySales: 3}
	products := newFakeProductStore(product)
	carts := newFakeCartStore(&models.CartItem{
		UserID:    "user-1",
		ProductID: 7,
		Quantity:  2,
		Product:   &models.Product{ID: 7, Price: 20000},
	})
	sales := newFakeSaleStore()
	audit := &fakeAuditLog{}
	svc := NewSaleService(sales, products, carts, audit, nil)

	sale, err := svc.Checkout("user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(40000), sale.Total)
	assert.NotEmpty(t, sale.SaleNumber)
	require.Len(t, sale.LineItems, 1)
	assert.Equal(t, int64(20000), sale.LineItems[0].UnitPrice)
	assert.Equal(t, int64(40000), sale.LineItems[0].Subtotal)
	assert.Equal(t, sale.ID, sale.LineItems[0].SaleID)

	// stock decremented and monthly sales incremented by the sold quantity
	assert.Equal(t, 8, products.stockUpdates[7])
	assert.Equal(t, 5, products.monthlySalesUpdates[7])

	// cart cleared
	items, err := carts.GetByUser("user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "sale", audit.entries[0].Type)
	assert.Contains(t, audit.entries[0].Message, sale.SaleNumber)
}

func TestSaleService_ProcessSale_EmptyCart(t *testing.T) {
	sales := newFakeSaleStore()
	svc := NewSaleService(sales, newFakeProductStore(), newFakeCartStore(), &fakeAuditLog{}, nil)

	_, err := svc.Checkout("user-1")
	assert.ErrorIs(t, err, utils.ErrEmptyCart)
	assert.Empty(t, sales.sales)
	assert.Empty(t, sales.lineItems)
}

func TestSaleService_ProcessSale_StockUpdateFailureKeepsSaleAndCart(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 20000, Quantity: 10})
	products.failStockUpdateFor = 7
	carts := newFakeCartStore(&models.CartItem{
		UserID:    "user-1",
		ProductID: 7,
		Quantity:  1,
		Product:   &models.Product{ID: 7, Price: 20000},
	})
	sales := newFakeSaleStore()
	svc := NewSaleService(sales, products, carts, &fakeAuditLog{}, nil)

	_, err := svc.Checkout("user-1")
	require.Error(t, err)

	// no rollback: the sale and its line items stay recorded
	assert.Len(t, sales.sales, 1)
	assert.Len(t, sales.lineItems, 1)

	// the cart is left untouched
	items, err := carts.GetByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSaleService_ProcessSale_MissingSnapshotSkipsCounters(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 20000, Quantity: 10})
	carts := newFakeCartStore(&models.CartItem{
		UserID:    "user-1",
		ProductID: 99,
		Quantity:  2,
		Product:   nil, // product vanished between add and checkout
	})
	sales := newFakeSaleStore()
	svc := NewSaleService(sales, products, carts, &fakeAuditLog{}, nil)

	sale, err := svc.Checkout("user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(0), sale.Total)
	require.Len(t, sale.LineItems, 1)
	assert.Equal(t, int64(0), sale.LineItems[0].UnitPrice)
	assert.Empty(t, products.stockUpdates)
	assert.Empty(t, products.monthlySalesUpdates)
}

func TestSaleService_AuditFailureDoesNotFailSale(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 20000, Quantity: 10})
	carts := newFakeCartStore(&models.CartItem{
		UserID:    "user-1",
		ProductID: 7,
		Quantity:  1,
		Product:   &models.Product{ID: 7, Price: 20000},
	})
	svc := NewSaleService(newFakeSaleStore(), products, carts, &fakeAuditLog{fail: true}, nil)

	sale, err := svc.Checkout("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(20000), sale.Total)
}

func TestCurrentMonthFilter(t *testing.T) {
	now := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)
	filter := CurrentMonthFilter(now)

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), filter.From)
	assert.True(t, filter.To.Before(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, filter.To.After(time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)))
}
