package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

func TestCartService_AddToCart_MergesExistingRow(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Name: "Blusa", Price: 35000, Quantity: 12})
	carts := newFakeCartStore()
	svc := NewCartService(carts, products, nil)

	first, err := svc.AddToCart("user-1", 7, 2)
	require.NoError(t, err)

	second, err := svc.AddToCart("user-1", 7, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := svc.GetCart("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 35000})
	svc := NewCartService(newFakeCartStore(), products, nil)

	_, err := svc.AddToCart("user-1", 7, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidQuantity)

	_, err = svc.AddToCart("user-1", 7, -2)
	assert.ErrorIs(t, err, utils.ErrInvalidQuantity)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	svc := NewCartService(newFakeCartStore(), newFakeProductStore(), nil)

	_, err := svc.AddToCart("user-1", 99, 1)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestCartService_UpdateQuantity_ZeroRemovesRow(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 35000})
	carts := newFakeCartStore()
	svc := NewCartService(carts, products, nil)

	item, err := svc.AddToCart("user-1", 7, 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity("user-1", item.ID, 0))

	items, err := svc.GetCart("user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_UpdateQuantity_OtherUsersItem(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 35000})
	carts := newFakeCartStore()
	svc := NewCartService(carts, products, nil)

	item, err := svc.AddToCart("user-1", 7, 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity("user-2", item.ID, 4)
	assert.ErrorIs(t, err, utils.ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	products := newFakeProductStore(&models.Product{ID: 7, Price: 35000})
	carts := newFakeCartStore()
	svc := NewCartService(carts, products, nil)

	item, err := svc.AddToCart("user-1", 7, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem("user-1", item.ID))
	assert.ErrorIs(t, svc.RemoveItem("user-1", item.ID), utils.ErrCartItemNotFound)
}

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{Quantity: 2, Product: &models.Product{Price: 20000}},
		{Quantity: 1, Product: &models.Product{Price: 45000}},
		{Quantity: 3, Product: nil}, // missing snapshot contributes nothing
	}

	assert.Equal(t, int64(85000), CartTotal(items))
	assert.Equal(t, int64(0), CartTotal(nil))
}
