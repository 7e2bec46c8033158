package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/utils"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get handles GET /v1/cart, returning the caller's cart with a computed total.
func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := h.cartService.GetCart(userID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch cart")
		return
	}

	utils.Success(c, 200, "Cart fetched", gin.H{
		"items": items,
		"total": service.CartTotal(items),
	})
}

// Add handles POST /v1/cart/items. Adding a product already in the cart
// merges quantities into the existing row.
func (h *CartHandler) Add(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
		Quantity  int   `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	item, err := h.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		switch err {
		case utils.ErrInvalidQuantity:
			utils.Error(c, 400, "INVALID_QUANTITY", "Quantity must be greater than zero")
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to add item to cart")
		}
		return
	}

	utils.Success(c, 201, "Item added to cart", item)
}

// UpdateQuantity handles PUT /v1/cart/items/:id. A quantity of zero or
// less removes the item.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Cart item id must be numeric")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.cartService.UpdateQuantity(userID, itemID, req.Quantity); err != nil {
		if err == utils.ErrCartItemNotFound {
			utils.Error(c, 404, "CART_ITEM_NOT_FOUND", "Cart item not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update cart item")
		return
	}

	utils.Success(c, 200, "Cart item updated", nil)
}

// Remove handles DELETE /v1/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	userID := c.GetString("user_id")

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Cart item id must be numeric")
		return
	}

	if err := h.cartService.RemoveItem(userID, itemID); err != nil {
		if err == utils.ErrCartItemNotFound {
			utils.Error(c, 404, "CART_ITEM_NOT_FOUND", "Cart item not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to remove cart item")
		return
	}

	utils.Success(c, 200, "Cart item removed", nil)
}

// Clear handles DELETE /v1/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.cartService.ClearCart(userID); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to clear cart")
		return
	}

	utils.Success(c, 200, "Cart cleared", nil)
}
