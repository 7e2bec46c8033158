package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/utils"
)

type SaleHandler struct {
	saleService *service.SaleService
}

func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Checkout handles POST /v1/sales/checkout, converting the caller's cart
// into a completed sale.
func (h *SaleHandler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")

	sale, err := h.saleService.Checkout(userID)
	if err != nil {
		if err == utils.ErrEmptyCart {
			utils.Error(c, 400, "EMPTY_CART", "Cart is empty, nothing to check out")
			return
		}
		utils.Error(c, 500, "SALE_FAILED", "Failed to process sale")
		return
	}

	utils.Success(c, 201, "Sale completed", sale)
}

// MySales handles GET /v1/sales, the caller's own sale history.
func (h *SaleHandler) MySales(c *gin.Context) {
	userID := c.GetString("user_id")

	sales, err := h.saleService.ListSalesByUser(userID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch sales")
		return
	}

	utils.Success(c, 200, "Sales fetched", sales)
}

// CurrentMonth handles GET /v1/admin/sales/current-month.
func (h *SaleHandler) CurrentMonth(c *gin.Context) {
	sales, err := h.saleService.CurrentMonthSales()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch sales")
		return
	}

	utils.Success(c, 200, "Sales fetched", sales)
}

// List handles GET /v1/admin/sales with optional from/to date filters
// in YYYY-MM-DD form.
func (h *SaleHandler) List(c *gin.Context) {
	var filter models.SaleFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.Error(c, 400, "INVALID_DATE", "from must be in YYYY-MM-DD form")
			return
		}
		filter.From = t
	}

	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.Error(c, 400, "INVALID_DATE", "to must be in YYYY-MM-DD form")
			return
		}
		// make the upper bound inclusive of the whole day
		filter.To = t.Add(24 * time.Hour)
	}

	sales, err := h.saleService.ListSales(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch sales")
		return
	}

	utils.Success(c, 200, "Sales fetched", sales)
}
