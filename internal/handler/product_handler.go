package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/utils"
)

type ProductHandler struct {
	catalogService *service.CatalogService
}

func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Size        string `json:"size"`
	Gender      string `json:"gender"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

func (r *productRequest) toModel() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Category:    r.Category,
		Size:        r.Size,
		Gender:      models.Gender(r.Gender),
		Price:       r.Price,
		Quantity:    r.Quantity,
		Reference:   r.Reference,
		Description: r.Description,
	}
}

// List handles GET /v1/catalog/products with optional filters and pagination.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := models.ProductFilter{
		Category:      c.Query("category"),
		Size:          c.Query("size"),
		Gender:        c.Query("gender"),
		Search:        c.Query("search"),
		OnlyAvailable: c.Query("available") == "true",
	}

	products, total, err := h.catalogService.ListProductsPaged(filter, page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products fetched", products, page, limit, total)
}

// Get handles GET /v1/catalog/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product fetched", product)
}

// TopSellers handles GET /v1/catalog/top-sellers, the storefront's best
// seller rail.
func (h *ProductHandler) TopSellers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	products, err := h.catalogService.TopSellers(limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch top sellers")
		return
	}

	utils.Success(c, 200, "Top sellers fetched", products)
}

// LowRotation handles GET /v1/admin/reports/low-rotation, listing products
// selling through slower than the threshold.
func (h *ProductHandler) LowRotation(c *gin.Context) {
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "5"), 64)
	if err != nil || threshold <= 0 {
		threshold = 5
	}

	products, err := h.catalogService.LowRotation(threshold)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch low rotation products")
		return
	}

	utils.Success(c, 200, "Low rotation products fetched", products)
}

// Create handles POST /v1/admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product := req.toModel()
	if err := h.catalogService.CreateProduct(product); err != nil {
		switch err {
		case utils.ErrDuplicateName:
			utils.Error(c, 409, "DUPLICATE_NAME", "A product with this name already exists")
		case utils.ErrDuplicateReference:
			utils.Error(c, 409, "DUPLICATE_REFERENCE", "A product with this reference already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		}
		return
	}

	utils.Success(c, 201, "Product created", product)
}

// Update handles PUT /v1/admin/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product := req.toModel()
	product.ID = id
	if err := h.catalogService.UpdateProduct(product); err != nil {
		switch err {
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case utils.ErrDuplicateName:
			utils.Error(c, 409, "DUPLICATE_NAME", "A product with this name already exists")
		case utils.ErrDuplicateReference:
			utils.Error(c, 409, "DUPLICATE_REFERENCE", "A product with this reference already exists")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		}
		return
	}

	utils.Success(c, 200, "Product updated", product)
}

// UpdateStock handles PUT /v1/admin/products/:id/stock, the quick stock
// adjustment from the admin console.
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"gte=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.catalogService.UpdateStock(id, req.Quantity); err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Stock updated", nil)
}

// Delete handles DELETE /v1/admin/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		if err == utils.ErrProductNotFound {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted", nil)
}
