package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

// CatalogStore is the product data access surface.
type CatalogStore interface {
	GetAll(filter models.ProductFilter) ([]models.Product, error)
	GetAllPaged(filter models.ProductFilter, page, limit int) ([]models.Product, int, error)
	GetByID(id int64) (*models.Product, error)
	ExistsName(name string, excludeID int64) (bool, error)
	ExistsReference(reference string, excludeID int64) (bool, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id int64) error
	UpdateStock(id int64, quantity int) error
	TopSellers(limit int) ([]models.Product, error)
	LowRotation(threshold float64) ([]models.Product, error)
}

// CatalogService contains business logic for the product catalog.
type CatalogService struct {
	products CatalogStore
	audit    AuditLog
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(products CatalogStore, audit AuditLog) *CatalogService {
	return &CatalogService{products: products, audit: audit}
}

// ListProducts returns catalog products matching the filters.
func (s *CatalogService) ListProducts(filter models.ProductFilter) ([]models.Product, error) {
	return s.products.GetAll(filter)
}

// ListProductsPaged returns catalog products with pagination metadata.
func (s *CatalogService) ListProductsPaged(filter models.ProductFilter, page, limit int) ([]models.Product, int, error) {
	return s.products.GetAllPaged(filter, page, limit)
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(id int64) (*models.Product, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		return nil, utils.ErrProductNotFound
	}
	return p, nil
}

// CreateProduct inserts a new product after pre-checking name and reference
// collisions with a read. The check and the insert are separate statements:
// two concurrent creates with the same name can both pass the check, since
// the store enforces no uniqueness for these columns.
func (s *CatalogService) CreateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Reference = strings.TrimSpace(p.Reference)
	p.Description = strings.TrimSpace(p.Description)

	if taken, err := s.products.ExistsName(p.Name, 0); err != nil {
		return err
	} else if taken {
		return utils.ErrDuplicateName
	}
	if taken, err := s.products.ExistsReference(p.Reference, 0); err != nil {
		return err
	} else if taken {
		return utils.ErrDuplicateReference
	}

	p.MonthlySales = 0
	p.MonthlyRotation = 0
	if err := s.products.Create(p); err != nil {
		return err
	}

	if err := s.audit.Insert("product", fmt.Sprintf("product created: %s", p.Name)); err != nil {
		log.Warn().Err(err).Int64("product_id", p.ID).Msg("audit log write failed")
	}
	return nil
}

// UpdateProduct updates a product, pre-checking collisions against other
// rows. Counters are untouched; only stock and descriptive fields change.
func (s *CatalogService) UpdateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Reference = strings.TrimSpace(p.Reference)
	p.Description = strings.TrimSpace(p.Description)

	if taken, err := s.products.ExistsName(p.Name, p.ID); err != nil {
		return err
	} else if taken {
		return utils.ErrDuplicateName
	}
	if taken, err := s.products.ExistsReference(p.Reference, p.ID); err != nil {
		return err
	} else if taken {
		return utils.ErrDuplicateReference
	}

	return s.products.Update(p)
}

// DeleteProduct removes a product by id.
func (s *CatalogService) DeleteProduct(id int64) error {
	if err := s.products.Delete(id); err != nil {
		return err
	}
	if err := s.audit.Insert("product", fmt.Sprintf("product deleted: %d", id)); err != nil {
		log.Warn().Err(err).Int64("product_id", id).Msg("audit log write failed")
	}
	return nil
}

// UpdateStock overwrites a product's stock quantity.
func (s *CatalogService) UpdateStock(id int64, quantity int) error {
	return s.products.UpdateStock(id, quantity)
}

// TopSellers returns the best selling products of the month.
func (s *CatalogService) TopSellers(limit int) ([]models.Product, error) {
	return s.products.TopSellers(limit)
}

// LowRotation returns products selling through slower than the threshold.
func (s *CatalogService) LowRotation(threshold float64) ([]models.Product, error) {
	return s.products.LowRotation(threshold)
}
