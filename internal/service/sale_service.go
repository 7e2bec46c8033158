package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/sse"
	"github.com/modatienda/boutique_api/internal/utils"
)

// SaleStore persists sales and their line items.
type SaleStore interface {
	Create(sale *models.Sale) error
	CreateLineItems(items []models.SaleLineItem) error
	List(filter models.SaleFilter) ([]models.Sale, error)
	ListByUser(userID string) ([]models.Sale, error)
}

// StockStore reads and writes product stock and sales counters.
type StockStore interface {
	GetByID(id int64) (*models.Product, error)
	UpdateStock(id int64, quantity int) error
	UpdateMonthlySales(id int64, monthlySales int) error
}

// CartAccess is the cart surface sale processing needs.
type CartAccess interface {
	GetByUser(userID string) ([]models.CartItem, error)
	DeleteByUser(userID string) error
}

// AuditLog appends fire-and-forget audit entries.
type AuditLog interface {
	Insert(logType, message string) error
}

// SaleService orchestrates sale processing. The steps are independent
// writes against the store: there is no transaction boundary and no
// compensating rollback on partial failure. A failed stock update after the
// sale insert leaves the sale recorded and the cart untouched.
type SaleService struct {
	sales    SaleStore
	products StockStore
	carts    CartAccess
	audit    AuditLog
	notifier sse.StoreNotifier
}

// NewSaleService constructs a SaleService.
func NewSaleService(sales SaleStore, products StockStore, carts CartAccess, audit AuditLog, notifier sse.StoreNotifier) *SaleService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &SaleService{
		sales:    sales,
		products: products,
		carts:    carts,
		audit:    audit,
		notifier: notifier,
	}
}

// Checkout loads the user's cart and processes it as a sale.
func (s *SaleService) Checkout(userID string) (*models.Sale, error) {
	items, err := s.carts.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.ProcessSale(userID, items)
}

// ProcessSale turns a list of cart lines into a persisted sale.
//
// The total and the line item prices come from the joined product snapshot
// held in memory, not a re-fetch. Stock and monthly sales are written per
// line as separate updates after a fresh read of the product row. Two
// concurrent checkouts of the same product can both pass and both
// decrement, so oversell is possible; the store carries no conditional
// update to prevent it.
func (s *SaleService) ProcessSale(userID string, items []models.CartItem) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, utils.ErrEmptyCart
	}

	total := CartTotal(items)

	sale := &models.Sale{
		SaleNumber: uuid.New().String(),
		UserID:     userID,
		Total:      total,
		SoldAt:     time.Now(),
	}
	if err := s.sales.Create(sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	lineItems := make([]models.SaleLineItem, 0, len(items))
	for i := range items {
		var unitPrice int64
		if items[i].Product != nil {
			unitPrice = items[i].Product.Price
		}
		lineItems = append(lineItems, models.SaleLineItem{
			SaleID:    sale.ID,
			ProductID: items[i].ProductID,
			Quantity:  items[i].Quantity,
			UnitPrice: unitPrice,
			Subtotal:  unitPrice * int64(items[i].Quantity),
		})
	}
	if err := s.sales.CreateLineItems(lineItems); err != nil {
		return nil, fmt.Errorf("create line items: %w", err)
	}
	sale.LineItems = lineItems

	// Per line: re-read the product, then write stock and monthly sales as
	// two separate updates. Rows whose product vanished are skipped, as the
	// storefront did.
	for i := range items {
		if items[i].Product == nil {
			continue
		}
		current, err := s.products.GetByID(items[i].ProductID)
		if err != nil {
			return nil, fmt.Errorf("read product %d: %w", items[i].ProductID, err)
		}
		if err := s.products.UpdateStock(current.ID, current.Quantity-items[i].Quantity); err != nil {
			return nil, fmt.Errorf("update stock for product %d: %w", current.ID, err)
		}
		if err := s.products.UpdateMonthlySales(current.ID, current.MonthlySales+items[i].Quantity); err != nil {
			return nil, fmt.Errorf("update monthly sales for product %d: %w", current.ID, err)
		}
	}

	if err := s.carts.DeleteByUser(userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	// Best-effort audit entry. Failures never fail the sale.
	if err := s.audit.Insert("sale", fmt.Sprintf("sale processed: %s - total: $%d", sale.SaleNumber, total)); err != nil {
		log.Warn().Err(err).Str("sale_number", sale.SaleNumber).Msg("audit log write failed")
	}

	s.notifier.NotifySaleCompleted(sale)
	s.notifier.NotifyCartChanged(userID)

	log.Info().
		Str("sale_number", sale.SaleNumber).
		Str("user_id", userID).
		Int64("total", total).
		Int("lines", len(lineItems)).
		Msg("sale processed")

	return sale, nil
}

// ListSales returns sales within the optional date bounds, newest first.
func (s *SaleService) ListSales(filter models.SaleFilter) ([]models.Sale, error) {
	return s.sales.List(filter)
}

// ListSalesByUser returns a user's purchase history, newest first.
func (s *SaleService) ListSalesByUser(userID string) ([]models.Sale, error) {
	return s.sales.ListByUser(userID)
}

// CurrentMonthSales returns the sales of the current calendar month.
func (s *SaleService) CurrentMonthSales() ([]models.Sale, error) {
	return s.sales.List(CurrentMonthFilter(time.Now()))
}

// CurrentMonthFilter bounds a sale listing to now's calendar month.
func CurrentMonthFilter(now time.Time) models.SaleFilter {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return models.SaleFilter{From: start, To: end}
}
