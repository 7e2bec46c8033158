package service

import (
	"github.com/rs/zerolog/log"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/sse"
	"github.com/modatienda/boutique_api/internal/utils"
)

// CartStore is the data access surface the cart service needs.
type CartStore interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetItem(userID string, productID int64) (*models.CartItem, error)
	GetByID(itemID int64) (*models.CartItem, error)
	Insert(item *models.CartItem) error
	UpdateQuantity(itemID int64, quantity int) error
	Delete(itemID int64) error
	DeleteByUser(userID string) error
}

// ProductReader resolves product rows for cart operations.
type ProductReader interface {
	GetByID(id int64) (*models.Product, error)
}

// CartService contains business logic for the shopping cart.
type CartService struct {
	carts    CartStore
	products ProductReader
	notifier sse.StoreNotifier
}

// NewCartService constructs a CartService.
func NewCartService(carts CartStore, products ProductReader, notifier sse.StoreNotifier) *CartService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &CartService{carts: carts, products: products, notifier: notifier}
}

// CartTotal returns the cart value from the joined product snapshots.
func CartTotal(items []models.CartItem) int64 {
	var total int64
	for i := range items {
		total += items[i].Subtotal()
	}
	return total
}

// GetCart returns the user's cart rows with product snapshots, newest first.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.carts.GetByUser(userID)
}

// AddToCart adds quantity of a product to the user's cart. A row for the
// same (user, product) pair is merged by adding to its quantity; otherwise a
// new row is inserted. No stock bound is enforced here.
func (s *CartService) AddToCart(userID string, productID int64, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, utils.ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, utils.ErrProductNotFound
	}

	existing, err := s.carts.GetItem(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.carts.UpdateQuantity(existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		s.notifier.NotifyCartChanged(userID)
		return existing, nil
	}

	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.carts.Insert(item); err != nil {
		return nil, err
	}
	s.notifier.NotifyCartChanged(userID)
	return item, nil
}

// UpdateQuantity overwrites a cart row's quantity. A quantity of zero or
// below delegates to removal, mirroring how the storefront treats it.
func (s *CartService) UpdateQuantity(userID string, itemID int64, quantity int) error {
	item, err := s.carts.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return utils.ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.carts.Delete(itemID); err != nil {
			return err
		}
		s.notifier.NotifyCartChanged(userID)
		return nil
	}

	if err := s.carts.UpdateQuantity(itemID, quantity); err != nil {
		return err
	}
	s.notifier.NotifyCartChanged(userID)
	return nil
}

// RemoveItem deletes a cart row by key.
func (s *CartService) RemoveItem(userID string, itemID int64) error {
	item, err := s.carts.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return utils.ErrCartItemNotFound
	}
	if err := s.carts.Delete(itemID); err != nil {
		return err
	}
	s.notifier.NotifyCartChanged(userID)
	return nil
}

// ClearCart removes all cart rows of a user.
func (s *CartService) ClearCart(userID string) error {
	if err := s.carts.DeleteByUser(userID); err != nil {
		return err
	}
	log.Debug().Str("user_id", userID).Msg("cart cleared")
	s.notifier.NotifyCartChanged(userID)
	return nil
}
