package models

import "time"

// CartItem is a pending purchase line: one row per (user, product).
// Adding the same product again merges into the existing row.
type CartItem struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	ProductID int64     `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Product snapshot joined from the products table. Not written back.
	Product *Product `db:"-" json:"product,omitempty"`
}

// Subtotal returns the line value using the joined product snapshot.
// Lines without a snapshot contribute zero, matching how the storefront
// treats a cart row whose product vanished.
func (i *CartItem) Subtotal() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * int64(i.Quantity)
}
