package models

import "time"

// Sale is the persisted record of a completed purchase. Sales are created
// once and never mutated or deleted.
type Sale struct {
	ID         int64     `db:"id" json:"id"`
	SaleNumber string    `db:"sale_number" json:"saleNumber"`
	UserID     string    `db:"user_id" json:"userId"`
	Total      int64     `db:"total" json:"total"`
	SoldAt     time.Time `db:"sold_at" json:"soldAt"`

	LineItems []SaleLineItem `db:"-" json:"lineItems,omitempty"`
}

// SaleLineItem is the per-product breakdown of a sale, captured from the
// cart snapshot at checkout time.
type SaleLineItem struct {
	ID        int64 `db:"id" json:"id"`
	SaleID    int64 `db:"sale_id" json:"saleId"`
	ProductID int64 `db:"product_id" json:"productId"`
	Quantity  int   `db:"quantity" json:"quantity"`
	UnitPrice int64 `db:"unit_price" json:"unitPrice"`
	Subtotal  int64 `db:"subtotal" json:"subtotal"`

	// Product joined for reporting; nil outside report queries.
	Product *Product `db:"-" json:"product,omitempty"`
}

// SaleFilter bounds sale listings by date. Zero values are ignored.
type SaleFilter struct {
	From time.Time
	To   time.Time
}
