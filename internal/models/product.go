package models

import "time"

// Gender enumerates the catalog gender labels.
type Gender string

const (
	GenderMen    Gender = "hombre"
	GenderWomen  Gender = "mujer"
	GenderUnisex Gender = "unisex"
)

// Product represents a garment in the catalog.
// Price is stored in whole pesos; Quantity is the current stock on hand.
// MonthlySales is incremented when a sale is processed; MonthlyRotation is a
// derived metric approximating how fast the stock sells through.
type Product struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Category        string    `db:"category" json:"category"`
	Size            string    `db:"size" json:"size"`
	Gender          Gender    `db:"gender" json:"gender"`
	Price           int64     `db:"price" json:"price"`
	Quantity        int       `db:"quantity" json:"quantity"`
	Reference       string    `db:"reference" json:"reference,omitempty"`
	Description     string    `db:"description" json:"description,omitempty"`
	MonthlySales    int       `db:"monthly_sales" json:"monthlySales"`
	MonthlyRotation float64   `db:"monthly_rotation" json:"monthlyRotation"`
	CreatedAt       time.Time `db:"created_at" json:"-"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// ProductFilter holds optional catalog filters. Empty fields are ignored.
type ProductFilter struct {
	Category      string
	Size          string
	Gender        string
	Search        string
	OnlyAvailable bool
}
