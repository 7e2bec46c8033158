package models

import "time"

// KPISet carries the headline dashboard metrics computed in memory from the
// current month's sales and the full product list.
type KPISet struct {
	TotalSales    int64   `json:"totalSales"`
	SaleCount     int     `json:"saleCount"`
	TotalStock    int     `json:"totalStock"`
	LowStockCount int     `json:"lowStockCount"`
	AvgRotation   float64 `json:"avgRotation"`
	ProductCount  int     `json:"productCount"`
}

// KPISnapshot is the daily-granularity cached aggregate, upserted once per
// calendar day. Date is a plain YYYY-MM-DD string so the upsert comparison
// matches exactly regardless of timezone drift in timestamps.
type KPISnapshot struct {
	ID            int64     `db:"id" json:"id"`
	Date          string    `db:"snapshot_date" json:"date"`
	TotalSales    int64     `db:"total_sales" json:"totalSales"`
	SaleCount     int       `db:"sale_count" json:"saleCount"`
	TotalStock    int       `db:"total_stock" json:"totalStock"`
	LowStockCount int       `db:"low_stock_count" json:"lowStockCount"`
	AvgRotation   float64   `db:"avg_rotation" json:"avgRotation"`
	ProductCount  int       `db:"product_count" json:"productCount"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// GroupTotal is a subtotal/quantity accumulation for one grouping key
// (category, gender or size).
type GroupTotal struct {
	Name     string `json:"name"`
	Total    int64  `json:"total"`
	Quantity int    `json:"quantity"`
}

// MonthBucket accumulates sales for one calendar month, keyed YYYY-MM.
type MonthBucket struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}
