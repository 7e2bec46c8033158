package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/modatienda/boutique_api/internal/models"
)

// KPIRepository handles data access for daily KPI snapshots.
type KPIRepository struct {
	db *sqlx.DB
}

// NewKPIRepository creates a new KPIRepository.
func NewKPIRepository(db *sqlx.DB) *KPIRepository {
	return &KPIRepository{db: db}
}

// GetLatest returns the most recent snapshot, or nil when none exists.
func (r *KPIRepository) GetLatest() (*models.KPISnapshot, error) {
	const q = `SELECT * FROM kpi_snapshots ORDER BY snapshot_date DESC LIMIT 1`
	var snap models.KPISnapshot
	if err := r.db.Get(&snap, q); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// Insert creates a snapshot row for a new day.
func (r *KPIRepository) Insert(snap *models.KPISnapshot) error {
	const q = `
        INSERT INTO kpi_snapshots (snapshot_date, total_sales, sale_count, total_stock, low_stock_count, avg_rotation, product_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q,
		snap.Date, snap.TotalSales, snap.SaleCount, snap.TotalStock,
		snap.LowStockCount, snap.AvgRotation, snap.ProductCount,
	).Scan(&snap.ID, &snap.CreatedAt, &snap.UpdatedAt)
}

// Update overwrites today's snapshot in place; the second computation of a
// day wins.
func (r *KPIRepository) Update(snap *models.KPISnapshot) error {
	const q = `
        UPDATE kpi_snapshots
        SET total_sales = $2, sale_count = $3, total_stock = $4,
            low_stock_count = $5, avg_rotation = $6, product_count = $7,
            updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`
	return r.db.QueryRowx(q,
		snap.ID, snap.TotalSales, snap.SaleCount, snap.TotalStock,
		snap.LowStockCount, snap.AvgRotation, snap.ProductCount,
	).Scan(&snap.UpdatedAt)
}
