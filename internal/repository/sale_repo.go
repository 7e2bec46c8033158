package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/modatienda/boutique_api/internal/models"
)

// SaleRepository handles data access for sales and their line items.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create inserts a sale row.
func (r *SaleRepository) Create(sale *models.Sale) error {
	const q = `
        INSERT INTO sales (sale_number, user_id, total, sold_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.db.QueryRowx(q, sale.SaleNumber, sale.UserID, sale.Total, sale.SoldAt).
		Scan(&sale.ID)
}

// CreateLineItems inserts the per-product breakdown of a sale. The rows are
// inserted in one statement; sales are write-once so there is no update path.
func (r *SaleRepository) CreateLineItems(items []models.SaleLineItem) error {
	if len(items) == 0 {
		return nil
	}
	const q = `
        INSERT INTO sale_line_items (sale_id, product_id, quantity, unit_price, subtotal)
        VALUES (:sale_id, :product_id, :quantity, :unit_price, :subtotal)`
	_, err := r.db.NamedExec(q, items)
	return err
}

// List returns sales within the filter bounds, newest first, with line items
// and product snapshots attached.
func (r *SaleRepository) List(filter models.SaleFilter) ([]models.Sale, error) {
	q := `SELECT id, sale_number, user_id, total, sold_at FROM sales WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if !filter.From.IsZero() {
		q += fmt.Sprintf(" AND sold_at >= $%d", argIdx)
		args = append(args, filter.From)
		argIdx++
	}
	if !filter.To.IsZero() {
		q += fmt.Sprintf(" AND sold_at <= $%d", argIdx)
		args = append(args, filter.To)
	}
	q += ` ORDER BY sold_at DESC`

	var sales []models.Sale
	if err := r.db.Select(&sales, q, args...); err != nil {
		return nil, err
	}
	return r.attachLineItems(sales)
}

// ListByUser returns a user's sales, newest first, with line items attached.
func (r *SaleRepository) ListByUser(userID string) ([]models.Sale, error) {
	const q = `SELECT id, sale_number, user_id, total, sold_at FROM sales WHERE user_id = $1 ORDER BY sold_at DESC`
	var sales []models.Sale
	if err := r.db.Select(&sales, q, userID); err != nil {
		return nil, err
	}
	return r.attachLineItems(sales)
}

// lineRowWithProduct flattens a line item joined with its product.
type lineRowWithProduct struct {
	models.SaleLineItem
	ProdID       sql.NullInt64   `db:"p_id"`
	ProdName     sql.NullString  `db:"p_name"`
	ProdCategory sql.NullString  `db:"p_category"`
	ProdSize     sql.NullString  `db:"p_size"`
	ProdGender   sql.NullString  `db:"p_gender"`
	ProdPrice    sql.NullInt64   `db:"p_price"`
	ProdQuantity sql.NullInt64   `db:"p_quantity"`
	ProdRotation sql.NullFloat64 `db:"p_monthly_rotation"`
}

func (row *lineRowWithProduct) toLineItem() models.SaleLineItem {
	item := row.SaleLineItem
	if row.ProdID.Valid {
		item.Product = &models.Product{
			ID:              row.ProdID.Int64,
			Name:            row.ProdName.String,
			Category:        row.ProdCategory.String,
			Size:            row.ProdSize.String,
			Gender:          models.Gender(row.ProdGender.String),
			Price:           row.ProdPrice.Int64,
			Quantity:        int(row.ProdQuantity.Int64),
			MonthlyRotation: row.ProdRotation.Float64,
		}
	}
	return item
}

// attachLineItems loads line items for the given sales in one query and
// distributes them onto their parent sales.
func (r *SaleRepository) attachLineItems(sales []models.Sale) ([]models.Sale, error) {
	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]int64, 0, len(sales))
	for i := range sales {
		ids = append(ids, sales[i].ID)
	}

	const q = `
        SELECT l.id, l.sale_id, l.product_id, l.quantity, l.unit_price, l.subtotal,
               p.id AS p_id, p.name AS p_name, p.category AS p_category,
               p.size AS p_size, p.gender AS p_gender, p.price AS p_price,
               p.quantity AS p_quantity, p.monthly_rotation AS p_monthly_rotation
        FROM sale_line_items l
        LEFT JOIN products p ON p.id = l.product_id
        WHERE l.sale_id = ANY($1)
        ORDER BY l.id`

	var rows []lineRowWithProduct
	if err := r.db.Select(&rows, q, pq.Array(ids)); err != nil {
		return nil, err
	}

	bySale := make(map[int64][]models.SaleLineItem, len(sales))
	for i := range rows {
		item := rows[i].toLineItem()
		bySale[item.SaleID] = append(bySale[item.SaleID], item)
	}
	for i := range sales {
		sales[i].LineItems = bySale[sales[i].ID]
	}
	return sales, nil
}
