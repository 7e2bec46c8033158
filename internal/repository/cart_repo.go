package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/modatienda/boutique_api/internal/models"
)

// CartRepository handles data access for cart rows.
type CartRepository struct {
	db *sqlx.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

// cartRowWithProduct flattens a cart row joined with its product snapshot.
type cartRowWithProduct struct {
	models.CartItem
	ProdID        sql.NullInt64   `db:"p_id"`
	ProdName      sql.NullString  `db:"p_name"`
	ProdCategory  sql.NullString  `db:"p_category"`
	ProdSize      sql.NullString  `db:"p_size"`
	ProdGender    sql.NullString  `db:"p_gender"`
	ProdPrice     sql.NullInt64   `db:"p_price"`
	ProdQuantity  sql.NullInt64   `db:"p_quantity"`
	ProdReference sql.NullString  `db:"p_reference"`
	ProdMonthly   sql.NullInt64   `db:"p_monthly_sales"`
	ProdRotation  sql.NullFloat64 `db:"p_monthly_rotation"`
}

func (row *cartRowWithProduct) toCartItem() models.CartItem {
	item := row.CartItem
	if row.ProdID.Valid {
		item.Product = &models.Product{
			ID:              row.ProdID.Int64,
			Name:            row.ProdName.String,
			Category:        row.ProdCategory.String,
			Size:            row.ProdSize.String,
			Gender:          models.Gender(row.ProdGender.String),
			Price:           row.ProdPrice.Int64,
			Quantity:        int(row.ProdQuantity.Int64),
			Reference:       row.ProdReference.String,
			MonthlySales:    int(row.ProdMonthly.Int64),
			MonthlyRotation: row.ProdRotation.Float64,
		}
	}
	return item
}

// GetByUser returns the user's cart rows with product snapshots, newest first.
// A row whose product has been deleted is returned without a snapshot rather
// than dropped, so the cart view can surface it.
func (r *CartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	const q = `
        SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at,
               p.id AS p_id, p.name AS p_name, p.category AS p_category,
               p.size AS p_size, p.gender AS p_gender, p.price AS p_price,
               p.quantity AS p_quantity, p.reference AS p_reference,
               p.monthly_sales AS p_monthly_sales, p.monthly_rotation AS p_monthly_rotation
        FROM cart c
        LEFT JOIN products p ON p.id = c.product_id
        WHERE c.user_id = $1
        ORDER BY c.created_at DESC`

	var rows []cartRowWithProduct
	if err := r.db.Select(&rows, q, userID); err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toCartItem())
	}
	return items, nil
}

// GetItem returns the user's cart row for a product, or nil when absent.
func (r *CartRepository) GetItem(userID string, productID int64) (*models.CartItem, error) {
	const q = `SELECT id, user_id, product_id, quantity, created_at FROM cart WHERE user_id = $1 AND product_id = $2 LIMIT 1`
	var item models.CartItem
	if err := r.db.Get(&item, q, userID, productID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByID returns a cart row by id, or nil when absent.
func (r *CartRepository) GetByID(itemID int64) (*models.CartItem, error) {
	const q = `SELECT id, user_id, product_id, quantity, created_at FROM cart WHERE id = $1 LIMIT 1`
	var item models.CartItem
	if err := r.db.Get(&item, q, itemID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Insert creates a new cart row.
func (r *CartRepository) Insert(item *models.CartItem) error {
	const q = `
        INSERT INTO cart (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.db.QueryRowx(q, item.UserID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.CreatedAt)
}

// UpdateQuantity overwrites the quantity of a cart row.
func (r *CartRepository) UpdateQuantity(itemID int64, quantity int) error {
	_, err := r.db.Exec(`UPDATE cart SET quantity = $2 WHERE id = $1`, itemID, quantity)
	return err
}

// Delete removes a cart row by key.
func (r *CartRepository) Delete(itemID int64) error {
	_, err := r.db.Exec(`DELETE FROM cart WHERE id = $1`, itemID)
	return err
}

// DeleteByUser removes all cart rows of a user.
func (r *CartRepository) DeleteByUser(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart WHERE user_id = $1`, userID)
	return err
}
