package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/modatienda/boutique_api/internal/models"
)

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns products matching the catalog filters, name-ordered.
// Empty filter fields are ignored. Search matches name, reference and
// description as substrings.
func (r *ProductRepository) GetAll(filter models.ProductFilter) ([]models.Product, error) {
	q := `SELECT * FROM products WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		q += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Size != "" {
		q += fmt.Sprintf(" AND size = $%d", argIdx)
		args = append(args, filter.Size)
		argIdx++
	}
	if filter.Gender != "" {
		q += fmt.Sprintf(" AND gender = $%d", argIdx)
		args = append(args, filter.Gender)
		argIdx++
	}
	if filter.Search != "" {
		q += fmt.Sprintf(" AND (name ILIKE $%d OR reference ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.OnlyAvailable {
		q += " AND quantity > 0"
	}
	q += " ORDER BY name"

	var products []models.Product
	if err := r.db.Select(&products, q, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// GetAllPaged returns products for the admin listing with pagination and
// total count. Filters follow GetAll.
func (r *ProductRepository) GetAllPaged(filter models.ProductFilter, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Size != "" {
		baseWhere += fmt.Sprintf(" AND size = $%d", argIdx)
		args = append(args, filter.Size)
		argIdx++
	}
	if filter.Gender != "" {
		baseWhere += fmt.Sprintf(" AND gender = $%d", argIdx)
		args = append(args, filter.Gender)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR reference ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.OnlyAvailable {
		baseWhere += " AND quantity > 0"
	}

	countQuery := `SELECT COUNT(1) FROM products ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT * FROM products %s ORDER BY name LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ExistsName reports whether another product already uses the given name.
// excludeID skips the product being updated; pass 0 on create.
func (r *ProductRepository) ExistsName(name string, excludeID int64) (bool, error) {
	const q = `SELECT COUNT(1) FROM products WHERE name = $1 AND id != $2`
	var n int
	if err := r.db.Get(&n, q, name, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistsReference reports whether another product already uses the given
// reference. Empty references are never considered duplicates.
func (r *ProductRepository) ExistsReference(reference string, excludeID int64) (bool, error) {
	if reference == "" {
		return false, nil
	}
	const q = `SELECT COUNT(1) FROM products WHERE reference = $1 AND id != $2`
	var n int
	if err := r.db.Get(&n, q, reference, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (name, category, size, gender, price, quantity, reference, description, monthly_sales, monthly_rotation)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		p.Name, p.Category, p.Size, p.Gender, p.Price, p.Quantity,
		p.Reference, p.Description, p.MonthlySales, p.MonthlyRotation,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates an existing product. Sales counters are not touched here;
// they change only through UpdateStock and UpdateMonthlySales.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products
        SET name = $1, category = $2, size = $3, gender = $4,
            price = $5, quantity = $6, reference = $7, description = $8,
            updated_at = NOW()
        WHERE id = $9
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		p.Name, p.Category, p.Size, p.Gender, p.Price, p.Quantity,
		p.Reference, p.Description, p.ID,
	).Scan(&p.UpdatedAt)
}

// Delete deletes a product by ID.
func (r *ProductRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	return err
}

// UpdateStock overwrites the stock quantity of a product.
func (r *ProductRepository) UpdateStock(id int64, quantity int) error {
	const q = `UPDATE products SET quantity = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.Exec(q, id, quantity)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateMonthlySales overwrites the monthly sales counter of a product.
func (r *ProductRepository) UpdateMonthlySales(id int64, monthlySales int) error {
	const q = `UPDATE products SET monthly_sales = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, monthlySales)
	return err
}

// TopSellers returns the products with the highest monthly sales.
func (r *ProductRepository) TopSellers(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `SELECT * FROM products ORDER BY monthly_sales DESC LIMIT $1`
	var products []models.Product
	if err := r.db.Select(&products, q, limit); err != nil {
		return nil, err
	}
	return products, nil
}

// LowRotation returns products whose monthly rotation is below the threshold,
// slowest first.
func (r *ProductRepository) LowRotation(threshold float64) ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE monthly_rotation < $1 ORDER BY monthly_rotation`
	var products []models.Product
	if err := r.db.Select(&products, q, threshold); err != nil {
		return nil, err
	}
	return products, nil
}
