package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/modatienda/boutique_api/internal/models"
)

// UserRepository handles data access for user profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a profile by id.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE id = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAll returns all profiles, name-ordered.
func (r *UserRepository) ListAll() ([]models.User, error) {
	const q = `SELECT * FROM users ORDER BY name`
	var users []models.User
	if err := r.db.Select(&users, q); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole returns profiles with a given role, name-ordered.
func (r *UserRepository) ListByRole(role models.Role) ([]models.User, error) {
	const q = `SELECT * FROM users WHERE role = $1 ORDER BY name`
	var users []models.User
	if err := r.db.Select(&users, q, role); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a profile row keyed by its credential id.
func (r *UserRepository) Create(u *models.User) error {
	const q = `
        INSERT INTO users (id, email, name, phone, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	return r.db.QueryRowx(q, u.ID, u.Email, u.Name, u.Phone, u.Role).
		Scan(&u.CreatedAt)
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return err == sql.ErrNoRows
}
