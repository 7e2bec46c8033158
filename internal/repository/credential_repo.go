package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/modatienda/boutique_api/internal/models"
)

// CredentialRepository is the identity store: it owns sign-in credentials.
// Profiles in the users table reference credentials by id.
type CredentialRepository struct {
	db *sqlx.DB
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create inserts a credential.
func (r *CredentialRepository) Create(c *models.Credential) error {
	const q = `
        INSERT INTO auth_credentials (id, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at`
	return r.db.QueryRowx(q, c.ID, c.Email, c.PasswordHash).Scan(&c.CreatedAt)
}

// GetByEmail returns a credential by email, or nil when absent.
func (r *CredentialRepository) GetByEmail(email string) (*models.Credential, error) {
	const q = `SELECT * FROM auth_credentials WHERE email = $1 LIMIT 1`
	var c models.Credential
	if err := r.db.Get(&c, q, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a credential. Used as the best-effort compensation when a
// profile insert fails after the credential was created.
func (r *CredentialRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM auth_credentials WHERE id = $1`, id)
	return err
}
