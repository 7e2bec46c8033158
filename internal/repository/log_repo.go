package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/modatienda/boutique_api/internal/models"
)

// LogRepository appends audit log entries.
type LogRepository struct {
	db *sqlx.DB
}

// NewLogRepository creates a new LogRepository.
func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Insert appends an audit entry.
func (r *LogRepository) Insert(logType, message string) error {
	_, err := r.db.Exec(`INSERT INTO logs (type, message) VALUES ($1, $2)`, logType, message)
	return err
}

// ListRecent returns the newest audit entries, capped at limit.
func (r *LogRepository) ListRecent(limit int) ([]models.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT * FROM logs ORDER BY created_at DESC LIMIT $1`
	var entries []models.LogEntry
	if err := r.db.Select(&entries, q, limit); err != nil {
		return nil, err
	}
	return entries, nil
}
