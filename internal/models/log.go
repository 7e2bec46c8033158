package models

import "time"

// LogEntry is a fire-and-forget audit record. Writes are best-effort and
// never fail the operation that produced them.
type LogEntry struct {
	ID        int64     `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
