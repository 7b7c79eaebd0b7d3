package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for platform users.
type User struct {
	UserID        string         `db:"user_id"`
	Name          string         `db:"name"`
	Email         string         `db:"email"`
	PasswordHash  sql.NullString `db:"password_hash"` // NULL for OAuth-only accounts
	Role          string         `db:"role"`
	CreditBalance int64          `db:"credit_balance"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
