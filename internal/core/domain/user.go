package domain

import "time"

// UserRole distinguishes regular users from administrators.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a member of the skill-exchange platform.
// CreditBalance is the user's spendable credits; it is never negative and is
// mutated exclusively through the user repository's ledger operations.
type User struct {
	UserID        string   `json:"userID"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	PasswordHash  string   `json:"-"` // empty for OAuth-only accounts
	Role          UserRole `json:"role"`
	CreditBalance int64    `json:"creditBalance"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// GoogleUserInfo holds the subset of the Google userinfo response we consume.
type GoogleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
