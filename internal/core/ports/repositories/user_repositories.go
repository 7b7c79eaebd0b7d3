package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user; related skills and exchanges cascade.
	DeleteUser(ctx context.Context, userID string) error
}

// UserLedgerSupport defines the credit-ledger operations used inside
// exchange-acceptance transactions. Both methods must be called with the
// enclosing transaction handle.
type UserLedgerSupport interface {
	// FindUsersByIDsForUpdate selects users and locks their rows for update.
	FindUsersByIDsForUpdate(ctx context.Context, tx pgx.Tx, userIDs []string) (map[string]domain.User, error)

	// ApplyBalanceChangesInTx applies signed credit deltas to the given users.
	// The deltas for a transfer sum to zero, so the total credit supply is
	// invariant across the call.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]int64, updatedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLedgerSupport
}
