package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
	"github.com/skillswap/skillswap_app/internal/models"
	"github.com/skillswap/skillswap_app/internal/utils/mapping"
)

const userColumns = `user_id, name, email, password_hash, role, credit_balance, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// PgxUserRepository persists users and owns the credit-ledger primitives.
type PgxUserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new repository for user data.
func NewUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser persists a new user row.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Name, m.Email, m.PasswordHash, m.Role, m.CreditBalance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on email
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
		return apperrors.NewAppError(500, "failed to insert user "+m.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	return r.scanUserRow(r.Pool.QueryRow(ctx, query, userID), userID)
}

// FindUserByEmail retrieves a user by their email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL;`
	return r.scanUserRow(r.Pool.QueryRow(ctx, query, email), email)
}

func (r *PgxUserRepository) scanUserRow(row pgx.Row, key string) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Name, &m.Email, &m.PasswordHash, &m.Role, &m.CreditBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+key, err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// ListUsers retrieves a page of users, newest first.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var m models.User
		if err := rows.Scan(
			&m.UserID, &m.Name, &m.Email, &m.PasswordHash, &m.Role, &m.CreditBalance,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users = append(users, mapping.ToDomainUser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return users, nil
}

// UpdateUser updates a user's mutable profile fields.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = $2, role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.UserID, m.Name, m.Role, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user "+m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + m.UserID + " not found for update")
	}
	return nil
}

// DeleteUser removes a user row; skills, exchanges and reviews cascade via FK.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + userID + " not found for delete")
	}
	return nil
}

// FindUsersByIDsForUpdate retrieves users by IDs and locks the rows for update.
// Rows are locked in sorted-id order so concurrent transfers touching the same
// pair of users cannot deadlock. Must be called within a transaction.
func (r *PgxUserRepository) FindUsersByIDsForUpdate(ctx context.Context, tx pgx.Tx, userIDs []string) (map[string]domain.User, error) {
	if len(userIDs) == 0 {
		return map[string]domain.User{}, nil
	}
	sorted := append([]string(nil), userIDs...)
	sort.Strings(sorted)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = ANY($1) AND deleted_at IS NULL
		ORDER BY user_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by IDs for update: %w", err)
	}
	defer rows.Close()

	usersMap := make(map[string]domain.User)
	for rows.Next() {
		var m models.User
		if err := rows.Scan(
			&m.UserID, &m.Name, &m.Email, &m.PasswordHash, &m.Role, &m.CreditBalance,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan locked user row: %w", err)
		}
		usersMap[m.UserID] = mapping.ToDomainUser(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked user rows: %w", err)
	}

	if len(usersMap) != len(sorted) {
		for _, id := range sorted {
			if _, ok := usersMap[id]; !ok {
				return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
			}
		}
	}
	return usersMap, nil
}

// ApplyBalanceChangesInTx applies signed credit deltas to the given users
// within a transaction. Callers must have locked the rows first.
func (r *PgxUserRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]int64, updatedBy string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}
	query := `
		UPDATE users
		SET credit_balance = credit_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	batch := &pgx.Batch{}
	userIDs := make([]string, 0, len(changes))
	for userID, delta := range changes {
		if delta != 0 {
			batch.Queue(query, userID, delta, now, updatedBy)
			userIDs = append(userIDs, userID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check_violation on credit_balance
					batchErr = fmt.Errorf("%w: user %s", apperrors.ErrInsufficientCredits, userIDs[i])
				} else {
					batchErr = fmt.Errorf("failed to update balance for user %s: %w", userIDs[i], err)
				}
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: user %s not found during balance update", apperrors.ErrNotFound, userIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
