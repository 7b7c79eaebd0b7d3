package pgsql

import (
	"context"
	"errors"
	"fmt"
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

const exchangeColumns = `exchange_id, teacher_id, learner_id, skill_id, duration_hours, credits, status, created_at, created_by, last_updated_at, last_updated_by`

// maxAcceptRetries bounds transparent retries of the acceptance transaction
// after a serialization or deadlock abort. Business-rule failures are never
// retried.
const maxAcceptRetries = 3

// PgxExchangeRepository persists exchanges and owns the acceptance
// transaction that couples the credit transfer to the status change.
type PgxExchangeRepository struct {
	BaseRepository
	userRepo portsrepo.UserLedgerSupport
}

// NewExchangeRepository creates a new repository for exchange data.
// The user repository dependency supplies row locking and balance updates
// inside acceptance transactions.
func NewExchangeRepository(pool *pgxpool.Pool, userRepo portsrepo.UserLedgerSupport) portsrepo.ExchangeRepositoryFacade {
	return &PgxExchangeRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
	}
}

var _ portsrepo.ExchangeRepositoryFacade = (*PgxExchangeRepository)(nil)

// SaveExchange persists a new exchange row.
func (r *PgxExchangeRepository) SaveExchange(ctx context.Context, exchange domain.Exchange) error {
	m := mapping.ToModelExchange(exchange)
	query := `
		INSERT INTO exchanges (` + exchangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeID, m.TeacherID, m.LearnerID, m.SkillID, m.DurationHours,
		m.Credits, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert exchange "+m.ExchangeID, err)
	}
	return nil
}

// FindExchangeByID retrieves an exchange by its ID.
func (r *PgxExchangeRepository) FindExchangeByID(ctx context.Context, exchangeID string) (*domain.Exchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchanges WHERE exchange_id = $1;`
	var m models.Exchange
	err := r.Pool.QueryRow(ctx, query, exchangeID).Scan(
		&m.ExchangeID, &m.TeacherID, &m.LearnerID, &m.SkillID, &m.DurationHours,
		&m.Credits, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange "+exchangeID, err)
	}
	e := mapping.ToDomainExchange(m)
	return &e, nil
}

// ListExchangesByUser retrieves exchanges where the user is teacher or
// learner, newest first.
func (r *PgxExchangeRepository) ListExchangesByUser(ctx context.Context, userID string) ([]domain.Exchange, error) {
	query := `
		SELECT ` + exchangeColumns + `
		FROM exchanges
		WHERE teacher_id = $1 OR learner_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exchanges for user "+userID, err)
	}
	defer rows.Close()

	exchanges := []models.Exchange{}
	for rows.Next() {
		var m models.Exchange
		if err := rows.Scan(
			&m.ExchangeID, &m.TeacherID, &m.LearnerID, &m.SkillID, &m.DurationHours,
			&m.Credits, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange row", err)
		}
		exchanges = append(exchanges, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rows", err)
	}
	return mapping.ToDomainExchangeSlice(exchanges), nil
}

// UpdateStatusIfCurrent updates the status only if the stored status still
// equals expected at commit time. Zero rows affected means either a lost race
// or a missing exchange; the follow-up read disambiguates the two.
func (r *PgxExchangeRepository) UpdateStatusIfCurrent(ctx context.Context, exchangeID string, expected, next domain.ExchangeStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE exchanges
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE exchange_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, exchangeID, string(expected), string(next), now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of exchange "+exchangeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM exchanges WHERE exchange_id = $1);`, exchangeID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to re-check exchange "+exchangeID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: exchange %s is no longer %s", apperrors.ErrConflict, exchangeID, expected)
	}
	return nil
}

// AcceptExchange runs the acceptance unit of work: lock both parties, guard
// the learner's balance, move the credits and flip PENDING→ACCEPTED, all in
// one transaction. A failure of any step rolls back every step, so a lost
// status race also undoes the transfer. Serialization and deadlock aborts
// (SQLSTATE 40001/40P01) carry no business outcome and are retried a bounded
// number of times.
func (r *PgxExchangeRepository) AcceptExchange(ctx context.Context, exchange domain.Exchange, updatedBy string, now time.Time) error {
	var err error
	for attempt := 0; attempt <= maxAcceptRetries; attempt++ {
		err = r.acceptOnce(ctx, exchange, updatedBy, now)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return apperrors.NewAppError(500, "acceptance transaction kept aborting for exchange "+exchange.ExchangeID, err)
}

func (r *PgxExchangeRepository) acceptOnce(ctx context.Context, exchange domain.Exchange, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op once committed

	lockedUsers, err := r.userRepo.FindUsersByIDsForUpdate(ctx, tx, []string{exchange.LearnerID, exchange.TeacherID})
	if err != nil {
		return fmt.Errorf("failed to lock exchange parties: %w", err)
	}

	learner, ok := lockedUsers[exchange.LearnerID]
	if !ok {
		return fmt.Errorf("%w: learner %s", apperrors.ErrNotFound, exchange.LearnerID)
	}
	// The authoritative balance check, on the locked row. The advisory check
	// at request time may be long stale by now.
	if learner.CreditBalance < exchange.Credits {
		return fmt.Errorf("%w: learner balance %d below price %d", apperrors.ErrInsufficientCredits, learner.CreditBalance, exchange.Credits)
	}

	changes := map[string]int64{
		exchange.LearnerID: -exchange.Credits,
		exchange.TeacherID: exchange.Credits,
	}
	if err := r.userRepo.ApplyBalanceChangesInTx(ctx, tx, changes, updatedBy, now); err != nil {
		return fmt.Errorf("failed to transfer credits: %w", err)
	}

	casQuery := `
		UPDATE exchanges
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE exchange_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, casQuery,
		exchange.ExchangeID, string(domain.ExchangeAccepted), now, updatedBy, string(domain.ExchangePending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flip status of exchange "+exchange.ExchangeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Someone else transitioned it first; rolling back undoes the transfer.
		return fmt.Errorf("%w: exchange %s is no longer PENDING", apperrors.ErrConflict, exchange.ExchangeID)
	}

	return r.Commit(ctx, tx)
}

// isRetryableTxError reports whether err is a transient abort of the commit
// machinery itself rather than a business outcome.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01" // serialization_failure, deadlock_detected
	}
	return false
}
