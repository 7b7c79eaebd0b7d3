package repositories

import (
	"context"
	"time"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// ExchangeReader defines read operations for exchange data.
type ExchangeReader interface {
	// FindExchangeByID retrieves a specific exchange by its unique identifier.
	FindExchangeByID(ctx context.Context, exchangeID string) (*domain.Exchange, error)

	// ListExchangesByUser retrieves all exchanges where the user is either the
	// teacher or the learner, newest first.
	ListExchangesByUser(ctx context.Context, userID string) ([]domain.Exchange, error)
}

// ExchangeWriter defines write operations for exchange data.
type ExchangeWriter interface {
	// SaveExchange persists a new exchange in PENDING status.
	SaveExchange(ctx context.Context, exchange domain.Exchange) error

	// UpdateStatusIfCurrent updates the exchange status only if the stored
	// status still equals expected at commit time. It returns ErrConflict if
	// a concurrent transition got there first, ErrNotFound if the exchange
	// does not exist.
	UpdateStatusIfCurrent(ctx context.Context, exchangeID string, expected, next domain.ExchangeStatus, updatedBy string, now time.Time) error

	// AcceptExchange performs the acceptance unit of work as one atomic
	// transaction: transfer exchange.Credits from the learner to the teacher
	// and move the status PENDING→ACCEPTED. Either both take effect or
	// neither does. Returns ErrInsufficientCredits if the learner's locked
	// balance is below the price, ErrConflict if the status check fails.
	AcceptExchange(ctx context.Context, exchange domain.Exchange, updatedBy string, now time.Time) error
}

// ExchangeRepositoryFacade combines all exchange-related repository interfaces.
type ExchangeRepositoryFacade interface {
	ExchangeReader
	ExchangeWriter
}
