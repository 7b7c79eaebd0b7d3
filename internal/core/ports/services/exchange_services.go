package services

import (
	"context"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// ExchangeSvcFacade is the entry point to the exchange lifecycle: creating
// requests, applying status transitions and reading a user's exchanges.
type ExchangeSvcFacade interface {
	// RequestExchange creates a PENDING exchange for skillID on behalf of the
	// learner. The learner must not own the skill, duration must be at least
	// one hour, and the learner's balance is checked against the skill price
	// as a fail-fast guard (the authoritative check happens at acceptance).
	RequestExchange(ctx context.Context, learnerID, skillID string, durationHours int) (*domain.Exchange, error)

	// Transition moves the exchange to the requested status on behalf of
	// actorID, enforcing the state machine's authorization rules. The
	// PENDING→ACCEPTED edge settles credits learner→teacher atomically with
	// the status change; all other edges are pure status updates.
	Transition(ctx context.Context, actorID, exchangeID string, requested domain.ExchangeStatus) (*domain.Exchange, error)

	// ListForUser returns the exchanges the user participates in as teacher
	// or learner, newest first.
	ListForUser(ctx context.Context, userID string) ([]domain.Exchange, error)
}
