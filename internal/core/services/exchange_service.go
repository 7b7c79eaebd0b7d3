package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/middleware"
)

// exchangeService orchestrates the exchange lifecycle: it composes the
// domain state machine with the repositories and leaves atomicity of the
// acceptance unit of work to the exchange repository.
type exchangeService struct {
	exchangeRepo portsrepo.ExchangeRepositoryFacade
	skillRepo    portsrepo.SkillReader
	userRepo     portsrepo.UserReader
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(exchangeRepo portsrepo.ExchangeRepositoryFacade, skillRepo portsrepo.SkillReader, userRepo portsrepo.UserReader) portssvc.ExchangeSvcFacade {
	return &exchangeService{
		exchangeRepo: exchangeRepo,
		skillRepo:    skillRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

// RequestExchange creates a PENDING exchange for the learner, snapshotting
// the skill's current price. The balance check here is fail-fast only; the
// learner's balance can change freely between request and acceptance, and
// the accepting transaction re-checks it on locked rows.
func (s *exchangeService) RequestExchange(ctx context.Context, learnerID, skillID string, durationHours int) (*domain.Exchange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if durationHours < 1 {
		return nil, fmt.Errorf("%w: duration must be at least one hour", apperrors.ErrValidation)
	}

	skill, err := s.skillRepo.FindSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill %s: %w", skillID, err)
	}

	if skill.OwnerID == learnerID {
		return nil, apperrors.ErrSelfExchange
	}

	learner, err := s.userRepo.FindUserByID(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load learner %s: %w", learnerID, err)
	}
	if learner.CreditBalance < skill.Credits {
		return nil, fmt.Errorf("%w: balance %d below skill price %d", apperrors.ErrInsufficientCredits, learner.CreditBalance, skill.Credits)
	}

	now := time.Now().UTC()
	exchange := domain.Exchange{
		ExchangeID:    uuid.NewString(),
		TeacherID:     skill.OwnerID,
		LearnerID:     learnerID,
		SkillID:       skill.SkillID,
		DurationHours: durationHours,
		Credits:       skill.Credits, // price snapshot; later skill edits must not reprice this
		Status:        domain.ExchangePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     learnerID,
			LastUpdatedAt: now,
			LastUpdatedBy: learnerID,
		},
	}

	if err := s.exchangeRepo.SaveExchange(ctx, exchange); err != nil {
		logger.Error("Failed to save exchange", slog.String("error", err.Error()), slog.String("skill_id", skillID))
		return nil, fmt.Errorf("failed to save exchange: %w", err)
	}

	logger.Info("Exchange requested", slog.String("exchange_id", exchange.ExchangeID), slog.String("skill_id", skillID))
	return &exchange, nil
}

// Transition applies a status transition on behalf of actorID. The domain
// state machine decides legality and whether credits move; the repository
// guarantees that for the accepting edge the transfer and the status
// compare-and-set commit or roll back together.
func (s *exchangeService) Transition(ctx context.Context, actorID, exchangeID string, requested domain.ExchangeStatus) (*domain.Exchange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exchange, err := s.exchangeRepo.FindExchangeByID(ctx, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find exchange %s: %w", exchangeID, err)
	}

	movesCredits, err := exchange.AuthorizeTransition(actorID, requested)
	if err != nil {
		logger.Warn("Transition denied",
			slog.String("exchange_id", exchangeID),
			slog.String("from", string(exchange.Status)),
			slog.String("to", string(requested)),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	if movesCredits {
		err = s.exchangeRepo.AcceptExchange(ctx, *exchange, actorID, now)
	} else {
		err = s.exchangeRepo.UpdateStatusIfCurrent(ctx, exchangeID, exchange.Status, requested, actorID, now)
	}
	if err != nil {
		return nil, err
	}

	exchange.Status = requested
	exchange.LastUpdatedAt = now
	exchange.LastUpdatedBy = actorID

	logger.Info("Exchange transitioned",
		slog.String("exchange_id", exchangeID),
		slog.String("status", string(requested)),
		slog.Bool("credits_moved", movesCredits))
	return exchange, nil
}

// ListForUser returns the exchanges the user participates in, newest first.
func (s *exchangeService) ListForUser(ctx context.Context, userID string) ([]domain.Exchange, error) {
	exchanges, err := s.exchangeRepo.ListExchangesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges for user %s: %w", userID, err)
	}
	return exchanges, nil
}
