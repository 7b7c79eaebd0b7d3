package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
)

func TestParseExchangeStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "ACCEPTED", "REJECTED", "COMPLETED"} {
		status, err := domain.ParseExchangeStatus(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, domain.ExchangeStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "CANCELLED", "DONE"} {
		_, err := domain.ParseExchangeStatus(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestExchangeStatusIsTerminal(t *testing.T) {
	assert.False(t, domain.ExchangePending.IsTerminal())
	assert.False(t, domain.ExchangeAccepted.IsTerminal())
	assert.True(t, domain.ExchangeRejected.IsTerminal())
	assert.True(t, domain.ExchangeCompleted.IsTerminal())
}

func TestAuthorizeTransition(t *testing.T) {
	const (
		teacher  = "teacher-1"
		learner  = "learner-1"
		outsider = "outsider-1"
	)

	newExchange := func(status domain.ExchangeStatus) *domain.Exchange {
		return &domain.Exchange{
			ExchangeID: "ex-1",
			TeacherID:  teacher,
			LearnerID:  learner,
			Status:     status,
		}
	}

	tests := []struct {
		name             string
		from             domain.ExchangeStatus
		to               domain.ExchangeStatus
		actor            string
		wantErr          error
		wantMovesCredits bool
	}{
		{name: "teacher accepts pending", from: domain.ExchangePending, to: domain.ExchangeAccepted, actor: teacher, wantMovesCredits: true},
		{name: "teacher rejects pending", from: domain.ExchangePending, to: domain.ExchangeRejected, actor: teacher},
		{name: "teacher completes accepted", from: domain.ExchangeAccepted, to: domain.ExchangeCompleted, actor: teacher},
		{name: "learner completes accepted", from: domain.ExchangeAccepted, to: domain.ExchangeCompleted, actor: learner},

		{name: "learner cannot accept", from: domain.ExchangePending, to: domain.ExchangeAccepted, actor: learner, wantErr: apperrors.ErrForbidden},
		{name: "learner cannot reject", from: domain.ExchangePending, to: domain.ExchangeRejected, actor: learner, wantErr: apperrors.ErrForbidden},
		{name: "outsider cannot accept", from: domain.ExchangePending, to: domain.ExchangeAccepted, actor: outsider, wantErr: apperrors.ErrForbidden},
		{name: "outsider cannot complete", from: domain.ExchangeAccepted, to: domain.ExchangeCompleted, actor: outsider, wantErr: apperrors.ErrForbidden},

		{name: "cannot complete pending", from: domain.ExchangePending, to: domain.ExchangeCompleted, actor: teacher, wantErr: apperrors.ErrInvalidTransition},
		{name: "cannot reject accepted", from: domain.ExchangeAccepted, to: domain.ExchangeRejected, actor: teacher, wantErr: apperrors.ErrInvalidTransition},
		{name: "cannot accept accepted", from: domain.ExchangeAccepted, to: domain.ExchangeAccepted, actor: teacher, wantErr: apperrors.ErrInvalidTransition},
		{name: "cannot leave rejected", from: domain.ExchangeRejected, to: domain.ExchangeAccepted, actor: teacher, wantErr: apperrors.ErrInvalidTransition},
		{name: "cannot leave completed", from: domain.ExchangeCompleted, to: domain.ExchangeAccepted, actor: teacher, wantErr: apperrors.ErrInvalidTransition},
		{name: "cannot revert to pending", from: domain.ExchangeAccepted, to: domain.ExchangePending, actor: teacher, wantErr: apperrors.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movesCredits, err := newExchange(tt.from).AuthorizeTransition(tt.actor, tt.to)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, movesCredits)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMovesCredits, movesCredits)
		})
	}
}

// The acceptance edge is the only one that settles credits. If the edge set
// grows, whoever adds a second settling edge needs to revisit the repository's
// transaction shape.
func TestOnlyAcceptanceMovesCredits(t *testing.T) {
	e := &domain.Exchange{TeacherID: "t", LearnerID: "l", Status: domain.ExchangePending}

	moves, err := e.AuthorizeTransition("t", domain.ExchangeAccepted)
	require.NoError(t, err)
	assert.True(t, moves)

	moves, err = e.AuthorizeTransition("t", domain.ExchangeRejected)
	require.NoError(t, err)
	assert.False(t, moves)

	e.Status = domain.ExchangeAccepted
	moves, err = e.AuthorizeTransition("l", domain.ExchangeCompleted)
	require.NoError(t, err)
	assert.False(t, moves)
}
