package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql repositories. The exchange repository
// receives the user repository so acceptance transactions can lock and move
// balances through the same code path as everything else.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := NewUserRepository(dbPool)
	skillRepo := NewSkillRepository(dbPool)
	exchangeRepo := NewExchangeRepository(dbPool, userRepo)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		SkillRepo:    skillRepo,
		ExchangeRepo: exchangeRepo,
	}
}
