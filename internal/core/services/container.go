package services

import (
	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/pkg/config"
)

// NewServiceContainer wires the repositories into services and returns the
// container the handlers consume.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:     NewUserService(repos.UserRepo, repos.SkillRepo, repos.ExchangeRepo, cfg.InitialCredits),
		Skill:    NewSkillService(repos.SkillRepo),
		Exchange: NewExchangeService(repos.ExchangeRepo, repos.SkillRepo, repos.UserRepo),
		Token:    NewTokenService(cfg),
		Google:   NewGoogleOAuthService(cfg),
	}
}
