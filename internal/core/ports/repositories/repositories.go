package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at bootstrap.
type RepositoryProvider struct {
	UserRepo     UserRepositoryFacade
	SkillRepo    SkillRepositoryFacade
	ExchangeRepo ExchangeRepositoryFacade
}
