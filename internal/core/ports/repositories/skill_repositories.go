package repositories

import (
	"context"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// SkillReader defines read operations for skill data.
type SkillReader interface {
	// FindSkillByID retrieves a specific skill by its unique identifier.
	FindSkillByID(ctx context.Context, skillID string) (*domain.Skill, error)

	// ListSkills retrieves a paginated list of skills.
	ListSkills(ctx context.Context, limit int, offset int) ([]domain.Skill, error)

	// ListSkillsByOwner retrieves all skills listed by the given user.
	ListSkillsByOwner(ctx context.Context, ownerID string) ([]domain.Skill, error)
}

// SkillWriter defines write operations for skill data.
type SkillWriter interface {
	// SaveSkill persists a new skill.
	SaveSkill(ctx context.Context, skill domain.Skill) error

	// UpdateSkill updates an existing skill's details.
	UpdateSkill(ctx context.Context, skill domain.Skill) error

	// DeleteSkill removes a skill; related exchanges and reviews cascade.
	DeleteSkill(ctx context.Context, skillID string) error
}

// ReviewRepository defines persistence operations for skill reviews.
type ReviewRepository interface {
	// SaveReview persists a new review. A reviewer may review a skill once.
	SaveReview(ctx context.Context, review domain.Review) error

	// FindReviewsBySkillID retrieves all reviews for a skill.
	FindReviewsBySkillID(ctx context.Context, skillID string) ([]domain.Review, error)
}

// SkillRepositoryFacade combines all skill-related repository interfaces.
type SkillRepositoryFacade interface {
	SkillReader
	SkillWriter
	ReviewRepository
}
