package services

import (
	"context"

	"github.com/skillswap/skillswap_app/internal/core/domain"
	"github.com/skillswap/skillswap_app/internal/dto"
)

// SkillSvcFacade exposes skill catalog and review operations.
type SkillSvcFacade interface {
	// CreateSkill lists a new skill owned by ownerID.
	CreateSkill(ctx context.Context, ownerID string, req dto.CreateSkillRequest) (*domain.Skill, error)

	// GetSkillByID retrieves a skill together with its review summary.
	GetSkillByID(ctx context.Context, skillID string) (*dto.SkillResponse, error)

	// ListSkills retrieves a page of skills with review summaries.
	ListSkills(ctx context.Context, params dto.ListSkillsParams) ([]dto.SkillResponse, error)

	// UpdateSkill updates a skill; only the owner may do so.
	UpdateSkill(ctx context.Context, skillID, requestingUserID string, req dto.UpdateSkillRequest) (*domain.Skill, error)

	// DeleteSkill removes a skill. Owners may delete their own skills;
	// isAdmin bypasses the ownership check for the admin endpoint.
	DeleteSkill(ctx context.Context, skillID, requestingUserID string, isAdmin bool) error

	// AddReview records a rating for a skill by a user who does not own it.
	AddReview(ctx context.Context, skillID, reviewerID string, req dto.CreateReviewRequest) (*domain.Review, error)
}
