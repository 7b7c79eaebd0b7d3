package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/dto"
	"github.com/skillswap/skillswap_app/internal/middleware"
)

type skillService struct {
	skillRepo portsrepo.SkillRepositoryFacade
}

// NewSkillService creates a new SkillService.
func NewSkillService(skillRepo portsrepo.SkillRepositoryFacade) portssvc.SkillSvcFacade {
	return &skillService{skillRepo: skillRepo}
}

var _ portssvc.SkillSvcFacade = (*skillService)(nil)

// reviewSummary computes the average rating to two decimal places along with
// the review count. An empty slice yields a zero average.
func reviewSummary(reviews []domain.Review) (decimal.Decimal, int) {
	if len(reviews) == 0 {
		return decimal.Zero, 0
	}
	total := decimal.Zero
	for _, r := range reviews {
		total = total.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	return total.Div(decimal.NewFromInt(int64(len(reviews)))).Round(2), len(reviews)
}

func (s *skillService) CreateSkill(ctx context.Context, ownerID string, req dto.CreateSkillRequest) (*domain.Skill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	skill := domain.Skill{
		SkillID:       uuid.NewString(),
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Level:         domain.SkillLevel(req.Level),
		Credits:       req.Credits,
		DurationHours: req.DurationHours,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.skillRepo.SaveSkill(ctx, skill); err != nil {
		logger.Error("Failed to save skill", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save skill: %w", err)
	}

	logger.Info("Skill created", slog.String("skill_id", skill.SkillID), slog.String("owner_id", ownerID))
	return &skill, nil
}

func (s *skillService) GetSkillByID(ctx context.Context, skillID string) (*dto.SkillResponse, error) {
	skill, err := s.skillRepo.FindSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to find skill %s: %w", skillID, err)
	}

	reviews, err := s.skillRepo.FindReviewsBySkillID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for skill %s: %w", skillID, err)
	}

	avg, count := reviewSummary(reviews)
	resp := dto.ToSkillResponse(skill, avg, count)
	return &resp, nil
}

func (s *skillService) ListSkills(ctx context.Context, params dto.ListSkillsParams) ([]dto.SkillResponse, error) {
	skills, err := s.skillRepo.ListSkills(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	responses := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		reviews, err := s.skillRepo.FindReviewsBySkillID(ctx, skills[i].SkillID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reviews for skill %s: %w", skills[i].SkillID, err)
		}
		avg, count := reviewSummary(reviews)
		responses = append(responses, dto.ToSkillResponse(&skills[i], avg, count))
	}
	return responses, nil
}

func (s *skillService) UpdateSkill(ctx context.Context, skillID, requestingUserID string, req dto.UpdateSkillRequest) (*domain.Skill, error) {
	skill, err := s.skillRepo.FindSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to find skill %s: %w", skillID, err)
	}
	if skill.OwnerID != requestingUserID {
		return nil, fmt.Errorf("%w: only the owner can update a skill", apperrors.ErrForbidden)
	}

	if req.Title != nil {
		skill.Title = *req.Title
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.Level != nil {
		skill.Level = domain.SkillLevel(*req.Level)
	}
	if req.Credits != nil {
		skill.Credits = *req.Credits
	}
	if req.DurationHours != nil {
		skill.DurationHours = *req.DurationHours
	}
	skill.LastUpdatedAt = time.Now().UTC()
	skill.LastUpdatedBy = requestingUserID

	if err := s.skillRepo.UpdateSkill(ctx, *skill); err != nil {
		return nil, fmt.Errorf("failed to update skill %s: %w", skillID, err)
	}
	return skill, nil
}

func (s *skillService) DeleteSkill(ctx context.Context, skillID, requestingUserID string, isAdmin bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	skill, err := s.skillRepo.FindSkillByID(ctx, skillID)
	if err != nil {
		return fmt.Errorf("failed to find skill %s: %w", skillID, err)
	}
	if !isAdmin && skill.OwnerID != requestingUserID {
		return fmt.Errorf("%w: only the owner or an admin can delete a skill", apperrors.ErrForbidden)
	}

	if err := s.skillRepo.DeleteSkill(ctx, skillID); err != nil {
		return fmt.Errorf("failed to delete skill %s: %w", skillID, err)
	}

	logger.Info("Skill deleted", slog.String("skill_id", skillID), slog.Bool("by_admin", isAdmin))
	return nil
}

func (s *skillService) AddReview(ctx context.Context, skillID, reviewerID string, req dto.CreateReviewRequest) (*domain.Review, error) {
	skill, err := s.skillRepo.FindSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to find skill %s: %w", skillID, err)
	}
	if skill.OwnerID == reviewerID {
		return nil, fmt.Errorf("%w: cannot review your own skill", apperrors.ErrValidation)
	}

	review := domain.Review{
		ReviewID:   uuid.NewString(),
		SkillID:    skillID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.skillRepo.SaveReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return &review, nil
}
