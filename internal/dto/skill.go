package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// CreateSkillRequest defines the payload for listing a new skill.
type CreateSkillRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category" binding:"required"`
	Level         string `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Credits       int64  `json:"credits" binding:"required,gt=0"`
	DurationHours int    `json:"durationHours" binding:"required,gt=0"`
}

// UpdateSkillRequest defines the fields a skill owner may change.
// Pointers distinguish omitted fields from zero values.
type UpdateSkillRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Category      *string `json:"category"`
	Level         *string `json:"level" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Credits       *int64  `json:"credits" binding:"omitempty,gt=0"`
	DurationHours *int    `json:"durationHours" binding:"omitempty,gt=0"`
}

// ListSkillsParams defines query parameters for the skill listing.
type ListSkillsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// SkillResponse is the public shape of a skill, including its review summary.
type SkillResponse struct {
	SkillID       string            `json:"skillID"`
	OwnerID       string            `json:"ownerID"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Level         domain.SkillLevel `json:"level"`
	Credits       int64             `json:"credits"`
	DurationHours int               `json:"durationHours"`
	AverageRating decimal.Decimal   `json:"averageRating"`
	ReviewCount   int               `json:"reviewCount"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ToSkillResponse converts a domain.Skill plus its review summary to a DTO.
func ToSkillResponse(s *domain.Skill, averageRating decimal.Decimal, reviewCount int) SkillResponse {
	return SkillResponse{
		SkillID:       s.SkillID,
		OwnerID:       s.OwnerID,
		Title:         s.Title,
		Description:   s.Description,
		Category:      s.Category,
		Level:         s.Level,
		Credits:       s.Credits,
		DurationHours: s.DurationHours,
		AverageRating: averageRating,
		ReviewCount:   reviewCount,
		CreatedAt:     s.CreatedAt,
	}
}

// CreateReviewRequest defines the payload for reviewing a skill.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse is the public shape of a review.
type ReviewResponse struct {
	ReviewID   string    `json:"reviewID"`
	SkillID    string    `json:"skillID"`
	ReviewerID string    `json:"reviewerID"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToReviewResponse converts a domain.Review to its response DTO.
func ToReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ReviewID:   r.ReviewID,
		SkillID:    r.SkillID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
