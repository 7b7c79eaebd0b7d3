package dto

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// CreateExchangeRequest defines the payload for requesting an exchange.
type CreateExchangeRequest struct {
	SkillID       string `json:"skillID" binding:"required"`
	DurationHours int    `json:"durationHours" binding:"required,gt=0"`
}

// UpdateExchangeStatusRequest defines the payload for a status transition.
type UpdateExchangeStatusRequest struct {
	Status string `json:"status" binding:"required,exchangestatus"`
}

// ExchangeResponse is the public shape of an exchange.
type ExchangeResponse struct {
	ExchangeID    string                `json:"exchangeID"`
	TeacherID     string                `json:"teacherID"`
	LearnerID     string                `json:"learnerID"`
	SkillID       string                `json:"skillID"`
	DurationHours int                   `json:"durationHours"`
	Credits       int64                 `json:"credits"`
	Status        domain.ExchangeStatus `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToExchangeResponse converts a domain.Exchange to its response DTO.
func ToExchangeResponse(e *domain.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ExchangeID:    e.ExchangeID,
		TeacherID:     e.TeacherID,
		LearnerID:     e.LearnerID,
		SkillID:       e.SkillID,
		DurationHours: e.DurationHours,
		Credits:       e.Credits,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
	}
}

// ToExchangeResponses converts a slice of domain exchanges to DTOs.
func ToExchangeResponses(exchanges []domain.Exchange) []ExchangeResponse {
	out := make([]ExchangeResponse, len(exchanges))
	for i := range exchanges {
		out[i] = ToExchangeResponse(&exchanges[i])
	}
	return out
}

// RegisterCustomValidators installs the dto package's custom binding rules
// on gin's validator engine. Call once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("exchangestatus", validExchangeStatus)
	}
}

func validExchangeStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseExchangeStatus(fl.Field().String())
	return err == nil
}
