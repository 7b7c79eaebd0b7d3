package dto

import (
	"time"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// UserResponse is the public shape of a user.
type UserResponse struct {
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          domain.UserRole `json:"role"`
	CreditBalance int64           `json:"creditBalance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		CreditBalance: u.CreditBalance,
		CreatedAt:     u.CreatedAt,
	}
}

// ListUsersParams defines query parameters for the admin user listing.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}

// DashboardStats summarizes activity counts for the dashboard.
type DashboardStats struct {
	SkillCount        int `json:"skillCount"`
	TeachingExchanges int `json:"teachingExchanges"`
	LearningExchanges int `json:"learningExchanges"`
}

// DashboardResponse is the signed-in user's dashboard view.
type DashboardResponse struct {
	CreditBalance      int64              `json:"creditBalance"`
	Skills             []SkillResponse    `json:"skills"`
	ExchangesAsTeacher []ExchangeResponse `json:"exchangesAsTeacher"`
	ExchangesAsLearner []ExchangeResponse `json:"exchangesAsLearner"`
	Stats              DashboardStats     `json:"stats"`
}
