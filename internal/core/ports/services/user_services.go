package services

import (
	"context"

	"github.com/skillswap/skillswap_app/internal/core/domain"
	"github.com/skillswap/skillswap_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetDashboard assembles the signed-in user's dashboard view: credit
	// balance, listed skills and exchanges on both sides.
	GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)

	// ListUsers retrieves users for the admin overview.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// Register creates a user with a bcrypt password hash and the configured
	// initial credit grant. Returns ErrDuplicate if the email is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email+password credentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a Google account to a platform user,
	// creating one (with the initial credit grant) on first login.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// DeleteUser removes a user on behalf of an admin. Admins may not delete
	// their own account.
	DeleteUser(ctx context.Context, targetUserID, adminUserID string) error
}

// UserSvcFacade combines all user service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
