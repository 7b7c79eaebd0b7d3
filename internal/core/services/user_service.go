package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portsrepo "github.com/skillswap/skillswap_app/internal/core/ports/repositories"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/dto"
	"github.com/skillswap/skillswap_app/internal/middleware"
)

type userService struct {
	userRepo       portsrepo.UserRepositoryFacade
	skillRepo      portsrepo.SkillRepositoryFacade
	exchangeRepo   portsrepo.ExchangeReader
	initialCredits int64
}

// NewUserService creates a new UserService. initialCredits is granted to
// every newly registered account.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, skillRepo portsrepo.SkillRepositoryFacade, exchangeRepo portsrepo.ExchangeReader, initialCredits int64) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		skillRepo:      skillRepo,
		exchangeRepo:   exchangeRepo,
		initialCredits: initialCredits,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		CreditBalance: s.initialCredits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	// The unique index on email is authoritative; the repository maps the
	// violation to ErrDuplicate.
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.Int64("initial_credits", s.initialCredits))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	// OAuth-only accounts have no password hash and cannot use password login.
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:        uuid.NewString(),
		Name:          info.Name,
		Email:         info.Email,
		Role:          domain.RoleUser,
		CreditBalance: s.initialCredits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		// Concurrent first login with the same account; the other insert won.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.userRepo.FindUserByEmail(ctx, info.Email)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created via Google login", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	skills, err := s.skillRepo.ListSkillsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills for user %s: %w", userID, err)
	}
	skillResponses := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		reviews, err := s.skillRepo.FindReviewsBySkillID(ctx, skills[i].SkillID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reviews for skill %s: %w", skills[i].SkillID, err)
		}
		avg, count := reviewSummary(reviews)
		skillResponses = append(skillResponses, dto.ToSkillResponse(&skills[i], avg, count))
	}

	exchanges, err := s.exchangeRepo.ListExchangesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges for user %s: %w", userID, err)
	}
	var asTeacher, asLearner []dto.ExchangeResponse
	for i := range exchanges {
		resp := dto.ToExchangeResponse(&exchanges[i])
		if exchanges[i].TeacherID == userID {
			asTeacher = append(asTeacher, resp)
		} else {
			asLearner = append(asLearner, resp)
		}
	}

	return &dto.DashboardResponse{
		CreditBalance:      user.CreditBalance,
		Skills:             skillResponses,
		ExchangesAsTeacher: asTeacher,
		ExchangesAsLearner: asLearner,
		Stats: dto.DashboardStats{
			SkillCount:        len(skillResponses),
			TeachingExchanges: len(asTeacher),
			LearningExchanges: len(asLearner),
		},
	}, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, targetUserID, adminUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if targetUserID == adminUserID {
		return fmt.Errorf("%w: admins cannot delete their own account", apperrors.ErrValidation)
	}

	if err := s.userRepo.DeleteUser(ctx, targetUserID); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", targetUserID, err)
	}

	logger.Info("User deleted", slog.String("user_id", targetUserID), slog.String("admin_id", adminUserID))
	return nil
}
