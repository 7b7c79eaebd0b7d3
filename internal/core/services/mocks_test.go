package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindUsersByIDsForUpdate(ctx context.Context, tx pgx.Tx, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, tx, userIDs)
	var users map[string]domain.User
	if args.Get(0) != nil {
		users = args.Get(0).(map[string]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]int64, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, changes, updatedBy, now)
	return args.Error(0)
}

// --- Mock SkillRepository ---

type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) FindSkillByID(ctx context.Context, skillID string) (*domain.Skill, error) {
	args := m.Called(ctx, skillID)
	var skill *domain.Skill
	if args.Get(0) != nil {
		skill = args.Get(0).(*domain.Skill)
	}
	return skill, args.Error(1)
}

func (m *MockSkillRepository) ListSkills(ctx context.Context, limit int, offset int) ([]domain.Skill, error) {
	args := m.Called(ctx, limit, offset)
	var skills []domain.Skill
	if args.Get(0) != nil {
		skills = args.Get(0).([]domain.Skill)
	}
	return skills, args.Error(1)
}

func (m *MockSkillRepository) ListSkillsByOwner(ctx context.Context, ownerID string) ([]domain.Skill, error) {
	args := m.Called(ctx, ownerID)
	var skills []domain.Skill
	if args.Get(0) != nil {
		skills = args.Get(0).([]domain.Skill)
	}
	return skills, args.Error(1)
}

func (m *MockSkillRepository) SaveSkill(ctx context.Context, skill domain.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) UpdateSkill(ctx context.Context, skill domain.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) DeleteSkill(ctx context.Context, skillID string) error {
	args := m.Called(ctx, skillID)
	return args.Error(0)
}

func (m *MockSkillRepository) SaveReview(ctx context.Context, review domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockSkillRepository) FindReviewsBySkillID(ctx context.Context, skillID string) ([]domain.Review, error) {
	args := m.Called(ctx, skillID)
	var reviews []domain.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]domain.Review)
	}
	return reviews, args.Error(1)
}

// --- Mock ExchangeRepository ---

type MockExchangeRepository struct {
	mock.Mock
}

func (m *MockExchangeRepository) FindExchangeByID(ctx context.Context, exchangeID string) (*domain.Exchange, error) {
	args := m.Called(ctx, exchangeID)
	var exchange *domain.Exchange
	if args.Get(0) != nil {
		exchange = args.Get(0).(*domain.Exchange)
	}
	return exchange, args.Error(1)
}

func (m *MockExchangeRepository) ListExchangesByUser(ctx context.Context, userID string) ([]domain.Exchange, error) {
	args := m.Called(ctx, userID)
	var exchanges []domain.Exchange
	if args.Get(0) != nil {
		exchanges = args.Get(0).([]domain.Exchange)
	}
	return exchanges, args.Error(1)
}

func (m *MockExchangeRepository) SaveExchange(ctx context.Context, exchange domain.Exchange) error {
	args := m.Called(ctx, exchange)
	return args.Error(0)
}

func (m *MockExchangeRepository) UpdateStatusIfCurrent(ctx context.Context, exchangeID string, expected, next domain.ExchangeStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, exchangeID, expected, next, updatedBy, now)
	return args.Error(0)
}

func (m *MockExchangeRepository) AcceptExchange(ctx context.Context, exchange domain.Exchange, updatedBy string, now time.Time) error {
	args := m.Called(ctx, exchange, updatedBy, now)
	return args.Error(0)
}
