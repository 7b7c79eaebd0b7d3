package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/core/services"
	"github.com/skillswap/skillswap_app/internal/dto"
)

const testInitialCredits = int64(10)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockSkillRepo    *MockSkillRepository
	mockExchangeRepo *MockExchangeRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSkillRepo = new(MockSkillRepository)
	suite.mockExchangeRepo = new(MockExchangeRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockSkillRepo, suite.mockExchangeRepo, testInitialCredits)
}

// --- Register ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Test User", Email: "test@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == req.Email &&
			user.Role == domain.RoleUser &&
			user.CreditBalance == testInitialCredits &&
			user.PasswordHash != req.Password &&
			user.UserID != ""
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(testInitialCredits, user.CreditBalance)
	suite.Equal(domain.RoleUser, user.Role)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Test User", Email: "taken@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
}

// --- Authenticate ---

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &domain.User{UserID: "user-1", Email: "test@example.com", PasswordHash: string(hash)}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "test@example.com", "password123")

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &domain.User{UserID: "user-1", PasswordHash: string(hash)}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "test@example.com", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailMapsToUnauthorized() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_OAuthOnlyAccount() {
	ctx := context.Background()
	stored := &domain.User{UserID: "user-1", Email: "g@example.com", PasswordHash: ""}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "g@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "g@example.com", "anything")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

// --- FindOrCreateGoogleUser ---

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingAccount() {
	ctx := context.Background()
	stored := &domain.User{UserID: "user-1", Email: "g@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "g@example.com").Return(stored, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{ID: "gid", Email: "g@example.com", Name: "G User"})

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_FirstLoginCreatesAccount() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new@example.com" &&
			user.PasswordHash == "" &&
			user.CreditBalance == testInitialCredits
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{ID: "gid", Email: "new@example.com", Name: "New User"})

	suite.Require().NoError(err)
	suite.Equal(testInitialCredits, user.CreditBalance)
	suite.Empty(user.PasswordHash)
}

// --- GetDashboard ---

func (suite *UserServiceTestSuite) TestGetDashboard_SplitsExchangesBySide() {
	ctx := context.Background()
	me := &domain.User{UserID: "user-1", CreditBalance: 12}
	skills := []domain.Skill{{SkillID: "skill-1", OwnerID: "user-1", Credits: 3}}
	exchanges := []domain.Exchange{
		{ExchangeID: "ex-1", TeacherID: "user-1", LearnerID: "other", Status: domain.ExchangeAccepted},
		{ExchangeID: "ex-2", TeacherID: "other", LearnerID: "user-1", Status: domain.ExchangePending},
		{ExchangeID: "ex-3", TeacherID: "user-1", LearnerID: "another", Status: domain.ExchangeCompleted},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(me, nil).Once()
	suite.mockSkillRepo.On("ListSkillsByOwner", ctx, "user-1").Return(skills, nil).Once()
	suite.mockSkillRepo.On("FindReviewsBySkillID", ctx, "skill-1").Return([]domain.Review{{Rating: 4}}, nil).Once()
	suite.mockExchangeRepo.On("ListExchangesByUser", ctx, "user-1").Return(exchanges, nil).Once()

	dashboard, err := suite.service.GetDashboard(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(12), dashboard.CreditBalance)
	suite.Len(dashboard.Skills, 1)
	suite.Len(dashboard.ExchangesAsTeacher, 2)
	suite.Len(dashboard.ExchangesAsLearner, 1)
	suite.Equal(1, dashboard.Stats.SkillCount)
	suite.Equal(2, dashboard.Stats.TeachingExchanges)
	suite.Equal(1, dashboard.Stats.LearningExchanges)
}

// --- DeleteUser ---

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("DeleteUser", ctx, "target-1").Return(nil).Once()

	err := suite.service.DeleteUser(ctx, "target-1", "admin-1")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfDeleteRejected() {
	ctx := context.Background()

	err := suite.service.DeleteUser(ctx, "admin-1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
