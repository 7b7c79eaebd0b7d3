package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/core/services"
	"github.com/skillswap/skillswap_app/internal/dto"
)

type SkillServiceTestSuite struct {
	suite.Suite
	mockSkillRepo *MockSkillRepository
	service       portssvc.SkillSvcFacade
}

func (suite *SkillServiceTestSuite) SetupTest() {
	suite.mockSkillRepo = new(MockSkillRepository)
	suite.service = services.NewSkillService(suite.mockSkillRepo)
}

func storedSkill() *domain.Skill {
	return &domain.Skill{
		SkillID:       "skill-1",
		OwnerID:       "owner-1",
		Title:         "Conversational Spanish",
		Category:      "Languages",
		Level:         domain.LevelIntermediate,
		Credits:       4,
		DurationHours: 1,
	}
}

func (suite *SkillServiceTestSuite) TestCreateSkill_Success() {
	ctx := context.Background()
	req := dto.CreateSkillRequest{
		Title:         "Conversational Spanish",
		Category:      "Languages",
		Level:         "INTERMEDIATE",
		Credits:       4,
		DurationHours: 1,
	}

	suite.mockSkillRepo.On("SaveSkill", ctx, mock.MatchedBy(func(s domain.Skill) bool {
		return s.OwnerID == "owner-1" &&
			s.Level == domain.LevelIntermediate &&
			s.Credits == 4 &&
			s.SkillID != ""
	})).Return(nil).Once()

	skill, err := suite.service.CreateSkill(ctx, "owner-1", req)

	suite.Require().NoError(err)
	suite.Equal("owner-1", skill.OwnerID)
	suite.NotEmpty(skill.SkillID)
}

func (suite *SkillServiceTestSuite) TestGetSkillByID_ComputesAverageRating() {
	ctx := context.Background()
	reviews := []domain.Review{{Rating: 5}, {Rating: 4}}

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()
	suite.mockSkillRepo.On("FindReviewsBySkillID", ctx, "skill-1").Return(reviews, nil).Once()

	resp, err := suite.service.GetSkillByID(ctx, "skill-1")

	suite.Require().NoError(err)
	suite.Equal(2, resp.ReviewCount)
	suite.True(resp.AverageRating.Equal(decimal.NewFromFloat(4.5)), "average = %s", resp.AverageRating)
}

func (suite *SkillServiceTestSuite) TestGetSkillByID_NoReviews() {
	ctx := context.Background()

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()
	suite.mockSkillRepo.On("FindReviewsBySkillID", ctx, "skill-1").Return([]domain.Review{}, nil).Once()

	resp, err := suite.service.GetSkillByID(ctx, "skill-1")

	suite.Require().NoError(err)
	suite.Equal(0, resp.ReviewCount)
	suite.True(resp.AverageRating.IsZero())
}

func (suite *SkillServiceTestSuite) TestUpdateSkill_OnlyOwner() {
	ctx := context.Background()
	newTitle := "Advanced Spanish"

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()

	skill, err := suite.service.UpdateSkill(ctx, "skill-1", "intruder", dto.UpdateSkillRequest{Title: &newTitle})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(skill)
	suite.mockSkillRepo.AssertNotCalled(suite.T(), "UpdateSkill", mock.Anything, mock.Anything)
}

func (suite *SkillServiceTestSuite) TestUpdateSkill_AppliesPartialFields() {
	ctx := context.Background()
	newCredits := int64(6)

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()
	suite.mockSkillRepo.On("UpdateSkill", ctx, mock.MatchedBy(func(s domain.Skill) bool {
		return s.Credits == 6 && s.Title == "Conversational Spanish"
	})).Return(nil).Once()

	skill, err := suite.service.UpdateSkill(ctx, "skill-1", "owner-1", dto.UpdateSkillRequest{Credits: &newCredits})

	suite.Require().NoError(err)
	suite.Equal(int64(6), skill.Credits)
	suite.Equal("Conversational Spanish", skill.Title)
}

func (suite *SkillServiceTestSuite) TestDeleteSkill_AdminBypassesOwnership() {
	ctx := context.Background()

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()
	suite.mockSkillRepo.On("DeleteSkill", ctx, "skill-1").Return(nil).Once()

	err := suite.service.DeleteSkill(ctx, "skill-1", "admin-1", true)

	suite.Require().NoError(err)
	suite.mockSkillRepo.AssertExpectations(suite.T())
}

func (suite *SkillServiceTestSuite) TestDeleteSkill_NonOwnerForbidden() {
	ctx := context.Background()

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()

	err := suite.service.DeleteSkill(ctx, "skill-1", "intruder", false)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSkillRepo.AssertNotCalled(suite.T(), "DeleteSkill", mock.Anything, mock.Anything)
}

func (suite *SkillServiceTestSuite) TestAddReview_OwnSkillRejected() {
	ctx := context.Background()

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()

	review, err := suite.service.AddReview(ctx, "skill-1", "owner-1", dto.CreateReviewRequest{Rating: 5})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(review)
	suite.mockSkillRepo.AssertNotCalled(suite.T(), "SaveReview", mock.Anything, mock.Anything)
}

func (suite *SkillServiceTestSuite) TestAddReview_Success() {
	ctx := context.Background()

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()
	suite.mockSkillRepo.On("SaveReview", ctx, mock.MatchedBy(func(r domain.Review) bool {
		return r.SkillID == "skill-1" && r.ReviewerID == "learner-1" && r.Rating == 5
	})).Return(nil).Once()

	review, err := suite.service.AddReview(ctx, "skill-1", "learner-1", dto.CreateReviewRequest{Rating: 5, Comment: "Great teacher"})

	suite.Require().NoError(err)
	suite.Equal(5, review.Rating)
	suite.NotEmpty(review.ReviewID)
}

func (suite *SkillServiceTestSuite) TestAddReview_DuplicatePropagates() {
	ctx := context.Background()

	suite.mockSkillRepo.On("FindSkillByID", ctx, "skill-1").Return(storedSkill(), nil).Once()
	suite.mockSkillRepo.On("SaveReview", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	review, err := suite.service.AddReview(ctx, "skill-1", "learner-1", dto.CreateReviewRequest{Rating: 3})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(review)
}

func TestSkillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SkillServiceTestSuite))
}
