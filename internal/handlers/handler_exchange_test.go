package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/dto"
	"github.com/skillswap/skillswap_app/internal/handlers"
	"github.com/skillswap/skillswap_app/internal/middleware"
)

// --- Mock ExchangeService ---
type MockExchangeService struct {
	mock.Mock
}

func (m *MockExchangeService) RequestExchange(ctx context.Context, learnerID, skillID string, durationHours int) (*domain.Exchange, error) {
	args := m.Called(ctx, learnerID, skillID, durationHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exchange), args.Error(1)
}

func (m *MockExchangeService) Transition(ctx context.Context, actorID, exchangeID string, requested domain.ExchangeStatus) (*domain.Exchange, error) {
	args := m.Called(ctx, actorID, exchangeID, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exchange), args.Error(1)
}

func (m *MockExchangeService) ListForUser(ctx context.Context, userID string) ([]domain.Exchange, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exchange), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExchangeSvcFacade = (*MockExchangeService)(nil)

// --- Test Suite ---
type ExchangeHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockExchangeService *MockExchangeService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ExchangeHandlerTestSuite) generateTestToken(userID string) string {
	claims := middleware.AccessClaims{
		Role: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "skillswap-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExchangeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockExchangeService = new(MockExchangeService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterExchangeRoutes(v1, suite.mockExchangeService)
}

func (suite *ExchangeHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExchangeHandlerTestSuite) TestCreateExchange_Success() {
	learnerID := uuid.NewString()
	skillID := uuid.NewString()

	created := &domain.Exchange{
		ExchangeID:    uuid.NewString(),
		TeacherID:     uuid.NewString(),
		LearnerID:     learnerID,
		SkillID:       skillID,
		DurationHours: 2,
		Credits:       5,
		Status:        domain.ExchangePending,
	}
	suite.mockExchangeService.On("RequestExchange", mock.Anything, learnerID, skillID, 2).
		Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/exchanges", suite.generateTestToken(learnerID),
		dto.CreateExchangeRequest{SkillID: skillID, DurationHours: 2})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExchangeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ExchangeID, resp.ExchangeID)
	suite.Equal(domain.ExchangePending, resp.Status)
	suite.mockExchangeService.AssertExpectations(suite.T())
}

func (suite *ExchangeHandlerTestSuite) TestCreateExchange_Unauthenticated() {
	w := suite.doJSON(http.MethodPost, "/api/v1/exchanges", "",
		dto.CreateExchangeRequest{SkillID: uuid.NewString(), DurationHours: 1})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExchangeService.AssertNotCalled(suite.T(), "RequestExchange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeHandlerTestSuite) TestCreateExchange_ErrorMapping() {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"skill not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"own skill", apperrors.ErrSelfExchange, http.StatusBadRequest},
		{"insufficient credits", apperrors.ErrInsufficientCredits, http.StatusBadRequest},
		{"internal failure", fmt.Errorf("database unavailable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			learnerID := uuid.NewString()
			skillID := uuid.NewString()
			suite.mockExchangeService.On("RequestExchange", mock.Anything, learnerID, skillID, 1).
				Return(nil, tt.serviceErr).Once()

			w := suite.doJSON(http.MethodPost, "/api/v1/exchanges", suite.generateTestToken(learnerID),
				dto.CreateExchangeRequest{SkillID: skillID, DurationHours: 1})

			suite.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (suite *ExchangeHandlerTestSuite) TestListExchanges_Success() {
	userID := uuid.NewString()
	exchanges := []domain.Exchange{
		{ExchangeID: uuid.NewString(), TeacherID: userID, Status: domain.ExchangeAccepted},
		{ExchangeID: uuid.NewString(), LearnerID: userID, Status: domain.ExchangePending},
	}
	suite.mockExchangeService.On("ListForUser", mock.Anything, userID).Return(exchanges, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/exchanges", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ExchangeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
}

func (suite *ExchangeHandlerTestSuite) TestUpdateStatus_Success() {
	actorID := uuid.NewString()
	exchangeID := uuid.NewString()
	updated := &domain.Exchange{ExchangeID: exchangeID, TeacherID: actorID, Status: domain.ExchangeAccepted}

	suite.mockExchangeService.On("Transition", mock.Anything, actorID, exchangeID, domain.ExchangeAccepted).
		Return(updated, nil).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/exchanges/"+exchangeID+"/status",
		suite.generateTestToken(actorID), dto.UpdateExchangeStatusRequest{Status: "ACCEPTED"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ExchangeAccepted, resp.Status)
}

func (suite *ExchangeHandlerTestSuite) TestUpdateStatus_UnknownStatusRejectedByBinding() {
	actorID := uuid.NewString()

	w := suite.doJSON(http.MethodPatch, "/api/v1/exchanges/"+uuid.NewString()+"/status",
		suite.generateTestToken(actorID), map[string]string{"status": "CANCELLED"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExchangeService.AssertNotCalled(suite.T(), "Transition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeHandlerTestSuite) TestUpdateStatus_ErrorMapping() {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"exchange not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"wrong actor", apperrors.ErrForbidden, http.StatusForbidden},
		{"illegal edge", apperrors.ErrInvalidTransition, http.StatusBadRequest},
		{"insufficient credits at accept", apperrors.ErrInsufficientCredits, http.StatusBadRequest},
		{"lost the race", apperrors.ErrConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			actorID := uuid.NewString()
			exchangeID := uuid.NewString()
			suite.mockExchangeService.On("Transition", mock.Anything, actorID, exchangeID, domain.ExchangeAccepted).
				Return(nil, tt.serviceErr).Once()

			w := suite.doJSON(http.MethodPatch, "/api/v1/exchanges/"+exchangeID+"/status",
				suite.generateTestToken(actorID), dto.UpdateExchangeStatusRequest{Status: "ACCEPTED"})

			suite.Equal(tt.wantStatus, w.Code)
		})
	}
}

func TestExchangeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeHandlerTestSuite))
}
