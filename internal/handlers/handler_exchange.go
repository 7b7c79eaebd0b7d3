package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	"github.com/skillswap/skillswap_app/internal/core/domain"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/dto"
	"github.com/skillswap/skillswap_app/internal/middleware"
)

// exchangeHandler handles HTTP requests for the exchange lifecycle.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

// newExchangeHandler creates a new exchangeHandler.
func newExchangeHandler(es portssvc.ExchangeSvcFacade) *exchangeHandler {
	return &exchangeHandler{
		exchangeService: es,
	}
}

// RegisterExchangeRoutes registers all exchange-related routes.
func RegisterExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade) {
	h := newExchangeHandler(exchangeService)

	exchanges := rg.Group("/exchanges")
	{
		exchanges.POST("", h.createExchange)
		exchanges.GET("", h.listExchanges)
		exchanges.PATCH("/:id/status", h.updateStatus)
	}
}

// createExchange godoc
// @Summary Request an exchange
// @Description Creates a PENDING exchange request for a skill. The authenticated user becomes the learner; the skill's current price is snapshotted.
// @Tags exchanges
// @Accept json
// @Produce json
// @Param exchange body dto.CreateExchangeRequest true "Exchange request"
// @Success 201 {object} dto.ExchangeResponse
// @Failure 400 {object} ErrorResponse "Invalid input, own skill, or insufficient credits"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Skill not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges [post]
func (h *exchangeHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	exchange, err := h.exchangeService.RequestExchange(c.Request.Context(), userID, req.SkillID, req.DurationHours)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Skill not found"})
		case errors.Is(err, apperrors.ErrSelfExchange):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cannot request an exchange for your own skill"})
		case errors.Is(err, apperrors.ErrInsufficientCredits):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient credits"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Duration must be at least one hour"})
		default:
			logger.Error("Failed to create exchange", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create exchange"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeResponse(exchange))
}

// listExchanges godoc
// @Summary List the user's exchanges
// @Description Retrieves all exchanges the authenticated user participates in, as teacher or learner, newest first.
// @Tags exchanges
// @Produce json
// @Success 200 {array} dto.ExchangeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges [get]
func (h *exchangeHandler) listExchanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	exchanges, err := h.exchangeService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list exchanges", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list exchanges"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponses(exchanges))
}

// updateStatus godoc
// @Summary Transition an exchange
// @Description Applies a status transition. The teacher accepts or rejects a pending exchange; either party completes an accepted one. Accepting moves the credits from learner to teacher atomically.
// @Tags exchanges
// @Accept json
// @Produce json
// @Param id path string true "Exchange ID"
// @Param status body dto.UpdateExchangeStatusRequest true "Target status"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 400 {object} ErrorResponse "Invalid transition or insufficient credits"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Actor not allowed to perform this transition"
// @Failure 404 {object} ErrorResponse "Exchange not found"
// @Failure 409 {object} ErrorResponse "Exchange changed concurrently"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges/{id}/status [patch]
func (h *exchangeHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateExchangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	// Binding already validated the status string.
	requested, _ := domain.ParseExchangeStatus(req.Status)

	exchange, err := h.exchangeService.Transition(c.Request.Context(), userID, c.Param("id"), requested)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Exchange not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You are not allowed to perform this transition"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status transition"})
		case errors.Is(err, apperrors.ErrInsufficientCredits):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Learner has insufficient credits"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Exchange was changed concurrently, reload and retry"})
		default:
			logger.Error("Failed to transition exchange", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update exchange"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(exchange))
}
