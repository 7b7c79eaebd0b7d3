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

// skillHandler handles HTTP requests related to skills and their reviews.
type skillHandler struct {
	skillService portssvc.SkillSvcFacade
}

// newSkillHandler creates a new skillHandler.
func newSkillHandler(ss portssvc.SkillSvcFacade) *skillHandler {
	return &skillHandler{
		skillService: ss,
	}
}

// registerSkillRoutes registers all skill-related routes.
func registerSkillRoutes(rg *gin.RouterGroup, skillService portssvc.SkillSvcFacade) {
	h := newSkillHandler(skillService)

	skills := rg.Group("/skills")
	{
		skills.POST("", h.createSkill)
		skills.GET("", h.listSkills)
		skills.GET("/:id", h.getSkill)
		skills.PUT("/:id", h.updateSkill)
		skills.DELETE("/:id", h.deleteSkill)
		skills.POST("/:id/reviews", h.addReview)
	}
}

// createSkill godoc
// @Summary List a new skill
// @Description Creates a skill offering owned by the authenticated user.
// @Tags skills
// @Accept json
// @Produce json
// @Param skill body dto.CreateSkillRequest true "Skill details"
// @Success 201 {object} domain.Skill
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /skills [post]
func (h *skillHandler) createSkill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	skill, err := h.skillService.CreateSkill(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create skill", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create skill"})
		return
	}

	c.JSON(http.StatusCreated, skill)
}

// listSkills godoc
// @Summary List skills
// @Description Retrieves a paginated list of skill offerings with review summaries.
// @Tags skills
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.SkillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /skills [get]
func (h *skillHandler) listSkills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSkillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	skills, err := h.skillService.ListSkills(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list skills", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list skills"})
		return
	}

	c.JSON(http.StatusOK, skills)
}

// getSkill godoc
// @Summary Get a skill by ID
// @Description Retrieves a skill with its review summary.
// @Tags skills
// @Produce json
// @Param id path string true "Skill ID"
// @Success 200 {object} dto.SkillResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /skills/{id} [get]
func (h *skillHandler) getSkill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	skill, err := h.skillService.GetSkillByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Skill not found"})
			return
		}
		logger.Error("Failed to retrieve skill", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve skill"})
		return
	}

	c.JSON(http.StatusOK, skill)
}

// updateSkill godoc
// @Summary Update a skill
// @Description Updates a skill's details. Only the owner may update. Price changes never reprice open exchange requests.
// @Tags skills
// @Accept json
// @Produce json
// @Param id path string true "Skill ID"
// @Param skill body dto.UpdateSkillRequest true "Fields to update"
// @Success 200 {object} domain.Skill
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /skills/{id} [put]
func (h *skillHandler) updateSkill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	skill, err := h.skillService.UpdateSkill(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Skill not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the owner can update a skill"})
		default:
			logger.Error("Failed to update skill", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update skill"})
		}
		return
	}

	c.JSON(http.StatusOK, skill)
}

// deleteSkill godoc
// @Summary Delete a skill
// @Description Deletes a skill. The owner or an admin may delete; related exchanges and reviews are removed with it.
// @Tags skills
// @Produce json
// @Param id path string true "Skill ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /skills/{id} [delete]
func (h *skillHandler) deleteSkill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	err := h.skillService.DeleteSkill(c.Request.Context(), c.Param("id"), userID, role == domain.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Skill not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only the owner or an admin can delete a skill"})
		default:
			logger.Error("Failed to delete skill", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete skill"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// addReview godoc
// @Summary Review a skill
// @Description Adds a 1-5 rating with an optional comment. A user may review a given skill once and never their own.
// @Tags skills
// @Accept json
// @Produce json
// @Param id path string true "Skill ID"
// @Param review body dto.CreateReviewRequest true "Review details"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already reviewed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /skills/{id}/reviews [post]
func (h *skillHandler) addReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	review, err := h.skillService.AddReview(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Skill not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cannot review your own skill"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "You have already reviewed this skill"})
		default:
			logger.Error("Failed to add review", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add review"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}
