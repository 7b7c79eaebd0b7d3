package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_app/internal/apperrors"
	portssvc "github.com/skillswap/skillswap_app/internal/core/ports/services"
	"github.com/skillswap/skillswap_app/internal/dto"
	"github.com/skillswap/skillswap_app/internal/middleware"
)

// adminHandler handles administrative HTTP requests.
type adminHandler struct {
	userService  portssvc.UserSvcFacade
	skillService portssvc.SkillSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(us portssvc.UserSvcFacade, ss portssvc.SkillSvcFacade) *adminHandler {
	return &adminHandler{
		userService:  us,
		skillService: ss,
	}
}

// registerAdminRoutes registers the admin-only routes behind the admin role check.
func registerAdminRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, skillService portssvc.SkillSvcFacade) {
	h := newAdminHandler(userService, skillService)

	admin := rg.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/users", h.listUsers)
		admin.DELETE("/users/:id", h.deleteUser)
		admin.DELETE("/skills/:id", h.deleteSkill)
	}
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a paginated list of all users. Admin only.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Deletes a user account along with their skills, exchanges and reviews. Admins cannot delete their own account.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Attempt to delete own account"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Admins cannot delete their own account"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			logger.Error("Failed to delete user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete user"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteSkill godoc
// @Summary Delete a skill
// @Description Deletes any skill listing regardless of owner. Admin only.
// @Tags admin
// @Produce json
// @Param id path string true "Skill ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/skills/{id} [delete]
func (h *adminHandler) deleteSkill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.skillService.DeleteSkill(c.Request.Context(), c.Param("id"), adminID, true)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Skill not found"})
		default:
			logger.Error("Failed to delete skill", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete skill"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
