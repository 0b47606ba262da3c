package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/constants"
	"recipe-api/dto"
	"recipe-api/services"
)

type IAdminController interface {
	FindAllUsers(ctx *gin.Context)
	FindUserById(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
}

// AdminController exposes user management to staff accounts.
type AdminController struct {
	service services.IUserService
	logger  zerolog.Logger
}

func NewAdminController(service services.IUserService, logger zerolog.Logger) IAdminController {
	return &AdminController{service: service, logger: logger}
}

func (c *AdminController) FindAllUsers(ctx *gin.Context) {
	users, err := c.service.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewAdminUserResponse(&users[i]))
	}
	ctx.JSON(http.StatusOK, responses)
}

func (c *AdminController) FindUserById(ctx *gin.Context) {
	userID, ok := parseID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
		return
	}

	user, err := c.service.FindById(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAdminUserResponse(user))
}

// DeleteUser removes a user and cascades to everything they own.
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := parseID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info().Uint("user_id", userID).Msg("user deleted by staff")
	ctx.Status(http.StatusNoContent)
}
