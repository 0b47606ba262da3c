package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/dto"
	"recipe-api/services"
)

type IUserController interface {
	Create(ctx *gin.Context)
	Me(ctx *gin.Context)
	UpdateMe(ctx *gin.Context)
}

type UserController struct {
	service services.IUserService
	logger  zerolog.Logger
}

func NewUserController(service services.IUserService, logger zerolog.Logger) IUserController {
	return &UserController{service: service, logger: logger}
}

// Create is open self-registration.
func (c *UserController) Create(ctx *gin.Context) {
	var input dto.CreateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.service.Register(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (c *UserController) Me(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (c *UserController) UpdateMe(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	updated, err := c.service.UpdateProfile(ctx.Request.Context(), user.ID, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse(updated))
}
