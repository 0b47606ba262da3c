package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/constants"
	"recipe-api/dto"
	"recipe-api/services"
)

type IAuthController interface {
	Token(ctx *gin.Context)
	Logout(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
	logger  zerolog.Logger
}

func NewAuthController(service services.IAuthService, logger zerolog.Logger) IAuthController {
	return &AuthController{service: service, logger: logger}
}

// Token issues a bearer token for valid email/password credentials.
func (c *AuthController) Token(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	token, err := c.service.Login(ctx.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	tokenString := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	if err := c.service.Logout(ctx.Request.Context(), tokenString); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": constants.MsgLoggedOut})
}
