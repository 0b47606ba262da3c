package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/constants"
	"recipe-api/models"
	"recipe-api/services"
)

func currentUser(ctx *gin.Context) (*models.User, bool) {
	user, exists := ctx.Get(constants.ContextUserKey)
	if !exists {
		return nil, false
	}
	userModel, ok := user.(*models.User)
	return userModel, ok
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func respondBindError(ctx *gin.Context, err error) {
	if fields, ok := bindingErrors(err); ok {
		ctx.JSON(http.StatusBadRequest, fields)
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{constants.DetailKey: constants.ErrMalformedBody})
}

// respondError maps service errors onto status codes. Anything unexpected
// is logged and reported as a 500 without details.
func respondError(ctx *gin.Context, logger zerolog.Logger, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusBadRequest, gin.H{constants.NonFieldErrorsKey: []string{constants.ErrInvalidCredentials}})
	case errors.Is(err, services.ErrInvalidToken):
		ctx.JSON(http.StatusUnauthorized, gin.H{constants.DetailKey: constants.ErrInvalidToken})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
	default:
		logger.Error().Err(err).
			Str("method", ctx.Request.Method).
			Str("path", ctx.FullPath()).
			Msg("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{constants.DetailKey: constants.ErrUnexpected})
	}
}
