package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/constants"
	"recipe-api/services"
)

// AuthMiddleware resolves the bearer token to a user and stores it in the
// context under constants.ContextUserKey.
func AuthMiddleware(authService services.IAuthService, logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.DetailKey: constants.ErrNotAuthenticated})
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.DetailKey: constants.ErrInvalidToken})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.GetUserFromToken(ctx.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				logger.Error().Err(err).Msg("token lookup failed")
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.DetailKey: constants.ErrInvalidToken})
			return
		}

		ctx.Set(constants.ContextUserKey, user)

		ctx.Next()
	}
}
