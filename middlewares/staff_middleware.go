package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/constants"
	"recipe-api/models"
)

// RequireStaff only lets staff users through. It must run after AuthMiddleware.
func RequireStaff(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get(constants.ContextUserKey)
		if !exists {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userModel, ok := user.(*models.User)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// The flag comes from the row AuthMiddleware just loaded, not from token claims.
		if !userModel.IsStaff {
			logger.Warn().
				Uint("user_id", userModel.ID).
				Str("path", ctx.FullPath()).
				Msg("staff access denied")
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{constants.DetailKey: constants.ErrPermissionDenied})
			return
		}

		ctx.Next()
	}
}
