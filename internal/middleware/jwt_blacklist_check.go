package middleware

import (
	"net/http"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// JwtBlacklistCheck rejects revoked tokens. Requests without a token pass
// through so that anonymous routes keep working.
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !utilities.HasBearerToken(ctx) {
			ctx.Next()
			return
		}
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(ctx.Request.Context(), tokenString)
		if err != nil {
			utilities.RespondError(ctx, err)
			return
		}

		if isBlacklisted {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Token has been revoked",
			})
			return
		}
		ctx.Next()
	}
}
