// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/database"
	"findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RequireAuth validates the Bearer token in the Authorization header, loads
// the user with its profile and stores it in the context under "user".
func RequireAuth(db *database.DBinstanceStruct, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		authenticate(ctx, db, tokens, tokenString)
	}
}

// OptionalAuth behaves like RequireAuth when a token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(db *database.DBinstanceStruct, tokens *auth.TokenManager) gin.HandlerFunc {
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
		authenticate(ctx, db, tokens, tokenString)
	}
}

func authenticate(ctx *gin.Context, db *database.DBinstanceStruct, tokens *auth.TokenManager, tokenString string) {
	token, err := tokens.ValidatedToken(tokenString)
	if err != nil {
		auth.LogAuthAttempt(zerolog.DebugLevel, "Token", "Fail", "", err.Error())

		if errors.Is(err, jwt.ErrTokenExpired) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Access token expired",
			})
			return
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to validate token: %s", err.Error()),
		})
		return
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !token.Valid || !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid access token",
		})
		return
	}

	if claims.Issuer != auth.JwtIssuer {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid token issuer",
		})
		return
	}

	var foundUser model.User
	if err := db.Preload("Employer").Preload("Candidate").
		Where("id = ?", claims.Subject).First(&foundUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "User not exist",
			})
			return
		}
		utilities.RespondError(ctx, err)
		return
	}

	ctx.Set("claims", claims)
	ctx.Set("user", foundUser)
	ctx.Next()
}
