package utilities

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractBearerToken return the token of the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	const bearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(bearerSchema) || !strings.EqualFold(authHeader[:len(bearerSchema)], bearerSchema) {
		return "", fmt.Errorf("invalid authorization header")
	}

	return strings.TrimSpace(authHeader[len(bearerSchema):]), nil
}

// HasBearerToken reports whether the request carries an Authorization header.
func HasBearerToken(c *gin.Context) bool {
	return c.GetHeader("Authorization") != ""
}
