// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"fmt"
	"strings"

	"findjob-backend/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; it returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, errors.New("user information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("failed to assert type")
	}
	return user, nil
}

// OptionalUser return the caller or nil for anonymous requests.
func OptionalUser(c *gin.Context) *model.User {
	user, err := ExtractUser(c)
	if err != nil {
		return nil
	}
	return &user
}

// CreateAdmin creates an admin user with the given password and username in the provided database.
func CreateAdmin(db *gorm.DB, username string, password string) (model.User, error) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := model.NewUser(strings.TrimSpace(username), nil, hashedPassword, model.AdminProfile{})
	admin.IsSuperuser = true
	if err := db.Create(&admin).Error; err != nil {
		return model.User{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
