package auth

import (
	"errors"
	"net/http"
	"time"

	"findjob-backend/internal/database"
	"findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB     *database.DBinstanceStruct
	Tokens *TokenManager
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler.
func NewLocalAuthHandler(db *database.DBinstanceStruct, tokens *TokenManager) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:     db,
		Tokens: tokens,
	}
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned by login and registration.
type LoginResponse struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

const badCredentials = "Username or password is incorrect"

// LocalLoginHandler exchange username and password for an access token.
// @Summary Login with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing username or password"
// @Failure 401 {object} utilities.ErrorResponse "Wrong credentials"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username or password is not provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Preload("Employer").Preload("Candidate").
		Where("username = ?", info.Username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		LogAuthAttempt(zerolog.WarnLevel, "Local", "Fail", info.Username, "unknown username")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: badCredentials})
		return
	case err != nil:
		utilities.RespondError(c, err)
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		LogAuthAttempt(zerolog.WarnLevel, "Local", "Fail", info.Username, "wrong password")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: badCredentials})
		return
	}

	resp, err := lh.IssueToken(user)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	LogAuthAttempt(zerolog.InfoLevel, "Local", "Success", user.Username, "login")
	c.JSON(http.StatusOK, resp)
}

// IssueToken build the login response for user.
func (lh *LocalAuthHandler) IssueToken(user model.User) (LoginResponse, error) {
	token, exp, err := lh.Tokens.GenerateToken(user.ID)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{User: user, AccessToken: token, ExpiresAt: exp}, nil
}
